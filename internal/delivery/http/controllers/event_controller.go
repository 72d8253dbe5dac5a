package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/kunal2899/event-management-api/internal/delivery/http/helpers"
	"github.com/kunal2899/event-management-api/internal/delivery/http/middleware"
	"github.com/kunal2899/event-management-api/internal/domain"
)

// EventRequest is the request body for POST /v1/events and PUT /v1/events/{id}.
// OrganizerID is part of the payload schema but is never trusted: the organizer
// is always the authenticated user.
type EventRequest struct {
	Name        string  `json:"name" validate:"required"`
	Date        string  `json:"date" validate:"required,iso8601"`
	Location    string  `json:"location" validate:"required"`
	Description *string `json:"description"`
	OrganizerID int64   `json:"organizerId" validate:"required"`
}

// EventResponse is the data payload for event create and update.
type EventResponse struct {
	Message string        `json:"message"`
	Event   *domain.Event `json:"event"`
}

// RegistrationResponse is the data payload for a successful event registration.
type RegistrationResponse struct {
	Message      string              `json:"message"`
	Registration *domain.Participant `json:"registration"`
}

// MessageResponse is the data payload for operations that only return a message.
type MessageResponse struct {
	Message string `json:"message"`
}

// EventController handles event CRUD and participant endpoints.
type EventController struct {
	Logger  *slog.Logger
	Service domain.EventService
}

// NewEventController creates an EventController with the given logger and service.
func NewEventController(logger *slog.Logger, svc domain.EventService) *EventController {
	return &EventController{
		Logger:  logger,
		Service: svc,
	}
}

func (c *EventController) internalError(w http.ResponseWriter, r *http.Request, err error) {
	c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
	helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "something went wrong")
}

// eventIDFromPath parses the {id} path segment. A non-numeric ID is a 400.
func eventIDFromPath(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid event ID")
		return 0, false
	}
	return id, true
}

func identityOrUnauthorized(w http.ResponseWriter, r *http.Request) (*domain.Identity, bool) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return nil, false
	}
	return identity, true
}

// Create godoc
// @Summary Create an event
// @Description Create a new event owned by the authenticated user. Date must be ISO 8601. Requires Bearer token.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body EventRequest true "Event data"
// @Success 201 {object} helpers.APIResponse "data contains message and the created event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request or validation_failed"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /v1/events [post]
func (c *EventController) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityOrUnauthorized(w, r)
	if !ok {
		return
	}
	var req EventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	date, err := helpers.ParseISO8601(req.Date)
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid event date")
		return
	}

	event := &domain.Event{
		Name:        req.Name,
		Date:        date,
		Location:    req.Location,
		Description: req.Description,
		OrganizerID: identity.ID,
	}
	if err := c.Service.CreateEvent(r.Context(), event); err != nil {
		c.internalError(w, r, err)
		return
	}

	helpers.WriteJSONSuccess(w, http.StatusCreated, EventResponse{
		Message: "Event created successfully",
		Event:   event,
	})
}

// List godoc
// @Summary List events
// @Description Returns all events with their organizer names, ordered by date. Public.
// @Tags events
// @Produce json
// @Success 200 {object} helpers.APIResponse "data contains the list of events"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /v1/events [get]
func (c *EventController) List(w http.ResponseWriter, r *http.Request) {
	events, err := c.Service.ListEvents(r.Context())
	if err != nil {
		c.internalError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, events)
}

// Get godoc
// @Summary Get an event
// @Description Returns a single event with its organizer name. Public.
// @Tags events
// @Produce json
// @Param id path int true "Event ID"
// @Success 200 {object} helpers.APIResponse "data contains the event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /v1/events/{id} [get]
func (c *EventController) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := eventIDFromPath(w, r)
	if !ok {
		return
	}
	event, err := c.Service.GetEvent(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "Event not found")
			return
		}
		c.internalError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// Update godoc
// @Summary Update an event
// @Description Replace the event's name, date, location, and description. Only the organizer may update. Requires Bearer token.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Param body body EventRequest true "Event data"
// @Success 200 {object} helpers.APIResponse "data contains message and the updated event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request or validation_failed"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /v1/events/{id} [put]
func (c *EventController) Update(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityOrUnauthorized(w, r)
	if !ok {
		return
	}
	id, ok := eventIDFromPath(w, r)
	if !ok {
		return
	}
	var req EventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	date, err := helpers.ParseISO8601(req.Date)
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid event date")
		return
	}

	event, err := c.Service.UpdateEvent(r.Context(), id, identity.ID, domain.EventUpdate{
		Name:        req.Name,
		Date:        date,
		Location:    req.Location,
		Description: req.Description,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "Event not found")
		case errors.Is(err, domain.ErrForbidden):
			helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeForbidden, "Only the organizer can update this event")
		default:
			c.internalError(w, r, err)
		}
		return
	}

	helpers.WriteJSONSuccess(w, http.StatusOK, EventResponse{
		Message: "Event updated successfully",
		Event:   event,
	})
}

// Delete godoc
// @Summary Delete an event
// @Description Delete the event and all of its participant registrations. Only the organizer may delete. Requires Bearer token.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 200 {object} helpers.APIResponse "data contains a confirmation message"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /v1/events/{id} [delete]
func (c *EventController) Delete(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityOrUnauthorized(w, r)
	if !ok {
		return
	}
	id, ok := eventIDFromPath(w, r)
	if !ok {
		return
	}
	if err := c.Service.DeleteEvent(r.Context(), id, identity.ID); err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "Event not found")
		case errors.Is(err, domain.ErrForbidden):
			helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeForbidden, "Only the organizer can delete this event")
		default:
			c.internalError(w, r, err)
		}
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, MessageResponse{Message: "Event deleted successfully"})
}

// RegisterParticipant godoc
// @Summary Register for an event
// @Description Register the authenticated user as a participant of the event. A user can register for an event only once. Sends a confirmation email on success. Requires Bearer token.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 201 {object} helpers.APIResponse "data contains message and the registration"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /v1/events/{id}/register [post]
func (c *EventController) RegisterParticipant(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityOrUnauthorized(w, r)
	if !ok {
		return
	}
	id, ok := eventIDFromPath(w, r)
	if !ok {
		return
	}
	participant, err := c.Service.RegisterParticipant(r.Context(), id, identity.ID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "Event not found")
		case errors.Is(err, domain.ErrAlreadyRegistered):
			helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeConflict, "You are already registered for this event")
		default:
			c.internalError(w, r, err)
		}
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, RegistrationResponse{
		Message:      "Successfully registered for event",
		Registration: participant,
	})
}

// ListParticipants godoc
// @Summary List event participants
// @Description Returns the participants of the event with their names and emails. Only the organizer may view the list. Requires Bearer token.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 200 {object} helpers.APIResponse "data contains the list of participants"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /v1/events/{id}/participants [get]
func (c *EventController) ListParticipants(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityOrUnauthorized(w, r)
	if !ok {
		return
	}
	id, ok := eventIDFromPath(w, r)
	if !ok {
		return
	}
	participants, err := c.Service.ListParticipants(r.Context(), id, identity.ID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "Event not found")
		case errors.Is(err, domain.ErrForbidden):
			helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeForbidden, "Only the organizer can view participants")
		default:
			c.internalError(w, r, err)
		}
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, participants)
}
