package http

import (
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/kunal2899/event-management-api/internal/delivery/http/controllers"
	"github.com/kunal2899/event-management-api/internal/delivery/http/middleware"
	"github.com/kunal2899/event-management-api/internal/domain"
)

// NewRouter initializes the HTTP router with all application routes
func NewRouter(
	userController *controllers.UserController,
	eventController *controllers.EventController,
	verifier domain.TokenVerifier,
	logger *slog.Logger,
) *http.ServeMux {
	mux := http.NewServeMux()
	auth := middleware.RequireAuth(verifier, logger)

	// Users
	mux.HandleFunc("POST /v1/users/register", userController.Register)
	mux.HandleFunc("POST /v1/users/login", userController.Login)
	mux.HandleFunc("GET /v1/users/me", auth(userController.GetMe))
	mux.HandleFunc("GET /v1/users/me/events", auth(userController.GetMyEvents))

	// Events
	mux.HandleFunc("POST /v1/events", auth(eventController.Create))
	mux.HandleFunc("GET /v1/events", eventController.List)
	mux.HandleFunc("GET /v1/events/{id}", eventController.Get)
	mux.HandleFunc("PUT /v1/events/{id}", auth(eventController.Update))
	mux.HandleFunc("DELETE /v1/events/{id}", auth(eventController.Delete))

	// Participants
	mux.HandleFunc("POST /v1/events/{id}/register", auth(eventController.RegisterParticipant))
	mux.HandleFunc("GET /v1/events/{id}/participants", auth(eventController.ListParticipants))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
