package domain

import (
	"context"
	"time"
)

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// WelcomeEmailData holds data for the welcome email sent after signup.
type WelcomeEmailData struct {
	Name  string
	Email string
}

// RegistrationConfirmationEmailData holds data for the event registration
// confirmation email.
type RegistrationConfirmationEmailData struct {
	Name          string
	Email         string
	EventName     string
	EventDate     time.Time
	EventLocation string
}

// EmailService defines the contract for sending domain-level emails.
// Delivery is best-effort: callers log failures and never fail the primary
// operation on a send error.
type EmailService interface {
	SendWelcomeMessage(ctx context.Context, data *WelcomeEmailData) error
	SendRegistrationConfirmation(ctx context.Context, data *RegistrationConfirmationEmailData) error
}
