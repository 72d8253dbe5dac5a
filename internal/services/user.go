package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/kunal2899/event-management-api/internal/domain"
)

// tokenExpiry is how long an issued session credential stays valid.
const tokenExpiry = 24 * time.Hour

type userService struct {
	userRepo        domain.UserRepository
	participantRepo domain.ParticipantRepository
	hasher          domain.PasswordHasher
	tokenIssuer     domain.TokenIssuer
	emailService    domain.EmailService
	logger          *slog.Logger
}

// NewUserService creates a UserService with the given repositories and auth ports.
func NewUserService(
	userRepo domain.UserRepository,
	participantRepo domain.ParticipantRepository,
	hasher domain.PasswordHasher,
	tokenIssuer domain.TokenIssuer,
	emailService domain.EmailService,
	logger *slog.Logger,
) domain.UserService {
	return &userService{
		userRepo:        userRepo,
		participantRepo: participantRepo,
		hasher:          hasher,
		tokenIssuer:     tokenIssuer,
		emailService:    emailService,
		logger:          logger,
	}
}

// Register hashes the password, persists the user, and sends a best-effort
// welcome email. A duplicate email surfaces as domain.ErrDuplicateEmail.
func (s *userService) Register(ctx context.Context, name, email, password, address string) (*domain.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now()
	user := domain.NewUser(strings.TrimSpace(name), email, hash, strings.TrimSpace(address), now, now)
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return nil, domain.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	if s.emailService != nil {
		data := &domain.WelcomeEmailData{Name: user.Name, Email: user.Email}
		if err := s.emailService.SendWelcomeMessage(ctx, data); err != nil {
			s.logger.WarnContext(ctx, "welcome email not sent", "email", user.Email, "err", err)
		}
	}
	return user, nil
}

// Login verifies the credentials and issues a signed token embedding the
// user's identity. Unknown email and wrong password are indistinguishable to
// the caller.
func (s *userService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.TrimSpace(strings.ToLower(email)))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("get user: %w", err)
	}
	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokenIssuer.Issue(user, tokenExpiry)
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}
	return token, user, nil
}

func (s *userService) GetProfile(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

func (s *userService) ListRegisteredEvents(ctx context.Context, userID int64) ([]*domain.RegisteredEvent, error) {
	events, err := s.participantRepo.ListEventsByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list registered events: %w", err)
	}
	if events == nil {
		events = []*domain.RegisteredEvent{}
	}
	return events, nil
}
