package service

import (
	"context"
	"fmt"
	"log/slog"

	"tableside/dining-svc/internal/domain"
	"tableside/dining-svc/internal/identity"

	"github.com/google/uuid"
)

type UserService struct {
	users  UserRepository
	marker MessageMarker
	clock  Clock
	logger *slog.Logger
}

func NewUserService(repos Repositories, marker MessageMarker, clock Clock, logger *slog.Logger) *UserService {
	return &UserService{users: repos.Users, marker: marker, clock: clock, logger: logger}
}

func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.users.ListUsers(ctx)
}

func (s *UserService) Get(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return s.users.GetUser(ctx, id)
}

// ApplyIdentityEvent mirrors one verified identity-provider delivery into the
// users table. It reports false when the delivery was already applied.
func (s *UserService) ApplyIdentityEvent(ctx context.Context, messageID string, event identity.Event) (bool, error) {
	if s.marker != nil && messageID != "" {
		seen, err := s.marker.Seen(ctx, messageID)
		if err != nil {
			s.logger.WarnContext(ctx, "webhook dedupe lookup failed", "svix_id", messageID, "error", err)
		} else if seen {
			return false, nil
		}
	}

	switch event.Type {
	case identity.UserCreated, identity.UserUpdated:
		if err := s.upsert(ctx, event.Data); err != nil {
			return false, err
		}
	case identity.UserDeleted:
		err := s.users.DeleteUserByExternalID(ctx, event.Data.ID)
		if err != nil && !isNotFound(err) {
			return false, fmt.Errorf("delete user %s: %w", event.Data.ID, err)
		}
	default:
		s.logger.DebugContext(ctx, "ignoring identity event", "type", event.Type)
		return false, nil
	}

	if s.marker != nil && messageID != "" {
		if err := s.marker.Mark(ctx, messageID); err != nil {
			s.logger.WarnContext(ctx, "webhook dedupe mark failed", "svix_id", messageID, "error", err)
		}
	}
	return true, nil
}

func (s *UserService) upsert(ctx context.Context, data identity.UserData) error {
	username, firstName, lastName := data.Profile()
	now := s.clock.Now()
	user := &domain.User{
		ID:         uuid.New(),
		ExternalID: data.ID,
		Email:      data.PrimaryEmail(),
		Username:   username,
		FirstName:  firstName,
		LastName:   lastName,
		AvatarURL:  data.ImageURL,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.users.UpsertUser(ctx, user); err != nil {
		return fmt.Errorf("upsert user %s: %w", data.ID, err)
	}
	return nil
}
