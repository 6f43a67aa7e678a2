package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/upgrad/stackoverflow/internal/core/domain"
	"github.com/upgrad/stackoverflow/internal/core/ports"
)

type AdminService struct {
	guard *Guard
	users ports.UserRepository
	log   zerolog.Logger
}

func NewAdminService(guard *Guard, users ports.UserRepository, log zerolog.Logger) *AdminService {
	return &AdminService{guard: guard, users: users, log: log}
}

// DeleteUser removes the user with userID. Admin only; the role check runs
// before the target is looked up.
func (s *AdminService) DeleteUser(ctx context.Context, token, userID string) (*domain.User, error) {
	p, err := s.guard.Principal(ctx, token, ActionDeleteUser)
	if err != nil {
		return nil, err
	}
	if err := s.guard.RequireAdmin(p, ActionDeleteUser); err != nil {
		return nil, err
	}

	target, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("delete user: find: %w", err)
	}

	deleted, err := s.users.Delete(ctx, target)
	if err != nil {
		return nil, fmt.Errorf("delete user: %w", err)
	}

	s.log.Warn().Str("user_id", deleted.ID).Str("admin_id", p.ID).Msg("user deleted")
	return deleted, nil
}
