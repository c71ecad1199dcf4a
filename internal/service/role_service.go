package service

import (
	"context"
	"errors"
	"log/slog"

	"waterworks-backend/internal/domain"
	"waterworks-backend/internal/ports"
	"waterworks-backend/internal/repository"
)

// RoleService is the single place roles are resolved. Every caller goes
// through it instead of inspecting accounts ad hoc.
type RoleService struct {
	Users  ports.UserStore
	Logger *slog.Logger
}

// Role returns the stored role for an account. A missing account or a store
// failure resolves to the least-privileged user role rather than an error;
// access checks degrade, they do not break.
func (s RoleService) Role(ctx context.Context, userID int64) domain.UserRole {
	account, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			s.Logger.Warn("role lookup failed, defaulting to user", "user", userID, "err", err)
		}
		return domain.RoleUser
	}
	switch account.Role {
	case domain.RoleAdmin, domain.RoleReader, domain.RoleUser:
		return account.Role
	}
	return domain.RoleUser
}

func (s RoleService) IsAdmin(ctx context.Context, userID int64) bool {
	if userID <= 0 {
		return false
	}
	return s.Role(ctx, userID) == domain.RoleAdmin
}

func (s RoleService) IsReader(ctx context.Context, userID int64) bool {
	if userID <= 0 {
		return false
	}
	return s.Role(ctx, userID) == domain.RoleReader
}
