package authctx

import (
	"context"
	"strconv"

	"waterworks-backend/internal/domain"
)

type contextKey string

const userContextKey contextKey = "currentUser"

type CurrentUser struct {
	ID    int64
	Email string
	Name  string
	Role  domain.UserRole
}

// Actor converts the session user into the principal stamped onto records.
func (u CurrentUser) Actor() domain.Actor {
	return domain.Actor{
		UID:         strconv.FormatInt(u.ID, 10),
		Email:       u.Email,
		DisplayName: u.Name,
	}
}

func WithCurrentUser(ctx context.Context, user CurrentUser) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

func FromContext(ctx context.Context) *CurrentUser {
	val, ok := ctx.Value(userContextKey).(CurrentUser)
	if !ok {
		return nil
	}
	return &val
}
