package session

import (
	"context"

	"github.com/carson-networks/bytebank-server/internal/entry"
)

type userKey struct{}

func WithUser(ctx context.Context, user *User) context.Context {
	return context.WithValue(ctx, userKey{}, user)
}

// UserFrom returns the authenticated user of the request, if any.
func UserFrom(ctx context.Context) (*User, bool) {
	user, ok := ctx.Value(userKey{}).(*User)
	return user, ok && user != nil
}

// ContextProvider exposes the request's user to the entry workflow.
type ContextProvider struct{}

func (ContextProvider) CurrentUser(ctx context.Context) *entry.Session {
	user, ok := UserFrom(ctx)
	if !ok {
		return nil
	}
	return &entry.Session{UserID: user.ID}
}
