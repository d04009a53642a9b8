package session

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"github.com/sirupsen/logrus"
)

type userLookup interface {
	Lookup(ctx context.Context, token string) (*User, error)
}

// Middleware resolves "Authorization: Bearer <token>" into the request
// context. Requests without a valid token continue unauthenticated; the
// handlers decide whether that is an error.
func Middleware(api huma.API, store userLookup, logger logrus.FieldLogger) func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		token, ok := bearerToken(ctx.Header("Authorization"))
		if !ok {
			next(ctx)
			return
		}

		user, err := store.Lookup(ctx.Context(), token)
		if errors.Is(err, ErrSessionNotFound) {
			next(ctx)
			return
		}
		if err != nil {
			logger.WithError(err).Error("Session.Middleware.lookup")
			_ = huma.WriteErr(api, ctx, http.StatusServiceUnavailable, "session store unavailable")
			return
		}

		next(huma.WithValue(ctx, userKey{}, user))
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
