package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/render"
)

// ownerHeader carries the user identity set by the authenticating proxy.
const ownerHeader = "X-User-ID"

type ctxKey struct{}

// requireOwner rejects requests that carry no owner identity.
func requireOwner(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		owner := strings.TrimSpace(r.Header.Get(ownerHeader))
		if owner == "" {
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, unauthorizedResponse)
			return
		}

		ctx := context.WithValue(r.Context(), ctxKey{}, owner)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func ownerFromContext(ctx context.Context) string {
	owner, _ := ctx.Value(ctxKey{}).(string)
	return owner
}
