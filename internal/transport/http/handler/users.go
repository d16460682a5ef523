package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/phone-auth-api/internal/domain"
	"github.com/phone-auth-api/internal/transport/http/middleware"
)

type userGetter interface {
	Get(ctx context.Context, userID string) (*domain.User, error)
}

// UserHandler serves the authenticated profile endpoint.
type UserHandler struct {
	users       userGetter
	diagnostics bool
}

func NewUserHandler(users userGetter, diagnostics bool) *UserHandler {
	return &UserHandler{users: users, diagnostics: diagnostics}
}

// Me returns the profile of the token's subject.
// GET /v1/users/me
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	u, err := h.users.Get(r.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "User not found")
			return
		}
		httpError(w, err, h.diagnostics)
		return
	}
	writeJSON(w, http.StatusOK, u)
}
