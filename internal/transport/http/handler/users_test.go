package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/phone-auth-api/internal/domain"
	jwtinfra "github.com/phone-auth-api/internal/infrastructure/jwt"
	"github.com/phone-auth-api/internal/transport/http/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockUserGetter struct{ mock.Mock }

func (m *mockUserGetter) Get(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if u, _ := args.Get(0).(*domain.User); u != nil {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func meRequest(claims *jwtinfra.Claims) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/v1/users/me", nil)
	if claims != nil {
		ctx := context.WithValue(req.Context(), middleware.ClaimsKey, claims)
		req = req.WithContext(ctx)
	}
	return req
}

func TestMe_NoClaims_Unauthorized(t *testing.T) {
	h := NewUserHandler(&mockUserGetter{}, false)
	rr := httptest.NewRecorder()
	h.Me(rr, meRequest(nil))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestMe_ReturnsProfile(t *testing.T) {
	ug := &mockUserGetter{}
	ug.On("Get", mock.Anything, "u1").Return(&domain.User{
		UserID: "u1", Phone: "+15551234567", DisplayName: "Ada Lovelace", Role: domain.RoleUser,
	}, nil)

	h := NewUserHandler(ug, false)
	rr := httptest.NewRecorder()
	h.Me(rr, meRequest(&jwtinfra.Claims{UserID: "u1", Role: domain.RoleUser}))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Ada Lovelace")
}

func TestMe_UserGone_Returns404(t *testing.T) {
	ug := &mockUserGetter{}
	ug.On("Get", mock.Anything, "u1").Return(nil, domain.ErrNotFound)

	h := NewUserHandler(ug, false)
	rr := httptest.NewRecorder()
	h.Me(rr, meRequest(&jwtinfra.Claims{UserID: "u1"}))

	assert.Equal(t, http.StatusNotFound, rr.Code)
}
