package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"placementhub/internal/contextutils"
	"placementhub/internal/models"
	"placementhub/internal/response"
	"placementhub/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeAuthService struct {
	claims *services.TokenClaims
}

func (f *fakeAuthService) Register(context.Context, services.RegisterRequest) (*services.AuthResponse, error) {
	return nil, nil
}

func (f *fakeAuthService) Login(context.Context, services.LoginRequest) (*services.AuthResponse, error) {
	return nil, nil
}

func (f *fakeAuthService) VerifyToken(token string) (*services.TokenClaims, error) {
	if f.claims == nil {
		return nil, services.NewUnauthorizedError("Invalid or expired token")
	}
	return f.claims, nil
}

func authChain(auth services.AuthService, next http.Handler) http.Handler {
	rb := response.NewBuilder(zap.NewNop())
	return Authenticate(auth, rb)(next)
}

func TestAuthenticateMissingHeader(t *testing.T) {
	handler := authChain(&fakeAuthService{}, http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("handler should not run")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/jobs", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticateMalformedHeader(t *testing.T) {
	handler := authChain(&fakeAuthService{}, http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("handler should not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/jobs", nil)
	req.Header.Set("Authorization", "Basic abc123")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticateInvalidToken(t *testing.T) {
	handler := authChain(&fakeAuthService{}, http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("handler should not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/jobs", nil)
	req.Header.Set("Authorization", "Bearer bad-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticateAttachesCaller(t *testing.T) {
	auth := &fakeAuthService{claims: &services.TokenClaims{UserID: 7, Role: models.RoleStudent}}

	var got services.Caller
	handler := authChain(auth, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		caller, ok := contextutils.Caller(r.Context())
		require.True(t, ok)
		got = caller
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/jobs", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(7), got.UserID)
	assert.Equal(t, models.RoleStudent, got.Role)
}

func TestRequireRoleRefusesWrongRole(t *testing.T) {
	rb := response.NewBuilder(zap.NewNop())
	handler := RequireRole(rb, models.RoleAdmin)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("handler should not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/admin/users", nil)
	req = req.WithContext(contextutils.WithCaller(req.Context(), services.Caller{UserID: 1, Role: models.RoleStudent}))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireRoleAllowsListedRoles(t *testing.T) {
	rb := response.NewBuilder(zap.NewNop())
	handler := RequireRole(rb, models.RoleCompany, models.RoleAdmin)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for _, role := range []string{models.RoleCompany, models.RoleAdmin} {
		req := httptest.NewRequest(http.MethodGet, "/api/applications/company/all", nil)
		req = req.WithContext(contextutils.WithCaller(req.Context(), services.Caller{UserID: 1, Role: role}))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestRequireRoleWithoutCallerIsUnauthorized(t *testing.T) {
	rb := response.NewBuilder(zap.NewNop())
	handler := RequireRole(rb, models.RoleAdmin)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("handler should not run")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/admin/users", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
