package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"placementhub/internal/contextutils"
	"placementhub/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) Envelope {
	t.Helper()
	var env Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func TestWriteSuccessEnvelope(t *testing.T) {
	rb := NewBuilder(zap.NewNop())
	req := httptest.NewRequest(http.MethodGet, "/api/jobs", nil)
	req = req.WithContext(contextutils.WithRequestID(req.Context(), "req-123"))
	rec := httptest.NewRecorder()

	rb.WriteSuccess(rec, req, map[string]string{"hello": "world"})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	env := decode(t, rec)
	assert.True(t, env.Success)
	assert.Nil(t, env.Error)
	assert.Equal(t, "req-123", env.RequestID)
	assert.False(t, env.Timestamp.IsZero())
}

func TestWriteCreatedStatus(t *testing.T) {
	rb := NewBuilder(zap.NewNop())
	rec := httptest.NewRecorder()

	rb.WriteCreated(rec, httptest.NewRequest(http.MethodPost, "/api/jobs", nil), nil)

	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestWriteErrorMapsServiceErrors(t *testing.T) {
	cases := []struct {
		err      error
		status   int
		wantType string
	}{
		{services.NewValidationError("bad input", nil), http.StatusBadRequest, "VALIDATION_ERROR"},
		{services.NewUnauthorizedError("no token"), http.StatusUnauthorized, "UNAUTHORIZED"},
		{services.NewForbiddenError("not yours"), http.StatusForbidden, "FORBIDDEN"},
		{services.NewNotFoundError("missing"), http.StatusNotFound, "NOT_FOUND"},
		{services.NewConflictError("duplicate", "ALREADY_APPLIED"), http.StatusConflict, "CONFLICT"},
		{services.NewInvalidTransitionError("HIRED", "REJECTED"), http.StatusUnprocessableEntity, "INVALID_TRANSITION"},
	}

	rb := NewBuilder(zap.NewNop())
	for _, tc := range cases {
		t.Run(tc.wantType, func(t *testing.T) {
			rec := httptest.NewRecorder()
			rb.WriteError(rec, httptest.NewRequest(http.MethodGet, "/", nil), tc.err)

			assert.Equal(t, tc.status, rec.Code)
			env := decode(t, rec)
			assert.False(t, env.Success)
			require.NotNil(t, env.Error)
			assert.Equal(t, tc.wantType, env.Error.Type)
		})
	}
}

func TestWriteErrorMasksUnknownErrors(t *testing.T) {
	rb := NewBuilder(zap.NewNop())
	rec := httptest.NewRecorder()

	rb.WriteError(rec, httptest.NewRequest(http.MethodGet, "/", nil), errors.New("pq: connection reset"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	env := decode(t, rec)
	require.NotNil(t, env.Error)
	assert.Equal(t, "INTERNAL_ERROR", env.Error.Type)
	assert.Equal(t, "An unexpected error occurred", env.Error.Message)
	assert.NotContains(t, rec.Body.String(), "connection reset")
}
