package response

import (
	"encoding/json"
	"net/http"
	"time"

	"placementhub/internal/contextutils"
	"placementhub/internal/services"

	"go.uber.org/zap"
)

// Envelope is the JSON shape of every API response.
type Envelope struct {
	Success   bool        `json:"success"`
	Data      interface{} `json:"data,omitempty"`
	Error     *ErrorBody  `json:"error,omitempty"`
	RequestID string      `json:"request_id,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// ErrorBody carries the client-visible error details.
type ErrorBody struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// Builder writes enveloped JSON responses and maps service errors to
// HTTP status codes.
type Builder struct {
	logger *zap.Logger
}

// NewBuilder creates a response builder
func NewBuilder(logger *zap.Logger) *Builder {
	return &Builder{logger: logger}
}

// WriteSuccess writes a 200 response with data.
func (b *Builder) WriteSuccess(w http.ResponseWriter, r *http.Request, data interface{}) {
	b.write(w, r, http.StatusOK, Envelope{Success: true, Data: data})
}

// WriteCreated writes a 201 response with data.
func (b *Builder) WriteCreated(w http.ResponseWriter, r *http.Request, data interface{}) {
	b.write(w, r, http.StatusCreated, Envelope{Success: true, Data: data})
}

// WriteError maps err to its status code and writes the error envelope.
// Non-service errors are masked as internal errors; their causes are
// logged, never sent to the client.
func (b *Builder) WriteError(w http.ResponseWriter, r *http.Request, err error) {
	serviceErr := services.GetServiceError(err)

	status := serviceErr.GetStatusCode()
	if status >= http.StatusInternalServerError {
		contextutils.Logger(r.Context(), b.logger).Error("Request failed",
			zap.String("type", serviceErr.Type),
			zap.Error(err),
		)
	}

	b.write(w, r, status, Envelope{
		Success: false,
		Error: &ErrorBody{
			Type:    serviceErr.Type,
			Message: serviceErr.Message,
			Code:    serviceErr.Code,
		},
	})
}

func (b *Builder) write(w http.ResponseWriter, r *http.Request, status int, env Envelope) {
	env.RequestID = contextutils.RequestID(r.Context())
	env.Timestamp = time.Now().UTC()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(env); err != nil {
		b.logger.Error("Failed to encode response", zap.Error(err))
	}
}
