package students

import (
	"encoding/json"
	"net/http"

	"placementhub/internal/contextutils"
	"placementhub/internal/response"
	"placementhub/internal/services"

	"go.uber.org/zap"
)

// Controller handles student profile endpoints.
type Controller struct {
	students services.StudentService
	rb       *response.Builder
	logger   *zap.Logger
}

// NewController creates a new students controller
func NewController(students services.StudentService, rb *response.Builder, logger *zap.Logger) *Controller {
	return &Controller{students: students, rb: rb, logger: logger}
}

// GetProfile handles GET /api/students/profile.
func (c *Controller) GetProfile(w http.ResponseWriter, r *http.Request) {
	caller, ok := contextutils.Caller(r.Context())
	if !ok {
		c.rb.WriteError(w, r, services.NewUnauthorizedError("Authentication required"))
		return
	}

	profile, err := c.students.GetProfile(r.Context(), caller)
	if err != nil {
		c.rb.WriteError(w, r, err)
		return
	}
	c.rb.WriteSuccess(w, r, profile)
}

// UpdateProfile handles PUT /api/students/profile.
func (c *Controller) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	caller, ok := contextutils.Caller(r.Context())
	if !ok {
		c.rb.WriteError(w, r, services.NewUnauthorizedError("Authentication required"))
		return
	}

	var req services.UpdateStudentProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.rb.WriteError(w, r, services.NewValidationError("invalid request body", err))
		return
	}

	profile, err := c.students.UpdateProfile(r.Context(), caller, req)
	if err != nil {
		c.rb.WriteError(w, r, err)
		return
	}
	c.rb.WriteSuccess(w, r, profile)
}
