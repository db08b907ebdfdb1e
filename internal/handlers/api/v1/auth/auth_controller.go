package auth

import (
	"encoding/json"
	"net/http"

	"placementhub/internal/response"
	"placementhub/internal/services"

	"go.uber.org/zap"
)

// Controller handles registration and login.
type Controller struct {
	auth   services.AuthService
	rb     *response.Builder
	logger *zap.Logger
}

// NewController creates a new auth controller
func NewController(auth services.AuthService, rb *response.Builder, logger *zap.Logger) *Controller {
	return &Controller{auth: auth, rb: rb, logger: logger}
}

// Register handles POST /api/auth/register.
func (c *Controller) Register(w http.ResponseWriter, r *http.Request) {
	var req services.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.rb.WriteError(w, r, services.NewValidationError("invalid request body", err))
		return
	}

	resp, err := c.auth.Register(r.Context(), req)
	if err != nil {
		c.rb.WriteError(w, r, err)
		return
	}
	c.rb.WriteCreated(w, r, resp)
}

// Login handles POST /api/auth/login.
func (c *Controller) Login(w http.ResponseWriter, r *http.Request) {
	var req services.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.rb.WriteError(w, r, services.NewValidationError("invalid request body", err))
		return
	}

	resp, err := c.auth.Login(r.Context(), req)
	if err != nil {
		c.rb.WriteError(w, r, err)
		return
	}
	c.rb.WriteSuccess(w, r, resp)
}
