package applications

import (
	"encoding/json"
	"net/http"
	"strconv"

	"placementhub/internal/contextutils"
	"placementhub/internal/response"
	"placementhub/internal/services"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Controller handles application lifecycle endpoints.
type Controller struct {
	applications services.ApplicationService
	rb           *response.Builder
	logger       *zap.Logger
}

// NewController creates a new applications controller
func NewController(applications services.ApplicationService, rb *response.Builder, logger *zap.Logger) *Controller {
	return &Controller{applications: applications, rb: rb, logger: logger}
}

// Apply handles POST /api/applications/apply.
func (c *Controller) Apply(w http.ResponseWriter, r *http.Request) {
	caller, ok := contextutils.Caller(r.Context())
	if !ok {
		c.rb.WriteError(w, r, services.NewUnauthorizedError("Authentication required"))
		return
	}

	var req services.ApplyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.rb.WriteError(w, r, services.NewValidationError("invalid request body", err))
		return
	}

	app, err := c.applications.Apply(r.Context(), caller, req)
	if err != nil {
		c.rb.WriteError(w, r, err)
		return
	}
	c.rb.WriteCreated(w, r, app)
}

// ListMine handles GET /api/applications/my-applications.
func (c *Controller) ListMine(w http.ResponseWriter, r *http.Request) {
	caller, ok := contextutils.Caller(r.Context())
	if !ok {
		c.rb.WriteError(w, r, services.NewUnauthorizedError("Authentication required"))
		return
	}

	apps, err := c.applications.ListMine(r.Context(), caller)
	if err != nil {
		c.rb.WriteError(w, r, err)
		return
	}
	c.rb.WriteSuccess(w, r, apps)
}

// ListForCompany handles GET /api/applications/company/all.
func (c *Controller) ListForCompany(w http.ResponseWriter, r *http.Request) {
	caller, ok := contextutils.Caller(r.Context())
	if !ok {
		c.rb.WriteError(w, r, services.NewUnauthorizedError("Authentication required"))
		return
	}

	apps, err := c.applications.ListForCompany(r.Context(), caller)
	if err != nil {
		c.rb.WriteError(w, r, err)
		return
	}
	c.rb.WriteSuccess(w, r, apps)
}

// ListForJob handles GET /api/applications/job/{jobId}.
func (c *Controller) ListForJob(w http.ResponseWriter, r *http.Request) {
	caller, ok := contextutils.Caller(r.Context())
	if !ok {
		c.rb.WriteError(w, r, services.NewUnauthorizedError("Authentication required"))
		return
	}

	jobID, err := strconv.ParseInt(chi.URLParam(r, "jobId"), 10, 64)
	if err != nil {
		c.rb.WriteError(w, r, services.NewValidationError("invalid job id", err))
		return
	}

	apps, err := c.applications.ListForJob(r.Context(), caller, jobID)
	if err != nil {
		c.rb.WriteError(w, r, err)
		return
	}
	c.rb.WriteSuccess(w, r, apps)
}

// UpdateStatus handles PUT /api/applications/{id}/status.
func (c *Controller) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	caller, ok := contextutils.Caller(r.Context())
	if !ok {
		c.rb.WriteError(w, r, services.NewUnauthorizedError("Authentication required"))
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		c.rb.WriteError(w, r, services.NewValidationError("invalid application id", err))
		return
	}

	var req services.UpdateApplicationStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.rb.WriteError(w, r, services.NewValidationError("invalid request body", err))
		return
	}

	app, err := c.applications.UpdateStatus(r.Context(), caller, id, req)
	if err != nil {
		c.rb.WriteError(w, r, err)
		return
	}
	c.rb.WriteSuccess(w, r, app)
}
