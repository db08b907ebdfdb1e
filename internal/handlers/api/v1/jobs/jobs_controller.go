package jobs

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

// Controller handles job posting CRUD.
type Controller struct {
	jobs   services.JobService
	rb     *response.Builder
	logger *zap.Logger
}

// NewController creates a new jobs controller
func NewController(jobs services.JobService, rb *response.Builder, logger *zap.Logger) *Controller {
	return &Controller{jobs: jobs, rb: rb, logger: logger}
}

// Create handles POST /api/jobs.
func (c *Controller) Create(w http.ResponseWriter, r *http.Request) {
	caller, ok := contextutils.Caller(r.Context())
	if !ok {
		c.rb.WriteError(w, r, services.NewUnauthorizedError("Authentication required"))
		return
	}

	var req services.CreateJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.rb.WriteError(w, r, services.NewValidationError("invalid request body", err))
		return
	}

	job, err := c.jobs.Create(r.Context(), caller, req)
	if err != nil {
		c.rb.WriteError(w, r, err)
		return
	}
	c.rb.WriteCreated(w, r, job)
}

// List handles GET /api/jobs.
func (c *Controller) List(w http.ResponseWriter, r *http.Request) {
	jobs, err := c.jobs.ListVisible(r.Context())
	if err != nil {
		c.rb.WriteError(w, r, err)
		return
	}
	c.rb.WriteSuccess(w, r, jobs)
}

// ListMine handles GET /api/jobs/my-jobs.
func (c *Controller) ListMine(w http.ResponseWriter, r *http.Request) {
	caller, ok := contextutils.Caller(r.Context())
	if !ok {
		c.rb.WriteError(w, r, services.NewUnauthorizedError("Authentication required"))
		return
	}

	jobs, err := c.jobs.ListMine(r.Context(), caller)
	if err != nil {
		c.rb.WriteError(w, r, err)
		return
	}
	c.rb.WriteSuccess(w, r, jobs)
}

// Get handles GET /api/jobs/{id}.
func (c *Controller) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		c.rb.WriteError(w, r, services.NewValidationError("invalid job id", err))
		return
	}

	job, err := c.jobs.Get(r.Context(), id)
	if err != nil {
		c.rb.WriteError(w, r, err)
		return
	}
	c.rb.WriteSuccess(w, r, job)
}

// Update handles PUT /api/jobs/{id}.
func (c *Controller) Update(w http.ResponseWriter, r *http.Request) {
	caller, ok := contextutils.Caller(r.Context())
	if !ok {
		c.rb.WriteError(w, r, services.NewUnauthorizedError("Authentication required"))
		return
	}

	id, err := idParam(r)
	if err != nil {
		c.rb.WriteError(w, r, services.NewValidationError("invalid job id", err))
		return
	}

	var req services.UpdateJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.rb.WriteError(w, r, services.NewValidationError("invalid request body", err))
		return
	}

	job, err := c.jobs.Update(r.Context(), caller, id, req)
	if err != nil {
		c.rb.WriteError(w, r, err)
		return
	}
	c.rb.WriteSuccess(w, r, job)
}

// Delete handles DELETE /api/jobs/{id}.
func (c *Controller) Delete(w http.ResponseWriter, r *http.Request) {
	caller, ok := contextutils.Caller(r.Context())
	if !ok {
		c.rb.WriteError(w, r, services.NewUnauthorizedError("Authentication required"))
		return
	}

	id, err := idParam(r)
	if err != nil {
		c.rb.WriteError(w, r, services.NewValidationError("invalid job id", err))
		return
	}

	if err := c.jobs.Delete(r.Context(), caller, id); err != nil {
		c.rb.WriteError(w, r, err)
		return
	}
	c.rb.WriteSuccess(w, r, map[string]string{"message": "Job deleted successfully"})
}

func idParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}
