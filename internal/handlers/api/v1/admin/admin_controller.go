package admin

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

// Controller handles account administration and reporting endpoints.
type Controller struct {
	admin  services.AdminService
	stats  services.StatsService
	rb     *response.Builder
	logger *zap.Logger
}

// NewController creates a new admin controller
func NewController(admin services.AdminService, stats services.StatsService, rb *response.Builder, logger *zap.Logger) *Controller {
	return &Controller{admin: admin, stats: stats, rb: rb, logger: logger}
}

// ListUsers handles GET /api/admin/users.
func (c *Controller) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := c.admin.ListUsers(r.Context())
	if err != nil {
		c.rb.WriteError(w, r, err)
		return
	}
	c.rb.WriteSuccess(w, r, users)
}

// UpdateUserStatus handles PUT /api/admin/users/{id}/status.
func (c *Controller) UpdateUserStatus(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		c.rb.WriteError(w, r, services.NewValidationError("invalid user id", err))
		return
	}

	var req services.UpdateUserStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.rb.WriteError(w, r, services.NewValidationError("invalid request body", err))
		return
	}

	user, err := c.admin.UpdateUserStatus(r.Context(), id, req)
	if err != nil {
		c.rb.WriteError(w, r, err)
		return
	}
	c.rb.WriteSuccess(w, r, user)
}

// DeleteUser handles DELETE /api/admin/users/{id}.
func (c *Controller) DeleteUser(w http.ResponseWriter, r *http.Request) {
	caller, ok := contextutils.Caller(r.Context())
	if !ok {
		c.rb.WriteError(w, r, services.NewUnauthorizedError("Authentication required"))
		return
	}

	id, err := idParam(r)
	if err != nil {
		c.rb.WriteError(w, r, services.NewValidationError("invalid user id", err))
		return
	}

	if err := c.admin.DeleteUser(r.Context(), caller, id); err != nil {
		c.rb.WriteError(w, r, err)
		return
	}
	c.rb.WriteSuccess(w, r, map[string]string{"message": "User deleted successfully"})
}

// Stats handles GET /api/admin/stats.
func (c *Controller) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := c.stats.PlacementStats(r.Context())
	if err != nil {
		c.rb.WriteError(w, r, err)
		return
	}
	c.rb.WriteSuccess(w, r, stats)
}

// PlacementReport handles GET /api/admin/reports/placement.
func (c *Controller) PlacementReport(w http.ResponseWriter, r *http.Request) {
	rows, err := c.stats.PlacementReport(r.Context())
	if err != nil {
		c.rb.WriteError(w, r, err)
		return
	}
	c.rb.WriteSuccess(w, r, rows)
}

func idParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}
