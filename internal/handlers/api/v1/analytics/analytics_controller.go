package analytics

import (
	"net/http"

	"placementhub/internal/contextutils"
	"placementhub/internal/response"
	"placementhub/internal/services"

	"go.uber.org/zap"
)

// Controller serves role-scoped dashboard rollups.
type Controller struct {
	stats  services.StatsService
	rb     *response.Builder
	logger *zap.Logger
}

// NewController creates a new analytics controller
func NewController(stats services.StatsService, rb *response.Builder, logger *zap.Logger) *Controller {
	return &Controller{stats: stats, rb: rb, logger: logger}
}

// PlacementStats handles GET /api/analytics/stats.
func (c *Controller) PlacementStats(w http.ResponseWriter, r *http.Request) {
	stats, err := c.stats.PlacementStats(r.Context())
	if err != nil {
		c.rb.WriteError(w, r, err)
		return
	}
	c.rb.WriteSuccess(w, r, stats)
}

// StudentDashboard handles GET /api/analytics/student.
func (c *Controller) StudentDashboard(w http.ResponseWriter, r *http.Request) {
	caller, ok := contextutils.Caller(r.Context())
	if !ok {
		c.rb.WriteError(w, r, services.NewUnauthorizedError("Authentication required"))
		return
	}

	dashboard, err := c.stats.StudentDashboard(r.Context(), caller)
	if err != nil {
		c.rb.WriteError(w, r, err)
		return
	}
	c.rb.WriteSuccess(w, r, dashboard)
}

// CompanyDashboard handles GET /api/analytics/company.
func (c *Controller) CompanyDashboard(w http.ResponseWriter, r *http.Request) {
	caller, ok := contextutils.Caller(r.Context())
	if !ok {
		c.rb.WriteError(w, r, services.NewUnauthorizedError("Authentication required"))
		return
	}

	dashboard, err := c.stats.CompanyDashboard(r.Context(), caller)
	if err != nil {
		c.rb.WriteError(w, r, err)
		return
	}
	c.rb.WriteSuccess(w, r, dashboard)
}
