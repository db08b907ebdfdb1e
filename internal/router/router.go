package router

import (
	"context"
	"net/http"
	"time"

	"placementhub/internal/cache"
	"placementhub/internal/config"
	"placementhub/internal/database"
	"placementhub/internal/handlers/api/v1/admin"
	"placementhub/internal/handlers/api/v1/analytics"
	"placementhub/internal/handlers/api/v1/applications"
	"placementhub/internal/handlers/api/v1/auth"
	"placementhub/internal/handlers/api/v1/jobs"
	"placementhub/internal/handlers/api/v1/students"
	"placementhub/internal/handlers/api/v1/uploads"
	"placementhub/internal/middleware"
	"placementhub/internal/models"
	"placementhub/internal/response"
	"placementhub/internal/services"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Dependencies carries everything the router needs to assemble the API.
type Dependencies struct {
	Config   *config.Config
	Services *services.ServiceCollection
	DB       *database.Manager
	Cache    cache.Cache
	Logger   *zap.Logger
}

// New assembles the HTTP handler: middleware chain, public auth routes,
// and the authenticated API surface with per-route role guards.
func New(deps Dependencies) http.Handler {
	rb := response.NewBuilder(deps.Logger)

	authController := auth.NewController(deps.Services.Auth, rb, deps.Logger)
	jobsController := jobs.NewController(deps.Services.Jobs, rb, deps.Logger)
	appsController := applications.NewController(deps.Services.Applications, rb, deps.Logger)
	studentsController := students.NewController(deps.Services.Students, rb, deps.Logger)
	uploadsController := uploads.NewController(deps.Services.Students, deps.Config.Cloudinary.MaxFileSize, rb, deps.Logger)
	adminController := admin.NewController(deps.Services.Admin, deps.Services.Stats, rb, deps.Logger)
	analyticsController := analytics.NewController(deps.Services.Stats, rb, deps.Logger)

	authenticate := middleware.Authenticate(deps.Services.Auth, rb)
	studentOnly := middleware.RequireRole(rb, models.RoleStudent)
	companyOrAdmin := middleware.RequireRole(rb, models.RoleCompany, models.RoleAdmin)
	adminOnly := middleware.RequireRole(rb, models.RoleAdmin)

	r := chi.NewRouter()
	r.Use(middleware.RequestID(deps.Logger))
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.Recovery(rb, deps.Logger))

	r.Get("/health", healthHandler(deps, rb))

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authController.Register)
			r.Post("/login", authController.Login)
		})

		r.Group(func(r chi.Router) {
			r.Use(authenticate)

			r.Route("/jobs", func(r chi.Router) {
				r.Get("/", jobsController.List)
				r.With(companyOrAdmin).Post("/", jobsController.Create)
				r.With(companyOrAdmin).Get("/my-jobs", jobsController.ListMine)
				r.Get("/{id}", jobsController.Get)
				r.With(companyOrAdmin).Put("/{id}", jobsController.Update)
				r.With(companyOrAdmin).Delete("/{id}", jobsController.Delete)
			})

			r.Route("/applications", func(r chi.Router) {
				r.With(studentOnly).Post("/apply", appsController.Apply)
				r.With(studentOnly).Get("/my-applications", appsController.ListMine)
				r.With(companyOrAdmin).Get("/company/all", appsController.ListForCompany)
				r.With(companyOrAdmin).Get("/job/{jobId}", appsController.ListForJob)
				r.With(companyOrAdmin).Put("/{id}/status", appsController.UpdateStatus)
			})

			r.Route("/students", func(r chi.Router) {
				r.With(studentOnly).Get("/profile", studentsController.GetProfile)
				r.With(studentOnly).Put("/profile", studentsController.UpdateProfile)
			})

			r.Route("/upload", func(r chi.Router) {
				r.With(studentOnly).Post("/resume", uploadsController.UploadResume)
			})

			r.Route("/admin", func(r chi.Router) {
				r.Use(adminOnly)
				r.Get("/users", adminController.ListUsers)
				r.Put("/users/{id}/status", adminController.UpdateUserStatus)
				r.Delete("/users/{id}", adminController.DeleteUser)
				r.Get("/stats", adminController.Stats)
				r.Get("/reports/placement", adminController.PlacementReport)
			})

			r.Route("/analytics", func(r chi.Router) {
				r.With(adminOnly).Get("/stats", analyticsController.PlacementStats)
				r.With(studentOnly).Get("/student", analyticsController.StudentDashboard)
				r.With(middleware.RequireRole(rb, models.RoleCompany)).Get("/company", analyticsController.CompanyDashboard)
			})
		})
	})

	return r
}

func healthHandler(deps Dependencies, rb *response.Builder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		status := map[string]string{"database": "ok", "cache": "ok"}
		healthy := true
		if err := deps.DB.Ping(ctx); err != nil {
			status["database"] = "unavailable"
			healthy = false
		}
		if err := deps.Cache.Health(ctx); err != nil {
			status["cache"] = "unavailable"
			healthy = false
		}

		if !healthy {
			rb.WriteError(w, r, services.NewInternalError("service unhealthy"))
			return
		}
		rb.WriteSuccess(w, r, status)
	}
}
