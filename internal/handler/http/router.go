package http

import (
	"log/slog"
	"os"

	"github.com/dharmeshparikh-cloud/DVBC-ERP-sub002/internal/handler/http/middleware"
	"github.com/dharmeshparikh-cloud/DVBC-ERP-sub002/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(JWTService jwt.Service, policyHandler PolicyHandler, leaveHandler LeaveHandler, payrollHandler PayrollHandler) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "dvbc-leave-engine"),
		slog.String("version", "v1.0.0"),
		slog.String("env", "development"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

			r.Route("/leave", func(r chi.Router) {

				r.Route("/policies", func(r chi.Router) {
					r.Get("/effective/{employeeID}", policyHandler.Effective)

					// HR only
					r.Group(func(r chi.Router) {
						r.Use(middleware.RequireHR)
						r.Get("/", policyHandler.List)
						r.Post("/", policyHandler.Create)
						r.Get("/{id}", policyHandler.Get)
						r.Put("/{id}", policyHandler.Update)
						r.Delete("/{id}", policyHandler.Deactivate)
					})
				})

				r.Get("/balance/{employeeID}", leaveHandler.GetBalance)
				r.Get("/snapshots/{employeeID}", leaveHandler.ListSnapshots)

				r.Route("/encashments", func(r chi.Router) {
					r.Post("/", leaveHandler.SubmitEncashment)

					// HR only
					r.Group(func(r chi.Router) {
						r.Use(middleware.RequireHR)
						r.Post("/{id}/approve", leaveHandler.ApproveEncashment)
						r.Post("/{id}/reject", leaveHandler.RejectEncashment)
					})
				})

				// HR only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireHR)
					r.Post("/year-end/{year}", leaveHandler.RunYearEnd)
				})
			})

			r.Route("/payroll", func(r chi.Router) {
				r.Get("/adjustments/{employeeID}", payrollHandler.GetAdjustments)
			})
		})
	})
	return r
}
