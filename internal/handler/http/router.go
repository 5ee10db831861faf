package http

import (
	"log/slog"
	"os"

	"github.com/factorydesk/workforce-backend-go/internal/handler/http/middleware"
	"github.com/factorydesk/workforce-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	JWTService jwt.Service,
	frontendURL string,
	env string,
	authHandler AuthHandler,
	attendanceHandler AttendanceHandler,
	workerHandler WorkerHandler,
	shiftHandler ShiftHandler,
	advanceHandler AdvanceHandler,
	payrollHandler PayrollHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "factorydesk"),
		slog.String("version", "v1.0.0"),
		slog.String("env", env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{frontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
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

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.RefreshToken)
			r.Post("/logout", authHandler.Logout)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

			r.Route("/attendance", func(r chi.Router) {
				// Kiosks may punch and read
				r.Post("/punch", attendanceHandler.Punch)
				r.Get("/", attendanceHandler.List)
				r.Get("/{id}", attendanceHandler.Get)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Put("/{id}/regulate", attendanceHandler.Regulate)
					r.Put("/{id}/leave", attendanceHandler.MarkOnLeave)
				})
			})

			r.Route("/workers", func(r chi.Router) {
				r.Get("/", workerHandler.List)
				r.Get("/{id}", workerHandler.Get)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/", workerHandler.Create)
					r.Put("/{id}", workerHandler.Update)
					r.Delete("/{id}", workerHandler.Delete)
				})
			})

			r.Route("/shifts", func(r chi.Router) {
				r.Get("/", shiftHandler.List)
				r.Get("/{id}", shiftHandler.Get)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/", shiftHandler.Create)
					r.Put("/{id}", shiftHandler.Update)
					r.Delete("/{id}", shiftHandler.Delete)
				})
			})

			// Money endpoints are admin only
			r.Group(func(r chi.Router) {
				r.Use(middleware.AdminOnly)

				r.Route("/advances", func(r chi.Router) {
					r.Post("/", advanceHandler.Create)
					r.Get("/", advanceHandler.List)
					r.Get("/{id}", advanceHandler.Get)
					r.Put("/{id}/approve", advanceHandler.Approve)
					r.Put("/{id}/repay", advanceHandler.MarkRepaid)
					r.Delete("/{id}", advanceHandler.Delete)
				})

				r.Route("/payrolls", func(r chi.Router) {
					r.Post("/generate", payrollHandler.Generate)
					r.Get("/", payrollHandler.List)
					r.Get("/{id}", payrollHandler.Get)
					r.Put("/finalize", payrollHandler.Finalize)
				})

				r.Get("/wages/{workerID}/{date}", payrollHandler.ComputeDailyWage)
			})
		})
	})

	return r
}
