package api

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/jackc/pgx/v5/pgxpool"

	swagger "github.com/go-swagno/swagno-fiber/swagger"
	"github.com/presensia/presensia/internal/api/docs"
	"github.com/presensia/presensia/internal/api/handler"
	"github.com/presensia/presensia/internal/api/middleware"
	"github.com/presensia/presensia/internal/audit"
	"github.com/presensia/presensia/internal/auth"
	"github.com/presensia/presensia/internal/domain"
	"github.com/presensia/presensia/internal/provider"
	"github.com/presensia/presensia/internal/ratelimit"
	"github.com/presensia/presensia/internal/repository"
	"github.com/presensia/presensia/internal/service"
)

// Dependencies carries everything the route tree needs. Repositories
// and the pool are built in cmd/api so tests can swap them out.
type Dependencies struct {
	DB             *pgxpool.Pool
	UserRepo       *repository.UserRepository
	SessionRepo    *repository.SessionRepository
	EnrollmentRepo *repository.EnrollmentRepository
	ProfileRepo    *repository.ProfileRepository
	AttendanceRepo *repository.AttendanceRepository
	ActivityRepo   *repository.ActivityLogRepository
	JWTService     *auth.JWTService
	Provider       provider.EmbeddingProvider
	Admission      service.AdmissionConfig
	Registration   service.RegistrationConfig
	SubmitLimit    int
	SubmitWindow   time.Duration
}

type Router struct {
	app         *fiber.App
	logger      *slog.Logger
	deps        *Dependencies
	rateLimiter *middleware.RateLimiter
}

func NewRouter(logger *slog.Logger, deps *Dependencies) *Router {
	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler(logger),
		AppName:      "Presensia API",
	})

	return &Router{
		app:    app,
		logger: logger,
		deps:   deps,
	}
}

func (r *Router) Setup() {
	// Global middlewares
	r.app.Use(requestid.New())
	r.app.Use(middleware.Recover(r.logger))
	r.app.Use(middleware.Logger(r.logger))
	r.app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))

	// Swagger documentation (no auth required)
	sw := docs.NewSwagger()
	swagger.SwaggerHandler(r.app, sw.MustToJson())

	// Health check endpoints (no auth required)
	var pinger handler.Pinger
	if r.deps != nil && r.deps.DB != nil {
		pinger = r.deps.DB
	}
	healthHandler := handler.NewHealthHandler(pinger)
	r.app.Get("/health", healthHandler.Health)
	r.app.Get("/ready", healthHandler.Ready)

	// Only configure API routes if dependencies were provided
	if r.deps == nil {
		return
	}

	auditRecorder := audit.NewRecorder(r.deps.ActivityRepo, r.logger)

	// Login endpoints sit outside the auth middleware
	authService := service.NewAuthService(r.deps.UserRepo, r.deps.JWTService, auditRecorder)
	authHandler := handler.NewAuthHandler(authService, r.logger)

	v1 := r.app.Group("/v1")
	v1.Post("/auth/student/login", authHandler.StudentLogin)
	v1.Post("/auth/lecturer/login", authHandler.LecturerLogin)

	// Everything below requires a valid token
	v1.Use(middleware.Auth(r.deps.JWTService))

	// Per-user request limiting, after auth so the user is known
	r.rateLimiter = middleware.NewRateLimiter(middleware.DefaultRateLimiterConfig())
	v1.Use(r.rateLimiter.Handler())

	// Per-student submission limiter backed by Postgres so the limit
	// holds across replicas
	submitWindow := r.deps.SubmitWindow
	if submitWindow <= 0 {
		submitWindow = time.Minute
	}
	submitLimiter := ratelimit.NewSubmissionLimiter(r.deps.DB, submitWindow)

	// Attendance
	admissionService := service.NewAdmissionService(
		r.deps.SessionRepo,
		r.deps.AttendanceRepo,
		r.deps.ProfileRepo,
		r.deps.Provider,
		auditRecorder,
		r.deps.Admission,
	)
	attendanceHandler := handler.NewAttendanceHandler(admissionService, submitLimiter, r.deps.SubmitLimit, r.logger)
	v1.Post("/attendance", attendanceHandler.Submit)
	v1.Get("/attendance", attendanceHandler.List)

	// Face enrollment
	registrationService := service.NewRegistrationService(
		r.deps.ProfileRepo,
		r.deps.UserRepo,
		r.deps.Provider,
		auditRecorder,
		r.logger,
		r.deps.Registration,
	)
	registrationHandler := handler.NewRegistrationHandler(registrationService, r.logger)
	v1.Post("/faces/register", registrationHandler.Register)

	// Class sessions
	sessionService := service.NewSessionService(r.deps.SessionRepo, r.deps.EnrollmentRepo, auditRecorder)
	sessionHandler := handler.NewSessionHandler(sessionService, r.logger)
	v1.Post("/sessions", middleware.RequireUserType(domain.UserLecturer), sessionHandler.Create)
	v1.Get("/sessions", sessionHandler.List)
	v1.Get("/sessions/:id", sessionHandler.Get)
	v1.Post("/sessions/:id/enroll", sessionHandler.Enroll)
}

func (r *Router) App() *fiber.App {
	return r.app
}

func (r *Router) Listen(addr string) error {
	return r.app.Listen(addr)
}

func (r *Router) Shutdown() error {
	// Stop rate limiter cleanup goroutine
	if r.rateLimiter != nil {
		r.rateLimiter.Stop()
	}

	return r.app.Shutdown()
}
