package api

import (
	"path/filepath"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/talenthub/jobboard-api/internal/api/handler"
	"github.com/talenthub/jobboard-api/internal/api/middleware"
	"github.com/talenthub/jobboard-api/internal/core/domain"
	"github.com/talenthub/jobboard-api/internal/core/ports"
)

// Deps carries everything the router needs. Services are constructed in main
// so the sweeper can share the same repositories.
type Deps struct {
	AuthService   ports.AuthService
	UserService   ports.UserService
	JobService    ports.JobService
	UploadService ports.UploadService
	TokenService  ports.TokenService
	UserRepo      ports.UserRepository

	Mongo     *mongo.Database
	Redis     *redis.Client
	UploadDir string
	Log       zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("jobboard"))

	authed := middleware.Auth(d.TokenService, d.UserRepo, d.Log)
	selfOrAdmin := middleware.RequireSelfOrAdmin(d.Log, "id")
	recruiterOnly := middleware.RequireRole(d.Log, domain.RoleRecruiter, domain.RoleAdmin)
	jobseekerOnly := middleware.RequireRole(d.Log, domain.RoleJobseeker)
	adminOnly := middleware.RequireAdmin(d.Log)

	authHandler := handler.NewAuthHandler(d.AuthService)
	userHandler := handler.NewUserHandler(d.UserService, d.UploadService)
	jobHandler := handler.NewJobHandler(d.JobService)
	adminHandler := handler.NewAdminHandler(d.UserService)

	// --- Auth & accounts ---
	e.POST("/users", authHandler.Register)
	e.POST("/users/login", authHandler.Login)
	e.GET("/users/check-auth", authHandler.CheckAuth, authed)
	e.GET("/users/:id", userHandler.Get, authed)
	e.PUT("/users/:id", userHandler.Update, authed, selfOrAdmin)
	e.GET("/users/:id/resume/download", userHandler.DownloadResumeByID, authed, selfOrAdmin)

	// --- Uploads ---
	profile := e.Group("/users/profile", authed)
	profile.POST("/picture", userHandler.UploadPicture)
	profile.DELETE("/picture", userHandler.DeletePicture)
	profile.POST("/resume", userHandler.UploadResume)
	profile.DELETE("/resume", userHandler.DeleteResume)
	profile.GET("/resume/download", userHandler.DownloadResume)

	// Avatars are public; resumes only leave through the gated download.
	e.Static("/uploads/profiles", filepath.Join(d.UploadDir, domain.PurposeAvatar.Subdir()))

	// --- Jobs ---
	e.GET("/jobs", jobHandler.List)
	e.GET("/jobs/:id", jobHandler.Get)
	e.POST("/jobs", jobHandler.Create, authed, recruiterOnly)
	e.PUT("/jobs/:id", jobHandler.Update, authed, recruiterOnly)
	e.DELETE("/jobs/:id", jobHandler.Delete, authed, recruiterOnly)
	e.POST("/jobs/:id/apply", jobHandler.Apply, authed, jobseekerOnly)
	e.POST("/jobs/:id/save", jobHandler.Save, authed)
	e.DELETE("/jobs/:id/save", jobHandler.Unsave, authed)

	// --- Admin ---
	admin := e.Group("/admin", authed, adminOnly)
	admin.GET("/users", adminHandler.ListUsers)
	admin.PUT("/users/:id/role", adminHandler.SetRole)
	admin.PUT("/users/:id/active", adminHandler.SetActive)
	admin.DELETE("/users/:id", adminHandler.DeleteUser)
	admin.GET("/stats", adminHandler.Stats)

	// --- Health probes & metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(d.Mongo, d.Redis)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
