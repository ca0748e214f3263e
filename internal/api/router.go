package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"

	_ "github.com/taskdeck/task-system/docs"
	"github.com/taskdeck/task-system/internal/api/handler"
	"github.com/taskdeck/task-system/internal/api/middleware"
	"github.com/taskdeck/task-system/internal/core/ports"
	"github.com/taskdeck/task-system/internal/core/service"
	"github.com/taskdeck/task-system/pkg/dateutil"
)

// Dependencies carries everything the router needs; the storage driver
// behind the three port interfaces is decided by the caller.
type Dependencies struct {
	Accounts  ports.AccountRepository
	Sessions  ports.SessionStore
	Tasks     ports.TaskStore
	Checks    map[string]handler.PingFunc
	JWTSecret string
	TokenTTL  time.Duration
	Calendar  *dateutil.Calendar
	Logger    zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("taskdeck"))

	// --- Services ---
	credentialService := service.NewCredentialService(deps.Accounts, deps.JWTSecret, deps.TokenTTL, deps.Logger)
	sessionService := service.NewSessionService(deps.Sessions, deps.Accounts, deps.Logger)
	taskService := service.NewTaskService(deps.Tasks, deps.Calendar, deps.Logger)

	authHandler := handler.NewAuthHandler(credentialService, sessionService)
	sessionHandler := handler.NewSessionHandler(sessionService)
	taskHandler := handler.NewTaskHandler(taskService, deps.Calendar)
	exportHandler := handler.NewExportHandler(taskService, deps.Calendar)
	authMiddleware := middleware.Auth(deps.JWTSecret)

	// --- Auth and session routes ---
	e.POST("/v1/auth/register", authHandler.Register)
	e.POST("/v1/auth/login", authHandler.Login)
	e.GET("/v1/session", sessionHandler.Restore)
	e.DELETE("/v1/session", sessionHandler.Logout)

	// --- Task routes (authenticated) ---
	tasks := e.Group("/v1/tasks", authMiddleware)
	tasks.GET("", taskHandler.List)
	tasks.POST("", taskHandler.Create)
	tasks.GET("/export.csv", exportHandler.Export)
	tasks.GET("/:id", taskHandler.Get)
	tasks.PATCH("/:id", taskHandler.Patch)
	tasks.DELETE("/:id", taskHandler.Delete)

	// --- Health probes, metrics, docs (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.Checks)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness)  // readiness – is the storage driver up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
