// Package api provides the HTTP surface of the library system
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Vishu-0105/Library-Testing-System/pkg/activity"
	"github.com/Vishu-0105/Library-Testing-System/pkg/auth"
	"github.com/Vishu-0105/Library-Testing-System/pkg/catalog"
	"github.com/Vishu-0105/Library-Testing-System/pkg/config"
	"github.com/Vishu-0105/Library-Testing-System/pkg/contact"
	"github.com/Vishu-0105/Library-Testing-System/pkg/dashboard"
	"github.com/Vishu-0105/Library-Testing-System/pkg/directory"
	"github.com/Vishu-0105/Library-Testing-System/pkg/logger"
	"github.com/Vishu-0105/Library-Testing-System/pkg/metrics"
	"github.com/Vishu-0105/Library-Testing-System/pkg/storage"
)

// Deps bundles everything the HTTP layer serves
type Deps struct {
	Config    *config.Config
	Logger    logger.Logger
	DB        *gorm.DB
	Auth      *auth.Service
	Catalog   *catalog.Store
	Directory *directory.Repository
	Contact   *contact.Intake
	Dashboard *dashboard.Aggregator
	Recorder  activity.Recorder
	Counters  *metrics.Counters
}

// Server represents the API server instance
type Server struct {
	config    *config.Config
	logger    logger.Logger
	db        *gorm.DB
	auth      *auth.Service
	catalog   *catalog.Store
	directory *directory.Repository
	contact   *contact.Intake
	dashboard *dashboard.Aggregator
	recorder  activity.Recorder
	counters  *metrics.Counters
	router    *gin.Engine
	server    *http.Server
	started   time.Time
}

// NewServer creates a new API server instance
func NewServer(deps Deps) *Server {
	// Gin mode follows the log level as a proxy for environment
	if deps.Config.LogLevel == "error" || deps.Config.LogLevel == "warn" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	s := &Server{
		config:    deps.Config,
		logger:    deps.Logger,
		db:        deps.DB,
		auth:      deps.Auth,
		catalog:   deps.Catalog,
		directory: deps.Directory,
		contact:   deps.Contact,
		dashboard: deps.Dashboard,
		recorder:  deps.Recorder,
		counters:  deps.Counters,
		router:    gin.New(),
		started:   time.Now(),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// Router exposes the configured handler, mainly for tests
func (s *Server) Router() http.Handler {
	return s.router
}

// setupMiddleware configures middleware for the server
func (s *Server) setupMiddleware() {
	s.router.Use(s.recoveryMiddleware())
	s.router.Use(s.loggingMiddleware())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"*"}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	s.router.Use(cors.New(corsConfig))

	s.router.Use(s.requestIDMiddleware())
	s.router.Use(s.sessionMiddleware())
}

// setupRoutes configures all API routes
func (s *Server) setupRoutes() {
	s.router.GET("/", s.home)
	s.router.GET("/login", s.getLoginForm)
	s.router.POST("/login", s.login)
	s.router.GET("/logout", s.logout)

	s.router.GET("/dashboard", s.requireSession(), s.getDashboard)
	s.router.GET("/admin-dashboard", s.requireElevated(), s.getAdminDashboard)

	s.router.GET("/catalog", s.getCatalog)
	s.router.POST("/catalog", s.searchCatalog)

	s.router.GET("/contact", s.getContactMeta)
	s.router.POST("/contact", s.submitContact)

	s.router.GET("/about", s.about)
	s.router.GET("/profile", s.requireSession(), s.getProfile)

	apiGroup := s.router.Group("/api")
	{
		apiGroup.GET("/system-status", s.getSystemStatus)
		apiGroup.GET("/books", s.getBooks)
	}

	s.router.GET("/health", s.healthCheck)

	s.router.NoRoute(s.notFound)
}

// health checks the storage connection
func (s *Server) health() error {
	return storage.HealthCheck(s.db)
}

// Start runs the server until the context is cancelled, then shuts down
// gracefully.
func (s *Server) Start(ctx context.Context) error {
	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.ServerPort),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.logger.Info("Starting API server", map[string]interface{}{
		"port": s.config.ServerPort,
		"mode": gin.Mode(),
	})

	errCh := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down API server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return s.server.Shutdown(shutdownCtx)
}

// Stop gracefully stops the API server
func (s *Server) Stop() error {
	if s.server == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return s.server.Shutdown(ctx)
}
