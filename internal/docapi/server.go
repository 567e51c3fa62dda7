// Package docapi provides the document processing HTTP service that acactl
// deploys to Azure Container Apps and Azure Container Instances.
//
// The service accepts documents, returns fixed mock analysis with real
// statistics, and keeps results on the replica's local disk. It has no
// dependency on Azure at runtime; configuration comes from environment
// variables set by the deployment.
package docapi

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dashanan13/AzureContainerOptionDemo/internal/docapi/handlers"
	"github.com/dashanan13/AzureContainerOptionDemo/internal/docapi/store"
	"github.com/dashanan13/AzureContainerOptionDemo/internal/logging"
	"github.com/dashanan13/AzureContainerOptionDemo/internal/netutil"
	"github.com/dashanan13/AzureContainerOptionDemo/internal/version"
)

// Server is the docapi HTTP server.
type Server struct {
	config     *Config
	store      *store.Store
	router     *gin.Engine
	httpServer *http.Server
	listener   net.Listener
	startTime  time.Time
}

// NewServer creates a server and its routes. Nothing is bound until Start.
func NewServer(config *Config) *Server {
	gin.SetMode(gin.ReleaseMode)

	s := &Server{
		config:    config,
		store:     store.New(config.Settings.StoragePath),
		startTime: time.Now(),
	}

	// Configure Gin logging only if not already configured by CLI tools
	if !logging.IsConfiguredByCLI() {
		gin.DefaultWriter = logging.NewLevelWriter("DEBUG", "gin")
		gin.DefaultErrorWriter = logging.NewLevelWriter("ERROR", "gin")
	}

	router := gin.New()
	router.Use(s.loggingMiddleware())
	router.Use(s.corsMiddleware())
	router.Use(gin.Recovery())
	s.setupRoutes(router)
	s.router = router

	return s
}

// NewServerWithListener creates a server that serves on an already bound
// listener, so the caller learns about a busy port before anything starts.
func NewServerWithListener(config *Config, listener net.Listener) (*Server, error) {
	if listener == nil {
		return nil, fmt.Errorf("listener cannot be nil")
	}
	s := NewServer(config)
	s.listener = listener
	return s, nil
}

// Handler returns the HTTP handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Addr returns the bound address, or the configured one before Start.
func (s *Server) Addr() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return net.JoinHostPort(s.config.BindAddr, fmt.Sprint(s.config.BindPort))
}

// Port returns the bound port, or the configured one before Start.
func (s *Server) Port() int {
	if s.listener != nil {
		if port, err := netutil.ListenerPort(s.listener); err == nil {
			return port
		}
	}
	return s.config.BindPort
}

// Start prepares storage, binds the listener if needed and serves in the
// background.
func (s *Server) Start() error {
	s.logStartupSummary()

	if err := s.store.Ensure(); err != nil {
		logging.Warn("%v; results will not be saved", err)
	}

	if s.listener == nil {
		listener, err := netutil.BindTCP(s.config.BindAddr, s.config.BindPort)
		if err != nil {
			return err
		}
		s.listener = listener
	}

	timeout := time.Duration(s.config.Settings.ProcessingTimeoutSeconds) * time.Second
	s.httpServer = &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       timeout,
		WriteTimeout:      timeout + 5*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		if err := s.httpServer.Serve(s.listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Error("HTTP server failed: %v", err)
		}
	}()

	logging.Success("Document API listening on %s", s.Addr())
	return nil
}

// Shutdown gracefully stops the server, waiting for in-flight requests until
// ctx expires.
func (s *Server) Shutdown(ctx context.Context) error {
	logging.Info("Shutting down document API...")

	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	if s.listener != nil {
		return s.listener.Close()
	}
	return nil
}

func (s *Server) logStartupSummary() {
	settings := s.config.Settings
	logging.Info("Starting %s v%s", handlers.ServiceName, version.DocapiVersion)
	logging.Info("ENVIRONMENT=%s LOG_LEVEL=%s", settings.Environment, settings.LogLevel)
	logging.Info("MODEL_NAME=%s", settings.ModelName)
	logging.Info("EMBEDDINGS_API_KEY configured: %t", settings.EmbeddingsKeyConfigured())
}
