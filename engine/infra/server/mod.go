package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/infopoison/alchemist-workbench/engine/chart"
	"github.com/infopoison/alchemist-workbench/engine/interp"
	"github.com/infopoison/alchemist-workbench/engine/knowledge"
	"github.com/infopoison/alchemist-workbench/engine/llmadapter"
	"github.com/infopoison/alchemist-workbench/pkg/config"
	"github.com/infopoison/alchemist-workbench/pkg/logger"
)

const shutdownTimeout = 5 * time.Second

// Server wires the knowledge base, chart routes, and interpretation engine
// into one HTTP surface.
type Server struct {
	cfg    *config.Config
	log    logger.Logger
	router *gin.Engine
}

func NewServer(cfg *config.Config, log logger.Logger) *Server {
	return &Server{cfg: cfg, log: log}
}

func (s *Server) buildRouter() error {
	store, err := knowledge.NewStoreFromFile(s.cfg.Knowledge.SnapshotPath)
	if err != nil {
		return fmt.Errorf("failed to load knowledge base: %w", err)
	}

	model, err := llmadapter.NewLangChainAdapter(llmadapter.Config{
		Provider:    s.cfg.Model.Provider,
		APIKey:      s.cfg.Model.APIKey,
		Model:       s.cfg.Model.Name,
		Temperature: s.cfg.Model.Temperature,
		MaxTokens:   s.cfg.Model.MaxTokens,
	})
	if err != nil {
		return fmt.Errorf("failed to create model adapter: %w", err)
	}

	chartClient := chart.NewClient(s.cfg.Chart.BaseURL, s.cfg.Chart.APIKey, s.cfg.Chart.Timeout)

	// The knowledge base and chart routes are served in-process, so the
	// interpretation engine talks to them directly unless a remote URL is
	// configured.
	var resolver interp.ComponentResolver = knowledge.NewStoreResolver(store)
	if s.cfg.Knowledge.BaseURL != "" {
		resolver = knowledge.NewClient(knowledge.ClientConfig{
			BaseURL:       s.cfg.Knowledge.BaseURL,
			Timeout:       s.cfg.Knowledge.Timeout,
			RetryAttempts: s.cfg.Knowledge.RetryAttempts,
			RetryBackoff:  s.cfg.Knowledge.RetryBackoff,
		})
	}
	var caster interp.ChartCaster = chartClient
	if s.cfg.Chart.ServiceURL != "" {
		caster = chart.NewServiceClient(s.cfg.Chart.ServiceURL, s.cfg.Chart.Timeout)
	}

	svc := interp.NewService(resolver, caster, model)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(LoggerMiddleware(s.log))
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	knowledge.RegisterRoutes(r, store)
	chart.RegisterRoutes(r, chartClient)
	interp.RegisterRoutes(r, svc)
	s.router = r
	return nil
}

func (s *Server) Run() error {
	if err := s.buildRouter(); err != nil {
		return err
	}
	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", s.cfg.Server.Host, s.cfg.Server.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		s.log.Info("starting HTTP server", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.log.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()
	return s.handleGracefulShutdown(srv)
}

func (s *Server) handleGracefulShutdown(srv *http.Server) error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	s.log.Info("received shutdown signal, draining")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.log.Info("server shutdown completed")
	return nil
}
