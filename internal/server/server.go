package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	httpapi "notes-client/internal/api/http"
	"notes-client/internal/config"
	"notes-client/internal/repository/memory"
	svc "notes-client/internal/service"
	notesService "notes-client/internal/service/notes"
	"notes-client/internal/service/summarizer"
)

// Server эталонный HTTP сервер заметок
type Server struct {
	HTTPServer *http.Server
	Config     *config.Config
	Registry   *prometheus.Registry

	logger *slog.Logger
}

// NewServer создает сервер и инициализирует компоненты (Repository → Service → Handler)
func NewServer(cfg *config.Config, logger *slog.Logger) (*Server, error) {
	if cfg == nil || cfg.Server == nil {
		return nil, errors.New("server config is required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	port := cfg.Server.PortHTTP
	if port == 0 {
		port = 8000
		logger.Warn("port_http is 0, using default", "port", port)
	}

	noteRepo := memory.NewRepository()
	logger.Info("initialized in-memory repository")

	// Без ключа сервер работает, но суммаризация отвечает 503
	var sum svc.Summarizer
	if s, err := summarizer.New(cfg.Summarizer, logger); err != nil {
		logger.Warn("summarizer disabled", "error", err)
	} else {
		sum = s
	}

	noteSvc := notesService.NewNoteService(noteRepo, sum, logger)
	handler := httpapi.NewNoteHandler(noteSvc, logger)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	return &Server{
		HTTPServer: &http.Server{
			Addr:              net.JoinHostPort("0.0.0.0", strconv.Itoa(port)),
			Handler:           httpapi.NewRouter(handler, cfg.Gateway, reg, logger),
			ReadTimeout:       seconds(cfg.Server.HTTPReadTimeout),
			WriteTimeout:      seconds(cfg.Server.HTTPWriteTimeout),
			IdleTimeout:       seconds(cfg.Server.HTTPIdleTimeout),
			ReadHeaderTimeout: seconds(cfg.Server.HTTPReadHeaderTimeout),
		},
		Config:   cfg,
		Registry: reg,
		logger:   logger,
	}, nil
}

func seconds(n int) time.Duration {
	return time.Duration(n) * time.Second
}

// Run слушает addr и блокируется до отмены ctx, после чего выполняет graceful shutdown
func (s *Server) Run(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.HTTPServer.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.HTTPServer.Addr, err)
	}
	return s.Serve(ctx, listener)
}

// Serve обслуживает listener до отмены ctx
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info("HTTP server listening", "addr", listener.Addr().String())
		if err := s.HTTPServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		return s.Shutdown()
	})

	return g.Wait()
}

// Shutdown выполняет graceful shutdown с таймаутом из конфигурации
func (s *Server) Shutdown() error {
	s.logger.Info("starting graceful shutdown")

	timeout := seconds(s.Config.Server.GracefulShutdownTimeout)
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.HTTPServer.Shutdown(ctx); err != nil {
		s.logger.Warn("graceful shutdown timeout, forcing stop", "error", err)
		_ = s.HTTPServer.Close()
		return err
	}
	s.logger.Info("HTTP server stopped gracefully")
	return nil
}
