package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"logsummary/internal/config"
	"logsummary/internal/report"
	"logsummary/internal/source"
)

// ConfigProvider отдаёт конфигурацию, актуальную на момент запроса
type ConfigProvider interface {
	Current() *config.Config
}

// SourceFunc строит источник лога по конфигурации
type SourceFunc func(cfg *config.Config) (source.Source, error)

type Server struct {
	configs ConfigProvider
	sources SourceFunc
	reports *report.Service
	logger  *zap.Logger
}

func New(configs ConfigProvider, sources SourceFunc, reports *report.Service, logger *zap.Logger) *Server {
	return &Server{
		configs: configs,
		sources: sources,
		reports: reports,
		logger:  logger,
	}
}

// Router собирает маршруты сервиса
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(s.logger))

	r.Get("/log-summary-module", s.handleCounts(report.KindModule))
	r.Get("/log-summary-browser", s.handleCounts(report.KindBrowser))
	r.Get("/api/report/{kind}", s.handleReport)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	return r
}

// Run запускает HTTP-сервер и блокируется до отмены ctx, после чего
// останавливает его, давая текущим запросам HTTP.ShutdownTimeout на завершение.
func (s *Server) Run(ctx context.Context) error {
	cfg := s.configs.Current().HTTP
	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.Router(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	s.logger.Info("HTTP-сервер запущен", zap.String("addr", cfg.Addr))

	select {
	case err := <-errCh:
		return fmt.Errorf("запуск HTTP-сервера: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("Останавливаем HTTP-сервер")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("остановка HTTP-сервера: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// build строит отчёт по текущей конфигурации. Ошибка построения источника
// обрабатывается так же, как недоступный лог: пустой отчёт.
func (s *Server) build(ctx context.Context, kind report.Kind) (report.Result, error) {
	src, err := s.sources(s.configs.Current())
	if err != nil {
		src = unavailable{err: err}
	}
	return s.reports.Build(ctx, src, kind)
}

type unavailable struct {
	err error
}

func (u unavailable) Each(context.Context, func(string)) error {
	return fmt.Errorf("%w: %w", source.ErrUnavailable, u.err)
}
