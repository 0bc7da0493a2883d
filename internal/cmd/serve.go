package cmd

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"logsummary/internal/config"
	"logsummary/internal/logger"
	"logsummary/internal/report"
	"logsummary/internal/server"
	"logsummary/internal/source"
	"logsummary/internal/watcher"
)

func newServeCmd(cfgFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Запустить HTTP-сервис отчётов",
		Long: `Запускает HTTP-сервер с эндпоинтами /log-summary-module,
/log-summary-browser, /api/report/{kind} и /healthz. Изменения config.yaml
подхватываются без перезапуска; адрес и таймауты сервера применяются при старте.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), *cfgFile)
		},
	}
}

func runServe(parent context.Context, cfgFile string) error {
	cfg, err := loadConfig(cfgFile, false)
	if err != nil {
		return err
	}

	rootLogger, err := logger.InitZap(&cfg.Logging)
	if err != nil {
		return err
	}
	lg := rootLogger.Named("main")
	defer lg.Sync()
	lg.Info("Сервис logsummary стартует", zap.String("config", cfgFile), zap.String("source", cfg.Source.Kind))

	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	configs := watcher.NewConfigWatcher(cfgFile, cfg, rootLogger.Named("watcher"))
	if err := configs.Start(ctx); err != nil {
		// без слежения работаем на исходном конфиге
		lg.Warn("Не удалось запустить watcher конфига", zap.Error(err))
	}

	sourceLogger := rootLogger.Named("source")
	sources := func(c *config.Config) (source.Source, error) {
		return source.FromConfig(c, sourceLogger)
	}
	reports := report.NewService(nil, rootLogger.Named("report"))
	srv := server.New(configs, sources, reports, rootLogger.Named("http"))

	if err := srv.Run(ctx); err != nil {
		lg.Error("HTTP-сервер завершился с ошибкой", zap.Error(err))
		return err
	}
	lg.Info("Сервис завершил работу")
	return nil
}
