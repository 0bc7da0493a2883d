package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"logsummary/internal/config"
	"logsummary/internal/logger"
	"logsummary/internal/output"
	"logsummary/internal/report"
	"logsummary/internal/source"
)

type reportOptions struct {
	file   string
	output string
}

func newReportCmd(cfgFile *string) *cobra.Command {
	var opts reportOptions

	cmd := &cobra.Command{
		Use:       "report <module|browser>",
		Short:     "Построить один отчёт и вывести его",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{string(report.KindModule), string(report.KindBrowser)},
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := report.ParseKind(args[0])
			if err != nil {
				return err
			}
			renderer, err := output.New(opts.output, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			return runReport(cmd.Context(), *cfgFile, opts, kind, renderer)
		},
	}
	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "читать локальный файл вместо удалённого (.gz распаковывается)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "text", "формат вывода: text, json")
	return cmd
}

func runReport(parent context.Context, cfgFile string, opts reportOptions, kind report.Kind, renderer output.Renderer) error {
	// с --file конфиг необязателен
	cfg, err := loadConfig(cfgFile, opts.file != "")
	if err != nil {
		return err
	}
	if opts.file != "" {
		cfg.Source = config.SourceConfig{Kind: config.SourceFile, Path: opts.file}
	}

	rootLogger, err := logger.InitZap(&cfg.Logging)
	if err != nil {
		return err
	}
	defer rootLogger.Sync()

	src, err := source.FromConfig(cfg, rootLogger.Named("source"))
	if err != nil {
		return fmt.Errorf("источник лога: %w", err)
	}

	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	res, err := report.NewService(nil, rootLogger.Named("report")).Build(ctx, src, kind)
	if err != nil {
		return err
	}
	return renderer.Render(res)
}
