package main

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"notes-client/internal/config"
	"notes-client/internal/controller"
	"notes-client/internal/controller/notify"
	"notes-client/internal/logger"
	"notes-client/internal/remote"
	"notes-client/internal/tui"
)

type options struct {
	configFile string
	baseURL    string
	logFile    string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:           "notes-client",
		Short:         "Terminal client for the notes service",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, closeLog, err := setup(opts, io.Discard)
			if err != nil {
				return err
			}
			defer closeLog()

			api, err := newRemote(cfg, log)
			if err != nil {
				return err
			}

			duration := time.Duration(cfg.Notify.DurationMillis) * time.Millisecond
			if duration <= 0 {
				duration = notify.DefaultDuration
			}
			queue := notify.NewQueue(notify.SystemScheduler{}, duration)
			defer queue.Close()

			ctrl := controller.New(api, queue, controller.WithLogger(log))
			log.Info("starting client", "base_url", api.BaseURL())
			return tui.Run(cmd.Context(), ctrl)
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.configFile, "config", "c", config.DefaultConfigFile, "path to config file")
	cmd.PersistentFlags().StringVar(&opts.baseURL, "base-url", "", "notes API base URL (overrides config)")
	cmd.PersistentFlags().StringVar(&opts.logFile, "log-file", "", "write logs to file")

	cmd.AddCommand(newListCmd(opts), newSummarizeCmd(opts))
	return cmd
}

// setup загружает конфигурацию и создает логгер.
// Флаги командной строки имеют приоритет над файлом и окружением.
func setup(opts *options, fallback io.Writer) (*config.Config, *slog.Logger, func() error, error) {
	cfg, err := config.Load(opts.configFile)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("error initializing config: %w", err)
	}
	if opts.baseURL != "" {
		cfg.Client.BaseURL = opts.baseURL
	}
	if opts.logFile != "" {
		cfg.Logger.File = opts.logFile
	}

	log, closeLog, err := logger.New(cfg.Logger, fallback)
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, log, closeLog, nil
}

func newRemote(cfg *config.Config, log *slog.Logger) (*remote.Client, error) {
	timeout := time.Duration(cfg.Client.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return remote.New(cfg.Client.BaseURL,
		remote.WithHTTPClient(&http.Client{Timeout: timeout}),
		remote.WithLogger(log),
	)
}
