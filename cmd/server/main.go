package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"notes-client/internal/config"
	"notes-client/internal/logger"
	"notes-client/internal/server"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		configFile string
		port       int
	)

	cmd := &cobra.Command{
		Use:           "notes-server",
		Short:         "Reference HTTP backend for the notes client",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configFile)
			if err != nil {
				return fmt.Errorf("error initializing config: %w", err)
			}
			if cmd.Flags().Changed("port") {
				cfg.Server.PortHTTP = port
			}

			log, closeLog, err := logger.New(cfg.Logger, os.Stderr)
			if err != nil {
				return err
			}
			defer closeLog()

			srv, err := server.NewServer(cfg, log)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := srv.Run(ctx); err != nil {
				return err
			}
			log.Info("notes server stopped")
			return nil
		},
	}

	cmd.Flags().StringVarP(&configFile, "config", "c", config.DefaultConfigFile, "path to config file")
	cmd.Flags().IntVarP(&port, "port", "p", 8000, "HTTP port (overrides config)")
	return cmd
}
