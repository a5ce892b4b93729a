package commands

import (
	"context"
	"errors"
	"fmt"
	"homework-assist/internal/components/telemetry"
	"homework-assist/lib/configutil"
	"homework-assist/lib/serviceutil"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	configPath string
	verbose    bool
	dumpDir    string

	config Config
	otel   telemetry.Telemetry
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.json5", "The configuration file to read, <name>.local.<ext> overrides it.")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print debug logs.")
	rootCmd.PersistentFlags().StringVar(&dumpDir, "dump-dir", "", "Write every raw LMS response into this directory.")
}

var rootCmd = &cobra.Command{
	Use:           "homework",
	Short:         "homework lists the pending assignments of every lecture on the YNU LMS.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		telemetry.InitSlog(verbose)

		var err error
		config, err = configutil.ReadConfig(configPath, defaultConfig)
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("config file '%s' does not exist", configPath)
		}
		if err != nil {
			return fmt.Errorf("read config: %w", err)
		}

		otel, err = telemetry.Setup(cmd.Context(), "homework", config.Otlp)
		if err != nil {
			slog.Warn("failed to setup otel, continuing without it", "err", err)
		}
		return nil
	},
}

var shutdownTelemetry = func(ctx context.Context) error {
	return otel.Shutdown(ctx)
}

// flushTelemetry runs after every command, failed runs included.
func flushTelemetry() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err := shutdownTelemetry(ctx)
	if err != nil {
		slog.Warn("failed to flush telemetry", "err", err)
	}
}

func execute(ctx context.Context) error {
	defer flushTelemetry()
	return rootCmd.ExecuteContext(ctx)
}

func ExecuteContext(ctx context.Context) {
	ctx, stop := serviceutil.SignalContext(ctx)
	defer stop()

	if err := execute(ctx); err != nil {
		stop()
		serviceutil.Fatal("homework failed", err)
	}
}
