package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	patch_checker "patch-checker/internal/patch-checker"
	"patch-checker/pkg/config"
)

const defaultConfigFile = "patch-checker.yaml"

type options struct {
	configFile string
	envFile    string
	open       bool
	debug      bool
}

// execute runs the command line and returns the process exit code.
func execute(args []string) int {
	exitCode := patch_checker.ExitOK
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:           "patch-checker",
		Short:         "Check the vendor documentation page for a newer patch",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			exitCode = check(cmd.Context(), opts)
			return nil
		},
	}
	rootCmd.Flags().StringVar(&opts.configFile, "config", "", "config file (default is ./"+defaultConfigFile+" when present)")
	rootCmd.Flags().StringVar(&opts.envFile, "env-file", ".env", "dotenv file consulted for unset variables")
	rootCmd.Flags().BoolVar(&opts.open, "open", false, "open the update page when a newer patch is available")
	rootCmd.Flags().BoolVar(&opts.debug, "debug", false, "log at debug level and always keep the run log")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			v := patch_checker.Version()
			cmd.Printf("patch-checker %s (commit %s, built %s)\n", v.Version, v.GitCommit, v.BuildDate)
		},
	})

	rootCmd.SetArgs(args)
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return patch_checker.ExitFatal
	}
	return exitCode
}

func check(ctx context.Context, opts *options) (exitCode int) {
	level := zap.NewAtomicLevelAt(zapcore.InfoLevel)
	if opts.debug {
		level.SetLevel(zapcore.DebugLevel)
	}
	runLog := patch_checker.NewRunLog()
	logger, err := patch_checker.InitLogger(level, runLog)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return patch_checker.ExitFatal
	}
	defer func(logger *zap.Logger) {
		_ = logger.Sync()
	}(logger)

	// Panic guard to log stacktrace if app crashes
	defer func() {
		if r := recover(); r != nil {
			logger.Error("panic: application crashed",
				zap.Any("panic", r),
				zap.Stack("stack"),
			)
			exitCode = patch_checker.ExitFatal
		}
	}()
	logger.Debug("starting patch-checker", zap.String("version", patch_checker.Version().Version))

	cfg, err := patch_checker.LoadConfig(ctx, configFile(opts.configFile), opts.envFile, logger)
	if cfg != nil {
		cfg.Debug = cfg.Debug || opts.debug
		applyLevel(level, cfg, logger)
	}
	if err != nil {
		logger.Error("invalid configuration", zap.Error(err))
		if cfg == nil {
			cfg = config.Default()
			cfg.Debug = opts.debug
		}
		if err := patch_checker.FlushRunLog(ctx, cfg, runLog, nil, logger, time.Now()); err != nil {
			logger.Error("can't keep run log", zap.Error(err))
		}
		return patch_checker.ExitFatal
	}

	checker, err := patch_checker.New(cfg, logger,
		patch_checker.WithRunLog(runLog),
		patch_checker.WithOpenLink(opts.open),
	)
	if err != nil {
		logger.Error("can't create checker", zap.Error(err))
		return patch_checker.ExitFatal
	}

	report, err := checker.Run(ctx)
	if err := checker.Finalize(ctx); err != nil {
		logger.Error("can't keep run log", zap.Error(err))
	}
	return patch_checker.ExitCode(report, err)
}

// configFile falls back to the default file in the working directory when it exists.
func configFile(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if _, err := os.Stat(defaultConfigFile); errors.Is(err, os.ErrNotExist) {
		return ""
	}
	return defaultConfigFile
}

func applyLevel(level zap.AtomicLevel, cfg *config.Config, logger *zap.Logger) {
	if cfg.Debug {
		level.SetLevel(zapcore.DebugLevel)
		return
	}
	parsed, err := patch_checker.ParseLevel(cfg.LogLevel)
	if err != nil {
		logger.Warn("using info log level", zap.Error(err))
	}
	level.SetLevel(parsed)
}
