package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/Zachkp/portfolio/internal/config"
	"github.com/Zachkp/portfolio/internal/logger"
)

type rootFlags struct {
	envFile  string
	logLevel string
}

// app is the state shared by subcommands once the configuration is loaded.
type app struct {
	cfg *config.Config
	log *logger.Logger
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	a := &app{}

	cmd := &cobra.Command{
		Use:           "portfolio",
		Short:         "Zach Kordas-Potter's portfolio site and its terminal contact form",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(flags.envFile)
			if err != nil {
				return err
			}
			if flags.logLevel != "" {
				cfg.LogLevel = flags.logLevel
			}
			a.cfg = cfg
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&flags.envFile, "env-file", ".env", "Path to an optional .env file")
	cmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "Override LOG_LEVEL")

	cmd.AddCommand(newServeCmd(a))
	cmd.AddCommand(newContactCmd(a))
	cmd.AddCommand(newThemeCmd(a))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// newLogger builds the process logger writing to w.
func (a *app) newLogger(w io.Writer) (*logger.Logger, error) {
	log, err := logger.New(logger.Options{
		Level:  a.cfg.LogLevel,
		Format: logger.Format(a.cfg.LogFormat),
		Out:    w,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	a.log = log
	return log, nil
}

// openLogFile returns a writer for path, or io.Discard when path is empty.
func openLogFile(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{io.Discard}, nil
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }
