package main

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/Zachkp/portfolio/internal/contactform"
	"github.com/Zachkp/portfolio/internal/theme"
	"github.com/Zachkp/portfolio/internal/tui"
)

func newContactCmd(a *app) *cobra.Command {
	var (
		apiURL  string
		logFile string
	)

	cmd := &cobra.Command{
		Use:   "contact",
		Short: "Send a message through the contact form from the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			if apiURL != "" {
				a.cfg.APIBaseURL = apiURL
			}

			out, err := openLogFile(logFile)
			if err != nil {
				return err
			}
			defer out.Close()
			log, err := a.newLogger(out)
			if err != nil {
				return err
			}

			submitter := contactform.NewHTTPSubmitter(a.cfg.APIBaseURL, nil)
			log.WithFields(map[string]any{"endpoint": submitter.Endpoint()}).Debug("contact form ready")

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()
			model := tui.New(ctx,
				contactform.New(submitter, log),
				theme.New(theme.NewFileStore(a.cfg.ThemeFile), log),
			)

			p := tea.NewProgram(model, tea.WithContext(ctx), tea.WithInput(cmd.InOrStdin()), tea.WithOutput(cmd.OutOrStdout()))
			_, err = p.Run()
			return err
		},
	}

	cmd.Flags().StringVar(&apiURL, "api", "", "Override API_BASE_URL")
	cmd.Flags().StringVar(&logFile, "log-file", "", "Write logs to this file instead of discarding them")
	return cmd
}
