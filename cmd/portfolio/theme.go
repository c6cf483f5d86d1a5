package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Zachkp/portfolio/internal/theme"
)

func newThemeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "theme",
		Short: "Show or toggle the saved light/dark preference",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showTheme(cmd, a)
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the saved theme",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showTheme(cmd, a)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "toggle",
		Short: "Flip between light and dark and save the choice",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := themeManager(a)
			if err != nil {
				return err
			}
			m.Toggle()
			fmt.Fprintln(cmd.OutOrStdout(), m.Value())
			return nil
		},
	})

	return cmd
}

func themeManager(a *app) (*theme.Manager, error) {
	log, err := a.newLogger(os.Stderr)
	if err != nil {
		return nil, err
	}
	return theme.New(theme.NewFileStore(a.cfg.ThemeFile), log), nil
}

func showTheme(cmd *cobra.Command, a *app) error {
	m, err := themeManager(a)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), m.Value())
	return nil
}
