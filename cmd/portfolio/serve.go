package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Zachkp/portfolio/internal/config"
	"github.com/Zachkp/portfolio/internal/contacts"
	"github.com/Zachkp/portfolio/internal/content"
	"github.com/Zachkp/portfolio/internal/logger"
	"github.com/Zachkp/portfolio/internal/mailer"
	"github.com/Zachkp/portfolio/internal/server"
	"github.com/Zachkp/portfolio/internal/store"
)

func newServeCmd(a *app) *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the portfolio site, contacts API and admin area",
		RunE: func(cmd *cobra.Command, args []string) error {
			if port != "" {
				a.cfg.Port = port
			}
			log, err := a.newLogger(os.Stdout)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, a.cfg, log)
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "", "Override PORT")
	return cmd
}

func runServe(ctx context.Context, cfg *config.Config, log *logger.Logger) error {
	db, err := store.Open(ctx, cfg.DatabasePath)
	if err != nil {
		return err
	}
	defer db.Close()

	sender, err := newSender(cfg.Mail, log)
	if err != nil {
		return err
	}
	site := content.Default()
	notifier := mailer.NewNotifier(sender, cfg.Mail.ReceiverEmail, site.Profile.Name)
	svc := contacts.NewService(contacts.NewStore(db), notifier, log)

	srv, err := server.New(server.Options{
		Config:   cfg,
		Logger:   log,
		DB:       db,
		Contacts: svc,
		Content:  site,
	})
	if err != nil {
		return err
	}

	log.WithFields(map[string]any{
		"database":      cfg.DatabasePath,
		"mail_provider": cfg.Mail.Provider,
	}).Info("starting portfolio server")
	return srv.Run(ctx)
}

// newSender picks the outgoing mail provider.
func newSender(cfg config.MailConfig, log *logger.Logger) (mailer.Sender, error) {
	switch cfg.Provider {
	case "smtp":
		return mailer.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass), nil
	case "resend":
		return mailer.NewResendSender(cfg.ResendAPIKey, cfg.From), nil
	case "log", "":
		return mailer.LogSender{Log: log}, nil
	default:
		return nil, fmt.Errorf("unknown mail provider %q", cfg.Provider)
	}
}
