package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ajaym/portfolio/internal/config"
	"github.com/ajaym/portfolio/internal/contact"
	"github.com/ajaym/portfolio/internal/store"
	"github.com/ajaym/portfolio/internal/web"
)

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the portfolio over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, rootOpts)
		},
	}
}

func runServe(ctx context.Context, opts *RootOptions) error {
	e, err := opts.load()
	if err != nil {
		return err
	}
	defer func() { _ = e.logger.Sync() }()

	st, err := store.Open(ctx, e.cfg.DatabasePath)
	if err != nil {
		e.logger.Error("failed to open database", zap.String("path", e.cfg.DatabasePath), zap.Error(err))
		return err
	}
	defer st.Close()
	e.logger.Info("database ready", zap.String("path", e.cfg.DatabasePath))

	srv, err := web.New(web.Options{
		Config:  e.cfg,
		Site:    e.site,
		Store:   st,
		Contact: newContactService(e.cfg, st, e.logger),
		Logger:  e.logger,
	})
	if err != nil {
		return err
	}
	return srv.Run(ctx)
}

// newContactService builds the relay-mode pipeline. Mail notification is
// only attached when SMTP credentials are present.
func newContactService(cfg config.Config, outbox contact.Outbox, logger *zap.Logger) *contact.Service {
	relay := contact.NewFormRelay(cfg.Contact.Endpoint, cfg.Contact.Timeout)

	var notify contact.Relay
	if cfg.SMTP.Enabled() {
		notify = &contact.Mailer{
			Host: cfg.SMTP.Host,
			Port: cfg.SMTP.Port,
			User: cfg.SMTP.User,
			Pass: cfg.SMTP.Pass,
			To:   cfg.SMTP.To,
		}
	} else if cfg.Contact.Mode == config.ContactRelay {
		logger.Info("SMTP not configured, contact notifications disabled")
	}
	return contact.NewService(relay, notify, outbox, logger)
}
