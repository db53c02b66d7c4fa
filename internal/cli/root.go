// Package cli wires configuration, content and storage into the portfolio
// commands.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ajaym/portfolio/internal/config"
	"github.com/ajaym/portfolio/internal/content"
	"github.com/ajaym/portfolio/internal/logging"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ContentFile string
	LogLevel    string
}

// NewRootCommand creates the root command for the portfolio binary.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:           "portfolio",
		Short:         "Single-page portfolio site",
		Long:          "Serves the portfolio page, browses it in the terminal and checks its navigation.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.ContentFile, "content", "", "content YAML file (overrides CONTENT_FILE)")
	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "", "log level (overrides LOG_LEVEL)")

	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewTUICommand(opts))
	cmd.AddCommand(NewCheckCommand(opts))

	return cmd
}

// env is what every command starts from.
type env struct {
	cfg    config.Config
	site   *content.Site
	logger *zap.Logger
}

func (o *RootOptions) load() (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if o.ContentFile != "" {
		cfg.ContentFile = o.ContentFile
	}
	if o.LogLevel != "" {
		cfg.LogLevel = o.LogLevel
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}

	site, err := loadSite(cfg.ContentFile)
	if err != nil {
		return nil, err
	}
	return &env{cfg: cfg, site: site, logger: logger}, nil
}

func loadSite(path string) (*content.Site, error) {
	if path == "" {
		return content.Default()
	}
	return content.Load(path)
}
