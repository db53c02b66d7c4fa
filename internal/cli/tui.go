package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ajaym/portfolio/internal/tui"
)

// NewTUICommand creates the tui command.
func NewTUICommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Browse the portfolio in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := rootOpts.load()
			if err != nil {
				return err
			}
			// The alternate screen owns the terminal, so log nothing.
			return tui.Run(e.site, zap.NewNop())
		},
	}
}
