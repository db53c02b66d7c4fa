package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ajaym/portfolio/internal/shell"
	"github.com/ajaym/portfolio/internal/web"
)

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check [page.html]",
		Short: "Verify every navigation control has a matching section",
		Long: `Verify every navigation control has a matching section.

Without an argument the page is rendered from the configured content. With
a path, that HTML file is checked instead, which is useful against a page
saved from a deployment.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var doc shell.Document
			var err error
			if len(args) == 1 {
				doc, err = parseFile(args[0])
			} else {
				doc, err = renderAnchors(rootOpts)
			}
			if err != nil {
				return err
			}
			return report(cmd.OutOrStdout(), doc)
		},
	}
}

func parseFile(path string) (shell.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return web.ParseDocument(f)
}

func renderAnchors(opts *RootOptions) (shell.Document, error) {
	e, err := opts.load()
	if err != nil {
		return nil, err
	}
	srv, err := web.New(web.Options{
		Config:  e.cfg,
		Site:    e.site,
		Contact: newContactService(e.cfg, nil, e.logger),
		Logger:  e.logger,
	})
	if err != nil {
		return nil, err
	}
	return srv.Document(), nil
}

func report(w io.Writer, doc shell.Document) error {
	if err := shell.CheckAnchors(doc, shell.Nav); err != nil {
		return err
	}
	for _, it := range shell.Nav {
		sec, _ := doc.Lookup(it.AnchorID)
		fmt.Fprintf(w, "ok  %-10s #%s (section %d)\n", it.Label, sec.ID, sec.Offset)
	}
	return nil
}
