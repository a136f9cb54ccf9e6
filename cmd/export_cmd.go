package main

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/xtruder/bookmarks-search/internal/bookmarks"
	"github.com/xtruder/bookmarks-search/internal/markdown"
	"github.com/xtruder/bookmarks-search/internal/session"
)

// selectRecords returns the ranked results for args, or the whole
// snapshot when all is set.
func selectRecords(s *session.Session, flags *resultFlags, args []string, all bool) ([]bookmarks.Record, error) {
	if all {
		return flags.apply(s.Snapshot().All())
	}
	if len(args) == 0 {
		return nil, fmt.Errorf("provide a query or use --all")
	}
	return flags.rank(s, strings.Join(args, " "))
}

func exportCmd(opts *globalOptions) *cobra.Command {
	var (
		flags resultFlags
		all   bool
		dir   string
	)
	cmd := &cobra.Command{
		Use:   "export [query]",
		Short: "Export bookmarks as markdown notes",
		Long: `Export matching bookmarks, or all of them, as markdown notes with
YAML frontmatter. Notes already present in the output directory are skipped.

Examples:
  bmsearch export --all
  bmsearch export --dir notes/bookmarks golang`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(opts, false, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer a.Close()

			if dir == "" {
				dir = a.cfg.Export.Dir
			}

			records, err := selectRecords(a.start(cmd.Context()), &flags, args, all)
			if err != nil {
				return err
			}

			cache, err := markdown.BuildCache(dir)
			if err != nil {
				return err
			}

			exporter := markdown.NewExporter(markdown.ExportOptions{OutputDir: dir}, cache)
			stats, err := exporter.Export(slices.Values(records))
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d bookmark(s) to %s, %d already present.\n", stats.Written, dir, stats.Skipped)
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().BoolVar(&all, "all", false, "Export every indexed bookmark")
	cmd.Flags().StringVar(&dir, "dir", "", "Output directory (default from config)")
	return cmd
}
