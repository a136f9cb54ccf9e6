package main

import (
	"encoding/json"
	"fmt"
	"io"
	"iter"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/xtruder/bookmarks-search/internal/bookmarks"
	"github.com/xtruder/bookmarks-search/internal/config"
	"github.com/xtruder/bookmarks-search/internal/session"
	"github.com/xtruder/bookmarks-search/internal/x"
)

// resultFlags select and filter ranked results.
type resultFlags struct {
	limit   int
	browser string
}

func (f *resultFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&f.limit, "limit", "n", 0, "Maximum number of results (0 = config default)")
	cmd.Flags().StringVar(&f.browser, "browser", "", "Only show bookmarks from this browser (chrome, edge)")
}

// rank runs query against a started session and applies the flags.
func (f *resultFlags) rank(s *session.Session, query string) ([]bookmarks.Record, error) {
	return f.apply(slices.Values(s.Records(query)))
}

// apply filters seq by browser and caps it at the limit.
func (f *resultFlags) apply(seq iter.Seq[bookmarks.Record]) ([]bookmarks.Record, error) {
	if f.browser != "" {
		id, err := config.ParseBrowser(f.browser)
		if err != nil {
			return nil, err
		}
		seq = x.Filter(seq, func(r bookmarks.Record) bool { return r.Browser == id })
	}

	var out []bookmarks.Record
	for r := range x.Take(seq, f.limit) {
		out = append(out, r)
	}
	return out, nil
}

func searchCmd(opts *globalOptions) *cobra.Command {
	var (
		flags   resultFlags
		jsonOut bool
	)
	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Print bookmarks matching a query",
		Long: `Print bookmarks matching a query, best match first.

Every word of the query must match the title or the folder path and URL.
Title matches rank above URL matches, and an exact title ranks first.

Examples:
  bmsearch search github
  bmsearch search --browser edge go docs
  bmsearch search --json "My Github Notes"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(opts, false, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer a.Close()

			records, err := flags.rank(a.start(cmd.Context()), strings.Join(args, " "))
			if err != nil {
				return err
			}
			return printResults(cmd.OutOrStdout(), records, jsonOut)
		},
	}
	flags.register(cmd)
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	return cmd
}

func printResults(w io.Writer, records []bookmarks.Record, jsonOut bool) error {
	items := make([]session.DisplayItem, len(records))
	for i, r := range records {
		items[i] = session.NewDisplayItem(r)
	}

	if jsonOut {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(items)
	}

	if len(items) == 0 {
		fmt.Fprintln(w, "No matching bookmarks.")
		return nil
	}
	for _, item := range items {
		title := item.Title
		if title == "" {
			title = "(untitled)"
		}
		fmt.Fprintf(w, "%s [%s]\n  %s\n", title, item.Browser, item.Description)
	}
	return nil
}

func openCmd(opts *globalOptions) *cobra.Command {
	var flags resultFlags
	cmd := &cobra.Command{
		Use:   "open [query]",
		Short: "Open the best matching bookmark in its browser",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(opts, false, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer a.Close()

			s := a.start(cmd.Context())
			query := strings.Join(args, " ")
			records, err := flags.rank(s, query)
			if err != nil {
				return err
			}
			if len(records) == 0 {
				return fmt.Errorf("no bookmark matches %q", query)
			}

			item := session.NewDisplayItem(records[0])
			fmt.Fprintf(cmd.OutOrStdout(), "Opening %s\n", item.URL)
			s.Select(item)
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}
