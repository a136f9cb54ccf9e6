package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/xtruder/bookmarks-search/internal/web"
	"github.com/xtruder/bookmarks-search/internal/x"
)

func checkCmd(opts *globalOptions) *cobra.Command {
	var (
		flags      resultFlags
		all        bool
		brokenOnly bool
		noCache    bool
	)
	cmd := &cobra.Command{
		Use:   "check [query]",
		Short: "Check whether bookmarked links still respond",
		Long: `Send a request to every matching bookmark, or all of them, and report
the HTTP status. Healthy links are cached and not checked again.

Examples:
  bmsearch check --all --broken
  bmsearch check --no-cache golang`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(opts, false, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer a.Close()

			records, err := selectRecords(a.start(cmd.Context()), &flags, args, all)
			if err != nil {
				return err
			}

			checkOpts := web.CheckOptions{
				Concurrency: a.cfg.Check.Concurrency,
				UserAgent:   "bmsearch/" + Version,
			}
			if !noCache && a.cfg.Check.CacheDir != "" {
				cache, err := x.NewFileCache(a.cfg.Check.CacheDir)
				if err != nil {
					slog.Warn("failed to initialize cache", "error", err)
				} else {
					checkOpts.Cache = cache
				}
			}

			client := web.NewRetryingClient(a.cfg.Check.Retries, a.cfg.Check.Timeout)
			statuses := web.NewLinkChecker(client, checkOpts).Check(cmd.Context(), records)

			out := cmd.OutOrStdout()
			broken := 0
			for _, s := range statuses {
				if !s.OK() {
					broken++
				} else if brokenOnly {
					continue
				}

				state := fmt.Sprintf("%d", s.StatusCode)
				switch {
				case s.Err != nil:
					state = "ERR"
				case s.Cached:
					state += " (cached)"
				}
				fmt.Fprintf(out, "%-14s %s\n", state, s.Record.URL)
				if s.Err != nil {
					fmt.Fprintf(out, "%-14s %v\n", "", s.Err)
				}
			}

			fmt.Fprintf(out, "\nChecked %d link(s), %d broken.\n", len(statuses), broken)
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().BoolVar(&all, "all", false, "Check every indexed bookmark")
	cmd.Flags().BoolVar(&brokenOnly, "broken", false, "Only list broken links")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "Ignore cached results")
	return cmd
}
