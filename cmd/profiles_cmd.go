package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func profilesCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "profiles",
		Short: "Show which browser profiles are indexed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(opts, false, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer a.Close()

			_, outcomes := a.builder.Rebuild(cmd.Context())

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "BROWSER\tSTATUS\tRECORDS\tLOCATION")
			for _, o := range outcomes {
				location := o.Profile
				if location == "" {
					location = o.DataDir
				}
				if location == "" {
					location = "-"
				}
				fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", o.Browser, o.Status, o.Records, location)
				if o.Err != nil {
					fmt.Fprintf(w, "\t\t\t%v\n", o.Err)
				}
			}
			return w.Flush()
		},
	}
}
