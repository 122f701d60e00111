package main

import (
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"notes-client/internal/controller/summary"
	"notes-client/internal/model"
)

func newListCmd(opts *options) *cobra.Command {
	var query string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print notes without starting the interface",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, closeLog, err := setup(opts, os.Stderr)
			if err != nil {
				return err
			}
			defer closeLog()

			api, err := newRemote(cfg, log)
			if err != nil {
				return err
			}
			notes, err := api.List(cmd.Context())
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTITLE\tCREATED")
			for _, n := range notes {
				if !n.Matches(query) {
					continue
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", n.ID, n.Title, model.FormatDate(n.CreatedAt))
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVarP(&query, "search", "s", "", "case-insensitive filter by title or content")
	return cmd
}

func newSummarizeCmd(opts *options) *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "summarize ID",
		Short: "Print the AI summary of a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, closeLog, err := setup(opts, os.Stderr)
			if err != nil {
				return err
			}
			defer closeLog()

			api, err := newRemote(cfg, log)
			if err != nil {
				return err
			}
			text, err := api.Summarize(cmd.Context(), args[0])
			if err != nil {
				log.Error("summarize failed", "id", args[0], "error", err)
				return errors.New(summary.FailedMessage)
			}

			if !raw {
				if out, rerr := glamour.Render(text, "dark"); rerr == nil {
					text = out
				}
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), text)
			return err
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "print markdown without rendering")
	return cmd
}
