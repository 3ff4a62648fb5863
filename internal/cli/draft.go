package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newDraftCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "draft",
		Short: "Manage saved leave drafts",
	}
	cmd.AddCommand(
		newDraftListCommand(app),
		newDraftDropCommand(app),
	)
	return cmd
}

func newDraftListCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved drafts",
		RunE: func(cmd *cobra.Command, args []string) error {
			infos, err := app.drafts.List()
			if err != nil {
				return err
			}
			if len(infos) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No saved drafts")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tTYPE\tUPDATED")
			for _, info := range infos {
				fmt.Fprintf(w, "%s\t%s\t%s\n", info.Name, info.LeaveType, info.UpdatedAt.Format("2006-01-02 15:04"))
			}
			return w.Flush()
		},
	}
}

func newDraftDropCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "drop <name>",
		Short: "Delete a saved draft",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.drafts.Delete(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Draft %q dropped\n", args[0])
			return nil
		},
	}
}

func newHistoryCommand(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent submissions and exports",
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := app.history.Recent(limit)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No history yet")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "WHEN\tKIND\tDETAIL\tROWS\tOUTPUT")
			for _, e := range entries {
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n",
					e.CreatedAt.Format("2006-01-02 15:04"), e.Kind, e.Detail, e.RowCount, e.OutputPath)
			}
			return w.Flush()
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "maximum entries to show")
	return cmd
}
