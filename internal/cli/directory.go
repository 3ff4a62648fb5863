package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/hrmstack/leavectl/internal/hrms"
	"github.com/hrmstack/leavectl/internal/models"
)

func newEmployeesCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "employees",
		Short: "Browse the employee directory",
	}
	cmd.AddCommand(
		newEmployeesListCommand(app),
		newEmployeesStatsCommand(app),
	)
	return cmd
}

func newEmployeesListCommand(app *App) *cobra.Command {
	var filter hrms.EmployeeFilter
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List directory entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			var employees []models.Employee
			if all {
				employees, err = app.api.AllEmployees(cmd.Context())
			} else {
				employees, err = app.api.Employees(cmd.Context(), filter)
			}
			if err != nil {
				return err
			}
			if len(employees) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No employees found")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tEMAIL\tTEAM\tDEPARTMENT\tROLE\tSTATUS")
			for _, e := range employees {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
					e.ID, e.Name, e.Email, e.Team, e.Department, e.Role, e.Status)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&filter.Search, "search", "", "match on name or email")
	cmd.Flags().StringVar(&filter.Team, "team", "", "filter by team")
	cmd.Flags().StringVar(&filter.Department, "department", "", "filter by department")
	cmd.Flags().StringVar(&filter.Status, "status", "", "filter by employment status")
	cmd.Flags().BoolVar(&all, "all", false, "list the whole directory, ignoring filters")
	return cmd
}

func newEmployeesStatsCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show the directory summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			stats, err := app.api.EmployeeStats(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Total: %d\nActive: %d\nInactive: %d\n",
				stats.Total, stats.Active, stats.Inactive)
			return nil
		},
	}
}

func newTeamsCommand(app *App) *cobra.Command {
	var department string

	cmd := &cobra.Command{
		Use:   "teams",
		Short: "List teams",
		RunE: func(cmd *cobra.Command, args []string) error {
			teams, err := app.api.Teams(cmd.Context(), department)
			if err != nil {
				return err
			}
			if len(teams) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No teams found")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tDEPARTMENT\tMEMBERS")
			for _, tm := range teams {
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", tm.ID, tm.Name, tm.Department, tm.MemberCount)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&department, "department", "", "scope to one department")
	return cmd
}

func newDepartmentsCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "departments",
		Short: "List departments",
		RunE: func(cmd *cobra.Command, args []string) error {
			departments, err := app.api.Departments(cmd.Context())
			if err != nil {
				return err
			}
			if len(departments) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No departments found")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tTEAMS")
			for _, d := range departments {
				fmt.Fprintf(w, "%s\t%s\t%d\n", d.ID, d.Name, d.TeamCount)
			}
			return w.Flush()
		},
	}
}
