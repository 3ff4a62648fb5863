package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/hrmstack/leavectl/internal/export"
	"github.com/hrmstack/leavectl/internal/hrms"
	"github.com/hrmstack/leavectl/internal/store"
)

func newReportCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Fetch reports and export them to CSV or XLSX",
	}
	cmd.AddCommand(
		newAttendanceReportCommand(app),
		newLeaveReportCommand(app),
	)
	return cmd
}

// reportFlags are shared by both report kinds
type reportFlags struct {
	filter hrms.ReportFilter
	format string
	outDir string
}

func (f *reportFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.filter.FromDate, "from", "", "report window start (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.filter.ToDate, "to", "", "report window end (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.filter.EmployeeName, "employee", "", "filter by employee name")
	cmd.Flags().StringVar(&f.filter.Team, "team", "", "filter by team")
	cmd.Flags().StringVar(&f.filter.Department, "department", "", "filter by department")
	cmd.Flags().StringVar(&f.filter.Status, "status", "", "filter by status")
	cmd.Flags().StringVar(&f.format, "format", "csv", "output format: csv or xlsx")
	cmd.Flags().StringVar(&f.outDir, "out", ".", "output directory")
	cmd.MarkFlagRequired("from")
	cmd.MarkFlagRequired("to")
}

func newAttendanceReportCommand(app *App) *cobra.Command {
	flags := &reportFlags{}

	cmd := &cobra.Command{
		Use:   "attendance",
		Short: "Export the attendance report",
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := app.api.AttendanceReport(cmd.Context(), flags.filter)
			if err != nil {
				return err
			}
			if len(rows) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No attendance data for the selected window; nothing exported")
				return nil
			}

			path, err := writeExport(flags, export.KindAttendance, rows, export.AttendanceSchema())
			if err != nil {
				return err
			}
			_ = app.history.RecordExport(store.HistoryExportAttendance, len(rows), path)
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d rows to %s\n", len(rows), path)
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}

func newLeaveReportCommand(app *App) *cobra.Command {
	flags := &reportFlags{}

	cmd := &cobra.Command{
		Use:   "leaves",
		Short: "Export the leave report",
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := app.api.LeaveReport(cmd.Context(), flags.filter)
			if err != nil {
				return err
			}
			if len(rows) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No leave data for the selected window; nothing exported")
				return nil
			}

			path, err := writeExport(flags, export.KindLeave, rows, export.LeaveSchema())
			if err != nil {
				return err
			}
			_ = app.history.RecordExport(store.HistoryExportLeave, len(rows), path)
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d rows to %s\n", len(rows), path)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&flags.filter.LeaveType, "leave-type", "", "filter by leave type")
	return cmd
}

// writeExport materializes the rows in the requested format and returns the
// written path.
func writeExport[T any](flags *reportFlags, kind string, rows []T, schema export.Schema[T]) (string, error) {
	switch flags.format {
	case "csv":
		name := export.Filename(kind, "csv", time.Now(), flags.filter.FromDate, flags.filter.ToDate)
		path := filepath.Join(flags.outDir, name)
		if err := os.WriteFile(path, []byte(export.CSV(rows, schema)), 0644); err != nil {
			return "", fmt.Errorf("failed to write export: %w", err)
		}
		return path, nil
	case "xlsx":
		name := export.Filename(kind, "xlsx", time.Now(), flags.filter.FromDate, flags.filter.ToDate)
		path := filepath.Join(flags.outDir, name)
		if err := export.WriteXLSX(path, rows, schema); err != nil {
			return "", err
		}
		return path, nil
	default:
		return "", fmt.Errorf("unknown format %q (use csv or xlsx)", flags.format)
	}
}
