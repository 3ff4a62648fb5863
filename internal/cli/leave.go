package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/hrmstack/leavectl/internal/hrms"
	"github.com/hrmstack/leavectl/internal/intake"
	"github.com/hrmstack/leavectl/internal/intake/dialog"
	"github.com/hrmstack/leavectl/internal/models"
	"github.com/hrmstack/leavectl/internal/upload"
)

func newLeaveCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "leave",
		Short: "Apply for, edit and list leave requests",
	}
	cmd.AddCommand(
		newLeaveApplyCommand(app),
		newLeaveEditCommand(app),
		newLeaveListCommand(app),
		newLeaveBalanceCommand(app),
	)
	return cmd
}

// leaveFlags collects the intake fields. Passing --start/--end selects the
// date-range variant; --date with --duration selects single-day.
type leaveFlags struct {
	leaveType string
	date      string
	duration  string
	start     string
	end       string
	reason    string
	attach    string
	draft     string
	saveDraft string
}

func (f *leaveFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.leaveType, "type", "", "leave type (Sick, Emergency, Preplanned, Casual, Annual)")
	cmd.Flags().StringVar(&f.date, "date", "", "leave date for a single-day request (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.duration, "duration", "", "single-day granularity (First Half, Second Half, Full Day)")
	cmd.Flags().StringVar(&f.start, "start", "", "range start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.end, "end", "", "range end date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.reason, "reason", "", "reason for the leave")
	cmd.Flags().StringVar(&f.attach, "attach", "", "supporting document to upload")
}

func (f *leaveFlags) span() intake.Span {
	if f.start != "" || f.end != "" {
		return intake.SpanDateRange
	}
	return intake.SpanSingleDay
}

func newLeaveApplyCommand(app *App) *cobra.Command {
	flags := &leaveFlags{}

	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Submit a new leave request",
		RunE: func(cmd *cobra.Command, args []string) error {
			dlg := dialog.New(nil)
			if err := dlg.Open(flags.span()); err != nil {
				return err
			}
			defer closeDialog(dlg)

			resumed := false
			if flags.draft != "" {
				saved, err := app.drafts.Get(flags.draft)
				if err != nil {
					return err
				}
				*dlg.Draft() = *saved
				resumed = true
			}

			applyFlagsToDraft(flags, dlg.Draft())
			if err := dlg.FieldEdited(); err != nil {
				return err
			}

			if flags.attach != "" {
				if err := attachFile(app, dlg, flags.attach); err != nil {
					return err
				}
			}

			if flags.saveDraft != "" {
				if err := app.drafts.Save(flags.saveDraft, dlg.Draft()); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Draft saved as %q\n", flags.saveDraft)
				return nil
			}

			if err := submitDialog(cmd, app, dlg); err != nil {
				return err
			}
			if resumed {
				_ = app.drafts.Delete(flags.draft)
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&flags.draft, "draft", "", "resume a saved draft by name")
	cmd.Flags().StringVar(&flags.saveDraft, "save-draft", "", "save the draft under this name instead of submitting")
	return cmd
}

func newLeaveEditCommand(app *App) *cobra.Command {
	flags := &leaveFlags{}

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a pending leave request",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			leaves, err := app.api.Leaves(cmd.Context(), hrms.LeaveFilter{})
			if err != nil {
				return err
			}

			var target *models.LeaveRequest
			for i := range leaves {
				if leaves[i].ID == args[0] {
					target = &leaves[i]
					break
				}
			}
			if target == nil {
				return fmt.Errorf("leave request %q not found", args[0])
			}

			dlg := dialog.New(nil)
			if err := dlg.OpenForEdit(*target); err != nil {
				if errors.Is(err, dialog.ErrGuardFailed) {
					return fmt.Errorf("leave request %q is not editable: only pending requests with a future start date can change", args[0])
				}
				return err
			}
			defer closeDialog(dlg)

			applyFlagsToDraft(flags, dlg.Draft())
			if err := dlg.FieldEdited(); err != nil {
				return err
			}

			if flags.attach != "" {
				if err := attachFile(app, dlg, flags.attach); err != nil {
					return err
				}
			}

			return submitDialog(cmd, app, dlg)
		},
	}

	flags.register(cmd)
	return cmd
}

// applyFlagsToDraft overlays the non-empty flags onto the draft, so a
// resumed or pre-populated draft keeps fields the caller did not override.
func applyFlagsToDraft(flags *leaveFlags, draft *intake.LeaveRequestDraft) {
	if flags.leaveType != "" {
		draft.LeaveType = models.LeaveType(flags.leaveType)
	}
	if flags.date != "" {
		draft.Date = flags.date
	}
	if flags.duration != "" {
		draft.Duration = models.LeaveDuration(flags.duration)
	}
	if flags.start != "" {
		draft.StartDate = flags.start
	}
	if flags.end != "" {
		draft.EndDate = flags.end
	}
	if flags.reason != "" {
		draft.Reason = flags.reason
	}
}

// attachFile gates, authorizes and uploads a supporting document under the
// dialog's context so an abandoned dialog cancels the transfer.
func attachFile(app *App, dlg *dialog.Dialog, path string) error {
	file, err := loadUploadFile(path)
	if err != nil {
		return err
	}

	ctx, err := dlg.FileChosen()
	if err != nil {
		return err
	}

	att, err := app.uploader.Upload(ctx, file, app.cfg.Upload.Constraint())
	if err != nil {
		_ = dlg.UploadFailed()
		return err
	}
	return dlg.UploadSucceeded(att)
}

// loadUploadFile reads a local file into an upload, keeping only the base
// name so the attachment filename never carries a local path.
func loadUploadFile(path string) (upload.File, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return upload.File{}, fmt.Errorf("failed to read attachment: %w", err)
	}
	name := filepath.Base(path)
	return upload.File{
		Name:     name,
		MIMEType: upload.DetectMIMEType(name, content),
		Content:  content,
	}, nil
}

// submitDialog validates the draft, submits it to the backend and settles
// the dialog on the outcome.
func submitDialog(cmd *cobra.Command, app *App, dlg *dialog.Dialog) error {
	res, err := dlg.Submit()
	if err != nil {
		return err
	}
	if !res.Valid {
		printFieldErrors(cmd, res.Errors)
		return fmt.Errorf("leave request rejected by validation")
	}

	user, err := app.api.Me(cmd.Context())
	if err != nil {
		return rejectSubmission(dlg, err)
	}
	payload := buildPayload(dlg.Draft(), user.EmployeeID)

	var saved *models.LeaveRequest
	if id := dlg.EditingID(); id != "" {
		saved, err = app.api.UpdateLeave(cmd.Context(), id, payload)
	} else {
		saved, err = app.api.ApplyLeave(cmd.Context(), payload)
	}
	if err != nil {
		return rejectSubmission(dlg, err)
	}

	if err := dlg.Accepted(); err != nil {
		return err
	}
	detail := fmt.Sprintf("%s %s to %s", saved.LeaveType, saved.StartDate, saved.EndDate)
	_ = app.history.RecordSubmission(saved.ID, detail)
	fmt.Fprintf(cmd.OutOrStdout(), "Leave request %s submitted (%s)\n", saved.ID, saved.Status)
	return nil
}

// rejectSubmission returns the dialog to editing after a failed submission.
// Backend rejections and transport failures settle the same way: the draft
// survives with the failure surfaced as a field error.
func rejectSubmission(dlg *dialog.Dialog, err error) error {
	detail := err.Error()
	var apiErr *hrms.APIError
	if errors.As(err, &apiErr) {
		detail = apiErr.Detail
	}
	_ = dlg.Rejected(map[string]string{"request": detail})
	return err
}

// buildPayload maps a validated draft onto the submission payload. A
// single-day draft submits with start and end equal to the chosen date.
func buildPayload(draft *intake.LeaveRequestDraft, employeeID string) hrms.CreateLeaveRequest {
	req := hrms.CreateLeaveRequest{
		EmployeeID: employeeID,
		LeaveType:  draft.LeaveType.String(),
		Reason:     draft.Reason,
	}

	if draft.Span == intake.SpanSingleDay {
		req.StartDate = draft.Date
		req.EndDate = draft.Date
		req.Duration = string(draft.Duration)
	} else {
		req.StartDate = draft.StartDate
		req.EndDate = draft.EndDate
		req.Duration = rangeDuration(draft.StartDate, draft.EndDate)
	}

	if att, ok := draft.Attachment(); ok {
		req.Attachment = &att
	}
	return req
}

// rangeDuration renders an inclusive date range as "N day(s)". The dates
// have already passed validation, so parse errors leave the field empty.
func rangeDuration(start, end string) string {
	from, err1 := time.Parse(intake.DateLayout, start)
	to, err2 := time.Parse(intake.DateLayout, end)
	if err1 != nil || err2 != nil {
		return ""
	}
	days := int(to.Sub(from).Hours()/24) + 1
	if days == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", days)
}

func closeDialog(dlg *dialog.Dialog) {
	if dlg.State() != dialog.StateClosed {
		_ = dlg.Close()
	}
}

func newLeaveListCommand(app *App) *cobra.Command {
	var filter hrms.LeaveFilter

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List leave requests",
		RunE: func(cmd *cobra.Command, args []string) error {
			leaves, err := app.api.Leaves(cmd.Context(), filter)
			if err != nil {
				return err
			}
			if len(leaves) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No leave requests")
				return nil
			}

			now := time.Now()
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTYPE\tSTART\tEND\tDURATION\tSTATUS\tEDITABLE")
			for _, lv := range leaves {
				editable := ""
				if intake.CanEdit(lv, now) {
					editable = "yes"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
					lv.ID, lv.LeaveType, lv.StartDate, lv.EndDate, lv.Duration, lv.Status, editable)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&filter.Status, "status", "", "filter by status (pending, approved, rejected)")
	cmd.Flags().StringVar(&filter.LeaveType, "leave-type", "", "filter by leave type")
	cmd.Flags().StringVar(&filter.FromDate, "from", "", "window start (YYYY-MM-DD)")
	cmd.Flags().StringVar(&filter.ToDate, "to", "", "window end (YYYY-MM-DD)")
	return cmd
}

func newLeaveBalanceCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "balance",
		Short: "Show the remaining leave allowance",
		RunE: func(cmd *cobra.Command, args []string) error {
			balance, err := app.api.LeaveBalance(cmd.Context())
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintf(w, "Year\t%d\n", balance.Year)
			for leaveType, remaining := range balance.Balances {
				fmt.Fprintf(w, "%s\t%d\n", leaveType, remaining)
			}
			return w.Flush()
		},
	}
}
