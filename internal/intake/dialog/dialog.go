package dialog

import (
	"context"
	"time"

	"github.com/hrmstack/leavectl/internal/intake"
	"github.com/hrmstack/leavectl/internal/models"
)

// Dialog drives one leave-intake session: it owns the draft, the state
// machine governing which operation is legal, and a context cancelled when
// the dialog closes so abandoned uploads are provably discarded rather than
// racing a closed dialog.
type Dialog struct {
	machine Machine
	draft   *intake.LeaveRequestDraft
	editing *models.LeaveRequest
	errors  map[string]string
	clock   func() time.Time

	ctx    context.Context
	cancel context.CancelFunc
}

// New creates a closed dialog. clock may be nil, defaulting to time.Now.
func New(clock func() time.Time) *Dialog {
	if clock == nil {
		clock = time.Now
	}
	d := &Dialog{clock: clock}
	d.machine = buildTable(d).Build(StateClosed)
	return d
}

// buildTable wires the intake transition table. Submit carries the validator
// as a guard so the machine itself refuses invalid drafts; OpenForEdit is
// guarded by the pending-and-not-past rule.
func buildTable(d *Dialog) Builder {
	b := NewBuilder()

	b.Configure(StateClosed).
		Permit(TriggerOpen, StateOpenEmpty).
		PermitIf(TriggerOpenForEdit, StateOpenEditing, d.editAllowed)

	b.Configure(StateOpenEmpty).
		Permit(TriggerEditField, StateOpenEditing).
		Permit(TriggerChooseFile, StateOpenUploading).
		Permit(TriggerClose, StateClosed)

	b.Configure(StateOpenEditing).
		Permit(TriggerEditField, StateOpenEditing).
		Permit(TriggerChooseFile, StateOpenUploading).
		PermitIf(TriggerSubmit, StateSubmitting, d.draftValid).
		Permit(TriggerClose, StateClosed)

	b.Configure(StateOpenUploading).
		Permit(TriggerUploadSucceeded, StateOpenEditing).
		Permit(TriggerUploadFailed, StateOpenEditing).
		Permit(TriggerClose, StateClosed)

	b.Configure(StateSubmitting).
		Permit(TriggerAccepted, StateClosed).
		Permit(TriggerRejected, StateOpenEditing)

	return b
}

func (d *Dialog) draftValid(context.Context) bool {
	if d.draft == nil {
		return false
	}
	return intake.Validate(d.draft, d.clock()).Valid
}

func (d *Dialog) editAllowed(context.Context) bool {
	return d.editing != nil && intake.CanEdit(*d.editing, d.clock())
}

// State returns the current dialog state
func (d *Dialog) State() State {
	return d.machine.State()
}

// Draft returns the in-progress draft, nil while the dialog is closed
func (d *Dialog) Draft() *intake.LeaveRequestDraft {
	return d.draft
}

// FieldErrors returns the field errors surfaced by the last failed
// validation or backend rejection
func (d *Dialog) FieldErrors() map[string]string {
	return d.errors
}

// Context returns the dialog-scoped context. In-flight network work started
// within this dialog must use it so closing the dialog cancels the work.
func (d *Dialog) Context() context.Context {
	if d.ctx == nil {
		return context.Background()
	}
	return d.ctx
}

// Open opens the dialog with an empty draft of the given variant
func (d *Dialog) Open(span intake.Span) error {
	if err := d.machine.Fire(context.Background(), TriggerOpen); err != nil {
		return err
	}
	d.begin(intake.NewLeaveRequestDraft(span), nil)
	return nil
}

// OpenForEdit reopens an existing request for editing, pre-populating the
// draft. Only pending, non-past requests pass the guard.
func (d *Dialog) OpenForEdit(leave models.LeaveRequest) error {
	d.editing = &leave
	if err := d.machine.Fire(context.Background(), TriggerOpenForEdit); err != nil {
		d.editing = nil
		return err
	}

	draft := intake.NewLeaveRequestDraft(intake.SpanDateRange)
	draft.LeaveType = models.LeaveType(leave.LeaveType)
	draft.StartDate = leave.StartDate
	draft.EndDate = leave.EndDate
	draft.Reason = leave.Reason
	if leave.Attachment != nil && leave.Attachment.Complete() {
		_ = draft.SetAttachment(leave.Attachment.URL, leave.Attachment.Filename)
	}
	d.begin(draft, &leave)
	return nil
}

func (d *Dialog) begin(draft *intake.LeaveRequestDraft, editing *models.LeaveRequest) {
	d.draft = draft
	d.editing = editing
	d.errors = nil
	d.ctx, d.cancel = context.WithCancel(context.Background())
}

// EditingID returns the id of the request being edited, empty for new drafts
func (d *Dialog) EditingID() string {
	if d.editing == nil {
		return ""
	}
	return d.editing.ID
}

// FieldEdited records a field change, moving an empty dialog into editing
func (d *Dialog) FieldEdited() error {
	return d.machine.Fire(context.Background(), TriggerEditField)
}

// FileChosen moves the dialog into the uploading state and returns the
// context the upload must run under
func (d *Dialog) FileChosen() (context.Context, error) {
	if err := d.machine.Fire(context.Background(), TriggerChooseFile); err != nil {
		return nil, err
	}
	return d.ctx, nil
}

// UploadSucceeded records the uploaded attachment and returns to editing
func (d *Dialog) UploadSucceeded(att models.Attachment) error {
	if err := d.machine.Fire(context.Background(), TriggerUploadSucceeded); err != nil {
		return err
	}
	return d.draft.SetAttachment(att.URL, att.Filename)
}

// UploadFailed returns to editing without recording an attachment. The
// failure does not block resubmission; retrying the upload is the caller's
// decision.
func (d *Dialog) UploadFailed() error {
	return d.machine.Fire(context.Background(), TriggerUploadFailed)
}

// Submit validates the draft and, when it passes, moves to submitting.
// On failure the field errors are retained and the dialog stays editable.
func (d *Dialog) Submit() (intake.Result, error) {
	res := intake.Validate(d.draft, d.clock())
	if !res.Valid {
		d.errors = res.Errors
		return res, nil
	}
	if err := d.machine.Fire(context.Background(), TriggerSubmit); err != nil {
		return res, err
	}
	d.errors = nil
	return res, nil
}

// Accepted closes the dialog after backend acceptance and resets the draft
func (d *Dialog) Accepted() error {
	if err := d.machine.Fire(context.Background(), TriggerAccepted); err != nil {
		return err
	}
	d.draft.Reset()
	d.end()
	return nil
}

// Rejected returns to editing with the backend's field errors surfaced
func (d *Dialog) Rejected(fieldErrors map[string]string) error {
	if err := d.machine.Fire(context.Background(), TriggerRejected); err != nil {
		return err
	}
	d.errors = fieldErrors
	return nil
}

// Close abandons the dialog, cancelling any in-flight upload
func (d *Dialog) Close() error {
	if err := d.machine.Fire(context.Background(), TriggerClose); err != nil {
		return err
	}
	d.end()
	return nil
}

func (d *Dialog) end() {
	if d.cancel != nil {
		d.cancel()
	}
	d.draft = nil
	d.editing = nil
	d.errors = nil
	d.ctx = nil
	d.cancel = nil
}
