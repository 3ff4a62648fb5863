package dialog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hrmstack/leavectl/internal/intake"
	"github.com/hrmstack/leavectl/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, 6, 14, 9, 0, 0, 0, time.UTC)

func testClock() time.Time { return testNow }

func fillValidDraft(d *Dialog) {
	draft := d.Draft()
	draft.LeaveType = models.LeaveTypeAnnual
	draft.StartDate = "2024-06-20"
	draft.EndDate = "2024-06-21"
	draft.Reason = "visiting family for the holidays"
}

func TestDialog_OpensEmpty(t *testing.T) {
	d := New(testClock)
	assert.Equal(t, StateClosed, d.State())
	assert.Nil(t, d.Draft())

	require.NoError(t, d.Open(intake.SpanDateRange))
	assert.Equal(t, StateOpenEmpty, d.State())
	require.NotNil(t, d.Draft())
}

func TestDialog_FieldChangeEntersEditing(t *testing.T) {
	d := New(testClock)
	require.NoError(t, d.Open(intake.SpanDateRange))

	require.NoError(t, d.FieldEdited())
	assert.Equal(t, StateOpenEditing, d.State())

	// Further edits keep the dialog in editing.
	require.NoError(t, d.FieldEdited())
	assert.Equal(t, StateOpenEditing, d.State())
}

func TestDialog_SubmitRequiresValidDraft(t *testing.T) {
	d := New(testClock)
	require.NoError(t, d.Open(intake.SpanDateRange))
	require.NoError(t, d.FieldEdited())

	res, err := d.Submit()
	require.NoError(t, err)
	assert.False(t, res.Valid)
	assert.Equal(t, StateOpenEditing, d.State())
	assert.NotEmpty(t, d.FieldErrors())

	fillValidDraft(d)
	res, err = d.Submit()
	require.NoError(t, err)
	assert.True(t, res.Valid)
	assert.Equal(t, StateSubmitting, d.State())
	assert.Empty(t, d.FieldErrors())
}

func TestDialog_AcceptanceCloses(t *testing.T) {
	d := New(testClock)
	require.NoError(t, d.Open(intake.SpanDateRange))
	require.NoError(t, d.FieldEdited())
	fillValidDraft(d)
	_, err := d.Submit()
	require.NoError(t, err)

	require.NoError(t, d.Accepted())
	assert.Equal(t, StateClosed, d.State())
	assert.Nil(t, d.Draft())
}

func TestDialog_BackendRejectionReturnsToEditing(t *testing.T) {
	d := New(testClock)
	require.NoError(t, d.Open(intake.SpanDateRange))
	require.NoError(t, d.FieldEdited())
	fillValidDraft(d)
	_, err := d.Submit()
	require.NoError(t, err)

	backendErrors := map[string]string{"start_date": "overlaps an approved leave"}
	require.NoError(t, d.Rejected(backendErrors))
	assert.Equal(t, StateOpenEditing, d.State())
	assert.Equal(t, backendErrors, d.FieldErrors())
	require.NotNil(t, d.Draft())
}

func TestDialog_UploadRoundTrip(t *testing.T) {
	d := New(testClock)
	require.NoError(t, d.Open(intake.SpanDateRange))
	require.NoError(t, d.FieldEdited())

	ctx, err := d.FileChosen()
	require.NoError(t, err)
	require.NotNil(t, ctx)
	assert.Equal(t, StateOpenUploading, d.State())

	att := models.Attachment{URL: "https://cdn.example.com/doc.pdf", Filename: "doc.pdf"}
	require.NoError(t, d.UploadSucceeded(att))
	assert.Equal(t, StateOpenEditing, d.State())

	got, ok := d.Draft().Attachment()
	require.True(t, ok)
	assert.Equal(t, att, got)
}

func TestDialog_UploadFailureDoesNotBlockResubmission(t *testing.T) {
	d := New(testClock)
	require.NoError(t, d.Open(intake.SpanDateRange))
	require.NoError(t, d.FieldEdited())

	_, err := d.FileChosen()
	require.NoError(t, err)
	require.NoError(t, d.UploadFailed())
	assert.Equal(t, StateOpenEditing, d.State())

	_, ok := d.Draft().Attachment()
	assert.False(t, ok)

	fillValidDraft(d)
	res, err := d.Submit()
	require.NoError(t, err)
	assert.True(t, res.Valid)
}

func TestDialog_CloseCancelsInFlightUpload(t *testing.T) {
	d := New(testClock)
	require.NoError(t, d.Open(intake.SpanDateRange))
	require.NoError(t, d.FieldEdited())

	ctx, err := d.FileChosen()
	require.NoError(t, err)
	require.NoError(t, ctx.Err())

	require.NoError(t, d.Close())
	assert.Equal(t, StateClosed, d.State())
	assert.ErrorIs(t, ctx.Err(), context.Canceled)
}

func TestDialog_EditOnlyOfferedForPendingNonPast(t *testing.T) {
	pending := models.LeaveRequest{
		ID:        "lv-1",
		Status:    models.LeaveStatusPending,
		LeaveType: "Annual",
		StartDate: "2024-06-20",
		EndDate:   "2024-06-21",
		Reason:    "visiting family for the holidays",
	}

	d := New(testClock)
	require.NoError(t, d.OpenForEdit(pending))
	assert.Equal(t, StateOpenEditing, d.State())
	assert.Equal(t, "lv-1", d.EditingID())
	assert.Equal(t, "2024-06-20", d.Draft().StartDate)

	approved := pending
	approved.Status = models.LeaveStatusApproved
	d2 := New(testClock)
	err := d2.OpenForEdit(approved)
	assert.ErrorIs(t, err, ErrGuardFailed)
	assert.Equal(t, StateClosed, d2.State())

	past := pending
	past.StartDate = "2024-06-01"
	d3 := New(testClock)
	err = d3.OpenForEdit(past)
	assert.ErrorIs(t, err, ErrGuardFailed)
}

func TestDialog_InvalidTransitions(t *testing.T) {
	d := New(testClock)

	// Closed dialog accepts no editing events.
	assert.ErrorIs(t, d.FieldEdited(), ErrInvalidTransition)
	_, err := d.FileChosen()
	assert.ErrorIs(t, err, ErrInvalidTransition)

	require.NoError(t, d.Open(intake.SpanDateRange))

	// Cannot reopen an already open dialog.
	err = d.Open(intake.SpanDateRange)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestMachine_PermittedTriggers(t *testing.T) {
	d := New(testClock)
	require.NoError(t, d.Open(intake.SpanDateRange))
	require.NoError(t, d.FieldEdited())

	triggers := d.machine.PermittedTriggers()
	assert.ElementsMatch(t, []Trigger{TriggerEditField, TriggerChooseFile, TriggerSubmit, TriggerClose}, triggers)
}

func TestMachine_GuardReceivesContext(t *testing.T) {
	b := NewBuilder()
	var seen context.Context
	b.Configure(StateClosed).PermitIf(TriggerOpen, StateOpenEmpty, func(ctx context.Context) bool {
		seen = ctx
		return true
	})
	m := b.Build(StateClosed)

	type key struct{}
	ctx := context.WithValue(context.Background(), key{}, "v")
	require.NoError(t, m.Fire(ctx, TriggerOpen))
	assert.Equal(t, ctx, seen)
	assert.Equal(t, StateOpenEmpty, m.State())
}

func TestMachine_GuardFallthrough(t *testing.T) {
	b := NewBuilder()
	b.Configure(StateClosed).
		PermitIf(TriggerOpen, StateOpenEmpty, func(context.Context) bool { return false }).
		PermitIf(TriggerOpen, StateOpenEditing, func(context.Context) bool { return true })
	m := b.Build(StateClosed)

	require.NoError(t, m.Fire(context.Background(), TriggerOpen))
	assert.Equal(t, StateOpenEditing, m.State())
}

func TestMachine_AllGuardsFail(t *testing.T) {
	b := NewBuilder()
	b.Configure(StateClosed).
		PermitIf(TriggerOpen, StateOpenEmpty, func(context.Context) bool { return false })
	m := b.Build(StateClosed)

	err := m.Fire(context.Background(), TriggerOpen)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrGuardFailed))
	assert.Equal(t, StateClosed, m.State())
}
