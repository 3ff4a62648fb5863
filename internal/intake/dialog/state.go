// Package dialog models the leave-intake dialog as an explicit state
// machine, independent of any rendering layer. The machine decides which
// intake operation (validation, upload, submission) is legal at any moment.
package dialog

// State is a dialog lifecycle state
type State string

const (
	StateClosed        State = "CLOSED"
	StateOpenEmpty     State = "OPEN_EMPTY"
	StateOpenEditing   State = "OPEN_EDITING"
	StateOpenUploading State = "OPEN_UPLOADING"
	StateSubmitting    State = "SUBMITTING"
)

var validStates = map[State]bool{
	StateClosed:        true,
	StateOpenEmpty:     true,
	StateOpenEditing:   true,
	StateOpenUploading: true,
	StateSubmitting:    true,
}

// IsValid returns true if the state is a known dialog state
func (s State) IsValid() bool {
	return validStates[s]
}

// String returns the string representation of the state
func (s State) String() string {
	return string(s)
}

// Trigger is an event that can cause a dialog state transition
type Trigger string

const (
	TriggerOpen            Trigger = "OPEN"
	TriggerOpenForEdit     Trigger = "OPEN_FOR_EDIT"
	TriggerEditField       Trigger = "EDIT_FIELD"
	TriggerChooseFile      Trigger = "CHOOSE_FILE"
	TriggerUploadSucceeded Trigger = "UPLOAD_SUCCEEDED"
	TriggerUploadFailed    Trigger = "UPLOAD_FAILED"
	TriggerSubmit          Trigger = "SUBMIT"
	TriggerAccepted        Trigger = "ACCEPTED"
	TriggerRejected        Trigger = "REJECTED"
	TriggerClose           Trigger = "CLOSE"
)

// String returns the string representation of the trigger
func (t Trigger) String() string {
	return string(t)
}
