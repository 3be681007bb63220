package components

// Outcome is what a dialog reports back to the model after a key press
type Outcome int

const (
	OutcomePending           Outcome = iota // Still open
	OutcomeConfirmed                        // OK / Yes
	OutcomeCancelled                        // Esc / No
	OutcomeUnmanageRequested                // Edit dialog: drop the managed flag
	OutcomeDeleteRequested                  // Edit dialog: delete the entry
	OutcomeBrowseRequested                  // Add dialog: pick a file
)

// Done reports whether the dialog should close
func (o Outcome) Done() bool {
	return o != OutcomePending && o != OutcomeBrowseRequested
}
