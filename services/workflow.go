package services

import (
	"fmt"

	"github.com/pocketbase/pocketbase"
)

// approveNext maps each status to the stage an approval advances it to.
// Disbursed is final; Rejected does not advance.
var approveNext = map[string]string{
	StatusDraft:      StatusEvaluation,
	StatusEvaluation: StatusProposal,
	StatusProposal:   StatusPR,
	StatusPR:         StatusObligated,
	StatusObligated:  StatusDisbursed,
	// A returned proposal re-enters evaluation when approved again.
	StatusReturned: StatusEvaluation,
}

// returnable statuses can be sent back to the proponent; terminal and
// already-returned records cannot.
var returnable = map[string]bool{
	StatusDraft:      true,
	StatusEvaluation: true,
	StatusProposal:   true,
	StatusPR:         true,
	StatusObligated:  true,
}

// TransitionAction is one of the explicit status-transition actions a record
// accepts after creation.
type TransitionAction string

const (
	ActionApprove TransitionAction = "approve"
	ActionReturn  TransitionAction = "return"
	ActionReject  TransitionAction = "reject"
)

// NextStatus computes the status an action moves a record to, or an error
// when the transition is not allowed from the current status.
func NextStatus(current string, action TransitionAction) (string, error) {
	switch action {
	case ActionApprove:
		next, ok := approveNext[current]
		if !ok {
			return "", fmt.Errorf("cannot approve a record in status %q", current)
		}
		return next, nil
	case ActionReturn:
		if !returnable[current] {
			return "", fmt.Errorf("cannot return a record in status %q", current)
		}
		return StatusReturned, nil
	case ActionReject:
		if current == StatusRejected || current == StatusDisbursed {
			return "", fmt.Errorf("cannot reject a record in status %q", current)
		}
		return StatusRejected, nil
	default:
		return "", fmt.Errorf("unknown transition action %q", action)
	}
}

// ApplyTransition loads a transaction record, applies the action and saves
// the new status. It returns the updated status.
func ApplyTransition(app *pocketbase.PocketBase, recordID string, action TransitionAction) (string, error) {
	record, err := app.FindRecordById("transactions", recordID)
	if err != nil {
		return "", fmt.Errorf("transaction not found: %w", err)
	}

	next, err := NextStatus(record.GetString("status"), action)
	if err != nil {
		return "", err
	}

	record.Set("status", next)
	if err := app.Save(record); err != nil {
		return "", fmt.Errorf("save transition: %w", err)
	}
	return next, nil
}
