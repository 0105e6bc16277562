package quote

import (
	"fmt"

	"freightflow/internal/pkg/errs"
)

// Status represents the lifecycle state of a supplier quote.
//
// State transitions:
//
//	Submitted ──┬──> Selected
//	            └──> Rejected
//
// Both Selected and Rejected are terminal. At most one quote per transport
// request may ever be Selected; the selection routine rejects all sibling
// quotes in the same transaction that selects the winner.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// Submitted is the initial status of a quote received from a supplier.
	Submitted

	// Selected marks the winning quote for its transport request.
	Selected

	// Rejected marks a quote that lost the evaluation.
	Rejected
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "Unknown",
		Submitted: "Submitted",
		Selected:  "Selected",
		Rejected:  "Rejected",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Submitted: "Submitted",
		Selected:  "Selected",
		Rejected:  "Rejected",
	}
}

// Validate checks if the Status value is valid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// Select transitions the status to Selected. Only valid from Submitted.
func (s Status) Select() (Status, error) {
	if s != Submitted {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to select", s.String()),
		)
	}

	return Selected, nil
}

// Reject transitions the status to Rejected. Only valid from Submitted:
// a selected quote can never be demoted to rejected.
func (s Status) Reject() (Status, error) {
	if s != Submitted {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to reject", s.String()),
		)
	}

	return Rejected, nil
}
