package tender

import (
	"fmt"

	"freightflow/internal/pkg/errs"
)

// Status represents the lifecycle state of a tender.
//
// State transitions:
//
//	Active ──> Closed
//
// A tender is Active while suppliers may submit quotes and becomes Closed
// once a winning quote has been selected or the evaluation window has
// passed. Closed is terminal: a closed tender is never reopened; a new
// automation cycle creates a new tender instead.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// Active means the tender is open for quote submission and evaluation.
	Active

	// Closed means quote collection has finished for this tender.
	Closed
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown: "Unknown",
		Active:  "Active",
		Closed:  "Closed",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Active: "Active",
		Closed: "Closed",
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

// Close transitions the status to Closed. Only valid from Active.
func (s Status) Close() (Status, error) {
	if s != Active {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to close", s.String()),
		)
	}

	return Closed, nil
}
