package request

import (
	"fmt"

	"freightflow/internal/pkg/errs"
)

// Status represents the lifecycle state of a transport request.
// Transitions are strictly monotonic: once a later stage has completed, an
// earlier stage can never be re-entered for the same request.
//
// State transitions:
//
//	Created ──> Quoted ──> Delivered
//
// A request is created externally by the customer, becomes Quoted once a
// tender has been issued to suppliers, and reaches Delivered when the
// resulting order completes its delivery stage.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Created is the initial status of an externally created request.
	// Requests in this status are waiting for a tender to be issued.
	Created

	// Quoted indicates a tender has been issued and suppliers are bidding.
	// The request stays Quoted through evaluation, selection, and order
	// processing; only delivery completion moves it forward.
	Quoted

	// Delivered indicates the full procurement pipeline has completed.
	// This is a final state with no further transitions allowed.
	Delivered
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "Unknown",
		Created:   "Created",
		Quoted:    "Quoted",
		Delivered: "Delivered",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Created:   "Created",
		Quoted:    "Quoted",
		Delivered: "Delivered",
	}
}

// Validate checks if the Status value is valid.
// Valid statuses are Created, Quoted, and Delivered.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
// Implements fmt.Stringer and is safe on any value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// MarkQuoted transitions the status to Quoted.
//
// Valid transitions:
//   - Created -> Quoted (tender issued)
//
// Any other source status is rejected: re-quoting an already quoted or
// delivered request would break the monotonic stage ordering.
func (s Status) MarkQuoted() (Status, error) {
	if s != Created {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to quote", s.String()),
		)
	}

	return Quoted, nil
}

// MarkDelivered transitions the status to Delivered.
//
// Valid transitions:
//   - Quoted -> Delivered (order delivery completed)
//
// Delivered is a final state; completing an already delivered request or a
// request that was never quoted is rejected.
func (s Status) MarkDelivered() (Status, error) {
	if s != Quoted {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to deliver", s.String()),
		)
	}

	return Delivered, nil
}
