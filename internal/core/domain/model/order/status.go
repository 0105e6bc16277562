package order

import (
	"fmt"

	"freightflow/internal/pkg/errs"
)

// Status represents the lifecycle state of a transport order.
//
// State transitions:
//
//	Confirmed ──> Processing ──> Delivered
//
// An order is Confirmed at creation (a quote has been selected), becomes
// Processing once confirmation documents and tracking are arranged, and is
// Delivered when delivery has been verified and invoiced. Transitions are
// monotonic; stage handlers re-invoked on a later status must no-op.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// Confirmed is the initial status after quote selection.
	Confirmed

	// Processing indicates tracking and confirmation paperwork are in place
	// and the shipment is underway.
	Processing

	// Delivered indicates the order completed delivery and was invoiced.
	// This is a final state with no further transitions allowed.
	Delivered
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "Unknown",
		Confirmed:  "Confirmed",
		Processing: "Processing",
		Delivered:  "Delivered",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Confirmed:  "Confirmed",
		Processing: "Processing",
		Delivered:  "Delivered",
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

// StartProcessing transitions the status to Processing. Only valid from Confirmed.
func (s Status) StartProcessing() (Status, error) {
	if s != Confirmed {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to start processing", s.String()),
		)
	}

	return Processing, nil
}

// CompleteDelivery transitions the status to Delivered. Only valid from Processing.
func (s Status) CompleteDelivery() (Status, error) {
	if s != Processing {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to complete delivery", s.String()),
		)
	}

	return Delivered, nil
}
