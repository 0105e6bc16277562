package services

import (
	"errors"
	"time"

	"freightflow/internal/core/domain/model/kernel"
	"freightflow/internal/core/domain/model/order"
	"freightflow/internal/core/domain/model/quote"
	"freightflow/internal/pkg/errs"
)

// ErrQuoteAlreadySelected is returned when a selection run finds a sibling
// quote already in Selected status. At most one quote per request may ever be
// selected; a second selection attempt must fail loudly instead of silently
// producing a double selection.
var ErrQuoteAlreadySelected = errors.New("a quote was already selected for this request")

// DecisionGate applies the tenant's auto-selection policy: a recommendation
// is finalized without human review only when its confidence strictly exceeds
// the configured threshold.
//
// The gate is also the single enforcement point for quote selection itself
// (SelectWinner), shared by the automated path and the manual override path,
// so the at-most-one-selected invariant lives in exactly one place.
type DecisionGate struct {
	threshold     float64
	markupPercent float64
}

// NewDecisionGate creates a gate with the given confidence threshold and
// order markup. Both are tenant business policy, not algorithmic constants.
//
// Validation rules:
//   - threshold must be in [0,1]
//   - markupPercent must be non-negative (0.10 means a 10% markup)
func NewDecisionGate(threshold float64, markupPercent float64) (DecisionGate, error) {
	if threshold < 0 || threshold > 1 {
		return DecisionGate{}, errs.NewValueIsOutOfRangeError("auto-select threshold", threshold, 0, 1)
	}

	if markupPercent < 0 {
		return DecisionGate{}, errs.NewValueIsOutOfRangeError("markup percent", markupPercent, 0, "unbounded")
	}

	return DecisionGate{threshold: threshold, markupPercent: markupPercent}, nil
}

// Threshold returns the configured auto-selection threshold.
func (g DecisionGate) Threshold() float64 {
	return g.threshold
}

// MarkupPercent returns the configured order markup fraction.
func (g DecisionGate) MarkupPercent() float64 {
	return g.markupPercent
}

// ShouldAutoSelect reports whether the given confidence clears the gate.
// The comparison is strict: confidence exactly at the threshold defers to
// manual review.
func (g DecisionGate) ShouldAutoSelect(confidence float64) bool {
	return confidence > g.threshold
}

// SelectWinner finalizes a winning quote: the winner is marked Selected, every
// sibling quote for the same request is marked Rejected, and a TransportOrder
// is created from the winner's price with the configured markup.
//
// All three effects must be committed in one transaction by the caller. If any
// sibling is already Selected the routine fails with ErrQuoteAlreadySelected
// and mutates nothing.
//
// Returns the created order on success.
func (g DecisionGate) SelectWinner(
	orderID kernel.UUID,
	winner *quote.TransportQuote,
	siblings []*quote.TransportQuote,
	now time.Time,
) (*order.TransportOrder, error) {
	if err := winner.Validate(); err != nil {
		return nil, err
	}

	for _, sibling := range siblings {
		if err := sibling.Validate(); err != nil {
			return nil, err
		}

		if sibling.Status() == quote.Selected || (winner.Status() == quote.Selected && !sibling.IsEqual(winner)) {
			return nil, ErrQuoteAlreadySelected
		}
	}

	if winner.Status() == quote.Selected {
		return nil, ErrQuoteAlreadySelected
	}

	if err := winner.Select(); err != nil {
		return nil, err
	}

	for _, sibling := range siblings {
		if sibling.IsEqual(winner) {
			continue
		}

		if err := sibling.Reject(); err != nil {
			return nil, err
		}
	}

	return order.NewTransportOrder(
		orderID,
		winner.TenantID(),
		winner.RequestID(),
		winner.ID(),
		winner.SupplierID(),
		winner.Price(),
		g.markupPercent,
		now,
	)
}
