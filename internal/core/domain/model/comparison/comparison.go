package comparison

import (
	"errors"
	"fmt"
	"time"

	"freightflow/internal/core/domain/model/kernel"
	"freightflow/internal/core/domain/model/tender"
	"freightflow/internal/pkg/errs"
)

var (
	// ErrComparisonIsNotConstructed is returned when a QuotationComparison instance
	// was not created through the NewQuotationComparison factory method.
	ErrComparisonIsNotConstructed = errors.New("QuotationComparison must be created via NewQuotationComparison constructor")
)

// MatrixRow holds one quote's component and weighted scores within a
// comparison. Scores are on a 0-100 scale.
type MatrixRow struct {
	QuoteID          kernel.UUID
	SupplierID       kernel.UUID
	PriceScore       float64
	SpeedScore       float64
	ReliabilityScore float64
	WeightedScore    float64
}

// QuotationComparison is the immutable record of one evaluation run: the
// weights used, the full per-quote score matrix, the recommended winner, the
// generated recommendation text, and the confidence of the recommendation.
//
// A comparison is never mutated after creation. Re-running an evaluation for
// the same tender produces a new comparison record, preserving the audit
// trail of every automated decision.
type QuotationComparison struct {
	id        kernel.UUID
	tenantID  kernel.UUID
	tenderID  kernel.UUID
	requestID kernel.UUID

	weights        tender.CriteriaWeights
	matrix         []MatrixRow
	winningQuoteID kernel.UUID
	recommendation string
	reasoning      string
	confidence     float64
	createdAt      time.Time

	isConstructed bool
}

// NewQuotationComparison creates an immutable comparison record.
//
// Validation rules:
//   - all identifiers must be valid
//   - the matrix must contain at least one row
//   - the winning quote must appear in the matrix
//   - confidence must be in [0,1]
func NewQuotationComparison(
	id kernel.UUID,
	tenantID kernel.UUID,
	tenderID kernel.UUID,
	requestID kernel.UUID,
	weights tender.CriteriaWeights,
	matrix []MatrixRow,
	winningQuoteID kernel.UUID,
	recommendation string,
	reasoning string,
	confidence float64,
	createdAt time.Time,
) (*QuotationComparison, error) {
	c := &QuotationComparison{
		recommendation: recommendation,
		reasoning:      reasoning,
		createdAt:      createdAt,
		isConstructed:  true,
	}

	if err := errors.Join(
		c.setIDs(id, tenantID, tenderID, requestID),
		c.setWeights(weights),
		c.setMatrix(matrix, winningQuoteID),
		c.setConfidence(confidence),
	); err != nil {
		return nil, err
	}

	return c, nil
}

// Validate ensures the comparison was created through the constructor.
func (c *QuotationComparison) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrComparisonIsNotConstructed
	}

	return nil
}

// ID returns the comparison's unique identifier.
func (c *QuotationComparison) ID() kernel.UUID {
	return c.id
}

// TenantID returns the owning tenant's identifier.
func (c *QuotationComparison) TenantID() kernel.UUID {
	return c.tenantID
}

// TenderID returns the evaluated tender's identifier.
func (c *QuotationComparison) TenderID() kernel.UUID {
	return c.tenderID
}

// RequestID returns the underlying transport request's identifier.
func (c *QuotationComparison) RequestID() kernel.UUID {
	return c.requestID
}

// Weights returns the criteria weights used for this evaluation.
func (c *QuotationComparison) Weights() tender.CriteriaWeights {
	return c.weights
}

// Matrix returns a copy of the per-quote score matrix.
func (c *QuotationComparison) Matrix() []MatrixRow {
	rows := make([]MatrixRow, len(c.matrix))
	copy(rows, c.matrix)
	return rows
}

// WinningQuote returns the recommended quote's identifier.
func (c *QuotationComparison) WinningQuote() kernel.UUID {
	return c.winningQuoteID
}

// Recommendation returns the generated recommendation text.
func (c *QuotationComparison) Recommendation() string {
	return c.recommendation
}

// Reasoning returns the explanation of how the winner was chosen.
func (c *QuotationComparison) Reasoning() string {
	return c.reasoning
}

// Confidence returns how decisively the winner beat the runner-up, in [0,1].
func (c *QuotationComparison) Confidence() float64 {
	return c.confidence
}

// CreatedAt returns when this evaluation ran.
func (c *QuotationComparison) CreatedAt() time.Time {
	return c.createdAt
}

func (c *QuotationComparison) setIDs(id, tenantID, tenderID, requestID kernel.UUID) error {
	if err := errors.Join(
		id.Validate(),
		tenantID.Validate(),
		tenderID.Validate(),
		requestID.Validate(),
	); err != nil {
		return err
	}

	c.id = id
	c.tenantID = tenantID
	c.tenderID = tenderID
	c.requestID = requestID
	return nil
}

func (c *QuotationComparison) setWeights(weights tender.CriteriaWeights) error {
	if err := weights.Validate(); err != nil {
		return err
	}
	c.weights = weights
	return nil
}

func (c *QuotationComparison) setMatrix(matrix []MatrixRow, winningQuoteID kernel.UUID) error {
	if len(matrix) == 0 {
		return errs.NewValueIsRequiredError("comparison matrix")
	}

	if err := winningQuoteID.Validate(); err != nil {
		return err
	}

	found := false
	for _, row := range matrix {
		if row.QuoteID.IsEqual(winningQuoteID) {
			found = true
			break
		}
	}
	if !found {
		return errs.NewValueIsInvalidErrorWithCause("winning quote",
			fmt.Errorf("quote %s is not part of the comparison matrix", winningQuoteID))
	}

	c.matrix = make([]MatrixRow, len(matrix))
	copy(c.matrix, matrix)
	c.winningQuoteID = winningQuoteID
	return nil
}

func (c *QuotationComparison) setConfidence(confidence float64) error {
	if confidence < 0 || confidence > 1 {
		return errs.NewValueIsOutOfRangeError("confidence", confidence, 0, 1)
	}
	c.confidence = confidence
	return nil
}
