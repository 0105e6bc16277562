// Package comparisonrepo persists QuotationComparison records. Comparisons
// are append-only: rows are inserted once and never updated.
package comparisonrepo

import (
	"encoding/json"
	"time"

	"freightflow/internal/core/domain/model/comparison"
	"freightflow/internal/core/domain/model/kernel"
	"freightflow/internal/core/domain/model/tender"

	"github.com/google/uuid"
)

// ComparisonDTO is the database representation of a quotation comparison.
// The score matrix is stored as a JSONB document: it is read back whole for
// reporting and never queried by its parts.
type ComparisonDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	TenantID  uuid.UUID `gorm:"type:uuid;not null;index"`
	TenderID  uuid.UUID `gorm:"type:uuid;not null;index"`
	RequestID uuid.UUID `gorm:"type:uuid;not null;index"`

	WeightPrice       float64 `gorm:"type:numeric;not null"`
	WeightSpeed       float64 `gorm:"type:numeric;not null"`
	WeightReliability float64 `gorm:"type:numeric;not null"`

	Matrix         []byte    `gorm:"type:jsonb;not null"`
	WinningQuoteID uuid.UUID `gorm:"type:uuid;not null"`
	Recommendation string    `gorm:"type:text;not null"`
	Reasoning      string    `gorm:"type:text;not null"`
	Confidence     float64   `gorm:"type:numeric;not null"`

	CreatedAt time.Time `gorm:"not null"`
}

// TableName overrides GORM's default naming to use "comparisons".
func (ComparisonDTO) TableName() string {
	return "comparisons"
}

// matrixRowJSON is the JSONB shape of one matrix row.
type matrixRowJSON struct {
	QuoteID          uuid.UUID `json:"quote_id"`
	SupplierID       uuid.UUID `json:"supplier_id"`
	PriceScore       float64   `json:"price_score"`
	SpeedScore       float64   `json:"speed_score"`
	ReliabilityScore float64   `json:"reliability_score"`
	WeightedScore    float64   `json:"weighted_score"`
}

func fromDomain(aggregate *comparison.QuotationComparison) (ComparisonDTO, error) {
	rows := make([]matrixRowJSON, 0, len(aggregate.Matrix()))
	for _, row := range aggregate.Matrix() {
		rows = append(rows, matrixRowJSON{
			QuoteID:          row.QuoteID.Bytes(),
			SupplierID:       row.SupplierID.Bytes(),
			PriceScore:       row.PriceScore,
			SpeedScore:       row.SpeedScore,
			ReliabilityScore: row.ReliabilityScore,
			WeightedScore:    row.WeightedScore,
		})
	}

	matrix, err := json.Marshal(rows)
	if err != nil {
		return ComparisonDTO{}, err
	}

	return ComparisonDTO{
		ID:                aggregate.ID().Bytes(),
		TenantID:          aggregate.TenantID().Bytes(),
		TenderID:          aggregate.TenderID().Bytes(),
		RequestID:         aggregate.RequestID().Bytes(),
		WeightPrice:       aggregate.Weights().Price(),
		WeightSpeed:       aggregate.Weights().Speed(),
		WeightReliability: aggregate.Weights().Reliability(),
		Matrix:            matrix,
		WinningQuoteID:    aggregate.WinningQuote().Bytes(),
		Recommendation:    aggregate.Recommendation(),
		Reasoning:         aggregate.Reasoning(),
		Confidence:        aggregate.Confidence(),
		CreatedAt:         aggregate.CreatedAt(),
	}, nil
}

func toDomain(dto ComparisonDTO) (*comparison.QuotationComparison, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	tenantID, err := kernel.UUIDFromBytes(dto.TenantID[:])
	if err != nil {
		return nil, err
	}

	tenderID, err := kernel.UUIDFromBytes(dto.TenderID[:])
	if err != nil {
		return nil, err
	}

	requestID, err := kernel.UUIDFromBytes(dto.RequestID[:])
	if err != nil {
		return nil, err
	}

	winningQuoteID, err := kernel.UUIDFromBytes(dto.WinningQuoteID[:])
	if err != nil {
		return nil, err
	}

	weights, err := tender.NewCriteriaWeights(dto.WeightPrice, dto.WeightSpeed, dto.WeightReliability)
	if err != nil {
		return nil, err
	}

	var rows []matrixRowJSON
	if err = json.Unmarshal(dto.Matrix, &rows); err != nil {
		return nil, err
	}

	matrix := make([]comparison.MatrixRow, 0, len(rows))
	for _, row := range rows {
		quoteID, idErr := kernel.UUIDFromBytes(row.QuoteID[:])
		if idErr != nil {
			return nil, idErr
		}

		supplierID, idErr := kernel.UUIDFromBytes(row.SupplierID[:])
		if idErr != nil {
			return nil, idErr
		}

		matrix = append(matrix, comparison.MatrixRow{
			QuoteID:          quoteID,
			SupplierID:       supplierID,
			PriceScore:       row.PriceScore,
			SpeedScore:       row.SpeedScore,
			ReliabilityScore: row.ReliabilityScore,
			WeightedScore:    row.WeightedScore,
		})
	}

	return comparison.NewQuotationComparison(
		id,
		tenantID,
		tenderID,
		requestID,
		weights,
		matrix,
		winningQuoteID,
		dto.Recommendation,
		dto.Reasoning,
		dto.Confidence,
		dto.CreatedAt,
	)
}
