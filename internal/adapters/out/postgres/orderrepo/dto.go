// Package orderrepo persists TransportOrder aggregates. The orders table
// carries a unique index on request_id: the database itself guarantees at
// most one order per transport request, whatever races above it.
package orderrepo

import (
	"encoding/json"
	"time"

	"freightflow/internal/core/domain/model/kernel"
	"freightflow/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO is the database representation of a transport order.
type OrderDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	TenantID   uuid.UUID `gorm:"type:uuid;not null;index"`
	RequestID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	QuoteID    uuid.UUID `gorm:"type:uuid;not null"`
	SupplierID uuid.UUID `gorm:"type:uuid;not null"`

	FinalPrice    float64 `gorm:"type:numeric;not null"`
	CustomerPrice float64 `gorm:"type:numeric;not null"`
	Margin        float64 `gorm:"type:numeric;not null"`
	Currency      string  `gorm:"type:varchar(3);not null"`

	TrackingNumber    string     `gorm:"type:varchar(64);not null;default:''"`
	EstimatedDelivery *time.Time `gorm:""`

	Documents        []byte `gorm:"type:jsonb;not null"`
	InvoiceGenerated bool   `gorm:"type:boolean;not null"`

	Status    int       `gorm:"type:int;not null"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// TableName overrides GORM's default naming to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// documentJSON is the JSONB shape of one attached document reference.
type documentJSON struct {
	Kind      string    `json:"kind"`
	Reference string    `json:"reference"`
	IssuedAt  time.Time `json:"issued_at"`
}

func fromDomain(aggregate *order.TransportOrder) (OrderDTO, error) {
	docs := make([]documentJSON, 0, len(aggregate.Documents()))
	for _, doc := range aggregate.Documents() {
		docs = append(docs, documentJSON{
			Kind:      string(doc.Kind),
			Reference: doc.Reference,
			IssuedAt:  doc.IssuedAt,
		})
	}

	documents, err := json.Marshal(docs)
	if err != nil {
		return OrderDTO{}, err
	}

	var estimatedDelivery *time.Time
	if !aggregate.EstimatedDelivery().IsZero() {
		eta := aggregate.EstimatedDelivery()
		estimatedDelivery = &eta
	}

	return OrderDTO{
		ID:                aggregate.ID().Bytes(),
		TenantID:          aggregate.TenantID().Bytes(),
		RequestID:         aggregate.RequestID().Bytes(),
		QuoteID:           aggregate.QuoteID().Bytes(),
		SupplierID:        aggregate.SupplierID().Bytes(),
		FinalPrice:        aggregate.FinalPrice().Amount(),
		CustomerPrice:     aggregate.CustomerPrice().Amount(),
		Margin:            aggregate.Margin().Amount(),
		Currency:          aggregate.FinalPrice().Currency(),
		TrackingNumber:    aggregate.TrackingNumber(),
		EstimatedDelivery: estimatedDelivery,
		Documents:         documents,
		InvoiceGenerated:  aggregate.IsInvoiceGenerated(),
		Status:            int(aggregate.Status()),
		CreatedAt:         aggregate.CreatedAt(),
	}, nil
}

func toDomain(dto OrderDTO) (*order.TransportOrder, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	tenantID, err := kernel.UUIDFromBytes(dto.TenantID[:])
	if err != nil {
		return nil, err
	}

	requestID, err := kernel.UUIDFromBytes(dto.RequestID[:])
	if err != nil {
		return nil, err
	}

	quoteID, err := kernel.UUIDFromBytes(dto.QuoteID[:])
	if err != nil {
		return nil, err
	}

	supplierID, err := kernel.UUIDFromBytes(dto.SupplierID[:])
	if err != nil {
		return nil, err
	}

	finalPrice, err := kernel.NewMoney(dto.FinalPrice, dto.Currency)
	if err != nil {
		return nil, err
	}

	customerPrice, err := kernel.NewMoney(dto.CustomerPrice, dto.Currency)
	if err != nil {
		return nil, err
	}

	margin, err := kernel.NewMoney(dto.Margin, dto.Currency)
	if err != nil {
		return nil, err
	}

	var docs []documentJSON
	if err = json.Unmarshal(dto.Documents, &docs); err != nil {
		return nil, err
	}

	documents := make([]order.Document, 0, len(docs))
	for _, doc := range docs {
		documents = append(documents, order.Document{
			Kind:      order.DocumentKind(doc.Kind),
			Reference: doc.Reference,
			IssuedAt:  doc.IssuedAt,
		})
	}

	var estimatedDelivery time.Time
	if dto.EstimatedDelivery != nil {
		estimatedDelivery = *dto.EstimatedDelivery
	}

	return order.RestoreTransportOrder(
		id,
		tenantID,
		requestID,
		quoteID,
		supplierID,
		finalPrice,
		customerPrice,
		margin,
		dto.TrackingNumber,
		estimatedDelivery,
		documents,
		dto.InvoiceGenerated,
		order.Status(dto.Status),
		dto.CreatedAt,
	)
}
