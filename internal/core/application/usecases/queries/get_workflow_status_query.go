// Package queries contains read-side operations of the CQRS split. Query
// handlers bypass the domain model and repositories entirely, reading
// projection data straight from the database for reporting surfaces.
package queries

import (
	"errors"
	"time"

	"freightflow/internal/core/domain/model/kernel"
	"freightflow/internal/pkg/guard"
)

var ErrGetWorkflowStatusQueryIsNotConstructed = errors.New(
	"GetWorkflowStatusQuery must be created via NewGetWorkflowStatusQuery constructor",
)

// GetWorkflowStatusQuery retrieves the full pipeline state of one transport
// request: its status, the tender and quote situation, the latest evaluation,
// and the order if one exists.
type GetWorkflowStatusQuery struct {
	tenantID  kernel.UUID
	requestID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetWorkflowStatusQuery creates a query for the given request's pipeline
// state. Both identifiers must be valid UUIDs.
func NewGetWorkflowStatusQuery(tenantID kernel.UUID, requestID kernel.UUID) (GetWorkflowStatusQuery, error) {
	if err := tenantID.Validate(); err != nil {
		return GetWorkflowStatusQuery{}, err
	}

	if err := requestID.Validate(); err != nil {
		return GetWorkflowStatusQuery{}, err
	}

	return GetWorkflowStatusQuery{
		tenantID:  tenantID,
		requestID: requestID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// TenantID returns the tenant scoping this query.
func (q GetWorkflowStatusQuery) TenantID() kernel.UUID {
	return q.tenantID
}

// RequestID returns the request whose state is queried.
func (q GetWorkflowStatusQuery) RequestID() kernel.UUID {
	return q.requestID
}

// Validate ensures the query was created through the constructor.
func (q GetWorkflowStatusQuery) Validate() error {
	return q.guard.Validate(ErrGetWorkflowStatusQueryIsNotConstructed)
}

// TenderStatusInfo summarizes the request's tender situation.
type TenderStatusInfo struct {
	ID              kernel.UUID
	Status          string
	Deadline        time.Time
	QuotesSubmitted int
}

// ComparisonStatusInfo summarizes the latest evaluation run.
type ComparisonStatusInfo struct {
	ID         kernel.UUID
	Confidence float64
	CreatedAt  time.Time
}

// OrderStatusInfo summarizes the request's order, if one exists.
type OrderStatusInfo struct {
	ID                kernel.UUID
	Status            string
	TrackingNumber    string
	EstimatedDelivery time.Time
	InvoiceGenerated  bool
}

// GetWorkflowStatusQueryResponse is the aggregated pipeline state of one
// transport request. Tender, Comparison, and Order are nil for stages the
// pipeline has not reached yet.
type GetWorkflowStatusQueryResponse struct {
	RequestID          kernel.UUID
	RequestStatus      string
	RecommendedQuoteID *kernel.UUID
	RecommendationNote string

	Tender     *TenderStatusInfo
	Comparison *ComparisonStatusInfo
	Order      *OrderStatusInfo
}
