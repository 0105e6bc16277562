package http

import (
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Error is the uniform error body of the API.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// TriggerWorkflowRequest is the body of POST /api/v1/workflows/trigger.
type TriggerWorkflowRequest struct {
	// WorkflowType is one of TRANSPORT_REQUEST, QUOTE_COLLECTION,
	// ORDER_PROCESSING, DELIVERY_NOTIFICATION.
	WorkflowType string `json:"workflow_type"`

	// EntityId is the request, tender, or order the stage applies to,
	// depending on the workflow type.
	EntityId openapi_types.UUID `json:"entity_id"`

	// Verified optionally overrides delivery verification for
	// DELIVERY_NOTIFICATION triggers.
	Verified *bool `json:"verified,omitempty"`
}

// TriggerWorkflowResponse reports one trigger's outcome. Stage-specific
// fields are present only for the stage that ran.
type TriggerWorkflowResponse struct {
	WorkflowType    string             `json:"workflow_type"`
	EntityId        openapi_types.UUID `json:"entity_id"`
	AutomationLevel string             `json:"automation_level"`
	Noop            bool               `json:"noop"`

	TenderId           *openapi_types.UUID `json:"tender_id,omitempty"`
	SuppliersContacted int                 `json:"suppliers_contacted,omitempty"`
	BidDeadline        *time.Time          `json:"bid_deadline,omitempty"`

	QuotesAnalyzed     int                 `json:"quotes_analyzed,omitempty"`
	ComparisonId       *openapi_types.UUID `json:"comparison_id,omitempty"`
	RecommendedQuoteId *openapi_types.UUID `json:"recommended_quote_id,omitempty"`
	Confidence         float64             `json:"confidence,omitempty"`
	AutoSelected       bool                `json:"auto_selected,omitempty"`
	OrderId            *openapi_types.UUID `json:"order_id,omitempty"`

	TrackingNumber    string     `json:"tracking_number,omitempty"`
	EstimatedDelivery *time.Time `json:"estimated_delivery,omitempty"`

	InvoiceReference string `json:"invoice_reference,omitempty"`
	InvoiceGenerated bool   `json:"invoice_generated,omitempty"`

	FailedSideEffects []string `json:"failed_side_effects,omitempty"`
}

// SelectQuoteRequest is the body of POST /api/v1/requests/{requestId}/selection.
type SelectQuoteRequest struct {
	QuoteId openapi_types.UUID `json:"quote_id"`
}

// SelectQuoteResponse reports the outcome of a manual quote selection.
type SelectQuoteResponse struct {
	OrderId           openapi_types.UUID `json:"order_id"`
	QuotesRejected    int                `json:"quotes_rejected"`
	FailedSideEffects []string           `json:"failed_side_effects,omitempty"`
}

// TenderStatus summarizes a request's tender situation.
type TenderStatus struct {
	Id              openapi_types.UUID `json:"id"`
	Status          string             `json:"status"`
	Deadline        time.Time          `json:"deadline"`
	QuotesSubmitted int                `json:"quotes_submitted"`
}

// ComparisonStatus summarizes the latest evaluation run.
type ComparisonStatus struct {
	Id         openapi_types.UUID `json:"id"`
	Confidence float64            `json:"confidence"`
	CreatedAt  time.Time          `json:"created_at"`
}

// OrderStatus summarizes a request's order.
type OrderStatus struct {
	Id                openapi_types.UUID `json:"id"`
	Status            string             `json:"status"`
	TrackingNumber    string             `json:"tracking_number,omitempty"`
	EstimatedDelivery *time.Time         `json:"estimated_delivery,omitempty"`
	InvoiceGenerated  bool               `json:"invoice_generated"`
}

// WorkflowStatusResponse is the aggregated pipeline state of one transport
// request. Tender, comparison, and order are absent for stages the pipeline
// has not reached yet.
type WorkflowStatusResponse struct {
	RequestId          openapi_types.UUID  `json:"request_id"`
	RequestStatus      string              `json:"request_status"`
	RecommendedQuoteId *openapi_types.UUID `json:"recommended_quote_id,omitempty"`
	RecommendationNote string              `json:"recommendation_note,omitempty"`

	Tender     *TenderStatus     `json:"tender,omitempty"`
	Comparison *ComparisonStatus `json:"comparison,omitempty"`
	Order      *OrderStatus      `json:"order,omitempty"`
}

// DashboardMetricsResponse carries a tenant's pipeline counters.
type DashboardMetricsResponse struct {
	ActiveRequests     int     `json:"active_requests"`
	ActiveTenders      int     `json:"active_tenders"`
	DeliveredToday     int     `json:"delivered_today"`
	AutomationRate     float64 `json:"automation_rate"`
	AvgProcessingHours float64 `json:"avg_processing_hours"`
}
