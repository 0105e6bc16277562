package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"freightflow/internal/core/domain/model/kernel"
	"freightflow/internal/core/domain/model/order"
	"freightflow/internal/core/domain/model/request"
	"freightflow/internal/core/domain/model/tender"
	"freightflow/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetWorkflowStatusQueryHandler aggregates one request's pipeline state from
// the database. It reads raw projection rows rather than going through the
// repositories: status reporting needs no domain behavior, only data.
type GetWorkflowStatusQueryHandler struct {
	db *gorm.DB
}

// NewGetWorkflowStatusQueryHandler creates a handler for workflow status queries.
func NewGetWorkflowStatusQueryHandler(db *gorm.DB) GetWorkflowStatusQueryHandler {
	return GetWorkflowStatusQueryHandler{db: db}
}

// Handle executes the status query.
//
// Returns errs.ErrObjectNotFound if the request does not exist for the
// tenant; a request owned by another tenant is indistinguishable from a
// missing one.
func (h GetWorkflowStatusQueryHandler) Handle(
	ctx context.Context,
	query GetWorkflowStatusQuery,
) (GetWorkflowStatusQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetWorkflowStatusQueryResponse{}, err
	}

	response, err := h.loadRequest(ctx, query)
	if err != nil {
		return GetWorkflowStatusQueryResponse{}, err
	}

	if err = h.loadTender(ctx, query, &response); err != nil {
		return GetWorkflowStatusQueryResponse{}, err
	}

	if err = h.loadComparison(ctx, query, &response); err != nil {
		return GetWorkflowStatusQueryResponse{}, err
	}

	if err = h.loadOrder(ctx, query, &response); err != nil {
		return GetWorkflowStatusQueryResponse{}, err
	}

	return response, nil
}

func (h GetWorkflowStatusQueryHandler) loadRequest(
	ctx context.Context,
	query GetWorkflowStatusQuery,
) (GetWorkflowStatusQueryResponse, error) {
	var (
		status             int
		recommendedQuoteID uuid.NullUUID
		recommendationNote string
	)

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			status,
			recommended_quote_id,
			recommendation_note
		FROM requests
		WHERE tenant_id = ? AND id = ?
	`, query.TenantID().Bytes(), query.RequestID().Bytes()).Row()

	err := row.Scan(&status, &recommendedQuoteID, &recommendationNote)
	if errors.Is(err, sql.ErrNoRows) {
		return GetWorkflowStatusQueryResponse{}, errs.NewObjectNotFoundError("request", query.RequestID())
	}
	if err != nil {
		return GetWorkflowStatusQueryResponse{}, err
	}

	response := GetWorkflowStatusQueryResponse{
		RequestID:          query.RequestID(),
		RequestStatus:      request.Status(status).String(),
		RecommendationNote: recommendationNote,
	}

	if recommendedQuoteID.Valid {
		quoteID, idErr := kernel.UUIDFromBytes(recommendedQuoteID.UUID[:])
		if idErr != nil {
			return GetWorkflowStatusQueryResponse{}, idErr
		}
		response.RecommendedQuoteID = &quoteID
	}

	return response, nil
}

func (h GetWorkflowStatusQueryHandler) loadTender(
	ctx context.Context,
	query GetWorkflowStatusQuery,
	response *GetWorkflowStatusQueryResponse,
) error {
	var (
		id              uuid.UUID
		status          int
		deadline        time.Time
		quotesSubmitted int
	)

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			t.id,
			t.status,
			t.deadline,
			(SELECT COUNT(*) FROM quotes q WHERE q.tender_id = t.id) AS quotes_submitted
		FROM tenders t
		WHERE t.tenant_id = ? AND t.request_id = ?
		ORDER BY t.created_at DESC
		LIMIT 1
	`, query.TenantID().Bytes(), query.RequestID().Bytes()).Row()

	err := row.Scan(&id, &status, &deadline, &quotesSubmitted)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return err
	}

	tenderID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return err
	}

	response.Tender = &TenderStatusInfo{
		ID:              tenderID,
		Status:          tender.Status(status).String(),
		Deadline:        deadline,
		QuotesSubmitted: quotesSubmitted,
	}
	return nil
}

func (h GetWorkflowStatusQueryHandler) loadComparison(
	ctx context.Context,
	query GetWorkflowStatusQuery,
	response *GetWorkflowStatusQueryResponse,
) error {
	var (
		id         uuid.UUID
		confidence float64
		createdAt  time.Time
	)

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			confidence,
			created_at
		FROM comparisons
		WHERE tenant_id = ? AND request_id = ?
		ORDER BY created_at DESC
		LIMIT 1
	`, query.TenantID().Bytes(), query.RequestID().Bytes()).Row()

	err := row.Scan(&id, &confidence, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return err
	}

	comparisonID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return err
	}

	response.Comparison = &ComparisonStatusInfo{
		ID:         comparisonID,
		Confidence: confidence,
		CreatedAt:  createdAt,
	}
	return nil
}

func (h GetWorkflowStatusQueryHandler) loadOrder(
	ctx context.Context,
	query GetWorkflowStatusQuery,
	response *GetWorkflowStatusQueryResponse,
) error {
	var (
		id                uuid.UUID
		status            int
		trackingNumber    string
		estimatedDelivery sql.NullTime
		invoiceGenerated  bool
	)

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			status,
			tracking_number,
			estimated_delivery,
			invoice_generated
		FROM orders
		WHERE tenant_id = ? AND request_id = ?
	`, query.TenantID().Bytes(), query.RequestID().Bytes()).Row()

	err := row.Scan(&id, &status, &trackingNumber, &estimatedDelivery, &invoiceGenerated)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return err
	}

	orderID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return err
	}

	response.Order = &OrderStatusInfo{
		ID:               orderID,
		Status:           order.Status(status).String(),
		TrackingNumber:   trackingNumber,
		InvoiceGenerated: invoiceGenerated,
	}
	if estimatedDelivery.Valid {
		response.Order.EstimatedDelivery = estimatedDelivery.Time
	}
	return nil
}
