package queries

import (
	"context"

	"freightflow/internal/core/domain/model/order"
	"freightflow/internal/core/domain/model/request"
	"freightflow/internal/core/domain/model/tender"

	"gorm.io/gorm"
)

// GetDashboardMetricsQueryHandler computes pipeline throughput counters
// directly in SQL. The counters are approximate operational telemetry, not
// domain state, so they bypass the repositories.
type GetDashboardMetricsQueryHandler struct {
	db *gorm.DB
}

// NewGetDashboardMetricsQueryHandler creates a handler for dashboard metrics
// queries.
func NewGetDashboardMetricsQueryHandler(db *gorm.DB) GetDashboardMetricsQueryHandler {
	return GetDashboardMetricsQueryHandler{db: db}
}

// Handle executes the dashboard metrics query.
func (h GetDashboardMetricsQueryHandler) Handle(
	ctx context.Context,
	query GetDashboardMetricsQuery,
) (GetDashboardMetricsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetDashboardMetricsQueryResponse{}, err
	}

	var response GetDashboardMetricsQueryResponse

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			(SELECT COUNT(*) FROM requests
				WHERE tenant_id = @tenant AND status != @delivered_request) AS active_requests,
			(SELECT COUNT(*) FROM tenders
				WHERE tenant_id = @tenant AND status = @active_tender) AS active_tenders,
			(SELECT COUNT(*) FROM orders
				WHERE tenant_id = @tenant AND status = @delivered_order
				AND updated_at >= date_trunc('day', now())) AS delivered_today,
			(SELECT COALESCE(
				(SELECT COUNT(DISTINCT request_id)::float FROM orders WHERE tenant_id = @tenant) /
				NULLIF((SELECT COUNT(DISTINCT request_id)::float FROM comparisons WHERE tenant_id = @tenant), 0),
				0)) AS automation_rate,
			(SELECT COALESCE(AVG(EXTRACT(EPOCH FROM (updated_at - created_at)) / 3600), 0) FROM orders
				WHERE tenant_id = @tenant AND status = @delivered_order) AS avg_processing_hours
	`,
		map[string]any{
			"tenant":            query.TenantID().Bytes(),
			"delivered_request": int(request.Delivered),
			"active_tender":     int(tender.Active),
			"delivered_order":   int(order.Delivered),
		},
	).Row()

	err := row.Scan(
		&response.ActiveRequests,
		&response.ActiveTenders,
		&response.DeliveredToday,
		&response.AutomationRate,
		&response.AvgProcessingHours,
	)
	if err != nil {
		return GetDashboardMetricsQueryResponse{}, err
	}

	// More orders than comparisons can exist when selection was manual before
	// any evaluation ran; the rate is capped at 1.
	if response.AutomationRate > 1 {
		response.AutomationRate = 1
	}

	return response, nil
}
