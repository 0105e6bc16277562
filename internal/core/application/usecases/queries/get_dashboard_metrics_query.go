package queries

import (
	"errors"

	"freightflow/internal/core/domain/model/kernel"
	"freightflow/internal/pkg/guard"
)

var ErrGetDashboardMetricsQueryIsNotConstructed = errors.New(
	"GetDashboardMetricsQuery must be created via NewGetDashboardMetricsQuery constructor",
)

// GetDashboardMetricsQuery retrieves a tenant's pipeline throughput counters
// for the operations dashboard.
type GetDashboardMetricsQuery struct {
	tenantID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetDashboardMetricsQuery creates a dashboard metrics query for the given
// tenant.
func NewGetDashboardMetricsQuery(tenantID kernel.UUID) (GetDashboardMetricsQuery, error) {
	if err := tenantID.Validate(); err != nil {
		return GetDashboardMetricsQuery{}, err
	}

	return GetDashboardMetricsQuery{
		tenantID: tenantID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// TenantID returns the tenant scoping this query.
func (q GetDashboardMetricsQuery) TenantID() kernel.UUID {
	return q.tenantID
}

// Validate ensures the query was created through the constructor.
func (q GetDashboardMetricsQuery) Validate() error {
	return q.guard.Validate(ErrGetDashboardMetricsQueryIsNotConstructed)
}

// GetDashboardMetricsQueryResponse carries the tenant's pipeline counters.
type GetDashboardMetricsQueryResponse struct {
	// ActiveRequests counts requests still moving through the pipeline.
	ActiveRequests int

	// ActiveTenders counts tenders still accepting quotes.
	ActiveTenders int

	// DeliveredToday counts orders that reached Delivered status today.
	DeliveredToday int

	// AutomationRate is the share of evaluated requests that were decided
	// without manual review, in [0,1]. Zero when nothing was evaluated yet.
	AutomationRate float64

	// AvgProcessingHours is the average time from order creation to delivery
	// across delivered orders. Zero when nothing was delivered yet.
	AvgProcessingHours float64
}
