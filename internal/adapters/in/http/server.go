// Package http exposes the procurement pipeline over HTTP: the workflow
// trigger endpoint, the per-request status and manual selection endpoints,
// the dashboard counters, and the operational surfaces (health, Prometheus
// metrics, Swagger UI).
package http

import (
	"errors"
	"net/http"

	"freightflow/internal/core/application/usecases/commands"
	"freightflow/internal/core/application/usecases/queries"
	"freightflow/internal/core/application/workflow"
	"freightflow/internal/core/domain/model/kernel"
	"freightflow/internal/core/domain/services"
	"freightflow/internal/pkg/errs"
	"freightflow/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
	echoswagger "github.com/swaggo/echo-swagger"
)

// TenantHeader carries the tenant scope of every API call. Requests without
// it are rejected; no endpoint operates across tenants.
const TenantHeader = "X-Tenant-ID"

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	orchestrator *workflow.Orchestrator

	// Command handlers
	selectQuoteHandler commands.SelectQuoteCommandHandler

	// Query handlers
	getWorkflowStatusHandler   queries.GetWorkflowStatusQueryHandler
	getDashboardMetricsHandler queries.GetDashboardMetricsQueryHandler

	metrics *metrics.Registry
}

// NewServer creates a new HTTP server with the required handlers.
// The metrics registry may be nil, disabling the /metrics endpoint.
func NewServer(
	orchestrator *workflow.Orchestrator,
	selectQuoteHandler commands.SelectQuoteCommandHandler,
	getWorkflowStatusHandler queries.GetWorkflowStatusQueryHandler,
	getDashboardMetricsHandler queries.GetDashboardMetricsQueryHandler,
	registry *metrics.Registry,
) *Server {
	return &Server{
		orchestrator:               orchestrator,
		selectQuoteHandler:         selectQuoteHandler,
		getWorkflowStatusHandler:   getWorkflowStatusHandler,
		getDashboardMetricsHandler: getDashboardMetricsHandler,
		metrics:                    registry,
	}
}

// RegisterRoutes wires all endpoints onto the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.POST("/api/v1/workflows/trigger", s.TriggerWorkflow)
	e.GET("/api/v1/requests/:requestId/status", s.GetWorkflowStatus)
	e.POST("/api/v1/requests/:requestId/selection", s.SelectQuote)
	e.GET("/api/v1/dashboard/metrics", s.GetDashboardMetrics)

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	e.GET("/swagger/*", echoswagger.WrapHandler)

	if s.metrics != nil {
		e.GET("/metrics", echo.WrapHandler(s.metrics.Handler()))
	}
}

// TriggerWorkflow handles POST /api/v1/workflows/trigger - advances the
// pipeline by one stage for the named entity.
func (s *Server) TriggerWorkflow(ctx echo.Context) error {
	tenantID, err := tenantFromHeader(ctx)
	if err != nil {
		return err
	}

	var body TriggerWorkflowRequest
	if err = ctx.Bind(&body); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	entityID, err := kernel.UUIDFromBytes(body.EntityId[:])
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid entity ID",
		})
	}

	trigger, err := s.buildTrigger(tenantID, body, entityID)
	if err != nil {
		return errorResponse(ctx, err)
	}

	result, err := s.orchestrator.Trigger(ctx.Request().Context(), trigger)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, triggerResponse(result))
}

// GetWorkflowStatus handles GET /api/v1/requests/{requestId}/status -
// retrieves the aggregated pipeline state of one transport request.
func (s *Server) GetWorkflowStatus(ctx echo.Context) error {
	tenantID, err := tenantFromHeader(ctx)
	if err != nil {
		return err
	}

	requestID, err := kernel.UUIDFromString(ctx.Param("requestId"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request ID",
		})
	}

	query, err := queries.NewGetWorkflowStatusQuery(tenantID, requestID)
	if err != nil {
		return errorResponse(ctx, err)
	}

	status, err := s.getWorkflowStatusHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, statusResponse(status))
}

// SelectQuote handles POST /api/v1/requests/{requestId}/selection - manually
// finalizes a quote for the request.
func (s *Server) SelectQuote(ctx echo.Context) error {
	tenantID, err := tenantFromHeader(ctx)
	if err != nil {
		return err
	}

	requestID, err := kernel.UUIDFromString(ctx.Param("requestId"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request ID",
		})
	}

	var body SelectQuoteRequest
	if err = ctx.Bind(&body); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	quoteID, err := kernel.UUIDFromBytes(body.QuoteId[:])
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid quote ID",
		})
	}

	command, err := commands.NewSelectQuoteCommand(tenantID, requestID, quoteID)
	if err != nil {
		return errorResponse(ctx, err)
	}

	result, err := s.selectQuoteHandler.Handle(ctx.Request().Context(), command)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, SelectQuoteResponse{
		OrderId:           result.OrderID.Bytes(),
		QuotesRejected:    result.QuotesRejected,
		FailedSideEffects: result.FailedSideEffects,
	})
}

// GetDashboardMetrics handles GET /api/v1/dashboard/metrics - retrieves the
// tenant's pipeline throughput counters.
func (s *Server) GetDashboardMetrics(ctx echo.Context) error {
	tenantID, err := tenantFromHeader(ctx)
	if err != nil {
		return err
	}

	query, err := queries.NewGetDashboardMetricsQuery(tenantID)
	if err != nil {
		return errorResponse(ctx, err)
	}

	counters, err := s.getDashboardMetricsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, DashboardMetricsResponse{
		ActiveRequests:     counters.ActiveRequests,
		ActiveTenders:      counters.ActiveTenders,
		DeliveredToday:     counters.DeliveredToday,
		AutomationRate:     counters.AutomationRate,
		AvgProcessingHours: counters.AvgProcessingHours,
	})
}

func (s *Server) buildTrigger(tenantID kernel.UUID, body TriggerWorkflowRequest, entityID kernel.UUID) (workflow.Trigger, error) {
	workflowType := workflow.Type(body.WorkflowType)

	if workflowType == workflow.TypeDeliveryNotification && body.Verified != nil {
		return workflow.NewTriggerWithPayload(tenantID, workflowType, entityID,
			workflow.DeliveryNotificationPayload{VerificationOverride: body.Verified})
	}

	return workflow.NewTrigger(tenantID, workflowType, entityID)
}

func tenantFromHeader(ctx echo.Context) (kernel.UUID, error) {
	tenantID, err := kernel.UUIDFromString(ctx.Request().Header.Get(TenantHeader))
	if err != nil {
		return kernel.UUID{}, ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Missing or invalid " + TenantHeader + " header",
		})
	}

	return tenantID, nil
}

// errorResponse maps application errors onto HTTP statuses. Typed errors stay
// reachable through the wrapping the orchestrator adds, so errors.Is sees
// through the annotation.
func errorResponse(ctx echo.Context, err error) error {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		status = http.StatusNotFound
	case errors.Is(err, errs.ErrVersionIsInvalid),
		errors.Is(err, services.ErrQuoteAlreadySelected):
		status = http.StatusConflict
	case errors.Is(err, services.ErrNoSuppliersFound),
		errors.Is(err, commands.ErrDeliveryNotVerified):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, workflow.ErrUnknownWorkflowType),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		status = http.StatusBadRequest
	}

	return ctx.JSON(status, Error{
		Code:    status,
		Message: err.Error(),
	})
}

func triggerResponse(result workflow.Result) TriggerWorkflowResponse {
	response := TriggerWorkflowResponse{
		WorkflowType:       string(result.WorkflowType),
		EntityId:           result.EntityID.Bytes(),
		AutomationLevel:    string(result.AutomationLevel),
		Noop:               result.Noop,
		SuppliersContacted: result.SuppliersContacted,
		QuotesAnalyzed:     result.QuotesAnalyzed,
		Confidence:         result.Confidence,
		AutoSelected:       result.AutoSelected,
		TrackingNumber:     result.TrackingNumber,
		InvoiceReference:   result.InvoiceReference,
		InvoiceGenerated:   result.InvoiceGenerated,
		FailedSideEffects:  result.FailedSideEffects,
	}

	if result.TenderID != nil {
		id := result.TenderID.Bytes()
		response.TenderId = &id
	}

	if result.ComparisonID != nil {
		id := result.ComparisonID.Bytes()
		response.ComparisonId = &id
	}

	if result.RecommendedQuoteID != nil {
		id := result.RecommendedQuoteID.Bytes()
		response.RecommendedQuoteId = &id
	}

	if result.OrderID != nil {
		id := result.OrderID.Bytes()
		response.OrderId = &id
	}

	if !result.BidDeadline.IsZero() {
		deadline := result.BidDeadline
		response.BidDeadline = &deadline
	}

	if !result.EstimatedDelivery.IsZero() {
		eta := result.EstimatedDelivery
		response.EstimatedDelivery = &eta
	}

	return response
}

func statusResponse(status queries.GetWorkflowStatusQueryResponse) WorkflowStatusResponse {
	response := WorkflowStatusResponse{
		RequestId:          status.RequestID.Bytes(),
		RequestStatus:      status.RequestStatus,
		RecommendationNote: status.RecommendationNote,
	}

	if status.RecommendedQuoteID != nil {
		id := status.RecommendedQuoteID.Bytes()
		response.RecommendedQuoteId = &id
	}

	if status.Tender != nil {
		response.Tender = &TenderStatus{
			Id:              status.Tender.ID.Bytes(),
			Status:          status.Tender.Status,
			Deadline:        status.Tender.Deadline,
			QuotesSubmitted: status.Tender.QuotesSubmitted,
		}
	}

	if status.Comparison != nil {
		response.Comparison = &ComparisonStatus{
			Id:         status.Comparison.ID.Bytes(),
			Confidence: status.Comparison.Confidence,
			CreatedAt:  status.Comparison.CreatedAt,
		}
	}

	if status.Order != nil {
		orderStatus := &OrderStatus{
			Id:               status.Order.ID.Bytes(),
			Status:           status.Order.Status,
			TrackingNumber:   status.Order.TrackingNumber,
			InvoiceGenerated: status.Order.InvoiceGenerated,
		}

		if !status.Order.EstimatedDelivery.IsZero() {
			eta := status.Order.EstimatedDelivery
			orderStatus.EstimatedDelivery = &eta
		}

		response.Order = orderStatus
	}

	return response
}
