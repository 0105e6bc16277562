package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"freightflow/internal/core/domain/model/kernel"
	"freightflow/internal/core/domain/model/request"
	"freightflow/internal/core/domain/model/tender"
	"freightflow/internal/core/domain/services"
	"freightflow/internal/core/ports"
	"freightflow/internal/pkg/errs"
)

// IssueTenderResult reports the outcome of the tender issuance stage.
type IssueTenderResult struct {
	// TenderID is the issued (or previously issued) tender.
	TenderID kernel.UUID

	// SuppliersContacted is how many suppliers were invited to bid.
	SuppliersContacted int

	// Deadline is the quote submission deadline. The caller is responsible for
	// scheduling the follow-up evaluation; the stage only computes the value.
	Deadline time.Time

	// AlreadyIssued reports that an active tender already existed and the
	// stage was a no-op.
	AlreadyIssued bool

	// FailedSideEffects lists invitation notifications that could not be
	// delivered. The tender itself is committed regardless.
	FailedSideEffects []string
}

// IssueTenderCommandHandler orchestrates the first pipeline stage: it matches
// eligible suppliers to the request, freezes a tender with the bid deadline
// and evaluation window, marks the request as quoted, and invites the matched
// suppliers.
//
// Re-invoking the stage for a request that already has an active tender is a
// no-op reporting the existing tender, so duplicate triggers never create a
// second tender.
type IssueTenderCommandHandler struct {
	uowFactory UoWFactory
	matcher    services.SupplierMatcher
	notifier   ports.Notifier
	clock      ports.Clock
	policy     WorkflowPolicy
}

// NewIssueTenderCommandHandler creates a handler for tender issuance.
func NewIssueTenderCommandHandler(
	uowFactory UoWFactory,
	matcher services.SupplierMatcher,
	notifier ports.Notifier,
	clock ports.Clock,
	policy WorkflowPolicy,
) IssueTenderCommandHandler {
	return IssueTenderCommandHandler{
		uowFactory: uowFactory,
		matcher:    matcher,
		notifier:   notifier,
		clock:      clock,
		policy:     policy,
	}
}

// Handle processes the tender issuance command.
//
// Returns services.ErrNoSuppliersFound if no eligible supplier supports the
// request's transport type; the request stays in Created status and the
// caller decides whether to retry or fall back to manual sourcing.
func (h IssueTenderCommandHandler) Handle(ctx context.Context, command IssueTenderCommand) (IssueTenderResult, error) {
	if err := command.Validate(); err != nil {
		return IssueTenderResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return IssueTenderResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.LockRequest(ctx, command.TenantID(), command.RequestID()); err != nil {
		return IssueTenderResult{}, err
	}

	requestRepo := uow.RequestRepository()
	tenderRepo := uow.TenderRepository()

	req, err := requestRepo.Get(ctx, command.TenantID(), command.RequestID())
	if err != nil {
		return IssueTenderResult{}, err
	}

	if req.Status() != request.Created {
		return h.reportExistingTender(ctx, tenderRepo, req)
	}

	suppliers, err := uow.SupplierRepository().GetAllEligible(ctx, command.TenantID())
	if err != nil {
		return IssueTenderResult{}, err
	}

	ranked, err := h.matcher.Match(req, suppliers)
	if err != nil {
		return IssueTenderResult{}, err
	}

	invitedIDs := make([]kernel.UUID, len(ranked))
	for i, candidate := range ranked {
		invitedIDs[i] = candidate.Supplier.ID()
	}

	newTender, err := tender.NewTenderRequest(
		kernel.NewUUID(),
		req,
		invitedIDs,
		tender.DefaultCriteriaWeights(),
		h.clock.Now(),
		h.policy.BidWindow,
		h.policy.EvaluationWindow,
		h.policy.ReminderLead,
	)
	if err != nil {
		return IssueTenderResult{}, err
	}

	if err = tenderRepo.Add(ctx, newTender); err != nil {
		return IssueTenderResult{}, err
	}

	if err = req.MarkQuoted(); err != nil {
		return IssueTenderResult{}, err
	}

	if err = requestRepo.Update(ctx, req); err != nil {
		return IssueTenderResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return IssueTenderResult{}, err
	}

	effects := newSideEffectRecorder(h.policy.SideEffectTimeout)
	h.inviteSuppliers(ctx, effects, newTender)

	return IssueTenderResult{
		TenderID:           newTender.ID(),
		SuppliersContacted: len(invitedIDs),
		Deadline:           newTender.Deadline(),
		FailedSideEffects:  effects.Failed(),
	}, nil
}

// reportExistingTender handles the idempotent re-invocation path: a request
// past Created status with an active tender reports that tender; without one
// the stage ordering was violated and the caller gets a validation error.
func (h IssueTenderCommandHandler) reportExistingTender(
	ctx context.Context,
	tenderRepo ports.TenderRepository,
	req *request.TransportRequest,
) (IssueTenderResult, error) {
	existing, err := tenderRepo.GetActiveByRequest(ctx, req.TenantID(), req.ID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return IssueTenderResult{}, errs.NewValueIsInvalidErrorWithCause("request status",
			fmt.Errorf("request %s is already %s and has no active tender", req.ID(), req.Status()))
	}
	if err != nil {
		return IssueTenderResult{}, err
	}

	return IssueTenderResult{
		TenderID:           existing.ID(),
		SuppliersContacted: len(existing.InvitedSuppliers()),
		Deadline:           existing.Deadline(),
		AlreadyIssued:      true,
	}, nil
}

func (h IssueTenderCommandHandler) inviteSuppliers(
	ctx context.Context,
	effects *sideEffectRecorder,
	newTender *tender.TenderRequest,
) {
	payload := map[string]any{
		"tender_id":        newTender.ID().String(),
		"deadline":         newTender.Deadline(),
		"cargo_type":       string(newTender.Requirements().Cargo.Type),
		"pickup_address":   newTender.Requirements().Route.PickupAddress,
		"delivery_address": newTender.Requirements().Route.DeliveryAddress,
	}

	for _, supplierID := range newTender.InvitedSuppliers() {
		audience := ports.Audience{Kind: ports.AudienceSupplier, RecipientID: supplierID.String()}
		effects.Run(ctx, fmt.Sprintf("invite supplier %s", supplierID), func(ctx context.Context) error {
			_, err := h.notifier.Notify(ctx, audience, ports.TemplateTenderInvitation, payload)
			return err
		})
	}
}
