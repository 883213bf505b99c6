package commands

import (
	"context"
	"time"
)

// VerifyDeliveryCommandHandler redeems proof-of-delivery credentials.
//
// The domain checks run against a snapshot read inside the transaction, and
// the success write goes through the repository's guarded verification
// update, which only lands while the order is still unverified and still
// holds the redeemed code. Two racing redemptions therefore cannot both
// succeed: the loser's write is rejected and surfaces as
// order.ErrAlreadyVerified, same as a late sequential retry.
type VerifyDeliveryCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewVerifyDeliveryCommandHandler creates a handler for proof redemption.
func NewVerifyDeliveryCommandHandler(uowFactory OrderUoWFactory) VerifyDeliveryCommandHandler {
	return VerifyDeliveryCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle verifies the supplied code against the stored credential and, on
// success, persists the DELIVERED transition with its verification stamps.
func (h *VerifyDeliveryCommandHandler) Handle(
	ctx context.Context,
	cmd VerifyDeliveryCommand,
) (VerificationResult, error) {
	if err := cmd.Validate(); err != nil {
		return VerificationResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return VerificationResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	aggregate, err := repo.Get(ctx, cmd.OrderID())
	if err != nil {
		return VerificationResult{}, err
	}

	if err = aggregate.VerifyProof(cmd.OTP(), cmd.Method(), time.Now()); err != nil {
		return VerificationResult{}, err
	}

	if err = repo.UpdateVerification(ctx, aggregate); err != nil {
		return VerificationResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return VerificationResult{}, err
	}

	return VerificationResult{
		OrderID:     aggregate.ID(),
		Status:      aggregate.Status().String(),
		VerifiedAt:  *aggregate.VerifiedAt(),
		Method:      aggregate.VerificationMethod().String(),
		DeliveredAt: *aggregate.DeliveredAt(),
	}, nil
}
