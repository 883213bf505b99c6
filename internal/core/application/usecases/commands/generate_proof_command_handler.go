package commands

import (
	"context"
	"time"
)

// GenerateProofCommandHandler issues proof-of-delivery credentials.
// No uniqueness check is made against prior codes for the same order;
// the overwrite itself is what invalidates an earlier credential.
type GenerateProofCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewGenerateProofCommandHandler creates a handler for credential issuance.
func NewGenerateProofCommandHandler(uowFactory OrderUoWFactory) GenerateProofCommandHandler {
	return GenerateProofCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle loads the order, issues a fresh credential, persists the three
// credential fields, and returns the credential projection.
func (h *GenerateProofCommandHandler) Handle(ctx context.Context, cmd GenerateProofCommand) (ProofDetails, error) {
	if err := cmd.Validate(); err != nil {
		return ProofDetails{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return ProofDetails{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	aggregate, err := repo.Get(ctx, cmd.OrderID())
	if err != nil {
		return ProofDetails{}, err
	}

	if err = aggregate.IssueProof(time.Now()); err != nil {
		return ProofDetails{}, err
	}

	if err = repo.Update(ctx, aggregate); err != nil {
		return ProofDetails{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return ProofDetails{}, err
	}

	return ProofDetails{
		OrderID:   aggregate.ID(),
		OTP:       *aggregate.DeliveryOTP(),
		QRPayload: *aggregate.DeliveryQR(),
		ExpiresAt: *aggregate.OTPExpiresAt(),
		Status:    aggregate.Status().String(),
	}, nil
}
