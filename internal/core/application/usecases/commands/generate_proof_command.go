package commands

import (
	"errors"
	"time"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/pkg/guard"
)

var ErrGenerateProofCommandIsNotConstructed = errors.New(
	"GenerateProofCommand must be created via NewGenerateProofCommand constructor",
)

// GenerateProofCommand requests a fresh proof-of-delivery credential for an
// order: a one-time code, its QR payload, and a 30-minute expiry. Each
// invocation overwrites the previous credential, invalidating any earlier
// outstanding code.
type GenerateProofCommand struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGenerateProofCommand creates a command to issue a delivery credential.
func NewGenerateProofCommand(orderID kernel.UUID) (GenerateProofCommand, error) {
	if err := orderID.Validate(); err != nil {
		return GenerateProofCommand{}, err
	}

	return GenerateProofCommand{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c GenerateProofCommand) Validate() error {
	return c.guard.Validate(ErrGenerateProofCommandIsNotConstructed)
}

// OrderID returns the order the credential is issued for.
func (c GenerateProofCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ProofDetails is the credential projection returned after generation.
type ProofDetails struct {
	OrderID   kernel.UUID
	OTP       string
	QRPayload string
	ExpiresAt time.Time
	Status    string
}
