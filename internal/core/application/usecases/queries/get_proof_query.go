// Package queries contains read-only projections over the order store.
// Query handlers bypass the aggregate and read the columns they need
// directly, keeping display paths cheap and side-effect free.
package queries

import (
	"errors"
	"time"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/pkg/guard"
)

var ErrGetProofQueryIsNotConstructed = errors.New(
	"GetProofQuery must be created via NewGetProofQuery constructor",
)

// GetProofQuery retrieves the credential-relevant fields of an order for
// display purposes. Never mutates state.
type GetProofQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetProofQuery creates a query for one order's credential projection.
func NewGetProofQuery(orderID kernel.UUID) (GetProofQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetProofQuery{}, err
	}

	return GetProofQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetProofQuery) Validate() error {
	return q.guard.Validate(ErrGetProofQueryIsNotConstructed)
}

// OrderID returns the order being projected.
func (q GetProofQuery) OrderID() kernel.UUID {
	return q.orderID
}

// GetProofQueryResponse is the credential projection of one order.
// Delayed is the cheap status-or-elapsed inspection, suitable for display
// but not authoritative; the reconciliation pass owns the real definition.
type GetProofQueryResponse struct {
	OrderID            kernel.UUID
	Status             string
	OTP                *string
	QRPayload          *string
	ExpiresAt          *time.Time
	VerifiedAt         *time.Time
	VerificationMethod *string
	Delayed            bool
}
