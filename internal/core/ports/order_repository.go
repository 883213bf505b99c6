// Package ports defines persistence contracts for the order domain.
// These interfaces establish contracts between the domain layer and
// infrastructure, enabling dependency inversion and testability.
package ports

import (
	"context"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Besides plain CRUD it provides two guarded conditional updates that push
// read-modify-write races down to the storage layer, where a single
// predicate-guarded UPDATE is atomic.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	// The order must exist in the repository and be valid.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	// Returns errs.ObjectNotFoundError when no such order exists.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAllInTransit retrieves all orders between pickup and delivery
	// (PickedUp, OutForDelivery, Delayed). Used by the delay-monitor sweep.
	GetAllInTransit(ctx context.Context) ([]*order.Order, error)

	// UpdateVerification persists a successful proof redemption. The write
	// is guarded on the order being unverified and still holding the
	// redeemed code, so a credential can be redeemed at most once even
	// under concurrent verification calls. A rejected write returns
	// order.ErrAlreadyVerified.
	UpdateVerification(ctx context.Context, aggregate *order.Order) error

	// UpdateDelayStatus transitions an order's status from an expected
	// prior value to a new one. Reports whether the row transitioned;
	// a lost race (status no longer matches) is a no-op, not an error.
	UpdateDelayStatus(ctx context.Context, id kernel.UUID, from, to order.Status) (bool, error)
}
