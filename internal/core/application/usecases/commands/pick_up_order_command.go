package commands

import (
	"errors"
	"math"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/pkg/errs"
	"lastmile/internal/pkg/guard"
)

var ErrPickUpOrderCommandIsNotConstructed = errors.New(
	"PickUpOrderCommand must be created via NewPickUpOrderCommand constructor",
)

// PickUpOrderCommand records the physical collection of a package together
// with the expected transit time. Pickup starts the delay-tracking window.
type PickUpOrderCommand struct {
	orderID          kernel.UUID
	estimatedMinutes int

	guard guard.ConstructorGuard
}

// NewPickUpOrderCommand creates a command to mark an order as picked up.
// The estimated transit time must be a positive number of minutes.
func NewPickUpOrderCommand(orderID kernel.UUID, estimatedMinutes int) (PickUpOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return PickUpOrderCommand{}, err
	}
	if estimatedMinutes <= 0 {
		return PickUpOrderCommand{}, errs.NewValueIsOutOfRangeError(
			"estimatedMinutes", estimatedMinutes, 1, math.MaxInt)
	}

	return PickUpOrderCommand{
		orderID:          orderID,
		estimatedMinutes: estimatedMinutes,
		guard:            guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c PickUpOrderCommand) Validate() error {
	return c.guard.Validate(ErrPickUpOrderCommandIsNotConstructed)
}

// OrderID returns the order being picked up.
func (c PickUpOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// EstimatedMinutes returns the expected transit time in minutes.
func (c PickUpOrderCommand) EstimatedMinutes() int {
	return c.estimatedMinutes
}
