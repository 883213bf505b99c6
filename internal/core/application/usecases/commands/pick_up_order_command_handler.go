package commands

import (
	"context"
	"time"
)

// PickUpOrderCommandHandler marks an order as physically collected,
// stamping the pickup time and transit estimate.
type PickUpOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewPickUpOrderCommandHandler creates a handler for pickup operations.
func NewPickUpOrderCommandHandler(uowFactory OrderUoWFactory) PickUpOrderCommandHandler {
	return PickUpOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle loads the order, applies the pickup transition, and persists it.
func (h *PickUpOrderCommandHandler) Handle(ctx context.Context, cmd PickUpOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	aggregate, err := repo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = aggregate.PickUp(time.Now(), cmd.EstimatedMinutes()); err != nil {
		return err
	}

	if err = repo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
