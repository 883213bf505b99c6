package commands

import (
	"context"
	"time"
)

// CheckDelayCommandHandler keeps an order's status consistent with elapsed
// transit time relative to its estimate.
//
// Status writes go through the repository's conditional delay update,
// guarded on the expected prior status. When a concurrent pass already
// performed the transition the guarded write is a no-op rather than an
// error, so reconciliation is race-tolerant without locking.
//
// The handler never fails the caller's flow: any error is returned alongside
// DelayCheckFailed so the caller can log it and move on.
type CheckDelayCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewCheckDelayCommandHandler creates a handler for per-order delay checks.
func NewCheckDelayCommandHandler(uowFactory OrderUoWFactory) CheckDelayCommandHandler {
	return CheckDelayCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle runs one reconciliation pass. At most one status transition fires;
// the returned result reflects the order's current delay condition even
// when no transition occurred.
func (h *CheckDelayCommandHandler) Handle(ctx context.Context, cmd CheckDelayCommand) (DelayCheckResult, error) {
	if err := cmd.Validate(); err != nil {
		return DelayCheckFailed, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return DelayCheckFailed, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	aggregate, err := repo.Get(ctx, cmd.OrderID())
	if err != nil {
		return DelayCheckFailed, err
	}

	previous := aggregate.Status()
	changed, delayed := aggregate.ReconcileDelay(time.Now())

	if changed {
		if _, err = repo.UpdateDelayStatus(ctx, aggregate.ID(), previous, aggregate.Status()); err != nil {
			return DelayCheckFailed, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return DelayCheckFailed, err
	}

	if delayed {
		return DelayCheckDelayed, nil
	}
	return DelayCheckNotDelayed, nil
}
