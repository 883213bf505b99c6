package commands

import (
	"context"
	"log/slog"
	"time"

	"lastmile/internal/core/domain/model/order"
	"lastmile/internal/pkg/metrics"
)

// ReconcileDelaysCommandHandler sweeps all in-transit orders and reconciles
// each one's delay status. Per-order failures are logged and skipped so a
// single bad row cannot stall the sweep.
type ReconcileDelaysCommandHandler struct {
	uowFactory OrderUoWFactory
	logger     *slog.Logger
}

// NewReconcileDelaysCommandHandler creates a handler for the delay sweep.
func NewReconcileDelaysCommandHandler(
	uowFactory OrderUoWFactory,
	logger *slog.Logger,
) ReconcileDelaysCommandHandler {
	return ReconcileDelaysCommandHandler{
		uowFactory: uowFactory,
		logger:     logger.With("component", "reconcile_delays_handler"),
	}
}

// Handle loads every in-transit order and applies the reconciliation rules,
// writing only the orders whose status actually changed. Returns the number
// of transitions performed.
func (h *ReconcileDelaysCommandHandler) Handle(ctx context.Context, cmd ReconcileDelaysCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	aggregates, err := repo.GetAllInTransit(ctx)
	if err != nil {
		return 0, err
	}

	now := time.Now()
	transitions := 0
	for _, aggregate := range aggregates {
		previous := aggregate.Status()
		changed, delayed := aggregate.ReconcileDelay(now)
		if !changed {
			continue
		}

		applied, updateErr := repo.UpdateDelayStatus(ctx, aggregate.ID(), previous, aggregate.Status())
		if updateErr != nil {
			h.logger.ErrorContext(ctx, "Delay status update failed",
				"order_id", aggregate.ID().String(),
				"from", previous.String(),
				"to", aggregate.Status().String(),
				"error", updateErr)
			continue
		}
		if !applied {
			// lost the race to a concurrent pass; nothing to repair
			continue
		}

		transitions++
		if delayed {
			metrics.DelayTransitionsTotal.WithLabelValues(metrics.DirectionMarkDelayed).Inc()
		} else {
			metrics.DelayTransitionsTotal.WithLabelValues(metrics.DirectionClearDelayed).Inc()
		}
		h.logger.InfoContext(ctx, "Delay status transitioned",
			"order_id", aggregate.ID().String(),
			"from", previous.String(),
			"to", aggregate.Status().String(),
			"delayed", delayed)
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	delayedCount := 0
	for _, aggregate := range aggregates {
		if aggregate.Status() == order.Delayed {
			delayedCount++
		}
	}
	metrics.DelayedOrdersGauge.Set(float64(delayedCount))

	return transitions, nil
}
