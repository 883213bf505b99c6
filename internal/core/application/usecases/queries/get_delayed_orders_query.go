package queries

import (
	"errors"
	"time"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/pkg/guard"
)

var ErrGetDelayedOrdersQueryIsNotConstructed = errors.New(
	"GetDelayedOrdersQuery must be created via NewGetDelayedOrdersQuery constructor",
)

// GetDelayedOrdersQuery retrieves all orders currently in DELAYED status
// for dashboard and escalation views.
type GetDelayedOrdersQuery struct {
	guard guard.ConstructorGuard
}

// NewGetDelayedOrdersQuery creates a parameterless query for delayed orders.
func NewGetDelayedOrdersQuery() GetDelayedOrdersQuery {
	return GetDelayedOrdersQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetDelayedOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetDelayedOrdersQueryIsNotConstructed)
}

// GetDelayedOrdersQueryResponse describes one delayed order and how far
// past its estimate it has run.
type GetDelayedOrdersQueryResponse struct {
	OrderID           kernel.UUID
	PickedUpAt        time.Time
	EstimatedDuration int
	ElapsedMinutes    int
	OverdueMinutes    int
}
