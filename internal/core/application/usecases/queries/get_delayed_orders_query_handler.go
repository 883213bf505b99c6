package queries

import (
	"context"
	"time"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetDelayedOrdersQueryHandler lists all orders currently marked DELAYED,
// sorted oldest pickup first so the most overdue orders surface on top.
type GetDelayedOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetDelayedOrdersQueryHandler creates a handler for delayed-order listings.
func NewGetDelayedOrdersQueryHandler(db *gorm.DB) GetDelayedOrdersQueryHandler {
	return GetDelayedOrdersQueryHandler{db: db}
}

// Handle executes the query. Orders without pickup data cannot be DELAYED
// by construction, so the scanned columns are non-null for every row.
func (h GetDelayedOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetDelayedOrdersQuery,
) ([]GetDelayedOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	delayed := make([]GetDelayedOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			picked_up_at,
			estimated_duration
		FROM orders
		WHERE status = ?
		ORDER BY picked_up_at
	`, order.Delayed).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	now := time.Now()
	for rows.Next() {
		var (
			id                uuid.UUID
			pickedUpAt        time.Time
			estimatedDuration int
		)

		if err = rows.Scan(&id, &pickedUpAt, &estimatedDuration); err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}

		elapsed := *order.ElapsedMinutes(&pickedUpAt, now)
		delayed = append(delayed, GetDelayedOrdersQueryResponse{
			OrderID:           orderID,
			PickedUpAt:        pickedUpAt,
			EstimatedDuration: estimatedDuration,
			ElapsedMinutes:    elapsed,
			OverdueMinutes:    elapsed - estimatedDuration,
		})
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return delayed, nil
}
