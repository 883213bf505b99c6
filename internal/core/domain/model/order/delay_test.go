package order_test

import (
	"testing"
	"time"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestElapsedMinutes(t *testing.T) {
	t.Run("nil before pickup", func(t *testing.T) {
		assert.Nil(t, order.ElapsedMinutes(nil, time.Now()))
	})

	t.Run("floors partial minutes", func(t *testing.T) {
		pickedUp := time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC)

		cases := []struct {
			now      time.Time
			expected int
		}{
			{pickedUp, 0},
			{pickedUp.Add(59 * time.Second), 0},
			{pickedUp.Add(time.Minute), 1},
			{pickedUp.Add(29*time.Minute + 59*time.Second), 29},
			{pickedUp.Add(30 * time.Minute), 30},
			{pickedUp.Add(31*time.Minute + time.Second), 31},
		}

		for _, tc := range cases {
			got := order.ElapsedMinutes(&pickedUp, tc.now)
			require.NotNil(t, got)
			assert.Equal(t, tc.expected, *got)
		}
	})
}

func TestIsDelayed(t *testing.T) {
	pickedUp := time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC)
	est := 30

	t.Run("false when inputs are missing", func(t *testing.T) {
		now := pickedUp.Add(time.Hour)
		assert.False(t, order.IsDelayed(nil, &est, order.OutForDelivery, now))
		assert.False(t, order.IsDelayed(&pickedUp, nil, order.OutForDelivery, now))
	})

	t.Run("strict comparison against the estimate", func(t *testing.T) {
		assert.False(t, order.IsDelayed(&pickedUp, &est, order.OutForDelivery, pickedUp.Add(30*time.Minute)))
		assert.True(t, order.IsDelayed(&pickedUp, &est, order.OutForDelivery, pickedUp.Add(31*time.Minute)))
	})

	t.Run("an existing DELAYED status is sufficient on its own", func(t *testing.T) {
		// Display shortcut: reports delayed even when elapsed time alone
		// would not, e.g. after the estimate was raised externally.
		assert.True(t, order.IsDelayed(&pickedUp, &est, order.Delayed, pickedUp.Add(time.Minute)))
		assert.True(t, order.IsDelayed(nil, nil, order.Delayed, pickedUp))
	})
}

func TestOrder_ReconcileDelay(t *testing.T) {
	pickedUp := time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC)

	t.Run("no-op before pickup", func(t *testing.T) {
		o, err := order.NewOrder(kernel.NewUUID())
		require.NoError(t, err)

		changed, delayed := o.ReconcileDelay(pickedUp.Add(time.Hour))
		assert.False(t, changed)
		assert.False(t, delayed)
		assert.Equal(t, order.Created, o.Status())
	})

	t.Run("no-op without an estimate", func(t *testing.T) {
		o, err := order.RestoreOrder(kernel.NewUUID(), order.Snapshot{
			Status:     order.OutForDelivery,
			PickedUpAt: &pickedUp,
		})
		require.NoError(t, err)

		changed, delayed := o.ReconcileDelay(pickedUp.Add(time.Hour))
		assert.False(t, changed)
		assert.False(t, delayed)
	})

	t.Run("at the estimate boundary the order is not delayed", func(t *testing.T) {
		o := newInTransitOrder(t, pickedUp, 30)

		changed, delayed := o.ReconcileDelay(pickedUp.Add(29 * time.Minute))
		assert.False(t, changed)
		assert.False(t, delayed)

		changed, delayed = o.ReconcileDelay(pickedUp.Add(30 * time.Minute))
		assert.False(t, changed)
		assert.False(t, delayed)
		assert.Equal(t, order.OutForDelivery, o.Status())
	})

	t.Run("marks delayed strictly past the estimate", func(t *testing.T) {
		o := newInTransitOrder(t, pickedUp, 30)

		changed, delayed := o.ReconcileDelay(pickedUp.Add(31 * time.Minute))
		assert.True(t, changed)
		assert.True(t, delayed)
		assert.Equal(t, order.Delayed, o.Status())
	})

	t.Run("repeated call reports delayed without another transition", func(t *testing.T) {
		o := newInTransitOrder(t, pickedUp, 30)
		at := pickedUp.Add(31 * time.Minute)

		changed, delayed := o.ReconcileDelay(at)
		require.True(t, changed)
		require.True(t, delayed)

		changed, delayed = o.ReconcileDelay(at)
		assert.False(t, changed)
		assert.True(t, delayed)
		assert.Equal(t, order.Delayed, o.Status())
	})

	t.Run("reverts when the estimate is raised above elapsed time", func(t *testing.T) {
		est := 30
		o, err := order.RestoreOrder(kernel.NewUUID(), order.Snapshot{
			Status:            order.OutForDelivery,
			PickedUpAt:        &pickedUp,
			EstimatedDuration: &est,
		})
		require.NoError(t, err)

		at := pickedUp.Add(40 * time.Minute)
		changed, delayed := o.ReconcileDelay(at)
		require.True(t, changed)
		require.True(t, delayed)

		// estimate edited upward externally; rehydrate with the new value
		raised := 60
		o, err = order.RestoreOrder(o.ID(), order.Snapshot{
			Status:            o.Status(),
			PickedUpAt:        &pickedUp,
			EstimatedDuration: &raised,
		})
		require.NoError(t, err)

		changed, delayed = o.ReconcileDelay(at)
		assert.True(t, changed)
		assert.False(t, delayed)
		assert.Equal(t, order.OutForDelivery, o.Status())
	})

	t.Run("never reclassifies terminal orders", func(t *testing.T) {
		est := 30
		delivered := pickedUp.Add(20 * time.Minute)
		o, err := order.RestoreOrder(kernel.NewUUID(), order.Snapshot{
			Status:            order.Delivered,
			PickedUpAt:        &pickedUp,
			EstimatedDuration: &est,
			DeliveredAt:       &delivered,
		})
		require.NoError(t, err)

		changed, delayed := o.ReconcileDelay(pickedUp.Add(24 * time.Hour))
		assert.False(t, changed)
		assert.False(t, delayed)
		assert.Equal(t, order.Delivered, o.Status())

		cancelled := pickedUp.Add(5 * time.Minute)
		o, err = order.RestoreOrder(kernel.NewUUID(), order.Snapshot{
			Status:            order.Cancelled,
			PickedUpAt:        &pickedUp,
			EstimatedDuration: &est,
			CancelledAt:       &cancelled,
		})
		require.NoError(t, err)

		changed, delayed = o.ReconcileDelay(pickedUp.Add(24 * time.Hour))
		assert.False(t, changed)
		assert.False(t, delayed)
		assert.Equal(t, order.Cancelled, o.Status())
	})
}
