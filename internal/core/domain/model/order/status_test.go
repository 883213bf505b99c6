package order_test

import (
	"fmt"
	"testing"

	"lastmile/internal/core/domain/model/order"
	"lastmile/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_Constants(t *testing.T) {
	t.Run("should have correct enum values", func(t *testing.T) {
		assert.Equal(t, 0, int(order.Unknown))
		assert.Equal(t, 1, int(order.Created))
		assert.Equal(t, 2, int(order.Assigned))
		assert.Equal(t, 3, int(order.PickedUp))
		assert.Equal(t, 4, int(order.OutForDelivery))
		assert.Equal(t, 5, int(order.Delayed))
		assert.Equal(t, 6, int(order.Delivered))
		assert.Equal(t, 7, int(order.Cancelled))
	})
}

func TestStatus_Validate(t *testing.T) {
	t.Run("should validate valid statuses", func(t *testing.T) {
		validStatuses := []order.Status{
			order.Created,
			order.Assigned,
			order.PickedUp,
			order.OutForDelivery,
			order.Delayed,
			order.Delivered,
			order.Cancelled,
		}

		for _, status := range validStatuses {
			t.Run(fmt.Sprintf("should validate %s status", status.String()), func(t *testing.T) {
				require.NoError(t, status.Validate())
			})
		}
	})

	t.Run("should reject invalid status values", func(t *testing.T) {
		invalidStatuses := []order.Status{
			order.Unknown,
			order.Status(-1),
			order.Status(8),
			order.Status(100),
		}

		for _, status := range invalidStatuses {
			t.Run(fmt.Sprintf("should reject status value %d", int(status)), func(t *testing.T) {
				err := status.Validate()

				require.Error(t, err)
				assert.IsType(t, &errs.ValueIsInvalidError{}, err)
				assert.Contains(t, err.Error(), "status is invalid")
			})
		}
	})
}

func TestStatus_String(t *testing.T) {
	t.Run("should return wire-format names", func(t *testing.T) {
		testCases := []struct {
			status   order.Status
			expected string
		}{
			{order.Created, "CREATED"},
			{order.Assigned, "ASSIGNED"},
			{order.PickedUp, "PICKED_UP"},
			{order.OutForDelivery, "OUT_FOR_DELIVERY"},
			{order.Delayed, "DELAYED"},
			{order.Delivered, "DELIVERED"},
			{order.Cancelled, "CANCELLED"},
		}

		for _, tc := range testCases {
			assert.Equal(t, tc.expected, tc.status.String())
		}
	})

	t.Run("should return UNKNOWN for invalid statuses", func(t *testing.T) {
		assert.Equal(t, "UNKNOWN", order.Unknown.String())
		assert.Equal(t, "UNKNOWN", order.Status(99).String())
	})
}

func TestStatus_Classification(t *testing.T) {
	t.Run("terminal statuses", func(t *testing.T) {
		assert.True(t, order.Delivered.IsTerminal())
		assert.True(t, order.Cancelled.IsTerminal())
		assert.False(t, order.Created.IsTerminal())
		assert.False(t, order.Delayed.IsTerminal())
	})

	t.Run("in-transit statuses", func(t *testing.T) {
		assert.True(t, order.PickedUp.IsInTransit())
		assert.True(t, order.OutForDelivery.IsInTransit())
		assert.True(t, order.Delayed.IsInTransit())
		assert.False(t, order.Created.IsInTransit())
		assert.False(t, order.Assigned.IsInTransit())
		assert.False(t, order.Delivered.IsInTransit())
	})
}

func TestStatus_Transitions(t *testing.T) {
	t.Run("assign from created and assigned", func(t *testing.T) {
		for _, from := range []order.Status{order.Created, order.Assigned} {
			next, err := from.Assign()
			require.NoError(t, err)
			assert.Equal(t, order.Assigned, next)
		}

		_, err := order.Delivered.Assign()
		require.Error(t, err)
	})

	t.Run("pick up from created and assigned", func(t *testing.T) {
		for _, from := range []order.Status{order.Created, order.Assigned} {
			next, err := from.PickUp()
			require.NoError(t, err)
			assert.Equal(t, order.PickedUp, next)
		}

		_, err := order.OutForDelivery.PickUp()
		require.Error(t, err)
	})

	t.Run("start delivery only from picked up", func(t *testing.T) {
		next, err := order.PickedUp.StartDelivery()
		require.NoError(t, err)
		assert.Equal(t, order.OutForDelivery, next)

		_, err = order.Created.StartDelivery()
		require.Error(t, err)
	})

	t.Run("mark delayed only in transit", func(t *testing.T) {
		for _, from := range []order.Status{order.PickedUp, order.OutForDelivery} {
			next, err := from.MarkDelayed()
			require.NoError(t, err)
			assert.Equal(t, order.Delayed, next)
		}

		_, err := order.Delayed.MarkDelayed()
		require.Error(t, err)
		_, err = order.Created.MarkDelayed()
		require.Error(t, err)
	})

	t.Run("clear delay reverts to out for delivery", func(t *testing.T) {
		next, err := order.Delayed.ClearDelay()
		require.NoError(t, err)
		assert.Equal(t, order.OutForDelivery, next)

		_, err = order.OutForDelivery.ClearDelay()
		require.Error(t, err)
	})

	t.Run("deliver from any non-terminal status", func(t *testing.T) {
		for _, from := range []order.Status{
			order.Created, order.Assigned, order.PickedUp, order.OutForDelivery, order.Delayed,
		} {
			next, err := from.Deliver()
			require.NoError(t, err)
			assert.Equal(t, order.Delivered, next)
		}

		_, err := order.Delivered.Deliver()
		require.Error(t, err)
		_, err = order.Cancelled.Deliver()
		require.Error(t, err)
	})

	t.Run("cancel from any non-terminal status", func(t *testing.T) {
		next, err := order.Delayed.Cancel()
		require.NoError(t, err)
		assert.Equal(t, order.Cancelled, next)

		_, err = order.Cancelled.Cancel()
		require.Error(t, err)
		_, err = order.Unknown.Cancel()
		require.Error(t, err)
	})
}
