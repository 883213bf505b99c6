package commands_test

import (
	"testing"
	"time"

	"lastmile/internal/core/application/usecases/commands"
	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/order"
	"lastmile/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// overdueAggregate builds an out-for-delivery order whose pickup predates
// its estimate by the given margin.
func overdueAggregate(t *testing.T, id kernel.UUID, estimatedMinutes, elapsedMinutes int) *order.Order {
	t.Helper()

	pickedUp := time.Now().Add(-time.Duration(elapsedMinutes) * time.Minute)
	aggregate, err := order.RestoreOrder(id, order.Snapshot{
		Status:            order.OutForDelivery,
		PickedUpAt:        &pickedUp,
		EstimatedDuration: &estimatedMinutes,
	})
	require.NoError(t, err)
	return aggregate
}

func TestCheckDelayCommandHandler_Handle_MarksDelayed(t *testing.T) {
	ctx := t.Context()
	id := kernel.NewUUID()
	aggregate := overdueAggregate(t, id, 30, 45)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, id).Return(aggregate, nil).Once(),
		repo.On("UpdateDelayStatus", mock.Anything, id, order.OutForDelivery, order.Delayed).
			Return(true, nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	cmd, _ := commands.NewCheckDelayCommand(id)
	h := commands.NewCheckDelayCommandHandler(factory)
	result, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, commands.DelayCheckDelayed, result)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestCheckDelayCommandHandler_Handle_WithinEstimate_NoWrite(t *testing.T) {
	ctx := t.Context()
	id := kernel.NewUUID()
	aggregate := overdueAggregate(t, id, 30, 10)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, id).Return(aggregate, nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	cmd, _ := commands.NewCheckDelayCommand(id)
	h := commands.NewCheckDelayCommandHandler(factory)
	result, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, commands.DelayCheckNotDelayed, result)
	repo.AssertNotCalled(t, "UpdateDelayStatus",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCheckDelayCommandHandler_Handle_RevertsWhenEstimateRaised(t *testing.T) {
	ctx := t.Context()
	id := kernel.NewUUID()

	// delayed in storage but the raised estimate now covers the elapsed time
	pickedUp := time.Now().Add(-20 * time.Minute)
	estimate := 60
	aggregate, err := order.RestoreOrder(id, order.Snapshot{
		Status:            order.Delayed,
		PickedUpAt:        &pickedUp,
		EstimatedDuration: &estimate,
	})
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, id).Return(aggregate, nil).Once(),
		repo.On("UpdateDelayStatus", mock.Anything, id, order.Delayed, order.OutForDelivery).
			Return(true, nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	cmd, _ := commands.NewCheckDelayCommand(id)
	h := commands.NewCheckDelayCommandHandler(factory)
	result, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, commands.DelayCheckNotDelayed, result)
	repo.AssertExpectations(t)
}

func TestCheckDelayCommandHandler_Handle_OrderNotFound(t *testing.T) {
	ctx := t.Context()
	id := kernel.NewUUID()

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, id).
			Return(nil, errs.NewObjectNotFoundError("order", id.String())).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	cmd, _ := commands.NewCheckDelayCommand(id)
	h := commands.NewCheckDelayCommandHandler(factory)
	result, err := h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.Equal(t, commands.DelayCheckFailed, result)
	assert.ErrorIs(t, err, errs.ErrObjectNotFound)
}
