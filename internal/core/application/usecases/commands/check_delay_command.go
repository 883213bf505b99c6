package commands

import (
	"errors"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/pkg/guard"
)

var ErrCheckDelayCommandIsNotConstructed = errors.New(
	"CheckDelayCommand must be created via NewCheckDelayCommand constructor",
)

// DelayCheckResult is the tri-state outcome of a delay reconciliation pass.
// A failed check is distinguishable from a healthy not-delayed order, so
// callers retain observability while the monitor itself stays non-fatal.
type DelayCheckResult int

const (
	// DelayCheckFailed indicates the reconciliation pass could not complete
	// (order missing, load or write failure). Accompanied by an error.
	DelayCheckFailed DelayCheckResult = iota

	// DelayCheckNotDelayed indicates the order is within its estimate, has
	// no delay baseline yet, or is terminal.
	DelayCheckNotDelayed

	// DelayCheckDelayed indicates elapsed transit time exceeds the estimate.
	DelayCheckDelayed
)

// String returns a log-friendly name for the result.
func (r DelayCheckResult) String() string {
	switch r {
	case DelayCheckNotDelayed:
		return "not-delayed"
	case DelayCheckDelayed:
		return "delayed"
	default:
		return "check-failed"
	}
}

// CheckDelayCommand requests a delay reconciliation pass for one order.
// Idempotent and safe to issue repeatedly.
type CheckDelayCommand struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewCheckDelayCommand creates a command to reconcile one order's delay status.
func NewCheckDelayCommand(orderID kernel.UUID) (CheckDelayCommand, error) {
	if err := orderID.Validate(); err != nil {
		return CheckDelayCommand{}, err
	}

	return CheckDelayCommand{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CheckDelayCommand) Validate() error {
	return c.guard.Validate(ErrCheckDelayCommandIsNotConstructed)
}

// OrderID returns the order being reconciled.
func (c CheckDelayCommand) OrderID() kernel.UUID {
	return c.orderID
}
