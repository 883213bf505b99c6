package commands

import (
	"errors"

	"lastmile/internal/pkg/guard"
)

var ErrReconcileDelaysCommandIsNotConstructed = errors.New(
	"ReconcileDelaysCommand must be created via NewReconcileDelaysCommand constructor",
)

// ReconcileDelaysCommand requests a delay reconciliation sweep over every
// in-transit order. Issued periodically by the delay-monitor job.
type ReconcileDelaysCommand struct {
	guard guard.ConstructorGuard
}

// NewReconcileDelaysCommand creates a parameterless sweep command.
func NewReconcileDelaysCommand() ReconcileDelaysCommand {
	return ReconcileDelaysCommand{guard: guard.NewConstructorGuard()}
}

// Validate ensures the command was created through the constructor.
func (c ReconcileDelaysCommand) Validate() error {
	return c.guard.Validate(ErrReconcileDelaysCommandIsNotConstructed)
}
