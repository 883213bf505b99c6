package order

import (
	"fmt"

	"lastmile/internal/pkg/errs"
)

// Status represents the lifecycle state of a delivery order.
// It implements a state machine with defined transitions to ensure
// orders follow the correct delivery workflow.
//
// State transitions:
//
//	Created ──┬──> Assigned ──> PickedUp ──> OutForDelivery <──> Delayed
//	          │        │            │              │                │
//	          └────────┘            └──────────────┴──> Delivered <─┘
//
// Any non-terminal status may transition to Cancelled. Delivered and
// Cancelled are terminal: no further transitions are allowed.
//
// The Delayed status is always derived from pickup time and the transit
// estimate; it is never authoritative on its own and may be reverted to
// OutForDelivery when the estimate is raised.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Created is the initial status when an order is first registered.
	Created

	// Assigned indicates the order has been assigned to a delivery agent.
	Assigned

	// PickedUp indicates the package has been physically collected.
	// Delay tracking starts at this point.
	PickedUp

	// OutForDelivery indicates the package is in transit to the recipient.
	OutForDelivery

	// Delayed indicates elapsed transit time has exceeded the estimate.
	// Derived by the delay monitor; reversible.
	Delayed

	// Delivered indicates proof of delivery has been verified. Terminal.
	Delivered

	// Cancelled indicates the order was aborted before delivery. Terminal.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:        "UNKNOWN",
		Created:        "CREATED",
		Assigned:       "ASSIGNED",
		PickedUp:       "PICKED_UP",
		OutForDelivery: "OUT_FOR_DELIVERY",
		Delayed:        "DELAYED",
		Delivered:      "DELIVERED",
		Cancelled:      "CANCELLED",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Created:        "CREATED",
		Assigned:       "ASSIGNED",
		PickedUp:       "PICKED_UP",
		OutForDelivery: "OUT_FOR_DELIVERY",
		Delayed:        "DELAYED",
		Delivered:      "DELIVERED",
		Cancelled:      "CANCELLED",
	}
}

// Validate checks if the Status value is valid.
// Unknown (0) and out-of-range values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire-format name of the status, e.g. "OUT_FOR_DELIVERY".
// Implements fmt.Stringer and is safe to call on invalid values.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsTerminal reports whether the status admits no further transitions.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// IsInTransit reports whether the order is between pickup and delivery,
// which is the window in which delay tracking applies.
func (s Status) IsInTransit() bool {
	return s == PickedUp || s == OutForDelivery || s == Delayed
}

// Assign transitions the status to Assigned.
//
// Valid transitions:
//   - Created -> Assigned (initial assignment)
//   - Assigned -> Assigned (reassignment to a different agent)
func (s Status) Assign() (Status, error) {
	if s != Created && s != Assigned {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to assign", s.String()),
		)
	}
	return Assigned, nil
}

// PickUp transitions the status to PickedUp.
//
// Valid transitions:
//   - Created -> PickedUp (direct pickup without explicit assignment)
//   - Assigned -> PickedUp
func (s Status) PickUp() (Status, error) {
	if s != Created && s != Assigned {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to pick up", s.String()),
		)
	}
	return PickedUp, nil
}

// StartDelivery transitions the status from PickedUp to OutForDelivery.
func (s Status) StartDelivery() (Status, error) {
	if s != PickedUp {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to start delivery", s.String()),
		)
	}
	return OutForDelivery, nil
}

// MarkDelayed transitions an in-transit status to Delayed.
func (s Status) MarkDelayed() (Status, error) {
	if !s.IsInTransit() || s == Delayed {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to mark delayed", s.String()),
		)
	}
	return Delayed, nil
}

// ClearDelay reverts a Delayed status to OutForDelivery.
// Used when the transit estimate is raised above the elapsed time.
func (s Status) ClearDelay() (Status, error) {
	if s != Delayed {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to clear delay", s.String()),
		)
	}
	return OutForDelivery, nil
}

// Deliver transitions any non-terminal status to Delivered.
// Reached only through successful proof-of-delivery verification.
func (s Status) Deliver() (Status, error) {
	if s.IsTerminal() || s == Unknown {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to deliver", s.String()),
		)
	}
	return Delivered, nil
}

// Cancel transitions any non-terminal status to Cancelled.
func (s Status) Cancel() (Status, error) {
	if s.IsTerminal() || s == Unknown {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to cancel", s.String()),
		)
	}
	return Cancelled, nil
}
