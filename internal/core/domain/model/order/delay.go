package order

import "time"

// ElapsedMinutes returns the floored whole minutes between pickup and now,
// or nil when the order has not been picked up. Partial minutes do not count.
func ElapsedMinutes(pickedUpAt *time.Time, now time.Time) *int {
	if pickedUpAt == nil {
		return nil
	}
	elapsed := int(now.Sub(*pickedUpAt).Minutes())
	return &elapsed
}

// IsDelayed is a cheap, side-effect-free delay inspection for display
// purposes. It reports true when elapsed minutes strictly exceed the
// estimate, or when the status is already Delayed.
//
// This is a display shortcut only: because an existing Delayed status is
// sufficient on its own, the result can disagree with ReconcileDelay after
// the estimate is raised. The elapsed-time comparison in ReconcileDelay is
// the authoritative definition.
func IsDelayed(pickedUpAt *time.Time, estimatedDuration *int, currentStatus Status, now time.Time) bool {
	if currentStatus == Delayed {
		return true
	}
	if pickedUpAt == nil || estimatedDuration == nil {
		return false
	}
	return *ElapsedMinutes(pickedUpAt, now) > *estimatedDuration
}

// ElapsedSincePickup returns the floored whole minutes the order has been
// in transit, or nil before pickup.
func (o *Order) ElapsedSincePickup(now time.Time) *int {
	return ElapsedMinutes(o.pickedUpAt, now)
}

// ReconcileDelay re-derives the delay status from the source timestamps.
// Idempotent and safe to call repeatedly; at most one transition fires per
// call. Returns whether the status changed and whether the order is
// currently delayed.
//
// Rules:
//   - terminal orders (deliveredAt or cancelledAt set) are never
//     reclassified: (false, false)
//   - without pickedUpAt or estimatedDuration there is no baseline:
//     (false, false)
//   - elapsed > estimate (strict; exactly at the estimate is not delayed)
//     and status != Delayed: status becomes Delayed, (true, true)
//   - not delayed and status == Delayed: status reverts to OutForDelivery,
//     (true, false)
//   - otherwise no write: (false, delayed-as-computed)
func (o *Order) ReconcileDelay(now time.Time) (changed, delayed bool) {
	if o.IsTerminal() {
		return false, false
	}
	if o.pickedUpAt == nil || o.estimatedDuration == nil {
		return false, false
	}

	elapsed := *ElapsedMinutes(o.pickedUpAt, now)
	isDelayed := elapsed > *o.estimatedDuration

	switch {
	case isDelayed && o.status != Delayed:
		o.status = Delayed
		return true, true
	case !isDelayed && o.status == Delayed:
		o.status = OutForDelivery
		return true, false
	default:
		return false, isDelayed
	}
}
