package order

import (
	"errors"
	"math"
	"time"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/pkg/errs"
	"lastmile/internal/pkg/guard"
)

// ProofTTL is how long a generated credential remains redeemable.
const ProofTTL = 30 * time.Minute

// ErrOrderIsNotConstructed is returned when an Order instance was not created
// through NewOrder or RestoreOrder. This ensures all orders are properly validated.
var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

// Order is the aggregate root for a delivery order. It owns the
// proof-of-delivery credential lifecycle and the delay-tracking state.
//
// Order maintains these invariants:
//   - A credential (otp, qr payload, expiry) is only meaningful while the
//     order is pre-delivery; once verifiedAt is set the order is terminal
//     for verification purposes.
//   - The Delayed status is always derivable from pickedUpAt,
//     estimatedDuration and the current time.
//   - A non-nil deliveredAt or cancelledAt permanently excludes the order
//     from delay reclassification.
type Order struct {
	id     kernel.UUID
	status Status

	// proof-of-delivery credential; nil until IssueProof
	deliveryOTP  *string
	deliveryQR   *string
	otpExpiresAt *time.Time

	// stamped once on successful verification
	verifiedAt         *time.Time
	verificationMethod *Method

	// transit tracking
	pickedUpAt        *time.Time
	estimatedDuration *int // minutes

	deliveredAt *time.Time
	cancelledAt *time.Time

	guard guard.ConstructorGuard
}

// NewOrder creates a new order in Created status.
func NewOrder(id kernel.UUID) (*Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	return &Order{
		id:     id,
		status: Created,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Snapshot carries the persisted state of an order for rehydration.
// All pointer fields are nullable database columns.
type Snapshot struct {
	Status             Status
	DeliveryOTP        *string
	DeliveryQR         *string
	OTPExpiresAt       *time.Time
	VerifiedAt         *time.Time
	VerificationMethod *Method
	PickedUpAt         *time.Time
	EstimatedDuration  *int
	DeliveredAt        *time.Time
	CancelledAt        *time.Time
}

// RestoreOrder reconstructs an order from its persisted snapshot.
// Used by repositories; validates the identifier and status.
func RestoreOrder(id kernel.UUID, snap Snapshot) (*Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := snap.Status.Validate(); err != nil {
		return nil, err
	}
	if snap.EstimatedDuration != nil && *snap.EstimatedDuration <= 0 {
		return nil, errs.NewValueIsOutOfRangeError("estimatedDuration", *snap.EstimatedDuration, 1, math.MaxInt)
	}

	return &Order{
		id:                 id,
		status:             snap.Status,
		deliveryOTP:        snap.DeliveryOTP,
		deliveryQR:         snap.DeliveryQR,
		otpExpiresAt:       snap.OTPExpiresAt,
		verifiedAt:         snap.VerifiedAt,
		verificationMethod: snap.VerificationMethod,
		pickedUpAt:         snap.PickedUpAt,
		estimatedDuration:  snap.EstimatedDuration,
		deliveredAt:        snap.DeliveredAt,
		cancelledAt:        snap.CancelledAt,
		guard:              guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// DeliveryOTP returns the stored one-time code, or nil if none was issued.
func (o *Order) DeliveryOTP() *string {
	return o.deliveryOTP
}

// DeliveryQR returns the stored QR payload, or nil if none was issued.
func (o *Order) DeliveryQR() *string {
	return o.deliveryQR
}

// OTPExpiresAt returns the credential expiry instant, or nil.
func (o *Order) OTPExpiresAt() *time.Time {
	return o.otpExpiresAt
}

// VerifiedAt returns when the delivery proof was redeemed, or nil.
func (o *Order) VerifiedAt() *time.Time {
	return o.verifiedAt
}

// VerificationMethod returns how the delivery was verified, or nil.
func (o *Order) VerificationMethod() *Method {
	return o.verificationMethod
}

// PickedUpAt returns when the package was collected, or nil.
func (o *Order) PickedUpAt() *time.Time {
	return o.pickedUpAt
}

// EstimatedDuration returns the expected transit time in minutes, or nil.
func (o *Order) EstimatedDuration() *int {
	return o.estimatedDuration
}

// DeliveredAt returns the delivery timestamp, or nil.
func (o *Order) DeliveredAt() *time.Time {
	return o.deliveredAt
}

// CancelledAt returns the cancellation timestamp, or nil.
func (o *Order) CancelledAt() *time.Time {
	return o.cancelledAt
}

// IsTerminal reports whether the order has a terminal timestamp.
// Terminal orders admit no further verification or delay transitions.
func (o *Order) IsTerminal() bool {
	return o.deliveredAt != nil || o.cancelledAt != nil
}

// Assign marks the order as assigned to a delivery agent.
func (o *Order) Assign() error {
	newStatus, err := o.status.Assign()
	if err != nil {
		return err
	}
	o.status = newStatus
	return nil
}

// PickUp records physical collection of the package and the expected
// transit time in minutes, starting the delay-tracking window.
func (o *Order) PickUp(now time.Time, estimatedMinutes int) error {
	if estimatedMinutes <= 0 {
		return errs.NewValueIsOutOfRangeError("estimatedMinutes", estimatedMinutes, 1, math.MaxInt)
	}

	newStatus, err := o.status.PickUp()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.pickedUpAt = &now
	o.estimatedDuration = &estimatedMinutes
	return nil
}

// StartDelivery marks the package as out for delivery.
func (o *Order) StartDelivery() error {
	newStatus, err := o.status.StartDelivery()
	if err != nil {
		return err
	}
	o.status = newStatus
	return nil
}

// Cancel aborts the order and stamps cancelledAt, permanently excluding it
// from verification and delay tracking.
func (o *Order) Cancel(now time.Time) error {
	newStatus, err := o.status.Cancel()
	if err != nil {
		return err
	}
	o.status = newStatus
	o.cancelledAt = &now
	return nil
}

// IssueProof generates a fresh proof-of-delivery credential: a random
// numeric one-time code, its QR payload, and an expiry 30 minutes out.
// Each call overwrites the previous credential, invalidating any earlier
// outstanding code. Fails with ErrOrderTerminal on delivered or cancelled
// orders and ErrAlreadyVerified once the proof has been redeemed.
func (o *Order) IssueProof(now time.Time) error {
	if o.IsTerminal() {
		return ErrOrderTerminal
	}
	if o.verifiedAt != nil {
		return ErrAlreadyVerified
	}

	otp, err := NewOTP(OTPLength)
	if err != nil {
		return err
	}

	qr := EncodeQRPayload(o.id, otp)
	expiresAt := now.Add(ProofTTL)

	o.deliveryOTP = &otp
	o.deliveryQR = &qr
	o.otpExpiresAt = &expiresAt
	return nil
}

// VerifyProof redeems the delivery credential. Checks run in a fixed order:
//
//  1. already redeemed          -> ErrAlreadyVerified
//  2. no credential ever issued -> ErrNoProofIssued
//  3. exact string mismatch     -> ErrProofMismatch
//  4. now strictly after expiry -> ErrProofExpired
//
// A wrong code on an expired credential therefore reports ErrProofMismatch,
// not ErrProofExpired. On success the order transitions to Delivered,
// verifiedAt and verificationMethod are stamped, and deliveredAt is set
// only if not already present. The credential fields are left in place.
func (o *Order) VerifyProof(supplied string, method Method, now time.Time) error {
	if o.verifiedAt != nil {
		return ErrAlreadyVerified
	}
	if o.deliveryOTP == nil {
		return ErrNoProofIssued
	}
	if supplied != *o.deliveryOTP {
		return ErrProofMismatch
	}
	if o.otpExpiresAt != nil && now.After(*o.otpExpiresAt) {
		return ErrProofExpired
	}

	newStatus, err := o.status.Deliver()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.verifiedAt = &now
	o.verificationMethod = &method
	if o.deliveredAt == nil {
		o.deliveredAt = &now
	}
	return nil
}
