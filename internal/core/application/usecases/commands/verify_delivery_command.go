package commands

import (
	"errors"
	"time"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/order"
	"lastmile/internal/pkg/errs"
	"lastmile/internal/pkg/guard"
)

var ErrVerifyDeliveryCommandIsNotConstructed = errors.New(
	"VerifyDeliveryCommand must be created via a NewVerifyDeliveryCommand constructor",
)

// VerifyDeliveryCommand redeems a proof-of-delivery credential for an order.
// Built either from an order id and a manually entered code (OTP method) or
// from a scanned QR payload (QR method); both paths share one handler and
// therefore one failure taxonomy.
type VerifyDeliveryCommand struct {
	orderID kernel.UUID
	otp     string
	method  order.Method

	guard guard.ConstructorGuard
}

// NewVerifyDeliveryCommand creates an OTP-method verification command.
// The supplied code is compared exactly as given; no normalization.
func NewVerifyDeliveryCommand(orderID kernel.UUID, otp string) (VerifyDeliveryCommand, error) {
	if err := orderID.Validate(); err != nil {
		return VerifyDeliveryCommand{}, err
	}
	if otp == "" {
		return VerifyDeliveryCommand{}, errs.NewValueIsRequiredError("otp")
	}

	return VerifyDeliveryCommand{
		orderID: orderID,
		otp:     otp,
		method:  order.MethodOTP,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// NewVerifyDeliveryCommandFromQR creates a QR-method verification command by
// parsing the scanned payload. Returns order.ErrMalformedQR when the payload
// does not have the "DELIVERY:<orderId>:<otp>" shape; a malformed payload
// never reaches the code comparison.
func NewVerifyDeliveryCommandFromQR(payload string) (VerifyDeliveryCommand, error) {
	orderID, otp, err := order.ParseQRPayload(payload)
	if err != nil {
		return VerifyDeliveryCommand{}, err
	}

	return VerifyDeliveryCommand{
		orderID: orderID,
		otp:     otp,
		method:  order.MethodQR,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through a constructor.
func (c VerifyDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrVerifyDeliveryCommandIsNotConstructed)
}

// OrderID returns the order being verified.
func (c VerifyDeliveryCommand) OrderID() kernel.UUID {
	return c.orderID
}

// OTP returns the supplied one-time code.
func (c VerifyDeliveryCommand) OTP() string {
	return c.otp
}

// Method returns how the proof was presented (OTP or QR).
func (c VerifyDeliveryCommand) Method() order.Method {
	return c.method
}

// VerificationResult is the projection returned after a successful redemption.
type VerificationResult struct {
	OrderID     kernel.UUID
	Status      string
	VerifiedAt  time.Time
	Method      string
	DeliveredAt time.Time
}
