package order

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"lastmile/internal/core/domain/model/kernel"
)

const (
	// OTPLength is the number of digits in a generated one-time code.
	OTPLength = 6

	// QRTag is the literal first segment of every QR proof payload.
	QRTag = "DELIVERY"

	// QRDelimiter joins the segments of a QR proof payload.
	// Order ids and one-time codes must never contain it.
	QRDelimiter = ":"
)

// Verification failure taxonomy. All are surfaced to callers as distinct,
// catchable conditions so the API layer can map them to precise responses.
var (
	// ErrNoProofIssued is returned when verification is attempted before
	// any credential was generated for the order.
	ErrNoProofIssued = errors.New("no delivery proof has been issued for this order")

	// ErrProofMismatch is returned when the supplied code does not exactly
	// match the stored one-time code. Takes precedence over expiry.
	ErrProofMismatch = errors.New("delivery proof does not match")

	// ErrProofExpired is returned when the credential window has elapsed.
	// Expiry is strict: verification exactly at the expiry instant succeeds.
	ErrProofExpired = errors.New("delivery proof has expired")

	// ErrMalformedQR is returned when a QR payload does not have the
	// expected three-segment shape or carries the wrong tag.
	ErrMalformedQR = errors.New("QR payload is malformed")

	// ErrAlreadyVerified is returned when verification is attempted on an
	// order whose proof was already redeemed.
	ErrAlreadyVerified = errors.New("order has already been verified")

	// ErrOrderTerminal is returned when a credential is requested for an
	// order that is already delivered or cancelled.
	ErrOrderTerminal = errors.New("order is in a terminal state")
)

// Method identifies how a delivery was verified.
type Method int

const (
	MethodUnknown Method = iota

	// MethodOTP marks verification by manually entered one-time code.
	MethodOTP

	// MethodQR marks verification by scanned QR payload.
	MethodQR
)

// String returns the persisted form of the method: "OTP" or "QR".
func (m Method) String() string {
	switch m {
	case MethodOTP:
		return "OTP"
	case MethodQR:
		return "QR"
	default:
		return "UNKNOWN"
	}
}

// MethodFromString parses a persisted verification method.
func MethodFromString(s string) (Method, error) {
	switch s {
	case "OTP":
		return MethodOTP, nil
	case "QR":
		return MethodQR, nil
	default:
		return MethodUnknown, fmt.Errorf("%q is not a valid verification method", s)
	}
}

// NewOTP generates a numeric one-time code of the given length, each digit
// drawn uniformly at random from 0-9 using crypto/rand.
func NewOTP(length int) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("OTP length must be positive, got %d", length)
	}

	var sb strings.Builder
	sb.Grow(length)
	for range length {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", fmt.Errorf("generate OTP digit: %w", err)
		}
		sb.WriteByte(byte('0' + n.Int64()))
	}
	return sb.String(), nil
}

// EncodeQRPayload builds the scannable proof payload for an order:
//
//	"DELIVERY:<orderId>:<otp>"
func EncodeQRPayload(orderID kernel.UUID, otp string) string {
	return QRTag + QRDelimiter + orderID.String() + QRDelimiter + otp
}

// ParseQRPayload splits a scanned payload into its order id and one-time
// code. Returns ErrMalformedQR when the payload does not have exactly three
// colon-delimited segments, carries a tag other than "DELIVERY", or embeds
// an order id that is not a UUID. A malformed payload never reaches the
// code comparison.
func ParseQRPayload(payload string) (kernel.UUID, string, error) {
	parts := strings.Split(payload, QRDelimiter)
	if len(parts) != 3 || parts[0] != QRTag {
		return kernel.UUID{}, "", ErrMalformedQR
	}

	orderID, err := kernel.UUIDFromString(parts[1])
	if err != nil {
		return kernel.UUID{}, "", fmt.Errorf("%w: %s", ErrMalformedQR, err)
	}

	return orderID, parts[2], nil
}
