// Package order provides domain entities and business logic for
// proof-of-delivery verification and delay tracking in the last-mile
// delivery system.
//
// The package includes:
//   - Order: The aggregate root that manages order identity, the
//     proof-of-delivery credential lifecycle, and delay-tracking state
//   - Status: A state machine that enforces valid order status transitions
//   - Proof helpers: OTP generation and the QR payload micro-format
//     "DELIVERY:<orderId>:<otp>"
//   - Delay helpers: elapsed-time computation and the reconciliation rules
//     that keep the Delayed status consistent with source timestamps
//
// Key business rules:
//   - Credentials are single-use and time-boxed (30 minutes); regeneration
//     overwrites and thereby invalidates any outstanding code
//   - A wrong code is reported as a mismatch even when the credential has
//     also expired; expiry is only checked after the identity match
//   - Successful verification stamps verifiedAt/verificationMethod, moves
//     the order to Delivered, and sets deliveredAt if not already present
//   - Delay status is derived, bidirectional, and never applied to orders
//     with a terminal timestamp
//
// The package follows Domain-Driven Design principles, providing rich
// domain behavior, encapsulation, and validation to ensure business rules
// are enforced.
package order
