// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Credential and transit columns are nullable because they are only populated
// as the order moves through its lifecycle. Status is indexed for the
// delay-monitor sweep and the delayed-orders listing.
type OrderDTO struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	Status int       `gorm:"index"`

	DeliveryOTP        *string    `gorm:"type:varchar(16)"`
	DeliveryQR         *string    `gorm:"type:text"`
	OTPExpiresAt       *time.Time `gorm:"column:otp_expires_at"`
	VerifiedAt         *time.Time
	VerificationMethod *string `gorm:"type:varchar(8)"`

	PickedUpAt        *time.Time
	EstimatedDuration *int

	DeliveredAt *time.Time
	CancelledAt *time.Time
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	var method *string
	if m := aggregate.VerificationMethod(); m != nil {
		s := m.String()
		method = &s
	}

	return OrderDTO{
		ID:                 aggregate.ID().Bytes(),
		Status:             int(aggregate.Status()),
		DeliveryOTP:        aggregate.DeliveryOTP(),
		DeliveryQR:         aggregate.DeliveryQR(),
		OTPExpiresAt:       aggregate.OTPExpiresAt(),
		VerifiedAt:         aggregate.VerifiedAt(),
		VerificationMethod: method,
		PickedUpAt:         aggregate.PickedUpAt(),
		EstimatedDuration:  aggregate.EstimatedDuration(),
		DeliveredAt:        aggregate.DeliveredAt(),
		CancelledAt:        aggregate.CancelledAt(),
	}
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate from its snapshot using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var method *order.Method
	if dto.VerificationMethod != nil {
		m, methodErr := order.MethodFromString(*dto.VerificationMethod)
		if methodErr != nil {
			return nil, methodErr
		}
		method = &m
	}

	return order.RestoreOrder(id, order.Snapshot{
		Status:             order.Status(dto.Status),
		DeliveryOTP:        dto.DeliveryOTP,
		DeliveryQR:         dto.DeliveryQR,
		OTPExpiresAt:       dto.OTPExpiresAt,
		VerifiedAt:         dto.VerifiedAt,
		VerificationMethod: method,
		PickedUpAt:         dto.PickedUpAt,
		EstimatedDuration:  dto.EstimatedDuration,
		DeliveredAt:        dto.DeliveredAt,
		CancelledAt:        dto.CancelledAt,
	})
}
