package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/order"
	"lastmile/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetProofQueryHandler reads one order's credential fields for display.
type GetProofQueryHandler struct {
	db *gorm.DB
}

// NewGetProofQueryHandler creates a handler for credential projections.
func NewGetProofQueryHandler(db *gorm.DB) GetProofQueryHandler {
	return GetProofQueryHandler{db: db}
}

// Handle executes the projection. Fails with errs.ObjectNotFoundError when
// the order does not exist; performs no writes.
func (h GetProofQueryHandler) Handle(ctx context.Context, query GetProofQuery) (GetProofQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetProofQueryResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			status,
			delivery_otp,
			delivery_qr,
			otp_expires_at,
			verified_at,
			verification_method,
			picked_up_at,
			estimated_duration
		FROM orders
		WHERE id = ?
	`, query.OrderID().Bytes()).Row()

	var (
		id                uuid.UUID
		status            int
		otp               sql.NullString
		qr                sql.NullString
		expiresAt         sql.NullTime
		verifiedAt        sql.NullTime
		method            sql.NullString
		pickedUpAt        sql.NullTime
		estimatedDuration sql.NullInt64
	)

	err := row.Scan(&id, &status, &otp, &qr, &expiresAt, &verifiedAt,
		&method, &pickedUpAt, &estimatedDuration)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return GetProofQueryResponse{}, errs.NewObjectNotFoundError("order", query.OrderID().String())
		}
		return GetProofQueryResponse{}, err
	}

	orderID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return GetProofQueryResponse{}, err
	}

	resp := GetProofQueryResponse{
		OrderID: orderID,
		Status:  order.Status(status).String(),
	}
	if otp.Valid {
		resp.OTP = &otp.String
	}
	if qr.Valid {
		resp.QRPayload = &qr.String
	}
	if expiresAt.Valid {
		resp.ExpiresAt = &expiresAt.Time
	}
	if verifiedAt.Valid {
		resp.VerifiedAt = &verifiedAt.Time
	}
	if method.Valid {
		resp.VerificationMethod = &method.String
	}

	var pickedUp *time.Time
	if pickedUpAt.Valid {
		pickedUp = &pickedUpAt.Time
	}
	var estimate *int
	if estimatedDuration.Valid {
		v := int(estimatedDuration.Int64)
		estimate = &v
	}
	resp.Delayed = order.IsDelayed(pickedUp, estimate, order.Status(status), time.Now())

	return resp, nil
}
