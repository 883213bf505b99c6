package order_test

import (
	"strings"
	"testing"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOTP(t *testing.T) {
	t.Run("should generate codes of the configured length with digits only", func(t *testing.T) {
		for range 50 {
			otp, err := order.NewOTP(order.OTPLength)
			require.NoError(t, err)
			assert.Len(t, otp, order.OTPLength)
			for _, r := range otp {
				assert.True(t, r >= '0' && r <= '9', "unexpected rune %q in OTP %q", r, otp)
			}
		}
	})

	t.Run("should reject non-positive lengths", func(t *testing.T) {
		_, err := order.NewOTP(0)
		require.Error(t, err)
		_, err = order.NewOTP(-3)
		require.Error(t, err)
	})
}

func TestQRPayload(t *testing.T) {
	t.Run("encode produces the three-segment payload", func(t *testing.T) {
		id := kernel.NewUUID()
		payload := order.EncodeQRPayload(id, "123456")

		assert.Equal(t, "DELIVERY:"+id.String()+":123456", payload)
	})

	t.Run("parse round-trips an encoded payload", func(t *testing.T) {
		id := kernel.NewUUID()
		payload := order.EncodeQRPayload(id, "987654")

		parsedID, otp, err := order.ParseQRPayload(payload)
		require.NoError(t, err)
		assert.True(t, id.IsEqual(parsedID))
		assert.Equal(t, "987654", otp)
	})

	t.Run("parse rejects wrong segment counts", func(t *testing.T) {
		id := kernel.NewUUID()
		cases := []string{
			"",
			"DELIVERY",
			"DELIVERY:" + id.String(),
			"DELIVERY:" + id.String() + ":123456:extra",
		}

		for _, payload := range cases {
			_, _, err := order.ParseQRPayload(payload)
			require.ErrorIs(t, err, order.ErrMalformedQR, "payload %q", payload)
		}
	})

	t.Run("parse rejects wrong tags", func(t *testing.T) {
		id := kernel.NewUUID()
		for _, tag := range []string{"PICKUP", "delivery", "DELIVERY "} {
			_, _, err := order.ParseQRPayload(tag + ":" + id.String() + ":123456")
			require.ErrorIs(t, err, order.ErrMalformedQR)
		}
	})

	t.Run("parse rejects non-UUID order ids", func(t *testing.T) {
		_, _, err := order.ParseQRPayload("DELIVERY:not-a-uuid:123456")
		require.ErrorIs(t, err, order.ErrMalformedQR)
	})
}

func TestMethod(t *testing.T) {
	t.Run("string forms", func(t *testing.T) {
		assert.Equal(t, "OTP", order.MethodOTP.String())
		assert.Equal(t, "QR", order.MethodQR.String())
		assert.Equal(t, "UNKNOWN", order.MethodUnknown.String())
	})

	t.Run("parses persisted forms", func(t *testing.T) {
		m, err := order.MethodFromString("OTP")
		require.NoError(t, err)
		assert.Equal(t, order.MethodOTP, m)

		m, err = order.MethodFromString("QR")
		require.NoError(t, err)
		assert.Equal(t, order.MethodQR, m)

		_, err = order.MethodFromString("qr")
		require.Error(t, err)
		_, err = order.MethodFromString("")
		require.Error(t, err)
	})
}

func TestEncodeQRPayload_DelimiterSafety(t *testing.T) {
	// UUIDs and numeric codes can never contain the delimiter, so an
	// encoded payload always splits back into exactly three segments.
	id := kernel.NewUUID()
	otp, err := order.NewOTP(order.OTPLength)
	require.NoError(t, err)

	payload := order.EncodeQRPayload(id, otp)
	assert.Len(t, strings.Split(payload, order.QRDelimiter), 3)
}
