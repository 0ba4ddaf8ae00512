package gateway_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/alovak/cardvalidation/card"
	"github.com/alovak/cardvalidation/gateway"
	"github.com/alovak/cardvalidation/gateway/models"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

func newService(buf *bytes.Buffer) *gateway.Service {
	validator := card.NewValidator(card.WithClock(func() time.Time { return now }))
	return gateway.NewService(validator, slog.New(slog.NewTextHandler(buf, nil)))
}

func TestService_Validate(t *testing.T) {
	var logs bytes.Buffer
	service := newService(&logs)

	network, err := service.Validate(context.Background(), models.CardDetails{
		Owner:  models.StringPtr("John Doe"),
		Number: models.StringPtr("2720999999999999"),
		Date:   models.StringPtr("11/2026"),
		Cvv:    models.StringPtr("4567"),
	})
	require.NoError(t, err)
	require.Equal(t, card.MasterCard, network)

	require.Contains(t, logs.String(), "272099******9999")
	require.NotContains(t, logs.String(), "2720999999999999")
}

func TestService_ValidateRejected(t *testing.T) {
	var logs bytes.Buffer
	service := newService(&logs)

	_, err := service.Validate(context.Background(), models.CardDetails{
		Owner:  models.StringPtr("John Doe"),
		Number: models.StringPtr("4111111111111111"),
		Date:   models.StringPtr("10/26"),
		Cvv:    models.StringPtr("123"),
	})
	fe := models.AsFieldErrors(err)
	require.NotNil(t, fe)
	require.Equal(t, []string{"Date"}, fe.Fields())
	require.NotContains(t, logs.String(), "4111111111111111")
}

func TestService_Verify(t *testing.T) {
	service := newService(&bytes.Buffer{})

	cases := []struct {
		name    string
		req     models.VerificationRequest
		code    string
		network card.PaymentSystemType
	}{
		{"approved", models.VerificationRequest{PAN: "4111111111111111", ExpiryYYMM: "2812"}, models.ResponseCodeApproved, card.Visa},
		{"amex", models.VerificationRequest{PAN: "341111111111111", ExpiryYYMM: "2611"}, models.ResponseCodeApproved, card.AmericanExpress},
		{"current month", models.VerificationRequest{PAN: "4111111111111111", ExpiryYYMM: "2610"}, models.ResponseCodeExpiredCard, 0},
		{"past", models.VerificationRequest{PAN: "4111111111111111", ExpiryYYMM: "2001"}, models.ResponseCodeExpiredCard, 0},
		{"unknown network", models.VerificationRequest{PAN: "1234567890123456", ExpiryYYMM: "2812"}, models.ResponseCodeInvalidCardNumber, 0},
		{"bad month", models.VerificationRequest{PAN: "4111111111111111", ExpiryYYMM: "2813"}, models.ResponseCodeFormatError, 0},
		{"missing pan", models.VerificationRequest{ExpiryYYMM: "2812"}, models.ResponseCodeFormatError, 0},
		{"missing expiry", models.VerificationRequest{PAN: "4111111111111111"}, models.ResponseCodeFormatError, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			result := service.Verify(context.Background(), c.req)
			require.Equal(t, c.code, result.ResponseCode)
			require.Equal(t, c.network, result.Network)
		})
	}
}
