package gateway_test

import (
	"context"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/alovak/cardvalidation/card"
	"github.com/alovak/cardvalidation/gateway"
	cardiso "github.com/alovak/cardvalidation/gateway/iso8583"
	"github.com/alovak/cardvalidation/gateway/models"
	"github.com/alovak/cardvalidation/internal/expiry"
	"github.com/alovak/cardvalidation/internal/gatewayclient"
	"github.com/moov-io/iso8583"
	connection "github.com/moov-io/iso8583-connection"
	"github.com/moov-io/iso8583/field"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

func TestApp_EndToEnd(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	config := &gateway.Config{
		HTTPAddr:       "127.0.0.1:0",
		ISO8583Addr:    "127.0.0.1:0",
		ISO8583Enabled: true,
		LogLevel:       "info",
		LogFormat:      "text",
	}

	app := gateway.NewApp(logger, config)
	require.NoError(t, app.Start())
	defer app.Shutdown(context.Background())

	t.Run("health", func(t *testing.T) {
		resp, err := http.Get("http://" + app.Addr + "/-/live")
		require.NoError(t, err)
		resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.NotEmpty(t, resp.Header.Get("X-Request-Id"))
	})

	client := gatewayclient.New("http://"+app.Addr, nil)

	t.Run("valid card over http", func(t *testing.T) {
		result, err := client.ValidateCard(context.Background(), models.CardDetails{
			Owner:  models.StringPtr("Valid Owner"),
			Number: models.StringPtr("4111111111111111"),
			Date:   models.StringPtr(time.Now().UTC().AddDate(2, 0, 0).Format("01/06")),
			Cvv:    models.StringPtr("123"),
		})
		require.NoError(t, err)
		require.True(t, result.Valid())
		require.Equal(t, card.Visa, result.Network)
	})

	t.Run("invalid card over http", func(t *testing.T) {
		result, err := client.ValidateCard(context.Background(), models.CardDetails{
			Owner:  models.StringPtr("Valid Owner"),
			Number: models.StringPtr("4111111111111111"),
			Date:   models.StringPtr("13/25"),
		})
		require.NoError(t, err)
		require.False(t, result.Valid())
		require.Equal(t, http.StatusBadRequest, result.StatusCode)
		require.Equal(t, map[string][]string{
			"Date": {"Wrong date"},
			"Cvv":  {"Cvv is required"},
		}, result.Errors)
	})

	t.Run("verification over iso8583", func(t *testing.T) {
		conn, err := connection.New(app.ISO8583ServerAddr, cardiso.Spec, cardiso.ReadMessageLength, cardiso.WriteMessageLength)
		require.NoError(t, err)
		require.NoError(t, conn.Connect())
		defer conn.Close()

		message := iso8583.NewMessage(cardiso.Spec)
		require.NoError(t, message.Marshal(&cardiso.VerificationRequest{
			MTI:            field.NewStringValue(cardiso.MTIVerificationRequest),
			PAN:            field.NewStringValue("5111111111111111"),
			STAN:           field.NewStringValue("000042"),
			ExpirationDate: field.NewStringValue(expiry.AddYears(time.Now(), 3).YYMM()),
		}))

		reply, err := conn.Send(message)
		require.NoError(t, err)

		response := &cardiso.VerificationResponse{}
		require.NoError(t, reply.Unmarshal(response))
		require.Equal(t, models.ResponseCodeApproved, response.ResponseCode.Value())
		require.Equal(t, "MasterCard", response.AdditionalResponseData.Value())
	})
}

func TestApp_ISO8583Disabled(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	config := gateway.DefaultConfig()
	config.HTTPAddr = "127.0.0.1:0"
	config.ISO8583Enabled = false

	app := gateway.NewApp(logger, config)
	require.NoError(t, app.Start())
	defer app.Shutdown(context.Background())

	require.Empty(t, app.ISO8583ServerAddr)
}
