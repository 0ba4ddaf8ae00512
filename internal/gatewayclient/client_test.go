package gatewayclient_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alovak/cardvalidation/card"
	"github.com/alovak/cardvalidation/gateway"
	"github.com/alovak/cardvalidation/gateway/models"
	"github.com/alovak/cardvalidation/internal/gatewayclient"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

func newServer(t *testing.T) *httptest.Server {
	router := chi.NewRouter()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	gateway.NewAPI(gateway.NewService(card.NewValidator(), logger)).AppendRoutes(router)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_ValidateCard(t *testing.T) {
	client := gatewayclient.New(newServer(t).URL+"/", nil)

	result, err := client.ValidateCard(context.Background(), models.CardDetails{
		Owner:  models.StringPtr("Ada Lovelace"),
		Number: models.StringPtr("371111111111111"),
		Date:   models.StringPtr("12/2099"),
		Cvv:    models.StringPtr("1234"),
	})
	require.NoError(t, err)
	require.True(t, result.Valid())
	require.Equal(t, card.AmericanExpress, result.Network)
	require.Nil(t, result.Errors)
}

func TestClient_ValidateCardErrors(t *testing.T) {
	client := gatewayclient.New(newServer(t).URL, nil)

	result, err := client.ValidateCard(context.Background(), models.CardDetails{
		Owner: models.StringPtr("Ada-Lovelace"),
	})
	require.NoError(t, err)
	require.False(t, result.Valid())
	require.Equal(t, []string{"Wrong owner"}, result.Errors["Owner"])
	require.Equal(t, []string{"Number is required"}, result.Errors["Number"])
}

func TestClient_UnexpectedStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := gatewayclient.New(srv.URL, nil).ValidateCard(context.Background(), models.CardDetails{})
	require.ErrorContains(t, err, "status=500")
	require.ErrorContains(t, err, "boom")
}
