package gatewayclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/alovak/cardvalidation/card"
	"github.com/alovak/cardvalidation/gateway"
	"github.com/alovak/cardvalidation/gateway/models"
)

type Client struct {
	Base string
	HTTP *http.Client
}

func New(base string, hc *http.Client) *Client {
	if hc == nil {
		hc = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{Base: strings.TrimRight(base, "/"), HTTP: hc}
}

// Result is the outcome of a validation call. Exactly one of Network or
// Errors is meaningful, depending on StatusCode.
type Result struct {
	StatusCode int
	Network    card.PaymentSystemType
	Errors     map[string][]string
}

func (r Result) Valid() bool {
	return r.StatusCode == http.StatusOK
}

func (c *Client) ValidateCard(ctx context.Context, details models.CardDetails) (Result, error) {
	b, err := json.Marshal(details)
	if err != nil {
		return Result{}, fmt.Errorf("encode card details: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Base+gateway.ValidatePath, bytes.NewReader(b))
	if err != nil {
		return Result{}, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(httpReq)
	if err != nil {
		return Result{}, fmt.Errorf("validate: %w", err)
	}
	defer resp.Body.Close()

	result := Result{StatusCode: resp.StatusCode}
	switch resp.StatusCode {
	case http.StatusOK:
		if err := json.NewDecoder(resp.Body).Decode(&result.Network); err != nil {
			return Result{}, fmt.Errorf("decode network: %w", err)
		}
	case http.StatusBadRequest:
		body, _ := io.ReadAll(resp.Body)
		if err := json.Unmarshal(body, &result.Errors); err != nil {
			return Result{}, fmt.Errorf("validate status=%d body=%s", resp.StatusCode, strings.TrimSpace(string(body)))
		}
	default:
		body, _ := io.ReadAll(resp.Body)
		return Result{}, fmt.Errorf("validate status=%d body=%s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return result, nil
}
