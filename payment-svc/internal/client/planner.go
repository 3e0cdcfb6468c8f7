package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"foodplan/payment-svc/internal/domain"

	"github.com/shopspring/decimal"
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// PlannerClient calls planner-svc on behalf of a user.
type PlannerClient struct {
	BaseURL string
	HTTP    HTTPClient
}

func NewPlannerClient(baseURL string, httpClient HTTPClient) *PlannerClient {
	return &PlannerClient{BaseURL: baseURL, HTTP: httpClient}
}

type priceResponse struct {
	TotalPrice string `json:"total_price"`
}

type errorResponse struct {
	Error  string              `json:"error"`
	Fields []domain.FieldError `json:"fields"`
}

func (c *PlannerClient) Price(ctx context.Context, order domain.OrderRequest) (decimal.Decimal, error) {
	var resp priceResponse
	if err := c.post(ctx, "/api/price", 0, order, &resp); err != nil {
		return decimal.Zero, err
	}
	total, err := decimal.NewFromString(resp.TotalPrice)
	if err != nil {
		return decimal.Zero, fmt.Errorf("planner returned invalid price %q: %w", resp.TotalPrice, err)
	}
	return total, nil
}

func (c *PlannerClient) CreateSubscription(ctx context.Context, userID int, order domain.OrderRequest) (*domain.SubscriptionResult, error) {
	var resp domain.SubscriptionResult
	if err := c.post(ctx, "/api/subscriptions", userID, order, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *PlannerClient) post(ctx context.Context, path string, userID int, body, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if userID > 0 {
		req.Header.Set("X-User-ID", strconv.Itoa(userID))
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("planner request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read planner response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusBadRequest:
		var e errorResponse
		if err := json.Unmarshal(respBody, &e); err == nil && len(e.Fields) > 0 {
			return domain.ValidationErrors(e.Fields)
		}
		return fmt.Errorf("planner rejected request: %s", string(respBody))
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("planner %s: %w", path, domain.ErrNotFound)
	case resp.StatusCode >= 300:
		return fmt.Errorf("planner error: %s (status: %d)", string(respBody), resp.StatusCode)
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to unmarshal planner response: %w", err)
	}
	return nil
}
