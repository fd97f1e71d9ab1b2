package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"rentpilot/pkg/model"
)

// PricingClient talks to the pricing service on behalf of one tenant.
type PricingClient struct {
	httpClient *HttpClient
}

func NewPricingClient(baseURL, tenantHeader, tenantID string) *PricingClient {
	c := NewHttpClient(baseURL)
	c.Headers[tenantHeader] = tenantID
	return &PricingClient{httpClient: c}
}

func (c *PricingClient) Suggestions(ctx context.Context, date string) ([]model.PriceSuggestion, error) {
	path := "/api/v1/pricing/suggestions"
	if date != "" {
		path += "?" + url.Values{"date": {date}}.Encode()
	}
	var out []model.PriceSuggestion
	return out, c.getData(ctx, path, &out)
}

func (c *PricingClient) Calendar(ctx context.Context, propertyID, month string) (*model.PropertyCalendar, error) {
	q := url.Values{}
	q.Set("property_id", propertyID)
	if month != "" {
		q.Set("month", month)
	}
	var out model.PropertyCalendar
	if err := c.getData(ctx, "/api/v1/pricing/calendar?"+q.Encode(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *PricingClient) KPIs(ctx context.Context, month string) (*model.MonthKPISet, error) {
	path := "/api/v1/pricing/kpis"
	if month != "" {
		path += "?" + url.Values{"month": {month}}.Encode()
	}
	var out model.MonthKPISet
	if err := c.getData(ctx, path, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Apply writes price back to the property. A non-empty idempotencyKey makes
// retries safe.
func (c *PricingClient) Apply(ctx context.Context, propertyID string, req model.ApplyPriceRequest, idempotencyKey string) (*model.PriceAppliedEvent, error) {
	path := "/api/v1/pricing/properties/" + url.PathEscape(propertyID) + "/apply"
	var headers map[string]string
	if idempotencyKey != "" {
		headers = map[string]string{"Idempotency-Key": idempotencyKey}
	}
	resp, err := c.httpClient.POSTWithHeaders(ctx, path, req, headers)
	if err != nil {
		return nil, err
	}
	var out model.PriceAppliedEvent
	if err := decodeData(resp, http.StatusOK, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *PricingClient) ListRules(ctx context.Context) ([]model.SeasonRule, error) {
	var out []model.SeasonRule
	return out, c.getData(ctx, "/api/v1/season-rules", &out)
}

func (c *PricingClient) AddRule(ctx context.Context, input any) (*model.SeasonRule, error) {
	resp, err := c.httpClient.POST(ctx, "/api/v1/season-rules", input)
	if err != nil {
		return nil, err
	}
	var out model.SeasonRule
	if err := decodeData(resp, http.StatusCreated, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *PricingClient) RemoveRule(ctx context.Context, id string) error {
	resp, err := c.httpClient.DELETE(ctx, "/api/v1/season-rules/"+url.PathEscape(id))
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusNoContent {
		return &StatusError{StatusCode: resp.StatusCode, Message: GetErrorMessage(resp)}
	}
	return nil
}

func (c *PricingClient) getData(ctx context.Context, path string, target any) error {
	resp, err := c.httpClient.GET(ctx, path)
	if err != nil {
		return err
	}
	return decodeData(resp, http.StatusOK, target)
}

// StatusError is returned when the service answers with an unexpected status.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d: %s", e.StatusCode, e.Message)
}

func decodeData(resp *Response, wantStatus int, target any) error {
	if resp.StatusCode != wantStatus {
		return &StatusError{StatusCode: resp.StatusCode, Message: GetErrorMessage(resp)}
	}

	var wrapper struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(resp.Body, &wrapper); err != nil {
		return fmt.Errorf("could not decode response wrapper:\n%s\n%w", resp.ToString(), err)
	}
	if err := json.Unmarshal(wrapper.Data, target); err != nil {
		return fmt.Errorf("could not decode response data:\n%s\n%w", resp.ToString(), err)
	}
	return nil
}
