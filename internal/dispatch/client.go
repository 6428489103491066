// README: HTTP client for the ride-dispatch backend (estimates, requests, sandbox status).
package dispatch

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"guardian/internal/types"
)

// ErrProductUnavailable means the configured product is not offered at the
// rider's location.
var ErrProductUnavailable = errors.New("no matching product at this location")

// Client talks to an Uber-style dispatch API. Calls are authenticated with the
// rider's own access token, passed per call.
type Client struct {
	baseURL string
	product string
	http    *http.Client
}

func NewClient(baseURL, product string) *Client {
	return &Client{
		baseURL: baseURL,
		product: product,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

type timeEstimate struct {
	ProductID   string  `json:"product_id"`
	DisplayName string  `json:"display_name"`
	Estimate    float64 `json:"estimate"`
}

type timeEstimatesResponse struct {
	Times []timeEstimate `json:"times"`
}

// EstimateWait returns the wait estimate for the configured product at p.
func (c *Client) EstimateWait(ctx context.Context, token string, p types.Point) (WaitEstimate, error) {
	q := url.Values{}
	q.Set("start_latitude", strconv.FormatFloat(p.Lat, 'f', -1, 64))
	q.Set("start_longitude", strconv.FormatFloat(p.Lng, 'f', -1, 64))

	var resp timeEstimatesResponse
	if err := c.do(ctx, token, http.MethodGet, "/v1/estimates/time?"+q.Encode(), nil, &resp); err != nil {
		return WaitEstimate{}, err
	}
	for _, t := range resp.Times {
		if t.DisplayName == c.product {
			return WaitEstimate{ProductID: t.ProductID, WaitSeconds: t.Estimate}, nil
		}
	}
	return WaitEstimate{}, ErrProductUnavailable
}

type createRequestBody struct {
	ProductID      string   `json:"product_id"`
	StartLatitude  float64  `json:"start_latitude"`
	StartLongitude float64  `json:"start_longitude"`
	EndLatitude    *float64 `json:"end_latitude,omitempty"`
	EndLongitude   *float64 `json:"end_longitude,omitempty"`
}

type requestResponse struct {
	RequestID string  `json:"request_id"`
	Status    Status  `json:"status"`
	ETA       float64 `json:"eta"`
	Driver    *struct {
		Name        string `json:"name"`
		PhoneNumber string `json:"phone_number"`
	} `json:"driver"`
}

// CreateRequest places one vehicle order and returns the backend request id.
// A nil end omits the destination from the order entirely; the rider sets it
// later, in the vehicle.
func (c *Client) CreateRequest(ctx context.Context, token, productID string, start types.Point, end *types.Point) (string, error) {
	body := createRequestBody{
		ProductID:      productID,
		StartLatitude:  start.Lat,
		StartLongitude: start.Lng,
	}
	if end != nil {
		body.EndLatitude = &end.Lat
		body.EndLongitude = &end.Lng
	}
	var resp requestResponse
	if err := c.do(ctx, token, http.MethodPost, "/v1/requests", body, &resp); err != nil {
		return "", err
	}
	if resp.RequestID == "" {
		return "", fmt.Errorf("dispatch api returned no request id")
	}
	return resp.RequestID, nil
}

// GetRequest fetches the current state of a dispatch request.
func (c *Client) GetRequest(ctx context.Context, token, requestID string) (Details, error) {
	var resp requestResponse
	if err := c.do(ctx, token, http.MethodGet, "/v1/requests/"+requestID, nil, &resp); err != nil {
		return Details{}, err
	}
	d := Details{RequestID: resp.RequestID, Status: resp.Status, ETAMinutes: resp.ETA}
	if d.RequestID == "" {
		d.RequestID = requestID
	}
	if resp.Driver != nil {
		d.Driver = &Driver{Name: resp.Driver.Name, PhoneNumber: resp.Driver.PhoneNumber}
	}
	return d, nil
}

// SetStatus force-sets a request's status through the backend's sandbox
// endpoint. Only meaningful against a sandbox base URL.
func (c *Client) SetStatus(ctx context.Context, token, requestID string, status Status) error {
	body := map[string]string{"status": string(status)}
	return c.do(ctx, token, http.MethodPut, "/v1/sandbox/requests/"+requestID, body, nil)
}

func (c *Client) do(ctx context.Context, token, method, path string, body, out any) error {
	var buf *bytes.Buffer
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		buf = bytes.NewBuffer(b)
	} else {
		buf = &bytes.Buffer{}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, buf)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("dispatch api error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("dispatch api returned %d", resp.StatusCode)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("dispatch api decode failed: %w", err)
	}
	return nil
}
