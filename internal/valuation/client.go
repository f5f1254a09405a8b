package valuation

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// Estimator is an interface that defines a method for estimating a property value.
// The Estimate method takes a context and the submitted property attributes,
// and returns the predicted value in MXN or an error if any occurs.
type Estimator interface {
	Estimate(ctx context.Context, req Request) (float64, error)
}

// HTTPClient defines the interface for making HTTP requests.
// This allows for easy mocking in tests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Request carries the eight property attributes exactly as the user submitted
// them. The valuation API expects the values as strings.
type Request struct {
	SurfaceTotal   string `json:"surface_total_in_m2"`
	SurfaceCovered string `json:"surface_covered_in_m2"`
	Lat            string `json:"lat"`
	Lon            string `json:"lon"`
	PropertyType   string `json:"property_type"`
	Estado         string `json:"estado"`
	Municipio      string `json:"municipio"`
	Localidad      string `json:"localidad"`
}

// predictResponse represents the JSON response from the valuation API.
type predictResponse struct {
	Prediction *float64 `json:"prediction"`
}

// Common errors for the valuation client.
var (
	ErrPredictEmptyResponse = errors.New("valuation API returned no prediction")
	ErrPredictUnavailable   = errors.New("valuation API is unavailable")
)

// Client calls the remote property valuation endpoint.
type Client struct {
	client     HTTPClient    // HTTP client for making requests
	predictURL string        // URL of the predict endpoint
	log        *slog.Logger  // Logger for logging operations
	limiter    *rate.Limiter // Rate limiter
}

// NewClient creates a new valuation client against the given predict URL.
func NewClient(predictURL string, timeout time.Duration, log *slog.Logger) *Client {
	const requestsPerSecond = 5

	return &Client{
		client: &http.Client{
			Timeout: timeout,
		},
		predictURL: predictURL,
		log:        log,
		limiter:    rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond),
	}
}

// NewClientWithClient allows injecting a custom HTTP client.
// Useful for testing with mocked HTTP clients.
func NewClientWithClient(client HTTPClient, predictURL string, limiter *rate.Limiter, log *slog.Logger) *Client {
	return &Client{
		client:     client,
		predictURL: predictURL,
		log:        log,
		limiter:    limiter,
	}
}

// Estimate sends the submitted attributes to the predict endpoint and returns
// the predicted property value. Success requires an HTTP 200 response carrying
// a numeric prediction; every other outcome is an error.
func (c *Client) Estimate(ctx context.Context, req Request) (float64, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return 0, fmt.Errorf("rate limit exceeded: %w", err)
	}

	c.log.DebugContext(ctx, "Requesting valuation", "property_type", req.PropertyType, "estado", req.Estado)

	payload, err := json.Marshal(req)
	if err != nil {
		return 0, fmt.Errorf("failed to encode predict payload: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.predictURL, bytes.NewReader(payload))
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return 0, fmt.Errorf("failed to execute predict request: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// continue
	case http.StatusServiceUnavailable, http.StatusBadGateway, http.StatusGatewayTimeout:
		return 0, ErrPredictUnavailable
	default:
		body, _ := io.ReadAll(resp.Body)
		c.log.ErrorContext(ctx, "Valuation API error", "status", resp.StatusCode, "body", string(body))
		return 0, fmt.Errorf("valuation API returned status %d: %s", resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("failed to read response body: %w", err)
	}

	c.log.DebugContext(ctx, "Valuation raw response", "body", string(body))

	var result predictResponse
	if err = json.Unmarshal(body, &result); err != nil {
		c.log.ErrorContext(ctx, "Failed to parse predict response", "error", err, "body", string(body))
		return 0, fmt.Errorf("failed to decode predict response: %w", err)
	}

	if result.Prediction == nil {
		return 0, ErrPredictEmptyResponse
	}

	c.log.InfoContext(ctx, "Valuation received", "prediction", *result.Prediction)

	return *result.Prediction, nil
}
