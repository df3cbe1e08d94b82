package requests

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"cryptoportfolio/src/utils"
)

// ExternalAPIService is a thin JSON-over-HTTP helper shared by the upstream clients.
type ExternalAPIService struct {
	client  *http.Client
	headers map[string]string
}

// NewExternalAPIService creates a new instance of ExternalAPIService whose requests
// are bounded by timeout and carry headers.
func NewExternalAPIService(timeout time.Duration, headers map[string]string) *ExternalAPIService {
	return &ExternalAPIService{
		client:  &http.Client{Timeout: timeout},
		headers: headers,
	}
}

// Get makes a GET request to the external service, accepting optional query parameters.
// Transport failures and timeouts are reported as utils.ErrUpstreamUnavailable.
func (s *ExternalAPIService) Get(ctx context.Context, endpoint string, params url.Values) (*http.Response, error) {
	if len(params) > 0 {
		endpoint = endpoint + "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	for key, value := range s.headers {
		req.Header.Set(key, value)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: GET %s: %w", utils.ErrUpstreamUnavailable, req.URL.Path, err)
	}
	return resp, nil
}

// GetJSON performs Get and decodes a 2xx JSON body into out. A 404 is returned as
// utils.ErrNotFound, any other non 2xx status as utils.ErrUpstreamUnavailable.
func (s *ExternalAPIService) GetJSON(ctx context.Context, endpoint string, params url.Values, out interface{}) error {
	resp, err := s.Get(ctx, endpoint, params)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: reading %s: %w", utils.ErrUpstreamUnavailable, resp.Request.URL.Path, err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %s", utils.ErrNotFound, resp.Request.URL.Path)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: GET %s: %s", utils.ErrUpstreamUnavailable, resp.Request.URL.Path, resp.Status)
	}

	if err := json.Unmarshal(responseBody, out); err != nil {
		return fmt.Errorf("%w: decoding %s: %w", utils.ErrUpstreamUnavailable, resp.Request.URL.Path, err)
	}
	return nil
}
