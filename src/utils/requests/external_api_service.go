package requests

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"cryptotracker/src/utils"
)

// ExternalAPIService is a thin HTTP helper shared by external API clients.
// The timeout is short since these calls block user-facing requests.
type ExternalAPIService struct {
	client *http.Client
}

// NewExternalAPIService creates a new instance of ExternalAPIService
func NewExternalAPIService() *ExternalAPIService {
	return &ExternalAPIService{
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// makeRequest is a helper function to make GET requests, supporting optional query parameters and headers
func (s *ExternalAPIService) makeRequest(ctx context.Context, endpoint string, params url.Values, headers map[string]string) (*http.Response, error) {
	if params != nil {
		endpoint = endpoint + "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Accept", "application/json")
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	return s.client.Do(req)
}

// Get makes a GET request to the external service, accepting optional query parameters
func (s *ExternalAPIService) Get(ctx context.Context, endpoint string, params url.Values) (*http.Response, error) {
	return s.makeRequest(ctx, endpoint, params, nil)
}

// GetWithHeaders makes a GET request with custom headers and validates the
// response status.
func (s *ExternalAPIService) GetWithHeaders(ctx context.Context, endpoint string, params url.Values, headers map[string]string) (*http.Response, error) {
	resp, err := s.makeRequest(ctx, endpoint, params, headers)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode > http.StatusCreated {
		resp.Body.Close()
		return nil, utils.NewHTTPError(resp.StatusCode, resp.Status)
	}
	return resp, nil
}
