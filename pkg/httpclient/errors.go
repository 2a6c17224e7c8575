package httpclient

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// DownstreamErrorResponse mirrors the {"message": string} error body returned
// by the services and providers this client talks to. It is used to parse
// structured error bodies from downstream HTTP calls.
type DownstreamErrorResponse struct {
	Message string `json:"message"`
}

// ParseResponseError reads the body of a non-2xx HTTP response and translates
// it into an error carrying the downstream service name and status. If the
// body matches the standard {"message": ...} format, the message is preserved;
// otherwise the raw body is included.
//
// The caller should only invoke this when resp.StatusCode indicates an error
// (i.e., not 2xx). The response body is fully consumed and closed.
func ParseResponseError(resp *http.Response, serviceName string) error {
	defer func() { _ = resp.Body.Close() }()

	bodyBytes, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20)) // 1 MB limit
	if err != nil {
		return fmt.Errorf("%s returned status %d (failed to read body: %w)", serviceName, resp.StatusCode, err)
	}

	// Try to parse structured error response.
	var downstream DownstreamErrorResponse
	if json.Unmarshal(bodyBytes, &downstream) == nil && downstream.Message != "" {
		return fmt.Errorf("%s returned status %d: %s", serviceName, resp.StatusCode, downstream.Message)
	}

	// Fallback: unstructured error body.
	body := strings.TrimSpace(string(bodyBytes))
	if body == "" {
		return fmt.Errorf("%s returned status %d", serviceName, resp.StatusCode)
	}
	return fmt.Errorf("%s returned status %d: %s", serviceName, resp.StatusCode, body)
}

// IsClientError returns true if the HTTP status code is a 4xx client error.
// Client errors indicate the request itself was invalid and a retry with the
// same payload will not succeed.
func IsClientError(status int) bool {
	return status >= 400 && status < 500
}
