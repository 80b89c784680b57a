package pageviews

import (
	"fmt"

	"github.com/antonholmquist/jason"
)

// APIError represents a non-2xx response from the Pageviews API other than
// not-found. The fields mirror the problem document in the REST API's error
// body; they are empty if the body could not be parsed.
type APIError struct {
	StatusCode int
	Type       string
	Title      string
	Detail     string
	URL        string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("pageviews: HTTP %d from %s: %s", e.StatusCode, e.URL, e.Detail)
	}
	return fmt.Sprintf("pageviews: HTTP %d from %s", e.StatusCode, e.URL)
}

// NotFoundError represents the API's not-found response. The service signals
// a nonexistent article, a date before its tracked history (July 2015), and
// a malformed article name all the same way, so a NotFoundError does not
// distinguish between those causes.
type NotFoundError struct {
	Detail string
	URL    string
}

func (e *NotFoundError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("pageviews: not found: %s", e.Detail)
	}
	return fmt.Sprintf("pageviews: not found: %s", e.URL)
}

// responseError wraps a JSON traversal failure on a 2xx response. It
// indicates the service returned a body shaped differently than the
// documented contract.
func responseError(err error) error {
	return fmt.Errorf("pageviews: unexpected response shape: %w", err)
}

// extractAPIError builds the typed error for a non-2xx response from its
// status code and body. The REST API describes errors with a small JSON
// problem document (type/title/detail); a body that does not parse still
// yields a usable error carrying the status code.
func extractAPIError(statusCode int, body []byte, url string) error {
	var errType, title, detail string
	if obj, err := jason.NewObjectFromBytes(body); err == nil {
		errType, _ = obj.GetString("type")
		title, _ = obj.GetString("title")
		detail, _ = obj.GetString("detail")
	}

	if statusCode == 404 {
		return &NotFoundError{Detail: detail, URL: url}
	}
	return &APIError{
		StatusCode: statusCode,
		Type:       errType,
		Title:      title,
		Detail:     detail,
		URL:        url,
	}
}
