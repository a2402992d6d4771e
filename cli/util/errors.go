package util

import (
	"fmt"
	"io"
	"net/http"

	"github.com/goccy/go-json"
	"github.com/wkalt/tileland/util/httputil"
)

// APIError is an error response from the tileland server.
type APIError struct {
	status int
	err    string
	detail string
}

func (e APIError) Error() string {
	return fmt.Sprintf("%s (%d)", e.err, e.status)
}

// Detail returns the detail message supplied by the server, if any.
func (e APIError) Detail() string {
	return e.detail
}

// StatusCode returns the HTTP status of the response.
func (e APIError) StatusCode() int {
	return e.status
}

// NewAPIError constructs an APIError.
func NewAPIError(status int, err string, detail string) APIError {
	return APIError{
		status: status,
		err:    err,
		detail: detail,
	}
}

// CheckResponse returns an APIError if the response is not 200. The body is
// consumed on error.
func CheckResponse(resp *http.Response) error {
	if resp.StatusCode == http.StatusOK {
		return nil
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	response := httputil.ErrorResponse{}
	if err := json.Unmarshal(body, &response); err != nil || response.Error == "" {
		return NewAPIError(resp.StatusCode, http.StatusText(resp.StatusCode), string(body))
	}
	return NewAPIError(resp.StatusCode, response.Error, response.Detail)
}
