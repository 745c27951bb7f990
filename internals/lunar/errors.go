package lunar

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrEmptyResponse is wrapped in an UpstreamError if the API answered without a body
var ErrEmptyResponse = errors.New("empty response body")

// UpstreamError is returned when talking to the API failed (transport errors,
// bad status codes or unparseable bodies). The caller may retry
type UpstreamError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *UpstreamError) Error() string {
	switch {
	case e.StatusCode != 0:
		return fmt.Sprintf("lunar api: unexpected status code %d from %s", e.StatusCode, e.URL)
	case e.Err != nil:
		return fmt.Sprintf("lunar api: request to %s failed: %s", e.URL, e.Err)
	default:
		return "lunar api: request to " + e.URL + " failed"
	}
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// SchemaError is returned when a response is missing required fields or
// contains malformed values. Retrying will not help
type SchemaError struct {
	Field  string
	Reason string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("lunar api: invalid response: %s %s", e.Field, e.Reason)
}

// IsUpstreamError reports whether err is (or wraps) an UpstreamError
func IsUpstreamError(err error) bool {
	var upstream *UpstreamError
	return errors.As(err, &upstream)
}

// IsSchemaError reports whether err is (or wraps) a SchemaError
func IsSchemaError(err error) bool {
	var schema *SchemaError
	return errors.As(err, &schema)
}
