package query

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"unicode/utf8"

	"github.com/me/freesound/pkg/mapping"
)

// Fallback error details for binary endpoints whose error body cannot be
// interpreted.
const (
	MessageUnreadableError = "An error occurred processing the error response received"
	MessageNonJSONError    = "A non-JSON formatted error response was received"
)

// DetailMessage returns the "detail" field of a JSON error body. OAuth2
// style bodies carry "error_description" or "error" instead.
func DetailMessage(body mapping.Object) string {
	for _, field := range []string{"detail", "error_description", "error"} {
		if msg := mapping.String(body, field); msg != "" {
			return msg
		}
	}
	return ""
}

// BinaryErrorMessage reads an error body received in place of a file and
// returns its "detail" field. MessageUnreadableError is returned when the body
// cannot be read or is not UTF-8; MessageNonJSONError when it is not a JSON
// object carrying a detail string.
func BinaryErrorMessage(body io.Reader) string {
	if body == nil {
		slog.Warn("empty error response body")
		return MessageUnreadableError
	}
	data, err := io.ReadAll(body)
	if err != nil {
		slog.Warn("reading error response", "error", err)
		return MessageUnreadableError
	}
	if !utf8.Valid(data) {
		slog.Warn("error response is not valid UTF-8")
		return MessageUnreadableError
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var obj mapping.Object
	if err := dec.Decode(&obj); err != nil {
		slog.Warn("error response is not JSON", "error", err)
		return MessageNonJSONError
	}
	detail, ok := mapping.Field[string](obj, "detail")
	if !ok {
		slog.Warn("error response has no detail")
		return MessageNonJSONError
	}
	return detail
}
