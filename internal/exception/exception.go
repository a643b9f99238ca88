package exception

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Domain error kinds. Services return these; only the HTTP layer maps them
// to status codes. Anything that is not one of these kinds is treated as an
// infrastructure failure.
type Kind int

const (
	KindNotFound Kind = iota + 1
	KindForbidden
	KindUnauthorized
	KindInvalidData
	KindBadRequest
)

// Error is a domain-level failure. InvalidData errors carry a field->message
// map so every validation failure of a request is reported at once.
type Error struct {
	Kind    Kind
	Message string
	Fields  map[string]string
}

func (e *Error) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return strings.Join(parts, "; ")
}

func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func Forbidden(message string) *Error {
	return &Error{Kind: KindForbidden, Message: message}
}

func Unauthorized(message string) *Error {
	return &Error{Kind: KindUnauthorized, Message: message}
}

func BadRequest(message string) *Error {
	return &Error{Kind: KindBadRequest, Message: message}
}

func InvalidData(fields map[string]string) *Error {
	return &Error{Kind: KindInvalidData, Message: "validation failed", Fields: fields}
}

// Sentinels returned by the access service. The service layer wraps them
// into Forbidden/Unauthorized errors with a caller-facing message.
var (
	ErrAuthentication = errors.New("authentication required")
	ErrAccessDenied   = errors.New("access denied")
)

// KindOf extracts the domain kind from err, or 0 when err is not a domain
// error (infrastructure failures stay unclassified on purpose).
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return 0
}
