package errx

import (
	"fmt"
	"net/http"
)

// Type classifies an error for HTTP mapping and logging.
type Type string

const (
	TypeValidation    Type = "VALIDATION"
	TypeNotFound      Type = "NOT_FOUND"
	TypeConflict      Type = "CONFLICT"
	TypeAuthorization Type = "AUTHORIZATION"
	TypeBusiness      Type = "BUSINESS"
	TypeExternal      Type = "EXTERNAL"
	TypeInternal      Type = "INTERNAL"
)

// Code identifies a registered error within a domain registry.
type Code struct {
	Domain     string
	Code       string
	Type       Type
	HTTPStatus int
	Message    string
}

// Error is the structured error every domain package returns.
type Error struct {
	Type       Type           `json:"type"`
	Code       string         `json:"code"`
	Message    string         `json:"message"`
	HTTPStatus int            `json:"-"`
	Details    map[string]any `json:"details,omitempty"`
	Cause      error          `json:"-"`
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// WithDetail attaches a single key/value to the error's details.
func (e *Error) WithDetail(key string, value any) *Error {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// WithDetails merges a map into the error's details.
func (e *Error) WithDetails(details map[string]any) *Error {
	if e.Details == nil {
		e.Details = make(map[string]any, len(details))
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// ToHTTPResponse returns the JSON body served for this error.
func (e *Error) ToHTTPResponse() map[string]any {
	resp := map[string]any{
		"type":    e.Type,
		"code":    e.Code,
		"message": e.Message,
	}
	if len(e.Details) > 0 {
		resp["details"] = e.Details
	}
	return resp
}

// IsType reports whether err is an *Error of the given type.
func IsType(err error, t Type) bool {
	if e, ok := err.(*Error); ok {
		return e.Type == t
	}
	return false
}

// Registry holds the error codes of one domain, prefixed by the domain name.
type Registry struct {
	domain string
}

// NewRegistry creates a registry for a domain (e.g. "CANDIDATE").
func NewRegistry(domain string) *Registry {
	return &Registry{domain: domain}
}

// Register declares an error code in this registry.
func (r *Registry) Register(code string, t Type, httpStatus int, message string) Code {
	return Code{
		Domain:     r.domain,
		Code:       r.domain + "_" + code,
		Type:       t,
		HTTPStatus: httpStatus,
		Message:    message,
	}
}

// New creates a fresh error for a registered code.
func (r *Registry) New(code Code) *Error {
	return &Error{
		Type:       code.Type,
		Code:       code.Code,
		Message:    code.Message,
		HTTPStatus: code.HTTPStatus,
	}
}

// NewWithCause creates an error for a registered code wrapping an underlying cause.
func (r *Registry) NewWithCause(code Code, cause error) *Error {
	e := r.New(code)
	e.Cause = cause
	return e
}

// Wrap converts an arbitrary error into an *Error of the given type.
func Wrap(err error, message string, t Type) *Error {
	status := http.StatusInternalServerError
	switch t {
	case TypeValidation:
		status = http.StatusBadRequest
	case TypeNotFound:
		status = http.StatusNotFound
	case TypeConflict:
		status = http.StatusConflict
	case TypeAuthorization:
		status = http.StatusUnauthorized
	case TypeExternal:
		status = http.StatusBadGateway
	}

	return &Error{
		Type:       t,
		Code:       string(t) + "_ERROR",
		Message:    message,
		HTTPStatus: status,
		Cause:      err,
	}
}
