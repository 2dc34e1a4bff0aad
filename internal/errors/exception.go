package errors

import (
	"errors"
	"net/http"
)

// Kind classifies a service failure so the transport layer can map it
// to a status code without inspecting message text.
type Kind int

const (
	KindValidation Kind = iota
	KindConflict
	KindReference
	KindNotFound
	KindAuthorization
)

// Exception is the error type raised by the service layer.
type Exception struct {
	Kind    Kind
	Message string
}

func (e *Exception) Error() string {
	return e.Message
}

// Is reports whether err is an Exception of the given kind.
func Is(err error, kind Kind) bool {
	var appErr *Exception
	if errors.As(err, &appErr) {
		return appErr.Kind == kind
	}
	return false
}

// StatusCode maps a service error to an HTTP status code.
func StatusCode(err error) int {
	var appErr *Exception
	if !errors.As(err, &appErr) {
		return http.StatusInternalServerError
	}
	switch appErr.Kind {
	case KindValidation, KindReference:
		return http.StatusBadRequest
	case KindConflict:
		return http.StatusConflict
	case KindNotFound:
		return http.StatusNotFound
	case KindAuthorization:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
