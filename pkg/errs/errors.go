package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is the application error carried from the core packages up to the
// HTTP layer. Code is the HTTP status the condition maps to.
type Error struct {
	Code    int    `json:"code"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s", e.Message, e.Detail)
	}
	return e.Message
}

const (
	KindValidation      = "VALIDATION"
	KindNotFound        = "NOT_FOUND"
	KindQuotaExceeded   = "QUOTA_EXCEEDED"
	KindNotYetAvailable = "NOT_YET_AVAILABLE"
	KindExpired         = "EXPIRED"
	KindPersistence     = "PERSISTENCE"
)

func NewValidation(message string) *Error {
	return &Error{Code: http.StatusBadRequest, Kind: KindValidation, Message: message}
}

func NewNotFound(message string) *Error {
	return &Error{Code: http.StatusNotFound, Kind: KindNotFound, Message: message}
}

func NewQuotaExceeded(message string) *Error {
	return &Error{Code: http.StatusBadRequest, Kind: KindQuotaExceeded, Message: message}
}

// NewNotYetAvailable carries the computed admission window so the client can
// render "come back between X and Y".
func NewNotYetAvailable(message, detail string) *Error {
	return &Error{Code: http.StatusBadRequest, Kind: KindNotYetAvailable, Message: message, Detail: detail}
}

func NewExpired(message string) *Error {
	return &Error{Code: http.StatusBadRequest, Kind: KindExpired, Message: message}
}

func NewPersistence(err error) *Error {
	return &Error{Code: http.StatusInternalServerError, Kind: KindPersistence, Message: "storage failure", Detail: err.Error()}
}

// As unwraps err into an *Error when possible.
func As(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

func IsKind(err error, kind string) bool {
	if appErr, ok := As(err); ok {
		return appErr.Kind == kind
	}
	return false
}
