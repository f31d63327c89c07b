package cms

import (
	"errors"
	"fmt"
)

var (
	ErrUnauthorized   = errors.New("CMS API rejected the credentials")
	ErrForbidden      = errors.New("CMS API denied access to the resource")
	ErrNotFound       = errors.New("CMS API resource not found")
	ErrUpstream       = errors.New("CMS API request failed")
	ErrUserIDRequired = errors.New("user id is required for this dashboard")
	ErrInvalidPayload = errors.New("CMS API returned an unexpected payload")
)

// StatusError carries the HTTP status of a failed upstream call
type StatusError struct {
	StatusCode int
	Path       string
	Err        error
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%v: GET %s returned %d", e.Err, e.Path, e.StatusCode)
}

func (e *StatusError) Unwrap() error {
	return e.Err
}

func statusError(path string, code int) error {
	var base error
	switch {
	case code == 401:
		base = ErrUnauthorized
	case code == 403:
		base = ErrForbidden
	case code == 404:
		base = ErrNotFound
	default:
		base = ErrUpstream
	}
	return &StatusError{StatusCode: code, Path: path, Err: base}
}
