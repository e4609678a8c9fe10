// Package mark provides a mechanism for tagging errors with a well-known error value.
package mark

import (
	"errors"
	"net/http"
)

// The kinds a caller may want to branch on. Anything else is an unexpected
// error, typically a transport failure.
var (
	ErrNotFound        = errors.New("not found")
	ErrAlreadyExists   = errors.New("already exists")
	ErrBadRequest      = errors.New("bad request")
	ErrInvalid         = errors.New("validation failed")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrForbidden       = errors.New("forbidden")
	ErrGone            = errors.New("gone")
	ErrTooManyRequests = errors.New("too many requests")
	ErrUnavailable     = errors.New("unavailable")
)

// With wraps err with another error that will return true from errors.Is and
// errors.As for both err and markErr, and anything either may wrap.
func With(err, markErr error) error {
	if err == nil {
		return nil
	}
	if markErr == nil {
		return err
	}
	return marked{wrapped: err, mark: markErr}
}

// ForStatus returns the mark matching an HTTP status code, or nil for
// statuses without a dedicated kind.
func ForStatus(code int) error {
	switch code {
	case http.StatusBadRequest:
		return ErrBadRequest
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusConflict:
		return ErrAlreadyExists
	case http.StatusGone:
		return ErrGone
	case http.StatusUnprocessableEntity:
		return ErrInvalid
	case http.StatusTooManyRequests:
		return ErrTooManyRequests
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return ErrUnavailable
	}
	return nil
}

// FromResponse marks err according to the status of resp. A nil response
// leaves err untouched.
func FromResponse(resp *http.Response, err error) error {
	if err == nil || resp == nil {
		return err
	}
	return With(err, ForStatus(resp.StatusCode))
}

type marked struct {
	wrapped error
	mark    error
}

func (f marked) Is(target error) bool {
	// if this is false, errors.Is will call unwrap and retry on the wrapped
	// error.
	return errors.Is(f.mark, target)
}

func (f marked) As(target any) bool {
	return errors.As(f.mark, target)
}

func (f marked) Unwrap() error {
	return f.wrapped
}

func (f marked) Error() string {
	return f.mark.Error() + ": " + f.wrapped.Error()
}
