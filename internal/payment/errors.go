package payment

import "errors"

// InvalidArgumentError reports malformed, missing or contradictory input.
// Handlers map it to HTTP 400.
type InvalidArgumentError struct {
	Reason string
}

func (e *InvalidArgumentError) Error() string { return e.Reason }

// NotFoundError reports a referenced account or transaction that does not
// exist. Handlers map it to HTTP 404.
type NotFoundError struct {
	Reason string
}

func (e *NotFoundError) Error() string { return e.Reason }

func InvalidArgument(reason string) error { return &InvalidArgumentError{Reason: reason} }

func NotFound(reason string) error { return &NotFoundError{Reason: reason} }

func IsInvalidArgument(err error) bool {
	var e *InvalidArgumentError
	return errors.As(err, &e)
}

func IsNotFound(err error) bool {
	var e *NotFoundError
	return errors.As(err, &e)
}
