package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrEmptyCart is returned when checkout is attempted with no cart lines.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrLoginRequired gates checkout and order history on a signed-in user.
	ErrLoginRequired = errors.New("login required")
	// ErrInvalidAddress wraps address validation failures.
	ErrInvalidAddress = errors.New("invalid address")
	// ErrInvalidPayment is returned for a missing or unknown payment method.
	ErrInvalidPayment = errors.New("invalid payment method")
	// ErrSessionOwned is returned when a session bound to one user is used by another.
	ErrSessionOwned = errors.New("session belongs to another user")
)
