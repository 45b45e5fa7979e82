package errors

import "errors"

var (
	ErrAlreadyExists      = errors.New("already exists")
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidID          = errors.New("invalid id")
	ErrInvalidOrder       = errors.New("invalid order")
	ErrInvalidOrderStatus = errors.New("invalid order status")
	// ErrOrderDelivered rejects any transition out of the terminal state.
	ErrOrderDelivered    = errors.New("order has already been delivered")
	ErrInsufficientStock = errors.New("insufficient stock")
)
