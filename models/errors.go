package models

import "errors"

// Sentinel errors shared across repositories and services. Callers
// check them with errors.Is and map them to transport status codes.
var (
	ErrMenuItemNotFound  = errors.New("menu item not found")
	ErrOrderNotFound     = errors.New("order not found")
	ErrUserNotFound      = errors.New("user not found")
	ErrDuplicateOrder    = errors.New("order id already exists")
	ErrInvalidTransition = errors.New("invalid status transition")
)
