package services

import "errors"

// Business-rule and lookup failures as sentinels so handlers can map them to
// status codes without string matching.
var (
	ErrUserNotFound         = errors.New("user not found")
	ErrEventNotFound        = errors.New("event not found")
	ErrRegistrationNotFound = errors.New("registration not found")
	ErrImageNotFound        = errors.New("image not found")

	ErrEventFull         = errors.New("event is already full")
	ErrAlreadyRegistered = errors.New("user is already registered for this event")
	ErrImageLimit        = errors.New("event already has the maximum number of images (4)")
)
