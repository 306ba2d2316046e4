package service

import "errors"

var (
	// ErrInvalidCredentials covers both unknown email and wrong password so
	// responses cannot be used for account enumeration.
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrEmailAlreadyExists = errors.New("user already exists with this email")
	ErrUserNotFound       = errors.New("user not found")
	ErrInactiveUser       = errors.New("inactive user")
	ErrWrongPassword      = errors.New("old password is incorrect")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrCompanyNotFound    = errors.New("company not found")

	ErrNotificationNotFound = errors.New("notification not found")
)
