package model

import "errors"

// Common errors used across the application
var (
	ErrUserNotFound     = errors.New("user not found")
	ErrUsernameTaken    = errors.New("username already taken")
	ErrUsernameTooShort = errors.New("username too short")
)
