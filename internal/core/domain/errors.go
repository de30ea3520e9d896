package domain

import "errors"

var (
	ErrInvalidCredentials = errors.New("incorrect username or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrRoleNotFound       = errors.New("role not found")
	ErrPasswordTooShort   = errors.New("password too short")
)

var (
	ErrTokenInvalid  = errors.New("invalid token")
	ErrTokenExpired  = errors.New("token expired")
	ErrForbidden     = errors.New("access denied")
	ErrConfiguration = errors.New("auth configuration incomplete")
)

var ErrAccountNotFound = errors.New("account not found")
