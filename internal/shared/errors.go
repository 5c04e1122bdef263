// Package shared holds sentinel errors and helpers used by the portal
// server packages.
package shared

import "errors"

var (

	// common errors
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")
	ErrorValidation    = errors.New("validation error")

	// auth-specific errors
	ErrorUnauthorized            = errors.New("unauthorized")
	ErrorInvalidToken            = errors.New("invalid token")
	ErrorTokenExpired            = errors.New("token expired")
	ErrorInvalidAuthheaderFormat = errors.New("invalid auth header format")
)
