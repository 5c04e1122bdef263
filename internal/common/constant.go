// Package common contains shared constants and small helpers used across
// tixgo client components.
package common

// Header names set on outbound API requests.
const (
	AuthorizationHeaderName = "Authorization"
	RequestIDHeaderName     = "X-Request-ID"
	ContentTypeHeaderName   = "Content-Type"
	AcceptHeaderName        = "Accept"
)

// BearerScheme prefixes the session token in the Authorization header.
const BearerScheme = "Bearer"

// JSONContentType is sent with every request that carries a body.
const JSONContentType = "application/json"

// Default storage keys. The token key matches the one the web portal used,
// so a store exported from one can be read by the other.
const (
	DefaultTokenKey = "tixgo_token"
	DefaultUserKey  = "tixgo_user"
)
