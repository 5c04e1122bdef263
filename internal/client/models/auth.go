// Package models defines the payloads exchanged with the identity and
// attendance APIs.
package models

import "time"

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is decoded leniently: servers disagree on the name of the
// token field.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type,omitempty"`
	RawToken    string `json:"token,omitempty"`
	JWT         string `json:"jwt,omitempty"`
	Message     string `json:"message,omitempty"`
}

// Token returns the first non-empty of access_token, token and jwt.
func (r LoginResponse) Token() string {
	for _, t := range []string{r.AccessToken, r.RawToken, r.JWT} {
		if t != "" {
			return t
		}
	}
	return ""
}

type RegisterRequest struct {
	FullName string `json:"fullname"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// User is the profile returned by /auth/me.
type User struct {
	ID       string `json:"id,omitempty"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
	FullName string `json:"fullname,omitempty"`
	Role     string `json:"role,omitempty"`
}

// DisplayName prefers the full name.
func (u User) DisplayName() string {
	if u.FullName != "" {
		return u.FullName
	}
	return u.Username
}

type Health struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

// TokenInfo holds claims read from the session token for display only.
// Nothing here is verified.
type TokenInfo struct {
	Subject   string
	Role      string
	IssuedAt  time.Time
	ExpiresAt time.Time
	Preview   string
	// Opaque is set when the token is not a JWT; only Preview is filled.
	Opaque bool
}

// Expired reports whether exp is set and lies before now.
func (t TokenInfo) Expired(now time.Time) bool {
	return !t.ExpiresAt.IsZero() && now.After(t.ExpiresAt)
}
