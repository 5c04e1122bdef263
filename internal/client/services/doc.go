// Package services wraps the portal API in typed operations: the identity
// endpoints (login, register, profile, health) and the attendance
// endpoints. Services own the session side effects of those calls; the
// form controllers and the terminal adapter only see models and errors.
package services
