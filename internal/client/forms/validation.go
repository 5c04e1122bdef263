package forms

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	minUsernameLen = 3
	minPasswordLen = 6
)

// emailChar is any rune except '@', ASCII whitespace (vertical tab
// included), Unicode space separators and the BOM.
const emailChar = `[^\s\v\p{Z}\x{FEFF}@]`

var emailPattern = regexp.MustCompile(`^` + emailChar + `+@` + emailChar + `+\.` + emailChar + `+$`)

// Field names used in ValidationError.
const (
	FieldFullName        = "fullname"
	FieldEmail           = "email"
	FieldUsername        = "username"
	FieldPassword        = "password"
	FieldConfirmPassword = "confirm_password"
)

// ValidationError is a rejected input. It never reaches the network.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

type LoginInput struct {
	Username string
	Password string
}

// Normalize trims surrounding whitespace from every field.
func (in LoginInput) Normalize() LoginInput {
	return LoginInput{
		Username: strings.TrimSpace(in.Username),
		Password: strings.TrimSpace(in.Password),
	}
}

type RegisterInput struct {
	FullName        string
	Email           string
	Username        string
	Password        string
	ConfirmPassword string
}

func (in RegisterInput) Normalize() RegisterInput {
	return RegisterInput{
		FullName:        strings.TrimSpace(in.FullName),
		Email:           strings.TrimSpace(in.Email),
		Username:        strings.TrimSpace(in.Username),
		Password:        strings.TrimSpace(in.Password),
		ConfirmPassword: strings.TrimSpace(in.ConfirmPassword),
	}
}

// ValidateLogin checks presence only. Input is expected to be normalized.
func ValidateLogin(in LoginInput) error {
	if in.Username == "" {
		return &ValidationError{Field: FieldUsername, Message: "Username is required"}
	}
	if in.Password == "" {
		return &ValidationError{Field: FieldPassword, Message: "Password is required"}
	}
	return nil
}

// ValidateRegister runs the checks in order and reports the first failure.
func ValidateRegister(in RegisterInput) error {
	switch {
	case in.FullName == "":
		return &ValidationError{Field: FieldFullName, Message: "Full name is required"}
	case in.Email == "":
		return &ValidationError{Field: FieldEmail, Message: "Email is required"}
	case !emailPattern.MatchString(in.Email):
		return &ValidationError{Field: FieldEmail, Message: "Please enter a valid email address"}
	case in.Username == "":
		return &ValidationError{Field: FieldUsername, Message: "Username is required"}
	case utf8.RuneCountInString(in.Username) < minUsernameLen:
		return &ValidationError{Field: FieldUsername, Message: "Username must be at least 3 characters"}
	case in.Password == "":
		return &ValidationError{Field: FieldPassword, Message: "Password is required"}
	case utf8.RuneCountInString(in.Password) < minPasswordLen:
		return &ValidationError{Field: FieldPassword, Message: "Password must be at least 6 characters"}
	case in.Password != in.ConfirmPassword:
		return &ValidationError{Field: FieldConfirmPassword, Message: "Passwords do not match"}
	}
	return nil
}
