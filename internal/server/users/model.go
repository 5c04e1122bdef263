package users

import "time"

type User struct {
	ID           string
	UserName     string
	Email        string
	FullName     string
	Role         string
	PasswordHash []byte
	CreatedAt    time.Time
}
