package models

import "time"

// User is a registered account. PasswordHash and Salt never leave the server.
type User struct {
	ID           string
	UserName     string
	PasswordHash []byte
	Salt         []byte
	CreatedAt    time.Time
}
