package entity

import (
	"time"
)

// Account is the aggregate root for the registration domain.
// PasswordHash holds a bcrypt hash; the plaintext password never reaches this type.
//
// ID and CreatedAt are assigned by the store on Create.
type Account struct {
	ID           string
	Name         string
	Email        string
	AvatarURL    string
	PasswordHash string
	CreatedAt    time.Time
}
