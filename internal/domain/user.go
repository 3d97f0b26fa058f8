package domain

import "time"

// User is the domain model for account holders who own tasks.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	CreatedOn    time.Time
}
