package model

import "time"

// User represents a registered participant of the attendance program.
type User struct {
	ID           string
	Name         string
	Login        string
	PasswordHash string
	AvatarURL    string
	Balance      int64
	Role         Role
	CreatedAt    time.Time
}
