package models

import (
	"time"
)

// Course owns a folder/file hierarchy. It is created once (by seeding or the
// instructor-facing API) and never mutated by the file subsystem.
type Course struct {
	ID        string    `json:"id" db:"id"`
	OwnerID   string    `json:"owner_id" db:"owner_id"`
	Title     string    `json:"title" db:"title"`
	Code      string    `json:"code,omitempty" db:"code"` // e.g. "CS-301"
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
