package models

import (
	"time"
)

// File is the metadata record for an uploaded course file. The bytes live in
// the object store under StorageKey; once no File row references a key, the
// remote object is garbage.
type File struct {
	ID          string    `json:"id" db:"id"`
	CourseID    string    `json:"course_id" db:"course_id"`
	FolderID    *string   `json:"folder_id" db:"folder_id"` // NULL = course root
	Name        string    `json:"name" db:"name"`           // Display name, e.g. "week1.pdf"
	StorageKey  string    `json:"-" db:"storage_key"`       // Opaque object-store key, never exposed
	StorageURL  string    `json:"storage_url" db:"storage_url"`
	ContentType string    `json:"content_type" db:"content_type"`
	SizeBytes   int64     `json:"size_bytes" db:"size_bytes"`
	UploaderID  string    `json:"uploader_id" db:"uploader_id"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}
