package config

const (
	// MaxCourseTitleLength is the maximum length for course titles.
	// Limited to 255 to fit in PostgreSQL VARCHAR(255).
	MaxCourseTitleLength = 255

	// MaxFolderNameLength is the maximum length for folder names.
	MaxFolderNameLength = 255

	// MaxFileNameLength is the maximum length for file display names.
	// Same as folder names for consistency.
	MaxFileNameLength = 255

	// MaxUploadBytes caps a single file upload. 100 MB covers lecture
	// recordings while keeping a single request bounded.
	MaxUploadBytes = 100 << 20
)
