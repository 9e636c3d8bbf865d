package models

import "time"

// Project types. Image projects carry negative prompts and generation
// parameters in their versions.
const (
	ProjectTypeText  = "text"
	ProjectTypeImage = "image"
)

// Project is a stored prompt with metadata. Deleting a project cascades to
// its versions; deleting its category only detaches it.
type Project struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Description *string    `json:"description"`
	Tags        StringList `json:"tags"`
	CategoryID  *int64     `json:"category_id"`
	IsFavorite  bool       `json:"is_favorite"`
	Type        string     `json:"type"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
