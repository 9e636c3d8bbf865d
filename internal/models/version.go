package models

import "time"

// Version is an immutable snapshot of a project's prompt content and
// generation parameters. version_num counts up per project in creation
// order; there is no delete, so numbers stay contiguous in practice.
type Version struct {
	ID             int64     `json:"id"`
	ProjectID      int64     `json:"project_id"`
	VersionNum     int       `json:"version_num"`
	Content        string    `json:"content"`
	NegativePrompt *string   `json:"negative_prompt"`
	Parameters     ParamMap  `json:"parameters"`
	Changelog      *string   `json:"changelog"`
	CreatedAt      time.Time `json:"created_at"`
}
