package models

// Category is a user-defined label grouping projects. Color and icon drive
// the UI badge; sort_order defines the display order in the sidebar.
type Category struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Color     string  `json:"color"`
	Icon      *string `json:"icon"`
	SortOrder int     `json:"sort_order"`
}
