package models

// Todo represents a single todo item. Description is a pointer so a missing
// value serializes as JSON null rather than an empty string.
type Todo struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	IsCompleted bool    `json:"is_completed"`
}
