package models

// Category is a flat product category.
type Category struct {
	ID          int64   `json:"id" validate:"gt=0"`
	Name        string  `json:"name" validate:"required"`
	Description *string `json:"description,omitempty"`
}

// CategoryInput is the create/update payload for a category.
type CategoryInput struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}
