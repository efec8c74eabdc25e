package models

// Image is an uploaded product picture.
type Image struct {
	URL      string `json:"url" validate:"required"`
	PublicID string `json:"publicId"`
}

// ProductCategory is the category reference embedded in a product.
type ProductCategory struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Product is a catalog item as served by the shop API.
type Product struct {
	ID          int64           `json:"id" validate:"gt=0"`
	Name        string          `json:"name" validate:"required"`
	Description string          `json:"description"`
	Price       float64         `json:"price" validate:"gte=0"`
	Stock       int             `json:"stock"`
	Images      []Image         `json:"images" validate:"dive"`
	IsActive    bool            `json:"isActive"`
	Category    ProductCategory `json:"category"`
	Attributes  []Attribute     `json:"attributes,omitempty" validate:"dive"`
}

// Option is one value of an attribute, e.g. "Red".
type Option struct {
	ID    int64  `json:"id"`
	Value string `json:"value" validate:"required"`
}

// Attribute groups options, e.g. "Color".
type Attribute struct {
	ID       int64     `json:"id" validate:"gt=0"`
	Name     string    `json:"name" validate:"required"`
	Type     string    `json:"type"`
	Options  []Option  `json:"options" validate:"dive"`
	Products []Product `json:"products,omitempty"`
}

// Variant is one generated combination of a product's attribute options.
type Variant struct {
	ID        int64   `json:"id" validate:"gt=0"`
	ProductID int64   `json:"productId"`
	SKU       string  `json:"sku"`
	Price     float64 `json:"price" validate:"gte=0"`
	Stock     int     `json:"stock"`
}

// Page is the paginated envelope used by the product listings.
type Page[T any] struct {
	Data       []T `json:"data" validate:"dive"`
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"totalPages"`
}

// ProductQuery filters the featured product listing.
type ProductQuery struct {
	Page       int     `form:"page" binding:"omitempty,gte=1"`
	Limit      int     `form:"limit" binding:"omitempty,gte=1,lte=100"`
	SortBy     string  `form:"sortBy"`
	SortOrder  string  `form:"sortOrder" binding:"omitempty,oneof=ASC DESC"`
	MinPrice   float64 `form:"minPrice" binding:"omitempty,gte=0"`
	MaxPrice   float64 `form:"maxPrice" binding:"omitempty,gte=0"`
	CategoryID int64   `form:"categoryId" binding:"omitempty,gt=0"`
}
