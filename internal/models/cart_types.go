package models

// CartLine is one cart (or wishlist) entry. Guest carts keep the full product
// snapshot so they can be rendered without the server.
type CartLine struct {
	ID       int64   `json:"id"`
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// Cart is what every cart implementation returns.
type Cart struct {
	Items []CartLine `json:"items" validate:"dive"`
}

// CartItemInput is the server add payload and one entry of a merge batch.
type CartItemInput struct {
	ProductID int64 `json:"productId" binding:"required,gt=0"`
	Quantity  int   `json:"quantity" binding:"required,gt=0"`
}
