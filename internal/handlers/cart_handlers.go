package handlers

import (
	"net/http"

	"github.com/01moynul/taptosell-storefront/internal/cart"
	"github.com/01moynul/taptosell-storefront/internal/models"
	"github.com/gin-gonic/gin"
)

//
// --- Cart Handlers (Guests and Customers) ---
//

// CartLineView is a cart line with the quantity stepper state.
type CartLineView struct {
	models.CartLine
	CanIncrement bool `json:"canIncrement"`
	CanDecrement bool `json:"canDecrement"`
}

func cartView(lines []models.CartLine) []CartLineView {
	views := make([]CartLineView, 0, len(lines))
	for _, line := range lines {
		views = append(views, CartLineView{
			CartLine:     line,
			CanIncrement: cart.CanIncrement(line),
			CanDecrement: cart.CanDecrement(line),
		})
	}
	return views
}

// GetCart returns the visitor's cart. A failed fetch renders as empty.
// GET /v1/cart
func (h *Handlers) GetCart(c *gin.Context) {
	sess := h.session(c)
	current, err := h.cartFor(sess).Get(c.Request.Context())
	if err != nil {
		h.listFailed(c, "cart", err)
	}
	c.JSON(http.StatusOK, gin.H{"items": cartView(current.Items), "isGuest": !sess.IsAuthenticated()})
}

// AddToCart adds a product. Guests keep a snapshot of the product so their
// cart renders without the API.
// POST /v1/cart/items
func (h *Handlers) AddToCart(c *gin.Context) {
	// 1. --- Bind & Validate JSON ---
	var input models.CartItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}
	sess := h.session(c)
	ctx := c.Request.Context()

	// 2. --- Build the guest line ---
	var local models.CartLine
	if !sess.IsAuthenticated() {
		product, err := h.Catalog.Product(ctx, input.ProductID)
		if err != nil {
			h.respondError(c, err, "Failed to add to cart")
			return
		}
		local = models.CartLine{Product: product.Product, Quantity: input.Quantity}
	}

	// 3. --- Add ---
	if err := h.cartFor(sess).Add(ctx, input, local); err != nil {
		h.respondError(c, err, "Failed to add to cart")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Added to cart"})
}

type updateQuantityInput struct {
	Quantity *int `json:"quantity" binding:"required,gte=0"`
}

// UpdateCartItem sets a line's quantity.
// PATCH /v1/cart/items/:id
func (h *Handlers) UpdateCartItem(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var input updateQuantityInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	if err := h.cartFor(h.session(c)).UpdateQuantity(c.Request.Context(), id, *input.Quantity); err != nil {
		h.respondError(c, err, "Failed to update quantity")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Quantity updated"})
}

// RemoveCartItem drops a line.
// DELETE /v1/cart/items/:id
func (h *Handlers) RemoveCartItem(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.cartFor(h.session(c)).Remove(c.Request.Context(), id); err != nil {
		h.respondError(c, err, "Failed to remove item")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Removed from cart"})
}

// ClearCart empties the cart.
// DELETE /v1/cart
func (h *Handlers) ClearCart(c *gin.Context) {
	if err := h.cartFor(h.session(c)).Clear(c.Request.Context()); err != nil {
		h.respondError(c, err, "Failed to clear cart")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
}

//
// --- Wishlist Handlers (Customers) ---
//

type wishlistInput struct {
	ProductID int64 `json:"productId" binding:"required,gt=0"`
}

// GetWishlist lists saved products. Guests get an empty list.
// GET /v1/wishlist
func (h *Handlers) GetWishlist(c *gin.Context) {
	lines, err := h.Wishlist.List(c.Request.Context(), h.session(c))
	if err != nil {
		h.listFailed(c, "wishlist", err)
	}
	c.JSON(http.StatusOK, gin.H{"items": lines})
}

// AddToWishlist saves a product.
// POST /v1/wishlist
func (h *Handlers) AddToWishlist(c *gin.Context) {
	var input wishlistInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}
	if err := h.Wishlist.Add(c.Request.Context(), h.session(c), input.ProductID); err != nil {
		h.respondError(c, err, "Failed to add to wishlist")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Added to wishlist"})
}

// RemoveFromWishlist drops a saved product.
// DELETE /v1/wishlist/:productId
func (h *Handlers) RemoveFromWishlist(c *gin.Context) {
	id, ok := pathID(c, "productId")
	if !ok {
		return
	}
	if err := h.Wishlist.Remove(c.Request.Context(), h.session(c), id); err != nil {
		h.respondError(c, err, "Failed to remove from wishlist")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Removed from wishlist"})
}

// ToggleWishlist saves or un-saves a product.
// POST /v1/wishlist/:productId/toggle
func (h *Handlers) ToggleWishlist(c *gin.Context) {
	id, ok := pathID(c, "productId")
	if !ok {
		return
	}
	saved, err := h.Wishlist.Toggle(c.Request.Context(), h.session(c), id)
	if err != nil {
		h.respondError(c, err, "Failed to update wishlist")
		return
	}
	c.JSON(http.StatusOK, gin.H{"saved": saved})
}
