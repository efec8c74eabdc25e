package apiclient

import (
	"context"
	"net/http"

	"github.com/01moynul/taptosell-storefront/internal/models"
)

// --- Cart ---

func (c *Client) Cart(ctx context.Context) (*models.Cart, error) {
	var cart models.Cart
	if _, err := c.do(ctx, http.MethodGet, "/cart", nil, nil, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

func (c *Client) AddCartItem(ctx context.Context, item models.CartItemInput) error {
	_, err := c.do(ctx, http.MethodPost, "/cart", nil, item, nil)
	return err
}

func (c *Client) UpdateCartItem(ctx context.Context, itemID int64, quantity int) error {
	in := map[string]int{"quantity": quantity}
	_, err := c.do(ctx, http.MethodPatch, idPath("/cart/item/%d", itemID), nil, in, nil)
	return err
}

func (c *Client) DeleteCartItem(ctx context.Context, itemID int64) error {
	_, err := c.do(ctx, http.MethodDelete, idPath("/cart/item/%d", itemID), nil, nil, nil)
	return err
}

// MergeCart submits a whole guest cart in one call.
func (c *Client) MergeCart(ctx context.Context, items []models.CartItemInput) error {
	_, err := c.do(ctx, http.MethodPost, "/cart/merge", nil, items, nil)
	return err
}

func (c *Client) ClearCart(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodDelete, "/cart/all", nil, nil, nil)
	return err
}

// --- Wishlist ---

func (c *Client) Favourites(ctx context.Context) ([]models.CartLine, error) {
	var lines []models.CartLine
	if _, err := c.do(ctx, http.MethodGet, "/favourites", nil, nil, &lines); err != nil {
		return nil, err
	}
	return lines, nil
}

func (c *Client) AddFavourite(ctx context.Context, productID int64) error {
	in := map[string]int64{"productId": productID}
	_, err := c.do(ctx, http.MethodPost, "/favourites", nil, in, nil)
	return err
}

func (c *Client) RemoveFavourite(ctx context.Context, productID int64) error {
	_, err := c.do(ctx, http.MethodDelete, idPath("/favourites/%d", productID), nil, nil, nil)
	return err
}
