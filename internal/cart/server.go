package cart

import (
	"context"
	"log"

	"github.com/01moynul/taptosell-storefront/internal/models"
)

// ServerCart is the logged-in customer's cart held by the shop API.
type ServerCart struct {
	api ServerAPI
}

func NewServerCart(api ServerAPI) *ServerCart {
	return &ServerCart{api: api}
}

func (s *ServerCart) Add(ctx context.Context, item models.CartItemInput, _ models.CartLine) error {
	return s.api.AddCartItem(ctx, item)
}

func (s *ServerCart) Remove(ctx context.Context, itemID int64) error {
	return s.api.DeleteCartItem(ctx, itemID)
}

func (s *ServerCart) UpdateQuantity(ctx context.Context, itemID int64, quantity int) error {
	return s.api.UpdateCartItem(ctx, itemID, quantity)
}

func (s *ServerCart) Get(ctx context.Context) (models.Cart, error) {
	c, err := s.api.Cart(ctx)
	if err != nil {
		return models.Cart{Items: []models.CartLine{}}, err
	}
	if c.Items == nil {
		c.Items = []models.CartLine{}
	}
	SortByID(c.Items)
	return *c, nil
}

func (s *ServerCart) Clear(ctx context.Context) error {
	return s.api.ClearCart(ctx)
}

// MergeGuest moves the guest cart into the server cart in one batch. The
// guest cart is cleared only after the server accepted the batch, so a
// failed merge can be retried on the next login.
func MergeGuest(ctx context.Context, guest *GuestCart, api ServerAPI) (int, error) {
	lines, err := guest.lines(ctx)
	if err != nil {
		return 0, err
	}
	if len(lines) == 0 {
		return 0, nil
	}

	items := make([]models.CartItemInput, 0, len(lines))
	for _, line := range lines {
		items = append(items, models.CartItemInput{ProductID: line.Product.ID, Quantity: line.Quantity})
	}

	if err := api.MergeCart(ctx, items); err != nil {
		return 0, err
	}

	if err := guest.Clear(ctx); err != nil {
		log.Printf("cart: clear merged guest cart for %s: %v", guest.bucket.VisitorID(), err)
	}
	return len(items), nil
}
