// Package cart implements the shopping cart for guests and logged-in
// customers behind one interface.
package cart

import (
	"context"
	"errors"
	"slices"
	"time"

	"github.com/01moynul/taptosell-storefront/internal/models"
	"github.com/01moynul/taptosell-storefront/internal/session"
)

// ErrStorage marks a guest cart that could not be written.
var ErrStorage = errors.New("cart: storage unavailable")

// Cart is the set of operations every cart supports. local is the full line
// a guest cart keeps; server carts only send item.
type Cart interface {
	Add(ctx context.Context, item models.CartItemInput, local models.CartLine) error
	Remove(ctx context.Context, itemID int64) error
	UpdateQuantity(ctx context.Context, itemID int64, quantity int) error
	Get(ctx context.Context) (models.Cart, error)
	Clear(ctx context.Context) error
}

// ServerAPI is the part of the shop API a server cart uses.
type ServerAPI interface {
	Cart(ctx context.Context) (*models.Cart, error)
	AddCartItem(ctx context.Context, item models.CartItemInput) error
	UpdateCartItem(ctx context.Context, itemID int64, quantity int) error
	DeleteCartItem(ctx context.Context, itemID int64) error
	MergeCart(ctx context.Context, items []models.CartItemInput) error
	ClearCart(ctx context.Context) error
}

// For picks the cart that matches the session's login state.
func For(sess *session.Session, api ServerAPI) Cart {
	if sess.IsAuthenticated() {
		return NewServerCart(api)
	}
	return NewGuestCart(sess.Local)
}

// NewLineID returns an id for a new guest line. It follows the millisecond
// clock but is always larger than every id already in lines.
func NewLineID(lines []models.CartLine, now time.Time) int64 {
	id := now.UnixMilli()
	for _, line := range lines {
		if line.ID >= id {
			id = line.ID + 1
		}
	}
	return id
}

func CanIncrement(line models.CartLine) bool { return line.Quantity < line.Product.Stock }

func CanDecrement(line models.CartLine) bool { return line.Quantity > 0 }

// SortByID orders lines by ascending line id, in place.
func SortByID(lines []models.CartLine) {
	slices.SortFunc(lines, func(a, b models.CartLine) int {
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		}
		return 0
	})
}
