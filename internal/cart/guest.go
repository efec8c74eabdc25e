package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/01moynul/taptosell-storefront/internal/models"
	"github.com/01moynul/taptosell-storefront/internal/storage"
)

// GuestCart keeps the cart as a JSON list of lines under the visitor's
// guestCart key.
type GuestCart struct {
	bucket *storage.Bucket
	now    func() time.Time
}

func NewGuestCart(bucket *storage.Bucket) *GuestCart {
	return &GuestCart{bucket: bucket, now: time.Now}
}

// lines reads the stored list. A missing value is an empty cart; an
// unreadable one is an ErrStorage error so writes never clobber it.
func (g *GuestCart) lines(ctx context.Context) ([]models.CartLine, error) {
	raw, ok, err := g.bucket.Get(ctx, storage.GuestCartKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	if !ok {
		return nil, nil
	}

	var lines []models.CartLine
	if err := json.Unmarshal([]byte(raw), &lines); err != nil {
		return nil, fmt.Errorf("%w: malformed guest cart: %v", ErrStorage, err)
	}
	return lines, nil
}

func (g *GuestCart) save(ctx context.Context, lines []models.CartLine) error {
	if lines == nil {
		lines = []models.CartLine{}
	}
	if err := g.bucket.SetJSON(ctx, storage.GuestCartKey, lines); err != nil {
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return nil
}

// Add bumps the quantity of the line holding the same product, or appends
// local as a new line.
func (g *GuestCart) Add(ctx context.Context, item models.CartItemInput, local models.CartLine) error {
	lines, err := g.lines(ctx)
	if err != nil {
		return err
	}

	for i := range lines {
		if lines[i].Product.ID == local.Product.ID {
			lines[i].Quantity += item.Quantity
			return g.save(ctx, lines)
		}
	}

	if local.ID == 0 {
		local.ID = NewLineID(lines, g.now())
	}
	if local.Quantity == 0 {
		local.Quantity = item.Quantity
	}
	return g.save(ctx, append(lines, local))
}

// Remove drops the line with itemID. Unknown ids are ignored and write
// nothing.
func (g *GuestCart) Remove(ctx context.Context, itemID int64) error {
	lines, err := g.lines(ctx)
	if err != nil {
		return err
	}
	kept := make([]models.CartLine, 0, len(lines))
	for _, line := range lines {
		if line.ID != itemID {
			kept = append(kept, line)
		}
	}
	if len(kept) == len(lines) {
		return nil
	}
	return g.save(ctx, kept)
}

// UpdateQuantity sets the quantity of the matching line as given.
func (g *GuestCart) UpdateQuantity(ctx context.Context, itemID int64, quantity int) error {
	lines, err := g.lines(ctx)
	if err != nil {
		return err
	}
	for i := range lines {
		if lines[i].ID == itemID {
			lines[i].Quantity = quantity
			return g.save(ctx, lines)
		}
	}
	return nil
}

// Get never fails: a cart that cannot be read renders as empty.
func (g *GuestCart) Get(ctx context.Context) (models.Cart, error) {
	lines, err := g.lines(ctx)
	if err != nil {
		log.Printf("cart: read guest cart for %s: %v", g.bucket.VisitorID(), err)
		lines = nil
	}
	if lines == nil {
		lines = []models.CartLine{}
	}
	return models.Cart{Items: lines}, nil
}

func (g *GuestCart) Clear(ctx context.Context) error {
	if err := g.bucket.Remove(ctx, storage.GuestCartKey); err != nil {
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return nil
}
