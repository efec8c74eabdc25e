package order

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/01moynul/taptosell-storefront/internal/models"
	"github.com/01moynul/taptosell-storefront/internal/storage"
)

var ErrNoConfirmation = errors.New("order: no confirmation to show")

// Receipt is the placed order kept for the confirmation page.
type Receipt struct {
	Order    models.Order `json:"order"`
	PlacedAt time.Time    `json:"placedAt"`
}

// Confirmation holds the last placed order in session-scoped storage. It can
// be read once.
type Confirmation struct {
	bucket *storage.Bucket
}

func NewConfirmation(bucket *storage.Bucket) *Confirmation {
	return &Confirmation{bucket: bucket}
}

func (c *Confirmation) Save(ctx context.Context, order models.Order, placedAt time.Time) error {
	return c.bucket.SetJSON(ctx, storage.OrderConfirmationKey, Receipt{Order: order, PlacedAt: placedAt})
}

// Take returns the stored receipt and removes it. Missing or malformed data
// is ErrNoConfirmation.
func (c *Confirmation) Take(ctx context.Context) (*Receipt, error) {
	var receipt Receipt
	err := c.bucket.GetJSON(ctx, storage.OrderConfirmationKey, &receipt)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrNoConfirmation
	}

	if rmErr := c.bucket.Remove(ctx, storage.OrderConfirmationKey); rmErr != nil {
		log.Printf("order: drop confirmation for %s: %v", c.bucket.VisitorID(), rmErr)
	}
	if err != nil {
		log.Printf("order: unreadable confirmation for %s: %v", c.bucket.VisitorID(), err)
		return nil, ErrNoConfirmation
	}
	return &receipt, nil
}
