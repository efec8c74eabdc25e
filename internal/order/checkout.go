package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/01moynul/taptosell-storefront/internal/models"
	"github.com/shopspring/decimal"
)

// DefaultCountry pre-fills the shipping address.
const DefaultCountry = "Egypt"

var (
	ErrEmptyCart          = errors.New("order: cart is empty")
	ErrShippingIncomplete = errors.New("order: shipping details are incomplete")
)

// CheckoutForm is what the customer submits at checkout.
type CheckoutForm struct {
	DeliveryNeeded *bool           `json:"deliveryNeeded"`
	Shipping       models.Shipping `json:"shipping"`
	PaymentMethod  string          `json:"paymentMethod" binding:"omitempty,oneof=CASH CREDIT_CARD"`
	Notes          string          `json:"notes" binding:"max=1000"`
}

func (f CheckoutForm) delivery() bool {
	return f.DeliveryNeeded == nil || *f.DeliveryNeeded
}

// missingShipping names the required shipping fields left blank.
func missingShipping(s models.Shipping) []string {
	var missing []string
	for _, field := range []struct {
		name, value string
	}{
		{"firstName", s.FirstName},
		{"lastName", s.LastName},
		{"phoneNumber", s.PhoneNumber},
		{"address.street", s.Address.Street},
		{"address.city", s.Address.City},
		{"address.country", s.Address.Country},
	} {
		if strings.TrimSpace(field.value) == "" {
			missing = append(missing, field.name)
		}
	}
	return missing
}

// BuildOrder turns the cart lines and the checkout form into the order
// request. Prices become integer minor units.
func BuildOrder(lines []models.CartLine, form CheckoutForm, currency string) (models.Order, error) {
	if len(lines) == 0 {
		return models.Order{}, ErrEmptyCart
	}

	order := models.Order{
		DeliveryNeeded: form.delivery(),
		PaymentMethod:  form.PaymentMethod,
		Notes:          strings.TrimSpace(form.Notes),
		Currency:       currency,
		Items:          make([]models.OrderItem, 0, len(lines)),
	}
	if order.PaymentMethod == "" {
		order.PaymentMethod = models.PaymentCash
	}

	if order.DeliveryNeeded {
		shipping := form.Shipping
		if strings.TrimSpace(shipping.Address.Country) == "" {
			shipping.Address.Country = DefaultCountry
		}
		if missing := missingShipping(shipping); len(missing) > 0 {
			return models.Order{}, fmt.Errorf("%w: %s", ErrShippingIncomplete, strings.Join(missing, ", "))
		}
		order.Shipping = &shipping
	}

	for _, line := range lines {
		order.Items = append(order.Items, models.OrderItem{
			Name:        line.Product.Name,
			Description: line.Product.Description,
			AmountCents: ToCents(line.Product.Price),
			Quantity:    line.Quantity,
		})
	}
	return order, nil
}

// ToCents rounds a major-unit price to minor units.
func ToCents(price float64) int64 {
	return decimal.NewFromFloat(price).Shift(2).Round(0).IntPart()
}

// Summary is the display breakdown of an order's cost.
type Summary struct {
	Subtotal string `json:"subtotal"`
	Shipping string `json:"shipping"`
	Total    string `json:"total"`
	Currency string `json:"currency"`
}

// CartSubtotal is the checkout preview: price times quantity over all lines.
func CartSubtotal(lines []models.CartLine) decimal.Decimal {
	sum := decimal.Zero
	for _, line := range lines {
		sum = sum.Add(decimal.NewFromFloat(line.Product.Price).Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	return sum
}

// Totals computes the confirmation page figures. The shipping fee applies
// only to delivery orders. Display only; the API charges the real amount.
func Totals(order models.Order, fee decimal.Decimal) Summary {
	subtotal := decimal.Zero
	for _, item := range order.Items {
		subtotal = subtotal.Add(decimal.New(item.AmountCents, -2).Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	shipping := decimal.Zero
	if order.DeliveryNeeded {
		shipping = fee
	}
	return Summary{
		Subtotal: subtotal.StringFixed(2),
		Shipping: shipping.StringFixed(2),
		Total:    subtotal.Add(shipping).StringFixed(2),
		Currency: order.Currency,
	}
}

// EstimatedDelivery is three days after the order was placed.
func EstimatedDelivery(placed time.Time) time.Time {
	return placed.AddDate(0, 0, 3)
}
