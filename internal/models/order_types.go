package models

import "time"

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	StatusPending   OrderStatus = "PENDING"
	StatusConfirmed OrderStatus = "CONFIRMED"
	StatusShipped   OrderStatus = "SHIPPED"
	StatusDelivered OrderStatus = "DELIVERED"
	StatusCanceled  OrderStatus = "CANCELED"
)

// Payment methods offered at checkout.
const (
	PaymentCash       = "CASH"
	PaymentCreditCard = "CREDIT_CARD"
)

// Address is the postal part of a shipping block.
type Address struct {
	Street     string `json:"street" validate:"required"`
	City       string `json:"city" validate:"required"`
	Country    string `json:"country" validate:"required"`
	Building   string `json:"building,omitempty"`
	Floor      string `json:"floor,omitempty"`
	Apartment  string `json:"apartment,omitempty"`
	PostalCode string `json:"postalCode,omitempty"`
	State      string `json:"state,omitempty"`
}

// Shipping is the delivery block of an order.
type Shipping struct {
	FirstName   string  `json:"firstName" validate:"required"`
	LastName    string  `json:"lastName" validate:"required"`
	PhoneNumber string  `json:"phoneNumber" validate:"required"`
	Address     Address `json:"address"`
}

// OrderItem is an order line priced in minor currency units.
type OrderItem struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description,omitempty"`
	AmountCents int64  `json:"amount_cents" validate:"gte=0"`
	Quantity    int    `json:"quantity" validate:"gte=0"`
}

// Order is both the placement payload and the record read back.
type Order struct {
	ID             int64       `json:"id,omitempty"`
	Status         OrderStatus `json:"status,omitempty"`
	DeliveryNeeded bool        `json:"deliveryNeeded"`
	Shipping       *Shipping   `json:"shipping,omitempty"`
	PaymentMethod  string      `json:"paymentMethod,omitempty"`
	Notes          string      `json:"notes,omitempty"`
	Items          []OrderItem `json:"items" validate:"dive"`
	Total          *int64      `json:"total,omitempty"`
	Currency       string      `json:"currency"`
	CreatedAt      *time.Time  `json:"createdAt,omitempty"`
}

// PageMeta is the pagination block of the admin order listing.
type PageMeta struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"totalPages"`
}

// OrderPage is the admin order listing.
type OrderPage struct {
	Data []Order  `json:"data" validate:"dive"`
	Meta PageMeta `json:"meta"`
}
