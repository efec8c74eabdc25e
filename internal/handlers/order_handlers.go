package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/01moynul/taptosell-storefront/internal/models"
	"github.com/01moynul/taptosell-storefront/internal/order"
	"github.com/gin-gonic/gin"
)

//
// --- Checkout (Customers) ---
//

// GetCheckout prepares the checkout page: the cart, its subtotal and the
// form defaults.
// GET /v1/checkout
func (h *Handlers) GetCheckout(c *gin.Context) {
	sess := h.session(c)

	// 1. --- Load the cart ---
	current, err := h.cartFor(sess).Get(c.Request.Context())
	if err != nil {
		h.listFailed(c, "checkout cart", err)
	}
	if len(current.Items) == 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Your cart is empty", "redirect": "/cart"})
		return
	}

	// 2. --- Respond with defaults ---
	c.JSON(http.StatusOK, gin.H{
		"items":    cartView(current.Items),
		"subtotal": order.CartSubtotal(current.Items).StringFixed(2),
		"currency": h.Currency,
		"defaults": gin.H{
			"deliveryNeeded": true,
			"paymentMethod":  models.PaymentCash,
			"country":        order.DefaultCountry,
		},
	})
}

// PlaceOrder submits the cart as an order and keeps it for the
// confirmation page.
// POST /v1/checkout
func (h *Handlers) PlaceOrder(c *gin.Context) {
	// 1. --- Bind & Validate JSON ---
	var form order.CheckoutForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}
	sess := h.session(c)
	ctx := c.Request.Context()

	// 2. --- Build the order from the cart ---
	current, err := h.cartFor(sess).Get(ctx)
	if err != nil {
		h.respondError(c, err, "Failed to load your cart")
		return
	}
	request, err := order.BuildOrder(current.Items, form, h.Currency)
	switch {
	case errors.Is(err, order.ErrEmptyCart):
		c.JSON(http.StatusConflict, gin.H{"error": "Your cart is empty", "redirect": "/cart"})
		return
	case errors.Is(err, order.ErrShippingIncomplete):
		badRequest(c, err)
		return
	case err != nil:
		h.respondError(c, err, "Failed to place order")
		return
	}

	// 3. --- Place ---
	if err := h.Orders.Place(ctx, sess, request); err != nil {
		h.respondError(c, err, "Failed to place order")
		return
	}

	// 4. --- Keep it for the confirmation page ---
	if err := order.NewConfirmation(sess.Scoped).Save(ctx, request, h.now()); err != nil {
		h.listFailed(c, "order confirmation", err)
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Order placed", "redirect": "/order-confirmation"})
}

// GetOrderConfirmation shows the order just placed, once.
// GET /v1/order-confirmation
func (h *Handlers) GetOrderConfirmation(c *gin.Context) {
	receipt, err := order.NewConfirmation(h.session(c).Scoped).Take(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No recent order", "redirect": "/"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"order":             receipt.Order,
		"summary":           order.Totals(receipt.Order, h.ShippingFee),
		"placedAt":          receipt.PlacedAt,
		"estimatedDelivery": order.EstimatedDelivery(receipt.PlacedAt).Format(time.DateOnly),
	})
}

//
// --- Order History (Customers) ---
//

// OrderView is an order with its display state.
type OrderView struct {
	models.Order
	Color       string `json:"color"`
	Cancellable bool   `json:"cancellable"`
}

func orderViews(orders []models.Order) []OrderView {
	views := make([]OrderView, 0, len(orders))
	for _, o := range orders {
		views = append(views, OrderView{Order: o, Color: order.ColorBucket(o.Status), Cancellable: order.Cancellable(o.Status)})
	}
	return views
}

// GetMyOrders lists the customer's orders.
// GET /v1/orders
func (h *Handlers) GetMyOrders(c *gin.Context) {
	orders, err := h.Orders.Mine(c.Request.Context(), h.session(c))
	if err != nil {
		h.listFailed(c, "orders", err)
	}
	c.JSON(http.StatusOK, gin.H{"data": orderViews(orders)})
}

// CancelOrder cancels a pending or confirmed order.
// PATCH /v1/orders/:id/cancel
func (h *Handlers) CancelOrder(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.Orders.Cancel(c.Request.Context(), h.session(c), id); err != nil {
		h.respondError(c, err, "Failed to cancel order")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order canceled"})
}
