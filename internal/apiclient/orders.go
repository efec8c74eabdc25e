package apiclient

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/01moynul/taptosell-storefront/internal/models"
)

func (c *Client) PlaceOrder(ctx context.Context, order models.Order) error {
	_, err := c.do(ctx, http.MethodPost, "/orders", nil, order, nil)
	return err
}

func (c *Client) MyOrders(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	if _, err := c.do(ctx, http.MethodGet, "/orders/mine", nil, nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// Orders is the admin listing of every order.
func (c *Client) Orders(ctx context.Context, page, limit int) (*models.OrderPage, error) {
	query := url.Values{
		"page":  {strconv.Itoa(page)},
		"limit": {strconv.Itoa(limit)},
	}
	var out models.OrderPage
	if _, err := c.do(ctx, http.MethodGet, "/orders", query, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CancelOrder(ctx context.Context, orderID int64) error {
	_, err := c.do(ctx, http.MethodPatch, idPath("/orders/%d/cancel", orderID), nil, nil, nil)
	return err
}

func (c *Client) UpdateOrderStatus(ctx context.Context, orderID int64, status models.OrderStatus) error {
	in := map[string]models.OrderStatus{"status": status}
	_, err := c.do(ctx, http.MethodPatch, idPath("/orders/%d/status", orderID), nil, in, nil)
	return err
}
