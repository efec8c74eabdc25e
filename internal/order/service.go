package order

import (
	"context"
	"errors"
	"fmt"

	"github.com/01moynul/taptosell-storefront/internal/models"
	"github.com/01moynul/taptosell-storefront/internal/session"
)

// AdminPageSize is the page size of the back-office order listing.
const AdminPageSize = 10

var (
	ErrLoginRequired = errors.New("order: login required")
	ErrForbidden     = errors.New("order: administrator only")
	ErrNotFound      = errors.New("order: not found")
)

// API is the part of the shop API orders use.
type API interface {
	PlaceOrder(ctx context.Context, order models.Order) error
	MyOrders(ctx context.Context) ([]models.Order, error)
	Orders(ctx context.Context, page, limit int) (*models.OrderPage, error)
	CancelOrder(ctx context.Context, orderID int64) error
	UpdateOrderStatus(ctx context.Context, orderID int64, status models.OrderStatus) error
}

// Connector returns an API client acting as the session's visitor.
type Connector func(*session.Session) API

type Service struct {
	connect Connector
}

func NewService(connect Connector) *Service {
	return &Service{connect: connect}
}

func (s *Service) Place(ctx context.Context, sess *session.Session, order models.Order) error {
	if !sess.IsAuthenticated() {
		return ErrLoginRequired
	}
	return s.connect(sess).PlaceOrder(ctx, order)
}

// Mine lists the customer's orders. Guests have none.
func (s *Service) Mine(ctx context.Context, sess *session.Session) ([]models.Order, error) {
	if !sess.IsAuthenticated() {
		return []models.Order{}, nil
	}
	orders, err := s.connect(sess).MyOrders(ctx)
	if err != nil {
		return []models.Order{}, err
	}
	return orders, nil
}

// Cancel cancels one of the customer's own orders if its status allows it.
func (s *Service) Cancel(ctx context.Context, sess *session.Session, orderID int64) error {
	if !sess.IsAuthenticated() {
		return ErrLoginRequired
	}
	api := s.connect(sess)

	// 1. --- Find the order among the customer's own ---
	orders, err := api.MyOrders(ctx)
	if err != nil {
		return fmt.Errorf("load orders: %w", err)
	}
	var current *models.Order
	for i := range orders {
		if orders[i].ID == orderID {
			current = &orders[i]
			break
		}
	}
	if current == nil {
		return ErrNotFound
	}

	// 2. --- Check the status allows it ---
	if err := CustomerTransition(current.Status, models.StatusCanceled); err != nil {
		return err
	}

	// 3. --- Cancel upstream ---
	return api.CancelOrder(ctx, orderID)
}

// All is the admin listing, AdminPageSize orders per page.
func (s *Service) All(ctx context.Context, sess *session.Session, page int) (*models.OrderPage, error) {
	if !sess.IsAdmin() {
		return nil, ErrForbidden
	}
	if page < 1 {
		page = 1
	}
	return s.connect(sess).Orders(ctx, page, AdminPageSize)
}

// SetStatus is the administrator override.
func (s *Service) SetStatus(ctx context.Context, sess *session.Session, orderID int64, to models.OrderStatus) error {
	if !sess.IsAdmin() {
		return ErrForbidden
	}
	if err := AdminTransition("", to); err != nil {
		return err
	}
	return s.connect(sess).UpdateOrderStatus(ctx, orderID, to)
}
