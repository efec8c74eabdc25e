// Package admin is the back-office: catalog maintenance, orders and users.
//
// Every mutation re-reads the affected list and returns it, so callers
// always render what the API holds after the change.
package admin

import (
	"context"
	"errors"
	"fmt"

	"github.com/01moynul/taptosell-storefront/internal/apiclient"
	"github.com/01moynul/taptosell-storefront/internal/models"
	"github.com/01moynul/taptosell-storefront/internal/order"
	"github.com/01moynul/taptosell-storefront/internal/session"
)

var (
	ErrForbidden            = errors.New("admin: administrator only")
	ErrConfirmationRequired = errors.New("admin: deletion must be confirmed")
	ErrInvalidCategory      = errors.New("admin: please select a valid category")
	ErrNoOptions            = errors.New("admin: an attribute needs at least one option")
	ErrNoVariants           = errors.New("admin: product has no attributes to generate variants from")
)

// API is the part of the shop API the back-office uses.
type API interface {
	Me(ctx context.Context) (*models.User, error)
	Categories(ctx context.Context) ([]models.Category, error)
	CreateCategory(ctx context.Context, in models.CategoryInput) error
	UpdateCategory(ctx context.Context, id int64, in models.CategoryInput) error
	DeleteCategory(ctx context.Context, id int64) error

	Product(ctx context.Context, id int64) (*models.Product, error)
	AdminProducts(ctx context.Context) (*apiclient.ProductPage, error)
	CreateProduct(ctx context.Context, in apiclient.ProductInput, images []apiclient.File) error
	UpdateProduct(ctx context.Context, id int64, in apiclient.ProductInput) error
	UpdateProductImages(ctx context.Context, id int64, newImages []apiclient.File, remove []string) error
	DeleteProduct(ctx context.Context, id int64) error
	AssignAttributes(ctx context.Context, productID int64, attributeIDs []int64) error
	GenerateVariants(ctx context.Context, productID int64, defaults apiclient.VariantDefaults) ([]models.Variant, error)

	Attributes(ctx context.Context) ([]models.Attribute, error)
	CreateAttribute(ctx context.Context, in apiclient.AttributeInput) error
	DeleteAttribute(ctx context.Context, id int64) error

	Users(ctx context.Context) ([]models.User, error)
}

type Connector func(*session.Session) API

type Service struct {
	connect Connector
	orders  *order.Service
}

func NewService(connect Connector, orders *order.Service) *Service {
	return &Service{connect: connect, orders: orders}
}

// client returns the API for sess once it is known to be an administrator.
func (s *Service) client(sess *session.Session) (API, error) {
	if !sess.IsAdmin() {
		return nil, ErrForbidden
	}
	return s.connect(sess), nil
}

func confirmed(ok bool) error {
	if !ok {
		return ErrConfirmationRequired
	}
	return nil
}

// --- Categories ---

func (s *Service) Categories(ctx context.Context, sess *session.Session) ([]models.Category, error) {
	api, err := s.client(sess)
	if err != nil {
		return nil, err
	}
	return listCategories(ctx, api)
}

func listCategories(ctx context.Context, api API) ([]models.Category, error) {
	categories, err := api.Categories(ctx)
	if err != nil {
		return []models.Category{}, err
	}
	if categories == nil {
		categories = []models.Category{}
	}
	return categories, nil
}

func (s *Service) CreateCategory(ctx context.Context, sess *session.Session, in models.CategoryInput) ([]models.Category, error) {
	api, err := s.client(sess)
	if err != nil {
		return nil, err
	}
	if err := api.CreateCategory(ctx, in); err != nil {
		return nil, err
	}
	return listCategories(ctx, api)
}

func (s *Service) UpdateCategory(ctx context.Context, sess *session.Session, id int64, in models.CategoryInput) ([]models.Category, error) {
	api, err := s.client(sess)
	if err != nil {
		return nil, err
	}
	if err := api.UpdateCategory(ctx, id, in); err != nil {
		return nil, err
	}
	return listCategories(ctx, api)
}

func (s *Service) DeleteCategory(ctx context.Context, sess *session.Session, id int64, confirm bool) ([]models.Category, error) {
	api, err := s.client(sess)
	if err != nil {
		return nil, err
	}
	if err := confirmed(confirm); err != nil {
		return nil, err
	}
	if err := api.DeleteCategory(ctx, id); err != nil {
		return nil, err
	}
	return listCategories(ctx, api)
}

// --- Users ---

func (s *Service) Users(ctx context.Context, sess *session.Session) ([]models.User, error) {
	api, err := s.client(sess)
	if err != nil {
		return nil, err
	}
	users, err := api.Users(ctx)
	if err != nil {
		return []models.User{}, err
	}
	return users, nil
}

// --- Orders ---

func (s *Service) Orders(ctx context.Context, sess *session.Session, page int) (*models.OrderPage, error) {
	return s.orders.All(ctx, sess, page)
}

// SetOrderStatus applies the administrator override and returns the
// refreshed page the order was listed on.
func (s *Service) SetOrderStatus(ctx context.Context, sess *session.Session, orderID int64, status string, page int) (*models.OrderPage, error) {
	to, err := order.ParseStatus(status)
	if err != nil {
		return nil, err
	}
	if err := s.orders.SetStatus(ctx, sess, orderID, to); err != nil {
		if errors.Is(err, order.ErrForbidden) {
			return nil, ErrForbidden
		}
		return nil, err
	}
	return s.orders.All(ctx, sess, page)
}

// Dashboard is the back-office landing summary.
type Dashboard struct {
	User         *models.User               `json:"user"`
	StatusCounts map[models.OrderStatus]int `json:"statusCounts"`
	OrderPages   int                        `json:"orderPages"`
}

// Dashboard counts statuses over the first order page.
func (s *Service) Dashboard(ctx context.Context, sess *session.Session) (*Dashboard, error) {
	api, err := s.client(sess)
	if err != nil {
		return nil, err
	}

	// 1. --- Who is signed in ---
	user, err := api.Me(ctx)
	if err != nil {
		return nil, fmt.Errorf("load admin user: %w", err)
	}

	// 2. --- Order overview ---
	d := &Dashboard{User: user, StatusCounts: make(map[models.OrderStatus]int, len(order.Statuses))}
	for _, st := range order.Statuses {
		d.StatusCounts[st] = 0
	}
	page, err := s.orders.All(ctx, sess, 1)
	if err != nil {
		return nil, fmt.Errorf("load orders: %w", err)
	}
	for _, o := range page.Data {
		d.StatusCounts[o.Status]++
	}
	d.OrderPages = page.Meta.TotalPages
	return d, nil
}
