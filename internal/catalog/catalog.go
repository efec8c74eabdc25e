// Package catalog serves categories and products to shoppers.
package catalog

import (
	"context"
	"strconv"
	"strings"

	"github.com/01moynul/taptosell-storefront/internal/apiclient"
	"github.com/01moynul/taptosell-storefront/internal/models"
	"github.com/gosimple/slug"
)

const (
	DefaultSearchLimit   = 20
	DefaultRelatedLimit  = 4
	CategoryProductLimit = 20
)

// API is the part of the shop API the catalog reads.
type API interface {
	Categories(ctx context.Context) ([]models.Category, error)
	Category(ctx context.Context, id int64) (*models.Category, error)
	Product(ctx context.Context, id int64) (*models.Product, error)
	SearchProducts(ctx context.Context, term string, limit int) (*apiclient.ProductPage, error)
	FeaturedProducts(ctx context.Context, q models.ProductQuery) (*apiclient.ProductPage, error)
	CategoryProducts(ctx context.Context, categoryID int64, search string, limit int) (*apiclient.ProductPage, error)
	RelatedProducts(ctx context.Context, productID int64, limit int) ([]models.Product, error)
}

// ProductView is a product plus the fields a product page links with.
type ProductView struct {
	models.Product
	Slug string `json:"slug"`
	Path string `json:"path"`
}

func View(p models.Product) ProductView {
	s := slug.Make(p.Name)
	path := "/product/" + strconv.FormatInt(p.ID, 10)
	if s != "" {
		path += "/" + s
	}
	return ProductView{Product: p, Slug: s, Path: path}
}

func Views(products []models.Product) []ProductView {
	views := make([]ProductView, 0, len(products))
	for _, p := range products {
		views = append(views, View(p))
	}
	return views
}

type Service struct {
	api API
}

func NewService(api API) *Service {
	return &Service{api: api}
}

func (s *Service) Categories(ctx context.Context) ([]models.Category, error) {
	categories, err := s.api.Categories(ctx)
	if err != nil {
		return []models.Category{}, err
	}
	return categories, nil
}

func (s *Service) Category(ctx context.Context, id int64) (*models.Category, error) {
	return s.api.Category(ctx, id)
}

func (s *Service) Product(ctx context.Context, id int64) (*ProductView, error) {
	p, err := s.api.Product(ctx, id)
	if err != nil {
		return nil, err
	}
	v := View(*p)
	return &v, nil
}

func (s *Service) Featured(ctx context.Context, q models.ProductQuery) (*apiclient.ProductPage, error) {
	return s.api.FeaturedProducts(ctx, q)
}

// Search looks products up by name. A blank term matches nothing and makes
// no request.
func (s *Service) Search(ctx context.Context, term string, limit int) ([]models.Product, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return []models.Product{}, nil
	}
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	page, err := s.api.SearchProducts(ctx, term, limit)
	if err != nil {
		return []models.Product{}, err
	}
	return nonNil(page.Data), nil
}

func (s *Service) CategoryProducts(ctx context.Context, categoryID int64, search string) ([]models.Product, error) {
	page, err := s.api.CategoryProducts(ctx, categoryID, strings.TrimSpace(search), CategoryProductLimit)
	if err != nil {
		return []models.Product{}, err
	}
	return nonNil(page.Data), nil
}

// Related returns products similar to productID, each at most once.
func (s *Service) Related(ctx context.Context, productID int64, limit int) ([]models.Product, error) {
	if limit <= 0 {
		limit = DefaultRelatedLimit
	}
	products, err := s.api.RelatedProducts(ctx, productID, limit)
	if err != nil {
		return []models.Product{}, err
	}
	return UniqueByID(products), nil
}

// UniqueByID keeps the first product of each id, preserving order.
func UniqueByID(products []models.Product) []models.Product {
	seen := make(map[int64]struct{}, len(products))
	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if _, dup := seen[p.ID]; dup {
			continue
		}
		seen[p.ID] = struct{}{}
		out = append(out, p)
	}
	return out
}

func nonNil(products []models.Product) []models.Product {
	if products == nil {
		return []models.Product{}
	}
	return products
}
