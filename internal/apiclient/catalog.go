package apiclient

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/01moynul/taptosell-storefront/internal/models"
)

type ProductPage = models.Page[models.Product]

func (c *Client) Categories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if _, err := c.do(ctx, http.MethodGet, "/categories", nil, nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (c *Client) Category(ctx context.Context, id int64) (*models.Category, error) {
	var category models.Category
	if _, err := c.do(ctx, http.MethodGet, idPath("/categories/%d", id), nil, nil, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

func (c *Client) Product(ctx context.Context, id int64) (*models.Product, error) {
	var product models.Product
	if _, err := c.do(ctx, http.MethodGet, idPath("/products/%d", id), nil, nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *Client) SearchProducts(ctx context.Context, term string, limit int) (*ProductPage, error) {
	query := url.Values{"q": {term}}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}
	var page ProductPage
	if _, err := c.do(ctx, http.MethodGet, "/products/search", query, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// FeaturedProducts lists products for the home page. Zero-valued filters
// are left out of the query.
func (c *Client) FeaturedProducts(ctx context.Context, q models.ProductQuery) (*ProductPage, error) {
	query := url.Values{}
	if q.Page > 0 {
		query.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		query.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.SortBy != "" {
		query.Set("sortBy", q.SortBy)
	}
	if q.SortOrder != "" {
		query.Set("sortOrder", q.SortOrder)
	}
	if q.MinPrice > 0 {
		query.Set("minPrice", strconv.FormatFloat(q.MinPrice, 'f', -1, 64))
	}
	if q.MaxPrice > 0 {
		query.Set("maxPrice", strconv.FormatFloat(q.MaxPrice, 'f', -1, 64))
	}
	if q.CategoryID > 0 {
		query.Set("categoryId", strconv.FormatInt(q.CategoryID, 10))
	}

	var page ProductPage
	if _, err := c.do(ctx, http.MethodGet, "/products/featured", query, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *Client) CategoryProducts(ctx context.Context, categoryID int64, search string, limit int) (*ProductPage, error) {
	query := url.Values{"search": {search}}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}
	var page ProductPage
	if _, err := c.do(ctx, http.MethodGet, idPath("/products/category/%d", categoryID), query, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *Client) RelatedProducts(ctx context.Context, productID int64, limit int) ([]models.Product, error) {
	query := url.Values{}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}
	var products []models.Product
	if _, err := c.do(ctx, http.MethodGet, idPath("/products/%d/related", productID), query, nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}
