package apiclient

import (
	"context"
	"net/http"
	"strconv"

	"github.com/01moynul/taptosell-storefront/internal/models"
)

// ProductInput carries the product fields the back-office edits.
type ProductInput struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	CategoryID  int64   `json:"categoryId"`
}

// AttributeInput creates an attribute together with its options.
type AttributeInput struct {
	Name    string   `json:"name"`
	Type    string   `json:"type"`
	Options []string `json:"options"`
}

// VariantDefaults seed every generated variant.
type VariantDefaults struct {
	Price *float64 `json:"price,omitempty"`
	Stock int      `json:"stock"`
}

// --- Categories ---

func (c *Client) CreateCategory(ctx context.Context, in models.CategoryInput) error {
	_, err := c.do(ctx, http.MethodPost, "/categories", nil, in, nil)
	return err
}

func (c *Client) UpdateCategory(ctx context.Context, id int64, in models.CategoryInput) error {
	_, err := c.do(ctx, http.MethodPatch, idPath("/categories/%d", id), nil, in, nil)
	return err
}

func (c *Client) DeleteCategory(ctx context.Context, id int64) error {
	_, err := c.do(ctx, http.MethodDelete, idPath("/categories/%d", id), nil, nil, nil)
	return err
}

// --- Products ---

func (c *Client) AdminProducts(ctx context.Context) (*ProductPage, error) {
	var page ProductPage
	if _, err := c.do(ctx, http.MethodGet, "/products/admin", nil, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// CreateProduct uploads a product with its images as multipart form data.
func (c *Client) CreateProduct(ctx context.Context, in ProductInput, images []File) error {
	var form multipartForm
	form.add("name", in.Name)
	form.add("description", in.Description)
	form.add("price", strconv.FormatFloat(in.Price, 'f', -1, 64))
	form.add("stock", strconv.Itoa(in.Stock))
	form.add("categoryId", strconv.FormatInt(in.CategoryID, 10))
	form.attach("images", images)
	return c.doMultipart(ctx, http.MethodPost, "/products", form, nil)
}

func (c *Client) UpdateProduct(ctx context.Context, id int64, in ProductInput) error {
	_, err := c.do(ctx, http.MethodPatch, idPath("/products/%d", id), nil, in, nil)
	return err
}

// UpdateProductImages adds newImages and removes the images whose public ids
// are listed in remove.
func (c *Client) UpdateProductImages(ctx context.Context, id int64, newImages []File, remove []string) error {
	var form multipartForm
	for _, publicID := range remove {
		form.add("remove", publicID)
	}
	form.attach("images", newImages)
	return c.doMultipart(ctx, http.MethodPatch, idPath("/products/%d/images", id), form, nil)
}

func (c *Client) DeleteProduct(ctx context.Context, id int64) error {
	_, err := c.do(ctx, http.MethodDelete, idPath("/products/%d", id), nil, nil, nil)
	return err
}

func (c *Client) AssignAttributes(ctx context.Context, productID int64, attributeIDs []int64) error {
	in := map[string][]int64{"attributes": attributeIDs}
	_, err := c.do(ctx, http.MethodPost, idPath("/products/%d/attributes", productID), nil, in, nil)
	return err
}

// GenerateVariants asks the API to expand the product's attribute options.
func (c *Client) GenerateVariants(ctx context.Context, productID int64, defaults VariantDefaults) ([]models.Variant, error) {
	var variants []models.Variant
	if _, err := c.do(ctx, http.MethodPost, idPath("/products/%d/variants", productID), nil, defaults, &variants); err != nil {
		return nil, err
	}
	return variants, nil
}

// --- Attributes ---

func (c *Client) Attributes(ctx context.Context) ([]models.Attribute, error) {
	var attributes []models.Attribute
	if _, err := c.do(ctx, http.MethodGet, "/products/attributes", nil, nil, &attributes); err != nil {
		return nil, err
	}
	return attributes, nil
}

func (c *Client) CreateAttribute(ctx context.Context, in AttributeInput) error {
	_, err := c.do(ctx, http.MethodPost, "/products/attributes", nil, in, nil)
	return err
}

func (c *Client) DeleteAttribute(ctx context.Context, id int64) error {
	_, err := c.do(ctx, http.MethodDelete, idPath("/products/attributes/%d", id), nil, nil, nil)
	return err
}

// --- Users ---

func (c *Client) Users(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if _, err := c.do(ctx, http.MethodGet, "/user", nil, nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}
