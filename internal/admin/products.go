package admin

import (
	"context"
	"fmt"
	"strings"

	"github.com/01moynul/taptosell-storefront/internal/apiclient"
	"github.com/01moynul/taptosell-storefront/internal/models"
	"github.com/01moynul/taptosell-storefront/internal/session"
)

// ProductForm is the product editor's input.
type ProductForm struct {
	Name        string  `json:"name" form:"name" binding:"required"`
	Description string  `json:"description" form:"description"`
	Price       float64 `json:"price" form:"price" binding:"gte=0"`
	Stock       int     `json:"stock" form:"stock" binding:"gte=0"`
	CategoryID  int64   `json:"categoryId" form:"categoryId"`
}

func (f ProductForm) input() apiclient.ProductInput {
	return apiclient.ProductInput{
		Name:        strings.TrimSpace(f.Name),
		Description: f.Description,
		Price:       f.Price,
		Stock:       f.Stock,
		CategoryID:  f.CategoryID,
	}
}

// ImageChanges adds and removes product images.
type ImageChanges struct {
	Add    []apiclient.File
	Remove []string
}

func (c ImageChanges) empty() bool { return len(c.Add) == 0 && len(c.Remove) == 0 }

type AttributeForm struct {
	Name    string   `json:"name" binding:"required"`
	Type    string   `json:"type"`
	Options []string `json:"options"`
}

func (s *Service) Products(ctx context.Context, sess *session.Session) ([]models.Product, error) {
	api, err := s.client(sess)
	if err != nil {
		return nil, err
	}
	return listProducts(ctx, api)
}

func listProducts(ctx context.Context, api API) ([]models.Product, error) {
	page, err := api.AdminProducts(ctx)
	if err != nil {
		return []models.Product{}, err
	}
	if page.Data == nil {
		return []models.Product{}, nil
	}
	return page.Data, nil
}

// checkCategory requires categoryID to name an existing category.
func checkCategory(ctx context.Context, api API, categoryID int64) error {
	if categoryID <= 0 {
		return ErrInvalidCategory
	}
	categories, err := api.Categories(ctx)
	if err != nil {
		return fmt.Errorf("load categories: %w", err)
	}
	for _, c := range categories {
		if c.ID == categoryID {
			return nil
		}
	}
	return ErrInvalidCategory
}

func (s *Service) CreateProduct(ctx context.Context, sess *session.Session, form ProductForm, images []apiclient.File) ([]models.Product, error) {
	api, err := s.client(sess)
	if err != nil {
		return nil, err
	}

	// 1. --- Validate ---
	if err := checkCategory(ctx, api, form.CategoryID); err != nil {
		return nil, err
	}

	// 2. --- Create with images ---
	if err := api.CreateProduct(ctx, form.input(), images); err != nil {
		return nil, err
	}
	return listProducts(ctx, api)
}

// UpdateProduct saves the product fields, then the image changes. The two
// calls are independent: if the second fails the first stays applied.
func (s *Service) UpdateProduct(ctx context.Context, sess *session.Session, id int64, form ProductForm, images ImageChanges) ([]models.Product, error) {
	api, err := s.client(sess)
	if err != nil {
		return nil, err
	}
	if err := checkCategory(ctx, api, form.CategoryID); err != nil {
		return nil, err
	}

	if err := api.UpdateProduct(ctx, id, form.input()); err != nil {
		return nil, err
	}
	if !images.empty() {
		if err := api.UpdateProductImages(ctx, id, images.Add, images.Remove); err != nil {
			return nil, fmt.Errorf("product saved, images not updated: %w", err)
		}
	}
	return listProducts(ctx, api)
}

func (s *Service) UpdateProductImages(ctx context.Context, sess *session.Session, id int64, images ImageChanges) ([]models.Product, error) {
	api, err := s.client(sess)
	if err != nil {
		return nil, err
	}
	if err := api.UpdateProductImages(ctx, id, images.Add, images.Remove); err != nil {
		return nil, err
	}
	return listProducts(ctx, api)
}

func (s *Service) DeleteProduct(ctx context.Context, sess *session.Session, id int64, confirm bool) ([]models.Product, error) {
	api, err := s.client(sess)
	if err != nil {
		return nil, err
	}
	if err := confirmed(confirm); err != nil {
		return nil, err
	}
	if err := api.DeleteProduct(ctx, id); err != nil {
		return nil, err
	}
	return listProducts(ctx, api)
}

func (s *Service) AssignAttributes(ctx context.Context, sess *session.Session, productID int64, attributeIDs []int64) ([]models.Product, error) {
	api, err := s.client(sess)
	if err != nil {
		return nil, err
	}
	if err := api.AssignAttributes(ctx, productID, attributeIDs); err != nil {
		return nil, err
	}
	return listProducts(ctx, api)
}

// --- Variants ---

// PredictVariantCount is the number of variants generation would produce:
// the product over the attributes of their option counts, an attribute
// without options counting once. A product without attributes yields none.
func PredictVariantCount(p models.Product) int {
	if len(p.Attributes) == 0 {
		return 0
	}
	count := 1
	for _, attr := range p.Attributes {
		count *= max(len(attr.Options), 1)
	}
	return count
}

// VariantPreview reloads the product and predicts its variant count.
func (s *Service) VariantPreview(ctx context.Context, sess *session.Session, productID int64) (int, error) {
	api, err := s.client(sess)
	if err != nil {
		return 0, err
	}
	p, err := api.Product(ctx, productID)
	if err != nil {
		return 0, err
	}
	return PredictVariantCount(*p), nil
}

// GenerateVariants asks the API to expand the product's options. The API's
// answer is authoritative; the prediction only guards against empty runs.
func (s *Service) GenerateVariants(ctx context.Context, sess *session.Session, productID int64, defaults apiclient.VariantDefaults) ([]models.Variant, error) {
	api, err := s.client(sess)
	if err != nil {
		return nil, err
	}
	p, err := api.Product(ctx, productID)
	if err != nil {
		return nil, err
	}
	if PredictVariantCount(*p) == 0 {
		return nil, ErrNoVariants
	}
	variants, err := api.GenerateVariants(ctx, productID, defaults)
	if err != nil {
		return nil, err
	}
	if variants == nil {
		variants = []models.Variant{}
	}
	return variants, nil
}

// --- Attributes ---

func (s *Service) Attributes(ctx context.Context, sess *session.Session) ([]models.Attribute, error) {
	api, err := s.client(sess)
	if err != nil {
		return nil, err
	}
	return listAttributes(ctx, api)
}

func listAttributes(ctx context.Context, api API) ([]models.Attribute, error) {
	attributes, err := api.Attributes(ctx)
	if err != nil {
		return []models.Attribute{}, err
	}
	if attributes == nil {
		attributes = []models.Attribute{}
	}
	return attributes, nil
}

func (s *Service) CreateAttribute(ctx context.Context, sess *session.Session, form AttributeForm) ([]models.Attribute, error) {
	api, err := s.client(sess)
	if err != nil {
		return nil, err
	}

	options := make([]string, 0, len(form.Options))
	for _, o := range form.Options {
		if o = strings.TrimSpace(o); o != "" {
			options = append(options, o)
		}
	}
	if len(options) == 0 {
		return nil, ErrNoOptions
	}

	in := apiclient.AttributeInput{Name: strings.TrimSpace(form.Name), Type: form.Type, Options: options}
	if err := api.CreateAttribute(ctx, in); err != nil {
		return nil, err
	}
	return listAttributes(ctx, api)
}

func (s *Service) DeleteAttribute(ctx context.Context, sess *session.Session, id int64, confirm bool) ([]models.Attribute, error) {
	api, err := s.client(sess)
	if err != nil {
		return nil, err
	}
	if err := confirmed(confirm); err != nil {
		return nil, err
	}
	if err := api.DeleteAttribute(ctx, id); err != nil {
		return nil, err
	}
	return listAttributes(ctx, api)
}
