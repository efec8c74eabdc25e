package handlers

import (
	"net/http"
	"strconv"

	"github.com/01moynul/taptosell-storefront/internal/admin"
	"github.com/01moynul/taptosell-storefront/internal/apiclient"
	"github.com/01moynul/taptosell-storefront/internal/models"
	"github.com/gin-gonic/gin"
)

// confirmedDelete reports whether the caller passed ?confirm=true.
func confirmedDelete(c *gin.Context) bool {
	return c.Query("confirm") == "true"
}

// queryPage reads ?page=, defaulting to the first page.
func queryPage(c *gin.Context) int {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

//
// --- Category Management (Admins) ---
//

// AdminGetCategories lists categories for the back-office.
// GET /v1/admin/categories
func (h *Handlers) AdminGetCategories(c *gin.Context) {
	categories, err := h.Admin.Categories(c.Request.Context(), h.session(c))
	if err != nil && h.listDenied(c, "categories", err) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": categories})
}

// AdminCreateCategory adds a category and returns the refreshed list.
// POST /v1/admin/categories
func (h *Handlers) AdminCreateCategory(c *gin.Context) {
	var input models.CategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}
	categories, err := h.Admin.CreateCategory(c.Request.Context(), h.session(c), input)
	if err != nil {
		h.respondError(c, err, "Failed to create category")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Category created", "data": categories})
}

// AdminUpdateCategory renames or re-describes a category.
// PATCH /v1/admin/categories/:id
func (h *Handlers) AdminUpdateCategory(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var input models.CategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}
	categories, err := h.Admin.UpdateCategory(c.Request.Context(), h.session(c), id, input)
	if err != nil {
		h.respondError(c, err, "Failed to update category")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Category updated", "data": categories})
}

// AdminDeleteCategory removes a category once confirmed.
// DELETE /v1/admin/categories/:id?confirm=true
func (h *Handlers) AdminDeleteCategory(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	categories, err := h.Admin.DeleteCategory(c.Request.Context(), h.session(c), id, confirmedDelete(c))
	if err != nil {
		h.respondError(c, err, "Failed to delete category")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Category deleted", "data": categories})
}

//
// --- Product Management (Admins) ---
//

// AdminGetProducts lists every product for the back-office.
// GET /v1/admin/products
func (h *Handlers) AdminGetProducts(c *gin.Context) {
	products, err := h.Admin.Products(c.Request.Context(), h.session(c))
	if err != nil && h.listDenied(c, "products", err) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": products})
}

// AdminCreateProduct creates a product from a multipart form with its
// images.
// POST /v1/admin/products
func (h *Handlers) AdminCreateProduct(c *gin.Context) {
	// 1. --- Bind the form fields ---
	var form admin.ProductForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	// 2. --- Read the images ---
	images, err := formImages(c, "images")
	if err != nil {
		badRequest(c, err)
		return
	}

	// 3. --- Create ---
	products, err := h.Admin.CreateProduct(c.Request.Context(), h.session(c), form, images)
	if err != nil {
		h.respondError(c, err, "Failed to create product")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Product created", "data": products})
}

// AdminUpdateProduct saves the product fields and then, when the form
// carries any, the image changes.
// PATCH /v1/admin/products/:id
func (h *Handlers) AdminUpdateProduct(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	// 1. --- Bind the form fields (JSON or multipart) ---
	var form admin.ProductForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	// 2. --- Collect image changes ---
	changes, ok := imageChanges(c)
	if !ok {
		return
	}

	// 3. --- Update ---
	products, err := h.Admin.UpdateProduct(c.Request.Context(), h.session(c), id, form, changes)
	if err != nil {
		h.respondError(c, err, "Failed to update product")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product updated", "data": products})
}

// AdminUpdateProductImages adds and removes product images.
// PATCH /v1/admin/products/:id/images
func (h *Handlers) AdminUpdateProductImages(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	changes, ok := imageChanges(c)
	if !ok {
		return
	}
	products, err := h.Admin.UpdateProductImages(c.Request.Context(), h.session(c), id, changes)
	if err != nil {
		h.respondError(c, err, "Failed to update images")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Images updated", "data": products})
}

// imageChanges reads new "images" files and "removeImages" public ids. It
// writes the error response itself when the upload is rejected.
func imageChanges(c *gin.Context) (admin.ImageChanges, bool) {
	images, err := formImages(c, "images")
	if err != nil {
		badRequest(c, err)
		return admin.ImageChanges{}, false
	}
	return admin.ImageChanges{Add: images, Remove: formValues(c, "removeImages")}, true
}

// AdminDeleteProduct removes a product once confirmed.
// DELETE /v1/admin/products/:id?confirm=true
func (h *Handlers) AdminDeleteProduct(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	products, err := h.Admin.DeleteProduct(c.Request.Context(), h.session(c), id, confirmedDelete(c))
	if err != nil {
		h.respondError(c, err, "Failed to delete product")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted", "data": products})
}

type assignAttributesInput struct {
	AttributeIDs []int64 `json:"attributeIds" binding:"required"`
}

// AdminAssignAttributes sets the attributes a product varies by.
// POST /v1/admin/products/:id/attributes
func (h *Handlers) AdminAssignAttributes(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var input assignAttributesInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}
	products, err := h.Admin.AssignAttributes(c.Request.Context(), h.session(c), id, input.AttributeIDs)
	if err != nil {
		h.respondError(c, err, "Failed to assign attributes")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Attributes assigned", "data": products})
}

//
// --- Variants (Admins) ---
//

// AdminPreviewVariants predicts how many variants generation would create.
// GET /v1/admin/products/:id/variants/preview
func (h *Handlers) AdminPreviewVariants(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	count, err := h.Admin.VariantPreview(c.Request.Context(), h.session(c), id)
	if err != nil {
		h.respondError(c, err, "Failed to preview variants")
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}

// AdminGenerateVariants creates every attribute combination of a product.
// POST /v1/admin/products/:id/variants
func (h *Handlers) AdminGenerateVariants(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var defaults apiclient.VariantDefaults
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&defaults); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
	}
	variants, err := h.Admin.GenerateVariants(c.Request.Context(), h.session(c), id, defaults)
	if err != nil {
		h.respondError(c, err, "Failed to generate variants")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Variants generated", "data": variants})
}

//
// --- Attributes (Admins) ---
//

// AdminGetAttributes lists attributes with their options.
// GET /v1/admin/attributes
func (h *Handlers) AdminGetAttributes(c *gin.Context) {
	attributes, err := h.Admin.Attributes(c.Request.Context(), h.session(c))
	if err != nil && h.listDenied(c, "attributes", err) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": attributes})
}

// AdminCreateAttribute creates an attribute with its options.
// POST /v1/admin/attributes
func (h *Handlers) AdminCreateAttribute(c *gin.Context) {
	var form admin.AttributeForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}
	attributes, err := h.Admin.CreateAttribute(c.Request.Context(), h.session(c), form)
	if err != nil {
		h.respondError(c, err, "Failed to create attribute")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Attribute created", "data": attributes})
}

// AdminDeleteAttribute removes an attribute once confirmed.
// DELETE /v1/admin/attributes/:id?confirm=true
func (h *Handlers) AdminDeleteAttribute(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	attributes, err := h.Admin.DeleteAttribute(c.Request.Context(), h.session(c), id, confirmedDelete(c))
	if err != nil {
		h.respondError(c, err, "Failed to delete attribute")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Attribute deleted", "data": attributes})
}

//
// --- Orders & Users (Admins) ---
//

// AdminGetOrders lists one page of every customer's orders.
// GET /v1/admin/orders?page
func (h *Handlers) AdminGetOrders(c *gin.Context) {
	page, err := h.Admin.Orders(c.Request.Context(), h.session(c), queryPage(c))
	if err != nil {
		if h.listDenied(c, "orders", err) {
			return
		}
		page = &models.OrderPage{}
	}
	c.JSON(http.StatusOK, gin.H{
		"data": orderViews(page.Data),
		"meta": page.Meta,
	})
}

type orderStatusInput struct {
	Status string `json:"status" binding:"required"`
}

// AdminUpdateOrderStatus moves an order to any status and returns the
// refreshed page the admin was looking at.
// PATCH /v1/admin/orders/:id/status?page
func (h *Handlers) AdminUpdateOrderStatus(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var input orderStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	page, err := h.Admin.SetOrderStatus(c.Request.Context(), h.session(c), id, input.Status, queryPage(c))
	if err != nil {
		h.respondError(c, err, "Failed to update order status")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Order status updated",
		"data":    orderViews(page.Data),
		"meta":    page.Meta,
	})
}

// AdminGetUsers lists registered users.
// GET /v1/admin/users
func (h *Handlers) AdminGetUsers(c *gin.Context) {
	users, err := h.Admin.Users(c.Request.Context(), h.session(c))
	if err != nil && h.listDenied(c, "users", err) {
		return
	}
	if users == nil {
		users = []models.User{}
	}
	c.JSON(http.StatusOK, gin.H{"data": users})
}
