package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// --- Category Handlers (Public) ---

// GetAllCategories lists every category. A failed fetch renders as empty.
// GET /v1/categories
func (h *Handlers) GetAllCategories(c *gin.Context) {
	categories, err := h.Catalog.Categories(c.Request.Context())
	if err != nil {
		h.listFailed(c, "categories", err)
	}
	c.JSON(http.StatusOK, gin.H{"data": categories})
}

// GetCategory returns one category.
// GET /v1/categories/:id
func (h *Handlers) GetCategory(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	category, err := h.Catalog.Category(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err, "Category not found")
		return
	}
	c.JSON(http.StatusOK, category)
}

// GetCategoryProducts lists the products of a category, optionally filtered
// by ?search=.
// GET /v1/categories/:id/products
func (h *Handlers) GetCategoryProducts(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	products, err := h.Catalog.CategoryProducts(c.Request.Context(), id, c.Query("search"))
	if err != nil {
		h.listFailed(c, "category products", err)
	}
	c.JSON(http.StatusOK, gin.H{"data": products})
}
