package handlers

import (
	"net/http"
	"strconv"

	"github.com/01moynul/taptosell-storefront/internal/catalog"
	"github.com/01moynul/taptosell-storefront/internal/models"
	"github.com/gin-gonic/gin"
)

// --- Public Product Handlers ---

// queryLimit reads ?limit=, treating anything invalid as unset.
func queryLimit(c *gin.Context) int {
	limit, err := strconv.Atoi(c.Query("limit"))
	if err != nil || limit < 0 {
		return 0
	}
	return limit
}

// GetFeaturedProducts is the home page listing.
// GET /v1/products/featured?page&limit&sortBy&sortOrder&minPrice&maxPrice&categoryId
func (h *Handlers) GetFeaturedProducts(c *gin.Context) {
	// 1. --- Bind Query ---
	var query models.ProductQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid filters: " + err.Error()})
		return
	}

	// 2. --- Fetch ---
	page, err := h.Catalog.Featured(c.Request.Context(), query)
	if err != nil {
		h.listFailed(c, "featured products", err)
		c.JSON(http.StatusOK, gin.H{"data": []catalog.ProductView{}, "page": query.Page, "totalPages": 0})
		return
	}

	// 3. --- Respond ---
	c.JSON(http.StatusOK, gin.H{
		"data":       catalog.Views(page.Data),
		"total":      page.Total,
		"page":       page.Page,
		"limit":      page.Limit,
		"totalPages": page.TotalPages,
	})
}

// SearchProducts looks products up by name.
// GET /v1/products/search?q&limit
func (h *Handlers) SearchProducts(c *gin.Context) {
	products, err := h.Catalog.Search(c.Request.Context(), c.Query("q"), queryLimit(c))
	if err != nil {
		h.listFailed(c, "search results", err)
	}
	c.JSON(http.StatusOK, gin.H{"data": catalog.Views(products)})
}

// GetProduct returns one product.
// GET /v1/products/:id
func (h *Handlers) GetProduct(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	product, err := h.Catalog.Product(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err, "Product not found")
		return
	}
	c.JSON(http.StatusOK, product)
}

// GetRelatedProducts lists "you may also like" products, each once.
// GET /v1/products/:id/related?limit
func (h *Handlers) GetRelatedProducts(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	products, err := h.Catalog.Related(c.Request.Context(), id, queryLimit(c))
	if err != nil {
		h.listFailed(c, "related products", err)
	}
	c.JSON(http.StatusOK, gin.H{"data": catalog.Views(products)})
}
