package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

//
// --- Admin Dashboard ---
//

// AdminDashboard returns the back-office landing summary: the signed-in
// admin and order counts per status.
// GET /v1/admin/dashboard
func (h *Handlers) AdminDashboard(c *gin.Context) {
	dashboard, err := h.Admin.Dashboard(c.Request.Context(), h.session(c))
	if err != nil {
		h.respondError(c, err, "Failed to load dashboard")
		return
	}
	c.JSON(http.StatusOK, dashboard)
}
