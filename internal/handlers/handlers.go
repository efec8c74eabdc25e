package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/01moynul/taptosell-storefront/internal/account"
	"github.com/01moynul/taptosell-storefront/internal/admin"
	"github.com/01moynul/taptosell-storefront/internal/apiclient"
	"github.com/01moynul/taptosell-storefront/internal/cart"
	"github.com/01moynul/taptosell-storefront/internal/catalog"
	"github.com/01moynul/taptosell-storefront/internal/middleware"
	"github.com/01moynul/taptosell-storefront/internal/order"
	"github.com/01moynul/taptosell-storefront/internal/session"
	"github.com/01moynul/taptosell-storefront/internal/wishlist"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// Handlers struct holds all dependencies for our handlers.
type Handlers struct {
	Sessions *session.Manager
	Accounts *account.Service
	Catalog  *catalog.Service
	Orders   *order.Service
	Wishlist *wishlist.Service
	Admin    *admin.Service

	Currency    string
	ShippingFee decimal.Decimal
	Now         func() time.Time
}

func (h *Handlers) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

// session returns the visitor's session set by SessionMiddleware.
func (h *Handlers) session(c *gin.Context) *session.Session {
	return middleware.SessionFrom(c)
}

// cartFor picks the guest or server cart for the visitor.
func (h *Handlers) cartFor(sess *session.Session) cart.Cart {
	return cart.For(sess, h.Sessions.Client(sess))
}

// pathID parses a positive integer path parameter.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return 0, false
	}
	return id, true
}

// listFailed logs a failed page-load fetch. The page still renders, with an
// empty list.
func (h *Handlers) listFailed(c *gin.Context, what string, err error) {
	h.expire(c, err)
	log.Printf("handlers: %s %s: load %s: %v", c.Request.Method, c.Request.URL.Path, what, err)
}

// listDenied answers access failures of a list load itself and reports
// whether it did. Any other failure is only logged.
func (h *Handlers) listDenied(c *gin.Context, what string, err error) bool {
	switch {
	case errors.Is(err, order.ErrLoginRequired),
		errors.Is(err, order.ErrForbidden),
		errors.Is(err, admin.ErrForbidden),
		apiclient.IsUnauthorized(err):
		h.respondError(c, err, "Failed to load "+what)
		return true
	}
	h.listFailed(c, what, err)
	return false
}

// expire logs the visitor out when the API no longer accepts their token.
func (h *Handlers) expire(c *gin.Context, err error) bool {
	return h.Sessions.Expire(c.Request.Context(), h.session(c), err)
}

// respondError maps an operation error to a status and a message. Upstream
// messages are passed through when the API supplied one; otherwise the
// caller's fallback is shown.
func (h *Handlers) respondError(c *gin.Context, err error, fallback string) {
	expired := h.expire(c, err)
	var status int
	body := gin.H{}

	switch {
	case errors.Is(err, order.ErrLoginRequired),
		errors.Is(err, wishlist.ErrLoginRequired):
		status = http.StatusUnauthorized
		body["error"] = "Please log in first"
		body["redirect"] = "/sign-in"
	case errors.Is(err, order.ErrForbidden),
		errors.Is(err, admin.ErrForbidden):
		status = http.StatusForbidden
		body["error"] = "Access denied: admin role required"
	case errors.Is(err, admin.ErrConfirmationRequired):
		status = http.StatusPreconditionRequired
		body["error"] = "Please confirm the deletion"
	case errors.Is(err, order.ErrNotFound):
		status = http.StatusNotFound
		body["error"] = "Order not found"
	case errors.Is(err, order.ErrTransition):
		status = http.StatusConflict
		body["error"] = "This order can no longer be canceled"
	case errors.Is(err, order.ErrInvalidStatus):
		status = http.StatusBadRequest
		body["error"] = "Unknown order status"
	case errors.Is(err, admin.ErrInvalidCategory),
		errors.Is(err, admin.ErrNoOptions),
		errors.Is(err, admin.ErrNoVariants):
		status = http.StatusBadRequest
		body["error"] = err.Error()
	case errors.Is(err, apiclient.ErrInvalidResponse):
		status = http.StatusBadGateway
		body["error"] = fallback
	case errors.Is(err, cart.ErrStorage):
		status = http.StatusInternalServerError
		body["error"] = fallback
	default:
		// Upstream 4xx answers pass through; anything else is a gateway failure.
		status = apiclient.StatusCode(err)
		if status < 400 || status >= 500 {
			status = http.StatusBadGateway
		}
		body["error"] = apiclient.Message(err, fallback)
	}

	if expired {
		body["redirect"] = "/sign-in"
	}
	if status >= 500 {
		log.Printf("handlers: %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	}
	c.JSON(status, body)
}

// badRequest reports input rejected before any upstream call.
func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}
