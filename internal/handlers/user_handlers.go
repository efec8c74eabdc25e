package handlers

import (
	"errors"
	"net/http"

	"github.com/01moynul/taptosell-storefront/internal/account"
	"github.com/gin-gonic/gin"
)

// --- Session & Login ---

// GetSession reports who the visitor is logged in as.
// GET /v1/session
func (h *Handlers) GetSession(c *gin.Context) {
	sess := h.session(c)
	c.JSON(http.StatusOK, gin.H{
		"isAuthenticated": sess.IsAuthenticated(),
		"isAdmin":         sess.IsAdmin(),
		"user":            sess.User,
	})
}

// Login signs in and merges the guest cart.
// POST /v1/auth/login
func (h *Handlers) Login(c *gin.Context) {
	// 1. --- Bind & Validate JSON ---
	var input account.LoginForm
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// 2. --- Authenticate and merge ---
	sess := h.session(c)
	result, err := h.Accounts.Login(c.Request.Context(), sess, input)
	if errors.Is(err, account.ErrVerifyRequired) {
		c.JSON(http.StatusForbidden, gin.H{
			"error":          "Please verify your email before logging in.",
			"verifyRequired": true,
			"redirect":       "/verify",
		})
		return
	}
	if err != nil {
		h.respondError(c, err, "Login failed")
		return
	}

	// 3. --- Success ---
	c.JSON(http.StatusOK, gin.H{
		"message":     "Logged in successfully",
		"user":        sess.User,
		"mergedItems": result.MergedItems,
		"redirect":    "/",
	})
}

// Logout ends the session. It always succeeds locally.
// POST /v1/auth/logout
func (h *Handlers) Logout(c *gin.Context) {
	h.Accounts.Logout(c.Request.Context(), h.session(c))
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// --- Registration & Verification ---

// Register creates an account.
// POST /v1/auth/register
func (h *Handlers) Register(c *gin.Context) {
	var input account.RegisterForm
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := input.Check(); err != nil {
		badRequest(c, err)
		return
	}

	if err := h.Accounts.Register(c.Request.Context(), h.session(c), input); err != nil {
		h.respondError(c, err, "Registration failed")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Registered successfully. Check your email for a code.", "redirect": "/verify"})
}

// VerifyEmail checks the code sent to the pending email.
// POST /v1/auth/verify
func (h *Handlers) VerifyEmail(c *gin.Context) {
	var input account.VerifyForm
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.Accounts.Verify(c.Request.Context(), h.session(c), input.Code)
	if errors.Is(err, account.ErrNoPendingEmail) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No email found. Please register first.", "redirect": "/register"})
		return
	}
	if err != nil {
		h.respondError(c, err, "Verification failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Email verified. You can now log in.", "redirect": "/sign-in"})
}

// ResendVerificationEmail sends a new code to the pending email.
// POST /v1/auth/resend-code
func (h *Handlers) ResendVerificationEmail(c *gin.Context) {
	err := h.Accounts.ResendCode(c.Request.Context(), h.session(c))
	if errors.Is(err, account.ErrNoPendingEmail) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No email found. Please register first.", "redirect": "/register"})
		return
	}
	if err != nil {
		h.respondError(c, err, "Could not resend the code")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "A new code has been sent"})
}

// --- Password Reset ---

// ForgotPassword requests a reset email.
// POST /v1/auth/forgot-password
func (h *Handlers) ForgotPassword(c *gin.Context) {
	var input account.ForgotForm
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.Accounts.ForgotPassword(c.Request.Context(), input)
	if errors.Is(err, account.ErrEmailRequired) {
		badRequest(c, err)
		return
	}
	if err != nil {
		h.respondError(c, err, "Could not send the reset email")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "If the account exists, a reset link is on its way"})
}

// ResetPassword sets a new password from a reset link.
// POST /v1/auth/reset-password
func (h *Handlers) ResetPassword(c *gin.Context) {
	var input account.ResetForm
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := input.Check(); err != nil {
		body := gin.H{"error": err.Error()}
		if errors.Is(err, account.ErrInvalidLink) {
			body["redirect"] = "/forgot-password"
		}
		c.JSON(http.StatusBadRequest, body)
		return
	}

	if err := h.Accounts.ResetPassword(c.Request.Context(), input); err != nil {
		h.respondError(c, err, "Password reset failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password reset successfully! You can now log in.", "redirect": "/sign-in"})
}
