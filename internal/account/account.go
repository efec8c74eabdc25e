// Package account runs the sign-in, registration, email verification and
// password reset flows.
package account

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/01moynul/taptosell-storefront/internal/apiclient"
	"github.com/01moynul/taptosell-storefront/internal/cart"
	"github.com/01moynul/taptosell-storefront/internal/session"
	"github.com/01moynul/taptosell-storefront/internal/storage"
)

// MinPasswordLength applies to password resets.
const MinPasswordLength = 6

// unverifiedMessage is what the API answers when an unverified account logs in.
const unverifiedMessage = "Please verify your email before logging in."

var (
	ErrPasswordMismatch = errors.New("passwords do not match")
	ErrPasswordTooShort = errors.New("password must be at least 6 characters")
	ErrEmailRequired    = errors.New("email is required")
	ErrInvalidLink      = errors.New("reset link is invalid")
	ErrNoPendingEmail   = errors.New("no email awaiting verification")
	ErrVerifyRequired   = errors.New("email verification required")
)

// API is the part of the shop API the account flows use.
type API interface {
	Register(ctx context.Context, in apiclient.RegisterRequest) error
	VerifyCode(ctx context.Context, email, code string) error
	RequestVerification(ctx context.Context, email string) error
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
}

type LoginForm struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RegisterForm struct {
	Username        string `json:"username" binding:"required"`
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required"`
	ConfirmPassword string `json:"confirmPassword" binding:"required"`
}

func (f RegisterForm) Check() error {
	if f.Password != f.ConfirmPassword {
		return ErrPasswordMismatch
	}
	return nil
}

type VerifyForm struct {
	Code string `json:"code" binding:"required"`
}

type ForgotForm struct {
	Email string `json:"email"`
}

type ResetForm struct {
	Token           string `json:"token"`
	Email           string `json:"email"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

// Check runs the reset form rules in the order the page reports them.
func (f ResetForm) Check() error {
	switch {
	case f.Token == "" || f.Email == "":
		return ErrInvalidLink
	case f.NewPassword != f.ConfirmPassword:
		return ErrPasswordMismatch
	case len(f.NewPassword) < MinPasswordLength:
		return ErrPasswordTooShort
	}
	return nil
}

// LoginResult reports what happened around a login.
type LoginResult struct {
	VerifyRequired bool `json:"verifyRequired"`
	MergedItems    int  `json:"mergedItems"`
}

type Service struct {
	api      API
	sessions *session.Manager
}

func NewService(api API, sessions *session.Manager) *Service {
	return &Service{api: api, sessions: sessions}
}

// Login signs the visitor in and moves their guest cart to the account.
// A failed merge keeps the guest cart and does not fail the login.
func (s *Service) Login(ctx context.Context, sess *session.Session, form LoginForm) (LoginResult, error) {
	var result LoginResult

	// 1. --- Authenticate ---
	if err := s.sessions.Login(ctx, sess, form.Email, form.Password); err != nil {
		if strings.Contains(apiclient.Message(err, ""), unverifiedMessage) {
			s.rememberEmail(ctx, sess, form.Email)
			result.VerifyRequired = true
			return result, ErrVerifyRequired
		}
		return result, err
	}

	// 2. --- Merge the guest cart ---
	merged, err := cart.MergeGuest(ctx, cart.NewGuestCart(sess.Local), s.sessions.Client(sess))
	if err != nil {
		log.Printf("account: cart merge for %s failed: %v", sess.VisitorID, err)
	}
	result.MergedItems = merged

	// 3. --- Remember the email ---
	s.rememberEmail(ctx, sess, form.Email)
	return result, nil
}

func (s *Service) Logout(ctx context.Context, sess *session.Session) {
	s.sessions.Logout(ctx, sess)
}

// Register creates the account and remembers the email for verification.
func (s *Service) Register(ctx context.Context, sess *session.Session, form RegisterForm) error {
	if err := form.Check(); err != nil {
		return err
	}
	err := s.api.Register(ctx, apiclient.RegisterRequest{
		Username: strings.TrimSpace(form.Username),
		Email:    strings.TrimSpace(form.Email),
		Password: form.Password,
	})
	if err != nil {
		return err
	}
	s.rememberEmail(ctx, sess, strings.TrimSpace(form.Email))
	return nil
}

// PendingEmail is the address waiting for a verification code.
func (s *Service) PendingEmail(ctx context.Context, sess *session.Session) (string, error) {
	email, ok, err := sess.Local.Get(ctx, storage.UserEmailKey)
	if err != nil {
		return "", err
	}
	if !ok || email == "" {
		return "", ErrNoPendingEmail
	}
	return email, nil
}

func (s *Service) Verify(ctx context.Context, sess *session.Session, code string) error {
	email, err := s.PendingEmail(ctx, sess)
	if err != nil {
		return err
	}
	return s.api.VerifyCode(ctx, email, strings.TrimSpace(code))
}

func (s *Service) ResendCode(ctx context.Context, sess *session.Session) error {
	email, err := s.PendingEmail(ctx, sess)
	if err != nil {
		return err
	}
	return s.api.RequestVerification(ctx, email)
}

func (s *Service) ForgotPassword(ctx context.Context, form ForgotForm) error {
	email := strings.TrimSpace(form.Email)
	if email == "" {
		return ErrEmailRequired
	}
	return s.api.ForgotPassword(ctx, email)
}

// ResetPassword sends the reset. The API expects the email folded into the
// token field as "<token>&email=<email>".
func (s *Service) ResetPassword(ctx context.Context, form ResetForm) error {
	if err := form.Check(); err != nil {
		return err
	}
	return s.api.ResetPassword(ctx, form.Token+"&email="+form.Email, form.NewPassword)
}

func (s *Service) rememberEmail(ctx context.Context, sess *session.Session, email string) {
	if err := sess.Local.Set(ctx, storage.UserEmailKey, email); err != nil {
		log.Printf("account: store email for %s: %v", sess.VisitorID, err)
	}
}
