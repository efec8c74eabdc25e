package account

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/01moynul/taptosell-storefront/internal/apiclient"
	"github.com/01moynul/taptosell-storefront/internal/cart"
	"github.com/01moynul/taptosell-storefront/internal/models"
	"github.com/01moynul/taptosell-storefront/internal/session"
	"github.com/01moynul/taptosell-storefront/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type upstream struct {
	unverified bool
	mergeFails bool
	merged     []models.CartItemInput
	bodies     map[string]map[string]string
}

func (u *upstream) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if u.bodies == nil {
		u.bodies = map[string]map[string]string{}
	}
	raw, _ := io.ReadAll(r.Body)

	switch r.URL.Path {
	case "/auth/login":
		if u.unverified {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"message":"Please verify your email before logging in."}`))
			return
		}
		http.SetCookie(w, &http.Cookie{Name: "access_token", Value: "ok"})
	case "/auth/me":
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(models.User{ID: 1, Email: "mona@example.com", Role: models.RoleUser})
		return
	case "/cart/merge":
		if u.mergeFails {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_ = json.Unmarshal(raw, &u.merged)
	default:
		body := map[string]string{}
		_ = json.Unmarshal(raw, &body)
		u.bodies[r.URL.Path] = body
	}
	w.WriteHeader(http.StatusOK)
}

func setup(t *testing.T, up *upstream) (*Service, *session.Session) {
	t.Helper()
	srv := httptest.NewServer(up)
	t.Cleanup(srv.Close)

	api := apiclient.New(srv.URL, 5*time.Second)
	local := storage.NewMemoryStore(0)
	scoped := storage.NewMemoryStore(time.Hour)
	manager := session.NewManager(api, local, scoped)
	return NewService(api, manager), manager.Load(context.Background(), "v1")
}

func addGuestItem(t *testing.T, sess *session.Session) {
	t.Helper()
	g := cart.NewGuestCart(sess.Local)
	require.NoError(t, g.Add(context.Background(),
		models.CartItemInput{ProductID: 8, Quantity: 2},
		models.CartLine{Product: models.Product{ID: 8, Name: "Lamp"}}))
}

func TestLogin_MergesGuestCart(t *testing.T) {
	up := &upstream{}
	svc, sess := setup(t, up)
	ctx := context.Background()
	addGuestItem(t, sess)

	res, err := svc.Login(ctx, sess, LoginForm{Email: "mona@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, 1, res.MergedItems)
	assert.True(t, sess.IsAuthenticated())
	assert.Equal(t, []models.CartItemInput{{ProductID: 8, Quantity: 2}}, up.merged)

	_, ok, _ := sess.Local.Get(ctx, storage.GuestCartKey)
	assert.False(t, ok)
	email, _, _ := sess.Local.Get(ctx, storage.UserEmailKey)
	assert.Equal(t, "mona@example.com", email)
}

func TestLogin_MergeFailureKeepsGuestCart(t *testing.T) {
	up := &upstream{mergeFails: true}
	svc, sess := setup(t, up)
	ctx := context.Background()
	addGuestItem(t, sess)

	res, err := svc.Login(ctx, sess, LoginForm{Email: "mona@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Zero(t, res.MergedItems)

	_, ok, _ := sess.Local.Get(ctx, storage.GuestCartKey)
	assert.True(t, ok)
}

func TestLogin_UnverifiedAccount(t *testing.T) {
	up := &upstream{unverified: true}
	svc, sess := setup(t, up)
	ctx := context.Background()

	res, err := svc.Login(ctx, sess, LoginForm{Email: "mona@example.com", Password: "secret1"})
	assert.ErrorIs(t, err, ErrVerifyRequired)
	assert.True(t, res.VerifyRequired)
	assert.False(t, sess.IsAuthenticated())

	email, err := svc.PendingEmail(ctx, sess)
	require.NoError(t, err)
	assert.Equal(t, "mona@example.com", email)
}

func TestRegister(t *testing.T) {
	up := &upstream{}
	svc, sess := setup(t, up)
	ctx := context.Background()

	err := svc.Register(ctx, sess, RegisterForm{Username: "mona", Email: "mona@example.com", Password: "a", ConfirmPassword: "b"})
	assert.ErrorIs(t, err, ErrPasswordMismatch)
	assert.NotContains(t, up.bodies, "/auth/register")

	require.NoError(t, svc.Register(ctx, sess, RegisterForm{Username: " mona ", Email: "mona@example.com", Password: "pw", ConfirmPassword: "pw"}))
	assert.Equal(t, "mona", up.bodies["/auth/register"]["username"])

	email, err := svc.PendingEmail(ctx, sess)
	require.NoError(t, err)
	assert.Equal(t, "mona@example.com", email)
}

func TestVerifyAndResend(t *testing.T) {
	up := &upstream{}
	svc, sess := setup(t, up)
	ctx := context.Background()

	assert.ErrorIs(t, svc.Verify(ctx, sess, "1234"), ErrNoPendingEmail)
	assert.ErrorIs(t, svc.ResendCode(ctx, sess), ErrNoPendingEmail)

	require.NoError(t, sess.Local.Set(ctx, storage.UserEmailKey, "mona@example.com"))
	require.NoError(t, svc.Verify(ctx, sess, " 1234 "))
	assert.Equal(t, map[string]string{"email": "mona@example.com", "code": "1234"}, up.bodies["/auth/verify-code"])

	require.NoError(t, svc.ResendCode(ctx, sess))
	assert.Equal(t, "mona@example.com", up.bodies["/auth/request-verification"]["email"])
}

func TestForgotPassword(t *testing.T) {
	up := &upstream{}
	svc, _ := setup(t, up)

	assert.ErrorIs(t, svc.ForgotPassword(context.Background(), ForgotForm{Email: "  "}), ErrEmailRequired)
	require.NoError(t, svc.ForgotPassword(context.Background(), ForgotForm{Email: "mona@example.com"}))
	assert.Equal(t, "mona@example.com", up.bodies["/auth/forgot-password"]["email"])
}

func TestResetPassword(t *testing.T) {
	tests := []struct {
		name string
		form ResetForm
		err  error
	}{
		{"missing token", ResetForm{Email: "m@x.io", NewPassword: "secret1", ConfirmPassword: "secret1"}, ErrInvalidLink},
		{"missing email", ResetForm{Token: "t", NewPassword: "secret1", ConfirmPassword: "secret1"}, ErrInvalidLink},
		{"mismatch", ResetForm{Token: "t", Email: "m@x.io", NewPassword: "secret1", ConfirmPassword: "secret2"}, ErrPasswordMismatch},
		{"too short", ResetForm{Token: "t", Email: "m@x.io", NewPassword: "abc", ConfirmPassword: "abc"}, ErrPasswordTooShort},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.form.Check(), tt.err)
		})
	}

	up := &upstream{}
	svc, _ := setup(t, up)
	require.NoError(t, svc.ResetPassword(context.Background(), ResetForm{Token: "tok", Email: "m@x.io", NewPassword: "secret1", ConfirmPassword: "secret1"}))
	assert.Equal(t, map[string]string{"token": "tok&email=m@x.io", "newPassword": "secret1"}, up.bodies["/auth/reset-password"])
}
