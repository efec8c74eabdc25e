package apiclient

import (
	"context"
	"net/http"

	"github.com/01moynul/taptosell-storefront/internal/models"
)

// RegisterRequest is the /auth/register payload.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Me returns the account the client's credentials belong to.
func (c *Client) Me(ctx context.Context) (*models.User, error) {
	var user models.User
	if _, err := c.do(ctx, http.MethodGet, "/auth/me", nil, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Login exchanges email and password for upstream credentials. The API sets
// its session cookie; some deployments also return a token in the body.
func (c *Client) Login(ctx context.Context, email, password string) (Credentials, error) {
	var body struct {
		AccessToken string `json:"accessToken"`
		Token       string `json:"token"`
	}
	in := map[string]string{"email": email, "password": password}

	resp, err := c.do(ctx, http.MethodPost, "/auth/login", nil, in, &body)
	if err != nil {
		return Credentials{}, err
	}

	creds := Credentials{Token: body.AccessToken}
	if creds.Token == "" {
		creds.Token = body.Token
	}
	for _, ck := range resp.Cookies() {
		if ck.Value == "" || ck.MaxAge < 0 {
			continue
		}
		creds.Cookies = append(creds.Cookies, Cookie{Name: ck.Name, Value: ck.Value})
	}
	return creds, nil
}

func (c *Client) Register(ctx context.Context, in RegisterRequest) error {
	_, err := c.do(ctx, http.MethodPost, "/auth/register", nil, in, nil)
	return err
}

func (c *Client) Logout(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodPost, "/auth/logout", nil, nil, nil)
	return err
}

func (c *Client) VerifyCode(ctx context.Context, email, code string) error {
	in := map[string]string{"email": email, "code": code}
	_, err := c.do(ctx, http.MethodPost, "/auth/verify-code", nil, in, nil)
	return err
}

// RequestVerification asks the API to send a fresh verification code.
func (c *Client) RequestVerification(ctx context.Context, email string) error {
	in := map[string]string{"email": email}
	_, err := c.do(ctx, http.MethodPost, "/auth/request-verification", nil, in, nil)
	return err
}

func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	in := map[string]string{"email": email}
	_, err := c.do(ctx, http.MethodPost, "/auth/forgot-password", nil, in, nil)
	return err
}

func (c *Client) ResetPassword(ctx context.Context, token, newPassword string) error {
	in := map[string]string{"token": token, "newPassword": newPassword}
	_, err := c.do(ctx, http.MethodPost, "/auth/reset-password", nil, in, nil)
	return err
}
