package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/01moynul/taptosell-storefront/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL+"/", 5*time.Second)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestLogin_CapturesCookiesAndToken(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/auth/login", r.URL.Path)

		var in map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		assert.Equal(t, "ana@example.com", in["email"])
		assert.Equal(t, "hunter22", in["password"])

		http.SetCookie(w, &http.Cookie{Name: "access_token", Value: "cookie-value"})
		http.SetCookie(w, &http.Cookie{Name: "stale", Value: "", MaxAge: -1})
		writeJSON(w, http.StatusOK, map[string]string{"accessToken": "jwt-value"})
	})

	creds, err := client.Login(context.Background(), "ana@example.com", "hunter22")
	require.NoError(t, err)

	assert.Equal(t, "jwt-value", creds.Token)
	assert.Equal(t, []Cookie{{Name: "access_token", Value: "cookie-value"}}, creds.Cookies)
	assert.False(t, creds.Empty())
}

func TestWithCredentials_SendsTokenAndCookies(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer abc", r.Header.Get("Authorization"))
		ck, err := r.Cookie("access_token")
		require.NoError(t, err)
		assert.Equal(t, "xyz", ck.Value)
		writeJSON(w, http.StatusOK, models.User{ID: 7, Email: "a@b.c", Role: "user", Username: "ana"})
	})

	authed := client.WithCredentials(Credentials{Token: "abc", Cookies: []Cookie{{Name: "access_token", Value: "xyz"}}})
	user, err := authed.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(7), user.ID)
	assert.Equal(t, "ana", user.Username)

	// The base client is untouched.
	assert.True(t, client.Credentials().Empty())
}

func TestAPIError_MessageShapes(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		message string
	}{
		{"string message", `{"message":"Please verify your email before logging in."}`, "Please verify your email before logging in."},
		{"array message", `{"message":["name should not be empty","price must be a number"]}`, "name should not be empty; price must be a number"},
		{"error field", `{"error":"Bad Request"}`, "Bad Request"},
		{"not json", `upstream exploded`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadRequest)
				_, _ = io.WriteString(w, tt.body)
			})

			err := client.Logout(context.Background())
			require.Error(t, err)

			var apiErr *APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, http.StatusBadRequest, apiErr.Status)
			assert.Equal(t, tt.message, apiErr.Message)
			assert.Equal(t, http.StatusBadRequest, StatusCode(err))
		})
	}
}

func TestMessage_Fallback(t *testing.T) {
	assert.Equal(t, "server said no", Message(&APIError{Status: 409, Message: "server said no"}, "generic"))
	assert.Equal(t, "generic", Message(&APIError{Status: 500}, "generic"))
	assert.Equal(t, "generic", Message(errors.New("dial tcp: refused"), "generic"))
	assert.Equal(t, "generic", Message(fmt.Errorf("wrapped: %w", errors.New("x")), "generic"))
}

func TestIsUnauthorized(t *testing.T) {
	assert.True(t, IsUnauthorized(&APIError{Status: http.StatusUnauthorized}))
	assert.True(t, IsUnauthorized(fmt.Errorf("me: %w", &APIError{Status: http.StatusForbidden})))
	assert.False(t, IsUnauthorized(&APIError{Status: http.StatusInternalServerError}))
	assert.False(t, IsUnauthorized(errors.New("timeout")))
}

func TestInvalidResponsesAreRejected(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/categories":
			writeJSON(w, http.StatusOK, []map[string]any{{"id": 1, "name": ""}})
		default:
			_, _ = io.WriteString(w, `{"id": "not-a-number"}`)
		}
	})

	_, err := client.Categories(context.Background())
	assert.ErrorIs(t, err, ErrInvalidResponse)

	_, err = client.Product(context.Background(), 3)
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestFeaturedProducts_QueryOmitsZeroFilters(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "2", q.Get("page"))
		assert.Equal(t, "8", q.Get("limit"))
		assert.Equal(t, "DESC", q.Get("sortOrder"))
		assert.Equal(t, "99.5", q.Get("maxPrice"))
		assert.False(t, q.Has("minPrice"))
		assert.False(t, q.Has("sortBy"))

		writeJSON(w, http.StatusOK, ProductPage{
			Data:       []models.Product{{ID: 1, Name: "Lamp", Price: 40}},
			Page:       2,
			TotalPages: 3,
		})
	})

	page, err := client.FeaturedProducts(context.Background(), models.ProductQuery{Page: 2, Limit: 8, SortOrder: "DESC", MaxPrice: 99.5})
	require.NoError(t, err)
	require.Len(t, page.Data, 1)
	assert.Equal(t, 3, page.TotalPages)
}

func TestCartEndpoints(t *testing.T) {
	var calls []string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, r.Method+" "+r.URL.Path)
		switch r.URL.Path {
		case "/cart/merge":
			var items []models.CartItemInput
			require.NoError(t, json.NewDecoder(r.Body).Decode(&items))
			assert.Equal(t, []models.CartItemInput{{ProductID: 4, Quantity: 2}}, items)
		case "/cart/item/9":
			if r.Method == http.MethodPatch {
				var in map[string]int
				require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
				assert.Equal(t, 3, in["quantity"])
			}
		}
		w.WriteHeader(http.StatusOK)
	})
	ctx := context.Background()

	require.NoError(t, client.AddCartItem(ctx, models.CartItemInput{ProductID: 4, Quantity: 1}))
	require.NoError(t, client.UpdateCartItem(ctx, 9, 3))
	require.NoError(t, client.DeleteCartItem(ctx, 9))
	require.NoError(t, client.MergeCart(ctx, []models.CartItemInput{{ProductID: 4, Quantity: 2}}))
	require.NoError(t, client.ClearCart(ctx))

	assert.Equal(t, []string{
		"POST /cart",
		"PATCH /cart/item/9",
		"DELETE /cart/item/9",
		"POST /cart/merge",
		"DELETE /cart/all",
	}, calls)
}

func TestCreateProduct_SendsMultipart(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/products", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))

		assert.Equal(t, "Desk", r.FormValue("name"))
		assert.Equal(t, "1250.5", r.FormValue("price"))
		assert.Equal(t, "4", r.FormValue("stock"))
		assert.Equal(t, "2", r.FormValue("categoryId"))

		files := r.MultipartForm.File["images"]
		require.Len(t, files, 1)
		assert.Equal(t, "desk.png", files[0].Filename)
		w.WriteHeader(http.StatusCreated)
	})

	err := client.CreateProduct(context.Background(),
		ProductInput{Name: "Desk", Price: 1250.5, Stock: 4, CategoryID: 2},
		[]File{{Name: "desk.png", ContentType: "image/png", Data: []byte("png")}})
	require.NoError(t, err)
}

func TestUpdateProductImages_SendsRemovals(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPatch, r.Method)
		require.Equal(t, "/products/5/images", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, []string{"img-a", "img-b"}, r.MultipartForm.Value["remove"])
		w.WriteHeader(http.StatusOK)
	})

	require.NoError(t, client.UpdateProductImages(context.Background(), 5, nil, []string{"img-a", "img-b"}))
}

func TestOrders_AdminListing(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "3", r.URL.Query().Get("page"))
		assert.Equal(t, "10", r.URL.Query().Get("limit"))
		writeJSON(w, http.StatusOK, models.OrderPage{
			Data: []models.Order{{ID: 1, Status: models.StatusPending, Currency: "EGP", Items: []models.OrderItem{{Name: "Mug", AmountCents: 500, Quantity: 1}}}},
			Meta: models.PageMeta{TotalPages: 4},
		})
	})

	page, err := client.Orders(context.Background(), 3, 10)
	require.NoError(t, err)
	assert.Equal(t, 4, page.Meta.TotalPages)
	assert.Equal(t, models.StatusPending, page.Data[0].Status)
}
