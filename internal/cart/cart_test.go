package cart

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/01moynul/taptosell-storefront/internal/models"
	"github.com/01moynul/taptosell-storefront/internal/session"
	"github.com/01moynul/taptosell-storefront/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeServer struct {
	cart      models.Cart
	merged    [][]models.CartItemInput
	mergeErr  error
	added     []models.CartItemInput
	deleted   []int64
	cleared   int
	updatedID int64
	updatedQ  int
}

func (f *fakeServer) Cart(context.Context) (*models.Cart, error) {
	c := f.cart
	c.Items = append([]models.CartLine(nil), f.cart.Items...)
	return &c, nil
}

func (f *fakeServer) AddCartItem(_ context.Context, item models.CartItemInput) error {
	f.added = append(f.added, item)
	return nil
}

func (f *fakeServer) UpdateCartItem(_ context.Context, id int64, q int) error {
	f.updatedID, f.updatedQ = id, q
	return nil
}

func (f *fakeServer) DeleteCartItem(_ context.Context, id int64) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeServer) MergeCart(_ context.Context, items []models.CartItemInput) error {
	f.merged = append(f.merged, items)
	return f.mergeErr
}

func (f *fakeServer) ClearCart(context.Context) error {
	f.cleared++
	return nil
}

type brokenStore struct{ storage.Store }

func (brokenStore) Set(context.Context, string, string, string) error {
	return errors.New("disk full")
}

func product(id int64, stock int) models.Product {
	return models.Product{ID: id, Name: "Product", Price: 10, Stock: stock}
}

func newGuest(t *testing.T) (*GuestCart, *storage.Bucket) {
	t.Helper()
	bucket := storage.NewBucket(storage.NewMemoryStore(0), "visitor")
	return NewGuestCart(bucket), bucket
}

func TestGuestCart_AddSameProductAccumulates(t *testing.T) {
	g, _ := newGuest(t)
	ctx := context.Background()

	require.NoError(t, g.Add(ctx, models.CartItemInput{ProductID: 1, Quantity: 2}, models.CartLine{Product: product(1, 9), Quantity: 2}))
	require.NoError(t, g.Add(ctx, models.CartItemInput{ProductID: 1, Quantity: 3}, models.CartLine{Product: product(1, 9), Quantity: 3}))

	c, err := g.Get(ctx)
	require.NoError(t, err)
	require.Len(t, c.Items, 1)
	assert.Equal(t, 5, c.Items[0].Quantity)
}

func TestGuestCart_DistinctProductsGetDistinctIDs(t *testing.T) {
	g, _ := newGuest(t)
	fixed := time.UnixMilli(1_700_000_000_000)
	g.now = func() time.Time { return fixed }
	ctx := context.Background()

	require.NoError(t, g.Add(ctx, models.CartItemInput{ProductID: 1, Quantity: 1}, models.CartLine{Product: product(1, 5)}))
	require.NoError(t, g.Add(ctx, models.CartItemInput{ProductID: 2, Quantity: 1}, models.CartLine{Product: product(2, 5)}))

	c, err := g.Get(ctx)
	require.NoError(t, err)
	require.Len(t, c.Items, 2)
	assert.Equal(t, fixed.UnixMilli(), c.Items[0].ID)
	assert.Equal(t, fixed.UnixMilli()+1, c.Items[1].ID)
	assert.Equal(t, 1, c.Items[1].Quantity)
}

func TestGuestCart_RemoveUnknownIsNoop(t *testing.T) {
	g, _ := newGuest(t)
	ctx := context.Background()
	require.NoError(t, g.Add(ctx, models.CartItemInput{ProductID: 1, Quantity: 1}, models.CartLine{ID: 10, Product: product(1, 5), Quantity: 1}))

	require.NoError(t, g.Remove(ctx, 999))
	c, _ := g.Get(ctx)
	assert.Len(t, c.Items, 1)

	require.NoError(t, g.Remove(ctx, 10))
	c, _ = g.Get(ctx)
	assert.Empty(t, c.Items)
}

func TestGuestCart_UpdateQuantityIsNotClamped(t *testing.T) {
	g, _ := newGuest(t)
	ctx := context.Background()
	require.NoError(t, g.Add(ctx, models.CartItemInput{ProductID: 1, Quantity: 1}, models.CartLine{ID: 10, Product: product(1, 2), Quantity: 1}))

	require.NoError(t, g.UpdateQuantity(ctx, 10, 7))
	c, _ := g.Get(ctx)
	assert.Equal(t, 7, c.Items[0].Quantity)
	assert.False(t, CanIncrement(c.Items[0]))
}

func TestGuestCart_MalformedStorageReadsEmpty(t *testing.T) {
	g, bucket := newGuest(t)
	ctx := context.Background()
	require.NoError(t, bucket.Set(ctx, storage.GuestCartKey, "{not json"))

	c, err := g.Get(ctx)
	require.NoError(t, err)
	assert.NotNil(t, c.Items)
	assert.Empty(t, c.Items)
}

func TestGuestCart_MalformedStorageRejectsWrites(t *testing.T) {
	g, bucket := newGuest(t)
	ctx := context.Background()
	require.NoError(t, bucket.Set(ctx, storage.GuestCartKey, "{not json"))

	err := g.Add(ctx, models.CartItemInput{ProductID: 1, Quantity: 1}, models.CartLine{Product: product(1, 1)})
	assert.ErrorIs(t, err, ErrStorage)
	assert.ErrorIs(t, g.Remove(ctx, 1), ErrStorage)
	assert.ErrorIs(t, g.UpdateQuantity(ctx, 1, 2), ErrStorage)

	raw, ok, err := bucket.Get(ctx, storage.GuestCartKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "{not json", raw)
}

func TestGuestCart_NoMatchWritesNothing(t *testing.T) {
	g, bucket := newGuest(t)
	ctx := context.Background()

	require.NoError(t, g.Remove(ctx, 42))
	require.NoError(t, g.UpdateQuantity(ctx, 42, 3))

	_, ok, err := bucket.Get(ctx, storage.GuestCartKey)
	require.NoError(t, err)
	assert.False(t, ok, "no guestCart key should be created")
}

func TestGuestCart_WriteFailureIsStorageError(t *testing.T) {
	bucket := storage.NewBucket(brokenStore{storage.NewMemoryStore(0)}, "visitor")
	g := NewGuestCart(bucket)

	err := g.Add(context.Background(), models.CartItemInput{ProductID: 1, Quantity: 1}, models.CartLine{Product: product(1, 1)})
	assert.ErrorIs(t, err, ErrStorage)
}

func TestGuestCart_Clear(t *testing.T) {
	g, bucket := newGuest(t)
	ctx := context.Background()
	require.NoError(t, g.Add(ctx, models.CartItemInput{ProductID: 1, Quantity: 1}, models.CartLine{Product: product(1, 1)}))

	require.NoError(t, g.Clear(ctx))
	_, ok, err := bucket.Get(ctx, storage.GuestCartKey)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMergeGuest_ClearsOnlyOnSuccess(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		g, bucket := newGuest(t)
		require.NoError(t, g.Add(ctx, models.CartItemInput{ProductID: 4, Quantity: 2}, models.CartLine{Product: product(4, 9)}))
		require.NoError(t, g.Add(ctx, models.CartItemInput{ProductID: 5, Quantity: 1}, models.CartLine{Product: product(5, 9)}))
		server := &fakeServer{}

		n, err := MergeGuest(ctx, g, server)
		require.NoError(t, err)
		assert.Equal(t, 2, n)
		require.Len(t, server.merged, 1)
		assert.Equal(t, []models.CartItemInput{{ProductID: 4, Quantity: 2}, {ProductID: 5, Quantity: 1}}, server.merged[0])

		_, ok, _ := bucket.Get(ctx, storage.GuestCartKey)
		assert.False(t, ok)
	})

	t.Run("failure keeps guest cart", func(t *testing.T) {
		g, _ := newGuest(t)
		require.NoError(t, g.Add(ctx, models.CartItemInput{ProductID: 4, Quantity: 2}, models.CartLine{Product: product(4, 9)}))
		server := &fakeServer{mergeErr: errors.New("upstream down")}

		_, err := MergeGuest(ctx, g, server)
		require.Error(t, err)

		c, _ := g.Get(ctx)
		require.Len(t, c.Items, 1)
		assert.Equal(t, 2, c.Items[0].Quantity)
	})

	t.Run("empty guest cart makes no call", func(t *testing.T) {
		g, _ := newGuest(t)
		server := &fakeServer{}

		n, err := MergeGuest(ctx, g, server)
		require.NoError(t, err)
		assert.Zero(t, n)
		assert.Empty(t, server.merged)
	})
}

func TestServerCart_DelegatesAndSorts(t *testing.T) {
	ctx := context.Background()
	server := &fakeServer{cart: models.Cart{Items: []models.CartLine{
		{ID: 9, Product: product(2, 1), Quantity: 1},
		{ID: 3, Product: product(1, 1), Quantity: 1},
	}}}
	s := NewServerCart(server)

	c, err := s.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), c.Items[0].ID)
	assert.Equal(t, int64(9), c.Items[1].ID)

	require.NoError(t, s.Add(ctx, models.CartItemInput{ProductID: 1, Quantity: 2}, models.CartLine{}))
	require.NoError(t, s.UpdateQuantity(ctx, 3, 4))
	require.NoError(t, s.Remove(ctx, 9))
	require.NoError(t, s.Clear(ctx))

	assert.Equal(t, []models.CartItemInput{{ProductID: 1, Quantity: 2}}, server.added)
	assert.Equal(t, int64(3), server.updatedID)
	assert.Equal(t, 4, server.updatedQ)
	assert.Equal(t, []int64{9}, server.deleted)
	assert.Equal(t, 1, server.cleared)
}

func TestFor_SelectsByLoginState(t *testing.T) {
	store := storage.NewMemoryStore(0)
	sess := session.Anonymous("v", store, store)

	_, isGuest := For(sess, &fakeServer{}).(*GuestCart)
	assert.True(t, isGuest)

	sess.User = &models.User{ID: 1, Email: "a@b.c", Role: models.RoleUser}
	_, isServer := For(sess, &fakeServer{}).(*ServerCart)
	assert.True(t, isServer)
}

func TestLineHelpers(t *testing.T) {
	line := models.CartLine{Product: product(1, 3), Quantity: 3}
	assert.False(t, CanIncrement(line))
	assert.True(t, CanDecrement(line))

	line.Quantity = 0
	assert.True(t, CanIncrement(line))
	assert.False(t, CanDecrement(line))

	now := time.UnixMilli(100)
	assert.Equal(t, int64(100), NewLineID(nil, now))
	assert.Equal(t, int64(501), NewLineID([]models.CartLine{{ID: 500}, {ID: 20}}, now))
}
