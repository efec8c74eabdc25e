package wishlist

import (
	"context"
	"testing"

	"github.com/01moynul/taptosell-storefront/internal/models"
	"github.com/01moynul/taptosell-storefront/internal/session"
	"github.com/01moynul/taptosell-storefront/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAPI struct {
	lines  []models.CartLine
	nextID int64
	calls  int
}

func (f *fakeAPI) Favourites(context.Context) ([]models.CartLine, error) {
	f.calls++
	return append([]models.CartLine(nil), f.lines...), nil
}

func (f *fakeAPI) AddFavourite(_ context.Context, productID int64) error {
	f.calls++
	f.nextID++
	f.lines = append([]models.CartLine{{ID: f.nextID, Product: models.Product{ID: productID}}}, f.lines...)
	return nil
}

func (f *fakeAPI) RemoveFavourite(_ context.Context, productID int64) error {
	f.calls++
	kept := f.lines[:0]
	for _, l := range f.lines {
		if l.Product.ID != productID {
			kept = append(kept, l)
		}
	}
	f.lines = kept
	return nil
}

func newSession(loggedIn bool) *session.Session {
	store := storage.NewMemoryStore(0)
	sess := session.Anonymous("v", store, store)
	if loggedIn {
		sess.User = &models.User{ID: 1, Email: "a@b.c", Role: models.RoleUser}
	}
	return sess
}

func TestGuest(t *testing.T) {
	api := &fakeAPI{}
	svc := NewService(func(*session.Session) API { return api })
	ctx := context.Background()
	guest := newSession(false)

	lines, err := svc.List(ctx, guest)
	require.NoError(t, err)
	assert.Empty(t, lines)

	assert.ErrorIs(t, svc.Add(ctx, guest, 1), ErrLoginRequired)
	_, err = svc.Toggle(ctx, guest, 1)
	assert.ErrorIs(t, err, ErrLoginRequired)
	assert.Zero(t, api.calls)
}

func TestListSortedAndToggle(t *testing.T) {
	api := &fakeAPI{}
	svc := NewService(func(*session.Session) API { return api })
	ctx := context.Background()
	sess := newSession(true)

	require.NoError(t, svc.Add(ctx, sess, 10))
	require.NoError(t, svc.Add(ctx, sess, 20))

	lines, err := svc.List(ctx, sess)
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, int64(1), lines[0].ID)
	assert.Equal(t, int64(2), lines[1].ID)

	saved, err := svc.Toggle(ctx, sess, 10)
	require.NoError(t, err)
	assert.False(t, saved)

	saved, err = svc.Toggle(ctx, sess, 30)
	require.NoError(t, err)
	assert.True(t, saved)

	has, err := svc.Contains(ctx, sess, 20)
	require.NoError(t, err)
	assert.True(t, has)
	has, _ = svc.Contains(ctx, sess, 10)
	assert.False(t, has)
}
