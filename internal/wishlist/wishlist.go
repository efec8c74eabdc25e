// Package wishlist manages a customer's saved products.
package wishlist

import (
	"context"
	"errors"

	"github.com/01moynul/taptosell-storefront/internal/cart"
	"github.com/01moynul/taptosell-storefront/internal/models"
	"github.com/01moynul/taptosell-storefront/internal/session"
)

var ErrLoginRequired = errors.New("wishlist: login required")

type API interface {
	Favourites(ctx context.Context) ([]models.CartLine, error)
	AddFavourite(ctx context.Context, productID int64) error
	RemoveFavourite(ctx context.Context, productID int64) error
}

type Connector func(*session.Session) API

type Service struct {
	connect Connector
}

func NewService(connect Connector) *Service {
	return &Service{connect: connect}
}

func (s *Service) Add(ctx context.Context, sess *session.Session, productID int64) error {
	if !sess.IsAuthenticated() {
		return ErrLoginRequired
	}
	return s.connect(sess).AddFavourite(ctx, productID)
}

// List returns the saved products sorted by entry id. Guests see an empty list.
func (s *Service) List(ctx context.Context, sess *session.Session) ([]models.CartLine, error) {
	if !sess.IsAuthenticated() {
		return []models.CartLine{}, nil
	}
	lines, err := s.connect(sess).Favourites(ctx)
	if err != nil {
		return []models.CartLine{}, err
	}
	if lines == nil {
		lines = []models.CartLine{}
	}
	cart.SortByID(lines)
	return lines, nil
}

func (s *Service) Remove(ctx context.Context, sess *session.Session, productID int64) error {
	if !sess.IsAuthenticated() {
		return ErrLoginRequired
	}
	return s.connect(sess).RemoveFavourite(ctx, productID)
}

func (s *Service) Contains(ctx context.Context, sess *session.Session, productID int64) (bool, error) {
	lines, err := s.List(ctx, sess)
	if err != nil {
		return false, err
	}
	for _, line := range lines {
		if line.Product.ID == productID {
			return true, nil
		}
	}
	return false, nil
}

// Toggle removes the product when it is saved and saves it otherwise. It
// returns whether the product is saved afterwards.
func (s *Service) Toggle(ctx context.Context, sess *session.Session, productID int64) (bool, error) {
	if !sess.IsAuthenticated() {
		return false, ErrLoginRequired
	}
	saved, err := s.Contains(ctx, sess, productID)
	if err != nil {
		return false, err
	}
	if saved {
		if err := s.Remove(ctx, sess, productID); err != nil {
			return true, err
		}
		return false, nil
	}
	if err := s.Add(ctx, sess, productID); err != nil {
		return false, err
	}
	return s.Contains(ctx, sess, productID)
}
