// Package order builds, places and tracks orders.
package order

import (
	"errors"
	"fmt"
	"strings"

	"github.com/01moynul/taptosell-storefront/internal/models"
)

var (
	ErrInvalidStatus = errors.New("order: invalid status")
	ErrTransition    = errors.New("order: status change not allowed")
)

// forward is the normal lifecycle, one step at a time.
var forward = map[models.OrderStatus]models.OrderStatus{
	models.StatusPending:   models.StatusConfirmed,
	models.StatusConfirmed: models.StatusShipped,
	models.StatusShipped:   models.StatusDelivered,
}

var colors = map[models.OrderStatus]string{
	models.StatusPending:   "yellow",
	models.StatusConfirmed: "blue",
	models.StatusShipped:   "purple",
	models.StatusDelivered: "green",
	models.StatusCanceled:  "red",
}

// Statuses lists every status in lifecycle order.
var Statuses = []models.OrderStatus{
	models.StatusPending,
	models.StatusConfirmed,
	models.StatusShipped,
	models.StatusDelivered,
	models.StatusCanceled,
}

func Valid(s models.OrderStatus) bool {
	_, ok := colors[s]
	return ok
}

// ParseStatus accepts a status name in any case.
func ParseStatus(s string) (models.OrderStatus, error) {
	status := models.OrderStatus(strings.ToUpper(strings.TrimSpace(s)))
	if !Valid(status) {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
	return status, nil
}

// Cancellable reports whether a customer may still cancel the order.
func Cancellable(s models.OrderStatus) bool {
	return s == models.StatusPending || s == models.StatusConfirmed
}

// ColorBucket is the badge color for a status; unknown statuses are gray.
func ColorBucket(s models.OrderStatus) string {
	if c, ok := colors[s]; ok {
		return c
	}
	return "gray"
}

// CustomerTransition allows one step forward, or a cancel while the order
// has not shipped.
func CustomerTransition(from, to models.OrderStatus) error {
	if !Valid(to) {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, to)
	}
	if to == models.StatusCanceled {
		if Cancellable(from) {
			return nil
		}
		return fmt.Errorf("%w: %s orders cannot be canceled", ErrTransition, from)
	}
	if next, ok := forward[from]; ok && next == to {
		return nil
	}
	return fmt.Errorf("%w: %s to %s", ErrTransition, from, to)
}

// AdminTransition lets an administrator set any valid status, skipping steps
// or reopening an order.
func AdminTransition(_, to models.OrderStatus) error {
	if !Valid(to) {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, to)
	}
	return nil
}
