package service

import (
	"errors"
	"sort"
	"strings"
)

var (
	// ErrEmptyCart is returned when checkout is attempted with no lines.
	ErrEmptyCart = errors.New("cart is empty")

	// ErrCheckoutInProgress is returned while a payment round trip of the
	// same session is still running.
	ErrCheckoutInProgress = errors.New("checkout already in progress")

	// ErrNotOnCheckout is returned when the session is not on the checkout
	// screen at submit time.
	ErrNotOnCheckout = errors.New("checkout screen is not open")
)

// ValidationError lists the customer fields that failed validation,
// keyed by their JSON name.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = name + ": " + e.Fields[name]
	}
	return "invalid customer details: " + strings.Join(parts, "; ")
}
