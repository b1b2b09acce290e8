package models

import (
	"fmt"
	"strings"
	"time"
)

// CatalogItem is a purchasable menu item. Price is the display string the
// menu was authored with; UnitPrice is derived from it by Priced.
type CatalogItem struct {
	ID          int    `db:"id" json:"id"`
	Name        string `db:"name" json:"name"`
	Description string `db:"description" json:"description"`
	Price       string `db:"price" json:"price"`
	Image       string `db:"image" json:"image"`
	Category    string `db:"category" json:"category"`
	UnitPrice   Money  `db:"-" json:"-"`
}

// Priced returns a copy of the item with UnitPrice derived from Price.
func (i CatalogItem) Priced() CatalogItem {
	i.UnitPrice = ParsePrice(i.Price)
	return i
}

// CartLine is one catalog item with its quantity. The JSON form is the
// durable storage format: {id, name, description, price, image, category, quantity}.
type CartLine struct {
	CatalogItem
	Quantity int `json:"quantity"`
}

// LineTotal returns unit price times quantity.
func (l CartLine) LineTotal() Money {
	return l.UnitPrice.Times(l.Quantity)
}

// CopyLines returns an independent copy of lines.
func CopyLines(lines []CartLine) []CartLine {
	out := make([]CartLine, len(lines))
	copy(out, lines)
	return out
}

// LinesTotal sums the line totals.
func LinesTotal(lines []CartLine) Money {
	var total Money
	for _, l := range lines {
		total += l.LineTotal()
	}
	return total
}

// CustomerDetails is entered by the visitor during checkout.
type CustomerDetails struct {
	Name       string `json:"name" validate:"required"`
	Phone      string `json:"phone" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	PickupDate string `json:"pickup_date" validate:"required,pickup_date"`
	PickupTime string `json:"pickup_time" validate:"required,pickup_time"`
}

// Trimmed returns the details with surrounding whitespace removed.
func (d CustomerDetails) Trimmed() CustomerDetails {
	return CustomerDetails{
		Name:       strings.TrimSpace(d.Name),
		Phone:      strings.TrimSpace(d.Phone),
		Email:      strings.TrimSpace(d.Email),
		PickupDate: strings.TrimSpace(d.PickupDate),
		PickupTime: strings.TrimSpace(d.PickupTime),
	}
}

// PaymentMethod is the option picked on the checkout screen.
type PaymentMethod string

const (
	PaymentMethodFPX  PaymentMethod = "FPX"
	PaymentMethodCash PaymentMethod = "Cash"
)

// ParsePaymentMethod accepts an empty value as FPX, the checkout default.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch {
	case s == "" || strings.EqualFold(s, string(PaymentMethodFPX)):
		return PaymentMethodFPX, nil
	case strings.EqualFold(s, string(PaymentMethodCash)):
		return PaymentMethodCash, nil
	default:
		return "", fmt.Errorf("unknown payment method %q", s)
	}
}

// Order is created once per successful checkout and never changed after.
type Order struct {
	ID            string          `json:"id"`
	Items         []CartLine      `json:"items"`
	Total         Money           `json:"total"`
	Customer      CustomerDetails `json:"customer"`
	PaymentMethod PaymentMethod   `json:"payment_method"`
	Timestamp     time.Time       `json:"timestamp"`
}

// Clone returns a copy that shares no slices with o.
func (o Order) Clone() Order {
	o.Items = CopyLines(o.Items)
	return o
}
