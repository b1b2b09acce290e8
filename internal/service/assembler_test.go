package service

import (
	"regexp"
	"testing"
	"time"

	"bakery-storefront/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedIDs struct{ id string }

func (f fixedIDs) NextID() string { return f.id }

func line(id int, name, price string, qty int) models.CartLine {
	return models.CartLine{
		CatalogItem: models.CatalogItem{ID: id, Name: name, Price: price}.Priced(),
		Quantity:    qty,
	}
}

func TestSubmitBuildsOrder(t *testing.T) {
	a := NewAssembler(fixedIDs{id: "ORD-000042"})
	a.now = func() time.Time {
		return time.Date(2026, 3, 14, 18, 30, 5, 123456789, time.FixedZone("MYT", 8*3600))
	}

	snapshot := []models.CartLine{
		line(1, "Signature Choc Lava", "RM 15.00", 2),
		line(2, "Classic Cheese Leleh", "RM 25.00", 1),
	}
	details := models.CustomerDetails{Name: "Aisyah", Phone: "0123456789", Email: "aisyah@example.com", PickupDate: "2026-03-15", PickupTime: "11:00"}

	order := a.Submit(snapshot, details, models.PaymentMethodFPX)

	assert.Equal(t, "ORD-000042", order.ID)
	assert.Equal(t, models.Money(5500), order.Total)
	assert.Equal(t, "RM 55.00", order.Total.String())
	assert.Equal(t, details, order.Customer)
	assert.Equal(t, models.PaymentMethodFPX, order.PaymentMethod)
	assert.Equal(t, time.UTC, order.Timestamp.Location())
	assert.Equal(t, time.Date(2026, 3, 14, 10, 30, 5, 123000000, time.UTC), order.Timestamp)
	require.Len(t, order.Items, 2)

	snapshot[0].Quantity = 10
	snapshot[1].Name = "changed"
	assert.Equal(t, 2, order.Items[0].Quantity)
	assert.Equal(t, "Classic Cheese Leleh", order.Items[1].Name)
}

func TestSubmitEmptySnapshot(t *testing.T) {
	order := NewAssembler(NewSequenceIDGenerator()).Submit(nil, models.CustomerDetails{}, models.PaymentMethodCash)
	assert.Empty(t, order.Items)
	assert.Equal(t, models.Money(0), order.Total)
}

func TestSequenceIDGenerator(t *testing.T) {
	pattern := regexp.MustCompile(`^ORD-\d{6}$`)
	g := NewSequenceIDGenerator()

	seen := make(map[string]bool)
	for i := 0; i < 5000; i++ {
		id := g.NextID()
		require.Regexp(t, pattern, id)
		require.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestSequenceIDGeneratorWraps(t *testing.T) {
	g := &SequenceIDGenerator{next: orderIDSpace - 1}
	assert.Equal(t, "ORD-999999", g.NextID())
	assert.Equal(t, "ORD-000000", g.NextID())
}
