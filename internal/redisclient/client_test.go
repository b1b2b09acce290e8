package redisclient

import (
	"context"
	"testing"
	"time"

	"bakery-storefront/internal/cart"
	"bakery-storefront/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartRoundTripThroughRedis(t *testing.T) {
	t.Skip("Integration test - requires Redis")

	client, err := NewClient("localhost:6379", "", 15, time.Minute)
	require.NoError(t, err)
	defer client.Close()

	ctx := context.Background()
	storage := cart.NewNamespaced(client, "session:test-round-trip")

	s := cart.NewStore(ctx, storage)
	s.Clear(ctx)
	s.AddItem(ctx, models.CatalogItem{ID: 1, Name: "Signature Choc Lava", Price: "RM 15.00"})
	s.AddItem(ctx, models.CatalogItem{ID: 1, Name: "Signature Choc Lava", Price: "RM 15.00"})

	restored := cart.NewStore(ctx, storage)
	assert.Equal(t, s.Lines(), restored.Lines())
	assert.Equal(t, models.Money(3000), restored.Total())

	_, err = client.Get(ctx, "session:missing:"+cart.StorageKey)
	assert.ErrorIs(t, err, cart.ErrNotFound)
}
