package catalog

import (
	"context"
	"errors"
	"testing"

	"bakery-storefront/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ids(items []models.CatalogItem) []int {
	out := make([]int, len(items))
	for i, item := range items {
		out[i] = item.ID
	}
	return out
}

func TestDefaultCatalogIsPriced(t *testing.T) {
	c := Default()
	require.Len(t, c.Items(), 12)

	item, ok := c.Find(2)
	require.True(t, ok)
	assert.Equal(t, "Classic Cheese Leleh", item.Name)
	assert.Equal(t, models.Money(2500), item.UnitPrice)

	_, ok = c.Find(99)
	assert.False(t, ok)
}

func TestFiltered(t *testing.T) {
	c := Default()

	assert.Len(t, c.Filtered(FilterAll), 12)
	assert.Equal(t, []int{1, 2, 4, 11}, ids(c.Filtered(FilterPopular)))
	assert.Equal(t, []int{4, 6, 7, 9}, ids(c.Filtered(FilterCakes)))
	assert.Equal(t, []int{3, 5, 12}, ids(c.Filtered(FilterPastries)))
	assert.Equal(t, []int{8, 10, 11}, ids(c.Filtered(FilterDesserts)))
	assert.Len(t, c.Filtered("unknown"), 12)
}

func TestHomeTeaser(t *testing.T) {
	assert.Equal(t, []int{1, 2, 3, 4}, ids(Default().HomeTeaser()))
}

func TestPaginate(t *testing.T) {
	items := Default().Items()

	p := Paginate(items, 1, MenuPageSize)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6}, ids(p.Items))
	assert.Equal(t, 2, p.TotalPages)

	p = Paginate(items, 2, MenuPageSize)
	assert.Equal(t, []int{7, 8, 9, 10, 11, 12}, ids(p.Items))

	p = Paginate(items, 7, MenuPageSize)
	assert.Equal(t, 2, p.Page)

	p = Paginate(items, 0, MenuPageSize)
	assert.Equal(t, 1, p.Page)

	p = Paginate(nil, 1, MenuPageSize)
	assert.Empty(t, p.Items)
	assert.Equal(t, 0, p.TotalPages)
}

func TestNewRejectsDuplicateIDs(t *testing.T) {
	_, err := New([]models.CatalogItem{{ID: 1}, {ID: 1}})
	assert.Error(t, err)
}

type stubSource struct {
	items []models.CatalogItem
	err   error
}

func (s stubSource) GetMenuItems(context.Context) ([]models.CatalogItem, error) {
	return s.items, s.err
}

func TestLoadFallsBackToDefault(t *testing.T) {
	c, err := Load(context.Background(), stubSource{err: errors.New("connection refused")})
	assert.Error(t, err)
	assert.Len(t, c.Items(), 12)

	c, err = Load(context.Background(), stubSource{})
	assert.Error(t, err)
	assert.Len(t, c.Items(), 12)

	c, err = Load(context.Background(), stubSource{items: []models.CatalogItem{
		{ID: 42, Name: "Kek Lapis", Price: "RM 60.00", Category: "Local"},
	}})
	require.NoError(t, err)
	item, ok := c.Find(42)
	require.True(t, ok)
	assert.Equal(t, models.Money(6000), item.UnitPrice)
}
