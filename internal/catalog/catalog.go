package catalog

import (
	"context"
	"fmt"
	"strings"

	"bakery-storefront/internal/models"
)

// Menu filter identifiers shown in the menu sidebar.
const (
	FilterAll      = "all"
	FilterPopular  = "popular"
	FilterCakes    = "cakes"
	FilterPastries = "pastries"
	FilterDesserts = "desserts"
)

const (
	HomeTeaserSize = 4
	MenuPageSize   = 6
)

// Filter is a sidebar entry.
type Filter struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Filters lists the sidebar in display order.
var Filters = []Filter{
	{ID: FilterAll, Name: "All Menu"},
	{ID: FilterPopular, Name: "Top Picks"},
	{ID: FilterCakes, Name: "Cakes"},
	{ID: FilterPastries, Name: "Pastries"},
	{ID: FilterDesserts, Name: "Desserts"},
}

// Source loads menu items, e.g. from a database.
type Source interface {
	GetMenuItems(ctx context.Context) ([]models.CatalogItem, error)
}

// Catalog is the read-only menu. It is built once at start and never mutated.
type Catalog struct {
	items []models.CatalogItem
	byID  map[int]int
}

// New builds a catalog from items. Ids must be unique.
func New(items []models.CatalogItem) (*Catalog, error) {
	c := &Catalog{
		items: make([]models.CatalogItem, 0, len(items)),
		byID:  make(map[int]int, len(items)),
	}
	for _, item := range items {
		if _, dup := c.byID[item.ID]; dup {
			return nil, fmt.Errorf("duplicate menu item id %d", item.ID)
		}
		c.byID[item.ID] = len(c.items)
		c.items = append(c.items, item.Priced())
	}
	return c, nil
}

// Default returns the built-in menu.
func Default() *Catalog {
	c, err := New(menuItems)
	if err != nil {
		panic(err)
	}
	return c
}

// Load reads items from src, falling back to the built-in menu when the
// source fails or is empty.
func Load(ctx context.Context, src Source) (*Catalog, error) {
	items, err := src.GetMenuItems(ctx)
	if err != nil {
		return Default(), fmt.Errorf("failed to load menu items: %w", err)
	}
	if len(items) == 0 {
		return Default(), fmt.Errorf("menu source returned no items")
	}
	c, err := New(items)
	if err != nil {
		return Default(), err
	}
	return c, nil
}

// Items returns every item in menu order.
func (c *Catalog) Items() []models.CatalogItem {
	out := make([]models.CatalogItem, len(c.items))
	copy(out, c.items)
	return out
}

// Find looks an item up by id.
func (c *Catalog) Find(id int) (models.CatalogItem, bool) {
	idx, ok := c.byID[id]
	if !ok {
		return models.CatalogItem{}, false
	}
	return c.items[idx], true
}

// Filtered returns the items matching a sidebar filter. Unknown filters
// behave like FilterAll.
func (c *Catalog) Filtered(filter string) []models.CatalogItem {
	out := make([]models.CatalogItem, 0, len(c.items))
	for _, item := range c.items {
		if matches(filter, item) {
			out = append(out, item)
		}
	}
	return out
}

// HomeTeaser returns the first items shown on the home screen.
func (c *Catalog) HomeTeaser() []models.CatalogItem {
	n := min(HomeTeaserSize, len(c.items))
	out := make([]models.CatalogItem, n)
	copy(out, c.items[:n])
	return out
}

// Page is one page of the menu grid.
type Page struct {
	Items      []models.CatalogItem `json:"items"`
	Page       int                  `json:"page"`
	TotalPages int                  `json:"total_pages"`
}

// Paginate slices items into pages of size. Pages are numbered from 1; a
// page outside the valid range is clamped.
func Paginate(items []models.CatalogItem, page, size int) Page {
	if size <= 0 {
		size = MenuPageSize
	}
	totalPages := (len(items) + size - 1) / size
	if page < 1 {
		page = 1
	}
	if totalPages > 0 && page > totalPages {
		page = totalPages
	}

	start := min((page-1)*size, len(items))
	end := min(start+size, len(items))

	out := make([]models.CatalogItem, end-start)
	copy(out, items[start:end])
	return Page{Items: out, Page: page, TotalPages: totalPages}
}

func matches(filter string, item models.CatalogItem) bool {
	switch filter {
	case FilterPopular:
		return inCategory(item, "Best Seller", "Viral", "Favorite", "Bestseller")
	case FilterCakes:
		return inCategory(item, "Classic", "Local", "New") ||
			nameHas(item, "Cake", "Moist")
	case FilterPastries:
		return inCategory(item, "Box Set", "Snack", "Party") ||
			nameHas(item, "Tart", "Pods")
	case FilterDesserts:
		return inCategory(item, "Dessert", "Gift") ||
			nameHas(item, "Macarons", "Tiramisu")
	default:
		return true
	}
}

func inCategory(item models.CatalogItem, categories ...string) bool {
	for _, c := range categories {
		if item.Category == c {
			return true
		}
	}
	return false
}

func nameHas(item models.CatalogItem, words ...string) bool {
	for _, w := range words {
		if strings.Contains(item.Name, w) {
			return true
		}
	}
	return false
}
