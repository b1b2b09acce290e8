package view

import (
	"testing"

	"bakery-storefront/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleOrder() models.Order {
	return models.Order{
		ID: "ORD-000123",
		Items: []models.CartLine{
			{CatalogItem: models.CatalogItem{ID: 1, Name: "Signature Choc Lava", Price: "RM 15.00"}.Priced(), Quantity: 2},
		},
		Total: 3000,
	}
}

func TestInitialScreenIsHome(t *testing.T) {
	r := NewRouter()
	assert.Equal(t, HomeName, r.Current().Name())
	_, ok := r.LastOrder()
	assert.False(t, ok)
}

func TestNavigateBetweenScreens(t *testing.T) {
	r := NewRouter()

	for _, name := range []ScreenName{MenuName, GalleryName, CheckoutName, HomeName, MenuName} {
		require.True(t, r.Navigate(name, ""))
		assert.Equal(t, name, r.Current().Name())
	}
}

func TestSectionHintOnlyOnHome(t *testing.T) {
	r := NewRouter()

	require.True(t, r.Navigate(HomeName, "booking"))
	home, ok := r.Current().(HomeScreen)
	require.True(t, ok)
	assert.Equal(t, "booking", home.Section)

	require.True(t, r.Navigate(MenuName, "booking"))
	assert.Equal(t, MenuScreen{}, r.Current())
}

func TestReceiptWithoutOrderIsNoop(t *testing.T) {
	r := NewRouter()
	r.Navigate(MenuName, "")

	assert.NotPanics(t, func() {
		assert.False(t, r.Navigate(ReceiptName, ""))
	})
	assert.Equal(t, MenuName, r.Current().Name())
}

func TestCompleteCheckoutShowsReceipt(t *testing.T) {
	r := NewRouter()
	r.Navigate(CheckoutName, "")

	order := sampleOrder()
	assert.True(t, r.CompleteCheckout(order))

	rs, ok := r.Current().(ReceiptScreen)
	require.True(t, ok)
	assert.Equal(t, "ORD-000123", rs.Order.ID)

	order.Items[0].Quantity = 99
	rs = r.Current().(ReceiptScreen)
	assert.Equal(t, 2, rs.Order.Items[0].Quantity)

	r.Navigate(HomeName, "")
	assert.True(t, r.Navigate(ReceiptName, ""))
}

func TestOnCheckout(t *testing.T) {
	r := NewRouter()
	assert.False(t, r.OnCheckout())

	r.Navigate(CheckoutName, "")
	assert.True(t, r.OnCheckout())

	r.CompleteCheckout(sampleOrder())
	assert.False(t, r.OnCheckout())
}

func TestCompleteCheckoutAfterLeaving(t *testing.T) {
	r := NewRouter()
	r.Navigate(CheckoutName, "")
	r.Navigate(MenuName, "")

	assert.False(t, r.CompleteCheckout(sampleOrder()))
	assert.Equal(t, MenuName, r.Current().Name())

	last, ok := r.LastOrder()
	require.True(t, ok)
	assert.Equal(t, "ORD-000123", last.ID)
}

func TestParseScreenName(t *testing.T) {
	n, err := ParseScreenName("gallery")
	require.NoError(t, err)
	assert.Equal(t, GalleryName, n)

	_, err = ParseScreenName("admin")
	assert.Error(t, err)
}

func TestChromeFor(t *testing.T) {
	assert.Equal(t, Chrome{Navbar: true, CartDrawer: true, WhatsAppFab: true, Footer: true, ChatWidget: true},
		ChromeFor(HomeScreen{}))
	assert.Equal(t, Chrome{Navbar: true, CartDrawer: true, WhatsAppFab: true, Footer: false, ChatWidget: true},
		ChromeFor(GalleryScreen{}))
	assert.Equal(t, Chrome{Navbar: true, CartDrawer: false, WhatsAppFab: false, Footer: false, ChatWidget: true},
		ChromeFor(CheckoutScreen{}))
	assert.Equal(t, Chrome{Navbar: false, CartDrawer: false, WhatsAppFab: false, Footer: true, ChatWidget: true},
		ChromeFor(ReceiptScreen{Order: sampleOrder()}))
}
