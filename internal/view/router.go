package view

import (
	"fmt"
	"sync"

	"bakery-storefront/internal/models"
	"bakery-storefront/internal/util"

	"go.uber.org/zap"
)

// ScreenName identifies a top-level screen.
type ScreenName string

const (
	HomeName     ScreenName = "home"
	MenuName     ScreenName = "menu"
	GalleryName  ScreenName = "gallery"
	CheckoutName ScreenName = "checkout"
	ReceiptName  ScreenName = "receipt"
)

// ParseScreenName validates a screen identifier.
func ParseScreenName(s string) (ScreenName, error) {
	switch n := ScreenName(s); n {
	case HomeName, MenuName, GalleryName, CheckoutName, ReceiptName:
		return n, nil
	default:
		return "", fmt.Errorf("unknown screen %q", s)
	}
}

// Screen is the visible screen. It is one of HomeScreen, MenuScreen,
// GalleryScreen, CheckoutScreen or ReceiptScreen.
type Screen interface {
	Name() ScreenName
	isScreen()
}

// HomeScreen may carry a section to scroll to after navigation.
type HomeScreen struct {
	Section string
}

type MenuScreen struct{}

type GalleryScreen struct{}

type CheckoutScreen struct{}

// ReceiptScreen always carries the order it renders.
type ReceiptScreen struct {
	Order models.Order
}

func (HomeScreen) Name() ScreenName     { return HomeName }
func (MenuScreen) Name() ScreenName     { return MenuName }
func (GalleryScreen) Name() ScreenName  { return GalleryName }
func (CheckoutScreen) Name() ScreenName { return CheckoutName }
func (ReceiptScreen) Name() ScreenName  { return ReceiptName }

func (HomeScreen) isScreen()     {}
func (MenuScreen) isScreen()     {}
func (GalleryScreen) isScreen()  {}
func (CheckoutScreen) isScreen() {}
func (ReceiptScreen) isScreen()  {}

// Router selects the visible screen and holds the last completed order.
type Router struct {
	mu        sync.RWMutex
	current   Screen
	lastOrder *models.Order
	logger    *zap.Logger
}

func NewRouter() *Router {
	return &Router{
		current: HomeScreen{},
		logger:  util.GetLogger(),
	}
}

// Current returns the visible screen.
func (r *Router) Current() Screen {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if rs, ok := r.current.(ReceiptScreen); ok {
		return ReceiptScreen{Order: rs.Order.Clone()}
	}
	return r.current
}

// LastOrder returns the most recent completed order, if any.
func (r *Router) LastOrder() (models.Order, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.lastOrder == nil {
		return models.Order{}, false
	}
	return r.lastOrder.Clone(), true
}

// Navigate switches to the named screen. The section hint is kept only for
// the home screen. Navigating to the receipt without a completed order does
// nothing and reports false.
func (r *Router) Navigate(name ScreenName, section string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	var next Screen
	switch name {
	case HomeName:
		next = HomeScreen{Section: section}
	case MenuName:
		next = MenuScreen{}
	case GalleryName:
		next = GalleryScreen{}
	case CheckoutName:
		next = CheckoutScreen{}
	case ReceiptName:
		if r.lastOrder == nil {
			r.logger.Debug("Receipt requested without a completed order")
			return false
		}
		next = ReceiptScreen{Order: r.lastOrder.Clone()}
	default:
		return false
	}

	r.current = next
	return true
}

// OnCheckout reports whether the checkout screen is visible.
func (r *Router) OnCheckout() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.current.(CheckoutScreen)
	return ok
}

// CompleteCheckout records order as the last order. The receipt is shown
// only if the checkout screen is still visible; it reports whether it was.
func (r *Router) CompleteCheckout(order models.Order) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := order.Clone()
	r.lastOrder = &stored

	if _, ok := r.current.(CheckoutScreen); !ok {
		r.logger.Info("Checkout finished after leaving the checkout screen",
			zap.String("order_id", order.ID),
			zap.String("screen", string(r.current.Name())))
		return false
	}

	r.current = ReceiptScreen{Order: stored.Clone()}
	return true
}

// Chrome lists the overlays and page furniture visible on a screen.
type Chrome struct {
	Navbar      bool `json:"navbar"`
	CartDrawer  bool `json:"cart_drawer"`
	WhatsAppFab bool `json:"whatsapp_button"`
	Footer      bool `json:"footer"`
	ChatWidget  bool `json:"chat_widget"`
}

// ChromeFor derives the chrome for a screen.
func ChromeFor(s Screen) Chrome {
	name := s.Name()
	return Chrome{
		Navbar:      name != ReceiptName,
		CartDrawer:  name != CheckoutName && name != ReceiptName,
		WhatsAppFab: name == HomeName || name == MenuName || name == GalleryName,
		Footer:      name != CheckoutName && name != GalleryName,
		ChatWidget:  true,
	}
}
