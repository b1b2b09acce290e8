package api

import (
	"errors"
	"net/http"
	"strconv"

	"bakery-storefront/internal/catalog"
	"bakery-storefront/internal/models"
	"bakery-storefront/internal/service"
	"bakery-storefront/internal/session"
	"bakery-storefront/internal/view"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type cartLineResponse struct {
	models.CartLine
	LineTotal models.Money `json:"line_total"`
}

type cartResponse struct {
	Items        []cartLineResponse `json:"items"`
	Count        int                `json:"count"`
	Total        models.Money       `json:"total"`
	TotalDisplay string             `json:"total_display"`
	IsOpen       bool               `json:"is_open"`
}

type addItemRequest struct {
	ItemID int `json:"item_id" binding:"required"`
}

type updateQuantityRequest struct {
	Delta *int `json:"delta" binding:"required"`
}

type setOpenRequest struct {
	Open *bool `json:"open" binding:"required"`
}

type navigateRequest struct {
	Screen  string `json:"screen" binding:"required"`
	Section string `json:"section"`
}

type viewResponse struct {
	Screen  view.ScreenName `json:"screen"`
	Section string          `json:"section,omitempty"`
	Order   *models.Order   `json:"order,omitempty"`
	Chrome  view.Chrome     `json:"chrome"`
}

type menuResponse struct {
	Filter     string               `json:"filter,omitempty"`
	Items      []models.CatalogItem `json:"items"`
	Page       int                  `json:"page,omitempty"`
	TotalPages int                  `json:"total_pages,omitempty"`
}

// getMenu serves the home teaser (view=home) or a filtered menu page
func (h *Handler) getMenu(c *gin.Context) {
	if c.Query("view") == "home" {
		c.JSON(http.StatusOK, menuResponse{Items: h.catalog.HomeTeaser()})
		return
	}

	filter := c.DefaultQuery("category", catalog.FilterAll)
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid page"})
		return
	}

	p := catalog.Paginate(h.catalog.Filtered(filter), page, catalog.MenuPageSize)
	c.JSON(http.StatusOK, menuResponse{
		Filter:     filter,
		Items:      p.Items,
		Page:       p.Page,
		TotalPages: p.TotalPages,
	})
}

func (h *Handler) getMenuFilters(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"filters": catalog.Filters})
}

func cartView(s *session.Session) cartResponse {
	lines := s.Cart.Lines()
	items := make([]cartLineResponse, len(lines))
	for i, l := range lines {
		items[i] = cartLineResponse{CartLine: l, LineTotal: l.LineTotal()}
	}
	total := models.LinesTotal(lines)
	count := 0
	for _, l := range lines {
		count += l.Quantity
	}

	return cartResponse{
		Items:        items,
		Count:        count,
		Total:        total,
		TotalDisplay: total.String(),
		IsOpen:       s.Cart.IsOpen(),
	}
}

func (h *Handler) getCart(c *gin.Context) {
	c.JSON(http.StatusOK, cartView(currentSession(c)))
}

func (h *Handler) addCartItem(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	item, ok := h.catalog.Find(req.ItemID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Menu item not found"})
		return
	}

	s := currentSession(c)
	s.Cart.AddItem(c.Request.Context(), item)
	c.JSON(http.StatusOK, cartView(s))
}

func itemID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item ID"})
		return 0, false
	}
	return id, true
}

func (h *Handler) updateCartItem(c *gin.Context) {
	id, ok := itemID(c)
	if !ok {
		return
	}

	var req updateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	s := currentSession(c)
	s.Cart.UpdateQuantity(c.Request.Context(), id, *req.Delta)
	c.JSON(http.StatusOK, cartView(s))
}

func (h *Handler) removeCartItem(c *gin.Context) {
	id, ok := itemID(c)
	if !ok {
		return
	}

	s := currentSession(c)
	s.Cart.RemoveItem(c.Request.Context(), id)
	c.JSON(http.StatusOK, cartView(s))
}

func (h *Handler) clearCart(c *gin.Context) {
	s := currentSession(c)
	s.Cart.Clear(c.Request.Context())
	c.JSON(http.StatusOK, cartView(s))
}

func (h *Handler) setCartOpen(c *gin.Context) {
	var req setOpenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	s := currentSession(c)
	s.Cart.SetOpen(*req.Open)
	c.JSON(http.StatusOK, cartView(s))
}

// checkout runs the simulated payment and returns the order
func (h *Handler) checkout(c *gin.Context) {
	var req service.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	s := currentSession(c)
	order, err := h.checkoutService.Checkout(c.Request.Context(), s.CheckoutTarget(), req)

	var verr *service.ValidationError
	switch {
	case err == nil:
		c.JSON(http.StatusCreated, gin.H{
			"order":  order,
			"screen": s.Router.Current().Name(),
		})
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":  "Invalid customer details",
			"fields": verr.Fields,
		})
	case errors.Is(err, service.ErrEmptyCart):
		c.JSON(http.StatusConflict, gin.H{"error": "Your cart is empty"})
	case errors.Is(err, service.ErrCheckoutInProgress):
		c.JSON(http.StatusConflict, gin.H{"error": "Payment is already being processed"})
	case errors.Is(err, service.ErrNotOnCheckout):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Open the checkout screen to place an order",
			"view":  screenView(s),
		})
	default:
		h.logger.Error("Checkout failed", zap.String("session_id", s.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to complete checkout",
			"details": err.Error(),
		})
	}
}

func screenView(s *session.Session) viewResponse {
	screen := s.Router.Current()
	resp := viewResponse{Screen: screen.Name(), Chrome: view.ChromeFor(screen)}

	switch sc := screen.(type) {
	case view.HomeScreen:
		resp.Section = sc.Section
	case view.ReceiptScreen:
		order := sc.Order
		resp.Order = &order
	}
	return resp
}

func (h *Handler) getView(c *gin.Context) {
	c.JSON(http.StatusOK, screenView(currentSession(c)))
}

// navigate switches screens. A receipt without a completed order is
// refused and the current screen is returned unchanged.
func (h *Handler) navigate(c *gin.Context) {
	var req navigateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	name, err := view.ParseScreenName(req.Screen)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s := currentSession(c)
	if !s.Navigate(name, req.Section) {
		c.JSON(http.StatusConflict, gin.H{
			"error": "No completed order to show",
			"view":  screenView(s),
		})
		return
	}

	c.JSON(http.StatusOK, screenView(s))
}

func (h *Handler) getReceipt(c *gin.Context) {
	order, ok := currentSession(c).Router.LastOrder()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "No completed order"})
		return
	}
	c.JSON(http.StatusOK, order)
}
