package api

import (
	"errors"
	"net/http"

	"bakery-storefront/internal/booking"
	"bakery-storefront/internal/concierge"

	"github.com/gin-gonic/gin"
)

type chatRequest struct {
	Text string `json:"text"`
}

type designRequest struct {
	Prompt string `json:"prompt"`
}

func (h *Handler) getMessages(c *gin.Context) {
	s := currentSession(c)
	c.JSON(http.StatusOK, gin.H{
		"messages":      s.Chat.Messages(),
		"quick_prompts": concierge.QuickPrompts,
		"busy":          s.Chat.Busy(),
	})
}

// sendMessage streams the reply as server-sent events: one "fragment"
// event per chunk, then a "message" event with the final AI message.
func (h *Handler) sendMessage(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	s := currentSession(c)
	streaming := false
	onFragment := func(fragment string) {
		if !streaming {
			c.Header("Cache-Control", "no-cache")
			c.Header("X-Accel-Buffering", "no")
			streaming = true
		}
		c.SSEvent("fragment", fragment)
		c.Writer.Flush()
	}

	reply, err := s.Chat.Send(c.Request.Context(), req.Text, onFragment)
	switch {
	case errors.Is(err, concierge.ErrEmptyPrompt):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Message is empty"})
		return
	case errors.Is(err, concierge.ErrBusy):
		c.JSON(http.StatusConflict, gin.H{"error": "QisAI is still replying"})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.SSEvent("message", reply)
	c.Writer.Flush()
}

func (h *Handler) createDesign(c *gin.Context) {
	var req designRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	result, err := currentSession(c).Studio.Design(c.Request.Context(), req.Prompt)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, result)
	case errors.Is(err, concierge.ErrEmptyPrompt):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Describe your dream cake first"})
	case errors.Is(err, concierge.ErrBusy):
		c.JSON(http.StatusConflict, gin.H{"error": "A design is already being generated"})
	default:
		c.JSON(http.StatusBadGateway, gin.H{"error": concierge.DesignFailureMessage})
	}
}

func (h *Handler) getLatestDesign(c *gin.Context) {
	result, ok := currentSession(c).Studio.Last()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "No design yet"})
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) getWhatsAppLink(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"url": booking.GeneralInquiryLink()})
}

func (h *Handler) createBookingLink(c *gin.Context) {
	form := booking.DefaultForm()
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	link, err := booking.BuildInquiryLink(form)
	var ferr *booking.FormError
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{
			"url":     link,
			"message": booking.InquiryMessage(form),
		})
	case errors.As(err, &ferr):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":  "Invalid booking form",
			"fields": ferr.Fields,
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
