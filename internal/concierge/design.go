package concierge

import (
	"context"
	"strings"
	"sync"
	"time"

	"bakery-storefront/internal/util"

	"go.uber.org/zap"
)

// DesignFailureMessage is shown when neither part of a design came back.
const DesignFailureMessage = "We couldn't generate your dream cake at the moment. Please try again."

// DesignResult holds whatever the provider returned. Either part may be
// missing; at least one is present.
type DesignResult struct {
	Prompt   string         `json:"prompt"`
	Details  *DesignDetails `json:"details,omitempty"`
	ImageURL *string        `json:"image_url,omitempty"`
}

// Studio turns free-text cake ideas into a quote and a rendering.
type Studio struct {
	adapter Adapter
	guard   util.InFlight
	logger  *zap.Logger

	mu   sync.RWMutex
	last *DesignResult
}

func NewStudio(adapter Adapter) *Studio {
	return &Studio{adapter: adapter, logger: util.GetLogger()}
}

// Last returns the most recent successful design.
func (s *Studio) Last() (DesignResult, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.last == nil {
		return DesignResult{}, false
	}
	return *s.last, true
}

// Busy reports whether a design request is running.
func (s *Studio) Busy() bool {
	return s.guard.Busy()
}

// Design requests details and image concurrently. Each part fails on its
// own; ErrDesignFailed is returned only when nothing usable came back.
func (s *Studio) Design(ctx context.Context, prompt string) (DesignResult, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return DesignResult{}, ErrEmptyPrompt
	}
	if !s.guard.TryAcquire() {
		return DesignResult{}, ErrBusy
	}
	defer s.guard.Release()

	ctx, span := util.StartSpan(context.WithoutCancel(ctx), "Studio.Design")
	defer span.End()

	var (
		wg         sync.WaitGroup
		details    DesignDetails
		detailsErr error
		image      *string
		imageErr   error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		start := time.Now()
		details, detailsErr = s.adapter.GenerateDesignDetails(ctx, prompt)
		s.observe("design_details", start, detailsErr)
	}()
	go func() {
		defer wg.Done()
		start := time.Now()
		image, imageErr = s.adapter.GenerateDesignImage(ctx, prompt)
		s.observe("design_image", start, imageErr)
	}()
	wg.Wait()

	result := DesignResult{Prompt: prompt}
	if detailsErr == nil {
		result.Details = &details
	}
	if imageErr == nil && image != nil {
		result.ImageURL = image
	}

	if result.Details == nil && result.ImageURL == nil {
		s.logger.Warn("Cake design produced nothing",
			zap.NamedError("details_error", detailsErr),
			zap.NamedError("image_error", imageErr))
		return DesignResult{}, ErrDesignFailed
	}

	s.mu.Lock()
	stored := result
	s.last = &stored
	s.mu.Unlock()

	return result, nil
}

func (s *Studio) observe(op string, start time.Time, err error) {
	util.ConciergeLatency.WithLabelValues(op).Observe(time.Since(start).Seconds())
	if err != nil {
		util.ConciergeRequestsTotal.WithLabelValues(op, "error").Inc()
		s.logger.Warn("Concierge design call failed", zap.String("op", op), zap.Error(err))
		return
	}
	util.ConciergeRequestsTotal.WithLabelValues(op, "ok").Inc()
}
