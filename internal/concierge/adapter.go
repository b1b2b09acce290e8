// Package concierge holds the generative-AI boundary and the chat and
// design-studio handlers built on it.
package concierge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"iter"
	"strings"
	"sync/atomic"
)

var (
	ErrConciergeUnavailable = errors.New("concierge provider unavailable")
	ErrMalformedResponse    = errors.New("malformed provider response")
	ErrBusy                 = errors.New("concierge request already in progress")
	ErrEmptyPrompt          = errors.New("prompt is empty")
	ErrDesignFailed         = errors.New("design generation failed")
	ErrStreamConsumed       = errors.New("stream already consumed")
)

// DesignDetails is the structured quote returned for a custom cake prompt.
type DesignDetails struct {
	Description    string `json:"description"`
	EstimatedPrice string `json:"estimatedPrice"`
	FlavorProfile  string `json:"flavorProfile"`
	VisualDetails  string `json:"visualDetails"`
}

// ChatSession is one provider conversation. SendMessage returns a lazy,
// finite sequence of text fragments that can be ranged over once.
type ChatSession interface {
	SendMessage(ctx context.Context, text string) iter.Seq2[string, error]
}

// Adapter is the provider boundary. GenerateDesignImage returns nil with a
// nil error when the provider produced no image.
type Adapter interface {
	StartChat(ctx context.Context) (ChatSession, error)
	GenerateDesignDetails(ctx context.Context, prompt string) (DesignDetails, error)
	GenerateDesignImage(ctx context.Context, prompt string) (*string, error)
}

// Once wraps seq so that ranging over it a second time yields only
// ErrStreamConsumed.
func Once(seq iter.Seq2[string, error]) iter.Seq2[string, error] {
	var used atomic.Bool
	return func(yield func(string, error) bool) {
		if used.Swap(true) {
			yield("", ErrStreamConsumed)
			return
		}
		seq(yield)
	}
}

// DecodeDesignDetails parses the provider's JSON answer. Empty input or a
// missing field is reported as ErrMalformedResponse.
func DecodeDesignDetails(raw string) (DesignDetails, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return DesignDetails{}, fmt.Errorf("%w: empty body", ErrMalformedResponse)
	}

	var d DesignDetails
	if err := json.Unmarshal([]byte(raw), &d); err != nil {
		return DesignDetails{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	missing := make([]string, 0, 4)
	for name, v := range map[string]string{
		"description":    d.Description,
		"estimatedPrice": d.EstimatedPrice,
		"flavorProfile":  d.FlavorProfile,
		"visualDetails":  d.VisualDetails,
	} {
		if strings.TrimSpace(v) == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return DesignDetails{}, fmt.Errorf("%w: missing %s", ErrMalformedResponse, strings.Join(missing, ", "))
	}

	return d, nil
}
