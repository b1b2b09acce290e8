package concierge

import "context"

// Unavailable is used when no provider is configured. Every call fails
// with ErrConciergeUnavailable.
type Unavailable struct{}

func (Unavailable) StartChat(context.Context) (ChatSession, error) {
	return nil, ErrConciergeUnavailable
}

func (Unavailable) GenerateDesignDetails(context.Context, string) (DesignDetails, error) {
	return DesignDetails{}, ErrConciergeUnavailable
}

func (Unavailable) GenerateDesignImage(context.Context, string) (*string, error) {
	return nil, ErrConciergeUnavailable
}
