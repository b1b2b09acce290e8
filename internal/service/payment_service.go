package service

import (
	"context"
	"fmt"
	"time"

	"bakery-storefront/internal/models"
	"bakery-storefront/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PaymentService simulates the gateway round trip. No money moves; the
// call only waits out the configured delay.
type PaymentService struct {
	delay  time.Duration
	logger *zap.Logger
}

// NewPaymentService creates a payment simulator with the given delay
func NewPaymentService(delay time.Duration) *PaymentService {
	return &PaymentService{
		delay:  delay,
		logger: util.GetLogger(),
	}
}

// ProcessPayment waits for the simulated gateway and returns a provider
// transaction reference.
func (ps *PaymentService) ProcessPayment(ctx context.Context, method models.PaymentMethod, amount models.Money) (string, error) {
	ctx, span := util.StartSpan(ctx, "PaymentService.ProcessPayment")
	defer span.End()

	util.PaymentAttemptsTotal.WithLabelValues(string(method)).Inc()
	start := time.Now()
	defer func() {
		util.PaymentProcessingLatency.Observe(time.Since(start).Seconds())
	}()

	ps.logger.Info("Processing payment",
		zap.String("method", string(method)),
		zap.String("amount", amount.String()))

	timer := time.NewTimer(ps.delay)
	defer timer.Stop()

	select {
	case <-timer.C:
	case <-ctx.Done():
		return "", fmt.Errorf("payment interrupted: %w", ctx.Err())
	}

	txID := fmt.Sprintf("TXN-%s", uuid.New().String()[:8])
	ps.logger.Info("Payment succeeded",
		zap.String("method", string(method)),
		zap.String("tx_id", txID))

	return txID, nil
}
