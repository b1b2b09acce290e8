package service

import (
	"context"
	"errors"
	"fmt"

	"bakery-storefront/internal/models"
	"bakery-storefront/internal/util"

	"go.uber.org/zap"
)

// CartSnapshotter is the part of the cart store checkout needs.
type CartSnapshotter interface {
	Lines() []models.CartLine
	Clear(ctx context.Context)
}

// OrderRouter receives the finished order.
type OrderRouter interface {
	OnCheckout() bool
	CompleteCheckout(order models.Order) bool
}

// ReceiptNotifier sends the customer a copy of the receipt.
type ReceiptNotifier interface {
	NotifyReceipt(ctx context.Context, order models.Order) error
}

// CheckoutTarget bundles one session's cart, router and in-flight guard.
type CheckoutTarget struct {
	Cart   CartSnapshotter
	Router OrderRouter
	Guard  *util.InFlight
}

// CheckoutRequest is the submitted checkout form
type CheckoutRequest struct {
	Customer      models.CustomerDetails `json:"customer"`
	PaymentMethod string                 `json:"payment_method"`
}

// CheckoutService runs the checkout flow for a session
type CheckoutService struct {
	assembler *Assembler
	validator *DetailsValidator
	payments  *PaymentService
	notifier  ReceiptNotifier
	logger    *zap.Logger
}

// NewCheckoutService creates a new checkout service
func NewCheckoutService(
	assembler *Assembler,
	validator *DetailsValidator,
	payments *PaymentService,
	notifier ReceiptNotifier,
) *CheckoutService {
	return &CheckoutService{
		assembler: assembler,
		validator: validator,
		payments:  payments,
		notifier:  notifier,
		logger:    util.GetLogger(),
	}
}

// Checkout validates the request, waits out the payment round trip and
// hands the order to the router. Submits are accepted only from the
// checkout screen. The round trip is not cancelled when ctx
// is; its result is applied to the session either way.
func (cs *CheckoutService) Checkout(ctx context.Context, target CheckoutTarget, req CheckoutRequest) (models.Order, error) {
	ctx, span := util.StartSpan(context.WithoutCancel(ctx), "CheckoutService.Checkout")
	defer span.End()

	if !target.Guard.TryAcquire() {
		util.CheckoutRejectedTotal.WithLabelValues("in_progress").Inc()
		return models.Order{}, ErrCheckoutInProgress
	}
	defer target.Guard.Release()

	if !target.Router.OnCheckout() {
		util.CheckoutRejectedTotal.WithLabelValues("not_on_checkout").Inc()
		return models.Order{}, ErrNotOnCheckout
	}

	snapshot := target.Cart.Lines()
	if len(snapshot) == 0 {
		util.CheckoutRejectedTotal.WithLabelValues("empty_cart").Inc()
		return models.Order{}, ErrEmptyCart
	}

	details := req.Customer.Trimmed()
	if err := cs.validator.Validate(details); err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			util.CheckoutRejectedTotal.WithLabelValues("invalid_details").Inc()
		}
		return models.Order{}, err
	}

	method, err := models.ParsePaymentMethod(req.PaymentMethod)
	if err != nil {
		util.CheckoutRejectedTotal.WithLabelValues("invalid_details").Inc()
		return models.Order{}, &ValidationError{Fields: map[string]string{"payment_method": "must be FPX or Cash"}}
	}

	txID, err := cs.payments.ProcessPayment(ctx, method, models.LinesTotal(snapshot))
	if err != nil {
		return models.Order{}, fmt.Errorf("payment failed: %w", err)
	}

	order := cs.assembler.Submit(snapshot, details, method)
	target.Cart.Clear(ctx)
	shown := target.Router.CompleteCheckout(order)

	util.OrdersCreatedTotal.Inc()
	cs.logger.Info("Order created",
		zap.String("order_id", order.ID),
		zap.String("tx_id", txID),
		zap.String("total", order.Total.String()),
		zap.Int("lines", len(order.Items)),
		zap.Bool("receipt_shown", shown))

	if err := cs.notifier.NotifyReceipt(ctx, order); err != nil {
		util.ReceiptNotificationsFailed.Inc()
		cs.logger.Error("Failed to send receipt notification",
			zap.String("order_id", order.ID),
			zap.Error(err))
	}

	return order, nil
}
