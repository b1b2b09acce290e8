package broker

import (
	"context"
	"fmt"
	"time"

	"bakery-storefront/internal/models"
	"bakery-storefront/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ReceiptPublisher emits RECEIPT_ISSUED events for the downstream mailer
type ReceiptPublisher struct {
	producer *Producer
	timeout  time.Duration
}

// NewReceiptPublisher creates a new receipt publisher
func NewReceiptPublisher(producer *Producer) *ReceiptPublisher {
	return &ReceiptPublisher{producer: producer, timeout: 5 * time.Second}
}

// NotifyReceipt publishes the receipt for order
func (rp *ReceiptPublisher) NotifyReceipt(ctx context.Context, order models.Order) error {
	ctx, span := util.StartSpan(ctx, "ReceiptPublisher.NotifyReceipt")
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, rp.timeout)
	defer cancel()

	event := NewReceiptIssuedEvent(order)
	key := fmt.Sprintf("order-%s", order.ID)
	return rp.producer.PublishEvent(ctx, key, event)
}

// NewReceiptIssuedEvent builds the event payload for order
func NewReceiptIssuedEvent(order models.Order) *models.ReceiptIssuedEvent {
	items := make([]models.ReceiptLineData, len(order.Items))
	for i, l := range order.Items {
		items[i] = models.ReceiptLineData{
			ItemID:    l.ID,
			Name:      l.Name,
			Quantity:  l.Quantity,
			LineTotal: l.LineTotal(),
		}
	}

	return &models.ReceiptIssuedEvent{
		BaseEvent: models.BaseEvent{
			EventID:   uuid.New().String(),
			EventType: models.EventTypeReceiptIssued,
			Timestamp: time.Now().UTC(),
		},
		OrderID:       order.ID,
		CustomerName:  order.Customer.Name,
		CustomerEmail: order.Customer.Email,
		PickupDate:    order.Customer.PickupDate,
		PickupTime:    order.Customer.PickupTime,
		PaymentMethod: order.PaymentMethod,
		Total:         order.Total,
		Items:         items,
	}
}

// LogNotifier only logs receipts. Used when no brokers are configured.
type LogNotifier struct {
	logger *zap.Logger
}

func NewLogNotifier() *LogNotifier {
	return &LogNotifier{logger: util.GetLogger()}
}

func (ln *LogNotifier) NotifyReceipt(_ context.Context, order models.Order) error {
	ln.logger.Info("Receipt issued",
		zap.String("order_id", order.ID),
		zap.String("email", order.Customer.Email),
		zap.String("total", order.Total.String()))
	return nil
}
