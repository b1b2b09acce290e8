package broker

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"bakery-storefront/internal/models"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	msgs []kafka.Message
	err  error
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func (f *fakeWriter) Close() error { return nil }

func testOrder() models.Order {
	return models.Order{
		ID: "ORD-004211",
		Items: []models.CartLine{
			{CatalogItem: models.CatalogItem{ID: 1, Name: "Signature Choc Lava", Price: "RM 15.00"}.Priced(), Quantity: 2},
			{CatalogItem: models.CatalogItem{ID: 2, Name: "Classic Cheese Leleh", Price: "RM 25.00"}.Priced(), Quantity: 1},
		},
		Total:         5500,
		Customer:      models.CustomerDetails{Name: "Aisyah", Email: "aisyah@example.com", PickupDate: "2026-03-15", PickupTime: "11:00"},
		PaymentMethod: models.PaymentMethodFPX,
		Timestamp:     time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC),
	}
}

func TestNewReceiptIssuedEvent(t *testing.T) {
	event := NewReceiptIssuedEvent(testOrder())

	assert.Equal(t, models.EventTypeReceiptIssued, event.EventType)
	assert.NotEmpty(t, event.EventID)
	assert.Equal(t, "ORD-004211", event.OrderID)
	assert.Equal(t, "aisyah@example.com", event.CustomerEmail)
	assert.Equal(t, models.Money(5500), event.Total)
	require.Len(t, event.Items, 2)
	assert.Equal(t, models.ReceiptLineData{ItemID: 1, Name: "Signature Choc Lava", Quantity: 2, LineTotal: 3000}, event.Items[0])
}

func TestReceiptPublisherWritesKeyedMessage(t *testing.T) {
	w := &fakeWriter{}
	rp := NewReceiptPublisher(NewProducerWithWriter(w))

	require.NoError(t, rp.NotifyReceipt(context.Background(), testOrder()))
	require.Len(t, w.msgs, 1)
	assert.Equal(t, "order-ORD-004211", string(w.msgs[0].Key))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(w.msgs[0].Value, &decoded))
	assert.Equal(t, "RECEIPT_ISSUED", decoded["event_type"])
	assert.Equal(t, 55.0, decoded["total"])
}

func TestReceiptPublisherWrapsWriteError(t *testing.T) {
	w := &fakeWriter{err: errors.New("leader not available")}
	rp := NewReceiptPublisher(NewProducerWithWriter(w))

	err := rp.NotifyReceipt(context.Background(), testOrder())
	assert.ErrorContains(t, err, "leader not available")
}

func TestLogNotifier(t *testing.T) {
	assert.NoError(t, NewLogNotifier().NotifyReceipt(context.Background(), testOrder()))
}
