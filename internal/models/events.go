package models

import "time"

// Event types
const (
	EventTypeReceiptIssued = "RECEIPT_ISSUED"
)

// BaseEvent contains common fields for all events
type BaseEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	Timestamp time.Time `json:"timestamp"`
}

// ReceiptIssuedEvent is published after checkout so a mailer can send the
// customer a copy of the receipt.
type ReceiptIssuedEvent struct {
	BaseEvent
	OrderID       string            `json:"order_id"`
	CustomerName  string            `json:"customer_name"`
	CustomerEmail string            `json:"customer_email"`
	PickupDate    string            `json:"pickup_date"`
	PickupTime    string            `json:"pickup_time"`
	PaymentMethod PaymentMethod     `json:"payment_method"`
	Total         Money             `json:"total"`
	Items         []ReceiptLineData `json:"items"`
}

// ReceiptLineData represents a receipt line in events
type ReceiptLineData struct {
	ItemID    int    `json:"item_id"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	LineTotal Money  `json:"line_total"`
}
