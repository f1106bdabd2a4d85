package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/meridianadvisory/site-backend/pkg/logger"
)

type Publisher interface {
	Publish(ctx context.Context, subject string, data interface{}) error
	Close() error
}

type NATSPublisher struct {
	conn *nats.Conn
}

func NewNATSPublisher(url string) (*NATSPublisher, error) {
	conn, err := nats.Connect(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	return &NATSPublisher{conn: conn}, nil
}

func (n *NATSPublisher) Publish(ctx context.Context, subject string, data interface{}) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal event data: %w", err)
	}

	logger.DebugContext(ctx, "Publishing event", "subject", subject, "data", string(payload))

	return n.conn.Publish(subject, payload)
}

func (n *NATSPublisher) Close() error {
	n.conn.Close()
	return nil
}

// Subjects
const (
	BookingCreated      = "booking.created"
	BookingConfirmed    = "booking.confirmed"
	PaymentOrderCreated = "payment.order.created"
)

type BookingCreatedEvent struct {
	BookingID        string    `json:"booking_id"`
	Email            string    `json:"email"`
	Name             string    `json:"name"`
	ConsultationType string    `json:"consultation_type"`
	PreferredDate    string    `json:"preferred_date"`
	CreatedAt        time.Time `json:"created_at"`
}

type BookingConfirmedEvent struct {
	BookingID   string    `json:"booking_id"`
	Email       string    `json:"email"`
	ConfirmedBy string    `json:"confirmed_by"`
	ConfirmedAt time.Time `json:"confirmed_at"`
}

type PaymentOrderCreatedEvent struct {
	OrderID  string `json:"order_id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Status   string `json:"status"`
}
