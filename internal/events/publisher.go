// Package events publishes low-stock alerts produced by inventory
// processing.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/Skotchmaster/shopledger/internal/inventory"
)

type AlertPublisher interface {
	PublishAlerts(ctx context.Context, threshold int, alerts []inventory.Alert) error
	Close() error
}

// LowStockEvent is the JSON body of one alert message.
type LowStockEvent struct {
	Type      string    `json:"type"`
	ProductID int       `json:"product_id"`
	Name      string    `json:"name"`
	Stock     int       `json:"stock"`
	Threshold int       `json:"threshold"`
	At        time.Time `json:"at"`
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type KafkaPublisher struct {
	writer messageWriter
	now    func() time.Time
}

func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
		BatchTimeout:           10 * time.Millisecond,
	}
	return &KafkaPublisher{writer: w, now: time.Now}
}

// PublishAlerts writes one message per alert, keyed by product id, in a
// single batch. threshold is the one the alerts were computed against.
func (p *KafkaPublisher) PublishAlerts(ctx context.Context, threshold int, alerts []inventory.Alert) error {
	if len(alerts) == 0 {
		return nil
	}

	msgs := make([]kafka.Message, 0, len(alerts))
	for _, a := range alerts {
		data, err := json.Marshal(LowStockEvent{
			Type:      "low_stock",
			ProductID: a.ProductID,
			Name:      a.Name,
			Stock:     a.Stock,
			Threshold: threshold,
			At:        p.now().UTC(),
		})
		if err != nil {
			return fmt.Errorf("kafka: json.Marshal failed: %w", err)
		}
		msgs = append(msgs, kafka.Message{Key: []byte(strconv.Itoa(a.ProductID)), Value: data})
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := p.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("kafka: write failed: %w", err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NopPublisher drops alerts. Used when no brokers are configured.
type NopPublisher struct{}

func (NopPublisher) PublishAlerts(context.Context, int, []inventory.Alert) error { return nil }

func (NopPublisher) Close() error { return nil }
