package events

import (
	"context"
	"encoding/json"
	"strconv"

	"restaurant-pos/internal/domain"

	"github.com/segmentio/kafka-go"
)

// KafkaPublisher pushes completed-order events onto the reporting feed.
// Checkout treats publishing as best effort; a failed publish never fails
// the sale.
type KafkaPublisher struct {
	Writer *kafka.Writer
}

func NewKafkaPublisher(writer *kafka.Writer) *KafkaPublisher {
	return &KafkaPublisher{Writer: writer}
}

func (p *KafkaPublisher) PublishOrderCompleted(ctx context.Context, event domain.OrderEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return p.Writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(strconv.FormatInt(event.OrderID, 10)),
		Value: payload,
	})
}
