package producer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/RoyceAzure/lab/orderline/internal/domain/model/event"
	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
)

var ErrInvalidParameter = errors.New("invalid parameter")

// MessageWriter 為 kafka.Writer 的最小子集
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type OrderItemProducer struct {
	writer MessageWriter
}

func NewOrderItemProducer(writer MessageWriter) *OrderItemProducer {
	if writer == nil {
		panic("order item producer dependency writer is nil")
	}
	return &OrderItemProducer{writer: writer}
}

// PublishOrderItemAdded 以訂單ID為 key，同一訂單的事件會落在同一 partition
func (p *OrderItemProducer) PublishOrderItemAdded(ctx context.Context, evt *event.OrderItemAddedEvent) error {
	msg, err := convertToMessage(evt)
	if err != nil {
		return err
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish %s event for order %d: %w", evt.EventType, evt.OrderID, err)
	}
	return nil
}

func (p *OrderItemProducer) Close() error {
	return p.writer.Close()
}

func convertToMessage(evt *event.OrderItemAddedEvent) (kafka.Message, error) {
	if evt == nil {
		return kafka.Message{}, ErrInvalidParameter
	}
	value, err := json.Marshal(evt)
	if err != nil {
		return kafka.Message{}, err
	}

	return kafka.Message{
		Key:   []byte(strconv.FormatUint(uint64(evt.OrderID), 10)),
		Value: value,
		Time:  evt.CreatedAt,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(evt.EventType)},
			{Key: "event_id", Value: []byte(evt.EventID)},
		},
	}, nil
}

// NewKafkaWriter 建立同步寫入的 kafka writer
func NewKafkaWriter(brokers []string, topic string, logger *zerolog.Logger) (*kafka.Writer, error) {
	if len(brokers) == 0 || topic == "" {
		return nil, fmt.Errorf("%w: brokers and topic are required", ErrInvalidParameter)
	}

	return &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		BatchTimeout: 10 * time.Millisecond,
		RequiredAcks: kafka.RequireAll,
		Async:        false,
		MaxAttempts:  3,
		Transport: &kafka.Transport{
			Dial: func(ctx context.Context, network string, address string) (net.Conn, error) {
				dialer := &kafka.Dialer{
					Timeout:   10 * time.Second,
					DualStack: true,
					KeepAlive: 30 * time.Second,
				}
				return dialer.DialContext(ctx, network, address)
			},
		},
		ErrorLogger: kafka.LoggerFunc(func(msg string, args ...interface{}) {
			logger.Error().Msgf("kafka producer error: "+msg, args...)
		}),
	}, nil
}
