package eventbus

import (
	"context"
	"errors"
	"strings"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ParseBrokers splits a comma separated broker list from the environment.
func ParseBrokers(csv string) []string {
	var brokers []string
	for _, b := range strings.Split(csv, ",") {
		b = strings.TrimSpace(b)
		if b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

// KafkaPublisher publishes to a single Kafka topic. RequireAll acks mean
// Publish does not return success until the message is persisted on all
// in-sync replicas.
type KafkaPublisher struct {
	writer *kafka.Writer
}

func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Topic:                  topic,
			Balancer:               &kafka.Hash{},
			RequiredAcks:           kafka.RequireAll,
			AllowAutoTopicCreation: true,
		},
	}
}

func (p *KafkaPublisher) Publish(ctx context.Context, key string, payload []byte) error {
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: payload,
	})
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// KafkaSubscriber reads a topic within a consumer group. Offsets are
// committed only after the handler succeeds or deliberately drops the
// message, so an unhandled message is redelivered after a rebalance or
// restart.
type KafkaSubscriber struct {
	reader *kafka.Reader
	log    *zap.Logger
}

func NewKafkaSubscriber(brokers []string, topic, groupID string, log *zap.Logger) *KafkaSubscriber {
	return &KafkaSubscriber{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:  brokers,
			Topic:    topic,
			GroupID:  groupID,
			MinBytes: 1e3,
			MaxBytes: 10e6,
		}),
		log: log,
	}
}

func (s *KafkaSubscriber) Run(ctx context.Context, handler Handler) error {
	defer s.reader.Close()

	for {
		m, err := s.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return ctx.Err()
			}
			s.log.Error("kafka fetch failed", zap.Error(err))
			continue
		}

		if err := handler(ctx, m.Value); err != nil {
			if errors.Is(err, ErrMalformed) {
				s.log.Warn("dropping malformed message",
					zap.String("topic", m.Topic),
					zap.Int64("offset", m.Offset),
					zap.Error(err))
				// fall through and commit: the message must not loop forever
			} else {
				s.log.Error("message handling failed, leaving uncommitted",
					zap.String("topic", m.Topic),
					zap.Int64("offset", m.Offset),
					zap.Error(err))
				continue
			}
		}

		if err := s.reader.CommitMessages(ctx, m); err != nil {
			s.log.Error("kafka commit failed", zap.Error(err))
		}
	}
}
