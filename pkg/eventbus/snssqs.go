package eventbus

import (
	"context"
	"errors"
	"fmt"

	awspkg "github.com/yashrajoria/shop-backend/pkg/aws"
	"go.uber.org/zap"
)

// SNSPublisher publishes to an SNS topic. SNS acknowledges the Publish call
// only after the message is stored, which is the durability ack the checkout
// producer relies on.
type SNSPublisher struct {
	client   *awspkg.SNSClient
	topicArn string
}

func NewSNSPublisher(client *awspkg.SNSClient, topicArn string) *SNSPublisher {
	return &SNSPublisher{client: client, topicArn: topicArn}
}

func (p *SNSPublisher) Publish(ctx context.Context, key string, payload []byte) error {
	if err := p.client.Publish(ctx, p.topicArn, payload); err != nil {
		return fmt.Errorf("sns publish (key=%s): %w", key, err)
	}
	return nil
}

func (p *SNSPublisher) Close() error { return nil }

// SQSSubscriber long-polls an SQS queue. A message is deleted only after the
// handler succeeds or flags it malformed; otherwise it becomes visible again
// after the visibility timeout and SQS redelivers it.
type SQSSubscriber struct {
	consumer *awspkg.SQSConsumer
	log      *zap.Logger
}

func NewSQSSubscriber(consumer *awspkg.SQSConsumer, log *zap.Logger) *SQSSubscriber {
	return &SQSSubscriber{consumer: consumer, log: log}
}

func (s *SQSSubscriber) Run(ctx context.Context, handler Handler) error {
	return s.consumer.StartPolling(ctx, func(ctx context.Context, body string) error {
		err := handler(ctx, []byte(body))
		if err == nil {
			return nil
		}
		if errors.Is(err, ErrMalformed) {
			s.log.Warn("dropping malformed message", zap.Error(err))
			return nil // delete from the queue, dead-lettering is the queue's policy
		}
		return err // message stays on the queue for redelivery
	})
}
