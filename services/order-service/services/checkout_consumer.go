package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	awspkg "github.com/yashrajoria/shop-backend/pkg/aws"
	"github.com/yashrajoria/shop-backend/pkg/eventbus"
	"github.com/yashrajoria/shop-backend/services/order-service/cqrs"
	"github.com/yashrajoria/shop-backend/services/order-service/models"
)

// snsEnvelope is the wrapper SNS puts around a message before it lands in
// an SQS queue without raw message delivery enabled.
type snsEnvelope struct {
	Type    string `json:"Type"`
	Message string `json:"Message"`
}

// CheckoutConsumer turns checkout events from the bus into dispatched
// commands. Malformed payloads are dropped via eventbus.ErrMalformed so the
// bus dead-letters them; anything transient is returned as-is so the bus
// redelivers.
type CheckoutConsumer struct {
	Dispatcher *cqrs.Dispatcher
	Metrics    *awspkg.MetricsClient
	Log        *zap.Logger
}

func NewCheckoutConsumer(d *cqrs.Dispatcher, metrics *awspkg.MetricsClient, log *zap.Logger) *CheckoutConsumer {
	return &CheckoutConsumer{Dispatcher: d, Metrics: metrics, Log: log}
}

// Handle is the eventbus.Handler wired into the subscriber.
func (c *CheckoutConsumer) Handle(ctx context.Context, payload []byte) error {
	body := unwrapSNS(payload)

	var event models.CheckoutEvent
	if err := json.Unmarshal(body, &event); err != nil {
		c.Log.Warn("dropping undecodable checkout message", zap.Error(err))
		c.recordCount(awspkg.MetricMessagesDropped)
		return fmt.Errorf("%w: %v", eventbus.ErrMalformed, err)
	}

	cmd, err := mapCheckoutEventToCommand(event)
	if err != nil {
		c.Log.Warn("dropping invalid checkout event",
			zap.String("checkout_id", event.CheckoutID),
			zap.Error(err))
		c.recordCount(awspkg.MetricMessagesDropped)
		return fmt.Errorf("%w: %v", eventbus.ErrMalformed, err)
	}

	res, err := c.Dispatcher.Dispatch(ctx, cmd)
	if err != nil {
		c.Log.Error("checkout command failed",
			zap.String("checkout_id", cmd.CheckoutID),
			zap.Error(err))
		return err
	}

	result, ok := res.(CheckoutOrderResult)
	if !ok {
		return fmt.Errorf("unexpected result type %T from checkout handler", res)
	}
	if result.Duplicate {
		c.Log.Info("checkout event already processed",
			zap.String("checkout_id", cmd.CheckoutID),
			zap.String("order_id", result.OrderID.String()))
		c.recordCount(awspkg.MetricOrdersDuplicate)
		return nil
	}

	c.Log.Info("order created",
		zap.String("order_id", result.OrderID.String()),
		zap.String("checkout_id", cmd.CheckoutID),
		zap.String("user_id", cmd.UserID))
	c.recordCount(awspkg.MetricOrdersCreated)
	return nil
}

func (c *CheckoutConsumer) recordCount(name string) {
	if c.Metrics == nil || !c.Metrics.IsEnabled() {
		return
	}
	mctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_ = c.Metrics.RecordCount(mctx, name, map[string]string{"Service": "order-service"})
}

// unwrapSNS peels the SNS notification envelope when present, so the same
// handler serves both the Kafka and the SNS-to-SQS transports.
func unwrapSNS(payload []byte) []byte {
	var env snsEnvelope
	if err := json.Unmarshal(payload, &env); err != nil {
		return payload
	}
	if env.Type == "Notification" && env.Message != "" {
		return []byte(env.Message)
	}
	return payload
}

// mapCheckoutEventToCommand copies the event into the service's command
// type field by field. Fields the order service does not store, like the
// card CVV, stop here.
func mapCheckoutEventToCommand(event models.CheckoutEvent) (CheckoutOrderCommand, error) {
	if event.CheckoutID == "" {
		return CheckoutOrderCommand{}, fmt.Errorf("checkout event missing checkout_id")
	}
	if event.UserID == "" {
		return CheckoutOrderCommand{}, fmt.Errorf("checkout event missing user_id")
	}
	return CheckoutOrderCommand{
		CheckoutID: event.CheckoutID,
		UserID:     event.UserID,
		TotalPrice: event.TotalPrice,
		Items:      event.Items,
		Shipping:   event.Shipping,
		Payment:    event.Payment,
	}, nil
}
