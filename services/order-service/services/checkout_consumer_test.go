package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/yashrajoria/shop-backend/pkg/eventbus"
	"github.com/yashrajoria/shop-backend/services/order-service/cqrs"
	"github.com/yashrajoria/shop-backend/services/order-service/models"
)

// fakeOrderRepo behaves like the real repository backed by a unique index on
// checkout_id: the second insert for the same key fails with
// gorm.ErrDuplicatedKey.
type fakeOrderRepo struct {
	orders    map[string]*models.Order // keyed by checkout id
	createErr error
	blindFind bool // simulate the find racing ahead of a concurrent insert
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[string]*models.Order)}
}

func (r *fakeOrderRepo) FindByUserID(_ context.Context, userID string) ([]models.Order, error) {
	var out []models.Order
	for _, o := range r.orders {
		if o.UserID == userID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (r *fakeOrderRepo) FindByCheckoutID(_ context.Context, checkoutID string) (*models.Order, error) {
	if r.blindFind {
		r.blindFind = false
		return nil, nil
	}
	if o, ok := r.orders[checkoutID]; ok {
		return o, nil
	}
	return nil, nil
}

func (r *fakeOrderRepo) Create(_ context.Context, order *models.Order) error {
	if r.createErr != nil {
		return r.createErr
	}
	if _, exists := r.orders[order.CheckoutID]; exists {
		return gorm.ErrDuplicatedKey
	}
	r.orders[order.CheckoutID] = order
	return nil
}

func newTestConsumer(repo *fakeOrderRepo) *CheckoutConsumer {
	d := cqrs.NewDispatcher()
	d.MustRegister(CheckoutOrderCommandName, NewCheckoutOrderHandler(repo))
	return NewCheckoutConsumer(d, nil, zap.NewNop())
}

func checkoutEventJSON(t *testing.T, checkoutID string) []byte {
	t.Helper()
	payload, err := json.Marshal(models.CheckoutEvent{
		Event:      "checkout.requested",
		CheckoutID: checkoutID,
		UserID:     "u1",
		TotalPrice: decimal.NewFromInt(80),
		Items: []models.CheckoutItem{
			{ProductName: "shoes", Price: decimal.NewFromInt(40), Quantity: 2},
		},
		Shipping:   models.ShippingDetails{FirstName: "Ada", ZipCode: "N1"},
		Payment:    models.PaymentDetails{CardName: "Ada Lovelace", PaymentMethod: 1},
		Timestamp:  time.Now().UTC(),
	})
	require.NoError(t, err)
	return payload
}

func TestConsumerCreatesOrderFromEvent(t *testing.T) {
	repo := newFakeOrderRepo()
	consumer := newTestConsumer(repo)

	err := consumer.Handle(context.Background(), checkoutEventJSON(t, "chk-1"))

	require.NoError(t, err)
	order := repo.orders["chk-1"]
	require.NotNil(t, order)
	assert.Equal(t, "u1", order.UserID)
	assert.True(t, order.TotalPrice.Equal(decimal.NewFromInt(80)))
	assert.Equal(t, "Ada", order.FirstName)
	assert.Equal(t, "Ada Lovelace", order.CardName)
	require.Len(t, order.OrderItems, 1)
	assert.Equal(t, "shoes", order.OrderItems[0].ProductName)
	assert.Equal(t, 2, order.OrderItems[0].Quantity)
	assert.NotEqual(t, order.ID.String(), "00000000-0000-0000-0000-000000000000")
}

func TestConsumerDropsUndecodablePayload(t *testing.T) {
	repo := newFakeOrderRepo()
	consumer := newTestConsumer(repo)

	err := consumer.Handle(context.Background(), []byte("{not json"))

	require.ErrorIs(t, err, eventbus.ErrMalformed)
	assert.Empty(t, repo.orders)
}

func TestConsumerDropsEventMissingUserID(t *testing.T) {
	repo := newFakeOrderRepo()
	consumer := newTestConsumer(repo)

	payload, err := json.Marshal(models.CheckoutEvent{
		Event:      "checkout.requested",
		CheckoutID: "chk-1",
	})
	require.NoError(t, err)

	err = consumer.Handle(context.Background(), payload)

	require.ErrorIs(t, err, eventbus.ErrMalformed)
	assert.Empty(t, repo.orders)
}

func TestConsumerIsIdempotentAcrossRedelivery(t *testing.T) {
	repo := newFakeOrderRepo()
	consumer := newTestConsumer(repo)
	payload := checkoutEventJSON(t, "chk-1")

	require.NoError(t, consumer.Handle(context.Background(), payload))
	firstID := repo.orders["chk-1"].ID

	require.NoError(t, consumer.Handle(context.Background(), payload),
		"a redelivered event must ack, not error")

	assert.Len(t, repo.orders, 1, "redelivery must not create a second order")
	assert.Equal(t, firstID, repo.orders["chk-1"].ID)
}

func TestConsumerResolvesInsertRaceToWinner(t *testing.T) {
	repo := newFakeOrderRepo()
	consumer := newTestConsumer(repo)
	payload := checkoutEventJSON(t, "chk-1")

	require.NoError(t, consumer.Handle(context.Background(), payload))

	// The pre-insert lookup misses, so the handler falls through to Create
	// and hits the unique index like a losing concurrent consumer would.
	repo.blindFind = true
	require.NoError(t, consumer.Handle(context.Background(), payload))
	assert.Len(t, repo.orders, 1)
}

func TestConsumerReturnsTransientErrorForRetry(t *testing.T) {
	repo := newFakeOrderRepo()
	repo.createErr = errors.New("connection refused")
	consumer := newTestConsumer(repo)

	err := consumer.Handle(context.Background(), checkoutEventJSON(t, "chk-1"))

	require.Error(t, err)
	assert.NotErrorIs(t, err, eventbus.ErrMalformed,
		"storage failures must be retried, not dropped")
	assert.Empty(t, repo.orders)
}

func TestConsumerUnwrapsSNSEnvelope(t *testing.T) {
	repo := newFakeOrderRepo()
	consumer := newTestConsumer(repo)

	inner := checkoutEventJSON(t, "chk-1")
	envelope, err := json.Marshal(map[string]string{
		"Type":    "Notification",
		"Message": string(inner),
	})
	require.NoError(t, err)

	require.NoError(t, consumer.Handle(context.Background(), envelope))
	assert.NotNil(t, repo.orders["chk-1"])
}

func TestConsumerEndToEndOverMemoryBus(t *testing.T) {
	repo := newFakeOrderRepo()
	consumer := newTestConsumer(repo)
	bus := eventbus.NewMemoryBus()

	require.NoError(t, bus.Publish(context.Background(), "u1", checkoutEventJSON(t, "chk-1")))
	// Broker redelivers the same message once more.
	require.NoError(t, bus.Publish(context.Background(), "u1", checkoutEventJSON(t, "chk-1")))

	bus.Deliver(context.Background(), consumer.Handle)

	assert.Len(t, repo.orders, 1, "at-least-once delivery must still yield one order")
}
