package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srgjo27/staybook/internal/core/domain"
	"github.com/srgjo27/staybook/internal/core/ports"
)

var _ ports.EventPublisher = (*Publisher)(nil)

func sampleEvent() domain.BookingEvent {
	return domain.BookingEvent{
		Type:      domain.BookingCreated,
		BookingID: 42,
		Booking: &domain.Booking{
			ID:       42,
			Property: "Room 1",
			CheckIn:  time.Date(2024, 1, 10, 8, 0, 0, 0, time.UTC),
			CheckOut: time.Date(2024, 1, 15, 14, 0, 0, 0, time.UTC),
			Adults:   2,
		},
		OccurredAt: time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC),
	}
}

func TestPublish_SendsJSONPayload(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	pub := NewPublisherWithProducer(producer, "staybook.bookings")

	producer.ExpectSendMessageWithCheckerFunctionAndSucceed(func(val []byte) error {
		var got domain.BookingEvent
		if err := json.Unmarshal(val, &got); err != nil {
			return err
		}
		if got.Type != domain.BookingCreated || got.BookingID != 42 || got.Booking == nil {
			return fmt.Errorf("unexpected event %+v", got)
		}
		return nil
	})

	require.NoError(t, pub.Publish(context.Background(), sampleEvent()))
	require.NoError(t, pub.Close())
}

func TestPublish_WrapsProducerError(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	pub := NewPublisherWithProducer(producer, "staybook.bookings")

	producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	err := pub.Publish(context.Background(), sampleEvent())
	require.Error(t, err)
	assert.True(t, errors.Is(err, sarama.ErrOutOfBrokers))
	assert.Contains(t, err.Error(), "booking.created for booking 42")
	require.NoError(t, pub.Close())
}

func TestPublish_CancelledContext(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	pub := NewPublisherWithProducer(producer, "staybook.bookings")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, pub.Publish(ctx, sampleEvent()), context.Canceled)
	require.NoError(t, pub.Close())
}

func TestMessage_KeyAndHeaders(t *testing.T) {
	pub := NewPublisherWithProducer(nil, "staybook.bookings")

	msg, err := pub.message(domain.BookingEvent{Type: domain.BookingDeleted, BookingID: 7})
	require.NoError(t, err)

	assert.Equal(t, "staybook.bookings", msg.Topic)
	key, err := msg.Key.Encode()
	require.NoError(t, err)
	assert.Equal(t, "7", string(key))
	require.Len(t, msg.Headers, 1)
	assert.Equal(t, "event-type", string(msg.Headers[0].Key))
	assert.Equal(t, "booking.deleted", string(msg.Headers[0].Value))
}
