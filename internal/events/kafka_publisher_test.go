package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"dashboard-service/internal/auth"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestKafkaEventPublisher_Publish(t *testing.T) {
	// Setup
	producer := mocks.NewSyncProducer(t, nil)
	var sent *sarama.ProducerMessage
	producer.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(msg *sarama.ProducerMessage) error {
		sent = msg
		return nil
	})
	publisher := NewKafkaEventPublisherWithProducer(producer, "dashboard.auth", zap.NewNop())
	event := AuthStateEvent{
		EventID:    "evt-1",
		EventType:  string(auth.EventSignedIn),
		Email:      "admin@example.com",
		UserID:     "user-1",
		OccurredAt: time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC),
	}

	// Execute
	err := publisher.Publish(context.Background(), event)

	// Assert
	require.NoError(t, err)
	require.NotNil(t, sent)
	assert.Equal(t, "dashboard.auth", sent.Topic)

	key, err := sent.Key.Encode()
	require.NoError(t, err)
	assert.Equal(t, "user-1", string(key))

	headers := map[string]string{}
	for _, h := range sent.Headers {
		headers[string(h.Key)] = string(h.Value)
	}
	assert.Equal(t, "SIGNED_IN", headers["event-type"])
	assert.Equal(t, "evt-1", headers["event-id"])
	assert.Equal(t, "2024-03-15T12:00:00Z", headers["timestamp"])

	value, err := sent.Value.Encode()
	require.NoError(t, err)
	var decoded AuthStateEvent
	require.NoError(t, json.Unmarshal(value, &decoded))
	assert.Equal(t, event, decoded)

	require.NoError(t, publisher.Close())
}

func TestKafkaEventPublisher_RetriesThenSucceeds(t *testing.T) {
	// Setup
	producer := mocks.NewSyncProducer(t, nil)
	producer.ExpectSendMessageAndFail(errors.New("broker unavailable"))
	producer.ExpectSendMessageAndSucceed()
	publisher := NewKafkaEventPublisherWithProducer(producer, "dashboard.auth", zap.NewNop())

	// Execute
	err := publisher.Publish(context.Background(), AuthStateEvent{EventType: "SIGNED_OUT", Email: "a@example.com"})

	// Assert
	assert.NoError(t, err)
	require.NoError(t, publisher.Close())
}

func TestKafkaEventPublisher_GivesUp(t *testing.T) {
	// Setup
	producer := mocks.NewSyncProducer(t, nil)
	for i := 0; i < publishAttempts; i++ {
		producer.ExpectSendMessageAndFail(errors.New("broker unavailable"))
	}
	publisher := NewKafkaEventPublisherWithProducer(producer, "dashboard.auth", zap.NewNop())

	// Execute
	err := publisher.Publish(context.Background(), AuthStateEvent{EventType: "SIGNED_OUT"})

	// Assert
	assert.Error(t, err)
	require.NoError(t, publisher.Close())
}

func TestAuthStateEvent_PartitionKey(t *testing.T) {
	assert.Equal(t, "u1", AuthStateEvent{UserID: "u1", Email: "a@example.com"}.PartitionKey())
	assert.Equal(t, "a@example.com", AuthStateEvent{Email: "a@example.com"}.PartitionKey())
	assert.Empty(t, AuthStateEvent{}.PartitionKey())
}

func TestSubscribeAuthEvents(t *testing.T) {
	// Setup
	logger := zap.NewNop()
	provider, err := auth.NewLocalProvider(
		auth.NewJWTManager("test-secret-key-min-32-chars-for-testing", logger),
		map[string]string{"admin@example.com": "admin123"},
		auth.LocalProviderConfig{},
		logger,
	)
	require.NoError(t, err)
	client := auth.NewClient(provider, logger)
	publisher := NewInMemoryEventPublisher(DefaultRetainedEvents, logger)
	unsubscribe := SubscribeAuthEvents(client, publisher, time.Second, logger)
	ctx := context.Background()

	// Execute
	session, err := client.SignIn(ctx, "admin@example.com", "admin123")
	require.NoError(t, err)
	require.NoError(t, client.SignOut(ctx, session.AccessToken))
	unsubscribe()
	_, err = client.SignIn(ctx, "admin@example.com", "admin123")
	require.NoError(t, err)

	// Assert
	published := publisher.Events()
	require.Len(t, published, 2)
	assert.Equal(t, "SIGNED_IN", published[0].EventType)
	assert.Equal(t, "SIGNED_OUT", published[1].EventType)
	assert.Equal(t, session.User.ID, published[1].UserID)
	assert.NotEmpty(t, published[0].EventID)
	assert.NotEqual(t, published[0].EventID, published[1].EventID)
}

func TestInMemoryEventPublisher_RetainsMostRecent(t *testing.T) {
	// Setup
	publisher := NewInMemoryEventPublisher(3, zap.NewNop())
	ctx := context.Background()

	// Execute
	for i := 0; i < 10000; i++ {
		require.NoError(t, publisher.Publish(ctx, AuthStateEvent{EventID: fmt.Sprintf("evt-%d", i)}))
	}

	// Assert
	published := publisher.Events()
	require.Len(t, published, 3)
	assert.Equal(t, "evt-9997", published[0].EventID)
	assert.Equal(t, "evt-9998", published[1].EventID)
	assert.Equal(t, "evt-9999", published[2].EventID)
}

func TestInMemoryEventPublisher_BelowCapacity(t *testing.T) {
	// Setup
	publisher := NewInMemoryEventPublisher(0, zap.NewNop())

	// Execute
	require.NoError(t, publisher.Publish(context.Background(), AuthStateEvent{EventID: "only"}))

	// Assert
	published := publisher.Events()
	require.Len(t, published, 1)
	assert.Equal(t, "only", published[0].EventID)
}
