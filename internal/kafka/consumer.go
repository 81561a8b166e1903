package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"dashboard-service/internal/cache"
	"dashboard-service/internal/config"
	"dashboard-service/internal/models"
	"dashboard-service/internal/repository"

	"github.com/IBM/sarama"
	"go.uber.org/zap"
)

// recordKind is the read-model collection an event touches
type recordKind int

const (
	kindUnknown recordKind = iota
	kindItem
	kindSale
)

// changeEvent is the payload published on the inventory and sales topics.
// Item or Sale carries the full record for upserts; deletes only need the id.
type changeEvent struct {
	ItemID string                `json:"itemId"`
	SaleID string                `json:"saleId"`
	Item   *models.InventoryItem `json:"item"`
	Sale   *models.SaleRecord    `json:"sale"`
}

// Consumer keeps the dashboard cache and read model in sync with inventory
// and sales events
type Consumer struct {
	consumerGroup sarama.ConsumerGroup
	handler       *changeHandler
	logger        *zap.Logger
	groupID       string
	topics        []string
}

// NewConsumer creates a Kafka consumer group. writer may be nil, in which
// case events only invalidate the cache.
func NewConsumer(cfg *config.Config, cacheClient cache.Cache, writer repository.ReadModelWriter, logger *zap.Logger) (*Consumer, error) {
	logger.Info("🔌 Creating Kafka consumer",
		zap.Strings("brokers", cfg.KafkaBrokers),
		zap.String("group_id", cfg.KafkaGroupID),
	)

	saramaConfig := sarama.NewConfig()
	saramaConfig.ClientID = cfg.KafkaClientID
	saramaConfig.Consumer.Group.Rebalance.Strategy = sarama.NewBalanceStrategyRoundRobin()
	saramaConfig.Consumer.Offsets.Initial = sarama.OffsetOldest
	saramaConfig.Consumer.Return.Errors = true
	saramaConfig.Version = sarama.V2_8_0_0

	saramaConfig.Net.DialTimeout = 10 * time.Second
	saramaConfig.Net.ReadTimeout = 10 * time.Second
	saramaConfig.Net.WriteTimeout = 10 * time.Second

	saramaConfig.Metadata.RefreshFrequency = 10 * time.Minute
	saramaConfig.Metadata.Retry.Max = 3
	saramaConfig.Metadata.Retry.Backoff = 250 * time.Millisecond

	consumerGroup, err := sarama.NewConsumerGroup(cfg.KafkaBrokers, cfg.KafkaGroupID, saramaConfig)
	if err != nil {
		logger.Error("❌ Failed to create Kafka consumer group",
			zap.Strings("brokers", cfg.KafkaBrokers),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to create consumer group: %w", err)
	}

	logger.Info("✅ Kafka consumer group created successfully",
		zap.Strings("brokers", cfg.KafkaBrokers),
		zap.String("group_id", cfg.KafkaGroupID),
	)

	return &Consumer{
		consumerGroup: consumerGroup,
		handler:       newChangeHandler(cfg.KafkaTopicItems, cfg.KafkaTopicSales, cacheClient, writer, logger),
		logger:        logger,
		groupID:       cfg.KafkaGroupID,
		topics:        []string{cfg.KafkaTopicItems, cfg.KafkaTopicSales},
	}, nil
}

// Start consumes until ctx is cancelled or the group is closed
func (c *Consumer) Start(ctx context.Context) error {
	go func() {
		for err := range c.consumerGroup.Errors() {
			c.logger.Error("Consumer error", zap.Error(err))
		}
	}()

	c.logger.Info("✅ Kafka consumer started",
		zap.Strings("topics", c.topics),
		zap.String("group_id", c.groupID),
	)

	for {
		// Consume returns on every rebalance
		if err := c.consumerGroup.Consume(ctx, c.topics, c.handler); err != nil {
			if errors.Is(err, sarama.ErrClosedConsumerGroup) {
				return nil
			}
			c.logger.Error("Error from consumer", zap.Error(err))
			return err
		}
		if ctx.Err() != nil {
			return nil
		}
	}
}

// Close closes the consumer
func (c *Consumer) Close() error {
	return c.consumerGroup.Close()
}

// changeHandler applies inventory and sales events
type changeHandler struct {
	itemsTopic string
	salesTopic string
	cache      cache.Cache
	writer     repository.ReadModelWriter
	logger     *zap.Logger
}

func newChangeHandler(itemsTopic, salesTopic string, cacheClient cache.Cache, writer repository.ReadModelWriter, logger *zap.Logger) *changeHandler {
	return &changeHandler{
		itemsTopic: itemsTopic,
		salesTopic: salesTopic,
		cache:      cacheClient,
		writer:     writer,
		logger:     logger,
	}
}

// Setup is run at the beginning of a new session
func (h *changeHandler) Setup(sarama.ConsumerGroupSession) error {
	return nil
}

// Cleanup is run at the end of a session
func (h *changeHandler) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

// ConsumeClaim processes messages of one partition
func (h *changeHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message, ok := <-claim.Messages():
			if !ok {
				return nil
			}

			eventType := extractEventType(message.Headers)
			if err := h.handle(session.Context(), message.Topic, eventType, message.Value); err != nil {
				h.logger.Error("Failed to apply event",
					zap.String("event_type", eventType),
					zap.String("topic", message.Topic),
					zap.Int32("partition", message.Partition),
					zap.Int64("offset", message.Offset),
					zap.Error(err),
				)
			}

			// Failed events are not retried; the cache entries expire on their own
			session.MarkMessage(message, "")

		case <-session.Context().Done():
			return nil
		}
	}
}

// handle applies one event to the read model and drops the affected cache entries
func (h *changeHandler) handle(ctx context.Context, topic, eventType string, payload []byte) error {
	kind := h.classify(topic, eventType)
	if kind == kindUnknown {
		h.logger.Warn("Skipping event of unknown kind",
			zap.String("topic", topic),
			zap.String("event_type", eventType),
		)
		return nil
	}

	var event changeEvent
	if len(payload) > 0 {
		if err := json.Unmarshal(payload, &event); err != nil {
			// still invalidate, the record changed even if we cannot read it
			h.invalidate(ctx, kind)
			return fmt.Errorf("failed to decode event: %w", err)
		}
	}

	var projectErr error
	if h.writer != nil {
		projectErr = h.project(ctx, kind, isDeletion(eventType), event)
	}

	h.invalidate(ctx, kind)
	return projectErr
}

func (h *changeHandler) project(ctx context.Context, kind recordKind, deleted bool, event changeEvent) error {
	switch kind {
	case kindItem:
		id := event.ItemID
		if event.Item != nil && id == "" {
			id = event.Item.ID
		}
		if deleted {
			if id == "" {
				return errors.New("item deletion without item id")
			}
			return h.writer.DeleteItem(ctx, id)
		}
		if event.Item == nil {
			return nil
		}
		if event.Item.ID == "" {
			event.Item.ID = id
		}
		return h.writer.UpsertItem(ctx, *event.Item)

	case kindSale:
		id := event.SaleID
		if event.Sale != nil && id == "" {
			id = event.Sale.ID
		}
		if deleted {
			if id == "" {
				return errors.New("sale deletion without sale id")
			}
			return h.writer.DeleteSale(ctx, id)
		}
		if event.Sale == nil {
			return nil
		}
		if event.Sale.ID == "" {
			event.Sale.ID = id
		}
		return h.writer.UpsertSale(ctx, *event.Sale)
	}
	return nil
}

// invalidate drops every cached entry of the collection. Sales entries are
// keyed by item too, so a targeted delete would miss some of them.
func (h *changeHandler) invalidate(ctx context.Context, kind recordKind) {
	if h.cache == nil {
		return
	}

	pattern := cache.ItemsPattern()
	if kind == kindSale {
		pattern = cache.SalesPattern()
	}
	if err := h.cache.DeleteByPattern(ctx, pattern); err != nil {
		h.logger.Warn("Failed to delete cache by pattern", zap.String("pattern", pattern), zap.Error(err))
		return
	}
	h.logger.Debug("Cache invalidated", zap.String("pattern", pattern))
}

// classify prefers the event-type header and falls back to the topic
func (h *changeHandler) classify(topic, eventType string) recordKind {
	switch {
	case strings.HasPrefix(eventType, "InventoryItem"):
		return kindItem
	case strings.HasPrefix(eventType, "Sale"):
		return kindSale
	case topic == h.itemsTopic:
		return kindItem
	case topic == h.salesTopic:
		return kindSale
	default:
		return kindUnknown
	}
}

func isDeletion(eventType string) bool {
	return strings.HasSuffix(eventType, "Deleted")
}

// extractEventType extracts event type from Kafka message headers
func extractEventType(headers []*sarama.RecordHeader) string {
	for _, header := range headers {
		if string(header.Key) == "event-type" {
			return string(header.Value)
		}
	}
	return ""
}
