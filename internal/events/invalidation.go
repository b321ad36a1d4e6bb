package events

import (
	"context"
	"encoding/json"

	"github.com/benvansteenbergen/console-sub000/internal/pkg/logger"
	"github.com/benvansteenbergen/console-sub000/internal/repository/contract"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// FolderInvalidationTopic carries cache-key invalidations published by folder
// mutation routes (create folder, move file). TTL expiry stays as the
// backstop; these events just shorten the stale window after a mutation.
const FolderInvalidationTopic = "FOLDER_CACHE_INVALIDATION"

type FolderInvalidationMessage struct {
	CacheKey string `json:"cache_key"`
}

type IInvalidationPublisher interface {
	PublishInvalidation(cacheKey string)
}

type invalidationPublisher struct {
	pubSub *gochannel.GoChannel
	logger logger.ILogger
}

func NewInvalidationPublisher(pubSub *gochannel.GoChannel, log logger.ILogger) IInvalidationPublisher {
	return &invalidationPublisher{pubSub: pubSub, logger: log}
}

func (p *invalidationPublisher) PublishInvalidation(cacheKey string) {
	payload, err := json.Marshal(FolderInvalidationMessage{CacheKey: cacheKey})
	if err != nil {
		return
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	if err := p.pubSub.Publish(FolderInvalidationTopic, msg); err != nil {
		p.logger.Warn("Events", "Failed to publish invalidation", map[string]interface{}{"error": err.Error()})
	}
}

type IInvalidationConsumer interface {
	Consume(ctx context.Context) error
}

type invalidationConsumer struct {
	pubSub *gochannel.GoChannel
	cache  contract.FolderCache
	logger logger.ILogger
}

func NewInvalidationConsumer(pubSub *gochannel.GoChannel, cache contract.FolderCache, log logger.ILogger) IInvalidationConsumer {
	return &invalidationConsumer{pubSub: pubSub, cache: cache, logger: log}
}

func (c *invalidationConsumer) Consume(ctx context.Context) error {
	messages, err := c.pubSub.Subscribe(ctx, FolderInvalidationTopic)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			c.processMessage(msg)
		}
	}()

	return nil
}

func (c *invalidationConsumer) processMessage(msg *message.Message) {
	var payload FolderInvalidationMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		c.logger.Warn("Events", "Failed to unmarshal invalidation", map[string]interface{}{"error": err.Error()})
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	c.cache.Invalidate(payload.CacheKey)
	c.logger.Debug("Events", "Folder cache invalidated", map[string]interface{}{"cache_key": payload.CacheKey})
	msg.Ack()
}
