package service

import (
	"context"
	"encoding/json"

	"github.com/YarinTwito/whatsapp-smart-agent/internal/pkg/logger"
	"github.com/YarinTwito/whatsapp-smart-agent/pkg/whatsapp"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub     *gochannel.GoChannel
	topicName  string
	dispatcher IDispatcherService
	logger     logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	dispatcher IDispatcherService,
	logger logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:     pubSub,
		topicName:  topicName,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

// processMessage hands each inbound event to the dispatcher on its own
// goroutine so one slow ingestion never blocks other users. The webhook was
// already acknowledged upstream, so messages are always Acked; the
// dispatcher's idempotency store handles redelivery.
func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var event whatsapp.Event
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		cs.logger.Error("consumer", "failed to unmarshal inbound event", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Ack()
		return
	}

	go func() {
		if err := cs.dispatcher.HandleEvent(ctx, &event); err != nil {
			cs.logger.Error("consumer", "dispatcher failed", map[string]interface{}{
				"message_id": event.MessageId,
				"user_id":    event.UserId,
				"error":      err.Error(),
			})
		}
	}()

	msg.Ack()
}
