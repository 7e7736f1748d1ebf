package service

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/YarinTwito/whatsapp-smart-agent/pkg/whatsapp"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/assert"
)

type recordingDispatcher struct {
	mu     sync.Mutex
	events []*whatsapp.Event
}

func (r *recordingDispatcher) HandleEvent(ctx context.Context, event *whatsapp.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return nil
}

func (r *recordingDispatcher) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events)
}

func TestConsumerDeliversEventsToDispatcher(t *testing.T) {
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	dispatcher := &recordingDispatcher{}

	svc := NewConsumerService(pubSub, "test-topic", dispatcher, nopLogger{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	assert.NoError(t, svc.Consume(ctx))

	payload, err := json.Marshal(&whatsapp.Event{
		UserId:    "u1",
		MessageId: "wamid.1",
		Kind:      whatsapp.KindText,
		Text:      "hello",
	})
	assert.NoError(t, err)

	err = pubSub.Publish("test-topic", message.NewMessage(watermill.NewUUID(), payload))
	assert.NoError(t, err)

	assert.Eventually(t, func() bool {
		return dispatcher.count() == 1
	}, time.Second, 10*time.Millisecond)

	dispatcher.mu.Lock()
	defer dispatcher.mu.Unlock()
	assert.Equal(t, "u1", dispatcher.events[0].UserId)
	assert.Equal(t, "hello", dispatcher.events[0].Text)
}

func TestConsumerSkipsMalformedPayload(t *testing.T) {
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	dispatcher := &recordingDispatcher{}

	svc := NewConsumerService(pubSub, "test-topic", dispatcher, nopLogger{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	assert.NoError(t, svc.Consume(ctx))

	err := pubSub.Publish("test-topic", message.NewMessage(watermill.NewUUID(), []byte("{broken")))
	assert.NoError(t, err)

	// A valid event published after the garbage still arrives, proving the
	// consumer did not wedge.
	payload, _ := json.Marshal(&whatsapp.Event{MessageId: "wamid.ok", Kind: whatsapp.KindText, Text: "hi"})
	err = pubSub.Publish("test-topic", message.NewMessage(watermill.NewUUID(), payload))
	assert.NoError(t, err)

	assert.Eventually(t, func() bool {
		return dispatcher.count() == 1
	}, time.Second, 10*time.Millisecond)
}
