package eventbus

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEventBus_SubscribePublish(t *testing.T) {
	bus := NewEventBus(nil)
	var called bool
	bus.Subscribe("test", func(ctx context.Context, event Event) error {
		called = true
		assert.Equal(t, "test", event.Type())
		return nil
	})
	err := bus.Publish(context.Background(), NewBasicEvent("test", nil))
	assert.NoError(t, err)
	assert.True(t, called)
}

func TestEventBus_UnsubscribeSingleSubscription(t *testing.T) {
	bus := NewEventBus(nil)
	var first, second int

	id1 := bus.Subscribe("topic", func(ctx context.Context, event Event) error {
		first++
		return nil
	})
	bus.Subscribe("topic", func(ctx context.Context, event Event) error {
		second++
		return nil
	})
	assert.Equal(t, 2, bus.GetSubscriberCount("topic"))

	bus.Unsubscribe("topic", id1)
	assert.Equal(t, 1, bus.GetSubscriberCount("topic"))

	assert.NoError(t, bus.Publish(context.Background(), NewBasicEvent("topic", nil)))
	assert.Equal(t, 0, first)
	assert.Equal(t, 1, second)
}

func TestEventBus_CollectionChangedEvent(t *testing.T) {
	bus := NewEventBus(nil)
	path := "synagogues/shul-1/donations"

	var received CollectionChangedEvent
	bus.Subscribe(CollectionTopic(path), func(ctx context.Context, event Event) error {
		received = event.Data().(CollectionChangedEvent)
		return nil
	})

	evt := CollectionChangedEvent{
		Path:       path,
		DocumentID: "don-1",
		Kind:       ChangeUpdate,
		At:         time.Now(),
	}
	assert.NoError(t, bus.Publish(context.Background(), evt))
	assert.Equal(t, "don-1", received.DocumentID)
	assert.Equal(t, ChangeUpdate, received.Kind)
	assert.Equal(t, "collection.changed:"+path, evt.Type())
}

func TestEventBus_PublishAndForget(t *testing.T) {
	bus := NewEventBus(nil)
	var mu sync.Mutex
	calls := 0
	bus.Subscribe("async", func(ctx context.Context, event Event) error {
		mu.Lock()
		calls++
		mu.Unlock()
		return nil
	})

	bus.PublishAndForget(context.Background(), NewBasicEvent("async", nil))
	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return calls == 1
	}, time.Second, 5*time.Millisecond)
}

func TestEventBus_PublishWithoutSubscribers(t *testing.T) {
	bus := NewEventBus(nil)
	assert.NoError(t, bus.Publish(context.Background(), NewBasicEvent("nobody", nil)))
	assert.Empty(t, bus.GetEventTypes())
}
