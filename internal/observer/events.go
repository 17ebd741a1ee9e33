package observer

import (
	"context"
	"encoding/json"
	"time"

	"github.com/vriksha-lab/backend/pkg/pubsub"
)

type ChangeEvent struct {
	Version  uint64    `json:"version"`
	Users    int       `json:"users"`
	Saplings int       `json:"saplings"`
	At       time.Time `json:"at"`
}

// EventPublisher publishes a ChangeEvent to a topic after store changes.
// Consumers receive the latest version, not every intermediate one.
type EventPublisher struct {
	*coalescer

	source    Source
	publisher pubsub.Publisher
	topic     string
	now       func() time.Time
}

func NewEventPublisher(source Source, publisher pubsub.Publisher, topic string) *EventPublisher {
	p := &EventPublisher{
		source:    source,
		publisher: publisher,
		topic:     topic,
		now:       time.Now,
	}
	p.coalescer = newCoalescer("events", p.publish)
	return p
}

func (p *EventPublisher) publish(ctx context.Context) error {
	event := ChangeEvent{
		Version:  p.source.Version(),
		Users:    len(p.source.GetAllUsers()),
		Saplings: len(p.source.GetAllSaplings()),
		At:       p.now(),
	}

	b, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return p.publisher.Publish(ctx, p.topic, &pubsub.Pack{Key: []byte("store"), Msg: b})
}
