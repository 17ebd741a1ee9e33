package pubsub

import (
	"context"
	"sync"
)

// Pack is one message. Key decides the partition, Msg is the payload.
type Pack struct {
	Key []byte
	Msg []byte
}

type Publisher interface {
	Publish(ctx context.Context, topic string, pack *Pack) error
	Stop(ctx context.Context) error
}

// MemoryPublisher keeps every published pack. It is used when no broker is
// configured and in tests.
type MemoryPublisher struct {
	mu     sync.Mutex
	topics map[string][]*Pack
}

func NewMemoryPublisher() *MemoryPublisher {
	return &MemoryPublisher{topics: map[string][]*Pack{}}
}

func (p *MemoryPublisher) Publish(ctx context.Context, topic string, pack *Pack) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.topics[topic] = append(p.topics[topic], pack)
	return nil
}

func (p *MemoryPublisher) Stop(ctx context.Context) error {
	return nil
}

func (p *MemoryPublisher) Packs(topic string) []*Pack {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]*Pack{}, p.topics[topic]...)
}
