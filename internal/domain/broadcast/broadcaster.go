// Package broadcast fans store changes out to registered observers.
package broadcast

import (
	"sync"

	"github.com/vriksha-lab/backend/pkg/logger"
)

// Observer is called after every committed change. It receives no payload:
// observers pull whatever they need from the store.
type Observer func()

type subscription struct {
	id       uint64
	observer Observer
	active   bool
}

type Broadcaster struct {
	mu     sync.Mutex
	nextID uint64
	subs   []*subscription
	logger logger.Logger
}

func New(l logger.Logger) *Broadcaster {
	if l == nil {
		l = logger.NewLogger(logger.SILENCE)
	}

	return &Broadcaster{logger: l}
}

// Subscribe registers observer and returns a function that removes it.
// Calling the returned function more than once is a no-op.
func (b *Broadcaster) Subscribe(observer Observer) (unsubscribe func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	sub := &subscription{id: b.nextID, observer: observer, active: true}
	b.subs = append(b.subs, sub)

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()

		if !sub.active {
			return
		}

		sub.active = false
		for i, s := range b.subs {
			if s.id == sub.id {
				b.subs = append(b.subs[:i:i], b.subs[i+1:]...)
				break
			}
		}
	}
}

// Notify calls every registered observer in registration order. The list is
// snapshotted first, so observers may subscribe or unsubscribe while being
// notified. An observer removed during the round is not called.
func (b *Broadcaster) Notify() {
	b.mu.Lock()
	subs := append([]*subscription{}, b.subs...)
	b.mu.Unlock()

	for _, sub := range subs {
		b.mu.Lock()
		active := sub.active
		b.mu.Unlock()

		if !active {
			continue
		}

		b.call(sub)
	}
}

func (b *Broadcaster) call(sub *subscription) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Errorf("Observer %d panicked: %v", sub.id, r)
		}
	}()

	sub.observer()
}

func (b *Broadcaster) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}
