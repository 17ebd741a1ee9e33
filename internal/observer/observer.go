// Package observer holds the store observers that mirror state changes to
// the outside world. Observers never write back into the store.
//
// Notify runs synchronously inside the store's broadcast, so every observer
// that does I/O only marks itself dirty there and does the work on its own
// goroutine. Many changes in a burst collapse into one flush.
package observer

import (
	"context"

	"github.com/vriksha-lab/backend/internal/common"
	"github.com/vriksha-lab/backend/internal/domain/broadcast"
	"github.com/vriksha-lab/backend/internal/entity"
	"github.com/vriksha-lab/backend/pkg/xcontext"
)

// Source is the read side of the store the observers need.
type Source interface {
	Subscribe(observer broadcast.Observer) func()
	Version() uint64
	GetAllUsers() []entity.User
	GetAllSaplings() []entity.Sapling
	Export() entity.Snapshot
}

// coalescer runs flush on its own goroutine every time it was triggered at
// least once since the previous flush.
type coalescer struct {
	name    string
	trigger chan struct{}
	flush   func(ctx context.Context) error
}

func newCoalescer(name string, flush func(ctx context.Context) error) *coalescer {
	return &coalescer{
		name:    name,
		trigger: make(chan struct{}, 1),
		flush:   flush,
	}
}

// Notify never blocks.
func (c *coalescer) Notify() {
	select {
	case c.trigger <- struct{}{}:
	default:
	}
}

// Run flushes on every trigger until ctx is done.
func (c *coalescer) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-c.trigger:
			c.run(ctx)
		}
	}
}

func (c *coalescer) run(ctx context.Context) {
	if err := c.flush(ctx); err != nil {
		xcontext.Logger(ctx).Errorf("Observer %s cannot flush: %v", c.name, err)
		common.PromCounters[common.ObserverFailureTotal].WithLabelValues(c.name).Inc()
	}
}
