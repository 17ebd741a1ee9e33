package observer

import (
	"context"
	"sync/atomic"

	"github.com/robfig/cron/v3"
	"github.com/vriksha-lab/backend/internal/entity"
	"github.com/vriksha-lab/backend/pkg/xcontext"
)

type SnapshotSaver interface {
	Save(ctx context.Context, snap entity.Snapshot) error
}

// Snapshotter persists the store on a cron schedule, but only when something
// changed since the last save.
type Snapshotter struct {
	source Source
	saver  SnapshotSaver
	dirty  atomic.Bool
	cron   *cron.Cron
}

func NewSnapshotter(source Source, saver SnapshotSaver) *Snapshotter {
	return &Snapshotter{source: source, saver: saver}
}

func (s *Snapshotter) Notify() {
	s.dirty.Store(true)
}

// Flush saves the store if it changed. The dirty flag is restored when the
// save fails so the next run retries.
func (s *Snapshotter) Flush(ctx context.Context) error {
	if !s.dirty.Swap(false) {
		return nil
	}

	if err := s.saver.Save(ctx, s.source.Export()); err != nil {
		s.dirty.Store(true)
		return err
	}

	return nil
}

// Start schedules Flush with the given cron spec, for example "@every 1m".
func (s *Snapshotter) Start(ctx context.Context, spec string) error {
	s.cron = cron.New()
	_, err := s.cron.AddFunc(spec, func() {
		if err := s.Flush(ctx); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot save snapshot: %v", err)
		}
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	return nil
}

// Stop waits for a running flush, then saves one last time.
func (s *Snapshotter) Stop(ctx context.Context) error {
	if s.cron != nil {
		<-s.cron.Stop().Done()
	}
	return s.Flush(ctx)
}
