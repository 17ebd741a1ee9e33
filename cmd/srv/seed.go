package main

import (
	"fmt"
	"time"

	"github.com/urfave/cli/v2"
	"github.com/vriksha-lab/backend/internal/domain/store"
	"github.com/vriksha-lab/backend/pkg/xcontext"
)

func (s *srv) startSeed(cctx *cli.Context) error {
	s.loadDatabase()
	s.loadRepos()

	_, ok, err := s.snapshotRepo.Load(s.ctx)
	if err != nil {
		return err
	}

	if ok && !cctx.Bool("force") {
		return fmt.Errorf("a snapshot is already saved, use --force to overwrite it")
	}

	if err := s.snapshotRepo.Save(s.ctx, store.DemoSnapshot(time.Now())); err != nil {
		return err
	}

	xcontext.Logger(s.ctx).Infof("Saved the demo dataset")
	return nil
}
