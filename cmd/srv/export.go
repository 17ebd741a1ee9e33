package main

import (
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v2"
	"github.com/vriksha-lab/backend/internal/domain/store"
	"github.com/vriksha-lab/backend/internal/report"
	"github.com/vriksha-lab/backend/pkg/enum"
	"github.com/vriksha-lab/backend/pkg/xcontext"
)

func (s *srv) startExport(cctx *cli.Context) error {
	format, err := enum.ToEnum[report.Format](cctx.String("format"))
	if err != nil {
		return fmt.Errorf("invalid format %s", cctx.String("format"))
	}

	s.loadDatabase()
	s.loadRepos()

	snap, ok, err := s.snapshotRepo.Load(s.ctx)
	if err != nil {
		return err
	}

	now := time.Now()
	if !ok {
		snap = store.DemoSnapshot(now)
	}

	out := cctx.String("out")
	if out == "" {
		out = report.FileName(format, now)
	}

	f, err := os.Create(out)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := report.Write(f, format, report.Build(snap, now)); err != nil {
		return err
	}

	xcontext.Logger(s.ctx).Infof("Wrote %s", out)
	return nil
}
