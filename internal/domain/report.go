package domain

import (
	"bytes"
	"context"
	"time"

	"github.com/vriksha-lab/backend/internal/domain/store"
	"github.com/vriksha-lab/backend/internal/model"
	"github.com/vriksha-lab/backend/internal/report"
	"github.com/vriksha-lab/backend/pkg/enum"
	"github.com/vriksha-lab/backend/pkg/errorx"
)

type ReportDomain interface {
	Export(context.Context, *model.ExportReportRequest) (*model.ExportReportResponse, error)
}

type reportDomain struct {
	store *store.Store
	now   func() time.Time
}

func NewReportDomain(store *store.Store, now func() time.Time) *reportDomain {
	return &reportDomain{store: store, now: now}
}

func (d *reportDomain) Export(
	ctx context.Context, req *model.ExportReportRequest,
) (*model.ExportReportResponse, error) {
	format := report.CSV
	if req.Format != "" {
		var err error
		format, err = enum.ToEnum[report.Format](req.Format)
		if err != nil {
			return nil, errorx.New(errorx.BadRequest, "Invalid report format %s", req.Format)
		}
	}

	now := d.now()
	var buf bytes.Buffer
	if err := report.Write(&buf, format, report.Build(d.store.Export(), now)); err != nil {
		return nil, domainError(ctx, "write report", err)
	}

	return &model.ExportReportResponse{
		Name: report.FileName(format, now),
		Type: report.ContentType(format),
		Data: buf.Bytes(),
	}, nil
}
