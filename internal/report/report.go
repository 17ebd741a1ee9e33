// Package report renders the sapling register of a snapshot as CSV, PDF or
// XLSX for the admin export.
package report

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/vriksha-lab/backend/internal/domain/analytics"
	"github.com/vriksha-lab/backend/internal/entity"
	"github.com/vriksha-lab/backend/pkg/enum"
	"github.com/vriksha-lab/backend/pkg/errorx"
)

type Format string

var (
	CSV  = enum.New(Format("csv"), "csv")
	PDF  = enum.New(Format("pdf"), "pdf")
	XLSX = enum.New(Format("xlsx"), "xlsx")
)

const dateLayout = "2006-01-02"

// Columns are the headers of the sapling register, in order.
var Columns = []string{
	"Sapling ID",
	"Species",
	"Guardian",
	"Latitude",
	"Longitude",
	"Planted",
	"Updates",
	"Current Status",
	"Last Update",
}

type Row struct {
	SaplingID      string
	Species        string
	Guardian       string
	Latitude       float64
	Longitude      float64
	PlantationDate time.Time
	Updates        int
	Status         entity.HealthStatus
	LastUpdate     time.Time
}

func (r Row) values() []string {
	last := ""
	if !r.LastUpdate.IsZero() {
		last = r.LastUpdate.Format(dateLayout)
	}

	return []string{
		r.SaplingID,
		r.Species,
		r.Guardian,
		strconv.FormatFloat(r.Latitude, 'f', 4, 64),
		strconv.FormatFloat(r.Longitude, 'f', 4, 64),
		r.PlantationDate.Format(dateLayout),
		strconv.Itoa(r.Updates),
		string(r.Status),
		last,
	}
}

type Report struct {
	Title       string
	GeneratedAt time.Time
	Summary     analytics.Summary
	Rows        []Row
}

// Build collects one row per sapling. The guardian column falls back to the
// guardian id when the user is unknown.
func Build(snap entity.Snapshot, now time.Time) Report {
	names := make(map[string]string, len(snap.Users))
	for _, u := range snap.Users {
		names[u.ID] = u.Name
	}

	report := Report{
		Title:       "Sapling Register",
		GeneratedAt: now,
		Summary:     analytics.DashboardSummary(snap.Saplings, snap.Users),
		Rows:        make([]Row, 0, len(snap.Saplings)),
	}

	for _, s := range snap.Saplings {
		guardian, ok := names[s.GuardianID]
		if !ok {
			guardian = s.GuardianID
		}

		row := Row{
			SaplingID:      s.ID,
			Species:        s.Species,
			Guardian:       guardian,
			Latitude:       s.Location.Latitude,
			Longitude:      s.Location.Longitude,
			PlantationDate: s.PlantationDate,
			Updates:        len(s.Updates),
			Status:         analytics.CurrentStatus(s),
		}
		if last, ok := s.LastUpdate(); ok {
			row.LastUpdate = last.Date
		}

		report.Rows = append(report.Rows, row)
	}

	return report
}

func (r Report) summaryLines() []string {
	return []string{
		fmt.Sprintf("Total saplings: %d", r.Summary.TotalSaplings),
		fmt.Sprintf("Survival rate: %.1f%%", r.Summary.SurvivalRate),
		fmt.Sprintf("Follow-up rate: %.1f%%", r.Summary.FollowUpRate),
		fmt.Sprintf("Active volunteers: %d", r.Summary.ActiveVolunteers),
	}
}

// Write renders r in the given format.
func Write(w io.Writer, format Format, r Report) error {
	switch format {
	case CSV:
		return writeCSV(w, r)
	case PDF:
		return writePDF(w, r)
	case XLSX:
		return writeXLSX(w, r)
	}

	return errorx.New(errorx.BadRequest, "Invalid report format %s", format)
}

func FileName(format Format, now time.Time) string {
	return fmt.Sprintf("saplings-%s.%s", now.Format(dateLayout), format)
}

func ContentType(format Format) string {
	switch format {
	case CSV:
		return "text/csv"
	case PDF:
		return "application/pdf"
	case XLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}

	return "application/octet-stream"
}
