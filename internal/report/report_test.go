package report

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/vriksha-lab/backend/internal/domain/analytics"
	"github.com/vriksha-lab/backend/internal/entity"
	"github.com/xuri/excelize/v2"
)

var now = time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)

func testSnapshot() entity.Snapshot {
	return entity.Snapshot{
		Users: []entity.User{
			{ID: "u1", Name: "Priya", Role: entity.RoleVolunteer, Points: 20},
		},
		Saplings: []entity.Sapling{
			{
				ID: "s1", Species: "Neem", GuardianID: "u1",
				Location:       entity.Location{Latitude: 28.6139, Longitude: 77.209},
				PlantationDate: now.AddDate(0, 0, -10),
				Updates: []entity.SaplingUpdate{
					{ID: "up1", Date: now.AddDate(0, 0, -10), Status: entity.Healthy},
					{ID: "up2", Date: now.AddDate(0, 0, -1), Status: entity.Lost},
				},
			},
			{
				ID: "s2", Species: "Peepal", GuardianID: "ghost",
				PlantationDate: now,
				Updates:        []entity.SaplingUpdate{},
			},
		},
	}
}

func TestBuild(t *testing.T) {
	r := Build(testSnapshot(), now)

	require.Len(t, r.Rows, 2)
	require.Equal(t, "Priya", r.Rows[0].Guardian)
	require.Equal(t, entity.Lost, r.Rows[0].Status)
	require.Equal(t, 2, r.Rows[0].Updates)
	require.Equal(t, now.AddDate(0, 0, -1), r.Rows[0].LastUpdate)

	require.Equal(t, "ghost", r.Rows[1].Guardian)
	require.Equal(t, analytics.NoData, r.Rows[1].Status)
	require.True(t, r.Rows[1].LastUpdate.IsZero())

	require.Equal(t, 2, r.Summary.TotalSaplings)
	require.Equal(t, 50.0, r.Summary.SurvivalRate)
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, CSV, Build(testSnapshot(), now)))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	require.Equal(t, Columns, records[0])
	require.Equal(t, []string{
		"s1", "Neem", "Priya", "28.6139", "77.2090", "2024-06-05", "2", "Lost", "2024-06-14",
	}, records[1])
	require.Equal(t, "No Data", records[2][7])
	require.Equal(t, "", records[2][8])
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, XLSX, Build(testSnapshot(), now)))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(registerSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	require.Equal(t, Columns, rows[0])
	require.Equal(t, "s1", rows[1][0])
	require.Equal(t, "Lost", rows[1][7])

	total, err := f.GetCellValue(summarySheet, "A1")
	require.NoError(t, err)
	require.Equal(t, "Total saplings: 2", total)
}

func TestWritePDF(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, PDF, Build(testSnapshot(), now)))
	require.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func TestWriteUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	require.Error(t, Write(&buf, Format("docx"), Build(testSnapshot(), now)))
}

func TestFileName(t *testing.T) {
	require.Equal(t, "saplings-2024-06-15.xlsx", FileName(XLSX, now))
	require.Equal(t, "text/csv", ContentType(CSV))
}
