package model

import "time"

type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

type TrendPoint struct {
	Date         time.Time `json:"date"`
	Label        string    `json:"label"`
	AverageScore float64   `json:"averageScore"`
	Count        int       `json:"count"`
}

type RainfallBin struct {
	Name         string  `json:"name"`
	Total        int     `json:"total"`
	Survived     int     `json:"survived"`
	SurvivalRate float64 `json:"survivalRate"`
}

type GetDashboardRequest struct{}

type GetDashboardResponse struct {
	TotalSaplings    int           `json:"totalSaplings"`
	SurvivalRate     float64       `json:"survivalRate"`
	FollowUpRate     float64       `json:"followUpRate"`
	ActiveVolunteers int           `json:"activeVolunteers"`
	Distribution     []StatusCount `json:"distribution"`
	Trend            []TrendPoint  `json:"trend"`
	Rainfall         []RainfallBin `json:"rainfall"`
	TopVolunteers    []User        `json:"topVolunteers"`
}

type GetVolunteerStatsRequest struct{}

type GetVolunteerStatsResponse struct {
	SaplingCount    int  `json:"saplingCount"`
	NeedsWaterCount int  `json:"needsWaterCount"`
	Points          int  `json:"points"`
	Standing        User `json:"standing"`
}

type ExportReportRequest struct {
	Format string `form:"format"`
}

type ExportReportResponse struct {
	Name string
	Type string
	Data []byte
}

func (r *ExportReportResponse) FileName() string    { return r.Name }
func (r *ExportReportResponse) ContentType() string { return r.Type }
func (r *ExportReportResponse) Content() []byte     { return r.Data }
