package model

import "time"

type Location struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lng"`
}

type Weather struct {
	Temperature float64 `json:"temp"`
	Humidity    float64 `json:"humidity"`
	Rainfall    float64 `json:"rainfall"`
}

type SaplingUpdate struct {
	ID             string    `json:"id"`
	Date           time.Time `json:"date"`
	Status         string    `json:"status"`
	ImageURL       string    `json:"imageUrl"`
	SubmittedBy    string    `json:"submittedBy"`
	Recommendation string    `json:"recommendation,omitempty"`
	Confidence     *float64  `json:"confidence,omitempty"`
	Weather        *Weather  `json:"weather,omitempty"`
	SoilCondition  string    `json:"soilCondition,omitempty"`
}

type Sapling struct {
	ID             string          `json:"id"`
	Species        string          `json:"species"`
	Location       Location        `json:"location"`
	GuardianID     string          `json:"guardianId"`
	GuardianName   string          `json:"guardianName,omitempty"`
	PlantationDate time.Time       `json:"plantationDate"`
	CurrentStatus  string          `json:"currentStatus"`
	Updates        []SaplingUpdate `json:"updates"`
}

type Analysis struct {
	Status         string   `json:"status"`
	Confidence     float64  `json:"confidence"`
	Recommendation string   `json:"recommendation"`
	Weather        Weather  `json:"weather"`
	SoilCondition  string   `json:"soilCondition"`
	Location       Location `json:"location"`
}

type GetSaplingsRequest struct {
	Query    string `form:"q"`
	Status   string `form:"status"`
	LostOnly bool   `form:"lost_only"`
}

type GetSaplingsResponse struct {
	Saplings []Sapling `json:"saplings"`
}

type GetMySaplingsRequest struct{}

type GetMySaplingsResponse struct {
	Saplings []Sapling `json:"saplings"`
}

type GetSaplingRequest struct {
	SaplingID string `form:"sapling_id"`
}

type GetSaplingResponse Sapling

// A missing latitude or longitude asks the server to locate the caller.
type AnalyzePhotoRequest struct {
	SaplingID string   `json:"saplingId"`
	ImageURL  string   `json:"imageUrl"`
	Latitude  *float64 `json:"lat"`
	Longitude *float64 `json:"lng"`
}

type AnalyzePhotoResponse Analysis

type RegisterSaplingRequest struct {
	Species   string   `json:"species"`
	ImageURL  string   `json:"imageUrl"`
	Latitude  *float64 `json:"lat"`
	Longitude *float64 `json:"lng"`
}

type RegisterSaplingResponse struct {
	Sapling Sapling `json:"sapling"`
}

// An empty Status takes the status suggested by the photo analysis.
type SubmitUpdateRequest struct {
	SaplingID     string `json:"saplingId"`
	ImageURL      string `json:"imageUrl"`
	Status        string `json:"status"`
	SubmissionKey string `json:"submissionKey"`
}

type SubmitUpdateResponse struct {
	Update SaplingUpdate `json:"update"`
}

type DeleteSaplingRequest struct {
	SaplingID string `json:"saplingId"`
}

type DeleteSaplingResponse struct{}

type GetForecastRequest struct {
	SaplingID string `form:"sapling_id"`
}

type GetForecastResponse struct {
	Percentage  float64 `json:"percentage"`
	Direction   string  `json:"direction"`
	Explanation string  `json:"explanation"`
}
