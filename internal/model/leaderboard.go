package model

type GetLeaderboardRequest struct {
	Limit int `form:"limit"`
}

type GetLeaderboardResponse struct {
	Standings []User `json:"standings"`
}

type GetMyStandingRequest struct{}

type GetMyStandingResponse User
