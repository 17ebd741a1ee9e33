package model

type ChatRequest struct {
	Text     string `json:"text"`
	ImageURL string `json:"imageUrl"`
}

type ChatResponse struct {
	Reply string `json:"reply"`
}
