package model

type User struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Role   string  `json:"role"`
	Points int     `json:"points"`
	Rank   int     `json:"rank,omitempty"`
	Level  string  `json:"level,omitempty"`
	Badges []Badge `json:"badges,omitempty"`
}

type Badge struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

type LoginRequest struct {
	Name string `json:"name"`
	Role string `json:"role"`
}

type LoginResponse struct {
	User User `json:"user"`
}

type GetUserRequest struct {
	UserID string `form:"user_id"`
}

type GetUserResponse User
