package model

import "time"

type Comment struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	UserName  string    `json:"userName,omitempty"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

type SocialPost struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	UserName  string    `json:"userName,omitempty"`
	SaplingID string    `json:"saplingId,omitempty"`
	Caption   string    `json:"caption"`
	ImageURL  string    `json:"imageUrl"`
	Timestamp time.Time `json:"timestamp"`
	Likes     []string  `json:"likes"`
	LikedByMe bool      `json:"likedByMe"`
	Comments  []Comment `json:"comments"`
}

type Challenge struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Points      int       `json:"points"`
	EndDate     time.Time `json:"endDate"`
}

type GetFeedRequest struct{}

type GetFeedResponse struct {
	Posts []SocialPost `json:"posts"`
}

type CreatePostRequest struct {
	SaplingID string `json:"saplingId"`
	Caption   string `json:"caption"`
	ImageURL  string `json:"imageUrl"`
}

type CreatePostResponse struct {
	Post SocialPost `json:"post"`
}

type ToggleLikeRequest struct {
	PostID string `json:"postId"`
}

type ToggleLikeResponse struct {
	Liked bool `json:"liked"`
}

type AddCommentRequest struct {
	PostID string `json:"postId"`
	Text   string `json:"text"`
}

type AddCommentResponse struct {
	Comment Comment `json:"comment"`
}

type SuggestCaptionRequest struct {
	ImageURL string `form:"image_url"`
}

type SuggestCaptionResponse struct {
	Caption string `json:"caption"`
}

type GetChallengesRequest struct{}

type GetChallengesResponse struct {
	Challenges []Challenge `json:"challenges"`
}
