package entity

import "time"

type Comment struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

type SocialPost struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	SaplingID string    `json:"saplingId,omitempty"`
	Caption   string    `json:"caption"`
	ImageURL  string    `json:"imageUrl"`
	Timestamp time.Time `json:"timestamp"`

	// Likes holds at most one entry per user, in the order the likes were
	// given.
	Likes    []string  `json:"likes"`
	Comments []Comment `json:"comments"`
}

func (p SocialPost) LikedBy(userID string) bool {
	for _, id := range p.Likes {
		if id == userID {
			return true
		}
	}
	return false
}

func (p SocialPost) Clone() SocialPost {
	c := p
	c.Likes = append([]string{}, p.Likes...)
	c.Comments = append([]Comment{}, p.Comments...)
	return c
}

type Challenge struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Points      int       `json:"points"`
	EndDate     time.Time `json:"endDate"`
}
