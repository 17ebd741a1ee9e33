package repository

import (
	"time"

	"github.com/vriksha-lab/backend/internal/entity"
)

// Rows mirror the entities column by column. Position keeps the insertion
// order of the store, which defines rank tie breaks and feed order. Times are
// read back in UTC.

type userRow struct {
	ID       string `gorm:"primaryKey"`
	Position int
	Name     string
	Role     string
	Points   int
}

func (userRow) TableName() string { return "users" }

type saplingRow struct {
	ID             string `gorm:"primaryKey"`
	Position       int
	Species        string
	Latitude       float64
	Longitude      float64
	GuardianID     string `gorm:"index"`
	PlantationDate time.Time
}

func (saplingRow) TableName() string { return "saplings" }

type saplingUpdateRow struct {
	SaplingID      string `gorm:"primaryKey"`
	Position       int    `gorm:"primaryKey;autoIncrement:false"`
	ID             string
	Date           time.Time
	Status         string
	ImageURL       string
	SubmittedBy    string
	Recommendation string
	Confidence     *float64
	HasWeather     bool
	Temperature    float64
	Humidity       float64
	Rainfall       float64
	SoilCondition  string
	SubmissionKey  string
}

func (saplingUpdateRow) TableName() string { return "sapling_updates" }

type postRow struct {
	ID        string `gorm:"primaryKey"`
	Position  int
	UserID    string
	SaplingID string
	Caption   string
	ImageURL  string
	Timestamp time.Time
}

func (postRow) TableName() string { return "social_posts" }

type postLikeRow struct {
	PostID   string `gorm:"primaryKey"`
	UserID   string `gorm:"primaryKey"`
	Position int
}

func (postLikeRow) TableName() string { return "post_likes" }

type commentRow struct {
	PostID    string `gorm:"primaryKey"`
	Position  int    `gorm:"primaryKey;autoIncrement:false"`
	ID        string
	UserID    string
	Text      string
	Timestamp time.Time
}

func (commentRow) TableName() string { return "post_comments" }

type challengeRow struct {
	ID          string `gorm:"primaryKey"`
	Position    int
	Title       string
	Description string
	Points      int
	EndDate     time.Time
}

func (challengeRow) TableName() string { return "challenges" }

type snapshotMetaRow struct {
	ID      int `gorm:"primaryKey;autoIncrement:false"`
	SavedAt time.Time
}

func (snapshotMetaRow) TableName() string { return "snapshot_meta" }

// Models lists every table of the snapshot, for migrations.
func Models() []any {
	return []any{
		&userRow{},
		&saplingRow{},
		&saplingUpdateRow{},
		&postRow{},
		&postLikeRow{},
		&commentRow{},
		&challengeRow{},
		&snapshotMetaRow{},
	}
}

type snapshotRows struct {
	users      []userRow
	saplings   []saplingRow
	updates    []saplingUpdateRow
	posts      []postRow
	likes      []postLikeRow
	comments   []commentRow
	challenges []challengeRow
}

func toRows(snap entity.Snapshot) snapshotRows {
	var rows snapshotRows

	for i, u := range snap.Users {
		rows.users = append(rows.users, userRow{
			ID: u.ID, Position: i, Name: u.Name, Role: string(u.Role), Points: u.Points,
		})
	}

	for i, s := range snap.Saplings {
		rows.saplings = append(rows.saplings, saplingRow{
			ID:             s.ID,
			Position:       i,
			Species:        s.Species,
			Latitude:       s.Location.Latitude,
			Longitude:      s.Location.Longitude,
			GuardianID:     s.GuardianID,
			PlantationDate: s.PlantationDate,
		})

		for j, u := range s.Updates {
			row := saplingUpdateRow{
				SaplingID:      s.ID,
				Position:       j,
				ID:             u.ID,
				Date:           u.Date,
				Status:         string(u.Status),
				ImageURL:       u.ImageURL,
				SubmittedBy:    u.SubmittedBy,
				Recommendation: u.Recommendation,
				Confidence:     u.Confidence,
				SoilCondition:  u.SoilCondition,
				SubmissionKey:  u.SubmissionKey,
			}
			if u.Weather != nil {
				row.HasWeather = true
				row.Temperature = u.Weather.Temperature
				row.Humidity = u.Weather.Humidity
				row.Rainfall = u.Weather.Rainfall
			}
			rows.updates = append(rows.updates, row)
		}
	}

	for i, p := range snap.Posts {
		rows.posts = append(rows.posts, postRow{
			ID:        p.ID,
			Position:  i,
			UserID:    p.UserID,
			SaplingID: p.SaplingID,
			Caption:   p.Caption,
			ImageURL:  p.ImageURL,
			Timestamp: p.Timestamp,
		})

		for j, userID := range p.Likes {
			rows.likes = append(rows.likes, postLikeRow{PostID: p.ID, UserID: userID, Position: j})
		}

		for j, c := range p.Comments {
			rows.comments = append(rows.comments, commentRow{
				PostID: p.ID, Position: j, ID: c.ID, UserID: c.UserID, Text: c.Text, Timestamp: c.Timestamp,
			})
		}
	}

	for i, c := range snap.Challenges {
		rows.challenges = append(rows.challenges, challengeRow{
			ID: c.ID, Position: i, Title: c.Title, Description: c.Description, Points: c.Points, EndDate: c.EndDate,
		})
	}

	return rows
}

func fromRows(rows snapshotRows) entity.Snapshot {
	snap := entity.Snapshot{
		Users:      []entity.User{},
		Saplings:   []entity.Sapling{},
		Posts:      []entity.SocialPost{},
		Challenges: []entity.Challenge{},
	}

	for _, u := range rows.users {
		snap.Users = append(snap.Users, entity.User{
			ID: u.ID, Name: u.Name, Role: entity.Role(u.Role), Points: u.Points,
		})
	}

	updates := map[string][]entity.SaplingUpdate{}
	for _, r := range rows.updates {
		u := entity.SaplingUpdate{
			ID:             r.ID,
			Date:           r.Date.UTC(),
			Status:         entity.HealthStatus(r.Status),
			ImageURL:       r.ImageURL,
			SubmittedBy:    r.SubmittedBy,
			Recommendation: r.Recommendation,
			Confidence:     r.Confidence,
			SoilCondition:  r.SoilCondition,
			SubmissionKey:  r.SubmissionKey,
		}
		if r.HasWeather {
			u.Weather = &entity.Weather{Temperature: r.Temperature, Humidity: r.Humidity, Rainfall: r.Rainfall}
		}
		updates[r.SaplingID] = append(updates[r.SaplingID], u)
	}

	for _, s := range rows.saplings {
		sapling := entity.Sapling{
			ID:             s.ID,
			Species:        s.Species,
			Location:       entity.Location{Latitude: s.Latitude, Longitude: s.Longitude},
			GuardianID:     s.GuardianID,
			PlantationDate: s.PlantationDate.UTC(),
			Updates:        updates[s.ID],
		}
		if sapling.Updates == nil {
			sapling.Updates = []entity.SaplingUpdate{}
		}
		snap.Saplings = append(snap.Saplings, sapling)
	}

	likes := map[string][]string{}
	for _, l := range rows.likes {
		likes[l.PostID] = append(likes[l.PostID], l.UserID)
	}

	comments := map[string][]entity.Comment{}
	for _, c := range rows.comments {
		comments[c.PostID] = append(comments[c.PostID], entity.Comment{
			ID: c.ID, UserID: c.UserID, Text: c.Text, Timestamp: c.Timestamp.UTC(),
		})
	}

	for _, p := range rows.posts {
		post := entity.SocialPost{
			ID:        p.ID,
			UserID:    p.UserID,
			SaplingID: p.SaplingID,
			Caption:   p.Caption,
			ImageURL:  p.ImageURL,
			Timestamp: p.Timestamp.UTC(),
			Likes:     likes[p.ID],
			Comments:  comments[p.ID],
		}
		if post.Likes == nil {
			post.Likes = []string{}
		}
		if post.Comments == nil {
			post.Comments = []entity.Comment{}
		}
		snap.Posts = append(snap.Posts, post)
	}

	for _, c := range rows.challenges {
		snap.Challenges = append(snap.Challenges, entity.Challenge{
			ID: c.ID, Title: c.Title, Description: c.Description, Points: c.Points, EndDate: c.EndDate.UTC(),
		})
	}

	return snap
}
