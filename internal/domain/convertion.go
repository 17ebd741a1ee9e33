package domain

import (
	"context"
	"errors"

	"github.com/vriksha-lab/backend/internal/domain/analytics"
	"github.com/vriksha-lab/backend/internal/domain/ranking"
	"github.com/vriksha-lab/backend/internal/entity"
	"github.com/vriksha-lab/backend/internal/model"
	"github.com/vriksha-lab/backend/pkg/errorx"
	"github.com/vriksha-lab/backend/pkg/xcontext"
)

func convertUser(u entity.User) model.User {
	return model.User{
		ID:     u.ID,
		Name:   u.Name,
		Role:   string(u.Role),
		Points: u.Points,
	}
}

func convertStanding(s ranking.Standing) model.User {
	u := convertUser(s.User)
	u.Rank = s.Rank
	u.Level = s.Level.String()
	u.Badges = make([]model.Badge, 0, len(s.Badges))
	for _, b := range s.Badges {
		u.Badges = append(u.Badges, model.Badge{ID: string(b), Title: b.Title()})
	}
	return u
}

func convertWeather(w *entity.Weather) *model.Weather {
	if w == nil {
		return nil
	}
	return &model.Weather{Temperature: w.Temperature, Humidity: w.Humidity, Rainfall: w.Rainfall}
}

func convertSaplingUpdate(u entity.SaplingUpdate) model.SaplingUpdate {
	return model.SaplingUpdate{
		ID:             u.ID,
		Date:           u.Date,
		Status:         string(u.Status),
		ImageURL:       u.ImageURL,
		SubmittedBy:    u.SubmittedBy,
		Recommendation: u.Recommendation,
		Confidence:     u.Confidence,
		Weather:        convertWeather(u.Weather),
		SoilCondition:  u.SoilCondition,
	}
}

func convertSapling(s entity.Sapling, names map[string]string) model.Sapling {
	updates := make([]model.SaplingUpdate, 0, len(s.Updates))
	for _, u := range s.Updates {
		updates = append(updates, convertSaplingUpdate(u))
	}

	return model.Sapling{
		ID:             s.ID,
		Species:        s.Species,
		Location:       model.Location{Latitude: s.Location.Latitude, Longitude: s.Location.Longitude},
		GuardianID:     s.GuardianID,
		GuardianName:   names[s.GuardianID],
		PlantationDate: s.PlantationDate,
		CurrentStatus:  string(analytics.CurrentStatus(s)),
		Updates:        updates,
	}
}

func convertComment(c entity.Comment, names map[string]string) model.Comment {
	return model.Comment{
		ID:        c.ID,
		UserID:    c.UserID,
		UserName:  names[c.UserID],
		Text:      c.Text,
		Timestamp: c.Timestamp,
	}
}

func convertPost(p entity.SocialPost, names map[string]string, viewerID string) model.SocialPost {
	comments := make([]model.Comment, 0, len(p.Comments))
	for _, c := range p.Comments {
		comments = append(comments, convertComment(c, names))
	}

	return model.SocialPost{
		ID:        p.ID,
		UserID:    p.UserID,
		UserName:  names[p.UserID],
		SaplingID: p.SaplingID,
		Caption:   p.Caption,
		ImageURL:  p.ImageURL,
		Timestamp: p.Timestamp,
		Likes:     append([]string{}, p.Likes...),
		LikedByMe: viewerID != "" && p.LikedBy(viewerID),
		Comments:  comments,
	}
}

func convertChallenge(c entity.Challenge) model.Challenge {
	return model.Challenge{
		ID:          c.ID,
		Title:       c.Title,
		Description: c.Description,
		Points:      c.Points,
		EndDate:     c.EndDate,
	}
}

func convertNotification(n entity.Notification) model.Notification {
	return model.Notification{
		ID:        n.ID,
		SaplingID: n.SaplingID,
		Message:   n.Message,
		Type:      string(n.Severity),
	}
}

func userNames(users []entity.User) map[string]string {
	names := make(map[string]string, len(users))
	for _, u := range users {
		names[u.ID] = u.Name
	}
	return names
}

// domainError passes errorx errors through and hides everything else behind
// errorx.Unknown after logging it.
func domainError(ctx context.Context, action string, err error) error {
	var errx errorx.Error
	if errors.As(err, &errx) {
		return err
	}

	if ctx.Err() != nil {
		return errorx.New(errorx.Unavailable, "Request cancelled")
	}

	xcontext.Logger(ctx).Errorf("Cannot %s: %v", action, err)
	return errorx.Unknown
}
