package store

import (
	"time"

	"github.com/vriksha-lab/backend/internal/entity"
)

const (
	DemoAdminID     = "user-admin"
	DemoVolunteerID = "user-1"
)

// DemoSnapshot returns the dataset used by the seed command and local runs.
// Dates are relative to now.
func DemoSnapshot(now time.Time) entity.Snapshot {
	day := func(n int) time.Time {
		return now.AddDate(0, 0, -n).Truncate(time.Hour)
	}
	weather := func(temp, humidity, rainfall float64) *entity.Weather {
		return &entity.Weather{Temperature: temp, Humidity: humidity, Rainfall: rainfall}
	}

	return entity.Snapshot{
		Users: []entity.User{
			{ID: DemoVolunteerID, Name: "Priya Sharma", Role: entity.RoleVolunteer, Points: 1250},
			{ID: "user-2", Name: "Arjun Mehta", Role: entity.RoleVolunteer, Points: 820},
			{ID: "user-3", Name: "Ananya Iyer", Role: entity.RoleVolunteer, Points: 430},
			{ID: "user-4", Name: "Rohan Das", Role: entity.RoleVolunteer, Points: 150},
			{ID: DemoAdminID, Name: "Admin", Role: entity.RoleAdmin},
		},
		Saplings: []entity.Sapling{
			{
				ID: "sapling-1", Species: "Neem", GuardianID: DemoVolunteerID,
				Location:       entity.Location{Latitude: 28.6139, Longitude: 77.2090},
				PlantationDate: day(40),
				Updates: []entity.SaplingUpdate{
					{ID: "update-1", Date: day(40), Status: entity.Healthy, SubmittedBy: DemoVolunteerID,
						ImageURL: "https://picsum.photos/seed/neem1/400/300", Weather: weather(31, 40, 0), SoilCondition: "Dry"},
					{ID: "update-2", Date: day(20), Status: entity.NeedsWater, SubmittedBy: DemoVolunteerID,
						ImageURL: "https://picsum.photos/seed/neem2/400/300", Weather: weather(36, 25, 0), SoilCondition: "Dry",
						Recommendation: "Water deeply twice a week until the monsoon arrives 💧"},
					{ID: "update-3", Date: day(2), Status: entity.Healthy, SubmittedBy: DemoVolunteerID,
						ImageURL: "https://picsum.photos/seed/neem3/400/300", Weather: weather(30, 60, 6), SoilCondition: "Moist"},
				},
			},
			{
				ID: "sapling-2", Species: "Peepal", GuardianID: "user-2",
				Location:       entity.Location{Latitude: 19.0760, Longitude: 72.8777},
				PlantationDate: day(30),
				Updates: []entity.SaplingUpdate{
					{ID: "update-4", Date: day(30), Status: entity.Healthy, SubmittedBy: "user-2",
						ImageURL: "https://picsum.photos/seed/peepal1/400/300", Weather: weather(29, 80, 18), SoilCondition: "Wet"},
					{ID: "update-5", Date: day(5), Status: entity.Damaged, SubmittedBy: "user-2",
						ImageURL: "https://picsum.photos/seed/peepal2/400/300", Weather: weather(28, 85, 22), SoilCondition: "Wet",
						Recommendation: "Stake the stem and clear debris around the base 🌿"},
				},
			},
			{
				ID: "sapling-3", Species: "Banyan", GuardianID: "user-3",
				Location:       entity.Location{Latitude: 12.9716, Longitude: 77.5946},
				PlantationDate: day(25),
				Updates: []entity.SaplingUpdate{
					{ID: "update-6", Date: day(25), Status: entity.Healthy, SubmittedBy: "user-3",
						ImageURL: "https://picsum.photos/seed/banyan1/400/300", Weather: weather(27, 55, 3), SoilCondition: "Normal"},
					{ID: "update-7", Date: day(10), Status: entity.Lost, SubmittedBy: "user-3",
						ImageURL: "https://picsum.photos/seed/banyan2/400/300", Weather: weather(35, 20, 0), SoilCondition: "Dry"},
				},
			},
			{
				ID: "sapling-4", Species: "Gulmohar", GuardianID: DemoVolunteerID,
				Location:       entity.Location{Latitude: 28.5355, Longitude: 77.3910},
				PlantationDate: day(8),
				Updates: []entity.SaplingUpdate{
					{ID: "update-8", Date: day(8), Status: entity.Healthy, SubmittedBy: DemoVolunteerID,
						ImageURL: "https://picsum.photos/seed/gulmohar1/400/300", Weather: weather(33, 45, 1), SoilCondition: "Normal"},
				},
			},
		},
		Posts: []entity.SocialPost{
			{
				ID: "post-1", UserID: DemoVolunteerID, SaplingID: "sapling-1",
				Caption:   "My neem bounced back after a week of watering! 🌱",
				ImageURL:  "https://picsum.photos/seed/neem3/400/300",
				Timestamp: day(2),
				Likes:     []string{"user-2", "user-3"},
				Comments: []entity.Comment{
					{ID: "comment-1", UserID: "user-2", Text: "Looking great!", Timestamp: day(1)},
				},
			},
			{
				ID: "post-2", UserID: "user-2", SaplingID: "sapling-2",
				Caption:   "Storm season is rough on the little ones 🌧️",
				ImageURL:  "https://picsum.photos/seed/peepal2/400/300",
				Timestamp: day(5),
				Likes:     []string{},
				Comments:  []entity.Comment{},
			},
		},
		Challenges: []entity.Challenge{
			{
				ID:          "challenge-1",
				Title:       "Monsoon Check-in Week",
				Description: "Post an update for every sapling you guard before the week ends.",
				Points:      50,
				EndDate:     now.AddDate(0, 0, 7).Truncate(time.Hour),
			},
		},
	}
}
