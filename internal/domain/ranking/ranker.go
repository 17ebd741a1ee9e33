// Package ranking orders volunteers by points and derives their level and
// badges. Nothing here is stored: a Ranker is a pure function of its input.
package ranking

import (
	"github.com/vriksha-lab/backend/config"
	"github.com/vriksha-lab/backend/internal/entity"
	"golang.org/x/exp/slices"
)

type Standing struct {
	User   entity.User `json:"user"`
	Rank   int         `json:"rank"`
	Level  Level       `json:"level"`
	Badges []Badge     `json:"badges"`
}

func (s Standing) HasBadge(b Badge) bool {
	for _, badge := range s.Badges {
		if badge == b {
			return true
		}
	}
	return false
}

type Ranker struct {
	// Only written at initialization.
	thresholds []int
	evaluators []BadgeEvaluator
}

func NewRanker(thresholds []int, evaluators ...BadgeEvaluator) *Ranker {
	return &Ranker{
		thresholds: append([]int{}, thresholds...),
		evaluators: evaluators,
	}
}

// NewRankerFromConfig builds the ranker with the level thresholds and the
// badges of the gamification config.
func NewRankerFromConfig(cfg config.GamificationConfigs) *Ranker {
	return NewRanker(
		[]int{cfg.GuardianPoints, cfg.HeroPoints},
		NewTopRankEvaluator(),
		NewHighScorerEvaluator(cfg.HighScorerPoints),
	)
}

// Rank keeps only volunteers and orders them by points descending. Ties keep
// the order of users, so the same input always yields the same ranks.
func (r *Ranker) Rank(users []entity.User) []Standing {
	volunteers := make([]entity.User, 0, len(users))
	for _, u := range users {
		if u.IsVolunteer() {
			volunteers = append(volunteers, u)
		}
	}

	slices.SortStableFunc(volunteers, func(a, b entity.User) bool {
		return a.Points > b.Points
	})

	standings := make([]Standing, 0, len(volunteers))
	for i, u := range volunteers {
		s := Standing{
			User:   u,
			Rank:   i + 1,
			Level:  LevelFor(u.Points, r.thresholds),
			Badges: []Badge{},
		}

		for _, e := range r.evaluators {
			if e.Evaluate(s) {
				s.Badges = append(s.Badges, e.Badge())
			}
		}

		standings = append(standings, s)
	}
	return standings
}

// StandingOf returns the standing of one volunteer. ok is false for unknown
// users and for admins, who are never ranked.
func (r *Ranker) StandingOf(users []entity.User, userID string) (Standing, bool) {
	for _, s := range r.Rank(users) {
		if s.User.ID == userID {
			return s, true
		}
	}
	return Standing{}, false
}

// Top returns at most n leading standings.
func (r *Ranker) Top(users []entity.User, n int) []Standing {
	standings := r.Rank(users)
	if n >= 0 && len(standings) > n {
		standings = standings[:n]
	}
	return standings
}

// Level returns the level of points without ranking anyone.
func (r *Ranker) Level(points int) Level {
	return LevelFor(points, r.thresholds)
}
