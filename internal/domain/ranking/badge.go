package ranking

import "github.com/vriksha-lab/backend/pkg/enum"

type Badge string

var (
	TopRank    = enum.New(Badge("top_rank"), "top_rank")
	HighScorer = enum.New(Badge("high_scorer"), "high_scorer")
)

// Title is the name shown to users.
func (b Badge) Title() string {
	switch b {
	case TopRank:
		return "Rank #1"
	case HighScorer:
		return "Growth Hero"
	}
	return string(b)
}

// BadgeEvaluator decides whether a standing earns one badge. Evaluators only
// look at the standing they are given.
type BadgeEvaluator interface {
	Badge() Badge
	Evaluate(Standing) bool
}

type topRankEvaluator struct{}

func NewTopRankEvaluator() BadgeEvaluator {
	return topRankEvaluator{}
}

func (topRankEvaluator) Badge() Badge {
	return TopRank
}

func (topRankEvaluator) Evaluate(s Standing) bool {
	return s.Rank == 1
}

// highScorerEvaluator awards the badge once a volunteer reaches threshold
// points.
type highScorerEvaluator struct {
	threshold int
}

func NewHighScorerEvaluator(threshold int) BadgeEvaluator {
	return highScorerEvaluator{threshold: threshold}
}

func (highScorerEvaluator) Badge() Badge {
	return HighScorer
}

func (e highScorerEvaluator) Evaluate(s Standing) bool {
	return s.User.Points >= e.threshold
}
