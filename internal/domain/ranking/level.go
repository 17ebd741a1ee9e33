package ranking

import (
	"encoding/json"

	"github.com/vriksha-lab/backend/pkg/enum"
)

type Level int

var (
	Novice   = enum.New(Level(0), "Green Novice")
	Guardian = enum.New(Level(1), "Eco Guardian")
	Hero     = enum.New(Level(2), "Forest Hero")
)

func (l Level) String() string {
	return enum.ToString(l)
}

func (l Level) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.String())
}

func (l *Level) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}

	v, err := enum.ToEnum[Level](s)
	if err != nil {
		return err
	}

	*l = v
	return nil
}

// LevelFor returns the highest level whose threshold points has reached.
// thresholds[i] is the minimum number of points for Level(i+1) and must be
// ascending.
func LevelFor(points int, thresholds []int) Level {
	finalLevel := 0
	for level, value := range thresholds {
		if points < value {
			break
		}
		finalLevel = level + 1
	}

	if finalLevel > int(Hero) {
		return Hero
	}
	return Level(finalLevel)
}
