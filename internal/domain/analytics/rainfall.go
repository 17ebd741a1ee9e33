package analytics

import "github.com/vriksha-lab/backend/internal/entity"

const (
	BinDry      = "Dry (0mm)"
	BinLow      = "Low (1-5mm)"
	BinMedium   = "Med (6-15mm)"
	BinHigh     = "High (>15mm)"
	binCapacity = 4
)

type RainfallBin struct {
	Name         string  `json:"name"`
	Total        int     `json:"total"`
	Survived     int     `json:"survived"`
	SurvivalRate float64 `json:"survivalRate"`
}

// RainfallBinOf classifies a mean rainfall in millimetres.
func RainfallBinOf(mean float64) string {
	switch {
	case mean <= 0:
		return BinDry
	case mean <= 5:
		return BinLow
	case mean <= 15:
		return BinMedium
	default:
		return BinHigh
	}
}

// MeanRainfall averages the rainfall of the updates of s that carry weather.
// ok is false when none of them do.
func MeanRainfall(s entity.Sapling) (mean float64, ok bool) {
	sum, n := 0.0, 0
	for _, u := range s.Updates {
		if u.Weather == nil {
			continue
		}
		sum += u.Weather.Rainfall
		n++
	}

	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}

// RainfallSurvival correlates mean rainfall with survival. Saplings without
// any weather data are left out. A sapling survives unless its current
// status is Lost.
func RainfallSurvival(saplings []entity.Sapling) []RainfallBin {
	bins := []RainfallBin{{Name: BinDry}, {Name: BinLow}, {Name: BinMedium}, {Name: BinHigh}}
	index := make(map[string]int, binCapacity)
	for i, b := range bins {
		index[b.Name] = i
	}

	for _, s := range saplings {
		mean, ok := MeanRainfall(s)
		if !ok {
			continue
		}

		b := &bins[index[RainfallBinOf(mean)]]
		b.Total++
		if CurrentStatus(s) != entity.Lost {
			b.Survived++
		}
	}

	for i := range bins {
		if bins[i].Total > 0 {
			bins[i].SurvivalRate = float64(bins[i].Survived) / float64(bins[i].Total) * 100
		}
	}
	return bins
}
