package entity

// Snapshot is the unit of persistence and export. It carries no derived
// values: current status, rank, level and badges are recomputed from it.
type Snapshot struct {
	Users      []User       `json:"users"`
	Saplings   []Sapling    `json:"saplings"`
	Posts      []SocialPost `json:"posts"`
	Challenges []Challenge  `json:"challenges"`
}

func (s Snapshot) Clone() Snapshot {
	c := Snapshot{
		Users:      append([]User{}, s.Users...),
		Saplings:   make([]Sapling, len(s.Saplings)),
		Posts:      make([]SocialPost, len(s.Posts)),
		Challenges: append([]Challenge{}, s.Challenges...),
	}
	for i := range s.Saplings {
		c.Saplings[i] = s.Saplings[i].Clone()
	}
	for i := range s.Posts {
		c.Posts[i] = s.Posts[i].Clone()
	}
	return c
}
