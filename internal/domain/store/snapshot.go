package store

import (
	"github.com/vriksha-lab/backend/internal/entity"
	"github.com/vriksha-lab/backend/pkg/enum"
	"github.com/vriksha-lab/backend/pkg/errorx"
)

// stateFromSnapshot validates snap and builds a state from a private copy of
// it. Only raw facts are read, derived values are never part of a snapshot.
func stateFromSnapshot(snap entity.Snapshot) (state, error) {
	snap = snap.Clone()
	st := newState()

	for _, u := range snap.Users {
		if u.ID == "" {
			return state{}, errorx.New(errorx.ValidationFailed, "Require a user id")
		}
		if _, ok := st.users[u.ID]; ok {
			return state{}, errorx.New(errorx.ValidationFailed, "Duplicated user %s", u.ID)
		}
		if _, err := enum.ToEnum[entity.Role](string(u.Role)); err != nil {
			return state{}, errorx.New(errorx.ValidationFailed, "Invalid role %s of user %s", u.Role, u.ID)
		}
		if u.Points < 0 {
			return state{}, errorx.New(errorx.ValidationFailed, "Negative points of user %s", u.ID)
		}

		st.users[u.ID] = u
		st.userOrder = append(st.userOrder, u.ID)
	}

	for _, s := range snap.Saplings {
		if s.ID == "" {
			return state{}, errorx.New(errorx.ValidationFailed, "Require a sapling id")
		}
		if _, ok := st.saplings[s.ID]; ok {
			return state{}, errorx.New(errorx.ValidationFailed, "Duplicated sapling %s", s.ID)
		}

		for i, u := range s.Updates {
			if _, err := enum.ToEnum[entity.HealthStatus](string(u.Status)); err != nil {
				return state{}, errorx.New(errorx.ValidationFailed, "Invalid status %s of update %s", u.Status, u.ID)
			}
			if i > 0 && u.Date.Before(s.Updates[i-1].Date) {
				return state{}, errorx.New(errorx.ValidationFailed, "Updates of sapling %s are not in time order", s.ID)
			}
		}

		if s.Updates == nil {
			s.Updates = []entity.SaplingUpdate{}
		}

		st.saplings[s.ID] = s
		st.saplingOrder = append(st.saplingOrder, s.ID)
	}

	for _, p := range snap.Posts {
		if p.ID == "" {
			return state{}, errorx.New(errorx.ValidationFailed, "Require a post id")
		}
		if _, ok := st.posts[p.ID]; ok {
			return state{}, errorx.New(errorx.ValidationFailed, "Duplicated post %s", p.ID)
		}

		likes := []string{}
		seen := map[string]bool{}
		for _, id := range p.Likes {
			if !seen[id] {
				seen[id] = true
				likes = append(likes, id)
			}
		}
		p.Likes = likes
		if p.Comments == nil {
			p.Comments = []entity.Comment{}
		}

		st.posts[p.ID] = p
		st.postOrder = append(st.postOrder, p.ID)
	}

	st.challenges = append(st.challenges, snap.Challenges...)
	return st, nil
}
