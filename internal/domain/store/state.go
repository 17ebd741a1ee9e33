package store

import "github.com/vriksha-lab/backend/internal/entity"

// state is the canonical data owned by a Store. Maps give lookup by id and
// the order slices keep insertion order for deterministic reads.
type state struct {
	users     map[string]entity.User
	userOrder []string

	saplings     map[string]entity.Sapling
	saplingOrder []string

	posts     map[string]entity.SocialPost
	postOrder []string

	challenges []entity.Challenge
}

func newState() state {
	return state{
		users:    map[string]entity.User{},
		saplings: map[string]entity.Sapling{},
		posts:    map[string]entity.SocialPost{},
	}
}

func (st state) clone() state {
	c := state{
		users:        make(map[string]entity.User, len(st.users)),
		userOrder:    append([]string{}, st.userOrder...),
		saplings:     make(map[string]entity.Sapling, len(st.saplings)),
		saplingOrder: append([]string{}, st.saplingOrder...),
		posts:        make(map[string]entity.SocialPost, len(st.posts)),
		postOrder:    append([]string{}, st.postOrder...),
		challenges:   append([]entity.Challenge{}, st.challenges...),
	}
	for k, v := range st.users {
		c.users[k] = v
	}
	for k, v := range st.saplings {
		c.saplings[k] = v.Clone()
	}
	for k, v := range st.posts {
		c.posts[k] = v.Clone()
	}
	return c
}

func (st state) allUsers() []entity.User {
	result := make([]entity.User, 0, len(st.userOrder))
	for _, id := range st.userOrder {
		result = append(result, st.users[id])
	}
	return result
}

func (st state) allSaplings() []entity.Sapling {
	result := make([]entity.Sapling, 0, len(st.saplingOrder))
	for _, id := range st.saplingOrder {
		result = append(result, st.saplings[id].Clone())
	}
	return result
}

func (st state) allPosts() []entity.SocialPost {
	result := make([]entity.SocialPost, 0, len(st.postOrder))
	for _, id := range st.postOrder {
		result = append(result, st.posts[id].Clone())
	}
	return result
}

func (st state) snapshot() entity.Snapshot {
	return entity.Snapshot{
		Users:      st.allUsers(),
		Saplings:   st.allSaplings(),
		Posts:      st.allPosts(),
		Challenges: append([]entity.Challenge{}, st.challenges...),
	}
}

func removeID(ids []string, id string) []string {
	result := make([]string, 0, len(ids))
	for _, v := range ids {
		if v != id {
			result = append(result, v)
		}
	}
	return result
}

func (st state) hasID(id string) bool {
	if _, ok := st.users[id]; ok {
		return true
	}
	if _, ok := st.posts[id]; ok {
		return true
	}
	for _, c := range st.challenges {
		if c.ID == id {
			return true
		}
	}
	for _, s := range st.saplings {
		if s.ID == id {
			return true
		}
		for _, u := range s.Updates {
			if u.ID == id {
				return true
			}
		}
	}
	for _, p := range st.posts {
		for _, c := range p.Comments {
			if c.ID == id {
				return true
			}
		}
	}
	return false
}
