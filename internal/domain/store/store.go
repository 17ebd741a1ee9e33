// Package store owns the canonical in-memory collections of users, saplings,
// social posts and challenges.
//
// All mutations are serialized behind one write lock and applied to a clone of
// the current state, which replaces the state only when the mutation
// succeeds. The broadcaster is notified once per committed mutation, after
// the lock has been released, so observers may read from the store.
package store

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/vriksha-lab/backend/internal/domain/broadcast"
	"github.com/vriksha-lab/backend/internal/entity"
	"github.com/vriksha-lab/backend/pkg/errorx"
	"github.com/vriksha-lab/backend/pkg/idutil"
	"golang.org/x/exp/slices"
)

// DefaultRewardPerUpdate is the number of points a guardian earns per
// sapling update when no option overrides it.
const DefaultRewardPerUpdate = 10

type Store struct {
	mu      sync.RWMutex
	state   state
	version uint64

	broadcaster *broadcast.Broadcaster
	reward      int
	now         func() time.Time
	ids         idutil.Generator
}

type Option func(*Store)

func WithRewardPerUpdate(points int) Option {
	return func(s *Store) {
		s.reward = points
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

func WithIDGenerator(g idutil.Generator) Option {
	return func(s *Store) {
		s.ids = g
	}
}

func New(broadcaster *broadcast.Broadcaster, opts ...Option) *Store {
	s := &Store{
		state:       newState(),
		broadcaster: broadcaster,
		reward:      DefaultRewardPerUpdate,
		now:         time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.ids == nil {
		g, err := idutil.NewSnowflakeGenerator(idutil.DefaultNode())
		if err != nil {
			s.ids = idutil.NewSequenceGenerator()
		} else {
			s.ids = g
		}
	}

	if s.broadcaster == nil {
		s.broadcaster = broadcast.New(nil)
	}

	return s
}

// Subscribe registers an observer on the store's broadcaster.
func (s *Store) Subscribe(observer broadcast.Observer) func() {
	return s.broadcaster.Subscribe(observer)
}

// Now reads the clock the store stamps its records with.
func (s *Store) Now() time.Time {
	return s.now()
}

// Version increases by one on every committed mutation.
func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// run applies fn to a clone of the state. The clone is committed only if fn
// succeeds and reports a change; then observers are notified exactly once.
func (s *Store) run(ctx context.Context, fn func(tx *Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	tx := &Tx{state: s.state.clone(), now: s.now(), reward: s.reward, ids: s.ids}
	if err := fn(tx); err != nil {
		s.mu.Unlock()
		return err
	}

	if !tx.changed {
		s.mu.Unlock()
		return nil
	}

	s.state = tx.state
	s.version++
	s.mu.Unlock()

	s.broadcaster.Notify()
	return nil
}

// Batch runs several mutations atomically. Observers are notified once if
// anything changed, and not at all if fn returns an error.
func (s *Store) Batch(ctx context.Context, fn func(tx *Tx) error) error {
	return s.run(ctx, fn)
}

func (s *Store) AddSapling(ctx context.Context, params AddSaplingParams) (entity.Sapling, error) {
	var result entity.Sapling
	err := s.run(ctx, func(tx *Tx) error {
		var err error
		result, err = tx.AddSapling(params)
		return err
	})
	return result, err
}

func (s *Store) AddSaplingUpdate(ctx context.Context, params AddUpdateParams) (entity.SaplingUpdate, error) {
	var result entity.SaplingUpdate
	err := s.run(ctx, func(tx *Tx) error {
		var err error
		result, err = tx.AddSaplingUpdate(params)
		return err
	})
	return result, err
}

func (s *Store) DeleteSapling(ctx context.Context, id string) error {
	return s.run(ctx, func(tx *Tx) error {
		return tx.DeleteSapling(id)
	})
}

func (s *Store) RegisterUser(ctx context.Context, name string, role entity.Role) (entity.User, error) {
	var result entity.User
	err := s.run(ctx, func(tx *Tx) error {
		var err error
		result, err = tx.RegisterUser(name, role)
		return err
	})
	return result, err
}

func (s *Store) CreateSocialPost(ctx context.Context, params CreatePostParams) (entity.SocialPost, error) {
	var result entity.SocialPost
	err := s.run(ctx, func(tx *Tx) error {
		var err error
		result, err = tx.CreateSocialPost(params)
		return err
	})
	return result, err
}

// ToggleLike likes postID for userID, or removes the like if it is already
// there. It returns whether the post is liked by userID afterwards.
func (s *Store) ToggleLike(ctx context.Context, postID, userID string) (bool, error) {
	var liked bool
	err := s.run(ctx, func(tx *Tx) error {
		var err error
		liked, err = tx.ToggleLike(postID, userID)
		return err
	})
	return liked, err
}

func (s *Store) AddComment(ctx context.Context, postID, userID, text string) (entity.Comment, error) {
	var result entity.Comment
	err := s.run(ctx, func(tx *Tx) error {
		var err error
		result, err = tx.AddComment(postID, userID, text)
		return err
	})
	return result, err
}

func (s *Store) AddChallenge(ctx context.Context, challenge entity.Challenge) (entity.Challenge, error) {
	var result entity.Challenge
	err := s.run(ctx, func(tx *Tx) error {
		var err error
		result, err = tx.AddChallenge(challenge)
		return err
	})
	return result, err
}

// Restore replaces the whole content of the store with snap.
func (s *Store) Restore(ctx context.Context, snap entity.Snapshot) error {
	return s.run(ctx, func(tx *Tx) error {
		st, err := stateFromSnapshot(snap)
		if err != nil {
			return err
		}

		tx.state = st
		tx.changed = true
		return nil
	})
}

func (s *Store) read() state {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *Store) GetUser(id string) (entity.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.state.users[id]
	if !ok {
		return entity.User{}, errorx.New(errorx.NotFound, "Not found user %s", id)
	}
	return u, nil
}

// FindUserByName looks a user up by name, ignoring case.
func (s *Store) FindUserByName(name string) (entity.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	name = strings.TrimSpace(name)
	for _, id := range s.state.userOrder {
		if strings.EqualFold(s.state.users[id].Name, name) {
			return s.state.users[id], nil
		}
	}
	return entity.User{}, errorx.New(errorx.NotFound, "Not found user %s", name)
}

func (s *Store) GetAllUsers() []entity.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.allUsers()
}

func (s *Store) GetSapling(id string) (entity.Sapling, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sapling, ok := s.state.saplings[id]
	if !ok {
		return entity.Sapling{}, errorx.New(errorx.NotFound, "Not found sapling %s", id)
	}
	return sapling.Clone(), nil
}

func (s *Store) GetAllSaplings() []entity.Sapling {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.allSaplings()
}

func (s *Store) GetSaplingsByGuardian(guardianID string) []entity.Sapling {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := []entity.Sapling{}
	for _, id := range s.state.saplingOrder {
		if sapling := s.state.saplings[id]; sapling.GuardianID == guardianID {
			result = append(result, sapling.Clone())
		}
	}
	return result
}

// GetSocialFeed returns all posts, newest first. Posts with the same
// timestamp come in reverse creation order.
func (s *Store) GetSocialFeed() []entity.SocialPost {
	s.mu.RLock()
	posts := s.state.allPosts()
	s.mu.RUnlock()

	for i, j := 0, len(posts)-1; i < j; i, j = i+1, j-1 {
		posts[i], posts[j] = posts[j], posts[i]
	}
	slices.SortStableFunc(posts, func(a, b entity.SocialPost) bool {
		return a.Timestamp.After(b.Timestamp)
	})
	return posts
}

func (s *Store) GetChallenges() []entity.Challenge {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]entity.Challenge{}, s.state.challenges...)
}

// Export returns a deep copy of the whole content.
func (s *Store) Export() entity.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.snapshot()
}
