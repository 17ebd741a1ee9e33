package store

import (
	"strings"
	"time"

	"github.com/vriksha-lab/backend/internal/entity"
	"github.com/vriksha-lab/backend/pkg/enum"
	"github.com/vriksha-lab/backend/pkg/errorx"
	"github.com/vriksha-lab/backend/pkg/idutil"
)

type AddSaplingParams struct {
	Species        string
	Location       *entity.Location
	GuardianID     string
	ImageURL       string
	Recommendation string
	Confidence     *float64
	Weather        *entity.Weather
	SoilCondition  string
}

type AddUpdateParams struct {
	SaplingID      string
	Status         entity.HealthStatus
	ImageURL       string
	UserID         string
	Recommendation string
	Confidence     *float64
	Weather        *entity.Weather
	SoilCondition  string
	SubmissionKey  string
}

type CreatePostParams struct {
	UserID    string
	SaplingID string
	Caption   string
	ImageURL  string
}

// Tx is a unit of work over a private copy of the store state. It is only
// valid inside the function passed to Store.Batch.
type Tx struct {
	state   state
	now     time.Time
	reward  int
	ids     idutil.Generator
	changed bool
}

func (tx *Tx) GetSapling(id string) (entity.Sapling, bool) {
	s, ok := tx.state.saplings[id]
	if !ok {
		return entity.Sapling{}, false
	}
	return s.Clone(), true
}

func (tx *Tx) GetUser(id string) (entity.User, bool) {
	u, ok := tx.state.users[id]
	return u, ok
}

func (tx *Tx) RegisterUser(name string, role entity.Role) (entity.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return entity.User{}, errorx.New(errorx.ValidationFailed, "Require a user name")
	}

	if _, err := enum.ToEnum[entity.Role](string(role)); err != nil {
		return entity.User{}, errorx.New(errorx.ValidationFailed, "Invalid role %s", role)
	}

	u := entity.User{ID: tx.newID("user"), Name: name, Role: role}
	tx.state.users[u.ID] = u
	tx.state.userOrder = append(tx.state.userOrder, u.ID)
	tx.changed = true
	return u, nil
}

// AddSapling registers a sapling together with its first, Healthy update
// taken from the registration photo. Registration earns no points.
func (tx *Tx) AddSapling(params AddSaplingParams) (entity.Sapling, error) {
	species := strings.TrimSpace(params.Species)
	if species == "" {
		return entity.Sapling{}, errorx.New(errorx.ValidationFailed, "Require a species")
	}

	if params.Location == nil {
		return entity.Sapling{}, errorx.New(errorx.ValidationFailed, "Require a location")
	}

	if !params.Location.Valid() {
		return entity.Sapling{}, errorx.New(errorx.ValidationFailed, "Invalid location %v", *params.Location)
	}

	if err := validateConfidence(params.Confidence); err != nil {
		return entity.Sapling{}, err
	}

	s := entity.Sapling{
		ID:             tx.newID("sapling"),
		Species:        species,
		Location:       *params.Location,
		GuardianID:     params.GuardianID,
		PlantationDate: tx.now,
	}

	first := entity.SaplingUpdate{
		ID:             tx.newID("update"),
		Date:           tx.now,
		Status:         entity.Healthy,
		ImageURL:       params.ImageURL,
		SubmittedBy:    params.GuardianID,
		Recommendation: params.Recommendation,
		Confidence:     params.Confidence,
		Weather:        params.Weather,
		SoilCondition:  params.SoilCondition,
	}
	s.Updates = []entity.SaplingUpdate{first.Clone()}

	tx.state.saplings[s.ID] = s
	tx.state.saplingOrder = append(tx.state.saplingOrder, s.ID)
	tx.changed = true
	return s.Clone(), nil
}

// AddSaplingUpdate appends an observation and rewards the sapling's guardian.
// A submission whose key was already recorded on the sapling is a replay: the
// recorded update is returned and nothing changes.
func (tx *Tx) AddSaplingUpdate(params AddUpdateParams) (entity.SaplingUpdate, error) {
	s, ok := tx.state.saplings[params.SaplingID]
	if !ok {
		return entity.SaplingUpdate{}, errorx.New(errorx.NotFound, "Not found sapling %s", params.SaplingID)
	}

	if _, err := enum.ToEnum[entity.HealthStatus](string(params.Status)); err != nil {
		return entity.SaplingUpdate{}, errorx.New(errorx.ValidationFailed, "Invalid health status %s", params.Status)
	}

	if err := validateConfidence(params.Confidence); err != nil {
		return entity.SaplingUpdate{}, err
	}

	if params.SubmissionKey != "" {
		for _, u := range s.Updates {
			if u.SubmissionKey == params.SubmissionKey {
				return u.Clone(), nil
			}
		}
	}

	date := tx.now
	if last, ok := s.LastUpdate(); ok && date.Before(last.Date) {
		date = last.Date
	}

	u := entity.SaplingUpdate{
		ID:             tx.newID("update"),
		Date:           date,
		Status:         params.Status,
		ImageURL:       params.ImageURL,
		SubmittedBy:    params.UserID,
		Recommendation: params.Recommendation,
		Confidence:     params.Confidence,
		Weather:        params.Weather,
		SoilCondition:  params.SoilCondition,
		SubmissionKey:  params.SubmissionKey,
	}.Clone()

	s.Updates = append(s.Updates, u)
	tx.state.saplings[s.ID] = s

	if guardian, ok := tx.state.users[s.GuardianID]; ok {
		guardian.Points += tx.reward
		tx.state.users[guardian.ID] = guardian
	}

	tx.changed = true
	return u.Clone(), nil
}

func (tx *Tx) DeleteSapling(id string) error {
	if _, ok := tx.state.saplings[id]; !ok {
		return errorx.New(errorx.NotFound, "Not found sapling %s", id)
	}

	delete(tx.state.saplings, id)
	tx.state.saplingOrder = removeID(tx.state.saplingOrder, id)
	tx.changed = true
	return nil
}

func (tx *Tx) CreateSocialPost(params CreatePostParams) (entity.SocialPost, error) {
	if _, ok := tx.state.users[params.UserID]; !ok {
		return entity.SocialPost{}, errorx.New(errorx.NotFound, "Not found user %s", params.UserID)
	}

	if params.SaplingID != "" {
		if _, ok := tx.state.saplings[params.SaplingID]; !ok {
			return entity.SocialPost{}, errorx.New(errorx.NotFound, "Not found sapling %s", params.SaplingID)
		}
	}

	caption := strings.TrimSpace(params.Caption)
	if caption == "" && params.ImageURL == "" {
		return entity.SocialPost{}, errorx.New(errorx.ValidationFailed, "Require a caption or an image")
	}

	p := entity.SocialPost{
		ID:        tx.newID("post"),
		UserID:    params.UserID,
		SaplingID: params.SaplingID,
		Caption:   caption,
		ImageURL:  params.ImageURL,
		Timestamp: tx.now,
		Likes:     []string{},
		Comments:  []entity.Comment{},
	}

	tx.state.posts[p.ID] = p
	tx.state.postOrder = append(tx.state.postOrder, p.ID)
	tx.changed = true
	return p.Clone(), nil
}

func (tx *Tx) ToggleLike(postID, userID string) (bool, error) {
	p, ok := tx.state.posts[postID]
	if !ok {
		return false, errorx.New(errorx.NotFound, "Not found post %s", postID)
	}

	if _, ok := tx.state.users[userID]; !ok {
		return false, errorx.New(errorx.NotFound, "Not found user %s", userID)
	}

	liked := !p.LikedBy(userID)
	if liked {
		p.Likes = append(p.Likes, userID)
	} else {
		p.Likes = removeID(p.Likes, userID)
	}

	tx.state.posts[postID] = p
	tx.changed = true
	return liked, nil
}

func (tx *Tx) AddComment(postID, userID, text string) (entity.Comment, error) {
	p, ok := tx.state.posts[postID]
	if !ok {
		return entity.Comment{}, errorx.New(errorx.NotFound, "Not found post %s", postID)
	}

	if _, ok := tx.state.users[userID]; !ok {
		return entity.Comment{}, errorx.New(errorx.NotFound, "Not found user %s", userID)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return entity.Comment{}, errorx.New(errorx.ValidationFailed, "Require a comment text")
	}

	c := entity.Comment{
		ID:        tx.newID("comment"),
		UserID:    userID,
		Text:      text,
		Timestamp: tx.now,
	}

	p.Comments = append(p.Comments, c)
	tx.state.posts[postID] = p
	tx.changed = true
	return c, nil
}

func (tx *Tx) AddChallenge(c entity.Challenge) (entity.Challenge, error) {
	if strings.TrimSpace(c.Title) == "" {
		return entity.Challenge{}, errorx.New(errorx.ValidationFailed, "Require a challenge title")
	}

	if c.Points < 0 {
		return entity.Challenge{}, errorx.New(errorx.ValidationFailed, "Require non-negative points")
	}

	if c.ID == "" {
		c.ID = tx.newID("challenge")
	}

	for _, existing := range tx.state.challenges {
		if existing.ID == c.ID {
			return entity.Challenge{}, errorx.New(errorx.AlreadyExists, "Challenge %s already exists", c.ID)
		}
	}

	tx.state.challenges = append(tx.state.challenges, c)
	tx.changed = true
	return c, nil
}

func validateConfidence(confidence *float64) error {
	if confidence != nil && (*confidence < 0 || *confidence > 1) {
		return errorx.New(errorx.ValidationFailed, "Confidence must be between 0 and 1")
	}
	return nil
}

// newID skips ids that are already taken, which happens with sequential
// generators after a restore.
func (tx *Tx) newID(prefix string) string {
	for {
		id := tx.ids.NewID(prefix)
		if !tx.state.hasID(id) {
			return id
		}
	}
}
