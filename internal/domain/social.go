package domain

import (
	"context"
	"time"

	"github.com/vriksha-lab/backend/internal/domain/insight"
	"github.com/vriksha-lab/backend/internal/domain/store"
	"github.com/vriksha-lab/backend/internal/model"
	"github.com/vriksha-lab/backend/pkg/errorx"
	"github.com/vriksha-lab/backend/pkg/xcontext"
)

type SocialDomain interface {
	GetFeed(context.Context, *model.GetFeedRequest) (*model.GetFeedResponse, error)
	CreatePost(context.Context, *model.CreatePostRequest) (*model.CreatePostResponse, error)
	ToggleLike(context.Context, *model.ToggleLikeRequest) (*model.ToggleLikeResponse, error)
	AddComment(context.Context, *model.AddCommentRequest) (*model.AddCommentResponse, error)
	SuggestCaption(context.Context, *model.SuggestCaptionRequest) (*model.SuggestCaptionResponse, error)
	GetChallenges(context.Context, *model.GetChallengesRequest) (*model.GetChallengesResponse, error)
}

type socialDomain struct {
	store     *store.Store
	captioner insight.Captioner
}

func NewSocialDomain(store *store.Store, captioner insight.Captioner) *socialDomain {
	return &socialDomain{store: store, captioner: captioner}
}

func (d *socialDomain) GetFeed(
	ctx context.Context, req *model.GetFeedRequest,
) (*model.GetFeedResponse, error) {
	names := userNames(d.store.GetAllUsers())
	posts := d.store.GetSocialFeed()
	viewer := xcontext.RequestUserID(ctx)

	resp := &model.GetFeedResponse{Posts: make([]model.SocialPost, 0, len(posts))}
	for _, p := range posts {
		resp.Posts = append(resp.Posts, convertPost(p, names, viewer))
	}
	return resp, nil
}

func (d *socialDomain) CreatePost(
	ctx context.Context, req *model.CreatePostRequest,
) (*model.CreatePostResponse, error) {
	post, err := d.store.CreateSocialPost(ctx, store.CreatePostParams{
		UserID:    xcontext.RequestUserID(ctx),
		SaplingID: req.SaplingID,
		Caption:   req.Caption,
		ImageURL:  req.ImageURL,
	})
	if err != nil {
		return nil, domainError(ctx, "create post", err)
	}

	names := userNames(d.store.GetAllUsers())
	return &model.CreatePostResponse{Post: convertPost(post, names, post.UserID)}, nil
}

func (d *socialDomain) ToggleLike(
	ctx context.Context, req *model.ToggleLikeRequest,
) (*model.ToggleLikeResponse, error) {
	liked, err := d.store.ToggleLike(ctx, req.PostID, xcontext.RequestUserID(ctx))
	if err != nil {
		return nil, domainError(ctx, "toggle like", err)
	}

	return &model.ToggleLikeResponse{Liked: liked}, nil
}

func (d *socialDomain) AddComment(
	ctx context.Context, req *model.AddCommentRequest,
) (*model.AddCommentResponse, error) {
	comment, err := d.store.AddComment(ctx, req.PostID, xcontext.RequestUserID(ctx), req.Text)
	if err != nil {
		return nil, domainError(ctx, "add comment", err)
	}

	names := userNames(d.store.GetAllUsers())
	return &model.AddCommentResponse{Comment: convertComment(comment, names)}, nil
}

func (d *socialDomain) SuggestCaption(
	ctx context.Context, req *model.SuggestCaptionRequest,
) (*model.SuggestCaptionResponse, error) {
	if req.ImageURL == "" {
		return nil, errorx.New(errorx.BadRequest, "Require an image")
	}

	start := time.Now()
	caption, err := d.captioner.SuggestCaption(ctx, req.ImageURL)
	observeAI("caption", start)
	if err != nil {
		return nil, domainError(ctx, "suggest caption", err)
	}

	return &model.SuggestCaptionResponse{Caption: caption}, nil
}

func (d *socialDomain) GetChallenges(
	ctx context.Context, req *model.GetChallengesRequest,
) (*model.GetChallengesResponse, error) {
	challenges := d.store.GetChallenges()

	resp := &model.GetChallengesResponse{Challenges: make([]model.Challenge, 0, len(challenges))}
	for _, c := range challenges {
		resp.Challenges = append(resp.Challenges, convertChallenge(c))
	}
	return resp, nil
}
