package service

import (
	"context"

	"VidTube.com/cmd/model"
	"VidTube.com/pkg/errno"
	"VidTube.com/pkg/metrics"
	"VidTube.com/pkg/mq"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type ReactionToggler interface {
	ToggleReaction(ctx context.Context, userId, videoId int64, requested model.Polarity) (model.Polarity, error)
}

type ReactionService struct {
	reactions ReactionToggler
	events    mq.EventPublisher
}

func NewReactionService(reactions ReactionToggler, events mq.EventPublisher) *ReactionService {
	return &ReactionService{reactions: reactions, events: events}
}

// Like toggles the viewer's like: liked becomes none, anything else becomes liked.
func (s *ReactionService) Like(ctx context.Context, videoId int64, viewer *int64) (model.Polarity, error) {
	return s.toggle(ctx, videoId, viewer, model.PolarityLike)
}

// Dislike mirrors Like.
func (s *ReactionService) Dislike(ctx context.Context, videoId int64, viewer *int64) (model.Polarity, error) {
	return s.toggle(ctx, videoId, viewer, model.PolarityDislike)
}

func (s *ReactionService) toggle(ctx context.Context, videoId int64, viewer *int64, requested model.Polarity) (model.Polarity, error) {
	if viewer == nil {
		return model.PolarityNone, errno.AuthorizationFailedErr
	}
	result, err := s.reactions.ToggleReaction(ctx, *viewer, videoId, requested)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.PolarityNone, errno.NotFoundErr.WithMessage("No video found")
		}
		hlog.CtxErrorf(ctx, "toggle %s on video %d failed: %v", requested, videoId, err)
		return model.PolarityNone, err
	}

	action := "like"
	if requested == model.PolarityDislike {
		action = "dislike"
	}
	metrics.RecordReactionToggle(action, result.String())
	mq.Emit(ctx, s.events, mq.NewEngagementEvent(mq.EventReaction, *viewer, videoId, action, result.String()))
	return result, nil
}
