package service

import (
	"context"

	"VidTube.com/pkg/errno"
	"VidTube.com/pkg/metrics"
	"VidTube.com/pkg/mq"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type SubscriptionStore interface {
	ToggleSubscription(ctx context.Context, subscriberId, channelId int64) (bool, error)
	SubscribedChannelIds(ctx context.Context, subscriberId int64) ([]int64, error)
}

type SubscriptionService struct {
	subs   SubscriptionStore
	events mq.EventPublisher
}

func NewSubscriptionService(subs SubscriptionStore, events mq.EventPublisher) *SubscriptionService {
	return &SubscriptionService{subs: subs, events: events}
}

// Toggle subscribes subscriberId to channelId, or unsubscribes when already subscribed.
func (s *SubscriptionService) Toggle(ctx context.Context, subscriberId, channelId int64) (bool, error) {
	if subscriberId == channelId {
		return false, errno.BadRequestErr.WithMessage("You cannot subscribe to your own channel")
	}
	subscribed, err := s.subs.ToggleSubscription(ctx, subscriberId, channelId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, errno.NotFoundErr.WithMessage("No channel found")
		}
		hlog.CtxErrorf(ctx, "toggle subscription %d -> %d failed: %v", subscriberId, channelId, err)
		return false, err
	}

	metrics.RecordSubscriptionToggle(subscribed)
	result := "unsubscribed"
	if subscribed {
		result = "subscribed"
	}
	event := mq.NewEngagementEvent(mq.EventSubscription, subscriberId, 0, "toggle", result)
	event.ChannelID = channelId
	mq.Emit(ctx, s.events, event)
	return subscribed, nil
}

func (s *SubscriptionService) ChannelIds(ctx context.Context, subscriberId int64) ([]int64, error) {
	ids, err := s.subs.SubscribedChannelIds(ctx, subscriberId)
	if err != nil {
		return nil, errors.WithMessage(err, "dao.SubscribedChannelIds failed")
	}
	return ids, nil
}
