package service

import (
	"context"
	"sort"
	"time"

	"VidTube.com/cmd/model"
	"VidTube.com/pkg/errno"
	"VidTube.com/pkg/metrics"
	"github.com/pkg/errors"
)

type VideoLister interface {
	ListRecent(ctx context.Context) ([]*model.Video, error)
	ListByUsers(ctx context.Context, userIds []int64) ([]*model.Video, error)
	ListByIds(ctx context.Context, ids []int64) ([]*model.Video, error)
	Search(ctx context.Context, query string) ([]*model.Video, error)
}

// FeedService builds the video lists. Feeds are not paginated.
type FeedService struct {
	videos     VideoLister
	engagement *EngagementService
}

func NewFeedService(videos VideoLister, engagement *EngagementService) *FeedService {
	return &FeedService{videos: videos, engagement: engagement}
}

// Recent is every video, newest first.
func (s *FeedService) Recent(ctx context.Context) ([]*VideoCard, error) {
	defer metrics.ObserveFeed("recent", time.Now())
	return s.recent(ctx)
}

func (s *FeedService) recent(ctx context.Context) ([]*VideoCard, error) {
	videos, err := s.videos.ListRecent(ctx)
	if err != nil {
		return nil, errors.WithMessage(err, "dao.ListRecent failed")
	}
	return s.engagement.AnnotateViews(ctx, videos)
}

// Trending is the recency feed reordered by view count. Ties keep their recency order.
func (s *FeedService) Trending(ctx context.Context) ([]*VideoCard, error) {
	defer metrics.ObserveFeed("trending", time.Now())
	cards, err := s.recent(ctx)
	if err != nil {
		return nil, err
	}
	RankTrending(cards)
	return cards, nil
}

// RankTrending sorts cards by view count, highest first, in place and stably.
func RankTrending(cards []*VideoCard) {
	sort.SliceStable(cards, func(i, j int) bool {
		return cards[i].ViewCount > cards[j].ViewCount
	})
}

// Search returns the videos whose title or description contains query, ignoring case, in
// storage order.
func (s *FeedService) Search(ctx context.Context, query string) ([]*VideoCard, error) {
	defer metrics.ObserveFeed("search", time.Now())
	if query == "" {
		return nil, errno.BadRequestErr.WithMessage("Please enter a search query")
	}
	videos, err := s.videos.Search(ctx, query)
	if err != nil {
		return nil, errors.WithMessage(err, "dao.Search failed")
	}
	return s.engagement.AnnotateViews(ctx, videos)
}

// FromChannels is the recency feed restricted to the given channels.
func (s *FeedService) FromChannels(ctx context.Context, channelIds []int64) ([]*VideoCard, error) {
	defer metrics.ObserveFeed("subscriptions", time.Now())
	videos, err := s.videos.ListByUsers(ctx, channelIds)
	if err != nil {
		return nil, errors.WithMessage(err, "dao.ListByUsers failed")
	}
	return s.engagement.AnnotateViews(ctx, videos)
}

// ByIds returns the videos in the order of ids, for liked and history pages.
func (s *FeedService) ByIds(ctx context.Context, ids []int64) ([]*VideoCard, error) {
	videos, err := s.videos.ListByIds(ctx, ids)
	if err != nil {
		return nil, errors.WithMessage(err, "dao.ListByIds failed")
	}
	return s.engagement.AnnotateViews(ctx, videos)
}
