package service

import (
	"context"

	"VidTube.com/cmd/model"
	"VidTube.com/pkg/errno"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

type VideoFinder interface {
	FindVideo(ctx context.Context, videoId int64) (*model.Video, error)
}

type ViewCounter interface {
	CountViews(ctx context.Context, videoId int64) (int64, error)
	CountViewsBatch(ctx context.Context, videoIds []int64) (map[int64]int64, error)
	HasViewed(ctx context.Context, userId, videoId int64) (bool, error)
}

type ReactionReader interface {
	GetReaction(ctx context.Context, userId, videoId int64) (model.Polarity, error)
	CountReactions(ctx context.Context, videoId int64) (likes, dislikes int64, err error)
}

type SubscriptionReader interface {
	CountSubscribers(ctx context.Context, channelId int64) (int64, error)
	IsSubscribed(ctx context.Context, subscriberId, channelId int64) (bool, error)
}

type CommentReader interface {
	CountComments(ctx context.Context, videoId int64) (int64, error)
	ListByVideo(ctx context.Context, videoId int64) ([]*model.Comment, error)
}

// VideoCard is a feed entry: the video, its owner and its view count.
type VideoCard struct {
	*model.Video
	ViewCount int64 `json:"views"`
}

// VideoDetail is the aggregate shown on the watch page. It is computed on every request.
type VideoDetail struct {
	*model.Video
	ViewCount       int64            `json:"views"`
	LikeCount       int64            `json:"likes_count"`
	DislikeCount    int64            `json:"dislikes_count"`
	SubscriberCount int64            `json:"subscribers_count"`
	CommentCount    int64            `json:"comments_count"`
	Comments        []*model.Comment `json:"comments"`
	IsLiked         bool             `json:"is_liked"`
	IsDisliked      bool             `json:"is_disliked"`
	IsSubscribed    bool             `json:"is_subscribed"`
	IsViewed        bool             `json:"is_viewed"`
	IsVideoMine     bool             `json:"is_video_mine"`
}

type EngagementService struct {
	videos    VideoFinder
	views     ViewCounter
	reactions ReactionReader
	subs      SubscriptionReader
	comments  CommentReader
}

func NewEngagementService(videos VideoFinder, views ViewCounter, reactions ReactionReader,
	subs SubscriptionReader, comments CommentReader) *EngagementService {
	return &EngagementService{videos: videos, views: views, reactions: reactions, subs: subs, comments: comments}
}

// Detail aggregates the counts of a video and, for a signed-in viewer, the viewer's flags.
// A nil viewer gets every flag false and no viewer-scoped query is issued.
func (s *EngagementService) Detail(ctx context.Context, videoId int64, viewer *int64) (*VideoDetail, error) {
	video, err := s.videos.FindVideo(ctx, videoId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errno.NotFoundErr.WithMessage("No video found")
		}
		hlog.CtxErrorf(ctx, "Detail: find video %d failed: %v", videoId, err)
		return nil, err
	}

	detail := &VideoDetail{Video: video}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		detail.ViewCount, err = s.views.CountViews(gctx, videoId)
		return err
	})
	g.Go(func() (err error) {
		detail.LikeCount, detail.DislikeCount, err = s.reactions.CountReactions(gctx, videoId)
		return err
	})
	g.Go(func() (err error) {
		detail.SubscriberCount, err = s.subs.CountSubscribers(gctx, video.UserId)
		return err
	})
	g.Go(func() (err error) {
		detail.CommentCount, err = s.comments.CountComments(gctx, videoId)
		return err
	})
	g.Go(func() (err error) {
		detail.Comments, err = s.comments.ListByVideo(gctx, videoId)
		return err
	})

	if viewer != nil {
		userId := *viewer
		detail.IsVideoMine = userId == video.UserId
		g.Go(func() error {
			polarity, err := s.reactions.GetReaction(gctx, userId, videoId)
			if err != nil {
				return err
			}
			detail.IsLiked = polarity == model.PolarityLike
			detail.IsDisliked = polarity == model.PolarityDislike
			return nil
		})
		g.Go(func() (err error) {
			detail.IsViewed, err = s.views.HasViewed(gctx, userId, videoId)
			return err
		})
		g.Go(func() (err error) {
			detail.IsSubscribed, err = s.subs.IsSubscribed(gctx, userId, video.UserId)
			return err
		})
	}

	if err := g.Wait(); err != nil {
		hlog.CtxErrorf(ctx, "Detail: aggregate video %d failed: %v", videoId, err)
		return nil, errors.WithMessage(err, "aggregate video detail failed")
	}
	return detail, nil
}

// AnnotateViews attaches view counts to videos with one grouped count, keeping the input order.
func (s *EngagementService) AnnotateViews(ctx context.Context, videos []*model.Video) ([]*VideoCard, error) {
	cards := make([]*VideoCard, 0, len(videos))
	if len(videos) == 0 {
		return cards, nil
	}
	ids := make([]int64, 0, len(videos))
	for _, v := range videos {
		ids = append(ids, v.ID)
	}
	counts, err := s.views.CountViewsBatch(ctx, ids)
	if err != nil {
		return nil, errors.WithMessage(err, "annotate view counts failed")
	}
	for _, v := range videos {
		cards = append(cards, &VideoCard{Video: v, ViewCount: counts[v.ID]})
	}
	return cards, nil
}
