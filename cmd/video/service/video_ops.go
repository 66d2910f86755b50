package service

import (
	"context"
	"strings"

	"VidTube.com/cmd/model"
	"VidTube.com/pkg/errno"
	"VidTube.com/pkg/metrics"
	"VidTube.com/pkg/mq"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type VideoStore interface {
	VideoFinder
	InsertVideo(ctx context.Context, video *model.Video) error
	DeleteVideoCascade(ctx context.Context, videoId int64) error
}

type ViewRecorder interface {
	RecordView(ctx context.Context, videoId int64, userId *int64) error
}

type PublishParams struct {
	Title       string
	Description string
	Url         string
	Thumbnail   string
}

type VideoService struct {
	videos VideoStore
	views  ViewRecorder
	events mq.EventPublisher
}

func NewVideoService(videos VideoStore, views ViewRecorder, events mq.EventPublisher) *VideoService {
	return &VideoService{videos: videos, views: views, events: events}
}

// RecordView appends a view for viewer, which is nil for anonymous visitors.
func (s *VideoService) RecordView(ctx context.Context, videoId int64, viewer *int64) error {
	if err := s.views.RecordView(ctx, videoId, viewer); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errno.NotFoundErr.WithMessage("No video found")
		}
		hlog.CtxErrorf(ctx, "RecordView: video %d failed: %v", videoId, err)
		return err
	}
	metrics.RecordView(viewer == nil)
	var userId int64
	if viewer != nil {
		userId = *viewer
	}
	mq.Emit(ctx, s.events, mq.NewEngagementEvent(mq.EventView, userId, videoId, "view", "recorded"))
	return nil
}

func (s *VideoService) Publish(ctx context.Context, ownerId int64, params PublishParams) (*model.Video, error) {
	video := &model.Video{
		UserId:      ownerId,
		Title:       strings.TrimSpace(params.Title),
		Description: params.Description,
		Url:         strings.TrimSpace(params.Url),
		Thumbnail:   params.Thumbnail,
	}
	if video.Title == "" || video.Url == "" {
		return nil, errno.BadRequestErr.WithMessage("A video needs a title and a url")
	}
	if err := s.videos.InsertVideo(ctx, video); err != nil {
		hlog.CtxErrorf(ctx, "Publish: insert video failed: %v", err)
		return nil, err
	}
	hlog.CtxInfof(ctx, "user %d published video %d", ownerId, video.ID)
	return video, nil
}

// Delete removes a video owned by requesterId together with its views, reactions and comments.
func (s *VideoService) Delete(ctx context.Context, videoId, requesterId int64) error {
	video, err := s.videos.FindVideo(ctx, videoId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errno.NotFoundErr.WithMessage("No video found")
		}
		return err
	}
	if video.UserId != requesterId {
		return errno.ForbiddenErr.WithMessage("You are not authorized to delete this video")
	}
	if err := s.videos.DeleteVideoCascade(ctx, videoId); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errno.NotFoundErr.WithMessage("No video found")
		}
		hlog.CtxErrorf(ctx, "Delete: video %d failed: %v", videoId, err)
		return err
	}
	return nil
}
