package service

import (
	"context"
	"strings"

	"VidTube.com/cmd/model"
	"VidTube.com/pkg/errno"
	"VidTube.com/pkg/mq"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type CommentStore interface {
	InsertComment(ctx context.Context, comment *model.Comment) error
	FindComment(ctx context.Context, commentId int64) (*model.Comment, error)
	DeleteComment(ctx context.Context, commentId int64) error
}

type CommentService struct {
	comments CommentStore
	events   mq.EventPublisher
}

func NewCommentService(comments CommentStore, events mq.EventPublisher) *CommentService {
	return &CommentService{comments: comments, events: events}
}

func (s *CommentService) Add(ctx context.Context, videoId, userId int64, text string) (*model.Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, errno.BadRequestErr.WithMessage("Comment text is required")
	}
	comment := &model.Comment{UserId: userId, VideoId: videoId, Text: text}
	if err := s.comments.InsertComment(ctx, comment); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errno.NotFoundErr.WithMessage("No video found")
		}
		hlog.CtxErrorf(ctx, "Add comment on video %d failed: %v", videoId, err)
		return nil, err
	}
	mq.Emit(ctx, s.events, mq.NewEngagementEvent(mq.EventComment, userId, videoId, "add", "created"))
	return comment, nil
}

// Delete removes a comment on videoId written by userId.
func (s *CommentService) Delete(ctx context.Context, videoId, commentId, userId int64) error {
	comment, err := s.comments.FindComment(ctx, commentId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errno.NotFoundErr.WithMessage("No comment found")
		}
		return err
	}
	if comment.VideoId != videoId {
		return errno.NotFoundErr.WithMessage("No comment found")
	}
	if comment.UserId != userId {
		return errno.ForbiddenErr.WithMessage("You are not authorized to delete this comment")
	}
	if err := s.comments.DeleteComment(ctx, commentId); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errno.NotFoundErr.WithMessage("No comment found")
		}
		hlog.CtxErrorf(ctx, "Delete comment %d failed: %v", commentId, err)
		return err
	}
	mq.Emit(ctx, s.events, mq.NewEngagementEvent(mq.EventComment, userId, videoId, "delete", "deleted"))
	return nil
}
