package db

import (
	"context"

	"VidTube.com/cmd/model"
	"VidTube.com/pkg/database"
	"VidTube.com/pkg/utils"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type CommentDao struct {
	db  *gorm.DB
	ids utils.IDGenerator
}

func NewCommentDao(db *gorm.DB, ids utils.IDGenerator) *CommentDao {
	return &CommentDao{db: db, ids: ids}
}

// InsertComment stores the comment if its video still exists.
func (d *CommentDao) InsertComment(ctx context.Context, comment *model.Comment) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ok, err := database.ExistsForShare(tx, &model.Video{}, "id = ?", comment.VideoId)
		if err != nil {
			return errors.WithMessage(err, "Failed to check video")
		}
		if !ok {
			return errors.Wrapf(gorm.ErrRecordNotFound, "InsertComment failed, video_id=%d", comment.VideoId)
		}
		if comment.ID == 0 {
			comment.ID = d.ids.GenerateID()
		}
		if err := tx.Omit("User").Create(comment).Error; err != nil {
			return errors.WithMessage(err, "Failed to insert comment")
		}
		return nil
	})
}

func (d *CommentDao) FindComment(ctx context.Context, commentId int64) (*model.Comment, error) {
	comment := new(model.Comment)
	if err := d.db.WithContext(ctx).Where("id = ?", commentId).Take(comment).Error; err != nil {
		return nil, errors.Wrapf(err, "FindComment failed, comment_id=%d", commentId)
	}
	return comment, nil
}

func (d *CommentDao) DeleteComment(ctx context.Context, commentId int64) error {
	res := d.db.WithContext(ctx).Where("id = ?", commentId).Delete(&model.Comment{})
	if res.Error != nil {
		return errors.WithMessage(res.Error, "Failed to delete comment")
	}
	if res.RowsAffected == 0 {
		return errors.Wrapf(gorm.ErrRecordNotFound, "DeleteComment failed, comment_id=%d", commentId)
	}
	return nil
}

func (d *CommentDao) CountComments(ctx context.Context, videoId int64) (count int64, err error) {
	if err = d.db.WithContext(ctx).Model(&model.Comment{}).Where("video_id = ?", videoId).Count(&count).Error; err != nil {
		return 0, errors.Wrapf(err, "CountComments failed, video_id=%d", videoId)
	}
	return count, nil
}

// ListByVideo returns a video's comments with their authors, newest first.
func (d *CommentDao) ListByVideo(ctx context.Context, videoId int64) ([]*model.Comment, error) {
	comments := make([]*model.Comment, 0)
	if err := d.db.WithContext(ctx).Preload("User").
		Where("video_id = ?", videoId).
		Order("created_at DESC").Order("id DESC").
		Find(&comments).Error; err != nil {
		return nil, errors.WithMessage(err, "Failed to list comments")
	}
	return comments, nil
}
