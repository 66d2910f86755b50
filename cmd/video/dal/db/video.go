package db

import (
	"context"

	"VidTube.com/cmd/model"
	"VidTube.com/pkg/utils"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type VideoDao struct {
	db  *gorm.DB
	ids utils.IDGenerator
}

func NewVideoDao(db *gorm.DB, ids utils.IDGenerator) *VideoDao {
	return &VideoDao{db: db, ids: ids}
}

// FindVideo returns the video with its owner; gorm.ErrRecordNotFound (wrapped) when absent.
func (d *VideoDao) FindVideo(ctx context.Context, videoId int64) (*model.Video, error) {
	video := new(model.Video)
	if err := d.db.WithContext(ctx).Preload("User").Where("id = ?", videoId).Take(video).Error; err != nil {
		return nil, errors.Wrapf(err, "FindVideo failed, video_id=%d", videoId)
	}
	return video, nil
}

// ListRecent returns every video, newest first. There is no page size yet.
func (d *VideoDao) ListRecent(ctx context.Context) ([]*model.Video, error) {
	var videos []*model.Video
	if err := d.db.WithContext(ctx).Preload("User").
		Order("created_at DESC").Order("id DESC").
		Find(&videos).Error; err != nil {
		return nil, errors.WithMessage(err, "Failed to list videos")
	}
	return videos, nil
}

// ListByUsers returns the videos published by any of userIds, newest first.
func (d *VideoDao) ListByUsers(ctx context.Context, userIds []int64) ([]*model.Video, error) {
	videos := make([]*model.Video, 0)
	if len(userIds) == 0 {
		return videos, nil
	}
	if err := d.db.WithContext(ctx).Preload("User").
		Where("user_id IN ?", userIds).
		Order("created_at DESC").Order("id DESC").
		Find(&videos).Error; err != nil {
		return nil, errors.WithMessage(err, "Failed to list videos by users")
	}
	return videos, nil
}

// ListByIds returns the videos in the order of ids, skipping ids that no longer exist.
func (d *VideoDao) ListByIds(ctx context.Context, ids []int64) ([]*model.Video, error) {
	videos := make([]*model.Video, 0, len(ids))
	if len(ids) == 0 {
		return videos, nil
	}
	var found []*model.Video
	if err := d.db.WithContext(ctx).Preload("User").Where("id IN ?", ids).Find(&found).Error; err != nil {
		return nil, errors.WithMessage(err, "Failed to list videos by ids")
	}
	byId := make(map[int64]*model.Video, len(found))
	for _, v := range found {
		byId[v.ID] = v
	}
	for _, id := range ids {
		if v, ok := byId[id]; ok {
			videos = append(videos, v)
		}
	}
	return videos, nil
}

// Search matches query case-insensitively against title or description and keeps storage order.
func (d *VideoDao) Search(ctx context.Context, query string) ([]*model.Video, error) {
	var videos []*model.Video
	pattern := utils.ContainsPattern(query)
	escape := "ESCAPE '" + utils.LikeEscapeChar + "'"
	if err := d.db.WithContext(ctx).Preload("User").
		Where("LOWER(title) LIKE ? "+escape+" OR LOWER(description) LIKE ? "+escape, pattern, pattern).
		Order("id ASC").
		Find(&videos).Error; err != nil {
		return nil, errors.Wrapf(err, "VideoSearch failed, query=%q", query)
	}
	return videos, nil
}

func (d *VideoDao) InsertVideo(ctx context.Context, video *model.Video) error {
	if video.ID == 0 {
		video.ID = d.ids.GenerateID()
	}
	if err := d.db.WithContext(ctx).Omit("User").Create(video).Error; err != nil {
		return errors.WithMessage(err, "Failed to insert video")
	}
	return nil
}

// DeleteVideoCascade removes the video's views, reactions and comments, then the video row,
// in one transaction. The video row is locked first, so writers that share-locked it either
// commit before the deletes run or find it gone.
func (d *VideoDao) DeleteVideoCascade(ctx context.Context, videoId int64) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var locked model.Video
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Select("id").
			Where("id = ?", videoId).Take(&locked).Error; err != nil {
			return errors.Wrapf(err, "DeleteVideo failed, video_id=%d", videoId)
		}
		if err := tx.Where("video_id = ?", videoId).Delete(&model.View{}).Error; err != nil {
			return errors.WithMessage(err, "Failed to delete views")
		}
		if err := tx.Where("video_id = ?", videoId).Delete(&model.VideoLike{}).Error; err != nil {
			return errors.WithMessage(err, "Failed to delete reactions")
		}
		if err := tx.Where("video_id = ?", videoId).Delete(&model.Comment{}).Error; err != nil {
			return errors.WithMessage(err, "Failed to delete comments")
		}
		result := tx.Where("id = ?", videoId).Delete(&model.Video{})
		if result.Error != nil {
			return errors.WithMessage(result.Error, "Failed to delete video")
		}
		if result.RowsAffected == 0 {
			return errors.Wrapf(gorm.ErrRecordNotFound, "DeleteVideo failed, video_id=%d", videoId)
		}
		return nil
	})
}
