package db

import (
	"context"

	"VidTube.com/cmd/model"
	"VidTube.com/pkg/database"
	"VidTube.com/pkg/utils"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// ViewDao is the append-only view ledger.
type ViewDao struct {
	db  *gorm.DB
	ids utils.IDGenerator
}

func NewViewDao(db *gorm.DB, ids utils.IDGenerator) *ViewDao {
	return &ViewDao{db: db, ids: ids}
}

// RecordView appends a view event. userId is nil for anonymous viewers. Repeated views all count.
func (d *ViewDao) RecordView(ctx context.Context, videoId int64, userId *int64) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ok, err := database.ExistsForShare(tx, &model.Video{}, "id = ?", videoId)
		if err != nil {
			return errors.WithMessage(err, "Failed to check video")
		}
		if !ok {
			return errors.Wrapf(gorm.ErrRecordNotFound, "RecordView failed, video_id=%d", videoId)
		}
		view := &model.View{
			ID:      d.ids.GenerateID(),
			VideoId: videoId,
			UserId:  userId,
		}
		if err := tx.Create(view).Error; err != nil {
			return errors.WithMessage(err, "Failed to insert view")
		}
		return nil
	})
}

func (d *ViewDao) CountViews(ctx context.Context, videoId int64) (count int64, err error) {
	if err = d.db.WithContext(ctx).Model(&model.View{}).Where("video_id = ?", videoId).Count(&count).Error; err != nil {
		return 0, errors.Wrapf(err, "CountViews failed, video_id=%d", videoId)
	}
	return count, nil
}

type videoViewCount struct {
	VideoId int64
	Total   int64
}

// CountViewsBatch counts views for every id with a single grouped query. Ids without views
// are present with 0.
func (d *ViewDao) CountViewsBatch(ctx context.Context, videoIds []int64) (map[int64]int64, error) {
	counts := make(map[int64]int64, len(videoIds))
	if len(videoIds) == 0 {
		return counts, nil
	}
	var rows []videoViewCount
	if err := d.db.WithContext(ctx).Model(&model.View{}).
		Select("video_id, COUNT(*) AS total").
		Where("video_id IN ?", videoIds).
		Group("video_id").
		Scan(&rows).Error; err != nil {
		return nil, errors.WithMessage(err, "Failed to count views")
	}
	for _, id := range videoIds {
		counts[id] = 0
	}
	for _, row := range rows {
		counts[row.VideoId] = row.Total
	}
	return counts, nil
}

func (d *ViewDao) HasViewed(ctx context.Context, userId, videoId int64) (bool, error) {
	ok, err := database.Exists(d.db.WithContext(ctx), &model.View{}, "user_id = ? AND video_id = ?", userId, videoId)
	if err != nil {
		return false, errors.Wrapf(err, "HasViewed failed, user_id=%d video_id=%d", userId, videoId)
	}
	return ok, nil
}

// ViewedVideoIds lists the distinct videos a user watched, most recently watched first.
func (d *ViewDao) ViewedVideoIds(ctx context.Context, userId int64) ([]int64, error) {
	list := make([]int64, 0)
	if err := d.db.WithContext(ctx).Model(&model.View{}).
		Select("video_id").
		Where("user_id = ?", userId).
		Group("video_id").
		Order("MAX(id) DESC").
		Scan(&list).Error; err != nil {
		return nil, errors.WithMessage(err, "Failed to get view history")
	}
	return list, nil
}
