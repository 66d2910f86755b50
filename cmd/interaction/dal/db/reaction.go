package db

import (
	"context"

	"VidTube.com/cmd/model"
	"VidTube.com/pkg/database"
	"VidTube.com/pkg/utils"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ReactionDao owns the video_likes table. Every write goes through ToggleReaction.
type ReactionDao struct {
	db  *gorm.DB
	ids utils.IDGenerator
}

func NewReactionDao(db *gorm.DB, ids utils.IDGenerator) *ReactionDao {
	return &ReactionDao{db: db, ids: ids}
}

// NextPolarity is the toggle transition: repeating the current reaction clears it, anything
// else switches to the requested one.
func NextPolarity(current, requested model.Polarity) model.Polarity {
	if current == requested {
		return model.PolarityNone
	}
	return requested
}

// ToggleReaction applies requested (like or dislike) to the user's reaction on the video and
// returns the resulting state. The read, the decision and the write run in one transaction.
func (d *ReactionDao) ToggleReaction(ctx context.Context, userId, videoId int64, requested model.Polarity) (model.Polarity, error) {
	if requested != model.PolarityLike && requested != model.PolarityDislike {
		return model.PolarityNone, errors.Errorf("ToggleReaction: invalid polarity %d", requested)
	}
	result := model.PolarityNone
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ok, err := database.ExistsForShare(tx, &model.Video{}, "id = ?", videoId)
		if err != nil {
			return errors.WithMessage(err, "Failed to check video")
		}
		if !ok {
			return errors.Wrapf(gorm.ErrRecordNotFound, "ToggleReaction failed, video_id=%d", videoId)
		}

		current, err := lockReaction(tx, userId, videoId)
		if err != nil {
			return err
		}
		if current == nil {
			row := &model.VideoLike{
				ID:       d.ids.GenerateID(),
				UserId:   userId,
				VideoId:  videoId,
				Polarity: requested,
			}
			res := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "user_id"}, {Name: "video_id"}},
				DoNothing: true,
			}).Create(row)
			if res.Error != nil {
				return errors.WithMessage(res.Error, "Failed to insert reaction")
			}
			if res.RowsAffected == 1 {
				result = requested
				return nil
			}
			// a concurrent toggle inserted first; apply ours on top of its row
			if current, err = lockReaction(tx, userId, videoId); err != nil {
				return err
			}
			if current == nil {
				return errors.Errorf("ToggleReaction: reaction row vanished, user_id=%d video_id=%d", userId, videoId)
			}
		}

		next := NextPolarity(current.Polarity, requested)
		if next == model.PolarityNone {
			if err := tx.Where("id = ?", current.ID).Delete(&model.VideoLike{}).Error; err != nil {
				return errors.WithMessage(err, "Failed to delete reaction")
			}
		} else if err := tx.Model(&model.VideoLike{}).Where("id = ?", current.ID).
			Update("polarity", next).Error; err != nil {
			return errors.WithMessage(err, "Failed to update reaction")
		}
		result = next
		return nil
	})
	if err != nil {
		return model.PolarityNone, err
	}
	return result, nil
}

func lockReaction(tx *gorm.DB, userId, videoId int64) (*model.VideoLike, error) {
	var rows []*model.VideoLike
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ? AND video_id = ?", userId, videoId).
		Limit(1).Find(&rows).Error; err != nil {
		return nil, errors.WithMessage(err, "Failed to read reaction")
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

// GetReaction returns the user's current reaction, PolarityNone when there is none.
func (d *ReactionDao) GetReaction(ctx context.Context, userId, videoId int64) (model.Polarity, error) {
	var rows []model.VideoLike
	if err := d.db.WithContext(ctx).
		Where("user_id = ? AND video_id = ?", userId, videoId).
		Limit(1).Find(&rows).Error; err != nil {
		return model.PolarityNone, errors.Wrapf(err, "GetReaction failed, user_id=%d video_id=%d", userId, videoId)
	}
	if len(rows) == 0 {
		return model.PolarityNone, nil
	}
	return rows[0].Polarity, nil
}

type polarityCount struct {
	Polarity model.Polarity
	Total    int64
}

// CountReactions returns the like and dislike totals of a video.
func (d *ReactionDao) CountReactions(ctx context.Context, videoId int64) (likes, dislikes int64, err error) {
	var rows []polarityCount
	if err = d.db.WithContext(ctx).Model(&model.VideoLike{}).
		Select("polarity, COUNT(*) AS total").
		Where("video_id = ?", videoId).
		Group("polarity").
		Scan(&rows).Error; err != nil {
		return 0, 0, errors.Wrapf(err, "CountReactions failed, video_id=%d", videoId)
	}
	for _, row := range rows {
		switch row.Polarity {
		case model.PolarityLike:
			likes = row.Total
		case model.PolarityDislike:
			dislikes = row.Total
		}
	}
	return likes, dislikes, nil
}

// LikedVideoIds lists the videos a user currently likes, most recently liked first.
func (d *ReactionDao) LikedVideoIds(ctx context.Context, userId int64) ([]int64, error) {
	list := make([]int64, 0)
	if err := d.db.WithContext(ctx).Model(&model.VideoLike{}).
		Where("user_id = ? AND polarity = ?", userId, model.PolarityLike).
		Order("updated_at DESC").Order("id DESC").
		Pluck("video_id", &list).Error; err != nil {
		return nil, errors.WithMessage(err, "Failed to get liked videos")
	}
	return list, nil
}
