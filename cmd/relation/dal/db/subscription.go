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

// SubscriptionDao stores subscriber -> channel edges.
type SubscriptionDao struct {
	db  *gorm.DB
	ids utils.IDGenerator
}

func NewSubscriptionDao(db *gorm.DB, ids utils.IDGenerator) *SubscriptionDao {
	return &SubscriptionDao{db: db, ids: ids}
}

// CountSubscribers counts distinct subscribers, so duplicate edges from older data never
// inflate the number.
func (d *SubscriptionDao) CountSubscribers(ctx context.Context, channelId int64) (count int64, err error) {
	if err = d.db.WithContext(ctx).Model(&model.Subscription{}).
		Where("subscribed_to_id = ?", channelId).
		Distinct("subscriber_id").
		Count(&count).Error; err != nil {
		return 0, errors.Wrapf(err, "CountSubscribers failed, channel_id=%d", channelId)
	}
	return count, nil
}

func (d *SubscriptionDao) IsSubscribed(ctx context.Context, subscriberId, channelId int64) (bool, error) {
	ok, err := database.Exists(d.db.WithContext(ctx), &model.Subscription{},
		"subscriber_id = ? AND subscribed_to_id = ?", subscriberId, channelId)
	if err != nil {
		return false, errors.Wrapf(err, "IsSubscribed failed, subscriber_id=%d channel_id=%d", subscriberId, channelId)
	}
	return ok, nil
}

// ToggleSubscription subscribes when no edge exists and unsubscribes otherwise. It reports
// whether the subscriber is subscribed afterwards.
func (d *SubscriptionDao) ToggleSubscription(ctx context.Context, subscriberId, channelId int64) (bool, error) {
	subscribed := false
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ok, err := database.Exists(tx, &model.User{}, "id = ?", channelId)
		if err != nil {
			return errors.WithMessage(err, "Failed to check channel")
		}
		if !ok {
			return errors.Wrapf(gorm.ErrRecordNotFound, "ToggleSubscription failed, channel_id=%d", channelId)
		}

		removed, err := d.unsubscribe(tx, subscriberId, channelId)
		if err != nil || removed {
			return err
		}
		res := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "subscriber_id"}, {Name: "subscribed_to_id"}},
			DoNothing: true,
		}).Create(&model.Subscription{
			ID:             d.ids.GenerateID(),
			SubscriberId:   subscriberId,
			SubscribedToId: channelId,
		})
		if res.Error != nil {
			return errors.WithMessage(res.Error, "Failed to insert subscription")
		}
		if res.RowsAffected == 1 {
			subscribed = true
			return nil
		}
		// lost the race against a concurrent subscribe, so this toggle undoes it
		_, err = d.unsubscribe(tx, subscriberId, channelId)
		return err
	})
	if err != nil {
		return false, err
	}
	return subscribed, nil
}

func (d *SubscriptionDao) unsubscribe(tx *gorm.DB, subscriberId, channelId int64) (bool, error) {
	res := tx.Where("subscriber_id = ? AND subscribed_to_id = ?", subscriberId, channelId).
		Delete(&model.Subscription{})
	if res.Error != nil {
		return false, errors.WithMessage(res.Error, "Failed to delete subscription")
	}
	return res.RowsAffected > 0, nil
}

// SubscribedChannelIds lists the channels a user follows, most recent subscription first.
func (d *SubscriptionDao) SubscribedChannelIds(ctx context.Context, subscriberId int64) ([]int64, error) {
	list := make([]int64, 0)
	if err := d.db.WithContext(ctx).Model(&model.Subscription{}).
		Where("subscriber_id = ?", subscriberId).
		Order("created_at DESC").Order("id DESC").
		Pluck("subscribed_to_id", &list).Error; err != nil {
		return nil, errors.WithMessage(err, "Failed to get subscriptions")
	}
	return list, nil
}
