package db

import (
	"context"

	"VidTube.com/cmd/model"
	"VidTube.com/pkg/utils"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserDao struct {
	db  *gorm.DB
	ids utils.IDGenerator
}

func NewUserDao(db *gorm.DB, ids utils.IDGenerator) *UserDao {
	return &UserDao{db: db, ids: ids}
}

// FindOrCreateByEmail returns the account registered under email, creating it with username on
// first sign-in. created reports whether a new row was inserted.
func (d *UserDao) FindOrCreateByEmail(ctx context.Context, username, email string) (user *model.User, created bool, err error) {
	err = d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "email"}},
			DoNothing: true,
		}).Create(&model.User{ID: d.ids.GenerateID(), Username: username, Email: email})
		if res.Error != nil {
			return errors.WithMessage(res.Error, "Failed to create user")
		}
		created = res.RowsAffected == 1
		user = new(model.User)
		if err := tx.Where("email = ?", email).Take(user).Error; err != nil {
			return errors.Wrapf(err, "FindOrCreateByEmail failed, email=%s", email)
		}
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return user, created, nil
}

func (d *UserDao) FindUser(ctx context.Context, userId int64) (*model.User, error) {
	user := new(model.User)
	if err := d.db.WithContext(ctx).Where("id = ?", userId).Take(user).Error; err != nil {
		return nil, errors.Wrapf(err, "FindUser failed, user_id=%d", userId)
	}
	return user, nil
}

// ListByIds returns users in the order of ids; unknown ids are skipped.
func (d *UserDao) ListByIds(ctx context.Context, ids []int64) ([]*model.User, error) {
	users := make([]*model.User, 0, len(ids))
	if len(ids) == 0 {
		return users, nil
	}
	var found []*model.User
	if err := d.db.WithContext(ctx).Where("id IN ?", ids).Find(&found).Error; err != nil {
		return nil, errors.WithMessage(err, "Failed to list users")
	}
	byId := make(map[int64]*model.User, len(found))
	for _, u := range found {
		byId[u.ID] = u
	}
	for _, id := range ids {
		if u, ok := byId[id]; ok {
			users = append(users, u)
		}
	}
	return users, nil
}

// UpdateProfile changes the editable channel fields. Empty values are left untouched.
func (d *UserDao) UpdateProfile(ctx context.Context, userId int64, changes *model.User) (*model.User, error) {
	updates := map[string]interface{}{}
	if changes.Username != "" {
		updates["username"] = changes.Username
	}
	if changes.Avatar != "" {
		updates["avatar"] = changes.Avatar
	}
	if changes.Cover != "" {
		updates["cover"] = changes.Cover
	}
	if changes.About != "" {
		updates["about"] = changes.About
	}
	if len(updates) > 0 {
		res := d.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", userId).Updates(updates)
		if res.Error != nil {
			return nil, errors.Wrapf(res.Error, "UpdateProfile failed, user_id=%d", userId)
		}
	}
	return d.FindUser(ctx, userId)
}
