package model

import (
	"time"

	"VidTube.com/pkg/constants"
)

type User struct {
	ID        int64     `gorm:"primaryKey;autoIncrement:false" json:"id,string"`
	Username  string    `gorm:"size:100;not null" json:"username"`
	Email     string    `gorm:"size:255;not null;uniqueIndex:idx_users_email" json:"email"`
	Avatar    string    `gorm:"size:500" json:"avatar"`
	Cover     string    `gorm:"size:500" json:"cover"`
	About     string    `gorm:"type:text" json:"about"`
	CreatedAt time.Time `json:"created_at"`
}

func (User) TableName() string {
	return constants.UserTableName
}

// Tables lists every model in migration order.
func Tables() []interface{} {
	return []interface{}{
		&User{},
		&Video{},
		&View{},
		&VideoLike{},
		&Comment{},
		&Subscription{},
	}
}
