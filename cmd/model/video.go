package model

import (
	"time"

	"VidTube.com/pkg/constants"
)

// Video is immutable after publish except for deletion, which removes its views, reactions and
// comments first.
type Video struct {
	ID          int64     `gorm:"primaryKey;autoIncrement:false" json:"id,string"`
	UserId      int64     `gorm:"not null;index:idx_videos_user_id" json:"user_id,string"`
	Title       string    `gorm:"size:200;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Url         string    `gorm:"size:500;not null" json:"url"`
	Thumbnail   string    `gorm:"size:500" json:"thumbnail"`
	CreatedAt   time.Time `gorm:"index:idx_videos_created_at" json:"created_at"`

	User *User `gorm:"foreignKey:UserId" json:"user,omitempty"`
}

func (Video) TableName() string {
	return constants.VideoTableName
}

// View is one append-only view event. Anonymous views carry no user.
type View struct {
	ID        int64     `gorm:"primaryKey;autoIncrement:false" json:"id,string"`
	VideoId   int64     `gorm:"not null;index:idx_views_video_id" json:"video_id,string"`
	UserId    *int64    `gorm:"index:idx_views_user_id" json:"user_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (View) TableName() string {
	return constants.ViewTableName
}
