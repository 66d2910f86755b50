package model

import (
	"time"

	"VidTube.com/pkg/constants"
)

// Polarity is the state of one user's reaction to one video.
type Polarity int8

const (
	PolarityNone    Polarity = 0
	PolarityLike    Polarity = 1
	PolarityDislike Polarity = -1
)

func (p Polarity) String() string {
	switch p {
	case PolarityLike:
		return "LIKED"
	case PolarityDislike:
		return "DISLIKED"
	default:
		return "NONE"
	}
}

// VideoLike is a user's reaction to a video. At most one row exists per (user, video).
type VideoLike struct {
	ID        int64     `gorm:"primaryKey;autoIncrement:false" json:"id,string"`
	UserId    int64     `gorm:"not null;uniqueIndex:idx_video_likes_user_video,priority:1" json:"user_id,string"`
	VideoId   int64     `gorm:"not null;uniqueIndex:idx_video_likes_user_video,priority:2;index:idx_video_likes_video_id" json:"video_id,string"`
	Polarity  Polarity  `gorm:"type:tinyint;not null" json:"polarity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (VideoLike) TableName() string {
	return constants.VideoLikeTableName
}

type Comment struct {
	ID        int64     `gorm:"primaryKey;autoIncrement:false" json:"id,string"`
	UserId    int64     `gorm:"not null;index:idx_comments_user_id" json:"user_id,string"`
	VideoId   int64     `gorm:"not null;index:idx_comments_video_id" json:"video_id,string"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	CreatedAt time.Time `json:"created_at"`

	User *User `gorm:"foreignKey:UserId" json:"user,omitempty"`
}

func (Comment) TableName() string {
	return constants.CommentTableName
}
