package model

import (
	"time"

	"VidTube.com/pkg/constants"
)

// Subscription is an edge from a subscriber to the channel (user) it follows.
type Subscription struct {
	ID             int64     `gorm:"primaryKey;autoIncrement:false" json:"id,string"`
	SubscriberId   int64     `gorm:"not null;uniqueIndex:idx_subscriptions_pair,priority:1" json:"subscriber_id,string"`
	SubscribedToId int64     `gorm:"not null;uniqueIndex:idx_subscriptions_pair,priority:2;index:idx_subscriptions_channel" json:"subscribed_to_id,string"`
	CreatedAt      time.Time `json:"created_at"`
}

func (Subscription) TableName() string {
	return constants.SubscriptionTableName
}
