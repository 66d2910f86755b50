package mq

import (
	"time"

	"github.com/google/uuid"
)

// Engagement event kinds double as routing keys on the engagement exchange.
const (
	EventReaction     = "engagement.reaction"
	EventView         = "engagement.view"
	EventComment      = "engagement.comment"
	EventSubscription = "engagement.subscription"
)

// EngagementEvent describes one state change. UserID is 0 for anonymous views.
type EngagementEvent struct {
	EventID   string `json:"event_id"`
	Type      string `json:"type"`
	UserID    int64  `json:"user_id,string"`
	VideoID   int64  `json:"video_id,string,omitempty"`
	ChannelID int64  `json:"channel_id,string,omitempty"`
	Action    string `json:"action"`
	Result    string `json:"result"`
	Timestamp int64  `json:"timestamp"`
}

func NewEngagementEvent(eventType string, userId, videoId int64, action, result string) *EngagementEvent {
	return &EngagementEvent{
		EventID:   uuid.NewString(),
		Type:      eventType,
		UserID:    userId,
		VideoID:   videoId,
		Action:    action,
		Result:    result,
		Timestamp: time.Now().UnixMilli(),
	}
}
