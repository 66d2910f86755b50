package constants

import "time"

const (
	ServiceName = "vidtube"

	// IdentityKey is the JWT claim and RequestContext key carrying the authenticated user id.
	IdentityKey = "id"
	TokenCookie = "token"

	VideoTableName        = "videos"
	ViewTableName         = "views"
	VideoLikeTableName    = "video_likes"
	CommentTableName      = "comments"
	SubscriptionTableName = "subscriptions"
	UserTableName         = "users"

	EngagementExchange = "engagement_events"
	EngagementQueue    = "engagement_event_queue"

	RevokedTokenPrefix = "vidtube:revoked:"

	DefaultTokenTimeout = 30 * 24 * time.Hour
	DataFormate         = "2006-01-02 15:04:05"
)
