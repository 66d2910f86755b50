package main

import (
	"VidTube.com/pkg/metrics"
	"github.com/cloudwego/hertz/pkg/route"
)

func register(r *route.Engine, g *gateway) {
	r.GET("/health", g.health)
	r.GET("/metrics", metrics.Handler())

	v1 := r.Group("/api/v1")

	auth := v1.Group("/auth")
	auth.POST("/login", g.user.Login)
	auth.GET("/me", g.auth.Required(), g.user.Me)
	auth.GET("/signout", g.auth.Optional(), g.user.Signout)

	videos := v1.Group("/videos")
	videos.GET("", g.video.Recent)
	videos.POST("", g.auth.Required(), g.video.Publish)
	videos.GET("/trending", g.video.Trending)
	videos.GET("/search", g.video.Search)
	videos.GET("/:videoId", g.auth.Optional(), g.video.Detail)
	videos.DELETE("/:videoId", g.auth.Required(), g.video.Delete)
	videos.GET("/:videoId/view", g.auth.Optional(), g.video.View)
	videos.POST("/:videoId/view", g.auth.Optional(), g.video.View)
	videos.GET("/:videoId/like", g.auth.Required(), g.interaction.Like)
	videos.POST("/:videoId/like", g.auth.Required(), g.interaction.Like)
	videos.GET("/:videoId/dislike", g.auth.Required(), g.interaction.Dislike)
	videos.POST("/:videoId/dislike", g.auth.Required(), g.interaction.Dislike)
	videos.POST("/:videoId/comments", g.auth.Required(), g.interaction.AddComment)
	videos.DELETE("/:videoId/comments/:commentId", g.auth.Required(), g.interaction.DeleteComment)

	users := v1.Group("/users")
	users.PUT("", g.auth.Required(), g.user.UpdateProfile)
	users.GET("/subscriptions", g.auth.Required(), g.user.Subscriptions)
	users.GET("/liked-videos", g.auth.Required(), g.user.LikedVideos)
	users.GET("/history", g.auth.Required(), g.user.History)
	users.GET("/:userId", g.auth.Optional(), g.user.Channel)
	users.GET("/:userId/toggle-subscribe", g.auth.Required(), g.relation.ToggleSubscribe)
	users.POST("/:userId/toggle-subscribe", g.auth.Required(), g.relation.ToggleSubscribe)
}
