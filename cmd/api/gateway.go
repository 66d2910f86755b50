package main

import (
	"context"
	"net/http"

	"VidTube.com/cmd/api/handlers/interaction"
	"VidTube.com/cmd/api/handlers/relation"
	"VidTube.com/cmd/api/handlers/user"
	"VidTube.com/cmd/api/handlers/video"
	"VidTube.com/cmd/api/router/authfunc"
	interactiondb "VidTube.com/cmd/interaction/dal/db"
	interactionservice "VidTube.com/cmd/interaction/service"
	relationdb "VidTube.com/cmd/relation/dal/db"
	relationservice "VidTube.com/cmd/relation/service"
	userdb "VidTube.com/cmd/user/dal/db"
	userservice "VidTube.com/cmd/user/service"
	videodb "VidTube.com/cmd/video/dal/db"
	videoservice "VidTube.com/cmd/video/service"
	"VidTube.com/pkg/database"
	"VidTube.com/pkg/mq"
	"VidTube.com/pkg/sysinfo"
	"VidTube.com/pkg/utils"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	hzutils "github.com/cloudwego/hertz/pkg/common/utils"
	"gorm.io/gorm"
)

type gateway struct {
	auth        *authfunc.Auth
	video       *video.Handler
	interaction *interaction.Handler
	relation    *relation.Handler
	user        *user.Handler
	health      app.HandlerFunc
}

// newGateway wires every dao and service onto the one store handle.
func newGateway(db *gorm.DB, ids utils.IDGenerator, auth *authfunc.Auth, events mq.EventPublisher) *gateway {
	videos := videodb.NewVideoDao(db, ids)
	views := videodb.NewViewDao(db, ids)
	reactions := interactiondb.NewReactionDao(db, ids)
	comments := interactiondb.NewCommentDao(db, ids)
	subs := relationdb.NewSubscriptionDao(db, ids)
	users := userdb.NewUserDao(db, ids)

	engagement := videoservice.NewEngagementService(videos, views, reactions, subs, comments)
	feeds := videoservice.NewFeedService(videos, engagement)

	return &gateway{
		auth:  auth,
		video: video.NewHandler(feeds, engagement, videoservice.NewVideoService(videos, views, events)),
		interaction: interaction.NewHandler(
			interactionservice.NewReactionService(reactions, events),
			interactionservice.NewCommentService(comments, events),
		),
		relation: relation.NewHandler(relationservice.NewSubscriptionService(subs, events)),
		user:     user.NewHandler(userservice.NewUserService(users, subs, reactions, views, feeds), auth),
		health:   healthHandler(db),
	}
}

func healthHandler(db *gorm.DB) app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		status, dbStatus, code := "ok", "ok", http.StatusOK
		if err := database.HealthCheck(ctx, db); err != nil {
			hlog.CtxErrorf(ctx, "health: %v", err)
			status, dbStatus, code = "degraded", err.Error(), http.StatusServiceUnavailable
		}
		stats, err := sysinfo.Collect(ctx)
		if err != nil {
			hlog.CtxDebugf(ctx, "health: host stats incomplete: %v", err)
		}
		c.JSON(code, hzutils.H{
			"status":   status,
			"database": dbStatus,
			"host":     stats,
		})
	}
}
