package user

import (
	"context"
	"time"

	"VidTube.com/cmd/api/handlers"
	"VidTube.com/cmd/model"
	"VidTube.com/cmd/user/service"
	"VidTube.com/pkg/errno"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
)

type LoginParam struct {
	Username string `json:"username" form:"username"`
	Email    string `json:"email" form:"email"`
}

type ProfileParam struct {
	Username string `json:"username" form:"username"`
	Avatar   string `json:"avatar" form:"avatar"`
	Cover    string `json:"cover" form:"cover"`
	About    string `json:"about" form:"about"`
}

type LoginResult struct {
	Token  string      `json:"token"`
	Expire time.Time   `json:"expire"`
	User   *model.User `json:"user"`
}

// Sessions issues and revokes tokens; implemented by the auth middleware.
type Sessions interface {
	IssueToken(c *app.RequestContext, user *model.User) (string, time.Time, error)
	Revoke(ctx context.Context, c *app.RequestContext) error
}

type Handler struct {
	users    *service.UserService
	sessions Sessions
}

func NewHandler(users *service.UserService, sessions Sessions) *Handler {
	return &Handler{users: users, sessions: sessions}
}

func (h *Handler) Login(ctx context.Context, c *app.RequestContext) {
	var param LoginParam
	if err := c.Bind(&param); err != nil {
		handlers.SendResponse(c, errno.BadRequestErr, nil)
		return
	}
	user, err := h.users.Login(ctx, param.Username, param.Email)
	if err != nil {
		handlers.SendResponse(c, err, nil)
		return
	}
	token, expire, err := h.sessions.IssueToken(c, user)
	if err != nil {
		hlog.CtxErrorf(ctx, "issue token for user %d: %v", user.ID, err)
		handlers.SendResponse(c, err, nil)
		return
	}
	handlers.SendResponse(c, errno.Success, LoginResult{Token: token, Expire: expire, User: user})
}

func (h *Handler) Me(ctx context.Context, c *app.RequestContext) {
	me, err := h.users.Me(ctx, *handlers.CurrentUser(c))
	if err != nil {
		handlers.SendResponse(c, err, nil)
		return
	}
	handlers.SendResponse(c, errno.Success, me)
}

func (h *Handler) Signout(ctx context.Context, c *app.RequestContext) {
	if err := h.sessions.Revoke(ctx, c); err != nil {
		hlog.CtxErrorf(ctx, "revoke token: %v", err)
		handlers.SendResponse(c, err, nil)
		return
	}
	handlers.SendResponse(c, errno.Success, nil)
}

func (h *Handler) Channel(ctx context.Context, c *app.RequestContext) {
	channelId, err := handlers.PathID(c, "userId")
	if err != nil {
		handlers.SendResponse(c, err, nil)
		return
	}
	channel, err := h.users.Channel(ctx, channelId, handlers.CurrentUser(c))
	if err != nil {
		handlers.SendResponse(c, err, nil)
		return
	}
	handlers.SendResponse(c, errno.Success, channel)
}

func (h *Handler) UpdateProfile(ctx context.Context, c *app.RequestContext) {
	var param ProfileParam
	if err := c.Bind(&param); err != nil {
		handlers.SendResponse(c, errno.BadRequestErr, nil)
		return
	}
	user, err := h.users.UpdateProfile(ctx, *handlers.CurrentUser(c), &model.User{
		Username: param.Username,
		Avatar:   param.Avatar,
		Cover:    param.Cover,
		About:    param.About,
	})
	if err != nil {
		handlers.SendResponse(c, err, nil)
		return
	}
	handlers.SendResponse(c, errno.Success, user)
}

func (h *Handler) Subscriptions(ctx context.Context, c *app.RequestContext) {
	cards, err := h.users.SubscriptionFeed(ctx, *handlers.CurrentUser(c))
	if err != nil {
		handlers.SendResponse(c, err, nil)
		return
	}
	handlers.SendResponse(c, errno.Success, cards)
}

func (h *Handler) LikedVideos(ctx context.Context, c *app.RequestContext) {
	cards, err := h.users.LikedVideos(ctx, *handlers.CurrentUser(c))
	if err != nil {
		handlers.SendResponse(c, err, nil)
		return
	}
	handlers.SendResponse(c, errno.Success, cards)
}

func (h *Handler) History(ctx context.Context, c *app.RequestContext) {
	cards, err := h.users.History(ctx, *handlers.CurrentUser(c))
	if err != nil {
		handlers.SendResponse(c, err, nil)
		return
	}
	handlers.SendResponse(c, errno.Success, cards)
}
