package relation

import (
	"context"

	"VidTube.com/cmd/api/handlers"
	"VidTube.com/cmd/relation/service"
	"VidTube.com/pkg/errno"
	"github.com/cloudwego/hertz/pkg/app"
)

type Handler struct {
	subs *service.SubscriptionService
}

func NewHandler(subs *service.SubscriptionService) *Handler {
	return &Handler{subs: subs}
}

func (h *Handler) ToggleSubscribe(ctx context.Context, c *app.RequestContext) {
	channelId, err := handlers.PathID(c, "userId")
	if err != nil {
		handlers.SendResponse(c, err, nil)
		return
	}
	subscribed, err := h.subs.Toggle(ctx, *handlers.CurrentUser(c), channelId)
	if err != nil {
		handlers.SendResponse(c, err, nil)
		return
	}
	handlers.SendResponse(c, errno.Success, map[string]bool{"is_subscribed": subscribed})
}
