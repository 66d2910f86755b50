package video

import (
	"context"

	"VidTube.com/cmd/api/handlers"
	"VidTube.com/cmd/video/service"
	"VidTube.com/pkg/errno"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
)

type SearchParam struct {
	Query string `query:"query"`
}

type PublishParam struct {
	Title       string `json:"title" form:"title"`
	Description string `json:"description" form:"description"`
	Url         string `json:"url" form:"url"`
	Thumbnail   string `json:"thumbnail" form:"thumbnail"`
}

type Handler struct {
	feeds      *service.FeedService
	engagement *service.EngagementService
	videos     *service.VideoService
}

func NewHandler(feeds *service.FeedService, engagement *service.EngagementService, videos *service.VideoService) *Handler {
	return &Handler{feeds: feeds, engagement: engagement, videos: videos}
}

func (h *Handler) Recent(ctx context.Context, c *app.RequestContext) {
	cards, err := h.feeds.Recent(ctx)
	if err != nil {
		handlers.SendResponse(c, err, nil)
		return
	}
	handlers.SendResponse(c, errno.Success, cards)
}

func (h *Handler) Trending(ctx context.Context, c *app.RequestContext) {
	cards, err := h.feeds.Trending(ctx)
	if err != nil {
		handlers.SendResponse(c, err, nil)
		return
	}
	handlers.SendResponse(c, errno.Success, cards)
}

func (h *Handler) Search(ctx context.Context, c *app.RequestContext) {
	var param SearchParam
	if err := c.BindQuery(&param); err != nil {
		handlers.SendResponse(c, errno.BadRequestErr, nil)
		return
	}
	cards, err := h.feeds.Search(ctx, param.Query)
	if err != nil {
		handlers.SendResponse(c, err, nil)
		return
	}
	handlers.SendResponse(c, errno.Success, cards)
}

func (h *Handler) Detail(ctx context.Context, c *app.RequestContext) {
	videoId, err := handlers.PathID(c, "videoId")
	if err != nil {
		handlers.SendResponse(c, err, nil)
		return
	}
	detail, err := h.engagement.Detail(ctx, videoId, handlers.CurrentUser(c))
	if err != nil {
		handlers.SendResponse(c, err, nil)
		return
	}
	handlers.SendResponse(c, errno.Success, detail)
}

func (h *Handler) View(ctx context.Context, c *app.RequestContext) {
	videoId, err := handlers.PathID(c, "videoId")
	if err != nil {
		handlers.SendResponse(c, err, nil)
		return
	}
	if err := h.videos.RecordView(ctx, videoId, handlers.CurrentUser(c)); err != nil {
		handlers.SendResponse(c, err, nil)
		return
	}
	handlers.SendResponse(c, errno.Success, nil)
}

func (h *Handler) Publish(ctx context.Context, c *app.RequestContext) {
	var param PublishParam
	if err := c.Bind(&param); err != nil {
		hlog.CtxInfof(ctx, "bind publish param: %v", err)
		handlers.SendResponse(c, errno.BadRequestErr, nil)
		return
	}
	video, err := h.videos.Publish(ctx, *handlers.CurrentUser(c), service.PublishParams{
		Title:       param.Title,
		Description: param.Description,
		Url:         param.Url,
		Thumbnail:   param.Thumbnail,
	})
	if err != nil {
		handlers.SendResponse(c, err, nil)
		return
	}
	handlers.SendResponse(c, errno.Success, video)
}

func (h *Handler) Delete(ctx context.Context, c *app.RequestContext) {
	videoId, err := handlers.PathID(c, "videoId")
	if err != nil {
		handlers.SendResponse(c, err, nil)
		return
	}
	if err := h.videos.Delete(ctx, videoId, *handlers.CurrentUser(c)); err != nil {
		handlers.SendResponse(c, err, nil)
		return
	}
	handlers.SendResponse(c, errno.Success, nil)
}
