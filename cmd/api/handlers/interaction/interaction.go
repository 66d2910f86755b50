package interaction

import (
	"context"

	"VidTube.com/cmd/api/handlers"
	"VidTube.com/cmd/interaction/service"
	"VidTube.com/cmd/model"
	"VidTube.com/pkg/errno"
	"github.com/cloudwego/hertz/pkg/app"
)

type CommentParam struct {
	Text string `json:"text" form:"text"`
}

type ReactionResult struct {
	State    string `json:"state"`
	Liked    bool   `json:"is_liked"`
	Disliked bool   `json:"is_disliked"`
}

type Handler struct {
	reactions *service.ReactionService
	comments  *service.CommentService
}

func NewHandler(reactions *service.ReactionService, comments *service.CommentService) *Handler {
	return &Handler{reactions: reactions, comments: comments}
}

func (h *Handler) Like(ctx context.Context, c *app.RequestContext) {
	h.toggle(ctx, c, h.reactions.Like)
}

func (h *Handler) Dislike(ctx context.Context, c *app.RequestContext) {
	h.toggle(ctx, c, h.reactions.Dislike)
}

func (h *Handler) toggle(ctx context.Context, c *app.RequestContext,
	apply func(context.Context, int64, *int64) (model.Polarity, error)) {
	videoId, err := handlers.PathID(c, "videoId")
	if err != nil {
		handlers.SendResponse(c, err, nil)
		return
	}
	state, err := apply(ctx, videoId, handlers.CurrentUser(c))
	if err != nil {
		handlers.SendResponse(c, err, nil)
		return
	}
	handlers.SendResponse(c, errno.Success, ReactionResult{
		State:    state.String(),
		Liked:    state == model.PolarityLike,
		Disliked: state == model.PolarityDislike,
	})
}

func (h *Handler) AddComment(ctx context.Context, c *app.RequestContext) {
	videoId, err := handlers.PathID(c, "videoId")
	if err != nil {
		handlers.SendResponse(c, err, nil)
		return
	}
	var param CommentParam
	if err := c.Bind(&param); err != nil {
		handlers.SendResponse(c, errno.BadRequestErr, nil)
		return
	}
	comment, err := h.comments.Add(ctx, videoId, *handlers.CurrentUser(c), param.Text)
	if err != nil {
		handlers.SendResponse(c, err, nil)
		return
	}
	handlers.SendResponse(c, errno.Success, comment)
}

func (h *Handler) DeleteComment(ctx context.Context, c *app.RequestContext) {
	videoId, err := handlers.PathID(c, "videoId")
	if err != nil {
		handlers.SendResponse(c, err, nil)
		return
	}
	commentId, err := handlers.PathID(c, "commentId")
	if err != nil {
		handlers.SendResponse(c, err, nil)
		return
	}
	if err := h.comments.Delete(ctx, videoId, commentId, *handlers.CurrentUser(c)); err != nil {
		handlers.SendResponse(c, err, nil)
		return
	}
	handlers.SendResponse(c, errno.Success, nil)
}
