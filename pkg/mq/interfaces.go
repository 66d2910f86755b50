package mq

import (
	"context"

	"github.com/cloudwego/hertz/pkg/common/hlog"
)

// EventPublisher is what services publish engagement events through.
type EventPublisher interface {
	PublishEngagementEvent(ctx context.Context, event *EngagementEvent) error
}

// NoopPublisher drops every event. Used when rabbitmq is disabled.
type NoopPublisher struct{}

func (NoopPublisher) PublishEngagementEvent(context.Context, *EngagementEvent) error { return nil }

var (
	_ EventPublisher = (*Producer)(nil)
	_ EventPublisher = NoopPublisher{}
)

// Emit publishes event on p and only logs a failure; engagement writes never fail because the
// broker is unavailable.
func Emit(ctx context.Context, p EventPublisher, event *EngagementEvent) {
	if p == nil {
		return
	}
	if err := p.PublishEngagementEvent(ctx, event); err != nil {
		hlog.CtxWarnf(ctx, "publish %s event failed: %v", event.Type, err)
	}
}
