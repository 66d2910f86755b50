// Package limiter guards the gateway with a sentinel flow rule.
package limiter

import (
	"context"

	"VidTube.com/pkg/errno"
	sentinel "github.com/alibaba/sentinel-golang/api"
	"github.com/alibaba/sentinel-golang/core/base"
	"github.com/alibaba/sentinel-golang/core/flow"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
)

// Resource is the sentinel resource every inbound request is counted against.
const Resource = "vidtube-gateway"

// Init loads a reject-on-excess QPS rule. A qps of 0 or less disables limiting and returns false.
func Init(qps float64) (bool, error) {
	if qps <= 0 {
		return false, nil
	}
	if err := sentinel.InitDefault(); err != nil {
		return false, err
	}
	if _, err := flow.LoadRules([]*flow.Rule{{
		Resource:               Resource,
		TokenCalculateStrategy: flow.Direct,
		ControlBehavior:        flow.Reject,
		Threshold:              qps,
		StatIntervalInMs:       1000,
	}}); err != nil {
		return false, err
	}
	hlog.Infof("sentinel limiting %s to %.0f qps", Resource, qps)
	return true, nil
}

// Middleware rejects requests over the loaded rule with 429. reject writes the response.
func Middleware(reject func(c *app.RequestContext, err error)) app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		entry, blocked := sentinel.Entry(Resource, sentinel.WithTrafficType(base.Inbound))
		if blocked != nil {
			hlog.CtxWarnf(ctx, "request %s blocked by %s", c.Path(), blocked.BlockType())
			reject(c, errno.TooManyRequestsErr)
			c.Abort()
			return
		}
		defer entry.Exit()
		c.Next(ctx)
	}
}
