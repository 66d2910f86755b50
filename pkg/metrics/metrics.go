// Package metrics holds the prometheus collectors of the engagement backend.
package metrics

import (
	"context"
	"strconv"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// reactionToggles counts toggles by requested action and resulting state.
	reactionToggles = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vidtube_reaction_toggles_total",
		Help: "Total number of like/dislike toggles, by action and resulting state",
	}, []string{"action", "result"})

	viewsRecorded = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vidtube_views_recorded_total",
		Help: "Total number of view events appended, by viewer kind",
	}, []string{"viewer"})

	subscriptionToggles = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vidtube_subscription_toggles_total",
		Help: "Total number of subscribe toggles, by resulting state",
	}, []string{"result"})

	feedLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "vidtube_feed_build_seconds",
		Help:    "Time spent building a feed, by feed kind",
		Buckets: prometheus.DefBuckets,
	}, []string{"kind"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "vidtube_http_request_duration_seconds",
		Help:    "HTTP request duration in seconds, by route, method and status",
		Buckets: prometheus.DefBuckets,
	}, []string{"route", "method", "status"})
)

func RecordReactionToggle(action, result string) {
	reactionToggles.WithLabelValues(action, result).Inc()
}

// RecordView counts a view; anonymous views are labelled separately.
func RecordView(anonymous bool) {
	viewer := "user"
	if anonymous {
		viewer = "anonymous"
	}
	viewsRecorded.WithLabelValues(viewer).Inc()
}

func RecordSubscriptionToggle(subscribed bool) {
	subscriptionToggles.WithLabelValues(strconv.FormatBool(subscribed)).Inc()
}

// ObserveFeed records the time since start under the feed kind. Use with defer.
func ObserveFeed(kind string, start time.Time) {
	feedLatency.WithLabelValues(kind).Observe(time.Since(start).Seconds())
}

// Middleware records the duration of every request under its route template.
func Middleware() app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		start := time.Now()
		c.Next(ctx)
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		requestDuration.WithLabelValues(route, string(c.Method()), strconv.Itoa(c.Response.StatusCode())).
			Observe(time.Since(start).Seconds())
	}
}

// Handler exposes the default registry in the prometheus text format.
func Handler() app.HandlerFunc {
	return adaptor.HertzHandler(promhttp.Handler())
}
