package jaeger

import (
	"context"
	"net/http"
	"testing"

	"VidTube.com/config"
	"github.com/cloudwego/hertz/pkg/app"
	hzconfig "github.com/cloudwego/hertz/pkg/common/config"
	"github.com/cloudwego/hertz/pkg/common/ut"
	"github.com/cloudwego/hertz/pkg/route"
	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/mocktracer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitDisabled(t *testing.T) {
	tracer, closer, err := Init("vidtube", &config.Config{})
	require.NoError(t, err)
	assert.IsType(t, opentracing.NoopTracer{}, tracer)
	assert.NoError(t, closer.Close())
}

func TestServerMiddleware(t *testing.T) {
	tracer := mocktracer.New()
	engine := route.NewEngine(hzconfig.NewOptions(nil))
	engine.Use(ServerMiddleware(tracer))
	engine.GET("/videos/:videoId", func(ctx context.Context, c *app.RequestContext) {
		assert.NotNil(t, opentracing.SpanFromContext(ctx))
		c.String(http.StatusNotFound, "missing")
	})

	ut.PerformRequest(engine, http.MethodGet, "/videos/42", nil)

	spans := tracer.FinishedSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "GET /videos/:videoId", spans[0].OperationName)
	assert.Equal(t, uint16(http.StatusNotFound), spans[0].Tag("http.status_code"))
	assert.Nil(t, spans[0].Tag("error"))
}
