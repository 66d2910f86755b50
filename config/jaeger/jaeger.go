package jaeger

import (
	"context"
	"io"
	"net/http"

	"VidTube.com/config"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"
	jaegerclient "github.com/uber/jaeger-client-go"
	jaegercfg "github.com/uber/jaeger-client-go/config"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Init builds the tracer for serviceName and installs it as the global tracer, which the gorm
// plugin picks up. When tracing is disabled a no-op tracer is returned.
func Init(serviceName string, conf *config.Config) (opentracing.Tracer, io.Closer, error) {
	cfg := conf.Jaeger
	if !cfg.Enabled {
		return opentracing.NoopTracer{}, nopCloser{}, nil
	}
	jcfg := jaegercfg.Configuration{
		ServiceName: serviceName,
		Sampler: &jaegercfg.SamplerConfig{
			Type:  jaegerclient.SamplerTypeProbabilistic,
			Param: cfg.SampleRate,
		},
		Reporter: &jaegercfg.ReporterConfig{
			LocalAgentHostPort: cfg.AgentAddr,
		},
	}
	tracer, closer, err := jcfg.NewTracer()
	if err != nil {
		return nil, nil, err
	}
	opentracing.SetGlobalTracer(tracer)
	hlog.Infof("jaeger tracing %s via %s", serviceName, cfg.AgentAddr)
	return tracer, closer, nil
}

// ServerMiddleware opens a span per request, continuing any trace propagated in the headers.
func ServerMiddleware(tracer opentracing.Tracer) app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		header := http.Header{}
		c.Request.Header.VisitAll(func(k, v []byte) {
			header.Add(string(k), string(v))
		})
		parent, _ := tracer.Extract(opentracing.HTTPHeaders, opentracing.HTTPHeadersCarrier(header))

		route := c.FullPath()
		if route == "" {
			route = string(c.Path())
		}
		span := tracer.StartSpan(string(c.Method())+" "+route, ext.RPCServerOption(parent))
		ext.HTTPMethod.Set(span, string(c.Method()))
		ext.HTTPUrl.Set(span, string(c.Request.URI().Path()))
		defer span.Finish()

		c.Next(opentracing.ContextWithSpan(ctx, span))

		status := c.Response.StatusCode()
		ext.HTTPStatusCode.Set(span, uint16(status))
		if status >= http.StatusInternalServerError {
			ext.Error.Set(span, true)
		}
	}
}
