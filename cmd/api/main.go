package main

import (
	"context"
	"fmt"
	"time"

	"VidTube.com/cmd/api/handlers"
	"VidTube.com/cmd/api/router/authfunc"
	"VidTube.com/config"
	"VidTube.com/config/jaeger"
	"VidTube.com/config/pprof"
	"VidTube.com/pkg/constants"
	"VidTube.com/pkg/database"
	"VidTube.com/pkg/errno"
	"VidTube.com/pkg/limiter"
	"VidTube.com/pkg/metrics"
	"VidTube.com/pkg/mq"
	"VidTube.com/pkg/security"
	"VidTube.com/pkg/utils"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/middlewares/server/recovery"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/google/uuid"
	"github.com/hertz-contrib/cors"
	"github.com/redis/go-redis/v9"
)

const requestIDHeader = "X-Request-Id"

func main() {
	cfg, err := config.Init()
	if err != nil {
		hlog.Fatalf("load config: %v", err)
	}
	pprof.Load(cfg.Server.PprofAddr)

	tracer, closer, err := jaeger.Init(constants.ServiceName, cfg)
	if err != nil {
		hlog.Fatalf("init tracer: %v", err)
	}
	defer closer.Close()

	db, err := database.OpenMysql(cfg)
	if err != nil {
		hlog.Fatalf("open database: %v", err)
	}
	defer database.Close(db)

	ids, err := utils.NewSnowflake(cfg.Server.WorkerID, cfg.Server.DatacenterID)
	if err != nil {
		hlog.Fatalf("init id generator: %v", err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer rdb.Close()
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		hlog.Warnf("Could not connect to redis: %v", err)
	}

	var events mq.EventPublisher = mq.NoopPublisher{}
	if cfg.RabbitMq.Enabled {
		producer, err := mq.NewProducer(cfg.RabbitMqURL())
		if err != nil {
			hlog.Warnf("rabbitmq unavailable, engagement events are dropped: %v", err)
		} else {
			defer producer.Close()
			events = producer
		}
	}

	auth, err := authfunc.New(cfg.Jwt.Secret, cfg.Jwt.Realm, cfg.Jwt.Timeout, security.NewTokenBlacklist(rdb))
	if err != nil {
		hlog.Fatalf("init jwt: %v", err)
	}

	limited, err := limiter.Init(cfg.Sentinel.QPS)
	if err != nil {
		hlog.Fatalf("init sentinel: %v", err)
	}

	h := server.New(
		server.WithHostPorts(cfg.Server.Addr),
		server.WithHandleMethodNotAllowed(true),
	)
	h.Use(recovery.Recovery(recovery.WithRecoveryHandler(
		func(ctx context.Context, c *app.RequestContext, err interface{}, stack []byte) {
			hlog.SystemLogger().CtxErrorf(ctx, "[Recovery] err=%v\nstack=%s", err, stack)
			handlers.SendResponse(c, errno.ServiceErr.WithMessage(fmt.Sprintf("[Recovery] err=%v", err)), nil)
		})))
	h.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	h.Use(requestID(), jaeger.ServerMiddleware(tracer), metrics.Middleware())
	if limited {
		h.Use(limiter.Middleware(func(c *app.RequestContext, err error) {
			handlers.SendResponse(c, err, nil)
		}))
	}

	register(h.Engine, newGateway(db, ids, auth, events))
	h.Spin()
}

// requestID echoes the caller's request id or assigns a new one.
func requestID() app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		id := string(c.GetHeader(requestIDHeader))
		if id == "" {
			id = uuid.NewString()
		}
		c.Header(requestIDHeader, id)
		c.Next(ctx)
	}
}
