package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/contosparadormir/contos/handlers"
	"github.com/contosparadormir/contos/internal/admin"
	"github.com/contosparadormir/contos/internal/config"
	"github.com/contosparadormir/contos/internal/database"
	"github.com/contosparadormir/contos/internal/music"
	"github.com/contosparadormir/contos/internal/sessions"
	"github.com/contosparadormir/contos/internal/siteconfig"
	"github.com/contosparadormir/contos/internal/store"
	"github.com/contosparadormir/contos/internal/story"
	"github.com/contosparadormir/contos/pkg/logger"
	"github.com/contosparadormir/contos/pkg/metrics"
	"github.com/contosparadormir/contos/pkg/middleware"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"go.mongodb.org/mongo-driver/mongo"
)

var startTime = time.Now()

const mongoConnectAttempts = 5

func main() {
	// LOG_LEVEL: debug|info|warn|error|fatal
	logger.Init(os.Getenv("LOG_LEVEL"))
	logger.Debugf("startup: LOG_LEVEL=%s", logger.LevelString())

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Infof("config loaded: env=%s store=%s sessions=%s", cfg.Server.Environment, cfg.Store.Backend, cfg.Session.Backend)
	if cfg.Production() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var mongoClient *mongo.Client
	if cfg.Store.Backend == "mongo" || cfg.Session.Backend == "mongo" {
		mongoClient, err = database.ConnectMongoWithRetry(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout, mongoConnectAttempts, func(attempt int, err error) {
			logger.Warnf("attempt %d/%d: failed to connect to MongoDB: %v", attempt, mongoConnectAttempts, err)
		})
		if err != nil {
			logger.Fatalf("%v", err)
		}
		defer func() { _ = mongoClient.Disconnect(context.Background()) }()
	}

	deps := map[string]handlers.Pinger{}

	var st store.Store
	switch cfg.Store.Backend {
	case "mongo":
		st = store.NewMongoStore(mongoClient.Database(cfg.MongoDB.Database))
	default:
		logger.Warnf("using in-memory document store; data is lost on restart")
		st = store.NewMemoryStore()
	}
	deps["store"] = st

	var repo sessions.Repository
	switch cfg.Session.Backend {
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Host + ":" + cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer client.Close()
		if err := client.Ping(ctx).Err(); err != nil {
			logger.Warnf("redis ping failed (%s:%s): %v", cfg.Redis.Host, cfg.Redis.Port, err)
		}
		rr := sessions.NewRedisRepository(client, "contos:session:")
		deps["sessions"] = rr
		repo = rr
	case "mongo":
		mr := sessions.NewMongoRepository(mongoClient.Database(cfg.MongoDB.Database).Collection("sessions"))
		if err := mr.EnsureIndexes(ctx); err != nil {
			logger.Warnf("failed to create session TTL index: %v", err)
		}
		deps["sessions"] = mr
		repo = mr
	default:
		mem := sessions.NewMemoryRepository()
		sweeper := cron.New()
		if _, err := sweeper.AddFunc(cfg.Session.SweepSchedule, func() {
			if n := mem.Sweep(time.Now()); n > 0 {
				logger.Debugf("swept %d expired sessions", n)
			}
		}); err != nil {
			logger.Fatalf("invalid SESSION_SWEEP_SCHEDULE %q: %v", cfg.Session.SweepSchedule, err)
		}
		sweeper.Start()
		defer sweeper.Stop()
		repo = mem
	}

	sessionSvc := sessions.NewService(repo, cfg.Session.TTL)
	gate := admin.NewGate(admin.NewSecret(cfg.Admin.Password, cfg.Admin.PasswordHash), sessionSvc, cfg.Session.Secret)

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(), middleware.CORS(cfg.Server.CORSOrigin), middleware.BodyLimit(cfg.Server.MaxBodyBytes))

	handlers.RegisterHealth(r, deps, startTime)
	handlers.RegisterAPI(r, handlers.API{
		Gate: gate,
		Cookie: handlers.CookieConfig{
			Name:   cfg.Session.CookieName,
			MaxAge: sessionSvc.TTL(),
			Secure: cfg.Production(),
		},
		Stories:    story.NewService(st),
		Music:      music.NewService(st),
		SiteConfig: siteconfig.NewService(st),
	})
	handlers.RegisterSwagger(r)

	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	go func() {
		logger.Infof("starting contos api on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("server failed: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Infof("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("graceful shutdown failed: %v", err)
	}
}
