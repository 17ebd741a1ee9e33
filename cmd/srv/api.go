package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	"github.com/urfave/cli/v2"
	"github.com/vriksha-lab/backend/internal/observer"
	"github.com/vriksha-lab/backend/pkg/kafka"
	"github.com/vriksha-lab/backend/pkg/prometheus"
	"github.com/vriksha-lab/backend/pkg/pubsub"
	"github.com/vriksha-lab/backend/pkg/router"
	"github.com/vriksha-lab/backend/pkg/ws"
	"github.com/vriksha-lab/backend/pkg/xcontext"
	"github.com/vriksha-lab/backend/pkg/xredis"
)

const shutdownTimeout = 10 * time.Second

func (s *srv) startApi(*cli.Context) error {
	ctx, stop := signal.NotifyContext(s.ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	s.loadDatabase()
	s.loadRepos()
	s.loadStore()
	s.loadInsight()
	s.loadStorage()
	s.loadDomains()

	s.hub = ws.NewHub()
	go s.hub.Run(ctx)

	detach, closers := s.loadObservers(ctx)
	s.loadRouter()

	cfg := xcontext.Configs(s.ctx)
	s.server = &http.Server{
		Addr:    cfg.ApiServer.Address(),
		Handler: s.corsHandler(s.router.Handler()),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(s.ctx, shutdownTimeout)
		defer cancel()
		if err := s.server.Shutdown(shutdownCtx); err != nil {
			xcontext.Logger(s.ctx).Errorf("Cannot shutdown server: %v", err)
		}
	}()

	xcontext.Logger(s.ctx).Infof("Starting server on %s", s.server.Addr)
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	detach()
	s.generator.Stop()

	closeCtx, cancel := context.WithTimeout(s.ctx, shutdownTimeout)
	defer cancel()
	for _, closer := range closers {
		if err := closer(closeCtx); err != nil {
			xcontext.Logger(s.ctx).Errorf("Cannot stop: %v", err)
		}
	}

	xcontext.Logger(s.ctx).Infof("Server stopped")
	return nil
}

// loadObservers attaches every observer to the store. The returned closers
// run on shutdown, after the observers are detached.
func (s *srv) loadObservers(ctx context.Context) (func(), []func(context.Context) error) {
	cfg := xcontext.Configs(s.ctx)
	ctx = xcontext.WithLogger(ctx, xcontext.Logger(s.ctx))

	var publisher pubsub.Publisher = pubsub.NewMemoryPublisher()
	if cfg.Kafka.Addr != "" {
		var err error
		publisher, err = kafka.NewPublisher(cfg.Kafka.ClientID, strings.Split(cfg.Kafka.Addr, ","))
		if err != nil {
			panic(err)
		}
	}
	closers := []func(context.Context) error{publisher.Stop}

	observers := []observer.Observer{
		observer.NewMetrics(s.store),
		observer.NewLiveUpdates(s.store, s.hub),
		observer.NewEventPublisher(s.store, publisher, cfg.Kafka.Topic),
	}

	if cfg.Redis.Addr != "" {
		redisClient, err := xredis.NewClient(ctx, cfg.Redis.Addr)
		if err != nil {
			panic(err)
		}
		observers = append(observers, observer.NewLeaderboardMirror(s.store, redisClient, cfg.Redis.LeaderboardKey))
		closers = append(closers, func(context.Context) error { return redisClient.Close() })
	}

	if cfg.Snapshot.Enabled {
		snapshotter := observer.NewSnapshotter(s.store, s.snapshotRepo)
		if err := snapshotter.Start(s.ctx, cfg.Snapshot.Cron); err != nil {
			panic(err)
		}
		observers = append(observers, snapshotter)
		closers = append([]func(context.Context) error{snapshotter.Stop}, closers...)
	}

	return observer.Attach(ctx, s.store, observers...), closers
}

func (s *srv) corsHandler(h http.Handler) http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins:   xcontext.Configs(s.ctx).ApiServer.AllowOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", router.UserIDHeader, router.SessionIDHeader},
		AllowCredentials: true,
	}).Handler(h)
}

func (s *srv) loadRouter() {
	s.router = router.New(xcontext.Configs(s.ctx), xcontext.Logger(s.ctx))

	// Public API.
	router.POST(s.router, "/login", s.userDomain.Login)
	router.GET(s.router, "/getLeaderboard", s.leaderboardDomain.GetLeaderboard)
	router.GET(s.router, "/getSaplings", s.saplingDomain.GetSaplings)
	router.GET(s.router, "/getSapling", s.saplingDomain.GetSapling)
	router.GET(s.router, "/getForecast", s.saplingDomain.GetForecast)
	router.GET(s.router, "/getFeed", s.socialDomain.GetFeed)
	router.GET(s.router, "/getChallenges", s.socialDomain.GetChallenges)
	router.GET(s.router, "/getDashboard", s.dashboardDomain.GetDashboard)
	router.GET(s.router, "/exportReport", s.reportDomain.Export)

	// These following APIs need a signed in user.
	userRouter := s.router.Group("")
	userRouter.Use(router.RequireUser)
	{
		router.GET(userRouter, "/getUser", s.userDomain.GetUser)
		router.GET(userRouter, "/getMyStanding", s.leaderboardDomain.GetMyStanding)

		router.GET(userRouter, "/getMySaplings", s.saplingDomain.GetMySaplings)
		router.POST(userRouter, "/analyzePhoto", s.saplingDomain.AnalyzePhoto)
		router.POST(userRouter, "/registerSapling", s.saplingDomain.Register)
		router.POST(userRouter, "/submitUpdate", s.saplingDomain.SubmitUpdate)
		router.POST(userRouter, "/deleteSapling", s.saplingDomain.Delete)

		router.POST(userRouter, "/createPost", s.socialDomain.CreatePost)
		router.POST(userRouter, "/toggleLike", s.socialDomain.ToggleLike)
		router.POST(userRouter, "/addComment", s.socialDomain.AddComment)
		router.GET(userRouter, "/suggestCaption", s.socialDomain.SuggestCaption)

		router.GET(userRouter, "/getNotifications", s.notificationDomain.GetNotifications)
		router.POST(userRouter, "/dismissNotification", s.notificationDomain.Dismiss)

		router.GET(userRouter, "/getVolunteerStats", s.dashboardDomain.GetVolunteerStats)
		router.POST(userRouter, "/chat", s.assistantDomain.Chat)
		router.POST(userRouter, "/uploadImage", s.fileDomain.UploadImage)
	}

	s.router.Handle(http.MethodGet, "/ws", s.serveWs)
	s.router.Handle(http.MethodGet, "/metrics", gin.WrapH(prometheus.NewHandler()))
	if s.memStorage != nil {
		s.router.Handle(http.MethodGet, "/files/:bucket/*name", s.serveFile)
	}
}

func (s *srv) serveFile(ctx *gin.Context) {
	data, ok := s.memStorage.Get(ctx.Param("bucket"), strings.TrimPrefix(ctx.Param("name"), "/"))
	if !ok {
		ctx.Status(http.StatusNotFound)
		return
	}

	ctx.Data(http.StatusOK, http.DetectContentType(data), data)
}
