package main

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/urfave/cli/v2"
	"github.com/vriksha-lab/backend/config"
	"github.com/vriksha-lab/backend/internal/domain"
	"github.com/vriksha-lab/backend/internal/domain/broadcast"
	"github.com/vriksha-lab/backend/internal/domain/insight"
	"github.com/vriksha-lab/backend/internal/domain/notification"
	"github.com/vriksha-lab/backend/internal/domain/ranking"
	"github.com/vriksha-lab/backend/internal/domain/store"
	"github.com/vriksha-lab/backend/internal/entity"
	"github.com/vriksha-lab/backend/internal/repository"
	"github.com/vriksha-lab/backend/migration"
	"github.com/vriksha-lab/backend/pkg/api"
	"github.com/vriksha-lab/backend/pkg/logger"
	"github.com/vriksha-lab/backend/pkg/router"
	"github.com/vriksha-lab/backend/pkg/storage"
	"github.com/vriksha-lab/backend/pkg/ws"
	"github.com/vriksha-lab/backend/pkg/xcontext"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// defaultLocation is answered when the caller cannot be located.
var defaultLocation = entity.Location{Latitude: 28.6139, Longitude: 77.2090}

type srv struct {
	app *cli.App
	ctx context.Context

	server *http.Server
	router *router.Router
	hub    *ws.Hub

	store        *store.Store
	ranker       *ranking.Ranker
	snapshotRepo repository.SnapshotRepository
	generator    *notification.Generator
	storage      storage.Storage
	memStorage   *storage.MemoryStorage

	ai        insight.AI
	weather   insight.WeatherProvider
	geolocate insight.Geolocator

	userDomain         domain.UserDomain
	leaderboardDomain  domain.LeaderboardDomain
	saplingDomain      domain.SaplingDomain
	socialDomain       domain.SocialDomain
	notificationDomain domain.NotificationDomain
	dashboardDomain    domain.DashboardDomain
	reportDomain       domain.ReportDomain
	assistantDomain    domain.AssistantDomain
	fileDomain         domain.FileDomain
}

// before loads the configs and the logger for every command.
func (s *srv) before(cctx *cli.Context) error {
	cfg, err := config.Load(cctx.String("config"))
	if err != nil {
		return err
	}

	s.ctx = xcontext.WithConfigs(s.ctx, cfg)
	s.ctx = xcontext.WithLogger(s.ctx, logger.New(cfg.Log))
	s.ctx = xcontext.WithHTTPClient(s.ctx, &http.Client{Timeout: cfg.AI.Timeout})
	return nil
}

func (s *srv) newDatabase() *gorm.DB {
	cfg := xcontext.Configs(s.ctx).Database

	var dialector gorm.Dialector
	switch cfg.Type {
	case "sqlite":
		dialector = sqlite.Open(cfg.ConnectionString())
	case "mysql":
		dialector = mysql.New(mysql.Config{
			DSN:                       cfg.ConnectionString(),
			DefaultStringSize:         256,
			DisableDatetimePrecision:  true,
			DontSupportRenameIndex:    true,
			DontSupportRenameColumn:   true,
			SkipInitializeWithVersion: false,
		})
	default:
		panic(fmt.Sprintf("unsupported database type %s", cfg.Type))
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		panic(err)
	}

	if cfg.Type == "sqlite" {
		// sqlite allows a single writer.
		sqlDB, err := db.DB()
		if err != nil {
			panic(err)
		}
		sqlDB.SetMaxOpenConns(1)
	}

	return db
}

func (s *srv) loadDatabase() {
	s.ctx = xcontext.WithDB(s.ctx, s.newDatabase())
	if err := migration.Migrate(s.ctx); err != nil {
		panic(err)
	}
}

func (s *srv) loadRepos() {
	s.snapshotRepo = repository.NewSnapshotRepository()
}

// loadStore restores the last saved snapshot, or the demo dataset when the
// database is empty.
func (s *srv) loadStore() {
	cfg := xcontext.Configs(s.ctx)

	s.store = store.New(
		broadcast.New(xcontext.Logger(s.ctx)),
		store.WithRewardPerUpdate(cfg.Gamification.RewardPerUpdate),
	)
	s.ranker = ranking.NewRankerFromConfig(cfg.Gamification)

	snap, ok, err := s.snapshotRepo.Load(s.ctx)
	if err != nil {
		panic(err)
	}

	if !ok {
		xcontext.Logger(s.ctx).Infof("No saved snapshot, start from the demo dataset")
		snap = store.DemoSnapshot(s.store.Now())
	}

	if err := s.store.Restore(s.ctx, snap); err != nil {
		panic(err)
	}

	s.generator = notification.NewGenerator(s.store)
}

func (s *srv) loadInsight() {
	cfg := xcontext.Configs(s.ctx).AI

	if cfg.APIKey == "" || cfg.Endpoint == "" {
		xcontext.Logger(s.ctx).Warnf("AI gateway is not configured, answers are static")
		s.ai = insight.Offline()
		s.geolocate = insight.StaticGeolocator{Location: defaultLocation}
	} else {
		gateway := insight.NewGateway(api.NewGenerator(strings.Split(cfg.Endpoint, ",")...), cfg.APIKey, cfg.Timeout)
		s.ai = insight.WithFallback(gateway)
		s.geolocate = insight.WithFallbackLocation(gateway, defaultLocation)
	}

	s.weather = insight.NewMockWeather(s.store.Now)
}

func (s *srv) loadStorage() {
	cfg := xcontext.Configs(s.ctx)

	if cfg.Storage.Enabled() {
		var err error
		s.storage, err = storage.NewS3Storage(cfg.Storage)
		if err != nil {
			panic(err)
		}
		return
	}

	publicEndpoint := cfg.Storage.PublicEndpoint
	if publicEndpoint == "" {
		publicEndpoint = fmt.Sprintf("http://localhost:%s/files", cfg.ApiServer.Port)
	}

	s.memStorage = storage.NewMemoryStorage(publicEndpoint)
	s.storage = s.memStorage
}

func (s *srv) loadDomains() {
	s.userDomain = domain.NewUserDomain(s.store, s.ranker)
	s.leaderboardDomain = domain.NewLeaderboardDomain(s.store, s.ranker)
	s.saplingDomain = domain.NewSaplingDomain(s.store, s.ai, s.weather, s.geolocate)
	s.socialDomain = domain.NewSocialDomain(s.store, s.ai)
	s.notificationDomain = domain.NewNotificationDomain(s.generator)
	s.dashboardDomain = domain.NewDashboardDomain(s.store, s.ranker)
	s.reportDomain = domain.NewReportDomain(s.store, s.store.Now)
	s.assistantDomain = domain.NewAssistantDomain(s.ai)
	s.fileDomain = domain.NewFileDomain(s.storage)
}
