package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/vriksha-lab/backend/pkg/logger"
	"github.com/vriksha-lab/backend/pkg/storage"
)

type Configs struct {
	Env string

	Log          logger.Options
	ApiServer    ServerConfigs
	Database     DatabaseConfigs
	Redis        RedisConfigs
	Kafka        KafkaConfigs
	Storage      storage.S3Configs
	File         FileConfigs
	Gamification GamificationConfigs
	AI           AIConfigs
	Snapshot     SnapshotConfigs
	Location     LocationConfigs
}

type ServerConfigs struct {
	Host         string
	Port         string
	AllowOrigins []string
}

func (s ServerConfigs) Address() string {
	return fmt.Sprintf("%s:%s", s.Host, s.Port)
}

type DatabaseConfigs struct {
	// Type is either "sqlite" or "mysql".
	Type string

	// File is the sqlite database file.
	File string

	Host     string
	Port     string
	Database string
	User     string
	Password string
}

func (d *DatabaseConfigs) ConnectionString() string {
	if d.Type == "sqlite" {
		return d.File
	}

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		d.User,
		d.Password,
		d.Host,
		d.Port,
		d.Database,
	)
}

type RedisConfigs struct {
	Addr           string
	LeaderboardKey string
}

type KafkaConfigs struct {
	Addr     string
	ClientID string
	Topic    string
}

type FileConfigs struct {
	MaxSize int64
	Bucket  string
}

type GamificationConfigs struct {
	// RewardPerUpdate is the flat amount of points a guardian earns for every
	// sapling update.
	RewardPerUpdate int

	GuardianPoints   int
	HeroPoints       int
	HighScorerPoints int
}

type AIConfigs struct {
	Endpoint string
	APIKey   string
	Timeout  time.Duration
}

type SnapshotConfigs struct {
	Enabled bool
	Cron    string
}

type LocationConfigs struct {
	TimeZone string
}

// Load returns the location used to bucket updates into calendar days.
func (l LocationConfigs) Load() (*time.Location, error) {
	if l.TimeZone == "" {
		return time.Local, nil
	}

	return time.LoadLocation(l.TimeZone)
}

func Default() Configs {
	return Configs{
		Env: "local",
		Log: logger.Options{Level: "info"},
		ApiServer: ServerConfigs{
			Port:         "8080",
			AllowOrigins: []string{"*"},
		},
		Database: DatabaseConfigs{
			Type: "sqlite",
			File: "vriksha.db",
		},
		Redis: RedisConfigs{
			LeaderboardKey: "leaderboard:points",
		},
		Kafka: KafkaConfigs{
			ClientID: "vriksha-api",
			Topic:    "store.changed",
		},
		File: FileConfigs{
			MaxSize: 2 * 1024 * 1024,
			Bucket:  "images",
		},
		Gamification: GamificationConfigs{
			RewardPerUpdate:  10,
			GuardianPoints:   500,
			HeroPoints:       1000,
			HighScorerPoints: 1000,
		},
		AI: AIConfigs{
			Timeout: 20 * time.Second,
		},
		Snapshot: SnapshotConfigs{
			Cron: "@every 1m",
		},
	}
}

// Load reads the toml file at path on top of Default and then applies
// environment overrides. A .env file in the working directory is loaded
// first if present.
func Load(path string) (Configs, error) {
	_ = godotenv.Load()

	cfg := Default()
	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return Configs{}, fmt.Errorf("cannot decode config file %s: %w", path, err)
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Configs{}, err
	}

	return cfg, nil
}

func applyEnv(cfg *Configs) error {
	setString := func(key string, target *string) {
		if v, ok := os.LookupEnv(key); ok {
			*target = v
		}
	}

	setString("ENV", &cfg.Env)
	setString("LOG_LEVEL", &cfg.Log.Level)
	setString("API_PORT", &cfg.ApiServer.Port)
	setString("DB_TYPE", &cfg.Database.Type)
	setString("DB_FILE", &cfg.Database.File)
	setString("DB_HOST", &cfg.Database.Host)
	setString("DB_PORT", &cfg.Database.Port)
	setString("DB_NAME", &cfg.Database.Database)
	setString("DB_USER", &cfg.Database.User)
	setString("DB_PASSWORD", &cfg.Database.Password)
	setString("REDIS_ADDR", &cfg.Redis.Addr)
	setString("KAFKA_ADDR", &cfg.Kafka.Addr)
	setString("S3_ACCESS_KEY", &cfg.Storage.AccessKey)
	setString("S3_SECRET_KEY", &cfg.Storage.SecretKey)
	setString("AI_ENDPOINT", &cfg.AI.Endpoint)
	setString("AI_API_KEY", &cfg.AI.APIKey)

	if v, ok := os.LookupEnv("REWARD_PER_UPDATE"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid REWARD_PER_UPDATE %q: %w", v, err)
		}
		cfg.Gamification.RewardPerUpdate = n
	}

	return nil
}
