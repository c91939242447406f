package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

type Configs struct {
	Env      string `env:"ENV" envDefault:"local"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	Database       DatabaseConfigs
	ApiServer      ServerConfigs `envPrefix:"API_"`
	RealtimeServer ServerConfigs `envPrefix:"REALTIME_"`
	Redis          RedisConfigs
	Kafka          KafkaConfigs
	Realtime       RealtimeConfigs
	Hunt           HuntConfigs
}

// Load reads the configurations from the environment.
func Load() (Configs, error) {
	var cfg Configs
	if err := env.Parse(&cfg); err != nil {
		return Configs{}, fmt.Errorf("parse env: %w", err)
	}

	return cfg, nil
}

type DatabaseConfigs struct {
	Driver   string `env:"DB_DRIVER" envDefault:"mysql"`
	Host     string `env:"DB_HOST" envDefault:"localhost"`
	Port     string `env:"DB_PORT" envDefault:"3306"`
	Database string `env:"DB_NAME" envDefault:"scavhunt"`
	User     string `env:"DB_USER" envDefault:"root"`
	Password string `env:"DB_PASSWORD"`

	// File is only used by the sqlite driver.
	File string `env:"DB_FILE" envDefault:"scavhunt.db"`
}

func (d DatabaseConfigs) ConnectionString() string {
	switch d.Driver {
	case "postgres":
		return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			d.Host,
			d.Port,
			d.User,
			d.Password,
			d.Database,
		)
	case "sqlite":
		return d.File
	default:
		return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			d.User,
			d.Password,
			d.Host,
			d.Port,
			d.Database,
		)
	}
}

type ServerConfigs struct {
	Host string `env:"HOST"`
	Port string `env:"PORT" envDefault:"8080"`

	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
}

func (c ServerConfigs) Address() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

type RedisConfigs struct {
	Addr string `env:"REDIS_ADDR"`

	// UserCacheTTL is how long a user display name stays cached.
	UserCacheTTL time.Duration `env:"REDIS_USER_CACHE_TTL" envDefault:"10m"`
}

func (c RedisConfigs) Enabled() bool {
	return c.Addr != ""
}

type KafkaConfigs struct {
	Addr string `env:"KAFKA_ADDR"`

	// BroadcastTopic carries room and global events between realtime
	// instances.
	BroadcastTopic string `env:"KAFKA_BROADCAST_TOPIC" envDefault:"hunt-broadcast"`
	GroupPrefix    string `env:"KAFKA_GROUP_PREFIX" envDefault:"realtime"`
}

func (c KafkaConfigs) Enabled() bool {
	return c.Addr != ""
}

func (c KafkaConfigs) Brokers() []string {
	return strings.Split(c.Addr, ",")
}

type RealtimeConfigs struct {
	// StorageTimeout bounds the storage calls triggered by one inbound event.
	StorageTimeout time.Duration `env:"REALTIME_STORAGE_TIMEOUT" envDefault:"10s"`
	SendBufferSize int           `env:"REALTIME_SEND_BUFFER" envDefault:"256"`
	CleanupPeriod  time.Duration `env:"REALTIME_CLEANUP_PERIOD" envDefault:"5s"`
	WelcomeMessage string        `env:"REALTIME_WELCOME_MESSAGE" envDefault:"Welcome to Victoria BC Scavenger Hunt Real-time Server!"`
}

type HuntConfigs struct {
	LeaderboardSize int    `env:"HUNT_LEADERBOARD_SIZE" envDefault:"10"`
	HintTemplate    string `env:"HUNT_HINT_TEMPLATE" envDefault:"Hint for clue %s: Look for something historical in this location."`
}
