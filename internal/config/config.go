package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Server    ServerConfig    `mapstructure:"server"`
	Log       LogConfig       `mapstructure:"log"`
	DB        DBConfig        `mapstructure:"db"`
	Cron      CronConfig      `mapstructure:"cron"`
	Tokens    TokensConfig    `mapstructure:"tokens"`
	Pipeline  PipelineConfig  `mapstructure:"pipeline"`
	Retention RetentionConfig `mapstructure:"retention"`
	Stream    StreamConfig    `mapstructure:"stream"`
}

type AppConfig struct {
	Env string `mapstructure:"env"`
}

type ServerConfig struct {
	HTTPAddr string `mapstructure:"http_addr"`
}

type LogConfig struct {
	Level             string `mapstructure:"level"`
	Encoding          string `mapstructure:"encoding"`
	Development       bool   `mapstructure:"development"`
	Sampling          bool   `mapstructure:"sampling"`
	DisableCaller     bool   `mapstructure:"disable_caller"`
	DisableStacktrace bool   `mapstructure:"disable_stacktrace"`
}

type DBConfig struct {
	DSN             string        `mapstructure:"dsn"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
	Timezone        string        `mapstructure:"timezone"`
}

type CronConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// TokensConfig sets the per-plan ledger defaults applied at company
// onboarding. Plan upgrades land as explicit credit calls later.
type TokensConfig struct {
	SignupGrant     int64 `mapstructure:"signup_grant"`
	TokensPerUnlock int64 `mapstructure:"tokens_per_unlock"`
}

type PipelineConfig struct {
	DefaultStages []string `mapstructure:"default_stages"`
}

type RetentionConfig struct {
	ActivityMaxAge time.Duration `mapstructure:"activity_max_age"`
	PruneSpec      string        `mapstructure:"prune_spec"`
}

type StreamConfig struct {
	SubscriberBuffer int           `mapstructure:"subscriber_buffer"`
	WriteTimeout     time.Duration `mapstructure:"write_timeout"`
}

func Load(path string, envOnly bool) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("TP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.AutomaticEnv()
	v.SetDefault("app.env", "dev")
	v.SetDefault("server.http_addr", ":8080")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.encoding", "console")
	v.SetDefault("log.development", true)
	v.SetDefault("log.sampling", false)
	v.SetDefault("log.disable_caller", false)
	v.SetDefault("log.disable_stacktrace", false)
	v.SetDefault("db.max_open_conns", 20)
	v.SetDefault("db.max_idle_conns", 5)
	v.SetDefault("db.conn_max_lifetime", "30m")
	v.SetDefault("db.conn_max_idle_time", "5m")
	v.SetDefault("db.timezone", "UTC")
	v.SetDefault("cron.enabled", true)
	v.SetDefault("tokens.signup_grant", 20)
	v.SetDefault("tokens.tokens_per_unlock", 5)
	v.SetDefault("pipeline.default_stages", []string{"New", "Screening", "Interview", "Offer", "Hired"})
	v.SetDefault("retention.activity_max_age", "2160h")
	v.SetDefault("retention.prune_spec", "0 0 3 * * *")
	v.SetDefault("stream.subscriber_buffer", 32)
	v.SetDefault("stream.write_timeout", "5s")

	if !envOnly {
		if err := v.ReadInConfig(); err != nil {
			return Config{}, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}
