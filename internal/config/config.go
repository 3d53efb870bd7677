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
	Workbook  WorkbookConfig  `mapstructure:"workbook"`
	Sync      SyncConfig      `mapstructure:"sync"`
	Cache     CacheConfig     `mapstructure:"cache"`
	Dashboard DashboardConfig `mapstructure:"dashboard"`
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
	Path            string        `mapstructure:"path"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
}

type WorkbookConfig struct {
	// Path, when set, overrides candidate resolution entirely.
	Path       string   `mapstructure:"path"`
	Candidates []string `mapstructure:"candidates"`
}

type SyncConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	Interval     time.Duration `mapstructure:"interval"`
	DailyTimes   []string      `mapstructure:"daily_times"`
	RunOnStartup bool          `mapstructure:"run_on_startup"`
	ForecastYear int           `mapstructure:"forecast_year"`
}

type CacheConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

type DashboardConfig struct {
	// ActiveBanks is a fixed relationship count shown on the summary;
	// the workbook has no cell for it.
	ActiveBanks int `mapstructure:"active_banks"`
}

func Load(path string, envOnly bool) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("TREASURY")
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
	v.SetDefault("db.path", "data/treasury_hub.db")
	v.SetDefault("db.max_open_conns", 10)
	v.SetDefault("db.max_idle_conns", 2)
	v.SetDefault("db.conn_max_lifetime", "30m")
	v.SetDefault("db.conn_max_idle_time", "5m")
	v.SetDefault("workbook.path", "")
	v.SetDefault("workbook.candidates", []string{
		"TREASURY DASHBOARD.xlsx",
		"data/TREASURY DASHBOARD.xlsx",
	})
	v.SetDefault("sync.enabled", true)
	v.SetDefault("sync.interval", "30m")
	v.SetDefault("sync.daily_times", []string{"09:00", "17:00"})
	v.SetDefault("sync.run_on_startup", true)
	v.SetDefault("sync.forecast_year", 2025)
	v.SetDefault("cache.ttl", "5m")
	v.SetDefault("dashboard.active_banks", 13)

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
