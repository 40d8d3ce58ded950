package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Log        Logger     `mapstructure:"logger"`
	DB         Database   `mapstructure:"database"`
	API        API        `mapstructure:"api"`
	Bars       Bars       `mapstructure:"bars"`
	Advisor    Advisor    `mapstructure:"advisor"`
	Simulation Simulation `mapstructure:"simulation"`
	Cache      Cache      `mapstructure:"cache"`
	Scheduler  Scheduler  `mapstructure:"scheduler"`
}

type Logger struct {
	Level    string `mapstructure:"level"`
	Encoding string `mapstructure:"encoding"`
}

type Database struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	User            string `mapstructure:"user"`
	Password        string `mapstructure:"password"`
	DBName          string `mapstructure:"name"`
	SSLMode         string `mapstructure:"ssl_mode"`
	TimeZone        string `mapstructure:"time_zone"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime string `mapstructure:"conn_max_lifetime"`
	LogLevel        string `mapstructure:"log_level"`
}

type API struct {
	Port int `mapstructure:"port"`
}

// Bars configures the minute-bar data provider client.
type Bars struct {
	BaseURL          string        `mapstructure:"base_url"`
	APIToken         string        `mapstructure:"api_token"`
	Timeout          time.Duration `mapstructure:"timeout"`
	MaxRequestPerMin int           `mapstructure:"max_request_per_min"`
	RetryCount       int           `mapstructure:"retry_count"`
	RetryDelay       time.Duration `mapstructure:"retry_delay"`
}

// Advisor holds the defaults for the setup decision gate.
type Advisor struct {
	RemainingDrawdown float64 `mapstructure:"remaining_drawdown"`
	RiskCapPct        float64 `mapstructure:"risk_cap_pct"`
	RequireGrade      string  `mapstructure:"require_grade"`
	RequireMicro      bool    `mapstructure:"require_micro"`
}

// Simulation holds the defaults for the forward-bar simulator.
type Simulation struct {
	WindowHours int     `mapstructure:"window_hours"`
	LossCapUSD  float64 `mapstructure:"loss_cap_usd"`
}

type Cache struct {
	DefaultExpiration time.Duration `mapstructure:"default_expiration"`
	CleanupInterval   time.Duration `mapstructure:"cleanup_interval"`
}

type Scheduler struct {
	StatsRefreshSpec string `mapstructure:"stats_refresh_spec"`
}

func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		fmt.Println("No config file loaded:", err)
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults() {
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.encoding", "json")
	viper.SetDefault("api.port", 8080)

	viper.SetDefault("bars.timeout", "10s")
	viper.SetDefault("bars.max_request_per_min", 60)
	viper.SetDefault("bars.retry_count", 3)
	viper.SetDefault("bars.retry_delay", "500ms")

	viper.SetDefault("advisor.remaining_drawdown", 500.0)
	viper.SetDefault("advisor.risk_cap_pct", 0.10)
	viper.SetDefault("advisor.require_grade", "A+")
	viper.SetDefault("advisor.require_micro", false)

	viper.SetDefault("simulation.window_hours", 8)
	viper.SetDefault("simulation.loss_cap_usd", 200.0)

	viper.SetDefault("cache.default_expiration", "15m")
	viper.SetDefault("cache.cleanup_interval", "30m")

	viper.SetDefault("scheduler.stats_refresh_spec", "0 * * * *")
}
