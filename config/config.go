package config

import (
	"errors"
	"io/fs"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	DB        DBConfig
	Redis     RedisConfig
	JWT       JWTConfig
	Admin     AdminConfig
	Cache     CacheConfig
	RateLimit RateLimitConfig
}

type AppConfig struct {
	Port string
	Env  string
}

// DBConfig selects the store. Driver is "postgres" (default) or "sqlite",
// in which case only Path is used.
type DBConfig struct {
	Driver       string
	Host         string
	Port         string
	User         string
	Password     string
	Name         string
	Path         string
	MaxIdleConns int
	MaxOpenConns int
	AutoMigrate  bool
}

type RedisConfig struct {
	Host         string
	Port         string
	Password     string
	DB           int
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
}

type JWTConfig struct {
	Secret        string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
}

// AdminConfig is the account seeded on first start when the users table is empty.
type AdminConfig struct {
	Name     string
	Email    string
	Password string
	Phone    string
}

type CacheConfig struct {
	DashboardTTL time.Duration
}

type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		// Running from environment variables only is fine.
		if !errors.Is(err, fs.ErrNotExist) {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, err
			}
		}
	}

	accessExpiry, err := time.ParseDuration(viper.GetString("JWT_ACCESS_EXPIRY"))
	if err != nil {
		accessExpiry = 15 * time.Minute
	}

	refreshExpiry, err := time.ParseDuration(viper.GetString("JWT_REFRESH_EXPIRY"))
	if err != nil {
		refreshExpiry = 7 * 24 * time.Hour
	}

	redisDialTimeout, err := time.ParseDuration(viper.GetString("REDIS_DIAL_TIMEOUT"))
	if err != nil {
		redisDialTimeout = 5 * time.Second
	}

	dashboardTTL, err := time.ParseDuration(viper.GetString("CACHE_DASHBOARD_TTL"))
	if err != nil {
		dashboardTTL = 30 * time.Second
	}

	config := &Config{
		App: AppConfig{
			Port: viper.GetString("APP_PORT"),
			Env:  viper.GetString("APP_ENV"),
		},
		DB: DBConfig{
			Driver:       viper.GetString("DB_DRIVER"),
			Host:         viper.GetString("DB_HOST"),
			Port:         viper.GetString("DB_PORT"),
			User:         viper.GetString("DB_USER"),
			Password:     viper.GetString("DB_PASSWORD"),
			Name:         viper.GetString("DB_NAME"),
			Path:         viper.GetString("DB_PATH"),
			MaxIdleConns: viper.GetInt("DB_MAX_IDLE_CONNS"),
			MaxOpenConns: viper.GetInt("DB_MAX_OPEN_CONNS"),
			AutoMigrate:  viper.GetBool("DB_AUTO_MIGRATE"),
		},
		Redis: RedisConfig{
			Host:         viper.GetString("REDIS_HOST"),
			Port:         viper.GetString("REDIS_PORT"),
			Password:     viper.GetString("REDIS_PASSWORD"),
			DB:           viper.GetInt("REDIS_DB"),
			PoolSize:     viper.GetInt("REDIS_POOL_SIZE"),
			MinIdleConns: viper.GetInt("REDIS_MIN_IDLE_CONNS"),
			DialTimeout:  redisDialTimeout,
		},
		JWT: JWTConfig{
			Secret:        viper.GetString("JWT_SECRET"),
			AccessExpiry:  accessExpiry,
			RefreshExpiry: refreshExpiry,
		},
		Admin: AdminConfig{
			Name:     viper.GetString("ADMIN_NAME"),
			Email:    viper.GetString("ADMIN_EMAIL"),
			Password: viper.GetString("ADMIN_PASSWORD"),
			Phone:    viper.GetString("ADMIN_PHONE"),
		},
		Cache: CacheConfig{
			DashboardTTL: dashboardTTL,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: viper.GetFloat64("RATE_LIMIT_RPS"),
			Burst:             viper.GetInt("RATE_LIMIT_BURST"),
		},
	}

	return config, nil
}

func setDefaults() {
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("DB_DRIVER", "postgres")
	viper.SetDefault("DB_PATH", "appointments.db")
	viper.SetDefault("DB_MAX_IDLE_CONNS", 10)
	viper.SetDefault("DB_MAX_OPEN_CONNS", 100)
	viper.SetDefault("DB_AUTO_MIGRATE", true)
	viper.SetDefault("REDIS_HOST", "localhost")
	viper.SetDefault("REDIS_PORT", "6379")
	viper.SetDefault("REDIS_POOL_SIZE", 20)
	viper.SetDefault("REDIS_MIN_IDLE_CONNS", 2)
	viper.SetDefault("ADMIN_NAME", "Administrador")
	viper.SetDefault("ADMIN_EMAIL", "admin@barberia.com")
	viper.SetDefault("ADMIN_PASSWORD", "admin123")
	viper.SetDefault("ADMIN_PHONE", "3001234567")
	viper.SetDefault("RATE_LIMIT_RPS", 20)
	viper.SetDefault("RATE_LIMIT_BURST", 40)
}
