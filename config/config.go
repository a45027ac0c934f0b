package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/spf13/viper"
)

const (
	BackendFile     = "file"
	BackendPostgres = "postgres"
)

type Config struct {
	App   AppConfig
	Store StoreConfig
	DB    DBConfig
	Redis RedisConfig
	Log   LogConfig
}

type AppConfig struct {
	Env string
}

type StoreConfig struct {
	Backend  string
	FilePath string
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     string
	Password string
	DB       int
	CountTTL time.Duration
}

type LogConfig struct {
	Level     string
	InfoFile  string
	ErrorFile string
}

// LoadConfig reads configuration from the environment, optionally seeded by
// a .env file in the working directory.
func LoadConfig() (*Config, error) {
	return LoadConfigFrom(".env")
}

func LoadConfigFrom(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	countTTL, err := time.ParseDuration(v.GetString("REDIS_COUNT_TTL"))
	if err != nil {
		countTTL = time.Minute
	}

	config := &Config{
		App: AppConfig{
			Env: v.GetString("APP_ENV"),
		},
		Store: StoreConfig{
			Backend:  v.GetString("STORE_BACKEND"),
			FilePath: v.GetString("STORE_FILE_PATH"),
		},
		DB: DBConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			Name:     v.GetString("DB_NAME"),
			SSLMode:  v.GetString("DB_SSLMODE"),
		},
		Redis: RedisConfig{
			Enabled:  v.GetBool("REDIS_ENABLED"),
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetString("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
			CountTTL: countTTL,
		},
		Log: LogConfig{
			Level:     v.GetString("LOG_LEVEL"),
			InfoFile:  v.GetString("LOG_INFO_FILE"),
			ErrorFile: v.GetString("LOG_ERROR_FILE"),
		},
	}

	if err := config.validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("STORE_BACKEND", BackendFile)
	v.SetDefault("STORE_FILE_PATH", "patients.txt")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_NAME", "patients")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("REDIS_ENABLED", false)
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("REDIS_COUNT_TTL", "1m")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_INFO_FILE", "info_log.txt")
	v.SetDefault("LOG_ERROR_FILE", "error_log.txt")
}

func (c *Config) validate() error {
	switch c.Store.Backend {
	case BackendFile:
		if c.Store.FilePath == "" {
			return errors.New("STORE_FILE_PATH is required for the file backend")
		}
	case BackendPostgres:
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", c.Store.Backend)
	}
	return nil
}
