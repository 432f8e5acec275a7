package config

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// The values are read by Viper from a config file or environment variables.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Postgres PostgresConfig `mapstructure:"postgres"`
	Mongo    MongoConfig    `mapstructure:"mongo"`
	S3       S3Config       `mapstructure:"s3"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Currency CurrencyConfig `mapstructure:"currency"`
	Jobs     JobsConfig     `mapstructure:"jobs"`
	Admin    AdminConfig    `mapstructure:"admin"`
}

type ServerConfig struct {
	Address string `mapstructure:"address"`
	Mode    string `mapstructure:"mode"` // gin mode: debug, release or test
}

// PostgresConfig is the primary store.
type PostgresConfig struct {
	DSN      string `mapstructure:"dsn"`
	LogLevel string `mapstructure:"log_level"` // silent, error, warn or info
}

// MongoConfig is the secondary store. With Enabled false, reads have no
// fallback and the exercise logger is unavailable.
type MongoConfig struct {
	URI     string `mapstructure:"uri"`
	Name    string `mapstructure:"name"`
	Enabled bool   `mapstructure:"enabled"`
}

type S3Config struct {
	Endpoint        string `mapstructure:"endpoint"`
	Region          string `mapstructure:"region"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	BucketName      string `mapstructure:"bucket_name"`
	UseSSL          bool   `mapstructure:"use_ssl"`
	// PublicBaseURL is where uploaded images are served from.
	PublicBaseURL string `mapstructure:"public_base_url"`
}

// Enabled reports whether image uploads are configured.
func (c S3Config) Enabled() bool {
	return c.BucketName != "" && c.AccessKeyID != ""
}

// JWTConfig defines JWT specific configuration
type JWTConfig struct {
	Secret     string        `mapstructure:"secret"`
	Expiration time.Duration `mapstructure:"expiration"`
}

type CurrencyConfig struct {
	INRPerUSD float64 `mapstructure:"inr_per_usd"`
}

type JobsConfig struct {
	ExpirySchedule string `mapstructure:"expiry_schedule"`
}

// AdminConfig is the administrator account fitctl seeds.
type AdminConfig struct {
	Email    string `mapstructure:"email"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
}

var ErrMissingJWTSecret = errors.New("jwt.secret is required")

// LoadConfig reads configuration from path/config.yaml, a .env file and
// environment variables, in increasing priority.
func LoadConfig(path string) (config Config, err error) {
	if err := godotenv.Load(); err == nil {
		log.Println("INFO: Loaded environment from .env")
	}

	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// nested keys from the environment, e.g. postgres.dsn -> POSTGRES_DSN
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(`.`, `_`))

	setDefaults(v)

	err = v.ReadInConfig()
	if _, ok := err.(viper.ConfigFileNotFoundError); ok {
		err = nil
	} else if err != nil {
		return
	}

	if err = v.Unmarshal(&config); err != nil {
		return
	}
	if config.JWT.Secret == "" {
		return config, ErrMissingJWTSecret
	}
	return config, nil
}

// setDefaults registers every key, which also lets AutomaticEnv see keys the
// config file leaves out.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.mode", "debug")

	v.SetDefault("postgres.dsn", "host=localhost user=postgres password=postgres dbname=fitness_center port=5432 sslmode=disable")
	v.SetDefault("postgres.log_level", "warn")

	v.SetDefault("mongo.uri", "mongodb://localhost:27017")
	v.SetDefault("mongo.name", "fitness_center")
	v.SetDefault("mongo.enabled", true)

	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.access_key_id", "")
	v.SetDefault("s3.secret_access_key", "")
	v.SetDefault("s3.bucket_name", "")
	v.SetDefault("s3.use_ssl", true)
	v.SetDefault("s3.public_base_url", "")

	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.expiration", "12h")

	v.SetDefault("currency.inr_per_usd", 80)
	v.SetDefault("jobs.expiry_schedule", "@hourly")

	v.SetDefault("admin.email", "admin@fitnesscenter.local")
	v.SetDefault("admin.password", "")
	v.SetDefault("admin.name", "Administrator")
}
