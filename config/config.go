package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
	StorageMongo    = "mongo"

	BlobDisk = "disk"
	BlobS3   = "s3"
)

type (
	APP struct {
		Name      string        `mapstructure:"name"`
		Host      string        `mapstructure:"host"`
		Port      string        `mapstructure:"port"`
		Env       string        `mapstructure:"env"`
		JWTSecret string        `mapstructure:"jwt_secret"`
		TokenTTL  time.Duration `mapstructure:"token_ttl"`
	}
	Storage struct {
		Driver string `mapstructure:"driver"`
	}
	DB struct {
		User     string `mapstructure:"user"`
		Password string `mapstructure:"password"`
		Name     string `mapstructure:"db"`
		Host     string `mapstructure:"host"`
		Port     string `mapstructure:"port"`
		SSLMode  string `mapstructure:"sslmode"`
	}
	Mongo struct {
		URI      string `mapstructure:"uri"`
		Database string `mapstructure:"database"`
	}
	Uploads struct {
		Dir     string `mapstructure:"dir"`
		MaxSize int64  `mapstructure:"max_size"`
		Backend string `mapstructure:"backend"`
	}
	S3 struct {
		Endpoint        string        `mapstructure:"endpoint"`
		Region          string        `mapstructure:"region"`
		AccessKeyID     string        `mapstructure:"access_key_id"`
		SecretAccessKey string        `mapstructure:"secret_access_key"`
		BucketUploads   string        `mapstructure:"bucket_uploads"`
		PresignTTL      time.Duration `mapstructure:"presign_ttl"`
	}
	MQ struct {
		User         string `mapstructure:"user"`
		Password     string `mapstructure:"password"`
		Vhost        string `mapstructure:"vhost"`
		Host         string `mapstructure:"host"`
		AmqpPort     string `mapstructure:"amqp_port"`
		Exchange     string `mapstructure:"exchange"`
		ExchangeType string `mapstructure:"exchange_type"`
		QueueName    string `mapstructure:"queue_name"`
		Audit        bool   `mapstructure:"audit"`
	}
	Auth struct {
		// Users is a comma separated list of username:password:role triples.
		Users string `mapstructure:"users"`
	}
	Cache struct {
		Size int           `mapstructure:"size"`
		TTL  time.Duration `mapstructure:"ttl"`
	}

	Config struct {
		App     APP     `mapstructure:"service"`
		Storage Storage `mapstructure:"storage"`
		DB      DB      `mapstructure:"postgres"`
		Mongo   Mongo   `mapstructure:"mongo"`
		Uploads Uploads `mapstructure:"uploads"`
		S3      S3      `mapstructure:"s3"`
		MQ      MQ      `mapstructure:"rabbitmq"`
		Auth    Auth    `mapstructure:"auth"`
		Cache   Cache   `mapstructure:"cache"`
	}

	SeedAccount struct {
		Username string
		Password string
		Role     string
	}
)

var keys = []string{
	"service.name", "service.host", "service.port", "service.env", "service.jwt_secret", "service.token_ttl",
	"storage.driver",
	"postgres.user", "postgres.password", "postgres.db", "postgres.host", "postgres.port", "postgres.sslmode",
	"mongo.uri", "mongo.database",
	"uploads.dir", "uploads.max_size", "uploads.backend",
	"s3.endpoint", "s3.region", "s3.access_key_id", "s3.secret_access_key", "s3.bucket_uploads", "s3.presign_ttl",
	"rabbitmq.user", "rabbitmq.password", "rabbitmq.vhost", "rabbitmq.host", "rabbitmq.amqp_port",
	"rabbitmq.exchange", "rabbitmq.exchange_type", "rabbitmq.queue_name", "rabbitmq.audit",
	"auth.users",
	"cache.size", "cache.ttl",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("service.name", "mdsregistry")
	v.SetDefault("service.port", "3000")
	v.SetDefault("service.env", "production")
	v.SetDefault("service.token_ttl", "24h")
	v.SetDefault("storage.driver", StorageMemory)
	v.SetDefault("postgres.sslmode", "disable")
	v.SetDefault("mongo.database", "mdsregistry")
	v.SetDefault("uploads.dir", "uploads")
	v.SetDefault("uploads.max_size", 10<<20)
	v.SetDefault("uploads.backend", BlobDisk)
	v.SetDefault("s3.presign_ttl", "15m")
	v.SetDefault("rabbitmq.exchange", "mdsregistry.events")
	v.SetDefault("rabbitmq.exchange_type", "topic")
	v.SetDefault("rabbitmq.queue_name", "mdsregistry.audit")
	v.SetDefault("auth.users", "admin:admin123:admin,user:user123:user")
	v.SetDefault("cache.size", 1024)
	v.SetDefault("cache.ttl", "10m")
}

// Load reads an optional .env file and an optional config.yaml from dir, then
// lets environment variables override both (SERVICE_PORT, POSTGRES_HOST, ...).
func Load(dir string) (Config, error) {
	var cfg Config

	if err := godotenv.Load(dir + "/.env"); err != nil && !isNotExist(err) {
		return cfg, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	v.AddConfigPath(dir)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	// AutomaticEnv only resolves keys viper already knows about.
	for _, k := range keys {
		_ = v.BindEnv(k)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return cfg, fmt.Errorf("read config: %w", err)
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("unmarshal config: %w", err)
	}

	switch cfg.Storage.Driver {
	case StorageMemory, StoragePostgres, StorageMongo:
	default:
		return cfg, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
	switch cfg.Uploads.Backend {
	case BlobDisk, BlobS3:
	default:
		return cfg, fmt.Errorf("unknown uploads backend %q", cfg.Uploads.Backend)
	}

	return cfg, nil
}

func isNotExist(err error) bool { return errors.Is(err, os.ErrNotExist) }

func (c Config) DBDSN() (string, error) {
	if c.DB.User == "" || c.DB.Name == "" || c.DB.Host == "" || c.DB.Port == "" {
		return "", fmt.Errorf("incomplete DB config")
	}
	return fmt.Sprintf(
		"postgres://%s@%s:%s/%s?sslmode=%s",
		url.UserPassword(c.DB.User, c.DB.Password).String(),
		c.DB.Host,
		c.DB.Port,
		c.DB.Name,
		c.DB.SSLMode,
	), nil
}

// MigrateDSN is DBDSN in the pgx5:// scheme expected by golang-migrate.
func (c Config) MigrateDSN() (string, error) {
	dsn, err := c.DBDSN()
	if err != nil {
		return "", err
	}
	return "pgx5" + strings.TrimPrefix(dsn, "postgres"), nil
}

func (c Config) AMQPDSN() (string, error) {
	if c.MQ.User == "" || c.MQ.Host == "" || c.MQ.AmqpPort == "" {
		return "", fmt.Errorf("invalid MQ config: user, host and amqp port are required")
	}

	return fmt.Sprintf(
		"%s://%s@%s:%s/%s",
		"amqp",
		url.UserPassword(c.MQ.User, c.MQ.Password).String(),
		c.MQ.Host,
		c.MQ.AmqpPort,
		url.PathEscape(c.MQ.Vhost),
	), nil
}

func (c Config) MQEnabled() bool { return c.MQ.Host != "" }

func (c Config) SeedAccounts() ([]SeedAccount, error) {
	var out []SeedAccount
	for _, raw := range strings.Split(c.Auth.Users, ",") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		parts := strings.Split(raw, ":")
		if len(parts) != 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
			return nil, fmt.Errorf("invalid auth user entry %q, want username:password:role", raw)
		}
		out = append(out, SeedAccount{Username: parts[0], Password: parts[1], Role: parts[2]})
	}
	if len(out) == 0 {
		return nil, errors.New("no auth users configured")
	}

	return out, nil
}
