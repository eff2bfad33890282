package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sentiment/pkg/storage"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config represents the application configuration structure.
// It contains settings for the environment, HTTP server, CORS headers,
// storage backends and graceful shutdown behavior.
type Config struct {
	// Environment specifies the current running environment (development, production, etc.)
	Environment string `env:"ENVIRONMENT" env-default:"development" yaml:"environment"`

	// HTTP contains all HTTP server related configurations
	HTTP struct {
		// Addr is the address and port the HTTP server will listen on
		Addr string `env:"HTTP_ADDR" env-default:":8080" yaml:"addr"`
		// ReadTimeout is the maximum duration for reading the entire request, including the body
		ReadTimeout time.Duration `env:"HTTP_READ_TIMEOUT" env-default:"1m" yaml:"readTimeout"`
		// ReadHeaderTimeout is the amount of time allowed to read request headers
		ReadHeaderTimeout time.Duration `env:"HTTP_READ_HEADER_TIMEOUT" env-default:"10s" yaml:"readHeaderTimeout"`
		// WriteTimeout is the maximum duration before timing out writes of the response
		WriteTimeout time.Duration `env:"HTTP_WRITE_TIMEOUT" env-default:"2m" yaml:"writeTimeout"`
		// IdleTimeout is the maximum amount of time to wait for the next request when keep-alives are enabled
		IdleTimeout time.Duration `env:"HTTP_IDLE_TIMEOUT" env-default:"2m" yaml:"idleTimeout"`
		// RequestTimeout is the maximum time allowed for processing a single request
		RequestTimeout time.Duration `env:"HTTP_REQUEST_TIMEOUT" env-default:"10s" yaml:"requestTimeout"`
		// MaxHeaderBytes controls the maximum number of bytes the server will read parsing the request header
		MaxHeaderBytes int `env:"HTTP_MAX_HEADER_BYTES" env-default:"0" yaml:"maxHeaderBytes"`
		// MetricsPath defines the URL path where metrics are exposed
		MetricsPath string `env:"HTTP_METRICS_PATH" env-default:"/metrics" yaml:"metricsPath"`
		// HideErrorDetails replaces the store's error text on 500 responses with a generic message
		HideErrorDetails bool `env:"HTTP_HIDE_ERROR_DETAILS" env-default:"false" yaml:"hideErrorDetails"`
	} `yaml:"http"`

	// CORS contains the literal header values set on /api/* responses
	CORS struct {
		AllowOrigin  string `env:"CORS_ALLOW_ORIGIN" env-default:"https://www.wsb-analysis.ca" yaml:"allowOrigin"`
		AllowMethods string `env:"CORS_ALLOW_METHODS" env-default:"GET, POST, PUT, DELETE, OPTIONS" yaml:"allowMethods"`
		AllowHeaders string `env:"CORS_ALLOW_HEADERS" env-default:"Content-Type, Authorization" yaml:"allowHeaders"`
		// ShortCircuitPreflight answers OPTIONS requests with 204 instead of routing them
		ShortCircuitPreflight bool `env:"CORS_SHORT_CIRCUIT_PREFLIGHT" env-default:"false" yaml:"shortCircuitPreflight"`
	} `yaml:"cors"`

	// StorageDriver selects the posts backend: mongo or postgres
	StorageDriver string `env:"STORAGE_DRIVER" env-default:"mongo" yaml:"storageDriver"`

	// MongoDB contains the MongoDB connection settings used by the mongo driver
	MongoDB struct {
		// URI is the connection string; an empty value fails at connection time
		URI string `env:"MONGODB_URI" yaml:"uri"`
		// Database is the database holding the posts collection
		Database string `env:"MONGODB_DATABASE" env-default:"sentiment-analysis" yaml:"database"`
		// Collection is the posts collection name
		Collection string `env:"MONGODB_COLLECTION" env-default:"posts" yaml:"collection"`
		// MaxPoolSize limits the number of pooled connections per server
		MaxPoolSize uint64 `env:"MONGODB_MAX_POOL_SIZE" env-default:"20" yaml:"maxPoolSize"`
		// MinPoolSize is the number of connections kept open while idle
		MinPoolSize uint64 `env:"MONGODB_MIN_POOL_SIZE" env-default:"0" yaml:"minPoolSize"`
		// ConnectTimeout bounds establishing a single connection
		ConnectTimeout time.Duration `env:"MONGODB_CONNECT_TIMEOUT" env-default:"10s" yaml:"connectTimeout"`
		// ServerSelectionTimeout bounds finding a server for an operation
		ServerSelectionTimeout time.Duration `env:"MONGODB_SERVER_SELECTION_TIMEOUT" env-default:"5s" yaml:"serverSelectionTimeout"` //nolint: lll
	} `yaml:"mongodb"`

	// Database contains all database connection related configurations
	Database struct {
		// Username for database authentication
		Username string `env:"DATABASE_USERNAME" env-default:"myuser" yaml:"username"`
		// Password for database authentication
		Password string `env:"DATABASE_PASSWORD" env-default:"mypassword" yaml:"password"`
		// Host is the database server hostname or IP address
		Host string `env:"DATABASE_HOST" env-default:"localhost" yaml:"host"`
		// Port is the database server port number
		Port int `env:"DATABASE_PORT" env-default:"5432" yaml:"port"`
		// SslMode defines the SSL mode for the database connection
		SslMode string `env:"DATABASE_SSL_MODE" env-default:"disable" yaml:"sslMode"`
		// DatabaseName is the name of the database to connect to
		DatabaseName string `env:"DATABASE_NAME" env-default:"sentiment" yaml:"name"`
		// MaxOpenConnections limits the number of open connections to the database
		MaxOpenConnections int `env:"DATABASE_MAX_OPEN_CONNECTIONS" env-default:"10" yaml:"maxOpenConnections"`
		// MaxIdleConnections is the number of connections kept open while idle
		MaxIdleConnections int `env:"DATABASE_MAX_IDLE_CONNECTIONS" env-default:"2" yaml:"maxIdleConnections"`
		// ConnMaxLifetime is the maximum amount of time a connection may be reused
		ConnMaxLifetime time.Duration `env:"DATABASE_CONNECTION_MAX_LIFETIME" env-default:"3m" yaml:"connMaxLifetime"`
		// ConnMaxIdleTime is the maximum amount of time a connection may be idle
		ConnMaxIdleTime time.Duration `env:"DATABASE_CONNECTION_MAX_IDLE_TIME" env-default:"3m" yaml:"connMaxIdleTime"`
	} `yaml:"database"`

	// GracefulShutdownTimeout is the maximum duration to wait for ongoing requests to complete during shutdown
	GracefulShutdownTimeout time.Duration `env:"GRACEFUL_SHUTDOWN_TIMEOUT" env-default:"10s" yaml:"gracefulShutdownTimeout"` //nolint: lll
}

// ErrInvalidConfig is returned by Load when a loaded value is unusable.
var ErrInvalidConfig = errors.New("invalid config")

// Load fills a Config from, in increasing priority, the defaults, the yaml
// file at configPath and the environment. A .env file in the working
// directory is loaded into the environment first when present. A missing
// yaml file is not an error.
func Load(configPath string) (*Config, error) {
	// optional; existing environment variables are not overridden
	_ = godotenv.Load()

	var cfg Config
	var err error
	if _, statErr := os.Stat(configPath); errors.Is(statErr, fs.ErrNotExist) {
		err = cleanenv.ReadEnv(&cfg)
	} else {
		err = cleanenv.ReadConfig(configPath, &cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("could not read config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate reports values that would only fail later at runtime.
func (c *Config) Validate() error {
	switch c.StorageDriver {
	case storage.DriverMongo, storage.DriverPostgres:
	default:
		return fmt.Errorf("%w: %w %q", ErrInvalidConfig, storage.ErrUnknownDriver, c.StorageDriver)
	}

	if c.HTTP.RequestTimeout < 0 {
		return fmt.Errorf("%w: negative request timeout %s", ErrInvalidConfig, c.HTTP.RequestTimeout)
	}

	return nil
}
