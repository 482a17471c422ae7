// Package config loads the server settings from the environment.
package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"hotelrp/cmd/internal/infrastructure/registry"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/labstack/gommon/log"
)

// ParameterPrefix is the SSM path holding the production variables.
const ParameterPrefix = "/hotelrp/prod/"

const (
	DriverSQLite = "sqlite"
	DriverJSON   = "json"
)

var ErrUnknownDriver = errors.New("unknown store driver")

type Config struct {
	// Env: PORT (default: 8000)
	Port int `envconfig:"PORT" default:"8000"`

	// DBPath is the sqlite file used by the sqlite driver.
	// Env: DB_PATH (default: hotel_rp.db)
	DBPath string `envconfig:"DB_PATH" default:"hotel_rp.db"`

	// StoreDriver selects where companies live: sqlite or json.
	// Env: STORE_DRIVER (default: sqlite)
	StoreDriver string `envconfig:"STORE_DRIVER" default:"sqlite"`

	// DataDir holds empresas.json for the json driver and optional
	// reference file overrides.
	// Env: DATA_DIR (default: data)
	DataDir string `envconfig:"DATA_DIR" default:"data"`

	Reference ReferenceEnv `envconfig:"REFERENCE"`

	// ExportBucket enables publishing exports to S3 when set.
	// Env: EXPORT_BUCKET
	ExportBucket string `envconfig:"EXPORT_BUCKET"`

	// Env: AWS_REGION (default: us-east-2)
	AWSRegion string `envconfig:"AWS_REGION" default:"us-east-2"`

	// Env: LOG_LEVEL (default: INFO)
	LogLevel string `envconfig:"LOG_LEVEL" default:"INFO"`

	Registry RegistryEnv `envconfig:"REGISTRY"`
	Auth     AuthEnv     `envconfig:"AUTH"`

	// NodeID seeds the snowflake generator for company ids.
	// Env: NODE_ID (default: 1)
	NodeID int64 `envconfig:"NODE_ID" default:"1"`

	// CacheTTL is how long registry lookups stay cached.
	// Env: CACHE_TTL (default: 720h)
	CacheTTL time.Duration `envconfig:"CACHE_TTL" default:"720h"`

	// Env: CACHE_SWEEP_INTERVAL (default: 1h)
	CacheSweepInterval time.Duration `envconfig:"CACHE_SWEEP_INTERVAL" default:"1h"`
}

// ReferenceEnv points at an S3 copy of the reference files. Missing files
// fall back to the embedded data.
type ReferenceEnv struct {
	// Env: REFERENCE_BUCKET
	Bucket string `envconfig:"BUCKET"`

	// Env: REFERENCE_PREFIX (default: reference/)
	Prefix string `envconfig:"PREFIX" default:"reference/"`
}

type RegistryEnv struct {
	// Env: REGISTRY_PROVIDER (default: receitaws)
	Provider string `envconfig:"PROVIDER" default:"receitaws"`

	// Env: REGISTRY_BASE_URL
	BaseURL string `envconfig:"BASE_URL"`

	// Env: REGISTRY_API_KEY
	APIKey string `envconfig:"API_KEY"`

	// Env: REGISTRY_PLAN (default: gratuito)
	Plan string `envconfig:"PLAN" default:"gratuito"`

	// Delay between batch lookups. Zero takes the plan's default.
	// Env: REGISTRY_DELAY
	Delay time.Duration `envconfig:"DELAY"`

	// Env: REGISTRY_TIMEOUT (default: 30s)
	Timeout time.Duration `envconfig:"TIMEOUT" default:"30s"`

	// Env: REGISTRY_MAX_RETRIES (default: 2)
	MaxRetries uint64 `envconfig:"MAX_RETRIES" default:"2"`
}

// AuthEnv configures bearer token checks on mutating routes. With neither
// field set every request is accepted.
type AuthEnv struct {
	// Env: AUTH_JWT_SECRET
	JWTSecret string `envconfig:"JWT_SECRET"`

	// Env: AUTH_JWKS_URL
	JWKSURL string `envconfig:"JWKS_URL"`
}

// Load populates the environment from SSM in production or from .env
// otherwise, then parses it.
func Load(ctx context.Context) (*Config, error) {
	if os.Getenv("GO_ENV") == "production" {
		region := os.Getenv("AWS_REGION")
		if region == "" {
			region = "us-east-2"
		}
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
		if err != nil {
			return nil, fmt.Errorf("unable to load SDK config: %w", err)
		}
		if err := LoadParameters(ctx, ssm.NewFromConfig(awsCfg), ParameterPrefix); err != nil {
			return nil, err
		}
	} else if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("unable to load .env: %w", err)
	}

	return FromEnv()
}

// FromEnv parses the current environment.
func FromEnv() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.StoreDriver {
	case DriverSQLite, DriverJSON:
	default:
		return fmt.Errorf("%w: %s", ErrUnknownDriver, c.StoreDriver)
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	return nil
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func (c *Config) RegistryConfig() registry.Config {
	return registry.Config{
		Provider:   c.Registry.Provider,
		BaseURL:    c.Registry.BaseURL,
		APIKey:     c.Registry.APIKey,
		Plan:       c.Registry.Plan,
		Delay:      c.Registry.Delay,
		Timeout:    c.Registry.Timeout,
		MaxRetries: c.Registry.MaxRetries,
	}
}

// Level maps LOG_LEVEL onto gommon's levels. Unknown names mean INFO.
func (c *Config) Level() log.Lvl {
	switch strings.ToUpper(c.LogLevel) {
	case "DEBUG":
		return log.DEBUG
	case "WARN", "WARNING":
		return log.WARN
	case "ERROR":
		return log.ERROR
	case "OFF":
		return log.OFF
	default:
		return log.INFO
	}
}

// LoadParameters exports every parameter under prefix as an environment
// variable named after the rest of its path.
func LoadParameters(ctx context.Context, client ssm.GetParametersByPathAPIClient, prefix string) error {
	paginator := ssm.NewGetParametersByPathPaginator(client, &ssm.GetParametersByPathInput{
		Path:           aws.String(prefix),
		WithDecryption: aws.Bool(true),
		Recursive:      aws.Bool(true),
	})

	count := 0
	for paginator.HasMorePages() {
		out, err := paginator.NextPage(ctx)
		if err != nil {
			return fmt.Errorf("unable to load prod environment: %w", err)
		}

		for _, param := range out.Parameters {
			key := strings.TrimPrefix(aws.ToString(param.Name), prefix)
			if err := os.Setenv(key, aws.ToString(param.Value)); err != nil {
				return fmt.Errorf("unable to set environment variable %s: %w", key, err)
			}
			count++
		}
	}

	log.Debugf("loaded %d prod environment variables", count)
	return nil
}
