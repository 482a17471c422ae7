package config

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"hotelrp/cmd/internal/infrastructure/registry"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"
	"github.com/labstack/gommon/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnvDefaults(t *testing.T) {
	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, DriverSQLite, cfg.StoreDriver)
	assert.Equal(t, "reference/", cfg.Reference.Prefix)
	assert.Equal(t, registry.ProviderReceitaWS, cfg.Registry.Provider)
	assert.Equal(t, registry.PlanFree, cfg.Registry.Plan)
	assert.Equal(t, 720*time.Hour, cfg.CacheTTL)
	assert.Equal(t, int64(1), cfg.NodeID)
}

func TestFromEnvNestedVariables(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("STORE_DRIVER", "json")
	t.Setenv("REGISTRY_PROVIDER", "minhareceita")
	t.Setenv("REGISTRY_PLAN", "comercial")
	t.Setenv("REGISTRY_DELAY", "5s")
	t.Setenv("REFERENCE_BUCKET", "hotelrp-reference")
	t.Setenv("AUTH_JWT_SECRET", "s3cret")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Addr())
	assert.Equal(t, DriverJSON, cfg.StoreDriver)
	assert.Equal(t, "hotelrp-reference", cfg.Reference.Bucket)
	assert.Equal(t, "s3cret", cfg.Auth.JWTSecret)

	rc := cfg.RegistryConfig()
	assert.Equal(t, registry.ProviderMinhaReceita, rc.Provider)
	assert.Equal(t, registry.PlanCommercial, rc.Plan)
	assert.Equal(t, 5*time.Second, rc.Delay)
	assert.Equal(t, uint64(2), rc.MaxRetries)
}

func TestFromEnvRejectsUnknownDriver(t *testing.T) {
	t.Setenv("STORE_DRIVER", "postgres")

	_, err := FromEnv()
	assert.ErrorIs(t, err, ErrUnknownDriver)
}

func TestFromEnvRejectsMalformedValues(t *testing.T) {
	t.Setenv("CACHE_TTL", "um mes")

	_, err := FromEnv()
	assert.Error(t, err)
}

func TestLevel(t *testing.T) {
	tests := []struct {
		in   string
		want log.Lvl
	}{
		{"debug", log.DEBUG},
		{"WARNING", log.WARN},
		{"ERROR", log.ERROR},
		{"off", log.OFF},
		{"verbose", log.INFO},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			cfg := Config{LogLevel: tt.in}
			assert.Equal(t, tt.want, cfg.Level())
		})
	}
}

type fakeParameters struct {
	pages [][]types.Parameter
	err   error
	calls int
}

func (f *fakeParameters) GetParametersByPath(_ context.Context, in *ssm.GetParametersByPathInput, _ ...func(*ssm.Options)) (*ssm.GetParametersByPathOutput, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}

	page := 0
	if in.NextToken != nil {
		page = 1
	}
	out := &ssm.GetParametersByPathOutput{Parameters: f.pages[page]}
	if page+1 < len(f.pages) {
		out.NextToken = aws.String("next")
	}
	return out, nil
}

func TestLoadParametersExportsEveryPage(t *testing.T) {
	t.Setenv("REGISTRY_API_KEY", "")
	t.Setenv("EXPORT_BUCKET", "")

	client := &fakeParameters{pages: [][]types.Parameter{
		{{Name: aws.String(ParameterPrefix + "REGISTRY_API_KEY"), Value: aws.String("key-123")}},
		{{Name: aws.String(ParameterPrefix + "EXPORT_BUCKET"), Value: aws.String("hotelrp-exports")}},
	}}

	require.NoError(t, LoadParameters(context.Background(), client, ParameterPrefix))
	assert.Equal(t, 2, client.calls)
	assert.Equal(t, "key-123", os.Getenv("REGISTRY_API_KEY"))
	assert.Equal(t, "hotelrp-exports", os.Getenv("EXPORT_BUCKET"))
}

func TestLoadParametersPropagatesErrors(t *testing.T) {
	client := &fakeParameters{err: errors.New("access denied")}

	err := LoadParameters(context.Background(), client, ParameterPrefix)
	assert.ErrorContains(t, err, "access denied")
}
