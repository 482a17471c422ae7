package registry

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"
)

const (
	ProviderReceitaWS    = "receitaws"
	ProviderMinhaReceita = "minhareceita"

	PlanFree       = "gratuito"
	PlanCommercial = "comercial"
)

var (
	ErrNotFound     = errors.New("cnpj not found")
	ErrRateLimited  = errors.New("registry rate limit exceeded")
	ErrUnauthorized = errors.New("registry rejected the api key")
	ErrUpstream     = errors.New("registry returned an unexpected status")
	ErrUnavailable  = errors.New("registry unavailable")
	ErrTimeout      = errors.New("registry request timed out")
)

// StatusError carries the upstream status code. It unwraps to ErrUpstream.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: %d", ErrUpstream, e.StatusCode)
}

func (e *StatusError) Unwrap() error {
	return ErrUpstream
}

type Activity struct {
	Code        string `json:"code"`
	Description string `json:"text"`
}

type Partner struct {
	Name string `json:"nome"`
	Role string `json:"qual"`
}

// Company is the provider-neutral result of a CNPJ lookup.
type Company struct {
	CNPJ                string
	FormattedCNPJ       string
	LegalName           string
	TradeName           string
	Status              string
	Type                string
	OpeningDate         string
	LegalNature         string
	SizeText            string
	ShareCapital        string
	MainActivity        Activity
	SecondaryActivities []Activity
	Partners            []Partner
	Street              string
	Number              string
	Complement          string
	Neighborhood        string
	City                string
	State               string
	ZipCode             string
	Phone               string
	Email               string
	LastUpdate          string
}

// Client looks companies up by digits-only CNPJ.
type Client interface {
	Lookup(ctx context.Context, cnpj string) (*Company, error)
}

type Config struct {
	Provider   string
	BaseURL    string
	APIKey     string
	Plan       string
	Delay      time.Duration
	Timeout    time.Duration
	MaxRetries uint64
}

const (
	DefaultReceitaWSURL    = "https://www.receitaws.com.br/v1/cnpj"
	DefaultMinhaReceitaURL = "https://minhareceita.org"
	DefaultTimeout         = 30 * time.Second
	DefaultMaxRetries      = 2
	FreePlanDelay          = 20 * time.Second
)

// WithDefaults fills unset fields. The free plan allows three requests per
// minute, hence the 20s delay between batch items.
func (c Config) WithDefaults() Config {
	if c.Provider == "" {
		c.Provider = ProviderReceitaWS
	}
	if c.Plan == "" {
		c.Plan = PlanFree
	}
	if c.BaseURL == "" {
		switch c.Provider {
		case ProviderMinhaReceita:
			c.BaseURL = DefaultMinhaReceitaURL
		default:
			c.BaseURL = DefaultReceitaWSURL
		}
	}
	if c.Delay == 0 && c.Plan == PlanFree {
		c.Delay = FreePlanDelay
	}
	if c.Timeout == 0 {
		c.Timeout = DefaultTimeout
	}
	if c.MaxRetries == 0 {
		c.MaxRetries = DefaultMaxRetries
	}
	return c
}

func (c Config) HTTPClient() *http.Client {
	return &http.Client{Timeout: c.Timeout}
}

// ClassifyTransportError maps a failed round trip to ErrTimeout or ErrUnavailable.
func ClassifyTransportError(err error) error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}

// StatusToError maps the non-2xx statuses every provider shares.
func StatusToError(status int) error {
	switch {
	case status == http.StatusNotFound:
		return ErrNotFound
	case status == http.StatusTooManyRequests:
		return ErrRateLimited
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return ErrUnauthorized
	default:
		return &StatusError{StatusCode: status}
	}
}

// Retryable reports whether err is worth another attempt: transport failures
// and 5xx responses are, everything else is final.
func Retryable(err error) bool {
	if errors.Is(err, ErrUnavailable) || errors.Is(err, ErrTimeout) {
		return true
	}
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode >= 500
}
