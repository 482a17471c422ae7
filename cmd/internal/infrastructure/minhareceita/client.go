package minhareceita

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"hotelrp/cmd/internal/infrastructure/registry"
)

type Client struct {
	baseURL    string
	maxRetries uint64
	httpClient *http.Client
}

func NewClient(cfg registry.Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = registry.DefaultMinhaReceitaURL
	}
	cfg = cfg.WithDefaults()
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		maxRetries: cfg.MaxRetries,
		httpClient: cfg.HTTPClient(),
	}
}

func (c *Client) Lookup(ctx context.Context, cnpj string) (*registry.Company, error) {
	return registry.WithRetry(ctx, c.maxRetries, func(ctx context.Context) (*registry.Company, error) {
		return c.get(ctx, cnpj)
	})
}

func (c *Client) get(ctx context.Context, cnpj string) (*registry.Company, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/"+cnpj, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, registry.ClassifyTransportError(err)
	}
	defer resp.Body.Close()

	// Minha Receita answers 400 for malformed CNPJs, treat it like an unknown one
	if resp.StatusCode == http.StatusBadRequest {
		return nil, registry.ErrNotFound
	}

	if resp.StatusCode != http.StatusOK {
		return nil, registry.StatusToError(resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, registry.ClassifyTransportError(err)
	}

	var company companyResponse
	err = json.Unmarshal(body, &company)
	if err != nil {
		return nil, fmt.Errorf("%w: decoding response: %v", registry.ErrUpstream, err)
	}
	return company.ToDomain(), nil
}
