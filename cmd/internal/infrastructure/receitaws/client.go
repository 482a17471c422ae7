package receitaws

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
	apiKey     string
	maxRetries uint64
	httpClient *http.Client
}

func NewClient(cfg registry.Config) *Client {
	cfg = cfg.WithDefaults()
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
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
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, registry.ClassifyTransportError(err)
	}
	defer resp.Body.Close()

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

	// ReceitaWS answers 200 with status ERROR for unknown or invalid CNPJs
	if strings.EqualFold(company.Status, "ERROR") {
		return nil, fmt.Errorf("%w: %s", registry.ErrNotFound, company.Message)
	}
	return company.ToDomain(), nil
}
