package rango

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"time"

	"github.com/swidge-xyz/rango-wrapper/pkg/httpclient"
)

// APIKeyParam is the query parameter carrying the API key on every request.
const APIKeyParam = "apiKey"

const defaultTimeout = 15 * time.Second

var (
	ErrTransport     = errors.New("received an error as HTTP response")
	ErrEmptyResponse = errors.New("received an empty HTTP response")
	ErrEmptyBody     = errors.New("received an empty body as HTTP response")
)

// Config holds the fixed settings every request is built from.
type Config struct {
	BaseURL string
	APIKey  string
}

// Fetcher issues one authenticated GET and returns the raw body.
type Fetcher interface {
	Fetch(ctx context.Context, path string, params map[string]string) (string, error)
}

// Adapter turns a path and optional query parameters into a single
// authenticated GET against the configured base URL.
type Adapter struct {
	cfg    Config
	client httpclient.Client
}

// New builds an Adapter. A nil client falls back to a resty-backed one.
func New(cfg Config, client httpclient.Client) *Adapter {
	if client == nil {
		client = httpclient.NewRestyClient(defaultTimeout)
	}
	return &Adapter{cfg: cfg, client: client}
}

// Fetch performs GET BaseURL+path with params plus the API key and returns
// the body unchanged. A caller supplied apiKey entry is overwritten.
func (a *Adapter) Fetch(ctx context.Context, path string, params map[string]string) (string, error) {
	query := make(map[string]string, len(params)+1)
	maps.Copy(query, params)
	query[APIKeyParam] = a.cfg.APIKey

	resp, err := a.client.Get(ctx, a.cfg.BaseURL+path, &httpclient.Request{
		URLParams:    query,
		ResponseType: httpclient.ResponseTypeText,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrTransport, err)
	}
	if resp == nil {
		return "", ErrEmptyResponse
	}
	if resp.Body == nil {
		return "", ErrEmptyBody
	}
	return *resp.Body, nil
}
