package rango

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

const (
	DefaultBaseURL = "https://api.rango.exchange"

	pathMeta   = "/basic/meta"
	pathQuote  = "/basic/quote"
	pathSwap   = "/basic/swap"
	pathStatus = "/basic/status"
)

var ErrInsufficientLiquidity = errors.New("INSUFFICIENT_LIQUIDITY")

// Client talks to the Rango basic API through a Fetcher and decodes its
// JSON payloads.
type Client struct {
	fetcher Fetcher
}

// NewClient wraps the given fetcher, typically an *Adapter.
func NewClient(fetcher Fetcher) *Client {
	return &Client{fetcher: fetcher}
}

// Meta returns the supported blockchains, tokens and swappers.
func (c *Client) Meta(ctx context.Context) (*MetaResponse, error) {
	var out MetaResponse
	if err := c.get(ctx, pathMeta, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Quote asks for the best route between two assets.
func (c *Client) Quote(ctx context.Context, req QuoteRequest) (*QuoteResponse, error) {
	params := map[string]string{
		"from":   req.From.String(),
		"to":     req.To.String(),
		"amount": req.Amount,
	}

	var out QuoteResponse
	if err := c.get(ctx, pathQuote, params, &out); err != nil {
		return nil, err
	}
	if out.ResultType != ResultOK || out.Route == nil {
		return nil, fmt.Errorf("%w: quote result %s", ErrInsufficientLiquidity, out.ResultType)
	}
	return &out, nil
}

// Swap builds the transaction(s) needed to execute a route.
func (c *Client) Swap(ctx context.Context, req SwapRequest) (*SwapResponse, error) {
	params := map[string]string{
		"from":            req.From.String(),
		"to":              req.To.String(),
		"amount":          req.Amount,
		"fromAddress":     req.FromAddress,
		"toAddress":       req.ToAddress,
		"slippage":        req.Slippage,
		"disableEstimate": "true",
	}

	var out SwapResponse
	if err := c.get(ctx, pathSwap, params, &out); err != nil {
		return nil, err
	}
	if out.ResultType != ResultOK || out.Tx == nil {
		return nil, fmt.Errorf("%w: swap result %s", ErrInsufficientLiquidity, out.ResultType)
	}
	return &out, nil
}

// Status reports the progress of a previously submitted swap.
func (c *Client) Status(ctx context.Context, req StatusRequest) (*StatusResponse, error) {
	params := map[string]string{
		"requestId": req.RequestID,
		"txId":      req.TxID,
	}

	var payload statusPayload
	if err := c.get(ctx, pathStatus, params, &payload); err != nil {
		return nil, err
	}

	out := &StatusResponse{Status: normalizeStatus(payload.Status)}
	if payload.Error != nil {
		out.Error = *payload.Error
	}
	if payload.Output != nil {
		out.AmountOut = payload.Output.Amount
		out.ReceivedToken = payload.Output.ReceivedToken
	}
	if payload.BridgeData != nil && payload.BridgeData.DestTxHash != nil {
		out.DestTxHash = *payload.BridgeData.DestTxHash
	}
	return out, nil
}

func normalizeStatus(raw *string) Status {
	if raw == nil {
		return StatusPending
	}
	switch strings.ToLower(strings.TrimSpace(*raw)) {
	case "failed":
		return StatusFailed
	case "success":
		return StatusSuccess
	default:
		return StatusPending
	}
}

func (c *Client) get(ctx context.Context, path string, params map[string]string, out any) error {
	if c == nil || c.fetcher == nil {
		return fmt.Errorf("rango client is not initialized")
	}

	body, err := c.fetcher.Fetch(ctx, path, params)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", path, err)
	}
	if err := json.Unmarshal([]byte(body), out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}
