package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/swidge-xyz/rango-wrapper/internal/app"
	"github.com/swidge-xyz/rango-wrapper/internal/config"
	"github.com/swidge-xyz/rango-wrapper/internal/logger"
	"github.com/swidge-xyz/rango-wrapper/pkg/rango"
)

// paramFlag collects repeated -param key=value flags.
type paramFlag map[string]string

func (p paramFlag) String() string {
	parts := make([]string, 0, len(p))
	for k, v := range p {
		parts = append(parts, k+"="+v)
	}
	return strings.Join(parts, ",")
}

func (p paramFlag) Set(raw string) error {
	key, value, ok := strings.Cut(raw, "=")
	if !ok || strings.TrimSpace(key) == "" {
		return errors.New("expected key=value")
	}
	p[strings.TrimSpace(key)] = value
	return nil
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "rango-fetch failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	params := paramFlag{}
	path := flag.String("path", "/basic/meta", "path appended to the configured base URL")
	flag.Var(params, "param", "query parameter as key=value (repeatable)")
	quote := flag.Bool("quote", false, "request a quote instead of a raw fetch")
	from := flag.String("from", "", "quote source asset as CHAINID.SYMBOL[--ADDRESS]")
	to := flag.String("to", "", "quote destination asset as CHAINID.SYMBOL[--ADDRESS]")
	amount := flag.String("amount", "", "quote input amount in the source token's smallest unit")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.Init(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	adapter := app.NewAdapter(cfg)
	if *quote {
		return runQuote(ctx, rango.NewClient(adapter), *from, *to, *amount)
	}

	log.DebugObj("fetching", "request", map[string]any{
		"base_url": cfg.RangoBaseURL,
		"path":     *path,
		"params":   map[string]string(params),
	})

	body, err := adapter.Fetch(ctx, *path, params)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(os.Stdout, body)
	return err
}

func runQuote(ctx context.Context, client *rango.Client, from, to, amount string) error {
	if strings.TrimSpace(amount) == "" {
		return errors.New("-amount is required with -quote")
	}
	fromAsset, err := rango.ParseChainAsset(from)
	if err != nil {
		return fmt.Errorf("-from: %w", err)
	}
	toAsset, err := rango.ParseChainAsset(to)
	if err != nil {
		return fmt.Errorf("-to: %w", err)
	}

	resp, err := client.Quote(ctx, rango.QuoteRequest{From: fromAsset, To: toAsset, Amount: amount})
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(resp)
}
