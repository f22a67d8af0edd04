package rango

import (
	"context"
	"errors"
	"maps"
	"testing"

	"github.com/swidge-xyz/rango-wrapper/pkg/httpclient"
)

const (
	testBaseURL = "https://api.example.com"
	testAPIKey  = "secret-key"
)

// fakeCapability records the last request and returns a preset outcome.
type fakeCapability struct {
	url  string
	req  *httpclient.Request
	resp *httpclient.Response
	err  error
	// responses keyed by URL, used by client tests
	bodies map[string]string
}

func (f *fakeCapability) Get(_ context.Context, url string, req *httpclient.Request) (*httpclient.Response, error) {
	f.url = url
	f.req = req
	if f.err != nil {
		return nil, f.err
	}
	if f.bodies != nil {
		body, ok := f.bodies[url]
		if !ok {
			return nil, errors.New("unexpected url " + url)
		}
		return &httpclient.Response{Status: 200, Body: &body}, nil
	}
	return f.resp, nil
}

func textResponse(body string) *httpclient.Response {
	return &httpclient.Response{Status: 200, Body: &body}
}

func TestFetchReturnsBodyVerbatim(t *testing.T) {
	body := `[{"id":"bitcoin"}]`
	capability := &fakeCapability{resp: textResponse(body)}
	adapter := New(Config{BaseURL: testBaseURL, APIKey: testAPIKey}, capability)

	got, err := adapter.Fetch(context.Background(), "/coins/list", nil)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if got != body {
		t.Fatalf("body = %q, want %q", got, body)
	}
	if capability.url != testBaseURL+"/coins/list" {
		t.Fatalf("url = %q", capability.url)
	}
	if capability.req.ResponseType != httpclient.ResponseTypeText {
		t.Fatalf("response type = %q", capability.req.ResponseType)
	}
	if capability.req.Headers != nil || capability.req.Body != nil {
		t.Fatalf("expected no headers and no body, got %#v", capability.req)
	}
}

func TestFetchWithoutParamsSendsOnlyAPIKey(t *testing.T) {
	capability := &fakeCapability{resp: textResponse("ok")}
	adapter := New(Config{BaseURL: testBaseURL, APIKey: testAPIKey}, capability)

	if _, err := adapter.Fetch(context.Background(), "/ping", nil); err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	want := map[string]string{APIKeyParam: testAPIKey}
	if !maps.Equal(capability.req.URLParams, want) {
		t.Fatalf("params = %v, want %v", capability.req.URLParams, want)
	}
}

func TestFetchMergesParams(t *testing.T) {
	capability := &fakeCapability{resp: textResponse("pong")}
	adapter := New(Config{BaseURL: testBaseURL, APIKey: testAPIKey}, capability)

	params := map[string]string{"foo": "bar"}
	if _, err := adapter.Fetch(context.Background(), "/ping", params); err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	want := map[string]string{"foo": "bar", APIKeyParam: testAPIKey}
	if !maps.Equal(capability.req.URLParams, want) {
		t.Fatalf("params = %v, want %v", capability.req.URLParams, want)
	}
	if len(params) != 1 {
		t.Fatalf("caller params were mutated: %v", params)
	}
}

func TestFetchOverwritesCallerAPIKey(t *testing.T) {
	capability := &fakeCapability{resp: textResponse("ok")}
	adapter := New(Config{BaseURL: testBaseURL, APIKey: testAPIKey}, capability)

	_, err := adapter.Fetch(context.Background(), "/ping", map[string]string{APIKeyParam: "attacker"})
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if got := capability.req.URLParams[APIKeyParam]; got != testAPIKey {
		t.Fatalf("apiKey = %q, want %q", got, testAPIKey)
	}
}

func TestFetchDoesNotNormalizeSlashes(t *testing.T) {
	capability := &fakeCapability{resp: textResponse("ok")}
	adapter := New(Config{BaseURL: testBaseURL + "/", APIKey: testAPIKey}, capability)

	if _, err := adapter.Fetch(context.Background(), "/ping", nil); err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if capability.url != testBaseURL+"//ping" {
		t.Fatalf("url = %q", capability.url)
	}
}

func TestFetchFailures(t *testing.T) {
	tests := []struct {
		name       string
		capability *fakeCapability
		want       error
	}{
		{name: "transport", capability: &fakeCapability{err: errors.New("dial tcp: refused")}, want: ErrTransport},
		{name: "empty response", capability: &fakeCapability{}, want: ErrEmptyResponse},
		{name: "empty body", capability: &fakeCapability{resp: &httpclient.Response{Status: 200}}, want: ErrEmptyBody},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			adapter := New(Config{BaseURL: testBaseURL, APIKey: testAPIKey}, tc.capability)
			got, err := adapter.Fetch(context.Background(), "/ping", nil)
			if !errors.Is(err, tc.want) {
				t.Fatalf("err = %v, want %v", err, tc.want)
			}
			if got != "" {
				t.Fatalf("expected no value on failure, got %q", got)
			}
		})
	}
}

func TestFetchFailuresAreDistinct(t *testing.T) {
	for _, pair := range [][2]error{
		{ErrTransport, ErrEmptyResponse},
		{ErrTransport, ErrEmptyBody},
		{ErrEmptyResponse, ErrEmptyBody},
	} {
		if errors.Is(pair[0], pair[1]) || pair[0].Error() == pair[1].Error() {
			t.Fatalf("errors %v and %v must be distinguishable", pair[0], pair[1])
		}
	}
}

func TestFetchReturnsEmptyStringBody(t *testing.T) {
	adapter := New(Config{BaseURL: testBaseURL, APIKey: testAPIKey}, &fakeCapability{resp: textResponse("")})

	got, err := adapter.Fetch(context.Background(), "/ping", nil)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if got != "" {
		t.Fatalf("body = %q, want empty", got)
	}
}

func TestFetchKeepsWhitespace(t *testing.T) {
	body := "  {\"a\":1}\n"
	adapter := New(Config{BaseURL: testBaseURL, APIKey: testAPIKey}, &fakeCapability{resp: textResponse(body)})

	got, err := adapter.Fetch(context.Background(), "/ping", nil)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if got != body {
		t.Fatalf("body = %q, want %q", got, body)
	}
}
