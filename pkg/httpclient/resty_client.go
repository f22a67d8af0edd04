package httpclient

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const maxErrorSnippet = 512

// RestyClient adapts resty.Client to the httpclient.Client interface.
type RestyClient struct {
	client *resty.Client
}

// NewRestyClient creates a new RestyClient with the specified timeout.
func NewRestyClient(timeout time.Duration) *RestyClient {
	return &RestyClient{client: newRestyBaseClient(timeout)}
}

// NewRestyHTTPClient exposes a configured resty.Client for callers needing custom verbs.
func NewRestyHTTPClient(timeout time.Duration) *resty.Client {
	return newRestyBaseClient(timeout)
}

func newRestyBaseClient(timeout time.Duration) *resty.Client {
	c := resty.New()
	c.SetTimeout(timeout)
	c.SetAllowGetMethodPayload(true)
	return c
}

// Get performs an HTTP GET request described by req against target.
// Errors name target without the query string, which may carry credentials.
func (r *RestyClient) Get(ctx context.Context, target string, req *Request) (*Response, error) {
	if req == nil {
		req = &Request{}
	}

	rr := r.client.R().SetContext(ctx)
	if len(req.Headers) > 0 {
		rr.SetHeaders(req.Headers)
	}
	if len(req.URLParams) > 0 {
		rr.SetQueryParams(req.URLParams)
	}
	if req.Body != nil {
		rr.SetBody(*req.Body)
	}

	resp, err := rr.Get(target)
	if err != nil {
		var uerr *url.Error
		if errors.As(err, &uerr) {
			err = uerr.Err
		}
		return nil, fmt.Errorf("http get %s: %w", target, err)
	}
	if !resp.IsSuccess() {
		return nil, fmt.Errorf("http get %s: status %d: %s", target, resp.StatusCode(), snippet(resp.Body()))
	}
	if resp.StatusCode() == http.StatusNoContent {
		return nil, nil
	}

	return &Response{
		Status:     resp.StatusCode(),
		StatusText: resp.Status(),
		Headers:    flattenHeaders(resp.Header()),
		Body:       encodeBody(resp.Body(), req.ResponseType),
	}, nil
}

func encodeBody(raw []byte, typ ResponseType) *string {
	var body string
	switch typ {
	case ResponseTypeBinary:
		body = base64.StdEncoding.EncodeToString(raw)
	default:
		body = string(raw)
	}
	return &body
}

// flattenHeaders keeps the first value of every header.
func flattenHeaders(h http.Header) map[string]string {
	if len(h) == 0 {
		return nil
	}
	out := make(map[string]string, len(h))
	for k, v := range h {
		if len(v) > 0 {
			out[k] = v[0]
		}
	}
	return out
}

func snippet(body []byte) string {
	if len(body) > maxErrorSnippet {
		body = body[:maxErrorSnippet]
	}
	return strings.TrimSpace(string(body))
}
