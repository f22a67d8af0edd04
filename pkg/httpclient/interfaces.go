package httpclient

import "context"

// ResponseType declares how the capability should hand back the response body.
type ResponseType string

const (
	ResponseTypeText   ResponseType = "TEXT"
	ResponseTypeBinary ResponseType = "BINARY"
)

// Request describes a single outbound call. Every field is optional.
type Request struct {
	Headers      map[string]string
	URLParams    map[string]string
	ResponseType ResponseType
	Body         *string
}

// Response is what the capability returns on success. Body is nil when the
// server produced no body for the declared response type.
type Response struct {
	Status     int
	StatusText string
	Headers    map[string]string
	Body       *string
}

// Client abstracts HTTP calls so callers can inject mocks or different transports.
//
// Get has three outcomes: a non-nil error for transport failures, (nil, nil)
// when the transport legitimately produced nothing, or a Response.
type Client interface {
	Get(ctx context.Context, url string, req *Request) (*Response, error)
}
