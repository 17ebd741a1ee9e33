package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync/atomic"

	"github.com/vriksha-lab/backend/pkg/xcontext"
)

var ErrNoEndpoint = errors.New("no endpoint configured")

type Client interface {
	Header(name, value string) Client
	Query(query Parameter) Client
	Body(body Body) Client
	POST(ctx context.Context, opts ...Opt) (*Response, error)
	GET(ctx context.Context, opts ...Opt) (*Response, error)
}

type Generator interface {
	New(path string, args ...any) Client
}

type Body interface {
	ToReader() (io.Reader, string, error)
}

type Opt interface {
	Do(*http.Request)
}

type bearerOpt string

// Bearer authenticates the request with an API key.
func Bearer(token string) Opt {
	return bearerOpt(token)
}

func (opt bearerOpt) Do(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+string(opt))
}

type defaultGenerator struct {
	domains []string
	next    atomic.Uint32
}

// NewGenerator returns a client generator over the given base urls. Calls
// start on the domains in turn and move to the next one when a domain cannot
// be reached or answers with a server error.
func NewGenerator(domains ...string) *defaultGenerator {
	return &defaultGenerator{domains: domains}
}

func (g *defaultGenerator) New(path string, args ...any) Client {
	start := 0
	if len(g.domains) > 0 {
		start = int(g.next.Add(1)-1) % len(g.domains)
	}

	return &defaultClient{
		domains: append(append([]string{}, g.domains[start:]...), g.domains[:start]...),
		path:    fmt.Sprintf(path, args...),
		headers: make(http.Header),
	}
}

type defaultClient struct {
	domains []string
	path    string
	headers http.Header
	query   Parameter
	body    Body
}

func (c *defaultClient) Header(name, value string) Client {
	c.headers.Set(name, value)
	return c
}

func (c *defaultClient) Query(query Parameter) Client {
	c.query = query
	return c
}

func (c *defaultClient) Body(body Body) Client {
	c.body = body
	return c
}

func (c *defaultClient) POST(ctx context.Context, opts ...Opt) (*Response, error) {
	return c.call(ctx, http.MethodPost, opts)
}

func (c *defaultClient) GET(ctx context.Context, opts ...Opt) (*Response, error) {
	return c.call(ctx, http.MethodGet, opts)
}

func (c *defaultClient) call(ctx context.Context, method string, opts []Opt) (*Response, error) {
	if len(c.domains) == 0 {
		return nil, ErrNoEndpoint
	}

	var lastErr error
	for _, domain := range c.domains {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		resp, err := c.do(ctx, method, domain, opts)
		if err != nil {
			xcontext.Logger(ctx).Warnf("Cannot call %s%s: %v", domain, c.path, err)
			lastErr = err
			continue
		}

		if resp.Code >= http.StatusInternalServerError {
			xcontext.Logger(ctx).Warnf("Endpoint %s%s answered %d", domain, c.path, resp.Code)
			lastErr = fmt.Errorf("server error %d", resp.Code)
			continue
		}

		return resp, nil
	}

	return nil, fmt.Errorf("all endpoints failed: %w", lastErr)
}

func (c *defaultClient) do(ctx context.Context, method, domain string, opts []Opt) (*Response, error) {
	url := domain + c.path
	if len(c.query) > 0 {
		url += "?" + c.query.Encode()
	}

	// Bodies are rebuilt per attempt since a reader is consumed by a failed
	// attempt.
	var reader io.Reader
	var contentType string
	if c.body != nil {
		var err error
		if reader, contentType, err = c.body.ToReader(); err != nil {
			return nil, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, err
	}

	req.Header = c.headers.Clone()
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	for _, opt := range opts {
		opt.Do(req)
	}

	result, err := xcontext.HTTPClient(ctx).Do(req)
	if err != nil {
		return nil, err
	}
	defer result.Body.Close()

	body, err := io.ReadAll(result.Body)
	if err != nil {
		return nil, err
	}

	return &Response{Code: result.StatusCode, Header: result.Header, RawBody: body}, nil
}
