// Package icinga fetches problem hosts and services from an Icinga 2 style
// REST API. It returns raw bodies untouched so callers can compare payloads
// between polls before paying for a decode.
package icinga

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rileyhilliard/statusboard/internal/logger"
)

// Resource names one polled object collection.
type Resource string

const (
	Hosts    Resource = "hosts"
	Services Resource = "services"
)

// maxBodySize caps how much of a response body is read.
const maxBodySize = 8 << 20

// Response is the raw outcome of one fetch.
type Response struct {
	Resource   Resource
	StatusCode int
	Body       string
}

// OK reports whether the response carries a usable body.
func (r Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Err returns a StatusError for non-success responses, nil otherwise.
func (r Response) Err() error {
	if r.OK() {
		return nil
	}
	return &StatusError{Resource: r.Resource, StatusCode: r.StatusCode, Body: r.Body}
}

// StatusError is returned for a response with a non-success HTTP status.
type StatusError struct {
	Resource   Resource
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	body := strings.Join(strings.Fields(e.Body), " ")
	if body == "" {
		return fmt.Sprintf("%s: HTTP %d", e.Resource, e.StatusCode)
	}
	return fmt.Sprintf("%s: HTTP %d: %s", e.Resource, e.StatusCode, body)
}

// Config holds the connection settings for the API.
type Config struct {
	URL                string
	Username           string
	Password           string
	InsecureSkipVerify bool
	Timeout            time.Duration
}

// Client talks to the monitoring API.
type Client struct {
	base     *url.URL
	username string
	password string
	http     *http.Client
	log      logger.Logger
}

// NewClient validates cfg and builds a client.
func NewClient(cfg Config, log logger.Logger) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(cfg.URL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse api url: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("api url %q must use http or https", cfg.URL)
	}
	if base.Host == "" {
		return nil, fmt.Errorf("api url %q has no host", cfg.URL)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	if cfg.InsecureSkipVerify {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}

	if log == nil {
		log = logger.Noop()
	}

	return &Client{
		base:     base,
		username: cfg.Username,
		password: cfg.Password,
		http: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
		log: log,
	}, nil
}

// QueryFor returns the query string used for a resource: only objects in a
// non-OK hard state, with just the attributes the board needs.
func QueryFor(r Resource) url.Values {
	kind := strings.TrimSuffix(string(r), "s")
	q := url.Values{}
	q.Set("filter", fmt.Sprintf("%s.state != 0 && %s.state_type == 1", kind, kind))
	q.Add("attrs", "state")
	q.Add("attrs", "last_hard_state_change")
	return q
}

// URLFor returns the full request URL for a resource.
func (c *Client) URLFor(r Resource) string {
	u := *c.base
	u.Path = strings.TrimRight(u.Path, "/") + "/v1/objects/" + string(r)
	u.RawQuery = QueryFor(r).Encode()
	return u.String()
}

// Fetch performs one GET for the resource. Transport failures are returned as
// errors; HTTP error statuses are returned in the Response so the caller can
// show the body.
func (c *Client) Fetch(ctx context.Context, r Resource) (Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URLFor(r), nil)
	if err != nil {
		return Response{}, err
	}
	req.Header.Set("Accept", "application/json")
	if c.username != "" || c.password != "" {
		req.SetBasicAuth(c.username, c.password)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return Response{}, fmt.Errorf("fetch %s: %w", r, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return Response{}, fmt.Errorf("read %s: %w", r, err)
	}

	c.log.Debug("fetched %s: HTTP %d, %d bytes in %s", r, resp.StatusCode, len(body), time.Since(start).Round(time.Millisecond))

	return Response{
		Resource:   r,
		StatusCode: resp.StatusCode,
		Body:       string(body),
	}, nil
}
