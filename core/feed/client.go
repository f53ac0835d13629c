package feed

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"
)

// FetchError reports a network or transport failure while downloading the
// feed.
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to fetch feed %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// ParseError reports a malformed feed document.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse feed: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Fetcher downloads and parses the catalog feed. Fetch returns the
// normalized root alongside the raw document bytes (used for snapshot
// archiving).
type Fetcher interface {
	Fetch(ctx context.Context) (*Node, []byte, error)
}

// Client is the HTTP Fetcher. One Fetch performs exactly one GET; retry
// policy belongs to the caller.
type Client struct {
	cfg  Config
	http *http.Client
}

// NewClient creates a feed client for the configured URL.
func NewClient(cfg Config) *Client {
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 60
	}
	timeoutDuration := time.Duration(timeout) * time.Second

	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   timeoutDuration,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:   true,
		TLSHandshakeTimeout: timeoutDuration,
		IdleConnTimeout:     90 * time.Second,
	}

	return &Client{
		cfg: cfg,
		http: &http.Client{
			Transport: transport,
			Timeout:   timeoutDuration,
		},
	}
}

// Fetch downloads the feed, parses it and normalizes the root. Transport
// failures surface as *FetchError, malformed documents as *ParseError.
func (c *Client) Fetch(ctx context.Context) (*Node, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.URL, nil)
	if err != nil {
		return nil, nil, &FetchError{URL: c.cfg.URL, Err: err}
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, nil, &FetchError{URL: c.cfg.URL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, nil, &FetchError{URL: c.cfg.URL, Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, &FetchError{URL: c.cfg.URL, Err: err}
	}

	root, err := Parse(bytes.NewReader(raw))
	if err != nil {
		return nil, nil, err
	}
	return NormalizeRoot(root), raw, nil
}
