package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Client defaults
const (
	DefaultRetries     = 3
	DefaultRetryDelay  = 500 * time.Millisecond
	DefaultMaxFileSize = 10 * 1024 * 1024 // 10MB
	DefaultTimeout     = 30 * time.Second
	DefaultUserAgent   = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
)

var (
	ErrInvalidURL   = errors.New("invalid URL")
	ErrFetchFailed  = errors.New("fetch failed after retries")
	ErrFileTooLarge = errors.New("file too large")
)

// ClientConfig configures the HTTP client
type ClientConfig struct {
	Retries     int
	RetryDelay  time.Duration
	MaxFileSize int64
	Timeout     time.Duration
	UserAgent   string
}

// DefaultClientConfig returns the stock client configuration
func DefaultClientConfig() ClientConfig {
	return ClientConfig{
		Retries:     DefaultRetries,
		RetryDelay:  DefaultRetryDelay,
		MaxFileSize: DefaultMaxFileSize,
		Timeout:     DefaultTimeout,
		UserAgent:   DefaultUserAgent,
	}
}

// Client performs single-file GETs with retries and a size cap
type Client struct {
	http      *http.Client
	retries   int
	delay     time.Duration
	maxSize   int64
	userAgent string
}

// NewClient creates a client from the given config, filling zero values
// with defaults.
func NewClient(cfg ClientConfig) *Client {
	def := DefaultClientConfig()
	if cfg.Retries <= 0 {
		cfg.Retries = def.Retries
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = def.RetryDelay
	}
	if cfg.MaxFileSize <= 0 {
		cfg.MaxFileSize = def.MaxFileSize
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = def.UserAgent
	}

	return &Client{
		http: &http.Client{
			Transport: &http.Transport{
				MaxIdleConns:    16,
				IdleConnTimeout: 30 * time.Second,
			},
			Timeout: cfg.Timeout,
		},
		retries:   cfg.Retries,
		delay:     cfg.RetryDelay,
		maxSize:   cfg.MaxFileSize,
		userAgent: cfg.UserAgent,
	}
}

// Fetch GETs the URL and returns the body and status code. Transport errors
// and 5xx responses are retried with a delay; 4xx responses are final.
func (c *Client) Fetch(ctx context.Context, u string) ([]byte, int, error) {
	lastStatus := 0

	for attempt := 1; attempt <= c.retries; attempt++ {
		if attempt > 1 {
			select {
			case <-time.After(c.delay):
			case <-ctx.Done():
				return nil, lastStatus, ctx.Err()
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: %s", ErrInvalidURL, u)
		}

		req.Header.Set("User-Agent", c.userAgent)
		if parsed, err := url.Parse(u); err == nil && parsed.Host != "" {
			req.Header.Set("Referer", parsed.Scheme+"://"+parsed.Host+"/")
		}
		req.Header.Set("Accept", "image/avif,image/webp,image/*,*/*;q=0.8")

		resp, err := c.http.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, lastStatus, ctx.Err()
			}
			if attempt == c.retries {
				return nil, 0, fmt.Errorf("%w: %v", ErrFetchFailed, err)
			}
			continue
		}

		lastStatus = resp.StatusCode

		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			// Client errors will not change between attempts
			if resp.StatusCode >= 400 && resp.StatusCode < 500 {
				return nil, resp.StatusCode, fmt.Errorf("status %d", resp.StatusCode)
			}
			if attempt == c.retries {
				return nil, resp.StatusCode, fmt.Errorf("status %d", resp.StatusCode)
			}
			continue
		}

		body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxSize+1))
		resp.Body.Close()
		if err != nil {
			if attempt == c.retries {
				return nil, resp.StatusCode, fmt.Errorf("%w: %v", ErrFetchFailed, err)
			}
			continue
		}

		if int64(len(body)) > c.maxSize {
			return nil, resp.StatusCode, ErrFileTooLarge
		}

		return body, resp.StatusCode, nil
	}

	return nil, lastStatus, ErrFetchFailed
}
