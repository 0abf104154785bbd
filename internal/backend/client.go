package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
)

// Service defines the backend calls the rest of the application relies on.
// This interface is implemented by *Client and can be used for testing.
type Service interface {
	Analyze(ctx context.Context, imageURL string) (Analysis, error)
	SubmitContact(ctx context.Context, payload ContactPayload) (Confirmation, error)
	Health(ctx context.Context) error
}

// Ensure Client implements Service at compile time.
var _ Service = (*Client)(nil)

// Client talks to the site's HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
	breaker   *gobreaker.CircuitBreaker
}

const (
	defaultAPIBase   = "http://127.0.0.1:5000"
	defaultUserAgent = "capture/0.1"
	requestTimeout   = 10 * time.Second
	maxErrorBody     = 4 << 10

	breakerTrips   = 5
	breakerTimeout = 30 * time.Second
)

// NewClient builds a Client for the API rooted at apiBase (host:port or URL).
func NewClient(apiBase string) (*Client, error) {
	base, err := parseBaseURL(apiBase)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		userAgent: defaultUserAgent,
		breaker:   newBreaker(base.Host, breakerTimeout),
	}, nil
}

// BaseURL returns the normalised API root.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// Analyze asks the backend for a caption and tags describing imageURL.
func (c *Client) Analyze(ctx context.Context, imageURL string) (Analysis, error) {
	if c == nil {
		return Analysis{}, fmt.Errorf("client is nil")
	}
	if strings.TrimSpace(imageURL) == "" {
		return Analysis{}, fmt.Errorf("image url required")
	}
	var payload Analysis
	if err := c.do(ctx, http.MethodPost, "/api/analyze", AnalyzeRequest{ImageURL: imageURL}, &payload); err != nil {
		return Analysis{}, err
	}
	return payload, nil
}

// SubmitContact posts a contact form submission.
func (c *Client) SubmitContact(ctx context.Context, payload ContactPayload) (Confirmation, error) {
	if c == nil {
		return Confirmation{}, fmt.Errorf("client is nil")
	}
	var conf Confirmation
	if err := c.do(ctx, http.MethodPost, "/api/contact", payload, &conf); err != nil {
		return Confirmation{}, err
	}
	return conf, nil
}

// Health checks that the backend answers at its root.
func (c *Client) Health(ctx context.Context) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	return c.do(ctx, http.MethodGet, "/", nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, dest any) error {
	_, err := c.breaker.Execute(func() (any, error) {
		return nil, c.doOnce(ctx, method, path, body, dest)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("%s %s: %w", method, path, ErrUnavailable)
	}
	return err
}

func (c *Client) doOnce(ctx context.Context, method, path string, body, dest any) error {
	reqURL := c.baseURL.ResolveReference(&url.URL{Path: path})

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	logrus.WithFields(logrus.Fields{
		"method": method,
		"path":   path,
		"status": resp.StatusCode,
	}).Debug("api response")

	if resp.StatusCode >= 400 {
		return statusError(path, resp)
	}
	if dest == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func statusError(path string, resp *http.Response) error {
	serr := &StatusError{Endpoint: path, StatusCode: resp.StatusCode}
	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil || len(raw) == 0 {
		return serr
	}
	var body errorBody
	if json.Unmarshal(raw, &body) == nil && body.Error != "" {
		serr.Message = body.Error
		if body.Details != "" {
			serr.Message += " (" + body.Details + ")"
		}
		return serr
	}
	serr.Message = strings.TrimSpace(string(raw))
	return serr
}

// newBreaker trips after consecutive transport or 5xx failures. Client errors
// mean the backend is reachable and do not count against it.
func newBreaker(name string, timeout time.Duration) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    name,
		Timeout: timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= breakerTrips
		},
		IsSuccessful: func(err error) bool {
			if err == nil {
				return true
			}
			var serr *StatusError
			return errors.As(err, &serr) && !serr.Temporary()
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logrus.WithFields(logrus.Fields{
				"backend": name,
				"from":    from.String(),
				"to":      to.String(),
			}).Warn("circuit breaker state changed")
		},
	})
}

func parseBaseURL(apiBase string) (*url.URL, error) {
	trimmed := strings.TrimSpace(apiBase)
	if trimmed == "" {
		trimmed = defaultAPIBase
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api_base %q: %w", apiBase, err)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
