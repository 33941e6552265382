// Package backend is the REST client for the HealthyAura API. Every failure it
// returns is a *domain.Error classified by status and body text.
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
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"

	"github.com/eggrusher04/HealthyAuraProject/internal/core/domain"
)

const (
	defaultTimeout = 10 * time.Second
	maxErrorBody   = 64 << 10
)

var requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Namespace: "healthyaura",
	Name:      "backend_request_duration_seconds",
	Help:      "Latency of requests to the HealthyAura API.",
	Buckets:   prometheus.DefBuckets,
}, []string{"operation", "outcome"})

// Config captures the settings for the API client.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client talks to the HealthyAura API. It is safe for concurrent use.
type Client struct {
	http    *http.Client
	baseURL string
	log     zerolog.Logger

	mu     sync.RWMutex
	bearer string
}

// New returns a Client. A zero timeout uses ten seconds.
func New(cfg Config, log zerolog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		http:    &http.Client{Timeout: timeout},
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		log:     log.With().Str("component", "backend").Logger(),
	}
}

// SetBearer installs the default Authorization token.
func (c *Client) SetBearer(token string) {
	c.mu.Lock()
	c.bearer = token
	c.mu.Unlock()
}

// ClearBearer drops the default Authorization token.
func (c *Client) ClearBearer() {
	c.SetBearer("")
}

func (c *Client) token(explicit string) string {
	if explicit != "" {
		return explicit
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.bearer
}

// Ping reports whether the API answers at all. Any HTTP status counts as
// reachable.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/", http.NoBody)
	if err != nil {
		return fmt.Errorf("backend ping: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("backend ping: %w", err)
	}
	_ = resp.Body.Close()
	return nil
}

// call describes one request.
type call struct {
	op     string
	method string
	path   string
	query  url.Values
	token  string
	body   any
	// login failures are credential failures, not authorization failures.
	login bool
}

// do sends the request and decodes a 2xx body into out when out is non-nil.
func (c *Client) do(ctx context.Context, cl call, out any) (err error) {
	start := time.Now()
	defer func() {
		outcome := "ok"
		if err != nil {
			outcome = outcomeLabel(err)
		}
		requestDuration.WithLabelValues(cl.op, outcome).Observe(time.Since(start).Seconds())
	}()

	target := c.baseURL + cl.path
	if len(cl.query) > 0 {
		target += "?" + cl.query.Encode()
	}

	var body io.Reader = http.NoBody
	if cl.body != nil {
		raw, err := json.Marshal(cl.body)
		if err != nil {
			return domain.NewError(domain.ErrRequestFailed, "", fmt.Errorf("%s: encode body: %w", cl.op, err))
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, cl.method, target, body)
	if err != nil {
		return domain.NewError(domain.ErrRequestFailed, "", fmt.Errorf("%s: build request: %w", cl.op, err))
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if cl.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tok := c.token(cl.token); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug().Err(err).Str("op", cl.op).Msg("request failed")
		return domain.NewError(domain.ErrNetwork, "", fmt.Errorf("%s: %w", cl.op, err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		c.log.Debug().Str("op", cl.op).Int("status", resp.StatusCode).Msg("request rejected")
		return classify(cl, resp.StatusCode, raw)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return domain.NewError(domain.ErrInvalidServerResponse, "", fmt.Errorf("%s: decode: %w", cl.op, err))
	}
	return nil
}

// errorBody covers both error envelopes the API uses.
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (b errorBody) text() string {
	if b.Error != "" {
		return b.Error
	}
	return b.Message
}

// classify maps a rejected response to a domain error.
func classify(cl call, status int, raw []byte) error {
	var eb errorBody
	_ = json.Unmarshal(raw, &eb)
	msg := strings.TrimSpace(eb.text())
	cause := fmt.Errorf("%s: status %d", cl.op, status)

	if cl.login && status >= 400 && status < 500 {
		return domain.NewError(domain.ErrInvalidCredentials, msg, cause)
	}

	lower := strings.ToLower(msg)
	switch {
	case strings.Contains(lower, "must wait"):
		return domain.NewError(domain.ErrReviewCooldownActive, msg, cause)
	case strings.Contains(lower, "daily review limit"):
		return domain.NewError(domain.ErrReviewDailyLimit, msg, cause)
	case strings.Contains(lower, "not enough points"):
		return domain.NewError(domain.ErrInsufficientPoints, msg, cause)
	}

	switch status {
	case http.StatusUnauthorized:
		return domain.NewError(domain.ErrUnauthorized, "", cause)
	case http.StatusForbidden:
		return domain.NewError(domain.ErrForbidden, "", cause)
	case http.StatusNotFound:
		return domain.NewError(domain.ErrNotFound, msg, cause)
	}
	if status >= 500 {
		// Server-side texts are generic; keep the local wording.
		msg = ""
	}
	return domain.NewError(domain.ErrRequestFailed, msg, cause)
}

func outcomeLabel(err error) string {
	var de *domain.Error
	if errors.As(err, &de) {
		return strings.ReplaceAll(de.Reason.Error(), " ", "_")
	}
	return "error"
}

func idPath(id string) string {
	return url.PathEscape(strings.TrimSpace(id))
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
