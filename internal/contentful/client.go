package contentful

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/admin-esegames/esegames-site/internal/foundation/errors"
	"github.com/admin-esegames/esegames-site/internal/logfields"
	"github.com/admin-esegames/esegames-site/internal/metrics"
	"github.com/admin-esegames/esegames-site/internal/observability"
)

const (
	// DefaultBaseURL is the public Content Delivery API.
	DefaultBaseURL = "https://cdn.contentful.com"
	DefaultLimit   = 1000
	DefaultInclude = 2

	maxResponseBytes = 64 * 1024 * 1024
)

// Config describes one entries query. Environments are tried in order.
type Config struct {
	SpaceID      string
	AccessToken  string
	Environments []string
	ContentType  string
	DateField    string
	BaseURL      string
	Limit        int
	Include      int
}

// Result is a successful fetch and the environment that served it.
type Result struct {
	Payload     Payload
	Environment string
}

// Client queries the delivery API.
type Client struct {
	cfg      Config
	http     *http.Client
	recorder metrics.Recorder
}

// NewHTTPClient creates an HTTP client that refuses cross-host redirects.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) == 0 {
				return nil
			}
			if req.URL.Host != via[0].URL.Host {
				return stderrors.New("redirect to different host blocked")
			}
			if len(via) >= 5 {
				return stderrors.New("too many redirects")
			}
			return nil
		},
	}
}

// NewClient validates cfg and returns a Client. A nil httpClient gets a
// 30 second timeout; a nil recorder records nothing.
func NewClient(cfg Config, httpClient *http.Client, recorder metrics.Recorder) (*Client, error) {
	var missing []string
	if strings.TrimSpace(cfg.SpaceID) == "" {
		missing = append(missing, "space ID")
	}
	if strings.TrimSpace(cfg.AccessToken) == "" {
		missing = append(missing, "access token")
	}
	if strings.TrimSpace(cfg.ContentType) == "" {
		missing = append(missing, "content type")
	}
	if len(missing) > 0 {
		return nil, errors.ConfigError("content API client is missing " + strings.Join(missing, ", ")).Build()
	}

	cfg.Environments = DedupeEnvironments(cfg.Environments...)
	if len(cfg.Environments) == 0 {
		return nil, errors.ConfigError("no content environment to query").Build()
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Limit <= 0 {
		cfg.Limit = DefaultLimit
	}
	if cfg.Include <= 0 {
		cfg.Include = DefaultInclude
	}
	if _, err := url.Parse(cfg.BaseURL); err != nil {
		return nil, errors.ConfigError("invalid content API base URL").WithCause(err).Build()
	}
	if httpClient == nil {
		httpClient = NewHTTPClient(30 * time.Second)
	}
	if recorder == nil {
		recorder = metrics.NoopRecorder{}
	}
	return &Client{cfg: cfg, http: httpClient, recorder: recorder}, nil
}

// Environments returns the candidate list in the order it is tried.
func (c *Client) Environments() []string {
	return append([]string(nil), c.cfg.Environments...)
}

// Fetch tries each environment in turn. Candidate failures are classified:
// a retryable error moves on to the next environment, anything else (401 or
// 403 from the API) is returned at once. When no candidate answers, the
// not-found error names every attempted environment.
func (c *Client) Fetch(ctx context.Context) (*Result, error) {
	attempted := make([]string, 0, len(c.cfg.Environments))
	for _, env := range c.cfg.Environments {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("fetch content: %w", err)
		}
		attempted = append(attempted, env)

		payload, status, err := c.fetchEnvironment(ctx, env)
		c.recordAttempt(env, status)
		if err == nil {
			observability.InfoContext(ctx, "Fetched content",
				logfields.Environment(env),
				logfields.Count(len(payload.Items)))
			return &Result{Payload: *payload, Environment: env}, nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("fetch content: %w", ctxErr)
		}
		if ce, ok := errors.AsClassified(err); !ok || !ce.CanRetry() {
			return nil, err
		}
		observability.WarnContext(ctx, "Content environment unavailable, trying next",
			logfields.Environment(env),
			logfields.Status(status),
			logfields.Error(err))
	}

	return nil, errors.NotFoundError("no content environment answered: tried "+strings.Join(attempted, ", ")).
		WithContext("environments", strings.Join(attempted, ",")).
		Build()
}

func (c *Client) recordAttempt(env string, status int) {
	label := metrics.FetchStatusError
	if status > 0 {
		label = strconv.Itoa(status)
	}
	c.recorder.IncFetchAttempt(env, label)
}

// entriesURL builds {base}/spaces/{space}/environments/{env}/entries with the
// query parameters for this client.
func (c *Client) entriesURL(env string) (string, error) {
	base, err := url.JoinPath(c.cfg.BaseURL, "spaces", c.cfg.SpaceID, "environments", env, "entries")
	if err != nil {
		return "", fmt.Errorf("build entries URL: %w", err)
	}
	q := url.Values{}
	q.Set("content_type", c.cfg.ContentType)
	if c.cfg.DateField != "" {
		q.Set("order", "-fields."+c.cfg.DateField)
	}
	q.Set("limit", strconv.Itoa(c.cfg.Limit))
	q.Set("include", strconv.Itoa(c.cfg.Include))
	return base + "?" + q.Encode(), nil
}

// fetchEnvironment performs one request. status is zero when no response
// was received. Every error is classified; only auth failures are not retryable.
func (c *Client) fetchEnvironment(ctx context.Context, env string) (*Payload, int, error) {
	target, err := c.entriesURL(env)
	if err != nil {
		return nil, 0, errors.ConfigError("invalid content API URL").WithCause(err).Build()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, http.NoBody)
	if err != nil {
		return nil, 0, errors.ConfigError("invalid content API request").WithCause(err).Build()
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.AccessToken)
	req.Header.Set("Accept", "application/json")

	observability.InfoContext(ctx, "Trying content environment", logfields.Environment(env))
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, errors.NetworkError("content environment unreachable").
			WithCause(err).
			WithContext("environment", env).
			Build()
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	observability.InfoContext(ctx, "Content environment responded",
		logfields.Environment(env),
		logfields.Status(resp.StatusCode))
	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64*1024))
		return nil, resp.StatusCode, errors.AuthError("content API rejected the access token").
			WithContext("environment", env).
			WithContext("status", resp.StatusCode).
			Build()
	case resp.StatusCode != http.StatusOK:
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64*1024))
		return nil, resp.StatusCode, errors.NetworkError(fmt.Sprintf("content environment answered HTTP %d", resp.StatusCode)).
			WithContext("environment", env).
			WithContext("status", resp.StatusCode).
			Build()
	}

	limited := io.LimitReader(resp.Body, maxResponseBytes+1)
	data, err := io.ReadAll(limited)
	if err != nil {
		return nil, resp.StatusCode, errors.NetworkError("failed to read content response").
			WithCause(err).
			WithContext("environment", env).
			Build()
	}
	if len(data) > maxResponseBytes {
		return nil, resp.StatusCode, errors.NetworkError("content response too large").
			WithContext("environment", env).
			WithContext("limit", maxResponseBytes).
			Build()
	}

	var payload Payload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, resp.StatusCode, errors.NetworkError("failed to decode entries").
			WithCause(err).
			WithContext("environment", env).
			Build()
	}
	return &payload, resp.StatusCode, nil
}

// DedupeEnvironments trims names, drops blanks and later duplicates, and
// keeps the first-occurrence order.
func DedupeEnvironments(names ...string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}
