// Package cms is the read-only client for the CMS REST API that owns blog
// posts and kalams. It only lists content snapshots for the dashboards;
// approvals, mutations and permissions stay in the CMS.
package cms

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/kalam-platform/app-analytics/internal/analytics"
	"github.com/kalam-platform/app-analytics/internal/config"
	"github.com/kalam-platform/app-analytics/internal/models"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

const maxBodyBytes = 32 << 20

// Client lists content from the CMS API
type Client struct {
	baseURL    string
	httpClient *http.Client
	paths      config.CMSConfig
	maxRetries int
	baseDelay  time.Duration
}

// source is one list endpoint and the kind of content it returns
type source struct {
	path string
	kind analytics.ContentKind
}

// NewClient builds a CMS client from config
func NewClient(cfg config.CMSConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	retries := cfg.MaxRetries
	if retries < 1 {
		retries = 1
	}

	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		paths:      cfg,
		maxRetries: retries,
		baseDelay:  200 * time.Millisecond,
	}
}

// WithHTTPClient replaces the underlying HTTP client
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.httpClient = hc
	return c
}

// WithBackoff sets the base delay between retries
func (c *Client) WithBackoff(d time.Duration) *Client {
	c.baseDelay = d
	return c
}

// ListContent fetches the content snapshot behind a role's dashboard. The
// caller's bearer token is forwarded as-is.
func (c *Client) ListContent(ctx context.Context, role models.Role, userID, token string) ([]analytics.ContentItem, error) {
	ctx, span := otel.Tracer("cms").Start(ctx, "cms.ListContent", trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()
	span.SetAttributes(
		attribute.String("dashboard.role", string(role)),
		attribute.String("dashboard.user_id", userID),
	)

	sources, err := c.sourcesFor(role, userID)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	items := []analytics.ContentItem{}
	for _, src := range sources {
		body, err := c.get(ctx, src.path, token)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "list failed")
			return nil, err
		}

		decoded, err := DecodeItems(body, src.kind)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "decode failed")
			return nil, fmt.Errorf("%s: %w", src.path, err)
		}
		items = append(items, decoded...)
	}

	span.SetAttributes(attribute.Int("cms.items", len(items)))
	return items, nil
}

// Ping checks that the CMS API answers at all. Any non-5xx status counts as reachable.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/", nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= 500 {
		return statusError("/", resp.StatusCode)
	}
	return nil
}

func (c *Client) sourcesFor(role models.Role, userID string) ([]source, error) {
	if role.RequiresUserID() && strings.TrimSpace(userID) == "" {
		return nil, ErrUserIDRequired
	}

	switch role {
	case models.RoleBlogger:
		return []source{{path: c.paths.BloggerPath, kind: analytics.KindBlog}}, nil
	case models.RoleWriter:
		return []source{{path: withUserID(c.paths.WriterPath, userID), kind: analytics.KindKalam}}, nil
	case models.RoleVocalist:
		return []source{{path: withUserID(c.paths.VocalistPath, userID), kind: analytics.KindKalam}}, nil
	case models.RoleAdmin:
		return []source{
			{path: c.paths.AdminBlogsPath, kind: analytics.KindBlog},
			{path: c.paths.AdminKalamsPath, kind: analytics.KindKalam},
		}, nil
	}
	return nil, models.ErrInvalidRole
}

func withUserID(path, userID string) string {
	return strings.ReplaceAll(path, "{id}", url.PathEscape(strings.TrimSpace(userID)))
}

// get performs a GET with exponential backoff on network errors and 5xx
// responses. 4xx responses fail on the first attempt.
func (c *Client) get(ctx context.Context, path, token string) ([]byte, error) {
	attempt := 0
	operation := func() ([]byte, error) {
		attempt++
		body, retry, err := c.doGet(ctx, path, token)
		if err != nil && !retry {
			return nil, backoff.Permanent(err)
		}
		return body, err
	}

	body, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(c.newBackOff()),
		backoff.WithMaxTries(uint(c.maxRetries)),
		backoff.WithNotify(func(err error, wait time.Duration) {
			log.Printf("[cms] GET %s failed (attempt %d/%d): %v; retrying in %v", path, attempt, c.maxRetries, err, wait)
		}),
	)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("%w: %v", ErrUpstream, ctxErr)
		}
		var permanent *backoff.PermanentError
		if errors.As(err, &permanent) {
			return nil, permanent.Unwrap()
		}
		return nil, err
	}
	return body, nil
}

func (c *Client) newBackOff() *backoff.ExponentialBackOff {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = c.baseDelay
	bo.MaxInterval = 5 * time.Second
	bo.Multiplier = 2
	return bo
}

func (c *Client) doGet(ctx context.Context, path, token string) ([]byte, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, false, err
	}
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, false, fmt.Errorf("%w: %v", ErrUpstream, err)
		}
		return nil, true, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, true, fmt.Errorf("%w: reading body: %v", ErrUpstream, err)
	}

	if resp.StatusCode >= 500 {
		return nil, true, statusError(path, resp.StatusCode)
	}
	if resp.StatusCode >= 400 {
		return nil, false, statusError(path, resp.StatusCode)
	}
	return body, false, nil
}
