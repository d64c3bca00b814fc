package billbook

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/suryaprakash-sp/mybillbook-scrape/lib/restyutil"
	"github.com/suryaprakash-sp/mybillbook-scrape/lib/telemetry"

	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"
)

const DefaultBaseUrl = "https://mybillbook.in/api/web"

const (
	defaultTimeout       = time.Second * 30
	defaultRetryCount    = 3
	defaultRetryBaseWait = time.Second * 2
	defaultRetryMaxWait  = time.Second * 30
	defaultMinInterval   = time.Millisecond * 500
	defaultPageSize      = 500
)

type ClientOptions struct {
	Session Session
	// defaults to DefaultBaseUrl
	BaseUrl string
	// minimum delay between consecutive requests, applied whether they
	// succeed or fail. defaults to 500ms.
	MinRequestInterval time.Duration
	RetryCount         int
	RetryBaseWait      time.Duration
	RetryMaxWait       time.Duration
	Timeout            time.Duration
	PageSize           int
}

// Client issues authenticated GET requests against the vendor's
// internal web API, owning the retry/backoff policy and the
// inter-request pacing shared by every call.
type Client struct {
	http     *resty.Client
	limiter  *rate.Limiter
	pageSize int
}

func NewClient(opts ClientOptions) (*Client, error) {
	if opts.BaseUrl == "" {
		opts.BaseUrl = DefaultBaseUrl
	}
	if opts.MinRequestInterval <= 0 {
		opts.MinRequestInterval = defaultMinInterval
	}
	if opts.RetryCount <= 0 {
		opts.RetryCount = defaultRetryCount
	}
	if opts.RetryBaseWait <= 0 {
		opts.RetryBaseWait = defaultRetryBaseWait
	}
	if opts.RetryMaxWait <= 0 {
		opts.RetryMaxWait = defaultRetryMaxWait
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.PageSize <= 0 {
		opts.PageSize = defaultPageSize
	}

	client := resty.New()
	client.SetBaseURL(opts.BaseUrl)
	client.SetHeaders(opts.Session.Headers())
	client.SetTimeout(opts.Timeout)

	client.SetRetryCount(opts.RetryCount)
	client.SetRetryWaitTime(opts.RetryBaseWait)
	client.SetRetryMaxWaitTime(opts.RetryMaxWait)
	client.AddRetryCondition(func(res *resty.Response, err error) bool {
		if err != nil {
			return true
		}
		code := res.StatusCode()
		return code == http.StatusTooManyRequests || code >= 500
	})

	baseWait := opts.RetryBaseWait
	maxWait := opts.RetryMaxWait
	client.SetRetryAfter(func(_ *resty.Client, res *resty.Response) (time.Duration, error) {
		if res != nil {
			if v := res.Header().Get("Retry-After"); v != "" {
				if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
					return time.Duration(secs) * time.Second, nil
				}
			}
		}
		attempt := 1
		if res != nil && res.Request != nil {
			attempt = res.Request.Attempt
		}
		wait := baseWait * (1 << (attempt - 1))
		if wait > maxWait {
			wait = maxWait
		}
		return wait, nil
	})

	if restyInstrumentOutput != nil {
		restyutil.InstrumentClient(client, tracer, restyInstrumentOutput)
	} else {
		telemetry.InstrumentResty(client, "scrapers/billbook/http")
	}

	return &Client{
		http:     client,
		limiter:  rate.NewLimiter(rate.Every(opts.MinRequestInterval), 1),
		pageSize: opts.PageSize,
	}, nil
}

const snippetLimit = 256

func bodySnippet(body []byte) string {
	if len(body) > snippetLimit {
		body = body[:snippetLimit]
	}
	return string(body)
}

// single funnel for every request the client makes. resty handles the
// bounded retry with backoff; 401/403 are mapped to
// AuthenticationError before retries can fire via the retry condition.
func (c *Client) get(ctx context.Context, path string, query map[string]string, out any) error {
	err := c.limiter.Wait(ctx)
	if err != nil {
		return err
	}

	res, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(query).
		Get(path)
	if err != nil {
		return &TransientFetchError{Endpoint: path, Err: err}
	}

	code := res.StatusCode()
	if code == http.StatusUnauthorized || code == http.StatusForbidden {
		return &AuthenticationError{StatusCode: code, Endpoint: path}
	}
	if !res.IsSuccess() {
		return &TransientFetchError{
			StatusCode: code,
			Endpoint:   path,
			Snippet:    bodySnippet(res.Body()),
		}
	}

	err = json.Unmarshal(res.Body(), out)
	if err != nil {
		return &TransientFetchError{
			StatusCode: code,
			Endpoint:   path,
			Snippet:    bodySnippet(res.Body()),
			Err:        err,
		}
	}
	return nil
}

// Probe makes one cheap authenticated request so the operator finds
// out about stale credentials before a long scrape, not during one.
func (c *Client) Probe(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "Probe")
	defer span.End()

	var res listItemsResponse
	return c.get(ctx, "/items", map[string]string{
		"page":     "1",
		"per_page": "1",
	}, &res)
}
