package syncer

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"

	"github.com/dannyswat/fsstore/store"
)

// RemoteError is returned for a non-2xx response other than 404.
type RemoteError struct {
	Method     string
	URL        string
	StatusCode int
	Body       string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.URL, e.StatusCode, e.Body)
}

// RemoteConfig configures a RemoteSyncer.
type RemoteConfig struct {
	BaseURL string
	Timeout time.Duration
	// RequestsPerSecond limits outgoing requests; 0 disables the limit.
	RequestsPerSecond float64
	Headers           map[string]string
	Logger            *slog.Logger
}

// RemoteSyncer persists targets through a REST endpoint:
//
//	read   GET    {base}/{namespace}[/{id}]
//	create POST   {base}/{namespace}
//	update PUT    {base}/{namespace}/{id}
//	delete DELETE {base}/{namespace}/{id}
//
// Requests are not retried.
type RemoteSyncer struct {
	client  *resty.Client
	limiter *rate.Limiter
	logger  *slog.Logger
}

func NewRemoteSyncer(cfg RemoteConfig) *RemoteSyncer {
	client := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", "fsstore/1.0")
	if cfg.Timeout > 0 {
		client.SetTimeout(cfg.Timeout)
	}
	client.SetHeaders(cfg.Headers)

	limiter := rate.NewLimiter(rate.Inf, 0)
	if cfg.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), max(1, int(cfg.RequestsPerSecond)))
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &RemoteSyncer{client: client, limiter: limiter, logger: logger}
}

func (r *RemoteSyncer) Sync(method Method, target Target) (*store.Future[any], error) {
	skip, err := precheck(method, target)
	if err != nil {
		return nil, err
	}
	if skip {
		return store.Resolved[any](nil), nil
	}
	ns := target.ResolveNamespace()
	id := target.Record.ID()
	path := "/" + url.PathEscape(ns)
	if id != "" && method != MethodCreate {
		path += "/" + url.PathEscape(id)
	}
	switch method {
	case MethodRead:
		if id == "" {
			return store.Go(func() (any, error) {
				var recs []store.Record
				err := r.do(http.MethodGet, path, nil, &recs, ns, id)
				return recs, err
			}), nil
		}
		return r.single(http.MethodGet, path, nil, ns, id), nil
	case MethodCreate:
		return r.single(http.MethodPost, path, target.Record, ns, id), nil
	case MethodUpdate:
		return r.single(http.MethodPut, path, target.Record, ns, id), nil
	default:
		return store.Go(func() (any, error) {
			return nil, r.do(http.MethodDelete, path, nil, nil, ns, id)
		}), nil
	}
}

func (r *RemoteSyncer) single(method, path string, body store.Record, ns, id string) *store.Future[any] {
	return store.Go(func() (any, error) {
		var rec store.Record
		if err := r.do(method, path, body, &rec, ns, id); err != nil {
			return nil, err
		}
		// Servers may answer writes with an empty body.
		if rec == nil {
			rec = body
		}
		return rec, nil
	})
}

func (r *RemoteSyncer) do(method, path string, body store.Record, result any, ns, id string) error {
	if err := r.limiter.Wait(context.Background()); err != nil {
		return fmt.Errorf("rate limit error: %w", err)
	}
	req := r.client.R()
	if body != nil {
		req.SetBody(body).SetHeader("Content-Type", "application/json")
	}
	if result != nil {
		req.SetResult(result)
	}
	resp, err := req.Execute(method, path)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	r.logger.Debug("remote sync", "method", method, "path", path, "status", resp.StatusCode(), "duration", resp.Time())
	switch {
	case resp.StatusCode() == http.StatusNotFound:
		return &store.NotFoundError{Namespace: ns, ID: id}
	case resp.IsError():
		return &RemoteError{
			Method:     method,
			URL:        resp.Request.URL,
			StatusCode: resp.StatusCode(),
			Body:       strings.TrimSpace(resp.String()),
		}
	}
	return nil
}
