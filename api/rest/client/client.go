// Package client sends watcher requests to a cluster over HTTP.
package client

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/duke-git/lancet/v2/slice"
	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/martinferreira/elasticsearch-net/internal/utils"
	"github.com/martinferreira/elasticsearch-net/pkg/logger"
	"github.com/martinferreira/elasticsearch-net/pkg/watcher"
)

const watchPath = "/_watcher/watch"

// Config holds the configuration for the HTTP client.
type Config struct {
	// BaseURL is the cluster address, e.g. "http://localhost:9200".
	BaseURL string

	Username string
	Password string

	// Timeout applies when the context carries no deadline.
	Timeout time.Duration

	// Insecure skips TLS certificate verification.
	Insecure bool

	// Logger defaults to the package logger.
	Logger *zap.Logger
}

// DefaultConfig returns a default client configuration.
func DefaultConfig() *Config {
	return &Config{
		BaseURL: "http://localhost:9200",
		Timeout: 30 * time.Second,
	}
}

// Client calls the watcher endpoints. It is safe for concurrent use.
type Client struct {
	config *Config
	agent  *fiber.Client
	log    *zap.Logger
}

// NewClient creates a new HTTP client.
func NewClient(config *Config) *Client {
	if config == nil {
		config = DefaultConfig()
	}
	cfg := *config
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultConfig().Timeout
	}

	log := cfg.Logger
	if log == nil {
		log = logger.Named("client")
	}

	return &Client{
		config: &cfg,
		agent:  fiber.AcquireClient(),
		log:    log,
	}
}

// Close returns the underlying client to fiber's pool.
func (c *Client) Close() {
	fiber.ReleaseClient(c.agent)
}

// PutWatch stores the watch, creating or replacing it.
func (c *Client) PutWatch(ctx context.Context, req watcher.PutWatchRequest) (*watcher.PutWatchResponse, error) {
	if err := checkID("put watch", req.ID); err != nil {
		return nil, err
	}
	body, err := req.Body()
	if err != nil {
		return nil, fmt.Errorf("put watch %s: %w", req.ID, err)
	}

	query := fasthttp.AcquireArgs()
	defer fasthttp.ReleaseArgs(query)
	if req.Active != nil {
		query.Set("active", strconv.FormatBool(*req.Active))
	}

	var resp watcher.PutWatchResponse
	if err := c.do(ctx, fiber.MethodPut, watchURL(req.ID), query, body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetWatch fetches a stored watch and its status.
func (c *Client) GetWatch(ctx context.Context, id string) (*watcher.GetWatchResponse, error) {
	if err := checkID("get watch", id); err != nil {
		return nil, err
	}
	var resp watcher.GetWatchResponse
	if err := c.do(ctx, fiber.MethodGet, watchURL(id), nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// DeleteWatch removes a stored watch.
func (c *Client) DeleteWatch(ctx context.Context, id string) (*watcher.DeleteWatchResponse, error) {
	if err := checkID("delete watch", id); err != nil {
		return nil, err
	}
	var resp watcher.DeleteWatchResponse
	if err := c.do(ctx, fiber.MethodDelete, watchURL(id), nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// AckWatch acknowledges the given actions, or all actions when none are named.
func (c *Client) AckWatch(ctx context.Context, id string, actionIDs ...string) (*watcher.AcknowledgeWatchResponse, error) {
	if err := checkID("ack watch", id); err != nil {
		return nil, err
	}
	path := watchURL(id, "_ack")
	if ids := slice.Compact(slice.Unique(actionIDs)); len(ids) > 0 {
		for _, action := range ids {
			if err := checkID("ack watch", action); err != nil {
				return nil, err
			}
		}
		escaped := slice.Map(ids, func(_ int, s string) string { return url.PathEscape(s) })
		path += "/" + strings.Join(escaped, ",")
	}
	var resp watcher.AcknowledgeWatchResponse
	if err := c.do(ctx, fiber.MethodPut, path, nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ActivateWatch activates a stored watch.
func (c *Client) ActivateWatch(ctx context.Context, id string) (*watcher.ActivateWatchResponse, error) {
	if err := checkID("activate watch", id); err != nil {
		return nil, err
	}
	var resp watcher.ActivateWatchResponse
	if err := c.do(ctx, fiber.MethodPut, watchURL(id, "_activate"), nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// DeactivateWatch deactivates a stored watch.
func (c *Client) DeactivateWatch(ctx context.Context, id string) (*watcher.DeactivateWatchResponse, error) {
	if err := checkID("deactivate watch", id); err != nil {
		return nil, err
	}
	var resp watcher.DeactivateWatchResponse
	if err := c.do(ctx, fiber.MethodPut, watchURL(id, "_deactivate"), nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ExecuteWatch runs a stored watch, or the inline watch when req.ID is empty.
func (c *Client) ExecuteWatch(ctx context.Context, req watcher.ExecuteWatchRequest) (*watcher.ExecuteWatchResponse, error) {
	if req.ID == "" && req.Watch == nil {
		return nil, errors.New("execute watch: id or inline watch is required")
	}
	body, err := req.Body()
	if err != nil {
		return nil, fmt.Errorf("execute watch: %w", err)
	}

	path := watchPath + "/_execute"
	if req.ID != "" {
		if err := checkID("execute watch", req.ID); err != nil {
			return nil, err
		}
		path = watchURL(req.ID, "_execute")
	}

	query := fasthttp.AcquireArgs()
	defer fasthttp.ReleaseArgs(query)
	if req.Debug {
		query.Set("debug", "true")
	}

	var resp watcher.ExecuteWatchResponse
	if err := c.do(ctx, fiber.MethodPut, path, query, body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// checkID rejects ids that cannot be sent as a single path segment.
func checkID(op, id string) error {
	switch id {
	case "":
		return fmt.Errorf("%s: id is required", op)
	case ".", "..":
		return fmt.Errorf("%s: invalid id %q", op, id)
	}
	return nil
}

func watchURL(id string, suffix ...string) string {
	parts := append([]string{watchPath, url.PathEscape(id)}, suffix...)
	return strings.Join(parts, "/")
}

// do sends one request and decodes a 2xx body into out.
func (c *Client) do(ctx context.Context, method, path string, query *fasthttp.Args, body []byte, out any) error {
	if err := ctx.Err(); err != nil {
		return &TransportError{Method: method, Path: path, Err: err}
	}

	timeout := c.config.Timeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
		if timeout <= 0 {
			return &TransportError{Method: method, Path: path, Err: context.DeadlineExceeded}
		}
	}

	target := c.config.BaseURL + path
	if query != nil && query.Len() > 0 {
		target += "?" + query.String()
	}

	var agent *fiber.Agent
	switch method {
	case fiber.MethodGet:
		agent = c.agent.Get(target)
	case fiber.MethodPut:
		agent = c.agent.Put(target)
	case fiber.MethodDelete:
		agent = c.agent.Delete(target)
	default:
		agent = c.agent.Post(target)
	}
	// keep escaped ids such as a%2Fb intact on the wire
	if agent.HostClient != nil {
		agent.HostClient.DisablePathNormalizing = true
	}
	agent.Timeout(timeout)
	if c.config.Username != "" {
		agent.BasicAuth(c.config.Username, c.config.Password)
	}
	if c.config.Insecure {
		agent.InsecureSkipVerify()
	}
	if body != nil {
		agent.Body(body)
		agent.Set("Content-Type", "application/json")
	}

	start := time.Now()
	c.log.Debug("watcher request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("body_bytes", len(body)),
	)

	code, respBody, errs := agent.Bytes()
	if len(errs) > 0 {
		err := errs[0]
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = ctxErr
		}
		c.log.Warn("watcher request failed", zap.String("method", method), zap.String("path", path), zap.Error(err))
		return &TransportError{Method: method, Path: path, Err: err}
	}

	c.log.Debug("watcher response",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", code),
		zap.Duration("elapsed", time.Since(start)),
	)

	if code < 200 || code > 299 {
		remote := newRemoteError(method, path, code, respBody)
		c.log.Warn("watcher request rejected",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", code),
			zap.String("reason", remote.Reason()),
		)
		return remote
	}

	if out == nil || len(respBody) == 0 {
		return nil
	}
	if err := utils.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}
