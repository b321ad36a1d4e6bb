package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/benvansteenbergen/console-sub000/internal/config"
	"github.com/benvansteenbergen/console-sub000/internal/pkg/apperror"
	"github.com/benvansteenbergen/console-sub000/internal/pkg/logger"
)

// Client is the single gateway to the workflow-automation backend. Every proxy
// route goes through Do/DoMultipart so status mapping and defensive decoding
// live in one place instead of per-route try/catch.
type Client struct {
	baseURL    string
	webhookURL string
	httpClient *http.Client
	logger     logger.ILogger
}

func NewClient(cfg config.UpstreamConfig, log logger.ILogger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		webhookURL: strings.TrimRight(cfg.WebhookURL, "/"),
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     log,
	}
}

// Rest builds a URL on the backend's REST surface, Webhook on its webhook
// surface. Query may be nil.
func (c *Client) Rest(path string, query url.Values) string {
	return buildURL(c.baseURL, path, query)
}

func (c *Client) Webhook(path string, query url.Values) string {
	return buildURL(c.webhookURL, path, query)
}

func buildURL(base, path string, query url.Values) string {
	u := base + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

// Do issues a JSON request with the session token re-keyed to the upstream's
// Authorization header. A nil out skips body decoding. All failure modes come
// back as typed AppErrors; this method never panics on a bad upstream body.
func (c *Client) Do(ctx context.Context, method, rawURL, token string, body interface{}, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return apperror.Internal(fmt.Errorf("encode upstream request: %w", err))
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, reader)
	if err != nil {
		return apperror.Internal(fmt.Errorf("build upstream request: %w", err))
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.send(req, token, out)
}

// DoMultipart forwards a pre-built multipart body (file uploads).
func (c *Client) DoMultipart(ctx context.Context, rawURL, token, contentType string, body io.Reader, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, rawURL, body)
	if err != nil {
		return apperror.Internal(fmt.Errorf("build upstream request: %w", err))
	}
	req.Header.Set("Content-Type", contentType)
	return c.send(req, token, out)
}

func (c *Client) send(req *http.Request, token string, out interface{}) error {
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("Upstream", "Request failed", map[string]interface{}{
			"url":   req.URL.String(),
			"error": err.Error(),
		})
		return apperror.UpstreamUnavailable(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return apperror.UpstreamUnavailable(fmt.Errorf("read upstream body: %w", err))
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return apperror.Unauthenticated("Session expired")
	case resp.StatusCode == http.StatusNotFound:
		return apperror.NotFound("Not found")
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		c.logger.Warn("Upstream", "Non-success status", map[string]interface{}{
			"url":    req.URL.String(),
			"status": resp.StatusCode,
		})
		return apperror.UpstreamUnavailable(fmt.Errorf("upstream status %d", resp.StatusCode))
	}

	if out == nil {
		return nil
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return apperror.UpstreamMalformed(fmt.Errorf("empty body from %s", req.URL.Path))
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return apperror.UpstreamMalformed(fmt.Errorf("decode body from %s: %w", req.URL.Path, err))
	}
	return nil
}
