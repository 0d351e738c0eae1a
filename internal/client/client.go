package client

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/studiowebux/textlens/internal/analysis"
	"github.com/studiowebux/textlens/internal/types"
)

// API paths, fixed and unversioned
const (
	AnalyzePath = "/api/analyze"
	HistoryPath = "/api/history"
	HealthPath  = "/api/health"
)

// RequestIDHeader carries the per-call correlation id
const RequestIDHeader = "X-Request-ID"

// DefaultTimeout applies when Options.Timeout is zero
const DefaultTimeout = 30 * time.Second

// Options configures a Client
type Options struct {
	BaseURL   string
	Timeout   time.Duration
	UserAgent string
	TLS       *types.TLSConfig
	Logger    *logrus.Logger
}

// Client talks to the text-analysis API
type Client struct {
	http *resty.Client
	log  *logrus.Entry
}

// New builds a Client with optional TLS/mTLS configuration
func New(opts Options) (*Client, error) {
	if opts.BaseURL == "" {
		return nil, fmt.Errorf("API base URL is required")
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	logger := opts.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	rc := resty.New().
		SetBaseURL(strings.TrimRight(opts.BaseURL, "/")).
		SetTimeout(opts.Timeout).
		SetHeader("Accept", "application/json")
	if opts.UserAgent != "" {
		rc.SetHeader("User-Agent", opts.UserAgent)
	}

	if opts.TLS != nil {
		tlsCfg, err := buildTLSConfig(opts.TLS)
		if err != nil {
			return nil, fmt.Errorf("failed to configure TLS: %w", err)
		}
		rc.SetTLSClientConfig(tlsCfg)
	}

	return &Client{
		http: rc,
		log:  logger.WithField("component", "client"),
	}, nil
}

// buildTLSConfig loads the client certificate and CA pool named in cfg
func buildTLSConfig(cfg *types.TLSConfig) (*tls.Config, error) {
	tlsCfg := &tls.Config{
		InsecureSkipVerify: cfg.InsecureSkipVerify,
	}

	if cfg.CertFile != "" && cfg.KeyFile != "" {
		cert, err := tls.LoadX509KeyPair(cfg.CertFile, cfg.KeyFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load client certificate: %w", err)
		}
		tlsCfg.Certificates = []tls.Certificate{cert}
	}

	if cfg.CAFile != "" {
		caCert, err := os.ReadFile(cfg.CAFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read CA certificate: %w", err)
		}
		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(caCert) {
			return nil, fmt.Errorf("failed to parse CA certificate")
		}
		tlsCfg.RootCAs = pool
	}

	return tlsCfg, nil
}

// Analyze submits text for analysis
func (c *Client) Analyze(ctx context.Context, req types.AnalysisRequest) (*types.AnalysisResult, error) {
	var result types.AnalysisResult
	r := c.request(ctx).SetBody(req)
	if err := c.do(r, "analyze", "POST", AnalyzePath, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// QueryHistory fetches past analyses matching filter.
// Only non-empty constraints are sent as query parameters.
func (c *Client) QueryHistory(ctx context.Context, filter types.HistoryFilter) (*types.HistoryPage, error) {
	return c.QueryHistoryPage(ctx, filter, 0)
}

// QueryHistoryPage is QueryHistory with an optional result limit;
// limit <= 0 leaves the server default in place.
func (c *Client) QueryHistoryPage(ctx context.Context, filter types.HistoryFilter, limit int) (*types.HistoryPage, error) {
	var page types.HistoryPage
	r := c.request(ctx).SetQueryParamsFromValues(analysis.QueryValues(filter))
	if limit > 0 {
		r.SetQueryParam("limit", strconv.Itoa(limit))
	}
	if err := c.do(r, "history", "GET", HistoryPath, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Health reports the API's health endpoint status
func (c *Client) Health(ctx context.Context) (*types.HealthStatus, error) {
	var status types.HealthStatus
	if err := c.do(c.request(ctx), "health", "GET", HealthPath, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

func (c *Client) request(ctx context.Context) *resty.Request {
	return c.http.R().
		SetContext(ctx).
		SetHeader(RequestIDHeader, uuid.NewString())
}

// do executes r and decodes a 2xx JSON body into out
func (c *Client) do(r *resty.Request, op, method, path string, out any) error {
	resp, err := r.Execute(method, path)

	entry := c.log.WithFields(logrus.Fields{
		"op":         op,
		"request_id": r.Header.Get(RequestIDHeader),
	})

	if resp != nil && resp.RawResponse != nil {
		entry = entry.WithFields(logrus.Fields{
			"status":   resp.StatusCode(),
			"duration": resp.Time(),
		})
		if !resp.IsSuccess() {
			httpErr := &HTTPError{Status: resp.StatusCode(), Detail: errorDetail(resp.Body())}
			entry.WithError(httpErr).Warn("API request failed")
			return httpErr
		}
	}

	if err != nil {
		entry.WithError(err).Warn("API request could not complete")
		return &NetworkError{Op: op, Err: err}
	}

	if err := json.Unmarshal(resp.Body(), out); err != nil {
		entry.WithError(err).Warn("API response could not be decoded")
		return &NetworkError{Op: op, Err: fmt.Errorf("failed to decode %s response: %w", op, err)}
	}

	entry.Debug("API request completed")
	return nil
}

// errorDetail extracts the message of a FastAPI-style error body.
// detail may be a string or a list of validation issues.
func errorDetail(body []byte) string {
	var payload struct {
		Detail json.RawMessage `json:"detail"`
		Error  string          `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	if len(payload.Detail) > 0 {
		var detail string
		if err := json.Unmarshal(payload.Detail, &detail); err == nil {
			return analysis.CleanLine(detail)
		}
		var issues []struct {
			Msg string `json:"msg"`
		}
		if err := json.Unmarshal(payload.Detail, &issues); err == nil && len(issues) > 0 {
			msgs := make([]string, 0, len(issues))
			for _, issue := range issues {
				msgs = append(msgs, analysis.CleanLine(issue.Msg))
			}
			return strings.Join(msgs, "; ")
		}
	}
	return analysis.CleanLine(payload.Error)
}
