package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/GriffinCanCode/unitconv/backend/internal/infrastructure/resilience"
	"github.com/GriffinCanCode/unitconv/backend/internal/infrastructure/tracing"
	"github.com/GriffinCanCode/unitconv/backend/internal/providers/conversion"
	"github.com/GriffinCanCode/unitconv/backend/internal/types"
	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// APIError is a non-2xx response from the server
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Message)
}

// Options configures a Client
type Options struct {
	Timeout      time.Duration
	MaxRetries   int
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration
	// RateLimit caps outgoing requests per second. Zero means unlimited.
	RateLimit float64
	Logger    *zap.Logger
}

// DefaultOptions returns options suited to an interactive CLI
func DefaultOptions() Options {
	return Options{
		Timeout:      10 * time.Second,
		MaxRetries:   3,
		RetryWaitMin: 200 * time.Millisecond,
		RetryWaitMax: 2 * time.Second,
	}
}

// Client talks to a unitconv HTTP server with retries, client-side rate
// limiting and a circuit breaker.
type Client struct {
	resty   *resty.Client
	limiter *rate.Limiter
	breaker *resilience.Breaker
	baseURL string
}

// New creates a client for the server at baseURL
func New(baseURL string, opts Options) *Client {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	baseURL = strings.TrimRight(baseURL, "/")

	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = opts.MaxRetries
	retryClient.RetryWaitMin = opts.RetryWaitMin
	retryClient.RetryWaitMax = opts.RetryWaitMax
	retryClient.Logger = retryLogger{logger.Sugar()}
	// hand the last response to resty so 5xx bodies become APIErrors
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler

	restyClient := resty.NewWithClient(retryClient.StandardClient()).
		SetBaseURL(baseURL).
		SetTimeout(opts.Timeout).
		SetHeader("User-Agent", "unitconv-client/1.0").
		SetHeader("Accept", "application/json")

	limiter := rate.NewLimiter(rate.Inf, 0)
	if opts.RateLimit > 0 {
		burst := int(opts.RateLimit)
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), burst)
	}

	breaker := resilience.ForRemote("http:"+baseURL, logger, isSuccessful)

	return &Client{
		resty:   restyClient,
		limiter: limiter,
		breaker: breaker,
		baseURL: baseURL,
	}
}

// BaseURL returns the server address
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Breaker exposes the circuit breaker for health reporting
func (c *Client) Breaker() *resilience.Breaker {
	return c.breaker
}

// Convert evaluates one conversion on the server
func (c *Client) Convert(ctx context.Context, conversionID string, value float64) (*types.Result, error) {
	var result types.Result
	err := c.do(ctx, http.MethodGet, "/conversions/{id}", func(r *resty.Request) {
		r.SetPathParam("id", conversionID).
			SetQueryParam("value", strconv.FormatFloat(value, 'g', -1, 64)).
			SetResult(&result)
	})
	if err != nil {
		return nil, fmt.Errorf("convert %s: %w", conversionID, err)
	}
	return &result, nil
}

// ConvertValue evaluates one conversion and returns just the number
func (c *Client) ConvertValue(ctx context.Context, conversionID string, value float64) (float64, error) {
	result, err := c.Convert(ctx, conversionID, value)
	if err != nil {
		return 0, err
	}
	if !result.Success {
		return 0, fmt.Errorf("convert %s: %s", conversionID, result.ErrorMessage())
	}
	out, ok := types.Number(result.Data["result"])
	if !ok {
		return 0, fmt.Errorf("convert %s: malformed result %v", conversionID, result.Data["result"])
	}
	return out, nil
}

// Batch applies one conversion to many values on the server
func (c *Client) Batch(ctx context.Context, conversionID string, values []float64) (*types.Result, error) {
	var result types.Result
	err := c.do(ctx, http.MethodPost, "/conversions/{id}/batch", func(r *resty.Request) {
		r.SetPathParam("id", conversionID).
			SetBody(types.BatchRequest{Values: values}).
			SetResult(&result)
	})
	if err != nil {
		return nil, fmt.Errorf("batch %s: %w", conversionID, err)
	}
	return &result, nil
}

// Execute runs any tool on the server
func (c *Client) Execute(ctx context.Context, toolID string, params map[string]interface{}) (*types.Result, error) {
	var result types.Result
	err := c.do(ctx, http.MethodPost, "/services/execute", func(r *resty.Request) {
		r.SetBody(types.ExecuteRequest{ToolID: toolID, Params: params}).
			SetResult(&result)
	})
	if err != nil {
		return nil, fmt.Errorf("execute %s: %w", toolID, err)
	}
	return &result, nil
}

// ListConversions fetches the server's conversion catalog. The returned
// entries carry metadata only; Apply is not usable on them.
func (c *Client) ListConversions(ctx context.Context) ([]conversion.Conversion, error) {
	var body struct {
		Conversions []conversion.Conversion `json:"conversions"`
	}
	err := c.do(ctx, http.MethodGet, "/conversions", func(r *resty.Request) {
		r.SetResult(&body)
	})
	if err != nil {
		return nil, fmt.Errorf("list conversions: %w", err)
	}
	return body.Conversions, nil
}

// Health fetches /health
func (c *Client) Health(ctx context.Context) (map[string]interface{}, error) {
	var body map[string]interface{}
	err := c.do(ctx, http.MethodGet, "/health", func(r *resty.Request) {
		r.SetResult(&body)
	})
	if err != nil {
		return nil, fmt.Errorf("health: %w", err)
	}
	return body, nil
}

// do sends one request through the limiter and breaker
func (c *Client) do(ctx context.Context, method, path string, build func(*resty.Request)) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	_, err := resilience.Call(c.breaker, func() (*resty.Response, error) {
		var apiErr struct {
			Error string `json:"error"`
		}
		req := c.resty.R().SetContext(ctx).SetError(&apiErr)
		tracing.InjectHeaders(ctx, func(key, value string) {
			req.SetHeader(key, value)
		})
		build(req)

		resp, err := req.Execute(method, path)
		if err != nil {
			return nil, err
		}
		if resp.IsError() {
			msg := apiErr.Error
			if msg == "" {
				msg = strings.TrimSpace(resp.String())
			}
			return resp, &APIError{StatusCode: resp.StatusCode(), Message: msg}
		}
		return resp, nil
	})
	return err
}

// isSuccessful keeps client mistakes (4xx) and cancellation from tripping
// the breaker.
func isSuccessful(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return true
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode < 500
	}
	return false
}

// retryLogger adapts zap to retryablehttp.LeveledLogger
type retryLogger struct {
	s *zap.SugaredLogger
}

func (l retryLogger) Error(msg string, keysAndValues ...interface{}) {
	l.s.Errorw(msg, keysAndValues...)
}

func (l retryLogger) Info(msg string, keysAndValues ...interface{}) {
	l.s.Debugw(msg, keysAndValues...)
}

func (l retryLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.s.Debugw(msg, keysAndValues...)
}

func (l retryLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.s.Warnw(msg, keysAndValues...)
}
