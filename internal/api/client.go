package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/clinicdesk/clinicdesk/internal/observability/metrics"
	"github.com/clinicdesk/clinicdesk/pkg/logging"
)

const (
	defaultBaseURL   = "http://localhost:8081/api"
	defaultTimeout   = 20 * time.Second
	defaultUserAgent = "clinicdesk/0.1"
)

// TokenSource supplies the current bearer token, or "" when no session exists.
type TokenSource interface {
	Token() string
}

// Config controls how the clinic API client behaves.
type Config struct {
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
	Tokens     TokenSource
	Logger     *logging.Logger
	Metrics    *metrics.BookingMetrics
	UserAgent  string
}

// Client wraps the clinic backend REST endpoints. All business rules
// (conflicts, slot generation, payment processing) live server-side; methods
// here only build requests and decode responses.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
	logger     *logging.Logger
	metrics    *metrics.BookingMetrics
	userAgent  string

	Auth            *AuthService
	Appointments    *AppointmentService
	Reservations    *ReservationService
	Payments        *PaymentService
	Doctors         *DoctorService
	Patients        *PatientService
	Specializations *SpecializationService
	Leaves          *LeaveService
}

// New creates a configured Client with sane defaults.
func New(cfg Config) *Client {
	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	baseURL = strings.TrimRight(baseURL, "/")
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	userAgent := strings.TrimSpace(cfg.UserAgent)
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	c := &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		tokens:     cfg.Tokens,
		logger:     logger,
		metrics:    cfg.Metrics,
		userAgent:  userAgent,
	}
	c.Auth = &AuthService{client: c}
	c.Appointments = &AppointmentService{client: c}
	c.Reservations = &ReservationService{client: c}
	c.Payments = &PaymentService{client: c}
	c.Doctors = &DoctorService{client: c}
	c.Patients = &PatientService{client: c}
	c.Specializations = &SpecializationService{client: c}
	c.Leaves = &LeaveService{client: c}
	return c
}

// invoke performs one request against the backend. No retries: conflict
// semantics (409 on a contested slot) make blind replays unsafe, and the
// source system performs none either.
func (c *Client) invoke(ctx context.Context, resource, method, path string, query url.Values, body []byte, contentType string, out any) error {
	fullURL := c.buildURL(path, query)
	var bodyReader io.Reader
	if body != nil {
		bodyReader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, fullURL, bodyReader)
	if err != nil {
		return fmt.Errorf("api: build request: %w", err)
	}
	if token := c.token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-Id", uuid.NewString())
	if body != nil {
		ct := contentType
		if ct == "" {
			ct = "application/json"
		}
		req.Header.Set("Content-Type", ct)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.ObserveRequest(resource, method, "transport_error", time.Since(start).Seconds())
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("api: http request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("api: read response: %w", err)
	}
	c.metrics.ObserveRequest(resource, method, statusClass(resp.StatusCode), time.Since(start).Seconds())

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := decodeError(resp.StatusCode, data)
		c.logger.Debug("api request failed",
			"resource", resource,
			"method", method,
			"path", path,
			"status", resp.StatusCode,
		)
		return apiErr
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("api: unmarshal response: %w", err)
		}
	}
	return nil
}

func (c *Client) invokeJSON(ctx context.Context, resource, method, path string, payload, out any) error {
	var body []byte
	if payload != nil {
		var err error
		body, err = json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("api: marshal request: %w", err)
		}
	}
	return c.invoke(ctx, resource, method, path, nil, body, "application/json", out)
}

func (c *Client) token() string {
	if c.tokens == nil {
		return ""
	}
	return c.tokens.Token()
}

func (c *Client) buildURL(path string, query url.Values) string {
	trimmedPath := "/" + strings.TrimLeft(path, "/")
	full := c.baseURL + trimmedPath
	if len(query) > 0 {
		full = full + "?" + query.Encode()
	}
	return full
}

func statusClass(status int) string {
	switch {
	case status >= 200 && status < 300:
		return "2xx"
	case status >= 300 && status < 400:
		return "3xx"
	case status >= 400 && status < 500:
		return "4xx"
	default:
		return "5xx"
	}
}
