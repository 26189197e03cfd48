package account

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"
	"github.com/sethvargo/go-retry"

	"github.com/ashaconnect/payout-system/internal/core/domain"
)

const (
	defaultTimeout   = 10 * time.Second
	retryBase        = 200 * time.Millisecond
	maxStatusRetries = 3
)

// SubmitInput is the payment request payload sent to POST /api/request.
type SubmitInput struct {
	Username string `json:"username"`
	Count    int    `json:"count"`
	Credits  int    `json:"credits"`
	Payment  int    `json:"payment"`
}

// APIError is a non-2xx response from the payout server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Message)
}

// PaymentAPI is the server surface the account controller depends on.
type PaymentAPI interface {
	SubmitRequest(ctx context.Context, input SubmitInput) error
	Status(ctx context.Context, username string) (domain.PaymentStatus, error)
	Reset(ctx context.Context, username string) error
}

// Client talks to the payout server over HTTP. Every call carries an explicit
// timeout; the idempotent status poll additionally retries transient failures
// with fibonacci backoff.
type Client struct {
	baseURL string
	http    *http.Client
	log     zerolog.Logger
}

func NewClient(baseURL string, timeout time.Duration, log zerolog.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

// Login authenticates against the server and returns the bearer token and
// canonical username.
func (c *Client) Login(ctx context.Context, email, password string) (token, username string, err error) {
	body := map[string]string{"email": email, "password": password}

	var resp struct {
		Token    string `json:"token"`
		Username string `json:"username"`
	}
	if err := c.post(ctx, "/api/auth/login", body, &resp); err != nil {
		return "", "", err
	}
	return resp.Token, resp.Username, nil
}

// SubmitRequest submits a payment request. Not retried: a replay after an
// ambiguous failure could double-submit.
func (c *Client) SubmitRequest(ctx context.Context, input SubmitInput) error {
	return c.post(ctx, "/api/request", input, nil)
}

// Status polls the merged status endpoint. Safe to retry: it is a pure read.
func (c *Client) Status(ctx context.Context, username string) (domain.PaymentStatus, error) {
	backoff := retry.WithMaxRetries(maxStatusRetries, retry.NewFibonacci(retryBase))
	query := url.Values{"username": {username}}

	var status domain.PaymentStatus
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		var resp struct {
			Status domain.PaymentStatus `json:"status"`
		}
		if err := c.get(ctx, "/api/payment/status?"+query.Encode(), &resp); err != nil {
			var apiErr *APIError
			// Server-rejected requests will not pass on a retry; only
			// transport failures and 5xx responses are transient.
			if errors.As(err, &apiErr) && apiErr.StatusCode < http.StatusInternalServerError {
				return err
			}
			c.log.Debug().Err(err).Msg("status poll failed, retrying")
			return retry.RetryableError(err)
		}
		status = resp.Status
		return nil
	})
	return status, err
}

// Reset clears the worker's approved payment request on the server.
func (c *Client) Reset(ctx context.Context, username string) error {
	return c.post(ctx, "/api/payment/reset", map[string]string{"username": username}, nil)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, out)
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var envelope struct {
			Message string `json:"message"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&envelope)
		if envelope.Message == "" {
			envelope.Message = http.StatusText(resp.StatusCode)
		}
		return &APIError{StatusCode: resp.StatusCode, Message: envelope.Message}
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
