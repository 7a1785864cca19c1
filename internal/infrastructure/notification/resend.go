package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/resend/resend-go/v2"
	"go.uber.org/zap"

	"motes-generator.backend/internal/config"
	domainerrors "motes-generator.backend/internal/domain/errors"
	"motes-generator.backend/pkg/logger"
)

// DefaultBaseURL is the Resend API root
const DefaultBaseURL = "https://api.resend.com/"

// Email is one outbound message
type Email struct {
	To      []string
	Subject string
	HTML    string
}

// SendResult is the provider reply. Body holds the decoded JSON reply, or
// {"raw": text} when the reply is not JSON.
type SendResult struct {
	Status int
	Body   interface{}
}

// ResendClient sends transactional email through the Resend SDK
type ResendClient struct {
	apiKey     string
	from       string
	baseURL    string
	httpClient *http.Client
}

// NewResendClient creates a client. Missing credentials are reported by Send.
func NewResendClient(cfg config.MailConfig, httpClient *http.Client) *ResendClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	baseURL := cfg.ResendAPIURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &ResendClient{
		apiKey:     cfg.ResendAPIKey,
		from:       cfg.ResendFrom,
		baseURL:    baseURL,
		httpClient: httpClient,
	}
}

// CheckConfig reports the first missing credential
func (c *ResendClient) CheckConfig() error {
	if c.apiKey == "" {
		return domainerrors.Configuration("RESEND_API_KEY")
	}
	if c.from == "" {
		return domainerrors.Configuration("RESEND_FROM")
	}
	return nil
}

// Send posts email to the provider. A non-2xx reply returns both the result
// and an upstream AppError.
func (c *ResendClient) Send(ctx context.Context, email Email) (*SendResult, error) {
	if err := c.CheckConfig(); err != nil {
		return nil, err
	}

	client, capture, err := c.newSDKClient()
	if err != nil {
		return nil, err
	}

	_, sendErr := client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    c.from,
		To:      email.To,
		Subject: email.Subject,
		Html:    email.HTML,
	})

	status, raw := capture.reply()
	if status == 0 {
		if sendErr == nil {
			sendErr = fmt.Errorf("no reply")
		}
		return nil, domainerrors.NewAppError(http.StatusBadGateway, "UPSTREAM_ERROR", "email provider unreachable",
			fmt.Errorf("%w: %v", domainerrors.ErrUpstream, sendErr))
	}

	result := &SendResult{Status: status, Body: decodeBody(raw)}
	if status < 200 || status > 299 {
		logger.Warn(ctx, "Email provider rejected message",
			zap.Int("status", status),
			zap.ByteString("body", raw),
		)
		return result, domainerrors.Upstream(fmt.Sprintf("Resend error: %s", string(raw)), status)
	}
	if sendErr != nil {
		logger.Warn(ctx, "Email provider reply not understood", zap.Error(sendErr))
	}
	return result, nil
}

// newSDKClient builds a per-send SDK client whose transport records the
// provider reply.
func (c *ResendClient) newSDKClient() (*resend.Client, *replyCapture, error) {
	base, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid RESEND_API_URL: %w", err)
	}

	capture := &replyCapture{next: c.httpClient.Transport}
	if capture.next == nil {
		capture.next = http.DefaultTransport
	}
	hc := *c.httpClient
	hc.Transport = capture

	client := resend.NewCustomClient(&hc, c.apiKey)
	client.BaseURL = base
	return client, capture, nil
}

// replyCapture keeps the status and body of the last response so callers
// can report provider errors verbatim.
type replyCapture struct {
	next http.RoundTripper

	mu     sync.Mutex
	status int
	body   []byte
}

func (r *replyCapture) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := r.next.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	_ = resp.Body.Close()
	if err != nil {
		return nil, fmt.Errorf("failed to read email provider response: %w", err)
	}
	resp.Body = io.NopCloser(bytes.NewReader(raw))

	r.mu.Lock()
	r.status = resp.StatusCode
	r.body = raw
	r.mu.Unlock()
	return resp, nil
}

func (r *replyCapture) reply() (int, []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.status, r.body
}

func decodeBody(raw []byte) interface{} {
	var parsed interface{}
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return map[string]string{"raw": string(raw)}
	}
	return parsed
}
