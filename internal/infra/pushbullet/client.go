package pushbullet

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/KasumiMercury/wake-walk-alert/internal/domain"
	"github.com/KasumiMercury/wake-walk-alert/internal/observability/tracing"
)

const pushesPath = "/v2/pushes"

var (
	ErrMissingToken = errors.New("pushbullet access token is not configured")
	ErrPushRejected = errors.New("pushbullet rejected the push")
)

type Config struct {
	Token   string
	BaseURL string
	Timeout time.Duration
}

type pushRequest struct {
	Type  string `json:"type"`
	Title string `json:"title"`
	Body  string `json:"body"`
}

type pushResponse struct {
	Iden    string  `json:"iden"`
	Created float64 `json:"created"`
}

type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// Client sends note pushes to every device of the token owner.
type Client struct {
	http  *resty.Client
	token string
}

var _ domain.Notifier = (*Client)(nil)

func NewClient(cfg Config) *Client {
	httpClient := &http.Client{
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}

	client := resty.NewWithClient(httpClient).
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetRetryCount(0).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetHeader("Access-Token", cfg.Token)

	return &Client{
		http:  client,
		token: cfg.Token,
	}
}

func (c *Client) Notify(ctx context.Context, title, body string) error {
	if c.token == "" {
		return ErrMissingToken
	}

	ctx, span := tracing.StartExternalAPISpan(ctx, "pushbullet.push", c.http.BaseURL+pushesPath)
	defer span.End()

	var (
		result  pushResponse
		failure errorResponse
	)
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(pushRequest{Type: "note", Title: title, Body: body}).
		SetResult(&result).
		SetError(&failure).
		Post(pushesPath)
	if err != nil {
		tracing.RecordError(span, err)
		return fmt.Errorf("failed to send push: %w", err)
	}

	if resp.IsError() {
		err := fmt.Errorf("%w: status %d: %s", ErrPushRejected, resp.StatusCode(), failure.Error.Message)
		tracing.RecordError(span, err)
		slog.WarnContext(ctx, "pushbullet returned error",
			slog.Int("status", resp.StatusCode()),
			slog.String("code", failure.Error.Code),
			slog.String("message", failure.Error.Message),
		)
		return err
	}

	tracing.RecordError(span, nil)
	slog.DebugContext(ctx, "push sent",
		slog.String("iden", result.Iden),
	)

	return nil
}
