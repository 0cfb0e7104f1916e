package webhook

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// DefaultTimeout bounds the single delivery attempt.
const DefaultTimeout = 5 * time.Second

// Payload is the body POSTed to the automation webhook. GeminiResult embeds
// the parsed model object exactly as the model produced it.
type Payload struct {
	CandidateName  string          `json:"candidate_name"`
	Company        string          `json:"company"`
	Role           string          `json:"role"`
	RecruiterEmail string          `json:"recruiter_email"`
	GeminiResult   json.RawMessage `json:"gemini_result"`
}

// DispatchError reports a non-timeout transport failure delivering the
// payload.
type DispatchError struct {
	Err error
}

func (e *DispatchError) Error() string { return fmt.Sprintf("webhook dispatch: %v", e.Err) }

func (e *DispatchError) Unwrap() error { return e.Err }

// Dispatcher delivers match results to the automation webhook.
type Dispatcher struct {
	client *resty.Client
	url    string
	logger *zap.Logger
}

func NewDispatcher(url string, timeout time.Duration, log *zap.Logger) *Dispatcher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if log == nil {
		log = zap.NewNop()
	}

	return &Dispatcher{
		client: resty.New().SetTimeout(timeout),
		url:    url,
		logger: log,
	}
}

// Dispatch makes exactly one POST attempt, fire-and-forget. A client-side
// timeout counts as success: the remote system keeps processing even when
// the response does not arrive in time. Any other transport failure is a
// hard *DispatchError.
func (d *Dispatcher) Dispatch(ctx context.Context, payload *Payload) error {
	resp, err := d.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(payload).
		Post(d.url)
	if err != nil {
		if isTimeout(err) {
			d.logger.Info("webhook accepted the request, processing continues in background")
			return nil
		}
		return &DispatchError{Err: err}
	}

	d.logger.Info("webhook request sent", zap.Int("status", resp.StatusCode()))
	return nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
