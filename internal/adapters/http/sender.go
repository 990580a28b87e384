package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/bft-labs/chatship/internal/domain"
	"github.com/bft-labs/chatship/internal/ports"
)

const chatEndpoint = "/api/chat"

// MessageSender implements ports.MessageSender using HTTP.
type MessageSender struct {
	client     ports.HTTPClient
	tokens     ports.TokenStore
	logger     ports.Logger
	serviceURL string
}

// NewMessageSender creates a sender posting to serviceURL + /api/chat.
// serviceURL may be empty, in which case the request path is relative.
func NewMessageSender(client ports.HTTPClient, tokens ports.TokenStore, logger ports.Logger, serviceURL string) *MessageSender {
	s := &MessageSender{
		client:     client,
		tokens:     tokens,
		logger:     logger,
		serviceURL: strings.TrimSuffix(serviceURL, "/"),
	}
	logger.Info("message sender ready", ports.String("endpoint", s.url()))
	return s
}

// SendEcho posts message to the chat endpoint and returns the decoded reply.
// Every failure is returned as an error Result.
func (s *MessageSender) SendEcho(ctx context.Context, message string) domain.Result {
	requestID := uuid.NewString()
	start := time.Now()
	res := s.send(ctx, message, requestID)
	latency := time.Since(start)
	res.RequestID = requestID

	if !res.OK() {
		s.logger.Warn("chat send failed",
			ports.String("request_id", requestID),
			ports.String("kind", string(res.Kind())),
			ports.String("error", res.Error),
			ports.Duration("latency", latency),
		)
		return res
	}

	s.logger.Debug("chat send complete",
		ports.String("request_id", requestID),
		ports.Int("status", res.StatusCode),
		ports.Int("bytes", len(res.Value)),
		ports.Duration("latency", latency),
	)
	return res
}

func (s *MessageSender) send(ctx context.Context, message, requestID string) domain.Result {
	token, hasToken, err := s.tokens.Get(ctx, domain.TokenKey)
	if err != nil {
		return domain.Failed(domain.NewSendError(domain.KindStorage, fmt.Errorf("read token: %w", err)), 0)
	}

	body, err := json.Marshal(domain.NewMessage(message))
	if err != nil {
		return domain.Failed(domain.NewSendError(domain.KindNetwork, fmt.Errorf("marshal message: %w", err)), 0)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url(), bytes.NewReader(body))
	if err != nil {
		return domain.Failed(domain.NewSendError(domain.KindNetwork, fmt.Errorf("create request: %w", err)), 0)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-Id", requestID)
	if hasToken && token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return domain.Failed(domain.NewSendError(domain.KindNetwork, fmt.Errorf("send request: %w", err)), 0)
	}
	defer resp.Body.Close()

	// Status is not checked: any JSON body is a value, 4xx/5xx included.
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.Failed(domain.NewSendError(domain.KindParse, fmt.Errorf("read response: %w", err)), resp.StatusCode)
	}

	var value json.RawMessage
	if err := json.Unmarshal(respBody, &value); err != nil {
		return domain.Failed(domain.NewSendError(domain.KindParse, fmt.Errorf("decode response: %w", err)), resp.StatusCode)
	}

	return domain.Succeeded(value, resp.StatusCode)
}

func (s *MessageSender) url() string {
	return s.serviceURL + chatEndpoint
}
