package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	logAdapter "github.com/bft-labs/chatship/internal/adapters/log"
	"github.com/bft-labs/chatship/internal/adapters/memory"
	"github.com/bft-labs/chatship/internal/domain"
)

type capturedRequest struct {
	method string
	path   string
	header http.Header
	body   []byte
}

// recordingServer replies with status/body and records every request.
func recordingServer(t *testing.T, status int, body string) (*httptest.Server, func() []capturedRequest) {
	t.Helper()
	var (
		mu   sync.Mutex
		reqs []capturedRequest
	)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, err := io.ReadAll(r.Body)
		if err != nil {
			t.Errorf("read body: %v", err)
		}
		mu.Lock()
		reqs = append(reqs, capturedRequest{
			method: r.Method,
			path:   r.URL.Path,
			header: r.Header.Clone(),
			body:   data,
		})
		mu.Unlock()
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(ts.Close)
	return ts, func() []capturedRequest {
		mu.Lock()
		defer mu.Unlock()
		return append([]capturedRequest(nil), reqs...)
	}
}

func newSender(url string, tokens map[string]string) *MessageSender {
	return NewMessageSender(&http.Client{Timeout: 5 * time.Second}, memory.NewTokenStore(tokens), logAdapter.NewNoopLogger(), url)
}

func TestSendEchoAuthorizationHeader(t *testing.T) {
	tests := []struct {
		name     string
		tokens   map[string]string
		wantAuth string
	}{
		{name: "token present", tokens: map[string]string{"access_token": "abc123"}, wantAuth: "Bearer abc123"},
		{name: "no token", tokens: nil, wantAuth: ""},
		{name: "empty token", tokens: map[string]string{"access_token": ""}, wantAuth: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts, requests := recordingServer(t, http.StatusOK, `{"reply":"hi"}`)
			res := newSender(ts.URL, tt.tokens).SendEcho(context.Background(), "hi")
			if !res.OK() {
				t.Fatalf("unexpected error result: %s", res.Error)
			}

			reqs := requests()
			if len(reqs) != 1 {
				t.Fatalf("got %d requests, want 1", len(reqs))
			}
			got := reqs[0]
			if _, present := got.header["Authorization"]; present != (tt.wantAuth != "") {
				t.Errorf("Authorization present = %v, want %v", present, tt.wantAuth != "")
			}
			if auth := got.header.Get("Authorization"); auth != tt.wantAuth {
				t.Errorf("Authorization = %q, want %q", auth, tt.wantAuth)
			}
			if got.method != http.MethodPost {
				t.Errorf("method = %s, want POST", got.method)
			}
			if got.path != "/api/chat" {
				t.Errorf("path = %s, want /api/chat", got.path)
			}
			if ct := got.header.Get("Content-Type"); ct != "application/json" {
				t.Errorf("Content-Type = %q, want application/json", ct)
			}
		})
	}
}

func TestSendEchoBodyShape(t *testing.T) {
	for _, msg := range []string{"hello", "", `quote " and \ backslash`} {
		ts, requests := recordingServer(t, http.StatusOK, `{}`)
		newSender(ts.URL, nil).SendEcho(context.Background(), msg)

		reqs := requests()
		if len(reqs) != 1 {
			t.Fatalf("got %d requests, want 1", len(reqs))
		}

		var decoded map[string]interface{}
		if err := json.Unmarshal(reqs[0].body, &decoded); err != nil {
			t.Fatalf("decode body %q: %v", reqs[0].body, err)
		}
		if len(decoded) != 1 || decoded["message"] != msg {
			t.Errorf("body = %v, want exactly {message: %q}", decoded, msg)
		}
	}
}

func TestSendEchoSuccessPassThrough(t *testing.T) {
	ts, _ := recordingServer(t, http.StatusOK, "{\"reply\":\"hi\"}\n")
	res := newSender(ts.URL, nil).SendEcho(context.Background(), "hi")

	if !res.OK() {
		t.Fatalf("unexpected error result: %s", res.Error)
	}
	if string(res.Value) != `{"reply":"hi"}` {
		t.Errorf("Value = %s, want {\"reply\":\"hi\"}", res.Value)
	}
	if res.StatusCode != http.StatusOK {
		t.Errorf("StatusCode = %d, want 200", res.StatusCode)
	}
	if res.RequestID == "" {
		t.Error("RequestID not set")
	}
}

func TestSendEchoNonSuccessStatusWithJSON(t *testing.T) {
	ts, _ := recordingServer(t, http.StatusUnauthorized, `{"error":"unauthorized"}`)
	res := newSender(ts.URL, nil).SendEcho(context.Background(), "hi")

	// Any JSON body is a value, regardless of status.
	if !res.OK() {
		t.Fatalf("expected pass-through value, got error %s", res.Error)
	}
	if string(res.Value) != `{"error":"unauthorized"}` {
		t.Errorf("Value = %s", res.Value)
	}
	if res.StatusCode != http.StatusUnauthorized {
		t.Errorf("StatusCode = %d, want 401", res.StatusCode)
	}
}

func TestSendEchoMalformedJSON(t *testing.T) {
	for _, body := range []string{"not json", ""} {
		ts, _ := recordingServer(t, http.StatusOK, body)
		res := newSender(ts.URL, nil).SendEcho(context.Background(), "hi")

		if res.OK() {
			t.Fatalf("body %q: expected error result, got %s", body, res.Value)
		}
		if res.Error == "" {
			t.Errorf("body %q: empty error string", body)
		}
		if res.Kind() != domain.KindParse {
			t.Errorf("body %q: Kind = %q, want parse", body, res.Kind())
		}
	}
}

func TestSendEchoConnectionRefused(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	url := ts.URL
	ts.Close()

	res := newSender(url, map[string]string{"access_token": "abc123"}).SendEcho(context.Background(), "hi")
	if res.OK() {
		t.Fatal("expected error result")
	}
	if res.Error == "" {
		t.Error("empty error string")
	}
	if res.Kind() != domain.KindNetwork {
		t.Errorf("Kind = %q, want network", res.Kind())
	}

	out, err := json.Marshal(res)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var shape map[string]string
	if err := json.Unmarshal(out, &shape); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(shape) != 1 || shape["error"] == "" {
		t.Errorf("error shape = %s", out)
	}
}

type failingClient struct{ err error }

func (c failingClient) Do(*http.Request) (*http.Response, error) { return nil, c.err }

func TestSendEchoTransportError(t *testing.T) {
	s := NewMessageSender(failingClient{err: errors.New("dial failed")}, memory.NewTokenStore(nil), logAdapter.NewNoopLogger(), "http://example.invalid")
	res := s.SendEcho(context.Background(), "hi")

	if res.OK() {
		t.Fatal("expected error result")
	}
	if !strings.Contains(res.Error, "dial failed") {
		t.Errorf("Error = %q, want it to mention dial failed", res.Error)
	}
}

type brokenStore struct{}

func (brokenStore) Get(context.Context, string) (string, bool, error) {
	return "", false, errors.New("disk on fire")
}

func TestSendEchoStorageFailure(t *testing.T) {
	ts, requests := recordingServer(t, http.StatusOK, `{}`)
	s := NewMessageSender(http.DefaultClient, brokenStore{}, logAdapter.NewNoopLogger(), ts.URL)
	res := s.SendEcho(context.Background(), "hi")

	if res.OK() {
		t.Fatal("expected error result")
	}
	if res.Kind() != domain.KindStorage {
		t.Errorf("Kind = %q, want storage", res.Kind())
	}
	if n := len(requests()); n != 0 {
		t.Errorf("made %d requests after storage failure, want 0", n)
	}
}

func TestSendEchoRepeatedCallsAreIndependent(t *testing.T) {
	ts, requests := recordingServer(t, http.StatusOK, `{"ok":true}`)
	tokens := memory.NewTokenStore(map[string]string{"access_token": "abc123"})
	s := NewMessageSender(http.DefaultClient, tokens, logAdapter.NewNoopLogger(), ts.URL)

	first := s.SendEcho(context.Background(), "one")
	second := s.SendEcho(context.Background(), "two")
	if !first.OK() || !second.OK() {
		t.Fatalf("unexpected errors: %q %q", first.Error, second.Error)
	}
	if first.RequestID == second.RequestID {
		t.Error("request IDs should differ between calls")
	}

	reqs := requests()
	if len(reqs) != 2 {
		t.Fatalf("got %d requests, want 2", len(reqs))
	}
	for i, r := range reqs {
		if got := r.header.Get("Authorization"); got != "Bearer abc123" {
			t.Errorf("request %d Authorization = %q", i, got)
		}
	}

	if v, ok, _ := tokens.Get(context.Background(), "access_token"); !ok || v != "abc123" {
		t.Errorf("token store mutated: %q, %v", v, ok)
	}
}

func TestSendEchoCanceledContext(t *testing.T) {
	ts, _ := recordingServer(t, http.StatusOK, `{}`)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := newSender(ts.URL, nil).SendEcho(ctx, "hi")
	if res.OK() {
		t.Fatal("expected error result for canceled context")
	}
	if !errors.Is(res.Err(), context.Canceled) {
		t.Errorf("Err() = %v, want context.Canceled", res.Err())
	}
}

func TestNewMessageSenderTrimsTrailingSlash(t *testing.T) {
	s := newSender("http://localhost:8000/", nil)
	if got := s.url(); got != "http://localhost:8000/api/chat" {
		t.Errorf("url() = %s", got)
	}
}

func TestSendEchoLogsLatency(t *testing.T) {
	ts, _ := recordingServer(t, http.StatusOK, `{}`)

	var buf bytes.Buffer
	logger := logAdapter.NewZerologAdapterWithLogger(zerolog.New(&buf).Level(zerolog.DebugLevel))
	res := NewMessageSender(http.DefaultClient, memory.NewTokenStore(nil), logger, ts.URL).SendEcho(context.Background(), "hi")

	var sendLine map[string]interface{}
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		var entry map[string]interface{}
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			t.Fatalf("decode log line %q: %v", line, err)
		}
		if entry["message"] == "chat send complete" {
			sendLine = entry
		}
	}
	if sendLine == nil {
		t.Fatalf("no send log line in %s", buf.String())
	}
	if _, ok := sendLine["latency"].(float64); !ok {
		t.Errorf("latency = %v, want a number", sendLine["latency"])
	}
	if sendLine["request_id"] != res.RequestID {
		t.Errorf("request_id = %v, want %s", sendLine["request_id"], res.RequestID)
	}
}
