// Package echoserver is a development backend for the chat endpoint.
// POST /api/chat echoes the message back.
package echoserver

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

const maxBodyBytes = 64 * 1024

// Options configures the echo backend.
type Options struct {
	// RequiredToken, when set, rejects requests without a matching bearer token.
	RequiredToken string
}

type chatRequest struct {
	Message *string `json:"message"`
}

type chatReply struct {
	Reply         string `json:"reply"`
	Authenticated bool   `json:"authenticated"`
	RequestID     string `json:"request_id"`
}

// NewRouter creates the echo backend router.
func NewRouter(logger zerolog.Logger, opts Options) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(requestLogger(logger))
	r.Use(chimw.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Post("/api/chat", func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if opts.RequiredToken != "" && token != opts.RequiredToken {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		var req chatRequest
		dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if req.Message == nil {
			writeError(w, http.StatusBadRequest, "message is required")
			return
		}

		writeJSON(w, http.StatusOK, chatReply{
			Reply:         *req.Message,
			Authenticated: token != "",
			RequestID:     chimw.GetReqID(r.Context()),
		})
	})

	return r
}

func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(auth, "Bearer ")
	if !ok {
		return ""
	}
	return strings.TrimSpace(token)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func requestLogger(logger zerolog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

			defer func() {
				logger.Info().
					Str("method", r.Method).
					Str("path", r.URL.Path).
					Int("status", ww.Status()).
					Dur("latency", time.Since(start)).
					Str("request_id", chimw.GetReqID(r.Context())).
					Msg("request completed")
			}()

			next.ServeHTTP(ww, r)
		})
	}
}
