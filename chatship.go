// Package chatship is a client for a chat backend's /api/chat endpoint.
//
// Example usage:
//
//	cfg := chatship.DefaultConfig()
//	cfg.ServiceURL = "https://chat.example.com"
//	if err := cfg.Validate(); err != nil {
//	    log.Fatal(err)
//	}
//	tokens, closeStore, err := chatship.OpenTokenStore(ctx, cfg, logger, false)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer closeStore()
//	sender := chatship.NewSender(cfg, tokens, logger)
//	res := sender.SendEcho(ctx, "hello")
//	if !res.OK() {
//	    log.Println(res.Error)
//	}
package chatship

import (
	"context"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/bft-labs/chatship/internal/adapters/fs"
	httpAdapter "github.com/bft-labs/chatship/internal/adapters/http"
	logAdapter "github.com/bft-labs/chatship/internal/adapters/log"
	"github.com/bft-labs/chatship/internal/adapters/memory"
	redisAdapter "github.com/bft-labs/chatship/internal/adapters/redis"
	"github.com/bft-labs/chatship/internal/cliconfig"
	"github.com/bft-labs/chatship/internal/domain"
	"github.com/bft-labs/chatship/internal/ports"
)

// Config holds client configuration. Use DefaultConfig() for defaults.
type Config = cliconfig.Config

// Result is the settled outcome of one send.
type Result = domain.Result

// TokenStore provides read access to the stored bearer token.
type TokenStore = ports.TokenStore

// TokenWriter is a TokenStore the caller can modify.
type TokenWriter = ports.TokenWriter

// Sender posts chat messages.
type Sender = ports.MessageSender

// TokenKey is the storage key of the bearer token.
const TokenKey = domain.TokenKey

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() Config {
	return cliconfig.DefaultConfig()
}

// NewSender builds an HTTP sender using cfg.ServiceURL and cfg.HTTPTimeout.
func NewSender(cfg Config, tokens TokenStore, logger zerolog.Logger) Sender {
	client := &http.Client{Timeout: cfg.HTTPTimeout}
	return httpAdapter.NewMessageSender(client, tokens, logAdapter.NewZerologAdapterWithLogger(logger), cfg.ServiceURL)
}

// OpenTokenStore opens the backend selected by cfg.TokenStore.
// When watch is true the file backend caches the credentials file and
// reloads it on change. The returned close function is never nil.
func OpenTokenStore(ctx context.Context, cfg Config, logger zerolog.Logger, watch bool) (TokenWriter, func() error, error) {
	noop := func() error { return nil }

	switch cfg.TokenStore {
	case cliconfig.StoreMemory:
		return memory.NewTokenStore(nil), noop, nil

	case cliconfig.StoreFile:
		if !watch {
			return fs.NewTokenFile(cfg.TokenFile), noop, nil
		}
		w, err := fs.NewWatchedTokenFile(cfg.TokenFile, logAdapter.NewZerologAdapterWithLogger(logger))
		if err != nil {
			return nil, noop, err
		}
		return w, w.Close, nil

	case cliconfig.StoreRedis:
		s, err := redisAdapter.NewTokenStore(ctx, cfg.RedisURL)
		if err != nil {
			return nil, noop, err
		}
		return s, s.Close, nil

	default:
		return nil, noop, fmt.Errorf("%w: %q", domain.ErrUnsupportedStore, cfg.TokenStore)
	}
}
