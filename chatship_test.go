package chatship

import (
	"context"
	"errors"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"github.com/bft-labs/chatship/internal/domain"
	"github.com/bft-labs/chatship/internal/echoserver"
)

func TestOpenTokenStoreFileAndSend(t *testing.T) {
	ts := httptest.NewServer(echoserver.NewRouter(zerolog.Nop(), echoserver.Options{}))
	defer ts.Close()

	ctx := context.Background()
	cfg := DefaultConfig()
	cfg.ServiceURL = ts.URL
	cfg.TokenFile = filepath.Join(t.TempDir(), "credentials.toml")
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	for _, watch := range []bool{false, true} {
		tokens, closeStore, err := OpenTokenStore(ctx, cfg, zerolog.Nop(), watch)
		if err != nil {
			t.Fatalf("OpenTokenStore(watch=%v): %v", watch, err)
		}
		if err := tokens.Set(ctx, TokenKey, "abc123"); err != nil {
			t.Fatalf("Set: %v", err)
		}

		res := NewSender(cfg, tokens, zerolog.Nop()).SendEcho(ctx, "hello")
		if !res.OK() {
			t.Fatalf("watch=%v: error result %s", watch, res.Error)
		}
		want := `{"reply":"hello","authenticated":true,"request_id":"` + res.RequestID + `"}`
		if string(res.Value) != want {
			t.Errorf("watch=%v: Value = %s, want %s", watch, res.Value, want)
		}
		if err := closeStore(); err != nil {
			t.Errorf("close: %v", err)
		}
	}
}

func TestOpenTokenStoreMemory(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TokenStore = "memory"

	tokens, closeStore, err := OpenTokenStore(context.Background(), cfg, zerolog.Nop(), false)
	if err != nil {
		t.Fatalf("OpenTokenStore: %v", err)
	}
	defer closeStore()

	if _, ok, _ := tokens.Get(context.Background(), TokenKey); ok {
		t.Error("memory store should start empty")
	}
}

func TestOpenTokenStoreUnsupported(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TokenStore = "etcd"

	_, closeStore, err := OpenTokenStore(context.Background(), cfg, zerolog.Nop(), false)
	if !errors.Is(err, domain.ErrUnsupportedStore) {
		t.Fatalf("err = %v, want ErrUnsupportedStore", err)
	}
	if closeStore == nil {
		t.Fatal("close function must never be nil")
	}
}
