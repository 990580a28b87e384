// Package app wires the message sender into the user-facing flows:
// concurrent one-shot sends and the interactive session.
package app

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/bft-labs/chatship/internal/domain"
	"github.com/bft-labs/chatship/internal/ports"
)

// SendAll sends every message with at most limit requests in flight and
// returns the results in input order. Individual sends never fail, so the
// only error is ctx's, in which case unsent messages get an error Result.
func SendAll(ctx context.Context, sender ports.MessageSender, messages []string, limit int) ([]domain.Result, error) {
	results := make([]domain.Result, len(messages))
	if limit <= 0 {
		limit = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, msg := range messages {
		i, msg := i, msg
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				results[i] = domain.Failed(domain.NewSendError(domain.KindNetwork, err), 0)
				return err
			}
			results[i] = sender.SendEcho(gctx, msg)
			return nil
		})
	}

	err := g.Wait()
	return results, err
}

// CountFailures returns how many results hold an error.
func CountFailures(results []domain.Result) int {
	n := 0
	for _, r := range results {
		if !r.OK() {
			n++
		}
	}
	return n
}
