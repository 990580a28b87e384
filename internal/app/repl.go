package app

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/bft-labs/chatship/internal/ports"
)

const quitCommand = "/quit"

// RunREPL reads one message per line from in and renders each reply.
// Blank lines are skipped. It returns nil at EOF or on /quit, and ctx's
// error if canceled between lines.
func RunREPL(ctx context.Context, in io.Reader, prompt io.Writer, sender ports.MessageSender, renderer *Renderer, logger ports.Logger) error {
	scanner := bufio.NewScanner(in)
	sent := 0

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if prompt != nil {
			fmt.Fprint(prompt, "> ")
		}
		if !scanner.Scan() {
			break
		}

		line := scanner.Text()
		switch strings.TrimSpace(line) {
		case "":
			continue
		case quitCommand:
			return finish(scanner, logger, sent)
		}

		res := sender.SendEcho(ctx, line)
		sent++
		if err := renderer.Render(res); err != nil {
			return err
		}
	}

	return finish(scanner, logger, sent)
}

func finish(scanner *bufio.Scanner, logger ports.Logger, sent int) error {
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	logger.Debug("session ended", ports.Int("sent", sent))
	return nil
}
