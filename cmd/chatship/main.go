package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	logAdapter "github.com/bft-labs/chatship/internal/adapters/log"
	"github.com/bft-labs/chatship/internal/cliconfig"
	"github.com/bft-labs/chatship/internal/ports"
)

const longHelp = `Send chat messages to a backend's /api/chat endpoint.

Each message is one POST of {"message": "..."} carrying the stored bearer
token when there is one. Replies are printed as returned by the backend;
failures are printed as {"error": "..."}.

Configure via $HOME/.chatship/config.toml, CHATSHIP_* environment variables
(a .env file in the working directory is honored), or flags.`

var exampleUsage = strings.TrimSpace(`
  chatship token set <access-token>
  chatship send "hello" "how are you?"
  chatship repl --output yaml
  chatship serve --listen :8000
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

// cli carries the resolved configuration to subcommands.
type cli struct {
	cfg     cliconfig.Config
	cfgPath string
	log     zerolog.Logger
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	c := newCLI()
	if err := c.rootCommand().ExecuteContext(ctx); err != nil {
		c.log.Error().Err(err).Msg("chatship")
		stop()
		os.Exit(1)
	}
}

func newCLI() *cli {
	return &cli{
		cfg: cliconfig.DefaultConfig(),
		log: cliconfig.Logger(),
	}
}

func (c *cli) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:               "chatship",
		Short:             "Send chat messages to a chat backend",
		Long:              longHelp,
		Example:           exampleUsage,
		Version:           fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.loadConfig,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&c.cfgPath, "config", "", "path to config file (default: $HOME/.chatship/config.toml)")
	flags.StringVar(&c.cfg.ServiceURL, "service-url", c.cfg.ServiceURL, "base URL of the chat backend")
	flags.DurationVar(&c.cfg.HTTPTimeout, "timeout", c.cfg.HTTPTimeout, "HTTP timeout per request")
	flags.StringVar(&c.cfg.TokenStore, "token-store", c.cfg.TokenStore, "token store backend: file, memory or redis")
	flags.StringVar(&c.cfg.TokenFile, "token-file", c.cfg.TokenFile, "credentials file for the file token store")
	flags.StringVar(&c.cfg.RedisURL, "redis-url", c.cfg.RedisURL, "redis URL for the redis token store")
	flags.StringVarP(&c.cfg.Output, "output", "o", c.cfg.Output, "output format: json or yaml")
	flags.IntVar(&c.cfg.Concurrency, "concurrency", c.cfg.Concurrency, "maximum concurrent sends")
	flags.StringVar(&c.cfg.LogLevel, "log-level", c.cfg.LogLevel, "log level (debug, info, warn, error)")

	root.AddCommand(
		c.sendCommand(),
		c.replCommand(),
		c.tokenCommand(),
		c.serveCommand(),
	)
	return root
}

// loadConfig applies, in increasing precedence: config file, environment
// (including .env), then flags.
func (c *cli) loadConfig(cmd *cobra.Command, args []string) error {
	cfgFile := c.cfgPath
	if cfgFile == "" {
		cfgFile = cliconfig.DefaultConfigPath()
	}

	changed := map[string]bool{}
	cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

	if cfgFile != "" && cliconfig.FileExists(cfgFile) {
		fc, err := cliconfig.LoadFileConfig(cfgFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if err := cliconfig.ApplyFileConfig(&c.cfg, fc, changed); err != nil {
			return err
		}
	}

	if err := cliconfig.LoadDotEnv(".env"); err != nil {
		return err
	}
	if err := cliconfig.ApplyEnvConfig(&c.cfg, changed); err != nil {
		return err
	}

	if err := c.cfg.Validate(); err != nil {
		return err
	}

	c.log = cliconfig.LoggerWithLevel(c.cfg.LogLevel)
	c.log.Debug().
		Str("service_url", c.cfg.ServiceURL).
		Dur("timeout", c.cfg.HTTPTimeout).
		Str("token_store", c.cfg.TokenStore).
		Str("output", c.cfg.Output).
		Int("concurrency", c.cfg.Concurrency).
		Msg("configuration")
	return nil
}

func zerologPorts(l zerolog.Logger) ports.Logger {
	return logAdapter.NewZerologAdapterWithLogger(l)
}
