package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/nguyenvanduocit/tradutor/pkg/config"
)

var (
	v   = config.New()
	cfg *config.Config
)

var Root = &cobra.Command{
	Use:          "tradutor",
	Short:        "Translate, define and learn terms with an LLM provider",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(v)
		if err != nil {
			return err
		}
		cfg = loaded

		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel})))
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

func init() {
	flags := Root.PersistentFlags()
	flags.String("provider", "groq", "completion provider: groq or anthropic")
	flags.String("model", "", "model identifier, empty for the provider default")
	flags.String("base-url", "", "override the provider endpoint")
	flags.String("api-key", "", "provider API key (defaults to GROQ_API_KEY or ANTHROPIC_KEY)")
	flags.Int("rate-limit", 0, "max provider requests per minute, 0 for unlimited")
	flags.Duration("cache-ttl", 0, "cache identical prompts for this long, 0 disables the cache")
	flags.Duration("request-timeout", 0, "provider request timeout, 0 keeps the provider default")
	flags.String("log-level", "info", "debug, info, warn or error")

	bind := map[string]string{
		config.KeyProvider:       "provider",
		config.KeyModel:          "model",
		config.KeyBaseURL:        "base-url",
		config.KeyAPIKey:         "api-key",
		config.KeyRateLimit:      "rate-limit",
		config.KeyCacheTTL:       "cache-ttl",
		config.KeyRequestTimeout: "request-timeout",
		config.KeyLogLevel:       "log-level",
	}
	for key, flag := range bind {
		if err := v.BindPFlag(key, flags.Lookup(flag)); err != nil {
			panic(err)
		}
	}

	Root.AddCommand(Serve)
	Root.AddCommand(Translate)
}
