package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"time"

	"github.com/spf13/cobra"

	"github.com/nguyenvanduocit/tradutor/pkg/config"
	"github.com/nguyenvanduocit/tradutor/pkg/controller"
	"github.com/nguyenvanduocit/tradutor/pkg/server"
	"github.com/nguyenvanduocit/tradutor/pkg/session"
	"github.com/nguyenvanduocit/tradutor/pkg/translator"
)

const shutdownTimeout = 5 * time.Second

var Serve = &cobra.Command{
	Use:     "serve",
	Short:   "serve the translator page",
	Example: "tradutor serve --port 3000",
	Args:    cobra.NoArgs,
	RunE:    runServe,
}

func init() {
	Serve.Flags().StringP("port", "p", "3000", "port to serve the page on")
	if err := v.BindPFlag(config.KeyPort, Serve.Flags().Lookup("port")); err != nil {
		panic(err)
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	factory, err := translator.NewFactory(cfg.Translator)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	settings := session.DefaultSettings()
	settings.APIKey = cfg.APIKey

	store := session.NewStore(session.NewState(settings))
	ctrl := controller.New(ctx, store, factory, controller.Options{
		ProviderName: translator.DisplayName(cfg.Translator.Provider),
		Logger:       slog.Default().With("provider", cfg.Translator.Provider),
	})

	app := server.New(ctrl)

	go func() {
		<-ctx.Done()
		slog.Info("shutting down")
		if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
			slog.Error("shutdown", "error", err)
		}
	}()

	slog.Info("- http://localhost:"+cfg.Port, "provider", cfg.Translator.Provider, "api_key_set", cfg.APIKey != "")

	if err := app.Listen(net.JoinHostPort("", cfg.Port)); err != nil {
		return fmt.Errorf("listen: %w", err)
	}

	ctrl.Wait()
	return nil
}
