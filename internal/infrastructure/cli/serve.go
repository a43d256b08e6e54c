package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/hfahrudin/fraud-chatbot/internal/app"
)

func newServeCommand(opts Options) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Ingest missing stores and serve the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			container, err := app.BuildContainer(ctx, opts.Verbose)
			if err != nil {
				return err
			}
			defer container.Close()

			if err := container.EnsureIngested(ctx); err != nil {
				return err
			}

			if addr == "" {
				addr = container.Config.Server.Addr
			}
			server := &http.Server{
				Addr:    addr,
				Handler: container.Server.Handler(),
			}

			errCh := make(chan error, 1)
			go func() {
				errCh <- server.ListenAndServe()
			}()
			container.Logger.Info("serving", map[string]interface{}{"addr": addr})

			select {
			case <-ctx.Done():
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				return server.Shutdown(shutdownCtx)
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			}
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (defaults to config)")
	return cmd
}
