package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/goliatone/go-textmask/components/maskfield"
	"github.com/goliatone/go-textmask/pkg/pipe"
	"github.com/goliatone/go-textmask/pkg/presets"
)

func (a *app) serveCmd() *cobra.Command {
	var (
		addr     string
		basePath string
		watch    bool
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the conform endpoint over HTTP",
		Long: `serve exposes GET/HEAD (list presets) and POST (conform one edit) under
<base-path>/api/textmask. A preset file given with --presets is reloaded
when it changes.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("addr") {
				addr = a.cfg.Addr
			}
			if !cmd.Flags().Changed("base-path") {
				basePath = a.cfg.BasePath
			}
			store, err := a.loadStore()
			if err != nil {
				return err
			}

			mux := http.NewServeMux()
			pattern, err := maskfield.RegisterRoutes(mux, basePath,
				maskfield.WithStore(store),
				maskfield.WithPipes(pipe.NewRegistry()),
				maskfield.WithInlineMask(a.cfg.InlineMasks),
				maskfield.WithMaxBodyBytes(a.cfg.MaxBodyBytes),
				maskfield.WithLogger(a.logger),
			)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.serve(ctx, &http.Server{Addr: addr, Handler: mux}, pattern, store, watch)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address (TEXTMASK_ADDR)")
	cmd.Flags().StringVar(&basePath, "base-path", "/", "path prefix for the endpoint (TEXTMASK_BASE_PATH)")
	cmd.Flags().BoolVar(&watch, "watch", true, "reload --presets when the file changes")
	return cmd
}

func (a *app) serve(ctx context.Context, srv *http.Server, pattern string, store *presets.Store, watch bool) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.logger.Info("textmask: listening", zap.String("addr", srv.Addr), zap.String("path", pattern))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if path := a.presets; watch && path != "" {
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			g.Go(func() error {
				return presets.Watch(ctx, path, func(loaded *presets.Store, err error) {
					if err != nil {
						a.logger.Warn("textmask: preset reload failed", zap.String("path", path), zap.Error(err))
						return
					}
					if err := store.Merge(loaded); err != nil {
						a.logger.Warn("textmask: preset merge failed", zap.String("path", path), zap.Error(err))
						return
					}
					a.logger.Info("textmask: presets reloaded", zap.String("path", path), zap.Int("count", loaded.Len()))
				}, presets.WithDebounce(a.cfg.ReloadDebounce))
			})
		}
	}

	return g.Wait()
}
