package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/khanhnv2901/siteprobe/internal/api"
	"github.com/khanhnv2901/siteprobe/internal/cache"
	"github.com/khanhnv2901/siteprobe/internal/checker"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the website analysis API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := cliConfig.Server

		serverLogger, err := newLogger(cliConfig.Log.Development)
		if err != nil {
			return fmt.Errorf("failed to create logger: %w", err)
		}
		defer func() {
			if err := serverLogger.Sync(); err != nil {
				fmt.Fprintf(os.Stderr, "failed to sync logger: %v\n", err)
			}
		}()

		store, err := cache.Open(commandContext(cmd), cache.Options{
			Backend:  cliConfig.Cache.Backend,
			RedisURL: cliConfig.Cache.RedisURL,
			Logger:   serverLogger,
		})
		if err != nil {
			return fmt.Errorf("failed to open cache: %w", err)
		}
		defer store.Close()

		checks := checker.New(checker.Config{
			Timeout:       cliConfig.Upstream.Timeout,
			DoHURL:        cliConfig.Upstream.DoHURL,
			RDAPServers:   cliConfig.Upstream.RDAPServers,
			SSLGradingURL: cliConfig.Upstream.SSLGradingURL,
			UserAgent:     "siteprobe/" + Version,
		}, checker.WithLogger(serverLogger.Named("checker")))

		server := api.NewServer(api.Config{
			Checks:      checks.Registry(),
			Store:       store,
			Logger:      serverLogger,
			CORSOrigins: cfg.CORSOrigins,
			RateLimit:   cfg.RateLimit,
			RateBurst:   cfg.RateBurst,
			Coalesce:    cfg.Coalesce,
		})
		defer server.Close()

		httpServer := &http.Server{
			Addr:         cfg.Addr,
			Handler:      server,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  120 * time.Second,
		}

		serverErrors := make(chan error, 1)

		go func() {
			fmt.Printf("%s API server listening on %s (cache: %s)\n", colorInfo("→"), cfg.Addr, cliConfig.Cache.Backend)
			fmt.Printf("%s Press Ctrl+C to gracefully shutdown\n", colorInfo("→"))
			serverErrors <- httpServer.ListenAndServe()
		}()

		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
		defer signal.Stop(shutdown)

		select {
		case err := <-serverErrors:
			if !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("server error: %w", err)
			}
		case sig := <-shutdown:
			fmt.Printf("\n%s Received signal %v, initiating graceful shutdown...\n", colorInfo("→"), sig)
			serverLogger.Info("shutting down", zap.String("signal", sig.String()))

			ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
			defer cancel()

			if err := httpServer.Shutdown(ctx); err != nil {
				if closeErr := httpServer.Close(); closeErr != nil {
					return fmt.Errorf("failed to gracefully shutdown server: %w (close error: %v)", err, closeErr)
				}
				return fmt.Errorf("failed to gracefully shutdown server: %w", err)
			}

			fmt.Printf("%s Server shutdown complete\n", colorInfo("✓"))
		}

		return nil
	},
}

func init() {
	f := serveCmd.Flags()
	f.StringVar(&cliConfig.Server.Addr, "addr", cliConfig.Server.Addr, "Address for the API server")
	f.DurationVar(&cliConfig.Server.ShutdownTimeout, "shutdown-timeout", cliConfig.Server.ShutdownTimeout, "Graceful shutdown timeout")
	f.StringSliceVar(&cliConfig.Server.CORSOrigins, "cors-origins", cliConfig.Server.CORSOrigins, "Allowed CORS origins (empty = allow all)")
	f.IntVar(&cliConfig.Server.RateLimit, "rate-limit", cliConfig.Server.RateLimit, "Requests per minute per client IP (0 = disabled)")
	f.IntVar(&cliConfig.Server.RateBurst, "rate-burst", cliConfig.Server.RateBurst, "Rate limit burst size")
	f.BoolVar(&cliConfig.Server.Coalesce, "coalesce", cliConfig.Server.Coalesce, "Share one upstream call between concurrent cache misses")

	f.StringVar(&cliConfig.Cache.Backend, "cache", cliConfig.Cache.Backend, "Cache backend: memory or redis")
	f.StringVar(&cliConfig.Cache.RedisURL, "redis-url", cliConfig.Cache.RedisURL, "Redis URL when --cache=redis")

	f.DurationVar(&cliConfig.Upstream.Timeout, "upstream-timeout", cliConfig.Upstream.Timeout, "Timeout for each outbound check request")
	f.StringVar(&cliConfig.Upstream.DoHURL, "doh-url", cliConfig.Upstream.DoHURL, "DNS-over-HTTPS JSON endpoint")
	f.StringSliceVar(&cliConfig.Upstream.RDAPServers, "rdap-server", cliConfig.Upstream.RDAPServers, "RDAP URL templates tried in order (%s = domain)")
	f.StringVar(&cliConfig.Upstream.SSLGradingURL, "ssl-grading-url", cliConfig.Upstream.SSLGradingURL, "Certificate grading analyze endpoint")

	rootCmd.AddCommand(serveCmd)
}
