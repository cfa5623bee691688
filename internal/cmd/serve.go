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

	"github.com/hardik88t/puredry/internal/cart"
	"github.com/hardik88t/puredry/internal/catalog"
	apihttp "github.com/hardik88t/puredry/internal/http"
	"github.com/hardik88t/puredry/internal/quote"
	"github.com/hardik88t/puredry/internal/repository"
	"github.com/hardik88t/puredry/internal/telemetry"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Long: `Load the catalog, restore the device cart and serve the catalog, cart
and quote endpoints until interrupted.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Setup(ctx, telemetry.Config{
		Exporter:       cfg.Telemetry.Exporter,
		Endpoint:       cfg.Telemetry.Endpoint,
		ServiceName:    cfg.Telemetry.ServiceName,
		ServiceVersion: version,
	})
	if err != nil {
		return fmt.Errorf("failed to set up tracing: %w", err)
	}

	db, err := openCatalogDB(cfg)
	if err != nil {
		return err
	}
	closers := []closer{shutdownTracing, func(context.Context) error { return db.Close() }}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
		defer cancel()
		closeAll(ctx, log, closers...)
	}()

	products, err := catalog.Load(ctx, repository.NewProductRepository(db), log)
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	store, closeStore, err := openStorage(ctx, cfg, db)
	if err != nil {
		return err
	}
	closers = append(closers, closeStore)

	submitter, closeSubmitter, err := openSubmitter(cfg, store, log)
	if err != nil {
		return err
	}
	closers = append(closers, closeSubmitter)

	cartStore := cart.NewStore(ctx, store, cfg.Currency, log)
	history := catalog.NewRecentSearches(ctx, store, log)
	workflow := quote.NewWorkflow(cartStore, submitter, log, quote.WithTimeout(cfg.Quote.Timeout))

	handler := apihttp.NewRouter(
		apihttp.RouterConfig{
			RequestTimeout: cfg.HTTP.RequestTimeout,
			MaxBodyBytes:   cfg.HTTP.MaxBodyBytes,
			AccessLog:      true,
		},
		apihttp.NewCatalogHandler(products, history, log),
		apihttp.NewCartHandler(cartStore, products, log),
		apihttp.NewQuoteHandler(workflow, log),
	)

	srv := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      handler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("puredry API starting",
			"addr", cfg.HTTP.Addr,
			"storage", cfg.Storage.Backend,
			"submitter", cfg.Quote.Submitter,
			"version", version)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	log.Info("server exited")
	return nil
}
