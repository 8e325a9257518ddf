package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/lealknar/Group-1-Library-Website/internal/app"
	"github.com/lealknar/Group-1-Library-Website/internal/clock"
	"github.com/lealknar/Group-1-Library-Website/internal/config"
	"github.com/lealknar/Group-1-Library-Website/internal/storage/postgres"
	transporthttp "github.com/lealknar/Group-1-Library-Website/internal/transport/http"
	"github.com/lealknar/Group-1-Library-Website/migrations"
)

const startupTimeout = 5 * time.Second

func main() {
	root := &cobra.Command{
		Use:           "library-api",
		Short:         "Library management HTTP API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(serveCmd(), migrateCmd())
	// Plain `library-api` serves.
	root.RunE = func(cmd *cobra.Command, args []string) error {
		return serve()
	}

	if err := root.Execute(); err != nil {
		log.Fatalf("library-api: %v", err)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve()
		},
	}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
			defer cancel()

			pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
			if err != nil {
				return err
			}
			defer pool.Close()

			if err := migrations.Apply(ctx, pool); err != nil {
				return err
			}
			log.Printf("migrations applied")
			return nil
		},
	}
}

func serve() error {
	logger := log.Default()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	startupCtx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	pool, err := pgxpool.New(startupCtx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := pool.Ping(startupCtx); err != nil {
		return err
	}
	if err := migrations.Apply(startupCtx, pool); err != nil {
		return err
	}

	clk := clock.NewSystem()
	loanSvc := app.NewLoanService(postgres.NewLoanRepository(pool), clk)
	catalogSvc := app.NewCatalogService(postgres.NewCatalogRepository(pool), clk)
	bookmarkSvc := app.NewBookmarkService(postgres.NewBookmarkRepository(pool), clk)
	querySvc := app.NewQueryService(postgres.NewQueryRepository(pool))
	userSvc := app.NewUserService(postgres.NewUserRepository(pool), clk)

	mux := http.NewServeMux()
	mux.HandleFunc("/health", transporthttp.HealthHandler)
	mux.Handle("/books", transporthttp.HandleBooks(querySvc, catalogSvc))
	mux.Handle("/books/", transporthttp.HandleBookByID(catalogSvc))
	mux.Handle("/loans", transporthttp.HandleLoans(loanSvc, querySvc))
	mux.Handle("/loans/", transporthttp.HandleReturnLoan(loanSvc))
	mux.Handle("/returns", transporthttp.HandleListReturns(querySvc))
	mux.Handle("/bookmarks/toggle", transporthttp.HandleToggleBookmark(bookmarkSvc))
	mux.Handle("/bookmarks", transporthttp.HandleListBookmarks(bookmarkSvc))
	mux.Handle("/bookmarks/", transporthttp.HandleBookmarkByID(bookmarkSvc))
	mux.Handle("/history", transporthttp.HandleUserHistory(querySvc))
	mux.Handle("/auth/register", transporthttp.HandleRegister(userSvc))
	mux.Handle("/auth/login", transporthttp.HandleLogin(userSvc))
	mux.Handle("/", transporthttp.NotFoundHandler())

	handler := transporthttp.RequestID(transporthttp.CORS(cfg.CORSOrigins, mux))
	handler = transporthttp.RequestLogger(handler, logger)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: handler,
	}

	logger.Printf("api listening on :%s", cfg.Port)

	srvErr := make(chan error, 1)
	go func() {
		srvErr <- server.ListenAndServe()
	}()

	stopCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Printf("server error: %v", err)
		}
	case <-stopCtx.Done():
		logger.Printf("shutdown signal received, stopping server")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Printf("server shutdown error: %v", err)
	}
	logger.Printf("server stopped")
	return nil
}
