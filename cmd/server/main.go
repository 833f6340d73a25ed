package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/pennywiseapp/pennywise/internal/api"
	"github.com/pennywiseapp/pennywise/internal/auth"
	"github.com/pennywiseapp/pennywise/internal/config"
	"github.com/pennywiseapp/pennywise/internal/middleware"
	"github.com/pennywiseapp/pennywise/internal/scheduler"
	"github.com/pennywiseapp/pennywise/internal/service"
	"github.com/pennywiseapp/pennywise/internal/storage/sqlite"
	"github.com/pennywiseapp/pennywise/pkg/logging"
)

func main() {
	logging.Setup()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.DBPath)

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenDuration)
	authenticator := auth.NewPasswordAuthenticator(store)

	authSvc := service.NewAuthService(authenticator, jwtManager, store)
	financeSvc := service.NewFinanceService(store)
	budgetSvc := service.NewBudgetService(store)
	reminderSvc := service.NewReminderService(store)
	reportSvc := service.NewReportService(store)
	groupSvc := service.NewGroupService(store)
	splitSvc := service.NewSplitService(store)

	handler := api.NewHandler(authSvc, financeSvc, budgetSvc, reminderSvc, reportSvc, groupSvc, splitSvc)
	router := api.NewRouter(handler, jwtManager)

	sched, err := scheduler.New(reminderSvc, cfg.ReminderSweepSpec)
	if err != nil {
		slog.Error("Failed to build scheduler", "error", err)
		os.Exit(1)
	}
	sched.Start()
	defer sched.Stop()

	chain := middleware.Logging(middleware.CORS(router))

	// h2c lets gRPC-style and HTTP/2 clients connect without TLS; a
	// reverse proxy terminates TLS in front of this server.
	h2cHandler := h2c.NewHandler(chain, &http2.Server{})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           h2cHandler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("Server starting", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	slog.Info("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Shutdown failed", "error", err)
	}
}
