package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"github.com/yeonhwa/bloomdesk/internal/config"
	"github.com/yeonhwa/bloomdesk/internal/customer"
	customerStore "github.com/yeonhwa/bloomdesk/internal/customer/store"
	"github.com/yeonhwa/bloomdesk/internal/database"
	"github.com/yeonhwa/bloomdesk/internal/expense"
	expenseStore "github.com/yeonhwa/bloomdesk/internal/expense/store"
	bloomHttp "github.com/yeonhwa/bloomdesk/internal/http"
	"github.com/yeonhwa/bloomdesk/internal/http/auth"
	customerHandler "github.com/yeonhwa/bloomdesk/internal/http/customer"
	depositHandler "github.com/yeonhwa/bloomdesk/internal/http/deposit"
	expenseHandler "github.com/yeonhwa/bloomdesk/internal/http/expense"
	photocardHandler "github.com/yeonhwa/bloomdesk/internal/http/photocard"
	pushHandler "github.com/yeonhwa/bloomdesk/internal/http/push"
	reportHandler "github.com/yeonhwa/bloomdesk/internal/http/report"
	reservationHandler "github.com/yeonhwa/bloomdesk/internal/http/reservation"
	saleHandler "github.com/yeonhwa/bloomdesk/internal/http/sale"
	settingsHandler "github.com/yeonhwa/bloomdesk/internal/http/settings"
	statsHandler "github.com/yeonhwa/bloomdesk/internal/http/stats"
	uploadHandler "github.com/yeonhwa/bloomdesk/internal/http/upload"
	"github.com/yeonhwa/bloomdesk/internal/photocard"
	photocardStore "github.com/yeonhwa/bloomdesk/internal/photocard/store"
	photoLocal "github.com/yeonhwa/bloomdesk/internal/photostore/local"
	"github.com/yeonhwa/bloomdesk/internal/push"
	pushStore "github.com/yeonhwa/bloomdesk/internal/push/store"
	"github.com/yeonhwa/bloomdesk/internal/report"
	"github.com/yeonhwa/bloomdesk/internal/reservation"
	reservationStore "github.com/yeonhwa/bloomdesk/internal/reservation/store"
	"github.com/yeonhwa/bloomdesk/internal/sale"
	saleStore "github.com/yeonhwa/bloomdesk/internal/sale/store"
	"github.com/yeonhwa/bloomdesk/internal/settings"
	settingsStore "github.com/yeonhwa/bloomdesk/internal/settings/store"
	"github.com/yeonhwa/bloomdesk/internal/stats"
	statsStore "github.com/yeonhwa/bloomdesk/internal/stats/store"
)

func main() {
	// Missing .env is fine in production; env vars win either way.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	photos, err := photoLocal.New(cfg.Photos.Dir, cfg.Photos.BaseURL)
	if err != nil {
		slog.Error("failed to init photo store", "error", err)
		os.Exit(1)
	}

	sender := push.NewWebPushSender(push.VAPIDConfig{
		PublicKey:  cfg.Push.VAPIDPublicKey,
		PrivateKey: cfg.Push.VAPIDPrivateKey,
		Subscriber: cfg.Push.Subscriber,
	})

	var (
		customerService    = customer.NewService(customerStore.New(db))
		saleService        = sale.NewService(saleStore.New(db), customerService)
		expenseService     = expense.NewService(expenseStore.New(db))
		pushService        = push.NewService(pushStore.New(db), sender)
		reservationService = reservation.NewService(reservationStore.New(db), customerService, pushService)
		photocardService   = photocard.NewService(photocardStore.New(db))
		settingsService    = settings.NewService(settingsStore.New(db))
		statsService       = stats.NewService(statsStore.New(db))
		reportService      = report.NewService(saleService)
	)

	handlers := bloomHttp.Handlers{
		Sales:        saleHandler.NewHandler(saleService),
		Customers:    customerHandler.NewHandler(customerService),
		Expenses:     expenseHandler.NewHandler(expenseService),
		Reservations: reservationHandler.NewHandler(reservationService),
		Deposits:     depositHandler.NewHandler(saleService),
		PhotoCards:   photocardHandler.NewHandler(photocardService),
		Settings:     settingsHandler.NewHandler(settingsService),
		Stats:        statsHandler.NewHandler(statsService),
		Push:         pushHandler.NewHandler(pushService, cfg.Push.VAPIDPublicKey),
		Reports:      reportHandler.NewHandler(reportService),
		Uploads:      uploadHandler.NewHandler(photos),
	}

	verifier := auth.NewVerifier(cfg.Auth.JWTSecret)

	router := bloomHttp.New(handlers, verifier, cfg.Server.AllowedOrigins)

	scheduler := cron.New()

	if _, err := scheduler.AddFunc("* * * * *", func() {
		if err := reservationService.SendDueReminders(context.Background()); err != nil {
			slog.Error("reminder run failed", "error", err)
		}
	}); err != nil {
		slog.Error("failed to schedule reminders", "error", err)
		os.Exit(1)
	}

	scheduler.Start()
	defer scheduler.Stop()

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "app", cfg.App.Name, "port", port)

	server := &http.Server{
		Addr:         port,
		Handler:      router,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
	}

	if err := server.ListenAndServe(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
