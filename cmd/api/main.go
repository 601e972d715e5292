package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"furnipay/internal/config"
	"furnipay/internal/database"
	"furnipay/internal/deduction"
	deductionStore "furnipay/internal/deduction/store"
	"furnipay/internal/export"
	exportStore "furnipay/internal/export/store"
	furnipayHttp "furnipay/internal/http"
	deductionHandler "furnipay/internal/http/deduction"
	exportHandler "furnipay/internal/http/export"
	importHandler "furnipay/internal/http/importcsv"
	matchingHandler "furnipay/internal/http/matching"
	orderHandler "furnipay/internal/http/order"
	paymentHandler "furnipay/internal/http/payment"
	workerHandler "furnipay/internal/http/worker"
	"furnipay/internal/importer"
	"furnipay/internal/matching"
	matchingStore "furnipay/internal/matching/store"
	"furnipay/internal/order"
	orderStore "furnipay/internal/order/store"
	"furnipay/internal/payment"
	paymentStore "furnipay/internal/payment/store"
	"furnipay/internal/worker"
	workerStore "furnipay/internal/worker/store"
)

func main() {
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

	var (
		workerService    = worker.NewService(workerStore.New(db))
		orderService     = order.NewService(orderStore.New(db), workerService)
		paymentService   = payment.NewService(paymentStore.New(db))
		deductionService = deduction.NewService(deductionStore.New(db))
		matchingService  = matching.NewService(matchingStore.New(db))
		importService    = importer.NewService(matchingService)
		exportService    = export.NewService(exportStore.New(db))
	)

	var (
		orderH     = orderHandler.NewHandler(orderService, workerService, paymentService, deductionService)
		paymentH   = paymentHandler.NewHandler(paymentService)
		workerH    = workerHandler.NewHandler(workerService)
		deductionH = deductionHandler.NewHandler(deductionService)
		importH    = importHandler.NewHandler(importService, paymentService, matchingService)
		matchingH  = matchingHandler.NewHandler(matchingService)
		exportH    = exportHandler.NewHandler(exportService)
	)

	router := furnipayHttp.New(orderH, paymentH, workerH, deductionH, importH, matchingH, exportH)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "port", port)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
