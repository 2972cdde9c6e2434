// README: Entry point; loads config, wires services, starts the HTTP server.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"breadrun/internal/config"
	httptransport "breadrun/internal/http"
	"breadrun/internal/http/handlers"
	"breadrun/internal/infra"
	"breadrun/internal/logger"
	"breadrun/internal/maps"
	"breadrun/internal/modules/address"
	"breadrun/internal/modules/apiusage"
	"breadrun/internal/modules/deliveryfee"
	"breadrun/internal/modules/distance"
)

func main() {
	// .env is a development convenience; production sets variables directly.
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	appLog := logger.New(cfg.Log.Level, cfg.Log.Format)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
	if err != nil {
		appLog.WithError(err).Fatal("postgres init")
	}
	defer dbPool.Close()

	redisClient := infra.NewRedis(cfg.Redis.Addr)

	// A missing maps key is not fatal: every resolution then terminates at
	// the fixed fallback distance.
	var matrix distance.Matrix
	if svc, err := maps.NewDistanceService(cfg.Maps.APIKey, time.Duration(cfg.Maps.TimeoutSeconds)*time.Second); err != nil {
		appLog.WithError(err).Warn("distance matrix disabled")
	} else {
		matrix = svc
	}

	usageStore := apiusage.NewStore(dbPool)
	usageSvc := apiusage.NewService(usageStore, appLog, cfg.Usage.PerCallPaise)

	distCache := distance.NewRedisCache(redisClient, time.Duration(cfg.Distance.CacheTTLMinutes)*time.Minute)
	resolver := distance.NewResolver(matrix, distCache, usageSvc, appLog, cfg.Store.Origin, distance.Locality{
		City:    cfg.Store.City,
		State:   cfg.Store.State,
		Country: cfg.Store.Country,
	}, cfg.Distance.FallbackKm, cfg.Distance.FallbackMinutes)

	feeStore := deliveryfee.NewStore(dbPool)
	feeSvc := deliveryfee.NewService(feeStore, appLog)

	addressStore := address.NewStore(dbPool)

	deliveryHandler := handlers.NewDeliveryHandler(feeSvc, resolver, addressStore)
	adminHandler := handlers.NewAdminHandler(feeSvc, distCache)
	usageHandler := handlers.NewUsageHandler(usageSvc)

	router := httptransport.NewRouter(appLog, cfg.Admin.Key, deliveryHandler, adminHandler, usageHandler)
	server := &http.Server{Addr: cfg.HTTP.Addr, Handler: router}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	appLog.WithField("addr", cfg.HTTP.Addr).Info("breadrun api listening")
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		appLog.WithError(err).Fatal("server error")
	}
}
