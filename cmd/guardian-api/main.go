// README: Entry point; loads config, wires services, starts the HTTP server.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"guardian/internal/auth"
	"guardian/internal/clock"
	"guardian/internal/config"
	"guardian/internal/dispatch"
	httptransport "guardian/internal/http"
	"guardian/internal/infra"
	"guardian/internal/logging"
	gmaps "guardian/internal/maps"
	"guardian/internal/modules/pickup"
	"guardian/internal/modules/rider"
	"guardian/internal/modules/trip"
	"guardian/internal/notify"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	logger := logging.New(cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
	if err != nil {
		log.Fatal(err)
	}
	redisClient := infra.NewRedis(cfg.Redis.Addr)

	mapsClient, err := gmaps.NewClient(cfg.Maps.APIKey)
	if err != nil {
		log.Fatal(err)
	}
	roads := gmaps.NewRoadsService(mapsClient)
	directions := gmaps.NewDirectionsService(mapsClient)

	dispatchClient := dispatch.NewClient(cfg.Dispatch.BaseURL, cfg.Dispatch.Product)
	var backend trip.Backend = dispatchClient
	if cfg.Env != config.EnvProduction {
		backend = dispatch.NewSandbox(dispatchClient, logger)
	}

	riderStore := rider.NewStore(dbPool)
	riderSvc := rider.NewService(riderStore)

	pickupSvc := pickup.NewService(dispatchClient, roads, directions, cfg.Pickup, logger)

	clk := clock.Real{}
	gateway := notify.NewTwilioGateway(cfg.Twilio.AccountSID, cfg.Twilio.AuthToken)
	sequencer := notify.NewSequencer(gateway, clk, logger, cfg.Twilio.Number, cfg.HTTP.Hostname, cfg.WebhookSecret, cfg.SafeArrivalDelay)

	tripSvc := trip.NewService(backend, sequencer, clk, cfg.Trip, cfg.Env, logger)

	provider := auth.NewProvider(cfg)
	sessions := auth.NewSessions(redisClient)

	handler := httptransport.NewServer(httptransport.ServerDeps{
		Rider:    riderSvc,
		Pickup:   pickupSvc,
		Trip:     tripSvc,
		Provider: provider,
		Sessions: sessions,
		Cfg:      cfg,
		Log:      logger,
	})

	server := &http.Server{Addr: cfg.HTTP.Addr, Handler: handler.Routes()}
	go func() {
		<-ctx.Done()
		_ = server.Shutdown(context.Background())
	}()

	logger.WithField("addr", cfg.HTTP.Addr).Info("listening")
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}
