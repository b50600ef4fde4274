package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/robfig/cron/v3"

	"github.com/kiwari-pos/kds/internal/aggregator"
	"github.com/kiwari-pos/kds/internal/config"
	"github.com/kiwari-pos/kds/internal/router"
	"github.com/kiwari-pos/kds/internal/service"
	"github.com/kiwari-pos/kds/internal/store"
	"github.com/kiwari-pos/kds/internal/store/postgres"
	"github.com/kiwari-pos/kds/internal/ws"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	pool, err := postgres.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("connect database: %v", err)
	}
	defer pool.Close()

	st := postgres.New(pool)

	hub := ws.NewHub()
	go hub.Run()

	agg := aggregator.New(st, hub, cfg.Location())
	agg.RefreshAll(ctx)

	// Store change notifications drive the reprojection loop.
	go func() {
		if err := st.Watch(ctx, func(change store.Change) {
			agg.Refresh(ctx, change)
		}); err != nil && ctx.Err() == nil {
			log.Printf("ERROR: store watcher stopped: %v", err)
		}
	}()

	// Scores decay with wall time; republish on a schedule even when the
	// store is quiet.
	c := cron.New()
	if _, err := c.AddFunc(cfg.RescoreSpec, agg.Reproject); err != nil {
		log.Fatalf("rescore schedule %q: %v", cfg.RescoreSpec, err)
	}
	c.Start()
	defer c.Stop()

	errs := &service.ErrorState{}
	r := router.New(cfg, st, agg, hub, errs)

	log.Printf("Starting kitchen display server on :%s", cfg.Port)
	if err := http.ListenAndServe(fmt.Sprintf(":%s", cfg.Port), r); err != nil {
		log.Fatal(err)
	}
}
