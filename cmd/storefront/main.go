package main

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"Storefront/internal/cart"
	"Storefront/internal/catalog"
	"Storefront/internal/config"
	"Storefront/internal/storefront"
	"Storefront/pkg/kit"
)

const loadTimeout = 10 * time.Second

func main() {
	service := "storefront"

	cfg, err := config.Load()
	if err != nil {
		kit.NewLogger(service, "info").Fatal("load config failed", zap.Error(err))
	}

	log := kit.NewLogger(service, cfg.LogLevel)
	defer func() { _ = log.Sync() }()

	source, err := newSource(cfg)
	if err != nil {
		log.Fatal("init catalog source failed", zap.Error(err))
	}

	catalogStore := catalog.NewStore()
	loader := &catalog.Loader{Source: source, Store: catalogStore, Log: log}

	// A failed initial load is not fatal: the service starts with an empty
	// catalog and reports unready until a refresh succeeds.
	ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
	_ = loader.Load(ctx)
	cancel()

	cartStore := cart.NewStore(catalogStore)

	catalogSrv := &catalog.Server{Store: catalogStore, Loader: loader, Log: log}
	cartSrv := &cart.Server{Cart: cartStore, Catalog: catalogStore, Log: log}

	h := storefront.NewHandler(catalogSrv, cartSrv, storefront.HTTPDeps{
		Log:            log,
		Service:        service,
		Registry:       prometheus.NewRegistry(),
		MetricsEnabled: cfg.MetricsEnabled,
		MetricsToken:   cfg.MetricsToken,
		CORSOrigins:    cfg.CORSOrigins,
		RateLimit:      cfg.RateLimit,
		RateWindow:     cfg.RateWindow,
	})

	if err := kit.RunHTTPServer(":"+cfg.Port, h, log, cfg.ShutdownTimeout); err != nil {
		log.Fatal("http server stopped", zap.Error(err))
	}
}

func newSource(cfg config.Config) (catalog.Source, error) {
	if cfg.CatalogDSN != "" {
		db, err := sql.Open("pgx", cfg.CatalogDSN)
		if err != nil {
			return nil, err
		}
		return catalog.NewPostgresSource(db), nil
	}
	return catalog.NewHTTPSource(cfg.CatalogURL), nil
}
