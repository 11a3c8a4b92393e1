package main

import (
	"context"
	"math/big"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"brickgate/internal/admin"
	adminMetrics "brickgate/internal/admin/metrics"
	"brickgate/internal/audit"
	"brickgate/internal/compliance"
	complianceMetrics "brickgate/internal/compliance/metrics"
	compStore "brickgate/internal/compliance/store"
	"brickgate/internal/domain"
	"brickgate/internal/listing"
	listStore "brickgate/internal/listing/store"
	"brickgate/internal/platform/config"
	"brickgate/internal/platform/database"
	"brickgate/internal/platform/httpserver"
	"brickgate/internal/platform/logger"
	httpMetrics "brickgate/internal/platform/metrics"
	"brickgate/internal/platform/middleware"
	platformRedis "brickgate/internal/platform/redis"
	"brickgate/internal/purchase"
	purchaseMetrics "brickgate/internal/purchase/metrics"
	"brickgate/internal/registry"
	registryMetrics "brickgate/internal/registry/metrics"
	httptransport "brickgate/internal/transport/http"
	id "brickgate/pkg/domain"
)

// main wires dependencies and keeps the server lifecycle small. Business
// logic lives in the internal feature packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()
	ctx := context.Background()

	log.Info("initializing brickgate",
		"addr", cfg.Addr,
		"node_url", cfg.NodeURL,
		"postgres", cfg.PostgresDSN != "",
		"redis", cfg.Redis.URL != "",
		"kafka", cfg.KafkaBrokers != "",
	)

	regMetrics := registryMetrics.New()

	// Chain node client. Without a node URL the in-process client serves
	// local development with a seeded demo property.
	var client registry.Client
	if cfg.NodeURL != "" {
		client = registry.NewHTTPClient(cfg.NodeURL, &http.Client{Timeout: 10 * time.Second},
			registry.WithHTTPClientMetrics(regMetrics))
	} else {
		memory := registry.NewMemoryClient(id.Address(cfg.DevAdminWallet))
		seedDemoProperty(memory)
		log.Warn("no node url configured, using in-process registry",
			"admin_wallet", cfg.DevAdminWallet)
		client = memory
	}

	// Snapshot cache: redis when configured, in-process otherwise.
	var redisClient *platformRedis.Client
	var cache registry.SnapshotCache
	if cfg.Redis.URL != "" {
		var err error
		redisClient, err = platformRedis.New(ctx, cfg.Redis)
		if err != nil {
			log.Error("redis connection failed", "error", err)
			os.Exit(1)
		}
		defer redisClient.Close()
		cache = registry.NewRedisSnapshotCache(redisClient.Raw(), cfg.SnapshotCacheTTL)
	} else {
		cache = registry.NewMemorySnapshotCache(cfg.SnapshotCacheTTL)
	}

	snapshots := registry.NewSnapshotter(client,
		registry.WithSnapshotCache(cache),
		registry.WithSnapshotLogger(log),
		registry.WithSnapshotMetrics(regMetrics),
	)

	// Stores: postgres when configured, memory otherwise.
	pool, err := database.New(database.DefaultConfig(cfg.PostgresDSN))
	if err != nil {
		log.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	var submissions compStore.SubmissionStore
	var listings listStore.ListingStore
	if pool != nil {
		defer pool.Close()
		if err := pool.Migrate(ctx); err != nil {
			log.Error("migrations failed", "error", err)
			os.Exit(1)
		}
		submissions = compStore.NewPostgres(pool.DB())
		listings = listStore.NewPostgres(pool.DB())
	} else {
		submissions = compStore.NewMemory()
		listings = listStore.NewMemory()
	}

	// Audit trail: kafka when configured, memory otherwise.
	var sink audit.Sink
	if cfg.KafkaBrokers != "" {
		kafkaSink, err := audit.NewKafkaSink(audit.KafkaConfig{
			Brokers: cfg.KafkaBrokers,
			Topic:   cfg.AuditTopic,
		}, log)
		if err != nil {
			log.Error("kafka sink failed", "error", err)
			os.Exit(1)
		}
		defer kafkaSink.Close()
		sink = kafkaSink
	} else {
		sink = audit.NewMemorySink()
	}
	publisher := audit.NewPublisher(sink)

	validator := compliance.NewValidator(compliance.Eligibility{
		Nationality:  cfg.EligibleNationality,
		TaxResidency: cfg.EligibleTaxResidency,
	})
	complianceSvc := compliance.New(validator, submissions, client, snapshots,
		compliance.WithLogger(log),
		compliance.WithAuditPublisher(publisher),
		compliance.WithMetrics(complianceMetrics.New()),
	)
	adminSvc := admin.New(client, snapshots, complianceSvc,
		admin.WithLogger(log),
		admin.WithAuditPublisher(publisher),
		admin.WithMetrics(adminMetrics.New()),
	)
	purchaseSvc := purchase.New(client, snapshots,
		purchase.WithLogger(log),
		purchase.WithAuditPublisher(publisher),
		purchase.WithMetrics(purchaseMetrics.New()),
	)
	listingSvc := listing.New(listings, client,
		listing.WithLogger(log),
		listing.WithAuditPublisher(publisher),
	)

	router := httptransport.NewRouter(httptransport.Deps{
		KYC:            httptransport.NewKYCHandler(complianceSvc, log),
		Admin:          httptransport.NewAdminHandler(adminSvc, log),
		Market:         httptransport.NewMarketHandler(listingSvc, purchaseSvc, log),
		Listing:        httptransport.NewListingHandler(listingSvc, adminSvc, log),
		RequestTimeout: cfg.RequestTimeout,
	},
		middleware.RequestID,
		middleware.Recovery(log),
		middleware.Logger(log),
		httpMetrics.New().Middleware,
	)

	srv := httpserver.New(cfg.Addr, router)

	log.Info("starting http server", "addr", cfg.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped")
}

// seedDemoProperty gives the in-process registry one purchasable property so
// the market renders out of the box.
func seedDemoProperty(client *registry.MemoryClient) {
	sale := id.Address("0x0000000000000000000000000000000000000201")
	// 0.05 ether per part, in wei.
	price, _ := new(big.Int).SetString("50000000000000000", 10)
	client.AddSale(sale, price, true)
	client.AddToken(domain.TokenInfo{
		Address:      id.Address("0x0000000000000000000000000000000000000101"),
		Name:         "Maison des Lilas",
		Symbol:       "LILAS",
		TotalSupply:  big.NewInt(0),
		MaxSupply:    big.NewInt(100),
		SaleContract: sale,
	})
}
