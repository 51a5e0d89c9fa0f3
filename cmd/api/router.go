package main

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/P-N-S-U/backend/internal/modules/access"
	"github.com/P-N-S-U/backend/internal/modules/auth"
	"github.com/P-N-S-U/backend/internal/modules/buyer"
	"github.com/P-N-S-U/backend/internal/modules/certification"
	"github.com/P-N-S-U/backend/internal/modules/identity"
	"github.com/P-N-S-U/backend/internal/modules/listing"
	"github.com/P-N-S-U/backend/internal/modules/operator"
	"github.com/P-N-S-U/backend/internal/modules/order"
	"github.com/P-N-S-U/backend/internal/modules/producer"
	"github.com/P-N-S-U/backend/internal/platform/config"
	"github.com/P-N-S-U/backend/internal/platform/httputil"
	"github.com/P-N-S-U/backend/internal/platform/metrics"
	"github.com/P-N-S-U/backend/internal/platform/render"
	"github.com/P-N-S-U/backend/internal/platform/storage"
)

type repositories struct {
	operators operator.Repository
	buyers    buyer.Repository
	producers producer.Repository
	listings  listing.Repository
	orders    order.Repository
}

func postgresRepositories(db *sql.DB) repositories {
	return repositories{
		operators: operator.NewPostgresRepository(db),
		buyers:    buyer.NewPostgresRepository(db),
		producers: producer.NewPostgresRepository(db),
		listings:  listing.NewPostgresRepository(db),
		orders:    order.NewPostgresRepository(db),
	}
}

func memoryRepositories() repositories {
	return repositories{
		operators: operator.NewInMemoryRepository(),
		buyers:    buyer.NewInMemoryRepository(),
		producers: producer.NewInMemoryRepository(),
		listings:  listing.NewInMemoryRepository(),
		orders:    order.NewInMemoryRepository(),
	}
}

// newRouter wires every module onto one chi router.
func newRouter(cfg config.Config, repos repositories, store *storage.Disk, logger *slog.Logger, reg *prometheus.Registry) http.Handler {
	m := metrics.New(reg)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	router.Use(httputil.RequestLogger(logger))

	// ── Identity & access ───────────────────────────────────
	codec := auth.NewCodec(cfg.JWTSecret)
	hasher := auth.NewBcryptHasher(0)
	resolver := identity.NewResolver(
		operator.NewIdentitySource(repos.operators),
		buyer.NewIdentitySource(repos.buyers),
		producer.NewIdentitySource(repos.producers),
	)
	guard := access.NewGuard(codec, resolver, logger, m)

	// ── Catalog ─────────────────────────────────────────────
	listingService := listing.NewService(repos.listings)
	listing.NewHandler(listingService, guard).RegisterRoutes(router)

	// ── Accounts ────────────────────────────────────────────
	buyerService := buyer.NewService(repos.buyers, hasher, codec, listingService, m)
	buyer.NewHandler(buyerService, guard).RegisterRoutes(router)

	producerService := producer.NewService(repos.producers, hasher, codec, store, m)
	producer.NewHandler(producerService, guard).RegisterRoutes(router)

	// ── Certification ───────────────────────────────────────
	workflow := certification.NewWorkflow(
		repos.producers,
		render.NewCertificateRenderer(store, render.DefaultIssuer),
		render.NewQRRenderer(store),
		cfg.PublicBaseURL,
		logger,
		m,
	)
	operatorService := operator.NewService(repos.operators, hasher, codec, cfg.OperatorEmail, workflow, repos.producers, m)
	operator.NewHandler(operatorService, guard).RegisterRoutes(router)

	// ── Orders ──────────────────────────────────────────────
	policy := order.Permissive()
	if cfg.StrictOrderTransitions {
		policy = order.Strict()
	}
	orderService := order.NewService(repos.orders, listingService, repos.buyers,
		render.NewInvoiceRenderer(render.DefaultIssuer),
		order.Options{Policy: policy, RestrictInvoices: cfg.RestrictInvoiceAccess}, m)
	order.NewHandler(orderService, guard).RegisterRoutes(router)

	// ── Artifacts & ops ─────────────────────────────────────
	for _, prefix := range []string{"certificates", "qrcodes"} {
		fs := http.StripPrefix("/"+prefix+"/", http.FileServer(http.Dir(store.Dir(prefix))))
		router.Handle("/"+prefix+"/*", fs)
	}
	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		httputil.Respond(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	router.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	return router
}
