package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/go-chi/render"

	api "github.com/re-hustle/rehustle-api/internal/api/http"
	authmw "github.com/re-hustle/rehustle-api/internal/auth/middleware"
	"github.com/re-hustle/rehustle-api/internal/billing"
	"github.com/re-hustle/rehustle-api/internal/config"
	"github.com/re-hustle/rehustle-api/internal/crm"
	"github.com/re-hustle/rehustle-api/internal/db"
	"github.com/re-hustle/rehustle-api/internal/deal"
	"github.com/re-hustle/rehustle-api/internal/redisx"
	"github.com/re-hustle/rehustle-api/internal/scoring"
	"github.com/re-hustle/rehustle-api/internal/user"
)

func main() {
	cfg := config.FromEnv()

	// --- DB ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		log.Fatalf("db open failed: %v", err)
	}

	// --- Redis (optional: replay guard + entitlement cache) ---
	var rdb *redisx.Client
	if cfg.RedisAddr != "" {
		rdb = redisx.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err := rdb.Ping(ctx); err != nil {
			log.Fatalf("redis ping failed: %v", err)
		}
	}

	// --- Services ---
	users := user.NewSQLStore(dbh)
	deals := deal.NewSQLStore(dbh)
	syncLog := crm.NewSyncLog(dbh)
	syncer := crm.NewSyncer(crm.Formatter{}, syncLog)
	dealSvc := deal.NewService(scoring.NewEngine(), deals, users, syncer)

	authSvc := authmw.NewAuthService(cfg.AuthHMACSecret)
	ent := billing.NewEntitlement(users, cfg.TrialDays, rdb)
	stripeSvc := billing.NewStripe(billing.StripeConfig{
		SecretKey:     cfg.StripeSecretKey,
		WebhookSecret: cfg.StripeWebhookSecret,
		PriceCents:    cfg.SubscriptionCents,
	}, users, rdb)

	// --- Router ---
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(httprate.LimitByIP(cfg.RateLimitPerMinute, 1*time.Minute))
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "Stripe-Signature"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Public surface
	r.Post("/auth/register", api.RegisterHandler(users))
	r.Post("/auth/login", api.LoginHandler(users, authSvc))
	r.Post("/webhooks/stripe", stripeSvc.WebhookHandler())
	r.Get("/healthz", api.Healthz)
	r.Get("/readyz", api.Healthz)
	r.Get("/db-health", api.DBHealthHandler(dbh))

	// Authenticated surface
	r.Group(func(pr chi.Router) {
		pr.Use(authmw.JWTMiddleware(authSvc))

		pr.Get("/api/account/settings", api.GetSettingsHandler(users))
		pr.Put("/api/account/settings", api.UpdateSettingsHandler(users))

		pr.Post("/api/billing/checkout-session", api.CheckoutSessionHandler(stripeSvc, users, cfg.PublicURL))
		pr.Post("/api/billing/verify", api.VerifySubscriptionHandler(stripeSvc))
		pr.Get("/api/billing/access", api.AccessStatusHandler(ent))

		// Analyzer and deal records sit behind the trial/subscription gate.
		pr.Group(func(gr chi.Router) {
			gr.Use(ent.Middleware)

			gr.Post("/api/analyze", api.AnalyzeHandler(dealSvc))
			gr.Post("/api/deals", api.CreateDealHandler(dealSvc))
			gr.Get("/api/deals", api.ListDealsHandler(dealSvc))
			gr.Get("/api/deals/{dealID}", api.GetDealHandler(dealSvc))
			gr.Put("/api/deals/{dealID}", api.UpdateDealHandler(dealSvc))
			gr.Delete("/api/deals/{dealID}", api.DeleteDealHandler(dealSvc))
			gr.Post("/api/deals/{dealID}/sync", api.SyncDealHandler(dealSvc))
			gr.Get("/api/deals/{dealID}/sync", api.SyncHistoryHandler(dealSvc, syncLog))
		})
	})

	log.Printf("listening on %s (db=%s)", cfg.HTTPAddr, cfg.DBDriver)
	log.Fatal(http.ListenAndServe(cfg.HTTPAddr, r))
}
