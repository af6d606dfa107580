package router

import (
	"log/slog"
	"net/http"

	"github.com/fastsales/api/internal/config"
	"github.com/fastsales/api/internal/database"
	"github.com/fastsales/api/internal/daterange"
	"github.com/fastsales/api/internal/events"
	"github.com/fastsales/api/internal/handler"
	mw "github.com/fastsales/api/internal/middleware"
	"github.com/fastsales/api/internal/service"
	"github.com/fastsales/api/internal/ws"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Deps carries the long-lived collaborators the routes are built from.
type Deps struct {
	Pool     *pgxpool.Pool
	Hub      *ws.Hub
	Dates    *daterange.Resolver
	Reports  *service.ReportService
	Notifier events.Notifier
}

// New creates a Chi router with all application routes wired up.
// Everything under /api requires a bearer token.
func New(cfg *config.Config, deps Deps) chi.Router {
	r := chi.NewRouter()

	// Standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300, // 5 minutes
	}))

	if cfg.RateLimitRPS > 0 {
		r.Use(mw.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst))
	}

	// Public routes
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok","version":"1.0.0"}`))
	})

	// WebSocket route (handles auth internally via query param)
	r.Get("/ws/ledger", func(w http.ResponseWriter, r *http.Request) {
		ws.ServeWS(deps.Hub, cfg.JWTSecret, w, r)
	})

	queries := database.New(deps.Pool)
	newSaleStore := func(db database.DBTX) service.SaleStore {
		return database.New(db)
	}
	saleService := service.NewSaleService(deps.Pool, queries, newSaleStore, deps.Notifier)

	r.Route("/api", func(r chi.Router) {
		r.Use(mw.Authenticate(cfg.JWTSecret))

		profileHandler := handler.NewProfileHandler(queries)
		profileHandler.RegisterRoutes(r)

		// Multi-line ledger
		transactionHandler := handler.NewTransactionHandler(saleService, queries, deps.Dates)
		r.Route("/sales_transactions", transactionHandler.RegisterRoutes)

		// Flat line ledger; stats is mounted first so it is not read as an id
		reportsHandler := handler.NewReportsHandler(deps.Reports, deps.Dates)
		saleItemHandler := handler.NewSaleItemHandler(saleService, queries, deps.Dates)
		r.Route("/sales", func(r chi.Router) {
			r.Route("/stats", reportsHandler.RegisterRoutes)
			saleItemHandler.RegisterRoutes(r)
		})

		staffHandler := handler.NewStaffHandler(deps.Reports, deps.Dates)
		r.Route("/staff", staffHandler.RegisterRoutes)

		// Catalog
		productHandler := handler.NewProductHandler(queries)
		r.Route("/products", productHandler.RegisterRoutes)

		customerHandler := handler.NewCustomerHandler(queries)
		r.Route("/customers", customerHandler.RegisterRoutes)
	})

	slog.Info("router initialized")
	return r
}
