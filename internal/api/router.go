package api

import (
	"encoding/json"
	"net/http"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/halden-dev/shoptrack/internal/api/handlers"
	mw "github.com/halden-dev/shoptrack/internal/api/middleware"
	"github.com/halden-dev/shoptrack/internal/config"
	"github.com/halden-dev/shoptrack/internal/domain"
	"github.com/halden-dev/shoptrack/internal/service"
	"github.com/halden-dev/shoptrack/internal/store"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// App holds the router plus process-level counters for /metrics.
type App struct {
	Router       *chi.Mux
	startTime    time.Time
	requestCount atomic.Int64
	errorCount   atomic.Int64
}

// NewApp wires stores, services, and handlers. The session store is
// injected because its backend (postgres or redis) is chosen in main.
func NewApp(db *pgxpool.Pool, sessions domain.SessionStore, logger *zap.Logger) *App {
	// Stores
	orgStore := store.NewOrgStore(db)
	membershipStore := store.NewMembershipStore(db)
	limitsStore := store.NewLimitsStore(db)
	customerStore := store.NewCustomerStore(db)
	vehicleStore := store.NewVehicleStore(db)
	fleetStore := store.NewFleetStore(db)
	workOrderStore := store.NewWorkOrderStore(db)

	// Services
	resolver := service.NewTenantResolver(sessions, membershipStore, logger)
	guard := service.NewQuotaGuard(limitsStore, vehicleStore, fleetStore, customerStore)
	quotaSvc := service.NewQuotaService(limitsStore)
	usageSvc := service.NewUsageService(vehicleStore, fleetStore, customerStore)
	orgSvc := service.NewOrgService(orgStore, membershipStore, sessions)
	customerSvc := service.NewCustomerService(customerStore, guard)
	vehicleSvc := service.NewVehicleService(vehicleStore, guard)
	fleetSvc := service.NewFleetService(fleetStore, guard)
	workOrderSvc := service.NewWorkOrderService(workOrderStore, vehicleStore, customerStore)

	// Handlers
	orgHandler := handlers.NewOrgHandler(orgSvc)
	limitsHandler := handlers.NewLimitsHandler(quotaSvc, usageSvc)
	customerHandler := handlers.NewCustomerHandler(customerSvc)
	vehicleHandler := handlers.NewVehicleHandler(vehicleSvc)
	fleetHandler := handlers.NewFleetHandler(fleetSvc)
	workOrderHandler := handlers.NewWorkOrderHandler(workOrderSvc)

	r := chi.NewRouter()

	app := &App{
		Router:    r,
		startTime: time.Now(),
	}

	metricsCollector := mw.NewMetricsCollector(&app.requestCount, &app.errorCount)

	// Global middleware (order matters)
	r.Use(mw.RequestID)
	r.Use(middleware.RealIP)
	r.Use(metricsCollector.Middleware)
	r.Use(mw.Logging(logger))
	r.Use(middleware.Recoverer)
	r.Use(mw.RateLimit(config.RateLimitRPS(), config.RateLimitBurst()))

	// Health and metrics (no auth)
	r.Get("/health", healthHandler(db))
	r.Get("/metrics", app.metricsHandler())

	// Authenticated routes
	r.Route("/v1", func(r chi.Router) {
		r.Use(mw.SessionAuth(sessions))

		// Organization management works without an active org: these
		// are the endpoints a user with zero or many orgs needs to
		// get one selected in the first place.
		r.Route("/orgs", func(r chi.Router) {
			r.Post("/", orgHandler.Create)
			r.Get("/", orgHandler.ListMine)
			r.Post("/select", orgHandler.Select)
		})

		// Org-scoped routes
		r.Group(func(r chi.Router) {
			r.Use(mw.RequireOrg(resolver))

			r.Route("/org", func(r chi.Router) {
				r.Get("/limits", limitsHandler.Get)
				r.Put("/limits", limitsHandler.Update)
				r.Get("/usage", limitsHandler.Usage)
			})

			r.Route("/customers", func(r chi.Router) {
				r.Post("/", customerHandler.Create)
				r.Get("/", customerHandler.List)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", customerHandler.GetByID)
					r.Put("/", customerHandler.Update)
					r.Delete("/", customerHandler.Delete)
				})
			})

			r.Route("/vehicles", func(r chi.Router) {
				r.Post("/", vehicleHandler.Create)
				r.Get("/", vehicleHandler.List)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", vehicleHandler.GetByID)
					r.Put("/", vehicleHandler.Update)
					r.Delete("/", vehicleHandler.Delete)
				})
			})

			r.Route("/fleets", func(r chi.Router) {
				r.Post("/", fleetHandler.Create)
				r.Get("/", fleetHandler.List)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", fleetHandler.GetByID)
					r.Put("/", fleetHandler.Update)
					r.Delete("/", fleetHandler.Delete)
				})
			})

			r.Route("/work-orders", func(r chi.Router) {
				r.Post("/", workOrderHandler.Create)
				r.Get("/", workOrderHandler.List)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", workOrderHandler.GetByID)
					r.Put("/status", workOrderHandler.UpdateStatus)
					r.Delete("/", workOrderHandler.Delete)
				})
			})
		})
	})

	return app
}

func healthHandler(db *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := db.Ping(r.Context()); err != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			_ = json.NewEncoder(w).Encode(map[string]string{"status": "error", "error": err.Error()})
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}
}

func (app *App) metricsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var memStats runtime.MemStats
		runtime.ReadMemStats(&memStats)

		uptime := time.Since(app.startTime)

		response := map[string]any{
			"uptime_seconds": uptime.Seconds(),
			"uptime_human":   uptime.Round(time.Second).String(),
			"request_count":  app.requestCount.Load(),
			"error_count":    app.errorCount.Load(),
			"goroutines":     runtime.NumGoroutine(),
			"memory": map[string]any{
				"alloc_mb":       float64(memStats.Alloc) / 1024 / 1024,
				"total_alloc_mb": float64(memStats.TotalAlloc) / 1024 / 1024,
				"sys_mb":         float64(memStats.Sys) / 1024 / 1024,
				"num_gc":         memStats.NumGC,
			},
			"go_version": runtime.Version(),
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(response)
	}
}

// Ensure stores satisfy the domain interfaces at compile time.
var (
	_ domain.OrgStore        = (*store.OrgStore)(nil)
	_ domain.MembershipStore = (*store.MembershipStore)(nil)
	_ domain.SessionStore    = (*store.SessionStore)(nil)
	_ domain.SessionStore    = (*store.RedisSessionStore)(nil)
	_ domain.LimitsStore     = (*store.LimitsStore)(nil)
	_ domain.CustomerStore   = (*store.CustomerStore)(nil)
	_ domain.VehicleStore    = (*store.VehicleStore)(nil)
	_ domain.FleetStore      = (*store.FleetStore)(nil)
	_ domain.WorkOrderStore  = (*store.WorkOrderStore)(nil)
)
