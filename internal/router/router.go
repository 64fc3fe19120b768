package router

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/jmoiron/sqlx"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "catbox/docs"
	mem "catbox/internal/adapters/storage/memory"
	pg "catbox/internal/adapters/storage/postgres"
	"catbox/internal/domain/cats"
	"catbox/internal/domain/notifications"
	"catbox/internal/domain/nutrition"
	"catbox/internal/domain/orders"
	"catbox/internal/domain/plans"
	"catbox/internal/domain/profiles"
	"catbox/internal/domain/subscriptions"
	"catbox/internal/middleware"
	"catbox/internal/platform/config"
	"catbox/internal/platform/logger"
	"catbox/internal/ports/auth"
)

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sqlx.DB

	Config *config.Config       // nil => config.Default()
	Logger logger.Logger        // nil => Nop
	Engine *nutrition.Engine    // nil => nutrition.Default()
	Sender notifications.Sender // nil => links click-to-chat
}

// App expone el handler HTTP y los servicios que usa el scheduler.
type App struct {
	Handler       http.Handler
	Subscriptions *subscriptions.Service
	Orders        *orders.Service
}

type repos struct {
	profiles      profiles.Repository
	cats          cats.Repository
	plans         plans.Repository
	orders        orders.Repository
	subscriptions subscriptions.Repository
	notifications notifications.Repository
}

func New(opts Options) *App {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	engine := opts.Engine
	if engine == nil {
		engine = nutrition.Default()
	}

	var rp repos
	if opts.DB != nil {
		rp = repos{
			profiles:      pg.NewProfileRepo(opts.DB),
			cats:          pg.NewCatRepo(opts.DB),
			plans:         pg.NewPlanRepo(opts.DB),
			orders:        pg.NewOrderRepo(opts.DB),
			subscriptions: pg.NewSubscriptionRepo(opts.DB),
			notifications: pg.NewNotificationRepo(opts.DB),
		}
	} else {
		rp = repos{
			profiles:      mem.NewProfileRepo(),
			cats:          mem.NewCatRepo(),
			plans:         mem.NewPlanRepo(plans.Seed(cfg.Store.Currency, time.Now().UTC())...),
			orders:        mem.NewOrderRepo(),
			subscriptions: mem.NewSubscriptionRepo(),
			notifications: mem.NewNotificationRepo(),
		}
	}

	// Services por módulo
	profilesSvc := profiles.NewService(rp.profiles, cfg.Store.AdminEmail)
	catsSvc := cats.NewService(rp.cats, engine)
	plansSvc := plans.NewService(rp.plans, cfg.Store.Currency)
	subsSvc := subscriptions.NewService(rp.subscriptions, plansSvc, log)
	notifSvc := notifications.NewService(rp.notifications, opts.Sender, notifications.Settings{
		BrandName:     cfg.Store.BrandName,
		AdminWhatsApp: cfg.Store.AdminWhatsApp,
		BaseURL:       cfg.Store.BaseURL,
		CitiesServed:  cfg.Store.CitiesServed,
		Locale:        cfg.Nutrition.Locale,
	}, log)
	ordersSvc := orders.NewService(orders.Deps{
		Repo:          rp.orders,
		Profiles:      profilesSvc,
		Cats:          catsSvc,
		Plans:         plansSvc,
		Subscriptions: subsSvc,
		Notifier:      notifSvc,
		Engine:        engine,
		CitiesServed:  cfg.Store.CitiesServed,
		Log:           log,
	})
	subsSvc.SetOrderPlacer(ordersSvc)

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(log))
	r.Use(chimw.Recoverer)

	r.Use(middleware.AuthContext(opts.AuthVerifier))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/store", storeHandler(cfg.Store))
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	admin := middleware.RequireAdmin(profilesSvc)

	// Rutas por módulo
	nutrition.RegisterRoutes(r, engine)
	profiles.RegisterRoutes(r, profilesSvc)
	cats.RegisterRoutes(r, catsSvc)
	plans.RegisterRoutes(r, plansSvc, admin)
	subscriptions.RegisterRoutes(r, subsSvc)
	orders.RegisterRoutes(r, ordersSvc, profilesSvc, func(or chi.Router) {
		notifications.RegisterRoutes(or, notifSvc, admin)
	})

	return &App{
		Handler:       r,
		Subscriptions: subsSvc,
		Orders:        ordersSvc,
	}
}

// NewRouter devuelve solo el handler HTTP.
func NewRouter(opts Options) http.Handler {
	return New(opts).Handler
}

type storeResponse struct {
	BrandName    string   `json:"brand_name"`
	Currency     string   `json:"currency"`
	CitiesServed []string `json:"cities_served"`
}

// storeHandler godoc
// @Summary Datos públicos de la tienda
// @Description Marca, moneda y ciudades con entrega. Lo usa el front antes del checkout.
// @Tags store
// @Produce json
// @Success 200 {object} storeResponse
// @Router /store [get]
func storeHandler(store config.StoreConfig) http.HandlerFunc {
	resp := storeResponse{
		BrandName:    store.BrandName,
		Currency:     store.Currency,
		CitiesServed: store.CitiesServed,
	}
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(resp)
	}
}
