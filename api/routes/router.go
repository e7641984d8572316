package routes

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/wellport/wellport-backend/api/controllers"
	pharmacycontrollers "github.com/wellport/wellport-backend/api/controllers/pharmacy"
	"github.com/wellport/wellport-backend/api/middleware"
	"github.com/wellport/wellport-backend/internal/addresses"
	"github.com/wellport/wellport-backend/internal/auth"
	"github.com/wellport/wellport-backend/internal/dependants"
	"github.com/wellport/wellport-backend/internal/gym"
	pharmacysvc "github.com/wellport/wellport-backend/internal/pharmacy"
	"github.com/wellport/wellport-backend/internal/profile"
	"github.com/wellport/wellport-backend/pkg/auth/session"
	"github.com/wellport/wellport-backend/pkg/config"
	"github.com/wellport/wellport-backend/pkg/logger"
)

type pinger interface {
	Ping(ctx context.Context) error
}

// Deps bundles everything the router mounts.
type Deps struct {
	Config   *config.Config
	Logger   *logger.Logger
	DB       pinger
	Redis    pinger
	Sessions session.AccessSessionChecker
	Registry prometheus.Gatherer

	Auth       auth.Service
	Profile    profile.Service
	Addresses  addresses.Service
	Dependants dependants.Service
	Gym        gym.Service
	Pharmacy   pharmacysvc.Service
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.DB, deps.Redis))
	})

	if deps.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/public", func(r chi.Router) {
		r.Get("/ping", controllers.PublicPing())
	})

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Post("/register", controllers.AuthRegister(deps.Auth, logg))
		r.Post("/login", controllers.AuthLogin(deps.Auth, logg))
		r.Post("/refresh", controllers.AuthRefresh(deps.Auth, logg))
		r.Post("/logout", controllers.AuthLogout(deps.Auth, cfg.JWT, logg))
	})

	// The catalog is browsable and the cart usable before sign-in; guests share
	// one cart bucket until they authenticate.
	r.Route("/api/v1/pharmacy", func(r chi.Router) {
		r.Use(middleware.OptionalAuth(cfg.JWT, deps.Sessions, logg))

		r.Get("/products", pharmacycontrollers.CatalogSearch(deps.Pharmacy, logg))

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", pharmacycontrollers.CartView(deps.Pharmacy, logg))
			r.Post("/items", pharmacycontrollers.CartAdd(deps.Pharmacy, logg))
			r.Post("/items/decrement", pharmacycontrollers.CartDecrement(deps.Pharmacy, logg))
			r.Post("/items/remove", pharmacycontrollers.CartRemove(deps.Pharmacy, logg))
			r.Delete("/", pharmacycontrollers.CartClear(deps.Pharmacy, logg))
			r.Post("/reconcile", pharmacycontrollers.CartReconcile(deps.Pharmacy, deps.Profile, logg))
			r.Get("/breakdown", pharmacycontrollers.CartBreakdown(deps.Pharmacy, logg))
		})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, deps.Sessions, logg))

		r.Get("/ping", controllers.PrivatePing())

		r.Route("/profile", func(r chi.Router) {
			r.Get("/", controllers.ProfileGet(deps.Profile, logg))
			r.Patch("/", controllers.ProfileUpdate(deps.Profile, logg))
		})

		r.Route("/addresses", func(r chi.Router) {
			r.Get("/", controllers.AddressList(deps.Addresses, logg))
			r.Post("/", controllers.AddressCreate(deps.Addresses, logg))
			r.Put("/{addressID}", controllers.AddressUpdate(deps.Addresses, logg))
			r.Delete("/{addressID}", controllers.AddressDelete(deps.Addresses, logg))
		})

		r.Route("/dependants", func(r chi.Router) {
			r.Get("/", controllers.DependantList(deps.Dependants, logg))
			r.Post("/", controllers.DependantCreate(deps.Dependants, logg))
			r.Delete("/{dependantID}", controllers.DependantDelete(deps.Dependants, logg))
		})

		r.Route("/gym", func(r chi.Router) {
			r.Get("/plans", controllers.GymPlans(deps.Gym, logg))
			r.Post("/memberships", controllers.GymPurchase(deps.Gym, logg))
			r.Get("/memberships", controllers.GymMemberships(deps.Gym, logg))
		})

		r.Route("/pharmacy", func(r chi.Router) {
			r.Route("/orders", func(r chi.Router) {
				r.Post("/", pharmacycontrollers.OrderSubmit(deps.Pharmacy, logg))
				r.Get("/", pharmacycontrollers.OrderHistory(deps.Pharmacy, logg))
			})

			r.Route("/coupons", func(r chi.Router) {
				r.Post("/offline", pharmacycontrollers.OfflineCouponGenerate(deps.Pharmacy, logg))
				r.Get("/offline", pharmacycontrollers.OfflineCouponList(deps.Pharmacy, logg))
			})
		})
	})

	return r
}
