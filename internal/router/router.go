package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/oselz/watch-catalog-api/internal/api/auth"
	"github.com/oselz/watch-catalog-api/internal/api/brand"
	"github.com/oselz/watch-catalog-api/internal/api/country"
	"github.com/oselz/watch-catalog-api/internal/api/currency"
	"github.com/oselz/watch-catalog-api/internal/api/user"
	"github.com/oselz/watch-catalog-api/internal/api/watch"
)

// Config carries the handlers and the authentication guard the router mounts.
type Config struct {
	AuthenticateMiddleware func(next http.Handler) http.Handler

	AuthHandler     *auth.Handler
	UserHandler     *user.Handler
	CountryHandler  *country.Handler
	CurrencyHandler *currency.Handler
	BrandHandler    *brand.Handler
	WatchHandler    *watch.Handler
}

// New mounts the API routes. Registration, login and the public listings stay
// outside the guard; everything else requires a valid access token.
func New(cfg Config) chi.Router {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/ping", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"message":"pong"}`))
	})

	r.Route("/auth/v1", func(r chi.Router) {
		r.Post("/register", cfg.AuthHandler.Register)
		r.Post("/login", cfg.AuthHandler.Login)

		r.Group(func(r chi.Router) {
			r.Use(cfg.AuthenticateMiddleware)
			r.Get("/profile", cfg.AuthHandler.GetProfile)
		})
	})

	r.Route("/users/v1", func(r chi.Router) {
		r.Get("/", cfg.UserHandler.GetAllUsers)

		r.Group(func(r chi.Router) {
			r.Use(cfg.AuthenticateMiddleware)
			r.Put("/update", cfg.UserHandler.UpdateUser)
			r.Get("/{id}", cfg.UserHandler.GetUserByID)
		})
	})

	r.Route("/countries/v1", func(r chi.Router) {
		r.Use(cfg.AuthenticateMiddleware)
		r.Get("/", cfg.CountryHandler.GetCountries)
		r.Post("/", cfg.CountryHandler.CreateCountry)
		r.Get("/{id}", cfg.CountryHandler.GetCountryByID)
	})

	r.Route("/currencies/v1", func(r chi.Router) {
		r.Use(cfg.AuthenticateMiddleware)
		r.Get("/", cfg.CurrencyHandler.GetCurrencies)
		r.Post("/", cfg.CurrencyHandler.CreateCurrency)
		r.Get("/{id}", cfg.CurrencyHandler.GetCurrencyByID)
		r.Put("/{id}", cfg.CurrencyHandler.UpdateCurrency)
	})

	r.Route("/brands/v1", func(r chi.Router) {
		r.Use(cfg.AuthenticateMiddleware)
		r.Get("/", cfg.BrandHandler.GetBrands)
		r.Post("/", cfg.BrandHandler.CreateBrand)
		r.Get("/{id}", cfg.BrandHandler.GetBrandByID)
		r.Put("/{id}", cfg.BrandHandler.UpdateBrand)
	})

	r.Route("/watches/v1", func(r chi.Router) {
		r.Use(cfg.AuthenticateMiddleware)
		r.Get("/", cfg.WatchHandler.GetWatches)
		r.Post("/", cfg.WatchHandler.CreateWatch)
		// /search must be registered before /{id} so chi does not treat the
		// literal "search" as an id.
		r.Get("/search", cfg.WatchHandler.SearchWatches)
		r.Get("/{id}", cfg.WatchHandler.GetWatchByID)
		r.Put("/{id}", cfg.WatchHandler.UpdateWatch)
	})

	return r
}
