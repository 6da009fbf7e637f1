package api

import (
	"net/http"
	"time"

	"cryptotracker/src/api/controllers"
	"cryptotracker/src/api/handlers"
	"cryptotracker/src/clients/coingecko"
	"cryptotracker/src/config"
	"cryptotracker/src/repositories"
	redis_utils "cryptotracker/src/utils/redis"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
)

type Server struct {
	Router    *chi.Mux
	Handler   *handlers.Handler
	TokenAuth *jwtauth.JWTAuth
	cors      *cors.Cors
}

// NewServer wires the repositories, market-data client and controllers onto
// the router. The redis handler is optional; without it price lookups fall
// back to uncached requests.
func NewServer(cfg *config.Config, db *pgxpool.Pool, redisHandler *redis_utils.RedisHandler, logger *logrus.Logger) *Server {
	tokenAuth := jwtauth.New("HS256", []byte(cfg.Auth.JWTSecret), nil)
	tokenTTL := time.Duration(cfg.Auth.TokenTTLMinutes) * time.Minute

	coinGeckoClient := coingecko.NewClient(cfg, redisHandler)

	holdingRepo := repositories.NewHoldingRepository(db)
	transactionRepo := repositories.NewTransactionRepository(db)
	userRepo := repositories.NewUserRepository(db)
	watchlistRepo := repositories.NewWatchlistRepository(db)

	handler := &handlers.Handler{
		UsersController:        controllers.NewUsersController(userRepo, tokenAuth, tokenTTL),
		PortfolioController:    controllers.NewPortfolioController(db, holdingRepo, transactionRepo, userRepo, coinGeckoClient),
		TransactionsController: controllers.NewTransactionsController(transactionRepo),
		CoinsController:        controllers.NewCoinsController(coinGeckoClient),
		WatchlistController:    controllers.NewWatchlistController(watchlistRepo),
		Logger:                 logger,
		CookieTTL:              tokenTTL,
		CookieSecure:           cfg.Service.SecureCookies,
	}

	server := &Server{
		Router:    chi.NewRouter(),
		Handler:   handler,
		TokenAuth: tokenAuth,
		cors: cors.New(cors.Options{
			AllowedOrigins:   cfg.Service.AllowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			AllowCredentials: true,
		}),
	}
	server.InitRoutes()
	return server
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.cors.Handler(s.Router).ServeHTTP(w, r)
}

func (s *Server) InitRoutes() {
	s.Router.Get("/alive", handlers.Healthcheck)

	s.Router.Route("/api/auth", func(r chi.Router) {
		r.Post("/register", s.Handler.Register)
		r.Post("/login", s.Handler.Login)
		r.Post("/logout", s.Handler.Logout)

		r.Group(func(r chi.Router) {
			r.Use(handlers.Verifier(s.TokenAuth))
			r.Get("/me", s.Handler.Me)
		})
	})

	s.Router.Route("/api/coins", func(r chi.Router) {
		r.Get("/markets", s.Handler.GetCoinsMarkets)
		r.Get("/search", s.Handler.SearchCoins)
		r.Get("/trending", s.Handler.GetTrendingCoins)
		r.Get("/currencies", s.Handler.GetSupportedCurrencies)
		r.Get("/{id}", s.Handler.GetCoinDetails)
		r.Get("/{id}/price", s.Handler.GetCoinPrice)
	})

	// Everything below requires a session.
	s.Router.Group(func(r chi.Router) {
		r.Use(handlers.Verifier(s.TokenAuth))
		r.Use(handlers.Authenticator)

		r.Route("/api/portfolio", func(r chi.Router) {
			r.Get("/", s.Handler.GetPortfolio)
			r.Post("/", s.Handler.CreateHolding)
			r.Put("/", s.Handler.UpdateHolding)
			r.Post("/delete", s.Handler.DeleteHolding)
			r.Post("/sell", s.Handler.SellHolding)
			r.Post("/swap", s.Handler.SwapHolding)
			r.Get("/valuation", s.Handler.GetPortfolioValuation)
		})

		r.Route("/api/transactions", func(r chi.Router) {
			r.Get("/", s.Handler.GetTransactions)
			r.Post("/", s.Handler.CreateTransaction)
		})

		r.Route("/api/watchlist", func(r chi.Router) {
			r.Get("/", s.Handler.GetWatchlist)
			r.Post("/", s.Handler.AddToWatchlist)
			r.Delete("/{id}", s.Handler.RemoveFromWatchlist)
		})

		r.Route("/api/users", func(r chi.Router) {
			r.Put("/password", s.Handler.UpdatePassword)
			r.Put("/currency", s.Handler.UpdateCurrency)
			r.Put("/language", s.Handler.UpdateLanguage)

			r.Group(func(r chi.Router) {
				r.Use(handlers.AdminOnly)
				r.Get("/", s.Handler.ListUsers)
				r.Get("/{id}", s.Handler.GetUserByID)
				r.Put("/{id}", s.Handler.UpdateUser)
				r.Put("/{id}/disable", s.Handler.DisableUser)
				r.Delete("/{id}", s.Handler.DeleteUser)
			})
		})
	})
}

func NewHTTPServer(cfg *config.Config, server *Server) *http.Server {
	return &http.Server{
		Addr:         ":" + cfg.Service.Port,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		Handler:      server,
	}
}
