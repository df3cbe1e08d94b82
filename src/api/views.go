package api

import (
	"net/http"
	"time"

	handlers "cryptoportfolio/src/api/handlers"
	"cryptoportfolio/src/services"
	"cryptoportfolio/src/utils"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
)

type Server struct {
	Router         *chi.Mux
	Handler        *handlers.Handler
	AllowedOrigins []string
}

func NewServer(handler *handlers.Handler, allowedOrigins []string) *Server {
	server := &Server{
		Router:         chi.NewRouter(),
		Handler:        handler,
		AllowedOrigins: allowedOrigins,
	}
	server.InitRoutes()
	return server
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}

func (s *Server) InitRoutes() {
	s.Router.Use(middleware.RequestID)
	s.Router.Use(middleware.Recoverer)
	s.Router.Use(utils.RequestLogger(s.Handler.Logger))
	s.Router.Use(cors.New(cors.Options{
		AllowedOrigins: s.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders: []string{"Content-Type"},
		ExposedHeaders: []string{"Content-Disposition"},
	}).Handler)

	s.Router.Get("/alive", handlers.Healthcheck)

	s.Router.Route("/api/users", func(r chi.Router) {
		r.Post("/", s.Handler.CreateUser)
		r.Get("/", s.Handler.GetAllUsers)
		r.Get("/name/{name}", s.Handler.GetUserByName)
		r.Get("/email/{email}", s.Handler.GetUserByEmail)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.Handler.GetUserByID)
			r.Put("/", s.Handler.UpdateUser)
			r.Delete("/", s.Handler.DeleteUser)

			r.Get("/holdings", s.Handler.GetHoldings)
			r.Post("/holdings", s.Handler.AddHolding)
			r.Get("/holdings/{asset}", s.Handler.GetHolding)
			r.Delete("/holdings/{asset}", s.Handler.RemoveHolding)
			r.Get("/holdings/{asset}/value", s.Handler.GetHoldingValue)

			r.Get("/valuation", s.Handler.GetValuation)
			r.Get("/valuation/export", s.Handler.ExportValuation)
			r.Get("/snapshots", s.Handler.GetSnapshots)
		})
	})

	s.Router.Route("/api/assets/{symbol}", func(r chi.Router) {
		r.Get("/price", s.Handler.GetAssetPrice)
		r.Get("/market_cap", s.Handler.GetAssetMetric(services.MetricMarketCap))
		r.Get("/total_volume", s.Handler.GetAssetMetric(services.MetricTotalVolume))
		r.Get("/max_supply", s.Handler.GetAssetMetric(services.MetricMaxSupply))
		r.Get("/quote", s.Handler.GetAssetQuote)
		r.Get("/history", s.Handler.GetAssetHistory)
		r.Get("/valuation", s.Handler.GetAssetValuation)
	})

	s.Router.Route("/api/analytics/{symbol}", func(r chi.Router) {
		r.Get("/rolling_mean", s.Handler.GetRollingMean)
		r.Get("/moving_volume", s.Handler.GetMovingVolume)
		r.Get("/volatility", s.Handler.GetVolatility)
		r.Get("/sharpe_ratio", s.Handler.GetSharpeRatio)
	})
}

func NewHTTPServer(server *Server, port string) *http.Server {
	httpServer := &http.Server{
		Addr:         ":" + port,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		Handler:      server,
	}
	return httpServer
}
