package worker

import (
	"net/http"
	"time"

	"cryptoportfolio/src/utils"
	handlers "cryptoportfolio/src/worker/handlers"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type Server struct {
	Router  *chi.Mux
	Handler *handlers.Handler
}

func NewServer(handler *handlers.Handler) *Server {
	server := &Server{
		Router:  chi.NewRouter(),
		Handler: handler,
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

	s.Router.Get("/alive", handlers.Healthcheck)
	s.Router.Route("/api/snapshots", func(r chi.Router) {
		r.Post("/run", s.Handler.RunSnapshots)
		r.Get("/jobs", s.Handler.GetJobs)
	})
}

func NewHTTPServer(server *Server, port string) *http.Server {
	httpServer := &http.Server{
		Addr:         ":" + port,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 3 * time.Minute,
		Handler:      server,
	}
	return httpServer
}
