package http

import (
	"net/http"

	"github.com/fbaudier/interclubs/internal/championship"
	"github.com/fbaudier/interclubs/internal/club"
	"github.com/fbaudier/interclubs/internal/config"
	"github.com/fbaudier/interclubs/internal/metrics"
	"github.com/fbaudier/interclubs/internal/notifier"
	"github.com/fbaudier/interclubs/internal/pubsub"
)

func NewServer(store championship.ChampionshipStore, clubs club.ClubStore, orchestrator *championship.Orchestrator, metricsSvc metrics.Metrics, metricsStore metrics.MetricsStore, metricsHandler http.Handler, cfg config.Config, notifier notifier.Notifier, pubsub pubsub.PubSubClient) *Server {
	server := &Server{
		Store:          store,
		Clubs:          clubs,
		Orchestrator:   orchestrator,
		Metrics:        metricsSvc,
		MetricsStore:   metricsStore,
		MetricsHandler: metricsHandler,
		Cfg:            cfg,
		Notifier:       notifier,
		Router:         http.NewServeMux(),
		pubsub:         pubsub,
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	// This makes it easy to add more middlewares in the future, like an authentication middleware.
	// e.g. Chain(s.MyHandler(), paramsMiddleware, authMiddleware)
	s.Router.Handle("/metrics", s.MetricsHandler)
	s.Router.Handle("/metrics/db", Chain(s.StoredMetricsHandler(), paramsMiddleware))
	s.Router.Handle("/health", Chain(s.HealthCheckHandler(), paramsMiddleware))
	s.Router.Handle("/clear", Chain(s.ClearStoreHandler(), paramsMiddleware))
	s.Router.Handle("/championships", Chain(s.ListChampionshipsHandler(), paramsMiddleware))
	s.Router.Handle("/championships/create", Chain(s.CreateChampionshipHandler(), paramsMiddleware))
	s.Router.Handle("/simulate", Chain(s.SimulateChampionshipHandler(), paramsMiddleware))
	s.Router.Handle("/simulate-pool", Chain(s.SimulatePoolHandler(), paramsMiddleware))
	s.Router.Handle("/standings", Chain(s.StandingsHandler(), paramsMiddleware))
	s.Router.Handle("/bracket", Chain(s.BracketHandler(), paramsMiddleware))
	s.Router.Handle("/simulations", Chain(s.ListSimulationsHandler(), paramsMiddleware))
	s.Router.Handle("/pubsub/simulate-pool", Chain(s.PubSubSimulatePoolHandler(), paramsMiddleware))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
