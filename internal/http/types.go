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

type Server struct {
	Store          championship.ChampionshipStore
	Clubs          club.ClubStore
	Orchestrator   *championship.Orchestrator
	Metrics        metrics.Metrics
	MetricsStore   metrics.MetricsStore
	MetricsHandler http.Handler
	Cfg            config.Config
	Notifier       notifier.Notifier
	Router         *http.ServeMux
	pubsub         pubsub.PubSubClient
}

// createChampionshipRequest is the JSON body of /championships/create.
// Matchday dates use the 2006-01-02 layout.
type createChampionshipRequest struct {
	DivisionType   int      `json:"division_type"`
	DivisionNumber int      `json:"division_number"`
	Gender         int      `json:"gender"`
	CategoryType   int      `json:"category_type"`
	MinAge         int      `json:"min_age"`
	MaxAge         int      `json:"max_age"`
	SinglesCount   int      `json:"singles_count"`
	DoublesCount   int      `json:"doubles_count"`
	Matchdays      []string `json:"matchdays"`
}
