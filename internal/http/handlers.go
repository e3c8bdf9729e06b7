package http

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"

	"github.com/fbaudier/interclubs/internal/pubsub"
	"github.com/fbaudier/interclubs/internal/tennis"
)

const dateLayout = "2006-01-02"

func (s *Server) HealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Received health check request")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK!")
	}
}

func (s *Server) ClearStoreHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if poolID, err := queryID(r, "poolID"); err == nil {
			log.Info("Received request to purge a specific pool", "poolID", poolID)
			if err := s.Store.PurgePool(poolID); err != nil {
				log.Error("Failed to purge pool", "error", err, "poolID", poolID)
				http.Error(w, "Failed to purge pool", http.StatusInternalServerError)
				return
			}
			w.WriteHeader(http.StatusOK)
			fmt.Fprintf(w, "Purged pool %d!", poolID)
			return
		}

		log.Info("Received request to clear entire store")
		if err := s.Store.Clear(); err != nil {
			log.Error("Failed to clear store", "error", err)
			http.Error(w, "Failed to clear store", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "Store cleared!")
		log.Info("Store cleared successfully")
	}
}

func (s *Server) ListChampionshipsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		championships, err := s.Store.ListChampionships()
		if err != nil {
			http.Error(w, "Failed to get championships", http.StatusInternalServerError)
			log.Error("Failed to get championships from store", "error", err)
			return
		}
		respondWithJSON(w, championships)
	}
}

func (s *Server) CreateChampionshipHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createChampionshipRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}

		championship := &tennis.Championship{
			Division: tennis.Division{
				Type:   tennis.DivisionType(req.DivisionType),
				Number: req.DivisionNumber,
				Gender: tennis.Gender(req.Gender),
				AgeCategory: tennis.AgeCategory{
					Type:   tennis.CategoryType(req.CategoryType),
					MinAge: req.MinAge,
					MaxAge: req.MaxAge,
				},
			},
			SinglesCount: req.SinglesCount,
			DoublesCount: req.DoublesCount,
		}
		if err := championship.Division.Type.Validate(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if err := championship.Division.Gender.Validate(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if err := championship.Division.AgeCategory.Type.Validate(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if championship.SinglesCount < 1 || championship.DoublesCount < 0 {
			http.Error(w, "A championship needs at least one single rubber", http.StatusBadRequest)
			return
		}
		if len(req.Matchdays) == 0 {
			http.Error(w, "A championship needs at least one matchday", http.StatusBadRequest)
			return
		}
		for _, day := range req.Matchdays {
			date, err := time.Parse(dateLayout, day)
			if err != nil {
				http.Error(w, fmt.Sprintf("Invalid matchday date %q", day), http.StatusBadRequest)
				return
			}
			championship.Matchdays = append(championship.Matchdays, tennis.Matchday{Date: date})
		}

		if err := s.Store.CreateChampionship(championship); err != nil {
			log.Error("Failed to create championship", "error", err)
			http.Error(w, "Failed to create championship", http.StatusInternalServerError)
			return
		}
		respondWithJSON(w, championship)
	}
}

func (s *Server) SimulateChampionshipHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		championshipID, err := queryID(r, "championshipID")
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		isDryRun := isDryRunFromContext(r)

		report, err := s.Orchestrator.SimulateChampionship(r.Context(), championshipID, isDryRun)
		if err != nil {
			log.Error("Failed to simulate championship", "error", err, "championshipID", championshipID)
			http.Error(w, "Failed to simulate championship", http.StatusInternalServerError)
			return
		}
		s.MetricsStore.Increment("championship_simulations")
		respondWithJSON(w, report)
	}
}

// SimulatePoolHandler replays one pool. With runs > 1 it aggregates the runs
// into a saved batch simulation.
func (s *Server) SimulatePoolHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		poolID, err := queryID(r, "poolID")
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		runs := 1
		if runsStr := r.URL.Query().Get("runs"); runsStr != "" {
			parsed, err := strconv.Atoi(runsStr)
			if err != nil || parsed < 1 {
				http.Error(w, "Invalid 'runs' parameter", http.StatusBadRequest)
				return
			}
			runs = parsed
		}
		isDryRun := isDryRunFromContext(r)

		if runs > 1 {
			simulation, err := s.Orchestrator.SimulatePoolBatch(r.Context(), poolID, runs, isDryRun)
			if err != nil {
				log.Error("Failed to run batch pool simulation", "error", err, "poolID", poolID)
				http.Error(w, "Failed to simulate pool", http.StatusInternalServerError)
				return
			}
			s.MetricsStore.Increment("pool_batch_simulations")
			respondWithJSON(w, simulation)
			return
		}

		standings, err := s.Orchestrator.SimulatePool(r.Context(), poolID)
		if err != nil {
			log.Error("Failed to simulate pool", "error", err, "poolID", poolID)
			http.Error(w, "Failed to simulate pool", http.StatusInternalServerError)
			return
		}
		s.MetricsStore.Increment("pool_simulations")
		respondWithJSON(w, standings)
	}
}

// StandingsHandler serves the table of one pool, or of every pool of a
// championship.
func (s *Server) StandingsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if poolID, err := queryID(r, "poolID"); err == nil {
			standings, err := s.Orchestrator.Standings(poolID)
			if err != nil {
				log.Error("Failed to compute standings", "error", err, "poolID", poolID)
				http.Error(w, "Failed to compute standings", http.StatusInternalServerError)
				return
			}
			respondWithJSON(w, standings)
			return
		}

		championshipID, err := queryID(r, "championshipID")
		if err != nil {
			http.Error(w, "Either 'poolID' or 'championshipID' is required", http.StatusBadRequest)
			return
		}
		standings, err := s.Orchestrator.ChampionshipStandings(championshipID)
		if err != nil {
			log.Error("Failed to compute standings", "error", err, "championshipID", championshipID)
			http.Error(w, "Failed to compute standings", http.StatusInternalServerError)
			return
		}
		respondWithJSON(w, standings)
	}
}

func (s *Server) BracketHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		championshipID, err := queryID(r, "championshipID")
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		bracket, err := s.Orchestrator.Bracket(championshipID)
		if err != nil {
			log.Error("Failed to seed bracket", "error", err, "championshipID", championshipID)
			http.Error(w, "Failed to seed bracket", http.StatusInternalServerError)
			return
		}
		respondWithJSON(w, bracket)
	}
}

func (s *Server) ListSimulationsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		poolID, err := queryID(r, "poolID")
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		simulations, err := s.Store.ListSimulations(poolID)
		if err != nil {
			log.Error("Failed to list simulations", "error", err, "poolID", poolID)
			http.Error(w, "Failed to list simulations", http.StatusInternalServerError)
			return
		}
		respondWithJSON(w, simulations)
	}
}

// StoredMetricsHandler serves the persisted counters, as opposed to the
// Prometheus registry served on /metrics.
func (s *Server) StoredMetricsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		counters, err := s.MetricsStore.GetAll()
		if err != nil {
			log.Error("Failed to read stored metrics", "error", err)
			http.Error(w, "Failed to read stored metrics", http.StatusInternalServerError)
			return
		}
		respondWithJSON(w, counters)
	}
}

// PubSubSimulatePoolHandler is the push endpoint for simulate-pool events.
// Cloud Pub/Sub wraps the msgpack payload in a base64-encoded JSON envelope.
func (s *Server) PubSubSimulatePoolHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bodyBytes, err := io.ReadAll(r.Body)
		if err != nil {
			log.Error("Failed to read request body", "error", err)
			http.Error(w, "Failed to read request body", http.StatusInternalServerError)
			return
		}
		log.Debug("Received simulate pool message", "body", string(bodyBytes))
		var pubsubMsg struct {
			Subscription string `json:"subscription"`
			Message      struct {
				Data string `json:"data"` // base64-encoded message payload
			} `json:"message"`
		}
		if err := json.Unmarshal(bodyBytes, &pubsubMsg); err != nil {
			log.Error("Failed to unmarshal wrapper JSON", "error", err)
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		rawData, err := base64.StdEncoding.DecodeString(pubsubMsg.Message.Data)
		if err != nil {
			log.Error("Failed to decode base64 data", "error", err)
			http.Error(w, "Invalid base64 data", http.StatusBadRequest)
			return
		}

		request := pubsub.SimulatePoolRequest{}
		if err := s.pubsub.ProcessMessage(rawData, &request); err != nil {
			http.Error(w, "Invalid message payload", http.StatusBadRequest)
			return
		}
		if request.NumSimulations < 1 {
			request.NumSimulations = 1
		}
		isDryRun := isDryRunFromContext(r)
		if _, err := s.Orchestrator.SimulatePoolBatch(r.Context(), request.PoolID, request.NumSimulations, isDryRun); err != nil {
			log.Error("Failed to run requested pool simulation", "error", err, "poolID", request.PoolID)
			http.Error(w, "Failed to simulate pool", http.StatusInternalServerError)
			return
		}
		w.Write([]byte("OK"))
	}
}

// queryID parses a required int64 query parameter.
func queryID(r *http.Request, name string) (int64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, fmt.Errorf("missing '%s' parameter", name)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid '%s' parameter", name)
	}
	return id, nil
}

// respondWithJSON writes a JSON response.
func respondWithJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to write response", "error", err)
	}
}
