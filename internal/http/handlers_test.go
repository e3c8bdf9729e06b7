package http

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/fbaudier/interclubs/internal/championship"
	"github.com/fbaudier/interclubs/internal/club"
	"github.com/fbaudier/interclubs/internal/config"
	"github.com/fbaudier/interclubs/internal/database"
	"github.com/fbaudier/interclubs/internal/metrics"
	"github.com/fbaudier/interclubs/internal/notifier"
	"github.com/fbaudier/interclubs/internal/pubsub"
	"github.com/fbaudier/interclubs/internal/ranking"
	"github.com/fbaudier/interclubs/internal/tennis"
)

// setupTestServer initializes a server around an in-memory database seeded
// with six clubs that can each field a team, and one created championship.
func setupTestServer(t *testing.T) (*Server, int64) {
	t.Helper()

	db, dbTeardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)
	t.Cleanup(dbTeardown)

	clubStore := club.New(db)
	require.NoError(t, clubStore.SeedLadder(ranking.DefaultLadder()))
	for i := 0; i < 6; i++ {
		clubID := fmt.Sprintf("5706018%d", i)
		name := fmt.Sprintf("TC Club %d (92)", i)
		require.NoError(t, clubStore.UpsertClub(tennis.Club{ID: clubID, Name: name, City: "Paris"}))
		for j := 0; j < 5; j++ {
			require.NoError(t, clubStore.AddPlayer(&tennis.Player{
				FirstName:     "Joueur",
				LastName:      fmt.Sprintf("%d-%d", i, j),
				BirthDate:     time.Date(1990+j, 3, 1, 0, 0, 0, 0, time.UTC),
				Gender:        tennis.Male,
				ClubID:        clubID,
				LicenseNumber: int64(100*i + j),
				LicenseLetter: "H",
				Ranking:       190 + 5*j + i,
				Active:        true,
			}))
		}
	}

	store := championship.New(db)
	created := &tennis.Championship{
		Division: tennis.Division{
			Type:        tennis.Regional,
			Number:      2,
			Gender:      tennis.Male,
			AgeCategory: tennis.AgeCategory{Type: tennis.Senior, MinAge: 18, MaxAge: 99},
		},
		SinglesCount: 2,
		DoublesCount: 1,
		Matchdays: []tennis.Matchday{
			{Date: time.Date(2025, 10, 5, 0, 0, 0, 0, time.UTC)},
			{Date: time.Date(2025, 10, 12, 0, 0, 0, 0, time.UTC)},
			{Date: time.Date(2025, 10, 19, 0, 0, 0, 0, time.UTC)},
		},
	}
	require.NoError(t, store.CreateChampionship(created))

	reg := prometheus.NewRegistry()
	metricsSvc := metrics.NewService(reg)
	metricsHandler := metrics.NewMetricsHandler(reg)
	metricsStore := metrics.New(db)
	mockNotifier := notifier.NewMock()
	mockPubSub := pubsub.NewMock("TEST")
	rng := rand.New(rand.NewSource(7))
	orchestrator := championship.NewOrchestrator(store, clubStore, mockNotifier, metricsSvc, mockPubSub, rng)

	server := NewServer(store, clubStore, orchestrator, metricsSvc, metricsStore, metricsHandler, config.Config{}, mockNotifier, mockPubSub)
	return server, created.ID
}

func doRequest(t *testing.T, server *Server, method, target string, body *bytes.Buffer) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	var err error
	if body != nil {
		req, err = http.NewRequest(method, target, body)
	} else {
		req, err = http.NewRequest(method, target, nil)
	}
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	server.Router.ServeHTTP(rr, req)
	return rr
}

func TestHealthCheckHandler(t *testing.T) {
	server, _ := setupTestServer(t)

	rr := doRequest(t, server, "GET", "/health", nil)
	assert.Equal(t, http.StatusOK, rr.Code, "handler returned wrong status code")
	assert.Equal(t, "OK!", rr.Body.String(), "handler returned unexpected body")
}

func TestCreateChampionshipHandler(t *testing.T) {
	server, _ := setupTestServer(t)

	body := bytes.NewBufferString(`{
		"division_type": 2, "division_number": 3, "gender": 1,
		"category_type": 1, "min_age": 18, "max_age": 99,
		"singles_count": 2, "doubles_count": 1,
		"matchdays": ["2026-01-11", "2026-01-18"]
	}`)
	rr := doRequest(t, server, "POST", "/championships/create", body)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var created tennis.Championship
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))
	assert.NotZero(t, created.ID)
	assert.Equal(t, "Régional 3 - Seniors - Féminin", created.Name())
	assert.Len(t, created.Matchdays, 2)

	rr = doRequest(t, server, "POST", "/championships/create", bytes.NewBufferString(`{"gender": 9}`))
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = doRequest(t, server, "POST", "/championships/create", bytes.NewBufferString(`{
		"singles_count": 2, "matchdays": ["11/01/2026"]
	}`))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestSimulateChampionshipHandler(t *testing.T) {
	server, championshipID := setupTestServer(t)

	rr := doRequest(t, server, "GET", fmt.Sprintf("/simulate?championshipID=%d", championshipID), nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var report championship.Report
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &report))
	assert.Equal(t, 1, report.PoolsSimulated)
	assert.Equal(t, 6, report.FixturesSimulated)
	assert.Len(t, report.ExemptedTeams, 2)

	rr = doRequest(t, server, "GET", "/simulate", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestListChampionshipsHandler(t *testing.T) {
	server, _ := setupTestServer(t)

	rr := doRequest(t, server, "GET", "/championships", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var championships []tennis.Championship
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &championships))
	assert.Len(t, championships, 1)
}

func TestStandingsHandler(t *testing.T) {
	server, championshipID := setupTestServer(t)
	rr := doRequest(t, server, "GET", fmt.Sprintf("/simulate?championshipID=%d", championshipID), nil)
	require.Equal(t, http.StatusOK, rr.Code)

	pools, err := server.Store.GetPools(championshipID)
	require.NoError(t, err)
	poolID := pools[0].ID

	rr = doRequest(t, server, "GET", fmt.Sprintf("/standings?poolID=%d", poolID), nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var table championship.PoolStandings
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &table))
	assert.Equal(t, "A", table.PoolLetter)
	assert.Len(t, table.Rows, 4)

	rr = doRequest(t, server, "GET", fmt.Sprintf("/standings?championshipID=%d", championshipID), nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var tables []championship.PoolStandings
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &tables))
	assert.Len(t, tables, 1)

	rr = doRequest(t, server, "GET", "/standings", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestSimulatePoolHandler(t *testing.T) {
	server, championshipID := setupTestServer(t)
	rr := doRequest(t, server, "GET", fmt.Sprintf("/simulate?championshipID=%d", championshipID), nil)
	require.Equal(t, http.StatusOK, rr.Code)

	pools, err := server.Store.GetPools(championshipID)
	require.NoError(t, err)
	poolID := pools[0].ID

	rr = doRequest(t, server, "GET", fmt.Sprintf("/simulate-pool?poolID=%d", poolID), nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var table championship.PoolStandings
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &table))
	assert.Len(t, table.Rows, 4)

	rr = doRequest(t, server, "GET", fmt.Sprintf("/simulate-pool?poolID=%d&runs=3", poolID), nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var batch championship.PoolSimulation
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &batch))
	assert.Equal(t, 3, batch.NumSimulations)
	assert.Len(t, batch.Results, 4)

	rr = doRequest(t, server, "GET", fmt.Sprintf("/simulate-pool?poolID=%d&runs=zero", poolID), nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestBracketHandler(t *testing.T) {
	server, championshipID := setupTestServer(t)
	rr := doRequest(t, server, "GET", fmt.Sprintf("/simulate?championshipID=%d", championshipID), nil)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = doRequest(t, server, "GET", fmt.Sprintf("/bracket?championshipID=%d", championshipID), nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var bracket []tennis.Team
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &bracket))
	assert.Len(t, bracket, 4)
}

func TestPubSubSimulatePoolHandler(t *testing.T) {
	server, championshipID := setupTestServer(t)
	rr := doRequest(t, server, "GET", fmt.Sprintf("/simulate?championshipID=%d", championshipID), nil)
	require.Equal(t, http.StatusOK, rr.Code)

	pools, err := server.Store.GetPools(championshipID)
	require.NoError(t, err)
	poolID := pools[0].ID

	payload, err := msgpack.Marshal(pubsub.SimulatePoolRequest{PoolID: poolID, NumSimulations: 2})
	require.NoError(t, err)
	envelope := fmt.Sprintf(`{"subscription": "test", "message": {"data": %q}}`,
		base64.StdEncoding.EncodeToString(payload))

	rr = doRequest(t, server, "POST", "/pubsub/simulate-pool", bytes.NewBufferString(envelope))
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	simulations, err := server.Store.ListSimulations(poolID)
	require.NoError(t, err)
	require.Len(t, simulations, 1)
	assert.Equal(t, 2, simulations[0].NumSimulations)

	rr = doRequest(t, server, "POST", "/pubsub/simulate-pool", bytes.NewBufferString("not json"))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestStoredMetricsHandler(t *testing.T) {
	server, championshipID := setupTestServer(t)
	rr := doRequest(t, server, "GET", fmt.Sprintf("/simulate?championshipID=%d", championshipID), nil)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = doRequest(t, server, "GET", "/metrics/db", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var counters map[string]int
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &counters))
	assert.Equal(t, 1, counters["championship_simulations"])
}

func TestClearStoreHandler(t *testing.T) {
	server, championshipID := setupTestServer(t)
	rr := doRequest(t, server, "GET", fmt.Sprintf("/simulate?championshipID=%d", championshipID), nil)
	require.Equal(t, http.StatusOK, rr.Code)

	pools, err := server.Store.GetPools(championshipID)
	require.NoError(t, err)
	poolID := pools[0].ID

	rr = doRequest(t, server, "GET", fmt.Sprintf("/clear?poolID=%d", poolID), nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, strings.Contains(rr.Body.String(), "Purged pool"))
	purged, err := server.Store.GetPool(poolID)
	require.NoError(t, err)
	for _, match := range purged.Matches {
		assert.False(t, match.Played)
	}

	rr = doRequest(t, server, "GET", "/clear", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	championships, err := server.Store.ListChampionships()
	require.NoError(t, err)
	assert.Empty(t, championships)

	// Standings for a vanished pool cannot be computed.
	rr = doRequest(t, server, "GET", fmt.Sprintf("/standings?poolID=%d", poolID), nil)
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}
