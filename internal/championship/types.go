package championship

import (
	"database/sql"
	"sync"
	"time"

	"github.com/fbaudier/interclubs/internal/standings"
	"github.com/fbaudier/interclubs/internal/tennis"
)

// store handles database operations for championships, pools, fixtures and
// simulation results.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// PoolSimulation is one batch of repeated pool simulations and its aggregated
// per-team results.
type PoolSimulation struct {
	ID             string                 `json:"id"`
	PoolID         int64                  `json:"pool_id"`
	NumSimulations int                    `json:"num_simulations"`
	CreatedAt      time.Time              `json:"created_at"`
	Results        []TeamSimulationResult `json:"results"`
}

// TeamSimulationResult aggregates one team's finishes across a simulation
// batch. Distribution maps finish position (1-based) to occurrence count.
type TeamSimulationResult struct {
	TeamID       int64       `json:"team_id"`
	TeamName     string      `json:"team_name"`
	AvgRanking   float64     `json:"avg_ranking"`
	AvgPoints    float64     `json:"avg_points"`
	BestRanking  int         `json:"best_ranking"`
	WorstRanking int         `json:"worst_ranking"`
	Distribution map[int]int `json:"distribution"`
}

// PoolStandings is one pool's computed table.
type PoolStandings struct {
	PoolID     int64           `json:"pool_id"`
	PoolLetter string          `json:"pool_letter"`
	Rows       []standings.Row `json:"rows"`
}

// Report summarizes a championship simulation run. Partial outcomes are
// expected: a pool that fails leaves the others untouched.
type Report struct {
	ChampionshipID    int64           `json:"championship_id"`
	PoolsAttempted    int             `json:"pools_attempted"`
	PoolsSimulated    int             `json:"pools_simulated"`
	FixturesSimulated int             `json:"fixtures_simulated"`
	ExemptedTeams     []string        `json:"exempted_teams,omitempty"`
	Standings         []PoolStandings `json:"standings,omitempty"`
	Bracket           []tennis.Team   `json:"bracket,omitempty"`
}
