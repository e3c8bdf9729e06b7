package championship

import (
	"context"

	"github.com/fbaudier/interclubs/internal/tennis"
)

// ChampionshipStore defines the persistence operations for championships,
// pools, fixtures and simulation batches. It also satisfies
// simulation.Recorder so rubbers are written as they are played.
type ChampionshipStore interface {
	CreateChampionship(championship *tennis.Championship) error
	GetChampionship(id int64) (*tennis.Championship, error)
	ListChampionships() ([]tennis.Championship, error)
	DeleteChampionship(id int64) error

	SaveTeam(team *tennis.Team) error
	CreatePool(pool *tennis.Pool) error
	GetPool(id int64) (*tennis.Pool, error)
	GetPools(championshipID int64) ([]tennis.Pool, error)
	DeletePools(championshipID int64) error
	PurgePool(poolID int64) error

	CreateMatch(match *tennis.Match) error
	RecordSingle(ctx context.Context, single *tennis.Single) error
	RecordDouble(ctx context.Context, double *tennis.Double) error
	UpdateMatchScore(ctx context.Context, match *tennis.Match) error

	SaveSimulation(simulation *PoolSimulation) error
	GetSimulation(id string) (*PoolSimulation, error)
	ListSimulations(poolID int64) ([]PoolSimulation, error)

	Clear() error
}
