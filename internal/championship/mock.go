package championship

import (
	"context"
	"sync"

	"github.com/fbaudier/interclubs/internal/tennis"
)

// MockStore is a mock implementation of the ChampionshipStore interface for
// testing. It is safe for concurrent use.
type MockStore struct {
	mu sync.Mutex

	// Spies for method calls
	CreateChampionshipFunc func(championship *tennis.Championship) error
	GetChampionshipFunc    func(id int64) (*tennis.Championship, error)
	ListChampionshipsFunc  func() ([]tennis.Championship, error)
	DeleteChampionshipFunc func(id int64) error
	SaveTeamFunc           func(team *tennis.Team) error
	CreatePoolFunc         func(pool *tennis.Pool) error
	GetPoolFunc            func(id int64) (*tennis.Pool, error)
	GetPoolsFunc           func(championshipID int64) ([]tennis.Pool, error)
	DeletePoolsFunc        func(championshipID int64) error
	PurgePoolFunc          func(poolID int64) error
	CreateMatchFunc        func(match *tennis.Match) error
	RecordSingleFunc       func(ctx context.Context, single *tennis.Single) error
	RecordDoubleFunc       func(ctx context.Context, double *tennis.Double) error
	UpdateMatchScoreFunc   func(ctx context.Context, match *tennis.Match) error
	SaveSimulationFunc     func(simulation *PoolSimulation) error
	GetSimulationFunc      func(id string) (*PoolSimulation, error)
	ListSimulationsFunc    func(poolID int64) ([]PoolSimulation, error)
	ClearFunc              func() error

	// Call records
	SavedTeams       []*tennis.Team
	CreatedPools     []*tennis.Pool
	DeletePoolsCalls []int64
	PurgePoolCalls   []int64
	CreatedMatches   []*tennis.Match
	RecordedSingles  []*tennis.Single
	RecordedDoubles  []*tennis.Double
	UpdatedMatches   []*tennis.Match
	SavedSimulations []*PoolSimulation
	ClearCalls       int

	nextID int64
}

// NewMock creates a new mock instance.
func NewMock() *MockStore {
	return &MockStore{}
}

// Reset clears all call records.
func (m *MockStore) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SavedTeams = nil
	m.CreatedPools = nil
	m.DeletePoolsCalls = nil
	m.PurgePoolCalls = nil
	m.CreatedMatches = nil
	m.RecordedSingles = nil
	m.RecordedDoubles = nil
	m.UpdatedMatches = nil
	m.SavedSimulations = nil
	m.ClearCalls = 0
	m.nextID = 0
}

func (m *MockStore) assignID() int64 {
	m.nextID++
	return m.nextID
}

func (m *MockStore) CreateChampionship(championship *tennis.Championship) error {
	if m.CreateChampionshipFunc != nil {
		return m.CreateChampionshipFunc(championship)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	championship.ID = m.assignID()
	return nil
}

func (m *MockStore) GetChampionship(id int64) (*tennis.Championship, error) {
	if m.GetChampionshipFunc != nil {
		return m.GetChampionshipFunc(id)
	}
	return &tennis.Championship{ID: id}, nil
}

func (m *MockStore) ListChampionships() ([]tennis.Championship, error) {
	if m.ListChampionshipsFunc != nil {
		return m.ListChampionshipsFunc()
	}
	return nil, nil
}

func (m *MockStore) DeleteChampionship(id int64) error {
	if m.DeleteChampionshipFunc != nil {
		return m.DeleteChampionshipFunc(id)
	}
	return nil
}

func (m *MockStore) SaveTeam(team *tennis.Team) error {
	m.mu.Lock()
	m.SavedTeams = append(m.SavedTeams, team)
	if team.ID == 0 {
		team.ID = m.assignID()
	}
	m.mu.Unlock()
	if m.SaveTeamFunc != nil {
		return m.SaveTeamFunc(team)
	}
	return nil
}

func (m *MockStore) CreatePool(pool *tennis.Pool) error {
	m.mu.Lock()
	m.CreatedPools = append(m.CreatedPools, pool)
	if pool.ID == 0 {
		pool.ID = m.assignID()
	}
	m.mu.Unlock()
	if m.CreatePoolFunc != nil {
		return m.CreatePoolFunc(pool)
	}
	return nil
}

func (m *MockStore) GetPool(id int64) (*tennis.Pool, error) {
	if m.GetPoolFunc != nil {
		return m.GetPoolFunc(id)
	}
	return &tennis.Pool{ID: id}, nil
}

func (m *MockStore) GetPools(championshipID int64) ([]tennis.Pool, error) {
	if m.GetPoolsFunc != nil {
		return m.GetPoolsFunc(championshipID)
	}
	return nil, nil
}

func (m *MockStore) DeletePools(championshipID int64) error {
	m.mu.Lock()
	m.DeletePoolsCalls = append(m.DeletePoolsCalls, championshipID)
	m.mu.Unlock()
	if m.DeletePoolsFunc != nil {
		return m.DeletePoolsFunc(championshipID)
	}
	return nil
}

func (m *MockStore) PurgePool(poolID int64) error {
	m.mu.Lock()
	m.PurgePoolCalls = append(m.PurgePoolCalls, poolID)
	m.mu.Unlock()
	if m.PurgePoolFunc != nil {
		return m.PurgePoolFunc(poolID)
	}
	return nil
}

func (m *MockStore) CreateMatch(match *tennis.Match) error {
	m.mu.Lock()
	m.CreatedMatches = append(m.CreatedMatches, match)
	if match.ID == 0 {
		match.ID = m.assignID()
	}
	m.mu.Unlock()
	if m.CreateMatchFunc != nil {
		return m.CreateMatchFunc(match)
	}
	return nil
}

func (m *MockStore) RecordSingle(ctx context.Context, single *tennis.Single) error {
	m.mu.Lock()
	m.RecordedSingles = append(m.RecordedSingles, single)
	m.mu.Unlock()
	if m.RecordSingleFunc != nil {
		return m.RecordSingleFunc(ctx, single)
	}
	return nil
}

func (m *MockStore) RecordDouble(ctx context.Context, double *tennis.Double) error {
	m.mu.Lock()
	m.RecordedDoubles = append(m.RecordedDoubles, double)
	m.mu.Unlock()
	if m.RecordDoubleFunc != nil {
		return m.RecordDoubleFunc(ctx, double)
	}
	return nil
}

func (m *MockStore) UpdateMatchScore(ctx context.Context, match *tennis.Match) error {
	m.mu.Lock()
	m.UpdatedMatches = append(m.UpdatedMatches, match)
	m.mu.Unlock()
	if m.UpdateMatchScoreFunc != nil {
		return m.UpdateMatchScoreFunc(ctx, match)
	}
	return nil
}

func (m *MockStore) SaveSimulation(simulation *PoolSimulation) error {
	m.mu.Lock()
	m.SavedSimulations = append(m.SavedSimulations, simulation)
	m.mu.Unlock()
	if m.SaveSimulationFunc != nil {
		return m.SaveSimulationFunc(simulation)
	}
	return nil
}

func (m *MockStore) GetSimulation(id string) (*PoolSimulation, error) {
	if m.GetSimulationFunc != nil {
		return m.GetSimulationFunc(id)
	}
	return &PoolSimulation{ID: id}, nil
}

func (m *MockStore) ListSimulations(poolID int64) ([]PoolSimulation, error) {
	if m.ListSimulationsFunc != nil {
		return m.ListSimulationsFunc(poolID)
	}
	return nil, nil
}

func (m *MockStore) Clear() error {
	m.mu.Lock()
	m.ClearCalls++
	m.mu.Unlock()
	if m.ClearFunc != nil {
		return m.ClearFunc()
	}
	return nil
}
