package notifier

import (
	"sync"

	"github.com/fbaudier/interclubs/internal/championship"
)

// MockNotifier is a mock implementation of the Notifier interface for testing.
// It is safe for concurrent use.
type MockNotifier struct {
	mu sync.Mutex

	// Spies for method calls
	SendStandingsNotificationFunc func(championshipName string, standings []championship.PoolStandings, dryRun bool) (string, error)
	SendSimulationSummaryFunc     func(poolName string, simulation *championship.PoolSimulation, dryRun bool) (string, error)

	// Call records
	StandingsCalls []StandingsCall
	SummaryCalls   []SummaryCall
}

// StandingsCall holds the arguments for a call to SendStandingsNotification.
type StandingsCall struct {
	ChampionshipName string
	Standings        []championship.PoolStandings
	DryRun           bool
}

// SummaryCall holds the arguments for a call to SendSimulationSummary.
type SummaryCall struct {
	PoolName   string
	Simulation *championship.PoolSimulation
	DryRun     bool
}

// NewMock creates a new mock instance.
func NewMock() *MockNotifier {
	return &MockNotifier{}
}

// Reset clears all call records.
func (m *MockNotifier) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.StandingsCalls = nil
	m.SummaryCalls = nil
}

func (m *MockNotifier) SendStandingsNotification(championshipName string, standings []championship.PoolStandings, dryRun bool) (string, error) {
	m.mu.Lock()
	m.StandingsCalls = append(m.StandingsCalls, StandingsCall{championshipName, standings, dryRun})
	m.mu.Unlock()
	if m.SendStandingsNotificationFunc != nil {
		return m.SendStandingsNotificationFunc(championshipName, standings, dryRun)
	}
	return "mock-ts", nil
}

func (m *MockNotifier) SendSimulationSummary(poolName string, simulation *championship.PoolSimulation, dryRun bool) (string, error) {
	m.mu.Lock()
	m.SummaryCalls = append(m.SummaryCalls, SummaryCall{poolName, simulation, dryRun})
	m.mu.Unlock()
	if m.SendSimulationSummaryFunc != nil {
		return m.SendSimulationSummaryFunc(poolName, simulation, dryRun)
	}
	return "mock-ts", nil
}
