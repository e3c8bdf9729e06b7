package metrics

import "sync"

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu                  sync.Mutex
	simulationsRun      int
	fixturesSimulated   int
	simulationDurations []float64
	slackNotifSent      int
	slackNotifFailed    int
	startupTime         float64
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		simulationDurations: make([]float64, 0),
	}
}

func (m *Mock) IncSimulationsRun() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.simulationsRun++
}

func (m *Mock) IncFixturesSimulated() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fixturesSimulated++
}

func (m *Mock) ObserveSimulationDuration(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.simulationDurations = append(m.simulationDurations, duration)
}

func (m *Mock) IncSlackNotifSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifSent++
}

func (m *Mock) IncSlackNotifFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifFailed++
}

func (m *Mock) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startupTime = duration
}

// SimulationsRun returns the number of times IncSimulationsRun was called.
func (m *Mock) SimulationsRun() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.simulationsRun
}

// FixturesSimulated returns the number of times IncFixturesSimulated was called.
func (m *Mock) FixturesSimulated() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fixturesSimulated
}

// SlackNotifSent returns the number of times IncSlackNotifSent was called.
func (m *Mock) SlackNotifSent() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifSent
}

// SlackNotifFailed returns the number of times IncSlackNotifFailed was called.
func (m *Mock) SlackNotifFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifFailed
}
