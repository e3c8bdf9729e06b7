package club

import (
	"sync"
	"time"

	"github.com/fbaudier/interclubs/internal/ranking"
	"github.com/fbaudier/interclubs/internal/tennis"
)

// MockStore is a mock implementation of the ClubStore interface for testing.
// It is safe for concurrent use.
type MockStore struct {
	mu sync.Mutex

	// Spies for method calls
	UpsertClubFunc         func(club tennis.Club) error
	GetClubFunc            func(id string) (*tennis.Club, error)
	GetClubsFunc           func() ([]tennis.Club, error)
	AddPlayerFunc          func(player *tennis.Player) error
	UpsertPlayersFunc      func(players []*tennis.Player) error
	GetPlayerFunc          func(id int64) (*tennis.Player, error)
	GetEligiblePlayersFunc func(gender tennis.Gender, clubID string, category tennis.AgeCategory, at time.Time, activeOnly bool) ([]tennis.Player, error)
	AddInjuryFunc          func(playerID int64, injury tennis.Injury) error
	SeedLadderFunc         func(ladder *ranking.Ladder) error
	LoadLadderFunc         func() (*ranking.Ladder, error)
	ClearFunc              func() error

	// Call records
	UpsertClubCalls         []tennis.Club
	AddPlayerCalls          []*tennis.Player
	GetEligiblePlayersCalls []struct {
		Gender tennis.Gender
		ClubID string
	}
	AddInjuryCalls []int64
	ClearCalls     int
}

// NewMock creates a new mock instance.
func NewMock() *MockStore {
	return &MockStore{}
}

// Reset clears all call records.
func (m *MockStore) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpsertClubCalls = nil
	m.AddPlayerCalls = nil
	m.GetEligiblePlayersCalls = nil
	m.AddInjuryCalls = nil
	m.ClearCalls = 0
}

func (m *MockStore) UpsertClub(club tennis.Club) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpsertClubCalls = append(m.UpsertClubCalls, club)
	if m.UpsertClubFunc != nil {
		return m.UpsertClubFunc(club)
	}
	return nil
}

func (m *MockStore) GetClub(id string) (*tennis.Club, error) {
	if m.GetClubFunc != nil {
		return m.GetClubFunc(id)
	}
	return &tennis.Club{ID: id}, nil
}

func (m *MockStore) GetClubs() ([]tennis.Club, error) {
	if m.GetClubsFunc != nil {
		return m.GetClubsFunc()
	}
	return nil, nil
}

func (m *MockStore) AddPlayer(player *tennis.Player) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AddPlayerCalls = append(m.AddPlayerCalls, player)
	if m.AddPlayerFunc != nil {
		return m.AddPlayerFunc(player)
	}
	return nil
}

func (m *MockStore) UpsertPlayers(players []*tennis.Player) error {
	if m.UpsertPlayersFunc != nil {
		return m.UpsertPlayersFunc(players)
	}
	return nil
}

func (m *MockStore) GetPlayer(id int64) (*tennis.Player, error) {
	if m.GetPlayerFunc != nil {
		return m.GetPlayerFunc(id)
	}
	return &tennis.Player{ID: id}, nil
}

func (m *MockStore) GetEligiblePlayers(gender tennis.Gender, clubID string, category tennis.AgeCategory, at time.Time, activeOnly bool) ([]tennis.Player, error) {
	m.mu.Lock()
	m.GetEligiblePlayersCalls = append(m.GetEligiblePlayersCalls, struct {
		Gender tennis.Gender
		ClubID string
	}{gender, clubID})
	m.mu.Unlock()
	if m.GetEligiblePlayersFunc != nil {
		return m.GetEligiblePlayersFunc(gender, clubID, category, at, activeOnly)
	}
	return nil, nil
}

func (m *MockStore) AddInjury(playerID int64, injury tennis.Injury) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AddInjuryCalls = append(m.AddInjuryCalls, playerID)
	if m.AddInjuryFunc != nil {
		return m.AddInjuryFunc(playerID, injury)
	}
	return nil
}

func (m *MockStore) SeedLadder(ladder *ranking.Ladder) error {
	if m.SeedLadderFunc != nil {
		return m.SeedLadderFunc(ladder)
	}
	return nil
}

func (m *MockStore) LoadLadder() (*ranking.Ladder, error) {
	if m.LoadLadderFunc != nil {
		return m.LoadLadderFunc()
	}
	return ranking.DefaultLadder(), nil
}

func (m *MockStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ClearCalls++
	if m.ClearFunc != nil {
		return m.ClearFunc()
	}
	return nil
}
