package simulation

import (
	"context"
	"io"
	"math/rand"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fbaudier/interclubs/internal/ranking"
	"github.com/fbaudier/interclubs/internal/tennis"
)

type mockRecorder struct {
	RecordSingleFunc     func(ctx context.Context, single *tennis.Single) error
	RecordDoubleFunc     func(ctx context.Context, double *tennis.Double) error
	UpdateMatchScoreFunc func(ctx context.Context, match *tennis.Match) error

	singles []tennis.Single
	doubles []tennis.Double
	updates int
}

func (m *mockRecorder) RecordSingle(ctx context.Context, single *tennis.Single) error {
	if m.RecordSingleFunc != nil {
		if err := m.RecordSingleFunc(ctx, single); err != nil {
			return err
		}
	}
	m.singles = append(m.singles, *single)
	return nil
}

func (m *mockRecorder) RecordDouble(ctx context.Context, double *tennis.Double) error {
	if m.RecordDoubleFunc != nil {
		if err := m.RecordDoubleFunc(ctx, double); err != nil {
			return err
		}
	}
	m.doubles = append(m.doubles, *double)
	return nil
}

func (m *mockRecorder) UpdateMatchScore(ctx context.Context, match *tennis.Match) error {
	if m.UpdateMatchScoreFunc != nil {
		if err := m.UpdateMatchScoreFunc(ctx, match); err != nil {
			return err
		}
	}
	m.updates++
	return nil
}

func roster(firstID int64, positions ...int) []tennis.Player {
	players := make([]tennis.Player, len(positions))
	for i, pos := range positions {
		players[i] = tennis.Player{
			ID:        firstID + int64(i),
			FirstName: "Player",
			LastName:  "X",
			BirthDate: time.Date(1995, 1, 1, 0, 0, 0, 0, time.UTC),
			Ranking:   pos,
		}
	}
	return players
}

func newMatchSimulator(recorder Recorder, seed int64) *MatchSimulator {
	model := ranking.NewModel(ranking.DefaultLadder())
	points := New(rand.New(rand.NewSource(seed)))
	return NewMatchSimulator(model, points, recorder, log.New(io.Discard))
}

func TestSimulateFixture(t *testing.T) {
	recorder := &mockRecorder{}
	sim := newMatchSimulator(recorder, 17)

	home := tennis.Team{ID: 1, Name: "TC Nord 1", Players: roster(100, 205, 208, 211, 214, 217)}
	visitor := tennis.Team{ID: 2, Name: "TC Sud 1", Players: roster(200, 206, 209, 212, 215, 218)}
	match := tennis.Match{
		ID: 7, HomeTeamID: 1, VisitorTeamID: 2,
		Date: time.Date(2025, 10, 5, 0, 0, 0, 0, time.UTC),
	}

	err := sim.Simulate(context.Background(), &match, home, visitor, 2, 1)
	require.NoError(t, err)

	assert.True(t, match.Played)
	assert.Len(t, match.Singles, 2)
	assert.Len(t, match.Doubles, 1)
	assert.Equal(t, 3, match.HomeScore+match.VisitorScore)

	require.Len(t, recorder.singles, 2)
	require.Len(t, recorder.doubles, 1)
	assert.Equal(t, 1, recorder.updates)

	// Strongest against strongest in the first singles.
	assert.Equal(t, int64(100), recorder.singles[0].Player1ID)
	assert.Equal(t, int64(200), recorder.singles[0].Player2ID)

	// The doubles pair is the top two players in the refined order.
	assert.Equal(t, int64(100), recorder.doubles[0].Player1ID)
	assert.Equal(t, int64(101), recorder.doubles[0].Player2ID)
	for _, single := range recorder.singles {
		assert.Equal(t, int64(7), single.MatchID)
	}
}

func TestSimulateShortRoster(t *testing.T) {
	recorder := &mockRecorder{}
	sim := newMatchSimulator(recorder, 1)

	home := tennis.Team{Name: "TC Nord 1", Players: roster(100, 205, 208)}
	visitor := tennis.Team{Name: "TC Sud 1", Players: roster(200, 206, 209, 212, 215)}
	match := tennis.Match{ID: 1}

	err := sim.Simulate(context.Background(), &match, home, visitor, 2, 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TC Nord 1")
	assert.False(t, match.Played)
	assert.Empty(t, recorder.singles)
}

func TestSimulateRecorderFailure(t *testing.T) {
	recorder := &mockRecorder{
		RecordSingleFunc: func(ctx context.Context, single *tennis.Single) error {
			return assert.AnError
		},
	}
	sim := newMatchSimulator(recorder, 1)

	home := tennis.Team{Name: "TC Nord 1", Players: roster(100, 205, 208, 211, 214)}
	visitor := tennis.Team{Name: "TC Sud 1", Players: roster(200, 206, 209, 212, 215)}
	match := tennis.Match{ID: 1}

	err := sim.Simulate(context.Background(), &match, home, visitor, 2, 1)
	require.Error(t, err)
	assert.False(t, match.Played)
	assert.Equal(t, 0, recorder.updates)
}

func TestSimulateInvalidRanking(t *testing.T) {
	recorder := &mockRecorder{}
	sim := newMatchSimulator(recorder, 1)

	players := roster(100, 205, 208, 211, 214)
	players[2].Ranking = 9999
	home := tennis.Team{Name: "TC Nord 1", Players: players}
	visitor := tennis.Team{Name: "TC Sud 1", Players: roster(200, 206, 209, 212, 215)}
	match := tennis.Match{ID: 1}

	err := sim.Simulate(context.Background(), &match, home, visitor, 2, 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TC Nord 1")
}
