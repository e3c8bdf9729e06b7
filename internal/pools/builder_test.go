package pools

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fbaudier/interclubs/internal/tennis"
)

func team(id int64, rankings ...int) tennis.Team {
	players := make([]tennis.Player, len(rankings))
	for i, r := range rankings {
		players[i] = tennis.Player{Ranking: r}
	}
	return tennis.Team{ID: id, Players: players}
}

func TestBuildSixTeamsThreeMatchdays(t *testing.T) {
	// Weakest two teams (highest weight) end up exempted; the four strongest
	// fill one pool of maxRounds+1 teams.
	teams := []tennis.Team{
		team(1, 10, 12),
		team(2, 20, 22),
		team(3, 30, 32),
		team(4, 40, 42),
		team(5, 50, 52),
		team(6, 60, 62),
	}
	builder := NewBuilder(2, rand.New(rand.NewSource(1)))

	pools, exempted, err := builder.Build(teams, 3)
	require.NoError(t, err)

	require.Len(t, pools, 1)
	assert.Equal(t, "A", pools[0].Letter)
	assert.Len(t, pools[0].Teams, 4)
	assert.False(t, pools[0].IsExempted())

	require.Len(t, exempted.Teams, 2)
	assert.True(t, exempted.IsExempted())
	exemptedIDs := []int64{exempted.Teams[0].ID, exempted.Teams[1].ID}
	assert.ElementsMatch(t, []int64{5, 6}, exemptedIDs)

	poolIDs := make([]int64, 0, 4)
	for _, tm := range pools[0].Teams {
		poolIDs = append(poolIDs, tm.ID)
	}
	assert.ElementsMatch(t, []int64{1, 2, 3, 4}, poolIDs)
}

func TestBuildMultiplePools(t *testing.T) {
	teams := make([]tennis.Team, 0, 9)
	for i := 1; i <= 9; i++ {
		teams = append(teams, team(int64(i), i*10, i*10+1))
	}
	builder := NewBuilder(2, rand.New(rand.NewSource(7)))

	pools, exempted, err := builder.Build(teams, 2)
	require.NoError(t, err)

	require.Len(t, pools, 3)
	assert.Equal(t, "A", pools[0].Letter)
	assert.Equal(t, "B", pools[1].Letter)
	assert.Equal(t, "C", pools[2].Letter)
	assert.Empty(t, exempted.Teams)

	total := 0
	seen := make(map[int64]bool)
	for _, pool := range pools {
		assert.Len(t, pool.Teams, 3)
		total += len(pool.Teams)
		for _, tm := range pool.Teams {
			assert.False(t, seen[tm.ID], "team %d assigned twice", tm.ID)
			seen[tm.ID] = true
		}
	}
	assert.Equal(t, len(teams), total)
}

func TestBuildFewTeamsCapsPoolSize(t *testing.T) {
	teams := []tennis.Team{team(1, 10), team(2, 20), team(3, 30)}
	builder := NewBuilder(1, rand.New(rand.NewSource(3)))

	pools, exempted, err := builder.Build(teams, 5)
	require.NoError(t, err)

	require.Len(t, pools, 1)
	assert.Len(t, pools[0].Teams, 3)
	assert.Empty(t, exempted.Teams)
}

func TestBuildIsReproducibleWithSeed(t *testing.T) {
	teams := make([]tennis.Team, 0, 8)
	for i := 1; i <= 8; i++ {
		teams = append(teams, team(int64(i), i*5))
	}

	first, _, err := NewBuilder(1, rand.New(rand.NewSource(42))).Build(teams, 3)
	require.NoError(t, err)
	second, _, err := NewBuilder(1, rand.New(rand.NewSource(42))).Build(teams, 3)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestBuildValidation(t *testing.T) {
	_, _, err := NewBuilder(1, rand.New(rand.NewSource(1))).Build(nil, 3)
	assert.Error(t, err)

	_, _, err = NewBuilder(1, rand.New(rand.NewSource(1))).Build([]tennis.Team{team(1, 1)}, 0)
	assert.Error(t, err)
}
