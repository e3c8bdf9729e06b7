package scheduling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduleTooFewTeams(t *testing.T) {
	_, err := Schedule(0)
	assert.Error(t, err)
	_, err = Schedule(1)
	assert.Error(t, err)
}

func TestScheduleFourTeams(t *testing.T) {
	rounds, err := Schedule(4)
	require.NoError(t, err)

	expected := [][]Pair{
		{{3, 4}, {1, 2}},
		{{1, 3}, {2, 4}},
		{{1, 4}, {2, 3}},
	}
	assert.Equal(t, expected, rounds)
}

func TestScheduleFiveTeams(t *testing.T) {
	rounds, err := Schedule(5)
	require.NoError(t, err)

	expected := [][]Pair{
		{{4, 5}, {2, 3}},
		{{1, 4}, {2, 5}},
		{{1, 3}, {2, 4}},
		{{1, 5}, {3, 4}},
		{{1, 2}, {3, 5}},
	}
	assert.Equal(t, expected, rounds)
}

func TestScheduleCompleteness(t *testing.T) {
	for n := 2; n <= 12; n++ {
		rounds, err := Schedule(n)
		require.NoError(t, err)
		assert.Len(t, rounds, Rounds(n), "n=%d", n)

		seen := make(map[Pair]bool)
		for _, round := range rounds {
			for _, pair := range round {
				assert.Less(t, pair.Home, pair.Visitor, "n=%d pair %v", n, pair)
				assert.GreaterOrEqual(t, pair.Home, 1, "n=%d pair %v", n, pair)
				assert.LessOrEqual(t, pair.Visitor, n, "n=%d pair %v", n, pair)
				assert.False(t, seen[pair], "n=%d repeated pair %v", n, pair)
				seen[pair] = true
			}
		}
		assert.Len(t, seen, n*(n-1)/2, "n=%d", n)
	}
}

func TestScheduleRoundsAreDisjoint(t *testing.T) {
	for _, n := range []int{2, 4, 5} {
		rounds, err := Schedule(n)
		require.NoError(t, err)
		for r, round := range rounds {
			busy := make(map[int]bool)
			for _, pair := range round {
				assert.False(t, busy[pair.Home], "n=%d round %d team %d plays twice", n, r, pair.Home)
				assert.False(t, busy[pair.Visitor], "n=%d round %d team %d plays twice", n, r, pair.Visitor)
				busy[pair.Home] = true
				busy[pair.Visitor] = true
			}
		}
	}
}

func TestScheduleIsDeterministic(t *testing.T) {
	first, err := Schedule(8)
	require.NoError(t, err)
	second, err := Schedule(8)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
