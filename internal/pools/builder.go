package pools

import (
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/fbaudier/interclubs/internal/tennis"
)

// Builder partitions candidate teams into lettered pools of equal size plus
// one exempted pool for the surplus. The random source drives the seeding
// shuffle; inject a seeded one for reproducible draws.
type Builder struct {
	singles int
	rng     *rand.Rand
}

func NewBuilder(singles int, rng *rand.Rand) *Builder {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Builder{singles: singles, rng: rng}
}

// Build sorts candidates by weight, keeps the strongest teams that fill whole
// pools of maxRounds+1 teams, shuffles their seeding and slices them into
// lettered pools. The remainder lands in the unlettered exempted pool.
func (b *Builder) Build(teams []tennis.Team, maxRounds int) ([]tennis.Pool, tennis.Pool, error) {
	if len(teams) == 0 {
		return nil, tennis.Pool{}, fmt.Errorf("no candidate teams")
	}
	if maxRounds < 1 {
		return nil, tennis.Pool{}, fmt.Errorf("invalid matchday count %d", maxRounds)
	}

	rounds := len(teams) - 1
	if maxRounds < rounds {
		rounds = maxRounds
	}
	teamsPerPool := rounds + 1
	numPools := len(teams) / teamsPerPool

	candidates := make([]tennis.Team, len(teams))
	copy(candidates, teams)
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Weight(b.singles) < candidates[j].Weight(b.singles)
	})

	selected := candidates[:numPools*teamsPerPool]
	exempted := tennis.Pool{Teams: candidates[numPools*teamsPerPool:]}

	b.rng.Shuffle(len(selected), func(i, j int) {
		selected[i], selected[j] = selected[j], selected[i]
	})

	built := make([]tennis.Pool, 0, numPools)
	for i := 0; i < numPools; i++ {
		pool := tennis.Pool{
			Letter: string(rune('A' + i)),
			Teams:  selected[i*teamsPerPool : (i+1)*teamsPerPool],
		}
		built = append(built, pool)
	}
	return built, exempted, nil
}
