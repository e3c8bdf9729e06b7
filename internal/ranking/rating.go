package ranking

import (
	"fmt"
	"math"
	"time"

	"github.com/fbaudier/interclubs/internal/tennis"
)

// Constants of the strength model. The weight scales ladder deltas into an
// ELO-like spread; the peak age and decay rate discount a historical best
// ranking by how far the player is from their assumed prime.
const (
	eloWeight     = 15
	peakAge       = 25
	ageDecayRate  = 0.007
	injuryDivisor = 15
)

// Model turns ladder positions into strength scores. Pure and stateless
// besides the immutable ladder.
type Model struct {
	ladder *Ladder
}

func NewModel(ladder *Ladder) *Model {
	return &Model{ladder: ladder}
}

// strength converts a ladder position into a score. First-series positions
// are numerous and tightly packed, so their delta above the second-series
// boundary is compressed tenfold.
func (m *Model) strength(pos int) (int, error) {
	if pos < 1 || pos > m.ladder.Len() {
		return 0, fmt.Errorf("ranking position %d outside ladder [1,%d]", pos, m.ladder.Len())
	}
	var delta int
	if pos < m.ladder.secondSeriesPos {
		delta = (m.ladder.secondSeriesPos-pos)/10 + m.ladder.ncPos - m.ladder.secondSeriesPos
	} else {
		delta = m.ladder.ncPos - pos
	}
	return delta * eloWeight, nil
}

// CurrentStrength is the score of the player's current ranking.
func (m *Model) CurrentStrength(p tennis.Player) (int, error) {
	strength, err := m.strength(p.Ranking)
	if err != nil {
		return 0, fmt.Errorf("current strength of player %d: %w", p.ID, err)
	}
	return strength, nil
}

// BestStrength is the score of the player's historical best ranking, falling
// back to the current ranking when no best is recorded.
func (m *Model) BestStrength(p tennis.Player) (int, error) {
	if p.BestRanking == 0 {
		return m.CurrentStrength(p)
	}
	strength, err := m.strength(p.BestRanking)
	if err != nil {
		return 0, fmt.Errorf("best strength of player %d: %w", p.ID, err)
	}
	return strength, nil
}

// RefinedStrength blends the historical best into the current strength,
// discounted by distance from peak age and by injury count. Never below the
// current strength.
func (m *Model) RefinedStrength(p tennis.Player, at time.Time) (int, error) {
	current, err := m.CurrentStrength(p)
	if err != nil {
		return 0, err
	}
	best, err := m.BestStrength(p)
	if err != nil {
		return 0, err
	}
	if best <= current {
		return current, nil
	}
	ageFactor := 1 - math.Abs(float64(p.Age(at)-peakAge))*ageDecayRate
	injuryFactor := 1 - float64(len(p.Injuries))/injuryDivisor
	if injuryFactor < 0 {
		injuryFactor = 0
	}
	refined := int(math.Round(float64(best) * ageFactor * injuryFactor))
	if refined < current {
		return current, nil
	}
	return refined, nil
}
