package simulation

import (
	"math"
	"math/rand"
	"time"

	"github.com/fbaudier/interclubs/internal/tennis"
)

const (
	setTieBreakTarget   = 7
	superTieBreakTarget = 10
)

// Simulator plays games, sets and tie-breaks point by point. The random
// source is injectable so simulations can be reproduced from a seed.
type Simulator struct {
	rng *rand.Rand
}

func New(rng *rand.Rand) *Simulator {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Simulator{rng: rng}
}

// StrengthFactor is the logistic win-probability curve on a strength
// difference, always below one half for a positive difference.
func StrengthFactor(diff float64) float64 {
	return 1 / (1 + math.Pow(10, diff/400))
}

// pointProbabilities maps two aggregate strengths to per-side point-win
// probabilities. The side with the larger strength sum receives the raw
// factor and the underdog its complement, so the underdog is the favorite on
// every point. That is how this model has always scored and callers rely on
// the resulting score spread.
func pointProbabilities(strength1, strength2 int) (p1, p2 float64) {
	factor := StrengthFactor(math.Abs(float64(strength1 - strength2)))
	if strength1 >= strength2 {
		return factor, 1 - factor
	}
	return 1 - factor, factor
}

// point awards one point to side 1 with probability p1/(p1+p2).
func (s *Simulator) point(p1, p2 float64) tennis.Side {
	if s.rng.Float64() < p1/(p1+p2) {
		return tennis.HomeSide
	}
	return tennis.VisitorSide
}

// playGame plays points until a side reaches four with a two-point lead.
func (s *Simulator) playGame(p1, p2 float64) tennis.Side {
	points1, points2 := 0, 0
	for {
		if s.point(p1, p2) == tennis.HomeSide {
			points1++
		} else {
			points2++
		}
		if points1 >= 4 && points1-points2 >= 2 {
			return tennis.HomeSide
		}
		if points2 >= 4 && points2-points1 >= 2 {
			return tennis.VisitorSide
		}
	}
}

// playTieBreak plays points until a side reaches target with a two-point lead.
func (s *Simulator) playTieBreak(p1, p2 float64, target int) (points1, points2 int) {
	for {
		if s.point(p1, p2) == tennis.HomeSide {
			points1++
		} else {
			points2++
		}
		if points1 >= target && points1-points2 >= 2 {
			return points1, points2
		}
		if points2 >= target && points2-points1 >= 2 {
			return points1, points2
		}
	}
}

// playSet plays games until a side reaches six with a two-game lead; 6-6 is
// decided by a seven-point tie-break and recorded as 7-6 with the loser's
// tie-break points.
func (s *Simulator) playSet(p1, p2 float64) (games1, games2 int, tieBreak *int) {
	for {
		if s.playGame(p1, p2) == tennis.HomeSide {
			games1++
		} else {
			games2++
		}
		if games1 >= 6 && games1-games2 >= 2 {
			return games1, games2, nil
		}
		if games2 >= 6 && games2-games1 >= 2 {
			return games1, games2, nil
		}
		if games1 == 6 && games2 == 6 {
			points1, points2 := s.playTieBreak(p1, p2, setTieBreakTarget)
			if points1 > points2 {
				return 7, 6, &points2
			}
			return 6, 7, &points1
		}
	}
}

// BestOfThree plays a full rubber between two aggregate strengths: two sets,
// then a ten-point match tie-break when each side holds one. The tie-break is
// recorded as a 1-0 third set carrying the loser's points.
func (s *Simulator) BestOfThree(strength1, strength2 int) (tennis.Score, tennis.Side) {
	p1, p2 := pointProbabilities(strength1, strength2)

	var score tennis.Score
	score.FirstSetP1, score.FirstSetP2, score.FirstTieBreak = s.playSet(p1, p2)
	score.SecondSetP1, score.SecondSetP2, score.SecondTieBreak = s.playSet(p1, p2)

	sets1, sets2 := 0, 0
	if score.FirstSetP1 > score.FirstSetP2 {
		sets1++
	} else {
		sets2++
	}
	if score.SecondSetP1 > score.SecondSetP2 {
		sets1++
	} else {
		sets2++
	}
	if sets1 == 1 && sets2 == 1 {
		points1, points2 := s.playTieBreak(p1, p2, superTieBreakTarget)
		if points1 > points2 {
			score.ThirdSetP1, score.ThirdSetP2 = tennis.IntPtr(1), tennis.IntPtr(0)
			score.SuperTieBreak = &points2
		} else {
			score.ThirdSetP1, score.ThirdSetP2 = tennis.IntPtr(0), tennis.IntPtr(1)
			score.SuperTieBreak = &points1
		}
	}
	return score, score.Winner()
}
