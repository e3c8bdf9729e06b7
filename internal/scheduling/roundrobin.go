package scheduling

import (
	"fmt"
	"sort"
)

// Pair is one fixture between two 1-based team numbers, lower number first.
type Pair struct {
	Home    int
	Visitor int
}

// Schedule produces a round-robin fixture list for n teams: every unordered
// pair exactly once, grouped into rounds of n/2 fixtures. Even n yields n-1
// rounds; odd n yields n rounds with one team resting per round.
//
// The pairing order is driven by a waiting-time heuristic: teams that have
// rested longest are paired first. Fully deterministic given n.
func Schedule(n int) ([][]Pair, error) {
	if n < 2 {
		return nil, fmt.Errorf("cannot schedule a round robin for %d team(s)", n)
	}

	total := n * (n - 1) / 2
	waiting := make([]int, n)
	for i := range waiting {
		waiting[i] = i
	}
	used := make(map[Pair]bool, total)
	pairs := make([]Pair, 0, total)

	type slot struct{ i, j int }
	template := make([]slot, 0, total)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			template = append(template, slot{i, j})
		}
	}

	order := make([]int, n)
	for len(pairs) < total {
		for i := range order {
			order[i] = i
		}
		sort.SliceStable(order, func(a, b int) bool {
			return waiting[order[a]] > waiting[order[b]]
		})

		committed := false
		for _, s := range template {
			a, b := order[s.i], order[s.j]
			if a > b {
				a, b = b, a
			}
			pair := Pair{Home: a + 1, Visitor: b + 1}
			if used[pair] {
				continue
			}
			used[pair] = true
			pairs = append(pairs, pair)
			for k := range waiting {
				waiting[k]++
			}
			waiting[a], waiting[b] = 0, 0
			committed = true
			break
		}
		if !committed {
			return nil, fmt.Errorf("round robin for %d teams stalled after %d of %d pairs", n, len(pairs), total)
		}
	}

	perRound := n / 2
	rounds := make([][]Pair, 0, (total+perRound-1)/perRound)
	for start := 0; start < total; start += perRound {
		end := start + perRound
		if end > total {
			end = total
		}
		rounds = append(rounds, pairs[start:end])
	}
	return rounds, nil
}

// Rounds returns the number of rounds Schedule produces for n teams.
func Rounds(n int) int {
	if n < 2 {
		return 0
	}
	if n%2 == 0 {
		return n - 1
	}
	return n
}
