package standings

import (
	"sort"

	"github.com/fbaudier/interclubs/internal/tennis"
)

// Row is one team's record in a pool standings table.
type Row struct {
	TeamID      int64  `json:"team_id"`
	TeamName    string `json:"team_name"`
	Played      int    `json:"played"`
	Wins        int    `json:"wins"`
	Draws       int    `json:"draws"`
	Losses      int    `json:"losses"`
	Points      int    `json:"points"`
	RubbersWon  int    `json:"rubbers_won"`
	RubbersLost int    `json:"rubbers_lost"`
	RubberDiff  int    `json:"rubber_diff"`
	SetDiff     int    `json:"set_diff"`
	GameDiff    int    `json:"game_diff"`
}

// League points per fixture outcome. A loss still scores one point; that is
// how this league counts, not an off-by-one.
const (
	winPoints  = 3
	drawPoints = 2
	lossPoints = 1
)

// Compute builds the standings table of a pool. rubbersPerFixture is the
// championship's singles+doubles count, used to derive rubbers lost from
// rubbers won. Sorted by points, then rubber, set and game differentials;
// exact ties keep the pool's team order.
func Compute(pool tennis.Pool, rubbersPerFixture int) []Row {
	rows := make([]Row, 0, len(pool.Teams))
	for _, team := range pool.Teams {
		row := Row{TeamID: team.ID, TeamName: team.Name}
		for _, match := range pool.Matches {
			if !match.Played {
				continue
			}
			var own, opp int
			var home bool
			switch team.ID {
			case match.HomeTeamID:
				own, opp, home = match.HomeScore, match.VisitorScore, true
			case match.VisitorTeamID:
				own, opp, home = match.VisitorScore, match.HomeScore, false
			default:
				continue
			}
			row.Played++
			row.RubbersWon += own
			switch {
			case own > opp:
				row.Wins++
				row.Points += winPoints
			case own < opp:
				row.Losses++
				row.Points += lossPoints
			default:
				row.Draws++
				row.Points += drawPoints
			}
			if len(match.Singles)+len(match.Doubles) == 0 {
				continue
			}
			homeSets, visitorSets := match.SetsCount()
			homeGames, visitorGames := match.GamesCount()
			if home {
				row.SetDiff += homeSets - visitorSets
				row.GameDiff += homeGames - visitorGames
			} else {
				row.SetDiff += visitorSets - homeSets
				row.GameDiff += visitorGames - homeGames
			}
		}
		row.RubbersLost = row.Played*rubbersPerFixture - row.RubbersWon
		row.RubberDiff = row.RubbersWon - row.RubbersLost
		rows = append(rows, row)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		if a.RubberDiff != b.RubberDiff {
			return a.RubberDiff > b.RubberDiff
		}
		if a.SetDiff != b.SetDiff {
			return a.SetDiff > b.SetDiff
		}
		return a.GameDiff > b.GameDiff
	})
	return rows
}
