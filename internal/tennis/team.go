package tennis

import "time"

// Team is an ordered roster of players entered in a championship. Players are
// kept sorted by ranking position ascending (strongest first).
type Team struct {
	ID        int64    `json:"id"`
	Name      string   `json:"name"`
	ClubID    string   `json:"club_id"`
	CaptainID int64    `json:"captain_id"`
	PoolID    int64    `json:"pool_id"` // 0 until assigned
	Players   []Player `json:"players"`
}

// Weight is the seeding weight of the team: the sum of the ladder positions of
// the top `singles` players. Lower weight means a stronger team, since ladder
// position 1 is the strongest ranking. Used only for pool seeding, never as a
// simulation rating.
func (t Team) Weight(singles int) int {
	weight := 0
	for i, p := range t.Players {
		if i >= singles {
			break
		}
		weight += p.Ranking
	}
	return weight
}

// Championship is one division's team competition: S singles and D doubles
// rubbers per fixture, played over an ordered list of matchdays.
type Championship struct {
	ID           int64      `json:"id"`
	Division     Division   `json:"division"`
	SinglesCount int        `json:"singles_count"`
	DoublesCount int        `json:"doubles_count"`
	Matchdays    []Matchday `json:"matchdays"`
}

// RubbersPerFixture is the number of rubbers played in every fixture.
func (c Championship) RubbersPerFixture() int {
	return c.SinglesCount + c.DoublesCount
}

func (c Championship) Name() string {
	return c.Division.Name()
}

// Matchday is one calendar date of a championship. ReportDate is the fallback
// date a postponed fixture is replayed on.
type Matchday struct {
	ID             int64     `json:"id"`
	ChampionshipID int64     `json:"championship_id"`
	Date           time.Time `json:"date"`
	ReportDate     time.Time `json:"report_date"`
}

// Pool is a lettered group of teams inside a championship. The exempted pool
// has no letter and plays no fixtures.
type Pool struct {
	ID             int64   `json:"id"`
	Letter         string  `json:"letter"` // "" for the exempted pool
	ChampionshipID int64   `json:"championship_id"`
	Teams          []Team  `json:"teams,omitempty"`
	Matches        []Match `json:"matches,omitempty"`
}

func (p Pool) IsExempted() bool {
	return p.Letter == ""
}

// IsValidSchedule reports whether every team in the pool meets every other
// team exactly once across the pool's fixtures.
func (p Pool) IsValidSchedule() bool {
	encounters := make(map[int64]int, len(p.Teams))
	for _, t := range p.Teams {
		encounters[t.ID] = 0
	}
	for _, m := range p.Matches {
		encounters[m.HomeTeamID]++
		encounters[m.VisitorTeamID]++
	}
	for _, count := range encounters {
		if count != len(p.Teams)-1 {
			return false
		}
	}
	return true
}
