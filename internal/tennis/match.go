package tennis

import "time"

// Side distinguishes the two sides of a fixture or rubber.
type Side int

const (
	HomeSide Side = iota
	VisitorSide
	NoSide
)

// Match is one fixture between two teams of a pool, played on a matchday.
// Created by the scheduler with an empty score; the simulator attaches rubber
// results and the final score.
type Match struct {
	ID            int64     `json:"id"`
	PoolID        int64     `json:"pool_id"`
	MatchdayID    int64     `json:"matchday_id"`
	Round         int       `json:"round"`
	Date          time.Time `json:"date"`
	HomeTeamID    int64     `json:"home_team_id"`
	VisitorTeamID int64     `json:"visitor_team_id"`
	HomeScore     int       `json:"home_score"`
	VisitorScore  int       `json:"visitor_score"`
	Played        bool      `json:"played"`
	Singles       []Single  `json:"singles,omitempty"`
	Doubles       []Double  `json:"doubles,omitempty"`
}

// Winner returns the winning side, or NoSide for a draw or an unplayed fixture.
func (m Match) Winner() Side {
	if !m.Played {
		return NoSide
	}
	switch {
	case m.HomeScore > m.VisitorScore:
		return HomeSide
	case m.HomeScore < m.VisitorScore:
		return VisitorSide
	}
	return NoSide
}

// SetsCount sums the sets won by each side across all recorded rubbers.
func (m Match) SetsCount() (home, visitor int) {
	for _, s := range m.Singles {
		h, v := s.Score.SetsCount()
		home += h
		visitor += v
	}
	for _, d := range m.Doubles {
		h, v := d.Score.SetsCount()
		home += h
		visitor += v
	}
	return home, visitor
}

// GamesCount sums the games won by each side across all recorded rubbers.
func (m Match) GamesCount() (home, visitor int) {
	for _, s := range m.Singles {
		h, v := s.Score.GamesCount()
		home += h
		visitor += v
	}
	for _, d := range m.Doubles {
		h, v := d.Score.GamesCount()
		home += h
		visitor += v
	}
	return home, visitor
}

// Single is one singles rubber: home player 1 against visitor player 2.
type Single struct {
	ID        int64 `json:"id"`
	MatchID   int64 `json:"match_id"`
	Player1ID int64 `json:"player1_id"`
	Player2ID int64 `json:"player2_id"`
	Score     Score `json:"score"`
}

// Double is one doubles rubber: home pair 1/2 against visitor pair 3/4.
type Double struct {
	ID        int64 `json:"id"`
	MatchID   int64 `json:"match_id"`
	Player1ID int64 `json:"player1_id"`
	Player2ID int64 `json:"player2_id"`
	Player3ID int64 `json:"player3_id"`
	Player4ID int64 `json:"player4_id"`
	Score     Score `json:"score"`
}
