package tennis

import (
	"fmt"
	"strings"
)

// Score holds the full line of one rubber, home perspective first. Tie-break
// fields store the loser's points. A deciding third set played as a 10-point
// match tie-break is stored as 1/0 with the loser's points in SuperTieBreak.
type Score struct {
	ID             int64 `json:"id"`
	FirstSetP1     int   `json:"first_set_p1"`
	FirstSetP2     int   `json:"first_set_p2"`
	FirstTieBreak  *int  `json:"first_tie_break,omitempty"`
	SecondSetP1    int   `json:"second_set_p1"`
	SecondSetP2    int   `json:"second_set_p2"`
	SecondTieBreak *int  `json:"second_tie_break,omitempty"`
	ThirdSetP1     *int  `json:"third_set_p1,omitempty"`
	ThirdSetP2     *int  `json:"third_set_p2,omitempty"`
	SuperTieBreak  *int  `json:"super_tie_break,omitempty"`
}

// SetsCount returns the sets won by each side.
func (s Score) SetsCount() (home, visitor int) {
	if s.FirstSetP1 > s.FirstSetP2 {
		home++
	} else {
		visitor++
	}
	if s.SecondSetP1 > s.SecondSetP2 {
		home++
	} else {
		visitor++
	}
	if s.ThirdSetP1 != nil && s.ThirdSetP2 != nil {
		if *s.ThirdSetP1 > *s.ThirdSetP2 {
			home++
		} else {
			visitor++
		}
	}
	return home, visitor
}

// GamesCount returns the games won by each side across all sets played.
func (s Score) GamesCount() (home, visitor int) {
	home = s.FirstSetP1 + s.SecondSetP1
	visitor = s.FirstSetP2 + s.SecondSetP2
	if s.ThirdSetP1 != nil && s.ThirdSetP2 != nil {
		home += *s.ThirdSetP1
		visitor += *s.ThirdSetP2
	}
	return home, visitor
}

// Winner is the side with two sets.
func (s Score) Winner() Side {
	home, visitor := s.SetsCount()
	if home > visitor {
		return HomeSide
	}
	return VisitorSide
}

// String renders the line in the usual club-sheet form, e.g.
// "6/4 - 6/7 (5) - 10/7". The match tie-break shows the winner's real points,
// at least 10 and two clear of the loser.
func (s Score) String() string {
	var sets []string
	sets = append(sets, formatSet(s.FirstSetP1, s.FirstSetP2, s.FirstTieBreak))
	sets = append(sets, formatSet(s.SecondSetP1, s.SecondSetP2, s.SecondTieBreak))
	if s.ThirdSetP1 != nil && s.ThirdSetP2 != nil {
		if s.SuperTieBreak != nil {
			winner := *s.SuperTieBreak + 2
			if winner < 10 {
				winner = 10
			}
			if *s.ThirdSetP1 > *s.ThirdSetP2 {
				sets = append(sets, fmt.Sprintf("%d/%d", winner, *s.SuperTieBreak))
			} else {
				sets = append(sets, fmt.Sprintf("%d/%d", *s.SuperTieBreak, winner))
			}
		} else {
			sets = append(sets, formatSet(*s.ThirdSetP1, *s.ThirdSetP2, nil))
		}
	}
	return strings.Join(sets, " - ")
}

func formatSet(p1, p2 int, tieBreak *int) string {
	if tieBreak != nil {
		return fmt.Sprintf("%d/%d (%d)", p1, p2, *tieBreak)
	}
	return fmt.Sprintf("%d/%d", p1, p2)
}

// IntPtr is a small helper for building scores with optional fields.
func IntPtr(v int) *int {
	return &v
}
