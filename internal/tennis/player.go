package tennis

import (
	"fmt"
	"strings"
	"time"
)

// Club is a tennis club. Owned by the persistence layer, referenced by id.
type Club struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	City string `json:"city"`
}

// ShortName strips any parenthesised suffix from the club name, e.g.
// "TC Neuilly (92)" -> "TC Neuilly".
func (c Club) ShortName() string {
	name := c.Name
	for {
		open := strings.Index(name, "(")
		if open == -1 {
			break
		}
		close := strings.Index(name[open:], ")")
		if close == -1 {
			break
		}
		name = name[:open] + name[open+close+1:]
	}
	return strings.TrimSpace(name)
}

// Injury is a recorded injury; only the count feeds the rating model.
type Injury struct {
	ID   int64      `json:"id"`
	Type InjuryType `json:"type"`
	Name string     `json:"name"`
	Site string     `json:"site"`
}

// Player is a licensed club player. Ranking and BestRanking are positions in
// the ranking ladder (1-based, lower = stronger). BestRanking 0 means no
// historical best is recorded.
type Player struct {
	ID            int64     `json:"id"`
	FirstName     string    `json:"first_name"`
	LastName      string    `json:"last_name"`
	BirthDate     time.Time `json:"birth_date"`
	Gender        Gender    `json:"gender"`
	ClubID        string    `json:"club_id"`
	LicenseNumber int64     `json:"license_number"`
	LicenseLetter string    `json:"license_letter"`
	Ranking       int       `json:"ranking"`
	BestRanking   int       `json:"best_ranking"`
	Injuries      []Injury  `json:"injuries,omitempty"`
	Active        bool      `json:"active"`
}

// Name is the display name, "Justine H." style.
func (p Player) Name() string {
	if p.LastName == "" {
		return p.FirstName
	}
	return fmt.Sprintf("%s %s.", p.FirstName, p.LastName[:1])
}

// Age in whole years at the given date.
func (p Player) Age(at time.Time) int {
	age := at.Year() - p.BirthDate.Year()
	if at.Month() < p.BirthDate.Month() ||
		(at.Month() == p.BirthDate.Month() && at.Day() < p.BirthDate.Day()) {
		age--
	}
	return age
}

// AgeCategory is an age bracket a championship is restricted to.
type AgeCategory struct {
	Type   CategoryType `json:"type"`
	MinAge int          `json:"min_age"`
	MaxAge int          `json:"max_age"`
}

func (a AgeCategory) Name() string {
	switch a.Type {
	case Youth:
		return fmt.Sprintf("U%d", a.MaxAge)
	case Veteran:
		return fmt.Sprintf("%s %d", a.Type, a.MinAge)
	default:
		return a.Type.String()
	}
}

// HasValidAge reports whether the player falls inside the category bracket.
func (p Player) HasValidAge(cat AgeCategory, at time.Time) bool {
	age := p.Age(at)
	return cat.MinAge <= age && age <= cat.MaxAge
}

// Division identifies the level, age category and gender of a championship.
type Division struct {
	Type        DivisionType `json:"type"`
	Number      int          `json:"number"` // level within the type, 0 if not applicable
	Gender      Gender       `json:"gender"`
	AgeCategory AgeCategory  `json:"age_category"`
}

func (d Division) Name() string {
	level := ""
	if d.Number > 0 {
		level = fmt.Sprintf(" %d", d.Number)
	}
	return fmt.Sprintf("%s%s - %s - %s", d.Type, level, d.AgeCategory.Name(), d.Gender)
}
