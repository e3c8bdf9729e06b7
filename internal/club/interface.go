package club

import (
	"time"

	"github.com/fbaudier/interclubs/internal/ranking"
	"github.com/fbaudier/interclubs/internal/tennis"
)

// ClubStore defines the interface for interacting with club, player and
// ladder data.
type ClubStore interface {
	UpsertClub(club tennis.Club) error
	GetClub(id string) (*tennis.Club, error)
	GetClubs() ([]tennis.Club, error)
	AddPlayer(player *tennis.Player) error
	UpsertPlayers(players []*tennis.Player) error
	GetPlayer(id int64) (*tennis.Player, error)
	GetEligiblePlayers(gender tennis.Gender, clubID string, category tennis.AgeCategory, at time.Time, activeOnly bool) ([]tennis.Player, error)
	AddInjury(playerID int64, injury tennis.Injury) error
	SeedLadder(ladder *ranking.Ladder) error
	LoadLadder() (*ranking.Ladder, error)
	Clear() error
}
