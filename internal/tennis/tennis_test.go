package tennis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestScoreString(t *testing.T) {
	straight := Score{FirstSetP1: 6, FirstSetP2: 4, SecondSetP1: 6, SecondSetP2: 2}
	assert.Equal(t, "6/4 - 6/2", straight.String())

	withTieBreak := Score{
		FirstSetP1: 6, FirstSetP2: 4,
		SecondSetP1: 6, SecondSetP2: 7, SecondTieBreak: IntPtr(5),
		ThirdSetP1: IntPtr(1), ThirdSetP2: IntPtr(0), SuperTieBreak: IntPtr(7),
	}
	assert.Equal(t, "6/4 - 6/7 (5) - 10/7", withTieBreak.String())

	longTieBreak := Score{
		FirstSetP1: 4, FirstSetP2: 6,
		SecondSetP1: 7, SecondSetP2: 6, SecondTieBreak: IntPtr(3),
		ThirdSetP1: IntPtr(0), ThirdSetP2: IntPtr(1), SuperTieBreak: IntPtr(11),
	}
	assert.Equal(t, "4/6 - 7/6 (3) - 11/13", longTieBreak.String())
}

func TestScoreCounts(t *testing.T) {
	score := Score{
		FirstSetP1: 6, FirstSetP2: 4,
		SecondSetP1: 3, SecondSetP2: 6,
		ThirdSetP1: IntPtr(1), ThirdSetP2: IntPtr(0), SuperTieBreak: IntPtr(8),
	}

	home, visitor := score.SetsCount()
	assert.Equal(t, 2, home)
	assert.Equal(t, 1, visitor)

	homeGames, visitorGames := score.GamesCount()
	assert.Equal(t, 10, homeGames)
	assert.Equal(t, 10, visitorGames)

	assert.Equal(t, HomeSide, score.Winner())
}

func TestMatchWinner(t *testing.T) {
	assert.Equal(t, NoSide, Match{HomeScore: 3, VisitorScore: 1}.Winner())
	assert.Equal(t, HomeSide, Match{HomeScore: 3, VisitorScore: 1, Played: true}.Winner())
	assert.Equal(t, VisitorSide, Match{HomeScore: 1, VisitorScore: 3, Played: true}.Winner())
	assert.Equal(t, NoSide, Match{HomeScore: 2, VisitorScore: 2, Played: true}.Winner())
}

func TestTeamWeight(t *testing.T) {
	team := Team{Players: []Player{
		{Ranking: 12}, {Ranking: 15}, {Ranking: 20}, {Ranking: 31}, {Ranking: 40},
	}}
	assert.Equal(t, 47, team.Weight(3))
	assert.Equal(t, 118, team.Weight(10))
}

func TestClubShortName(t *testing.T) {
	assert.Equal(t, "TC Neuilly", Club{Name: "TC Neuilly (92)"}.ShortName())
	assert.Equal(t, "Lagardere Paris Racing", Club{Name: "Lagardere Paris Racing"}.ShortName())
	assert.Equal(t, "US Metro", Club{Name: "US Metro (Paris) (75)"}.ShortName())
}

func TestPlayerAge(t *testing.T) {
	player := Player{BirthDate: time.Date(1990, 6, 15, 0, 0, 0, 0, time.UTC)}

	assert.Equal(t, 35, player.Age(time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 34, player.Age(time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 35, player.Age(time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)))
}

func TestPlayerHasValidAge(t *testing.T) {
	at := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	veteran := AgeCategory{Type: Veteran, MinAge: 35, MaxAge: 150}

	old := Player{BirthDate: time.Date(1985, 1, 1, 0, 0, 0, 0, time.UTC)}
	young := Player{BirthDate: time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)}
	assert.True(t, old.HasValidAge(veteran, at))
	assert.False(t, young.HasValidAge(veteran, at))
}

func TestPoolIsValidSchedule(t *testing.T) {
	teams := []Team{{ID: 1}, {ID: 2}, {ID: 3}, {ID: 4}}

	valid := Pool{Teams: teams, Matches: []Match{
		{HomeTeamID: 3, VisitorTeamID: 4}, {HomeTeamID: 1, VisitorTeamID: 2},
		{HomeTeamID: 1, VisitorTeamID: 3}, {HomeTeamID: 2, VisitorTeamID: 4},
		{HomeTeamID: 1, VisitorTeamID: 4}, {HomeTeamID: 2, VisitorTeamID: 3},
	}}
	assert.True(t, valid.IsValidSchedule())

	missing := Pool{Teams: teams, Matches: valid.Matches[:5]}
	assert.False(t, missing.IsValidSchedule())
}

func TestDivisionName(t *testing.T) {
	division := Division{
		Type:        Regional,
		Number:      2,
		Gender:      Female,
		AgeCategory: AgeCategory{Type: Senior, MinAge: 18, MaxAge: 150},
	}
	assert.Equal(t, "Régional 2 - Seniors - Féminin", division.Name())
}
