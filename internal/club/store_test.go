package club

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fbaudier/interclubs/internal/database"
	"github.com/fbaudier/interclubs/internal/ranking"
	"github.com/fbaudier/interclubs/internal/tennis"
)

func newTestStore(t *testing.T) ClubStore {
	t.Helper()
	db, teardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)
	t.Cleanup(teardown)

	store := New(db)
	require.NoError(t, store.SeedLadder(ranking.DefaultLadder()))
	require.NoError(t, store.UpsertClub(tennis.Club{ID: "57060180", Name: "TC Neuilly (92)", City: "Neuilly"}))
	return store
}

func testPlayer(clubID string, gender tennis.Gender, birthYear, rankingPos int) *tennis.Player {
	return &tennis.Player{
		FirstName:     "Alex",
		LastName:      "Martin",
		BirthDate:     time.Date(birthYear, 1, 1, 0, 0, 0, 0, time.UTC),
		Gender:        gender,
		ClubID:        clubID,
		LicenseNumber: 1234567,
		LicenseLetter: "A",
		Ranking:       rankingPos,
		Active:        true,
	}
}

func TestSeedAndLoadLadder(t *testing.T) {
	store := newTestStore(t)

	ladder, err := store.LoadLadder()
	require.NoError(t, err)
	assert.Equal(t, 224, ladder.Len())

	pos, err := ladder.Position("15/4")
	require.NoError(t, err)
	assert.Equal(t, 214, pos)
}

func TestUpsertClub(t *testing.T) {
	store := newTestStore(t)

	club, err := store.GetClub("57060180")
	require.NoError(t, err)
	assert.Equal(t, "TC Neuilly (92)", club.Name)

	require.NoError(t, store.UpsertClub(tennis.Club{ID: "57060180", Name: "TC Neuilly (92)", City: "Neuilly-sur-Seine"}))
	club, err = store.GetClub("57060180")
	require.NoError(t, err)
	assert.Equal(t, "Neuilly-sur-Seine", club.City)

	clubs, err := store.GetClubs()
	require.NoError(t, err)
	assert.Len(t, clubs, 1)

	_, err = store.GetClub("00000000")
	assert.Error(t, err)
}

func TestAddAndGetPlayer(t *testing.T) {
	store := newTestStore(t)

	player := testPlayer("57060180", tennis.Male, 1990, 214)
	require.NoError(t, store.AddPlayer(player))
	require.NotZero(t, player.ID)

	got, err := store.GetPlayer(player.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alex", got.FirstName)
	assert.Equal(t, 214, got.Ranking)
	assert.Equal(t, 1990, got.BirthDate.Year())
	assert.True(t, got.Active)
	assert.Empty(t, got.Injuries)
}

func TestAddInjury(t *testing.T) {
	store := newTestStore(t)

	player := testPlayer("57060180", tennis.Male, 1990, 214)
	require.NoError(t, store.AddPlayer(player))
	require.NoError(t, store.AddInjury(player.ID, tennis.Injury{Type: tennis.AcuteInjury, Name: "Entorse", Site: "Cheville"}))

	got, err := store.GetPlayer(player.ID)
	require.NoError(t, err)
	require.Len(t, got.Injuries, 1)
	assert.Equal(t, "Entorse", got.Injuries[0].Name)
}

func TestGetEligiblePlayers(t *testing.T) {
	store := newTestStore(t)
	at := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	seniors := tennis.AgeCategory{Type: tennis.Senior, MinAge: 18, MaxAge: 99}

	weak := testPlayer("57060180", tennis.Male, 1992, 220)
	strong := testPlayer("57060180", tennis.Male, 1988, 205)
	female := testPlayer("57060180", tennis.Female, 1991, 210)
	young := testPlayer("57060180", tennis.Male, 2012, 212)
	inactive := testPlayer("57060180", tennis.Male, 1990, 208)
	inactive.Active = false
	require.NoError(t, store.UpsertPlayers([]*tennis.Player{weak, strong, female, young, inactive}))

	players, err := store.GetEligiblePlayers(tennis.Male, "57060180", seniors, at, true)
	require.NoError(t, err)
	require.Len(t, players, 2)
	// Ordered by ladder position, strongest first.
	assert.Equal(t, strong.ID, players[0].ID)
	assert.Equal(t, weak.ID, players[1].ID)

	// A mixed filter matches both genders.
	players, err = store.GetEligiblePlayers(tennis.Mixed, "57060180", seniors, at, true)
	require.NoError(t, err)
	assert.Len(t, players, 3)

	// Inactive players are included when activeOnly is off.
	players, err = store.GetEligiblePlayers(tennis.Male, "57060180", seniors, at, false)
	require.NoError(t, err)
	assert.Len(t, players, 3)
}

func TestClear(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.AddPlayer(testPlayer("57060180", tennis.Male, 1990, 214)))

	require.NoError(t, store.Clear())

	clubs, err := store.GetClubs()
	require.NoError(t, err)
	assert.Empty(t, clubs)
	_, err = store.LoadLadder()
	assert.Error(t, err)
}
