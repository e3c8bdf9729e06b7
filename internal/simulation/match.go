package simulation

import (
	"context"
	"fmt"
	"sort"

	"github.com/charmbracelet/log"

	"github.com/fbaudier/interclubs/internal/ranking"
	"github.com/fbaudier/interclubs/internal/tennis"
)

// Recorder persists rubbers and match scores as they are produced, so a
// crashed run keeps its completed rubbers.
type Recorder interface {
	RecordSingle(ctx context.Context, single *tennis.Single) error
	RecordDouble(ctx context.Context, double *tennis.Double) error
	UpdateMatchScore(ctx context.Context, match *tennis.Match) error
}

// MatchSimulator plays every rubber of a fixture between two rosters and
// aggregates the outcomes into the fixture score.
type MatchSimulator struct {
	model    *ranking.Model
	points   *Simulator
	recorder Recorder
	logger   *log.Logger
}

func NewMatchSimulator(model *ranking.Model, points *Simulator, recorder Recorder, logger *log.Logger) *MatchSimulator {
	return &MatchSimulator{
		model:    model,
		points:   points,
		recorder: recorder,
		logger:   logger,
	}
}

type ratedPlayer struct {
	player  tennis.Player
	current int
	refined int
}

// Simulate plays the fixture's singles and doubles rubbers, records each one
// through the Recorder and sets the fixture score. singles and doubles are
// the championship's rubber counts.
func (m *MatchSimulator) Simulate(ctx context.Context, match *tennis.Match, home, visitor tennis.Team, singles, doubles int) error {
	selectCount := singles + 2*doubles
	homeSquad, err := m.selectSquad(home, match, selectCount)
	if err != nil {
		return err
	}
	visitorSquad, err := m.selectSquad(visitor, match, selectCount)
	if err != nil {
		return err
	}

	match.Singles = match.Singles[:0]
	match.Doubles = match.Doubles[:0]
	homeWon, visitorWon := 0, 0

	// Singles pairings follow the current strength order on each side.
	homeOrder := byCurrent(homeSquad)
	visitorOrder := byCurrent(visitorSquad)
	for i := 0; i < singles; i++ {
		score, winner := m.points.BestOfThree(homeOrder[i].refined, visitorOrder[i].refined)
		single := tennis.Single{
			MatchID:   match.ID,
			Player1ID: homeOrder[i].player.ID,
			Player2ID: visitorOrder[i].player.ID,
			Score:     score,
		}
		if err := m.recorder.RecordSingle(ctx, &single); err != nil {
			return fmt.Errorf("recording single %d of match %d: %w", i+1, match.ID, err)
		}
		match.Singles = append(match.Singles, single)
		if winner == tennis.HomeSide {
			homeWon++
		} else {
			visitorWon++
		}
		m.logger.Debug("singles rubber played",
			"match", match.ID,
			"home", homeOrder[i].player.Name(),
			"visitor", visitorOrder[i].player.Name(),
			"score", score.String())
	}

	// Doubles pairs are consecutive players in the refined strength order.
	homeRefined := byRefined(homeSquad)
	visitorRefined := byRefined(visitorSquad)
	for i := 0; i < doubles; i++ {
		h1, h2 := homeRefined[2*i], homeRefined[2*i+1]
		v1, v2 := visitorRefined[2*i], visitorRefined[2*i+1]
		score, winner := m.points.BestOfThree(h1.refined+h2.refined, v1.refined+v2.refined)
		double := tennis.Double{
			MatchID:   match.ID,
			Player1ID: h1.player.ID,
			Player2ID: h2.player.ID,
			Player3ID: v1.player.ID,
			Player4ID: v2.player.ID,
			Score:     score,
		}
		if err := m.recorder.RecordDouble(ctx, &double); err != nil {
			return fmt.Errorf("recording double %d of match %d: %w", i+1, match.ID, err)
		}
		match.Doubles = append(match.Doubles, double)
		if winner == tennis.HomeSide {
			homeWon++
		} else {
			visitorWon++
		}
		m.logger.Debug("doubles rubber played",
			"match", match.ID,
			"home", fmt.Sprintf("%s / %s", h1.player.Name(), h2.player.Name()),
			"visitor", fmt.Sprintf("%s / %s", v1.player.Name(), v2.player.Name()),
			"score", score.String())
	}

	match.HomeScore, match.VisitorScore = homeWon, visitorWon
	match.Played = true
	if err := m.recorder.UpdateMatchScore(ctx, match); err != nil {
		return fmt.Errorf("recording score of match %d: %w", match.ID, err)
	}
	return nil
}

// selectSquad rates a roster and keeps the top players by refined strength.
func (m *MatchSimulator) selectSquad(team tennis.Team, match *tennis.Match, count int) ([]ratedPlayer, error) {
	if len(team.Players) < count {
		return nil, fmt.Errorf("team %q has %d players, fixture needs %d", team.Name, len(team.Players), count)
	}
	rated := make([]ratedPlayer, 0, len(team.Players))
	for _, p := range team.Players {
		current, err := m.model.CurrentStrength(p)
		if err != nil {
			return nil, fmt.Errorf("rating squad of team %q: %w", team.Name, err)
		}
		refined, err := m.model.RefinedStrength(p, match.Date)
		if err != nil {
			return nil, fmt.Errorf("rating squad of team %q: %w", team.Name, err)
		}
		rated = append(rated, ratedPlayer{player: p, current: current, refined: refined})
	}
	sort.SliceStable(rated, func(i, j int) bool {
		return rated[i].refined > rated[j].refined
	})
	return rated[:count], nil
}

func byCurrent(squad []ratedPlayer) []ratedPlayer {
	out := make([]ratedPlayer, len(squad))
	copy(out, squad)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].current > out[j].current
	})
	return out
}

func byRefined(squad []ratedPlayer) []ratedPlayer {
	out := make([]ratedPlayer, len(squad))
	copy(out, squad)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].refined > out[j].refined
	})
	return out
}
