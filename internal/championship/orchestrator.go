package championship

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/charmbracelet/log"

	"github.com/fbaudier/interclubs/internal/club"
	"github.com/fbaudier/interclubs/internal/metrics"
	"github.com/fbaudier/interclubs/internal/pools"
	"github.com/fbaudier/interclubs/internal/pubsub"
	"github.com/fbaudier/interclubs/internal/ranking"
	"github.com/fbaudier/interclubs/internal/scheduling"
	"github.com/fbaudier/interclubs/internal/simulation"
	"github.com/fbaudier/interclubs/internal/standings"
	"github.com/fbaudier/interclubs/internal/tennis"
)

// rosterSize caps how many eligible players a club fields per team,
// strongest first.
const rosterSize = 10

// Notifier defines the notification operations required by the orchestrator.
type Notifier interface {
	SendStandingsNotification(championshipName string, poolStandings []PoolStandings, dryRun bool) (string, error)
	SendSimulationSummary(poolName string, simulation *PoolSimulation, dryRun bool) (string, error)
}

// Orchestrator drives the championship flow: form teams, build pools,
// schedule and simulate fixtures, compute standings and seed the bracket.
type Orchestrator struct {
	store    ChampionshipStore
	clubs    club.ClubStore
	notifier Notifier
	metrics  metrics.Metrics
	pubsub   pubsub.PubSubClient
	rng      *rand.Rand
}

// NewOrchestrator creates a new Orchestrator. A nil rng falls back to a
// time-seeded source; tests inject a seeded one.
func NewOrchestrator(store ChampionshipStore, clubs club.ClubStore, notifier Notifier, metrics metrics.Metrics, pubsub pubsub.PubSubClient, rng *rand.Rand) *Orchestrator {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Orchestrator{
		store:    store,
		clubs:    clubs,
		notifier: notifier,
		metrics:  metrics,
		pubsub:   pubsub,
		rng:      rng,
	}
}

// SimulateChampionship rebuilds a championship's pools from scratch and plays
// every fixture. Pools fail independently: an error in one pool is logged and
// the others still commit their results.
func (o *Orchestrator) SimulateChampionship(ctx context.Context, championshipID int64, dryRun bool) (*Report, error) {
	startTime := time.Now()
	championship, err := o.store.GetChampionship(championshipID)
	if err != nil {
		return nil, err
	}
	if len(championship.Matchdays) == 0 {
		return nil, fmt.Errorf("championship %d has no matchdays", championshipID)
	}
	log.Info("Starting championship simulation", "championshipID", championshipID, "name", championship.Name())

	if err := o.store.DeletePools(championshipID); err != nil {
		return nil, err
	}

	model, err := o.ratingModel()
	if err != nil {
		return nil, err
	}

	teams, err := o.formTeams(championship)
	if err != nil {
		return nil, err
	}
	for i := range teams {
		if err := o.store.SaveTeam(&teams[i]); err != nil {
			return nil, err
		}
	}

	builder := pools.NewBuilder(championship.SinglesCount, o.rng)
	lettered, exempted, err := builder.Build(teams, len(championship.Matchdays))
	if err != nil {
		return nil, err
	}

	report := &Report{ChampionshipID: championshipID}
	for i := range lettered {
		pool := &lettered[i]
		pool.ChampionshipID = championshipID
		if err := o.store.CreatePool(pool); err != nil {
			return nil, err
		}
	}
	if len(exempted.Teams) > 0 {
		exempted.ChampionshipID = championshipID
		if err := o.store.CreatePool(&exempted); err != nil {
			return nil, err
		}
		for _, team := range exempted.Teams {
			report.ExemptedTeams = append(report.ExemptedTeams, team.Name)
		}
		log.Info("Teams exempted from pool play", "count", len(exempted.Teams))
	}

	for i := range lettered {
		pool := &lettered[i]
		report.PoolsAttempted++
		fixtures, err := o.playPool(ctx, model, championship, pool)
		report.FixturesSimulated += fixtures
		if err != nil {
			log.Error("Pool simulation failed, keeping partial results", "error", err, "poolID", pool.ID, "letter", pool.Letter)
			continue
		}
		report.PoolsSimulated++
	}

	for i := range lettered {
		table, err := o.Standings(lettered[i].ID)
		if err != nil {
			log.Error("Failed to compute standings", "error", err, "poolID", lettered[i].ID)
			continue
		}
		report.Standings = append(report.Standings, *table)
	}

	if bracket, err := o.bracketFromStandings(report.Standings, len(report.ExemptedTeams)); err != nil {
		log.Error("Failed to seed bracket", "error", err, "championshipID", championshipID)
	} else {
		report.Bracket = bracket
	}

	o.metrics.IncSimulationsRun()
	o.metrics.ObserveSimulationDuration(time.Since(startTime).Seconds())

	if o.notifier != nil && len(report.Standings) > 0 {
		if _, err := o.notifier.SendStandingsNotification(championship.Name(), report.Standings, dryRun); err != nil {
			log.Error("Failed to send standings notification", "error", err)
		}
	}
	if o.pubsub != nil && !dryRun {
		if err := o.pubsub.SendMessage(string(pubsub.EventChampionshipSimulated), report); err != nil {
			log.Error("Failed to publish completion event", "error", err)
		}
	}

	log.Info("Championship simulation finished",
		"championshipID", championshipID,
		"pools", report.PoolsSimulated,
		"fixtures", report.FixturesSimulated,
		"duration", time.Since(startTime))
	return report, nil
}

// SimulatePool purges a pool's results and replays its existing schedule.
func (o *Orchestrator) SimulatePool(ctx context.Context, poolID int64) (*PoolStandings, error) {
	startTime := time.Now()
	model, err := o.ratingModel()
	if err != nil {
		return nil, err
	}
	pool, err := o.store.GetPool(poolID)
	if err != nil {
		return nil, err
	}
	if pool.IsExempted() {
		return nil, fmt.Errorf("pool %d is an exempted pool and has no fixtures", poolID)
	}
	championship, err := o.store.GetChampionship(pool.ChampionshipID)
	if err != nil {
		return nil, err
	}

	if err := o.replayPool(ctx, model, championship, pool); err != nil {
		return nil, err
	}

	o.metrics.IncSimulationsRun()
	o.metrics.ObserveSimulationDuration(time.Since(startTime).Seconds())
	return o.Standings(poolID)
}

// SimulatePoolBatch replays a pool numSimulations times and aggregates each
// team's finishing positions across the runs.
func (o *Orchestrator) SimulatePoolBatch(ctx context.Context, poolID int64, numSimulations int, dryRun bool) (*PoolSimulation, error) {
	if numSimulations <= 0 {
		return nil, fmt.Errorf("invalid number of simulations: %d", numSimulations)
	}
	startTime := time.Now()
	model, err := o.ratingModel()
	if err != nil {
		return nil, err
	}
	pool, err := o.store.GetPool(poolID)
	if err != nil {
		return nil, err
	}
	if pool.IsExempted() {
		return nil, fmt.Errorf("pool %d is an exempted pool and has no fixtures", poolID)
	}
	championship, err := o.store.GetChampionship(pool.ChampionshipID)
	if err != nil {
		return nil, err
	}
	log.Info("Starting batch pool simulation", "poolID", poolID, "runs", numSimulations)

	type accumulator struct {
		teamID       int64
		teamName     string
		rankingSum   int
		pointsSum    int
		best         int
		worst        int
		distribution map[int]int
	}
	accumulators := make(map[int64]*accumulator, len(pool.Teams))
	order := make([]int64, 0, len(pool.Teams))
	for _, team := range pool.Teams {
		accumulators[team.ID] = &accumulator{
			teamID:       team.ID,
			teamName:     team.Name,
			best:         len(pool.Teams),
			distribution: make(map[int]int),
		}
		order = append(order, team.ID)
	}

	for run := 0; run < numSimulations; run++ {
		if err := o.replayPool(ctx, model, championship, pool); err != nil {
			return nil, fmt.Errorf("run %d of %d failed: %w", run+1, numSimulations, err)
		}
		table, err := o.Standings(poolID)
		if err != nil {
			return nil, err
		}
		for position, row := range table.Rows {
			acc, ok := accumulators[row.TeamID]
			if !ok {
				continue
			}
			acc.rankingSum += position
			acc.pointsSum += row.Points
			if position < acc.best {
				acc.best = position
			}
			if position > acc.worst {
				acc.worst = position
			}
			acc.distribution[position+1]++
		}
	}

	simulation := &PoolSimulation{
		PoolID:         poolID,
		NumSimulations: numSimulations,
	}
	for _, teamID := range order {
		acc := accumulators[teamID]
		simulation.Results = append(simulation.Results, TeamSimulationResult{
			TeamID:       acc.teamID,
			TeamName:     acc.teamName,
			AvgRanking:   float64(acc.rankingSum) / float64(numSimulations),
			AvgPoints:    float64(acc.pointsSum) / float64(numSimulations),
			BestRanking:  1 + acc.best,
			WorstRanking: 1 + acc.worst,
			Distribution: acc.distribution,
		})
	}
	sortResultsByAvgRanking(simulation.Results)

	if err := o.store.SaveSimulation(simulation); err != nil {
		return nil, err
	}
	o.metrics.ObserveSimulationDuration(time.Since(startTime).Seconds())

	if o.notifier != nil {
		poolName := fmt.Sprintf("Poule %s", pool.Letter)
		if _, err := o.notifier.SendSimulationSummary(poolName, simulation, dryRun); err != nil {
			log.Error("Failed to send simulation summary", "error", err)
		}
	}
	if o.pubsub != nil && !dryRun {
		if err := o.pubsub.SendMessage(string(pubsub.EventPoolSimulated), simulation); err != nil {
			log.Error("Failed to publish completion event", "error", err)
		}
	}

	log.Info("Batch pool simulation finished", "poolID", poolID, "runs", numSimulations, "duration", time.Since(startTime))
	return simulation, nil
}

// Standings computes the current table of one pool from its recorded
// fixtures.
func (o *Orchestrator) Standings(poolID int64) (*PoolStandings, error) {
	pool, err := o.store.GetPool(poolID)
	if err != nil {
		return nil, err
	}
	championship, err := o.store.GetChampionship(pool.ChampionshipID)
	if err != nil {
		return nil, err
	}
	return &PoolStandings{
		PoolID:     pool.ID,
		PoolLetter: pool.Letter,
		Rows:       standings.Compute(*pool, championship.RubbersPerFixture()),
	}, nil
}

// ChampionshipStandings computes the tables of every lettered pool.
func (o *Orchestrator) ChampionshipStandings(championshipID int64) ([]PoolStandings, error) {
	allPools, err := o.store.GetPools(championshipID)
	if err != nil {
		return nil, err
	}
	championship, err := o.store.GetChampionship(championshipID)
	if err != nil {
		return nil, err
	}
	var tables []PoolStandings
	for _, pool := range allPools {
		if pool.IsExempted() {
			continue
		}
		tables = append(tables, PoolStandings{
			PoolID:     pool.ID,
			PoolLetter: pool.Letter,
			Rows:       standings.Compute(pool, championship.RubbersPerFixture()),
		})
	}
	return tables, nil
}

// Bracket seeds the single-elimination continuation from the current pool
// standings.
func (o *Orchestrator) Bracket(championshipID int64) ([]tennis.Team, error) {
	allPools, err := o.store.GetPools(championshipID)
	if err != nil {
		return nil, err
	}
	exemptedCount := 0
	for _, pool := range allPools {
		if pool.IsExempted() {
			exemptedCount += len(pool.Teams)
		}
	}
	tables, err := o.ChampionshipStandings(championshipID)
	if err != nil {
		return nil, err
	}
	return o.bracketFromStandings(tables, exemptedCount)
}

// bracketFromStandings sizes the bracket to the next power of two covering
// every pool plus the exempted teams, then draws round-robin across pools in
// standings order.
func (o *Orchestrator) bracketFromStandings(tables []PoolStandings, exemptedCount int) ([]tennis.Team, error) {
	if len(tables) == 0 {
		return nil, fmt.Errorf("no pool standings to seed from")
	}
	size := nextPowerOfTwo(len(tables) + exemptedCount)

	teamsByID := make(map[int64]tennis.Team)
	for _, table := range tables {
		pool, err := o.store.GetPool(table.PoolID)
		if err != nil {
			return nil, err
		}
		for _, team := range pool.Teams {
			teamsByID[team.ID] = team
		}
	}

	var bracket []tennis.Team
	for position := 0; len(bracket) < size; position++ {
		drawn := false
		for _, table := range tables {
			if position >= len(table.Rows) {
				continue
			}
			drawn = true
			team, ok := teamsByID[table.Rows[position].TeamID]
			if !ok {
				continue
			}
			bracket = append(bracket, team)
			if len(bracket) == size {
				break
			}
		}
		if !drawn {
			break
		}
	}
	return bracket, nil
}

// formTeams builds one team per club from its eligible players at the date of
// the first matchday. Clubs that cannot field a full fixture are skipped.
func (o *Orchestrator) formTeams(championship *tennis.Championship) ([]tennis.Team, error) {
	clubs, err := o.clubs.GetClubs()
	if err != nil {
		return nil, err
	}
	division := championship.Division
	at := championship.Matchdays[0].Date
	minPlayers := championship.SinglesCount + 2*championship.DoublesCount

	var teams []tennis.Team
	for _, c := range clubs {
		players, err := o.clubs.GetEligiblePlayers(division.Gender, c.ID, division.AgeCategory, at, true)
		if err != nil {
			return nil, err
		}
		if len(players) < minPlayers {
			log.Warn("Club cannot field a team", "club", c.Name, "eligible", len(players), "required", minPlayers)
			continue
		}
		if len(players) > rosterSize {
			players = players[:rosterSize]
		}
		teams = append(teams, tennis.Team{
			Name:      fmt.Sprintf("%s 1", c.ShortName()),
			ClubID:    c.ID,
			CaptainID: players[0].ID,
			Players:   players,
		})
	}
	if len(teams) < 2 {
		return nil, fmt.Errorf("not enough teams to form pools: %d", len(teams))
	}
	return teams, nil
}

// playPool schedules a pool's fixtures onto the championship matchdays and
// simulates them. Rounds beyond the last matchday land on its report date.
func (o *Orchestrator) playPool(ctx context.Context, model *ranking.Model, championship *tennis.Championship, pool *tennis.Pool) (int, error) {
	schedule, err := scheduling.Schedule(len(pool.Teams))
	if err != nil {
		return 0, err
	}
	simulator := o.matchSimulator(model)

	fixtures := 0
	for round, pairs := range schedule {
		day := championship.Matchdays[len(championship.Matchdays)-1]
		date := day.ReportDate
		if round < len(championship.Matchdays) {
			day = championship.Matchdays[round]
			date = day.Date
		}
		for _, pair := range pairs {
			home := pool.Teams[pair.Home-1]
			visitor := pool.Teams[pair.Visitor-1]
			match := &tennis.Match{
				PoolID:        pool.ID,
				MatchdayID:    day.ID,
				Round:         round + 1,
				Date:          date,
				HomeTeamID:    home.ID,
				VisitorTeamID: visitor.ID,
			}
			if err := o.store.CreateMatch(match); err != nil {
				return fixtures, err
			}
			if err := simulator.Simulate(ctx, match, home, visitor, championship.SinglesCount, championship.DoublesCount); err != nil {
				return fixtures, err
			}
			fixtures++
			o.metrics.IncFixturesSimulated()
		}
	}
	return fixtures, nil
}

// replayPool purges a pool's recorded results and plays its existing schedule
// again, leaving the fixture list untouched.
func (o *Orchestrator) replayPool(ctx context.Context, model *ranking.Model, championship *tennis.Championship, pool *tennis.Pool) error {
	if err := o.store.PurgePool(pool.ID); err != nil {
		return err
	}
	teamsByID := make(map[int64]tennis.Team, len(pool.Teams))
	for _, team := range pool.Teams {
		teamsByID[team.ID] = team
	}
	simulator := o.matchSimulator(model)
	for i := range pool.Matches {
		match := pool.Matches[i]
		match.HomeScore, match.VisitorScore, match.Played = 0, 0, false
		match.Singles, match.Doubles = nil, nil
		home, ok := teamsByID[match.HomeTeamID]
		if !ok {
			return fmt.Errorf("home team %d of match %d not in pool %d", match.HomeTeamID, match.ID, pool.ID)
		}
		visitor, ok := teamsByID[match.VisitorTeamID]
		if !ok {
			return fmt.Errorf("visitor team %d of match %d not in pool %d", match.VisitorTeamID, match.ID, pool.ID)
		}
		if err := simulator.Simulate(ctx, &match, home, visitor, championship.SinglesCount, championship.DoublesCount); err != nil {
			return err
		}
		o.metrics.IncFixturesSimulated()
	}
	return nil
}

func (o *Orchestrator) ratingModel() (*ranking.Model, error) {
	ladder, err := o.clubs.LoadLadder()
	if err != nil {
		return nil, fmt.Errorf("loading ranking ladder: %w", err)
	}
	return ranking.NewModel(ladder), nil
}

func (o *Orchestrator) matchSimulator(model *ranking.Model) *simulation.MatchSimulator {
	return simulation.NewMatchSimulator(model, simulation.New(o.rng), o.store, log.Default())
}

func sortResultsByAvgRanking(results []TeamSimulationResult) {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].AvgRanking < results[j].AvgRanking
	})
}

func nextPowerOfTwo(n int) int {
	size := 1
	for size < n {
		size *= 2
	}
	return size
}
