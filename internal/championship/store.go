package championship

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/fbaudier/interclubs/internal/tennis"
)

const dateLayout = "2006-01-02"

// New creates a new ChampionshipStore.
func New(db *sql.DB) ChampionshipStore {
	return &store{
		db: db,
	}
}

func (s *store) CreateChampionship(championship *tennis.Championship) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	div := championship.Division
	res, err := tx.Exec(`
		INSERT INTO championships (division_type, division_number, gender, category_type, min_age, max_age, singles_count, doubles_count)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, div.Type, div.Number, div.Gender, div.AgeCategory.Type, div.AgeCategory.MinAge, div.AgeCategory.MaxAge,
		championship.SinglesCount, championship.DoublesCount)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to create championship: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		tx.Rollback()
		return err
	}
	championship.ID = id

	stmt, err := tx.Prepare("INSERT INTO matchdays (championship_id, date, report_date) VALUES (?, ?, ?)")
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()
	for i := range championship.Matchdays {
		day := &championship.Matchdays[i]
		day.ChampionshipID = id
		if day.ReportDate.IsZero() {
			// Postponed fixtures fall back to the following Saturday.
			day.ReportDate = day.Date.AddDate(0, 0, 6)
		}
		res, err := stmt.Exec(id, day.Date.Format(dateLayout), day.ReportDate.Format(dateLayout))
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to create matchday: %w", err)
		}
		if dayID, err := res.LastInsertId(); err == nil {
			day.ID = dayID
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	log.Info("Created championship", "id", id, "name", championship.Name(), "matchdays", len(championship.Matchdays))
	return nil
}

func (s *store) GetChampionship(id int64) (*tennis.Championship, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.getChampionshipLocked(id)
}

func (s *store) getChampionshipLocked(id int64) (*tennis.Championship, error) {
	row := s.db.QueryRow(`
		SELECT id, division_type, division_number, gender, category_type, min_age, max_age, singles_count, doubles_count
		FROM championships WHERE id = ?
	`, id)
	championship, err := scanChampionship(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("championship %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get championship %d: %w", id, err)
	}
	if err := s.loadMatchdays(championship); err != nil {
		return nil, err
	}
	return championship, nil
}

func (s *store) ListChampionships() ([]tennis.Championship, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT id, division_type, division_number, gender, category_type, min_age, max_age, singles_count, doubles_count
		FROM championships ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var championships []tennis.Championship
	for rows.Next() {
		championship, err := scanChampionship(rows)
		if err != nil {
			log.Error("Failed to scan championship row", "error", err)
			continue
		}
		if err := s.loadMatchdays(championship); err != nil {
			log.Error("Failed to load matchdays", "error", err, "championshipID", championship.ID)
			continue
		}
		championships = append(championships, *championship)
	}
	return championships, rows.Err()
}

func (s *store) DeleteChampionship(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.purgeChampionshipScoresLocked(id); err != nil {
		return err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	// Pool deletion only NULLs teams.pool_id, so the teams go explicitly
	// before the cascade runs.
	if err := s.deletePooledTeamsLocked(tx, id); err != nil {
		tx.Rollback()
		return err
	}
	if _, err := tx.Exec("DELETE FROM championships WHERE id = ?", id); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to delete championship %d: %w", id, err)
	}
	return tx.Commit()
}

func (s *store) SaveTeam(team *tennis.Team) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	res, err := tx.Exec(`
		INSERT INTO teams (name, club_id, captain_id, pool_id)
		VALUES (?, ?, ?, ?)
	`, team.Name, team.ClubID, nullableID(team.CaptainID), nullableID(team.PoolID))
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to save team %q: %w", team.Name, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		tx.Rollback()
		return err
	}
	team.ID = id

	stmt, err := tx.Prepare("INSERT INTO team_players (team_id, player_id, position) VALUES (?, ?, ?)")
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()
	for i, player := range team.Players {
		if _, err := stmt.Exec(id, player.ID, i); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to save roster of team %q: %w", team.Name, err)
		}
	}
	return tx.Commit()
}

func (s *store) CreatePool(pool *tennis.Pool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	var letter any
	if pool.Letter != "" {
		letter = pool.Letter
	}
	res, err := tx.Exec("INSERT INTO pools (letter, championship_id) VALUES (?, ?)", letter, pool.ChampionshipID)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to create pool: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		tx.Rollback()
		return err
	}
	pool.ID = id

	for i := range pool.Teams {
		team := &pool.Teams[i]
		if _, err := tx.Exec("UPDATE teams SET pool_id = ? WHERE id = ?", id, team.ID); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to assign team %d to pool %d: %w", team.ID, id, err)
		}
		team.PoolID = id
	}
	return tx.Commit()
}

func (s *store) GetPool(id int64) (*tennis.Pool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.getPoolLocked(id)
}

func (s *store) getPoolLocked(id int64) (*tennis.Pool, error) {
	var pool tennis.Pool
	var letter sql.NullString
	err := s.db.QueryRow("SELECT id, letter, championship_id FROM pools WHERE id = ?", id).
		Scan(&pool.ID, &letter, &pool.ChampionshipID)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("pool %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get pool %d: %w", id, err)
	}
	pool.Letter = letter.String

	if err := s.loadPoolTeams(&pool); err != nil {
		return nil, err
	}
	if err := s.loadPoolMatches(&pool); err != nil {
		return nil, err
	}
	return &pool, nil
}

func (s *store) GetPools(championshipID int64) ([]tennis.Pool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT id FROM pools WHERE championship_id = ?
		ORDER BY letter IS NULL, letter
	`, championshipID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			log.Error("Failed to scan pool row", "error", err)
			continue
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	pools := make([]tennis.Pool, 0, len(ids))
	for _, id := range ids {
		pool, err := s.getPoolLocked(id)
		if err != nil {
			log.Error("Failed to load pool", "error", err, "poolID", id)
			continue
		}
		pools = append(pools, *pool)
	}
	return pools, nil
}

// DeletePools removes a championship's pools together with their fixtures
// and teams, so a rebuild starts from a clean slate instead of piling new
// team rows next to the old ones.
func (s *store) DeletePools(championshipID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.purgeChampionshipScoresLocked(championshipID); err != nil {
		return err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	if err := s.deletePooledTeamsLocked(tx, championshipID); err != nil {
		tx.Rollback()
		return err
	}
	if _, err := tx.Exec("DELETE FROM pools WHERE championship_id = ?", championshipID); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to delete pools of championship %d: %w", championshipID, err)
	}
	return tx.Commit()
}

// deletePooledTeamsLocked removes the fixtures and teams of a championship's
// pools. Matches reference teams, so they go first; team_players and
// simulation results cascade with the teams.
func (s *store) deletePooledTeamsLocked(tx *sql.Tx, championshipID int64) error {
	if _, err := tx.Exec(`
		DELETE FROM matches WHERE pool_id IN (SELECT id FROM pools WHERE championship_id = ?)
	`, championshipID); err != nil {
		return fmt.Errorf("failed to delete fixtures of championship %d: %w", championshipID, err)
	}
	if _, err := tx.Exec(`
		DELETE FROM teams WHERE pool_id IN (SELECT id FROM pools WHERE championship_id = ?)
	`, championshipID); err != nil {
		return fmt.Errorf("failed to delete teams of championship %d: %w", championshipID, err)
	}
	return nil
}

// PurgePool deletes a pool's rubbers and scores and resets its fixture
// scores, keeping the schedule itself.
func (s *store) PurgePool(poolID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	// Deleting the score rows cascades into singles and doubles.
	for _, table := range []string{"singles", "doubles"} {
		query := fmt.Sprintf(`
			DELETE FROM scores WHERE id IN (
				SELECT score_id FROM %s WHERE match_id IN (SELECT id FROM matches WHERE pool_id = ?)
			)
		`, table)
		if _, err := tx.Exec(query, poolID); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to purge %s of pool %d: %w", table, poolID, err)
		}
	}
	if _, err := tx.Exec("UPDATE matches SET home_score = 0, visitor_score = 0, played = 0 WHERE pool_id = ?", poolID); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to reset fixtures of pool %d: %w", poolID, err)
	}
	return tx.Commit()
}

func (s *store) CreateMatch(match *tennis.Match) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(`
		INSERT INTO matches (pool_id, matchday_id, round, date, home_team_id, visitor_team_id, home_score, visitor_score, played)
		VALUES (?, ?, ?, ?, ?, ?, 0, 0, 0)
	`, match.PoolID, match.MatchdayID, match.Round, match.Date.Format(dateLayout), match.HomeTeamID, match.VisitorTeamID)
	if err != nil {
		return fmt.Errorf("failed to create match: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	match.ID = id
	return nil
}

func (s *store) RecordSingle(ctx context.Context, single *tennis.Single) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	scoreID, err := insertScore(tx, &single.Score)
	if err != nil {
		tx.Rollback()
		return err
	}
	res, err := tx.Exec(`
		INSERT INTO singles (match_id, score_id, player1_id, player2_id)
		VALUES (?, ?, ?, ?)
	`, single.MatchID, scoreID, single.Player1ID, single.Player2ID)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to record single: %w", err)
	}
	if id, err := res.LastInsertId(); err == nil {
		single.ID = id
	}
	return tx.Commit()
}

func (s *store) RecordDouble(ctx context.Context, double *tennis.Double) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	scoreID, err := insertScore(tx, &double.Score)
	if err != nil {
		tx.Rollback()
		return err
	}
	res, err := tx.Exec(`
		INSERT INTO doubles (match_id, score_id, player1_id, player2_id, player3_id, player4_id)
		VALUES (?, ?, ?, ?, ?, ?)
	`, double.MatchID, scoreID, double.Player1ID, double.Player2ID, double.Player3ID, double.Player4ID)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to record double: %w", err)
	}
	if id, err := res.LastInsertId(); err == nil {
		double.ID = id
	}
	return tx.Commit()
}

func (s *store) UpdateMatchScore(ctx context.Context, match *tennis.Match) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		UPDATE matches SET home_score = ?, visitor_score = ?, played = ? WHERE id = ?
	`, match.HomeScore, match.VisitorScore, match.Played, match.ID)
	if err != nil {
		return fmt.Errorf("failed to update score of match %d: %w", match.ID, err)
	}
	return nil
}

func (s *store) SaveSimulation(simulation *PoolSimulation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if simulation.ID == "" {
		simulation.ID = uuid.New().String()
	}
	if simulation.CreatedAt.IsZero() {
		simulation.CreatedAt = time.Now().UTC()
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	_, err = tx.Exec(`
		INSERT INTO pool_simulations (id, pool_id, num_simulations, created_at)
		VALUES (?, ?, ?, ?)
	`, simulation.ID, simulation.PoolID, simulation.NumSimulations, simulation.CreatedAt.Format(time.RFC3339))
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to save simulation: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO team_simulation_results (simulation_id, team_id, avg_ranking, avg_points, best_ranking, worst_ranking, distribution_json)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()
	for _, result := range simulation.Results {
		distribution, err := json.Marshal(result.Distribution)
		if err != nil {
			tx.Rollback()
			return err
		}
		_, err = stmt.Exec(simulation.ID, result.TeamID, result.AvgRanking, result.AvgPoints,
			result.BestRanking, result.WorstRanking, distribution)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to save simulation result for team %d: %w", result.TeamID, err)
		}
	}
	return tx.Commit()
}

func (s *store) GetSimulation(id string) (*PoolSimulation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.getSimulationLocked(id)
}

func (s *store) getSimulationLocked(id string) (*PoolSimulation, error) {
	var simulation PoolSimulation
	var createdAt string
	err := s.db.QueryRow(`
		SELECT id, pool_id, num_simulations, created_at FROM pool_simulations WHERE id = ?
	`, id).Scan(&simulation.ID, &simulation.PoolID, &simulation.NumSimulations, &createdAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("simulation %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get simulation %s: %w", id, err)
	}
	if parsed, err := time.Parse(time.RFC3339, createdAt); err == nil {
		simulation.CreatedAt = parsed
	}
	if err := s.loadSimulationResults(&simulation); err != nil {
		return nil, err
	}
	return &simulation, nil
}

func (s *store) ListSimulations(poolID int64) ([]PoolSimulation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT id FROM pool_simulations WHERE pool_id = ? ORDER BY created_at DESC
	`, poolID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			log.Error("Failed to scan simulation row", "error", err)
			continue
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	simulations := make([]PoolSimulation, 0, len(ids))
	for _, id := range ids {
		simulation, err := s.getSimulationLocked(id)
		if err != nil {
			log.Error("Failed to load simulation", "error", err, "simulationID", id)
			continue
		}
		simulations = append(simulations, *simulation)
	}
	return simulations, nil
}

func (s *store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	for _, table := range []string{"scores", "pool_simulations", "matches", "pools", "matchdays", "championships", "teams"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}
	return tx.Commit()
}

// purgeChampionshipScoresLocked removes score rows owned by a championship's
// pools; cascades take the singles and doubles with them.
func (s *store) purgeChampionshipScoresLocked(championshipID int64) error {
	for _, table := range []string{"singles", "doubles"} {
		query := fmt.Sprintf(`
			DELETE FROM scores WHERE id IN (
				SELECT score_id FROM %s WHERE match_id IN (
					SELECT m.id FROM matches m JOIN pools p ON m.pool_id = p.id WHERE p.championship_id = ?
				)
			)
		`, table)
		if _, err := s.db.Exec(query, championshipID); err != nil {
			return fmt.Errorf("failed to purge %s of championship %d: %w", table, championshipID, err)
		}
	}
	return nil
}

func insertScore(tx *sql.Tx, score *tennis.Score) (int64, error) {
	res, err := tx.Exec(`
		INSERT INTO scores (first_set_p1, first_set_p2, first_tie_break, second_set_p1, second_set_p2, second_tie_break, third_set_p1, third_set_p2, super_tie_break)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, score.FirstSetP1, score.FirstSetP2, score.FirstTieBreak,
		score.SecondSetP1, score.SecondSetP2, score.SecondTieBreak,
		score.ThirdSetP1, score.ThirdSetP2, score.SuperTieBreak)
	if err != nil {
		return 0, fmt.Errorf("failed to insert score: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	score.ID = id
	return id, nil
}

func scanChampionship(scanner interface{ Scan(...any) error }) (*tennis.Championship, error) {
	var championship tennis.Championship
	div := &championship.Division
	err := scanner.Scan(
		&championship.ID, &div.Type, &div.Number, &div.Gender,
		&div.AgeCategory.Type, &div.AgeCategory.MinAge, &div.AgeCategory.MaxAge,
		&championship.SinglesCount, &championship.DoublesCount,
	)
	if err != nil {
		return nil, err
	}
	return &championship, nil
}

func (s *store) loadMatchdays(championship *tennis.Championship) error {
	rows, err := s.db.Query(`
		SELECT id, championship_id, date, report_date FROM matchdays WHERE championship_id = ? ORDER BY date
	`, championship.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	championship.Matchdays = nil
	for rows.Next() {
		var day tennis.Matchday
		var date, reportDate string
		if err := rows.Scan(&day.ID, &day.ChampionshipID, &date, &reportDate); err != nil {
			log.Error("Failed to scan matchday row", "error", err)
			continue
		}
		if day.Date, err = time.Parse(dateLayout, date); err != nil {
			return fmt.Errorf("parsing matchday date: %w", err)
		}
		if day.ReportDate, err = time.Parse(dateLayout, reportDate); err != nil {
			return fmt.Errorf("parsing matchday report date: %w", err)
		}
		championship.Matchdays = append(championship.Matchdays, day)
	}
	return rows.Err()
}

func (s *store) loadPoolTeams(pool *tennis.Pool) error {
	rows, err := s.db.Query(`
		SELECT id, name, club_id, COALESCE(captain_id, 0) FROM teams WHERE pool_id = ? ORDER BY id
	`, pool.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	pool.Teams = nil
	for rows.Next() {
		var team tennis.Team
		if err := rows.Scan(&team.ID, &team.Name, &team.ClubID, &team.CaptainID); err != nil {
			log.Error("Failed to scan team row", "error", err)
			continue
		}
		team.PoolID = pool.ID
		pool.Teams = append(pool.Teams, team)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for i := range pool.Teams {
		if err := s.loadRoster(&pool.Teams[i]); err != nil {
			return err
		}
	}
	return nil
}

func (s *store) loadRoster(team *tennis.Team) error {
	rows, err := s.db.Query(`
		SELECT p.id, p.first_name, p.last_name, p.birth_date, p.gender, p.club_id, p.license_number, p.license_letter, p.ranking, p.best_ranking, p.active
		FROM players p
		JOIN team_players tp ON tp.player_id = p.id
		WHERE tp.team_id = ?
		ORDER BY tp.position
	`, team.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	team.Players = nil
	for rows.Next() {
		var player tennis.Player
		var birthDate string
		err := rows.Scan(
			&player.ID, &player.FirstName, &player.LastName, &birthDate, &player.Gender,
			&player.ClubID, &player.LicenseNumber, &player.LicenseLetter,
			&player.Ranking, &player.BestRanking, &player.Active,
		)
		if err != nil {
			log.Error("Failed to scan roster row", "error", err, "teamID", team.ID)
			continue
		}
		if parsed, err := time.Parse(dateLayout, birthDate); err == nil {
			player.BirthDate = parsed
		}
		team.Players = append(team.Players, player)
	}
	return rows.Err()
}

func (s *store) loadPoolMatches(pool *tennis.Pool) error {
	rows, err := s.db.Query(`
		SELECT id, pool_id, matchday_id, round, date, home_team_id, visitor_team_id, home_score, visitor_score, played
		FROM matches WHERE pool_id = ? ORDER BY round, id
	`, pool.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	pool.Matches = nil
	for rows.Next() {
		var match tennis.Match
		var date string
		err := rows.Scan(
			&match.ID, &match.PoolID, &match.MatchdayID, &match.Round, &date,
			&match.HomeTeamID, &match.VisitorTeamID, &match.HomeScore, &match.VisitorScore, &match.Played,
		)
		if err != nil {
			log.Error("Failed to scan match row", "error", err, "poolID", pool.ID)
			continue
		}
		if parsed, err := time.Parse(dateLayout, date); err == nil {
			match.Date = parsed
		}
		pool.Matches = append(pool.Matches, match)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for i := range pool.Matches {
		if err := s.loadRubbers(&pool.Matches[i]); err != nil {
			return err
		}
	}
	return nil
}

func (s *store) loadRubbers(match *tennis.Match) error {
	singleRows, err := s.db.Query(`
		SELECT sg.id, sg.match_id, sg.player1_id, sg.player2_id,
			sc.id, sc.first_set_p1, sc.first_set_p2, sc.first_tie_break,
			sc.second_set_p1, sc.second_set_p2, sc.second_tie_break,
			sc.third_set_p1, sc.third_set_p2, sc.super_tie_break
		FROM singles sg JOIN scores sc ON sg.score_id = sc.id
		WHERE sg.match_id = ? ORDER BY sg.id
	`, match.ID)
	if err != nil {
		return err
	}
	defer singleRows.Close()

	match.Singles = nil
	for singleRows.Next() {
		var single tennis.Single
		err := singleRows.Scan(
			&single.ID, &single.MatchID, &single.Player1ID, &single.Player2ID,
			&single.Score.ID, &single.Score.FirstSetP1, &single.Score.FirstSetP2, &single.Score.FirstTieBreak,
			&single.Score.SecondSetP1, &single.Score.SecondSetP2, &single.Score.SecondTieBreak,
			&single.Score.ThirdSetP1, &single.Score.ThirdSetP2, &single.Score.SuperTieBreak,
		)
		if err != nil {
			log.Error("Failed to scan single row", "error", err, "matchID", match.ID)
			continue
		}
		match.Singles = append(match.Singles, single)
	}
	if err := singleRows.Err(); err != nil {
		return err
	}

	doubleRows, err := s.db.Query(`
		SELECT db.id, db.match_id, db.player1_id, db.player2_id, db.player3_id, db.player4_id,
			sc.id, sc.first_set_p1, sc.first_set_p2, sc.first_tie_break,
			sc.second_set_p1, sc.second_set_p2, sc.second_tie_break,
			sc.third_set_p1, sc.third_set_p2, sc.super_tie_break
		FROM doubles db JOIN scores sc ON db.score_id = sc.id
		WHERE db.match_id = ? ORDER BY db.id
	`, match.ID)
	if err != nil {
		return err
	}
	defer doubleRows.Close()

	match.Doubles = nil
	for doubleRows.Next() {
		var double tennis.Double
		err := doubleRows.Scan(
			&double.ID, &double.MatchID, &double.Player1ID, &double.Player2ID, &double.Player3ID, &double.Player4ID,
			&double.Score.ID, &double.Score.FirstSetP1, &double.Score.FirstSetP2, &double.Score.FirstTieBreak,
			&double.Score.SecondSetP1, &double.Score.SecondSetP2, &double.Score.SecondTieBreak,
			&double.Score.ThirdSetP1, &double.Score.ThirdSetP2, &double.Score.SuperTieBreak,
		)
		if err != nil {
			log.Error("Failed to scan double row", "error", err, "matchID", match.ID)
			continue
		}
		match.Doubles = append(match.Doubles, double)
	}
	return doubleRows.Err()
}

func (s *store) loadSimulationResults(simulation *PoolSimulation) error {
	rows, err := s.db.Query(`
		SELECT r.team_id, t.name, r.avg_ranking, r.avg_points, r.best_ranking, r.worst_ranking, r.distribution_json
		FROM team_simulation_results r
		JOIN teams t ON r.team_id = t.id
		WHERE r.simulation_id = ?
		ORDER BY r.avg_ranking
	`, simulation.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	simulation.Results = nil
	for rows.Next() {
		var result TeamSimulationResult
		var distribution []byte
		err := rows.Scan(&result.TeamID, &result.TeamName, &result.AvgRanking, &result.AvgPoints,
			&result.BestRanking, &result.WorstRanking, &distribution)
		if err != nil {
			log.Error("Failed to scan simulation result row", "error", err)
			continue
		}
		if len(distribution) > 0 {
			if err := json.Unmarshal(distribution, &result.Distribution); err != nil {
				log.Warn("Failed to unmarshal finish distribution", "error", err, "teamID", result.TeamID)
			}
		}
		simulation.Results = append(simulation.Results, result)
	}
	return rows.Err()
}

func nullableID(id int64) any {
	if id == 0 {
		return nil
	}
	return id
}
