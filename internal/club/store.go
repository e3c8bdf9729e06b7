package club

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/fbaudier/interclubs/internal/ranking"
	"github.com/fbaudier/interclubs/internal/tennis"
)

const dateLayout = "2006-01-02"

// New creates a new ClubStore.
func New(db *sql.DB) ClubStore {
	return &store{
		db: db,
	}
}

func (s *store) UpsertClub(club tennis.Club) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO clubs (id, name, city)
		VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			city = excluded.city;
	`, club.ID, club.Name, club.City)
	if err != nil {
		return fmt.Errorf("upserting club %s: %w", club.ID, err)
	}
	return nil
}

func (s *store) GetClub(id string) (*tennis.Club, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var club tennis.Club
	err := s.db.QueryRow("SELECT id, name, city FROM clubs WHERE id = ?", id).
		Scan(&club.ID, &club.Name, &club.City)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("club %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("querying club %s: %w", id, err)
	}
	return &club, nil
}

func (s *store) GetClubs() ([]tennis.Club, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query("SELECT id, name, city FROM clubs ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var clubs []tennis.Club
	for rows.Next() {
		var club tennis.Club
		if err := rows.Scan(&club.ID, &club.Name, &club.City); err != nil {
			log.Error("Failed to scan club row", "error", err)
			continue
		}
		clubs = append(clubs, club)
	}
	return clubs, rows.Err()
}

func (s *store) AddPlayer(player *tennis.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addPlayerLocked(player)
}

func (s *store) addPlayerLocked(player *tennis.Player) error {
	res, err := s.db.Exec(`
		INSERT INTO players (first_name, last_name, birth_date, gender, club_id, license_number, license_letter, ranking, best_ranking, active)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, player.FirstName, player.LastName, player.BirthDate.Format(dateLayout), player.Gender,
		player.ClubID, player.LicenseNumber, player.LicenseLetter, player.Ranking, player.BestRanking, player.Active)
	if err != nil {
		return fmt.Errorf("inserting player %s: %w", player.Name(), err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	player.ID = id
	return nil
}

func (s *store) UpsertPlayers(players []*tennis.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	stmt, err := tx.Prepare(`
		INSERT INTO players (first_name, last_name, birth_date, gender, club_id, license_number, license_letter, ranking, best_ranking, active)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	for _, player := range players {
		res, err := stmt.Exec(player.FirstName, player.LastName, player.BirthDate.Format(dateLayout), player.Gender,
			player.ClubID, player.LicenseNumber, player.LicenseLetter, player.Ranking, player.BestRanking, player.Active)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("inserting player %s: %w", player.Name(), err)
		}
		if id, err := res.LastInsertId(); err == nil {
			player.ID = id
		}
	}
	return tx.Commit()
}

func (s *store) GetPlayer(id int64) (*tennis.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow(`
		SELECT id, first_name, last_name, birth_date, gender, club_id, license_number, license_letter, ranking, best_ranking, active
		FROM players WHERE id = ?
	`, id)
	player, err := scanPlayer(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("player %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("querying player %d: %w", id, err)
	}
	if err := s.loadInjuries(player); err != nil {
		return nil, err
	}
	return player, nil
}

// GetEligiblePlayers returns a club's players matching the gender and age
// category filters, ordered by ranking position, strongest first. A Mixed
// gender filter matches everyone.
func (s *store) GetEligiblePlayers(gender tennis.Gender, clubID string, category tennis.AgeCategory, at time.Time, activeOnly bool) ([]tennis.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT id, first_name, last_name, birth_date, gender, club_id, license_number, license_letter, ranking, best_ranking, active
		FROM players WHERE club_id = ?
	`
	args := []any{clubID}
	if gender != tennis.Mixed {
		query += " AND gender = ?"
		args = append(args, gender)
	}
	if activeOnly {
		query += " AND active = 1"
	}
	query += " ORDER BY ranking ASC"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var players []tennis.Player
	for rows.Next() {
		player, err := scanPlayer(rows)
		if err != nil {
			log.Error("Failed to scan player row", "error", err)
			continue
		}
		if !player.HasValidAge(category, at) {
			continue
		}
		if err := s.loadInjuries(player); err != nil {
			log.Error("Failed to load player injuries", "error", err, "playerID", player.ID)
			continue
		}
		players = append(players, *player)
	}
	return players, rows.Err()
}

func (s *store) AddInjury(playerID int64, injury tennis.Injury) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO injuries (player_id, type, name, site)
		VALUES (?, ?, ?, ?)
	`, playerID, injury.Type, injury.Name, injury.Site)
	if err != nil {
		return fmt.Errorf("inserting injury for player %d: %w", playerID, err)
	}
	return nil
}

// SeedLadder replaces the rankings table with the given ladder.
func (s *store) SeedLadder(ladder *ranking.Ladder) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM rankings"); err != nil {
		tx.Rollback()
		return err
	}
	stmt, err := tx.Prepare("INSERT INTO rankings (position, label, series) VALUES (?, ?, ?)")
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	for i, label := range ladder.Labels() {
		pos := i + 1
		series, err := ladder.Series(pos)
		if err != nil {
			tx.Rollback()
			return err
		}
		if _, err := stmt.Exec(pos, label, series); err != nil {
			tx.Rollback()
			return fmt.Errorf("inserting ranking %q: %w", label, err)
		}
	}
	return tx.Commit()
}

// LoadLadder rebuilds the ranking ladder from the rankings table.
func (s *store) LoadLadder() (*ranking.Ladder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query("SELECT label FROM rankings ORDER BY position ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var labels []string
	for rows.Next() {
		var label string
		if err := rows.Scan(&label); err != nil {
			return nil, err
		}
		labels = append(labels, label)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return ranking.NewLadder(labels)
}

func (s *store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	for _, table := range []string{"injuries", "players", "clubs", "rankings"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			tx.Rollback()
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}
	return tx.Commit()
}

func scanPlayer(scanner interface{ Scan(...any) error }) (*tennis.Player, error) {
	var player tennis.Player
	var birthDate string
	err := scanner.Scan(
		&player.ID, &player.FirstName, &player.LastName, &birthDate, &player.Gender,
		&player.ClubID, &player.LicenseNumber, &player.LicenseLetter,
		&player.Ranking, &player.BestRanking, &player.Active,
	)
	if err != nil {
		return nil, err
	}
	parsed, err := time.Parse(dateLayout, birthDate)
	if err != nil {
		return nil, fmt.Errorf("parsing birth date of player %d: %w", player.ID, err)
	}
	player.BirthDate = parsed
	return &player, nil
}

func (s *store) loadInjuries(player *tennis.Player) error {
	rows, err := s.db.Query("SELECT id, type, name, site FROM injuries WHERE player_id = ?", player.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	player.Injuries = nil
	for rows.Next() {
		var injury tennis.Injury
		var site sql.NullString
		if err := rows.Scan(&injury.ID, &injury.Type, &injury.Name, &site); err != nil {
			log.Error("Failed to scan injury row", "error", err, "playerID", player.ID)
			continue
		}
		injury.Site = site.String
		player.Injuries = append(player.Injuries, injury)
	}
	return rows.Err()
}
