package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"

	"github.com/fbaudier/interclubs/internal/club"
	"github.com/fbaudier/interclubs/internal/database"
	"github.com/fbaudier/interclubs/internal/ranking"
	"github.com/fbaudier/interclubs/internal/tennis"
)

// clubSeed binds a club to the base name of its exported license files.
// The federation export ships one tab-separated file per club and gender,
// named <csvfile>_men.csv and <csvfile>_women.csv.
type clubSeed struct {
	ID      string
	Name    string
	City    string
	CSVFile string
}

var clubs = []clubSeed{
	{"57060180", "ASPTT Metz (57)", "Metz", "asptt_metz"},
	{"57060181", "TC Montigny", "Montigny-lès-Metz", "tc_montigny"},
	{"57060182", "SMEC Metz", "Metz", "smec_metz"},
	{"57060183", "TC Thionville", "Thionville", "tc_thionville"},
	{"57060184", "US Forbach Tennis", "Forbach", "us_forbach"},
	{"57060185", "TC Sarreguemines", "Sarreguemines", "tc_sarreguemines"},
}

// licensePattern matches a license number followed by its check letter,
// e.g. "1843970 V".
var licensePattern = regexp.MustCompile(`^(\d+)\s*([A-Za-z])`)

// Simplified config loading for the script
func loadConfig() map[string]string {
	err := godotenv.Load()
	if err != nil {
		log.Warn("No .env file found, reading from environment variables")
	}

	config := map[string]string{
		"DB_NAME":           "interclubs.db",
		"MIGRATIONS_DIR":    "./migrations",
		"DATA_DIR":          "./data",
		"TURSO_PRIMARY_URL": "",
		"TURSO_AUTH_TOKEN":  "",
	}
	for key := range config {
		if value, ok := os.LookupEnv(key); ok {
			config[key] = value
		}
	}
	return config
}

func main() {
	log.Info("Starting database seeder...")
	cfg := loadConfig()

	db, teardown, err := database.InitDB(cfg["DB_NAME"], cfg["TURSO_PRIMARY_URL"], cfg["TURSO_AUTH_TOKEN"], cfg["MIGRATIONS_DIR"])
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	defer teardown()

	store := club.New(db)

	ladder := ranking.DefaultLadder()
	if err := store.SeedLadder(ladder); err != nil {
		log.Fatalf("Failed to seed ranking ladder: %s", err)
	}
	log.Info("Seeded ranking ladder", "labels", ladder.Len())

	startTime := time.Now()
	total := 0
	for _, seed := range clubs {
		if err := store.UpsertClub(tennis.Club{ID: seed.ID, Name: seed.Name, City: seed.City}); err != nil {
			log.Fatalf("Failed to upsert club %s: %s", seed.Name, err)
		}

		for gender, suffix := range map[tennis.Gender]string{tennis.Male: "men", tennis.Female: "women"} {
			path := filepath.Join(cfg["DATA_DIR"], fmt.Sprintf("%s_%s.csv", seed.CSVFile, suffix))
			players, err := importPlayers(path, seed.ID, gender, ladder)
			if os.IsNotExist(err) {
				log.Warn("No license file, skipping", "club", seed.Name, "path", path)
				continue
			}
			if err != nil {
				log.Fatalf("Failed to import %s: %s", path, err)
			}
			if err := store.UpsertPlayers(players); err != nil {
				log.Fatalf("Failed to upsert players of %s: %s", seed.Name, err)
			}
			total += len(players)
			log.Info("Imported players", "club", seed.Name, "gender", gender, "count", len(players))
		}
	}

	log.Info("Seeding done.", "players", total, "duration", time.Since(startTime))
}

// importPlayers parses one federation export file. Rows with an unparseable
// license are skipped with a warning rather than aborting the whole import.
func importPlayers(path string, clubID string, gender tennis.Gender, ladder *ranking.Ladder) ([]*tennis.Player, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.Comma = '\t'
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	columns := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		columns[strings.TrimSpace(name)] = i
	}
	for _, required := range []string{"Prénom", "Nom", "Né en", "Licence", "C. Tennis"} {
		if _, ok := columns[required]; !ok {
			return nil, fmt.Errorf("missing column %q in %s", required, path)
		}
	}

	var players []*tennis.Player
	for _, row := range rows[1:] {
		licenseNumber, licenseLetter, err := parseLicense(row[columns["Licence"]])
		if err != nil {
			log.Warn("Skipping row", "error", err, "path", path)
			continue
		}
		current, best, err := parseRanking(row[columns["C. Tennis"]], ladder)
		if err != nil {
			log.Warn("Skipping row", "error", err, "path", path)
			continue
		}
		birthYear, err := strconv.Atoi(strings.TrimSpace(row[columns["Né en"]]))
		if err != nil {
			log.Warn("Skipping row", "error", fmt.Errorf("invalid birth year %q", row[columns["Né en"]]), "path", path)
			continue
		}

		players = append(players, &tennis.Player{
			FirstName:     strings.TrimSpace(row[columns["Prénom"]]),
			LastName:      strings.TrimSpace(row[columns["Nom"]]),
			BirthDate:     time.Date(birthYear, time.January, 1, 0, 0, 0, 0, time.UTC),
			Gender:        gender,
			ClubID:        clubID,
			LicenseNumber: licenseNumber,
			LicenseLetter: licenseLetter,
			Ranking:       current,
			BestRanking:   best,
			Active:        true,
		})
	}
	return players, nil
}

// parseLicense splits "1843970 V" into its number and check letter.
func parseLicense(raw string) (int64, string, error) {
	matches := licensePattern.FindStringSubmatch(strings.TrimSpace(raw))
	if matches == nil {
		return 0, "", fmt.Errorf("invalid license %q", raw)
	}
	number, err := strconv.ParseInt(matches[1], 10, 64)
	if err != nil {
		return 0, "", fmt.Errorf("invalid license number %q", matches[1])
	}
	return number, strings.ToUpper(matches[2]), nil
}

// parseRanking turns a federation ranking cell into ladder positions. The
// cell is either a bare label like "15/4", or "15/4 (15/1)" when the player
// has a distinct historical best. Without one, the best equals the current.
func parseRanking(raw string, ladder *ranking.Ladder) (int, int, error) {
	fields := strings.Fields(strings.TrimSpace(raw))
	if len(fields) == 0 {
		return 0, 0, fmt.Errorf("empty ranking cell")
	}

	currentLabel := fields[0]
	bestLabel := currentLabel
	if len(fields) > 1 {
		bestLabel = strings.Trim(fields[len(fields)-1], "()")
	}

	current, err := ladder.Position(currentLabel)
	if err != nil {
		return 0, 0, err
	}
	best, err := ladder.Position(bestLabel)
	if err != nil {
		return 0, 0, err
	}
	return current, best, nil
}
