package club

import (
	"database/sql"
	"sync"
)

// store handles all database operations for clubs, players and the ranking
// ladder.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}
