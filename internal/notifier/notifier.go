package notifier

import "github.com/fbaudier/interclubs/internal/championship"

// Notifier defines a high-level interface for sending notifications about business events.
// This decouples the rest of the application from the specific notification provider (e.g., Slack).
type Notifier interface {
	// For a freshly simulated championship
	SendStandingsNotification(championshipName string, standings []championship.PoolStandings, dryRun bool) (string, error)
	// For a finished batch simulation
	SendSimulationSummary(poolName string, simulation *championship.PoolSimulation, dryRun bool) (string, error)
}
