package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/slack-go/slack"

	"github.com/fbaudier/interclubs/internal/championship"
	"github.com/fbaudier/interclubs/internal/metrics"
	"github.com/fbaudier/interclubs/internal/notifier"
)

// slackClient is an interface that contains the methods from the slack.Client that we use.
// This allows for easy mocking in tests.
type slackClient interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

var _ notifier.Notifier = &Notifier{}

// Notifier handles sending notifications to Slack.
type Notifier struct {
	api       slackClient
	channelID string
	metrics   metrics.Metrics
}

// NewNotifier creates a new Notifier.
func NewNotifier(token, channelID string, metrics metrics.Metrics) *Notifier {
	api := slack.New(token)
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

// NewNotifierWithAPI creates a new Notifier with a specific slack.Client instance.
// Useful for tests that need to intercept API calls.
func NewNotifierWithAPI(api slackClient, channelID string, metrics metrics.Metrics) *Notifier {
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

func (s *Notifier) sendMessage(message slack.Message, dryRun bool) (string, error) {
	if dryRun {
		jsonMsg, _ := json.MarshalIndent(message, "", "  ")
		log.Info("[Dry Run] Would send Slack message", "channel", s.channelID, "message", string(jsonMsg))
		return "dry-run-ts", nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	channelID, timestamp, err := s.api.PostMessageContext(
		ctx,
		s.channelID,
		slack.MsgOptionBlocks(message.Blocks.BlockSet...),
		slack.MsgOptionAsUser(true),
	)
	if err != nil {
		s.metrics.IncSlackNotifFailed()
		log.Error("Failed to send Slack message", "error", err, "channel", channelID)
		return "", fmt.Errorf("failed to post message: %w", err)
	}

	s.metrics.IncSlackNotifSent()
	log.Info("Successfully sent Slack message", "channel", channelID, "timestamp", timestamp)
	return timestamp, nil
}

// SendStandingsNotification posts one standings table per pool.
func (s *Notifier) SendStandingsNotification(championshipName string, standings []championship.PoolStandings, dryRun bool) (string, error) {
	msg := s.formatStandings(championshipName, standings)
	return s.sendMessage(msg, dryRun)
}

// SendSimulationSummary posts the aggregated outcome of a batch simulation.
func (s *Notifier) SendSimulationSummary(poolName string, simulation *championship.PoolSimulation, dryRun bool) (string, error) {
	msg := s.formatSimulationSummary(poolName, simulation)
	return s.sendMessage(msg, dryRun)
}

// formatStandings creates the Slack message for freshly computed standings using Block Kit.
func (s *Notifier) formatStandings(championshipName string, standings []championship.PoolStandings) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", fmt.Sprintf("🎾 Classement - %s 🎾", championshipName), true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	for _, pool := range standings {
		var table strings.Builder
		table.WriteString(fmt.Sprintf("*Poule %s*\n```", pool.PoolLetter))
		table.WriteString(fmt.Sprintf("\n%-2s %-22s %2s %2s %2s %2s %3s %4s", "#", "Equipe", "J", "G", "N", "P", "Pts", "Diff"))
		for i, row := range pool.Rows {
			table.WriteString(fmt.Sprintf("\n%-2d %-22s %2d %2d %2d %2d %3d %+4d",
				i+1, truncate(row.TeamName, 22), row.Played, row.Wins, row.Draws, row.Losses, row.Points, row.RubberDiff))
		}
		table.WriteString("\n```")
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("mrkdwn", table.String(), false, false), nil, nil))
	}

	return slack.NewBlockMessage(blocks...)
}

// formatSimulationSummary creates the Slack message for a batch simulation using Block Kit.
func (s *Notifier) formatSimulationSummary(poolName string, simulation *championship.PoolSimulation) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text",
		fmt.Sprintf("🎾 %s - %d simulations 🎾", poolName, simulation.NumSimulations), true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	var table strings.Builder
	table.WriteString("```")
	table.WriteString(fmt.Sprintf("\n%-22s %5s %5s %4s %4s", "Equipe", "Moy", "Pts", "Min", "Max"))
	for _, result := range simulation.Results {
		table.WriteString(fmt.Sprintf("\n%-22s %5.2f %5.1f %4d %4d",
			truncate(result.TeamName, 22), 1+result.AvgRanking, result.AvgPoints, result.BestRanking, result.WorstRanking))
	}
	table.WriteString("\n```")
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("mrkdwn", table.String(), false, false), nil, nil))

	var contextElements []slack.MixedElement
	for _, result := range simulation.Results {
		positions := make([]int, 0, len(result.Distribution))
		for position := range result.Distribution {
			positions = append(positions, position)
		}
		sort.Ints(positions)
		parts := make([]string, 0, len(positions))
		for _, position := range positions {
			share := 100 * float64(result.Distribution[position]) / float64(simulation.NumSimulations)
			parts = append(parts, fmt.Sprintf("%de: %.0f%%", position, share))
		}
		contextElements = append(contextElements, slack.NewTextBlockObject("plain_text",
			fmt.Sprintf("%s : %s", result.TeamName, strings.Join(parts, ", ")), true, false))
	}
	if len(contextElements) > 0 {
		blocks = append(blocks, slack.NewContextBlock("", contextElements...))
	}

	return slack.NewBlockMessage(blocks...)
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
