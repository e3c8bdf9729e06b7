package slack

import (
	"context"
	"errors"
	"testing"

	slackapi "github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fbaudier/interclubs/internal/championship"
	"github.com/fbaudier/interclubs/internal/metrics"
	"github.com/fbaudier/interclubs/internal/standings"
)

// mockSlackAPI is a mock implementation of the parts of the slack.Client that we use.
type mockSlackAPI struct {
	postMessageContextFunc func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error)
}

func (m *mockSlackAPI) PostMessageContext(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
	if m.postMessageContextFunc != nil {
		return m.postMessageContextFunc(ctx, channelID, options...)
	}
	return "C12345", "123456789.12345", nil
}

func testStandings() []championship.PoolStandings {
	return []championship.PoolStandings{{
		PoolID:     1,
		PoolLetter: "A",
		Rows: []standings.Row{
			{TeamID: 1, TeamName: "TC Neuilly 1", Played: 3, Wins: 3, Points: 9, RubbersWon: 8, RubbersLost: 1, RubberDiff: 7},
			{TeamID: 2, TeamName: "TC Levallois 1", Played: 3, Losses: 3, Points: 3, RubbersWon: 1, RubbersLost: 8, RubberDiff: -7},
		},
	}}
}

func TestSendMessage_DryRun(t *testing.T) {
	metrics := metrics.NewMock()
	// Pass nil for the api, as it shouldn't be called in dry-run mode.
	notifier := NewNotifierWithAPI(nil, "C123", metrics)

	message := slackapi.NewBlockMessage()
	_, err := notifier.sendMessage(message, true)
	require.NoError(t, err)
}

func TestSendMessage_Success(t *testing.T) {
	postMessageCalled := false
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			postMessageCalled = true
			assert.Equal(t, "C123", channelID)
			return "C123", "ts123", nil
		},
	}

	metrics := metrics.NewMock()
	notifier := NewNotifierWithAPI(api, "C123", metrics)

	message := slackapi.NewBlockMessage(slackapi.NewSectionBlock(slackapi.NewTextBlockObject("plain_text", "hello", false, false), nil, nil))
	ts, err := notifier.sendMessage(message, false)

	require.NoError(t, err)
	assert.True(t, postMessageCalled, "PostMessageContext should have been called")
	assert.Equal(t, "ts123", ts)
	assert.Equal(t, 1, metrics.SlackNotifSent())
	assert.Equal(t, 0, metrics.SlackNotifFailed())
}

func TestSendMessage_Failure(t *testing.T) {
	postMessageCalled := false
	expectedErr := errors.New("slack API is down")
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			postMessageCalled = true
			return "", "", expectedErr
		},
	}

	metrics := metrics.NewMock()
	notifier := NewNotifierWithAPI(api, "C123", metrics)

	message := slackapi.NewBlockMessage()
	_, err := notifier.sendMessage(message, false)

	require.Error(t, err)
	assert.ErrorIs(t, err, expectedErr)
	assert.True(t, postMessageCalled, "PostMessageContext should have been called")
	assert.Equal(t, 0, metrics.SlackNotifSent())
	assert.Equal(t, 1, metrics.SlackNotifFailed())
}

// Test one of the public methods to ensure it calls the private sender.
func TestSendStandingsNotification_CallsSender(t *testing.T) {
	postMessageCalled := false
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			postMessageCalled = true
			return "C123", "ts123", nil
		},
	}

	metrics := metrics.NewMock()
	notifier := NewNotifierWithAPI(api, "C123", metrics)

	_, err := notifier.SendStandingsNotification("Régional 2 - Seniors - Masculin", testStandings(), false)
	require.NoError(t, err)
	assert.True(t, postMessageCalled, "PostMessageContext should have been called via SendStandingsNotification")
}

func TestFormatStandings(t *testing.T) {
	client := &Notifier{channelID: "C123"}
	msg := client.formatStandings("Régional 2 - Seniors - Masculin", testStandings())
	require.Len(t, msg.Blocks.BlockSet, 2, "Expected a header and one table block")

	header, ok := msg.Blocks.BlockSet[0].(*slackapi.HeaderBlock)
	require.True(t, ok)
	assert.Contains(t, header.Text.Text, "Régional 2 - Seniors - Masculin")

	section, ok := msg.Blocks.BlockSet[1].(*slackapi.SectionBlock)
	require.True(t, ok)
	assert.Contains(t, section.Text.Text, "Poule A")
	assert.Contains(t, section.Text.Text, "TC Neuilly 1")
	assert.Contains(t, section.Text.Text, " 9 ")
}

func TestFormatSimulationSummary(t *testing.T) {
	simulation := &championship.PoolSimulation{
		ID:             "sim-1",
		PoolID:         1,
		NumSimulations: 100,
		Results: []championship.TeamSimulationResult{
			{TeamID: 1, TeamName: "TC Neuilly 1", AvgRanking: 0.25, AvgPoints: 8.1, BestRanking: 1, WorstRanking: 2, Distribution: map[int]int{1: 75, 2: 25}},
			{TeamID: 2, TeamName: "TC Levallois 1", AvgRanking: 0.75, AvgPoints: 6.4, BestRanking: 1, WorstRanking: 2, Distribution: map[int]int{1: 25, 2: 75}},
		},
	}

	client := &Notifier{channelID: "C123"}
	msg := client.formatSimulationSummary("Poule A", simulation)
	require.Len(t, msg.Blocks.BlockSet, 3, "Expected header, table and context blocks")

	header, ok := msg.Blocks.BlockSet[0].(*slackapi.HeaderBlock)
	require.True(t, ok)
	assert.Contains(t, header.Text.Text, "100 simulations")

	section, ok := msg.Blocks.BlockSet[1].(*slackapi.SectionBlock)
	require.True(t, ok)
	assert.Contains(t, section.Text.Text, "TC Neuilly 1")

	context, ok := msg.Blocks.BlockSet[2].(*slackapi.ContextBlock)
	require.True(t, ok)
	elements := context.ContextElements.Elements
	require.Len(t, elements, 2)
	first, ok := elements[0].(*slackapi.TextBlockObject)
	require.True(t, ok)
	assert.Contains(t, first.Text, "1e: 75%")
}
