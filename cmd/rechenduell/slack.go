package main

//go:generate mockgen -source=slack.go -destination=slack_mock_test.go -package=main

import (
	"fmt"
	"log/slog"

	"github.com/slack-go/slack"
)

// SlackPoster is the subset of operations from the slack.Client used to
// announce match results. Abstracted for easier testing; add methods from
// the slack.Client here if more functionality is needed.
type SlackPoster interface {

	// PostMessage sends a message to a Slack channel.
	// Returns the channel ID and timestamp of the posted message, or an error.
	PostMessage(channelID string, options ...slack.MsgOption) (string, string, error)
}

// compile-time assertion to ensure that `slack.Client` implements `SlackPoster`
var _ SlackPoster = (*slack.Client)(nil)

// ResultAnnouncer posts finished match results to a Slack channel. It never
// sits on the gameplay path: the manager fires it on its own goroutine after
// a goal, and a nil announcer disables the feature entirely.
type ResultAnnouncer struct {
	client    SlackPoster
	channelID string
}

func NewResultAnnouncer(client SlackPoster, channelID string) *ResultAnnouncer {
	return &ResultAnnouncer{client: client, channelID: channelID}
}

// AnnounceResult posts the outcome of one finished game.
func (a *ResultAnnouncer) AnnounceResult(code string, winnerIndex, ball int) {
	side := "Spieler 1"
	if winnerIndex == 1 {
		side = "Spieler 2"
	}
	text := fmt.Sprintf("Rechenduell %s ist vorbei: %s gewinnt! (Ball bei %d)", code, side, ball)

	if _, _, err := a.client.PostMessage(a.channelID, slack.MsgOptionText(text, false)); err != nil {
		slog.Error("Failed to announce result", "code", code, "error", err)
	}
}
