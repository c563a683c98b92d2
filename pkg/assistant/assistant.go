// Package assistant turns free-text commands into remote actions through
// an LLM interpreter and keeps a log of what was done.
package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/urmzd/plasma-remote/pkg/channels"
	"github.com/urmzd/plasma-remote/pkg/db"
	"github.com/urmzd/plasma-remote/pkg/remote"
)

// Outcome is the result of one handled command.
type Outcome struct {
	ID        string            `json:"id"`
	Text      string            `json:"text"`
	Action    string            `json:"action"`
	Reply     string            `json:"reply"`
	Intent    Intent            `json:"intent"`
	Zap       *remote.ZapStatus `json:"zap,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}

// Assistant executes interpreted commands against the dispatcher.
type Assistant struct {
	interpreter Interpreter
	dispatcher  *remote.Dispatcher
	lineup      *channels.Lineup
	history     db.HistoryStore
	profileID   int64
}

// New creates an Assistant. A nil interpreter yields an assistant that
// answers every command with ErrUnavailable.
func New(interpreter Interpreter, dispatcher *remote.Dispatcher, lineup *channels.Lineup, history db.HistoryStore, profileID int64) *Assistant {
	if lineup == nil {
		lineup = channels.Default()
	}
	return &Assistant{
		interpreter: interpreter,
		dispatcher:  dispatcher,
		lineup:      lineup,
		history:     history,
		profileID:   profileID,
	}
}

// Available reports whether an interpreter is configured.
func (a *Assistant) Available() bool {
	return a != nil && a.interpreter != nil
}

// Handle interprets text and acts on it. A channel in the intent wins over
// an action. Interpreter failures degrade to an apology reply rather than an
// error; only a missing interpreter or blank input are errors.
func (a *Assistant) Handle(ctx context.Context, text string) (Outcome, error) {
	if !a.Available() {
		return Outcome{}, ErrUnavailable
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return Outcome{}, ErrEmptyCommand
	}

	req := Request{
		Text:     text,
		State:    a.dispatcher.State(),
		Channels: a.lineup.All(),
	}

	intent, err := a.interpreter.Interpret(ctx, req)
	if err != nil {
		log.Warn().Err(err).Str("text", text).Msg("Assistant interpretation failed")
		intent = Intent{Reply: ApologyReply}
	}
	if intent.Reply == "" {
		intent.Reply = DefaultReply
	}

	out := Outcome{
		Text:   text,
		Action: intent.Label(),
		Reply:  intent.Reply,
		Intent: intent,
	}

	switch {
	case intent.Channel != nil:
		n := *intent.Channel
		name := a.lineup.Name(n)
		if name == "" {
			name = fmt.Sprintf("Ch %d", n)
		}
		job, err := a.dispatcher.Zap(n, name)
		if err != nil {
			log.Warn().Err(err).Int("channel", n).Msg("Assistant zap failed")
		} else {
			status := job.Status()
			out.Zap = &status
		}
	case intent.Action != nil:
		if err := a.dispatcher.Dispatch(*intent.Action); err != nil {
			log.Warn().Err(err).Str("key", intent.Action.String()).Msg("Assistant key press failed")
		}
	}

	log.Info().Str("text", text).Str("action", out.Action).Msg("Assistant command handled")

	entry := &db.HistoryEntry{
		ProfileID: a.profileID,
		Text:      text,
		Action:    out.Action,
		Reply:     out.Reply,
	}
	if a.history != nil {
		if err := a.history.Add(ctx, entry); err != nil {
			log.Error().Err(err).Msg("Failed to record assistant history")
		}
	}
	out.ID = entry.ID
	out.CreatedAt = entry.CreatedAt
	if out.CreatedAt.IsZero() {
		out.CreatedAt = time.Now().UTC()
	}

	return out, nil
}

// History returns the most recent handled commands first.
func (a *Assistant) History(ctx context.Context, limit int) ([]*db.HistoryEntry, error) {
	if a == nil || a.history == nil {
		return []*db.HistoryEntry{}, nil
	}
	return a.history.List(ctx, a.profileID, limit)
}

// IsUnavailable reports whether err means no interpreter is configured.
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrUnavailable)
}
