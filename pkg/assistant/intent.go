package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/urmzd/plasma-remote/pkg/channels"
	"github.com/urmzd/plasma-remote/pkg/schema"
	"github.com/urmzd/plasma-remote/pkg/tv"
)

const (
	// DefaultReply is used when the interpreter gave no usable reply.
	DefaultReply = "Command processed."

	// ApologyReply is returned when the interpreter failed.
	ApologyReply = "Sorry, something went wrong."
)

// Request is what the interpreter sees of one command.
type Request struct {
	Text     string
	State    tv.State
	Channels []channels.Channel
}

// Intent is the interpreter's decision. Action and Channel are both optional.
type Intent struct {
	Action  *tv.Key `json:"action"`
	Channel *int    `json:"channel"`
	Reply   string  `json:"reply"`
}

// Interpreter turns free text into an Intent.
type Interpreter interface {
	Interpret(ctx context.Context, req Request) (Intent, error)
}

// IntentSchema describes the JSON object an interpreter must answer with.
var IntentSchema = json.RawMessage(`{
	"type": "object",
	"properties": {
		"action": {"type": ["string", "null"]},
		"channel": {"type": ["integer", "null"], "minimum": 1},
		"reply": {"type": "string"}
	},
	"required": ["reply"]
}`)

// ParseIntent decodes an interpreter reply. A reply that fails the schema
// keeps whatever fields are individually usable: an unknown action or a bad
// channel is dropped and a missing reply falls back to DefaultReply.
func ParseIntent(v *schema.Validator, raw []byte) (Intent, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return Intent{}, fmt.Errorf("%w: %v", ErrMalformedIntent, err)
	}

	if err := v.ValidateJSON(IntentSchema, raw); err != nil {
		log.Warn().Err(err).Msg("Assistant reply does not match intent schema")
	}

	intent := Intent{Reply: DefaultReply}

	var reply string
	if json.Unmarshal(fields["reply"], &reply) == nil && strings.TrimSpace(reply) != "" {
		intent.Reply = reply
	}

	var action string
	if json.Unmarshal(fields["action"], &action) == nil && action != "" {
		if key, ok := tv.ParseKey(action); ok {
			intent.Action = &key
		} else {
			log.Warn().Str("action", action).Msg("Discarding unknown assistant action")
		}
	}

	var channel float64
	if json.Unmarshal(fields["channel"], &channel) == nil && validChannel(channel) {
		n := int(channel)
		intent.Channel = &n
	}

	return intent, nil
}

func validChannel(f float64) bool {
	return f >= tv.MinChannel && f <= math.MaxInt32 && f == math.Trunc(f)
}

// Label is the short action tag stored in history: "CH n", the key, or "INFO".
func (i Intent) Label() string {
	switch {
	case i.Channel != nil:
		return fmt.Sprintf("CH %d", *i.Channel)
	case i.Action != nil:
		return i.Action.String()
	default:
		return "INFO"
	}
}

// SystemInstruction renders the prompt that frames every command with the
// current set state, the lineup and the key vocabulary.
func SystemInstruction(req Request) string {
	var b strings.Builder

	power := "OFF"
	if req.State.IsOn {
		power = "ON"
	}
	b.WriteString("You are the voice assistant of a Samsung plasma TV remote.\n")
	fmt.Fprintf(&b, "Current state: Power: %s, Vol: %d, Muted: %t, Source: %s, Current Ch: %d.\n",
		power, req.State.Volume, req.State.IsMuted, req.State.Source, req.State.Channel)

	names := make([]string, 0, len(req.Channels))
	for _, ch := range req.Channels {
		names = append(names, fmt.Sprintf("%s (Ch %d)", ch.Name, ch.Number))
	}
	fmt.Fprintf(&b, "Available channels: %s.\n", strings.Join(names, ", "))

	keys := make([]string, 0, len(tv.Keys()))
	for _, k := range tv.Keys() {
		keys = append(keys, k.String())
	}
	fmt.Fprintf(&b, "Available keys: %s.\n", strings.Join(keys, ", "))

	b.WriteString(`Answer with a JSON object {"action", "channel", "reply"}.
Set "channel" to a channel number when the user asks for a channel by name or number, and leave "action" null.
Set "action" to exactly one key from the list for any other button press, and leave "channel" null.
Leave both null for questions, and answer in "reply".
"reply" is a short sentence in the user's language.
Examples:
- "put on arte" -> {"action": null, "channel": 7, "reply": "Switching to Arte."}
- "louder" -> {"action": "VOL_UP", "channel": null, "reply": "Turning it up."}
- "what's on?" -> {"action": "INFO", "channel": null, "reply": "Showing programme info."}
`)
	return b.String()
}
