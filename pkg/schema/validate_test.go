package schema

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/urmzd/plasma-remote/pkg/bridge"
)

func intentSchema() json.RawMessage {
	return json.RawMessage(`{
		"$schema": "https://json-schema.org/draft/2020-12/schema",
		"type": "object",
		"properties": {
			"action": {"type": ["string", "null"]},
			"channel": {"type": ["integer", "null"], "minimum": 1},
			"reply": {"type": "string"}
		},
		"required": ["reply"]
	}`)
}

func TestValidate_BridgeConfig(t *testing.T) {
	v := NewValidator()

	err := v.Validate(bridge.ConfigSchema, map[string]any{
		"enabled":    true,
		"bridge_url": "http://192.168.1.20/ir?k={KEY}",
		"method":     "POST",
	})
	if err != nil {
		t.Errorf("expected valid payload, got: %v", err)
	}
}

func TestValidate_BridgeConfigMissingURL(t *testing.T) {
	v := NewValidator()

	err := v.Validate(bridge.ConfigSchema, map[string]any{
		"enabled": true,
	})
	if err == nil {
		t.Error("expected validation error for missing bridge_url")
	}
	if !errors.Is(err, ErrInvalid) {
		t.Errorf("expected ErrInvalid, got: %v", err)
	}
}

func TestValidate_BridgeConfigInvalidMethod(t *testing.T) {
	v := NewValidator()

	err := v.Validate(bridge.ConfigSchema, map[string]any{
		"enabled":    false,
		"bridge_url": "",
		"method":     "DELETE",
	})
	if err == nil {
		t.Error("expected validation error for invalid method")
	}
}

func TestValidate_UnknownProperty(t *testing.T) {
	v := NewValidator()

	err := v.Validate(bridge.ConfigSchema, map[string]any{
		"enabled":    false,
		"bridge_url": "",
		"unknown":    "value",
	})
	if err == nil {
		t.Error("expected validation error for unknown property")
	}
}

func TestValidateJSON_Intent(t *testing.T) {
	v := NewValidator()

	valid := []string{
		`{"action": "VOL_UP", "channel": null, "reply": "Volume +1."}`,
		`{"channel": 15, "reply": "Zap to BFM TV."}`,
		`{"reply": "I can only control the TV."}`,
	}
	for _, doc := range valid {
		if err := v.ValidateJSON(intentSchema(), []byte(doc)); err != nil {
			t.Errorf("expected %s to be valid, got: %v", doc, err)
		}
	}
}

func TestValidateJSON_IntentRejects(t *testing.T) {
	v := NewValidator()

	invalid := map[string]string{
		"missing reply":     `{"action": "POWER"}`,
		"fractional":        `{"channel": 15.5, "reply": "x"}`,
		"channel zero":      `{"channel": 0, "reply": "x"}`,
		"action not string": `{"action": 3, "reply": "x"}`,
		"not json":          `{"reply": `,
	}
	for name, doc := range invalid {
		err := v.ValidateJSON(intentSchema(), []byte(doc))
		if err == nil {
			t.Errorf("%s: expected validation error", name)
			continue
		}
		if !errors.Is(err, ErrInvalid) {
			t.Errorf("%s: expected ErrInvalid, got: %v", name, err)
		}
	}
}

func TestValidate_EmptySchema(t *testing.T) {
	v := NewValidator()

	// Empty schema means no validation
	err := v.Validate(json.RawMessage(`{}`), map[string]any{
		"anything": "goes",
	})
	if err != nil {
		t.Errorf("empty schema should skip validation, got: %v", err)
	}
}

func TestValidate_NilSchema(t *testing.T) {
	v := NewValidator()

	err := v.Validate(nil, map[string]any{
		"anything": "goes",
	})
	if err != nil {
		t.Errorf("nil schema should skip validation, got: %v", err)
	}
}

func TestValidate_BrokenSchema(t *testing.T) {
	v := NewValidator()

	err := v.Validate(json.RawMessage(`{"type": 12}`), map[string]any{})
	if err == nil {
		t.Error("expected error for a schema that does not compile")
	}
	if errors.Is(err, ErrInvalid) {
		t.Error("a broken schema is not a payload error")
	}
}

func TestValidate_CachesSchema(t *testing.T) {
	v := NewValidator()

	// First call compiles
	err := v.ValidateJSON(intentSchema(), []byte(`{"reply": "a"}`))
	if err != nil {
		t.Fatal(err)
	}

	// Second call should use cache
	err = v.ValidateJSON(intentSchema(), []byte(`{"reply": "b"}`))
	if err != nil {
		t.Fatal(err)
	}

	if n := v.Cached(); n != 1 {
		t.Errorf("expected 1 cached schema, got %d", n)
	}
}

func TestPrecompile(t *testing.T) {
	v := NewValidator()

	if err := v.Precompile(bridge.ConfigSchema, intentSchema(), nil); err != nil {
		t.Fatalf("expected schemas to compile, got: %v", err)
	}
	if n := v.Cached(); n != 2 {
		t.Errorf("expected 2 cached schemas, got %d", n)
	}

	if err := v.Precompile(json.RawMessage(`{"type": 12}`)); err == nil {
		t.Error("expected error for a schema that does not compile")
	}
}
