// Package schema validates JSON payloads, such as bridge settings and the
// assistant's structured replies, against JSON Schema documents.
package schema

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("payload does not match schema")

// Validator checks payloads against JSON Schema documents. Compiled schemas
// are kept per document digest; it is safe for concurrent use.
type Validator struct {
	mu       sync.Mutex
	compiled map[string]*jsonschema.Schema
}

// NewValidator returns a Validator with nothing compiled yet.
func NewValidator() *Validator {
	return &Validator{compiled: make(map[string]*jsonschema.Schema)}
}

// Precompile compiles docs up front so a broken document fails at startup
// instead of on the first request.
func (v *Validator) Precompile(docs ...json.RawMessage) error {
	for i, doc := range docs {
		if isEmpty(doc) {
			continue
		}
		if _, err := v.schemaFor(doc); err != nil {
			return fmt.Errorf("schema %d: %w", i, err)
		}
	}
	return nil
}

// Validate checks a decoded payload. An empty or "{}" document accepts
// anything. Payload failures wrap ErrInvalid; a document that does not
// compile does not.
func (v *Validator) Validate(schemaDoc json.RawMessage, payload any) error {
	if isEmpty(schemaDoc) {
		return nil
	}

	s, err := v.schemaFor(schemaDoc)
	if err != nil {
		return fmt.Errorf("failed to compile schema: %w", err)
	}

	if err := s.Validate(payload); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

// ValidateJSON decodes data and validates it. Numbers are kept exact so
// integer constraints apply to values like 15 and reject 15.5.
func (v *Validator) ValidateJSON(schemaDoc json.RawMessage, data []byte) error {
	payload, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return v.Validate(schemaDoc, payload)
}

// Cached returns the number of compiled schemas held.
func (v *Validator) Cached() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.compiled)
}

func (v *Validator) schemaFor(doc json.RawMessage) (*jsonschema.Schema, error) {
	sum := sha256.Sum256(doc)
	key := hex.EncodeToString(sum[:])

	v.mu.Lock()
	defer v.mu.Unlock()

	if s, ok := v.compiled[key]; ok {
		return s, nil
	}

	parsed, err := jsonschema.UnmarshalJSON(bytes.NewReader(doc))
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal schema: %w", err)
	}

	url := key + ".json"
	c := jsonschema.NewCompiler()
	if err := c.AddResource(url, parsed); err != nil {
		return nil, fmt.Errorf("failed to add resource: %w", err)
	}
	s, err := c.Compile(url)
	if err != nil {
		return nil, err
	}

	v.compiled[key] = s
	return s, nil
}

func isEmpty(doc json.RawMessage) bool {
	trimmed := string(bytes.TrimSpace(doc))
	return trimmed == "" || trimmed == "{}" || trimmed == "null"
}
