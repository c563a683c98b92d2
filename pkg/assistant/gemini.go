package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/urmzd/plasma-remote/pkg/schema"
)

const providerGemini = "gemini"

// Gemini interprets commands with the Gemini generateContent API,
// constraining the answer to the intent JSON object.
type Gemini struct {
	config    *Config
	http      *http.Client
	validator *schema.Validator
}

// NewGemini creates a Gemini interpreter. The validator checks replies
// against IntentSchema.
func NewGemini(validator *schema.Validator, opts ...Option) (*Gemini, error) {
	cfg := DefaultConfig().Apply(opts...)
	if cfg.APIKey == "" {
		return nil, WrapError(providerGemini, ErrNoAPIKey)
	}

	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	if validator == nil {
		validator = schema.NewValidator()
	}

	return &Gemini{config: cfg, http: client, validator: validator}, nil
}

// Model returns the configured model name.
func (g *Gemini) Model() string {
	return g.config.Model
}

// responseSchema is the OpenAPI subset Gemini accepts for structured output.
var responseSchema = map[string]any{
	"type": "OBJECT",
	"properties": map[string]any{
		"action":  map[string]any{"type": "STRING", "nullable": true},
		"channel": map[string]any{"type": "INTEGER", "nullable": true},
		"reply":   map[string]any{"type": "STRING"},
	},
	"required": []string{"reply"},
}

// Interpret implements Interpreter.
func (g *Gemini) Interpret(ctx context.Context, req Request) (Intent, error) {
	payload := map[string]any{
		"systemInstruction": map[string]any{
			"parts": []map[string]any{{"text": SystemInstruction(req)}},
		},
		"contents": []map[string]any{{
			"role":  "user",
			"parts": []map[string]any{{"text": req.Text}},
		}},
		"generationConfig": map[string]any{
			"temperature":      g.config.Temperature,
			"responseMimeType": "application/json",
			"responseSchema":   responseSchema,
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return Intent{}, WrapError(providerGemini, fmt.Errorf("marshal request: %w", err))
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s",
		strings.TrimRight(g.config.BaseURL, "/"), g.config.Model, g.config.APIKey)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return Intent{}, WrapError(providerGemini, fmt.Errorf("create request: %w", err))
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := g.http.Do(httpReq)
	if err != nil {
		return Intent{}, WrapError(providerGemini, fmt.Errorf("send request: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Intent{}, g.parseError(resp)
	}

	var result geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return Intent{}, WrapError(providerGemini, fmt.Errorf("decode response: %w", err))
	}
	if result.Error.Message != "" {
		return Intent{}, &APIError{
			StatusCode: result.Error.Code,
			Message:    result.Error.Message,
			Provider:   providerGemini,
		}
	}

	text := result.text()
	if text == "" {
		return Intent{}, WrapError(providerGemini, ErrEmptyResponse)
	}

	log.Debug().Str("model", g.config.Model).Str("reply", text).Msg("Gemini replied")

	intent, err := ParseIntent(g.validator, []byte(text))
	if err != nil {
		return Intent{}, WrapError(providerGemini, err)
	}
	return intent, nil
}

func (g *Gemini) parseError(resp *http.Response) error {
	body, _ := io.ReadAll(resp.Body)

	var errResp struct {
		Error struct {
			Message string `json:"message"`
			Code    int    `json:"code"`
			Status  string `json:"status"`
		} `json:"error"`
	}

	message := string(body)
	code := ""
	if json.Unmarshal(body, &errResp) == nil && errResp.Error.Message != "" {
		message = errResp.Error.Message
		code = errResp.Error.Status
	}

	return &APIError{
		StatusCode: resp.StatusCode,
		Message:    message,
		Code:       code,
		Provider:   providerGemini,
	}
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
		FinishReason string `json:"finishReason"`
	} `json:"candidates"`
	Error struct {
		Message string `json:"message"`
		Code    int    `json:"code"`
	} `json:"error"`
}

// text concatenates the parts of the first candidate.
func (r *geminiResponse) text() string {
	if len(r.Candidates) == 0 {
		return ""
	}
	var b strings.Builder
	for _, part := range r.Candidates[0].Content.Parts {
		b.WriteString(part.Text)
	}
	return strings.TrimSpace(b.String())
}
