// Package openrouter implements ports.Interpreter against the OpenRouter
// OpenAI-compatible chat API. It is an optional alternative to the
// in-process synthesizer, selected with INTERPRETER=openrouter.
package openrouter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/randomtoy/arcana-go/internal/domain"
	"github.com/randomtoy/arcana-go/internal/ports"
	"github.com/randomtoy/arcana-go/internal/synthesis"
)

// Client calls OpenRouter with an ordered list of models, falling back to
// the next model when one fails.
type Client struct {
	httpClient     *http.Client
	apiKey         string
	baseURL        string
	model          string
	fallbackModels []string
	logger         *slog.Logger
}

func NewClient(httpClient *http.Client, apiKey, baseURL, model string, fallbackModels []string, logger *slog.Logger) *Client {
	return &Client{
		httpClient:     httpClient,
		apiKey:         apiKey,
		baseURL:        strings.TrimRight(baseURL, "/"),
		model:          model,
		fallbackModels: fallbackModels,
		logger:         logger,
	}
}

// chatRequest / chatResponse mirror the OpenAI-compatible API shapes.
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// interpretationPayload is the JSON shape the model is instructed to emit.
type interpretationPayload struct {
	Summary      string `json:"summary"`
	Introduction string `json:"introduction"`
	Cards        []struct {
		Name           string `json:"name"`
		Position       string `json:"position"`
		Interpretation string `json:"interpretation"`
	} `json:"cards"`
	CardInteractions    string   `json:"card_interactions"`
	Guidance            string   `json:"guidance"`
	ReflectionQuestions []string `json:"reflection_questions"`
}

func (c *Client) Interpret(ctx context.Context, in ports.InterpretInput) (domain.Interpretation, error) {
	models := make([]string, 0, 1+len(c.fallbackModels))
	models = append(models, c.model)
	models = append(models, c.fallbackModels...)

	var lastErr error
	for _, model := range models {
		out, err := c.interpretWithModel(ctx, in, model)
		if err == nil {
			return out, nil
		}
		lastErr = err
		if len(models) > 1 {
			c.logger.WarnContext(ctx, "model failed, trying next", "model", model, "error", err)
		}
	}

	return domain.Interpretation{}, lastErr
}

func (c *Client) interpretWithModel(ctx context.Context, in ports.InterpretInput, model string) (domain.Interpretation, error) {
	userPrompt := synthesis.BuildPrompt(in)

	content, err := c.callLLM(ctx, model, systemPrompt, userPrompt)
	if err != nil {
		return domain.Interpretation{}, fmt.Errorf("%w: %w", domain.ErrUpstreamLLM, err)
	}

	var payload interpretationPayload
	if err := json.Unmarshal([]byte(content), &payload); err != nil {
		c.logger.WarnContext(ctx, "LLM returned invalid JSON, retrying", "model", model, "error", err)
		content, err = c.callLLM(ctx, model, systemPrompt, retryPrompt(content))
		if err != nil {
			return domain.Interpretation{}, fmt.Errorf("%w: %w", domain.ErrUpstreamLLM, err)
		}
		if err := json.Unmarshal([]byte(content), &payload); err != nil {
			return domain.Interpretation{}, fmt.Errorf("%w: %w", domain.ErrInvalidLLMJSON, err)
		}
	}

	interp := domain.Interpretation{
		ID:                  uuid.NewString(),
		Summary:             payload.Summary,
		Introduction:        payload.Introduction,
		CardInteractions:    payload.CardInteractions,
		Guidance:            payload.Guidance,
		ReflectionQuestions: payload.ReflectionQuestions,
		CreatedAt:           time.Now().UTC(),
	}
	interp.Cards = make([]domain.CardReading, len(payload.Cards))
	for i, card := range payload.Cards {
		interp.Cards[i] = domain.CardReading{
			Name:           card.Name,
			Position:       card.Position,
			Interpretation: card.Interpretation,
		}
	}

	return interp, nil
}

func (c *Client) callLLM(ctx context.Context, model, system, user string) (string, error) {
	reqBody := chatRequest{
		Model: model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	url := c.baseURL + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("http call: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("upstream status %d: %s", resp.StatusCode, string(respBody))
	}

	var chatResp chatResponse
	if err := json.Unmarshal(respBody, &chatResp); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("no choices in response")
	}

	return strings.TrimSpace(chatResp.Choices[0].Message.Content), nil
}

const systemPrompt = `You are a tarot reader providing neutral, reflective interpretations.

Rules:
- Be maximally neutral and balanced.
- Never provide medical, legal, or financial advice.
- Never predict specific outcomes or disasters.
- Never command actions or diagnose conditions.
- Offer balanced possibilities and reflective questions.
- If a question is provided, incorporate it but never guarantee outcomes.

Respond with ONLY a JSON object (no markdown, no code fences, no extra text) matching this exact schema:
{
  "summary": "<one sentence overview>",
  "introduction": "<opening paragraph>",
  "cards": [{"name": "<card name>", "position": "<position id>", "interpretation": "<paragraph>"}],
  "card_interactions": "<how the cards relate>",
  "guidance": "<practical guidance paragraph>",
  "reflection_questions": ["<question>", "..."]
}`

func retryPrompt(badJSON string) string {
	return fmt.Sprintf(`Your previous response was not valid JSON. Here is what you returned:
%s

Return ONLY the corrected JSON object matching the required schema (no markdown, no code fences).`, badJSON)
}
