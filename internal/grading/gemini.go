package grading

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiOracle grades submissions through the Gemini API. The underlying
// client is created once at process start and released with Close at
// shutdown; it is safe for concurrent use across submission pipelines.
type GeminiOracle struct {
	client *genai.Client
	model  string
	retry  RetryPolicy
}

// NewGeminiOracle dials the Gemini API. The caller owns the returned oracle
// and must Close it.
func NewGeminiOracle(ctx context.Context, apiKey, model string, retry RetryPolicy) (*GeminiOracle, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("gemini: api key is empty")
	}
	cl, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("gemini: %w", err)
	}
	return &GeminiOracle{client: cl, model: strings.TrimSpace(model), retry: retry}, nil
}

func (o *GeminiOracle) Close() error { return o.client.Close() }

func (o *GeminiOracle) Model() string { return o.model }

// Evaluate sends one grading request and returns the model's raw text. Only
// transport and availability failures are retried; an empty or non-JSON body
// is returned as-is for the parser's fallback to absorb. After the retry
// budget is spent the error wraps ErrOracleUnavailable.
func (o *GeminiOracle) Evaluate(ctx context.Context, req Request, rubric NormalizedRubric) (string, error) {
	m := o.client.GenerativeModel(o.model)
	m.GenerationConfig = genai.GenerationConfig{
		Temperature:      ptrFloat32(0.2),
		ResponseMIMEType: "application/json",
	}
	m.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(systemPrompt)},
	}
	user := genai.Text(buildUserPrompt(req, rubric))

	var raw string
	err := o.retry.Do(ctx, func(ctx context.Context) error {
		resp, err := m.GenerateContent(ctx, user)
		if err != nil {
			return err
		}
		raw = firstText(resp)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrOracleUnavailable, err)
	}
	return raw, nil
}

func firstText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	for _, c := range resp.Candidates {
		if c.Content == nil {
			continue
		}
		for _, p := range c.Content.Parts {
			if t, ok := p.(genai.Text); ok {
				return string(t)
			}
		}
	}
	return ""
}

func ptrFloat32(v float32) *float32 { return &v }
