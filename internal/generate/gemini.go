package generate

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// DefaultGeminiModel is used when no model is configured.
const DefaultGeminiModel = "gemini-2.5-flash"

// Gemini generates games with the Google Gemini API.
type Gemini struct {
	apiKey  string
	model   string
	timeout time.Duration
}

// NewGemini creates a Gemini generator. An API key is required.
func NewGemini(s Settings) (*Gemini, error) {
	if s.APIKey == "" {
		return nil, fmt.Errorf("generate: gemini provider requires an API key")
	}
	model := s.Model
	if model == "" {
		model = DefaultGeminiModel
	}
	return &Gemini{apiKey: s.APIKey, model: model, timeout: s.Timeout}, nil
}

func (g *Gemini) Name() string { return "gemini" }

// Generate renders the prompt, calls the model once and parses its output.
func (g *Gemini) Generate(ctx context.Context, req Request) (Result, error) {
	if err := req.Validate(); err != nil {
		return Result{}, err
	}
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	prompt, err := BuildPrompt(req)
	if err != nil {
		return Result{}, err
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(g.apiKey))
	if err != nil {
		return Result{}, &Failure{Message: "generation service unavailable", Err: err}
	}
	defer client.Close()

	model := client.GenerativeModel(g.model)
	if req.Format != FormatDocument {
		model.ResponseMIMEType = "application/json"
	}

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return Result{}, &Failure{Err: err}
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return Result{}, &Failure{Message: "generation service returned no content"}
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	return resultFromText(sb.String(), req)
}
