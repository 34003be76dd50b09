package generate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/vovakirdan/forge-studio/internal/scene"
)

const maxResponseBytes = 8 << 20

// HTTP calls a generation service over JSON/HTTP.
//
// Request:  {"prompt": "...", "options": {...}, "format": "scene"|"document"}
// Response: {"result": "<html>"} or {"title", "type", "config": {...}}
// Failure:  non-2xx with {"error": "..."}
type HTTP struct {
	endpoint string
	apiKey   string
	timeout  time.Duration
	client   *http.Client
}

// NewHTTP creates an HTTP generator.
func NewHTTP(s Settings) (*HTTP, error) {
	if s.Endpoint == "" {
		return nil, fmt.Errorf("generate: http provider requires an endpoint")
	}
	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTP{
		endpoint: s.Endpoint,
		apiKey:   s.APIKey,
		timeout:  s.Timeout,
		client:   client,
	}, nil
}

func (h *HTTP) Name() string { return "http" }

type httpRequest struct {
	Prompt  string  `json:"prompt"`
	Options Options `json:"options"`
	Format  Format  `json:"format"`
}

type httpResponse struct {
	Result *string         `json:"result"`
	Error  string          `json:"error"`
	Title  string          `json:"title"`
	Type   string          `json:"type"`
	Config json.RawMessage `json:"config"`
}

// Generate posts the request and decodes either response shape.
func (h *HTTP) Generate(ctx context.Context, req Request) (Result, error) {
	if err := req.Validate(); err != nil {
		return Result{}, err
	}
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	body, err := json.Marshal(httpRequest{Prompt: req.Prompt, Options: req.Options, Format: req.Format})
	if err != nil {
		return Result{}, fmt.Errorf("generate: encode request: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, h.endpoint, bytes.NewReader(body))
	if err != nil {
		return Result{}, fmt.Errorf("generate: build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	if h.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+h.apiKey)
	}

	resp, err := h.client.Do(httpReq)
	if err != nil {
		return Result{}, &Failure{Message: "generation service unreachable", Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return Result{}, &Failure{Status: resp.StatusCode, Err: fmt.Errorf("read response: %w", err)}
	}

	var out httpResponse
	decodeErr := json.Unmarshal(data, &out)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Result{}, &Failure{Status: resp.StatusCode, Message: strings.TrimSpace(out.Error)}
	}
	if decodeErr != nil {
		return Result{}, &Failure{Status: resp.StatusCode, Message: "generation service returned invalid JSON", Err: decodeErr}
	}
	if out.Error != "" {
		return Result{}, &Failure{Status: resp.StatusCode, Message: out.Error}
	}

	switch {
	case out.Result != nil:
		if req.Format == FormatScene && !looksLikeHTML(*out.Result) {
			if sc, err := ExtractScene(*out.Result); err == nil {
				return sceneResult(sc, req), nil
			}
		}
		doc, err := ExtractDocument(*out.Result)
		if err != nil {
			return Result{}, &Failure{Status: resp.StatusCode, Message: "generator returned no playable document", Err: err}
		}
		return Result{Title: titleFromPrompt(req.Prompt, ""), Document: doc}, nil
	case len(out.Config) > 0:
		sc, err := scene.Parse(data)
		if err != nil {
			return Result{}, &Failure{Status: resp.StatusCode, Message: "generator returned an invalid scene", Err: err}
		}
		return sceneResult(sc, req), nil
	default:
		return Result{}, &Failure{Status: resp.StatusCode, Message: "generation service returned an empty response"}
	}
}

func looksLikeHTML(s string) bool {
	lower := strings.ToLower(s)
	return strings.Contains(lower, "<html") || strings.Contains(lower, "<!doctype")
}
