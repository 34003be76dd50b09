// Package generate turns a natural-language prompt into a playable result,
// either a declarative scene or an opaque HTML document.
package generate

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/vovakirdan/forge-studio/internal/scene"
)

// Format selects what a generator should produce.
type Format string

const (
	FormatScene    Format = "scene"
	FormatDocument Format = "document"
)

// DefaultFailureMessage is used when a failing service gives no reason.
const DefaultFailureMessage = "failed to generate game"

// ErrEmptyPrompt is returned for blank prompts.
var ErrEmptyPrompt = errors.New("generate: prompt is empty")

// Options are optional generation hints.
type Options struct {
	GameType   string `json:"gameType,omitempty"`
	Difficulty string `json:"difficulty,omitempty"`
	Theme      string `json:"theme,omitempty"`
}

// Request is a single generation request.
type Request struct {
	Prompt  string  `json:"prompt"`
	Options Options `json:"options,omitempty"`
	Format  Format  `json:"-"`
}

// Validate normalises the request and rejects blank prompts.
func (r *Request) Validate() error {
	r.Prompt = strings.TrimSpace(r.Prompt)
	if r.Prompt == "" {
		return ErrEmptyPrompt
	}
	if r.Format == "" {
		r.Format = FormatScene
	}
	if r.Format != FormatScene && r.Format != FormatDocument {
		return fmt.Errorf("generate: unknown format %q", r.Format)
	}
	return nil
}

// Result is what a generator produced. Exactly one of Scene or Document is set.
type Result struct {
	Title    string
	Kind     scene.Kind
	Scene    *scene.Scene
	Document string
}

// Format reports which kind of result this is.
func (r Result) Format() Format {
	if r.Scene != nil {
		return FormatScene
	}
	return FormatDocument
}

// Generator produces games from prompts.
type Generator interface {
	Name() string
	Generate(ctx context.Context, req Request) (Result, error)
}

// Failure is a generation failure with a user-facing message.
type Failure struct {
	Status  int // HTTP status from the service, 0 when not applicable
	Message string
	Err     error
}

func (f *Failure) Error() string {
	msg := f.Message
	if msg == "" {
		msg = DefaultFailureMessage
	}
	if f.Err != nil {
		return fmt.Sprintf("generate: %s: %v", msg, f.Err)
	}
	return "generate: " + msg
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// UserMessage returns the message to show the user.
func (f *Failure) UserMessage() string {
	if f.Message == "" {
		return DefaultFailureMessage
	}
	return f.Message
}

// UserMessage extracts a user-facing message from any generation error.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var f *Failure
	if errors.As(err, &f) {
		return f.UserMessage()
	}
	if errors.Is(err, ErrEmptyPrompt) {
		return "prompt is empty"
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "generation timed out"
	}
	return DefaultFailureMessage
}

// titleFromPrompt returns the first three words of the prompt.
func titleFromPrompt(prompt string, kind scene.Kind) string {
	words := strings.Fields(prompt)
	if len(words) == 0 {
		return fmt.Sprintf("%s Game", kind)
	}
	return strings.Join(words[:min(3, len(words))], " ")
}
