package generate

import (
	"context"
	"strings"

	"github.com/vovakirdan/forge-studio/internal/document"
	"github.com/vovakirdan/forge-studio/internal/scene"
)

// Template is the offline generator: it picks a built-in scene by keyword.
type Template struct{}

// NewTemplate creates the offline generator.
func NewTemplate() *Template {
	return &Template{}
}

func (t *Template) Name() string { return "template" }

// Generate never contacts a service.
func (t *Template) Generate(ctx context.Context, req Request) (Result, error) {
	if err := req.Validate(); err != nil {
		return Result{}, err
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	kind := AnalyzePrompt(req.Prompt)
	if gt := scene.Kind(strings.ToLower(req.Options.GameType)); isTemplateKind(gt) {
		kind = gt
	}
	theme := ExtractTheme(req.Prompt)
	if req.Options.Theme != "" {
		theme = req.Options.Theme
	}

	sc := scene.Template(kind)
	sc.Theme = theme
	sc.Title = titleFromPrompt(req.Prompt, kind)

	if req.Format == FormatDocument {
		doc, err := document.Standalone(sc)
		if err != nil {
			return Result{}, &Failure{Err: err}
		}
		return Result{Title: sc.Title, Kind: sc.Kind, Document: doc}, nil
	}
	return Result{Title: sc.Title, Kind: sc.Kind, Scene: &sc}, nil
}

// AnalyzePrompt guesses the game kind from prompt keywords.
func AnalyzePrompt(prompt string) scene.Kind {
	p := strings.ToLower(prompt)
	switch {
	case strings.Contains(p, "puzzle") || strings.Contains(p, "match"):
		return scene.KindPuzzle
	case strings.Contains(p, "shoot") || strings.Contains(p, "space"):
		return scene.KindShooter
	default:
		return scene.KindPlatformer
	}
}

// ExtractTheme guesses the theme from prompt keywords.
func ExtractTheme(prompt string) string {
	p := strings.ToLower(prompt)
	switch {
	case strings.Contains(p, "space"):
		return "space"
	case strings.Contains(p, "forest"):
		return "forest"
	case strings.Contains(p, "water"):
		return "underwater"
	default:
		return scene.DefaultTheme
	}
}

func isTemplateKind(k scene.Kind) bool {
	for _, t := range scene.TemplateKinds() {
		if k == t {
			return true
		}
	}
	return false
}
