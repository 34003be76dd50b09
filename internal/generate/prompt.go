package generate

import (
	"bytes"
	_ "embed"
	"fmt"
	"text/template"

	"github.com/vovakirdan/forge-studio/internal/scene"
)

//go:embed prompts/scene.txt
var scenePrompt string

//go:embed prompts/document.txt
var documentPrompt string

var (
	sceneTmpl    = template.Must(template.New("scene").Parse(scenePrompt))
	documentTmpl = template.Must(template.New("document").Parse(documentPrompt))
)

type promptData struct {
	Prompt     string
	GameType   string
	Theme      string
	Difficulty string
	Schema     string
}

// BuildPrompt renders the provider prompt for a request.
func BuildPrompt(req Request) (string, error) {
	data := promptData{
		Prompt:     req.Prompt,
		GameType:   req.Options.GameType,
		Theme:      req.Options.Theme,
		Difficulty: req.Options.Difficulty,
	}

	tmpl := documentTmpl
	if req.Format != FormatDocument {
		tmpl = sceneTmpl
		schema, err := scene.SchemaJSON()
		if err != nil {
			return "", fmt.Errorf("generate: scene schema: %w", err)
		}
		data.Schema = string(schema)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("generate: render prompt: %w", err)
	}
	return buf.String(), nil
}
