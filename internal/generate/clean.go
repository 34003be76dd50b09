package generate

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/vovakirdan/forge-studio/internal/scene"
)

var (
	fenceRe     = regexp.MustCompile("(?i)```[a-z]*\\n?")
	preambleRe  = regexp.MustCompile(`(?i)^here[^\n:]*:`)
	codeBlockRe = regexp.MustCompile("```(?:[a-zA-Z]+)?\\n([\\s\\S]*?)```")
)

// CleanOutput strips markdown fences and a leading "Here is ...:" preamble.
func CleanOutput(output string) string {
	if output == "" {
		return ""
	}
	code := fenceRe.ReplaceAllString(output, "")
	code = strings.ReplaceAll(code, "```", "")
	code = strings.TrimSpace(code)
	code = preambleRe.ReplaceAllString(code, "")
	return strings.TrimSpace(code)
}

// ExtractCodeBlock returns the first fenced block, or the cleaned text when
// there is none.
func ExtractCodeBlock(text string) string {
	if m := codeBlockRe.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	return CleanOutput(text)
}

// ExtractDocument pulls an HTML document out of model output.
func ExtractDocument(text string) (string, error) {
	doc := ExtractCodeBlock(text)
	lower := strings.ToLower(doc)
	start := strings.Index(lower, "<!doctype")
	if start < 0 {
		start = strings.Index(lower, "<html")
	}
	if start < 0 {
		return "", fmt.Errorf("generate: output contains no html document")
	}
	doc = doc[start:]
	if end := strings.LastIndex(strings.ToLower(doc), "</html>"); end >= 0 {
		doc = doc[:end+len("</html>")]
	}
	return doc, nil
}

// ExtractScene parses a scene out of model output, tolerating fences and
// prose around the JSON object.
func ExtractScene(text string) (scene.Scene, error) {
	body := ExtractCodeBlock(text)
	start := strings.Index(body, "{")
	end := strings.LastIndex(body, "}")
	if start < 0 || end < start {
		return scene.Scene{}, fmt.Errorf("generate: output contains no json object")
	}
	return scene.Parse([]byte(body[start : end+1]))
}

// resultFromText converts raw model output into a Result for req.
func resultFromText(text string, req Request) (Result, error) {
	if req.Format == FormatDocument {
		doc, err := ExtractDocument(text)
		if err != nil {
			return Result{}, &Failure{Message: "generator returned no playable document", Err: err}
		}
		return Result{Title: titleFromPrompt(req.Prompt, ""), Document: doc}, nil
	}

	sc, err := ExtractScene(text)
	if err != nil {
		return Result{}, &Failure{Message: "generator returned an invalid scene", Err: err}
	}
	return sceneResult(sc, req), nil
}

func sceneResult(sc scene.Scene, req Request) Result {
	if sc.Kind == "" {
		sc.Kind = scene.Kind(req.Options.GameType)
	}
	if sc.Title == "" {
		sc.Title = titleFromPrompt(req.Prompt, sc.Kind)
	}
	return Result{Title: sc.Title, Kind: sc.Kind, Scene: &sc}
}
