package document

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/vovakirdan/forge-studio/internal/scene"
)

const sampleGame = `<!DOCTYPE html>
<html><head><title> Dodge </title></head>
<body>
<canvas id="c" width="800" height="600"></canvas>
<script>
const ctx = document.getElementById("c").getContext("2d");
function update() { requestAnimationFrame(update); }
update();
</script>
</body></html>`

func TestInspect(t *testing.T) {
	tests := []struct {
		name      string
		doc       string
		ok        bool
		plausible bool
		warning   string
	}{
		{
			name:      "valid game",
			doc:       sampleGame,
			ok:        true,
			plausible: true,
		},
		{
			name:    "syntax error",
			doc:     `<html><body><canvas></canvas><script>function update( {</script></body></html>`,
			warning: "does not compile",
		},
		{
			name:    "external script",
			doc:     `<html><body><canvas></canvas><script src="https://cdn.example.com/phaser.js"></script><script>function create() {}</script></body></html>`,
			warning: "external source",
		},
		{
			name:    "no scripts",
			doc:     `<html><body><p>hello</p></body></html>`,
			warning: "no scripts",
		},
		{
			name:    "not game code",
			doc:     `<html><body><canvas></canvas><script>var a = 1;</script></body></html>`,
			warning: "do not look like game code",
		},
		{
			name:      "json data block is not compiled",
			doc:       `<html><body><canvas></canvas><script type="application/json">{"a": </script><script>function update() {}</script></body></html>`,
			ok:        true,
			plausible: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rep, err := Inspect(tc.doc)
			if err != nil {
				t.Fatalf("Inspect() error: %v", err)
			}
			if rep.OK() != tc.ok {
				t.Errorf("OK() = %v, expected %v (warnings %v)", rep.OK(), tc.ok, rep.Warnings)
			}
			if tc.plausible && !rep.Plausible {
				t.Error("expected plausible game code")
			}
			if tc.warning != "" && !strings.Contains(strings.Join(rep.Warnings, "\n"), tc.warning) {
				t.Errorf("warnings %v should mention %q", rep.Warnings, tc.warning)
			}
		})
	}
}

func TestInspectTitle(t *testing.T) {
	rep, err := Inspect(sampleGame)
	if err != nil {
		t.Fatalf("Inspect() error: %v", err)
	}
	if rep.Title != "Dodge" {
		t.Errorf("Title = %q, expected Dodge", rep.Title)
	}
	if rep.Scripts != 1 || !rep.HasCanvas {
		t.Errorf("report = %+v", rep)
	}
}

func TestPlausible(t *testing.T) {
	tests := []struct {
		code     string
		expected bool
	}{
		{"", false},
		{"class Game {}", true},
		{"const update = () => {}", true},
		{"let x = 1", false},
	}
	for _, tc := range tests {
		if got := Plausible(tc.code); got != tc.expected {
			t.Errorf("Plausible(%q) = %v, expected %v", tc.code, got, tc.expected)
		}
	}
}

func TestWriteHost(t *testing.T) {
	var sb strings.Builder
	if err := WriteHost(&sb, "Dodge", "/games/abc/document"); err != nil {
		t.Fatalf("WriteHost() error: %v", err)
	}
	page := sb.String()
	for _, want := range []string{`sandbox="allow-scripts"`, `src="/games/abc/document"`, `width="800"`, `height="600"`} {
		if !strings.Contains(page, want) {
			t.Errorf("host page missing %s", want)
		}
	}
	if strings.Contains(page, "allow-same-origin") {
		t.Error("host page must not grant same-origin")
	}
}

func TestWriteHostInlineEscapes(t *testing.T) {
	var sb strings.Builder
	if err := WriteHostInline(&sb, "", sampleGame); err != nil {
		t.Fatalf("WriteHostInline() error: %v", err)
	}
	page := sb.String()
	if !strings.Contains(page, "srcdoc=") {
		t.Fatal("expected a srcdoc iframe")
	}
	if strings.Contains(page, "<script>\nconst ctx") {
		t.Error("document must be escaped inside srcdoc, not inlined into the host")
	}
	if !strings.Contains(page, "<title>Game</title>") {
		t.Error("empty title should default to Game")
	}
}

func TestSetSandboxHeaders(t *testing.T) {
	rec := httptest.NewRecorder()
	SetSandboxHeaders(rec.Header())
	if got := rec.Header().Get("Content-Security-Policy"); got != "sandbox allow-scripts" {
		t.Errorf("CSP = %q", got)
	}
}

func TestStandaloneCompiles(t *testing.T) {
	sc := scene.Template(scene.KindPlatformer)
	sc.Title = "Coin </script> Rush"

	doc, err := Standalone(sc)
	if err != nil {
		t.Fatalf("Standalone() error: %v", err)
	}
	rep, err := Inspect(doc)
	if err != nil {
		t.Fatalf("Inspect() error: %v", err)
	}
	if !rep.OK() {
		t.Errorf("standalone document has warnings: %v", rep.Warnings)
	}
	if strings.Count(doc, "</script>") != 1 {
		t.Error("scene title must not terminate the script element")
	}
}
