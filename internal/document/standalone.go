package document

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/vovakirdan/forge-studio/internal/core"
	"github.com/vovakirdan/forge-studio/internal/scene"
)

// standaloneTmpl is a click-driven player for a scene, runnable in any
// browser. It mirrors the engine's click policy.
var standaloneTmpl = template.Must(template.New("standalone").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>body { margin: 0; background: #000; } canvas { display: block; }</style>
</head>
<body>
<canvas id="game" width="{{.Width}}" height="{{.Height}}"></canvas>
<script>
const scene = {{.Scene}};
const themes = {{.Themes}};
const rules = {
  platformer: { match: function (b) { return b === "collectible"; }, remove: true, points: 10 },
  shooter: { match: function (b) { return b === "enemy"; }, remove: true, points: 20 }
};
const fallbackRule = { match: function () { return true; }, remove: false, points: 5 };
const canvas = document.getElementById("game");
const ctx = canvas.getContext("2d");
const objects = (scene.objects || []).map(function (o) {
  return {
    shape: o.type === "circle" ? "circle" : "rectangle",
    x: Number(o.x) || 0, y: Number(o.y) || 0,
    w: Number(o.width) > 0 ? Number(o.width) : 50,
    h: Number(o.height) > 0 ? Number(o.height) : 50,
    r: Number(o.radius) > 0 ? Number(o.radius) : 20,
    color: o.color || "{{.DefaultColor}}",
    behavior: o.behavior || "static"
  };
});
let state;

function reset() {
  state = { score: 0, lives: 3, collected: new Set(), status: "playing" };
  draw();
}

function contains(o, x, y) {
  if (o.shape === "circle") {
    return Math.hypot(x - o.x, y - o.y) <= o.r;
  }
  return x >= o.x && x < o.x + o.w && y >= o.y && y < o.y + o.h;
}

function draw() {
  const theme = themes[scene.theme] || themes["default"];
  ctx.fillStyle = theme.bg;
  ctx.fillRect(0, 0, canvas.width, canvas.height);
  ctx.fillStyle = theme.text;
  ctx.font = "20px sans-serif";
  ctx.fillText(scene.title || "Game", 10, 30);
  objects.forEach(function (o, i) {
    if (state.collected.has(i)) {
      return;
    }
    ctx.fillStyle = o.color;
    if (o.shape === "circle") {
      ctx.beginPath();
      ctx.arc(o.x, o.y, o.r, 0, Math.PI * 2);
      ctx.fill();
    } else {
      ctx.fillRect(o.x, o.y, o.w, o.h);
    }
    if (o.behavior === "player") {
      ctx.strokeStyle = "#FFFFFF";
      ctx.lineWidth = 2;
      ctx.strokeRect(o.x - 2, o.y - 2, o.w + 4, o.h + 4);
    }
  });
  ctx.fillStyle = theme.text;
  ctx.fillText("Score: " + state.score + "  Lives: " + state.lives, 10, canvas.height - 20);
  if (state.status !== "playing") {
    ctx.textAlign = "center";
    ctx.fillText(state.status === "won" ? "You Win!" : "Game Over", canvas.width / 2, canvas.height / 2);
    ctx.textAlign = "left";
  }
}

canvas.addEventListener("click", function (e) {
  if (state.status !== "playing") {
    reset();
    return;
  }
  const rect = canvas.getBoundingClientRect();
  const x = (e.clientX - rect.left) * canvas.width / rect.width;
  const y = (e.clientY - rect.top) * canvas.height / rect.height;
  const rule = rules[scene.type] || fallbackRule;
  for (let i = 0; i < objects.length; i++) {
    const o = objects[i];
    if (state.collected.has(i) || !rule.match(o.behavior) || !contains(o, x, y)) {
      continue;
    }
    state.score += rule.points;
    if (rule.remove) {
      state.collected.add(i);
    }
    break;
  }
  const done = objects.every(function (o, i) {
    return (o.behavior !== "collectible" && o.behavior !== "item") || state.collected.has(i);
  });
  if (done) {
    state.status = "won";
  }
  draw();
});

reset();
</script>
</body>
</html>
`))

type themeColors struct {
	BG   string `json:"bg"`
	Text string `json:"text"`
}

// Standalone renders a scene as a self-contained click-driven HTML game.
func Standalone(sc scene.Scene) (string, error) {
	themes := make(map[string]themeColors)
	for _, name := range scene.Themes() {
		t := scene.ResolveTheme(name)
		themes[name] = themeColors{BG: t.Background.Hex(), Text: t.Text.Hex()}
	}
	title := sc.Title
	if title == "" {
		title = "Game"
	}

	var buf bytes.Buffer
	err := standaloneTmpl.Execute(&buf, struct {
		Title        string
		Scene        scene.Scene
		Themes       map[string]themeColors
		DefaultColor string
		Width        int
		Height       int
	}{title, sc, themes, scene.DefaultColor, core.SurfaceW, core.SurfaceH})
	if err != nil {
		return "", fmt.Errorf("document: render standalone: %w", err)
	}
	return buf.String(), nil
}
