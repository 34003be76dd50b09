package document

import (
	"fmt"
	"html/template"
	"io"
	"net/http"

	"github.com/vovakirdan/forge-studio/internal/core"
)

// SandboxPolicy is the Content-Security-Policy applied to raw documents.
// The sandbox directive gives the document an opaque origin, so its scripts
// cannot reach the host's cookies, storage or DOM.
const SandboxPolicy = "sandbox allow-scripts"

// SetSandboxHeaders marks a response carrying a raw document.
func SetSandboxHeaders(h http.Header) {
	h.Set("Content-Security-Policy", SandboxPolicy)
	h.Set("X-Content-Type-Options", "nosniff")
	h.Set("Referrer-Policy", "no-referrer")
	h.Set("Content-Type", "text/html; charset=utf-8")
}

var hostTmpl = template.Must(template.New("host").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { margin: 0; background: #111; color: #eee; font-family: sans-serif; display: flex; flex-direction: column; align-items: center; }
h1 { font-size: 18px; }
iframe { border: 1px solid #4a5568; background: #000; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
{{if .Src}}<iframe sandbox="allow-scripts" src="{{.Src}}" width="{{.Width}}" height="{{.Height}}"></iframe>
{{else}}<iframe sandbox="allow-scripts" srcdoc="{{.SrcDoc}}" width="{{.Width}}" height="{{.Height}}"></iframe>
{{end}}</body>
</html>
`))

type hostData struct {
	Title  string
	Src    string
	SrcDoc string
	Width  int
	Height int
}

// WriteHost writes a host page that loads the document from src inside a
// sandboxed iframe.
func WriteHost(w io.Writer, title, src string) error {
	return writeHost(w, hostData{Title: title, Src: src})
}

// WriteHostInline writes a self-contained host page that embeds doc through
// srcdoc in a sandboxed iframe.
func WriteHostInline(w io.Writer, title, doc string) error {
	return writeHost(w, hostData{Title: title, SrcDoc: doc})
}

func writeHost(w io.Writer, d hostData) error {
	if d.Title == "" {
		d.Title = "Game"
	}
	d.Width, d.Height = core.SurfaceW, core.SurfaceH
	if err := hostTmpl.Execute(w, d); err != nil {
		return fmt.Errorf("document: render host page: %w", err)
	}
	return nil
}
