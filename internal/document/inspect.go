// Package document handles opaque HTML game documents: static inspection of
// their scripts and the sandboxed pages that embed them. Documents are never
// executed by the host.
package document

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/dop251/goja"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var codeLikeRe = regexp.MustCompile(`(function|class|update|create)`)

// Plausible reports whether code contains typical game code structure.
func Plausible(code string) bool {
	return code != "" && codeLikeRe.MatchString(code)
}

// Script is one <script> element.
type Script struct {
	Src    string // external source, empty for inline scripts
	Type   string
	Source string
}

// Inline reports whether the script body is part of the document.
func (s Script) Inline() bool {
	return s.Src == ""
}

// Report is the result of inspecting a document.
type Report struct {
	Title     string
	Scripts   int
	HasCanvas bool
	Plausible bool
	Warnings  []string
}

// OK reports whether nothing suspicious was found.
func (r Report) OK() bool {
	return len(r.Warnings) == 0
}

// Inspect parses doc and compiles (without running) every inline script.
func Inspect(doc string) (Report, error) {
	root, err := html.Parse(strings.NewReader(doc))
	if err != nil {
		return Report{}, fmt.Errorf("document: parse html: %w", err)
	}

	var rep Report
	var scripts []Script
	walk(root, func(n *html.Node) {
		switch n.DataAtom {
		case atom.Title:
			if rep.Title == "" {
				rep.Title = strings.TrimSpace(text(n))
			}
		case atom.Canvas:
			rep.HasCanvas = true
		case atom.Script:
			scripts = append(scripts, Script{
				Src:    attr(n, "src"),
				Type:   strings.ToLower(attr(n, "type")),
				Source: text(n),
			})
		}
	})

	rep.Scripts = len(scripts)
	var code strings.Builder
	for i, s := range scripts {
		if !s.Inline() {
			rep.Warnings = append(rep.Warnings, fmt.Sprintf("script %d loads external source %s", i+1, s.Src))
			continue
		}
		if !isJavaScript(s.Type) {
			continue
		}
		code.WriteString(s.Source)
		if _, err := goja.Compile(fmt.Sprintf("script-%d.js", i+1), s.Source, false); err != nil {
			rep.Warnings = append(rep.Warnings, fmt.Sprintf("script %d does not compile: %v", i+1, err))
		}
	}

	rep.Plausible = Plausible(code.String())
	if rep.Scripts == 0 {
		rep.Warnings = append(rep.Warnings, "document has no scripts")
	} else if !rep.Plausible {
		rep.Warnings = append(rep.Warnings, "scripts do not look like game code")
	}
	if !rep.HasCanvas {
		rep.Warnings = append(rep.Warnings, "document has no canvas")
	}
	return rep, nil
}

func isJavaScript(typ string) bool {
	switch typ {
	case "", "text/javascript", "application/javascript":
		return true
	default:
		return false
	}
}

func walk(n *html.Node, fn func(*html.Node)) {
	if n.Type == html.ElementNode {
		fn(n)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, fn)
	}
}

func text(n *html.Node) string {
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			sb.WriteString(c.Data)
		}
	}
	return sb.String()
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
