package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/forge-studio/internal/document"
	"github.com/vovakirdan/forge-studio/internal/storage"
)

var flagExportOut string

var exportCmd = &cobra.Command{
	Use:   "export <id>",
	Short: "Export a game as a self-contained HTML file",
	Long: `Write a game to a single HTML file that opens in any browser.

Scene games are exported with a small click-driven player. Document games
are wrapped in a host page that runs them inside a sandboxed iframe.

Examples:
  studio export 3f2c...
  studio export 3f2c... -o coins.html`,
	Args: cobra.ExactArgs(1),
	Run:  runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&flagExportOut, "output", "o", "", "Output file (default: <id>.html)")
}

func runExport(_ *cobra.Command, args []string) {
	a := openApp()
	defer a.close()

	g, err := a.svc.Get(args[0])
	if err != nil {
		a.close()
		if errors.Is(err, storage.ErrNotFound) {
			exitf("unknown game %q", args[0])
		}
		exitf("%v", err)
	}

	var buf bytes.Buffer
	if g.Scene != nil {
		doc, err := document.Standalone(*g.Scene)
		if err != nil {
			a.close()
			exitf("%v", err)
		}
		buf.WriteString(doc)
	} else if err := document.WriteHostInline(&buf, g.Title, g.Document); err != nil {
		a.close()
		exitf("%v", err)
	}

	out := flagExportOut
	if out == "" {
		out = g.ID + ".html"
	}
	if err := os.WriteFile(out, buf.Bytes(), 0o644); err != nil {
		a.close()
		exitf("%v", err)
	}
	fmt.Printf("Wrote %s\n", out)
}
