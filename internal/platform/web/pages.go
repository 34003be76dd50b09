package web

import (
	"embed"
	"html/template"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/vovakirdan/forge-studio/internal/core"
	"github.com/vovakirdan/forge-studio/internal/document"
	"github.com/vovakirdan/forge-studio/internal/storage"
	"github.com/vovakirdan/forge-studio/internal/studio"
)

//go:embed templates/*.html
var templateFS embed.FS

var pages = template.Must(template.ParseFS(templateFS, "templates/*.html"))

type playPage struct {
	Title  string
	Socket string
	Width  int
	Height int
}

// GET /games/{id}/document
//
// The raw document is only ever served with the sandbox policy. Scene games
// are served as their standalone click-driven export.
func (s *Server) handleDocument(w http.ResponseWriter, r *http.Request) {
	g, err := s.svc.Get(chi.URLParam(r, "id"))
	if err != nil {
		s.storageError(w, err)
		return
	}

	doc := g.Document
	if g.Format == storage.FormatScene {
		sc, err := studio.SceneOf(g)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "stored scene is missing")
			return
		}
		doc, err = document.Standalone(sc)
		if err != nil {
			s.logger.Error("standalone export", "id", g.ID, "err", err)
			writeError(w, http.StatusInternalServerError, "could not export scene")
			return
		}
	}

	document.SetSandboxHeaders(w.Header())
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(doc))
}

// GET /play/{id}
//
// Documents get a host page embedding them in a sandboxed iframe and count a
// play here. Scenes get the live player; their play is counted when the
// socket opens the session.
func (s *Server) handlePlayPage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	g, err := s.svc.Get(id)
	if err != nil {
		s.storageError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")

	if g.Format == storage.FormatDocument {
		if _, err := s.svc.Open(id); err != nil {
			s.logger.Warn("play not counted", "id", id, "err", err)
		}
		if err := document.WriteHost(w, g.Title, "/games/"+url.PathEscape(id)+"/document"); err != nil {
			s.logger.Error("host page", "id", id, "err", err)
		}
		return
	}

	mode, ok := s.modeParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "mode must be click or loop")
		return
	}
	title := g.Title
	if title == "" {
		title = "Game"
	}
	page := playPage{
		Title:  title,
		Socket: "/ws/play/" + url.PathEscape(id) + "?mode=" + url.QueryEscape(string(mode)),
		Width:  core.SurfaceW,
		Height: core.SurfaceH,
	}
	if err := pages.ExecuteTemplate(w, "play.html", page); err != nil {
		s.logger.Error("play page", "id", id, "err", err)
	}
}
