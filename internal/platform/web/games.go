package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/vovakirdan/forge-studio/internal/engine"
	"github.com/vovakirdan/forge-studio/internal/generate"
	"github.com/vovakirdan/forge-studio/internal/render"
	"github.com/vovakirdan/forge-studio/internal/scene"
	"github.com/vovakirdan/forge-studio/internal/storage"
	"github.com/vovakirdan/forge-studio/internal/studio"
)

const maxGenerateBody = 64 << 10

type generateRequest struct {
	Prompt  string           `json:"prompt"`
	Options generate.Options `json:"options"`
	Format  string           `json:"format,omitempty"`
}

type scoresResponse struct {
	Scores []storage.ScoreEntry `json:"scores"`
	Stats  *storage.GameStats   `json:"stats"`
}

// POST /api/generate
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var body generateRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxGenerateBody))
	if err := dec.Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	format := generate.Format(body.Format)
	switch format {
	case "", generate.FormatScene, generate.FormatDocument:
	default:
		writeError(w, http.StatusBadRequest, "format must be scene or document")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.config.GenerateTimeout)
	defer cancel()

	g, err := s.svc.Generate(ctx, generate.Request{
		Prompt:  body.Prompt,
		Options: body.Options,
		Format:  format,
	})
	switch {
	case err == nil:
		writeJSON(w, http.StatusCreated, g)
	case errors.Is(err, generate.ErrEmptyPrompt):
		writeError(w, http.StatusBadRequest, generate.UserMessage(err))
	case errors.Is(err, context.DeadlineExceeded):
		writeError(w, http.StatusGatewayTimeout, generate.UserMessage(err))
	default:
		var f *generate.Failure
		if errors.As(err, &f) {
			writeError(w, http.StatusBadGateway, f.UserMessage())
			return
		}
		s.logger.Error("generate", "err", err)
		writeError(w, http.StatusInternalServerError, generate.UserMessage(err))
	}
}

// GET /api/schema
func (s *Server) handleSchema(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, scene.Schema())
}

// GET /api/games
func (s *Server) handleListGames(w http.ResponseWriter, r *http.Request) {
	games, err := s.svc.List()
	if err != nil {
		s.storageError(w, err)
		return
	}
	if games == nil {
		games = []storage.Metadata{}
	}
	writeJSON(w, http.StatusOK, games)
}

// GET /api/games/{id}
func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	g, err := s.svc.Get(chi.URLParam(r, "id"))
	if err != nil {
		s.storageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, g)
}

// DELETE /api/games/{id}
func (s *Server) handleDeleteGame(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.Delete(chi.URLParam(r, "id")); err != nil {
		s.storageError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GET /api/games/{id}/scores?limit=n
func (s *Server) handleScores(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := s.svc.Get(id); err != nil {
		s.storageError(w, err)
		return
	}

	limit := 10
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	scores, err := s.svc.Scores(id, limit)
	if err != nil {
		s.storageError(w, err)
		return
	}
	stats, err := s.svc.Store().Stats(id)
	if err != nil {
		s.storageError(w, err)
		return
	}
	if scores == nil {
		scores = []storage.ScoreEntry{}
	}
	writeJSON(w, http.StatusOK, scoresResponse{Scores: scores, Stats: stats})
}

// GET /api/games/{id}/frame.png?mode=click|loop&scale=f
func (s *Server) handleFrame(w http.ResponseWriter, r *http.Request) {
	g, err := s.svc.Get(chi.URLParam(r, "id"))
	if err != nil {
		s.storageError(w, err)
		return
	}
	sc, err := studio.SceneOf(g)
	if err != nil {
		writeError(w, http.StatusConflict, "document games have no scene to render")
		return
	}
	mode, ok := s.modeParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "mode must be click or loop")
		return
	}
	scale := 1.0
	if v := r.URL.Query().Get("scale"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f <= 0 || f > 4 {
			writeError(w, http.StatusBadRequest, "scale must be in (0, 4]")
			return
		}
		scale = f
	}

	game := s.svc.NewGame(sc, mode)
	raster := render.NewRaster(scale)
	render.Frame(game.View(), game.State(), raster)

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	if err := raster.EncodePNG(w); err != nil {
		s.logger.Warn("frame", "id", g.ID, "err", err)
	}
}

// modeParam reads ?mode=, falling back to the server default.
func (s *Server) modeParam(r *http.Request) (engine.Mode, bool) {
	switch m := engine.Mode(r.URL.Query().Get("mode")); m {
	case "":
		return s.config.Mode, true
	case engine.ModeClick, engine.ModeLoop:
		return m, true
	default:
		return "", false
	}
}

func (s *Server) storageError(w http.ResponseWriter, err error) {
	if errors.Is(err, storage.ErrNotFound) {
		writeError(w, http.StatusNotFound, "game not found")
		return
	}
	s.logger.Error("storage", "err", err)
	writeError(w, http.StatusInternalServerError, "storage failure")
}
