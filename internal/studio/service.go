// Package studio ties generation, storage and the engine together: it turns
// prompts into stored games, opens them for play and records final scores.
package studio

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/forge-studio/internal/document"
	"github.com/vovakirdan/forge-studio/internal/engine"
	"github.com/vovakirdan/forge-studio/internal/generate"
	"github.com/vovakirdan/forge-studio/internal/scene"
	"github.com/vovakirdan/forge-studio/internal/storage"
)

// ErrNotScene is returned when a document game is opened for in-process play.
var ErrNotScene = errors.New("studio: game is a document, not a scene")

// Service is the studio's application layer. It is safe for concurrent use
// as long as the generator is.
type Service struct {
	store    *storage.Store
	gen      generate.Generator
	logger   *log.Logger
	format   generate.Format
	mode     engine.Mode
	options  engine.Options
	tickRate int
}

// Config configures a Service.
type Config struct {
	Format   generate.Format
	Mode     engine.Mode
	Options  engine.Options
	TickRate int
}

// NewService creates a service. A nil logger discards output.
func NewService(store *storage.Store, gen generate.Generator, logger *log.Logger, cfg Config) *Service {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if cfg.Format == "" {
		cfg.Format = generate.FormatScene
	}
	if cfg.Mode == "" {
		cfg.Mode = engine.ModeClick
	}
	if cfg.Options.Lives <= 0 {
		cfg.Options = engine.DefaultOptions()
	}
	return &Service{
		store:    store,
		gen:      gen,
		logger:   logger.WithPrefix("studio"),
		format:   cfg.Format,
		mode:     cfg.Mode,
		options:  cfg.Options,
		tickRate: cfg.TickRate,
	}
}

// Store returns the underlying store.
func (s *Service) Store() *storage.Store { return s.store }

// Generator returns the configured generator.
func (s *Service) Generator() generate.Generator { return s.gen }

// Generate asks the generator for a game and stores it. Generation failures
// are returned as-is; use generate.UserMessage for display.
func (s *Service) Generate(ctx context.Context, req generate.Request) (storage.Game, error) {
	if req.Format == "" {
		req.Format = s.format
	}
	if err := req.Validate(); err != nil {
		return storage.Game{}, err
	}

	s.logger.Info("generating", "provider", s.gen.Name(), "format", req.Format, "prompt", req.Prompt)
	res, err := s.gen.Generate(ctx, req)
	if err != nil {
		s.logger.Warn("generation failed", "provider", s.gen.Name(), "err", err)
		return storage.Game{}, err
	}

	g := storage.Game{
		Metadata: storage.Metadata{
			Title:  res.Title,
			Prompt: req.Prompt,
			Kind:   string(res.Kind),
			Theme:  req.Options.Theme,
		},
	}
	if res.Scene != nil {
		sc := *res.Scene
		if sc.Title == "" {
			sc.Title = res.Title
		}
		g.Scene = &sc
		if g.Theme == "" {
			g.Theme = sc.Theme
		}
	} else {
		report, err := document.Inspect(res.Document)
		if err != nil {
			return storage.Game{}, &generate.Failure{Message: "generated document could not be read", Err: err}
		}
		if !report.Plausible {
			return storage.Game{}, &generate.Failure{Message: "generated output does not look like a game"}
		}
		for _, w := range report.Warnings {
			s.logger.Warn("document check", "warning", w)
		}
		if g.Title == "" {
			g.Title = report.Title
		}
		g.Document = res.Document
	}

	id, err := s.store.Save(g)
	if err != nil {
		return storage.Game{}, fmt.Errorf("studio: save generated game: %w", err)
	}
	s.logger.Info("game saved", "id", id, "title", g.Title, "format", g.Format)
	return s.store.Get(id)
}

// Open loads a game for play, counting one play.
func (s *Service) Open(id string) (storage.Game, error) {
	return s.store.Load(id)
}

// Get loads a game without counting a play.
func (s *Service) Get(id string) (storage.Game, error) {
	return s.store.Get(id)
}

// List returns stored games, most recently updated first.
func (s *Service) List() ([]storage.Metadata, error) {
	return s.store.List()
}

// Delete removes a game and its scores. Unknown ids are a no-op.
func (s *Service) Delete(id string) error {
	if err := s.store.Delete(id); err != nil {
		return err
	}
	s.logger.Info("game deleted", "id", id)
	return nil
}

// Scores returns the best scores of a game.
func (s *Service) Scores(id string, limit int) ([]storage.ScoreEntry, error) {
	return s.store.TopScores(id, limit)
}

// Finish records the final score of a round. Storage failures are logged and
// returned as a warning; the session is never affected.
func (s *Service) Finish(gameID string, st engine.State) error {
	if _, err := s.store.SaveScore(gameID, st.Score, string(st.Status)); err != nil {
		s.logger.Warn("score not saved", "game", gameID, "err", err)
		return err
	}
	s.logger.Info("round finished", "game", gameID, "status", st.Status, "score", st.Score)
	return nil
}

// SceneOf returns the playable scene of a stored game.
func SceneOf(g storage.Game) (scene.Scene, error) {
	if g.Scene == nil {
		return scene.Scene{}, ErrNotScene
	}
	return *g.Scene, nil
}

// NewGame builds an engine session for a scene in the given mode.
// An empty mode uses the service default.
func (s *Service) NewGame(sc scene.Scene, mode engine.Mode) engine.Game {
	if mode == "" {
		mode = s.mode
	}
	return engine.New(sc, mode, s.options)
}

// Play opens a stored scene game and wraps it in a session whose finished
// rounds are scored. The caller runs the session.
func (s *Service) Play(id string, mode engine.Mode) (*Session, error) {
	g, err := s.Open(id)
	if err != nil {
		return nil, err
	}
	sc, err := SceneOf(g)
	if err != nil {
		return nil, err
	}
	sess := NewSession(uuid.NewString(), g.ID, s.NewGame(sc, mode), s.tickRate)
	sess.OnFinish(func(st engine.State) {
		_ = s.Finish(g.ID, st)
	})
	return sess, nil
}

