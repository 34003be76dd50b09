package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vovakirdan/forge-studio/internal/scene"
)

// Format values stored in games.format.
const (
	FormatScene    = "scene"
	FormatDocument = "document"
)

// Metadata describes a stored game without its payload.
type Metadata struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Prompt    string    `json:"prompt"`
	Kind      string    `json:"kind"`
	Theme     string    `json:"theme"`
	Format    string    `json:"format"`
	Plays     int       `json:"plays"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Game is a stored game: metadata plus either a scene or a document.
type Game struct {
	Metadata
	Scene    *scene.Scene `json:"scene,omitempty"`
	Document string       `json:"document,omitempty"`
}

const gameColumns = `id, title, prompt, kind, theme, format, plays, created_at, updated_at`

// Save inserts a game and returns its id. A missing id is generated;
// timestamps and the play count are owned by the store.
func (s *Store) Save(g Game) (string, error) {
	if g.ID == "" {
		g.ID = uuid.NewString()
	}

	var sceneJSON sql.NullString
	switch {
	case g.Scene != nil:
		data, err := json.Marshal(g.Scene)
		if err != nil {
			return "", fmt.Errorf("storage: cannot encode scene: %w", err)
		}
		sceneJSON = sql.NullString{String: string(data), Valid: true}
		g.Format = FormatScene
		if g.Kind == "" {
			g.Kind = string(g.Scene.Kind)
		}
		if g.Theme == "" {
			g.Theme = g.Scene.Theme
		}
	case g.Document != "":
		g.Format = FormatDocument
	default:
		return "", fmt.Errorf("storage: game has neither scene nor document")
	}

	now := s.now().UnixNano()
	_, err := s.db.Exec(
		`INSERT INTO games (id, title, prompt, kind, theme, format, scene_json, document, plays, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, 0, ?, ?)`,
		g.ID, g.Title, g.Prompt, g.Kind, g.Theme, g.Format, sceneJSON, nullString(g.Document), now, now,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save game: %w", err)
	}
	return g.ID, nil
}

// Load returns a game and counts it as played: plays goes up by exactly one
// and updated_at is touched. The returned record reflects the increment.
func (s *Store) Load(id string) (Game, error) {
	if err := s.IncrementPlays(id); err != nil {
		return Game{}, err
	}
	return s.Get(id)
}

// Get returns a game without touching its play count.
func (s *Store) Get(id string) (Game, error) {
	var (
		g         Game
		sceneJSON sql.NullString
		doc       sql.NullString
		created   int64
		updated   int64
	)
	err := s.db.QueryRow(
		`SELECT `+gameColumns+`, scene_json, document FROM games WHERE id = ?`, id,
	).Scan(&g.ID, &g.Title, &g.Prompt, &g.Kind, &g.Theme, &g.Format, &g.Plays, &created, &updated, &sceneJSON, &doc)
	if errors.Is(err, sql.ErrNoRows) {
		return Game{}, ErrNotFound
	}
	if err != nil {
		return Game{}, fmt.Errorf("storage: cannot load game: %w", err)
	}
	g.CreatedAt = time.Unix(0, created)
	g.UpdatedAt = time.Unix(0, updated)

	if sceneJSON.Valid {
		sc, err := scene.Parse([]byte(sceneJSON.String))
		if err != nil {
			return Game{}, fmt.Errorf("storage: cannot decode scene %s: %w", id, err)
		}
		g.Scene = &sc
	}
	g.Document = doc.String
	return g, nil
}

// List returns all games, most recently updated first.
func (s *Store) List() ([]Metadata, error) {
	rows, err := s.db.Query(`SELECT ` + gameColumns + ` FROM games ORDER BY updated_at DESC, rowid DESC`)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query games: %w", err)
	}
	defer rows.Close()

	var out []Metadata
	for rows.Next() {
		var m Metadata
		var created, updated int64
		if err := rows.Scan(&m.ID, &m.Title, &m.Prompt, &m.Kind, &m.Theme, &m.Format, &m.Plays, &created, &updated); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		m.CreatedAt = time.Unix(0, created)
		m.UpdatedAt = time.Unix(0, updated)
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return out, nil
}

// Count returns the number of stored games.
func (s *Store) Count() (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM games`).Scan(&n); err != nil {
		return 0, fmt.Errorf("storage: cannot count games: %w", err)
	}
	return n, nil
}

// Delete removes a game and its scores. Unknown ids are a no-op.
func (s *Store) Delete(id string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin delete: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM games WHERE id = ?`, id); err != nil {
		return fmt.Errorf("storage: cannot delete game: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM scores WHERE game_id = ?`, id); err != nil {
		return fmt.Errorf("storage: cannot delete scores: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit delete: %w", err)
	}
	return nil
}

// IncrementPlays adds one play and touches updated_at.
func (s *Store) IncrementPlays(id string) error {
	res, err := s.db.Exec(
		`UPDATE games SET plays = plays + 1, updated_at = ? WHERE id = ?`,
		s.now().UnixNano(), id,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot increment plays: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("storage: cannot increment plays: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
