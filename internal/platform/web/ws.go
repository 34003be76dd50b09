package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/forge-studio/internal/core"
	"github.com/vovakirdan/forge-studio/internal/engine"
	"github.com/vovakirdan/forge-studio/internal/render"
	"github.com/vovakirdan/forge-studio/internal/studio"
)

const (
	writeWait      = 5 * time.Second
	maxMessageSize = 4096
)

var keyActions = map[string]core.Action{
	"left":  core.ActionLeft,
	"right": core.ActionRight,
	"jump":  core.ActionJump,
	"down":  core.ActionDown,
}

// clientMessage is what the browser sends.
type clientMessage struct {
	Type string   `json:"type"`
	X    float64  `json:"x"`
	Y    float64  `json:"y"`
	Keys []string `json:"keys"`
}

func (m clientMessage) input() (studio.Input, bool) {
	switch studio.InputKind(m.Type) {
	case studio.InputPointer:
		return studio.Input{Kind: studio.InputPointer, Point: core.Pt(m.X, m.Y)}, true
	case studio.InputKeys:
		frame := core.NewInputFrame()
		for _, k := range m.Keys {
			if a, ok := keyActions[k]; ok {
				frame.Set(a)
			}
		}
		return studio.Input{Kind: studio.InputKeys, Keys: frame}, true
	case studio.InputPause, studio.InputResume, studio.InputRestart:
		return studio.Input{Kind: studio.InputKind(m.Type)}, true
	}
	return studio.Input{}, false
}

type helloMessage struct {
	Type    string      `json:"type"`
	Session string      `json:"session"`
	Game    string      `json:"game"`
	Mode    engine.Mode `json:"mode"`
}

type stateMessage struct {
	Type   string       `json:"type"`
	State  engine.State `json:"state"`
	Paused bool         `json:"paused"`
	Tick   uint64       `json:"tick"`
}

// GET /ws/play/{id}?mode=click|loop
//
// Each connection owns one session. Every snapshot is sent as a JSON state
// message followed by a binary PNG frame.
func (s *Server) handlePlaySocket(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	mode, ok := s.modeParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "mode must be click or loop")
		return
	}

	sess, err := s.svc.Play(id, mode)
	if err != nil {
		if errors.Is(err, studio.ErrNotScene) {
			writeError(w, http.StatusConflict, "document games play in a sandboxed page")
			return
		}
		s.storageError(w, err)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "game", id, "err", err)
		return
	}
	defer conn.Close()

	logger := s.logger.With("session", sess.ID(), "game", id)
	logger.Info("player connected", "mode", mode)

	s.sessions.Register(sess)
	defer s.sessions.Unregister(sess.ID())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		if err := sess.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Warn("session ended", "err", err)
		}
	}()
	go func() {
		defer wg.Done()
		defer cancel()
		s.writeLoop(ctx, conn, sess, mode, logger)
	}()

	s.readLoop(ctx, conn, sess, logger)
	cancel()
	sess.Stop()
	wg.Wait()
	logger.Info("player disconnected")
}

func (s *Server) readLoop(ctx context.Context, conn *websocket.Conn, sess *studio.Session, logger *log.Logger) {
	conn.SetReadLimit(maxMessageSize)
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Debug("read failed", "err", err)
			}
			return
		}

		var msg clientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			logger.Warn("malformed message", "err", err)
			continue
		}
		in, ok := msg.input()
		if !ok {
			logger.Debug("unknown message", "type", msg.Type)
			continue
		}
		if err := sess.Send(ctx, in); err != nil {
			return
		}
	}
}

// writeLoop is the only writer on conn.
func (s *Server) writeLoop(ctx context.Context, conn *websocket.Conn, sess *studio.Session, mode engine.Mode, logger *log.Logger) {
	defer conn.Close()

	hello := helloMessage{Type: "hello", Session: sess.ID(), Game: sess.GameID(), Mode: mode}
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := conn.WriteJSON(hello); err != nil {
		logger.Debug("write failed", "err", err)
		return
	}

	raster := render.NewRaster(s.config.FrameScale)
	for {
		select {
		case <-ctx.Done():
			closeConn(conn, websocket.CloseNormalClosure, "")
			return
		case <-sess.Done():
			closeConn(conn, websocket.CloseGoingAway, "session ended")
			return
		case snap := <-sess.Snapshots():
			if err := writeSnapshot(conn, raster, snap); err != nil {
				logger.Debug("write failed", "err", err)
				return
			}
		}
	}
}

func writeSnapshot(conn *websocket.Conn, raster *render.Raster, snap studio.Snapshot) error {
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	msg := stateMessage{Type: "state", State: snap.State, Paused: snap.Paused, Tick: snap.Tick}
	if err := conn.WriteJSON(msg); err != nil {
		return err
	}

	render.Frame(snap.Scene, snap.State, raster)
	frame, err := raster.PNG()
	if err != nil {
		return err
	}
	return conn.WriteMessage(websocket.BinaryMessage, frame)
}

func closeConn(conn *websocket.Conn, code int, text string) {
	_ = conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(code, text),
		time.Now().Add(writeWait))
}
