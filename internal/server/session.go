package server

import (
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/lox/blackjack/internal/game"
	"github.com/lox/blackjack/internal/protocol"
	"github.com/rs/zerolog"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 4096
)

// ErrSessionClosed is returned when sending to a closed session
var ErrSessionClosed = errors.New("session closed")

// Session is one connected player and the engine it drives. Commands are
// handled on the read goroutine, so the engine is never shared.
type Session struct {
	id     string
	server *Server
	conn   *websocket.Conn
	send   chan []byte
	done   chan struct{}
	logger zerolog.Logger

	engine *game.Engine

	mu        sync.Mutex
	active    time.Time
	closeOnce sync.Once
}

func newSession(s *Server, conn *websocket.Conn) *Session {
	id := uuid.NewString()[:8]
	logger := s.logger.With().Str("session", id).Logger()
	sess := &Session{
		id:     id,
		server: s,
		conn:   conn,
		send:   make(chan []byte, 64),
		done:   make(chan struct{}),
		logger: logger,
		active: s.clock.Now(),
	}
	sess.resetEngine()
	return sess
}

// ID returns the short session identifier sent in every snapshot
func (s *Session) ID() string {
	return s.id
}

func (s *Session) start() {
	go s.writePump()
	s.reply(s.snapshot())
	go s.readPump()
}

// Close unregisters the session. The write goroutine sends a close frame and
// closes the connection, which ends the read goroutine.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		close(s.done)
		s.server.remove(s)
	})
}

func (s *Session) resetEngine() {
	engine, seed := s.server.newEngine(s.logger)
	s.engine = engine
	s.logger.Debug().Int64("seed", seed).Msg("New engine")
}

func (s *Session) touch() {
	s.mu.Lock()
	s.active = s.server.clock.Now()
	s.mu.Unlock()
}

func (s *Session) lastActive() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

func (s *Session) readPump() {
	defer s.Close()

	s.conn.SetReadLimit(maxMessageSize)
	_ = s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		_ = s.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Debug().Err(err).Msg("Read error")
			}
			return
		}
		s.touch()

		cmd, err := s.server.validator.ParseCommand(data)
		if err != nil {
			s.logger.Debug().Err(err).Msg("Rejected command")
			s.reply(protocol.NewError(protocol.CodeBadRequest, err.Error()))
			continue
		}
		s.reply(s.handle(cmd))
	}
}

func (s *Session) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = s.conn.Close()
	}()

	for {
		select {
		case data := <-s.send:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				s.logger.Debug().Err(err).Msg("Write failed")
				return
			}

		case <-ticker.C:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-s.done:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = s.conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		}
	}
}

func (s *Session) reply(msg any) {
	data, err := json.Marshal(msg)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to encode reply")
		return
	}

	select {
	case s.send <- data:
	case <-s.done:
	default:
		s.logger.Warn().Msg("Send buffer full, closing session")
		s.Close()
	}
}

func (s *Session) snapshot() *protocol.Snapshot {
	return protocol.NewSnapshot(s.id, s.engine.Observe(), s.engine.Player())
}
