// Package server implements the remote keying mode: text frames received on
// a websocket are fed to the player as its input byte stream and played on
// the local audio sink.
package server

import (
	"io"
	"net/http"
	"sync/atomic"

	"github.com/gorilla/websocket"

	"github.com/morsekit/cwplayer/internal/audio"
	"github.com/morsekit/cwplayer/internal/observability"
	"github.com/morsekit/cwplayer/internal/player"
	"github.com/morsekit/cwplayer/internal/sink"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// The service is meant for a trusted LAN; no origin policy.
		return true
	},
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// SinkFactory opens the audio sink for one session.
type SinkFactory func() (sink.Pull, error)

// Server owns the keying endpoint. One session plays at a time; the audio
// sink is exclusive.
type Server struct {
	params   audio.Params
	openSink SinkFactory
	busy     atomic.Bool
}

// New returns a keying server playing with the given stream parameters.
func New(params audio.Params, openSink SinkFactory) *Server {
	return &Server{params: params, openSink: openSink}
}

// Busy reports whether a session currently holds the sink.
func (s *Server) Busy() bool {
	return s.busy.Load()
}

// HandleKey upgrades the connection and plays every received text frame as
// Morse code. The session ends when the client closes the connection; queued
// audio finishes playing before the sink is released.
func (s *Server) HandleKey(w http.ResponseWriter, r *http.Request) {
	if !s.busy.CompareAndSwap(false, true) {
		http.Error(w, "another keying session is playing", http.StatusConflict)
		return
	}
	defer s.busy.Store(false)

	sessionID := observability.NewSessionID()
	logger := observability.WithSession(sessionID)

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Error().Err(err).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()

	snk, err := s.openSink()
	if err != nil {
		logger.Error().Err(err).Msg("failed to open audio sink")
		return
	}
	defer snk.Close()

	pl, err := player.New(s.params, logger)
	if err != nil {
		logger.Error().Err(err).Msg("failed to build player")
		return
	}

	observability.RecordSessionStart()
	defer observability.RecordSessionEnd()
	logger.Info().Str("remote", r.RemoteAddr).Msg("keying session started")

	// Frames stream into the player through a pipe; closing the write side
	// is the end-of-input signal that drains the session.
	pr, pw := io.Pipe()
	defer pw.Close()
	done := make(chan error, 1)
	go func() {
		done <- pl.PlayPull(pr, snk)
	}()

	for {
		msgType, data, err := conn.ReadMessage()
		if err != nil {
			pw.Close()
			break
		}
		if msgType != websocket.TextMessage && msgType != websocket.BinaryMessage {
			continue
		}
		// Blocks while the playback queue is above its backpressure
		// threshold, which in turn paces the websocket reads.
		if _, err := pw.Write(data); err != nil {
			break
		}
	}

	if err := <-done; err != nil {
		logger.Error().Err(err).Msg("keying session failed")
		return
	}
	logger.Info().Msg("keying session finished")
}
