// Package server exposes the grid analysis over a websocket endpoint: the
// client sends a parameter preset, the server runs the parallel solve and
// pushes results plus summary back as JSON.
package server

import (
	"net/http"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"motorbench/pkg/config"
)

type Server struct {
	addr     string
	settings *config.Settings
	upgrader websocket.Upgrader
}

func New(settings *config.Settings) *Server {
	return &Server{
		addr:     settings.Server.Addr,
		settings: settings,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// serveWs handles websocket requests from one peer.
func (s *Server) serveWs(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.WithError(err).Error("websocket upgrade failed")
		return
	}
	defer conn.Close()

	hub := newHub(conn, s.settings)
	go hub.handleResponses()

	for {
		var msg Msg
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.WithError(err).Warn("websocket read failed")
			}
			hub.close()
			return
		}
		hub.requests <- msg
	}
}

func (s *Server) Serve() error {
	http.HandleFunc("/ws", s.serveWs)
	log.WithField("addr", s.addr).Info("analysis service listening")
	return http.ListenAndServe(s.addr, nil)
}
