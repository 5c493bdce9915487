package server

import (
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"motorbench/pkg/analysis"
	"motorbench/pkg/config"
	"motorbench/pkg/grid"
	"motorbench/pkg/motor"
	"motorbench/pkg/params"
)

func buildGrid(p params.Parameters, a config.AnalysisSettings) (current, shaftRPM *grid.Grid, err error) {
	m, err := motor.New(p)
	if err != nil {
		return nil, nil, err
	}
	current, shaftRPM = analysis.OperatingGrid(m, a.GridPoints, a.RPMSafetyMargin)
	return current, shaftRPM, nil
}

// Msg is the wire envelope in both directions.
type Msg struct {
	Type    string          `json:"type"`
	Content json.RawMessage `json:"content,omitempty"`
	Error   string          `json:"error,omitempty"`
}

type analysisReply struct {
	Params  params.Parameters `json:"params"`
	Results *analysis.Result  `json:"results"`
	Summary *analysis.Summary `json:"summary"`
	Elapsed string            `json:"elapsed"`
}

// Hub serializes request handling for one connection.
type Hub struct {
	conn     *websocket.Conn
	settings *config.Settings
	requests chan Msg
	done     chan struct{}
}

func newHub(conn *websocket.Conn, settings *config.Settings) *Hub {
	return &Hub{
		conn:     conn,
		settings: settings,
		requests: make(chan Msg, 10),
		done:     make(chan struct{}),
	}
}

func (h *Hub) close() { close(h.done) }

func (h *Hub) handleResponses() {
	for {
		select {
		case msg := <-h.requests:
			h.dispatch(msg)
		case <-h.done:
			return
		}
	}
}

func (h *Hub) dispatch(msg Msg) {
	switch msg.Type {
	case "analyze":
		h.analyze(msg)
	case "defaults":
		h.reply("defaults", params.Default())
	default:
		h.replyError(msg.Type, "unknown request type")
	}
}

func (h *Hub) analyze(msg Msg) {
	start := time.Now()

	p, err := params.Parse(msg.Content)
	if err != nil {
		h.replyError("analyze", err.Error())
		return
	}

	settings := analysis.Settings{
		MaxIterations: h.settings.Analysis.MaxIterations,
		Relaxation:    h.settings.Analysis.RelaxationFactor,
		Threshold:     h.settings.Analysis.ConvergenceThreshold,
	}
	current, shaftRPM, err := buildGrid(p, h.settings.Analysis)
	if err != nil {
		h.replyError("analyze", err.Error())
		return
	}
	res, err := analysis.RunParallel(p, current, shaftRPM, settings, 0)
	if err != nil {
		h.replyError("analyze", err.Error())
		return
	}
	summary := analysis.Summarize(res, p.BusVoltage, p.ContinuousCurrent)

	log.WithFields(log.Fields{
		"points": current.Rows * current.Cols,
		"took":   time.Since(start),
	}).Info("analysis served")

	h.reply("analyze", analysisReply{
		Params:  p,
		Results: res,
		Summary: summary,
		Elapsed: time.Since(start).String(),
	})
}

func (h *Hub) reply(msgType string, content any) {
	data, err := json.Marshal(content)
	if err != nil {
		h.replyError(msgType, err.Error())
		return
	}
	if err := h.conn.WriteJSON(&Msg{Type: msgType, Content: data}); err != nil {
		log.WithError(err).Warn("websocket write failed")
	}
}

func (h *Hub) replyError(msgType, detail string) {
	if err := h.conn.WriteJSON(&Msg{Type: msgType, Error: detail}); err != nil {
		log.WithError(err).Warn("websocket write failed")
	}
}
