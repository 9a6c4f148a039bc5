package server

import (
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/arnodenuijl/DistanceComparer-sub001/internal/distance"
)

// wsRequest is a frame from a panel. During a drag the frontend debounces to
// one frame per 16ms and asks for the canonical display string of the
// current measurement.
type wsRequest struct {
	Type   string  `json:"type"`
	Meters float64 `json:"meters"`
}

type wsResponse struct {
	Type    string  `json:"type"`
	Meters  float64 `json:"meters"`
	Display string  `json:"display,omitempty"`
	Error   string  `json:"error,omitempty"`
}

func (s *Server) handleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.logger.Error("websocket upgrade failed", slog.Any("error", err))
		return
	}
	defer conn.Close()

	s.counters.RecordConnection()

	for {
		var req wsRequest
		if err := conn.ReadJSON(&req); err != nil {
			// A frame that fails to decode is answered with an error
			// frame, only a dead connection ends the loop.
			var syntaxErr *json.SyntaxError
			var typeErr *json.UnmarshalTypeError
			if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
				if err := conn.WriteJSON(wsResponse{Type: "error", Error: "malformed frame"}); err != nil {
					return
				}
				continue
			}
			s.logger.Debug("websocket closed", slog.Any("error", err))
			return
		}

		switch req.Type {
		case "distance":
			resp := wsResponse{
				Type:    "distance",
				Meters:  req.Meters,
				Display: s.formatCached(req.Meters),
			}
			if err := conn.WriteJSON(resp); err != nil {
				s.logger.Warn("websocket write failed", slog.Any("error", err))
				return
			}
		case "":
			if err := conn.WriteJSON(wsResponse{Type: "error", Error: "missing type"}); err != nil {
				return
			}
		default:
			// Unknown types are ignored so old frontends keep working.
		}
	}
}

// formatCached formats meters through the TTL cache and records hit/miss.
func (s *Server) formatCached(meters float64) string {
	if display, ok := s.cache.Get(meters); ok {
		s.counters.RecordFormat(true)
		return display
	}
	display := distance.Format(meters)
	s.cache.Put(meters, display)
	s.counters.RecordFormat(false)
	return display
}
