package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"
)

const (
	writeWait  = 5 * time.Second
	pongWait   = 30 * time.Second
	pingPeriod = pongWait * 9 / 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 64 * 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type sceneResponse struct {
	Summary any                `json:"summary"`
	Metrics map[string]float64 `json:"metrics"`
	Clients int                `json:"clients"`
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html")
	fmt.Fprintf(w, `<!DOCTYPE html>
<html><head><title>threebody · %s</title></head>
<body style="margin:0;background:#111;color:#eee;font-family:system-ui;display:flex;flex-direction:column;align-items:center;justify-content:center;height:100vh">
<img id="frame" src="/frame.png" width="%d" height="%d" alt="frame">
<p><a style="color:#888" href="/api/scene">scene</a> · <a style="color:#888" href="/metrics">metrics</a></p>
<script>
const img = document.getElementById("frame");
const ws = new WebSocket((location.protocol === "https:" ? "wss://" : "ws://") + location.host + "/ws");
ws.binaryType = "blob";
ws.onmessage = (e) => {
  const url = URL.createObjectURL(e.data);
  img.onload = () => URL.revokeObjectURL(url);
  img.src = url;
};
</script>
</body></html>`, s.scene.Config.Seed, s.scene.Config.Size, s.scene.Config.Size)
}

func (s *Server) handleScene(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	resp := sceneResponse{Summary: s.summary, Metrics: s.values, Clients: len(s.clients)}
	data, err := json.Marshal(resp)
	s.mu.RUnlock()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	n, _ := w.Write(data)
	s.metrics.TrackBytes("scene", n)
}

func (s *Server) handleFrame(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	data := s.latest
	s.mu.RUnlock()
	if data == nil {
		http.Error(w, "no frame rendered yet", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	n, _ := w.Write(data)
	s.metrics.TrackBytes("frame", n)
}

// clientLimit reads the optional fps query parameter, capped at the render
// rate.
func (s *Server) clientLimit(r *http.Request) *rate.Limiter {
	fps := float64(s.fps)
	if v := r.URL.Query().Get("fps"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			fps = min(f, fps)
		}
	}
	return rate.NewLimiter(rate.Limit(fps), 1)
}

// handleStream pushes every rendered frame to the client as a binary PNG
// message, dropping frames beyond the client's requested rate.
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	limiter := s.clientLimit(r)
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "err", err, "remote", r.RemoteAddr)
		return
	}
	defer conn.Close()

	frames := s.subscribe()
	defer s.unsubscribe(frames)
	s.logger.Debug("stream client connected", "remote", r.RemoteAddr)

	closed := make(chan struct{})
	go func() {
		defer close(closed)
		conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(pongWait))
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ping := time.NewTicker(pingPeriod)
	defer ping.Stop()
	for {
		select {
		case <-closed:
			s.logger.Debug("stream client closed", "remote", r.RemoteAddr)
			return
		case <-r.Context().Done():
			return
		case <-ping.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case data := <-frames:
			if !limiter.Allow() {
				continue
			}
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.BinaryMessage, data); err != nil {
				s.logger.Debug("stream write failed", "err", err, "remote", r.RemoteAddr)
				return
			}
			s.metrics.TrackBytes("ws", len(data))
		}
	}
}
