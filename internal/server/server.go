package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/time/rate"

	"github.com/san-kum/threebody/internal/metrics"
	"github.com/san-kum/threebody/internal/render"
	"github.com/san-kum/threebody/internal/scene"
)

const shutdownTimeout = 5 * time.Second

// Server previews a scene over HTTP. One goroutine owns the scene and
// renders frames at the configured rate; handlers only read the latest
// encoded frame and summary.
type Server struct {
	addr    string
	fps     int
	scene   *scene.Scene
	raster  *render.Raster
	metrics *metrics.Collector
	stats   []metrics.Metric
	logger  *log.Logger
	steps   int

	mu      sync.RWMutex
	latest  []byte
	summary scene.Summary
	values  map[string]float64
	clients map[chan []byte]struct{}
}

// New builds a server for sc. A nil collector gets a private registry.
func New(sc *scene.Scene, collector *metrics.Collector, logger *log.Logger) *Server {
	if collector == nil {
		collector = metrics.NewCollector(nil)
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		addr:    sc.Config.Serve.Addr,
		fps:     max(sc.Config.Serve.FPS, 1),
		scene:   sc,
		raster:  render.NewRaster(sc.Config.Size),
		metrics: collector,
		stats:   metrics.Defaults(),
		logger:  logger,
		values:  make(map[string]float64),
		clients: make(map[chan []byte]struct{}),
	}
}

// Handler routes the preview endpoints.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/scene", s.handleScene)
	mux.HandleFunc("GET /frame.png", s.handleFrame)
	mux.HandleFunc("GET /ws", s.handleStream)
	mux.Handle("GET /metrics", s.metrics.Handler())
	mux.HandleFunc("GET /{$}", s.handleIndex)
	return mux
}

// Step advances the scene by one frame, renders it and publishes the PNG to
// every stream client.
func (s *Server) Step() error {
	start := time.Now()
	if s.steps > 0 {
		s.scene.Advance(1 / float64(s.fps))
	}
	s.steps++
	f := s.scene.Frame()
	img := s.raster.Render(f)

	var buf bytes.Buffer
	if err := render.WritePNG(&buf, img); err != nil {
		return fmt.Errorf("server: encode frame: %w", err)
	}
	s.metrics.RecordFrame(f, time.Since(start))

	values := make(map[string]float64, len(s.stats))
	for _, m := range s.stats {
		m.Observe(f)
		values[m.Name()] = m.Value()
	}

	data := buf.Bytes()
	s.mu.Lock()
	s.latest = data
	s.summary = s.scene.Summary()
	s.values = values
	for c := range s.clients {
		select {
		case c <- data:
		default:
			// slow client: replace its pending frame
			select {
			case <-c:
			default:
			}
			c <- data
		}
	}
	s.mu.Unlock()
	return nil
}

// Run renders frames paced by a rate limiter until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	limiter := rate.NewLimiter(rate.Limit(s.fps), 1)
	for {
		if err := limiter.Wait(ctx); err != nil {
			// the next frame would land past the deadline
			<-ctx.Done()
			return nil
		}
		if err := s.Step(); err != nil {
			return err
		}
	}
}

// ListenAndServe runs the render loop and the HTTP server until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if err := s.Step(); err != nil {
		return err
	}
	srv := &http.Server{Addr: s.addr, Handler: s.Handler()}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	loop := make(chan error, 1)
	go func() { loop <- s.Run(ctx) }()

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("preview server listening", "addr", s.addr, "fps", s.fps, "seed", s.scene.Config.Seed)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		cancel()
		<-loop
		return err
	case err := <-loop:
		if err != nil {
			s.logger.Error("render loop stopped", "err", err)
		}
	case <-ctx.Done():
	}

	sctx, scancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer scancel()
	if err := srv.Shutdown(sctx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) subscribe() chan []byte {
	c := make(chan []byte, 1)
	s.mu.Lock()
	s.clients[c] = struct{}{}
	if s.latest != nil {
		c <- s.latest
	}
	s.mu.Unlock()
	s.metrics.ClientConnected()
	return c
}

func (s *Server) unsubscribe(c chan []byte) {
	s.mu.Lock()
	delete(s.clients, c)
	s.mu.Unlock()
	s.metrics.ClientDisconnected()
}
