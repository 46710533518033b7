package addon

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/url"
	"os"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	"github.com/angelospk/streailer/internal/constants"
	"github.com/angelospk/streailer/internal/metrics"
	"github.com/angelospk/streailer/pkg/core/metadata"
	"github.com/angelospk/streailer/pkg/processor"
)

//go:embed static/configure.html
var staticFiles embed.FS

// streamCacheControl is sent with every stream response.
const streamCacheControl = "max-age=3600"

// Config holds the HTTP server settings.
type Config struct {
	Addr            string        // host:port, e.g. "0.0.0.0:7020"
	DefaultLanguage string        // Optional, defaults to it-IT
	RateLimit       int           // Stream requests per window per IP; 0 disables
	RateWindow      time.Duration // Defaults to one minute
	ShutdownTimeout time.Duration
}

// Server exposes the addon routes.
type Server struct {
	cfg        Config
	processor  processor.ProcessorInterface
	logger     *log.Logger
	router     *mux.Router
	httpServer *http.Server

	mu       sync.Mutex
	listener net.Listener
}

// NewServer builds the router. p is consulted once per stream request.
func NewServer(cfg Config, p processor.ProcessorInterface, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New()
		logger.SetFormatter(&log.TextFormatter{})
		logger.SetOutput(os.Stdout)
		logger.SetLevel(log.InfoLevel)
	}
	if cfg.DefaultLanguage == "" {
		cfg.DefaultLanguage = constants.DefaultLanguage
	}
	if cfg.RateWindow <= 0 {
		cfg.RateWindow = time.Minute
	}

	s := &Server{cfg: cfg, processor: p, logger: logger}
	s.router = s.routes()
	s.httpServer = &http.Server{
		Addr:              cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      60 * time.Second,
	}
	return s
}

func (s *Server) routes() *mux.Router {
	r := mux.NewRouter().UseEncodedPath()
	r.Use(requestID)
	r.Use(requestLogger(s.logger))
	r.Use(cors)

	r.HandleFunc("/", func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, "/configure", http.StatusFound)
	}).Methods(http.MethodGet)
	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	r.HandleFunc("/configure", s.handleConfigure).Methods(http.MethodGet)
	r.HandleFunc("/manifest.json", s.handleManifest).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/{config}/configure", s.handleConfigure).Methods(http.MethodGet)
	r.HandleFunc("/{config}/manifest.json", s.handleManifest).Methods(http.MethodGet, http.MethodOptions)

	limited := rateLimit(s.cfg.RateLimit, s.cfg.RateWindow)
	stream := limited(http.HandlerFunc(s.handleStream))
	r.Handle("/stream/{type}/{id}.json", stream).Methods(http.MethodGet, http.MethodOptions)
	r.Handle("/{config}/stream/{type}/{id}.json", stream).Methods(http.MethodGet, http.MethodOptions)
	return r
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Addr returns the bound address once Start is listening, else the configured one.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.cfg.Addr
}

// Start listens and serves until Shutdown. It returns nil after a clean shutdown.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.listener = ln
	s.mu.Unlock()

	s.logger.WithField("addr", ln.Addr().String()).Info("Addon listening")
	if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.cfg.ShutdownTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.ShutdownTimeout)
		defer cancel()
	}
	s.logger.Info("Shutting down addon server")
	return s.httpServer.Shutdown(ctx)
}

type streamsResponse struct {
	Streams []metadata.StreamResult `json:"streams"`
}

func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	kind := metadata.ParseMediaKind(vars["type"])
	rawID, err := url.PathUnescape(vars["id"])
	if err != nil {
		rawID = vars["id"]
	}
	logger := s.logger.WithFields(log.Fields{
		"request_id": RequestIDFromContext(r.Context()),
		"type":       kind,
		"id":         rawID,
	})

	cfg, err := DecodeConfig(vars["config"], s.cfg.DefaultLanguage)
	if err != nil {
		logger.WithError(err).Warn("Invalid addon config, using defaults")
	}
	logger = logger.WithField("language", cfg.Language)

	streams := []metadata.StreamResult{}
	ref, err := ParseContentID(kind, rawID)
	switch {
	case err != nil:
		logger.WithError(err).Info("Unsupported id format")
	case !s.processor.Available():
		logger.Warn("TMDB API key not configured")
	default:
		if got := s.processor.Streams(r.Context(), ref, cfg); got != nil {
			streams = got
		}
	}

	metrics.RecordStreamRequest(string(kind), len(streams))
	logger.WithField("streams", len(streams)).Info("Returning streams")

	w.Header().Set("Cache-Control", streamCacheControl)
	writeJSON(w, http.StatusOK, streamsResponse{Streams: streams})
}

func (s *Server) handleManifest(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, NewManifest(s.cfg.DefaultLanguage))
}

func (s *Server) handleConfigure(w http.ResponseWriter, r *http.Request) {
	page, err := staticFiles.ReadFile("static/configure.html")
	if err != nil {
		s.logger.WithError(err).Error("Configure page missing from build")
		http.Error(w, "configure page unavailable", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(page)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":          "ok",
		"tmdb_configured": s.processor.Available(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithError(err).Debug("Failed to write response")
	}
}
