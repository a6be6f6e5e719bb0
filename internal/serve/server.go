// Package serve provides the preview server for a built site.
package serve

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
)

const (
	// LiveReloadPath is the websocket endpoint browsers connect to.
	LiveReloadPath = "/livereload"
	// ReloadMessage tells a browser to reload the page.
	ReloadMessage = "reload"

	shutdownTimeout = 5 * time.Second
)

// LiveReloadScript is injected into every page when live reload is on.
const LiveReloadScript = `(function () {
  var proto = location.protocol === "https:" ? "wss://" : "ws://";
  var ws = new WebSocket(proto + location.host + "` + LiveReloadPath + `");
  ws.onmessage = function (e) {
    if (e.data === "` + ReloadMessage + `") {
      location.reload();
    }
  };
})();`

// Server serves the output directory and the live reload endpoint.
type Server struct {
	Dir string
	Hub *Hub

	logger   *logrus.Entry
	server   *http.Server
	listener net.Listener
}

// New creates a server for dir.
func New(dir string, logger *logrus.Entry) *Server {
	return &Server{
		Dir:    dir,
		Hub:    NewHub(logger),
		logger: logger,
	}
}

// Handler returns the request router.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// Health check endpoint
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	mux.Handle(LiveReloadPath, s.Hub)
	mux.Handle("/", noCache(http.FileServer(http.Dir(s.Dir))))
	return mux
}

// Listen binds addr. Use ":0" or "127.0.0.1:0" for an ephemeral port.
func (s *Server) Listen(addr string) error {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	s.listener = listener
	return nil
}

// Addr returns the bound address, or nil before Listen.
func (s *Server) Addr() net.Addr {
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Serve handles requests until ctx is cancelled, then shuts down
// gracefully. Listen must be called first.
func (s *Server) Serve(ctx context.Context) error {
	if s.listener == nil {
		return errors.New("serve: Listen was not called")
	}

	s.server = &http.Server{
		Handler:           h2c.NewHandler(s.Handler(), &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.WithField("addr", s.listener.Addr().String()).Info("Serving site")
		errCh <- s.server.Serve(s.listener)
	}()

	select {
	case err := <-errCh:
		s.Hub.Close()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down server...")
	s.Hub.Close()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Reload asks every connected browser to reload.
func (s *Server) Reload() int {
	n := s.Hub.Broadcast(ReloadMessage)
	s.logger.WithField("clients", n).Debug("Sent reload")
	return n
}

func noCache(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-cache")
		next.ServeHTTP(w, r)
	})
}
