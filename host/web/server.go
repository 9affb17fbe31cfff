// Package web hosts particle fields in the browser: the page forwards pointer
// input over a websocket and paints the draw commands each session streams back.
package web

import (
	"context"
	"embed"
	"io/fs"
	"log"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/pkg/errors"

	"github.com/lixenwraith/particles/config"
	"github.com/lixenwraith/particles/field"
	"github.com/lixenwraith/particles/parameter"
	"github.com/lixenwraith/particles/render"
)

//go:embed static
var staticFiles embed.FS

// Options configures the browser host
type Options struct {
	Config    *config.Config
	Addr      string
	NewRand   func() field.Source // one source per session
	Observers []render.Observer   // shared by every session

	// SessionObservers, when set, builds observers owned by a single session
	SessionObservers func() []render.Observer
}

// Server serves the page and one session per websocket
type Server struct {
	cfg       *config.Config
	addr      string
	newRand   func() field.Source
	observers []render.Observer
	perSess   func() []render.Observer
	upgrader  websocket.Upgrader
	mux       *http.ServeMux

	mu       sync.Mutex
	sessions map[*session]struct{}
	wg       sync.WaitGroup
}

// NewServer validates the configuration and builds the routes
func NewServer(opts Options) (*Server, error) {
	if err := opts.Config.Validate(); err != nil {
		return nil, err
	}
	if opts.NewRand == nil {
		return nil, errors.New("web: NewRand is required")
	}
	addr := opts.Addr
	if addr == "" {
		addr = parameter.WebAddr
	}

	s := &Server{
		cfg:       opts.Config,
		addr:      addr,
		newRand:   opts.NewRand,
		observers: opts.Observers,
		perSess:   opts.SessionObservers,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 64 * 1024,
		},
		mux:      http.NewServeMux(),
		sessions: make(map[*session]struct{}),
	}

	static, err := fs.Sub(staticFiles, "static")
	if err != nil {
		return nil, errors.Wrap(err, "web: static files")
	}
	s.mux.Handle("/", http.FileServer(http.FS(static)))
	s.mux.HandleFunc("/ws", s.serveWS)
	return s, nil
}

// Handler returns the HTTP routes
func (s *Server) Handler() http.Handler { return s.mux }

// Sessions returns the number of connected clients
func (s *Server) Sessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Run listens until ctx is cancelled, then closes every session
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.mux,
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(_ net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("[web] listening on http://%s", s.addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return errors.Wrap(err, "web: listen")
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err := srv.Shutdown(shutdownCtx)
	// Hijacked websocket connections are not tracked by Shutdown
	s.closeAll()
	s.wg.Wait()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Wrap(err, "web: shutdown")
	}
	return nil
}

func (s *Server) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[web] upgrade: %v", err)
		return
	}
	defer conn.Close()

	sess, err := newSession(conn, s.cfg, s.newRand(), s.sessionObservers())
	if err != nil {
		log.Printf("[web] session: %v", err)
		return
	}

	s.mu.Lock()
	s.sessions[sess] = struct{}{}
	s.wg.Add(1)
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		delete(s.sessions, sess)
		s.mu.Unlock()
		s.wg.Done()
	}()

	sess.run(r.Context())
}

func (s *Server) sessionObservers() []render.Observer {
	obs := append([]render.Observer(nil), s.observers...)
	if s.perSess != nil {
		obs = append(obs, s.perSess()...)
	}
	return obs
}

func (s *Server) closeAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for sess := range s.sessions {
		sess.conn.Close()
	}
}
