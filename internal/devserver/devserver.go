// Package devserver runs the live-preview loop: it builds the site into a
// scratch directory, serves it over HTTP, watches the source trees, and
// tells connected browsers to reload after each rebuild.
package devserver

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/tmheller/tmheller.dev/app"
	"github.com/tmheller/tmheller.dev/content"
	"github.com/tmheller/tmheller.dev/internal/build"
	"github.com/tmheller/tmheller.dev/kit/colorlog"
)

const refreshScript = `<script>
(() => {
	const connect = () => {
		const ws = new WebSocket("ws://" + location.host + "/__reload");
		ws.onmessage = () => location.reload();
		ws.onclose = () => setTimeout(connect, 1000);
	};
	connect();
})();
</script>`

type Server struct {
	cfg     *app.Config
	builder *build.Builder
	hub     *hub
	watcher *watcher
	log     *slog.Logger

	// mu guards outDir. Each successful rebuild lands in a fresh scratch
	// dir which is swapped in whole, so pages for deleted posts never
	// outlive the build that dropped them. A failed build leaves the last
	// good output serving.
	mu     sync.Mutex
	outDir string
}

func New(cfg *app.Config) (*Server, error) {
	store := content.NewStore(cfg, os.DirFS(cfg.ContentDir))
	builder := build.New(cfg, store, os.DirFS(cfg.PagesDir), staticFSOrNil(cfg)).
		WithLiveReload(refreshScript)

	return &Server{
		cfg:     cfg,
		builder: builder,
		hub:     newHub(),
		log:     colorlog.New("dev"),
	}, nil
}

func staticFSOrNil(cfg *app.Config) fs.FS {
	if _, err := os.Stat(cfg.StaticDir); err != nil {
		return nil
	}
	return os.DirFS(cfg.StaticDir)
}

func (s *Server) serveDir() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.outDir
}

// Run blocks until ctx is canceled. Build failures are logged, never
// fatal: the author fixes the file and saves again.
func (s *Server) Run(ctx context.Context) error {
	defer func() {
		if dir := s.serveDir(); dir != "" {
			os.RemoveAll(dir)
		}
	}()

	s.rebuild(ctx)

	watcher, err := newWatcher([]string{s.cfg.ContentDir, s.cfg.PagesDir, s.cfg.StaticDir}, s.log)
	if err != nil {
		return err
	}
	s.watcher = watcher
	defer watcher.close()

	go s.watchLoop(ctx)

	router := chi.NewRouter()
	router.Use(chimiddleware.Recoverer)
	router.Get("/__reload", s.hub.handleWS)
	router.Handle("/*", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.FileServer(http.Dir(s.serveDir())).ServeHTTP(w, r)
	}))

	addr := fmt.Sprintf(":%d", app.GetPort())
	server := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("dev server listening", "url", "http://localhost"+addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.log.Info("shutting down dev server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func (s *Server) watchLoop(ctx context.Context) {
	// Editors fire bursts of events per save; rebuild once per quiet gap.
	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return
		case name, ok := <-s.watcher.events:
			if !ok {
				return
			}
			s.log.Info("change detected", "file", name)
			pending = time.After(150 * time.Millisecond)
		case <-pending:
			pending = nil
			s.rebuild(ctx)
			s.hub.broadcastReload()
		}
	}
}

func (s *Server) rebuild(ctx context.Context) {
	started := time.Now()

	next, err := os.MkdirTemp("", "site-dev-*")
	if err != nil {
		s.log.Error("could not create scratch dir", "error", err)
		return
	}
	if err := s.builder.Build(ctx, next); err != nil {
		s.log.Error("build finished with errors", "error", err)
		os.RemoveAll(next)
		return
	}

	s.mu.Lock()
	old := s.outDir
	s.outDir = next
	s.mu.Unlock()
	if old != "" {
		os.RemoveAll(old)
	}

	s.log.Info("site rebuilt", "took", time.Since(started).Round(time.Millisecond))
}
