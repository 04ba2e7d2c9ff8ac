// Package host serves registered components as server-rendered pages:
// a chi router, per-request component sessions, a TTL page cache, and
// a livereload channel in dev mode.
package host

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"

	"github.com/vellum-dev/vellum/internal/dev"
	"github.com/vellum-dev/vellum/pkg/component"
	"github.com/vellum-dev/vellum/pkg/dom"
	"github.com/vellum-dev/vellum/pkg/registry"
)

// Page maps a route to a defined element tag.
type Page struct {
	Title string
	Tag   string
}

// Session is one served component instance.
type Session struct {
	ID        string    `json:"id"`
	Tag       string    `json:"tag"`
	State     string    `json:"state"`
	CreatedAt time.Time `json:"created_at"`

	el   *dom.Element
	comp *component.Component
}

// Option configures a Host.
type Option func(*Host)

// WithLogger sets the host logger. Default: slog.Default().
func WithLogger(log *slog.Logger) Option {
	return func(h *Host) { h.log = log }
}

// WithReload attaches a livereload broadcaster, exposed at
// /livereload when dev mode is on.
func WithReload(bc *dev.Broadcaster) Option {
	return func(h *Host) { h.reload = bc }
}

// Host serves pages backed by registry-defined components.
type Host struct {
	cfg    Config
	log    *slog.Logger
	reg    *registry.Registry
	cache  *gocache.Cache
	reload *dev.Broadcaster

	mu       sync.Mutex
	pages    map[string]Page
	sessions map[string]*Session
}

// New creates a host over the given registry.
func New(cfg Config, reg *registry.Registry, opts ...Option) *Host {
	h := &Host{
		cfg:      cfg,
		reg:      reg,
		pages:    make(map[string]Page),
		sessions: make(map[string]*Session),
		cache:    gocache.New(cfg.CacheTTL(), 2*cfg.CacheTTL()),
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.log == nil {
		h.log = slog.Default()
	}
	return h
}

// HandlePage registers a page route.
func (h *Host) HandlePage(pattern string, p Page) {
	h.mu.Lock()
	h.pages[pattern] = p
	h.mu.Unlock()
}

// Sessions returns a snapshot of live sessions.
func (h *Host) Sessions() []*Session {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]*Session, 0, len(h.sessions))
	for _, s := range h.sessions {
		out = append(out, s)
	}
	return out
}

// Router builds the HTTP handler.
func (h *Host) Router() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	r.Get("/sessions", h.handleSessions)
	if h.cfg.Dev && h.reload != nil {
		r.Get("/livereload", h.reload.ServeHTTP)
	}

	h.mu.Lock()
	for pattern, page := range h.pages {
		r.Get(pattern, h.pageHandler(page))
	}
	h.mu.Unlock()

	return r
}

func (h *Host) handleSessions(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(h.Sessions())
}

func (h *Host) pageHandler(page Page) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !h.cfg.Dev {
			if cached, ok := h.cache.Get(page.Tag); ok {
				h.writeHTML(w, cached.(string))
				return
			}
		}

		el, comp, err := h.reg.Upgrade(r.Context(), page.Tag)
		if err != nil {
			h.log.Error("upgrade failed", "tag", page.Tag, "err", err)
			http.Error(w, "component unavailable", http.StatusInternalServerError)
			return
		}
		if comp.State() == component.StateError {
			// Log-and-continue policy: the page still serves whatever
			// rendered before the failure.
			h.log.Warn("component connected in error state", "tag", page.Tag)
		}

		sess := &Session{
			ID:        uuid.NewString(),
			Tag:       page.Tag,
			State:     comp.State().String(),
			CreatedAt: time.Now(),
			el:        el,
			comp:      comp,
		}
		h.mu.Lock()
		h.sessions[sess.ID] = sess
		h.mu.Unlock()

		html := h.renderPage(page, el)
		if !h.cfg.Dev {
			h.cache.Set(page.Tag, html, gocache.DefaultExpiration)
		}
		h.writeHTML(w, html)
	}
}

func (h *Host) writeHTML(w http.ResponseWriter, html string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(html))
}

// livereloadScript reconnects-and-reloads on any broadcast.
const livereloadScript = `<script>
(function () {
  var ws = new WebSocket("ws://" + location.host + "/livereload");
  ws.onmessage = function () { location.reload(); };
})();
</script>`

func (h *Host) renderPage(page Page, el *dom.Element) string {
	title := page.Title
	if title == "" {
		title = page.Tag
	}
	body := el.OuterHTML()
	if h.cfg.Dev && h.reload != nil {
		body += livereloadScript
	}
	return "<!DOCTYPE html><html><head><meta charset=\"utf-8\"><title>" +
		dom.EscapeHTML(title) + "</title></head><body>" + body + "</body></html>"
}
