// Package server serves the chat widget: a server-rendered page per browser
// session, with the message form and the table's sort controls handled as
// plain HTTP requests.
package server

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/sync/errgroup"

	"github.com/sonnes/offerchat/chat"
	"github.com/sonnes/offerchat/core"
	"github.com/sonnes/offerchat/offers"
	htmlrender "github.com/sonnes/offerchat/render/html"
	jsonrender "github.com/sonnes/offerchat/render/json"
	"github.com/sonnes/offerchat/redact"
)

// CookieName holds the browser's session token.
const CookieName = "offerchat_session"

const shutdownTimeout = 5 * time.Second

// Session store defaults.
const (
	DefaultSessionTTL  = 30 * time.Minute
	DefaultMaxSessions = 1000
)

// Server serves the chat widget. Sessions live in memory and are created only
// by the page and the message form; read-only routes never add one.
type Server struct {
	// Querier sends queries to the agent.
	Querier chat.Querier
	// API, when set, is mounted under /api/.
	API http.Handler
	// Redactor scrubs logged queries. Nil disables redaction.
	Redactor *redact.Redactor
	Logger   *log.Logger
	// SessionTTL drops sessions idle for longer. Zero keeps them forever.
	SessionTTL time.Duration
	// MaxSessions bounds the store; the least recently used session is
	// evicted to make room. Zero means no bound.
	MaxSessions int

	html *htmlrender.Renderer
	json *jsonrender.Renderer
	now  func() time.Time

	mu       sync.Mutex
	sessions map[string]*entry
}

type entry struct {
	sess *chat.Session
	seen time.Time
}

// New creates a Server that sends queries through q.
func New(q chat.Querier) *Server {
	return &Server{
		Querier:  q,
		Redactor: redact.Default(),
		Logger:      log.Default(),
		SessionTTL:  DefaultSessionTTL,
		MaxSessions: DefaultMaxSessions,
		html:        htmlrender.New(),
		json:        jsonrender.New(),
		now:         time.Now,
		sessions:    make(map[string]*entry),
	}
}

// Handler returns the widget routes wrapped with OpenTelemetry
// instrumentation.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("POST /send", s.handleSend)
	mux.HandleFunc("GET /sort", s.handleSort)
	mux.HandleFunc("GET /offers.json", s.handleOffersJSON)
	if s.API != nil {
		mux.Handle("/api/", s.API)
	}
	return otelhttp.NewHandler(mux, "offerchat")
}

// Sessions reports how many sessions are stored, including idle ones not yet
// pruned.
func (s *Server) Sessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	snap := sess.Snapshot()

	data := htmlrender.PageData{Transcript: snap.Transcript}
	if snap.HasOffers {
		data.Offers = &snap.Offers
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.html.RenderPage(w, data); err != nil {
		s.Logger.Error("render page", "session", snap.Token, "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

func (s *Server) handleSend(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	outcome := sess.Submit(r.Context(), r.PostForm.Get("query"))
	s.Logger.Info("query", "session", sess.Token(), "outcome", outcome)

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// handleSort toggles the column named by field, or applies field and order
// together when order is given. An empty field selects the default ordering.
func (s *Server) handleSort(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	field, err := core.ParseSortField(q.Get("field"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	explicit := q.Get("order") != ""
	var order core.SortOrder
	if explicit {
		if order, err = core.ParseSortOrder(q.Get("order")); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	// Without a session there is no table to sort.
	if sess := s.lookup(r); sess != nil {
		if explicit {
			sess.SortByFieldAndOrder(field, order)
		} else {
			sess.SortByField(field)
		}
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleOffersJSON(w http.ResponseWriter, r *http.Request) {
	view := offers.NewTable().View()
	token := ""
	if sess := s.lookup(r); sess != nil {
		snap := sess.Snapshot()
		view, token = snap.Offers, snap.Token
	}

	w.Header().Set("Content-Type", "application/json")
	if err := s.json.RenderOffers(w, view); err != nil {
		s.Logger.Error("render offers", "session", token, "error", err)
	}
}

// cookieToken returns the session token the request carries, or "".
func cookieToken(r *http.Request) string {
	c, err := r.Cookie(CookieName)
	if err != nil {
		return ""
	}
	if _, err := uuid.Parse(c.Value); err != nil {
		return ""
	}
	return c.Value
}

// lookup returns the caller's live session, or nil.
func (s *Server) lookup(r *http.Request) *chat.Session {
	token := cookieToken(r)
	if token == "" {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.touch(token)
}

// session returns the caller's session, creating it and setting the cookie
// when the request carries no usable token.
func (s *Server) session(w http.ResponseWriter, r *http.Request) *chat.Session {
	token := cookieToken(r)

	s.mu.Lock()
	defer s.mu.Unlock()

	if token != "" {
		if sess := s.touch(token); sess != nil {
			return sess
		}
	} else {
		token = uuid.NewString()
		http.SetCookie(w, &http.Cookie{
			Name:     CookieName,
			Value:    token,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}

	s.prune()
	sess := chat.New(s.Querier,
		chat.WithToken(token),
		chat.WithRedactor(s.Redactor),
		chat.WithLogger(s.Logger),
	)
	s.sessions[token] = &entry{sess: sess, seen: s.now()}
	s.Logger.Debug("session created", "session", token)
	return sess
}

// touch returns the live session for token and marks it used. Expired
// sessions are dropped. Callers hold s.mu.
func (s *Server) touch(token string) *chat.Session {
	e, ok := s.sessions[token]
	if !ok {
		return nil
	}
	now := s.now()
	if s.expired(e, now) {
		delete(s.sessions, token)
		s.Logger.Debug("session expired", "session", token)
		return nil
	}
	e.seen = now
	return e.sess
}

func (s *Server) expired(e *entry, now time.Time) bool {
	return s.SessionTTL > 0 && now.Sub(e.seen) > s.SessionTTL
}

// prune drops expired sessions, then evicts the least recently used ones
// until there is room for one more. Callers hold s.mu.
func (s *Server) prune() {
	now := s.now()
	for token, e := range s.sessions {
		if s.expired(e, now) {
			delete(s.sessions, token)
		}
	}

	for s.MaxSessions > 0 && len(s.sessions) >= s.MaxSessions {
		oldest := ""
		for token, e := range s.sessions {
			if oldest == "" || e.seen.Before(s.sessions[oldest].seen) {
				oldest = token
			}
		}
		delete(s.sessions, oldest)
		s.Logger.Debug("session evicted", "session", oldest)
	}
}

// ListenAndServe serves h on addr until ctx is cancelled, then shuts the
// server down gracefully.
func ListenAndServe(ctx context.Context, addr string, h http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
