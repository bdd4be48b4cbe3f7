// Package chat implements the conversation side of the client: it owns the
// transcript and the offer table for one session and applies the agent's
// response contract to them.
package chat

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/sonnes/offerchat/core"
	"github.com/sonnes/offerchat/offers"
	"github.com/sonnes/offerchat/redact"
)

// NoOffersMessage is shown when the agent finishes with an empty offer set.
const NoOffersMessage = "No offers found matching your criteria. Try adjusting your search."

// Querier sends one query to the agent.
type Querier interface {
	Query(ctx context.Context, req core.QueryRequest) (*core.QueryResponse, error)
}

// Outcome classifies what a submission did to the session.
type Outcome int

const (
	OutcomeIgnored  Outcome = iota // blank input, nothing sent
	OutcomeReply                   // agent replied and the conversation continues
	OutcomeOffers                  // agent finished with offers; the table was replaced
	OutcomeNoOffers                // agent finished with no offers
	OutcomeFailed                  // transport or HTTP failure
)

func (o Outcome) String() string {
	switch o {
	case OutcomeIgnored:
		return "ignored"
	case OutcomeReply:
		return "reply"
	case OutcomeOffers:
		return "offers"
	case OutcomeNoOffers:
		return "no_offers"
	case OutcomeFailed:
		return "failed"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Session is one conversation with the agent. It is safe for concurrent
// use. Overlapping submissions are not de-duplicated: each response is
// applied when it arrives, so the last one to resolve wins.
type Session struct {
	mu         sync.Mutex
	token      string
	querier    Querier
	transcript *core.Transcript
	table      *offers.Table
	redactor   *redact.Redactor
	logger     *log.Logger
	now        func() time.Time
}

// Option configures a Session.
type Option func(*Session)

// WithToken sets the session token instead of generating one.
func WithToken(token string) Option {
	return func(s *Session) { s.token = token }
}

// WithRedactor scrubs queries before they are logged. Nil disables redaction.
func WithRedactor(r *redact.Redactor) Option {
	return func(s *Session) { s.redactor = r }
}

// WithLogger sets the logger. Defaults to the charmbracelet/log default.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// WithClock overrides time.Now for message timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// New creates a session that queries q.
func New(q Querier, opts ...Option) *Session {
	s := &Session{
		querier:  q,
		table:    offers.NewTable(),
		redactor: redact.Default(),
		logger:   log.Default(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.token == "" {
		s.token = uuid.NewString()
	}
	s.transcript = &core.Transcript{SessionToken: s.token, CreatedAt: s.now()}
	s.logger = s.logger.With("session", s.token)
	return s
}

// Token returns the session token sent with every query.
func (s *Session) Token() string { return s.token }

// OnRender registers fn to receive every table render. fn runs with the
// session lock held and must not call back into the session.
func (s *Session) OnRender(fn func(offers.View)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.table.OnRender(fn)
}

// Submit sends input to the agent and records the exchange. Failures are
// recorded in the transcript as agent messages, never returned.
func (s *Session) Submit(ctx context.Context, input string) Outcome {
	query := core.CleanQuery(input)
	if query == "" {
		return OutcomeIgnored
	}

	s.mu.Lock()
	s.transcript.Append(core.RoleUser, core.KindReply, core.FormatPlain, query, s.now())
	s.mu.Unlock()

	s.logger.Debug("query", "text", s.redactor.String(query))

	resp, err := s.querier.Query(ctx, core.QueryRequest{Query: query, SessionToken: s.token})

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.logger.Error("query failed", "error", err)
		s.transcript.Append(core.RoleAgent, core.KindError, core.FormatPlain,
			fmt.Sprintf("Error: %s. Please try again.", err), s.now())
		return OutcomeFailed
	}

	s.transcript.Append(core.RoleAgent, core.KindReply, core.FormatMarkdown, resp.Message, s.now())

	switch {
	case !resp.Done:
		s.logger.Debug("agent asked follow-up")
		return OutcomeReply
	case len(resp.Offers) == 0:
		s.transcript.Append(core.RoleAgent, core.KindNotice, core.FormatPlain, NoOffersMessage, s.now())
		return OutcomeNoOffers
	default:
		s.logger.Debug("offers received", "count", len(resp.Offers))
		s.table.SetOffers(resp.Offers)
		return OutcomeOffers
	}
}

// SortByField applies a column selection to the offer table.
func (s *Session) SortByField(field core.SortField) offers.View {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.table.SortByField(field)
	return s.table.View()
}

// SortByFieldAndOrder applies an explicit sort to the offer table.
func (s *Session) SortByFieldAndOrder(field core.SortField, order core.SortOrder) offers.View {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.table.SortByFieldAndOrder(field, order)
	return s.table.View()
}

// Snapshot is a consistent copy of the session state for rendering.
type Snapshot struct {
	Token      string
	Transcript *core.Transcript
	Offers     offers.View
	HasOffers  bool
}

// Snapshot copies the transcript and the current table view.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		Token:      s.token,
		Transcript: s.transcript.Clone(),
		Offers:     s.table.View(),
		HasOffers:  s.table.Len() > 0,
	}
}
