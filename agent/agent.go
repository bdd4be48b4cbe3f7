package agent

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/sonnes/offerchat/core"
	"github.com/sonnes/offerchat/offers"
)

// MaxOffers is the largest result the agent answers with directly. Larger
// results get a follow-up question instead.
const MaxOffers = 10

// NarrowQuestion is asked when a search matches more than MaxOffers offers.
const NarrowQuestion = "Found many offers. Would you like to narrow down by rating or discount?"

type sessionState struct {
	criteria Criteria
}

// Agent answers queries against a Catalog, remembering criteria per session.
type Agent struct {
	catalog *Catalog
	logger  *log.Logger
	parser  Parser
	decider Decider

	mu       sync.Mutex
	sessions map[string]*sessionState
}

// Option configures an Agent.
type Option func(*Agent)

// WithParser replaces the rule-based criteria parser. Parse and update
// errors fall back to the rules.
func WithParser(p Parser) Option {
	return func(a *Agent) { a.parser = p }
}

// WithDecider replaces the rule-based decision. A decide error finishes the
// turn with the current result.
func WithDecider(d Decider) Option {
	return func(a *Agent) { a.decider = d }
}

// New creates an Agent over catalog. A nil catalog uses DefaultCatalog.
func New(catalog *Catalog, logger *log.Logger, opts ...Option) *Agent {
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	if logger == nil {
		logger = log.Default()
	}
	a := &Agent{
		catalog:  catalog,
		logger:   logger,
		parser:   Rules{},
		decider:  Rules{},
		sessions: make(map[string]*sessionState),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Run handles one input for a session. The first input of a session is
// parsed into criteria; later inputs are treated as answers that refine them.
func (a *Agent) Run(ctx context.Context, sessionID, input string) core.QueryResponse {
	a.mu.Lock()
	defer a.mu.Unlock()

	var reasoning string
	st, ok := a.sessions[sessionID]
	if !ok {
		c, err := a.parser.Parse(ctx, input)
		if err != nil {
			a.logger.Warn("parse failed, using rules", "session", sessionID, "err", err)
			c = ParseCriteria(input)
		}
		st = &sessionState{criteria: c}
		a.sessions[sessionID] = st
		reasoning = "Parsed initial criteria:"
	} else {
		c, err := a.parser.Update(ctx, st.criteria, input)
		if err != nil {
			a.logger.Warn("update failed, keeping criteria", "session", sessionID, "err", err)
			c = st.criteria
		}
		st.criteria = c
		reasoning = "Updated criteria:"
	}

	found := a.catalog.Search(st.criteria)
	a.logger.Debug("search", "session", sessionID, "criteria", st.criteria.String(), "offers", len(found))

	d, err := a.decider.Decide(ctx, input, st.criteria, len(found))
	if err != nil {
		a.logger.Warn("decide failed, answering", "session", sessionID, "err", err)
		d = Decision{Done: true}
	}

	if !d.Done && len(found) > 0 {
		return core.QueryResponse{Message: d.Question, Offers: []core.Offer{}}
	}

	return core.QueryResponse{
		Message: fmt.Sprintf("Found %d offers matching your criteria.\n%s\n\n```json\n%s\n```",
			len(found), reasoning, st.criteria.String()),
		Done:   true,
		Offers: offers.DefaultOrder(found),
	}
}

// Sessions reports how many sessions the agent has seen.
func (a *Agent) Sessions() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.sessions)
}

// Query answers req in-process, so an Agent can stand in for the HTTP client.
func (a *Agent) Query(ctx context.Context, req core.QueryRequest) (*core.QueryResponse, error) {
	if req.SessionToken == "" {
		return nil, errors.New(msgMissingToken)
	}
	resp := a.Run(ctx, req.SessionToken, req.Query)
	return &resp, nil
}
