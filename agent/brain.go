package agent

import "context"

// Parser turns free text into search criteria.
type Parser interface {
	// Parse reads the first query of a session.
	Parse(ctx context.Context, query string) (Criteria, error)
	// Update applies a follow-up answer to the current criteria.
	Update(ctx context.Context, c Criteria, reply string) (Criteria, error)
}

// Decider chooses between answering and asking a follow-up question.
type Decider interface {
	Decide(ctx context.Context, query string, c Criteria, found int) (Decision, error)
}

// Decision is what the agent does with a search result.
type Decision struct {
	Done     bool
	Question string
}

// NoOffersQuestion is the rule-based follow-up for an empty result. The
// agent still finishes on empty results, so it only shows up in Decide.
const NoOffersQuestion = "No offers found. Would you like to adjust your criteria?"

// Rules is the keyword and threshold implementation of Parser and Decider.
type Rules struct{}

func (Rules) Parse(_ context.Context, query string) (Criteria, error) {
	return ParseCriteria(query), nil
}

func (Rules) Update(_ context.Context, c Criteria, reply string) (Criteria, error) {
	return UpdateCriteria(c, reply), nil
}

// Decide asks when nothing or more than MaxOffers offers matched.
func (Rules) Decide(_ context.Context, _ string, _ Criteria, found int) (Decision, error) {
	switch {
	case found == 0:
		return Decision{Question: NoOffersQuestion}, nil
	case found > MaxOffers:
		return Decision{Question: NarrowQuestion}, nil
	default:
		return Decision{Done: true}, nil
	}
}
