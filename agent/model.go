package agent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Generator returns a model's text completion for a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// DefaultQuestion is asked when the model wants to ask but gives no question.
const DefaultQuestion = "Could you clarify your preferences?"

var errNoJSON = errors.New("no JSON object in model output")

var jsonObjectRE = regexp.MustCompile(`(?s)\{.*\}`)

// Model implements Parser and Decider by prompting a Generator. Errors are
// returned as-is; the Agent decides how to fall back.
type Model struct {
	gen Generator
}

// NewModel creates a Model backed by gen.
func NewModel(gen Generator) *Model {
	return &Model{gen: gen}
}

func (m *Model) Parse(ctx context.Context, query string) (Criteria, error) {
	prompt := fmt.Sprintf(`Parse the following user query into structured search criteria for an e-commerce offers API.
Extract: category (fashion or electronics), max_price, min_discount, min_rating.
Only include fields that are mentioned or implied in the query.

User query: %q

Respond ONLY with a valid JSON object containing the criteria. Example: {"category": "fashion", "max_price": 50}`, query)

	var c Criteria
	if err := m.generateJSON(ctx, prompt, &c); err != nil {
		return Criteria{}, fmt.Errorf("parse criteria: %w", err)
	}
	return normalize(c), nil
}

// Update merges the fields the model returns into c. Fields it leaves out
// keep their current values.
func (m *Model) Update(ctx context.Context, c Criteria, reply string) (Criteria, error) {
	prompt := fmt.Sprintf(`Current search criteria: %s
User response: %q

Update the criteria based on the user's response. Return ONLY a JSON object with the updated criteria.
Only include fields that need to be added or modified.

Example: {"min_rating": 4.5, "max_price": 100}`, c.String(), reply)

	var upd Criteria
	if err := m.generateJSON(ctx, prompt, &upd); err != nil {
		return c, fmt.Errorf("update criteria: %w", err)
	}
	upd = normalize(upd)

	if upd.Category != nil {
		c.Category = upd.Category
	}
	if upd.MaxPrice != nil {
		c.MaxPrice = upd.MaxPrice
	}
	if upd.MinDiscount != nil {
		c.MinDiscount = upd.MinDiscount
	}
	if upd.MinRating != nil {
		c.MinRating = upd.MinRating
	}
	return c, nil
}

func (m *Model) Decide(ctx context.Context, query string, c Criteria, found int) (Decision, error) {
	prompt := fmt.Sprintf(`You are an AI shopping assistant.

User query: %q
Current criteria: %s
Number of offers found: %d

Decide if you need to ask the user a follow-up question to refine results.
If results are satisfactory (1-%d offers), respond with "DONE".
If no offers or too many offers, ask a clarifying question.

Respond ONLY as JSON: {"next_action": "DONE" or "ASK", "question": "..." if ASK}`, query, c.String(), found, MaxOffers)

	var out struct {
		NextAction string `json:"next_action"`
		Question   string `json:"question"`
	}
	if err := m.generateJSON(ctx, prompt, &out); err != nil {
		return Decision{}, fmt.Errorf("decide: %w", err)
	}

	if strings.EqualFold(strings.TrimSpace(out.NextAction), "DONE") {
		return Decision{Done: true}, nil
	}
	q := strings.TrimSpace(out.Question)
	if q == "" {
		q = DefaultQuestion
	}
	return Decision{Question: q}, nil
}

// generateJSON decodes the first JSON object in the model's output into v.
func (m *Model) generateJSON(ctx context.Context, prompt string, v any) error {
	text, err := m.gen.Generate(ctx, prompt)
	if err != nil {
		return err
	}
	obj := jsonObjectRE.FindString(text)
	if obj == "" {
		return errNoJSON
	}
	if err := json.Unmarshal([]byte(obj), v); err != nil {
		return fmt.Errorf("decode model output: %w", err)
	}
	return nil
}

func normalize(c Criteria) Criteria {
	if c.Category != nil {
		cat := strings.ToLower(strings.TrimSpace(*c.Category))
		if cat == "" {
			c.Category = nil
		} else {
			c.Category = &cat
		}
	}
	return c
}
