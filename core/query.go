package core

import "encoding/json"

// QueryRequest is the body POSTed to the agent endpoint.
type QueryRequest struct {
	Query        string `json:"query"`
	SessionToken string `json:"session_token"`
}

// QueryResponse is the agent's answer to a single query.
//
// When Done is false the agent is asking a follow-up question and Offers
// carries no meaning for the turn.
type QueryResponse struct {
	Message string  `json:"message"`
	Done    bool    `json:"done"`
	Offers  []Offer `json:"offers"`
}

// MarshalJSON always writes offers as a list, never null.
func (r QueryResponse) MarshalJSON() ([]byte, error) {
	type alias QueryResponse
	if r.Offers == nil {
		r.Offers = []Offer{}
	}
	return json.Marshal(alias(r))
}
