// Package json renders transcripts and offer tables as JSON.
package json

import (
	"encoding/json"
	"io"

	"github.com/sonnes/offerchat/core"
	"github.com/sonnes/offerchat/offers"
)

// Renderer renders values as JSON documents, one per call.
type Renderer struct {
	// Indent controls pretty-printing. When true, output is indented.
	Indent bool
}

// New creates a Renderer that indents its output.
func New() *Renderer {
	return &Renderer{Indent: true}
}

// RenderTranscript writes the transcript as-is.
func (r *Renderer) RenderTranscript(w io.Writer, t *core.Transcript) error {
	return r.encode(w, t)
}

// RenderOffers writes the sort state and the formatted rows.
func (r *Renderer) RenderOffers(w io.Writer, v offers.View) error {
	return r.encode(w, withRows(v))
}

// RenderSession writes {"transcript": ..., "offers": ...} as one document.
// Offers is null when v is nil.
func (r *Renderer) RenderSession(w io.Writer, t *core.Transcript, v *offers.View) error {
	doc := struct {
		Transcript *core.Transcript `json:"transcript"`
		Offers     *offers.View     `json:"offers"`
	}{Transcript: t}
	if v != nil {
		view := withRows(*v)
		doc.Offers = &view
	}
	return r.encode(w, doc)
}

func withRows(v offers.View) offers.View {
	if v.Rows == nil {
		v.Rows = []offers.Row{}
	}
	return v
}

func (r *Renderer) encode(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	if r.Indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}
