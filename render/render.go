// Package render defines the interface for drawing chat transcripts and offer
// tables into various output formats.
package render

import (
	"io"

	"github.com/sonnes/offerchat/core"
	"github.com/sonnes/offerchat/offers"
)

// Renderer writes transcripts and offer tables to w in a specific format.
type Renderer interface {
	RenderTranscript(w io.Writer, t *core.Transcript) error
	RenderOffers(w io.Writer, v offers.View) error
}

// SessionRenderer is implemented by renderers that write a transcript and its
// offers as one document.
type SessionRenderer interface {
	RenderSession(w io.Writer, t *core.Transcript, v *offers.View) error
}

// Session writes a transcript followed by its offers. A nil v means there are
// no offers to show.
func Session(w io.Writer, r Renderer, t *core.Transcript, v *offers.View) error {
	if sr, ok := r.(SessionRenderer); ok {
		return sr.RenderSession(w, t, v)
	}
	if err := r.RenderTranscript(w, t); err != nil {
		return err
	}
	if v == nil {
		return nil
	}
	return r.RenderOffers(w, *v)
}
