// Package html renders the chat widget as server-side HTML styled with
// Tailwind CSS v4 (CDN). Agent replies are markdown, converted with goldmark
// and highlighted with chroma.
package html

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"net/url"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"

	"github.com/sonnes/offerchat/core"
	"github.com/sonnes/offerchat/offers"
)

// Renderer renders transcripts, offer tables and the full widget page.
type Renderer struct {
	md   goldmark.Markdown
	tmpl *template.Template

	// SortPath is the route column headers and the sort form point at.
	SortPath string
	// SendPath is the route the message form posts to.
	SendPath string
}

// New creates an HTML Renderer with goldmark configured for GFM and syntax
// highlighting. Raw HTML in agent replies is not passed through.
func New() *Renderer {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle("github"),
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(false),
				),
			),
		),
	)

	tmpl := template.Must(
		template.New("page.html").
			Funcs(funcMap()).
			ParseFS(content, "templates/*.html"),
	)

	return &Renderer{md: md, tmpl: tmpl, SortPath: "/sort", SendPath: "/send"}
}

// PageData is what the widget page needs: the session's transcript and, when
// the agent has returned offers, the current table view.
type PageData struct {
	Transcript *core.Transcript
	Offers     *offers.View
}

type pageData struct {
	Title    string
	SendPath string
	Turns    []turnData
	Table    *tableData
}

type turnData struct {
	User   *messageData
	Agent  []messageData
	Failed bool
}

type messageData struct {
	RoleLabel   string
	BubbleClass string
	Timestamp   string
	Body        template.HTML
}

type tableData struct {
	SortPath string
	Headers  []headerData
	Rows     []offers.Row
	Fields   []optionData
	Orders   []optionData
	Caption  string
}

type headerData struct {
	Label  string
	Field  core.SortField
	Href   string
	Sorted bool
	Order  core.SortOrder
	Class  string
}

type optionData struct {
	Value    string
	Label    string
	Selected bool
}

// RenderPage writes the complete widget page.
func (r *Renderer) RenderPage(w io.Writer, p PageData) error {
	data := pageData{Title: "Offer chat", SendPath: r.SendPath}
	if p.Transcript != nil {
		turns, err := r.turns(p.Transcript)
		if err != nil {
			return err
		}
		data.Turns = turns
	}
	if p.Offers != nil {
		data.Table = r.table(*p.Offers)
	}
	return r.tmpl.ExecuteTemplate(w, "page.html", data)
}

// RenderTranscript writes the transcript as a fragment of message bubbles.
func (r *Renderer) RenderTranscript(w io.Writer, t *core.Transcript) error {
	turns, err := r.turns(t)
	if err != nil {
		return err
	}
	return r.tmpl.ExecuteTemplate(w, "transcript", turns)
}

// RenderOffers writes the sort controls and the offer table as a fragment.
func (r *Renderer) RenderOffers(w io.Writer, v offers.View) error {
	return r.tmpl.ExecuteTemplate(w, "offers", r.table(v))
}

func (r *Renderer) turns(t *core.Transcript) ([]turnData, error) {
	var out []turnData
	for _, turn := range core.GroupTurns(t.Messages) {
		td := turnData{Failed: turn.Failed()}
		if turn.UserMessage != nil {
			md, err := r.message(*turn.UserMessage)
			if err != nil {
				return nil, err
			}
			td.User = &md
		}
		for _, msg := range turn.AgentMessages {
			md, err := r.message(msg)
			if err != nil {
				return nil, err
			}
			td.Agent = append(td.Agent, md)
		}
		out = append(out, td)
	}
	return out, nil
}

func (r *Renderer) message(msg core.Message) (messageData, error) {
	body, err := r.messageBody(msg)
	if err != nil {
		return messageData{}, err
	}
	return messageData{
		RoleLabel:   roleLabel(msg.Role),
		BubbleClass: bubbleClass(msg),
		Timestamp:   formatClock(msg.Timestamp),
		Body:        body,
	}, nil
}

func (r *Renderer) messageBody(msg core.Message) (template.HTML, error) {
	if msg.Format == core.FormatMarkdown {
		var buf bytes.Buffer
		if err := r.md.Convert([]byte(msg.Text), &buf); err != nil {
			return "", fmt.Errorf("goldmark convert: %w", err)
		}
		return template.HTML(`<div class="prose prose-sm max-w-none">` + buf.String() + `</div>`), nil
	}
	escaped := template.HTMLEscapeString(msg.Text)
	return template.HTML(`<p class="whitespace-pre-wrap text-sm">` + escaped + `</p>`), nil
}

func (r *Renderer) table(v offers.View) *tableData {
	td := &tableData{SortPath: r.SortPath, Rows: v.Rows, Caption: caption(v)}

	for _, f := range core.Fields {
		h := headerData{
			Label:  f.Label(),
			Field:  f,
			Href:   r.SortPath + "?" + url.Values{"field": {string(f)}}.Encode(),
			Sorted: f == v.State.Field,
			Class:  "cursor-pointer select-none px-3 py-2 text-left",
		}
		if h.Sorted {
			h.Order = v.State.Order
			h.Class += " sorted " + string(v.State.Order) + " text-emerald-700"
		}
		td.Headers = append(td.Headers, h)
	}

	td.Fields = append(td.Fields, optionData{
		Value:    "",
		Label:    core.FieldNone.Label(),
		Selected: v.State.Field == core.FieldNone,
	})
	for _, f := range core.Fields {
		td.Fields = append(td.Fields, optionData{Value: string(f), Label: f.Label(), Selected: f == v.State.Field})
	}
	for _, o := range []core.SortOrder{core.OrderDesc, core.OrderAsc} {
		td.Orders = append(td.Orders, optionData{Value: string(o), Label: o.Label(), Selected: o == v.State.Order})
	}
	return td
}

func caption(v offers.View) string {
	if v.State.Field == core.FieldNone {
		return fmt.Sprintf("%d offers, sorted by %s", len(v.Rows), core.FieldNone.Label())
	}
	return fmt.Sprintf("%d offers, sorted by %s (%s)", len(v.Rows), v.State.Field.Label(), v.State.Order.Label())
}

func roleLabel(role core.Role) string {
	switch role {
	case core.RoleUser:
		return "You"
	case core.RoleAgent:
		return "Agent"
	default:
		return string(role)
	}
}

func bubbleClass(msg core.Message) string {
	switch {
	case msg.Role == core.RoleUser:
		return "message user ml-auto bg-blue-600 text-white"
	case msg.Kind == core.KindError:
		return "message agent error bg-red-50 text-red-700 border border-red-200"
	case msg.Kind == core.KindNotice:
		return "message agent notice bg-amber-50 text-amber-800 italic"
	default:
		return "message agent bg-slate-100 text-slate-900"
	}
}
