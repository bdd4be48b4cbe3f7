// Package terminal renders chat transcripts as ANSI-colored message lines
// and offer sets as bordered tables.
package terminal

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/x/term"

	"github.com/sonnes/offerchat/core"
	"github.com/sonnes/offerchat/offers"
)

const defaultWidth = 100

// Renderer pretty-prints transcripts and offer tables to the terminal.
type Renderer struct {
	// Width overrides terminal width detection. Zero means auto-detect.
	Width int
}

// New creates a terminal Renderer.
func New() *Renderer {
	return &Renderer{}
}

// RenderTranscript writes a session header followed by every message.
func (r *Renderer) RenderTranscript(w io.Writer, t *core.Transcript) error {
	width := r.termWidth()

	writeHeader(w, t)
	for _, msg := range t.Messages {
		writeMessage(w, msg, width)
	}
	fmt.Fprintln(w)
	return nil
}

// RenderMessage writes a single message, as the interactive chat does after
// every exchange.
func (r *Renderer) RenderMessage(w io.Writer, msg core.Message) error {
	writeMessage(w, msg, r.termWidth())
	return nil
}

// RenderOffers writes the table with the active column marked and a caption
// naming the sort.
func (r *Renderer) RenderOffers(w io.Writer, v offers.View) error {
	headers := make([]string, len(core.Fields))
	for i, f := range core.Fields {
		headers[i] = f.Label()
		if f == v.State.Field {
			headers[i] += " " + arrow(v.State.Order)
		}
	}

	rows := make([][]string, len(v.Rows))
	for i, row := range v.Rows {
		rows[i] = row.Cells()
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styleBorder).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			field := core.Fields[col]
			if row == table.HeaderRow {
				if field == v.State.Field {
					return styleHeaderSorted
				}
				return styleHeader
			}
			switch field {
			case core.FieldPrice:
				return stylePrice
			case core.FieldDiscount, core.FieldRating:
				return styleNumber
			default:
				return styleCell
			}
		})

	fmt.Fprintln(w)
	fmt.Fprintln(w, t.Render())
	fmt.Fprintln(w, styleMeta.Render(caption(v)))
	return nil
}

func caption(v offers.View) string {
	n := fmt.Sprintf("%d offers", len(v.Rows))
	if len(v.Rows) == 1 {
		n = "1 offer"
	}
	if v.State.Field == core.FieldNone {
		return n + "  sorted by " + core.FieldNone.Label()
	}
	return fmt.Sprintf("%s  sorted by %s (%s)", n, v.State.Field.Label(), v.State.Order.Label())
}

func arrow(o core.SortOrder) string {
	if o == core.OrderAsc {
		return "▲"
	}
	return "▼"
}

func (r *Renderer) termWidth() int {
	if r.Width > 0 {
		return r.Width
	}
	if w, _, err := term.GetSize(os.Stdout.Fd()); err == nil && w > 0 {
		return w
	}
	return defaultWidth
}

// writeHeader renders the session line.
func writeHeader(w io.Writer, t *core.Transcript) {
	title := "Offer chat"
	if t.SessionToken != "" {
		title += " " + t.SessionToken
	}
	fmt.Fprintln(w, styleTitle.Render(title))

	var parts []string
	if !t.CreatedAt.IsZero() {
		parts = append(parts, formatTime(t.CreatedAt))
	}
	parts = append(parts, fmt.Sprintf("%d messages", len(t.Messages)))
	fmt.Fprintln(w, styleMeta.Render(strings.Join(parts, "  ")))
}

// writeMessage renders one message: role badge and time, then the wrapped
// text indented under it.
func writeMessage(w io.Writer, msg core.Message, width int) {
	text := strings.TrimSpace(msg.Text)
	if text == "" {
		return
	}

	contentWidth := width - 4
	if contentWidth < 40 {
		contentWidth = 40
	}

	header := roleBadge(msg.Role)
	if msg.Timestamp != nil {
		header += "    " + styleMeta.Render(formatClock(*msg.Timestamp))
	}

	body := lipgloss.NewStyle().Width(contentWidth).Render(text)
	switch msg.Kind {
	case core.KindError:
		body = styleError.Render(body)
	case core.KindNotice:
		body = styleNotice.Render(body)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, " "+header)
	for _, line := range strings.Split(body, "\n") {
		fmt.Fprintln(w, "  "+line)
	}
}

func roleBadge(role core.Role) string {
	label := strings.ToUpper(string(role))
	switch role {
	case core.RoleUser:
		return styleUserBadge.Render(label)
	case core.RoleAgent:
		return styleAgentBadge.Render(label)
	default:
		return styleMeta.Render(label)
	}
}

func formatTime(t time.Time) string {
	return t.Format("Jan 2, 2006 3:04 PM")
}

func formatClock(t time.Time) string {
	return t.Format("3:04:05 PM")
}
