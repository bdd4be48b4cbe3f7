// Package compact provides a Transformer that shortens exported transcripts:
// fenced code blocks in agent replies become line-count summaries, and failed
// turns can be dropped.
package compact

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/sonnes/offerchat/core"
)

// Config controls the compact transformer behavior.
type Config struct {
	// KeepCode leaves fenced code blocks as they are.
	KeepCode bool
	// DropFailed removes turns that ended in a transport or HTTP error,
	// together with the user message that started them.
	DropFailed bool
}

// Compactor replaces fenced code in agent replies with line-count summaries.
type Compactor struct {
	keepCode   bool
	dropFailed bool
}

// New creates a Compactor from the given config.
func New(cfg Config) *Compactor {
	return &Compactor{keepCode: cfg.KeepCode, dropFailed: cfg.DropFailed}
}

var fenceRE = regexp.MustCompile("(?s)```([A-Za-z0-9_+-]*)\n(.*?)```")

// Transform implements core.Transformer.
func (c *Compactor) Transform(t *core.Transcript) error {
	if c.dropFailed {
		t.Messages = dropFailed(t.Messages)
	}
	if c.keepCode {
		return nil
	}
	for i := range t.Messages {
		m := &t.Messages[i]
		if m.Role == core.RoleAgent && m.Format == core.FormatMarkdown {
			m.Text = compactFences(m.Text)
		}
	}
	return nil
}

func dropFailed(messages []core.Message) []core.Message {
	out := make([]core.Message, 0, len(messages))
	for _, turn := range core.GroupTurns(messages) {
		if turn.Failed() {
			continue
		}
		if turn.UserMessage != nil {
			out = append(out, *turn.UserMessage)
		}
		out = append(out, turn.AgentMessages...)
	}
	return out
}

func compactFences(s string) string {
	return fenceRE.ReplaceAllStringFunc(s, func(block string) string {
		m := fenceRE.FindStringSubmatch(block)
		label := m[1]
		if label == "" {
			label = "code"
		}
		return lineSummary(label, m[2])
	})
}

// lineSummary returns a summary like "[json: 3 lines]" or "[code: 1 line]".
func lineSummary(label, s string) string {
	n := countLines(s)
	if n == 1 {
		return fmt.Sprintf("[%s: 1 line]", label)
	}
	return fmt.Sprintf("[%s: %d lines]", label, n)
}

// countLines returns the number of lines in s.
// An empty string has 0 lines. A string with no newline has 1 line.
func countLines(s string) int {
	if s == "" {
		return 0
	}
	n := strings.Count(s, "\n") + 1
	if strings.HasSuffix(s, "\n") {
		n--
	}
	return n
}
