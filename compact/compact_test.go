package compact

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sonnes/offerchat/core"
)

func TestCountLines(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{"empty", "", 0},
		{"single line no newline", "hello", 1},
		{"single line with newline", "hello\n", 1},
		{"multiple lines", "a\nb\nc", 3},
		{"multiple lines trailing newline", "a\nb\nc\n", 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, countLines(tt.input))
		})
	}
}

func TestLineSummary(t *testing.T) {
	tests := []struct {
		name  string
		label string
		input string
		want  string
	}{
		{"empty", "code", "", "[code: 0 lines]"},
		{"single line", "json", "{}", "[json: 1 line]"},
		{"multiple lines", "json", "{\n}\n", "[json: 2 lines]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, lineSummary(tt.label, tt.input))
		})
	}
}

func buildTranscript() *core.Transcript {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	tr := &core.Transcript{SessionToken: "tok"}
	tr.Append(core.RoleUser, core.KindReply, core.FormatPlain, "fashion under $60", now)
	tr.Append(core.RoleAgent, core.KindError, core.FormatPlain, "Error: HTTP error! status: 503. Please try again.", now)
	tr.Append(core.RoleUser, core.KindReply, core.FormatPlain, "fashion under $60", now)
	tr.Append(core.RoleAgent, core.KindReply, core.FormatMarkdown,
		"Found 2 offers matching your criteria.\nParsed initial criteria:\n\n```json\n{\"category\":\"fashion\",\"max_price\":60}\n```", now)
	tr.Append(core.RoleUser, core.KindReply, core.FormatPlain, "```json\nnot an agent reply\n```", now)
	return tr
}

func TestTransformSummarizesFences(t *testing.T) {
	tr := buildTranscript()
	require.NoError(t, New(Config{}).Transform(tr))

	require.Len(t, tr.Messages, 5)
	assert.Equal(t, "Found 2 offers matching your criteria.\nParsed initial criteria:\n\n[json: 1 line]", tr.Messages[3].Text)
	// User text is never rewritten.
	assert.Equal(t, "```json\nnot an agent reply\n```", tr.Messages[4].Text)
}

func TestTransformUnlabelledFence(t *testing.T) {
	assert.Equal(t, "before [code: 2 lines] after", compactFences("before ```\na\nb\n``` after"))
}

func TestTransformDropFailed(t *testing.T) {
	tr := buildTranscript()
	require.NoError(t, core.Chain(tr, New(Config{DropFailed: true})))

	require.Len(t, tr.Messages, 3)
	assert.Equal(t, core.RoleUser, tr.Messages[0].Role)
	assert.Equal(t, core.KindReply, tr.Messages[1].Kind)
	for _, m := range tr.Messages {
		assert.NotEqual(t, core.KindError, m.Kind)
	}
}

func TestTransformDropFailedKeepCode(t *testing.T) {
	tr := buildTranscript()
	require.NoError(t, New(Config{KeepCode: true, DropFailed: true}).Transform(tr))

	require.Len(t, tr.Messages, 3)
	assert.Contains(t, tr.Messages[1].Text, "```json\n{\"category\":\"fashion\",\"max_price\":60}\n```")
}
