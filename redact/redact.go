package redact

import (
	"regexp"
	"sort"

	"github.com/sonnes/offerchat/core"
)

// Config controls which rules the Redactor applies.
type Config struct {
	Secrets    bool
	PII        bool
	ExtraRules []Rule
	Allowlist  []string // regex patterns whose matches are kept
}

// Redactor scrubs sensitive values from chat text.
type Redactor struct {
	rules     []Rule
	allowlist []*regexp.Regexp
}

// New creates a Redactor from the given config. Invalid allowlist patterns
// are ignored.
func New(cfg Config) *Redactor {
	var rules []Rule
	if cfg.Secrets {
		rules = append(rules, SecretRules()...)
	}
	if cfg.PII {
		rules = append(rules, PIIRules()...)
	}
	rules = append(rules, cfg.ExtraRules...)

	allowlist := make([]*regexp.Regexp, 0, len(cfg.Allowlist))
	for _, pattern := range cfg.Allowlist {
		if re, err := regexp.Compile(pattern); err == nil {
			allowlist = append(allowlist, re)
		}
	}

	return &Redactor{rules: rules, allowlist: allowlist}
}

// Default returns a Redactor with both secret and PII rules enabled.
func Default() *Redactor {
	return New(Config{Secrets: true, PII: true})
}

// Transform implements core.Transformer. Every message text is scrubbed.
func (r *Redactor) Transform(t *core.Transcript) error {
	for i := range t.Messages {
		t.Messages[i].Text = r.String(t.Messages[i].Text)
	}
	return nil
}

// String applies all rules to s. Overlapping matches resolve to earliest
// start, then longest. A nil Redactor returns s unchanged.
func (r *Redactor) String(s string) string {
	if r == nil || len(s) == 0 {
		return s
	}

	type replacement struct {
		start int
		end   int
		text  string
	}

	var reps []replacement
	for _, rule := range r.rules {
		for _, m := range rule.Detect(s) {
			if r.isAllowed(m.Value) {
				continue
			}
			reps = append(reps, replacement{start: m.Start, end: m.End, text: rule.Replacement(m)})
		}
	}
	if len(reps) == 0 {
		return s
	}

	sort.Slice(reps, func(i, j int) bool {
		if reps[i].start != reps[j].start {
			return reps[i].start < reps[j].start
		}
		return reps[i].end > reps[j].end
	})

	var out []byte
	pos := 0
	for _, rep := range reps {
		if rep.start < pos {
			continue
		}
		out = append(out, s[pos:rep.start]...)
		out = append(out, rep.text...)
		pos = rep.end
	}
	out = append(out, s[pos:]...)
	return string(out)
}

func (r *Redactor) isAllowed(value string) bool {
	for _, re := range r.allowlist {
		if re.MatchString(value) {
			return true
		}
	}
	return false
}
