// Package redact scrubs secrets and personal data from chat text before it is
// logged or exported. Users paste all sorts of things into a chat box.
package redact

import (
	"fmt"
	"regexp"
)

// Rule detects sensitive data in a string and provides a replacement.
type Rule interface {
	Name() string
	Detect(s string) []Match
	Replacement(m Match) string
}

// Match is a detected occurrence within a string.
type Match struct {
	Start int
	End   int
	Value string
}

// Pattern builds a Rule that replaces every match of expr with
// [REDACTED:name].
func Pattern(name, expr string) Rule {
	return &regexRule{name: name, pattern: regexp.MustCompile(expr)}
}

type regexRule struct {
	name    string
	pattern *regexp.Regexp
}

func (r *regexRule) Name() string { return r.name }

func (r *regexRule) Detect(s string) []Match {
	locs := r.pattern.FindAllStringIndex(s, -1)
	matches := make([]Match, len(locs))
	for i, loc := range locs {
		matches[i] = Match{Start: loc[0], End: loc[1], Value: s[loc[0]:loc[1]]}
	}
	return matches
}

func (r *regexRule) Replacement(_ Match) string {
	return fmt.Sprintf("[REDACTED:%s]", r.name)
}

// SecretRules returns the built-in credential rules.
func SecretRules() []Rule {
	return []Rule{
		Pattern("api_key", `(?:sk-[a-zA-Z0-9]{32,}|ghp_[a-zA-Z0-9]{36,}|glpat-[a-zA-Z0-9\-]{20,})`),
		Pattern("jwt", `eyJ[A-Za-z0-9\-_]+\.eyJ[A-Za-z0-9\-_]+\.[A-Za-z0-9\-_.+/=]+`),
	}
}

// PIIRules returns the built-in personal data rules. Card numbers come first
// so a 16-digit run is not partially claimed by the phone rule.
func PIIRules() []Rule {
	return []Rule{
		Pattern("card", `\b\d(?:[ \-]?\d){12,15}\b`),
		Pattern("email", `[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`),
		Pattern("phone", `(?:\+\d{1,3}[\s\-]?)?\(?\d{3}\)?[\s\-]?\d{3}[\s\-]?\d{4}`),
	}
}
