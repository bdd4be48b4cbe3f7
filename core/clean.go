package core

import (
	"regexp"
	"strings"
)

// spaceRE matches runs of whitespace, including newlines pasted into input.
var spaceRE = regexp.MustCompile(`\s+`)

// CleanQuery normalizes user input before it is sent: surrounding whitespace
// is trimmed and inner runs collapse to a single space. An empty result means
// the input should be ignored.
func CleanQuery(s string) string {
	return strings.TrimSpace(spaceRE.ReplaceAllString(s, " "))
}
