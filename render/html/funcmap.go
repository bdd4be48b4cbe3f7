package html

import (
	"html/template"
	"time"

	"github.com/sonnes/offerchat/core"
)

func funcMap() template.FuncMap {
	return template.FuncMap{
		"formatClock": formatClock,
		"arrow":       arrow,
	}
}

func formatClock(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("3:04 PM")
}

func arrow(o core.SortOrder) string {
	if o == core.OrderAsc {
		return "▲"
	}
	return "▼"
}
