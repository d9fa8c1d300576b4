package grafana

import (
	"fmt"
	"strings"
)

// LabelMatcher matches a single label against a value. Type is one of "=",
// "!=", "~" or "!~"; the empty string means "=".
type LabelMatcher struct {
	Name  string `json:"name"`
	Value string `json:"value"`
	Type  string `json:"type,omitempty"`
}

// String renders the matcher as name<op>'value'.
func (m LabelMatcher) String() string {
	op := m.Type
	if op == "" {
		op = "="
	}
	return fmt.Sprintf("%s%s'%s'", m.Name, op, m.Value)
}

// Selector is an ordered combination of label matchers; all matchers must
// match for the selector to match.
//
// The rendered form, e.g. {name='foo', bar!='baz'}, is sent verbatim as a
// match[] query-string value to Prometheus-proxy endpoints, so the exact
// formatting is part of the wire contract, not cosmetic.
type Selector struct {
	Filters []LabelMatcher `json:"filters"`
}

func (s Selector) String() string {
	var b strings.Builder
	b.WriteRune('{')
	for i, f := range s.Filters {
		b.WriteString(f.String())
		if i < len(s.Filters)-1 {
			b.WriteString(", ")
		}
	}
	b.WriteRune('}')
	return b.String()
}
