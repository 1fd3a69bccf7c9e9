package forms

import (
	"html"
	"sort"
	"strings"
)

// Attrs holds HTML attributes. A string value renders as key="value"; true
// renders the bare key; false and nil are omitted.
type Attrs map[string]any

// Merge returns a copy of a overlaid with every attrs map in order.
func (a Attrs) Merge(others ...Attrs) Attrs {
	out := make(Attrs, len(a))
	for k, v := range a {
		out[k] = v
	}
	for _, other := range others {
		for k, v := range other {
			out[k] = v
		}
	}
	return out
}

// String renders the attributes with a leading space, keys sorted.
func (a Attrs) String() string {
	if len(a) == 0 {
		return ""
	}
	keys := make([]string, 0, len(a))
	for k := range a {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		switch v := a[k].(type) {
		case nil:
		case bool:
			if v {
				b.WriteByte(' ')
				b.WriteString(html.EscapeString(k))
			}
		case string:
			b.WriteByte(' ')
			b.WriteString(html.EscapeString(k))
			b.WriteString(`="`)
			b.WriteString(html.EscapeString(v))
			b.WriteByte('"')
		}
	}
	return b.String()
}

// ID returns the id attribute, if any.
func (a Attrs) ID() string {
	id, _ := a["id"].(string)
	return id
}
