// Package style is the property bag carried by every node: named CSS
// properties serialized into a style attribute value.
package style

import (
	"fmt"
	"sort"
	"strings"
)

// Properties is an ordered set of CSS properties. Keys keep the position of
// their first Set so the serialized string is deterministic.
type Properties struct {
	keys   []string
	values map[string]string
}

// New returns an empty property bag.
func New() *Properties {
	return &Properties{values: map[string]string{}}
}

// FromMap builds a bag from m, inserting keys in sorted order.
func FromMap(m map[string]string) *Properties {
	p := New()
	p.SetMap(m)
	return p
}

// Set stores value under key. Values are formatted with fmt, so numbers
// and strings can both be passed.
func (p *Properties) Set(key string, value any) {
	if p.values == nil {
		p.values = map[string]string{}
	}
	if _, ok := p.values[key]; !ok {
		p.keys = append(p.keys, key)
	}
	p.values[key] = fmt.Sprint(value)
}

// SetMap sets every entry of m, new keys in sorted order.
func (p *Properties) SetMap(m map[string]string) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		p.Set(k, m[k])
	}
}

// Get returns the value stored under key.
func (p *Properties) Get(key string) (string, bool) {
	v, ok := p.values[key]
	return v, ok
}

// Delete removes key from the bag.
func (p *Properties) Delete(key string) {
	if _, ok := p.values[key]; !ok {
		return
	}
	delete(p.values, key)
	for i, k := range p.keys {
		if k == key {
			p.keys = append(p.keys[:i], p.keys[i+1:]...)
			break
		}
	}
}

// Len returns the number of properties.
func (p *Properties) Len() int {
	return len(p.keys)
}

// Map returns a copy of the properties.
func (p *Properties) Map() map[string]string {
	m := make(map[string]string, len(p.values))
	for k, v := range p.values {
		m[k] = v
	}
	return m
}

// String serializes the bag as "key:value;key:value".
func (p *Properties) String() string {
	var sb strings.Builder
	for _, k := range p.keys {
		if sb.Len() > 0 {
			sb.WriteByte(';')
		}
		sb.WriteString(k)
		sb.WriteByte(':')
		sb.WriteString(p.values[k])
	}
	return sb.String()
}

// Attr renders the bag as a style attribute, or "" when the bag is empty.
// The value is escaped.
func (p *Properties) Attr() string {
	if p == nil || len(p.keys) == 0 {
		return ""
	}
	return `style="` + EscapeAttr(p.String()) + `"`
}

var attrEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

// EscapeAttr escapes s for use inside a single- or double-quoted attribute.
func EscapeAttr(s string) string {
	return attrEscaper.Replace(s)
}
