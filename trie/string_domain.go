package trie

import "strings"

// StringDomain is the built-in key domain for variable-length string keys,
// one unit per byte. Use it for paths, identifiers, and other text keys with
// long shared prefixes.
type StringDomain struct{}

// CreateKey lifts a raw user-supplied string into the domain's internal key
// representation, which for strings is the identity.
func (StringDomain) CreateKey(raw string) string { return raw }

func (StringDomain) Len(k string) int { return len(k) }

func (StringDomain) Match(a, b string) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	i := 0
	for i < n && a[i] == b[i] {
		i++
	}
	return i
}

func (StringDomain) Prefix(k string, n int) string { return k[:n] }

func (StringDomain) Suffix(k string, from int) string { return k[from:] }

func (StringDomain) CharAt(k string, i int) Unit { return k[i] }

func (StringDomain) Compare(a, b string) int { return strings.Compare(a, b) }

func (StringDomain) Concat(a, b string) string { return a + b }

func (StringDomain) AppendUnit(k string, u Unit) string {
	var buf strings.Builder
	buf.Grow(len(k) + 1)
	buf.WriteString(k)
	buf.WriteByte(u)
	return buf.String()
}

func (StringDomain) EmptyPrefix() string { return "" }
