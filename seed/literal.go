package seed

import (
	"strings"

	"github.com/goccy/go-json"
)

// named is the {id, name} shape shared by the genres and cast columns.
type named struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// decodeNamed decodes a Python list literal such as
// "[{'id': 16, 'name': 'Animation'}]". An empty column decodes to nil.
func decodeNamed(literal string) ([]named, error) {
	if strings.TrimSpace(literal) == "" {
		return nil, nil
	}

	var out []named
	if err := json.Unmarshal([]byte(pyToJSON(literal)), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// pyToJSON rewrites a Python literal into JSON: single quoted strings become
// double quoted, and None, True and False outside strings become their JSON
// counterparts. Escapes inside strings are carried over unchanged, except \'
// which JSON does not know.
func pyToJSON(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '\'' || c == '"':
			i = copyString(&b, s, i)
		case strings.HasPrefix(s[i:], "None"):
			b.WriteString("null")
			i += len("None") - 1
		case strings.HasPrefix(s[i:], "True"):
			b.WriteString("true")
			i += len("True") - 1
		case strings.HasPrefix(s[i:], "False"):
			b.WriteString("false")
			i += len("False") - 1
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// copyString writes the string literal starting at s[start] as a JSON string
// and returns the index of its closing quote.
func copyString(b *strings.Builder, s string, start int) int {
	quote := s[start]
	b.WriteByte('"')

	i := start + 1
	for ; i < len(s) && s[i] != quote; i++ {
		c := s[i]
		switch {
		case c == '\\' && i+1 < len(s):
			i++
			if s[i] == '\'' {
				b.WriteByte('\'')
			} else {
				b.WriteByte('\\')
				b.WriteByte(s[i])
			}
		case c == '"':
			b.WriteString(`\"`)
		default:
			b.WriteByte(c)
		}
	}

	b.WriteByte('"')
	return i
}
