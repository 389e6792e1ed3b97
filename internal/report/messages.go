package report

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/roach88/mismatch/internal/schema"
	"github.com/roach88/mismatch/internal/value"
)

// maxStringRunes is the longest string rendered in full by the default
// Stringify.
const maxStringRunes = 32

// Messages renders classified failures. Any nil field falls back to the
// default; the default Missing, Mismatch and Custom render locations and
// values through whichever Path and Stringify are in effect.
type Messages struct {
	// Path renders a location. Segments are property names and decimal
	// indexes, root first.
	Path func(segments []string) string
	// Missing renders the absent required properties of one object.
	Missing func(keys []string, path []string) string
	// Mismatch renders a value found where a different type was expected.
	// key is empty when the location is path itself.
	Mismatch func(key string, path []string, actual value.Value, expected schema.Type) string
	// Custom renders a refinement's own message.
	Custom func(message string, path []string) string
	// Stringify renders an actual value compactly.
	Stringify func(actual value.Value) string
}

// DefaultMessages returns the built-in formatter.
func DefaultMessages() Messages {
	return Messages{}.withDefaults()
}

func (m Messages) withDefaults() Messages {
	if m.Path == nil {
		m.Path = FormatPath
	}
	if m.Stringify == nil {
		m.Stringify = Stringify
	}
	path, stringify := m.Path, m.Stringify

	if m.Missing == nil {
		m.Missing = func(keys []string, segments []string) string {
			noun := "property"
			if len(keys) > 1 {
				noun = "properties"
			}
			return at(path(segments), fmt.Sprintf("missing required %s %s", noun, strings.Join(keys, ", ")))
		}
	}
	if m.Mismatch == nil {
		m.Mismatch = func(key string, segments []string, actual value.Value, expected schema.Type) string {
			if key != "" {
				segments = append(segments[:len(segments):len(segments)], key)
			}
			return at(path(segments), fmt.Sprintf("expected %s, got %s", expected.Name(), stringify(actual)))
		}
	}
	if m.Custom == nil {
		m.Custom = func(message string, segments []string) string {
			return at(path(segments), message)
		}
	}
	return m
}

func at(location, text string) string {
	if location == "" {
		return text
	}
	return location + ": " + text
}

// FormatPath joins segments with dots and renders decimal segments as
// indexes: items[0].name. The root renders as "".
func FormatPath(segments []string) string {
	var b strings.Builder
	for _, s := range segments {
		switch {
		case isIndex(s):
			b.WriteString("[" + s + "]")
		case b.Len() > 0:
			b.WriteString("." + s)
		default:
			b.WriteString(s)
		}
	}
	return b.String()
}

func isIndex(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Stringify renders a value in a single short token: strings quoted and
// truncated, arrays by length, objects by their first three keys.
func Stringify(v value.Value) string {
	switch val := v.(type) {
	case nil:
		return "undefined"
	case value.String:
		s := string(val)
		if utf8.RuneCountInString(s) > maxStringRunes {
			s = string([]rune(s)[:maxStringRunes]) + "…"
		}
		return quote(s)
	case value.Array:
		if len(val) == 1 {
			return "[1 item]"
		}
		return fmt.Sprintf("[%d items]", len(val))
	case value.Object:
		keys := val.SortedKeys()
		if len(keys) > 3 {
			keys = append(keys[:3], "…")
		}
		return "{" + strings.Join(keys, ", ") + "}"
	default:
		data, err := value.MarshalCanonical(v)
		if err != nil {
			return fmt.Sprint(v)
		}
		return string(data)
	}
}

func quote(s string) string {
	data, err := value.MarshalCanonical(value.String(s))
	if err != nil {
		return fmt.Sprintf("%q", s)
	}
	return string(data)
}
