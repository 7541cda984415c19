package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/onlyfootballfans/quiz/internal/textnorm"
)

// Entry is one element of a catalog file: either a bare display name or an
// object with an optional stable key and aliases.
type Entry struct {
	Key     string
	Name    string
	Aliases []string
}

// UnmarshalJSON accepts "Name" or {"key"|"code"|"iso2": ..., "name": ..., "aliases": [...]}.
func (e *Entry) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*e = Entry{Name: s}
		return nil
	}

	var raw struct {
		Key     any             `json:"key"`
		Code    any             `json:"code"`
		ISO2    any             `json:"iso2"`
		Name    any             `json:"name"`
		Aliases json.RawMessage `json:"aliases"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decoding catalog entry: %w", err)
	}

	out := Entry{Name: stringify(raw.Name)}
	for _, k := range []any{raw.Key, raw.Code, raw.ISO2} {
		if k != nil {
			out.Key = stringify(k)
			break
		}
	}
	// Anything other than a list of aliases is ignored.
	var aliases []any
	if err := json.Unmarshal(raw.Aliases, &aliases); err == nil {
		for _, a := range aliases {
			out.Aliases = append(out.Aliases, stringify(a))
		}
	}
	*e = out
	return nil
}

func stringify(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		b, _ := json.Marshal(v)
		return string(b)
	}
}

// Item is an entry resolved into a catalog. Items are immutable once built;
// callers must not modify Aliases.
type Item struct {
	ID      string   `json:"id"`
	Key     string   `json:"key,omitempty"`
	Name    string   `json:"name"`
	Aliases []string `json:"aliases"`

	normName    string
	normAliases []string
}

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

func slug(s string) string {
	return strings.Trim(nonSlug.ReplaceAllString(textnorm.Normalize(s), "-"), "-")
}

func newItem(catalog string, e Entry) Item {
	aliases := make([]string, len(e.Aliases))
	normAliases := make([]string, len(e.Aliases))
	for i, a := range e.Aliases {
		aliases[i] = a
		normAliases[i] = textnorm.Normalize(a)
	}
	return Item{
		ID:          catalog + ":" + slug(e.Name),
		Key:         e.Key,
		Name:        e.Name,
		Aliases:     aliases,
		normName:    textnorm.Normalize(e.Name),
		normAliases: normAliases,
	}
}

// Norms returns the normalized name followed by the normalized aliases.
func (it Item) Norms() []string {
	out := make([]string, 0, 1+len(it.normAliases))
	out = append(out, it.normName)
	return append(out, it.normAliases...)
}

// Label is the text to show for the item in reply to query: the first Greek
// alias when the query is typed in Greek, otherwise the display name.
func (it Item) Label(query string) string {
	if !hasGreek(query) {
		return it.Name
	}
	for _, a := range it.Aliases {
		if hasGreek(a) {
			return a
		}
	}
	return it.Name
}

func hasGreek(s string) bool {
	for _, r := range s {
		if unicode.Is(unicode.Greek, r) {
			return true
		}
	}
	return false
}
