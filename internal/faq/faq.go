// Package faq holds the static FAQ table and the substring matcher used to
// answer incoming questions.
package faq

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// BackToListKey is the callback identifier of the "back to list" button. It
// can never be used as an entry key.
const BackToListKey = "back_to_faq"

// maxKeyBytes is Telegram's limit for inline button callback data.
const maxKeyBytes = 64

var (
	// ErrInvalidEntry reports an entry with a missing or malformed field.
	ErrInvalidEntry = errors.New("invalid faq entry")
	// ErrDuplicateKey reports two entries sharing the same key.
	ErrDuplicateKey = errors.New("duplicate faq key")
)

// Entry is a single FAQ item. Question is a lowercase phrase matched as a
// literal substring of incoming text.
type Entry struct {
	Key      string `mapstructure:"key"      validate:"required,max=64,ne=back_to_faq"`
	Question string `mapstructure:"question" validate:"required"`
	Answer   string `mapstructure:"answer"   validate:"required"`
}

// Table is an immutable, ordered set of FAQ entries.
type Table struct {
	entries []Entry
	byKey   map[string]int
}

// NewTable validates entries and builds a table preserving their order.
// Questions are lowercased so that matching against normalized input works
// regardless of how the entries were written in configuration.
func NewTable(entries []Entry) (*Table, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: table has no entries", ErrInvalidEntry)
	}

	t := &Table{
		entries: make([]Entry, 0, len(entries)),
		byKey:   make(map[string]int, len(entries)),
	}
	for i, e := range entries {
		key := strings.TrimSpace(e.Key)
		question := strings.ToLower(strings.TrimSpace(e.Question))
		answer := strings.TrimSpace(e.Answer)

		switch {
		case key == "":
			return nil, fmt.Errorf("%w: entry %d has an empty key", ErrInvalidEntry, i)
		case key == BackToListKey:
			return nil, fmt.Errorf("%w: key %q is reserved", ErrInvalidEntry, key)
		case len(key) > maxKeyBytes:
			return nil, fmt.Errorf("%w: key %q exceeds %d bytes", ErrInvalidEntry, key, maxKeyBytes)
		case question == "":
			return nil, fmt.Errorf("%w: entry %q has an empty question", ErrInvalidEntry, key)
		case answer == "":
			return nil, fmt.Errorf("%w: entry %q has an empty answer", ErrInvalidEntry, key)
		}
		if _, exists := t.byKey[key]; exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateKey, key)
		}

		t.byKey[key] = len(t.entries)
		t.entries = append(t.entries, Entry{Key: key, Question: question, Answer: answer})
	}

	return t, nil
}

// Match returns the first entry, in declaration order, whose question is a
// substring of the lowercased text. There is no scoring: an earlier entry
// wins even if a later one is a longer match.
func (t *Table) Match(text string) (Entry, bool) {
	normalized := strings.ToLower(text)
	if normalized == "" {
		return Entry{}, false
	}
	for _, e := range t.entries {
		if strings.Contains(normalized, e.Question) {
			return e, true
		}
	}
	return Entry{}, false
}

// Lookup finds an entry by key.
func (t *Table) Lookup(key string) (Entry, bool) {
	i, ok := t.byKey[key]
	if !ok {
		return Entry{}, false
	}
	return t.entries[i], true
}

// Entries returns a copy of the entries in declaration order.
func (t *Table) Entries() []Entry {
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Len returns the number of entries.
func (t *Table) Len() int {
	return len(t.entries)
}

// Capitalize upper-cases the first letter of s and lower-cases the rest.
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}
