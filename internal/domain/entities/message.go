package entities

import (
	"fmt"
	"slices"
)

// Token delimiters and well-known keys of the message grammar.
const (
	VariableStart    = "%"
	VariableEnd      = "%"
	LanguageVariable = "lang:"
	PrefixKey        = "prefix"
)

// RawMessages is the read-only view of a message catalog.
type RawMessages interface {
	RawMessage(key string) []string
}

// RegionReplacer rewrites every region variable it knows in a line.
type RegionReplacer interface {
	ApplyAllReplacements(line string) string
}

// ReplacementKind tags the variant held by a Replacement.
type ReplacementKind int

const (
	// KindValue replaces %i% with the value's text form.
	KindValue ReplacementKind = iota
	// KindRegion applies all region replacements to the whole line.
	KindRegion
	// KindMessage splices the resolved lines of a nested message at %i%.
	KindMessage
)

func (k ReplacementKind) String() string {
	switch k {
	case KindRegion:
		return "region"
	case KindMessage:
		return "message"
	default:
		return "value"
	}
}

// Replacement is one positional argument of a Message.
type Replacement struct {
	kind    ReplacementKind
	region  RegionReplacer
	message *Message
	value   any
}

// RegionArg wraps a region capability.
func RegionArg(r RegionReplacer) Replacement {
	return Replacement{kind: KindRegion, region: r}
}

// Nested wraps a message whose resolved lines are inserted at %i%.
func Nested(m *Message) Replacement {
	if m == nil {
		m = None()
	}
	return Replacement{kind: KindMessage, message: m}
}

// Value wraps a plain value rendered with fmt.Sprint.
func Value(v any) Replacement {
	return Replacement{kind: KindValue, value: v}
}

// Strings wraps every string as a plain value.
func Strings(values ...string) []Replacement {
	out := make([]Replacement, len(values))
	for i, v := range values {
		out[i] = Value(v)
	}
	return out
}

func (r Replacement) Kind() ReplacementKind  { return r.kind }
func (r Replacement) Region() RegionReplacer { return r.region }
func (r Replacement) Message() *Message      { return r.message }

// String renders a plain value. Nil renders as the empty string.
func (r Replacement) String() string {
	if r.value == nil {
		return ""
	}
	return fmt.Sprint(r.value)
}

// Message is an ordered list of template lines plus the arguments bound to
// their positional variables.
type Message struct {
	lines        []string
	key          string
	replacements []Replacement
	resolved     bool
}

// None returns an empty message.
func None() *Message {
	return &Message{}
}

// FromKey builds a message from the raw catalog lines of key. Unknown keys
// give an empty message.
func FromKey(templates RawMessages, key string) *Message {
	m := &Message{key: key}
	if templates != nil {
		m.lines = slices.Clone(templates.RawMessage(key))
	}
	return m
}

// FromString builds a single line message.
func FromString(line string) *Message {
	return &Message{lines: []string{line}}
}

// FromLines builds a message from literal lines.
func FromLines(lines ...string) *Message {
	return &Message{lines: slices.Clone(lines)}
}

// Replacements sets the positional arguments; argument i binds %i%.
func (m *Message) Replacements(args ...Replacement) *Message {
	m.replacements = args
	m.resolved = false
	return m
}

// Prefix prepends the localized chat prefix line.
func (m *Message) Prefix() *Message {
	line := VariableStart + LanguageVariable + PrefixKey + VariableEnd
	m.lines = append([]string{line}, m.lines...)
	m.resolved = false
	return m
}

// Append adds literal lines at the end of the message.
func (m *Message) Append(lines ...string) *Message {
	m.lines = append(m.lines, lines...)
	m.resolved = false
	return m
}

func (m *Message) Key() string { return m.key }

// Lines returns a copy of the current lines.
func (m *Message) Lines() []string { return slices.Clone(m.lines) }

// Args returns the positional arguments.
func (m *Message) Args() []Replacement { return m.replacements }

// IsEmpty reports whether the message has no lines or a single empty line.
func (m *Message) IsEmpty() bool {
	return m == nil || len(m.lines) == 0 || (len(m.lines) == 1 && m.lines[0] == "")
}

// IsResolved reports whether SetResolved was called since the last change.
func (m *Message) IsResolved() bool { return m.resolved }

// SetResolved stores the result of a resolution.
func (m *Message) SetResolved(lines []string) {
	m.lines = lines
	m.resolved = true
}
