package application

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"areamsg/internal/domain/entities"
)

// memoryTemplates is a TemplateStore backed by a map.
type memoryTemplates map[string][]string

func (m memoryTemplates) RawMessage(key string) []string {
	return m[key]
}

// fakeRegion replaces %region% and %owner%.
type fakeRegion struct {
	name  string
	owner string
}

func (r fakeRegion) ApplyAllReplacements(line string) string {
	return strings.NewReplacer("%region%", r.name, "%owner%", r.owner).Replace(line)
}

func bufferLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})), &buf
}

func TestResolverPositionalArguments(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		msg  *entities.Message
		want []string
	}{
		{
			name: "values bind by position",
			msg:  entities.FromString("%0% and %1%").Replacements(entities.Strings("foo", "bar")...),
			want: []string{"foo and bar"},
		},
		{
			name: "every occurrence is replaced",
			msg:  entities.FromString("%0%-%0%").Replacements(entities.Value(7)),
			want: []string{"7-7"},
		},
		{
			name: "unbound index stays verbatim",
			msg:  entities.FromString("%0% %3%").Replacements(entities.Value("a")),
			want: []string{"a %3%"},
		},
		{
			name: "nil value renders empty",
			msg:  entities.FromString("[%0%]").Replacements(entities.Value(nil)),
			want: []string{"[]"},
		},
		{
			name: "region and positional argument both apply",
			msg: entities.FromString("%region% of %owner% costs %1%").
				Replacements(entities.RegionArg(fakeRegion{name: "Spawn", owner: "Ann"}), entities.Value(10)),
			want: []string{"Spawn of Ann costs 10"},
		},
		{
			name: "region applies to every line",
			msg: entities.FromLines("%region%", "again %region%").
				Replacements(entities.RegionArg(fakeRegion{name: "Spawn"})),
			want: []string{"Spawn", "again Spawn"},
		},
		{
			name: "nested message is spliced",
			msg: entities.FromLines("top", "a%0%b", "bottom").
				Replacements(entities.Nested(entities.FromLines("x", "y"))),
			want: []string{"top", "ax", "yb", "bottom"},
		},
		{
			name: "nested message at its argument position",
			msg: entities.FromString("%0%: %1%").
				Replacements(entities.Value("list"), entities.Nested(entities.FromString("item"))),
			want: []string{"list: item"},
		},
		{
			name: "nested message keeps its own arguments",
			msg: entities.FromString("<%0%>").
				Replacements(entities.Nested(entities.FromString("%0%!").Replacements(entities.Value("inner")))),
			want: []string{"<inner!>"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := NewResolver(memoryTemplates{})
			assert.Equal(t, tt.want, r.Resolve(tt.msg))
		})
	}
}

func TestResolverLanguageVariables(t *testing.T) {
	t.Parallel()

	templates := memoryTemplates{
		"greet":   {"Hello %lang:name%"},
		"name":    {"World"},
		"welcome": {"Welcome %0%, you own %1% regions"},
		"multi":   {"one", "two"},
		"prefix":  {"[P]"},
	}

	tests := []struct {
		name string
		msg  *entities.Message
		want []string
	}{
		{
			name: "nested keys resolve transitively",
			msg:  entities.FromKey(templates, "greet"),
			want: []string{"Hello World"},
		},
		{
			name: "arguments bind positionally",
			msg:  entities.FromString("%lang:welcome|Bob|3%"),
			want: []string{"Welcome Bob, you own 3 regions"},
		},
		{
			name: "multi-line template splits the line",
			msg:  entities.FromString("[%lang:multi%]"),
			want: []string{"[one", "two]"},
		},
		{
			name: "missing key degrades to empty",
			msg:  entities.FromString("%lang:doesNotExist%"),
			want: []string{""},
		},
		{
			name: "missing key keeps surrounding text",
			msg:  entities.FromString("Hi %lang:doesNotExist%!"),
			want: []string{"Hi !"},
		},
		{
			name: "several tokens on one line",
			msg:  entities.FromString("%lang:name% %lang:name%"),
			want: []string{"World World"},
		},
		{
			name: "prefix line",
			msg:  entities.FromString("hi").Prefix(),
			want: []string{"[P]", "hi"},
		},
		{
			name: "keyed message with arguments",
			msg:  entities.FromKey(templates, "welcome").Replacements(entities.Strings("Ann", "2")...),
			want: []string{"Welcome Ann, you own 2 regions"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := NewResolver(templates)
			assert.Equal(t, tt.want, r.Resolve(tt.msg))
		})
	}
}

func TestResolverLeavesUnrelatedLinesUntouched(t *testing.T) {
	t.Parallel()

	r := NewResolver(memoryTemplates{"multi": {"one", "two", "three"}})
	lines := r.Resolve(entities.FromLines("50% off", "x %lang:multi% y", "§a100%"))

	require.Len(t, lines, 5)
	assert.Equal(t, "50% off", lines[0])
	assert.Equal(t, []string{"x one", "two", "three y"}, lines[1:4])
	assert.Equal(t, "§a100%", lines[4])
}

func TestResolverMissingKeyHandler(t *testing.T) {
	t.Parallel()

	var missing []string
	r := NewResolver(memoryTemplates{}, WithMissingKeyHandler(func(key string) {
		missing = append(missing, key)
	}))
	r.Resolve(entities.FromString("%lang:a% %lang:b%"))

	assert.Equal(t, []string{"a", "b"}, missing)
}

func TestResolverSelfReferenceTerminates(t *testing.T) {
	t.Parallel()

	log, buf := bufferLogger()
	templates := memoryTemplates{
		"loop": {"%lang:loop%"},
		"ping": {"ping %lang:pong%"},
		"pong": {"pong %lang:ping%"},
	}
	r := NewResolver(templates, WithLogger(log))

	lines := r.Resolve(entities.FromKey(templates, "loop"))
	assert.Equal(t, []string{"%lang:loop%"}, lines)

	lines = r.Resolve(entities.FromKey(templates, "ping"))
	assert.Equal(t, []string{"ping pong %lang:ping%"}, lines)

	lines = r.Resolve(entities.FromString("<%lang:loop%>"))
	assert.Equal(t, []string{"<%lang:loop%>"}, lines)

	assert.Contains(t, buf.String(), "probably has replacement loops")
	assert.Contains(t, buf.String(), "key=loop")
}

func TestResolverSelfNestedMessageTerminates(t *testing.T) {
	t.Parallel()

	r := NewResolver(memoryTemplates{}, WithLogger(slog.New(slog.DiscardHandler)))
	msg := entities.FromString("<%0%>")
	msg.Replacements(entities.Nested(msg))

	assert.Equal(t, []string{"<%0%>"}, r.Resolve(msg))
}

func TestResolverLargeAcyclicMessages(t *testing.T) {
	t.Parallel()

	templates := memoryTemplates{
		"entry": {"- %lang:name%"},
		"name":  {"World"},
	}
	r := NewResolver(templates, WithLogger(slog.New(slog.DiscardHandler)))

	t.Run("many nested entries", func(t *testing.T) {
		t.Parallel()
		const n = 2500
		lines := make([]string, n)
		args := make([]entities.Replacement, n)
		for i := range n {
			lines[i] = positionalVariable(i)
			args[i] = entities.Nested(entities.FromKey(templates, "entry"))
		}

		got := r.Resolve(entities.FromLines(lines...).Replacements(args...))

		require.Len(t, got, n)
		assert.False(t, hasTokens(got))
		assert.Equal(t, "- World", got[0])
		assert.Equal(t, "- World", got[n-1])
	})

	t.Run("many tokens on one line", func(t *testing.T) {
		t.Parallel()
		const n = 3000
		line := strings.TrimSpace(strings.Repeat("%lang:name% ", n))

		got := r.Resolve(entities.FromString(line))

		require.Len(t, got, 1)
		assert.NotContains(t, got[0], "%")
		assert.Equal(t, strings.TrimSpace(strings.Repeat("World ", n)), got[0])
	})

	t.Run("many multi-line templates", func(t *testing.T) {
		t.Parallel()
		multi := memoryTemplates{"two": {"a", "b"}}
		const n = 2000
		lines := make([]string, n)
		for i := range lines {
			lines[i] = "[%lang:two%]"
		}

		got := NewResolver(multi).Resolve(entities.FromLines(lines...))

		require.Len(t, got, 2*n)
		assert.False(t, hasTokens(got))
		assert.Equal(t, []string{"[a", "b]"}, got[2*n-2:])
	})
}

func TestResolverRoundLimit(t *testing.T) {
	t.Parallel()

	log, buf := bufferLogger()
	r := NewResolver(memoryTemplates{}, WithReplacementLimit(5), WithLogger(log))

	msg := entities.FromString("%0%").Replacements(entities.Value("a%0%"))
	assert.Equal(t, []string{"aaaaa%0%"}, r.Resolve(msg))
	assert.Contains(t, buf.String(), "reached replacement limit")
	assert.Contains(t, buf.String(), "unresolved=true")
}

func TestResolverDefaultLimit(t *testing.T) {
	t.Parallel()

	r := NewResolver(memoryTemplates{}, WithReplacementLimit(0), WithLogger(slog.New(slog.DiscardHandler)))
	msg := entities.FromString("%0%").Replacements(entities.Value("a%0%"))
	assert.Equal(t, []string{strings.Repeat("a", ReplacementLimit) + "%0%"}, r.Resolve(msg))
}

func TestResolverIdempotent(t *testing.T) {
	t.Parallel()

	templates := memoryTemplates{"greet": {"Hello %lang:name%", "bye %0%"}, "name": {"World"}}
	r := NewResolver(templates)

	msg := entities.FromKey(templates, "greet").Replacements(entities.Value("Ann"))
	first := r.Resolve(msg)
	assert.Equal(t, []string{"Hello World", "bye Ann"}, first)
	assert.True(t, msg.IsResolved())
	assert.Equal(t, first, r.Resolve(msg))
	assert.Equal(t, first, r.Resolve(entities.FromLines(first...)))
}

func TestResolverEmptyMessages(t *testing.T) {
	t.Parallel()

	r := NewResolver(memoryTemplates{})
	assert.Empty(t, r.Resolve(entities.None()))
	assert.Equal(t, []string{""}, r.Resolve(entities.FromString("")))
	assert.Nil(t, r.Resolve(nil))
}
