package application

import (
	"log/slog"
	"slices"
	"strings"

	"areamsg/internal/domain/entities"
	"areamsg/internal/ports/output"
)

// ReplacementLimit is the default number of expansion rounds after which a
// message is considered to loop.
const ReplacementLimit = 50

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithReplacementLimit overrides ReplacementLimit. Values below 1 are ignored.
func WithReplacementLimit(limit int) ResolverOption {
	return func(r *Resolver) {
		if limit > 0 {
			r.limit = limit
		}
	}
}

// WithMissingKeyHandler registers a callback invoked for every language
// variable whose key has no template.
func WithMissingKeyHandler(fn func(key string)) ResolverOption {
	return func(r *Resolver) {
		r.onMissing = fn
	}
}

// WithLogger sets the logger used for diagnostics.
func WithLogger(logger *slog.Logger) ResolverOption {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// Resolver expands language and positional variables of messages against a
// template store.
type Resolver struct {
	templates output.TemplateStore
	limit     int
	onMissing func(key string)
	logger    *slog.Logger
}

func NewResolver(templates output.TemplateStore, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		templates: templates,
		limit:     ReplacementLimit,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// resolution is the state shared by one top-level Resolve, nested messages
// included. keys and messages are the templates currently being expanded; a
// variable that refers back to one of them is left verbatim. Language
// variables resolve the same way wherever they appear, so their result is
// computed once per Resolve.
type resolution struct {
	keys     []string
	messages []*entities.Message
	cache    map[string][]string
	looped   bool
}

func (st *resolution) enter(msg *entities.Message, key string) {
	st.messages = append(st.messages, msg)
	st.keys = append(st.keys, key)
}

func (st *resolution) leave() {
	st.messages = st.messages[:len(st.messages)-1]
	st.keys = st.keys[:len(st.keys)-1]
}

// Resolve expands every variable of msg and stores the result in it.
// Resolving a resolved message returns its lines unchanged.
func (r *Resolver) Resolve(msg *entities.Message) []string {
	if msg == nil {
		return nil
	}
	if msg.IsResolved() || msg.IsEmpty() {
		lines := msg.Lines()
		msg.SetResolved(lines)
		return msg.Lines()
	}

	st := &resolution{cache: make(map[string][]string)}
	st.enter(msg, msg.Key())
	lines := r.resolve(msg.Key(), msg.Lines(), msg.Args(), st, 0)
	st.leave()
	if st.looped {
		r.logger.Warn("message refers to itself, probably has replacement loops",
			slog.String("key", msg.Key()),
			slog.Any("message", lines),
		)
	}
	msg.SetResolved(lines)
	return msg.Lines()
}

func (r *Resolver) resolve(key string, lines []string, args []entities.Replacement, st *resolution, depth int) []string {
	variables := make([]string, len(args))
	for pos := range args {
		variables[pos] = positionalVariable(pos)
	}
	for round := 1; round <= r.limit; round++ {
		before := slices.Clone(lines)
		lines = r.replaceLanguageVariables(lines, st, depth)
		lines = r.replaceArgumentVariables(lines, args, variables, st, depth)
		if slices.Equal(before, lines) {
			return lines
		}
	}
	r.logger.Warn("reached replacement limit for message, probably has replacement loops",
		slog.String("key", key),
		slog.Int("limit", r.limit),
		slog.Bool("unresolved", hasTokens(lines)),
		slog.Any("message", lines),
	)
	return lines
}

// replaceLanguageVariables inserts the template of every %lang:key|args%
// variable. Inserted lines are already resolved, so scanning resumes after
// them; whatever they still hold is left to the next round.
func (r *Resolver) replaceLanguageVariables(lines []string, st *resolution, depth int) []string {
	for i := 0; i < len(lines); i++ {
		for from := 0; from < len(lines[i]); {
			tok, ok := ScanLanguage(lines[i][from:])
			if !ok {
				break
			}
			start, end := from+tok.Start, from+tok.End
			insert, ok := r.expandLanguage(tok, st, depth+1)
			if !ok {
				from = end
				continue
			}
			lines = spliceLines(lines, i, start, end, insert)
			i, from = afterInsert(i, start, insert)
		}
	}
	return lines
}

// expandLanguage resolves the template behind a language variable. It
// reports false for a key that is already being expanded.
func (r *Resolver) expandLanguage(tok Token, st *resolution, depth int) ([]string, bool) {
	if slices.Contains(st.keys, tok.Key) || depth > r.limit {
		st.looped = true
		return nil, false
	}
	if lines, ok := st.cache[tok.Text]; ok {
		return slices.Clone(lines), true
	}
	nested := entities.FromKey(r.templates, tok.Key)
	if len(nested.Lines()) == 0 {
		r.missingKey(tok.Key)
	}
	if tok.Args != nil {
		nested.Replacements(entities.Strings(tok.Args...)...)
	}
	st.enter(nested, tok.Key)
	lines := r.resolve(tok.Key, nested.Lines(), nested.Args(), st, depth)
	st.leave()
	st.cache[tok.Text] = lines
	return slices.Clone(lines), true
}

func (r *Resolver) replaceArgumentVariables(lines []string, args []entities.Replacement, variables []string, st *resolution, depth int) []string {
	if len(args) == 0 {
		return lines
	}
	for i := 0; i < len(lines); i++ {
		for from := 0; ; {
			var spliced bool
			lines, i, from, spliced = r.applyArguments(lines, i, from, args, variables, st, depth)
			if !spliced {
				break
			}
		}
	}
	return lines
}

// applyArguments applies args, in order, to line i from byte offset from on.
// It stops at the first nested message it inserts and returns the position
// right after the inserted lines.
func (r *Resolver) applyArguments(
	lines []string, i, from int,
	args []entities.Replacement, variables []string,
	st *resolution, depth int,
) ([]string, int, int, bool) {
	for pos, arg := range args {
		head, tail := lines[i][:from], lines[i][from:]
		switch arg.Kind() {
		case entities.KindRegion:
			if arg.Region() != nil {
				lines[i] = head + arg.Region().ApplyAllReplacements(tail)
			}
		case entities.KindMessage:
			idx := strings.Index(tail, variables[pos])
			if idx < 0 {
				continue
			}
			insert, ok := r.resolveNested(arg.Message(), st, depth+1)
			if !ok {
				continue
			}
			start := from + idx
			lines = spliceLines(lines, i, start, start+len(variables[pos]), insert)
			i, from = afterInsert(i, start, insert)
			return lines, i, from, true
		default:
			lines[i] = head + strings.ReplaceAll(tail, variables[pos], arg.String())
		}
	}
	return lines, i, from, false
}

// resolveNested resolves a message passed as argument. It reports false for a
// message that is already being resolved.
func (r *Resolver) resolveNested(msg *entities.Message, st *resolution, depth int) ([]string, bool) {
	if msg.IsResolved() || msg.IsEmpty() {
		return msg.Lines(), true
	}
	if slices.Contains(st.messages, msg) || depth > r.limit {
		st.looped = true
		return nil, false
	}
	st.enter(msg, msg.Key())
	lines := r.resolve(msg.Key(), msg.Lines(), msg.Args(), st, depth)
	st.leave()
	return lines, true
}

// afterInsert is the position right after insert once spliced at line i,
// byte start.
func afterInsert(i, start int, insert []string) (int, int) {
	switch len(insert) {
	case 0:
		return i, start
	case 1:
		return i, start + len(insert[0])
	}
	last := len(insert) - 1
	return i + last, len(insert[last])
}

func (r *Resolver) missingKey(key string) {
	r.logger.Debug("message template not found", slog.String("key", key))
	if r.onMissing != nil {
		r.onMissing(key)
	}
}
