package application

import (
	"regexp"
	"strconv"
	"strings"

	"areamsg/internal/domain/entities"
)

// TokenKind distinguishes language tokens from positional ones.
type TokenKind int

const (
	TokenLanguage TokenKind = iota
	TokenPositional
)

// Token is one %...% variable found in a line. Start and End are byte offsets
// of the whole token, End exclusive.
type Token struct {
	Kind  TokenKind
	Text  string
	Start int
	End   int
	Key   string   // language tokens
	Args  []string // language tokens, nil when no '|' part
	Index int      // positional tokens
}

// Keys cannot contain spaces, '|' or the delimiter; arguments can contain
// anything but the delimiter.
var (
	languagePattern = regexp.MustCompile(`%lang:([^%\s|]+)((?:\|[^%]*)?)%`)
	tokenPattern    = regexp.MustCompile(`%lang:([^%\s|]+)((?:\|[^%]*)?)%|%(\d+)%`)
)

// Scan returns the leftmost token of either grammar in line.
func Scan(line string) (Token, bool) {
	for off := 0; off < len(line); {
		loc := tokenPattern.FindStringSubmatchIndex(line[off:])
		if loc == nil {
			return Token{}, false
		}
		for i := range loc {
			if loc[i] >= 0 {
				loc[i] += off
			}
		}
		if loc[2] >= 0 {
			return languageToken(line, loc), true
		}
		index, err := strconv.Atoi(line[loc[6]:loc[7]])
		if err != nil {
			// Digit runs too long for an int never bind to an argument.
			off = loc[1] - 1
			continue
		}
		return Token{
			Kind:  TokenPositional,
			Text:  line[loc[0]:loc[1]],
			Start: loc[0],
			End:   loc[1],
			Index: index,
		}, true
	}
	return Token{}, false
}

// ScanLanguage returns the leftmost language token in line, skipping any
// positional tokens before it.
func ScanLanguage(line string) (Token, bool) {
	loc := languagePattern.FindStringSubmatchIndex(line)
	if loc == nil {
		return Token{}, false
	}
	return languageToken(line, loc), true
}

func languageToken(line string, loc []int) Token {
	tok := Token{
		Kind:  TokenLanguage,
		Text:  line[loc[0]:loc[1]],
		Start: loc[0],
		End:   loc[1],
		Key:   line[loc[2]:loc[3]],
	}
	if rest := line[loc[4]:loc[5]]; rest != "" {
		tok.Args = strings.Split(rest[1:], "|")
	}
	return tok
}

// positionalVariable is the literal token bound to argument index i.
func positionalVariable(i int) string {
	return entities.VariableStart + strconv.Itoa(i) + entities.VariableEnd
}

// hasTokens reports whether any line still holds a well-formed token.
func hasTokens(lines []string) bool {
	for _, line := range lines {
		if _, ok := Scan(line); ok {
			return true
		}
	}
	return false
}
