package engine

import (
	"slices"
	"strconv"
	"strings"

	zygo "github.com/glycerine/zygomys/zygo"
)

// kwPrefix marks keyword names after rewriteSource: :add-post becomes
// the string "__kw_add-post".
const kwPrefix = "__kw_"

// rewriteSource turns recipe source into something zygomys can read.
// Outside string literals it rewrites
//
//	; comment        -> // comment
//	:add-post        -> "__kw_add-post"
//	stone-width      -> stone_width
//
// zygomys reads a bare hyphen as subtraction, so kebab-case symbols
// are only kept intact inside keywords, which become strings.
func rewriteSource(source string) string {
	var sb strings.Builder
	sb.Grow(len(source) + len(source)/4)

	for i := 0; i < len(source); {
		c := source[i]
		switch {
		case c == '"':
			end := stringEnd(source, i)
			sb.WriteString(source[i:end])
			i = end

		case c == ';':
			end := strings.IndexByte(source[i:], '\n')
			if end < 0 {
				end = len(source) - i
			}
			sb.WriteString("//")
			sb.WriteString(strings.TrimLeft(source[i:i+end], ";"))
			i += end

		case c == ':' && i+1 < len(source) && isLetter(source[i+1]):
			end := i + 1
			for end < len(source) && isKeywordChar(source[end]) {
				end++
			}
			sb.WriteString(strconv.Quote(kwPrefix + source[i+1:end]))
			i = end

		case c == '-' && i > 0 && i+1 < len(source) &&
			isSymbolChar(source[i-1]) && isLetter(source[i+1]):
			sb.WriteByte('_')
			i++

		default:
			sb.WriteByte(c)
			i++
		}
	}
	return sb.String()
}

// stringEnd returns the index just past the string literal opening at
// start, or len(s) when it is unterminated.
func stringEnd(s string, start int) int {
	for i := start + 1; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '"':
			return i + 1
		}
	}
	return len(s)
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isSymbolChar(c byte) bool { return isLetter(c) || isDigit(c) || c == '_' }

func isKeywordChar(c byte) bool { return isSymbolChar(c) || c == '-' }

// ---------------------------------------------------------------------------
// Product arguments
// ---------------------------------------------------------------------------

// keyword returns the name of a rewritten :keyword argument.
func keyword(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok || !strings.HasPrefix(str.S, kwPrefix) {
		return "", false
	}
	return str.S[len(kwPrefix):], true
}

// productArgs is the argument list of an (earring ...) or (ring ...)
// form.
type productArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseProductArgs splits args into keyword values and positional
// arguments. A keyword with no value, because it ends the list or is
// followed by another keyword, is a flag and maps to SexpNull. The
// keywords named in takesKeyword accept a keyword as their value, as in
// :preset :reference.
func parseProductArgs(args []zygo.Sexp, takesKeyword ...string) productArgs {
	pa := productArgs{kw: make(map[string]zygo.Sexp)}
	for i := 0; i < len(args); i++ {
		name, ok := keyword(args[i])
		if !ok {
			pa.positional = append(pa.positional, args[i])
			continue
		}
		if i+1 == len(args) {
			pa.kw[name] = zygo.SexpNull
			continue
		}
		if _, next := keyword(args[i+1]); next && !slices.Contains(takesKeyword, name) {
			pa.kw[name] = zygo.SexpNull
			continue
		}
		pa.kw[name] = args[i+1]
		i++
	}
	return pa
}

