package parser

import (
	"fmt"
	"unicode"
)

// SyntaxError reports malformed formula text. It is the only error class a
// prove call lets propagate to the caller.
type SyntaxError struct {
	Pos int
	Msg string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at position %d: %s", e.Pos, e.Msg)
}

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokLParen
	tokRParen
	tokComma
	tokColon
	tokIdent    // identifier not starting with a reserved modal letter
	tokReserved // one of O P F X U S G W R standing alone
	tokNot
	tokAnd
	tokOr
	tokImplies
	tokIff
	tokForall
	tokExists
	tokBox
	tokDiamond
)

type token struct {
	kind tokenKind
	text string
	pos  int
}

// reservedLetters are the single-letter deontic/temporal keywords. A user
// identifier must not begin with any of them; this is a grammar constraint,
// not a lexer limitation.
var reservedLetters = map[rune]bool{
	'O': true, 'P': true, 'F': true, 'X': true, 'U': true,
	'S': true, 'G': true, 'W': true, 'R': true,
}

func lex(text string) ([]token, error) {
	runes := []rune(text)
	var toks []token
	emit := func(kind tokenKind, text string, pos int) {
		toks = append(toks, token{kind: kind, text: text, pos: pos})
	}

	i := 0
	for i < len(runes) {
		r := runes[i]
		switch {
		case unicode.IsSpace(r):
			i++
		case r == '(':
			emit(tokLParen, "(", i)
			i++
		case r == ')':
			emit(tokRParen, ")", i)
			i++
		case r == ',':
			emit(tokComma, ",", i)
			i++
		case r == ':':
			emit(tokColon, ":", i)
			i++
		case r == '∀':
			emit(tokForall, "∀", i)
			i++
		case r == '∃':
			emit(tokExists, "∃", i)
			i++
		case r == '∧' || r == '&':
			emit(tokAnd, string(r), i)
			i++
		case r == '∨' || r == '|':
			emit(tokOr, string(r), i)
			i++
		case r == '→':
			emit(tokImplies, "→", i)
			i++
		case r == '↔':
			emit(tokIff, "↔", i)
			i++
		case r == '¬' || r == '~' || r == '!':
			emit(tokNot, string(r), i)
			i++
		case r == '□':
			emit(tokBox, "□", i)
			i++
		case r == '◊' || r == '◇':
			emit(tokDiamond, string(r), i)
			i++
		case r == '[':
			if i+1 < len(runes) && runes[i+1] == ']' {
				emit(tokBox, "[]", i)
				i += 2
			} else {
				return nil, &SyntaxError{Pos: i, Msg: "expected ']' after '['"}
			}
		case r == '<':
			switch {
			case i+2 < len(runes) && runes[i+1] == '-' && runes[i+2] == '>':
				emit(tokIff, "<->", i)
				i += 3
			case i+1 < len(runes) && runes[i+1] == '>':
				emit(tokDiamond, "<>", i)
				i += 2
			default:
				return nil, &SyntaxError{Pos: i, Msg: "expected '<->' or '<>'"}
			}
		case r == '-':
			if i+1 < len(runes) && runes[i+1] == '>' {
				emit(tokImplies, "->", i)
				i += 2
			} else {
				return nil, &SyntaxError{Pos: i, Msg: "expected '>' after '-'"}
			}
		case unicode.IsLetter(r):
			start := i
			for i < len(runes) && (unicode.IsLetter(runes[i]) || unicode.IsDigit(runes[i]) || runes[i] == '_') {
				i++
			}
			word := string(runes[start:i])
			switch word {
			case "forall":
				emit(tokForall, word, start)
			case "exists":
				emit(tokExists, word, start)
			default:
				if reservedLetters[r] {
					if len(word) > 1 {
						return nil, &SyntaxError{
							Pos: start,
							Msg: fmt.Sprintf("identifier %q may not begin with reserved letter %q", word, string(r)),
						}
					}
					emit(tokReserved, word, start)
				} else {
					emit(tokIdent, word, start)
				}
			}
		default:
			return nil, &SyntaxError{Pos: i, Msg: fmt.Sprintf("unexpected character %q", string(r))}
		}
	}
	emit(tokEOF, "", len(runes))
	return toks, nil
}
