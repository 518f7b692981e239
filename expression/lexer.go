// SPDX-License-Identifier: MIT

package expression

import (
	"errors"
	"strconv"
	"unicode"
	"unicode/utf8"
)

// tokenKind enumerates the lexical classes of the grammar.
type tokenKind int

const (
	tEOF tokenKind = iota
	tNumber
	tIdent
	tPlus
	tMinus
	tStar
	tSlash
	tPow
	tLParen
	tRParen
	tLBrack
	tRBrack
	tComma
)

var tokenNames = [...]string{
	tEOF:    "end of expression",
	tNumber: "number",
	tIdent:  "name",
	tPlus:   "'+'",
	tMinus:  "'-'",
	tStar:   "'*'",
	tSlash:  "'/'",
	tPow:    "'**'",
	tLParen: "'('",
	tRParen: "')'",
	tLBrack: "'['",
	tRBrack: "']'",
	tComma:  "','",
}

func (k tokenKind) String() string { return tokenNames[k] }

type token struct {
	kind tokenKind
	pos  int     // byte offset in the source
	text string  // raw text (identifiers, numbers)
	num  float64 // value for tNumber
}

// lex splits src into tokens; the last token is always tEOF.
// Any character outside the grammar is a *SyntaxError.
func lex(src string) ([]token, error) {
	var toks []token
	i := 0
	for i < len(src) {
		r, w := utf8.DecodeRuneInString(src[i:])
		switch {
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			i += w
		case r == '+':
			toks = append(toks, token{kind: tPlus, pos: i})
			i++
		case r == '-':
			toks = append(toks, token{kind: tMinus, pos: i})
			i++
		case r == '*':
			if i+1 < len(src) && src[i+1] == '*' {
				toks = append(toks, token{kind: tPow, pos: i})
				i += 2
			} else {
				toks = append(toks, token{kind: tStar, pos: i})
				i++
			}
		case r == '/':
			if i+1 < len(src) && src[i+1] == '/' {
				return nil, &SyntaxError{Source: src, Pos: i, Msg: "floor division '//' is not supported"}
			}
			toks = append(toks, token{kind: tSlash, pos: i})
			i++
		case r == '(':
			toks = append(toks, token{kind: tLParen, pos: i})
			i++
		case r == ')':
			toks = append(toks, token{kind: tRParen, pos: i})
			i++
		case r == '[':
			toks = append(toks, token{kind: tLBrack, pos: i})
			i++
		case r == ']':
			toks = append(toks, token{kind: tRBrack, pos: i})
			i++
		case r == ',':
			toks = append(toks, token{kind: tComma, pos: i})
			i++
		case isDigit(r) || (r == '.' && i+1 < len(src) && isDigit(rune(src[i+1]))):
			tok, n, err := lexNumber(src, i)
			if err != nil {
				return nil, err
			}
			toks = append(toks, tok)
			i += n
		case r == '_' || unicode.IsLetter(r):
			start := i
			for i < len(src) {
				r, w = utf8.DecodeRuneInString(src[i:])
				if r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
					break
				}
				i += w
			}
			toks = append(toks, token{kind: tIdent, pos: start, text: src[start:i]})
		default:
			return nil, &SyntaxError{Source: src, Pos: i, Msg: "unexpected character " + strconv.QuoteRune(r)}
		}
	}

	return append(toks, token{kind: tEOF, pos: len(src)}), nil
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

// lexNumber scans digits [. digits] [(e|E) [+-] digits] starting at i and
// returns the token plus the consumed byte count.
func lexNumber(src string, start int) (token, int, error) {
	i := start
	for i < len(src) && isDigit(rune(src[i])) {
		i++
	}
	if i < len(src) && src[i] == '.' {
		i++
		for i < len(src) && isDigit(rune(src[i])) {
			i++
		}
	}
	if i < len(src) && (src[i] == 'e' || src[i] == 'E') {
		j := i + 1
		if j < len(src) && (src[j] == '+' || src[j] == '-') {
			j++
		}
		if j >= len(src) || !isDigit(rune(src[j])) {
			return token{}, 0, &SyntaxError{Source: src, Pos: start, Msg: "malformed exponent in number"}
		}
		for j < len(src) && isDigit(rune(src[j])) {
			j++
		}
		i = j
	}
	if i < len(src) {
		if r, _ := utf8.DecodeRuneInString(src[i:]); r == '_' || r == '.' || unicode.IsLetter(r) {
			return token{}, 0, &SyntaxError{Source: src, Pos: start, Msg: "invalid number literal"}
		}
	}
	text := src[start:i]
	v, err := strconv.ParseFloat(text, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) { // overflow yields ±Inf, as in IEEE arithmetic
		return token{}, 0, &SyntaxError{Source: src, Pos: start, Msg: "invalid number literal " + strconv.Quote(text)}
	}

	return token{kind: tNumber, pos: start, text: text, num: v}, i - start, nil
}
