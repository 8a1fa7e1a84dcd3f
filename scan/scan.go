// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package scan turns source text into tokens.
//
// The scanner is a state machine in the style of text/template's lexer.
// It is context sensitive in one respect: a quote character is a transpose
// operator when it directly follows a value-ending token, and otherwise
// starts a string literal.
package scan // import "matfree.dev/matfree/scan"

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Token represents a token or text string returned from the scanner.
type Token struct {
	Type   Type    // The type of this item.
	Text   string  // The text of this item; for a String, the contents without quotes.
	Num    float64 // For a Number, its value (the imaginary part if Imag is set).
	Imag   bool    // For a Number, whether it had an i or j suffix.
	Space  bool    // Whether white space immediately precedes the token.
	Line   int     // The line number on which this token appears, starting at 1.
	Col    int     // The column, starting at 1.
	Offset int     // The byte offset in the input.
	End    int     // The byte offset just past the token.
}

// Type identifies the type of lex items.
type Type int

const (
	EOF   Type = iota // zero value so an empty Token means EOF
	Error             // error occurred; value is text of error
	Newline
	// Interesting things
	Number
	String
	Identifier
	Operator   // arithmetic, comparison and logical operators
	Transpose  // ' or .'
	Assign     // '='
	LeftParen  // '('
	RightParen // ')'
	LeftBrack  // '['
	RightBrack // ']'
	LeftBrace  // '{'
	RightBrace // '}'
	Comma      // ','
	Semicolon  // ';'
	Colon      // ':'
	Dot        // '.'
	At         // '@'
	// Keywords
	If
	Elseif
	Else
	End
	For
	While
	Switch
	Case
	Otherwise
	Try
	Catch
	Function
	Return
	Break
	Continue
	Global
	Persistent
	True
	False
)

var typeNames = [...]string{
	EOF:        "EOF",
	Error:      "Error",
	Newline:    "Newline",
	Number:     "Number",
	String:     "String",
	Identifier: "Identifier",
	Operator:   "Operator",
	Transpose:  "Transpose",
	Assign:     "Assign",
	LeftParen:  "LeftParen",
	RightParen: "RightParen",
	LeftBrack:  "LeftBrack",
	RightBrack: "RightBrack",
	LeftBrace:  "LeftBrace",
	RightBrace: "RightBrace",
	Comma:      "Comma",
	Semicolon:  "Semicolon",
	Colon:      "Colon",
	Dot:        "Dot",
	At:         "At",
	If:         "if",
	Elseif:     "elseif",
	Else:       "else",
	End:        "end",
	For:        "for",
	While:      "while",
	Switch:     "switch",
	Case:       "case",
	Otherwise:  "otherwise",
	Try:        "try",
	Catch:      "catch",
	Function:   "function",
	Return:     "return",
	Break:      "break",
	Continue:   "continue",
	Global:     "global",
	Persistent: "persistent",
	True:       "true",
	False:      "false",
}

func (t Type) String() string {
	if t >= 0 && int(t) < len(typeNames) && typeNames[t] != "" {
		return typeNames[t]
	}
	return "Type(" + strconv.Itoa(int(t)) + ")"
}

// IsKeyword reports whether the type is a reserved word.
func (t Type) IsKeyword() bool {
	return t >= If
}

var keywords = map[string]Type{}

func init() {
	for t := If; t <= False; t++ {
		keywords[typeNames[t]] = t
	}
}

// Keyword returns the token type of the reserved word s, if it is one.
func Keyword(s string) (Type, bool) {
	t, ok := keywords[s]
	return t, ok
}

// IsIdentifier reports whether s is a valid variable or function name:
// a letter followed by letters, digits and underscores, and not a keyword.
func IsIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if i == 0 && !unicode.IsLetter(r) {
			return false
		}
		if !isAlphaNumeric(r) {
			return false
		}
	}
	_, kw := keywords[s]
	return !kw
}

func (i Token) String() string {
	switch {
	case i.Type == EOF:
		return "EOF"
	case i.Type == Error:
		return "error: " + i.Text
	case i.Type == Newline:
		return "newline"
	case len(i.Text) > 10:
		return fmt.Sprintf("%s: %.10q...", i.Type, i.Text)
	}
	return fmt.Sprintf("%s: %q", i.Type, i.Text)
}

// LexError is a failure to tokenize the input.
type LexError struct {
	Name string // input name, may be empty
	Line int
	Col  int
	Msg  string
}

func (e *LexError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("%s:%d:%d: %s", e.Name, e.Line, e.Col, e.Msg)
	}
	return fmt.Sprintf("line %d, column %d: %s", e.Line, e.Col, e.Msg)
}

const eof = -1

// stateFn represents the state of the scanner as a function that returns the next state.
type stateFn func(*Scanner) stateFn

// Scanner holds the state of the scanner.
type Scanner struct {
	name      string // the name of the input; used only for error reports
	input     string // the text being scanned
	lastWidth int    // size of most recent rune
	line      int    // line number of pos
	lineStart int    // offset of the start of the current line
	pos       int    // current position in the input
	start     int    // start position of this item
	startLine int
	startCol  int
	space     bool // white space seen since the last token
	last      Type // type of the most recently emitted token
	token     Token
}

// New creates a new scanner for the input string.
func New(name, input string) *Scanner {
	return &Scanner{
		name:  name,
		input: strings.ReplaceAll(input, "\r\n", "\n"),
		line:  1,
		last:  Newline, // as if at the start of a line
	}
}

// next returns the next rune in the input.
func (l *Scanner) next() rune {
	if l.pos >= len(l.input) {
		l.lastWidth = 0
		return eof
	}
	r, w := utf8.DecodeRuneInString(l.input[l.pos:])
	l.lastWidth = w
	l.pos += w
	if r == '\n' {
		l.line++
		l.lineStart = l.pos
	}
	return r
}

// peek returns but does not consume the next rune in the input.
func (l *Scanner) peek() rune {
	if l.pos >= len(l.input) {
		return eof
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.pos:])
	return r
}

// peekAt returns the byte n bytes ahead of pos, or 0.
func (l *Scanner) peekAt(n int) byte {
	if l.pos+n >= len(l.input) {
		return 0
	}
	return l.input[l.pos+n]
}

// backup steps back one rune. Should only be called once per call of next.
func (l *Scanner) backup() {
	l.pos -= l.lastWidth
	if l.lastWidth == 1 && l.input[l.pos] == '\n' {
		l.line--
		l.lineStart = strings.LastIndexByte(l.input[:l.pos], '\n') + 1
	}
	l.lastWidth = 0
}

// ignore skips over the pending input before this point.
func (l *Scanner) ignore() {
	l.start = l.pos
}

// mark records the position of the token about to be scanned.
func (l *Scanner) mark() {
	l.start = l.pos
	l.startLine = l.line
	l.startCol = l.pos - l.lineStart + 1
}

// emit passes an item back to the client.
func (l *Scanner) emit(t Type) stateFn {
	return l.emitToken(Token{Type: t, Text: l.input[l.start:l.pos]})
}

func (l *Scanner) emitToken(tok Token) stateFn {
	tok.Space = l.space
	tok.Line = l.startLine
	tok.Col = l.startCol
	tok.Offset = l.start
	tok.End = l.pos
	l.token = tok
	l.last = tok.Type
	l.space = false
	l.start = l.pos
	return nil
}

// accept consumes the next rune if it's from the valid set.
func (l *Scanner) accept(valid string) bool {
	if strings.ContainsRune(valid, l.next()) {
		return true
	}
	l.backup()
	return false
}

// acceptRun consumes a run of runes from the valid set.
func (l *Scanner) acceptRun(valid string) {
	for strings.ContainsRune(valid, l.next()) {
	}
	l.backup()
}

// errorf returns an error token and consumes the rest of the input.
func (l *Scanner) errorf(format string, args ...interface{}) stateFn {
	l.token = Token{
		Type: Error,
		Text: fmt.Sprintf(format, args...),
		Line: l.startLine,
		Col:  l.startCol,
	}
	l.pos = len(l.input)
	l.start = l.pos
	return nil
}

// Next returns the next token.
func (l *Scanner) Next() Token {
	l.token = Token{Type: EOF, Line: l.line, Col: l.pos - l.lineStart + 1, Offset: l.pos}
	for state := lexAny; state != nil; {
		state = state(l)
	}
	return l.token
}

// Tokenize scans all of input. The result ends with an EOF token.
func Tokenize(name, input string) ([]Token, error) {
	l := New(name, input)
	var toks []Token
	for {
		tok := l.Next()
		switch tok.Type {
		case Error:
			return nil, &LexError{Name: name, Line: tok.Line, Col: tok.Col, Msg: tok.Text}
		case EOF:
			return append(toks, tok), nil
		}
		toks = append(toks, tok)
	}
}

// transposeContext reports whether a quote at this point is a transpose.
func (l *Scanner) transposeContext() bool {
	if l.space {
		return false
	}
	switch l.last {
	case Identifier, Number, RightParen, RightBrack, RightBrace, Transpose, End, True, False:
		return true
	}
	return false
}

// lexAny scans non-space items.
func lexAny(l *Scanner) stateFn {
	l.mark()
	switch r := l.next(); {
	case r == eof:
		return nil
	case r == ' ' || r == '\t' || r == '\r':
		l.space = true
		l.ignore()
		return lexAny
	case r == '\n':
		l.space = false
		if l.last == Newline {
			l.ignore()
			return lexAny
		}
		return l.emit(Newline)
	case r == '%':
		return lexComment
	case r == '.' && strings.HasPrefix(l.input[l.pos:], ".."):
		return lexContinuation
	case r == '.' && isDigit(l.peek()):
		l.backup()
		return lexNumber
	case isDigit(r):
		l.backup()
		return lexNumber
	case r == '\'':
		if l.transposeContext() {
			return l.emit(Transpose)
		}
		return lexQuote(r)
	case r == '"':
		return lexQuote(r)
	case r == '_' || unicode.IsLetter(r):
		l.backup()
		return lexIdentifier
	}
	l.backup()
	return lexOperator
}

// lexContinuation skips the rest of a line after "...".
func lexContinuation(l *Scanner) stateFn {
	for {
		r := l.next()
		if r == '\n' || r == eof {
			break
		}
	}
	l.space = true
	l.ignore()
	return lexAny
}

// lexComment scans a comment. The leading % is known to be present.
// A %{ alone on its line opens a block comment that runs to a matching
// %} alone on its line; such blocks nest.
func lexComment(l *Scanner) stateFn {
	if l.peek() == '{' && l.aloneOnLine(l.start, l.pos+1) {
		return lexBlockComment
	}
	for {
		r := l.peek()
		if r == '\n' || r == eof {
			break
		}
		l.next()
	}
	l.ignore()
	return lexAny
}

// aloneOnLine reports whether input[from:to] is the only non-blank text on its line.
func (l *Scanner) aloneOnLine(from, to int) bool {
	lineEnd := strings.IndexByte(l.input[to:], '\n')
	if lineEnd < 0 {
		lineEnd = len(l.input)
	} else {
		lineEnd += to
	}
	lineBegin := strings.LastIndexByte(l.input[:from], '\n') + 1
	return strings.TrimSpace(l.input[lineBegin:from]) == "" && strings.TrimSpace(l.input[to:lineEnd]) == ""
}

func lexBlockComment(l *Scanner) stateFn {
	depth := 0
	for l.pos < len(l.input) {
		lineEnd := strings.IndexByte(l.input[l.lineStart:], '\n')
		var line string
		if lineEnd < 0 {
			line = l.input[l.lineStart:]
		} else {
			line = l.input[l.lineStart : l.lineStart+lineEnd]
		}
		switch strings.TrimSpace(line) {
		case "%{":
			depth++
		case "%}":
			depth--
		}
		// Advance to the start of the next line.
		for {
			r := l.next()
			if r == '\n' || r == eof {
				break
			}
		}
		if depth == 0 {
			l.ignore()
			if l.last != Newline {
				l.token = Token{Type: Newline, Text: "\n", Line: l.startLine, Col: l.startCol, Offset: l.start}
				l.last = Newline
				l.space = false
				return nil
			}
			return lexAny
		}
	}
	return l.errorf("unterminated block comment")
}

// lexNumber scans a number: decimal digits, an optional fraction and exponent,
// and an optional imaginary suffix.
func lexNumber(l *Scanner) stateFn {
	const digits = "0123456789"
	l.acceptRun(digits)
	if l.peek() == '.' && !strings.ContainsRune("*/\\^'.", rune(l.peekAt(1))) {
		l.next()
		l.acceptRun(digits)
	}
	if c := l.peek(); c == 'e' || c == 'E' {
		n := 1
		if c1 := l.peekAt(1); c1 == '+' || c1 == '-' {
			n = 2
		}
		if isDigit(rune(l.peekAt(n))) {
			l.next()
			l.accept("+-")
			l.acceptRun(digits)
		}
	}
	text := l.input[l.start:l.pos]
	num, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return l.errorf("bad number syntax: %q", text)
	}
	imag := false
	if c := l.peek(); (c == 'i' || c == 'j') && !isAlphaNumeric(rune(l.peekAt(1))) {
		l.next()
		imag = true
	}
	if isAlphaNumeric(l.peek()) {
		l.next()
		return l.errorf("bad number syntax: %q", l.input[l.start:l.pos])
	}
	return l.emitToken(Token{Type: Number, Text: l.input[l.start:l.pos], Num: num, Imag: imag})
}

// lexQuote returns the state that scans a string delimited by quote.
// A doubled delimiter stands for itself.
func lexQuote(quote rune) stateFn {
	return func(l *Scanner) stateFn {
		var b strings.Builder
		for {
			r := l.next()
			switch r {
			case eof, '\n':
				return l.errorf("unterminated string")
			case quote:
				if l.peek() != quote {
					return l.emitToken(Token{Type: String, Text: b.String()})
				}
				l.next()
			}
			b.WriteRune(r)
		}
	}
}

// lexIdentifier scans an alphanumeric word, which may be a keyword.
func lexIdentifier(l *Scanner) stateFn {
	for isAlphaNumeric(l.peek()) {
		l.next()
	}
	word := l.input[l.start:l.pos]
	if t, ok := keywords[word]; ok {
		return l.emit(t)
	}
	return l.emit(Identifier)
}

// lexOperator scans punctuation and operators.
func lexOperator(l *Scanner) stateFn {
	r := l.next()
	two := func(second rune, t Type) stateFn {
		if l.peek() == second {
			l.next()
		}
		return l.emit(t)
	}
	switch r {
	case '+', '-', '*', '/', '\\', '^':
		return l.emit(Operator)
	case '.':
		switch l.peek() {
		case '*', '/', '\\', '^':
			l.next()
			return l.emit(Operator)
		case '\'':
			l.next()
			return l.emit(Transpose)
		}
		return l.emit(Dot)
	case '=':
		if l.peek() == '=' {
			l.next()
			return l.emit(Operator)
		}
		return l.emit(Assign)
	case '<', '>':
		return two('=', Operator)
	case '~', '!':
		if l.peek() == '=' {
			l.next()
			return l.emitToken(Token{Type: Operator, Text: "~="})
		}
		return l.emitToken(Token{Type: Operator, Text: "~"})
	case '&':
		return two('&', Operator)
	case '|':
		return two('|', Operator)
	case '(':
		return l.emit(LeftParen)
	case ')':
		return l.emit(RightParen)
	case '[':
		return l.emit(LeftBrack)
	case ']':
		return l.emit(RightBrack)
	case '{':
		return l.emit(LeftBrace)
	case '}':
		return l.emit(RightBrace)
	case ',':
		return l.emit(Comma)
	case ';':
		return l.emit(Semicolon)
	case ':':
		return l.emit(Colon)
	case '@':
		return l.emit(At)
	}
	return l.errorf("unexpected character %q", r)
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

// isAlphaNumeric reports whether r is an alphabetic, digit, or underscore.
func isAlphaNumeric(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
