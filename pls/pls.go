// PL/0 after N. Wirth, Algorithms + Data Structures = Programs, 1976;
// MiniScala after the course notes of the same name.
// Scanner modelled on NW's ORS (Oberon-07), Frederik Zipp's Go port.

// Package pls contains the lexical scanner for the PL/0 and MiniScala
// recognizer.
package pls

import (
	"bufio"
	"bytes"
	"io"
	"math"
	"strconv"
)

const (
	IdLen         = 32
	stringBufSize = 256
)

// readIntPath is scanned as a single SymReadInt token in MiniScala.
const readIntPath = "scala.io.StdIn.readInt"

// ErrorHandler receives lexical errors. The scanner skips the offending
// input and carries on.
type ErrorHandler func(pos Pos, msg string)

// Scanner does lexical analysis. Input is program text, output is a
// sequence of tokens, i.e. identifiers, numbers, strings, keywords and
// special symbols. Comments and white space are skipped.
// Advance delivers the next token, Current the token last delivered.
// A Scanner with an unknown Lang uses the PL/0 keyword table.
type Scanner struct {
	ErrCnt int

	lang Lang
	keys map[string]Sym
	errh ErrorHandler

	ch   byte // last character read
	eot  bool
	off  int // position of ch
	line int
	col  int
	r    *bufio.Reader
	tok  Token
}

func NewScanner(r io.Reader, lang Lang, errh ErrorHandler) *Scanner {
	s := &Scanner{
		lang: lang,
		keys: keyTab(lang),
		errh: errh,
		off:  -1,
		line: 1,
		r:    bufio.NewReader(r),
	}
	s.nextCh()
	return s
}

func (s *Scanner) Lang() Lang {
	return s.lang
}

// Current returns the token last delivered by Advance; its Sym is
// SymNull before the first call.
func (s *Scanner) Current() Token {
	return s.tok
}

// Advance scans the next token and makes it current. At the end of the
// input it keeps returning SymEOF.
func (s *Scanner) Advance() Token {
	s.tok = s.get()
	return s.tok
}

func (s *Scanner) pos() Pos {
	return Pos{Offset: s.off, Line: s.line, Col: s.col}
}

func (s *Scanner) mark(pos Pos, msg string) {
	s.ErrCnt++
	if s.errh != nil {
		s.errh(pos, msg)
	}
}

func (s *Scanner) nextCh() {
	if s.eot {
		return
	}
	if s.ch == '\n' {
		s.line++
		s.col = 0
	}
	s.off++
	s.col++
	b, err := s.r.ReadByte()
	if err != nil {
		s.eot = true
		s.ch = 0
		if err != io.EOF {
			s.mark(s.pos(), "read error: "+err.Error())
		}
		return
	}
	s.ch = b
}

func isLetter(ch byte) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z'
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}

func (s *Scanner) isIdentCh(ch byte) bool {
	return isLetter(ch) || isDigit(ch) || ch == '_' && s.lang == MiniScala
}

func (s *Scanner) identifier() (Sym, string) {
	var buf bytes.Buffer
	for {
		if buf.Len() < IdLen-1 {
			buf.WriteByte(s.ch)
		}
		s.nextCh()
		if !s.isIdentCh(s.ch) {
			break
		}
	}
	id := buf.String()
	if id == "scala" && s.lang == MiniScala && s.ch == '.' && s.readIntTail() {
		return SymReadInt, ""
	}
	// lookup keyword
	if sym, ok := s.keys[id]; ok {
		if sym == SymBoolean {
			return sym, id
		}
		return sym, ""
	}
	return SymIdent, id
}

// readIntTail consumes ".io.StdIn.readInt" if it follows an identifier
// "scala"; s.ch is the leading period.
func (s *Scanner) readIntTail() bool {
	tail := readIntPath[len("scala"):]
	rest := tail[1:]
	b, _ := s.r.Peek(len(rest) + 1)
	if len(b) < len(rest) || string(b[:len(rest)]) != rest {
		return false
	}
	if len(b) > len(rest) && s.isIdentCh(b[len(rest)]) {
		return false
	}
	for i := 0; i < len(tail); i++ {
		s.nextCh()
	}
	return true
}

func (s *Scanner) number() (Sym, string) {
	pos := s.pos()
	var buf bytes.Buffer
	for isDigit(s.ch) {
		buf.WriteByte(s.ch)
		s.nextCh()
	}
	lit := buf.String()
	if _, err := strconv.ParseInt(lit, 10, 32); err != nil {
		s.mark(pos, "number too large")
		lit = strconv.Itoa(math.MaxInt32)
	}
	return SymInteger, lit
}

// stringLit reads a MiniScala string; the opening quote is already consumed.
func (s *Scanner) stringLit(pos Pos) (Sym, string) {
	var buf bytes.Buffer
	for !s.eot && s.ch != '"' && s.ch != '\n' {
		if buf.Len() < stringBufSize-1 {
			buf.WriteByte(s.ch)
		}
		s.nextCh()
	}
	if s.ch != '"' {
		s.mark(pos, "unterminated string")
		return SymStringLit, buf.String()
	}
	s.nextCh()
	return SymStringLit, buf.String()
}

// comment skips a PL/0 comment (* ... *); comments nest. s.ch is the '*'.
func (s *Scanner) comment(pos Pos) {
	s.nextCh()
	for {
		for !s.eot && s.ch != '*' {
			if s.ch == '(' {
				p := s.pos()
				s.nextCh()
				if s.ch == '*' {
					s.comment(p)
				}
			} else {
				s.nextCh()
			}
		}
		for s.ch == '*' {
			s.nextCh()
		}
		if s.ch == ')' || s.eot {
			break
		}
	}
	if !s.eot {
		s.nextCh()
	} else {
		s.mark(pos, "unterminated comment")
	}
}

// blockComment skips a MiniScala comment /* ... */. s.ch is the '*'.
func (s *Scanner) blockComment(pos Pos) {
	s.nextCh()
	for !s.eot {
		if s.ch == '*' {
			s.nextCh()
			if s.ch == '/' {
				s.nextCh()
				return
			}
			continue
		}
		s.nextCh()
	}
	s.mark(pos, "unterminated comment")
}

func (s *Scanner) lineComment() {
	for !s.eot && s.ch != '\n' {
		s.nextCh()
	}
}

func (s *Scanner) get() Token {
	for {
		for !s.eot && s.ch <= ' ' {
			s.nextCh()
		}
		pos := s.pos()
		if s.eot {
			return Token{Sym: SymEOF, Pos: pos}
		}
		if sym, lit := s.scan(pos); sym != SymNull {
			return Token{Sym: sym, Lit: lit, Pos: pos}
		}
	}
}

// scan reads one token starting at s.ch. It returns SymNull for comments
// and for illegal characters.
func (s *Scanner) scan(pos Pos) (Sym, string) {
	switch {
	case isLetter(s.ch):
		return s.identifier()
	case isDigit(s.ch):
		return s.number()
	}
	ch := s.ch
	s.nextCh()
	switch ch {
	case '.':
		return SymPeriod, ""
	case ',':
		return SymComma, ""
	case ';':
		return SymSemicolon, ""
	case '[':
		return SymLbrak, ""
	case ']':
		return SymRbrak, ""
	case '{':
		return SymLbrace, ""
	case '}':
		return SymRbrace, ""
	case ')':
		return SymRparen, ""
	case '+':
		return SymPlus, ""
	case '-':
		return SymMinus, ""
	case '*':
		return SymTimes, ""
	case '=':
		return SymEql, ""
	case '!':
		return SymNot, ""
	case '(':
		if s.ch == '*' && s.lang != MiniScala {
			s.comment(pos)
			return SymNull, ""
		}
		return SymLparen, ""
	case '/':
		if s.lang == MiniScala {
			switch s.ch {
			case '/':
				s.lineComment()
				return SymNull, ""
			case '*':
				s.blockComment(pos)
				return SymNull, ""
			}
		}
		return SymDiv, ""
	case ':':
		switch s.ch {
		case '=':
			s.nextCh()
			return SymBecomes, ""
		case ':':
			s.nextCh()
			return SymDoubleColon, ""
		}
		return SymColon, ""
	case '<':
		switch s.ch {
		case '=':
			s.nextCh()
			return SymLeq, ""
		case '>':
			s.nextCh()
			return SymNeq, ""
		}
		return SymLss, ""
	case '>':
		if s.ch == '=' {
			s.nextCh()
			return SymGeq, ""
		}
		return SymGtr, ""
	case '&':
		if s.ch == '&' {
			s.nextCh()
			return SymAnd, ""
		}
	case '|':
		if s.ch == '|' {
			s.nextCh()
			return SymOr, ""
		}
	case '"':
		if s.lang == MiniScala {
			return s.stringLit(pos)
		}
	}
	s.mark(pos, "illegal character")
	return SymNull, ""
}
