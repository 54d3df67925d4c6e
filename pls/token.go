package pls

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
)

// Sym is the class of a lexical token. One enumeration covers both
// languages; the scanner's Lang decides which keywords are recognised.
type Sym int

// lexical symbols; order is relevant
const (
	SymNull Sym = iota
	SymEOF

	// punctuation
	SymPeriod
	SymComma
	SymSemicolon
	SymColon
	SymLbrak
	SymRbrak
	SymLbrace
	SymRbrace
	SymDoubleColon

	// operators
	SymBecomes
	SymOr
	SymAnd
	SymNot
	SymEql
	SymNeq
	SymLss
	SymGtr
	SymLeq
	SymGeq
	SymPlus
	SymMinus
	SymTimes
	SymDiv
	SymLparen
	SymRparen

	// identifiers and literals
	SymIdent
	SymInteger
	SymStringLit
	SymBoolean

	// keywords
	SymConst
	SymVar
	SymProcedure
	SymCall
	SymBegin
	SymEnd
	SymIf
	SymThen
	SymWhile
	SymDo
	SymOdd
	SymObject
	SymDef
	SymMain
	SymArgs
	SymArray
	SymString
	SymInt
	SymList
	SymElse
	SymPrintln
	SymReturn
	SymHead
	SymTail
	SymIsEmpty
	SymNil
	SymReadInt

	symCount
)

var symNames = [symCount]string{
	SymNull:        "null",
	SymEOF:         "EOF",
	SymPeriod:      ".",
	SymComma:       ",",
	SymSemicolon:   ";",
	SymColon:       ":",
	SymLbrak:       "[",
	SymRbrak:       "]",
	SymLbrace:      "{",
	SymRbrace:      "}",
	SymDoubleColon: "::",
	SymBecomes:     ":=",
	SymOr:          "||",
	SymAnd:         "&&",
	SymNot:         "!",
	SymEql:         "=",
	SymNeq:         "<>",
	SymLss:         "<",
	SymGtr:         ">",
	SymLeq:         "<=",
	SymGeq:         ">=",
	SymPlus:        "+",
	SymMinus:       "-",
	SymTimes:       "*",
	SymDiv:         "/",
	SymLparen:      "(",
	SymRparen:      ")",
	SymIdent:       "identifier",
	SymInteger:     "integer",
	SymStringLit:   "string",
	SymBoolean:     "boolean",
	SymConst:       "const",
	SymVar:         "var",
	SymProcedure:   "procedure",
	SymCall:        "call",
	SymBegin:       "begin",
	SymEnd:         "end",
	SymIf:          "if",
	SymThen:        "then",
	SymWhile:       "while",
	SymDo:          "do",
	SymOdd:         "odd",
	SymObject:      "object",
	SymDef:         "def",
	SymMain:        "main",
	SymArgs:        "args",
	SymArray:       "Array",
	SymString:      "String",
	SymInt:         "Int",
	SymList:        "List",
	SymElse:        "else",
	SymPrintln:     "println",
	SymReturn:      "return",
	SymHead:        "head",
	SymTail:        "tail",
	SymIsEmpty:     "isEmpty",
	SymNil:         "Nil",
	SymReadInt:     "scala.io.StdIn.readInt",
}

func (s Sym) String() string {
	if s >= 0 && s < symCount {
		return symNames[s]
	}
	return "Sym(" + strconv.Itoa(int(s)) + ")"
}

// Class names the token class the way token listings print it.
func (s Sym) Class() string {
	switch {
	case s == SymEOF:
		return "eof"
	case s >= SymPeriod && s <= SymDoubleColon:
		return "punctuation"
	case s >= SymBecomes && s <= SymRparen:
		return "operator"
	case s == SymIdent:
		return "identifier"
	case s == SymInteger:
		return "integer"
	case s == SymStringLit:
		return "string"
	case s == SymBoolean:
		return "boolean"
	case s >= SymConst && s < symCount:
		return "keyword"
	}
	return "invalid"
}

// HasLit reports whether tokens of this class carry their lexeme.
func (s Sym) HasLit() bool {
	return s == SymIdent || s == SymInteger || s == SymStringLit || s == SymBoolean
}

// Pos is a source position. Line and Col are 1-based, Offset is a byte offset.
type Pos struct {
	Offset int
	Line   int
	Col    int
}

func (p Pos) IsValid() bool {
	return p.Line > 0
}

func (p Pos) String() string {
	if !p.IsValid() {
		return "-"
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Col)
}

// Token is a classified lexical unit. Lit is set for identifiers and literals.
type Token struct {
	Sym Sym
	Lit string
	Pos Pos
}

func (t Token) String() string {
	lexeme := t.Sym.String()
	if t.Sym.HasLit() {
		lexeme = t.Lit
	}
	return "(" + t.Sym.Class() + ", " + lexeme + ")"
}

// Lang selects one of the two recognised languages.
type Lang uint8

const (
	PL0 Lang = 1 + iota
	MiniScala
)

func (l Lang) String() string {
	switch l {
	case PL0:
		return "pl0"
	case MiniScala:
		return "miniscala"
	}
	return "Lang(" + strconv.Itoa(int(l)) + ")"
}

// ParseLang accepts the names used on the command line and in config files.
func ParseLang(s string) (Lang, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pl0", "pl/0":
		return PL0, nil
	case "miniscala", "object", "scala":
		return MiniScala, nil
	}
	return 0, fmt.Errorf("unknown language %q", s)
}

// LangForFile derives the language from a source file extension.
func LangForFile(path string) (Lang, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pl0":
		return PL0, true
	case ".scala":
		return MiniScala, true
	}
	return 0, false
}

var pl0KeyTab = map[string]Sym{
	"begin":     SymBegin,
	"call":      SymCall,
	"const":     SymConst,
	"do":        SymDo,
	"end":       SymEnd,
	"if":        SymIf,
	"odd":       SymOdd,
	"procedure": SymProcedure,
	"then":      SymThen,
	"var":       SymVar,
	"while":     SymWhile,
}

var scalaKeyTab = map[string]Sym{
	"Array":   SymArray,
	"Int":     SymInt,
	"List":    SymList,
	"Nil":     SymNil,
	"String":  SymString,
	"args":    SymArgs,
	"def":     SymDef,
	"else":    SymElse,
	"false":   SymBoolean,
	"head":    SymHead,
	"if":      SymIf,
	"isEmpty": SymIsEmpty,
	"main":    SymMain,
	"object":  SymObject,
	"println": SymPrintln,
	"return":  SymReturn,
	"tail":    SymTail,
	"true":    SymBoolean,
	"var":     SymVar,
	"while":   SymWhile,
}

func keyTab(lang Lang) map[string]Sym {
	if lang == MiniScala {
		return scalaKeyTab
	}
	return pl0KeyTab
}
