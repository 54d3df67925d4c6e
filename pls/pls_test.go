package pls_test

import (
	"strings"
	"testing"

	"github.com/fzipp/pl0-recognizer/pls"
)

type lexError struct {
	pos pls.Pos
	msg string
}

func scanAll(src string, lang pls.Lang) ([]pls.Token, []lexError) {
	var errs []lexError
	s := pls.NewScanner(strings.NewReader(src), lang, func(pos pls.Pos, msg string) {
		errs = append(errs, lexError{pos, msg})
	})
	var toks []pls.Token
	for {
		tok := s.Advance()
		toks = append(toks, tok)
		if tok.Sym == pls.SymEOF {
			return toks, errs
		}
	}
}

func syms(toks []pls.Token) []pls.Sym {
	out := make([]pls.Sym, len(toks))
	for i, t := range toks {
		out[i] = t.Sym
	}
	return out
}

func TestScannerSymbols(t *testing.T) {
	tests := []struct {
		name string
		lang pls.Lang
		src  string
		want []pls.Sym
	}{
		{
			name: "pl0 declarations",
			lang: pls.PL0,
			src:  "const a = 5; var x, y;",
			want: []pls.Sym{
				pls.SymConst, pls.SymIdent, pls.SymEql, pls.SymInteger, pls.SymSemicolon,
				pls.SymVar, pls.SymIdent, pls.SymComma, pls.SymIdent, pls.SymSemicolon,
				pls.SymEOF,
			},
		},
		{
			name: "pl0 statements",
			lang: pls.PL0,
			src:  "begin call p; if odd x then x := x - 1 end.",
			want: []pls.Sym{
				pls.SymBegin, pls.SymCall, pls.SymIdent, pls.SymSemicolon,
				pls.SymIf, pls.SymOdd, pls.SymIdent, pls.SymThen,
				pls.SymIdent, pls.SymBecomes, pls.SymIdent, pls.SymMinus, pls.SymInteger,
				pls.SymEnd, pls.SymPeriod, pls.SymEOF,
			},
		},
		{
			name: "relations",
			lang: pls.PL0,
			src:  "= <> < > <= >=",
			want: []pls.Sym{
				pls.SymEql, pls.SymNeq, pls.SymLss, pls.SymGtr, pls.SymLeq, pls.SymGeq, pls.SymEOF,
			},
		},
		{
			name: "pl0 nested comment",
			lang: pls.PL0,
			src:  "x (* outer (* inner *) still outer *) y",
			want: []pls.Sym{pls.SymIdent, pls.SymIdent, pls.SymEOF},
		},
		{
			name: "miniscala keywords are identifiers in pl0",
			lang: pls.PL0,
			src:  "object def main",
			want: []pls.Sym{pls.SymIdent, pls.SymIdent, pls.SymIdent, pls.SymEOF},
		},
		{
			name: "pl0 keywords are identifiers in miniscala",
			lang: pls.MiniScala,
			src:  "begin end procedure",
			want: []pls.Sym{pls.SymIdent, pls.SymIdent, pls.SymIdent, pls.SymEOF},
		},
		{
			name: "miniscala main header",
			lang: pls.MiniScala,
			src:  "object O { def main(args: Array[String]) {",
			want: []pls.Sym{
				pls.SymObject, pls.SymIdent, pls.SymLbrace, pls.SymDef, pls.SymMain,
				pls.SymLparen, pls.SymArgs, pls.SymColon, pls.SymArray, pls.SymLbrak,
				pls.SymString, pls.SymRbrak, pls.SymRparen, pls.SymLbrace, pls.SymEOF,
			},
		},
		{
			name: "miniscala list operators",
			lang: pls.MiniScala,
			src:  "1 :: xs.tail :: Nil; ys.head; zs.isEmpty",
			want: []pls.Sym{
				pls.SymInteger, pls.SymDoubleColon, pls.SymIdent, pls.SymPeriod, pls.SymTail,
				pls.SymDoubleColon, pls.SymNil, pls.SymSemicolon,
				pls.SymIdent, pls.SymPeriod, pls.SymHead, pls.SymSemicolon,
				pls.SymIdent, pls.SymPeriod, pls.SymIsEmpty, pls.SymEOF,
			},
		},
		{
			name: "miniscala boolean operators",
			lang: pls.MiniScala,
			src:  "!a && b || true",
			want: []pls.Sym{
				pls.SymNot, pls.SymIdent, pls.SymAnd, pls.SymIdent, pls.SymOr, pls.SymBoolean, pls.SymEOF,
			},
		},
		{
			name: "readInt",
			lang: pls.MiniScala,
			src:  "x = scala.io.StdIn.readInt();",
			want: []pls.Sym{
				pls.SymIdent, pls.SymEql, pls.SymReadInt, pls.SymLparen, pls.SymRparen, pls.SymSemicolon, pls.SymEOF,
			},
		},
		{
			name: "scala prefix that is not readInt",
			lang: pls.MiniScala,
			src:  "scala.io.StdIn.readIntx",
			want: []pls.Sym{
				pls.SymIdent, pls.SymPeriod, pls.SymIdent, pls.SymPeriod, pls.SymIdent,
				pls.SymPeriod, pls.SymIdent, pls.SymEOF,
			},
		},
		{
			name: "miniscala comments",
			lang: pls.MiniScala,
			src:  "a // line\n/* block\n comment */ b / c",
			want: []pls.Sym{pls.SymIdent, pls.SymIdent, pls.SymDiv, pls.SymIdent, pls.SymEOF},
		},
		{
			name: "empty input",
			lang: pls.PL0,
			src:  "",
			want: []pls.Sym{pls.SymEOF},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toks, errs := scanAll(tt.src, tt.lang)
			if len(errs) != 0 {
				t.Fatalf("unexpected lexical errors: %v", errs)
			}
			got := syms(toks)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d tokens %v, want %d %v", len(got), got, len(tt.want), tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("token %d: got %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestScannerLiterals(t *testing.T) {
	toks, errs := scanAll(`count 42 "hello world" false`, pls.MiniScala)
	if len(errs) != 0 {
		t.Fatalf("unexpected lexical errors: %v", errs)
	}
	want := []struct {
		sym pls.Sym
		lit string
	}{
		{pls.SymIdent, "count"},
		{pls.SymInteger, "42"},
		{pls.SymStringLit, "hello world"},
		{pls.SymBoolean, "false"},
		{pls.SymEOF, ""},
	}
	for i, w := range want {
		if toks[i].Sym != w.sym || toks[i].Lit != w.lit {
			t.Errorf("token %d: got %v %q, want %v %q", i, toks[i].Sym, toks[i].Lit, w.sym, w.lit)
		}
	}
}

func TestScannerPositions(t *testing.T) {
	toks, _ := scanAll("var x;\n  x := 10\n.", pls.PL0)
	want := []pls.Pos{
		{Offset: 0, Line: 1, Col: 1},
		{Offset: 4, Line: 1, Col: 5},
		{Offset: 5, Line: 1, Col: 6},
		{Offset: 9, Line: 2, Col: 3},
		{Offset: 11, Line: 2, Col: 5},
		{Offset: 14, Line: 2, Col: 8},
		{Offset: 17, Line: 3, Col: 1},
		{Offset: 18, Line: 3, Col: 2},
	}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(toks), len(want))
	}
	for i, p := range want {
		if toks[i].Pos != p {
			t.Errorf("token %d (%v): pos = %+v, want %+v", i, toks[i], toks[i].Pos, p)
		}
	}
}

func TestScannerErrors(t *testing.T) {
	tests := []struct {
		name    string
		lang    pls.Lang
		src     string
		wantMsg string
		wantPos pls.Pos
		want    []pls.Sym
	}{
		{
			name:    "illegal character",
			lang:    pls.PL0,
			src:     "x # y",
			wantMsg: "illegal character",
			wantPos: pls.Pos{Offset: 2, Line: 1, Col: 3},
			want:    []pls.Sym{pls.SymIdent, pls.SymIdent, pls.SymEOF},
		},
		{
			name:    "single ampersand",
			lang:    pls.MiniScala,
			src:     "a & b",
			wantMsg: "illegal character",
			wantPos: pls.Pos{Offset: 2, Line: 1, Col: 3},
			want:    []pls.Sym{pls.SymIdent, pls.SymIdent, pls.SymEOF},
		},
		{
			name:    "number too large",
			lang:    pls.PL0,
			src:     "99999999999",
			wantMsg: "number too large",
			wantPos: pls.Pos{Offset: 0, Line: 1, Col: 1},
			want:    []pls.Sym{pls.SymInteger, pls.SymEOF},
		},
		{
			name:    "unterminated string",
			lang:    pls.MiniScala,
			src:     "\"abc\nx",
			wantMsg: "unterminated string",
			wantPos: pls.Pos{Offset: 0, Line: 1, Col: 1},
			want:    []pls.Sym{pls.SymStringLit, pls.SymIdent, pls.SymEOF},
		},
		{
			name:    "unterminated comment",
			lang:    pls.PL0,
			src:     "x (* never closed",
			wantMsg: "unterminated comment",
			wantPos: pls.Pos{Offset: 2, Line: 1, Col: 3},
			want:    []pls.Sym{pls.SymIdent, pls.SymEOF},
		},
		{
			name:    "string in pl0",
			lang:    pls.PL0,
			src:     `"`,
			wantMsg: "illegal character",
			wantPos: pls.Pos{Offset: 0, Line: 1, Col: 1},
			want:    []pls.Sym{pls.SymEOF},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toks, errs := scanAll(tt.src, tt.lang)
			if len(errs) != 1 {
				t.Fatalf("got %d errors %v, want 1", len(errs), errs)
			}
			if errs[0].msg != tt.wantMsg || errs[0].pos != tt.wantPos {
				t.Errorf("error = %v %q, want %v %q", errs[0].pos, errs[0].msg, tt.wantPos, tt.wantMsg)
			}
			got := syms(toks)
			if len(got) != len(tt.want) {
				t.Fatalf("got tokens %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("token %d: got %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestScannerCurrent(t *testing.T) {
	s := pls.NewScanner(strings.NewReader("a b"), pls.PL0, nil)
	if got := s.Current().Sym; got != pls.SymNull {
		t.Fatalf("Current() before Advance = %v, want null", got)
	}
	tok := s.Advance()
	if s.Current() != tok {
		t.Errorf("Current() = %v, want %v", s.Current(), tok)
	}
	s.Advance()
	s.Advance()
	if got := s.Advance().Sym; got != pls.SymEOF {
		t.Errorf("Advance() past end = %v, want EOF", got)
	}
}

func TestTokenString(t *testing.T) {
	tests := []struct {
		tok  pls.Token
		want string
	}{
		{pls.Token{Sym: pls.SymBegin}, "(keyword, begin)"},
		{pls.Token{Sym: pls.SymIdent, Lit: "x"}, "(identifier, x)"},
		{pls.Token{Sym: pls.SymInteger, Lit: "5"}, "(integer, 5)"},
		{pls.Token{Sym: pls.SymBecomes}, "(operator, :=)"},
		{pls.Token{Sym: pls.SymDoubleColon}, "(punctuation, ::)"},
		{pls.Token{Sym: pls.SymReadInt}, "(keyword, scala.io.StdIn.readInt)"},
		{pls.Token{Sym: pls.SymEOF}, "(eof, EOF)"},
	}
	for _, tt := range tests {
		if got := tt.tok.String(); got != tt.want {
			t.Errorf("%v.String() = %q, want %q", tt.tok.Sym, got, tt.want)
		}
	}
}

func TestParseLang(t *testing.T) {
	tests := []struct {
		in      string
		want    pls.Lang
		wantErr bool
	}{
		{"pl0", pls.PL0, false},
		{"PL/0", pls.PL0, false},
		{"object", pls.MiniScala, false},
		{"MiniScala", pls.MiniScala, false},
		{"cobol", 0, true},
	}
	for _, tt := range tests {
		got, err := pls.ParseLang(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLang(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseLang(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLangForFile(t *testing.T) {
	if l, ok := pls.LangForFile("prog/Square.PL0"); !ok || l != pls.PL0 {
		t.Errorf("LangForFile(.PL0) = %v, %v", l, ok)
	}
	if l, ok := pls.LangForFile("Sum.scala"); !ok || l != pls.MiniScala {
		t.Errorf("LangForFile(.scala) = %v, %v", l, ok)
	}
	if _, ok := pls.LangForFile("notes.txt"); ok {
		t.Error("LangForFile(.txt) ok = true, want false")
	}
}
