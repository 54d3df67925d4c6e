// Recursive descent recognizer after N. Wirth's PL/0 parser (1976) and
// ORP (Oberon-07), Frederik Zipp's Go port.

// Package plp contains the syntax recognizer for PL/0 and MiniScala.
//
// The recognizer builds no syntax tree. Each nonterminal of the two grammars
// is a method of Parser; the only state is the lookahead token. Syntax
// errors are handed to a Sink together with the position of the lookahead
// token and parsing continues as if the expected symbol had been present.
package plp

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/fzipp/pl0-recognizer/pls"
)

// DefaultMaxDepth bounds the nesting of recursive rules.
const DefaultMaxDepth = 512

// TokenSource delivers tokens one at a time. Advance reads the next token
// and makes it current; Current returns it again without reading.
// Current().Sym is pls.SymNull before the first Advance.
type TokenSource interface {
	Advance() pls.Token
	Current() pls.Token
}

// Sink receives syntax errors.
type Sink interface {
	Report(pos pls.Pos, msg string)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(pos pls.Pos, msg string)

func (f SinkFunc) Report(pos pls.Pos, msg string) {
	f(pos, msg)
}

// Options configures a Parser. The zero value is usable.
type Options struct {
	// MaxDepth limits rule nesting; 0 means DefaultMaxDepth.
	MaxDepth int
	// Strict abandons the parse after the first syntax error.
	Strict bool
	Logger *slog.Logger
}

// Parser recognizes a token stream from a TokenSource. A Parser must not be
// used concurrently.
type Parser struct {
	ErrCnt int

	src  TokenSource
	sink Sink
	opts Options
	log  *slog.Logger

	tok   pls.Token // lookahead
	depth int
}

// bailout is panicked to abandon a parse; run recovers it.
type bailout struct{}

func NewParser(src TokenSource, sink Sink, opts Options) *Parser {
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = DefaultMaxDepth
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Parser{
		src:  src,
		sink: sink,
		opts: opts,
		log:  logger.With("component", "plp"),
	}
}

func (p *Parser) next() {
	p.tok = p.src.Advance()
}

func (p *Parser) mark(msg string) {
	p.ErrCnt++
	if p.sink != nil {
		p.sink.Report(p.tok.Pos, msg)
	}
	if p.opts.Strict {
		panic(bailout{})
	}
}

func (p *Parser) check(s pls.Sym, msg string) {
	if p.tok.Sym == s {
		p.next()
	} else {
		p.mark(msg)
	}
}

// enter and leave bracket the recursive rules.
func (p *Parser) enter() {
	p.depth++
	if p.depth > p.opts.MaxDepth {
		p.mark("NESTING TOO DEEP")
		panic(bailout{})
	}
}

func (p *Parser) leave() {
	p.depth--
}

func isRelationalOperator(sym pls.Sym) bool {
	switch sym {
	case pls.SymEql, pls.SymNeq, pls.SymLss, pls.SymGtr, pls.SymLeq, pls.SymGeq:
		return true
	}
	return false
}

// run primes the lookahead and invokes the top rule.
func (p *Parser) run(rule string, top func()) (ok bool) {
	p.ErrCnt = 0
	p.depth = 0
	p.log.Debug("recognition started", "rule", rule)
	defer func() {
		if rec := recover(); rec != nil {
			if _, isBailout := rec.(bailout); !isBailout {
				panic(rec)
			}
			p.log.Debug("recognition abandoned", "rule", rule, "pos", p.tok.Pos.String())
		}
		ok = p.ErrCnt == 0
		p.log.Debug("recognition finished", "rule", rule, "errors", p.ErrCnt, "accepted", ok)
	}()
	if cur := p.src.Current(); cur.Sym != pls.SymNull {
		p.tok = cur
	} else {
		p.next()
	}
	top()
	return ok
}

// RecognizeProgram recognizes a PL/0 program. It reports true if no
// syntax error was found.
func (p *Parser) RecognizeProgram() bool {
	return p.run("Program", p.program)
}

// RecognizeCompilationUnit recognizes a MiniScala compilation unit. It
// reports true if no syntax error was found.
func (p *Parser) RecognizeCompilationUnit() bool {
	return p.run("CompilationUnit", p.compilationUnit)
}

// Recognize selects the top rule for lang.
func Recognize(lang pls.Lang, src TokenSource, sink Sink, opts Options) (bool, error) {
	p := NewParser(src, sink, opts)
	switch lang {
	case pls.PL0:
		return p.RecognizeProgram(), nil
	case pls.MiniScala:
		return p.RecognizeCompilationUnit(), nil
	}
	return false, fmt.Errorf("plp: no grammar for language %v", lang)
}
