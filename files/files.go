// Package files reads and writes pre-scanned token streams (.tok files).
//
// The encoding follows Oberon symbol files: a header, then per token the
// symbol, line, column and offset as compact signed numbers (WriteNum) and,
// for identifiers and literals, the lexeme as a 0-terminated string.
package files

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"math/bits"

	"github.com/fzipp/pl0-recognizer/pls"
)

const (
	magic   = "PLTK"
	version = 1
)

// ErrFormat is returned for input that does not start with a token file
// header.
var ErrFormat = errors.New("files: not a token file")

// ioError carries a read or write failure out of the byte-level helpers.
type ioError struct{ err error }

// catch recovers an ioError and stores it in *err.
func catch(err *error) {
	if r := recover(); r != nil {
		e, ok := r.(ioError)
		if !ok {
			panic(r)
		}
		*err = e.err
	}
}

func ReadByte(r io.ByteReader) byte {
	b, err := r.ReadByte()
	if err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		panic(ioError{err})
	}
	return b
}

func ReadNum(r io.ByteReader) (x int32) {
	n := 32
	y := 0
	b := ReadByte(r)
	for b >= 0x80 {
		y = int(bits.RotateLeft32(uint32(y+int(b)-0x80), -7))
		n -= 7
		b = ReadByte(r)
	}
	if n <= 4 {
		x = int32(bits.RotateLeft32(uint32(y+int(b)%0x10), -4))
	} else {
		x = int32(int32(bits.RotateLeft32(uint32(y+int(b)), -7)) >> (n - 7))
	}
	return x
}

func ReadString(r io.ByteReader) string {
	var buf bytes.Buffer
	for {
		b := ReadByte(r)
		if b == 0 {
			break
		}
		buf.WriteByte(b)
	}
	return buf.String()
}

func WriteByte(w io.ByteWriter, ch byte) {
	err := w.WriteByte(ch)
	if err != nil {
		panic(ioError{err})
	}
}

func WriteNum(w io.ByteWriter, x int32) {
	for (x < -0x40) || (x >= 0x40) {
		WriteByte(w, byte(x)%0x80+0x80)
		x = x >> 7
	}
	WriteByte(w, byte(x)%0x80)
}

func WriteString(w io.ByteWriter, x string) {
	for _, b := range []byte(x) {
		WriteByte(w, b)
	}
	WriteByte(w, 0)
}

// TokenWriter encodes tokens into a token file.
type TokenWriter struct {
	w    *bufio.Writer
	lang pls.Lang
}

// NewTokenWriter writes the file header for lang. The header only reaches
// w on Flush.
func NewTokenWriter(w io.Writer, lang pls.Lang) (tw *TokenWriter, err error) {
	if lang != pls.PL0 && lang != pls.MiniScala {
		return nil, fmt.Errorf("files: cannot write tokens of language %v", lang)
	}
	defer catch(&err)
	bw := bufio.NewWriter(w)
	for i := 0; i < len(magic); i++ {
		WriteByte(bw, magic[i])
	}
	WriteByte(bw, version)
	WriteByte(bw, byte(lang))
	return &TokenWriter{w: bw, lang: lang}, nil
}

func (tw *TokenWriter) Write(tok pls.Token) (err error) {
	if tok.Sym.Class() == "invalid" {
		return fmt.Errorf("files: cannot write token %v", tok.Sym)
	}
	defer catch(&err)
	WriteNum(tw.w, int32(tok.Sym))
	WriteNum(tw.w, clamp(tok.Pos.Line))
	WriteNum(tw.w, clamp(tok.Pos.Col))
	WriteNum(tw.w, clamp(tok.Pos.Offset))
	if tok.Sym.HasLit() {
		if bytes.IndexByte([]byte(tok.Lit), 0) >= 0 {
			return fmt.Errorf("files: lexeme of %v at %v contains a NUL byte", tok.Sym, tok.Pos)
		}
		WriteString(tw.w, tok.Lit)
	}
	return nil
}

func clamp(x int) int32 {
	if x > math.MaxInt32 {
		return math.MaxInt32
	}
	if x < math.MinInt32 {
		return math.MinInt32
	}
	return int32(x)
}

// Advancer is the part of a token source WriteAll needs.
type Advancer interface {
	Advance() pls.Token
}

// WriteAll copies src up to and including its end-of-file token and
// flushes. n counts the tokens before end of file.
func (tw *TokenWriter) WriteAll(src Advancer) (n int, err error) {
	for {
		tok := src.Advance()
		if err := tw.Write(tok); err != nil {
			return n, err
		}
		if tok.Sym == pls.SymEOF {
			break
		}
		n++
	}
	return n, tw.Flush()
}

func (tw *TokenWriter) Flush() error {
	if err := tw.w.Flush(); err != nil {
		return fmt.Errorf("files: %w", err)
	}
	return nil
}

// TokenReader decodes a token file. It serves as the token source of a
// recognizer: Advance returns the next token and makes it current.
// A damaged or truncated stream ends with SymEOF; Err reports why.
type TokenReader struct {
	r    *bufio.Reader
	lang pls.Lang
	tok  pls.Token
	done bool
	err  error
}

// NewTokenReader reads and checks the header.
func NewTokenReader(r io.Reader) (tr *TokenReader, err error) {
	br := bufio.NewReader(r)
	defer func() {
		if err != nil {
			if errors.Is(err, io.ErrUnexpectedEOF) {
				err = ErrFormat
			}
			tr = nil
		}
	}()
	defer catch(&err)
	for i := 0; i < len(magic); i++ {
		if ReadByte(br) != magic[i] {
			return nil, ErrFormat
		}
	}
	if v := ReadByte(br); v != version {
		return nil, fmt.Errorf("files: unsupported token file version %d", v)
	}
	lang := pls.Lang(ReadByte(br))
	if lang != pls.PL0 && lang != pls.MiniScala {
		return nil, fmt.Errorf("files: unknown language %d in token file", lang)
	}
	return &TokenReader{r: br, lang: lang}, nil
}

// Lang is the language recorded in the header.
func (tr *TokenReader) Lang() pls.Lang {
	return tr.lang
}

func (tr *TokenReader) Current() pls.Token {
	return tr.tok
}

func (tr *TokenReader) Advance() pls.Token {
	if tr.done {
		return tr.tok
	}
	tok, err := tr.read()
	if err != nil {
		tr.err = err
		tr.done = true
		tr.tok = pls.Token{Sym: pls.SymEOF, Pos: tr.tok.Pos}
		return tr.tok
	}
	tr.tok = tok
	if tok.Sym == pls.SymEOF {
		tr.done = true
	}
	return tok
}

// Err returns the decoding error that ended the stream, if any.
func (tr *TokenReader) Err() error {
	return tr.err
}

func (tr *TokenReader) read() (tok pls.Token, err error) {
	defer func() {
		if err != nil {
			err = fmt.Errorf("files: reading token after %v: %w", tr.tok.Pos, err)
		}
	}()
	defer catch(&err)
	sym := pls.Sym(ReadNum(tr.r))
	if sym == pls.SymNull || sym.Class() == "invalid" {
		return tok, fmt.Errorf("bad symbol %d", int(sym))
	}
	tok.Sym = sym
	tok.Pos.Line = int(ReadNum(tr.r))
	tok.Pos.Col = int(ReadNum(tr.r))
	tok.Pos.Offset = int(ReadNum(tr.r))
	if sym.HasLit() {
		tok.Lit = ReadString(tr.r)
	}
	return tok, nil
}
