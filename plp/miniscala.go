package plp

import "github.com/fzipp/pl0-recognizer/pls"

// MiniScala

// CompilationUnit = object ident "{" {Def} MainDef "}" .
//
// Def and MainDef both begin with def; the word after it decides.
func (p *Parser) compilationUnit() {
	p.check(pls.SymObject, "OBJECT EXPECTED")
	p.check(pls.SymIdent, "IDENTIFIER EXPECTED")
	p.check(pls.SymLbrace, "{ EXPECTED")
	haveDef := false
	for p.tok.Sym == pls.SymDef {
		p.next()
		if p.tok.Sym == pls.SymMain {
			haveDef = true
			break
		}
		p.def()
	}
	p.mainDef(haveDef)
	p.check(pls.SymRbrace, "} EXPECTED")
	if p.tok.Sym != pls.SymEOF {
		p.mark("END OF FILE EXPECTED")
	}
}

// Def = def ident "(" [FormalArgList] ")" ":" Type "=" Expr ";" .
// The keyword def has been consumed.
func (p *Parser) def() {
	p.check(pls.SymIdent, "IDENTIFIER EXPECTED")
	p.check(pls.SymLparen, "( EXPECTED")
	if p.tok.Sym != pls.SymRparen {
		p.formalArgList()
	}
	p.check(pls.SymRparen, ") EXPECTED")
	p.check(pls.SymColon, ": EXPECTED")
	p.typ()
	p.check(pls.SymEql, "= EXPECTED")
	p.expr()
	p.check(pls.SymSemicolon, "; EXPECTED")
}

// FormalArgList = ident ":" Type {"," ident ":" Type} .
//
// A missing identifier or colon ends the list without resynchronizing.
func (p *Parser) formalArgList() {
	if p.tok.Sym != pls.SymIdent {
		p.mark("IDENTIFIER EXPECTED")
		return
	}
	p.next()
	if p.tok.Sym != pls.SymColon {
		p.mark(": EXPECTED")
		return
	}
	p.next()
	p.typ()
	for p.tok.Sym == pls.SymComma {
		p.next()
		if p.tok.Sym != pls.SymIdent {
			p.mark("IDENTIFIER EXPECTED")
			break
		}
		p.next()
		if p.tok.Sym != pls.SymColon {
			p.mark(": EXPECTED")
			break
		}
		p.next()
		p.typ()
	}
}

// MainDef = def main "(" args ":" Array "[" String "]" ")"
//
//	"{" {VarDef} Statement {Statement} [return ListExpr ";"] "}" .
//
// haveDef tells whether the keyword def has been consumed already.
func (p *Parser) mainDef(haveDef bool) {
	if !haveDef {
		p.check(pls.SymDef, "DEF EXPECTED")
	}
	p.check(pls.SymMain, "MAIN EXPECTED")
	p.check(pls.SymLparen, "( EXPECTED")
	p.check(pls.SymArgs, "ARGS EXPECTED")
	p.check(pls.SymColon, ": EXPECTED")
	p.check(pls.SymArray, "ARRAY EXPECTED")
	p.check(pls.SymLbrak, "[ EXPECTED")
	p.check(pls.SymString, "STRING EXPECTED")
	p.check(pls.SymRbrak, "] EXPECTED")
	p.check(pls.SymRparen, ") EXPECTED")
	p.check(pls.SymLbrace, "{ EXPECTED")
	for p.tok.Sym == pls.SymVar {
		p.varDef()
	}
	p.scalaStatement()
	for isStatementStart(p.tok.Sym) {
		p.scalaStatement()
	}
	if p.tok.Sym == pls.SymReturn {
		p.next()
		p.listExpr()
		p.check(pls.SymSemicolon, "; EXPECTED")
	}
	p.check(pls.SymRbrace, "} EXPECTED")
}

// VarDef = var ident ":" Type "=" Expr ";" .
func (p *Parser) varDef() {
	p.check(pls.SymVar, "VAR EXPECTED")
	p.check(pls.SymIdent, "IDENTIFIER EXPECTED")
	p.check(pls.SymColon, ": EXPECTED")
	p.typ()
	p.check(pls.SymEql, "= EXPECTED")
	p.expr()
	p.check(pls.SymSemicolon, "; EXPECTED")
}

// Type = Int | List "[" Int "]" .
func (p *Parser) typ() {
	switch p.tok.Sym {
	case pls.SymInt:
		p.next()
	case pls.SymList:
		p.next()
		p.check(pls.SymLbrak, "[ EXPECTED")
		p.check(pls.SymInt, "INT EXPECTED")
		p.check(pls.SymRbrak, "] EXPECTED")
	default:
		p.mark("TYPE EXPECTED")
	}
}

func isStatementStart(sym pls.Sym) bool {
	switch sym {
	case pls.SymIf, pls.SymWhile, pls.SymIdent, pls.SymPrintln, pls.SymLbrace:
		return true
	}
	return false
}

// Statement = if "(" Expr ")" Statement [else Statement]
//
//	| while "(" Expr ")" Statement
//	| ident "=" Expr ";"
//	| println "(" Expr ")" ";"
//	| "{" {Statement} "}" .
func (p *Parser) scalaStatement() {
	p.enter()
	defer p.leave()
	switch p.tok.Sym {
	case pls.SymIf:
		p.next()
		p.parenExpr()
		p.scalaStatement()
		if p.tok.Sym == pls.SymElse {
			p.next()
			p.scalaStatement()
		}
	case pls.SymWhile:
		p.next()
		p.parenExpr()
		p.scalaStatement()
	case pls.SymIdent:
		p.next()
		p.check(pls.SymEql, "= EXPECTED")
		p.expr()
		p.check(pls.SymSemicolon, "; EXPECTED")
	case pls.SymPrintln:
		p.next()
		p.parenExpr()
		p.check(pls.SymSemicolon, "; EXPECTED")
	case pls.SymLbrace:
		p.next()
		for isStatementStart(p.tok.Sym) {
			p.scalaStatement()
		}
		p.check(pls.SymRbrace, "} EXPECTED")
	default:
		p.mark("STATEMENT EXPECTED")
	}
}

func (p *Parser) parenExpr() {
	p.check(pls.SymLparen, "( EXPECTED")
	p.expr()
	p.check(pls.SymRparen, ") EXPECTED")
}

// Expr = AndExpr {"||" AndExpr} .
func (p *Parser) expr() {
	p.enter()
	defer p.leave()
	p.andExpr()
	for p.tok.Sym == pls.SymOr {
		p.next()
		p.andExpr()
	}
}

// AndExpr = RelExpr {"&&" RelExpr} .
func (p *Parser) andExpr() {
	p.relExpr()
	for p.tok.Sym == pls.SymAnd {
		p.next()
		p.relExpr()
	}
}

// RelExpr = ["!"] ListExpr [RelOper ListExpr] .
//
// Comparisons do not chain.
func (p *Parser) relExpr() {
	if p.tok.Sym == pls.SymNot {
		p.next()
	}
	p.listExpr()
	if isRelationalOperator(p.tok.Sym) {
		p.relOper()
		p.listExpr()
	}
}

// RelOper = "=" | "<>" | "<" | ">" | "<=" | ">=" .
func (p *Parser) relOper() {
	if isRelationalOperator(p.tok.Sym) {
		p.next()
	} else {
		p.mark("Relational operator expected")
	}
}

// ListExpr = AddExpr ["::" ListExpr] .
func (p *Parser) listExpr() {
	p.enter()
	defer p.leave()
	p.addExpr()
	if p.tok.Sym == pls.SymDoubleColon {
		p.next()
		p.listExpr()
	}
}

// AddExpr = MulExpr {("+"|"-") MulExpr} .
func (p *Parser) addExpr() {
	p.mulExpr()
	for p.tok.Sym == pls.SymPlus || p.tok.Sym == pls.SymMinus {
		p.next()
		p.mulExpr()
	}
}

// MulExpr = PrefixExpr {("*"|"/") PrefixExpr} .
func (p *Parser) mulExpr() {
	p.prefixExpr()
	for p.tok.Sym == pls.SymTimes || p.tok.Sym == pls.SymDiv {
		p.next()
		p.prefixExpr()
	}
}

// PrefixExpr = ["+"|"-"] SimpleExpr {ListMethodCall} .
func (p *Parser) prefixExpr() {
	if p.tok.Sym == pls.SymPlus || p.tok.Sym == pls.SymMinus {
		p.next()
	}
	p.simpleExpr()
	for p.tok.Sym == pls.SymPeriod || p.tok.Sym == pls.SymLparen {
		p.listMethodCall()
	}
}

// SimpleExpr = Literal | "(" Expr ")"
//
//	| ident ["[" [ListExpr {"," ListExpr}] "]"]
//	| scala.io.StdIn.readInt "(" ")" .
func (p *Parser) simpleExpr() {
	switch p.tok.Sym {
	case pls.SymInteger, pls.SymBoolean, pls.SymStringLit, pls.SymNil:
		p.next()
	case pls.SymLparen:
		p.next()
		p.expr()
		if p.tok.Sym != pls.SymRparen {
			p.mark("Expected ')'")
			return
		}
		p.next()
	case pls.SymIdent:
		p.next()
		if p.tok.Sym != pls.SymLbrak {
			return
		}
		p.next()
		if p.tok.Sym != pls.SymRbrak {
			p.listExpr()
			for p.tok.Sym == pls.SymComma {
				p.next()
				p.listExpr()
			}
			if p.tok.Sym != pls.SymRbrak {
				p.mark("Expected ']'")
				return
			}
		}
		p.next()
	case pls.SymReadInt:
		p.next()
		if p.tok.Sym != pls.SymLparen {
			p.mark("Expected '('")
			return
		}
		p.next()
		if p.tok.Sym != pls.SymRparen {
			p.mark("Expected ')'")
			return
		}
		p.next()
	default:
		p.mark("Expected simple expression")
	}
}

// ListMethodCall = "." (head | tail | isEmpty) .
//
// Any other token is reported and skipped.
func (p *Parser) listMethodCall() {
	if p.tok.Sym != pls.SymPeriod {
		p.mark("Expected . for list method call")
		p.next()
		return
	}
	p.next()
	switch p.tok.Sym {
	case pls.SymHead, pls.SymTail, pls.SymIsEmpty:
		p.next()
	default:
		p.mark("Expected head, tail, or isEmpty")
	}
}
