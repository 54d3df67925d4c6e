package plp

import "github.com/fzipp/pl0-recognizer/pls"

// PL/0

// program = block "." .
func (p *Parser) program() {
	p.block()
	if p.tok.Sym != pls.SymPeriod {
		p.mark(". EXPECTED")
	} else {
		p.next()
	}
}

// block = [const ident "=" integer {"," ident "=" integer} ";"]
//
//	[var ident {"," ident} ";"]
//	{procedure ident ";" block ";"}
//	statement .
func (p *Parser) block() {
	p.enter()
	defer p.leave()
	if p.tok.Sym == pls.SymConst {
		p.next()
		p.constDeclaration()
		for p.tok.Sym == pls.SymComma {
			p.next()
			p.constDeclaration()
		}
		p.check(pls.SymSemicolon, ", OR ; EXPECTED")
	}
	if p.tok.Sym == pls.SymVar {
		p.next()
		p.varDeclaration()
		for p.tok.Sym == pls.SymComma {
			p.next()
			p.varDeclaration()
		}
		p.check(pls.SymSemicolon, ", OR ; EXPECTED")
	}
	for p.tok.Sym == pls.SymProcedure {
		p.next()
		p.check(pls.SymIdent, "ID EXPECTED")
		p.check(pls.SymSemicolon, "; EXPECTED")
		p.block()
		p.check(pls.SymSemicolon, "; EXPECTED")
	}
	p.statement()
}

// ident "=" integer
func (p *Parser) constDeclaration() {
	if p.tok.Sym == pls.SymIdent {
		p.next()
		if p.tok.Sym == pls.SymEql {
			p.next()
			p.check(pls.SymInteger, "Integer expected")
		} else {
			p.mark("= expected")
		}
	} else {
		p.mark("id expected")
	}
}

func (p *Parser) varDeclaration() {
	p.check(pls.SymIdent, "ID EXPECTED")
}

// statement = [ident ":=" expression
//
//	| call ident
//	| begin statement {";" statement} end
//	| if condition then statement
//	| while condition do statement] .
func (p *Parser) statement() {
	p.enter()
	defer p.leave()
	switch p.tok.Sym {
	case pls.SymIdent:
		p.next()
		p.check(pls.SymBecomes, ":= EXPECTED")
		p.expression()
	case pls.SymCall:
		p.next()
		p.check(pls.SymIdent, "ID EXPECTED")
	case pls.SymBegin:
		p.next()
		p.statement()
		for p.tok.Sym == pls.SymSemicolon {
			p.next()
			p.statement()
		}
		p.check(pls.SymEnd, "END OR ; EXPECTED")
	case pls.SymIf:
		p.next()
		p.condition()
		p.check(pls.SymThen, "THEN EXPECTED")
		p.statement()
	case pls.SymWhile:
		p.next()
		p.condition()
		p.check(pls.SymDo, "DO EXPECTED")
		p.statement()
	default:
		// empty statement
	}
}

// condition = odd expression | expression ("="|"<>"|"<"|">"|"<="|">=") expression .
func (p *Parser) condition() {
	if p.tok.Sym == pls.SymOdd {
		p.next()
		p.expression()
		return
	}
	p.expression()
	if isRelationalOperator(p.tok.Sym) {
		p.next()
		p.expression()
	} else {
		p.mark("RELATIONAL OPERATOR EXPECTED")
	}
}

// expression = ["+"|"-"] term {("+"|"-") term} .
func (p *Parser) expression() {
	p.enter()
	defer p.leave()
	if p.tok.Sym == pls.SymPlus || p.tok.Sym == pls.SymMinus {
		p.next()
	}
	p.term()
	for p.tok.Sym == pls.SymPlus || p.tok.Sym == pls.SymMinus {
		p.next()
		p.term()
	}
}

// term = factor {("*"|"/") factor} .
func (p *Parser) term() {
	p.factor()
	for p.tok.Sym == pls.SymTimes || p.tok.Sym == pls.SymDiv {
		p.next()
		p.factor()
	}
}

// factor = ident | integer | "(" expression ")" .
func (p *Parser) factor() {
	switch p.tok.Sym {
	case pls.SymIdent, pls.SymInteger:
		p.next()
	case pls.SymLparen:
		p.next()
		p.expression()
		p.check(pls.SymRparen, "MISSING )")
	default:
		p.mark("UNRECOGNIZABLE SYMBOL")
	}
}
