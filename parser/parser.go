/*
File    : go-mix/parser/parser.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/

// Package parser turns a token sequence into an ast.Program using
// recursive-descent with precedence climbing for expressions. The parser
// does not recover from errors: the first error aborts the parse.
package parser

import (
	"fmt"

	"github.com/gomix-lang/gomix/ast"
	"github.com/gomix-lang/gomix/diag"
	"github.com/gomix-lang/gomix/token"
)

// Parser consumes a fixed token slice plus the original source (for span
// synthesis on synthetic/EOF spans) and builds an AST.
type Parser struct {
	Toks   []token.Token
	Pos    int
	Src    string
	Errors []*diag.Error
}

// New builds a Parser over toks scanned from src.
func New(toks []token.Token, src string) *Parser {
	return &Parser{Toks: toks, Pos: 0, Src: src}
}

func (p *Parser) HasErrors() bool { return len(p.Errors) > 0 }

func (p *Parser) cur() token.Token { return p.Toks[p.Pos] }
func (p *Parser) atEnd() bool      { return p.cur().Type == token.EOF }
func (p *Parser) check(t token.Type) bool {
	return p.cur().Type == t
}

func (p *Parser) advance() token.Token {
	tok := p.cur()
	if !p.atEnd() {
		p.Pos++
	}
	return tok
}

func (p *Parser) match(types ...token.Type) bool {
	for _, t := range types {
		if p.check(t) {
			p.advance()
			return true
		}
	}
	return false
}

// expect consumes the current token if it has type t, else records a
// parse error at the current token's span and returns (zero, false).
func (p *Parser) expect(t token.Type, context string) (token.Token, bool) {
	if p.check(t) {
		return p.advance(), true
	}
	p.errorf(p.cur().Span, "expected %s %s", t.TypeName(), context)
	return token.Token{}, false
}

func (p *Parser) errorf(span diag.Span, format string, args ...interface{}) {
	p.Errors = append(p.Errors, &diag.Error{
		Message: fmt.Sprintf(format, args...),
		Source:  p.Src,
		Span:    span,
	})
}

func spanFrom(start, end diag.Span) diag.Span {
	return diag.NewSpan(start.Offset, end.End())
}

// Parse consumes the whole token stream and returns a Program, or nil
// with p.Errors populated on the first failure.
func Parse(toks []token.Token, src string) (*ast.Program, []*diag.Error) {
	p := New(toks, src)
	prog := p.parseProgram()
	if p.HasErrors() {
		return nil, p.Errors
	}
	return prog, nil
}

func (p *Parser) parseProgram() *ast.Program {
	start := p.cur().Span
	var stmts []ast.Stmt
	for !p.atEnd() {
		s := p.parseDeclaration()
		if p.HasErrors() {
			return nil
		}
		stmts = append(stmts, s)
	}
	end := start
	if len(stmts) > 0 {
		end = stmts[len(stmts)-1].Span()
	}
	return &ast.Program{SpanVal: spanFrom(start, end), Stmts: stmts}
}

func (p *Parser) parseDeclaration() ast.Stmt {
	switch {
	case p.check(token.VAR):
		return p.parseVarStmt()
	case p.check(token.FN):
		return p.parseFunctionDeclaration()
	default:
		return p.parseStatement()
	}
}

func (p *Parser) parseVarStmt() ast.Stmt {
	kw := p.advance() // 'var'
	nameTok, ok := p.expect(token.IDENTIFIER, "after 'var'")
	if !ok {
		return nil
	}
	name := &ast.Identifier{SpanVal: nameTok.Span, Name: nameTok.Text(p.Src)}
	var init ast.Expr
	if p.match(token.ASSIGN) {
		init = p.parseExpression()
		if p.HasErrors() {
			return nil
		}
	}
	semi, ok := p.expect(token.SEMICOLON, "after variable declaration")
	if !ok {
		return nil
	}
	return &ast.VarStmt{SpanVal: spanFrom(kw.Span, semi.Span), Name: name, Init: init}
}

func (p *Parser) parseFunctionDeclaration() ast.Stmt {
	kw := p.advance() // 'fn'
	nameTok, ok := p.expect(token.IDENTIFIER, "after 'fn'")
	if !ok {
		return nil
	}
	name := &ast.Identifier{SpanVal: nameTok.Span, Name: nameTok.Text(p.Src)}
	fn := p.parseFunctionTail(kw.Span)
	if p.HasErrors() {
		return nil
	}
	return &ast.FunctionDeclaration{SpanVal: spanFrom(kw.Span, fn.Span()), Name: name, Fn: fn}
}

// parseFunctionTail parses `( params ) block`, used for both the `fn`
// declaration sugar and anonymous function expressions.
func (p *Parser) parseFunctionTail(start diag.Span) *ast.FunctionExpr {
	if _, ok := p.expect(token.LEFT_PAREN, "after function name"); !ok {
		return nil
	}
	var params []*ast.Identifier
	if !p.check(token.RIGHT_PAREN) {
		for {
			tok, ok := p.expect(token.IDENTIFIER, "as parameter name")
			if !ok {
				return nil
			}
			params = append(params, &ast.Identifier{SpanVal: tok.Span, Name: tok.Text(p.Src)})
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	if _, ok := p.expect(token.RIGHT_PAREN, "after parameters"); !ok {
		return nil
	}
	body := p.parseBlock()
	if p.HasErrors() {
		return nil
	}
	return &ast.FunctionExpr{SpanVal: spanFrom(start, body.Span()), Params: params, Body: body}
}

func (p *Parser) parseStatement() ast.Stmt {
	switch {
	case p.check(token.LEFT_BRACE):
		return p.parseBlock()
	case p.check(token.IF):
		return p.parseIf()
	case p.check(token.WHILE):
		return p.parseWhile()
	case p.check(token.FOR):
		return p.parseFor()
	case p.check(token.BREAK):
		return p.parseBreak()
	case p.check(token.CONTINUE):
		return p.parseContinue()
	case p.check(token.RETURN):
		return p.parseReturn()
	case p.check(token.ASSERT):
		return p.parseAssert()
	default:
		return p.parseExprOrAssignStmt()
	}
}

func (p *Parser) parseBlock() *ast.BlockStmt {
	open, ok := p.expect(token.LEFT_BRACE, "to start block")
	if !ok {
		return nil
	}
	var stmts []ast.Stmt
	for !p.check(token.RIGHT_BRACE) && !p.atEnd() {
		s := p.parseDeclaration()
		if p.HasErrors() {
			return nil
		}
		stmts = append(stmts, s)
	}
	closeTok, ok := p.expect(token.RIGHT_BRACE, "to close block")
	if !ok {
		return nil
	}
	return &ast.BlockStmt{SpanVal: spanFrom(open.Span, closeTok.Span), Stmts: stmts}
}

func (p *Parser) parseIf() ast.Stmt {
	kw := p.advance() // 'if'
	test := p.parseExpression()
	if p.HasErrors() {
		return nil
	}
	then := p.parseBlock()
	if p.HasErrors() {
		return nil
	}
	var elseNode ast.Node
	end := then.Span()
	if p.match(token.ELSE) {
		if p.check(token.IF) {
			elseNode = p.parseIf()
		} else {
			elseNode = p.parseBlock()
		}
		if p.HasErrors() {
			return nil
		}
		end = elseNode.Span()
	}
	return &ast.IfStmt{SpanVal: spanFrom(kw.Span, end), Test: test, Then: then, Else: elseNode}
}

func (p *Parser) parseWhile() ast.Stmt {
	kw := p.advance() // 'while'
	test := p.parseExpression()
	if p.HasErrors() {
		return nil
	}
	body := p.parseBlock()
	if p.HasErrors() {
		return nil
	}
	return &ast.WhileStmt{SpanVal: spanFrom(kw.Span, body.Span()), Test: test, Body: body}
}

func (p *Parser) parseFor() ast.Stmt {
	kw := p.advance() // 'for'
	nameTok, ok := p.expect(token.IDENTIFIER, "as loop variable")
	if !ok {
		return nil
	}
	v := &ast.Identifier{SpanVal: nameTok.Span, Name: nameTok.Text(p.Src)}
	if _, ok := p.expect(token.IN, "after loop variable"); !ok {
		return nil
	}
	iterable := p.parseExpression()
	if p.HasErrors() {
		return nil
	}
	body := p.parseBlock()
	if p.HasErrors() {
		return nil
	}
	return &ast.ForStmt{SpanVal: spanFrom(kw.Span, body.Span()), Var: v, Iterable: iterable, Body: body}
}

func (p *Parser) parseBreak() ast.Stmt {
	kw := p.advance()
	semi, ok := p.expect(token.SEMICOLON, "after 'break'")
	if !ok {
		return nil
	}
	return &ast.BreakStmt{SpanVal: spanFrom(kw.Span, semi.Span)}
}

func (p *Parser) parseContinue() ast.Stmt {
	kw := p.advance()
	semi, ok := p.expect(token.SEMICOLON, "after 'continue'")
	if !ok {
		return nil
	}
	return &ast.ContinueStmt{SpanVal: spanFrom(kw.Span, semi.Span)}
}

func (p *Parser) parseReturn() ast.Stmt {
	kw := p.advance()
	var expr ast.Expr
	if !p.check(token.SEMICOLON) {
		expr = p.parseExpression()
		if p.HasErrors() {
			return nil
		}
	}
	semi, ok := p.expect(token.SEMICOLON, "after return value")
	if !ok {
		return nil
	}
	return &ast.ReturnStmt{SpanVal: spanFrom(kw.Span, semi.Span), Expr: expr}
}

func (p *Parser) parseAssert() ast.Stmt {
	kw := p.advance()
	expr := p.parseExpression()
	if p.HasErrors() {
		return nil
	}
	semi, ok := p.expect(token.SEMICOLON, "after assert expression")
	if !ok {
		return nil
	}
	return &ast.AssertStmt{SpanVal: spanFrom(kw.Span, semi.Span), Expr: expr}
}

// parseExprOrAssignStmt handles both `<expr>;` and `<place> = <expr>;`,
// since both start with an expression.
func (p *Parser) parseExprOrAssignStmt() ast.Stmt {
	start := p.cur().Span
	expr := p.parseExpression()
	if p.HasErrors() {
		return nil
	}
	if p.match(token.ASSIGN) {
		place, ok := expr.(*ast.Identifier)
		if !ok {
			p.errorf(expr.Span(), "invalid assignment target")
			return nil
		}
		value := p.parseExpression()
		if p.HasErrors() {
			return nil
		}
		semi, ok := p.expect(token.SEMICOLON, "after assignment")
		if !ok {
			return nil
		}
		return &ast.AssignStmt{SpanVal: spanFrom(start, semi.Span), Place: place, Value: value}
	}
	semi, ok := p.expect(token.SEMICOLON, "after expression")
	if !ok {
		return nil
	}
	return &ast.ExpressionStmt{SpanVal: spanFrom(start, semi.Span), Expr: expr}
}

// --- Expressions: precedence climbing, lowest to highest ---
// logical-or -> logical-and -> equality -> comparison -> term -> factor -> unary -> call -> primary

func (p *Parser) parseExpression() ast.Expr {
	return p.parseOr()
}

func (p *Parser) parseOr() ast.Expr {
	left := p.parseAnd()
	if left == nil {
		return nil
	}
	for p.check(token.OR) {
		p.advance()
		right := p.parseAnd()
		if right == nil {
			return nil
		}
		left = &ast.LogicalExpr{SpanVal: spanFrom(left.Span(), right.Span()), Op: ast.OpOr, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseAnd() ast.Expr {
	left := p.parseEquality()
	if left == nil {
		return nil
	}
	for p.check(token.AND) {
		p.advance()
		right := p.parseEquality()
		if right == nil {
			return nil
		}
		left = &ast.LogicalExpr{SpanVal: spanFrom(left.Span(), right.Span()), Op: ast.OpAnd, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseEquality() ast.Expr {
	left := p.parseComparison()
	if left == nil {
		return nil
	}
	for p.check(token.EQUAL) || p.check(token.NOT_EQUAL) {
		opTok := p.advance()
		op := ast.OpEqual
		if opTok.Type == token.NOT_EQUAL {
			op = ast.OpNotEqual
		}
		right := p.parseComparison()
		if right == nil {
			return nil
		}
		left = &ast.BinaryExpr{SpanVal: spanFrom(left.Span(), right.Span()), Op: op, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseComparison() ast.Expr {
	left := p.parseTerm()
	if left == nil {
		return nil
	}
	for p.check(token.LESS) || p.check(token.LESS_EQUAL) || p.check(token.GREATER) || p.check(token.GREATER_EQUAL) {
		opTok := p.advance()
		var op ast.BinaryOp
		switch opTok.Type {
		case token.LESS:
			op = ast.OpLess
		case token.LESS_EQUAL:
			op = ast.OpLessOrEqual
		case token.GREATER:
			op = ast.OpGreater
		case token.GREATER_EQUAL:
			op = ast.OpGreaterOrEqual
		}
		right := p.parseTerm()
		if right == nil {
			return nil
		}
		left = &ast.BinaryExpr{SpanVal: spanFrom(left.Span(), right.Span()), Op: op, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseTerm() ast.Expr {
	left := p.parseFactor()
	if left == nil {
		return nil
	}
	for p.check(token.PLUS) || p.check(token.MINUS) {
		opTok := p.advance()
		op := ast.OpAdd
		if opTok.Type == token.MINUS {
			op = ast.OpSubtract
		}
		right := p.parseFactor()
		if right == nil {
			return nil
		}
		left = &ast.BinaryExpr{SpanVal: spanFrom(left.Span(), right.Span()), Op: op, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseFactor() ast.Expr {
	left := p.parseUnary()
	if left == nil {
		return nil
	}
	for p.check(token.STAR) || p.check(token.SLASH) || p.check(token.PERCENT) {
		opTok := p.advance()
		var op ast.BinaryOp
		switch opTok.Type {
		case token.STAR:
			op = ast.OpMultiply
		case token.SLASH:
			op = ast.OpDivide
		case token.PERCENT:
			op = ast.OpModulo
		}
		right := p.parseUnary()
		if right == nil {
			return nil
		}
		left = &ast.BinaryExpr{SpanVal: spanFrom(left.Span(), right.Span()), Op: op, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseUnary() ast.Expr {
	if p.check(token.MINUS) || p.check(token.NOT) {
		opTok := p.advance()
		op := ast.UnaryMinus
		if opTok.Type == token.NOT {
			op = ast.UnaryNot
		}
		operand := p.parseUnary()
		if operand == nil {
			return nil
		}
		return &ast.UnaryExpr{SpanVal: spanFrom(opTok.Span, operand.Span()), Op: op, Expr: operand}
	}
	return p.parseCall()
}

func (p *Parser) parseCall() ast.Expr {
	expr := p.parsePrimary()
	if expr == nil {
		return nil
	}
	for p.check(token.LEFT_PAREN) {
		p.advance()
		var args []ast.Expr
		if !p.check(token.RIGHT_PAREN) {
			for {
				arg := p.parseExpression()
				if arg == nil {
					return nil
				}
				args = append(args, arg)
				if !p.match(token.COMMA) {
					break
				}
			}
		}
		closeTok, ok := p.expect(token.RIGHT_PAREN, "after arguments")
		if !ok {
			return nil
		}
		expr = &ast.CallExpr{SpanVal: spanFrom(expr.Span(), closeTok.Span), Callee: expr, Args: args}
	}
	return expr
}

func (p *Parser) parsePrimary() ast.Expr {
	tok := p.cur()
	switch tok.Type {
	case token.NUMBER:
		p.advance()
		return &ast.NumberLiteral{SpanVal: tok.Span, Value: tok.Value.Number}
	case token.STRING:
		p.advance()
		return &ast.StringLiteral{SpanVal: tok.Span, Value: tok.Value.Str}
	case token.TRUE, token.FALSE:
		p.advance()
		return &ast.BoolLiteral{SpanVal: tok.Span, Value: tok.Value.Bool}
	case token.NIL:
		p.advance()
		return &ast.NilLiteral{SpanVal: tok.Span}
	case token.IDENTIFIER:
		p.advance()
		return &ast.Identifier{SpanVal: tok.Span, Name: tok.Text(p.Src)}
	case token.LEFT_PAREN:
		p.advance()
		inner := p.parseExpression()
		if inner == nil {
			return nil
		}
		closeTok, ok := p.expect(token.RIGHT_PAREN, "to close group")
		if !ok {
			return nil
		}
		return &ast.GroupExpr{SpanVal: spanFrom(tok.Span, closeTok.Span), Expr: inner}
	case token.FN:
		p.advance()
		return p.parseFunctionTail(tok.Span)
	default:
		span := tok.Span
		if tok.Type == token.EOF {
			span = diag.NewSpan(len(p.Src), len(p.Src))
		}
		p.errorf(span, "expected expression")
		return nil
	}
}
