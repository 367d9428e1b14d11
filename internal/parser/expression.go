package parser

import (
	"strconv"

	"cedar/internal/ast"
	"cedar/internal/diag"
	"cedar/internal/token"
)

// enterExpr/leaveExpr считают вложенность. При превышении лимита репортим
// один раз и рубим разбор юнита.
func (p *Parser) enterExpr() bool {
	p.depth++
	if p.depth > p.opts.MaxDepth {
		if !p.depthReported {
			p.depthReported = true
			p.err(diag.SynExprTooDeep, "expression nests deeper than "+strconv.FormatUint(uint64(p.opts.MaxDepth), 10)+" levels")
		}
		return false
	}
	return true
}

func (p *Parser) leaveExpr() {
	p.depth--
}

// parseExpr - главная точка входа для парсинга выражений
// Возвращает ExprID и флаг успеха
func (p *Parser) parseExpr(minPrec int) (ast.ExprID, bool) {
	return p.parseBinaryExpr(minPrec)
}

// parseBinaryExpr реализует Pratt parsing для бинарных операторов
// minPrec - минимальный приоритет для текущего уровня
func (p *Parser) parseBinaryExpr(minPrec int) (ast.ExprID, bool) {
	if !p.enterExpr() {
		return ast.NoExprID, false
	}
	defer p.leaveExpr()

	// Парсим левую часть (унарные операторы + primary)
	left, ok := p.parseUnaryExpr()
	if !ok {
		return ast.NoExprID, false
	}

	// Обрабатываем бинарные операторы в цикле
	for {
		tok := p.lx.Peek()

		// Постфиксы без поддержки: репортим и валим юнит целиком
		if isUnsupportedPostfix(tok.Kind) {
			p.report(diag.SynUnsupportedExpr, diag.SevError, tok.Span, unsupportedPostfixMessage(tok.Kind))
			return ast.NoExprID, false
		}

		// Проверяем, является ли токен бинарным оператором
		prec, isRightAssoc := p.getBinaryOperatorPrec(tok.Kind)
		if prec < minPrec {
			break // не оператор или приоритет слишком низкий
		}

		// Съедаем оператор
		opTok := p.advance()

		// Вычисляем приоритет для правой части
		nextMinPrec := prec + 1
		if isRightAssoc {
			nextMinPrec = prec
		}

		// Парсим правую часть
		right, ok := p.parseBinaryExpr(nextMinPrec)
		if !ok {
			return ast.NoExprID, false
		}

		leftSpan := p.exprs.Get(left).Span
		rightSpan := p.exprs.Get(right).Span
		finalSpan := leftSpan.Cover(rightSpan)

		switch {
		case opTok.Kind == token.AndAnd || opTok.Kind == token.OrOr:
			// операнды дочитаны, но узла для логических связок нет
			p.report(diag.SynUnsupportedExpr, diag.SevError, opTok.Span, "logical '"+opTok.Text+"' is not supported")
			left = p.exprs.NewBad(finalSpan)
		case opTok.IsAssignOp():
			left = p.exprs.NewAssign(finalSpan, opTok.Kind, left, right)
		default:
			left = p.exprs.NewBinary(finalSpan, opTok.Kind, left, right)
		}
	}

	return left, true
}

// parseUnaryExpr обрабатывает префиксные операторы. Поддержаны '-' и '*';
// остальные префиксы C дочитываем для восстановления, но даём Bad-узел.
func (p *Parser) parseUnaryExpr() (ast.ExprID, bool) {
	if !p.enterExpr() {
		return ast.NoExprID, false
	}
	defer p.leaveExpr()

	tok := p.lx.Peek()
	switch tok.Kind {
	case token.Minus, token.Star:
		opTok := p.advance()
		operand, ok := p.parseUnaryExpr()
		if !ok {
			return ast.NoExprID, false
		}
		finalSpan := opTok.Span.Cover(p.exprs.Get(operand).Span)
		return p.exprs.NewUnary(finalSpan, opTok.Kind, operand), true

	case token.Plus, token.Amp, token.Bang, token.Tilde, token.PlusPlus, token.MinusMinus:
		opTok := p.advance()
		p.report(diag.SynUnsupportedExpr, diag.SevError, opTok.Span, "unary '"+opTok.Text+"' is not supported")
		operand, ok := p.parseUnaryExpr()
		if !ok {
			return ast.NoExprID, false
		}
		finalSpan := opTok.Span.Cover(p.exprs.Get(operand).Span)
		return p.exprs.NewBad(finalSpan), true

	case token.KwSizeof:
		opTok := p.advance()
		p.report(diag.SynUnsupportedExpr, diag.SevError, opTok.Span, "'sizeof' is not supported")
		return ast.NoExprID, false

	case token.LParen:
		return p.parseParenOrCast()

	default:
		return p.parsePrimaryExpr()
	}
}

// parseParenOrCast разрешает неоднозначность '(': либо скобочная
// группировка, либо cast. Решает первый токен после скобки — имя типа
// может начать только cast.
func (p *Parser) parseParenOrCast() (ast.ExprID, bool) {
	lparen := p.advance() // съедаем '('

	if p.atTypeName() {
		target, ok := p.parseTypeName()
		if !ok {
			p.resyncUntil(token.RParen, token.Semicolon, token.EOF)
			if p.at(token.RParen) {
				p.advance()
			}
			return ast.NoExprID, false
		}
		if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' to close the cast"); !ok {
			return ast.NoExprID, false
		}
		// cast связывает как унарный префикс: (int)x + 1 кастит только x
		operand, ok := p.parseUnaryExpr()
		if !ok {
			return ast.NoExprID, false
		}
		finalSpan := lparen.Span.Cover(p.exprs.Get(operand).Span)
		return p.exprs.NewCast(finalSpan, target, operand), true
	}

	inner, ok := p.parseExpr(0)
	if !ok || !p.checkUnsupportedTail() {
		return ast.NoExprID, false
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' after expression"); !ok {
		return ast.NoExprID, false
	}
	// скобки узла не получают — возвращаем внутреннее выражение как есть
	return inner, true
}

// parsePrimaryExpr парсит основные (атомарные) выражения
func (p *Parser) parsePrimaryExpr() (ast.ExprID, bool) {
	for p.at(token.Invalid) {
		// лексер уже отрепортил, пропускаем мусор
		p.advance()
	}

	switch p.lx.Peek().Kind {
	case token.Ident:
		tok := p.advance()
		return p.exprs.NewIdent(tok.Span, p.env.Interner.Intern(tok.Text)), true

	case token.IntLit, token.UintLit, token.FloatLit:
		return p.parseNumericLiteral()

	case token.CharLit:
		return p.parseCharLiteral()

	case token.StringLit:
		return p.parseStringLiteral()

	default:
		p.err(diag.SynExpectExpression, "expected expression, got "+describeToken(p.lx.Peek()))
		return ast.NoExprID, false
	}
}
