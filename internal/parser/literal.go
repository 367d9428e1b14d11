package parser

import (
	"strconv"

	"cedar/internal/ast"
	"cedar/internal/diag"
	"cedar/internal/lexer"
	"cedar/internal/token"
)

// trimIntSuffix отрезает хвостовые u/U/l/L целочисленного литерала.
// Валидность суффикса проверил лексер; здесь только чистим под strconv.
func trimIntSuffix(text string) string {
	for len(text) > 0 {
		switch text[len(text)-1] {
		case 'u', 'U', 'l', 'L':
			text = text[:len(text)-1]
		default:
			return text
		}
	}
	return text
}

// trimFloatSuffix отрезает хвостовой f/F/l/L плавающего литерала.
func trimFloatSuffix(text string) string {
	if len(text) > 0 {
		switch text[len(text)-1] {
		case 'f', 'F', 'l', 'L':
			return text[:len(text)-1]
		}
	}
	return text
}

// parseNumericLiteral декодирует числовые литералы. База определяется
// префиксом: 0x/0X — hex, ведущий 0 — восьмеричная, иначе десятичная.
func (p *Parser) parseNumericLiteral() (ast.ExprID, bool) {
	tok := p.advance()

	var data ast.LitData
	switch tok.Kind {
	case token.IntLit:
		v, err := strconv.ParseInt(trimIntSuffix(tok.Text), 0, 64)
		if err != nil {
			// при переполнении strconv отдаёт максимум — берём его
			p.report(diag.LexBadNumber, diag.SevError, tok.Span, "integer constant '"+tok.Text+"' is out of range")
		}
		data = ast.LitData{Kind: ast.LitInt, Int: v}
	case token.UintLit:
		v, err := strconv.ParseUint(trimIntSuffix(tok.Text), 0, 64)
		if err != nil {
			p.report(diag.LexBadNumber, diag.SevError, tok.Span, "integer constant '"+tok.Text+"' is out of range")
		}
		data = ast.LitData{Kind: ast.LitUint, Uint: v}
	case token.FloatLit:
		v, err := strconv.ParseFloat(trimFloatSuffix(tok.Text), 64)
		if err != nil {
			p.report(diag.LexBadNumber, diag.SevError, tok.Span, "floating constant '"+tok.Text+"' is out of range")
			v = 0
		}
		data = ast.LitData{Kind: ast.LitFloat, Float: v}
	default:
		p.err(diag.SynUnexpectedToken, "expected numeric literal")
		return ast.NoExprID, false
	}

	return p.exprs.NewLit(tok.Span, data), true
}

// parseCharLiteral декодирует символьную константу.
func (p *Parser) parseCharLiteral() (ast.ExprID, bool) {
	tok := p.advance()
	// пустые и многосимвольные константы лексер уже отклонил
	v, _ := lexer.DecodeCharLit(tok.Text)
	return p.exprs.NewLit(tok.Span, ast.LitData{Kind: ast.LitChar, Char: v}), true
}

// parseStringLiteral декодирует строковый литерал. Терминальный NUL входит
// в содержимое: длина массива в типе учитывает его.
func (p *Parser) parseStringLiteral() (ast.ExprID, bool) {
	tok := p.advance()
	value := lexer.DecodeStringLit(tok.Text)
	value = append(value, 0)
	return p.exprs.NewLit(tok.Span, ast.LitData{Kind: ast.LitStr, Str: value}), true
}
