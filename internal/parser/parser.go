// Package parser turns the token stream into untyped AST units and
// executes the declaration layer: declarations run against the symbol
// table and tag registry as they are parsed, which is what lets the
// parser tell a typedef name from an ordinary identifier at a '('.
package parser

import (
	"slices"

	"cedar/internal/ast"
	"cedar/internal/diag"
	"cedar/internal/lexer"
	"cedar/internal/source"
	"cedar/internal/symbols"
	"cedar/internal/token"
)

// defaultMaxDepth ограничивает вложенность выражений, когда опция не задана.
const defaultMaxDepth = 256

type Options struct {
	MaxErrors     uint
	CurrentErrors uint
	MaxDepth      uint
	Reporter      diag.Reporter
}

// Enough - проверить, достигли ли мы максимального количества ошибок
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

// Env is the declaration state the parser reads and writes. The caller
// owns all three pieces; sema resolves against the same ones afterwards.
type Env struct {
	Interner *source.Interner
	Syms     *symbols.Stack
	Tags     *symbols.Tags
}

type Result struct {
	Units []ast.Unit
	Bag   *diag.Bag
}

// Parser — состояние парсера на один файл
type Parser struct {
	lx       *lexer.Lexer // поток токенов (Peek/Next)
	exprs    *ast.Exprs   // арены узлов выражений
	env      Env
	units    []ast.Unit
	opts     Options
	lastSpan source.Span // span последнего съеденного токена для лучшей диагностики

	depth         uint // текущая вложенность выражений
	depthReported bool // лимит вложенности репортим один раз на юнит
}

// ParseFile — входная точка для разбора одного файла.
// Требует уже созданный lexer (на основе source.File).
func ParseFile(lx *lexer.Lexer, exprs *ast.Exprs, env Env, opts Options) Result {
	if opts.MaxDepth == 0 {
		opts.MaxDepth = defaultMaxDepth
	}
	p := Parser{
		lx:    lx,
		exprs: exprs,
		env:   env,
		opts:  opts,
	}

	p.parseUnits()
	var bag *diag.Bag
	switch br := opts.Reporter.(type) {
	case *diag.BagReporter:
		bag = br.Bag
	case diag.BagReporter:
		bag = br.Bag
	}
	return Result{
		Units: p.units,
		Bag:   bag,
	}
}

func (p *Parser) at(k token.Kind) bool {
	return p.lx.Peek().Kind == k
}

func (p *Parser) atOr(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.lx.Peek().Kind)
}

// parseUnits — основной цикл верхнего уровня: пока не EOF — parseUnit.
func (p *Parser) parseUnits() {
	for !p.at(token.EOF) {
		unit, ok := p.parseUnit()
		if ok {
			p.units = append(p.units, unit)
		}
	}
}

// parseUnit выбирает по первому токену нужный распознаватель: декларация
// или выражение. Неудавшийся юнит не эмитится — resync уже сделан внутри.
func (p *Parser) parseUnit() (ast.Unit, bool) {
	switch {
	case p.at(token.Semicolon):
		// пустая декларация: узла не создаём
		p.advance()
		return ast.Unit{}, false
	case p.at(token.Invalid):
		// лексер уже отрепортил мусорный символ
		p.advance()
		return ast.Unit{}, false
	case p.atDeclStart():
		return p.parseDeclUnit()
	default:
		return p.parseExprUnit()
	}
}

// atDeclStart — начинается ли с текущего токена декларация. Typedef-имена
// требуют заглянуть в таблицу символов.
func (p *Parser) atDeclStart() bool {
	peek := p.lx.Peek()
	if peek.IsDeclSpec() {
		return true
	}
	if peek.Kind != token.Ident {
		return false
	}
	_, ok := p.typedefType(peek.Text)
	return ok
}

// typedefType возвращает тип, на который ссылается typedef-имя.
func (p *Parser) typedefType(text string) (symbols.Symbol, bool) {
	name := p.env.Interner.Intern(text)
	id, ok := p.env.Syms.Lookup(name)
	if !ok {
		return symbols.Symbol{}, false
	}
	sym := p.env.Syms.Arena().Get(id)
	if sym == nil || sym.Storage != symbols.StorageTypedef {
		return symbols.Symbol{}, false
	}
	return *sym, true
}

// parseExprUnit разбирает `выражение ;`.
func (p *Parser) parseExprUnit() (ast.Unit, bool) {
	start := p.lx.Peek().Span
	p.depth = 0
	p.depthReported = false

	id, ok := p.parseExpr(0)
	if !ok || !p.checkUnsupportedTail() {
		p.resyncStmt()
		return ast.Unit{}, false
	}
	span := start.Cover(p.exprs.Get(id).Span)
	if tok, eaten := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after expression"); eaten {
		span = span.Cover(tok.Span)
	} else {
		p.resyncStmt()
	}
	return ast.Unit{Kind: ast.UnitExpr, Expr: id, Span: span}, true
}

// checkUnsupportedTail ловит хвосты, которые наш Pratt-цикл не берёт:
// запятую и тернарный оператор. Возвращает false после репорта.
func (p *Parser) checkUnsupportedTail() bool {
	switch p.lx.Peek().Kind {
	case token.Comma:
		p.err(diag.SynUnsupportedExpr, "comma expressions are not supported")
		return false
	case token.Question:
		p.err(diag.SynUnsupportedExpr, "conditional expressions are not supported")
		return false
	}
	return true
}

// resyncStmt — восстановление после ошибки: прокручиваем до ';' или EOF,
// точку с запятой съедаем.
func (p *Parser) resyncStmt() {
	p.resyncUntil(token.Semicolon, token.EOF)
	if p.at(token.Semicolon) {
		p.advance()
	}
}
