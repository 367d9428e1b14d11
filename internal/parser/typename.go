package parser

import (
	"cedar/internal/diag"
	"cedar/internal/token"
	"cedar/internal/types"
)

// atTypeName — может ли текущий токен начать имя типа. Решает
// неоднозначность '(': имя типа после скобки начинает только cast.
func (p *Parser) atTypeName() bool {
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

// parseTypeName разбирает имя типа в cast'е: спецификаторы плюс звёзды.
// Абстрактные деклараторы сложнее цепочки указателей не поддерживаем.
func (p *Parser) parseTypeName() (types.Type, bool) {
	specs, ok := p.parseDeclSpecs()
	if !ok {
		return types.Type{}, false
	}
	if specs.storageSeen {
		p.report(diag.SynBadDeclarator, diag.SevError, specs.storageSpan, "storage class not allowed in a type name")
	}
	return p.parsePointerStars(specs.typ), true
}

// parsePointerStars навешивает уровни указателей; каждая звезда может
// нести свои const/volatile.
func (p *Parser) parsePointerStars(typ types.Type) types.Type {
	for p.at(token.Star) {
		p.advance()
		typ = types.MakePointer(typ)
		for p.atOr(token.KwConst, token.KwVolatile) {
			q := p.advance()
			if q.Kind == token.KwConst {
				typ.Quals.Const = true
			} else {
				typ.Quals.Volatile = true
			}
		}
	}
	return typ
}
