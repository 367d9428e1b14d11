package parser

import (
	"slices"
	"strconv"

	"cedar/internal/ast"
	"cedar/internal/diag"
	"cedar/internal/source"
	"cedar/internal/symbols"
	"cedar/internal/token"
	"cedar/internal/types"
)

// declSpecs — разобранная часть декларации до деклараторов: базовый тип
// с квалификаторами и класс хранения.
type declSpecs struct {
	typ         types.Type
	storage     symbols.Storage
	storageSeen bool
	storageSpan source.Span
	span        source.Span
}

func storageFor(kind token.Kind) symbols.Storage {
	switch kind {
	case token.KwTypedef:
		return symbols.StorageTypedef
	case token.KwExtern:
		return symbols.StorageExtern
	case token.KwStatic:
		return symbols.StorageStatic
	case token.KwRegister:
		return symbols.StorageRegister
	default:
		return symbols.StorageAuto
	}
}

// parseDeclUnit разбирает `спецификаторы декларатор (, декларатор)* ;`.
// Эффект декларации — символы и теги; Expr у юнита пустой.
func (p *Parser) parseDeclUnit() (ast.Unit, bool) {
	start := p.lx.Peek().Span
	specs, ok := p.parseDeclSpecs()
	if !ok {
		p.resyncStmt()
		return ast.Unit{}, false
	}

	// «struct s { ... };» и «enum e { ... };» — декларация одного тега
	if p.at(token.Semicolon) {
		end := p.advance()
		if !specs.typ.IsStructOrUnion() && specs.typ.Kind != types.KindEnum {
			p.report(diag.SynInfo, diag.SevWarning, specs.span, "declaration declares nothing")
		}
		return ast.Unit{Kind: ast.UnitDecl, Expr: ast.NoExprID, Span: start.Cover(end.Span)}, true
	}

	for {
		typ, name, nameSpan, ok := p.parseDeclarator(specs.typ)
		if !ok {
			// сайд-эффекты спецификаторов (тела enum/struct) уже состоялись
			p.resyncStmt()
			return ast.Unit{Kind: ast.UnitDecl, Expr: ast.NoExprID, Span: start.Cover(p.lastSpan)}, true
		}
		if p.at(token.Assign) {
			p.err(diag.SynBadDeclarator, "initializers are not supported")
			p.resyncUntil(token.Comma, token.Semicolon, token.EOF)
		}
		p.declareName(specs, typ, name, nameSpan)
		if p.at(token.Comma) {
			p.advance()
			continue
		}
		break
	}

	span := start.Cover(p.lastSpan)
	if tok, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after declaration"); ok {
		span = span.Cover(tok.Span)
	} else {
		p.resyncStmt()
	}
	return ast.Unit{Kind: ast.UnitDecl, Expr: ast.NoExprID, Span: span}, true
}

// parseDeclSpecs собирает спецификаторы: классы хранения, квалификаторы,
// простые спецификаторы типа, теги и typedef-имена.
func (p *Parser) parseDeclSpecs() (declSpecs, bool) {
	var (
		specs   declSpecs
		counts  = map[token.Kind]int{}
		nSpec   int
		base    types.Type
		baseSet bool
		qConst  bool
		qVolat  bool
	)
	specs.span = p.lx.Peek().Span

loop:
	for {
		tok := p.lx.Peek()
		switch tok.Kind {
		case token.KwTypedef, token.KwExtern, token.KwStatic, token.KwRegister, token.KwAuto:
			if specs.storageSeen {
				p.report(diag.SynBadDeclarator, diag.SevError, tok.Span, "more than one storage class in declaration")
			}
			specs.storage = storageFor(tok.Kind)
			specs.storageSeen = true
			specs.storageSpan = tok.Span
			p.advance()

		case token.KwConst:
			qConst = true
			p.advance()
		case token.KwVolatile:
			qVolat = true
			p.advance()

		case token.KwVoid, token.KwBool, token.KwChar, token.KwShort, token.KwInt,
			token.KwLong, token.KwFloat, token.KwDouble, token.KwSigned, token.KwUnsigned:
			if baseSet {
				p.report(diag.SynExpectType, diag.SevError, tok.Span, "cannot combine type specifiers in this declaration")
			}
			counts[tok.Kind]++
			nSpec++
			specs.span = specs.span.Cover(tok.Span)
			p.advance()

		case token.KwStruct, token.KwUnion:
			if baseSet || nSpec > 0 {
				p.report(diag.SynExpectType, diag.SevError, tok.Span, "cannot combine type specifiers in this declaration")
			}
			t, ok := p.parseStructOrUnionSpec()
			if !ok {
				return declSpecs{}, false
			}
			base = t
			baseSet = true

		case token.KwEnum:
			if baseSet || nSpec > 0 {
				p.report(diag.SynExpectType, diag.SevError, tok.Span, "cannot combine type specifiers in this declaration")
			}
			t, ok := p.parseEnumSpec()
			if !ok {
				return declSpecs{}, false
			}
			base = t
			baseSet = true

		case token.Ident:
			// typedef-имя принимается, только пока нет другого спецификатора:
			// в «int T» имя T — декларатор, даже если T задекларирован typedef'ом
			if baseSet || nSpec > 0 {
				break loop
			}
			sym, ok := p.typedefType(tok.Text)
			if !ok {
				break loop
			}
			p.advance()
			base = sym.Type
			baseSet = true

		default:
			break loop
		}
	}

	if !baseSet && nSpec == 0 {
		p.err(diag.SynExpectType, "expected type name, got "+describeToken(p.lx.Peek()))
		return declSpecs{}, false
	}
	if baseSet {
		specs.typ = base
	} else {
		specs.typ = p.combineSpecs(counts, specs.span)
	}
	specs.typ.Quals.Const = specs.typ.Quals.Const || qConst
	specs.typ.Quals.Volatile = specs.typ.Quals.Volatile || qVolat
	return specs, true
}

// combineSpecs сводит счётчики простых спецификаторов к одному типу по
// правилам C89 без long long. Битые комбинации дают осевой тип с одной
// диагностикой.
func (p *Parser) combineSpecs(counts map[token.Kind]int, sp source.Span) types.Type {
	signedSeen := counts[token.KwSigned] > 0
	unsignedSeen := counts[token.KwUnsigned] > 0
	if signedSeen && unsignedSeen {
		p.report(diag.SynExpectType, diag.SevError, sp, "'signed' and 'unsigned' cannot be combined")
		unsignedSeen = false
	}
	isSigned := !unsignedSeen

	switch {
	case counts[token.KwVoid] > 0:
		p.rejectCombo(counts, sp, token.KwVoid)
		return types.MakeVoid()
	case counts[token.KwBool] > 0:
		p.rejectCombo(counts, sp, token.KwBool)
		return types.MakeBool()
	case counts[token.KwFloat] > 0:
		p.rejectCombo(counts, sp, token.KwFloat)
		return types.MakeFloat()
	case counts[token.KwDouble] > 0:
		// long double сводим к double
		p.rejectCombo(counts, sp, token.KwDouble, token.KwLong)
		return types.MakeDouble()
	case counts[token.KwChar] > 0:
		p.rejectCombo(counts, sp, token.KwChar, token.KwSigned, token.KwUnsigned)
		return types.MakeChar(isSigned)
	case counts[token.KwShort] > 0:
		p.rejectCombo(counts, sp, token.KwShort, token.KwInt, token.KwSigned, token.KwUnsigned)
		return types.MakeShort(isSigned)
	case counts[token.KwLong] > 0:
		if counts[token.KwLong] > 1 {
			p.report(diag.SynExpectType, diag.SevError, sp, "'long long' is not supported")
		}
		p.rejectCombo(counts, sp, token.KwLong, token.KwInt, token.KwSigned, token.KwUnsigned)
		return types.MakeLong(isSigned)
	default:
		// int, signed, unsigned или их сочетание
		return types.MakeInt(isSigned)
	}
}

// rejectCombo даёт одну диагностику, если рядом с осевым спецификатором
// стоят несочетаемые.
func (p *Parser) rejectCombo(counts map[token.Kind]int, sp source.Span, allowed ...token.Kind) {
	for kind, n := range counts {
		if n == 0 || slices.Contains(allowed, kind) {
			continue
		}
		p.report(diag.SynExpectType, diag.SevError, sp, "cannot combine type specifiers in this declaration")
		return
	}
}

// parseStructOrUnionSpec — `struct Tag`, `union Tag`, с телом или без.
func (p *Parser) parseStructOrUnionSpec() (types.Type, bool) {
	kw := p.advance() // struct | union
	wantKind := symbols.TagStruct
	if kw.Kind == token.KwUnion {
		wantKind = symbols.TagUnion
	}
	nameTok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected tag name after '"+kw.Text+"'")
	if !ok {
		return types.Type{}, false
	}
	tag := p.env.Interner.Intern(nameTok.Text)

	makeTag := types.MakeStruct
	if wantKind == symbols.TagUnion {
		makeTag = types.MakeUnion
	}

	if p.at(token.LBrace) {
		fields := p.parseStructBody(kw.Text, nameTok.Text)
		def := symbols.TagDef{Kind: wantKind, Fields: fields, Span: nameTok.Span}
		if !p.env.Tags.Define(tag, def) {
			p.report(diag.SemRedeclaration, diag.SevError, nameTok.Span, "redefinition of '"+kw.Text+" "+nameTok.Text+"'")
		}
		return makeTag(tag), true
	}

	// ссылка: тег может быть ещё не определён, для указателей это норма
	if def, found := p.env.Tags.Lookup(tag); found && def.Kind != wantKind {
		p.report(diag.SynExpectType, diag.SevError, nameTok.Span, "tag '"+nameTok.Text+"' is already declared as a different kind")
	}
	return makeTag(tag), true
}

// parseStructBody собирает члены `{ ... }`. Ошибки отдельных членов не
// роняют тело: ресинк по ';' и дальше.
func (p *Parser) parseStructBody(kwText, tagText string) []symbols.Field {
	p.advance() // '{'
	var fields []symbols.Field

	for !p.atOr(token.RBrace, token.EOF) {
		specs, ok := p.parseDeclSpecs()
		if !ok {
			p.resyncUntil(token.Semicolon, token.RBrace, token.EOF)
			if p.at(token.Semicolon) {
				p.advance()
			}
			continue
		}
		if specs.storageSeen {
			p.report(diag.SynBadDeclarator, diag.SevError, specs.storageSpan, "storage class not allowed in a member declaration")
		}
		for {
			ftyp, fname, fspan, ok := p.parseDeclarator(specs.typ)
			if !ok {
				p.resyncUntil(token.Comma, token.Semicolon, token.RBrace, token.EOF)
			} else {
				fields = p.appendMember(fields, ftyp, fname, fspan)
			}
			if p.at(token.Comma) {
				p.advance()
				continue
			}
			break
		}
		if _, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after member declaration"); !ok {
			p.resyncUntil(token.Semicolon, token.RBrace, token.EOF)
			if p.at(token.Semicolon) {
				p.advance()
			}
		}
	}

	p.expect(token.RBrace, diag.SynExpectRBrace, "expected '}' to close '"+kwText+" "+tagText+"'")
	return fields
}

// appendMember добавляет член тела с проверками на void и дубликат.
func (p *Parser) appendMember(fields []symbols.Field, typ types.Type, name source.StringID, sp source.Span) []symbols.Field {
	text := p.env.Interner.MustLookup(name)
	if typ.IsVoid() {
		p.report(diag.SemIncompleteType, diag.SevError, sp, "member '"+text+"' has incomplete type 'void'")
		return fields
	}
	for _, f := range fields {
		if f.Name == name {
			p.report(diag.SemRedeclaration, diag.SevError, sp, "duplicate member '"+text+"'")
			return fields
		}
	}
	return append(fields, symbols.Field{Name: name, Type: typ, Quals: typ.Quals})
}

// parseEnumSpec — `enum Tag { A, B = n, ... }` или ссылка `enum Tag`.
// Перечислители попадают в таблицу символов с типом самого enum'а.
func (p *Parser) parseEnumSpec() (types.Type, bool) {
	p.advance() // enum
	nameTok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected tag name after 'enum'")
	if !ok {
		return types.Type{}, false
	}
	tag := p.env.Interner.Intern(nameTok.Text)

	if p.at(token.LBrace) {
		members, spans := p.parseEnumBody()
		def := symbols.TagDef{Kind: symbols.TagEnum, Members: members, Span: nameTok.Span}
		if !p.env.Tags.Define(tag, def) {
			p.report(diag.SemRedeclaration, diag.SevError, nameTok.Span, "redefinition of 'enum "+nameTok.Text+"'")
			if old, found := p.env.Tags.Lookup(tag); found && old.Kind == symbols.TagEnum {
				return types.MakeEnum(tag, old.Members), true
			}
			return types.MakeEnum(tag, nil), true
		}
		typ := types.MakeEnum(tag, members)
		p.declareEnumerators(typ, members, spans)
		return typ, true
	}

	def, found := p.env.Tags.Lookup(tag)
	switch {
	case !found:
		// в отличие от struct, ссылка на неопределённый enum бессмысленна
		p.report(diag.SynEnumExpectBody, diag.SevError, nameTok.Span, "enum '"+nameTok.Text+"' is not defined")
		return types.MakeEnum(tag, nil), true
	case def.Kind != symbols.TagEnum:
		p.report(diag.SynExpectType, diag.SevError, nameTok.Span, "tag '"+nameTok.Text+"' is already declared as a different kind")
		return types.MakeEnum(tag, nil), true
	default:
		return types.MakeEnum(tag, def.Members), true
	}
}

// parseEnumBody читает перечислители. Значение по умолчанию — предыдущее
// плюс один, как в C.
func (p *Parser) parseEnumBody() ([]types.EnumMember, []source.Span) {
	p.advance() // '{'
	var members []types.EnumMember
	var spans []source.Span
	next := int64(0)

	for !p.atOr(token.RBrace, token.EOF) {
		nameTok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected enumerator name")
		if !ok {
			p.resyncUntil(token.Comma, token.RBrace, token.EOF)
			if p.at(token.Comma) {
				p.advance()
			}
			continue
		}
		name := p.env.Interner.Intern(nameTok.Text)

		value := next
		if p.at(token.Assign) {
			p.advance()
			if v, ok := p.parseEnumValue(); ok {
				value = v
			}
		}

		dup := false
		for _, m := range members {
			if m.Name == name {
				p.report(diag.SemRedeclaration, diag.SevError, nameTok.Span, "duplicate enumerator '"+nameTok.Text+"'")
				dup = true
				break
			}
		}
		if !dup {
			members = append(members, types.EnumMember{Name: name, Value: value})
			spans = append(spans, nameTok.Span)
		}
		next = value + 1

		if p.at(token.Comma) {
			p.advance()
			continue
		}
		break
	}

	if _, ok := p.expect(token.RBrace, diag.SynExpectRBrace, "expected '}' to close enum body"); !ok {
		p.resyncUntil(token.RBrace, token.Semicolon, token.EOF)
		if p.at(token.RBrace) {
			p.advance()
		}
	}
	return members, spans
}

// parseEnumValue — целочисленная константа, возможно с минусом.
func (p *Parser) parseEnumValue() (int64, bool) {
	neg := false
	if p.at(token.Minus) {
		p.advance()
		neg = true
	}
	if !p.atOr(token.IntLit, token.UintLit) {
		p.err(diag.SynExpectExpression, "expected integer constant as enumerator value")
		p.resyncUntil(token.Comma, token.RBrace, token.EOF)
		return 0, false
	}
	tok := p.advance()
	v, err := strconv.ParseInt(trimIntSuffix(tok.Text), 0, 64)
	if err != nil {
		p.report(diag.LexBadNumber, diag.SevError, tok.Span, "integer constant '"+tok.Text+"' is out of range")
	}
	if neg {
		v = -v
	}
	return v, true
}

// declareEnumerators заводит по символу на каждый перечислитель.
func (p *Parser) declareEnumerators(typ types.Type, members []types.EnumMember, spans []source.Span) {
	for i, m := range members {
		if _, exists := p.env.Syms.LookupLocal(m.Name); exists {
			p.report(diag.SemRedeclaration, diag.SevError, spans[i], "redeclaration of '"+p.env.Interner.MustLookup(m.Name)+"'")
			continue
		}
		p.env.Syms.Declare(symbols.Symbol{
			Name:    m.Name,
			Type:    typ,
			Storage: symbols.StorageAuto,
			Span:    spans[i],
		})
	}
}

// parseDeclarator — звёзды, имя, суффикс массива или функции.
func (p *Parser) parseDeclarator(base types.Type) (types.Type, source.StringID, source.Span, bool) {
	typ := p.parsePointerStars(base)

	if p.at(token.LParen) {
		// int (*f)() и прочие скобочные деклараторы
		p.err(diag.SynBadDeclarator, "parenthesized declarators are not supported")
		return types.Type{}, source.NoStringID, source.Span{}, false
	}
	nameTok, ok := p.expect(token.Ident, diag.SynBadDeclarator, "expected declarator name, got "+describeToken(p.lx.Peek()))
	if !ok {
		return types.Type{}, source.NoStringID, source.Span{}, false
	}
	name := p.env.Interner.Intern(nameTok.Text)

	switch p.lx.Peek().Kind {
	case token.LParen:
		p.advance()
		if !p.at(token.RParen) {
			p.err(diag.SynBadDeclarator, "parameter lists are not supported")
			p.resyncUntil(token.RParen, token.Semicolon, token.EOF)
		}
		if p.at(token.RParen) {
			p.advance()
		}
		typ = types.MakeFunc(types.Signature{Return: typ})

	case token.LBracket:
		var dims []uint64
		for p.at(token.LBracket) {
			p.advance()
			n := types.Unbounded
			if !p.at(token.RBracket) {
				n = p.parseArrayBound()
			}
			p.expect(token.RBracket, diag.SynBadDeclarator, "expected ']' after array bound")
			dims = append(dims, n)
		}
		// int a[2][3] — массив из 2 массивов по 3: правые скобки внутренние
		for i := len(dims) - 1; i >= 0; i-- {
			typ = types.MakeArray(typ, dims[i])
		}
	}

	return typ, name, nameTok.Span, true
}

// parseArrayBound — целочисленная константа в квадратных скобках.
func (p *Parser) parseArrayBound() uint64 {
	if !p.atOr(token.IntLit, token.UintLit) {
		p.err(diag.SynBadDeclarator, "expected integer constant as array bound")
		p.resyncUntil(token.RBracket, token.Semicolon, token.EOF)
		return types.Unbounded
	}
	tok := p.advance()
	v, err := strconv.ParseUint(trimIntSuffix(tok.Text), 0, 64)
	if err != nil {
		p.report(diag.LexBadNumber, diag.SevError, tok.Span, "integer constant '"+tok.Text+"' is out of range")
		return types.Unbounded
	}
	return v
}

// declareName заводит символ декларации с проверками на неполный тип и
// повторную декларацию.
func (p *Parser) declareName(specs declSpecs, typ types.Type, name source.StringID, sp source.Span) {
	text := p.env.Interner.MustLookup(name)
	storage := symbols.StorageAuto
	if specs.storageSeen {
		storage = specs.storage
	}

	// typedef на неполный тип и extern-декларации легальны
	if storage != symbols.StorageTypedef && storage != symbols.StorageExtern && p.isIncompleteObject(typ) {
		p.report(diag.SemIncompleteType, diag.SevError, sp, "variable '"+text+"' has incomplete type '"+typ.Render(p.env.Interner.MustLookup)+"'")
		typ = types.MakeError()
	}

	if _, exists := p.env.Syms.LookupLocal(name); exists {
		p.report(diag.SemRedeclaration, diag.SevError, sp, "redeclaration of '"+text+"'")
		return
	}
	p.env.Syms.Declare(symbols.Symbol{
		Name:    name,
		Type:    typ,
		Quals:   typ.Quals,
		Storage: storage,
		Span:    sp,
	})
}

// isIncompleteObject — нельзя завести переменную такого типа: void или
// struct/union без определения тега.
func (p *Parser) isIncompleteObject(typ types.Type) bool {
	switch {
	case typ.IsVoid():
		return true
	case typ.IsStructOrUnion():
		_, defined := p.env.Tags.Lookup(typ.Tag)
		return !defined
	default:
		return false
	}
}
