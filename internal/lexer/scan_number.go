package lexer

import (
	"cedar/internal/diag"
	"cedar/internal/token"
)

// Поддержка: 0, 123, 017, 0x1F, 1.0, .5, 1e-3, 1.0e+10, суффиксы u/U, l/L/ll/LL
// и их сочетания; у float — одиночный f/F/l/L. Неверные формы — репорт и
// Invalid токен, но сканирование продолжается со следующего токена.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	kind := token.IntLit
	octal := false
	badDigit := false

	// ведущая точка — значит формат ".digits"
	if lx.cursor.Peek() == '.' {
		lx.cursor.Bump()
		kind = token.FloatLit
		for isDec(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
		goto exponent
	}

	// ведущий 0: шестнадцатеричная или восьмеричная база
	if lx.cursor.Peek() == '0' {
		if _, b1, ok := lx.cursor.Peek2(); ok && (b1 == 'x' || b1 == 'X') {
			lx.cursor.Bump()
			lx.cursor.Bump()
			if !isHex(lx.cursor.Peek()) {
				sp := lx.cursor.SpanFrom(start)
				lx.errLex(diag.LexBadNumber, sp, "expected hex digit after '0x'")
				return token.Token{Kind: token.Invalid, Span: sp, Text: lx.slice(sp)}
			}
			for isHex(lx.cursor.Peek()) {
				lx.cursor.Bump()
			}
			goto intSuffix
		}
		octal = true
	}

	// целая часть; '8'/'9' после ведущего нуля запоминаем, а судим позже:
	// "09" — ошибка, "09.5" — легальный float
	for isDec(lx.cursor.Peek()) {
		if !isOct(lx.cursor.Peek()) {
			badDigit = true
		}
		lx.cursor.Bump()
	}

	// дробная часть ("1." — допустимый float)
	if lx.cursor.Peek() == '.' {
		lx.cursor.Bump()
		kind = token.FloatLit
		for isDec(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
	}

exponent:
	if lx.cursor.Peek() == 'e' || lx.cursor.Peek() == 'E' {
		kind = token.FloatLit
		lx.cursor.Bump() // e/E
		if lx.cursor.Peek() == '+' || lx.cursor.Peek() == '-' {
			lx.cursor.Bump()
		}
		if !isDec(lx.cursor.Peek()) {
			sp := lx.cursor.SpanFrom(start)
			lx.errLex(diag.LexBadNumber, sp, "expected digit after exponent")
			return token.Token{Kind: token.Invalid, Span: sp, Text: lx.slice(sp)}
		}
		for isDec(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
	}

	if kind == token.IntLit && octal && badDigit {
		lx.errLex(diag.LexBadNumber, lx.cursor.SpanFrom(start), "invalid digit in octal constant")
	}

	if kind == token.FloatLit {
		switch lx.cursor.Peek() {
		case 'f', 'F', 'l', 'L':
			lx.cursor.Bump()
		}
		goto emit
	}

intSuffix:
	// (u|U)(l|L|ll|LL)? или (l|L|ll|LL)(u|U)?
	switch lx.cursor.Peek() {
	case 'u', 'U':
		kind = token.UintLit
		lx.cursor.Bump()
		if lx.cursor.Peek() == 'l' || lx.cursor.Peek() == 'L' {
			lx.cursor.Bump()
			if lx.cursor.Peek() == 'l' || lx.cursor.Peek() == 'L' {
				lx.cursor.Bump()
			}
		}
	case 'l', 'L':
		lx.cursor.Bump()
		if lx.cursor.Peek() == 'l' || lx.cursor.Peek() == 'L' {
			lx.cursor.Bump()
		}
		if lx.cursor.Peek() == 'u' || lx.cursor.Peek() == 'U' {
			kind = token.UintLit
			lx.cursor.Bump()
		}
	}

emit:
	// "123abc", "1.0ff" и прочий хвост после суффикса
	if isIdentContinueByte(lx.cursor.Peek()) {
		for isIdentContinueByte(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
		sp := lx.cursor.SpanFrom(start)
		lx.errLex(diag.LexBadNumber, sp, "invalid suffix on numeric constant")
		return token.Token{Kind: token.Invalid, Span: sp, Text: lx.slice(sp)}
	}
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: kind, Span: sp, Text: lx.slice(sp)}
}
