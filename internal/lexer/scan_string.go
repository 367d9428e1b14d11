package lexer

import (
	"fmt"

	"cedar/internal/diag"
	"cedar/internal/token"
)

// "..." с escape \' \" \? \\ \a \b \f \n \r \t \v \ooo \xhh.
// Text хранит сырой срез с кавычками; значение раскрывает DecodeStringLit.
func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // opening '"'
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b == '"' {
			lx.cursor.Bump()
			sp := lx.cursor.SpanFrom(start)
			return token.Token{Kind: token.StringLit, Span: sp, Text: lx.slice(sp)}
		}
		if b == '\\' {
			lx.scanEscape()
			continue
		}
		if b == '\n' {
			// перевод строки в строковом литерале — ошибка
			sp := lx.cursor.SpanFrom(start)
			lx.errLex(diag.LexUnterminatedString, sp, "newline in string literal")
			return token.Token{Kind: token.Invalid, Span: sp, Text: lx.slice(sp)}
		}
		lx.cursor.Bump()
	}
	// EOF без закрывающей кавычки
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnterminatedString, sp, "unterminated string literal")
	return token.Token{Kind: token.Invalid, Span: sp, Text: lx.slice(sp)}
}

// scanEscape валидирует один escape; курсор стоит на '\'.
// Значение здесь не раскрываем — только проверяем форму и двигаем курсор.
func (lx *Lexer) scanEscape() {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '\'
	if lx.cursor.EOF() {
		return
	}
	b := lx.cursor.Bump()
	switch b {
	case '\'', '"', '?', '\\', 'a', 'b', 'f', 'n', 'r', 't', 'v':
	case 'x':
		if !isHex(lx.cursor.Peek()) {
			lx.errLex(diag.LexBadEscape, lx.cursor.SpanFrom(start), "expected hex digit after '\\x'")
			return
		}
		for isHex(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
	case '0', '1', '2', '3', '4', '5', '6', '7':
		// до трёх восьмеричных цифр, первая уже съедена
		for i := 0; i < 2 && isOct(lx.cursor.Peek()); i++ {
			lx.cursor.Bump()
		}
	default:
		lx.errLex(diag.LexBadEscape, lx.cursor.SpanFrom(start), fmt.Sprintf("unknown escape '\\%c'", b))
	}
}

// DecodeStringLit раскрывает escape в тексте токена StringLit (кавычки
// допускаются и отбрасываются). Некорректные escape уже отрепорчены
// лексером — здесь они проходят «как есть» без второй диагностики.
func DecodeStringLit(text string) []byte {
	if len(text) >= 2 && text[0] == '"' && text[len(text)-1] == '"' {
		text = text[1 : len(text)-1]
	}
	return decodeEscapes(text)
}

// DecodeCharLit возвращает значение символьной константы. ok=false для
// пустой или многосимвольной константы (лексер такие уже отрепортил).
func DecodeCharLit(text string) (byte, bool) {
	if len(text) >= 2 && text[0] == '\'' && text[len(text)-1] == '\'' {
		text = text[1 : len(text)-1]
	}
	out := decodeEscapes(text)
	if len(out) != 1 {
		return 0, false
	}
	return out[0], true
}

func decodeEscapes(text string) []byte {
	out := make([]byte, 0, len(text))
	for i := 0; i < len(text); {
		b := text[i]
		if b != '\\' || i+1 >= len(text) {
			out = append(out, b)
			i++
			continue
		}
		i++ // '\'
		c := text[i]
		i++
		switch c {
		case 'a':
			out = append(out, 0x07)
		case 'b':
			out = append(out, 0x08)
		case 'f':
			out = append(out, 0x0C)
		case 'n':
			out = append(out, '\n')
		case 'r':
			out = append(out, '\r')
		case 't':
			out = append(out, '\t')
		case 'v':
			out = append(out, 0x0B)
		case '\'', '"', '?', '\\':
			out = append(out, c)
		case 'x':
			v := 0
			for i < len(text) && isHex(text[i]) {
				v = v*16 + hexVal(text[i])
				i++
			}
			out = append(out, byte(v))
		case '0', '1', '2', '3', '4', '5', '6', '7':
			v := int(c - '0')
			for n := 0; n < 2 && i < len(text) && isOct(text[i]); n++ {
				v = v*8 + int(text[i]-'0')
				i++
			}
			out = append(out, byte(v))
		default:
			out = append(out, c)
		}
	}
	return out
}

func hexVal(b byte) int {
	switch {
	case b >= '0' && b <= '9':
		return int(b - '0')
	case b >= 'a' && b <= 'f':
		return int(b-'a') + 10
	default:
		return int(b-'A') + 10
	}
}
