package lexer

import (
	"cedar/internal/diag"
	"cedar/internal/token"
)

// Символьная константа '...'. Пустая и многосимвольная формы — ошибки;
// значение раскрывает DecodeCharLit.
func (lx *Lexer) scanChar() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // opening '\''
	count := 0
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b == '\'' {
			lx.cursor.Bump()
			sp := lx.cursor.SpanFrom(start)
			switch {
			case count == 0:
				lx.errLex(diag.LexEmptyChar, sp, "empty character constant")
				return token.Token{Kind: token.Invalid, Span: sp, Text: lx.slice(sp)}
			case count > 1:
				lx.errLex(diag.LexMultiChar, sp, "multi-character constant")
				return token.Token{Kind: token.Invalid, Span: sp, Text: lx.slice(sp)}
			}
			return token.Token{Kind: token.CharLit, Span: sp, Text: lx.slice(sp)}
		}
		if b == '\\' {
			lx.scanEscape()
			count++
			continue
		}
		if b == '\n' {
			break
		}
		lx.cursor.Bump()
		count++
	}
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnterminatedChar, sp, "unterminated character constant")
	return token.Token{Kind: token.Invalid, Span: sp, Text: lx.slice(sp)}
}
