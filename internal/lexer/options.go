package lexer

import (
	"cedar/internal/diag"
	"cedar/internal/source"
)

// maxTokenLength ограничивает длину одного токена в байтах. Токены длиннее —
// почти наверняка мусорный ввод; лексер репортит и перематывает к EOF.
const maxTokenLength = 4096

type Options struct {
	Reporter diag.Reporter // может быть nil — тогда ошибки игнорируем (но продолжаем лексить)
}

func (lx *Lexer) errLex(code diag.Code, sp source.Span, msg string) {
	if lx.opts.Reporter != nil {
		lx.opts.Reporter.Report(code, diag.SevError, sp, msg, nil)
	}
}
