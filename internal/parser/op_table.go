package parser

import (
	"cedar/internal/token"
)

// Таблица приоритетов для бинарных операторов по C89.
// Чем больше число, тем выше приоритет. Битовые операторы
// связывают СЛАБЕЕ сравнений — классическая ловушка `x & 1 == 0`.
const (
	precAssignment     = 1  // = += -= *= /= %= &= |= ^= <<= >>=
	precLogicalOr      = 2  // ||
	precLogicalAnd     = 3  // &&
	precBitwiseOr      = 4  // |
	precBitwiseXor     = 5  // ^
	precBitwiseAnd     = 6  // &
	precEquality       = 7  // == !=
	precComparison     = 8  // < <= > >=
	precShift          = 9  // << >>
	precAdditive       = 10 // + -
	precMultiplicative = 11 // * / %
)

// getBinaryOperatorPrec возвращает приоритет и ассоциативность оператора
// Возвращает (приоритет, правоассоциативный)
func (p *Parser) getBinaryOperatorPrec(kind token.Kind) (int, bool) {
	switch kind {
	// Присваивания (правоассоциативны)
	case token.Assign, token.PlusAssign, token.MinusAssign, token.StarAssign,
		token.SlashAssign, token.PercentAssign, token.AmpAssign, token.PipeAssign,
		token.CaretAssign, token.ShlAssign, token.ShrAssign:
		return precAssignment, true

	// Логические операторы: приоритет им нужен, чтобы корректно
	// дочитать операнды, но узла для них нет — см. parseBinaryExpr
	case token.OrOr:
		return precLogicalOr, false
	case token.AndAnd:
		return precLogicalAnd, false

	// Битовые операторы
	case token.Pipe:
		return precBitwiseOr, false
	case token.Caret:
		return precBitwiseXor, false
	case token.Amp:
		return precBitwiseAnd, false

	// Операторы равенства
	case token.EqEq, token.BangEq:
		return precEquality, false

	// Операторы сравнения
	case token.Lt, token.LtEq, token.Gt, token.GtEq:
		return precComparison, false

	// Сдвиги
	case token.Shl, token.Shr:
		return precShift, false

	// Арифметические операторы
	case token.Plus, token.Minus:
		return precAdditive, false
	case token.Star, token.Slash, token.Percent:
		return precMultiplicative, false

	default:
		return -1, false // не бинарный оператор
	}
}

// isUnsupportedPostfix — постфиксные формы, для которых в AST есть только
// зарезервированные kind'ы: вызов, индексация, доступ к полю, инкременты.
func isUnsupportedPostfix(kind token.Kind) bool {
	switch kind {
	case token.LParen, token.LBracket, token.Dot, token.Arrow,
		token.PlusPlus, token.MinusMinus:
		return true
	default:
		return false
	}
}

// unsupportedPostfixMessage подбирает сообщение по виду постфикса.
func unsupportedPostfixMessage(kind token.Kind) string {
	switch kind {
	case token.LParen:
		return "function calls are not supported"
	case token.LBracket:
		return "array indexing is not supported"
	case token.Dot, token.Arrow:
		return "member access is not supported"
	case token.PlusPlus:
		return "'++' is not supported"
	case token.MinusMinus:
		return "'--' is not supported"
	default:
		return "unsupported postfix operator"
	}
}
