package hir

// BinaryOp enumerates the operators an ExprBinary can carry. Compound
// assignments never reach the IR; the analyzer desugars them into plain
// Assign over a temporary.
type BinaryOp uint8

const (
	OpAdd BinaryOp = iota
	OpSub
	OpMul
	OpDiv
	OpMod
	OpShl
	OpShr
	OpBitAnd
	OpBitOr
	OpBitXor
	OpLt
	OpGt
	OpLe
	OpGe
	OpEq
	OpNe
	OpAssign
)

// String returns the C spelling of the operator.
func (op BinaryOp) String() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	case OpMod:
		return "%"
	case OpShl:
		return "<<"
	case OpShr:
		return ">>"
	case OpBitAnd:
		return "&"
	case OpBitOr:
		return "|"
	case OpBitXor:
		return "^"
	case OpLt:
		return "<"
	case OpGt:
		return ">"
	case OpLe:
		return "<="
	case OpGe:
		return ">="
	case OpEq:
		return "=="
	case OpNe:
		return "!="
	case OpAssign:
		return "="
	default:
		return "?"
	}
}

// IsComparison reports whether op yields a boolean regardless of its
// operand types.
func (op BinaryOp) IsComparison() bool {
	switch op {
	case OpLt, OpGt, OpLe, OpGe, OpEq, OpNe:
		return true
	default:
		return false
	}
}

// IsEquality reports whether op is == or !=, the two comparisons that
// tolerate mixed pointer operands.
func (op BinaryOp) IsEquality() bool {
	return op == OpEq || op == OpNe
}
