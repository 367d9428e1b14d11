package ast

type (
	// ExprID identifies an expression node in the arena.
	ExprID uint32
	// PayloadID identifies a kind-specific payload in its arena.
	PayloadID uint32
)

const (
	NoExprID    ExprID    = 0
	NoPayloadID PayloadID = 0
)

func (id ExprID) IsValid() bool    { return id != NoExprID }
func (id PayloadID) IsValid() bool { return id != NoPayloadID }
