package ast

import (
	"cedar/internal/source"
	"cedar/internal/token"
	"cedar/internal/types"
)

// Exprs manages allocation of expression nodes.
type Exprs struct {
	Arena    *Arena[Expr]
	Lits     *Arena[LitData]
	Idents   *Arena[IdentData]
	Unaries  *Arena[UnaryData]
	Binaries *Arena[BinaryData]
	Assigns  *Arena[AssignData]
	Casts    *Arena[CastData]
}

// NewExprs creates the per-kind arenas, sized by capHint.
func NewExprs(capHint uint) *Exprs {
	if capHint == 0 {
		capHint = 1 << 8
	}
	return &Exprs{
		Arena:    NewArena[Expr](capHint),
		Lits:     NewArena[LitData](capHint),
		Idents:   NewArena[IdentData](capHint),
		Unaries:  NewArena[UnaryData](capHint),
		Binaries: NewArena[BinaryData](capHint),
		Assigns:  NewArena[AssignData](capHint),
		Casts:    NewArena[CastData](capHint),
	}
}

func (e *Exprs) new(kind ExprKind, span source.Span, payload PayloadID) ExprID {
	return ExprID(e.Arena.Allocate(Expr{
		Kind:    kind,
		Span:    span,
		Payload: payload,
	}))
}

// Get returns the expression header for id.
func (e *Exprs) Get(id ExprID) *Expr {
	return e.Arena.Get(uint32(id))
}

// NewBad creates a placeholder node for already-reported source.
func (e *Exprs) NewBad(span source.Span) ExprID {
	return e.new(ExprBad, span, NoPayloadID)
}

// NewLit creates a constant node.
func (e *Exprs) NewLit(span source.Span, data LitData) ExprID {
	payload := e.Lits.Allocate(data)
	return e.new(ExprLit, span, PayloadID(payload))
}

// Lit returns the constant payload of id.
func (e *Exprs) Lit(id ExprID) (*LitData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprLit {
		return nil, false
	}
	return e.Lits.Get(uint32(expr.Payload)), true
}

// NewIdent creates a name-use node.
func (e *Exprs) NewIdent(span source.Span, name source.StringID) ExprID {
	payload := e.Idents.Allocate(IdentData{Name: name})
	return e.new(ExprIdent, span, PayloadID(payload))
}

// Ident returns the name payload of id.
func (e *Exprs) Ident(id ExprID) (*IdentData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprIdent {
		return nil, false
	}
	return e.Idents.Get(uint32(expr.Payload)), true
}

// NewUnary creates a prefix operator node.
func (e *Exprs) NewUnary(span source.Span, op token.Kind, operand ExprID) ExprID {
	payload := e.Unaries.Allocate(UnaryData{Op: op, Operand: operand})
	return e.new(ExprUnary, span, PayloadID(payload))
}

// Unary returns the prefix payload of id.
func (e *Exprs) Unary(id ExprID) (*UnaryData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprUnary {
		return nil, false
	}
	return e.Unaries.Get(uint32(expr.Payload)), true
}

// NewBinary creates a binary operator node.
func (e *Exprs) NewBinary(span source.Span, op token.Kind, left, right ExprID) ExprID {
	payload := e.Binaries.Allocate(BinaryData{Op: op, Left: left, Right: right})
	return e.new(ExprBinary, span, PayloadID(payload))
}

// Binary returns the binary payload of id.
func (e *Exprs) Binary(id ExprID) (*BinaryData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprBinary {
		return nil, false
	}
	return e.Binaries.Get(uint32(expr.Payload)), true
}

// NewAssign creates an assignment node.
func (e *Exprs) NewAssign(span source.Span, op token.Kind, target, value ExprID) ExprID {
	payload := e.Assigns.Allocate(AssignData{Op: op, Target: target, Value: value})
	return e.new(ExprAssign, span, PayloadID(payload))
}

// Assign returns the assignment payload of id.
func (e *Exprs) Assign(id ExprID) (*AssignData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprAssign {
		return nil, false
	}
	return e.Assigns.Get(uint32(expr.Payload)), true
}

// NewCast creates a cast node with a resolved target type.
func (e *Exprs) NewCast(span source.Span, target types.Type, inner ExprID) ExprID {
	payload := e.Casts.Allocate(CastData{Target: target, Inner: inner})
	return e.new(ExprCast, span, PayloadID(payload))
}

// Cast returns the cast payload of id.
func (e *Exprs) Cast(id ExprID) (*CastData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprCast {
		return nil, false
	}
	return e.Casts.Get(uint32(expr.Payload)), true
}
