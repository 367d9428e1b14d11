package ast

// Children returns the direct child IDs of id in source order.
func (e *Exprs) Children(id ExprID) []ExprID {
	expr := e.Get(id)
	if expr == nil {
		return nil
	}
	switch expr.Kind {
	case ExprUnary:
		data, _ := e.Unary(id)
		return []ExprID{data.Operand}
	case ExprBinary:
		data, _ := e.Binary(id)
		return []ExprID{data.Left, data.Right}
	case ExprAssign:
		data, _ := e.Assign(id)
		return []ExprID{data.Target, data.Value}
	case ExprCast:
		data, _ := e.Cast(id)
		return []ExprID{data.Inner}
	default:
		return nil
	}
}

// Walk visits id and its subtree pre-order. Returning false from fn
// skips the node's children.
func (e *Exprs) Walk(id ExprID, fn func(ExprID) bool) {
	if !id.IsValid() || e.Get(id) == nil {
		return
	}
	if !fn(id) {
		return
	}
	for _, child := range e.Children(id) {
		e.Walk(child, fn)
	}
}
