package symbols

import "cedar/internal/source"

// Stack is the lexical scope stack. Each frame maps names to arena IDs;
// lookup walks innermost-out, so inner declarations shadow outer ones.
// Leaving a frame forgets its names but never its symbols, which stay
// live in the arena.
type Stack struct {
	arena  *Arena
	frames []map[source.StringID]SymbolID
}

// NewStack creates a stack over arena with the file scope already open.
func NewStack(arena *Arena) *Stack {
	return &Stack{
		arena:  arena,
		frames: []map[source.StringID]SymbolID{make(map[source.StringID]SymbolID)},
	}
}

// Arena returns the backing arena.
func (st *Stack) Arena() *Arena { return st.arena }

// Enter opens a new innermost scope.
func (st *Stack) Enter() {
	st.frames = append(st.frames, make(map[source.StringID]SymbolID))
}

// Leave closes the innermost scope. The file scope stays open.
func (st *Stack) Leave() {
	if len(st.frames) <= 1 {
		panic("symbols: Leave without matching Enter")
	}
	st.frames = st.frames[:len(st.frames)-1]
}

// Depth returns the number of open scopes.
func (st *Stack) Depth() int { return len(st.frames) }

// Declare allocates sym in the arena and binds its name in the innermost
// scope, replacing a same-frame binding; callers that want to report
// redeclarations check LookupLocal first.
func (st *Stack) Declare(sym Symbol) SymbolID {
	id := st.arena.New(sym)
	st.frames[len(st.frames)-1][sym.Name] = id
	return id
}

// Lookup resolves name walking innermost-out.
func (st *Stack) Lookup(name source.StringID) (SymbolID, bool) {
	for i := len(st.frames) - 1; i >= 0; i-- {
		if id, ok := st.frames[i][name]; ok {
			return id, true
		}
	}
	return NoSymbolID, false
}

// LookupLocal resolves name in the innermost scope only.
func (st *Stack) LookupLocal(name source.StringID) (SymbolID, bool) {
	id, ok := st.frames[len(st.frames)-1][name]
	return id, ok
}
