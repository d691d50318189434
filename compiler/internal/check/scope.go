package check

import "github.com/astral-lang/astral/compiler/internal/diag"

// varState tracks one variable through its lifetime. A variable is live and
// unborrowed after declaration, accumulates borrows via `&name`, and becomes
// consumed when its value moves. Borrows are never released: the count only
// grows for as long as the variable is in scope.
type varState struct {
	typ     string
	mutable bool

	consumed   bool
	declaredAt diag.Pos // declaration site, cited when a moved value is reused
	borrows    int
}

// scopeStack is a stack of name->state frames. Lookup walks inner to outer;
// declaring an existing name in the same frame shadows the old binding.
type scopeStack struct {
	frames []map[string]*varState
}

func newScopeStack() *scopeStack {
	return &scopeStack{frames: []map[string]*varState{{}}}
}

func (s *scopeStack) push() {
	s.frames = append(s.frames, map[string]*varState{})
}

func (s *scopeStack) pop() {
	s.frames = s.frames[:len(s.frames)-1]
}

func (s *scopeStack) declare(name, typ string, mutable bool, pos diag.Pos) {
	s.frames[len(s.frames)-1][name] = &varState{typ: typ, mutable: mutable, declaredAt: pos}
}

func (s *scopeStack) lookup(name string) *varState {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if v, ok := s.frames[i][name]; ok {
			return v
		}
	}
	return nil
}
