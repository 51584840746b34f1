package compiler

// Test is a compiled pattern test. It reports if v matches; captures are
// stored in s. An error aborts the match attempt.
type Test func(v any, s *Scope) (bool, error)

// Scope holds the captures of a case.
type Scope struct {
	names    []string // sorted
	captures map[string]any
}

func newScope(names []string) *Scope {
	s := &Scope{names: names, captures: make(map[string]any, len(names))}
	s.reset()
	return s
}

func (s *Scope) reset() {
	for _, name := range s.names {
		s.captures[name] = nil
	}
}

func (s *Scope) bind(name string, v any) {
	s.captures[name] = v
}

// Get returns the value captured for name.
func (s *Scope) Get(name string) (any, bool) {
	v, ok := s.captures[name]
	return v, ok
}

// Values returns the captured values in lexical order of their names.
func (s *Scope) Values() []any {
	values := make([]any, len(s.names))
	for i, name := range s.names {
		values[i] = s.captures[name]
	}
	return values
}

// --- Combinators -----------------------------------------------------------

func always(any, *Scope) (bool, error) {
	return true, nil
}

// predicate lifts a plain predicate to a Test.
func predicate(pred func(any) bool) Test {
	return func(v any, _ *Scope) (bool, error) {
		return pred(v), nil
	}
}

// allOf is true if every test matches v. It stops at the first test
// which does not match.
func allOf(tests ...Test) Test {
	if len(tests) == 1 {
		return tests[0]
	}
	return func(v any, s *Scope) (bool, error) {
		for _, t := range tests {
			if ok, err := t(v, s); !ok || err != nil {
				return false, err
			}
		}
		return true, nil
	}
}

// anyOf is true if one of tests matches v. It stops at the first test
// which matches.
func anyOf(tests ...Test) Test {
	return func(v any, s *Scope) (bool, error) {
		for _, t := range tests {
			if ok, err := t(v, s); ok || err != nil {
				return ok, err
			}
		}
		return false, nil
	}
}
