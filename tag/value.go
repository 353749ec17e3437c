package tag

import "fmt"

// Value is an option type for resolved dependency values: either a string
// (which may be empty) or NoValue.
//
//    switch m := v.Match(); m {
//    case m.Just(&s):
//        …
//    case m.NoValue():
//        …
//    }
//
type Value struct {
	s  string
	ok bool
}

// Just creates a resolved dependency value.
func Just(s string) Value {
	return Value{s: s, ok: true}
}

// NoValue is the reserved value for dependencies which cannot be resolved.
// It is distinct from Just("").
func NoValue() Value {
	return Value{}
}

// IsSet is a predicate: is v not NoValue?
func (v Value) IsSet() bool {
	return v.ok
}

// WithDefault returns the resolved string, or def for NoValue.
func (v Value) WithDefault(def string) string {
	if v.ok {
		return v.s
	}
	return def
}

func (v Value) String() string {
	if !v.ok {
		return "<no value>"
	}
	return fmt.Sprintf("%q", v.s)
}

// --- Matching --------------------------------------------------------------

// Match starts pattern matching on v.
func (v Value) Match() *Matcher {
	return &Matcher{v: v}
}

// Matcher is part of pattern matching for dependency values.
type Matcher struct {
	v Value
}

// Just matches a resolved value and extracts its string into s (if non-nil).
func (m *Matcher) Just(s *string) *Matcher {
	if m.v.ok {
		if s != nil {
			*s = m.v.s
		}
		return m
	}
	return nil
}

// NoValue matches an unresolved dependency.
func (m *Matcher) NoValue() *Matcher {
	if !m.v.ok {
		return m
	}
	return nil
}
