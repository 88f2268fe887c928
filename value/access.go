package value

// Field reads the named property of v. It returns nil when v is not structured.
func Field(v any, name string) any {
	s, ok := v.(Structured)
	if !ok {
		return nil
	}
	return s.Get(Name(name))
}

// At reads the i-th element of v.
func At(v any, i int) any {
	s, ok := v.(Structured)
	if !ok {
		return nil
	}
	return s.Get(Index(i))
}

// Path reads a chain of names, stopping at the first non-structured value.
func Path(v any, names ...string) any {
	for _, name := range names {
		s, ok := v.(Structured)
		if !ok {
			return nil
		}
		v = s.Get(Name(name))
	}
	return v
}

// Length returns the length property of an array-like v, or its own key count otherwise.
func Length(v any) int {
	s, ok := v.(Structured)
	if !ok {
		return 0
	}
	if s.HasOwn(LengthKey) {
		if n, ok := s.Get(LengthKey).(int); ok {
			return n
		}
	}
	return len(s.OwnKeys())
}

// Keys returns the enumerable own name keys of v, the way a for-in loop would see them.
func Keys(v any) []string {
	s, ok := v.(Structured)
	if !ok {
		return nil
	}
	names := []string{}
	for _, k := range s.OwnKeys() {
		if k.IsSymbol() {
			continue
		}
		if p, ok := s.OwnProperty(k); ok && p.Enumerable {
			names = append(names, k.Name())
		}
	}
	return names
}
