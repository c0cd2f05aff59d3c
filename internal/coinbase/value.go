package coinbase

// Value is a step in an optional-chaining walk over a decoded JSON
// document. Once a step is absent every further step is absent too, so a
// chain never fails; the caller checks the end of it.
type Value struct {
	v  any
	ok bool
}

// Lookup starts a walk at v.
func Lookup(v any) Value {
	return Value{v: v, ok: true}
}

// Present reports whether every step so far resolved.
func (v Value) Present() bool { return v.ok }

// Field steps into key of a JSON object.
func (v Value) Field(key string) Value {
	if !v.ok {
		return v
	}
	obj, ok := v.v.(map[string]any)
	if !ok {
		return Value{}
	}
	child, ok := obj[key]
	return Value{v: child, ok: ok}
}

// Index steps into element i of a JSON array.
func (v Value) Index(i int) Value {
	if !v.ok {
		return v
	}
	arr, ok := v.v.([]any)
	if !ok || i < 0 || i >= len(arr) {
		return Value{}
	}
	return Value{v: arr[i], ok: true}
}

// AsString returns the value if it is a JSON string.
func (v Value) AsString() (string, bool) {
	if !v.ok {
		return "", false
	}
	s, ok := v.v.(string)
	return s, ok
}
