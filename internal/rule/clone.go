package rule

import "reflect"

// CloneRule returns an independent copy of r. Configurable rules are
// rebuilt from a zero value with their DefaultSettings applied; other
// pointer rules get a shallow struct copy.
func CloneRule(r Rule) Rule {
	rv := reflect.ValueOf(r)
	if rv.Kind() != reflect.Ptr {
		return r
	}
	fresh := reflect.New(rv.Elem().Type())
	if c, ok := r.(Configurable); ok {
		clone := fresh.Interface().(Rule)
		_ = clone.(Configurable).ApplySettings(c.DefaultSettings())
		return clone
	}
	fresh.Elem().Set(rv.Elem())
	return fresh.Interface().(Rule)
}
