// Package dejson deserializes a UTF-8 byte sequence holding exactly one JSON
// value into a strongly typed destination, letting the target type rather
// than the parser decide what "invalid" means. The parser drives a per-type
// Visitor through the JSON grammar; the Visitor writes the caller's output
// slot, and every error is minted through a caller-supplied Faults
// capability, so domain types report domain errors through the same pipeline
// as syntax errors.
//
// Struct wiring is external to the engine: the derive subpackage compiles
// field plans at startup and registers Deserializers through the same
// capability surface a hand-written implementation would use.
package dejson

import (
	"fmt"
	"reflect"
)

// Unmarshal parses data into dest using the bundled *Error capability.
// dest must be a non-nil pointer to the output slot, written exactly once
// and only on success.
func Unmarshal(data []byte, dest any, opts ...Option) error {
	return UnmarshalWith(data, dest, DefaultFaults{}, opts...)
}

// UnmarshalWith parses data into dest; every non-nil error it returns has
// the dynamic type E produced by the supplied capability, except engine
// misuse (nil or non-pointer destination, unsupported destination type),
// which is reported directly.
func UnmarshalWith[E error](data []byte, dest any, faults Faults[E], opts ...Option) error {
	cfg := resolveOptions(opts)
	rv := reflect.ValueOf(dest)
	if !rv.IsValid() || rv.Kind() != reflect.Ptr || rv.IsNil() {
		return fmt.Errorf("dejson: destination must be a non-nil pointer, got %T", dest)
	}
	sink := SinkOf(faults)
	// Decode into a fresh slot so a failed parse leaves dest untouched.
	fresh := reflect.New(rv.Type().Elem())
	root, err := VisitorOf(fresh.Interface(), sink)
	if err != nil {
		return err
	}
	p := &parser{lex: newLexer(data, sink), faults: sink, maxDepth: cfg.MaxDepth}
	if err := p.parse(root); err != nil {
		return err
	}
	rv.Elem().Set(fresh.Elem())
	return nil
}

// Decode parses data into a value of type T with the supplied capability.
func Decode[T any, E error](data []byte, faults Faults[E], opts ...Option) (T, error) {
	var out T
	err := UnmarshalWith(data, &out, faults, opts...)
	return out, err
}
