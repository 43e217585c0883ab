package fastjson

import (
	"fmt"
	"reflect"
)

// Parse decodes a JSON document into a Value tree.
//
// String values that need no escape decoding borrow their bytes directly
// from input; the caller must keep input alive and unmodified for as long
// as any Value derived from it is in use.
func Parse(input []byte) (*Value, error) {
	p := &parser{lex: newLexer(input)}
	v, err := p.parse()
	if err != nil {
		return nil, err
	}
	return v, nil
}

// ParseString decodes a JSON document held in a string. The input is copied
// once up front, so the returned tree does not alias the argument.
func ParseString(s string) (*Value, error) {
	return Parse([]byte(s))
}

// ToString renders a Value as compact JSON text with no whitespace. Number
// lexemes are preserved verbatim, so ToString(Parse(ToString(v))) is
// idempotent.
func ToString(v *Value) string {
	w := &writer{}
	w.writeValue(v)
	return string(w.buf)
}

// ToStringPretty renders a Value indented by two spaces, one member or
// element per line.
func ToStringPretty(v *Value) string {
	w := &writer{pretty: true}
	w.writeValue(v)
	return string(w.buf)
}

// Marshal serializes a Go value to compact JSON text, consulting the
// descriptor registry for struct fields and enum variants.
func Marshal(v any) ([]byte, error) {
	w := &writer{}
	if err := w.marshalValue(reflect.ValueOf(v), ""); err != nil {
		return nil, err
	}
	return w.buf, nil
}

// MarshalPretty serializes a Go value with two-space indentation.
func MarshalPretty(v any) ([]byte, error) {
	w := &writer{pretty: true}
	if err := w.marshalValue(reflect.ValueOf(v), ""); err != nil {
		return nil, err
	}
	return w.buf, nil
}

// Unmarshal parses a JSON document and deserializes it into target, which
// must be a non-nil pointer. The whole call fails on the first error and
// leaves the target unmodified.
func Unmarshal(data []byte, target any) error {
	v, err := Parse(data)
	if err != nil {
		return err
	}
	return UnmarshalValue(v, target)
}

// UnmarshalString is Unmarshal over a string input.
func UnmarshalString(s string, target any) error {
	return Unmarshal([]byte(s), target)
}

// UnmarshalValue deserializes an already-parsed Value into target.
func UnmarshalValue(v *Value, target any) error {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("fastjson: target must be a non-nil pointer, got %T", target)
	}
	if err := unmarshalValue(v, rv.Elem(), ""); err != nil {
		return err
	}
	return nil
}
