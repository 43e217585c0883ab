package fastjson

import (
	"strconv"
	"strings"
	"unsafe"
)

// ValueKind identifies the type of a Value.
type ValueKind uint8

const (
	KindNull ValueKind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

// String returns the kind name as used in error messages.
func (k ValueKind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// StringRef is decoded string data that is either borrowed from the original
// input buffer (when the source text needed no escape decoding) or owned
// (freshly decoded). Borrowed refs are only valid while the input buffer is
// alive and unmodified.
type StringRef struct {
	s        string
	borrowed bool
}

// OwnedString returns a StringRef that owns its data.
func OwnedString(s string) StringRef {
	return StringRef{s: s}
}

// borrowedString wraps a span of the input buffer without copying.
func borrowedString(b []byte) StringRef {
	return StringRef{s: b2s(b), borrowed: true}
}

// String returns the decoded text.
func (r StringRef) String() string { return r.s }

// Borrowed reports whether the text is a view of the original input buffer.
func (r StringRef) Borrowed() bool { return r.borrowed }

// b2s casts a byte slice to a string without copying. The caller must not
// mutate b while the string is in use.
func b2s(b []byte) string {
	return unsafe.String(unsafe.SliceData(b), len(b))
}

// Number holds a JSON number as its original lexeme. Decoding to a concrete
// numeric type is deferred until a target type is known, so full-precision
// 64-bit integers survive alongside floats.
type Number struct {
	lex string
}

// NumberFromLexeme wraps a validated number lexeme.
func NumberFromLexeme(lex string) Number { return Number{lex: lex} }

// Lexeme returns the original textual form.
func (n Number) Lexeme() string { return n.lex }

// IsInteger reports whether the lexeme has no fractional or exponent part.
func (n Number) IsInteger() bool {
	return !strings.ContainsAny(n.lex, ".eE")
}

// Int64 decodes the lexeme as a signed 64-bit integer.
func (n Number) Int64() (int64, error) {
	return strconv.ParseInt(n.lex, 10, 64)
}

// Uint64 decodes the lexeme as an unsigned 64-bit integer.
func (n Number) Uint64() (uint64, error) {
	return strconv.ParseUint(n.lex, 10, 64)
}

// Float64 decodes the lexeme as a float. This always succeeds for a lexeme
// produced by the lexer.
func (n Number) Float64() (float64, error) {
	return strconv.ParseFloat(n.lex, 64)
}

// Member is one key/value pair of a JSON object. Member order is source
// order and is preserved through a round-trip.
type Member struct {
	Key   StringRef
	Value *Value
}

// Value is an arbitrary JSON value.
type Value struct {
	kind ValueKind
	b    bool
	num  Number
	str  StringRef
	arr  []*Value
	obj  []Member
}

// Null is the shared JSON null value.
var Null = &Value{kind: KindNull}

var (
	valueTrue  = &Value{kind: KindBool, b: true}
	valueFalse = &Value{kind: KindBool, b: false}
)

// NewBool returns a boolean Value.
func NewBool(b bool) *Value {
	if b {
		return valueTrue
	}
	return valueFalse
}

// NewNumber returns a Value holding the given number.
func NewNumber(n Number) *Value { return &Value{kind: KindNumber, num: n} }

// NewString returns an owned string Value.
func NewString(s string) *Value {
	return &Value{kind: KindString, str: OwnedString(s)}
}

// NewArray returns an array Value over the given elements.
func NewArray(elems ...*Value) *Value {
	return &Value{kind: KindArray, arr: elems}
}

// NewObject returns an object Value over the given members.
func NewObject(members ...Member) *Value {
	return &Value{kind: KindObject, obj: members}
}

// Kind returns the value's type. A nil Value is null.
func (v *Value) Kind() ValueKind {
	if v == nil {
		return KindNull
	}
	return v.kind
}

// IsNull reports whether the value is JSON null.
func (v *Value) IsNull() bool { return v == nil || v.kind == KindNull }

// Bool returns the boolean value; ok is false for any other kind.
func (v *Value) Bool() (b bool, ok bool) {
	if v == nil || v.kind != KindBool {
		return false, false
	}
	return v.b, true
}

// Number returns the numeric value; ok is false for any other kind.
func (v *Value) Number() (n Number, ok bool) {
	if v == nil || v.kind != KindNumber {
		return Number{}, false
	}
	return v.num, true
}

// Float64 returns the value decoded as a float; ok is false for non-numbers.
func (v *Value) Float64() (f float64, ok bool) {
	n, ok := v.Number()
	if !ok {
		return 0, false
	}
	f, err := n.Float64()
	return f, err == nil
}

// Int64 returns the value decoded as an int64; ok is false for non-numbers
// and for lexemes that are fractional or out of range.
func (v *Value) Int64() (i int64, ok bool) {
	n, ok := v.Number()
	if !ok || !n.IsInteger() {
		return 0, false
	}
	i, err := n.Int64()
	return i, err == nil
}

// Str returns the string value; ok is false for any other kind.
func (v *Value) Str() (s string, ok bool) {
	if v == nil || v.kind != KindString {
		return "", false
	}
	return v.str.String(), true
}

// StringRef returns the underlying string ref; ok is false for non-strings.
func (v *Value) StringRef() (r StringRef, ok bool) {
	if v == nil || v.kind != KindString {
		return StringRef{}, false
	}
	return v.str, true
}

// Array returns the element slice; ok is false for non-arrays.
func (v *Value) Array() (elems []*Value, ok bool) {
	if v == nil || v.kind != KindArray {
		return nil, false
	}
	return v.arr, true
}

// Object returns the ordered member slice; ok is false for non-objects.
func (v *Value) Object() (members []Member, ok bool) {
	if v == nil || v.kind != KindObject {
		return nil, false
	}
	return v.obj, true
}

// Get looks up a key in an object value. Returns nil when the value is not
// an object or has no such key. Lookup is a linear scan; JSON objects
// typically have few members.
func (v *Value) Get(key string) *Value {
	if v == nil || v.kind != KindObject {
		return nil
	}
	for i := range v.obj {
		if v.obj[i].Key.String() == key {
			return v.obj[i].Value
		}
	}
	return nil
}

// Index returns the i-th element of an array value, or nil when out of
// range or not an array.
func (v *Value) Index(i int) *Value {
	if v == nil || v.kind != KindArray || i < 0 || i >= len(v.arr) {
		return nil
	}
	return v.arr[i]
}

// Len returns the number of elements or members; 0 for scalars.
func (v *Value) Len() int {
	if v == nil {
		return 0
	}
	switch v.kind {
	case KindArray:
		return len(v.arr)
	case KindObject:
		return len(v.obj)
	default:
		return 0
	}
}

// setMember inserts or overwrites a member, keeping the position of the
// first occurrence on overwrite. Duplicate keys in a document resolve to
// the last occurrence.
func (v *Value) setMember(key StringRef, val *Value) {
	for i := range v.obj {
		if v.obj[i].Key.String() == key.String() {
			v.obj[i].Value = val
			return
		}
	}
	v.obj = append(v.obj, Member{Key: key, Value: val})
}

// String renders the value as compact JSON text.
func (v *Value) String() string {
	return ToString(v)
}
