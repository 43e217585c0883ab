package fastjson

import (
	"reflect"
	"strconv"
	"strings"
)

// unmarshalValue maps a Value into the target rv, which must be settable.
// path accumulates the dotted field path for error context.
func unmarshalValue(v *Value, rv reflect.Value, path string) *Error {
	t := rv.Type()
	switch t {
	case valuePtrType:
		rv.Set(reflect.ValueOf(v))
		return nil
	case valueType:
		if v == nil {
			v = Null
		}
		rv.Set(reflect.ValueOf(*v))
		return nil
	}
	if t.Kind() == reflect.Struct {
		if b, ok := bindingFor(t); ok {
			return unmarshalVariantValue(v, b, rv, path)
		}
	}

	switch t.Kind() {
	case reflect.Bool:
		b, ok := v.Bool()
		if !ok {
			return mismatch(path, "boolean", v)
		}
		rv.SetBool(b)
	case reflect.String:
		s, ok := v.Str()
		if !ok {
			return mismatch(path, "string", v)
		}
		rv.SetString(s)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, ok := v.Number()
		if !ok {
			return mismatch(path, "number", v)
		}
		if !n.IsInteger() {
			return newValueError(KindFractionalValueForInteger, path,
				"expected integer, found %s", n.Lexeme())
		}
		i, err := parseIntBits(n.Lexeme(), t.Bits())
		if err != nil {
			return newValueError(KindNumberOutOfRange, path,
				"value %s out of range for %s", n.Lexeme(), t)
		}
		rv.SetInt(i)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, ok := v.Number()
		if !ok {
			return mismatch(path, "number", v)
		}
		if !n.IsInteger() {
			return newValueError(KindFractionalValueForInteger, path,
				"expected integer, found %s", n.Lexeme())
		}
		u, err := parseUintBits(n.Lexeme(), t.Bits())
		if err != nil {
			return newValueError(KindNumberOutOfRange, path,
				"value %s out of range for %s", n.Lexeme(), t)
		}
		rv.SetUint(u)
	case reflect.Float32, reflect.Float64:
		n, ok := v.Number()
		if !ok {
			return mismatch(path, "number", v)
		}
		f, err := parseFloatBits(n.Lexeme(), t.Bits())
		if err != nil {
			return newValueError(KindNumberOutOfRange, path,
				"value %s out of range for %s", n.Lexeme(), t)
		}
		rv.SetFloat(f)
	case reflect.Pointer:
		// Optional: null maps to the absent state.
		if v.IsNull() {
			rv.SetZero()
			return nil
		}
		elem := reflect.New(t.Elem())
		if err := unmarshalValue(v, elem.Elem(), path); err != nil {
			return err
		}
		rv.Set(elem)
	case reflect.Interface:
		enum := enumFor(t)
		if enum == nil {
			return newValueError(KindTypeMismatch, path,
				"unsupported target type %s (no enum registered)", t)
		}
		return unmarshalEnum(v, enum, rv, path)
	case reflect.Slice:
		elems, ok := v.Array()
		if !ok {
			return mismatch(path, "array", v)
		}
		out := reflect.MakeSlice(t, len(elems), len(elems))
		for i, elem := range elems {
			if err := unmarshalValue(elem, out.Index(i), childIndex(path, i)); err != nil {
				return err
			}
		}
		rv.Set(out)
	case reflect.Map:
		if t.Key().Kind() != reflect.String {
			return newValueError(KindTypeMismatch, path,
				"unsupported map key type %s", t.Key())
		}
		members, ok := v.Object()
		if !ok {
			return mismatch(path, "object", v)
		}
		out := reflect.MakeMapWithSize(t, len(members))
		for i := range members {
			key := members[i].Key.String()
			elem := reflect.New(t.Elem()).Elem()
			if err := unmarshalValue(members[i].Value, elem, childField(path, key)); err != nil {
				return err
			}
			out.SetMapIndex(reflect.ValueOf(key).Convert(t.Key()), elem)
		}
		rv.Set(out)
	case reflect.Struct:
		members, ok := v.Object()
		if !ok {
			return mismatch(path, "object", v)
		}
		return unmarshalRecord(members, rv, path)
	default:
		return newValueError(KindTypeMismatch, path, "unsupported target type %s", t)
	}
	return nil
}

// unmarshalRecord fills a struct from object members per its descriptor.
// Unknown keys are ignored; a missing key is an error unless the field is
// Optional (a pointer) or skipped. Fields decode into a scratch value that
// is assigned in one step, so a failing member never leaves the target
// partially written.
func unmarshalRecord(members []Member, rv reflect.Value, path string) *Error {
	rec, err := recordFor(rv.Type())
	if err != nil {
		return newValueError(KindTypeMismatch, path, "%v", err)
	}
	out := reflect.New(rv.Type()).Elem()
	for i := range rec.Fields {
		f := &rec.Fields[i]
		if f.Skip {
			continue
		}
		mv := memberLookup(members, f.JSONName)
		if mv == nil {
			if out.Field(f.index).Kind() == reflect.Pointer {
				continue // absent Optional maps to the empty state
			}
			return newValueError(KindMissingField, childField(path, f.JSONName),
				"missing field %q", f.JSONName)
		}
		if err := unmarshalValue(mv, out.Field(f.index), childField(path, f.JSONName)); err != nil {
			return err
		}
	}
	rv.Set(out)
	return nil
}

// unmarshalEnum decodes a value into an interface with a registered variant
// set. A bare string selects a unit variant; an object selects a newtype or
// struct variant through its "type" key; null is the absent state and maps
// to the nil interface, mirroring the pointer case.
func unmarshalEnum(v *Value, enum *Enum, rv reflect.Value, path string) *Error {
	if v.IsNull() {
		rv.SetZero()
		return nil
	}
	if s, ok := v.Str(); ok {
		variant := enum.variantByName(s)
		if variant == nil {
			return newValueError(KindUnknownVariant, path, "unknown enum variant %q", s)
		}
		if variant.Shape != ShapeUnit {
			return newValueError(KindTypeMismatch, path,
				"variant %q carries data, expected object", s)
		}
		rv.Set(reflect.New(variant.Type).Elem())
		return nil
	}

	members, ok := v.Object()
	if !ok {
		return mismatch(path, "string or object", v)
	}
	tag := memberLookup(members, discriminatorKey)
	if tag == nil {
		return newValueError(KindUnknownVariant, path,
			"missing discriminator %q", discriminatorKey)
	}
	name, ok := tag.Str()
	if !ok {
		return mismatch(childField(path, discriminatorKey), "string", tag)
	}
	variant := enum.variantByName(name)
	if variant == nil {
		return newValueError(KindUnknownVariant, path, "unknown enum variant %q", name)
	}

	out := reflect.New(variant.Type).Elem()
	switch variant.Shape {
	case ShapeUnit:
		return newValueError(KindTypeMismatch, path,
			"unit variant %q must be a bare string", name)
	case ShapeNewtype:
		payload := memberLookup(members, payloadKey)
		if payload == nil {
			return newValueError(KindMissingField, childField(path, payloadKey),
				"missing field %q", payloadKey)
		}
		sf := newtypeField(variant.Type)
		if err := unmarshalValue(payload, out.Field(sf.Index[0]), childField(path, payloadKey)); err != nil {
			return err
		}
	default:
		// Struct variant: remaining keys match the record descriptor; the
		// discriminator is just another unknown key to it.
		if err := unmarshalRecord(members, out, path); err != nil {
			return err
		}
	}
	rv.Set(out)
	return nil
}

// unmarshalVariantValue decodes directly into a concrete variant type.
func unmarshalVariantValue(v *Value, b variantBinding, rv reflect.Value, path string) *Error {
	if v.IsNull() {
		return mismatch(path, "string or object", v)
	}
	iface := reflect.New(b.enum.Iface).Elem()
	if err := unmarshalEnum(v, b.enum, iface, path); err != nil {
		return err
	}
	got := iface.Elem()
	if got.Type() != rv.Type() {
		return newValueError(KindTypeMismatch, path,
			"expected variant %s, found %s", rv.Type(), got.Type())
	}
	rv.Set(got)
	return nil
}

func memberLookup(members []Member, key string) *Value {
	for i := range members {
		if members[i].Key.String() == key {
			return members[i].Value
		}
	}
	return nil
}

func mismatch(path, expected string, v *Value) *Error {
	return newValueError(KindTypeMismatch, path,
		"expected %s, found %s", expected, v.Kind())
}

func parseIntBits(lex string, bits int) (int64, error) {
	return strconv.ParseInt(lex, 10, bits)
}

// parseUintBits rejects any negative lexeme, including "-0".
func parseUintBits(lex string, bits int) (uint64, error) {
	if strings.HasPrefix(lex, "-") {
		return 0, strconv.ErrRange
	}
	return strconv.ParseUint(lex, 10, bits)
}

// parseFloatBits treats overflow to infinity as a range error; the lexer
// has already guaranteed the lexeme is syntactically valid.
func parseFloatBits(lex string, bits int) (float64, error) {
	f, err := strconv.ParseFloat(lex, bits)
	if err != nil {
		return 0, err
	}
	return f, nil
}
