package fastjson

import (
	"math"
	"reflect"
	"sort"
	"strconv"
)

// writer appends canonical JSON text to a byte buffer. Compact by default;
// pretty mode indents by two spaces with one member or element per line.
type writer struct {
	buf    []byte
	pretty bool
	depth  int
}

func (w *writer) newlineIndent() {
	w.buf = append(w.buf, '\n')
	for i := 0; i < w.depth; i++ {
		w.buf = append(w.buf, ' ', ' ')
	}
}

func (w *writer) open(c byte) {
	w.buf = append(w.buf, c)
	w.depth++
}

func (w *writer) close(c byte, empty bool) {
	w.depth--
	if w.pretty && !empty {
		w.newlineIndent()
	}
	w.buf = append(w.buf, c)
}

// sep writes the separator before the next element or member.
func (w *writer) sep(first *bool) {
	if !*first {
		w.buf = append(w.buf, ',')
	}
	*first = false
	if w.pretty {
		w.newlineIndent()
	}
}

func (w *writer) key(k string) {
	w.appendString(k)
	w.buf = append(w.buf, ':')
	if w.pretty {
		w.buf = append(w.buf, ' ')
	}
}

// appendString writes a quoted, escaped JSON string. Quote, backslash and
// control bytes below 0x20 are escaped; everything else passes through as
// UTF-8.
func (w *writer) appendString(s string) {
	w.buf = append(w.buf, '"')
	start := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '"' && c != '\\' && c >= 0x20 {
			continue
		}
		w.buf = append(w.buf, s[start:i]...)
		switch c {
		case '"', '\\':
			w.buf = append(w.buf, '\\', c)
		case '\b':
			w.buf = append(w.buf, '\\', 'b')
		case '\f':
			w.buf = append(w.buf, '\\', 'f')
		case '\n':
			w.buf = append(w.buf, '\\', 'n')
		case '\r':
			w.buf = append(w.buf, '\\', 'r')
		case '\t':
			w.buf = append(w.buf, '\\', 't')
		default:
			const hex = "0123456789abcdef"
			w.buf = append(w.buf, '\\', 'u', '0', '0', hex[c>>4], hex[c&0xF])
		}
		start = i + 1
	}
	w.buf = append(w.buf, s[start:]...)
	w.buf = append(w.buf, '"')
}

// appendFloat writes the shortest decimal form that round-trips to the same
// binary value, guaranteeing a fractional part or exponent so the output is
// never ambiguous with an integer. The caller has already rejected
// non-finite values.
func (w *writer) appendFloat(f float64, bits int) {
	abs := math.Abs(f)
	format := byte('f')
	if abs != 0 {
		if bits == 64 && (abs < 1e-6 || abs >= 1e21) ||
			bits == 32 && (float32(abs) < 1e-6 || float32(abs) >= 1e21) {
			format = 'e'
		}
	}
	mark := len(w.buf)
	w.buf = strconv.AppendFloat(w.buf, f, format, -1, bits)
	if format == 'e' {
		// clean up e-09 to e-9
		n := len(w.buf)
		if n >= 4 && w.buf[n-4] == 'e' && w.buf[n-3] == '-' && w.buf[n-2] == '0' {
			w.buf[n-2] = w.buf[n-1]
			w.buf = w.buf[:n-1]
		}
		return
	}
	for _, c := range w.buf[mark:] {
		if c == '.' {
			return
		}
	}
	w.buf = append(w.buf, '.', '0')
}

// writeValue renders a Value tree. Number lexemes are emitted verbatim, so
// canonical output is idempotent.
func (w *writer) writeValue(v *Value) {
	switch v.Kind() {
	case KindNull:
		w.buf = append(w.buf, "null"...)
	case KindBool:
		if v.b {
			w.buf = append(w.buf, "true"...)
		} else {
			w.buf = append(w.buf, "false"...)
		}
	case KindNumber:
		w.buf = append(w.buf, v.num.lex...)
	case KindString:
		w.appendString(v.str.String())
	case KindArray:
		w.open('[')
		first := true
		for _, elem := range v.arr {
			w.sep(&first)
			w.writeValue(elem)
		}
		w.close(']', first)
	case KindObject:
		w.open('{')
		first := true
		for i := range v.obj {
			w.sep(&first)
			w.key(v.obj[i].Key.String())
			w.writeValue(v.obj[i].Value)
		}
		w.close('}', first)
	}
}

// marshalValue serializes an arbitrary Go value by reflection, consulting
// the descriptor registry for structs and enum variants.
func (w *writer) marshalValue(rv reflect.Value, path string) *Error {
	if !rv.IsValid() {
		w.buf = append(w.buf, "null"...)
		return nil
	}

	t := rv.Type()
	if t == valueType {
		v := rv.Interface().(Value)
		w.writeValue(&v)
		return nil
	}
	if t == valuePtrType {
		if rv.IsNil() {
			w.buf = append(w.buf, "null"...)
			return nil
		}
		w.writeValue(rv.Interface().(*Value))
		return nil
	}
	if t.Kind() == reflect.Struct {
		if b, ok := bindingFor(t); ok {
			return w.marshalVariant(b, rv, path)
		}
	}

	switch t.Kind() {
	case reflect.Bool:
		if rv.Bool() {
			w.buf = append(w.buf, "true"...)
		} else {
			w.buf = append(w.buf, "false"...)
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		w.buf = strconv.AppendInt(w.buf, rv.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		w.buf = strconv.AppendUint(w.buf, rv.Uint(), 10)
	case reflect.Float32:
		f := rv.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return newValueError(KindNumberOutOfRange, path, "non-finite number %v cannot be serialized", f)
		}
		w.appendFloat(f, 32)
	case reflect.Float64:
		f := rv.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return newValueError(KindNumberOutOfRange, path, "non-finite number %v cannot be serialized", f)
		}
		w.appendFloat(f, 64)
	case reflect.String:
		w.appendString(rv.String())
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			w.buf = append(w.buf, "null"...)
			return nil
		}
		return w.marshalValue(rv.Elem(), path)
	case reflect.Slice:
		w.open('[')
		first := true
		for i := 0; i < rv.Len(); i++ {
			w.sep(&first)
			if err := w.marshalValue(rv.Index(i), childIndex(path, i)); err != nil {
				return err
			}
		}
		w.close(']', first)
	case reflect.Map:
		return w.marshalMap(rv, path)
	case reflect.Struct:
		return w.marshalRecord(rv, path)
	default:
		return newValueError(KindTypeMismatch, path, "unsupported type %s", t)
	}
	return nil
}

// marshalRecord writes a struct as an object, fields in descriptor order.
func (w *writer) marshalRecord(rv reflect.Value, path string) *Error {
	rec, err := recordFor(rv.Type())
	if err != nil {
		return newValueError(KindTypeMismatch, path, "%v", err)
	}
	w.open('{')
	first := true
	if err := w.marshalRecordFields(rec, rv, path, &first); err != nil {
		return err
	}
	w.close('}', first)
	return nil
}

func (w *writer) marshalRecordFields(rec *Record, rv reflect.Value, path string, first *bool) *Error {
	for i := range rec.Fields {
		f := &rec.Fields[i]
		if f.Skip {
			continue
		}
		fv := rv.Field(f.index)
		if f.OmitEmpty && isAbsent(fv) {
			continue
		}
		w.sep(first)
		w.key(f.JSONName)
		if err := w.marshalValue(fv, childField(path, f.JSONName)); err != nil {
			return err
		}
	}
	return nil
}

// marshalVariant writes a registered enum variant: unit variants as a bare
// string, newtype variants under a "data" key, struct variants with their
// fields inline beside the "type" key.
func (w *writer) marshalVariant(b variantBinding, rv reflect.Value, path string) *Error {
	switch b.variant.Shape {
	case ShapeUnit:
		w.appendString(b.variant.Name)
		return nil
	case ShapeNewtype:
		w.open('{')
		first := true
		w.sep(&first)
		w.key(discriminatorKey)
		w.appendString(b.variant.Name)
		w.sep(&first)
		w.key(payloadKey)
		payload := rv.Field(newtypeField(rv.Type()).Index[0])
		if err := w.marshalValue(payload, childField(path, payloadKey)); err != nil {
			return err
		}
		w.close('}', false)
		return nil
	default:
		rec, err := recordFor(rv.Type())
		if err != nil {
			return newValueError(KindTypeMismatch, path, "%v", err)
		}
		w.open('{')
		first := true
		w.sep(&first)
		w.key(discriminatorKey)
		w.appendString(b.variant.Name)
		if err := w.marshalRecordFields(rec, rv, path, &first); err != nil {
			return err
		}
		w.close('}', false)
		return nil
	}
}

// marshalMap writes a string-keyed map as an object with sorted keys, so
// output is deterministic.
func (w *writer) marshalMap(rv reflect.Value, path string) *Error {
	if rv.Type().Key().Kind() != reflect.String {
		return newValueError(KindTypeMismatch, path, "unsupported map key type %s", rv.Type().Key())
	}
	keys := make([]string, 0, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		keys = append(keys, iter.Key().String())
	}
	sort.Strings(keys)

	w.open('{')
	first := true
	for _, k := range keys {
		w.sep(&first)
		w.key(k)
		elem := rv.MapIndex(reflect.ValueOf(k).Convert(rv.Type().Key()))
		if err := w.marshalValue(elem, childField(path, k)); err != nil {
			return err
		}
	}
	w.close('}', first)
	return nil
}

// isAbsent reports whether a field value is the Optional-absent state for
// omitempty purposes: a nil pointer, interface, slice or map.
func isAbsent(rv reflect.Value) bool {
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Slice, reflect.Map:
		return rv.IsNil()
	default:
		return false
	}
}

var (
	valueType    = reflect.TypeOf((*Value)(nil)).Elem()
	valuePtrType = reflect.TypeOf((**Value)(nil)).Elem()
)

// childField extends a dotted error path with a field or key name.
func childField(path, name string) string {
	if path == "" {
		return name
	}
	return path + "." + name
}

// childIndex extends an error path with an element index.
func childIndex(path string, i int) string {
	if path == "" {
		return "[" + strconv.Itoa(i) + "]"
	}
	return path + "[" + strconv.Itoa(i) + "]"
}
