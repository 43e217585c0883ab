package fastjson

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/iancoleman/strcase"
)

// Object keys used by the internally-tagged enum encoding.
const (
	discriminatorKey = "type"
	payloadKey       = "data"
)

// NamingPolicy converts a Go field name into a JSON name when no explicit
// rename is given.
type NamingPolicy string

const (
	NamingNone      NamingPolicy = ""
	NamingSnake     NamingPolicy = "snake"
	NamingCamel     NamingPolicy = "camel"
	NamingKebab     NamingPolicy = "kebab"
	NamingScreaming NamingPolicy = "screaming"
)

func (p NamingPolicy) apply(name string) string {
	switch p {
	case NamingSnake:
		return strcase.ToSnake(name)
	case NamingCamel:
		return strcase.ToLowerCamel(name)
	case NamingKebab:
		return strcase.ToKebab(name)
	case NamingScreaming:
		return strcase.ToScreamingSnake(name)
	default:
		return name
	}
}

// Field describes one member of a record.
type Field struct {
	GoName    string
	JSONName  string // defaults to GoName
	Skip      bool   // excluded in both directions
	OmitEmpty bool   // omit the key when the value is the absent state

	index int // struct field index, resolved at derivation/registration
}

// Record is the descriptor of a struct type: its fields in declaration
// order. Records are immutable once registered.
type Record struct {
	Type   reflect.Type
	Fields []Field
}

// VariantShape describes how an enum variant carries data.
type VariantShape int

const (
	ShapeUnit    VariantShape = iota // no payload, encodes as a bare string
	ShapeNewtype                     // single payload under the "data" key
	ShapeStruct                      // fields inline beside the "type" key
)

func (s VariantShape) String() string {
	switch s {
	case ShapeUnit:
		return "unit"
	case ShapeNewtype:
		return "newtype"
	case ShapeStruct:
		return "struct"
	default:
		return "unknown"
	}
}

// Variant describes one variant of an enum: its wire name, its concrete Go
// type, and the shape of its payload.
type Variant struct {
	Name  string
	Type  reflect.Type
	Shape VariantShape
}

// Enum is the descriptor of an interface type whose implementations form a
// closed set of variants.
type Enum struct {
	Iface    reflect.Type
	Variants []Variant
}

func (e *Enum) variantByName(name string) *Variant {
	for i := range e.Variants {
		if e.Variants[i].Name == name {
			return &e.Variants[i]
		}
	}
	return nil
}

// variantBinding links a concrete variant type back to its enum.
type variantBinding struct {
	enum    *Enum
	variant *Variant
}

// The descriptor registry. Populated by explicit registration at program
// initialization and by lazy tag derivation; entries are never replaced.
var (
	recordCache  sync.Map // reflect.Type -> *Record
	enumRegistry sync.Map // reflect.Type -> *Enum
	variantIndex sync.Map // reflect.Type -> variantBinding
)

// recordFor returns the descriptor for a struct type, deriving and caching
// it from struct tags on first use.
func recordFor(t reflect.Type) (*Record, error) {
	if r, ok := recordCache.Load(t); ok {
		return r.(*Record), nil
	}
	rec, err := deriveRecord(t, NamingNone)
	if err != nil {
		return nil, err
	}
	actual, _ := recordCache.LoadOrStore(t, rec)
	return actual.(*Record), nil
}

// deriveRecord builds a Record from a struct type's fields and fastjson
// tags. Unexported fields are ignored.
func deriveRecord(t reflect.Type, renameAll NamingPolicy) (*Record, error) {
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("fastjson: cannot derive record descriptor for %s", t)
	}
	fields := make([]Field, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		f, err := fieldFromTag(t, sf, i, renameAll)
		if err != nil {
			return nil, err
		}
		fields = append(fields, f)
	}
	return &Record{Type: t, Fields: fields}, nil
}

// fieldFromTag reads a `fastjson:"name,opt,..."` tag. The name part renames
// the field; "-" skips it. Options: omitempty, snake, camel, kebab,
// screaming.
func fieldFromTag(t reflect.Type, sf reflect.StructField, index int, renameAll NamingPolicy) (Field, error) {
	f := Field{GoName: sf.Name, JSONName: renameAll.apply(sf.Name), index: index}

	tag, ok := sf.Tag.Lookup("fastjson")
	if !ok {
		return f, nil
	}
	parts := strings.Split(tag, ",")
	if parts[0] == "-" && len(parts) == 1 {
		f.Skip = true
		return f, nil
	}
	if parts[0] != "" {
		f.JSONName = parts[0]
	}
	for _, opt := range parts[1:] {
		switch opt {
		case "omitempty":
			f.OmitEmpty = true
		case "snake", "camel", "kebab", "screaming":
			if parts[0] == "" {
				f.JSONName = NamingPolicy(opt).apply(sf.Name)
			}
		case "":
		default:
			return Field{}, fmt.Errorf("fastjson: unknown tag option %q on %s.%s", opt, t, sf.Name)
		}
	}
	return f, nil
}

// RegisterRecord registers an explicit record descriptor for the struct
// type of template, overriding tag derivation. Each field's GoName must
// name an exported field; JSONName defaults to GoName. Registration must
// happen before the type is first serialized or deserialized and cannot be
// repeated.
func RegisterRecord(template any, fields []Field) error {
	t := reflect.TypeOf(template)
	if t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return fmt.Errorf("fastjson: RegisterRecord needs a struct type, got %v", t)
	}
	resolved := make([]Field, len(fields))
	for i, f := range fields {
		sf, ok := t.FieldByName(f.GoName)
		if !ok || !sf.IsExported() || len(sf.Index) != 1 {
			return fmt.Errorf("fastjson: record %s has no exported field %q", t, f.GoName)
		}
		if f.JSONName == "" {
			f.JSONName = f.GoName
		}
		f.index = sf.Index[0]
		resolved[i] = f
	}
	rec := &Record{Type: t, Fields: resolved}
	if _, loaded := recordCache.LoadOrStore(t, rec); loaded {
		return fmt.Errorf("fastjson: record descriptor for %s already registered", t)
	}
	return nil
}

// RegisterRecordNaming derives the record descriptor for template's struct
// type with a rename-all policy applied to every field that has no explicit
// rename, and registers it.
func RegisterRecordNaming(template any, policy NamingPolicy) error {
	t := reflect.TypeOf(template)
	if t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return fmt.Errorf("fastjson: RegisterRecordNaming needs a struct type, got %v", t)
	}
	rec, err := deriveRecord(t, policy)
	if err != nil {
		return err
	}
	if _, loaded := recordCache.LoadOrStore(t, rec); loaded {
		return fmt.Errorf("fastjson: record descriptor for %s already registered", t)
	}
	return nil
}

// RegisterEnum registers the closed variant set of an interface type.
// ifaceTemplate is a nil pointer to the interface, e.g.
//
//	RegisterEnum((*Status)(nil), []Variant{
//		{Name: "Active", Type: reflect.TypeFor[Active]()},
//		{Name: "Pending", Type: reflect.TypeFor[Pending](), Shape: ShapeNewtype},
//		{Name: "Custom", Type: reflect.TypeFor[Custom](), Shape: ShapeStruct},
//	})
//
// Every variant type must be a struct implementing the interface with a
// value receiver. Unit variants must have no exported fields, newtype
// variants exactly one, and no struct variant may carry a field whose JSON
// name is the discriminator key "type". Registration must happen before the
// enum is first used and cannot be repeated.
func RegisterEnum(ifaceTemplate any, variants []Variant) error {
	t := reflect.TypeOf(ifaceTemplate)
	if t == nil || t.Kind() != reflect.Pointer || t.Elem().Kind() != reflect.Interface {
		return fmt.Errorf("fastjson: RegisterEnum needs a nil pointer to an interface type")
	}
	iface := t.Elem()

	enum := &Enum{Iface: iface, Variants: make([]Variant, len(variants))}
	seen := make(map[string]bool, len(variants))
	for i, v := range variants {
		if v.Name == "" {
			return fmt.Errorf("fastjson: enum %s: variant %d has no name", iface, i)
		}
		if seen[v.Name] {
			return fmt.Errorf("fastjson: enum %s: duplicate variant name %q", iface, v.Name)
		}
		seen[v.Name] = true
		if v.Type == nil || v.Type.Kind() != reflect.Struct {
			return fmt.Errorf("fastjson: enum %s: variant %q must be a struct type", iface, v.Name)
		}
		if !v.Type.Implements(iface) {
			return fmt.Errorf("fastjson: enum %s: %s does not implement the interface", iface, v.Type)
		}
		n := exportedFieldCount(v.Type)
		switch v.Shape {
		case ShapeUnit:
			if n != 0 {
				return fmt.Errorf("fastjson: enum %s: unit variant %q must have no exported fields", iface, v.Name)
			}
		case ShapeNewtype:
			if n != 1 {
				return fmt.Errorf("fastjson: enum %s: newtype variant %q must have exactly one exported field", iface, v.Name)
			}
		case ShapeStruct:
			rec, err := recordFor(v.Type)
			if err != nil {
				return fmt.Errorf("fastjson: enum %s: variant %q: %v", iface, v.Name, err)
			}
			for _, f := range rec.Fields {
				if !f.Skip && f.JSONName == discriminatorKey {
					return fmt.Errorf("fastjson: enum %s: struct variant %q field %s collides with discriminator key %q",
						iface, v.Name, f.GoName, discriminatorKey)
				}
			}
		default:
			return fmt.Errorf("fastjson: enum %s: variant %q has invalid shape", iface, v.Name)
		}
		enum.Variants[i] = v
	}

	if _, loaded := enumRegistry.LoadOrStore(iface, enum); loaded {
		return fmt.Errorf("fastjson: enum descriptor for %s already registered", iface)
	}
	for i := range enum.Variants {
		v := &enum.Variants[i]
		if _, loaded := variantIndex.LoadOrStore(v.Type, variantBinding{enum: enum, variant: v}); loaded {
			return fmt.Errorf("fastjson: variant type %s already registered", v.Type)
		}
	}
	return nil
}

func exportedFieldCount(t reflect.Type) int {
	n := 0
	for i := 0; i < t.NumField(); i++ {
		if t.Field(i).IsExported() {
			n++
		}
	}
	return n
}

// newtypeField returns the single exported field of a newtype variant.
func newtypeField(t reflect.Type) reflect.StructField {
	for i := 0; i < t.NumField(); i++ {
		if sf := t.Field(i); sf.IsExported() {
			return sf
		}
	}
	panic("fastjson: newtype variant without exported field")
}

func enumFor(iface reflect.Type) *Enum {
	if e, ok := enumRegistry.Load(iface); ok {
		return e.(*Enum)
	}
	return nil
}

func bindingFor(concrete reflect.Type) (variantBinding, bool) {
	if b, ok := variantIndex.Load(concrete); ok {
		return b.(variantBinding), true
	}
	return variantBinding{}, false
}
