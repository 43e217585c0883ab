package fastjson

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnmarshal_Primitives(t *testing.T) {
	var b bool
	require.NoError(t, UnmarshalString("true", &b))
	assert.True(t, b)

	var s string
	require.NoError(t, UnmarshalString(`"hello"`, &s))
	assert.Equal(t, "hello", s)

	var i int32
	require.NoError(t, UnmarshalString("-100", &i))
	assert.Equal(t, int32(-100), i)

	var u uint64
	require.NoError(t, UnmarshalString("18446744073709551615", &u))
	assert.Equal(t, uint64(18446744073709551615), u)

	var f float64
	require.NoError(t, UnmarshalString("2.5e3", &f))
	assert.Equal(t, 2500.0, f)

	var f32 float32
	require.NoError(t, UnmarshalString("1.5", &f32))
	assert.Equal(t, float32(1.5), f32)
}

func TestUnmarshal_TypeMismatch(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		target func() any
	}{
		{"number into bool", "1", func() any { return new(bool) }},
		{"string into int", `"42"`, func() any { return new(int) }},
		{"bool into string", "true", func() any { return new(string) }},
		{"object into slice", `{}`, func() any { return new([]int) }},
		{"array into struct", `[]`, func() any { return new(person) }},
		{"null into string", "null", func() any { return new(string) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := UnmarshalString(tt.input, tt.target())
			require.Error(t, err)
			assert.True(t, errors.Is(err, KindError(KindTypeMismatch)))
		})
	}
}

func TestUnmarshal_NumericRangeChecks(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		target   func() any
		wantKind ErrorKind
	}{
		{"int8 overflow", "128", func() any { return new(int8) }, KindNumberOutOfRange},
		{"int8 underflow", "-129", func() any { return new(int8) }, KindNumberOutOfRange},
		{"negative into uint32", "-1", func() any { return new(uint32) }, KindNumberOutOfRange},
		{"uint8 overflow", "256", func() any { return new(uint8) }, KindNumberOutOfRange},
		{"int64 overflow", "9223372036854775808", func() any { return new(int64) }, KindNumberOutOfRange},
		{"float64 overflow", "1e400", func() any { return new(float64) }, KindNumberOutOfRange},
		{"float32 overflow", "1e39", func() any { return new(float32) }, KindNumberOutOfRange},
		{"fraction into int", "1.5", func() any { return new(int) }, KindFractionalValueForInteger},
		{"exponent form into int", "1e2", func() any { return new(int) }, KindFractionalValueForInteger},
		{"fraction into uint", "2.0", func() any { return new(uint16) }, KindFractionalValueForInteger},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := UnmarshalString(tt.input, tt.target())
			require.Error(t, err)
			assert.True(t, errors.Is(err, KindError(tt.wantKind)), "got: %v", err)
		})
	}
}

func TestUnmarshal_BoundaryValuesAccepted(t *testing.T) {
	var i8 int8
	require.NoError(t, UnmarshalString("-128", &i8))
	assert.Equal(t, int8(-128), i8)

	var u8 uint8
	require.NoError(t, UnmarshalString("255", &u8))
	assert.Equal(t, uint8(255), u8)
}

func TestUnmarshal_Optional(t *testing.T) {
	type record struct {
		Email *string `fastjson:"email"`
	}

	var r record
	require.NoError(t, UnmarshalString(`{"email":"x@y.z"}`, &r))
	require.NotNil(t, r.Email)
	assert.Equal(t, "x@y.z", *r.Email)

	r = record{}
	require.NoError(t, UnmarshalString(`{"email":null}`, &r))
	assert.Nil(t, r.Email)

	r = record{}
	require.NoError(t, UnmarshalString(`{}`, &r))
	assert.Nil(t, r.Email)
}

func TestUnmarshal_MissingRequiredField(t *testing.T) {
	var p person
	err := UnmarshalString(`{"name":"x","tags":[]}`, &p)
	require.Error(t, err)

	var codecErr *Error
	require.True(t, errors.As(err, &codecErr))
	assert.Equal(t, KindMissingField, codecErr.Kind)
	assert.Equal(t, "age", codecErr.Path)
	assert.Contains(t, err.Error(), `"age"`)
}

func TestUnmarshal_UnknownKeysIgnored(t *testing.T) {
	var p person
	err := UnmarshalString(`{"name":"x","age":1,"tags":[],"extra":123,"more":{"a":[true]}}`, &p)
	require.NoError(t, err)
	assert.Equal(t, "x", p.Name)
}

func TestUnmarshal_SkippedFieldLeftAlone(t *testing.T) {
	var p person
	require.NoError(t, UnmarshalString(`{"name":"x","age":1,"tags":[],"Internal":"ignored"}`, &p))
	assert.Empty(t, p.Internal)
}

func TestUnmarshal_ErrorPaths(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		target   func() any
		wantPath string
	}{
		{
			"element index",
			`[1, 2, "x"]`,
			func() any { return new([]int) },
			"[2]",
		},
		{
			"field then index",
			`{"name":"n","age":1,"tags":["ok", 5]}`,
			func() any { return new(person) },
			"tags[1]",
		},
		{
			"nested field",
			`{"lookup":{"a":"not a number"}}`,
			func() any {
				return &struct {
					Lookup map[string]int `fastjson:"lookup"`
				}{}
			},
			"lookup.a",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := UnmarshalString(tt.input, tt.target())
			require.Error(t, err)

			var codecErr *Error
			require.True(t, errors.As(err, &codecErr))
			assert.Equal(t, tt.wantPath, codecErr.Path)
		})
	}
}

func TestUnmarshal_TargetUntouchedOnError(t *testing.T) {
	p := person{Name: "keep", Age: 9, Tags: []string{"orig"}}
	err := UnmarshalString(`{"name":"x","age":1,"tags":[true]}`, &p)
	require.Error(t, err)
	assert.Equal(t, person{Name: "keep", Age: 9, Tags: []string{"orig"}}, p)
}

func TestUnmarshal_Map(t *testing.T) {
	var m map[string]int64
	require.NoError(t, UnmarshalString(`{"a":1,"b":-2}`, &m))
	assert.Equal(t, map[string]int64{"a": 1, "b": -2}, m)
}

func TestUnmarshal_Enums(t *testing.T) {
	holder := struct {
		Status Status `fastjson:"status"`
	}{}

	require.NoError(t, UnmarshalString(`{"status":"Active"}`, &holder))
	assert.Equal(t, Active{}, holder.Status)

	require.NoError(t, UnmarshalString(`{"status":{"type":"Pending","data":"hi"}}`, &holder))
	assert.Equal(t, Pending{Message: "hi"}, holder.Status)

	require.NoError(t, UnmarshalString(`{"status":{"type":"Custom","code":7,"message":"m"}}`, &holder))
	assert.Equal(t, Custom{Code: 7, Message: "m"}, holder.Status)

	// null is the absent state and clears a previously set variant.
	require.NoError(t, UnmarshalString(`{"status":null}`, &holder))
	assert.Nil(t, holder.Status)
}

func TestUnmarshal_EnumErrors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantKind ErrorKind
	}{
		{"unknown string variant", `"Retired"`, KindUnknownVariant},
		{"unknown tagged variant", `{"type":"Retired"}`, KindUnknownVariant},
		{"missing discriminator", `{"data":"hi"}`, KindUnknownVariant},
		{"non-string discriminator", `{"type":42}`, KindTypeMismatch},
		{"newtype without data", `{"type":"Pending"}`, KindMissingField},
		{"newtype as bare string", `"Pending"`, KindTypeMismatch},
		{"unit in object form", `{"type":"Active"}`, KindTypeMismatch},
		{"number is neither form", `42`, KindTypeMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s Status
			err := UnmarshalString(tt.input, &s)
			require.Error(t, err)
			assert.True(t, errors.Is(err, KindError(tt.wantKind)), "got: %v", err)
		})
	}
}

func TestUnmarshal_ConcreteVariantTarget(t *testing.T) {
	var p Pending
	require.NoError(t, UnmarshalString(`{"type":"Pending","data":"soon"}`, &p))
	assert.Equal(t, "soon", p.Message)

	// A document naming a different variant cannot fill this target.
	err := UnmarshalString(`"Active"`, &p)
	require.Error(t, err)
	assert.True(t, errors.Is(err, KindError(KindTypeMismatch)))

	// Neither can null: the absent state only exists for interface targets.
	err = UnmarshalString(`null`, &p)
	require.Error(t, err)
	assert.True(t, errors.Is(err, KindError(KindTypeMismatch)))
}

func TestUnmarshal_ValueTargets(t *testing.T) {
	var v *Value
	require.NoError(t, UnmarshalString(`{"a":[1,2]}`, &v))
	assert.Equal(t, 2, v.Get("a").Len())

	holder := struct {
		Raw Value `fastjson:"raw"`
	}{}
	require.NoError(t, UnmarshalString(`{"raw":{"keep":"as-is"}}`, &holder))
	s, ok := holder.Raw.Get("keep").Str()
	require.True(t, ok)
	assert.Equal(t, "as-is", s)
}
