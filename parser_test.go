package fastjson

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_SimpleObject(t *testing.T) {
	v, err := ParseString(`{"name": "John Doe", "age": 30, "isStudent": false, "city": null}`)
	require.NoError(t, err)

	require.Equal(t, KindObject, v.Kind())
	assert.Equal(t, 4, v.Len())

	name, ok := v.Get("name").Str()
	require.True(t, ok)
	assert.Equal(t, "John Doe", name)

	age, ok := v.Get("age").Int64()
	require.True(t, ok)
	assert.Equal(t, int64(30), age)

	isStudent, ok := v.Get("isStudent").Bool()
	require.True(t, ok)
	assert.False(t, isStudent)

	assert.True(t, v.Get("city").IsNull())
	assert.Nil(t, v.Get("missing"))
}

func TestParse_NestedStructure(t *testing.T) {
	v, err := ParseString(`{"items": [1, {"deep": [true]}], "empty": {}, "none": []}`)
	require.NoError(t, err)

	items := v.Get("items")
	require.Equal(t, KindArray, items.Kind())
	assert.Equal(t, 2, items.Len())

	deep := items.Index(1).Get("deep")
	require.NotNil(t, deep)
	b, ok := deep.Index(0).Bool()
	require.True(t, ok)
	assert.True(t, b)

	assert.Equal(t, 0, v.Get("empty").Len())
	assert.Equal(t, 0, v.Get("none").Len())
}

func TestParse_Scalars(t *testing.T) {
	tests := []struct {
		input string
		kind  ValueKind
	}{
		{"null", KindNull},
		{"true", KindBool},
		{"false", KindBool},
		{"42", KindNumber},
		{`"hi"`, KindString},
		{" 42 ", KindNumber},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			v, err := ParseString(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.kind, v.Kind())
		})
	}
}

func TestParse_DuplicateKeysLastWins(t *testing.T) {
	v, err := ParseString(`{"a": 1, "b": true, "a": 2}`)
	require.NoError(t, err)

	assert.Equal(t, 2, v.Len())
	a, ok := v.Get("a").Int64()
	require.True(t, ok)
	assert.Equal(t, int64(2), a)

	// The overwritten key keeps its original position.
	members, _ := v.Object()
	assert.Equal(t, "a", members[0].Key.String())
	assert.Equal(t, "b", members[1].Key.String())
}

func TestParse_BorrowedAndOwnedStrings(t *testing.T) {
	v, err := Parse([]byte(`{"plain": "no escapes", "escaped": "line\nbreak"}`))
	require.NoError(t, err)

	plain, ok := v.Get("plain").StringRef()
	require.True(t, ok)
	assert.True(t, plain.Borrowed())

	escaped, ok := v.Get("escaped").StringRef()
	require.True(t, ok)
	assert.False(t, escaped.Borrowed())
	assert.Equal(t, "line\nbreak", escaped.String())
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantKind ErrorKind
		wantLine int
		wantCol  int
	}{
		{"missing value", `{"a": }`, KindUnexpectedToken, 1, 7},
		{"trailing comma array", `[1, 2, ]`, KindUnexpectedToken, 1, 8},
		{"trailing comma object", `{"a": 1,}`, KindUnexpectedToken, 1, 9},
		{"unclosed object", `{"a": 1`, KindUnexpectedToken, 1, 8},
		{"bare key", `{a: 1}`, KindUnexpectedToken, 1, 2},
		{"missing colon", `{"a" 1}`, KindUnexpectedToken, 1, 6},
		{"missing comma", `[1 2]`, KindUnexpectedToken, 1, 4},
		{"trailing data", `{"a": 1} 2`, KindUnexpectedToken, 1, 10},
		{"empty input", ``, KindUnexpectedToken, 1, 1},
		{"whitespace only", "  \n ", KindUnexpectedToken, 2, 2},
		{"unterminated string", `"abc`, KindUnterminatedString, 1, 1},
		{"malformed number", `[01]`, KindMalformedNumber, 1, 3},
		{"error on later line", "{\n  \"a\": 1,\n  \"b\": ,\n}", KindUnexpectedToken, 3, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseString(tt.input)
			require.Error(t, err)

			var codecErr *Error
			require.True(t, errors.As(err, &codecErr))
			assert.Equal(t, tt.wantKind, codecErr.Kind)
			assert.True(t, codecErr.HasPos)
			assert.Equal(t, tt.wantLine, codecErr.Pos.Line)
			assert.Equal(t, tt.wantCol, codecErr.Pos.Column)
		})
	}
}

func TestParse_NoPartialResultOnError(t *testing.T) {
	v, err := ParseString(`{"a": 1, "b": [1, 2,]}`)
	require.Error(t, err)
	assert.Nil(t, v)
}

func TestParse_DeepNesting(t *testing.T) {
	const depth = 2000
	input := strings.Repeat("[", depth) + "1" + strings.Repeat("]", depth)

	v, err := ParseString(input)
	require.NoError(t, err)
	for i := 0; i < depth; i++ {
		v = v.Index(0)
		require.NotNil(t, v)
	}
	n, ok := v.Int64()
	require.True(t, ok)
	assert.Equal(t, int64(1), n)
}
