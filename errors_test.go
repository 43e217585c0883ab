package fastjson

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_Message(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		expected string
	}{
		{
			name: "positioned error",
			err: newSyntaxError(KindUnexpectedToken,
				Pos{Offset: 6, Line: 1, Column: 7}, "expected value, found %s", "'}'"),
			expected: "unexpected token: expected value, found '}' at line 1, column 7 (offset 6)",
		},
		{
			name:     "path error",
			err:      newValueError(KindTypeMismatch, "person.email", "expected string, found number"),
			expected: "type mismatch at person.email: expected string, found number",
		},
		{
			name:     "pathless typed error",
			err:      newValueError(KindNumberOutOfRange, "", "value 300 out of range for uint8"),
			expected: "number out of range: value 300 out of range for uint8",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestError_IsMatchesOnKind(t *testing.T) {
	err := newValueError(KindMissingField, "age", "missing field %q", "age")

	assert.True(t, errors.Is(err, KindError(KindMissingField)))
	assert.False(t, errors.Is(err, KindError(KindTypeMismatch)))
	assert.False(t, errors.Is(err, errors.New("missing field")))
}
