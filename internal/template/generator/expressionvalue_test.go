package generator

import (
	"math/rand"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		expression string
		matches    string
	}{
		{
			name:       "lowercase range",
			expression: "[a-z]{4}",
			matches:    `^[a-z]{4}$`,
		},
		{
			name:       "mixed ranges",
			expression: "[a-zA-Z0-9]{8}",
			matches:    `^[a-zA-Z0-9]{8}$`,
		},
		{
			name:       "literal prefix and suffix",
			expression: "test[0-9]{1}x",
			matches:    `^test[0-9]x$`,
		},
		{
			name:       "hex digits",
			expression: "0x[A-F0-9]{4}",
			matches:    `^0x[A-F0-9]{4}$`,
		},
		{
			name:       "digit class",
			expression: `admin[\d]{3}`,
			matches:    `^admin[0-9]{3}$`,
		},
		{
			name:       "word class",
			expression: `[\w]{20}`,
			matches:    `^[a-zA-Z0-9_]{20}$`,
		},
		{
			name:       "alphanumeric class",
			expression: `[\a]{10}`,
			matches:    `^[a-zA-Z0-9]{10}$`,
		},
		{
			name:       "no expression is returned verbatim",
			expression: "plain-value",
			matches:    `^plain-value$`,
		},
		{
			name:       "multiple expressions",
			expression: "[a-z]{2}-[0-9]{2}",
			matches:    `^[a-z]{2}-[0-9]{2}$`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			gen := NewExpressionValueGenerator(rand.New(rand.NewSource(1337)))
			value, err := gen.GenerateValue(tt.expression)

			require.NoError(t, err)
			s, ok := value.(string)
			require.True(t, ok, "generated value should be a string")
			assert.Regexp(t, regexp.MustCompile(tt.matches), s)
		})
	}
}

func TestGenerateValueErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		expression string
		errMsg     string
	}{
		{
			name:       "missing length",
			expression: "[a-z]",
			errMsg:     "{length}",
		},
		{
			name:       "missing closing bracket",
			expression: "[a-z{4}",
			errMsg:     "closing bracket",
		},
		{
			name:       "non-numeric length",
			expression: "[a-z]{abc}",
			errMsg:     "non-numeric",
		},
		{
			name:       "zero length",
			expression: "[a-z]{0}",
			errMsg:     "between 1 and",
		},
		{
			name:       "length over the cap",
			expression: "[a-z]{1000}",
			errMsg:     "between 1 and",
		},
		{
			name:       "unknown character class",
			expression: `[\z]{4}`,
			errMsg:     "unknown character class",
		},
		{
			name:       "invalid span",
			expression: "[9-0]{4}",
			errMsg:     "invalid character span",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			gen := NewExpressionValueGenerator(rand.New(rand.NewSource(1)))
			_, err := gen.GenerateValue(tt.expression)

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestGenerateValueIsSeedDeterministic(t *testing.T) {
	t.Parallel()

	a, err := NewExpressionValueGenerator(rand.New(rand.NewSource(42))).GenerateValue("[a-zA-Z0-9]{40}")
	require.NoError(t, err)
	b, err := NewExpressionValueGenerator(rand.New(rand.NewSource(42))).GenerateValue("[a-zA-Z0-9]{40}")
	require.NoError(t, err)

	assert.Equal(t, a, b)
}
