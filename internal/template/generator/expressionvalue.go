package generator

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
)

// ExpressionValueGenerator generates random strings from a small
// regexp-like expression syntax. The expression may mix literal text
// with any number of "[ranges]{length}" constructs; each construct is
// replaced by length characters drawn at random from the listed ranges.
//
// Ranges are single characters ("x"), spans over the ASCII alphabet or
// digits ("a-z", "A-F", "0-9"), or one of the escaped classes:
//
//	\w	alphanumeric characters plus underscore
//	\d	digits
//	\a	alphanumeric characters
//	\A	punctuation and symbol characters
//
// Examples:
//
//	"test[0-9]{1}x"    => "test7x"
//	"0x[A-F0-9]{4}"    => "0x1D3F"
//	"[a-zA-Z0-9]{8}"   => "hW4yQU4i"
//	"admin[\d]{3}"     => "admin038"
type ExpressionValueGenerator struct {
	seed *rand.Rand
}

const (
	alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digits   = "0123456789"
	symbols  = "~!@#$%^&*()-_+={}[]\\|<,>.?/\"';:`"

	// maxValueLength caps a single [ranges]{length} expansion so a typo
	// in a template cannot ask for an unbounded amount of output.
	maxValueLength = 255
)

// NewExpressionValueGenerator creates a generator drawing randomness
// from seed.
func NewExpressionValueGenerator(seed *rand.Rand) ExpressionValueGenerator {
	return ExpressionValueGenerator{seed: seed}
}

// GenerateValue expands every [ranges]{length} construct in the
// expression, leaving surrounding literal text untouched.
func (g ExpressionValueGenerator) GenerateValue(expression string) (interface{}, error) {
	var out strings.Builder
	rest := expression
	for {
		start := strings.Index(rest, "[")
		if start < 0 {
			out.WriteString(rest)
			return out.String(), nil
		}
		out.WriteString(rest[:start])
		rest = rest[start:]

		ranges, length, tail, err := splitExpression(rest)
		if err != nil {
			return "", err
		}
		chars, err := expandRanges(ranges)
		if err != nil {
			return "", err
		}
		for i := 0; i < length; i++ {
			out.WriteByte(chars[g.seed.Intn(len(chars))])
		}
		rest = tail
	}
}

// splitExpression consumes one leading "[ranges]{length}" construct and
// returns its parts along with the unconsumed remainder.
func splitExpression(s string) (ranges string, length int, rest string, err error) {
	end := strings.Index(s, "]")
	if end < 0 {
		return "", 0, "", fmt.Errorf("expression %q is missing a closing bracket", s)
	}
	ranges = s[1:end]
	rest = s[end+1:]
	if !strings.HasPrefix(rest, "{") {
		return "", 0, "", fmt.Errorf("expression %q is missing a {length} specifier", s)
	}
	close := strings.Index(rest, "}")
	if close < 0 {
		return "", 0, "", fmt.Errorf("expression %q is missing a closing brace", s)
	}
	length, err = strconv.Atoi(rest[1:close])
	if err != nil {
		return "", 0, "", fmt.Errorf("expression %q has a non-numeric length: %w", s, err)
	}
	if length < 1 || length > maxValueLength {
		return "", 0, "", fmt.Errorf("expression length must be between 1 and %d", maxValueLength)
	}
	return ranges, length, rest[close+1:], nil
}

// expandRanges turns a range list such as "a-zA-Z0-9" into the set of
// characters it covers, without duplicates.
func expandRanges(ranges string) (string, error) {
	if ranges == "" {
		return "", fmt.Errorf("expression has an empty character range")
	}
	var seen [128]bool
	var out []byte
	add := func(chars string) {
		for i := 0; i < len(chars); i++ {
			if !seen[chars[i]] {
				seen[chars[i]] = true
				out = append(out, chars[i])
			}
		}
	}
	for i := 0; i < len(ranges); {
		switch {
		case ranges[i] == '\\' && i+1 < len(ranges):
			class, err := characterClass(ranges[i+1])
			if err != nil {
				return "", err
			}
			add(class)
			i += 2
		case i+2 < len(ranges) && ranges[i+1] == '-':
			span, err := characterSpan(ranges[i], ranges[i+2])
			if err != nil {
				return "", err
			}
			add(span)
			i += 3
		default:
			add(ranges[i : i+1])
			i++
		}
	}
	return string(out), nil
}

// characterClass resolves an escaped class to its character set.
func characterClass(c byte) (string, error) {
	switch c {
	case 'w':
		return alphabet + digits + "_", nil
	case 'd':
		return digits, nil
	case 'a':
		return alphabet + digits, nil
	case 'A':
		return symbols, nil
	default:
		return "", fmt.Errorf("unknown character class \\%c", c)
	}
}

// characterSpan resolves a from-to span such as a-z against the known
// alphabets.
func characterSpan(from, to byte) (string, error) {
	for _, set := range []string{alphabet, digits} {
		i := strings.IndexByte(set, from)
		j := strings.IndexByte(set, to)
		if i >= 0 && j >= i {
			return set[i : j+1], nil
		}
	}
	return "", fmt.Errorf("invalid character span %c-%c", from, to)
}
