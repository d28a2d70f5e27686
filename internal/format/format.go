// Package format renders message templates with positional argument
// substitution. Templates use the %N$s syntax the bridge inherited from
// its configuration format, e.g. "<%1$s@Discord> %2$s".
package format

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMissingArg indicates a template referenced an argument index
	// that was not supplied.
	ErrMissingArg = errors.New("template references a missing argument")

	// ErrBadVerb indicates a malformed or unsupported substitution token.
	ErrBadVerb = errors.New("malformed substitution token")
)

// Format substitutes the positional arguments into pattern. Only %N$s
// tokens and the %% escape are supported; argument indexes are 1-based.
// Unused arguments are fine, unknown indexes are not.
func Format(pattern string, args ...string) (string, error) {
	var sb strings.Builder
	sb.Grow(len(pattern))

	if err := scan(pattern, func(index int) error {
		if index > len(args) {
			return fmt.Errorf("%w: %%%d$s with %d argument(s)", ErrMissingArg, index, len(args))
		}
		sb.WriteString(args[index-1])
		return nil
	}, func(literal string) {
		sb.WriteString(literal)
	}); err != nil {
		return "", err
	}

	return sb.String(), nil
}

// Validate checks that pattern is well formed and references no argument
// beyond argc. Used at bridge construction so malformed templates fail
// fast instead of at first relay.
func Validate(pattern string, argc int) error {
	return scan(pattern, func(index int) error {
		if index > argc {
			return fmt.Errorf("%w: %%%d$s with %d argument(s)", ErrMissingArg, index, argc)
		}
		return nil
	}, func(string) {})
}

// scan walks pattern, invoking sub for every %N$s token and lit for
// literal runs (including decoded %% escapes).
func scan(pattern string, sub func(index int) error, lit func(literal string)) error {
	for len(pattern) > 0 {
		pct := strings.IndexByte(pattern, '%')
		if pct < 0 {
			lit(pattern)
			return nil
		}

		if pct > 0 {
			lit(pattern[:pct])
			pattern = pattern[pct:]
		}

		rest := pattern[1:]
		if strings.HasPrefix(rest, "%") {
			lit("%")
			pattern = rest[1:]
			continue
		}

		index := 0
		digits := 0
		for digits < len(rest) && rest[digits] >= '0' && rest[digits] <= '9' {
			index = index*10 + int(rest[digits]-'0')
			digits++
		}

		// Indexes are capped at two digits so a long run of digits can
		// never overflow the accumulator past the bounds checks.
		if digits == 0 || digits > 2 || index == 0 || !strings.HasPrefix(rest[digits:], "$s") {
			return fmt.Errorf("%w: near %q", ErrBadVerb, truncate(pattern))
		}

		if err := sub(index); err != nil {
			return err
		}
		pattern = rest[digits+2:]
	}

	return nil
}

func truncate(s string) string {
	if len(s) > 8 {
		return s[:8]
	}
	return s
}
