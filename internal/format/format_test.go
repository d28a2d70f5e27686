package format

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		pattern string
		args    []string
		want    string
	}{
		{
			name:    "two arguments",
			pattern: "<%1$s@Discord> %2$s",
			args:    []string{"Alice", "hello"},
			want:    "<Alice@Discord> hello",
		},
		{
			name:    "single argument",
			pattern: ":space_invader: %1$s has entered the server",
			args:    []string{"Bob"},
			want:    ":space_invader: Bob has entered the server",
		},
		{
			name:    "skips first argument",
			pattern: ":skull_crossbones: %2$s",
			args:    []string{"Bob", "Bob fell from a high place"},
			want:    ":skull_crossbones: Bob fell from a high place",
		},
		{
			name:    "repeated index",
			pattern: "%1$s and %1$s again",
			args:    []string{"x"},
			want:    "x and x again",
		},
		{
			name:    "percent escape",
			pattern: "100%% done by %1$s",
			args:    []string{"Eve"},
			want:    "100% done by Eve",
		},
		{
			name:    "no tokens",
			pattern: "The server is now back online.",
			args:    nil,
			want:    "The server is now back online.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := Format(tt.pattern, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatErrors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		pattern string
		args    []string
		want    error
	}{
		{
			name:    "missing argument",
			pattern: "%1$s said %3$s",
			args:    []string{"a", "b"},
			want:    ErrMissingArg,
		},
		{
			name:    "bare percent",
			pattern: "50% of players",
			want:    ErrBadVerb,
		},
		{
			name:    "unsupported verb",
			pattern: "%1$d players online",
			want:    ErrBadVerb,
		},
		{
			name:    "zero index",
			pattern: "%0$s",
			args:    []string{"a"},
			want:    ErrBadVerb,
		},
		{
			name:    "truncated token",
			pattern: "tail %1",
			args:    []string{"a"},
			want:    ErrBadVerb,
		},
		{
			name:    "three digit index",
			pattern: "%100$s",
			args:    []string{"a", "b"},
			want:    ErrBadVerb,
		},
		{
			name:    "index overflowing int64",
			pattern: "%9223372036854775808$s",
			args:    []string{"a", "b"},
			want:    ErrBadVerb,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Format(tt.pattern, tt.args...)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "got %v, want %v", err, tt.want)
		})
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	assert.NoError(t, Validate("<%1$s@Discord> %2$s", 2))
	assert.NoError(t, Validate(":skull_crossbones: %2$s", 2))
	assert.NoError(t, Validate("static text", 0))

	err := Validate("%1$s earned [%2$s]", 1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingArg))

	err = Validate("%1$x", 1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrBadVerb))

	err = Validate("%9223372036854775808$s", 2)
	require.Error(t, err, "an overflowing index must not pass validation")
	assert.True(t, errors.Is(err, ErrBadVerb))
}
