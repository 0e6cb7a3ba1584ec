package getopt

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplitNames(t *testing.T) {
	tests := []struct {
		decl string
		want []string
	}{
		{"f", []string{"f"}},
		{"f,foo", []string{"f", "foo"}},
		{"-f,--foo", []string{"f", "foo"}},
		{"z, zim", []string{"z", "zim"}},
		{" --foo-bar , b ", []string{"foo-bar", "b"}},
		{"f,,f,-", []string{"f"}},
		{"", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.decl, func(t *testing.T) {
			require.Equal(t, tt.want, SplitNames(tt.decl))
		})
	}
}

func TestNewOption_Defaults(t *testing.T) {
	o := NewOption("-f,--foo-bar")

	require.Equal(t, []string{"f", "foo-bar"}, o.Names())
	require.Equal(t, []string{"-f", "--foo-bar"}, o.Flags())
	require.Equal(t, []string{"f"}, o.Short())
	require.Equal(t, []string{"foo-bar"}, o.Long())
	require.Equal(t, "foo_bar", o.Key())
	require.Equal(t, ModeNone, o.Mode())
	require.False(t, o.Multiple())
	require.False(t, o.IsSet())
	require.Nil(t, o.Value())
	require.Empty(t, o.Values())
}

func TestNewOption_Key(t *testing.T) {
	require.Equal(t, "z", NewOption("z").Key())
	require.Equal(t, "zim", NewOption("z,zim").Key())
	require.Equal(t, "foo_bar", NewOption("f,foo-bar,fb").Key())
	require.Equal(t, "a", NewOption("a,b").Key())
	require.Equal(t, "custom", NewOption("z,zim", WithKey("custom")).Key())
	require.Empty(t, NewOption("").Key())
}

func TestOption_Record(t *testing.T) {
	single := NewOption("f", WithMode(ModeOptional))
	single.record(true)
	single.record("baz")
	require.Equal(t, "baz", single.Value())
	require.Equal(t, []any{"baz"}, single.Values())

	multi := NewOption("f", WithMultiple(true))
	multi.record(true)
	multi.record("baz")
	require.Equal(t, []any{true, "baz"}, multi.Value())

	// Value returns a copy of the accumulated sequence.
	v := multi.Value().([]any)
	v[0] = "mutated"
	require.Equal(t, []any{true, "baz"}, multi.Values())

	multi.Reset()
	require.False(t, multi.IsSet())
	require.Nil(t, multi.Value())
}

func TestMode_Parse(t *testing.T) {
	tests := []struct {
		in   string
		want Mode
	}{
		{"", ModeNone},
		{"none", ModeNone},
		{"Required", ModeRequired},
		{"req", ModeRequired},
		{" optional ", ModeOptional},
		{"opt", ModeOptional},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMode(tt.in)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}

	_, err := ParseMode("sometimes")
	require.ErrorIs(t, err, ErrInvalidMode)
}

func TestMode_Text(t *testing.T) {
	for name := range Modes() {
		var m Mode

		require.NoError(t, m.UnmarshalText([]byte(name)))

		text, err := m.MarshalText()
		require.NoError(t, err)
		require.Equal(t, name, string(text))
	}

	require.Equal(t, []string{"none", "required", "optional"}, slices.Collect(Modes()))
	require.Equal(t, "Mode(7)", Mode(7).String())
}

func TestFlag(t *testing.T) {
	require.Equal(t, "-f", Flag("f"))
	require.Equal(t, "--foo", Flag("foo"))
	require.Equal(t, "-λ", Flag("λ"))
	require.True(t, IsShort("λ"))
	require.False(t, IsShort("ab"))
}
