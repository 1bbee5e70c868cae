package stringtest_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"go.jacobcolvin.com/perfwrap/stringtest"
)

func TestJoinLF(t *testing.T) {
	t.Parallel()

	assert.Empty(t, stringtest.JoinLF())
	assert.Equal(t, "a", stringtest.JoinLF("a"))
	assert.Equal(t, "a\nb\n", stringtest.JoinLF("a", "b", ""))
}

func TestInput(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input string
		want  string
	}{
		"empty string": {
			input: "",
			want:  "",
		},
		"single line with both newlines": {
			input: "\nhello\n",
			want:  "hello",
		},
		"common indent spaces": {
			input: `
    10,,cycles:u
    20,,instructions:u`,
			want: "10,,cycles:u\n20,,instructions:u",
		},
		"common indent tabs": {
			input: "\n\tline1\n\tline2",
			want:  "line1\nline2",
		},
		"varying indent": {
			input: `
    line1
      indented
    line3`,
			want: "line1\n  indented\nline3",
		},
		"blank lines keep their place": {
			input: "\n  a\n\n  b\n",
			want:  "a\n\nb",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, stringtest.Input(tc.input))
		})
	}
}

func TestInputRawLiteral(t *testing.T) {
	t.Parallel()

	got := stringtest.Input(`
		profiles:
		  - name: llc
	`)

	assert.Equal(t, "profiles:\n  - name: llc", got)
}
