package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Hello World", "hello-world"},
		{"  Trimmed  Title  ", "trimmed-title"},
		{"Already-Slugged", "already-slugged"},
		{"C++ & Go: A Comparison!", "c-go-a-comparison"},
		{"UPPER case 123", "upper-case-123"},
		{"---", ""},
		{"", ""},
		{"émigré café", "migr-caf"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, Slugify(tc.in), "input %q", tc.in)
	}
}
