package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePath(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"/blog/hello", "/blog/hello"},
		{"/blog/hello/", "/blog/hello"},
		{"/blog/hello?utm_source=x", "/blog/hello"},
		{"/blog/hello/?page=2", "/blog/hello"},
		{"/", "/"},
		{"/?ref=home", "/"},
		{"", "/"},
		{"?ref=home", "/"},
		{"pricing", "/pricing"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, normalizePath(tc.in), "input %q", tc.in)
	}
}

func TestPageBounds(t *testing.T) {
	limit, offset := pageBounds(1, 20)
	assert.Equal(t, 20, limit)
	assert.Equal(t, 0, offset)

	limit, offset = pageBounds(3, 10)
	assert.Equal(t, 10, limit)
	assert.Equal(t, 20, offset)

	limit, offset = pageBounds(0, 0)
	assert.Equal(t, 20, limit)
	assert.Equal(t, 0, offset)

	limit, offset = pageBounds(-5, 1000)
	assert.Equal(t, 20, limit)
	assert.Equal(t, 0, offset)
}
