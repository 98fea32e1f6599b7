package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsSymbol(t *testing.T) {
	valid := []string{
		"LOOP_START",
		"Sys.init",
		"a",
		"_private",
		":entry",
		"label.with:every_kind9",
		"x$y",
	}
	for _, s := range valid {
		assert.True(t, IsSymbol(s), s)
	}

	invalid := []string{
		"",
		"3loop",
		"$ret",
		"has space",
		"dash-es",
		"percent%",
	}
	for _, s := range invalid {
		assert.False(t, IsSymbol(s), s)
	}
}
