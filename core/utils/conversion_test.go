package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseDecimal(t *testing.T) {
	// Comma and period separators must normalize to the same value
	assert.Equal(t, 12.34, ParseDecimal("12,34"))
	assert.Equal(t, 12.34, ParseDecimal("12.34"))
	assert.Equal(t, 12.34, ParseDecimal(" 12.34 "))
	assert.Equal(t, 100.0, ParseDecimal("100"))

	// Garbage degrades to zero
	assert.Equal(t, 0.0, ParseDecimal(""))
	assert.Equal(t, 0.0, ParseDecimal("abc"))
	assert.Equal(t, 0.0, ParseDecimal("12,34,56"))
}

func TestParseInt(t *testing.T) {
	assert.Equal(t, 42, ParseInt("42", 0))
	assert.Equal(t, 42, ParseInt(" 42 ", 0))
	assert.Equal(t, 7, ParseInt("", 7))
	assert.Equal(t, 7, ParseInt("4.2", 7))
	assert.Equal(t, -1, ParseInt("x", -1))
}

func TestParseIntPtr(t *testing.T) {
	v := ParseIntPtr("15")
	if assert.NotNil(t, v) {
		assert.Equal(t, 15, *v)
	}

	assert.Nil(t, ParseIntPtr(""))
	assert.Nil(t, ParseIntPtr("  "))
	assert.Nil(t, ParseIntPtr("abc"))
}

func TestParseBool(t *testing.T) {
	assert.True(t, ParseBool("true"))
	assert.True(t, ParseBool("TRUE"))
	assert.True(t, ParseBool("True"))

	assert.False(t, ParseBool(""))
	assert.False(t, ParseBool("false"))
	assert.False(t, ParseBool("1"))
	assert.False(t, ParseBool("yes"))
}
