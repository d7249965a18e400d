package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateEmail(t *testing.T) {
	assert.True(t, ValidateEmail("asha.kumar+hr@example.co.in"))
	assert.False(t, ValidateEmail("asha@"))
	assert.False(t, ValidateEmail("no-at-sign.example.com"))
}

func TestValidatePassword(t *testing.T) {
	ok, msg := ValidatePassword("short")
	assert.False(t, ok)
	assert.Contains(t, msg, "at least 8")

	ok, _ = ValidatePassword(strings.Repeat("x", 73))
	assert.False(t, ok)

	ok, msg = ValidatePassword("long-enough")
	assert.True(t, ok)
	assert.Empty(t, msg)
}

func TestEmployeeCodes(t *testing.T) {
	assert.Equal(t, "GSS001", NormalizeEmployeeCode(" gss001\x00 "))
	assert.True(t, ValidEmployeeCode("GSS001"))
	assert.True(t, ValidEmployeeCode("EMP1234"))
	assert.False(t, ValidEmployeeCode("GSS01"))
	assert.False(t, ValidEmployeeCode("001"))
}
