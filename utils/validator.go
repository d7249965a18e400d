// Package utils holds small input helpers shared by the services and the
// admin CLI.
package utils

import (
	"fmt"
	"regexp"
	"strings"
)

// Password bounds. bcrypt ignores everything past 72 bytes.
const (
	MinPasswordLength = 8
	MaxPasswordLength = 72
)

var (
	emailPattern        = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	employeeCodePattern = regexp.MustCompile(`^[A-Z]{1,8}[0-9]{3,}$`)
)

// ValidateEmail checks if email is valid
func ValidateEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// ValidatePassword checks the password length and returns a message for the caller.
func ValidatePassword(password string) (bool, string) {
	switch {
	case len(password) < MinPasswordLength:
		return false, fmt.Sprintf("Password must be at least %d characters", MinPasswordLength)
	case len(password) > MaxPasswordLength:
		return false, fmt.Sprintf("Password must be at most %d bytes", MaxPasswordLength)
	}
	return true, ""
}

// SanitizeInput trims spaces and strips null bytes.
func SanitizeInput(input string) string {
	return strings.ReplaceAll(strings.TrimSpace(input), "\x00", "")
}

// NormalizeEmployeeCode turns " gss001 " into "GSS001".
func NormalizeEmployeeCode(code string) string {
	return strings.ToUpper(SanitizeInput(code))
}

// ValidEmployeeCode reports whether code looks like PREFIX + digits.
func ValidEmployeeCode(code string) bool {
	return employeeCodePattern.MatchString(code)
}
