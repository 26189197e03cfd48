package domain

import "strings"

const specialChars = "!@#$%^&*()_+-=[]{};':\"\\|,.<>/?"

// PasswordPolicyError lists every policy rule the candidate password failed.
type PasswordPolicyError struct {
	Missing []string
}

func (e *PasswordPolicyError) Error() string {
	return "Password must contain: " + strings.Join(e.Missing, ", ")
}

// ValidatePassword checks a candidate password against the registration
// policy. The returned error enumerates exactly the rules that failed.
func ValidatePassword(password string) error {
	var missing []string

	if len(password) < 8 {
		missing = append(missing, "at least 8 characters")
	}
	if !strings.ContainsFunc(password, func(r rune) bool { return r >= 'A' && r <= 'Z' }) {
		missing = append(missing, "one uppercase letter")
	}
	if !strings.ContainsFunc(password, func(r rune) bool { return r >= 'a' && r <= 'z' }) {
		missing = append(missing, "one lowercase letter")
	}
	if !strings.ContainsFunc(password, func(r rune) bool { return r >= '0' && r <= '9' }) {
		missing = append(missing, "one number")
	}
	if !strings.ContainsAny(password, specialChars) {
		missing = append(missing, "one special character")
	}

	if len(missing) > 0 {
		return &PasswordPolicyError{Missing: missing}
	}
	return nil
}
