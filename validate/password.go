package validate

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Strength grades a password by how many rules it satisfies.
type Strength string

const (
	StrengthWeak   Strength = "weak"
	StrengthMedium Strength = "medium"
	StrengthStrong Strength = "strong"
)

const (
	minPasswordLength = 8
	specialChars      = "!@#$%^&*"
)

// PasswordResult is the outcome of Password.
type PasswordResult struct {
	Valid    bool
	Strength Strength
	Issues   []string
}

// Password checks length, lower and upper case letters, digits and special
// characters (!@#$%^&*). Valid requires all five; strength is weak for at
// most two satisfied rules, medium for three and strong otherwise.
func Password(pw string) PasswordResult {
	rules := []struct {
		ok    bool
		issue string
	}{
		{utf8.RuneCountInString(pw) >= minPasswordLength, "Must be at least 8 characters"},
		{strings.IndexFunc(pw, isASCIILower) >= 0, "Must contain lowercase letter"},
		{strings.IndexFunc(pw, isASCIIUpper) >= 0, "Must contain uppercase letter"},
		{strings.IndexFunc(pw, unicode.IsDigit) >= 0, "Must contain number"},
		{strings.ContainsAny(pw, specialChars), "Must contain special character"},
	}

	score := 0
	issues := []string{}
	for _, r := range rules {
		if r.ok {
			score++
		} else {
			issues = append(issues, r.issue)
		}
	}

	strength := StrengthStrong
	switch {
	case score <= 2:
		strength = StrengthWeak
	case score == 3:
		strength = StrengthMedium
	}

	return PasswordResult{
		Valid:    len(issues) == 0,
		Strength: strength,
		Issues:   issues,
	}
}

func isASCIILower(r rune) bool { return r >= 'a' && r <= 'z' }
func isASCIIUpper(r rune) bool { return r >= 'A' && r <= 'Z' }
