// Package validate holds small input checks used by the command-line tools:
// email, URL, US phone number, card number checksum, password strength and
// emptiness.
package validate

import (
	"reflect"
	"regexp"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

var (
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRe = regexp.MustCompile(`^\+?1?\s*\(?(\d{3})\)?[-.\s]?(\d{3})[-.\s]?(\d{4})$`)

	validation = validator.New()
)

// Email reports whether s looks like local@domain.tld.
func Email(s string) bool {
	return emailRe.MatchString(s)
}

// URL reports whether s is an absolute URL with a scheme and a host.
func URL(s string) bool {
	return validation.Var(s, "required,url") == nil
}

// Phone reports whether s is a US phone number such as 123-456-7890,
// (123) 456-7890 or +1 123 456 7890.
func Phone(s string) bool {
	return phoneRe.MatchString(s)
}

// Luhn reports whether the digits of s pass the Luhn checksum. Whitespace
// is ignored; any other non-digit makes the number invalid.
func Luhn(s string) bool {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
	if cleaned == "" {
		return false
	}

	sum := 0
	double := false
	for i := len(cleaned) - 1; i >= 0; i-- {
		c := cleaned[i]
		if c < '0' || c > '9' {
			return false
		}

		d := int(c - '0')
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}

	return sum%10 == 0
}

// IsEmpty reports whether v is nil, a nil pointer, or a string, slice, map,
// array or channel of length zero. Every other value, including 0 and
// false, is not empty.
func IsEmpty(v any) bool {
	if v == nil {
		return true
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String, reflect.Slice, reflect.Map, reflect.Array, reflect.Chan:
		return rv.Len() == 0
	case reflect.Pointer, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}
