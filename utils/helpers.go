package utils

import (
	"net/url"
	"strconv"
	"strings"
	"unicode"
)

// IsURL reports whether s parses as an absolute URL with a scheme and host.
func IsURL(s string) bool {
	if s == "" {
		return false
	}
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return u.Scheme != "" && u.Host != ""
}

// FirstInteger returns the first run of digits in s as an int. Recipe
// overrides sometimes supply values like "keep 3" rather than "3".
func FirstInteger(s string) (int, bool) {
	start := -1
	for i, r := range s {
		if unicode.IsDigit(r) {
			if start == -1 {
				start = i
			}
			continue
		}
		if start != -1 {
			n, err := strconv.Atoi(s[start:i])
			return n, err == nil
		}
	}
	if start != -1 {
		n, err := strconv.Atoi(s[start:])
		return n, err == nil
	}
	return 0, false
}

// Truthy normalizes the host tool's boolean-ish string inputs.
func Truthy(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "t":
		return true
	}
	return false
}
