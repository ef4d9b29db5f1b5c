package cli

import (
	"regexp"
	"strings"
)

// Client-side form checks. These only gate prompts; the server remains the
// authority and its field errors are shown verbatim.

var emailPattern = regexp.MustCompile(`^[A-Z0-9a-z._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)

// minPasswordLength is the minimum accepted password length at registration.
const minPasswordLength = 6

func isValidEmail(s string) bool {
	return emailPattern.MatchString(strings.TrimSpace(s))
}

func isValidPassword(pw []byte) bool {
	return len(pw) >= minPasswordLength
}
