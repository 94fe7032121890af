package remote

import (
	"regexp"
	"strings"
)

// locatorPatterns are the known Google Drive link shapes, checked in order.
// Each captures the resource ID.
var locatorPatterns = []*regexp.Regexp{
	regexp.MustCompile(`/file/d/([a-zA-Z0-9_-]+)`),  // file view links
	regexp.MustCompile(`/folders/([a-zA-Z0-9_-]+)`), // folder links
	regexp.MustCompile(`/open\?id=([a-zA-Z0-9_-]+)`),
	regexp.MustCompile(`id=([a-zA-Z0-9_-]+)`), // legacy format
}

// bareIDPattern matches an input that is already an opaque resource ID
var bareIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// ResolveLocator extracts a Drive resource ID from a user-supplied string.
// The input may be a share link in any of the known shapes or a bare
// resource ID. Returns ok=false when no pattern matches and the input is
// not a legal bare ID.
//
// Local filesystem paths are not handled here; callers check the
// filesystem first and only resolve strings that are not existing paths.
func ResolveLocator(input string) (string, bool) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", false
	}

	for _, p := range locatorPatterns {
		if m := p.FindStringSubmatch(input); m != nil {
			return m[1], true
		}
	}

	if bareIDPattern.MatchString(input) {
		return input, true
	}

	return "", false
}
