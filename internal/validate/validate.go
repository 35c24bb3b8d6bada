// Package validate contains the input validators shared by the tool
// dispatcher and the backing services. Validators are pure: they never
// mutate their input and never perform I/O.
package validate

import (
	"fmt"
	"math"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Error is a validation rejection carrying a human-readable reason.
type Error struct {
	Reason string
}

func (e *Error) Error() string {
	return e.Reason
}

// Errorf creates a validation error with a formatted reason.
func Errorf(format string, args ...interface{}) *Error {
	return &Error{Reason: fmt.Sprintf(format, args...)}
}

// forbiddenVerbs matches statement verbs that must never appear in a
// caller-supplied query. Word-boundary anchored so identifiers like
// DROPPED_COLUMN do not trigger a rejection.
var forbiddenVerbs = regexp.MustCompile(`\b(DROP|DELETE|TRUNCATE|ALTER|CREATE|INSERT|UPDATE|GRANT|REVOKE|EXECUTE|EXEC)\b`)

var documentIDPattern = regexp.MustCompile(`^[A-Za-z0-9_.\-]+$`)

// sensitivePrefixes are path roots a caller-supplied file path may not
// start with.
var sensitivePrefixes = []string{"/etc", "/root"}

// SQLQuery checks that a query is a plain SELECT and contains no
// forbidden statement verbs. This is a denylist heuristic, not a SQL
// parser: it blocks the obvious write verbs but offers no guarantee
// against obfuscated or encoded injection. The database service binds
// parameters positionally as the real defence.
func SQLQuery(query string) error {
	if strings.TrimSpace(query) == "" {
		return Errorf("query must be a non-empty string")
	}

	upper := strings.TrimSpace(strings.ToUpper(query))

	if match := forbiddenVerbs.FindString(upper); match != "" {
		return Errorf("query contains forbidden keyword: %s; only SELECT queries are allowed", match)
	}

	if !strings.HasPrefix(upper, "SELECT") {
		return Errorf("query must start with SELECT; only read-only SELECT queries are allowed")
	}

	return nil
}

// Question checks that a question is non-blank and no longer than
// maxLength characters. The untrimmed length is compared against the
// limit, matching the service-side check.
func Question(question string, maxLength int) error {
	if strings.TrimSpace(question) == "" {
		return Errorf("question cannot be empty or whitespace only")
	}

	if length := utf8.RuneCountInString(question); length > maxLength {
		return Errorf("question too long (%d characters); maximum allowed: %d characters", length, maxLength)
	}

	return nil
}

// FilePath rejects paths with parent-directory traversal segments or
// sensitive root prefixes, and optionally restricts the extension.
// Extension matching is case-insensitive.
func FilePath(path string, allowedExtensions []string) error {
	if path == "" {
		return Errorf("file path must be a non-empty string")
	}

	if strings.Contains(path, "..") {
		return Errorf("invalid file path: potential security risk")
	}
	for _, prefix := range sensitivePrefixes {
		if strings.HasPrefix(path, prefix) {
			return Errorf("invalid file path: potential security risk")
		}
	}

	if len(allowedExtensions) > 0 {
		lower := strings.ToLower(path)
		allowed := false
		for _, ext := range allowedExtensions {
			if strings.HasSuffix(lower, strings.ToLower(ext)) {
				allowed = true
				break
			}
		}
		if !allowed {
			return Errorf("file extension not allowed; allowed: %s", strings.Join(allowedExtensions, ", "))
		}
	}

	return nil
}

// DocumentID checks that an identifier is non-empty and contains only
// letters, digits, hyphens, underscores, and dots.
func DocumentID(id string) error {
	if strings.TrimSpace(id) == "" {
		return Errorf("document ID cannot be empty")
	}

	if !documentIDPattern.MatchString(strings.TrimSpace(id)) {
		return Errorf("document ID can only contain letters, numbers, hyphens, underscores, and dots")
	}

	return nil
}

// Limit checks that a numeric limit is a whole number between 1 and
// maxLimit, returning the integer value on acceptance. JSON decoding
// hands every number over as a float64, so integrality is checked here
// rather than silently truncated.
func Limit(limit float64, maxLimit int) (int, error) {
	if limit != math.Trunc(limit) {
		return 0, Errorf("limit must be an integer")
	}

	n := int(limit)
	if n < 1 {
		return 0, Errorf("limit must be at least 1")
	}
	if n > maxLimit {
		return 0, Errorf("limit exceeds maximum allowed value of %d", maxLimit)
	}

	return n, nil
}
