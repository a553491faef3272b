// Package validation provides input validation for user-provided
// identifiers. Stored reference names are joined into filesystem paths, so
// they are restricted to a safe character set; this rules out directory
// traversal through a crafted name.
package validation

import "fmt"

// MaxIdentifierLength caps user-provided identifier length.
const MaxIdentifierLength = 128

// IsValidIdentifierChar checks if a character is valid for identifiers
// (alphanumeric, hyphen, underscore, or dot).
//
// This function is used to validate reference names, group labels, and
// other user-provided identifiers. It enforces a consistent naming
// convention across the application.
func IsValidIdentifierChar(ch rune) bool {
	return (ch >= 'a' && ch <= 'z') ||
		(ch >= 'A' && ch <= 'Z') ||
		(ch >= '0' && ch <= '9') ||
		ch == '-' || ch == '_' || ch == '.'
}

// ValidateReferenceName checks a stored reference name. Names must be
// non-empty, at most MaxIdentifierLength characters, contain only
// identifier characters, and not start with a dot.
func ValidateReferenceName(name string) error {
	if name == "" {
		return fmt.Errorf("reference name cannot be empty")
	}
	if len(name) > MaxIdentifierLength {
		return fmt.Errorf("reference name exceeds %d characters", MaxIdentifierLength)
	}
	if name[0] == '.' {
		return fmt.Errorf("reference name cannot start with a dot")
	}
	for _, ch := range name {
		if !IsValidIdentifierChar(ch) {
			return fmt.Errorf("reference name contains invalid character %q", ch)
		}
	}
	return nil
}

// IsValidReferenceName reports whether a string is usable as a stored
// reference name.
func IsValidReferenceName(name string) bool {
	return ValidateReferenceName(name) == nil
}
