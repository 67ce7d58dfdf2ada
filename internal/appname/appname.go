// Package appname validates and formats Flutter application identifiers.
// The identifier is substituted verbatim into directory names, Dart import
// paths, and user-facing titles, so the grammar here is the only guard
// against injection into generated source.
package appname

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ErrInvalidName indicates the application name does not match the
// identifier grammar.
var ErrInvalidName = errors.New("appname: invalid application name")

// pattern is the identifier grammar: lowercase letters, digits, and
// underscores, starting with a letter. Matches the Dart package name rules
// that flutter create enforces.
var pattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// IsValid reports whether name matches the identifier grammar.
func IsValid(name string) bool {
	return pattern.MatchString(name)
}

// Validate checks name against the identifier grammar and returns a
// diagnostic error suitable for re-prompting.
func Validate(name string) error {
	if name == "" {
		return fmt.Errorf("%w: name is empty", ErrInvalidName)
	}
	if !pattern.MatchString(name) {
		return fmt.Errorf("%w: %q must be lowercase, start with a letter, and contain only letters, numbers, and underscores", ErrInvalidName, name)
	}
	return nil
}

// Display converts an identifier to a human-readable title for terminal
// output only ("sample_app" becomes "Sample App"). Generated files always
// receive the raw identifier.
func Display(name string) string {
	words := strings.Split(name, "_")
	return cases.Title(language.English).String(strings.Join(words, " "))
}
