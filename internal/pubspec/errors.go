package pubspec

import "errors"

// Sentinel errors for pubspec operations.
var (
	// ErrNotFound indicates the pubspec.yaml file does not exist.
	ErrNotFound = errors.New("pubspec: pubspec.yaml not found")

	// ErrInvalidYAML indicates the pubspec.yaml could not be parsed.
	ErrInvalidYAML = errors.New("pubspec: invalid YAML syntax")

	// ErrNoDevDependencies indicates the dev_dependencies anchor section is
	// missing, so the dependency insertion point cannot be determined.
	ErrNoDevDependencies = errors.New("pubspec: dev_dependencies section not found")

	// ErrNotMapping indicates the document root is not a YAML mapping.
	ErrNotMapping = errors.New("pubspec: document root is not a mapping")
)
