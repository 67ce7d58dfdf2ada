package template

import "errors"

// Sentinel errors for template operations.
var (
	// ErrTemplateNotFound indicates the named template does not exist in
	// the embedded filesystem.
	ErrTemplateNotFound = errors.New("template: template not found")

	// ErrMissingTemplateKey indicates the rendering context is missing a
	// key referenced by the template (strict mode).
	ErrMissingTemplateKey = errors.New("template: missing template key")

	// ErrUnexpandedToken indicates a placeholder token survived rendering.
	ErrUnexpandedToken = errors.New("template: unexpanded token in rendered output")

	// ErrUnknownReference indicates a plan entry references a file that is
	// not part of the plan.
	ErrUnknownReference = errors.New("template: reference to unknown file")

	// ErrReferenceCycle indicates the file reference graph is cyclic and
	// no emission order exists.
	ErrReferenceCycle = errors.New("template: reference cycle detected")
)
